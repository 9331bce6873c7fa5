package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/slots"
)

// exitCancelled is the status a capture tool exits with when interrupted by the user
const exitCancelled = 130

// outPlaceholder in a capture command is replaced by the output path
const outPlaceholder = "{out}"

// CommandCapturer takes camera images by running an external capture tool
// and gallery images from a file already on disk
type CommandCapturer struct {
	// Command is split on whitespace, e.g. "libcamera-still -o {out}"
	Command string
	// File is returned for SourceGallery
	File string
	// Dir receives camera captures; defaults to the system temp dir
	Dir string
}

// Capture implements Capturer
func (c CommandCapturer) Capture(ctx context.Context, source Source) (ImageHandle, error) {
	if source == SourceGallery {
		if _, err := os.Stat(c.File); err != nil {
			return ImageHandle{}, fmt.Errorf("opening %s: %w", c.File, err)
		}
		return ImageHandle{Path: c.File}, nil
	}

	dir := c.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	out, err := os.CreateTemp(dir, "hatchery-*.jpg")
	if err != nil {
		return ImageHandle{}, err
	}
	path := out.Name()
	out.Close()

	argv := strings.Fields(c.Command)
	if len(argv) == 0 {
		os.Remove(path)
		return ImageHandle{}, &PermissionDenied{Permission: PermissionCamera, Reason: "no capture_command configured"}
	}
	for i, arg := range argv {
		argv[i] = strings.ReplaceAll(arg, outPlaceholder, path)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.Remove(path)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == exitCancelled {
			return ImageHandle{}, ErrCancelled
		}
		if ctx.Err() != nil {
			return ImageHandle{}, ErrCancelled
		}
		return ImageHandle{}, fmt.Errorf("capture failed: %w", err)
	}

	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		os.Remove(path)
		return ImageHandle{}, ErrCancelled
	}
	return ImageHandle{Path: path, Temporary: true}, nil
}

// ConfigPermissions grants access from local configuration: the camera when
// the capture command is executable, location when allow_location is set
type ConfigPermissions struct {
	Source         Source
	CaptureCommand string
	AllowLocation  bool
	// WantsLocation is true when the caller supplied a position to attach
	WantsLocation bool
}

// Camera implements Permissions
func (p ConfigPermissions) Camera(_ context.Context) error {
	if p.Source != SourceCamera {
		return nil
	}
	argv := strings.Fields(p.CaptureCommand)
	if len(argv) == 0 {
		return &PermissionDenied{Permission: PermissionCamera, Reason: "no capture_command configured"}
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return &PermissionDenied{Permission: PermissionCamera, Reason: argv[0] + " is not executable"}
	}
	return nil
}

// Location implements Permissions
func (p ConfigPermissions) Location(_ context.Context) error {
	if p.WantsLocation && !p.AllowLocation {
		return &PermissionDenied{Permission: PermissionLocation, Reason: "allow_location is off"}
	}
	return nil
}

// FixedLocator reports a position given on the command line or in config
type FixedLocator struct {
	Point *domain.GeoPoint
}

// Locate implements Locator
func (l FixedLocator) Locate(_ context.Context) (*domain.GeoPoint, error) {
	if l.Point == nil {
		return nil, ErrNoPosition
	}
	p := *l.Point
	return &p, nil
}

// FileOverrideStore keeps unlock overrides in a JSON file
type FileOverrideStore struct {
	Path string
}

// Load reads the stored overrides. A missing file yields an empty set.
func (s FileOverrideStore) Load() (*slots.Overrides, error) {
	o := slots.NewOverrides()
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return o, nil
		}
		return nil, err
	}
	if err := o.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.Path, err)
	}
	return o, nil
}

// Save writes the overrides with 0600 permissions
func (s FileOverrideStore) Save(o *slots.Overrides) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}
