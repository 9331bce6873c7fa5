package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// allowedImageTypes maps accepted MIME types to the extension stored in keys
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"image/heif": ".heif",
}

// Image is an upload that passed content sniffing
type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Size returns the number of bytes in the image
func (img *Image) Size() int64 {
	return int64(len(img.Data))
}

// Reader returns a fresh reader over the image bytes
func (img *Image) Reader() io.Reader {
	return bytes.NewReader(img.Data)
}

// DetectImage reads at most maxBytes from r and sniffs the content type.
// The declared client content type is ignored.
func DetectImage(r io.Reader, maxBytes int64) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", domain.ErrImageTooLarge, maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrUnsupportedMedia)
	}

	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if ext, ok := allowedImageTypes[m.String()]; ok {
			return &Image{Data: data, ContentType: m.String(), Extension: ext}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, mt.String())
}
