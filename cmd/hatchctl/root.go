package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/osse101/HatcheryOps_Go/internal/client"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
)

// Config keys
const (
	keyAPIURL         = "api_url"
	keyToken          = "token"
	keyCaptureCommand = "capture_command"
	keyAllowLocation  = "allow_location"

	defaultAPIURL = "http://localhost:8080"
	envPrefix     = "HATCHCTL"

	configDirName     = ".hatchctl"
	configFileName    = "config.json"
	overridesFileName = "overrides.json"
)

var errInterrupted = errors.New("interrupted")

// app carries the state shared by every subcommand
type app struct {
	v       *viper.Viper
	cfgFile string
	dir     string
	verbose bool

	// newClient is swapped in tests
	newClient func(baseURL, token string) *client.Client
}

func newApp() *app {
	v := viper.New()
	v.SetDefault(keyAPIURL, defaultAPIURL)
	v.SetDefault(keyAllowLocation, false)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return &app{
		v: v,
		newClient: func(baseURL, token string) *client.Client {
			return client.NewClient(baseURL, token)
		},
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(newApp())
}

func newRootCmdWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hatchctl",
		Short:         "Field client for hatchery sellers",
		Long:          "hatchctl uploads hatchery progress images and reads purchases, invoices and notifications.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.initLogging(cmd.ErrOrStderr())
			return a.initConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.hatchctl/config.json)")
	root.PersistentFlags().String("api-url", "", "API base URL")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	_ = a.v.BindPFlag(keyAPIURL, root.PersistentFlags().Lookup("api-url"))

	root.AddCommand(
		newLoginCmd(a),
		newProfileCmd(a),
		newHatcheryCmd(a),
		newPurchasesCmd(a),
		newInvoiceCmd(a),
		newNotificationsCmd(a),
		newDistanceCmd(a),
	)
	return root
}

func (a *app) initLogging(w io.Writer) {
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	logger.InitLoggerWithWriter(logger.NewConfig(level, "text", "hatchctl", "", "", false), w)
}

func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.dir = filepath.Dir(a.cfgFile)
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		a.dir = filepath.Join(home, configDirName)
		a.v.AddConfigPath(a.dir)
		a.v.SetConfigName(strings.TrimSuffix(configFileName, filepath.Ext(configFileName)))
		a.v.SetConfigType("json")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	slog.Debug("Loaded config", "file", a.v.ConfigFileUsed())
	return nil
}

func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return filepath.Join(a.dir, configFileName)
}

func (a *app) saveConfig() error {
	if err := os.MkdirAll(filepath.Dir(a.configPath()), 0o700); err != nil {
		return err
	}
	if err := a.v.WriteConfigAs(a.configPath()); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return os.Chmod(a.configPath(), 0o600)
}

func (a *app) overrideStore() client.FileOverrideStore {
	return client.FileOverrideStore{Path: filepath.Join(a.dir, overridesFileName)}
}

// client returns an authenticated API client
func (a *app) client() (*client.Client, error) {
	token := a.v.GetString(keyToken)
	if token == "" {
		return nil, errors.New("not logged in. Run 'hatchctl login --token <token>' or set HATCHCTL_TOKEN")
	}
	return a.newClient(a.v.GetString(keyAPIURL), token), nil
}

// interruptible returns a context cancelled on Ctrl-C or SIGTERM
func interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
