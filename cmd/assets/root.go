package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/assets"
	"github.com/gogpu/assets/module"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	mgr     *module.Manager
	lib     *assets.Library
	logFile *os.File
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:          "assets",
		Short:        "Inspect an assets directory",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default is ./assets.toml)")
	flags.String("root", "", "assets directory (default is ./"+assets.DefaultRootName+")")
	flags.Bool("retain", false, "keep loaded assets cached after their last owner releases them")
	flags.String("log-level", "warning", "minimum log level: debug, verbose, info, warning, error, critical")
	flags.String("log-file", "", "also append log lines to this file")

	for _, sub := range []*cobra.Command{newExistsCmd(a), newLoadCmd(a), newLsCmd(a)} {
		sub.RunE = a.teardownOnError(sub.RunE)
		cmd.AddCommand(sub)
	}
	return cmd
}

// teardownOnError wraps run so that a failing command still shuts the
// library down. Cobra skips PersistentPostRunE when RunE fails.
func (a *app) teardownOnError(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := run(cmd, args); err != nil {
			return errors.Join(err, a.teardown())
		}
		return nil
	}
}

// setup reads the configuration, installs the logger and wakes the library.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	level, err := parseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if path := a.v.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		w = io.MultiWriter(w, f)
	}
	assets.SetLogger(slog.New(assets.NewLineHandler(w, &assets.LineHandlerOptions{Level: level})))

	var root *assets.Root
	if dir := a.v.GetString("root"); dir != "" {
		root = assets.NewRoot(dir)
	}
	var opts []assets.Option
	if a.v.GetBool("retain") {
		opts = append(opts, assets.WithRetain())
	}

	lib, err := newLibrary(root, opts...)
	if err != nil {
		return errors.Join(err, a.teardown())
	}
	a.lib = lib
	a.mgr = module.NewManager()
	a.mgr.Add(lib)
	a.mgr.Awake()
	return nil
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	v := a.v
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("ASSETS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("assets")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// teardown shuts the library down and restores the silent logger.
// Calling it again is a no-op.
func (a *app) teardown() error {
	if a.mgr != nil {
		a.mgr.Shutdown()
		a.mgr = nil
	}
	assets.SetLogger(nil)
	if a.logFile != nil {
		err := a.logFile.Close()
		a.logFile = nil
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "verbose":
		return assets.LevelVerbose, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "critical":
		return assets.LevelCritical, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
