package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"herogen/internal/env"
	"herogen/internal/genconfig"
	"herogen/internal/logger"
)

// app carries the global flags and what PersistentPreRunE loaded from them.
type app struct {
	configPath string
	envPath    string
	logFile    string
	verbose    bool

	prefs genconfig.Prefs
	log   *logger.Logger
}

func newRootCmd(a *app) *cobra.Command {
	gen := &generateFlags{}

	root := &cobra.Command{
		Use:   "herogen",
		Short: "Procedural low-poly Bandit Hero generator",
		Long: `herogen builds a stylised low-poly "Bandit Hero" from primitive shapes
(head, sunglasses, mask, cowboy hat, torso, arms, legs), parents every part
to a single root and exports the selection to a glTF or OBJ file.

Run without arguments to generate with the settings from config/herogen.yaml.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, gen)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", genconfig.ConfigPath, "path to the YAML config file")
	pf.StringVar(&a.envPath, "env", ".env", "optional .env file with HEROGEN_* overrides")
	pf.StringVar(&a.logFile, "log-file", "", "append JSON logs to this file")
	pf.Lookup("log-file").NoOptDefVal = logger.LogFilePath
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	gen.register(root)

	root.AddCommand(
		newGenerateCmd(a),
		newInspectCmd(a),
		newMaterialsCmd(a),
		newPreviewCmd(a),
		newSnapshotCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads .env, the config file and environment overrides, then builds
// the logger. The process environment wins over .env.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	dotenv, err := env.Load(a.envPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", a.envPath, err)
	}
	prefs, err := genconfig.LoadWithEnv(a.configPath, env.Merge(dotenv, os.Environ()))
	if err != nil {
		return err
	}
	if a.verbose {
		prefs.Log.Level = "debug"
	}
	if a.logFile != "" {
		prefs.Log.File = a.logFile
	}
	a.prefs = prefs

	log, err := logger.New(logger.Options{
		Level:   prefs.Log.Level,
		File:    prefs.Log.File,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log
	return nil
}

// execute runs root with ctx and then releases the logger, also when the
// command failed. cobra skips post-run hooks after an error.
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	defer a.close()
	return root.ExecuteContext(ctx)
}

func (a *app) close() {
	if a.log == nil {
		return
	}
	_ = a.log.Close()
	a.log = nil
}

func main() {
	// Interrupts cancel the context; the pipeline and the preview loop stop on it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	if err := a.execute(ctx, newRootCmd(a)); err != nil {
		stop()
		os.Exit(1)
	}
}
