package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"herogen/internal/genconfig"
	"herogen/internal/pipeline"
	"herogen/internal/scene"
)

// generateFlags override the export and snapshot preferences for one run.
type generateFlags struct {
	out      string
	format   string
	noExport bool
	snapshot string
}

func (f *generateFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.out, "out", "o", "", "export path (.glb, .gltf or .obj); enables export")
	fl.StringVar(&f.format, "format", "", "force the export format: glb, gltf or obj")
	fl.BoolVar(&f.noExport, "no-export", false, "build the character without writing a file")
	fl.StringVar(&f.snapshot, "snapshot", "", "also render a PNG thumbnail to this path")
}

// apply layers the flags over p.
func (f *generateFlags) apply(p genconfig.Prefs) genconfig.Prefs {
	if f.out != "" {
		p.Export.Path = f.out
		p.Export.Enabled = true
	}
	if f.format != "" {
		p.Export.Format = f.format
	}
	if f.noExport {
		p.Export.Enabled = false
	}
	if f.snapshot != "" {
		p.Snapshot.Path = f.snapshot
	}
	return p
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the Bandit Hero and export it",
		Long: `Resets the scene, builds every body part, assembles them under the
BanditHero root and exports the selection. Export can be disabled in the
config (export.enabled: false) or with --no-export.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, f)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) generate(cmd *cobra.Command, f *generateFlags) error {
	prefs := f.apply(a.prefs)
	if err := prefs.Validate(); err != nil {
		a.log.Error("invalid configuration", zap.Error(err))
		return err
	}
	sum, err := pipeline.Run(cmd.Context(), scene.New(), pipeline.OptionsFromPrefs(prefs), a.log)
	if err != nil {
		a.log.Error("generation failed", zap.Error(err))
		return err
	}
	printSummary(cmd.OutOrStdout(), sum)
	if a.verbose {
		printParts(cmd.OutOrStdout(), sum)
	}
	return nil
}
