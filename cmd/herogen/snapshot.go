package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"herogen/internal/pipeline"
	"herogen/internal/scene"
	"herogen/internal/snapshot"
)

const defaultSnapshotPath = "Assets/_Game/Thumbnails/Hero.png"

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		size int
		view string
	)
	cmd := &cobra.Command{
		Use:   "snapshot [path]",
		Short: "Render a PNG thumbnail of the character",
		Long: `Builds the character and renders an orthographic, flat-lit thumbnail.
The path defaults to snapshot.path from the config, then to ` + defaultSnapshotPath + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.prefs.Snapshot.Path
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = defaultSnapshotPath
			}
			opts := pipeline.OptionsFromPrefs(a.prefs).Snapshot
			if size > 0 {
				opts.Size = size
			}
			if view != "" {
				opts.View = snapshot.View(view)
			}
			if opts.View != snapshot.Front && opts.View != snapshot.Side {
				return fmt.Errorf("unknown view %q (want front or side)", opts.View)
			}

			s := scene.New()
			if _, err := pipeline.Build(cmd.Context(), s, a.log); err != nil {
				return err
			}
			if err := pipeline.Snapshot(s, path, opts); err != nil {
				return err
			}
			a.log.Info("snapshot saved", zap.String("path", path), zap.Int("size", opts.Size))
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot: %s\n", path)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "image size in pixels (default from config)")
	cmd.Flags().StringVar(&view, "view", "", "front or side (default from config)")
	return cmd
}
