package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"herogen/internal/graphics"
	"herogen/internal/pipeline"
	"herogen/internal/scene"
	"herogen/internal/viewer"
)

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Open a window showing the character on an orbit camera",
		Long: `Builds the character and shows it in a raylib window. Space pauses the
orbit, G toggles the grid, F1 the stats overlay. ESC closes the window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scene.New()
			rig, err := pipeline.Build(cmd.Context(), s, a.log)
			if err != nil {
				return err
			}
			sum := pipeline.Summarize(s, rig)
			p := message.NewPrinter(language.English)
			info := []string{
				fmt.Sprintf("%s: %d parts", sum.Root, len(sum.Parts)),
				p.Sprintf("%d vertices", sum.TotalVertices()),
			}
			v := viewer.New(scene.Triangles(s.Selected()), info)
			graphics.Run(cmd.Context(), "herogen - "+rig.Root.Name, v.Update, v.Draw)
			return cmd.Context().Err()
		},
	}
}
