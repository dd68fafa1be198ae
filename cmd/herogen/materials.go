package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"herogen/internal/materials"
	"herogen/internal/scene"
)

func newMaterialsCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Print the material table the character is painted with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := materials.Build(scene.New())
			w := cmd.OutOrStdout()
			if asYAML {
				specs := make([]*materials.Spec, 0, len(materials.Palette))
				for _, e := range materials.Palette {
					specs = append(specs, table.Lookup(e.Key))
				}
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(specs); err != nil {
					return err
				}
				return enc.Close()
			}

			r := lipgloss.NewRenderer(w)
			for _, e := range materials.Palette {
				m := table.Lookup(e.Key)
				hex := hexColor(m.BaseColor)
				swatch := r.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
				fmt.Fprintf(w, "%-10s %-9s %s  roughness %.2f  %s\n", e.Key, m.Name, hex, m.Roughness, swatch)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the materials as YAML")
	return cmd
}

// hexColor formats the RGB channels of c as #rrggbb.
func hexColor(c [4]float32) string {
	to8 := func(f float32) uint8 { return uint8(min(max(f, 0), 1)*255 + 0.5) }
	return fmt.Sprintf("#%02x%02x%02x", to8(c[0]), to8(c[1]), to8(c[2]))
}
