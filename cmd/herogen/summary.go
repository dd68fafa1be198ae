package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"herogen/internal/genconfig"
	"herogen/internal/pipeline"
)

// styles render against the destination writer, so piping to a file or a
// test buffer yields plain text.
type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	muted lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0a050")),
		label: r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("#808080")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("#60c060")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#e0c040")),
	}
}

// printSummary writes the short result of a generate run: part count, root
// name and where the file went.
func printSummary(w io.Writer, sum pipeline.Summary) {
	st := newStyles(w)
	p := message.NewPrinter(language.English)

	var b strings.Builder
	b.WriteString(st.title.Render("Bandit Hero generated") + "\n")
	fmt.Fprintf(&b, "Parts: %d\n", len(sum.Parts))
	fmt.Fprintf(&b, "Root: %s\n", sum.Root)
	b.WriteString(st.muted.Render(p.Sprintf("%d vertices, %d triangles, %d materials",
		sum.TotalVertices(), sum.TotalTriangles(), len(sum.Materials))) + "\n")

	if sum.Export != nil {
		b.WriteString(st.ok.Render("Exported: "+sum.Export.Path) + "\n")
		b.WriteString(st.muted.Render(p.Sprintf("%s, %d bytes, %d nodes, %d meshes",
			strings.ToUpper(string(sum.Export.Format)), sum.Export.Bytes, sum.Export.Nodes, sum.Export.Meshes)) + "\n")
	} else {
		b.WriteString(st.warn.Render("Export skipped") + "\n")
		b.WriteString(st.muted.Render(fmt.Sprintf(
			"Enable export.enabled in %s or run: herogen generate --out %s",
			genconfig.ConfigPath, genconfig.DefaultExportPath)) + "\n")
	}
	if sum.Snapshot != "" {
		b.WriteString(st.ok.Render("Snapshot: "+sum.Snapshot) + "\n")
	}
	fmt.Fprint(w, b.String())
}

// printParts writes one aligned row per part.
func printParts(w io.Writer, sum pipeline.Summary) {
	st := newStyles(w)
	p := message.NewPrinter(language.English)
	for _, part := range sum.Parts {
		name := st.label.Render(fmt.Sprintf("%-11s", part.Name))
		p.Fprintf(w, "%s %6d verts %6d tris  %s\n", name, part.Vertices, part.Triangles,
			st.muted.Render(strings.Join(part.Materials, ", ")))
	}
}
