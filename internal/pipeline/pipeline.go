package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"herogen/internal/character"
	"herogen/internal/export"
	"herogen/internal/genconfig"
	"herogen/internal/logger"
	"herogen/internal/materials"
	"herogen/internal/scene"
	"herogen/internal/snapshot"
)

// ErrNoExportPath is returned when export is enabled but no path is set.
var ErrNoExportPath = errors.New("pipeline: export enabled without a path")

// Options controls what happens after the character is built.
type Options struct {
	ExportEnabled bool
	ExportPath    string
	Export        export.Options
	// SnapshotPath, when set, also renders a PNG thumbnail there.
	SnapshotPath string
	Snapshot     snapshot.Options
}

// OptionsFromPrefs maps loaded preferences onto pipeline options.
func OptionsFromPrefs(p genconfig.Prefs) Options {
	eo := export.DefaultOptions()
	eo.Format = export.Format(p.Export.Format)
	eo.UpAxis = export.UpAxis(p.Export.UpAxis)
	eo.Smoothing = export.Smoothing(p.Export.Smoothing)
	eo.SelectionOnly = p.Export.SelectionOnly
	eo.IncludeEmpties = p.Export.IncludeEmpties
	eo.BakeTransforms = p.Export.BakeTransforms

	so := snapshot.DefaultOptions()
	if p.Snapshot.Size > 0 {
		so.Size = p.Snapshot.Size
	}
	if p.Snapshot.View != "" {
		so.View = snapshot.View(p.Snapshot.View)
	}
	return Options{
		ExportEnabled: p.Export.Enabled,
		ExportPath:    p.Export.Path,
		Export:        eo,
		SnapshotPath:  p.Snapshot.Path,
		Snapshot:      so,
	}
}

// PartStats describes one built part.
type PartStats struct {
	Name        string   `yaml:"name"`
	Primitives  []string `yaml:"primitives"`
	Materials   []string `yaml:"materials"`
	scene.Stats `yaml:",inline"`
}

// Summary is what a run produced.
type Summary struct {
	Root      string         `yaml:"root"`
	Parts     []PartStats    `yaml:"parts"`
	Materials []string       `yaml:"materials"`
	Export    *export.Result `yaml:"export,omitempty"`
	Snapshot  string         `yaml:"snapshot,omitempty"`
}

// TotalVertices sums the vertex counts of all parts.
func (s Summary) TotalVertices() int {
	n := 0
	for _, p := range s.Parts {
		n += p.Vertices
	}
	return n
}

// TotalTriangles sums the triangle counts of all parts.
func (s Summary) TotalTriangles() int {
	n := 0
	for _, p := range s.Parts {
		n += p.Triangles
	}
	return n
}

// Build clears s, creates the material table, runs every part builder in
// order and assembles the parts under the root. The first failure aborts,
// and so does ctx being done between two parts.
func Build(ctx context.Context, s *scene.Scene, log *logger.Logger) (character.Rig, error) {
	objs, mats := s.Reset()
	log.Debug("scene reset", zap.Int("objects", objs), zap.Int("materials", mats))

	table := materials.Build(s)
	log.Debug("materials ready", zap.Strings("keys", table.Keys()))

	var parts []character.BodyPart
	for _, build := range character.Builders() {
		if err := ctx.Err(); err != nil {
			log.Warn("build interrupted", zap.Int("parts", len(parts)), zap.Error(err))
			return character.Rig{}, err
		}
		part, err := build(s, table)
		if err != nil {
			log.Error("part failed", zap.Error(err))
			return character.Rig{}, err
		}
		st := part.Object.Stats()
		log.Debug("part built",
			zap.String("part", part.Name),
			zap.Int("primitives", len(part.Sources)),
			zap.Int("vertices", st.Vertices),
			zap.Int("faces", st.Faces))
		parts = append(parts, part)
	}

	rig, err := character.Assemble(s, parts)
	if err != nil {
		return character.Rig{}, err
	}
	log.Info("character assembled", zap.String("root", rig.Root.Name), zap.Int("parts", len(rig.Parts)))
	return rig, nil
}

// Summarize collects per-part statistics of rig.
func Summarize(s *scene.Scene, rig character.Rig) Summary {
	sum := Summary{Root: rig.Root.Name}
	for _, p := range rig.Parts {
		ps := PartStats{Name: p.Name, Stats: p.Object.Stats()}
		for _, d := range p.Sources {
			ps.Primitives = append(ps.Primitives, fmt.Sprintf("%s (%s)", d.Name, d.Type))
		}
		for _, m := range p.Object.Materials {
			if m != nil {
				ps.Materials = append(ps.Materials, m.Name)
			}
		}
		sum.Parts = append(sum.Parts, ps)
	}
	for _, m := range s.Materials() {
		sum.Materials = append(sum.Materials, m.Name)
	}
	return sum
}

// Run builds the character into s, then exports it and renders the
// thumbnail as opts ask. Nothing is written once ctx is done.
func Run(ctx context.Context, s *scene.Scene, opts Options, log *logger.Logger) (Summary, error) {
	if opts.ExportEnabled && opts.ExportPath == "" {
		return Summary{}, ErrNoExportPath
	}
	rig, err := Build(ctx, s, log)
	if err != nil {
		return Summary{}, err
	}
	sum := Summarize(s, rig)
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	if opts.ExportEnabled {
		res, err := export.Export(s, opts.ExportPath, opts.Export)
		if err != nil {
			log.Error("export failed", zap.String("path", opts.ExportPath), zap.Error(err))
			return sum, err
		}
		log.Info("exported",
			zap.String("path", res.Path),
			zap.String("format", string(res.Format)),
			zap.Int64("bytes", res.Bytes),
			zap.Int("nodes", res.Nodes))
		sum.Export = &res
	} else {
		log.Info("export skipped")
	}

	if opts.SnapshotPath != "" {
		if err := Snapshot(s, opts.SnapshotPath, opts.Snapshot); err != nil {
			log.Error("snapshot failed", zap.String("path", opts.SnapshotPath), zap.Error(err))
			return sum, err
		}
		log.Info("snapshot saved", zap.String("path", opts.SnapshotPath))
		sum.Snapshot = opts.SnapshotPath
	}
	return sum, nil
}

// Snapshot renders the selected objects of s to a PNG at path.
func Snapshot(s *scene.Scene, path string, opts snapshot.Options) error {
	img, err := snapshot.Render(scene.Triangles(s.Selected()), opts)
	if err != nil {
		return err
	}
	return snapshot.Save(path, img)
}
