package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"herogen/internal/scene"
)

// Format is an interchange file format.
type Format string

const (
	FormatGLB  Format = "glb"
	FormatGLTF Format = "gltf"
	FormatOBJ  Format = "obj"
)

// Smoothing controls how normals are written.
type Smoothing string

const (
	// SmoothFace honours each face's smooth flag: smooth faces share
	// averaged normals, flat faces use their own.
	SmoothFace Smoothing = "face"
	// SmoothOff writes every face flat.
	SmoothOff Smoothing = "off"
)

// UpAxis is the up axis of the written file. Scenes are modelled Z-up.
type UpAxis string

const (
	UpY UpAxis = "y"
	UpZ UpAxis = "z"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Options mirrors the knobs of a DCC exporter.
type Options struct {
	// Format overrides the extension of the path when set.
	Format Format
	// SelectionOnly writes only selected objects; otherwise everything.
	SelectionOnly bool
	// BakeTransforms writes world-space vertices under identity nodes.
	BakeTransforms bool
	// IncludeEmpties writes empties as geometry-less nodes.
	IncludeEmpties bool
	Smoothing      Smoothing
	UpAxis         UpAxis
}

// DefaultOptions returns the settings used for the character: selection
// only, baked transforms, empties kept, per-face smoothing, Y up.
func DefaultOptions() Options {
	return Options{
		SelectionOnly:  true,
		BakeTransforms: true,
		IncludeEmpties: true,
		Smoothing:      SmoothFace,
		UpAxis:         UpY,
	}
}

// Result describes what Export wrote.
type Result struct {
	Path      string   `yaml:"path"`
	Format    Format   `yaml:"format"`
	Files     []string `yaml:"files"`
	Bytes     int64    `yaml:"bytes"`
	Nodes     int      `yaml:"nodes"`
	Meshes    int      `yaml:"meshes"`
	Materials int      `yaml:"materials"`
	Triangles int      `yaml:"triangles"`
}

// FilesystemError reports a failure to create a directory or write a file.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("export: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// FormatFromPath picks the format from path's extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb":
		return FormatGLB, nil
	case ".gltf":
		return FormatGLTF, nil
	case ".obj":
		return FormatOBJ, nil
	default:
		return "", fmt.Errorf("export: %w: %q", ErrUnknownFormat, ext)
	}
}

// Export writes the scene to path, creating missing parent directories.
// The scene is only read.
func Export(s *scene.Scene, path string, opts Options) (Result, error) {
	if path == "" {
		return Result{}, fmt.Errorf("export: empty path")
	}
	format := opts.Format
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return Result{}, err
		}
		format = f
	}
	if opts.Smoothing == "" {
		opts.Smoothing = SmoothFace
	}
	if opts.UpAxis == "" {
		opts.UpAxis = UpY
	}

	objs := s.Objects()
	if opts.SelectionOnly {
		objs = s.Selected()
	}

	if format == FormatOBJ {
		// OBJ has no node transforms, so geometry is always written in world space.
		opts.BakeTransforms = true
	}
	doc := newDocument(objs, opts)

	var files []outFile
	switch format {
	case FormatGLB, FormatGLTF:
		data, err := encodeGLTF(doc, format == FormatGLB)
		if err != nil {
			return Result{}, fmt.Errorf("export: encode %s: %w", format, err)
		}
		files = append(files, outFile{path: path, data: data})
	case FormatOBJ:
		mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
		obj, mtl := encodeOBJ(doc, filepath.Base(mtlPath))
		files = append(files, outFile{path: path, data: obj}, outFile{path: mtlPath, data: mtl})
	default:
		return Result{}, fmt.Errorf("export: %w: %q", ErrUnknownFormat, format)
	}

	res := Result{Path: path, Format: format}
	for _, f := range files {
		if err := writeFile(f.path, f.data); err != nil {
			return res, err
		}
		res.Files = append(res.Files, f.path)
		res.Bytes += int64(len(f.data))
	}
	res.Nodes = len(doc.nodes)
	res.Meshes = doc.meshCount()
	res.Materials = len(doc.materials)
	res.Triangles = doc.triangleCount()
	return res, nil
}

type outFile struct {
	path string
	data []byte
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &FilesystemError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &FilesystemError{Op: "write", Path: path, Err: err}
	}
	return nil
}
