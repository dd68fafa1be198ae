package export

import (
	"bytes"
	"fmt"
	"strings"

	"herogen/internal/materials"
)

const defaultMaterialName = "Default"

// encodeOBJ writes d as a Wavefront OBJ referencing mtlName, plus the MTL
// library itself. Faces keep their polygon shape; normals follow the same
// smooth/flat rules as the glTF writer.
func encodeOBJ(d *document, mtlName string) (obj, mtl []byte) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n", generator)
	fmt.Fprintf(&b, "mtllib %s\n", mtlName)

	nextV, nextN := 1, 1
	usesDefault := false
	for _, n := range d.nodes {
		fmt.Fprintf(&b, "o %s\n", objName(n.name))
		if n.mesh == nil {
			continue
		}
		m := n.mesh
		for _, v := range m.Vertices {
			fmt.Fprintf(&b, "v %s %s %s\n", num(v[0]), num(v[1]), num(v[2]))
		}

		smooth := m.VertexNormals()
		normalIdx := make(map[cornerKey]int)
		var faceLines []string
		curMat, curSmooth, first := "", false, true
		for fi, f := range m.Faces {
			if len(f.Verts) < 3 {
				continue
			}
			name := defaultMaterialName
			if mi := n.materialOf(f.Material); mi >= 0 {
				name = objName(d.materials[mi].Name)
			} else {
				usesDefault = true
			}
			if first || name != curMat {
				faceLines = append(faceLines, "usemtl "+name)
				curMat = name
			}
			if first || f.Smooth != curSmooth {
				faceLines = append(faceLines, smoothGroup(f.Smooth))
				curSmooth = f.Smooth
			}
			first = false

			var line strings.Builder
			line.WriteString("f")
			flat := m.FaceNormal(f)
			for _, vi := range f.Verts {
				// Flat faces share one normal across their corners.
				key := cornerKey{vert: -1, face: fi}
				normal := flat
				if f.Smooth && smooth[vi].LenSqr() > 0 {
					key = cornerKey{vert: vi, face: -1}
					normal = smooth[vi]
				}
				ni, ok := normalIdx[key]
				if !ok {
					ni = nextN
					nextN++
					normalIdx[key] = ni
					fmt.Fprintf(&b, "vn %s %s %s\n", num(normal[0]), num(normal[1]), num(normal[2]))
				}
				fmt.Fprintf(&line, " %d//%d", nextV+vi, ni)
			}
			faceLines = append(faceLines, line.String())
		}
		for _, l := range faceLines {
			b.WriteString(l)
			b.WriteByte('\n')
		}
		nextV += len(m.Vertices)
	}

	specs := d.materials
	if usesDefault {
		specs = append(specs[:len(specs):len(specs)], &materials.Spec{
			Name:      defaultMaterialName,
			BaseColor: [4]float32{0.8, 0.8, 0.8, 1},
			Roughness: materials.DefaultRoughness,
		})
	}
	return b.Bytes(), encodeMTL(specs)
}

// encodeMTL maps the PBR values onto classic MTL statements: Kd for the
// base color, d for alpha, Ns derived from roughness, and the Pr extension.
func encodeMTL(specs []*materials.Spec) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n", generator)
	for _, s := range specs {
		c := s.BaseColor
		r := s.Roughness
		fmt.Fprintf(&b, "\nnewmtl %s\n", objName(s.Name))
		fmt.Fprintf(&b, "Kd %s %s %s\n", num(c[0]), num(c[1]), num(c[2]))
		fmt.Fprintf(&b, "d %s\n", num(c[3]))
		fmt.Fprintf(&b, "Ns %s\n", num(900*(1-r)*(1-r)))
		fmt.Fprintf(&b, "Pr %s\n", num(r))
		b.WriteString("illum 2\n")
	}
	return b.Bytes()
}

func smoothGroup(smooth bool) string {
	if smooth {
		return "s 1"
	}
	return "s off"
}

// objName replaces whitespace, which OBJ and MTL readers treat as a separator.
func objName(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

func num(f float32) string {
	s := fmt.Sprintf("%.6f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
