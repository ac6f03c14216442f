package mjcf

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrNoModelInformation is returned when a document has no <worldbody>.
var ErrNoModelInformation = errors.New("no model information found in MJCF")

// ParseFile reads and parses the MJCF document at filename.
func ParseFile(filename string) (*Mujoco, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read MJCF file")
	}
	return Unmarshal(xmlData)
}

// Unmarshal parses an MJCF document.
func Unmarshal(xmlData []byte) (*Mujoco, error) {
	if len(xmlData) == 0 {
		return nil, ErrNoModelInformation
	}
	doc := &Mujoco{}
	if err := xml.Unmarshal(xmlData, doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse MJCF")
	}
	if doc.Worldbody == nil {
		return nil, ErrNoModelInformation
	}
	return doc, nil
}

// Marshal writes the document with two space indentation.
func Marshal(doc *Mujoco) ([]byte, error) {
	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal MJCF")
	}
	return append(output, '\n'), nil
}

// MeshName returns the name of a mesh asset, which defaults to its file name without the extension.
func (m *MeshAsset) MeshName() string {
	if m.Name != "" {
		return m.Name
	}
	base := filepath.Base(m.File)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FindMesh returns the mesh asset with the given name.
func (a *Asset) FindMesh(name string) (*MeshAsset, bool) {
	if a == nil {
		return nil, false
	}
	return lo.Find(a.Meshes, func(m *MeshAsset) bool { return m.MeshName() == name })
}

// FindMaterial returns the material with the given name.
func (a *Asset) FindMaterial(name string) (*Material, bool) {
	if a == nil {
		return nil, false
	}
	return lo.Find(a.Materials, func(m *Material) bool { return m.Name == name })
}

// IsEmpty reports whether the asset has no entries, so it can be left out of a document.
func (a *Asset) IsEmpty() bool {
	return a == nil || (len(a.Meshes) == 0 && len(a.Materials) == 0)
}
