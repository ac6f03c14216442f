package sdf

import (
	"encoding/xml"
	"os"

	"github.com/pkg/errors"
)

// ErrNoModelInformation is returned when a document contains nothing to convert.
var ErrNoModelInformation = errors.New("no model information found in SDF")

// ParseFile reads and parses the SDFormat document at filename.
func ParseFile(filename string) (*Root, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read SDF file")
	}
	return Unmarshal(xmlData)
}

// Unmarshal parses an SDFormat document. Documents without any model, in a world or at the top level, are
// rejected.
func Unmarshal(xmlData []byte) (*Root, error) {
	if len(xmlData) == 0 {
		return nil, ErrNoModelInformation
	}
	root := &Root{}
	if err := xml.Unmarshal(xmlData, root); err != nil {
		return nil, errors.Wrap(err, "failed to parse SDF")
	}
	if len(root.AllModels()) == 0 {
		return nil, ErrNoModelInformation
	}
	return root, nil
}

// Marshal writes the document with an XML header and two space indentation.
func Marshal(root *Root) ([]byte, error) {
	if root.Version == "" {
		root.Version = Version
	}
	output, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal SDF")
	}
	return []byte(xml.Header + string(output) + "\n"), nil
}

// AllModels returns the top level models followed by the models of every world.
func (r *Root) AllModels() []*Model {
	models := append([]*Model{}, r.Models...)
	for _, w := range r.Worlds {
		models = append(models, w.Models...)
	}
	return models
}
