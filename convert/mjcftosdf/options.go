// Package mjcftosdf converts MJCF documents into SDFormat worlds.
//
// The bodies of a document become the links of a single model, each posed in the model frame. The joints of a
// body connect its link to the link of its parent body; a body without joints is welded to its parent.
package mjcftosdf

import (
	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/convert"
	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/spatialmath"
)

// Options are the collaborators shared by the converters of one document.
type Options struct {
	// Compiler decides how the angles and orientations of the document are read.
	Compiler *mjcf.Compiler
	// AngleUnit is the unit of the angle valued attributes of the document.
	AngleUnit spatialmath.AngleUnit
	// Asset holds the meshes and materials geoms refer to by name.
	Asset   *mjcf.Asset
	Session *convert.Session

	visited map[*mjcf.Body]bool
}

// NewOptions returns the options for converting doc. It fails when the compiler settings of doc are invalid.
func NewOptions(doc *mjcf.Mujoco, session *convert.Session) (Options, error) {
	unit, err := doc.Compiler.Unit()
	if err != nil {
		return Options{}, errors.Wrap(err, "invalid compiler angle")
	}
	if _, err := doc.Compiler.Seq(); err != nil {
		return Options{}, errors.Wrap(err, "invalid compiler eulerseq")
	}
	return Options{
		Compiler:  doc.Compiler,
		AngleUnit: unit,
		Asset:     doc.Asset,
		Session:   session,
		visited:   map[*mjcf.Body]bool{},
	}, nil
}

// frameName returns a unique name for a link or joint. Links and joints share the frame namespace of a model;
// an empty name is replaced by a synthetic name of the given kind.
func (o Options) frameName(name, kind string) string {
	if name == "" {
		name = o.Session.NextName(kind)
	}
	return o.Session.UniqueName(name, "frame")
}
