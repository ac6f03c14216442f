// Package sdftomjcf converts SDFormat models into MJCF bodies.
//
// A model is converted one link at a time, depth first along its joints. Every link becomes a <body> nested in
// the body of its parent link, carrying the joint that connects the two.
package sdftomjcf

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/convert"
	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
)

// PoseResolver resolves a pose written in a document relative to a named frame. An empty relativeTo means the
// frame the pose is written relative to by default.
type PoseResolver interface {
	ResolvePose(sp sdf.SemanticPose, relativeTo string) (spatialmath.Pose, error)
}

// AxisResolver resolves the direction of a joint axis in the frame of the joint.
type AxisResolver interface {
	ResolveAxis(joint *sdf.Joint, axis *sdf.JointAxis) (r3.Vector, error)
}

// Options are the collaborators shared by the converters of one document.
type Options struct {
	PoseResolver PoseResolver
	AxisResolver AxisResolver
	// AngleUnit is the unit of the angles written to the document. It must match the unit of its <compiler>.
	AngleUnit spatialmath.AngleUnit
	Session   *convert.Session
	// Asset collects the meshes referenced by geoms. Mesh geometries are rejected when it is nil.
	Asset *mjcf.Asset
	// SourceDir is the directory relative mesh URIs are resolved against.
	SourceDir string
}

// NewOptions returns the options for converting model, resolving poses and axes with its frame graph.
func NewOptions(model *sdf.Model, unit spatialmath.AngleUnit, session *convert.Session, asset *mjcf.Asset) (Options, error) {
	graph, err := sdf.NewFrameGraph(model)
	if err != nil {
		return Options{}, err
	}
	return Options{
		PoseResolver: graph,
		AxisResolver: graph,
		AngleUnit:    unit,
		Session:      session,
		Asset:        asset,
	}, nil
}

func (o Options) resolvePose(sp sdf.SemanticPose, relativeTo string) (spatialmath.Pose, error) {
	p, err := o.PoseResolver.ResolvePose(sp, relativeTo)
	if err != nil {
		if errors.Is(err, referenceframe.ErrUnresolvableFrame) {
			return nil, err
		}
		return nil, referenceframe.NewUnresolvableFrameError(sp.Name, err)
	}
	return p, nil
}

func (o Options) resolveAxis(joint *sdf.Joint) (r3.Vector, error) {
	axis, err := o.AxisResolver.ResolveAxis(joint, joint.Axis)
	if err != nil {
		if errors.Is(err, referenceframe.ErrUnresolvableFrame) {
			return r3.Vector{}, err
		}
		return r3.Vector{}, referenceframe.NewUnresolvableFrameError(joint.Name, err)
	}
	return axis, nil
}
