package sdf

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// Reserved frame names.
const (
	ModelFrame = "__model__"
	WorldFrame = "world"
)

// FrameGraph resolves the poses of the frames of a model: its links, joints and explicit frames. Every
// frame is attached to another by its pose's relative_to attribute, or by the default for its kind.
type FrameGraph struct {
	model  *Model
	frames map[string]SemanticPose
	cache  map[string]spatialmath.Pose
}

// NewFrameGraph indexes the frames of a model. Frame names must be unique and must not use a reserved name.
func NewFrameGraph(model *Model) (*FrameGraph, error) {
	g := &FrameGraph{
		model:  model,
		frames: map[string]SemanticPose{},
		cache:  map[string]spatialmath.Pose{},
	}
	add := func(kind string, sp SemanticPose) error {
		switch sp.Name {
		case "":
			return referenceframe.NewStructuralError(fmt.Sprintf("model %q has a %s with no name", model.Name, kind))
		case ModelFrame, WorldFrame:
			return referenceframe.NewStructuralError(fmt.Sprintf("%s %q uses a reserved frame name", kind, sp.Name))
		}
		if _, ok := g.frames[sp.Name]; ok {
			return referenceframe.NewStructuralError(fmt.Sprintf("model %q has more than one frame named %q", model.Name, sp.Name))
		}
		g.frames[sp.Name] = sp
		return nil
	}
	for _, l := range model.Links {
		if err := add("link", l.SemanticPose()); err != nil {
			return nil, err
		}
	}
	for _, j := range model.Joints {
		if err := add("joint", j.SemanticPose()); err != nil {
			return nil, err
		}
	}
	for _, f := range model.Frames {
		if err := add("frame", f.SemanticPose()); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// SemanticPose returns the pose of the link, relative to the model frame by default.
func (l *Link) SemanticPose() SemanticPose {
	return SemanticPose{Name: l.Name, Raw: l.Pose, DefaultRelativeTo: ModelFrame}
}

// SemanticPose returns the pose of the joint, relative to its child link by default.
func (j *Joint) SemanticPose() SemanticPose {
	return SemanticPose{Name: j.Name, Raw: j.Pose, DefaultRelativeTo: j.Child}
}

// SemanticPose returns the pose of the frame, relative to the frame it is attached to by default.
func (f *Frame) SemanticPose() SemanticPose {
	def := f.AttachedTo
	if def == "" {
		def = ModelFrame
	}
	return SemanticPose{Name: f.Name, Raw: f.Pose, DefaultRelativeTo: def}
}

// SemanticPose returns the pose of the collision, relative to the link that owns it by default.
func (c *Collision) SemanticPose(link string) SemanticPose {
	return SemanticPose{Name: c.Name, Raw: c.Pose, DefaultRelativeTo: link}
}

// SemanticPose returns the pose of the visual, relative to the link that owns it by default.
func (v *Visual) SemanticPose(link string) SemanticPose {
	return SemanticPose{Name: v.Name, Raw: v.Pose, DefaultRelativeTo: link}
}

// SemanticPose returns the pose of the light, relative to the link that owns it by default.
func (l *Light) SemanticPose(link string) SemanticPose {
	return SemanticPose{Name: l.Name, Raw: l.Pose, DefaultRelativeTo: link}
}

// SemanticPose returns the pose of the sensor, relative to the link that owns it by default.
func (s *Sensor) SemanticPose(link string) SemanticPose {
	return SemanticPose{Name: s.Name, Raw: s.Pose, DefaultRelativeTo: link}
}

// Model returns the model the graph was built from.
func (g *FrameGraph) Model() *Model {
	return g.model
}

// PoseInModel returns the pose of the named frame relative to the model frame.
func (g *FrameGraph) PoseInModel(name string) (spatialmath.Pose, error) {
	return g.poseInModel(name, map[string]bool{})
}

func (g *FrameGraph) poseInModel(name string, visiting map[string]bool) (spatialmath.Pose, error) {
	switch name {
	case ModelFrame:
		return spatialmath.NewZeroPose(), nil
	case WorldFrame:
		return g.worldPose()
	}
	if p, ok := g.cache[name]; ok {
		return p, nil
	}
	sp, ok := g.frames[name]
	if !ok {
		return nil, referenceframe.NewUnresolvableFrameError(name, errors.New("no such frame"))
	}
	if visiting[name] {
		return nil, referenceframe.NewUnresolvableFrameError(name, errors.New("relative_to cycle"))
	}
	visiting[name] = true

	local, err := sp.Raw.Parse()
	if err != nil {
		return nil, referenceframe.NewUnresolvableFrameError(name, err)
	}
	parent, err := g.poseInModel(sp.RelativeTo(), visiting)
	if err != nil {
		return nil, err
	}
	resolved := referenceframe.Resolve(local, parent)
	g.cache[name] = resolved
	return resolved, nil
}

// worldPose is the pose of the world frame in the model frame, the inverse of the model's own pose.
func (g *FrameGraph) worldPose() (spatialmath.Pose, error) {
	raw := g.model.Pose
	if raw != nil && raw.RelativeTo != "" && raw.RelativeTo != WorldFrame {
		return nil, referenceframe.NewUnresolvableFrameError(WorldFrame,
			errors.Errorf("model %q is posed relative to %q", g.model.Name, raw.RelativeTo))
	}
	modelPose, err := raw.Parse()
	if err != nil {
		return nil, referenceframe.NewUnresolvableFrameError(g.model.Name, err)
	}
	return spatialmath.PoseInverse(modelPose), nil
}

// ResolvePose returns the pose of sp relative to the named frame. An empty relativeTo means the default frame
// of sp.
func (g *FrameGraph) ResolvePose(sp SemanticPose, relativeTo string) (spatialmath.Pose, error) {
	local, err := sp.Raw.Parse()
	if err != nil {
		return nil, referenceframe.NewUnresolvableFrameError(sp.Name, err)
	}
	if relativeTo == "" {
		relativeTo = sp.DefaultRelativeTo
	}
	if sp.RelativeTo() == relativeTo {
		return local, nil
	}
	base, err := g.PoseInModel(sp.RelativeTo())
	if err != nil {
		return nil, err
	}
	target, err := g.PoseInModel(relativeTo)
	if err != nil {
		return nil, err
	}
	return spatialmath.PoseBetween(target, referenceframe.Resolve(local, base)), nil
}

// ResolveAxis returns the unit direction of a joint axis in the joint frame. A missing <xyz> is the z axis.
func (g *FrameGraph) ResolveAxis(joint *Joint, axis *JointAxis) (r3.Vector, error) {
	v := r3.Vector{Z: 1}
	expressedIn := ""
	if axis != nil && axis.XYZ != nil {
		values, err := utils.ParseFloats(axis.XYZ.Value, 3)
		if err != nil {
			return r3.Vector{}, referenceframe.NewUnresolvableFrameError(joint.Name, errors.Wrap(err, "invalid axis"))
		}
		if values != nil {
			v = r3.Vector{X: values[0], Y: values[1], Z: values[2]}
		}
		expressedIn = axis.XYZ.ExpressedIn
	}
	if v.Norm() == 0 {
		return r3.Vector{}, referenceframe.NewUnresolvableFrameError(joint.Name, errors.New("axis has zero length"))
	}
	v = v.Normalize()
	if expressedIn == "" || expressedIn == joint.Name {
		return v, nil
	}

	jointPose, err := g.PoseInModel(joint.Name)
	if err != nil {
		return r3.Vector{}, err
	}
	framePose, err := g.PoseInModel(expressedIn)
	if err != nil {
		return r3.Vector{}, err
	}
	return spatialmath.RotateVector(spatialmath.PoseBetween(jointPose, framePose).Orientation(), v), nil
}
