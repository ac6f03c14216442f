package mjcftosdf

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// AddBody converts body and the bodies nested in it into links of model. parentPose is the pose of the parent
// body in the model frame and parentLink the name of its link, or the world frame for bodies of the worldbody.
// A body whose pose cannot be resolved is recorded on the session and its subtree is left out. Finding a body
// twice is a structural error.
func AddBody(model *sdf.Model, body *mjcf.Body, parentLink string, parentPose spatialmath.Pose, opts Options) error {
	if opts.visited == nil {
		opts.visited = map[*mjcf.Body]bool{}
	}
	if opts.visited[body] {
		return referenceframe.NewStructuralError(fmt.Sprintf("body %q is nested in itself", body.Name))
	}
	opts.visited[body] = true

	local, err := opts.Compiler.ResolvePose(body.Frame)
	if err != nil {
		opts.Session.Fail(referenceframe.NewUnresolvableFrameError(body.Name, err))
		return nil
	}
	pose := referenceframe.Resolve(local, parentPose)
	link, err := NewLink(body, pose, opts)
	if err != nil {
		opts.Session.Fail(err)
		return nil
	}
	model.Links = append(model.Links, link)

	if err := AddJoints(model, body, parentLink, link, opts); err != nil {
		opts.Session.Fail(errors.Wrapf(err, "body %q is welded to its parent", body.Name))
		weld(model, parentLink, link.Name, opts)
	}

	for _, child := range body.Bodies {
		if err := AddBody(model, child, link.Name, pose, opts); err != nil {
			return err
		}
	}
	return nil
}

// NewLink converts the contents of body into a link at pose, the pose of the body in the model frame. Unnamed
// bodies get a synthetic name. Geoms, cameras and lights that cannot be converted are recorded on the session
// and left out.
func NewLink(body *mjcf.Body, pose spatialmath.Pose, opts Options) (*sdf.Link, error) {
	name := opts.frameName(body.Name, "link")
	link := &sdf.Link{
		Name: name,
		Pose: sdf.NewPose(pose, ""),
	}
	if body.Inertial != nil {
		inertial, err := newInertial(name, body.Inertial, opts)
		if err != nil {
			return nil, err
		}
		link.Inertial = inertial
	}
	addContents(link, body, opts)
	return link, nil
}

// addContents converts the geoms, cameras and lights of body into link.
func addContents(link *sdf.Link, body *mjcf.Body, opts Options) {
	for _, geom := range body.Geoms {
		if err := AddGeom(link, geom, opts); err != nil {
			opts.Session.Fail(errors.Wrapf(err, "link %q", link.Name))
		}
	}
	for _, camera := range body.Cameras {
		if _, err := AddCamera(link, camera, opts); err != nil {
			opts.Session.Fail(errors.Wrapf(err, "link %q", link.Name))
		}
	}
	for _, light := range body.Lights {
		l, err := NewLight(light, opts)
		if err != nil {
			opts.Session.Fail(errors.Wrapf(err, "link %q", link.Name))
			continue
		}
		link.Lights = append(link.Lights, l)
	}
}

// newInertial converts an MJCF inertial. The orientation of the inertial frame is folded into the moment of
// inertia, so the SDFormat inertial only has a position. Without diaginertia or fullinertia the moment of
// inertia is the identity.
func newInertial(link string, in *mjcf.Inertial, opts Options) (*sdf.Inertial, error) {
	pose, err := opts.Compiler.ResolvePose(in.Frame)
	if err != nil {
		return nil, referenceframe.NewUnresolvableFrameError(link, errors.Wrap(err, "invalid inertial"))
	}
	fi := spatialmath.DiagonalInertia(1, 1, 1)
	switch {
	case in.FullInertia != "":
		v, err := utils.ParseFloats(in.FullInertia, 6)
		if err != nil {
			return nil, errors.Wrapf(err, "link %q: invalid fullinertia", link)
		}
		copy(fi[:], v)
	case in.DiagInertia != "":
		v, err := utils.ParseFloats(in.DiagInertia, 3)
		if err != nil {
			return nil, errors.Wrapf(err, "link %q: invalid diaginertia", link)
		}
		fi = spatialmath.DiagonalInertia(v[0], v[1], v[2])
	}
	if in.FullInertia != "" && in.DiagInertia != "" {
		opts.Session.Warnf("link %q: inertial has both fullinertia and diaginertia, using fullinertia", link)
	}

	inertial, warnings := spatialmath.NewInertialFromFullInertia(in.Mass, fi, pose)
	for _, w := range warnings {
		opts.Session.Warnf("link %q: %s", link, w)
	}
	return sdf.NewInertial(inertial, ""), nil
}
