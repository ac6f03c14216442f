package sdftomjcf

import (
	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// AddLink converts link into a body nested in parent. The pose of the body is the pose of the link relative to
// parentName, the link of parent, or the model frame when parentName is empty. Collisions, visuals, lights and
// sensors that cannot be converted are recorded on the session and left out.
func AddLink(parent *mjcf.Body, link *sdf.Link, parentName string, opts Options) (*mjcf.Body, error) {
	pose, err := opts.resolvePose(link.SemanticPose(), parentName)
	if err != nil {
		return nil, err
	}
	body := &mjcf.Body{
		Name:  opts.Session.UniqueName(link.Name, "body"),
		Frame: mjcf.NewFrame(pose, opts.AngleUnit),
	}

	inertial, err := newInertial(link, opts)
	if err != nil {
		return nil, err
	}
	body.Inertial = inertial

	for _, col := range link.Collisions {
		if _, err := AddCollision(body, link.Name, col, opts); err != nil {
			opts.Session.Fail(err)
		}
	}
	for _, vis := range link.Visuals {
		if _, err := AddVisual(body, link.Name, vis, opts); err != nil {
			opts.Session.Fail(err)
		}
	}
	for _, light := range link.Lights {
		lightPose, err := opts.resolvePose(light.SemanticPose(link.Name), link.Name)
		if err == nil {
			_, err = AddLight(body, light, lightPose, opts)
		}
		if err != nil {
			opts.Session.Fail(err)
		}
	}
	for _, sensor := range link.Sensors {
		if sensor.Type != sdf.SensorCamera || sensor.Camera == nil {
			opts.Session.Warnf("link %q: skipping %q sensor %q", link.Name, sensor.Type, sensor.Name)
			continue
		}
		if _, err := AddCamera(body, link.Name, sensor, opts); err != nil {
			opts.Session.Fail(err)
		}
	}

	parent.Bodies = append(parent.Bodies, body)
	return body, nil
}

// newInertial converts the inertial of a link. The rotation of the inertial pose is folded into the moment of
// inertia, so the MJCF inertial only has a position. A link without an inertial gets the SDFormat defaults.
func newInertial(link *sdf.Link, opts Options) (*mjcf.Inertial, error) {
	in := link.Inertial
	if in == nil {
		in = &sdf.Inertial{}
	}
	mass, fi := in.Values()
	pose, err := in.Pose.Parse()
	if err != nil {
		return nil, referenceframe.NewUnresolvableFrameError(link.Name, err)
	}
	inertial, warnings := spatialmath.NewInertialFromFullInertia(mass, fi, pose)
	for _, w := range warnings {
		opts.Session.Warnf("link %q: %s", link.Name, w)
	}
	mass, full, pos := inertial.FullInertia()
	return &mjcf.Inertial{
		Frame:       mjcf.Frame{Pos: mjcf.FormatVec3(pos)},
		Mass:        mass,
		FullInertia: utils.FloatSliceToSpaceDelimitedString(full[:]...),
	}, nil
}

// AddCamera converts a camera sensor into a camera of body. The horizontal field of view of the sensor becomes
// the vertical field of view of the camera for the same image size.
func AddCamera(body *mjcf.Body, link string, sensor *sdf.Sensor, opts Options) (*mjcf.Camera, error) {
	pose, err := opts.resolvePose(sensor.SemanticPose(link), link)
	if err != nil {
		return nil, err
	}
	width, height := sensor.Camera.ImageSize()
	fovy := mjcf.VerticalFOV(sensor.Camera.FieldOfView(), width, height)
	camera := &mjcf.Camera{
		Name:  opts.Session.UniqueName(sensor.Name, "camera"),
		Frame: mjcf.NewFrame(mjcf.CameraFromSDF(pose), opts.AngleUnit),
		FovY:  &fovy,
	}
	body.Cameras = append(body.Cameras, camera)
	return camera, nil
}
