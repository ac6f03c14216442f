package mjcftosdf

import (
	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/sdf"
)

// Camera sensor settings that MJCF cameras do not have.
const (
	cameraUpdateRate  = 30.0
	cameraImageFormat = "R8G8B8"
)

// AddCamera converts camera into a camera sensor of link. The sensor is turned to look where the camera looks,
// and the vertical field of view of the camera becomes the horizontal field of view of the default image.
func AddCamera(link *sdf.Link, camera *mjcf.Camera, opts Options) (*sdf.Sensor, error) {
	name := opts.Session.UniqueName(camera.Name, "camera")
	pose, err := opts.Compiler.ResolvePose(camera.Frame)
	if err != nil {
		return nil, referenceframe.NewUnresolvableFrameError(name, err)
	}
	width, height := sdf.DefaultImageWidth, sdf.DefaultImageHeight
	hfov := mjcf.HorizontalFOV(camera.FieldOfView(), width, height)
	alwaysOn, visualize, rate := true, true, cameraUpdateRate
	sensor := &sdf.Sensor{
		Name:       name,
		Type:       sdf.SensorCamera,
		Pose:       sdf.NewPose(mjcf.CameraToSDF(pose), ""),
		AlwaysOn:   &alwaysOn,
		UpdateRate: &rate,
		Visualize:  &visualize,
		Topic:      name,
		Camera: &sdf.Camera{
			HorizontalFOV: &hfov,
			Image:         &sdf.CameraImage{Width: width, Height: height, Format: cameraImageFormat},
		},
	}
	link.Sensors = append(link.Sensors, sensor)
	return sensor, nil
}
