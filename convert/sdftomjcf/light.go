package sdftomjcf

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// AddLight converts light, at pose relative to body, and adds it to body. MJCF lights have no orientation, so
// the light direction is rotated by the pose instead.
func AddLight(body *mjcf.Body, light *sdf.Light, pose spatialmath.Pose, opts Options) (*mjcf.Light, error) {
	dir := r3.Vector{Z: -1}
	values, err := utils.ParseFloats(light.Direction, 3)
	if err != nil {
		return nil, errors.Wrapf(err, "light %q: invalid direction", light.Name)
	}
	if values != nil {
		dir = r3.Vector{X: values[0], Y: values[1], Z: values[2]}
	}
	if dir.Norm() == 0 {
		return nil, errors.Errorf("light %q has a zero direction", light.Name)
	}
	dir = spatialmath.RotateVector(pose.Orientation(), dir.Normalize())

	directional := light.Type == sdf.LightDirectional
	mj := &mjcf.Light{
		Name:        opts.Session.UniqueName(light.Name, "light"),
		Pos:         mjcf.FormatVec3(pose.Point()),
		Dir:         mjcf.FormatVec3(dir),
		Directional: &directional,
		CastShadow:  light.CastShadows,
	}
	if mj.Diffuse, err = rgb(light.Diffuse); err != nil {
		return nil, errors.Wrapf(err, "light %q: invalid diffuse", light.Name)
	}
	if mj.Specular, err = rgb(light.Specular); err != nil {
		return nil, errors.Wrapf(err, "light %q: invalid specular", light.Name)
	}
	if a := light.Attenuation; a != nil {
		mj.Attenuation = utils.FloatSliceToSpaceDelimitedString(a.Constant, a.Linear, a.Quadratic)
	}
	if s := light.Spot; s != nil && light.Type == sdf.LightSpot {
		// the cutoff of an MJCF light is always in degrees
		cutoff := utils.RadToDeg(s.OuterAngle)
		exponent := s.Falloff
		mj.Cutoff = &cutoff
		mj.Exponent = &exponent
	}

	body.Lights = append(body.Lights, mj)
	return mj, nil
}

// rgb drops the alpha of an SDFormat color.
func rgb(color string) (string, error) {
	rgba, err := utils.ParseRGBA(color)
	if err != nil || rgba == nil {
		return "", err
	}
	return utils.FloatSliceToSpaceDelimitedString(rgba[:3]...), nil
}
