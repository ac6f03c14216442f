package mjcftosdf

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/sdf"
	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// MJCF light defaults.
const (
	defaultLightDiffuse     = "0.7 0.7 0.7"
	defaultLightSpecular    = "0.3 0.3 0.3"
	defaultLightAttenuation = "1 0 0"
	// defaultLightRange is the range of SDFormat lights, which MJCF lights do not have.
	defaultLightRange = 10.0
)

// NewLight converts an MJCF light into an SDFormat light posed relative to the frame of the element holding it.
// Directional lights stay directional; other lights are spot lights when they have a cutoff and point lights
// otherwise.
func NewLight(light *mjcf.Light, opts Options) (*sdf.Light, error) {
	pos, err := utils.ParseFloats(light.Pos, 3)
	if err != nil {
		return nil, errors.Wrapf(err, "light %q: invalid pos", light.Name)
	}
	dir := r3.Vector{Z: -1}
	values, err := utils.ParseFloats(light.Dir, 3)
	if err != nil {
		return nil, errors.Wrapf(err, "light %q: invalid dir", light.Name)
	}
	if values != nil {
		dir = r3Vector(values)
	}
	if dir.Norm() == 0 {
		return nil, errors.Errorf("light %q has a zero direction", light.Name)
	}
	dir = dir.Normalize()

	var position r3.Vector
	if pos != nil {
		position = r3Vector(pos)
	}
	castShadows := true
	if light.CastShadow != nil {
		castShadows = *light.CastShadow
	}
	out := &sdf.Light{
		Name:        opts.Session.UniqueName(light.Name, "light"),
		Type:        sdf.LightPoint,
		Pose:        sdf.NewPose(spatialmath.NewPoseFromPoint(position), ""),
		CastShadows: &castShadows,
		Direction:   utils.FloatSliceToSpaceDelimitedString(dir.X, dir.Y, dir.Z),
	}
	if out.Diffuse, err = rgba(light.Diffuse, defaultLightDiffuse); err != nil {
		return nil, errors.Wrapf(err, "light %q: invalid diffuse", light.Name)
	}
	if out.Specular, err = rgba(light.Specular, defaultLightSpecular); err != nil {
		return nil, errors.Wrapf(err, "light %q: invalid specular", light.Name)
	}
	attenuation := light.Attenuation
	if attenuation == "" {
		attenuation = defaultLightAttenuation
	}
	a, err := utils.ParseFloats(attenuation, 3)
	if err != nil {
		return nil, errors.Wrapf(err, "light %q: invalid attenuation", light.Name)
	}
	out.Attenuation = &sdf.Attenuation{Range: defaultLightRange, Constant: a[0], Linear: a[1], Quadratic: a[2]}

	switch {
	case light.Directional != nil && *light.Directional:
		out.Type = sdf.LightDirectional
	case light.Cutoff != nil:
		out.Type = sdf.LightSpot
		spot := &sdf.Spot{OuterAngle: utils.DegToRad(*light.Cutoff)}
		if light.Exponent != nil {
			spot.Falloff = *light.Exponent
		}
		out.Spot = spot
	}
	return out, nil
}

// rgba adds an alpha of 1 to an MJCF color, or to def when color is empty.
func rgba(color, def string) (string, error) {
	if color == "" {
		color = def
	}
	values, err := utils.ParseFloats(color, 3)
	if err != nil {
		return "", err
	}
	return utils.FloatSliceToSpaceDelimitedString(append(values, 1)...), nil
}

func r3Vector(v []float64) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
