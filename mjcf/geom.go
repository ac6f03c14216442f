package mjcf

import (
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// Size3 returns the values of the size attribute. Geoms read between one and three of them depending on their
// type; missing values are zero.
func (g *Geom) Size3() ([3]float64, error) {
	var size [3]float64
	fields := strings.Fields(g.Size)
	if len(fields) > 3 {
		return size, errors.Errorf("geom %q has %d size values", g.Name, len(fields))
	}
	values, err := utils.ParseFloats(g.Size, len(fields))
	if err != nil {
		return size, errors.Wrapf(err, "geom %q: invalid size", g.Name)
	}
	copy(size[:], values)
	return size, nil
}

// FromToPose returns the pose of a geom written with a fromto attribute, relative to its body, and the
// distance between its two end points. The z axis of the pose points from the first point to the second and
// its position is halfway between them. ok is false when the geom has no fromto attribute.
func (g *Geom) FromToPose() (pose spatialmath.Pose, length float64, ok bool, err error) {
	if g.FromTo == "" {
		return nil, 0, false, nil
	}
	v, err := parseExact(g.FromTo, 6)
	if err != nil {
		return nil, 0, true, errors.Wrapf(err, "geom %q: invalid fromto", g.Name)
	}
	from := r3.Vector{X: v[0], Y: v[1], Z: v[2]}
	to := r3.Vector{X: v[3], Y: v[4], Z: v[5]}
	dir := to.Sub(from)
	length = dir.Norm()
	if length == 0 {
		return nil, 0, true, errors.Errorf("geom %q: fromto end points coincide", g.Name)
	}
	center := from.Add(to).Mul(0.5)
	return spatialmath.NewPose(center, minimalRotationFromZ(dir.Normalize())), length, true, nil
}
