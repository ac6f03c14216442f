// Package mjcf reads and writes MuJoCo MJCF documents and resolves the poses written in them.
package mjcf

import (
	"encoding/xml"
)

// Extension is the file extension associated with MJCF files.
const Extension string = "xml"

// Geom groups used to tell visual geoms from collision geoms.
const (
	VisualGeomGroup    = 0
	CollisionGeomGroup = 3
)

// Joint types.
const (
	JointHinge = "hinge"
	JointSlide = "slide"
	JointBall  = "ball"
	JointFree  = "free"
)

// Geom types.
const (
	GeomPlane     = "plane"
	GeomSphere    = "sphere"
	GeomCapsule   = "capsule"
	GeomEllipsoid = "ellipsoid"
	GeomCylinder  = "cylinder"
	GeomBox       = "box"
	GeomMesh      = "mesh"
)

// Mujoco is the top level <mujoco> element.
type Mujoco struct {
	XMLName   xml.Name  `xml:"mujoco"`
	Model     string    `xml:"model,attr,omitempty"`
	Compiler  *Compiler `xml:"compiler,omitempty"`
	Asset     *Asset    `xml:"asset,omitempty"`
	Worldbody *Body     `xml:"worldbody"`
}

// Asset is the <asset> element.
type Asset struct {
	Meshes    []*MeshAsset `xml:"mesh"`
	Materials []*Material  `xml:"material"`
}

// MeshAsset is a <mesh> asset. Its name defaults to the file name without extension.
type MeshAsset struct {
	Name  string `xml:"name,attr,omitempty"`
	File  string `xml:"file,attr"`
	Scale string `xml:"scale,attr,omitempty"`
}

// Material is a <material> asset.
type Material struct {
	Name string `xml:"name,attr"`
	RGBA string `xml:"rgba,attr,omitempty"`
}

// Frame holds the position and orientation attributes shared by bodies, geoms, cameras and inertials. At most
// one orientation attribute may be set.
type Frame struct {
	Pos       string `xml:"pos,attr,omitempty"`
	Quat      string `xml:"quat,attr,omitempty"`
	AxisAngle string `xml:"axisangle,attr,omitempty"`
	Euler     string `xml:"euler,attr,omitempty"`
	XYAxes    string `xml:"xyaxes,attr,omitempty"`
	ZAxis     string `xml:"zaxis,attr,omitempty"`
}

// Body is a <body>, or the <worldbody> when it is the root of the tree.
type Body struct {
	Name string `xml:"name,attr,omitempty"`
	Frame
	Inertial  *Inertial  `xml:"inertial,omitempty"`
	FreeJoint *FreeJoint `xml:"freejoint,omitempty"`
	Joints    []*Joint   `xml:"joint"`
	Geoms     []*Geom    `xml:"geom"`
	Cameras   []*Camera  `xml:"camera"`
	Lights    []*Light   `xml:"light"`
	Bodies    []*Body    `xml:"body"`
}

// Inertial is an <inertial>. Only one of DiagInertia and FullInertia is expected to be set.
type Inertial struct {
	Frame
	Mass        float64 `xml:"mass,attr"`
	DiagInertia string  `xml:"diaginertia,attr,omitempty"`
	FullInertia string  `xml:"fullinertia,attr,omitempty"`
}

// JointElement is an element that adds degrees of freedom to a body, a <joint> or a <freejoint>.
type JointElement interface {
	Tag() string
	JointName() string
}

// Joint is a <joint>. An empty type is a hinge.
type Joint struct {
	Name         string   `xml:"name,attr,omitempty"`
	Type         string   `xml:"type,attr,omitempty"`
	Pos          string   `xml:"pos,attr,omitempty"`
	Axis         string   `xml:"axis,attr,omitempty"`
	Limited      string   `xml:"limited,attr,omitempty"`
	Range        string   `xml:"range,attr,omitempty"`
	Damping      *float64 `xml:"damping,attr,omitempty"`
	FrictionLoss *float64 `xml:"frictionloss,attr,omitempty"`
	Stiffness    *float64 `xml:"stiffness,attr,omitempty"`
	SpringRef    *float64 `xml:"springref,attr,omitempty"`
}

// Tag returns the element name.
func (j *Joint) Tag() string { return "joint" }

// JointName returns the name of the joint.
func (j *Joint) JointName() string { return j.Name }

// JointType returns the type of the joint with the hinge default applied.
func (j *Joint) JointType() string {
	if j.Type == "" {
		return JointHinge
	}
	return j.Type
}

// IsLimited reports whether the range of the joint is enforced. "auto" and an unset value follow the
// autolimits behavior: the joint is limited when it has a range.
func (j *Joint) IsLimited() bool {
	switch j.Limited {
	case "true":
		return true
	case "false":
		return false
	default:
		return j.Range != ""
	}
}

// FreeJoint is a <freejoint>.
type FreeJoint struct {
	Name string `xml:"name,attr,omitempty"`
}

// Tag returns the element name.
func (j *FreeJoint) Tag() string { return "freejoint" }

// JointName returns the name of the joint.
func (j *FreeJoint) JointName() string { return j.Name }

// Geom is a <geom>. An empty type is a sphere.
type Geom struct {
	Name string `xml:"name,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
	Size string `xml:"size,attr,omitempty"`
	Frame
	FromTo   string   `xml:"fromto,attr,omitempty"`
	Group    *int     `xml:"group,attr,omitempty"`
	Mesh     string   `xml:"mesh,attr,omitempty"`
	Material string   `xml:"material,attr,omitempty"`
	RGBA     string   `xml:"rgba,attr,omitempty"`
	Mass     *float64 `xml:"mass,attr,omitempty"`
}

// GeomType returns the type of the geom with the sphere default applied.
func (g *Geom) GeomType() string {
	if g.Type == "" {
		return GeomSphere
	}
	return g.Type
}

// Light is a <light>. Lights point along their dir attribute, (0, 0, -1) by default.
type Light struct {
	Name        string   `xml:"name,attr,omitempty"`
	Pos         string   `xml:"pos,attr,omitempty"`
	Dir         string   `xml:"dir,attr,omitempty"`
	Directional *bool    `xml:"directional,attr,omitempty"`
	CastShadow  *bool    `xml:"castshadow,attr,omitempty"`
	Diffuse     string   `xml:"diffuse,attr,omitempty"`
	Specular    string   `xml:"specular,attr,omitempty"`
	Attenuation string   `xml:"attenuation,attr,omitempty"`
	Cutoff      *float64 `xml:"cutoff,attr,omitempty"`
	Exponent    *float64 `xml:"exponent,attr,omitempty"`
}

// Camera is a <camera>. It looks along its -z axis with +y up.
type Camera struct {
	Name string `xml:"name,attr,omitempty"`
	Frame
	// FovY is the vertical field of view, always in degrees.
	FovY *float64 `xml:"fovy,attr,omitempty"`
}

// DefaultFovY is the vertical field of view of a camera without a fovy attribute.
const DefaultFovY = 45.0

// FieldOfView returns the vertical field of view in degrees with the default applied.
func (c *Camera) FieldOfView() float64 {
	if c.FovY == nil {
		return DefaultFovY
	}
	return *c.FovY
}
