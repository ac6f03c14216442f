// Package sdf reads and writes SDFormat documents and resolves the poses written in them.
package sdf

import (
	"encoding/xml"

	"github.com/samber/lo"

	"go.viam.com/sdfmjcf/referenceframe"
	"go.viam.com/sdfmjcf/spatialmath"
)

// Extension is the file extension associated with SDFormat files.
const Extension string = "sdf"

// Version is the SDFormat version written by Marshal.
const Version string = "1.9"

// Root is the top level <sdf> element.
type Root struct {
	XMLName xml.Name `xml:"sdf"`
	Version string   `xml:"version,attr"`
	Worlds  []*World `xml:"world"`
	Models  []*Model `xml:"model"`
}

// World is a <world> element.
type World struct {
	Name    string    `xml:"name,attr"`
	Plugins []*Plugin `xml:"plugin"`
	Lights  []*Light  `xml:"light"`
	Models  []*Model  `xml:"model"`
}

// Plugin is a <plugin> element. Only the identifying attributes are kept.
type Plugin struct {
	Filename string `xml:"filename,attr"`
	Name     string `xml:"name,attr"`
}

// Model is a <model> element.
type Model struct {
	Name          string   `xml:"name,attr"`
	CanonicalLink string   `xml:"canonical_link,attr,omitempty"`
	Static        *bool    `xml:"static,omitempty"`
	Pose          *Pose    `xml:"pose,omitempty"`
	Links         []*Link  `xml:"link"`
	Joints        []*Joint `xml:"joint"`
	Frames        []*Frame `xml:"frame"`
}

// IsStatic returns whether the model is immovable.
func (m *Model) IsStatic() bool {
	return m.Static != nil && *m.Static
}

// Link returns the link with the given name, if any.
func (m *Model) Link(name string) (*Link, bool) {
	return lo.Find(m.Links, func(l *Link) bool { return l.Name == name })
}

// Link is a <link> element.
type Link struct {
	Name       string       `xml:"name,attr"`
	Pose       *Pose        `xml:"pose,omitempty"`
	Inertial   *Inertial    `xml:"inertial,omitempty"`
	Collisions []*Collision `xml:"collision"`
	Visuals    []*Visual    `xml:"visual"`
	Sensors    []*Sensor    `xml:"sensor"`
	Lights     []*Light     `xml:"light"`
}

// Frame is an explicit <frame> element.
type Frame struct {
	Name       string `xml:"name,attr"`
	AttachedTo string `xml:"attached_to,attr,omitempty"`
	Pose       *Pose  `xml:"pose,omitempty"`
}

// Inertial is an <inertial> element. Absent mass and inertia take the SDFormat defaults of a unit mass with a
// unit diagonal moment of inertia.
type Inertial struct {
	Pose    *Pose    `xml:"pose,omitempty"`
	Mass    *float64 `xml:"mass,omitempty"`
	Inertia *Inertia `xml:"inertia,omitempty"`
}

// Inertia is an <inertia> element, the moment of inertia written in the frame of the inertial pose.
type Inertia struct {
	IXX float64 `xml:"ixx"`
	IXY float64 `xml:"ixy"`
	IXZ float64 `xml:"ixz"`
	IYY float64 `xml:"iyy"`
	IYZ float64 `xml:"iyz"`
	IZZ float64 `xml:"izz"`
}

// Values returns the mass and moment of inertia with defaults applied.
func (in *Inertial) Values() (float64, spatialmath.FullInertia) {
	mass := 1.0
	if in.Mass != nil {
		mass = *in.Mass
	}
	fi := spatialmath.DiagonalInertia(1, 1, 1)
	if i := in.Inertia; i != nil {
		fi = spatialmath.FullInertia{i.IXX, i.IYY, i.IZZ, i.IXY, i.IXZ, i.IYZ}
	}
	return mass, fi
}

// NewInertial builds an <inertial> element from a body-frame inertial.
func NewInertial(in spatialmath.Inertial, relativeTo string) *Inertial {
	mm := in.MassMatrix
	d, o := mm.DiagonalMoments, mm.OffDiagonalMoments
	var pose *Pose
	if in.Pose != nil {
		pose = NewPose(in.Pose, relativeTo)
	}
	return &Inertial{
		Pose: pose,
		Mass: &mm.Mass,
		Inertia: &Inertia{
			IXX: d.X, IYY: d.Y, IZZ: d.Z,
			IXY: o.X, IXZ: o.Y, IYZ: o.Z,
		},
	}
}

// Joint is a <joint> element.
type Joint struct {
	Name   string     `xml:"name,attr"`
	Type   string     `xml:"type,attr"`
	Pose   *Pose      `xml:"pose,omitempty"`
	Parent string     `xml:"parent"`
	Child  string     `xml:"child"`
	Axis   *JointAxis `xml:"axis,omitempty"`
	Axis2  *JointAxis `xml:"axis2,omitempty"`
}

// JointType returns the parsed type of the joint.
func (j *Joint) JointType() (referenceframe.JointType, error) {
	return referenceframe.ParseJointType(j.Type)
}

// JointAxis is an <axis> or <axis2> element.
type JointAxis struct {
	XYZ      *AxisXYZ       `xml:"xyz,omitempty"`
	Limit    *JointLimit    `xml:"limit,omitempty"`
	Dynamics *JointDynamics `xml:"dynamics,omitempty"`
}

// AxisXYZ is the direction of a joint axis, written in the frame named by ExpressedIn or the joint frame.
type AxisXYZ struct {
	ExpressedIn string `xml:"expressed_in,attr,omitempty"`
	Value       string `xml:",chardata"`
}

// JointLimit is a <limit> element. Rotational limits are in radians and translational limits in meters.
type JointLimit struct {
	Lower    *float64 `xml:"lower,omitempty"`
	Upper    *float64 `xml:"upper,omitempty"`
	Effort   *float64 `xml:"effort,omitempty"`
	Velocity *float64 `xml:"velocity,omitempty"`
}

// JointDynamics is a <dynamics> element.
type JointDynamics struct {
	Damping         *float64 `xml:"damping,omitempty"`
	Friction        *float64 `xml:"friction,omitempty"`
	SpringReference *float64 `xml:"spring_reference,omitempty"`
	SpringStiffness *float64 `xml:"spring_stiffness,omitempty"`
}

// Collision is a <collision> element.
type Collision struct {
	Name     string    `xml:"name,attr"`
	Pose     *Pose     `xml:"pose,omitempty"`
	Geometry *Geometry `xml:"geometry"`
}

// Visual is a <visual> element.
type Visual struct {
	Name     string    `xml:"name,attr"`
	Pose     *Pose     `xml:"pose,omitempty"`
	Geometry *Geometry `xml:"geometry"`
	Material *Material `xml:"material,omitempty"`
}

// Material is a <material> element. Colors are "r g b a" strings.
type Material struct {
	Ambient  string `xml:"ambient,omitempty"`
	Diffuse  string `xml:"diffuse,omitempty"`
	Specular string `xml:"specular,omitempty"`
	Emissive string `xml:"emissive,omitempty"`
}

// Geometry is a <geometry> element. Exactly one shape is expected to be set.
type Geometry struct {
	Box       *Box       `xml:"box,omitempty"`
	Capsule   *Capsule   `xml:"capsule,omitempty"`
	Cylinder  *Cylinder  `xml:"cylinder,omitempty"`
	Ellipsoid *Ellipsoid `xml:"ellipsoid,omitempty"`
	Plane     *Plane     `xml:"plane,omitempty"`
	Sphere    *Sphere    `xml:"sphere,omitempty"`
	Mesh      *Mesh      `xml:"mesh,omitempty"`
}

// Box is a <box> with its full side lengths.
type Box struct {
	Size string `xml:"size"`
}

// Capsule is a <capsule>. Length is the distance between the centers of its end caps.
type Capsule struct {
	Radius float64 `xml:"radius"`
	Length float64 `xml:"length"`
}

// Cylinder is a <cylinder> along the z axis.
type Cylinder struct {
	Radius float64 `xml:"radius"`
	Length float64 `xml:"length"`
}

// Ellipsoid is an <ellipsoid>.
type Ellipsoid struct {
	Radii string `xml:"radii"`
}

// Plane is a <plane> with its full extents.
type Plane struct {
	Normal string `xml:"normal"`
	Size   string `xml:"size"`
}

// Sphere is a <sphere>.
type Sphere struct {
	Radius float64 `xml:"radius"`
}

// Mesh is a <mesh>.
type Mesh struct {
	URI   string `xml:"uri"`
	Scale string `xml:"scale,omitempty"`
}

// Light types.
const (
	LightPoint       = "point"
	LightDirectional = "directional"
	LightSpot        = "spot"
)

// Light is a <light> element.
type Light struct {
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr"`
	Pose        *Pose        `xml:"pose,omitempty"`
	CastShadows *bool        `xml:"cast_shadows,omitempty"`
	Diffuse     string       `xml:"diffuse,omitempty"`
	Specular    string       `xml:"specular,omitempty"`
	Attenuation *Attenuation `xml:"attenuation,omitempty"`
	Direction   string       `xml:"direction,omitempty"`
	Spot        *Spot        `xml:"spot,omitempty"`
}

// Attenuation is the <attenuation> of a light.
type Attenuation struct {
	Range     float64 `xml:"range"`
	Constant  float64 `xml:"constant"`
	Linear    float64 `xml:"linear"`
	Quadratic float64 `xml:"quadratic"`
}

// Spot is the cone of a spot light. Angles are in radians.
type Spot struct {
	InnerAngle float64 `xml:"inner_angle"`
	OuterAngle float64 `xml:"outer_angle"`
	Falloff    float64 `xml:"falloff"`
}

// SensorCamera is the type of a camera sensor.
const SensorCamera = "camera"

// Sensor is a <sensor> element. Only camera sensors are converted.
type Sensor struct {
	Name       string   `xml:"name,attr"`
	Type       string   `xml:"type,attr"`
	Pose       *Pose    `xml:"pose,omitempty"`
	AlwaysOn   *bool    `xml:"always_on,omitempty"`
	UpdateRate *float64 `xml:"update_rate,omitempty"`
	Visualize  *bool    `xml:"visualize,omitempty"`
	Topic      string   `xml:"topic,omitempty"`
	Camera     *Camera  `xml:"camera,omitempty"`
}

// Camera is the <camera> of a camera sensor.
type Camera struct {
	HorizontalFOV *float64     `xml:"horizontal_fov,omitempty"`
	Image         *CameraImage `xml:"image,omitempty"`
	Clip          *CameraClip  `xml:"clip,omitempty"`
}

// Default camera image size when a <camera> gives none.
const (
	DefaultImageWidth  = 320
	DefaultImageHeight = 240
)

// DefaultHorizontalFOV is the horizontal field of view in radians of a <camera> without one.
const DefaultHorizontalFOV = 1.047

// FieldOfView returns the horizontal field of view in radians with the default applied.
func (c *Camera) FieldOfView() float64 {
	if c.HorizontalFOV == nil {
		return DefaultHorizontalFOV
	}
	return *c.HorizontalFOV
}

// ImageSize returns the image width and height with defaults applied.
func (c *Camera) ImageSize() (int, int) {
	if c.Image == nil || c.Image.Width <= 0 || c.Image.Height <= 0 {
		return DefaultImageWidth, DefaultImageHeight
	}
	return c.Image.Width, c.Image.Height
}

// CameraImage is the <image> of a camera.
type CameraImage struct {
	Width  int    `xml:"width"`
	Height int    `xml:"height"`
	Format string `xml:"format,omitempty"`
}

// CameraClip is the <clip> of a camera.
type CameraClip struct {
	Near float64 `xml:"near"`
	Far  float64 `xml:"far"`
}
