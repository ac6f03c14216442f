package referenceframe

import "strings"

// JointType is the kind of motion a joint allows between its parent and child frames. The values are the
// SDFormat spellings.
type JointType string

// The joint types known to the converters. Only some of them have an MJCF equivalent.
const (
	FixedJoint      JointType = "fixed"
	RevoluteJoint   JointType = "revolute"
	ContinuousJoint JointType = "continuous"
	PrismaticJoint  JointType = "prismatic"
	BallJoint       JointType = "ball"
	UniversalJoint  JointType = "universal"
	FreeJoint       JointType = "free"
	GearboxJoint    JointType = "gearbox"
	ScrewJoint      JointType = "screw"
	Revolute2Joint  JointType = "revolute2"
)

// ParseJointType returns the JointType named by s, ignoring case and surrounding whitespace.
func ParseJointType(s string) (JointType, error) {
	t := JointType(strings.ToLower(strings.TrimSpace(s)))
	//nolint:exhaustive
	switch t {
	case FixedJoint, RevoluteJoint, ContinuousJoint, PrismaticJoint, BallJoint,
		UniversalJoint, FreeJoint, GearboxJoint, ScrewJoint, Revolute2Joint:
		return t, nil
	default:
		return "", NewUnsupportedJointTypeError(s)
	}
}

// IsRotational returns whether positions and limits of the joint are angles.
func (t JointType) IsRotational() bool {
	return t == RevoluteJoint || t == ContinuousJoint || t == Revolute2Joint
}

func (t JointType) String() string {
	return string(t)
}
