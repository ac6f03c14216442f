package referenceframe

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnresolvableFrame is returned when a pose or axis references a frame that cannot be found or
	// resolved. It only aborts the node it was raised for.
	ErrUnresolvableFrame = errors.New("unresolvable frame")

	// ErrUnsupportedJointType is returned for joint types that have no equivalent in the destination format.
	ErrUnsupportedJointType = errors.New("unsupported joint type")

	// ErrStructural is returned when a document cannot be converted at all, such as a cyclic kinematic tree.
	ErrStructural = errors.New("malformed kinematic structure")
)

// NewParentFrameMissingError returns an error indicating that a frame is missing a parent.
func NewParentFrameMissingError(name string) error {
	return NewStructuralError(fmt.Sprintf("parent frame of %q is missing", name))
}

// NewUnresolvableFrameError returns an error indicating that the pose of the named frame could not be resolved.
func NewUnresolvableFrameError(name string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w %q", ErrUnresolvableFrame, name)
	}
	return fmt.Errorf("%w %q: %w", ErrUnresolvableFrame, name, cause)
}

// NewUnsupportedJointTypeError returns an error indicating that a given joint type is not supported.
func NewUnsupportedJointTypeError(jointType string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedJointType, jointType)
}

// NewStructuralError returns an error describing why the kinematic structure of a document is malformed.
func NewStructuralError(msg string) error {
	return fmt.Errorf("%w: %s", ErrStructural, msg)
}
