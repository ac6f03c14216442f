package mjcf

import (
	"math"

	"go.viam.com/sdfmjcf/spatialmath"
	"go.viam.com/sdfmjcf/utils"
)

// sdfCameraInMJCFCamera is the SDFormat camera frame (looking along +x, +z up) written in the MJCF camera
// frame (looking along -z, +y up).
var sdfCameraInMJCFCamera = spatialmath.NewRotationMatrix([9]float64{
	0, -1, 0,
	0, 0, 1,
	-1, 0, 0,
})

// CameraToSDF returns the pose of the SDFormat camera sensor that sees what an MJCF camera at p sees.
func CameraToSDF(p spatialmath.Pose) spatialmath.Pose {
	return spatialmath.Compose(p, spatialmath.NewPoseFromOrientation(sdfCameraInMJCFCamera))
}

// CameraFromSDF returns the pose of the MJCF camera that sees what an SDFormat camera sensor at p sees.
func CameraFromSDF(p spatialmath.Pose) spatialmath.Pose {
	inv := spatialmath.OrientationInverse(sdfCameraInMJCFCamera)
	return spatialmath.Compose(p, spatialmath.NewPoseFromOrientation(inv))
}

// HorizontalFOV converts a vertical field of view in degrees to a horizontal one in radians for an image of
// the given size.
func HorizontalFOV(fovyDegrees float64, width, height int) float64 {
	vfov := utils.DegToRad(fovyDegrees)
	return 2 * math.Atan(math.Tan(vfov/2)*float64(width)/float64(height))
}

// VerticalFOV converts a horizontal field of view in radians to a vertical one in degrees for an image of the
// given size.
func VerticalFOV(hfov float64, width, height int) float64 {
	vfov := 2 * math.Atan(math.Tan(hfov/2)*float64(height)/float64(width))
	return utils.RadToDeg(vfov)
}
