package motion

import "github.com/go-gl/mathgl/mgl64"

// Intent is one frame of player input, expressed in camera space. The
// controller translates it into world-space movement using the camera
// rotation it carries.
type Intent struct {
	// MoveForward and MoveRight are the raw movement axes, each nominally in
	// [-1, 1]. The combined vector is clamped to unit length before use.
	MoveForward float64
	MoveRight   float64

	// CameraRotation is the orientation movement is expressed relative to.
	CameraRotation mgl64.Quat

	// JumpPressed is the rising edge of the jump control for this frame.
	JumpPressed bool

	// CrouchPressed and CrouchReleased are the edges of the crouch control.
	CrouchPressed  bool
	CrouchReleased bool
}
