// Package dynamo provides the primitives shared by the wave background and
// the shader demo.
//
// The package defines the small value types and capabilities that every
// other package agrees on:
//
//   - [Vec2]: a 2D vector used for pointer positions and velocities
//   - [Rect]: a bounding rectangle in CSS pixels
//   - [Clock]: a monotonic time source that tests can drive by hand
//
// # Errors
//
// Domain errors are declared as sentinels in this package and wrapped with
// context by the caller, so hosts can branch with [errors.Is]:
//
//	if errors.Is(err, dynamo.ErrShaderCompile) {
//		log.Warn("sine demo disabled", zap.Error(err))
//	}
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. [ManualClock] is
// meant to be advanced from the goroutine that also reads it.
package dynamo
