// Package motion drives a gear assembly from two independent event streams.
//
// An [Engine] owns the simulated mesh speed and the shared accumulated angle.
// [Engine.OnClockTick] decays the speed toward the base magnitude, integrates
// the angle and writes every gear's rotation. [Engine.OnPointerSample]
// hit-tests the pointer and, once the same gear has been hovered on two
// consecutive samples, blends the drag-inferred angular velocity into the
// speed.
//
// # Thread Safety
//
// Engine is NOT safe for concurrent use. Both handlers must be called from a
// single goroutine; see assembly.Run for a loop that serializes the streams.
package motion
