// Package gear holds the registered gears of an assembly and their geometry.
//
// A [Set] is filled once through [Set.Register] and is read-only afterwards:
//
//   - [Gear]: tooth count, center, radius and the [Renderable] it drives
//   - [Set.HitTest]: first gear (registration order) containing a local point
//   - [RenderedAngle]: per-gear rotation derived from the shared accumulated angle
//
// The tooth count sign encodes direction relative to the mesh baseline and its
// magnitude the speed ratio, so meshed neighbours carry opposite signs.
package gear
