// Package viz composites the layered wave background onto a 2D drawing
// context.
//
// The drawing model is the browser canvas: a [Context] exposes the subset
// of CanvasRenderingContext2D the background needs, and a [Surface] owns
// the context together with its CSS size and device pixel ratio. Hosts
// supply both: a real canvas in the browser, a software rasterizer on the
// desktop and in headless renders, an SVG recorder for exports.
//
//   - [Compositor]: clears the surface and fills one path per palette colour
//   - [LayerShape]: the pure geometry of a single layer
//   - [Layout]: the per-layer constants the geometry is built from
package viz
