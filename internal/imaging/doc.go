// Package imaging loads, inspects and renders the images that background
// removal works on.
//
// It covers decoding (PNG, JPEG, GIF, BMP, WebP) with an optional TTL cache,
// color sampling and parsing of key colors, border-color suggestions, trimming
// transparent margins and checkerboard previews. The background removal
// itself lives in the colorkey package.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. For
// regions, (x1,y1) is inclusive and (x2,y2) is exclusive.
//
// # Color Values
//
// Colors are read non-premultiplied, so a fully transparent pixel still
// reports the RGB stored under it. Distances between colors are channel sums
// |ΔR|+|ΔG|+|ΔB| in the range 0-765.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Cached images are shared and must
// not be modified; every function here that produces pixels returns a new
// buffer.
package imaging
