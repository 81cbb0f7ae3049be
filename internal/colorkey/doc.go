// Package colorkey removes flat-colored backgrounds from images by making them
// transparent.
//
// The removal is border-seeded: only pixels connected to the image edge
// through a chain of 4-connected pixels that match the key color are cleared.
// A region inside the subject that happens to share the background color (a
// white shirt on a white background, say) is never touched because it does
// not reach the edge.
//
// # Matching
//
// A pixel matches when the channel-sum distance to the key color is within
// the threshold derived from the caller's tolerance:
//
//	|ΔR| + |ΔG| + |ΔB| <= tolerance * 3
//
// Tolerance is 0-100, so the largest threshold is 300. That is well below the
// maximum possible distance of 765; some colors never match even at 100.
//
// # Pixel Policy
//
// Only the alpha channel of removed pixels changes (to 0). Color channels are
// kept bit-for-bit everywhere, including under removed pixels, which is why
// the package works on *image.NRGBA (non-premultiplied) buffers and writes
// PNG. Pixels that are not removed keep their original alpha.
//
// # Concurrency
//
// All working state (the BFS queue and the visited bitset) is local to one
// call, so distinct images can be processed concurrently without locking.
// ProcessBatch does exactly that with a bounded worker group.
package colorkey
