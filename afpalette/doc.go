// Package afpalette writes gradient collections as Affinity palettes
// (.afpalette).
//
// The container is little-endian and undocumented. Its header and footer
// repeat the file and body sizes, and the footer carries a CRC32 of the
// body, so the writer stages the whole file as chunks and patches the
// sizes in once everything is laid out. See [Encode].
//
// Affinity stores each stop's midpoint on the stop that opens a segment,
// Photoshop on the stop that closes it. Encode shifts midpoints by one
// stop so gradients read from a .grd file look the same.
package afpalette
