// Package gradkit converts colour gradients between authoring-tool file formats.
//
// # Overview
//
// gradkit reads Photoshop gradient files (.grd, version 5 descriptors) and
// writes them back out either as Photoshop gradients or as Affinity palettes
// (.afpalette). All formats meet in a small shared model:
//
//   - [ColorStop]: a position-tagged RGBA sample with a midpoint bias
//   - [Gradient]: a named, ordered list of stops, optionally in a group
//   - [Collection]: the gradients of one file plus a group summary
//
// # Quick Start
//
//	import (
//	    "github.com/colorwav3/gradkit/afpalette"
//	    "github.com/colorwav3/gradkit/grd"
//	)
//
//	c, err := grd.Decode(data, grd.WithName("Brushes"))
//	if err != nil {
//	    return err
//	}
//	out, err := afpalette.Encode(c)
//
// # Architecture
//
// The library is organized into:
//   - Public API: the stop model, sampling and splitting (this package)
//   - Codecs: grd (parse + write), afpalette (write)
//   - Internal: descriptor (tag scanning, binary primitives), color (HSB, CMYK, Lab)
//
// All parsing and writing is synchronous over fully materialized byte
// slices. Calls share no mutable state and are safe to run concurrently on
// distinct inputs.
//
// # Logging
//
// gradkit is silent by default. See [SetLogger].
package gradkit

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
