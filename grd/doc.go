// Package grd reads and writes Photoshop gradient files (.grd).
//
// Only version 5 files (Photoshop 6 and later) are supported. These hold
// an action descriptor: a loosely structured big-endian stream of tagged
// fields. The format is not published. Decode locates fields by scanning
// for their 4-byte tags within the bounds of each gradient record, so it
// tolerates fields it does not understand.
//
// # Decoding
//
//	c, err := grd.Decode(data, grd.WithName("Metals"))
//
// Header problems (bad signature, unsupported version, unknown descriptor
// class) abort the whole decode. A problem inside one gradient record only
// drops that gradient; see [WithRecordErrorHandler].
//
// Colour stops may be stored as RGB, HSB, CMYK, Lab, greyscale or Book
// Color. All of them are converted to sRGB. Book Color is approximated: if
// Photoshop embedded an RGB fallback it is used, otherwise the stop is
// neutral grey.
//
// Gradients carry separate colour and transparency tracks. When both are
// present they are merged into one stop list by sampling each track at
// every stop position of either track.
//
// # Groups
//
// Photoshop CC keeps preset folders in a trailing "hierarchy" block. When
// present, [Decode] assigns each gradient its folder name and fills
// Collection.Groups. [ExtractHierarchy] exposes the raw mapping.
//
// # Encoding
//
// [Encode] writes RGB stops plus a transparency track, and a hierarchy
// block when any gradient has a group. The output is read back losslessly
// by Decode, up to the format's 1/4096 location resolution.
package grd
