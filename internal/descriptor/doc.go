// Package descriptor provides the low-level primitives for Photoshop
// action-descriptor streams: 4-byte tag scanning, bounds-checked
// big-endian reads, UTF-16 Unicode strings and a stream builder.
//
// Descriptor streams carry no length for most fields, so readers locate
// fields by scanning for their tag. A payload that happens to contain a
// tag's bytes produces a false match. Callers limit the damage by
// bounding every scan to the nearest enclosing record.
package descriptor
