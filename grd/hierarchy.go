package grd

import (
	"github.com/colorwav3/gradkit"
	"github.com/colorwav3/gradkit/internal/descriptor"
)

const (
	// The hierarchy block sits near the end of the file; only this many
	// trailing bytes are searched for it.
	hierarchyWindow = 100000

	// An 'Objc' tag is taken to start an object only if the name length
	// that follows it is below this bound.
	maxObjectNameLen = 200
)

var hierarchyMarker = []byte("hierarchy")

// ExtractHierarchy returns the preset folder of every gradient, indexed
// by preset order. Presets outside any folder map to "". A file without a
// readable hierarchy block yields nil.
//
// Folders nest in the file but not in the result: a preset belongs to its
// innermost folder.
func ExtractHierarchy(data []byte) []string {
	start := max(0, len(data)-hierarchyWindow)
	pos := descriptor.IndexBytes(data, start, hierarchyMarker)
	if pos < 0 || pos >= len(data)-20 {
		gradkit.Logger().Debug("grd: no hierarchy block in trailing window", "window", hierarchyWindow)
		return nil
	}
	list := pos + len(hierarchyMarker)
	if tag, ok := descriptor.Uint32(data, list); !ok || descriptor.Tag(tag) != tagVlLs {
		return nil
	}
	items, _ := descriptor.Uint32(data, list+4)
	gradkit.Logger().Debug("grd: hierarchy block", "offset", pos, "items", items)

	return walkHierarchy(data, objectOffsets(data, list+8))
}

// objectOffsets returns the offset of every plausible 'Objc' tag at or
// after from.
func objectOffsets(data []byte, from int) []int {
	var offsets []int
	for i := from; i < len(data)-8; i++ {
		tag, _ := descriptor.Uint32(data, i)
		if descriptor.Tag(tag) != tagObjc {
			continue
		}
		if n, _ := descriptor.Uint32(data, i+4); n < maxObjectNameLen {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// groupStack tracks the open folders while walking the hierarchy.
type groupStack []string

func (s *groupStack) push(name string) { *s = append(*s, name) }

func (s *groupStack) pop() {
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

func (s groupStack) top() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

// walkHierarchy replays group-begin, group-end and preset objects in
// order. Any object whose header runs past the data abandons the walk.
func walkHierarchy(data []byte, objects []int) []string {
	var (
		stack   groupStack
		presets []string
	)
	for _, off := range objects {
		class, fields, ok := objectHeader(data, off)
		if !ok {
			gradkit.Logger().Warn("grd: truncated hierarchy object, ignoring groups", "offset", off)
			return nil
		}
		switch class {
		case classGroup:
			stack.push(groupName(data, fields))
		case classGroupEnd:
			stack.pop()
		case classPreset:
			presets = append(presets, stack.top())
		}
	}
	return presets
}

// objectHeader skips the object's display name and reads its class. It
// returns the offset of the field count that follows.
func objectHeader(data []byte, off int) (class string, next int, ok bool) {
	n, ok := descriptor.Uint32(data, off+4)
	if !ok {
		return "", off, false
	}
	p := off + 8 + int(n)*2
	if p > len(data) {
		return "", off, false
	}
	return descriptor.ClassID(data, p)
}

// groupName reads the 'Nm' text field of a group object. It stops at the
// first field that is not text.
func groupName(data []byte, off int) string {
	count, ok := descriptor.Uint32(data, off)
	if !ok {
		return ""
	}
	var name string
	p := off + 4
	for range count {
		key, next, ok := descriptor.ClassID(data, p)
		if !ok {
			break
		}
		typ, ok := descriptor.Uint32(data, next)
		if !ok || descriptor.Tag(typ) != tagTEXT {
			break
		}
		text, after, ok := descriptor.TextField(data, next+4)
		if !ok {
			break
		}
		if key == "Nm" {
			name = text
		}
		p = after
	}
	return name
}
