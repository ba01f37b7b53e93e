package gradkit

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultSplitSize is used by SplitByCount when the requested size is < 1.
const DefaultSplitSize = 50

var unsafeFileChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// SafeFileName replaces characters that are not allowed in file names on
// common platforms with underscores.
func SafeFileName(s string) string {
	return unsafeFileChars.Replace(s)
}

// SplitByGroup returns one collection per group, in first-seen order.
// Each part is named "<name> - <group>"; gradients without a group go to
// a part named after UngroupedName.
func SplitByGroup(c *Collection) []*Collection {
	var parts []*Collection
	index := make(map[string]*Collection)
	for _, g := range c.Gradients {
		group := g.Group
		if group == "" {
			group = UngroupedName
		}
		part, ok := index[group]
		if !ok {
			part = &Collection{Name: c.Name + " - " + SafeFileName(group)}
			index[group] = part
			parts = append(parts, part)
		}
		part.Gradients = append(part.Gradients, g)
	}
	return parts
}

// SplitByCount splits c into parts of at most size gradients, named
// "<name>_Part<k>" with k counting from 1. A size below 1 means
// DefaultSplitSize.
func SplitByCount(c *Collection, size int) []*Collection {
	if size < 1 {
		size = DefaultSplitSize
	}
	var parts []*Collection
	for start := 0; start < len(c.Gradients); start += size {
		end := min(start+size, len(c.Gradients))
		parts = append(parts, &Collection{
			Name:      c.Name + "_Part" + strconv.Itoa(len(parts)+1),
			Gradients: slices.Clone(c.Gradients[start:end]),
		})
	}
	return parts
}
