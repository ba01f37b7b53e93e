package grd

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/colorwav3/gradkit/internal/descriptor"
)

func TestExtractHierarchy(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  []string
	}{
		{"flat", []string{"a", "b"}, []string{"", ""}},
		{"one group", []string{"+Metals", "a", "b", "-", "c"}, []string{"Metals", "Metals", ""}},
		{
			"nested",
			[]string{"+Outer", "a", "+Inner", "b", "-", "c", "-", "d"},
			[]string{"Outer", "Inner", "Outer", ""},
		},
		{"unbalanced end", []string{"-", "a", "+G", "b"}, []string{"", "G"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b descriptor.Builder
			b.Raw(fixtureFile())
			fixtureHierarchy(&b, tt.items...)

			if diff := cmp.Diff(tt.want, ExtractHierarchy(b.Bytes())); diff != "" {
				t.Errorf("ExtractHierarchy() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractHierarchyAbsent(t *testing.T) {
	var noList descriptor.Builder
	noList.Raw([]byte("hierarchy"))
	noList.Tag(descriptor.MakeTag("Objc"))
	noList.Zeros(32)

	var truncated descriptor.Builder
	fixtureHierarchy(&truncated, "+G", "a")
	// A group object claiming a name far longer than the data.
	truncated.Tag(tagObjc)
	truncated.Uint32(150)
	truncated.Zeros(16)

	tests := []struct {
		name string
		data []byte
	}{
		{"no marker", fixtureFile()},
		{"marker without list", noList.Bytes()},
		{"marker at end", []byte("xxxxhierarchyVlLs")},
		{"truncated object", truncated.Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractHierarchy(tt.data); got != nil {
				t.Errorf("ExtractHierarchy() = %q, want nil", got)
			}
		})
	}
}

func TestExtractHierarchyGroupFields(t *testing.T) {
	var b descriptor.Builder
	fixtureHierarchy(&b)

	// A group whose first field is not text keeps an empty name.
	b.Tag(tagObjc)
	b.Unicode("")
	b.ClassID(classGroup)
	b.Uint32(2)
	b.Key(descriptor.MakeTag("Idnt"))
	b.Tag(tagLong)
	b.Uint32(7)
	b.Key(tagNm)
	b.Tag(tagTEXT)
	b.Unicode("Hidden")
	writeHierarchyObject(&b, classPreset, "a")

	// Name found after another text field.
	b.Tag(tagObjc)
	b.Unicode("")
	b.ClassID(classGroup)
	b.Uint32(2)
	b.Key(descriptor.MakeTag("Cmnt"))
	b.Tag(tagTEXT)
	b.Unicode("note")
	b.Key(tagNm)
	b.Tag(tagTEXT)
	b.Unicode("Second")
	writeHierarchyObject(&b, classPreset, "b")

	want := []string{"", "Second"}
	if diff := cmp.Diff(want, ExtractHierarchy(b.Bytes())); diff != "" {
		t.Errorf("ExtractHierarchy() mismatch (-want +got):\n%s", diff)
	}
}
