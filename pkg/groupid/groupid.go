// Package groupid builds and inspects hierarchical layer group identifiers.
//
// A group id is the Prefix followed by one or more segments joined by
// Separator, e.g. "$roads/labels/minor". Every group id implies its
// ancestors: "$roads/labels/minor" lives under "$roads/labels" and "$roads".
package groupid

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Prefix marks a string as a group id rather than a layer id.
	Prefix = "$"
	// Separator joins the segments of a nested group id.
	Separator = "/"
)

// Normalize prepends Prefix to id unless it is empty or already prefixed.
func Normalize(id string) string {
	if id != "" && !strings.HasPrefix(id, Prefix) {
		return Prefix + id
	}
	return id
}

// Compose joins segments into a group id. Compose("a", "b") equals
// Normalize("a/b"). No segments yields the empty string.
func Compose(segments ...string) string {
	if len(segments) == 0 {
		return ""
	}
	return Prefix + strings.Join(segments, Separator)
}

// Segments splits a group id into its path parts, without the prefix.
func Segments(id string) []string {
	id = strings.TrimPrefix(Normalize(id), Prefix)
	if id == "" {
		return nil
	}
	return strings.Split(id, Separator)
}

// Depth is the number of segments in id.
func Depth(id string) int {
	return len(Segments(id))
}

// Ancestry returns every group id implied by id, from the top-level group
// down to id itself.
func Ancestry(id string) []string {
	segments := Segments(id)
	out := make([]string, 0, len(segments))
	for i := range segments {
		out = append(out, Compose(segments[:i+1]...))
	}
	return out
}

// Parent returns the enclosing group of id, or "" for a top-level group.
func Parent(id string) string {
	segments := Segments(id)
	if len(segments) < 2 {
		return ""
	}
	return Compose(segments[:len(segments)-1]...)
}

// TagsFor merges the ancestry of group into existing. Existing tags keep
// their order and are never dropped; new ancestors follow, outermost first.
func TagsFor(existing []string, group string) []string {
	out := make([]string, 0, len(existing)+Depth(group))
	seen := make(map[string]struct{}, cap(out))
	add := func(tag string) {
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	for _, tag := range existing {
		add(tag)
	}
	for _, tag := range Ancestry(group) {
		add(tag)
	}
	return out
}

// Title renders id as a human readable label, e.g. "Roads / Labels".
func Title(id string) string {
	segments := Segments(id)
	caser := cases.Title(language.English)
	words := make([]string, len(segments))
	for i, segment := range segments {
		words[i] = caser.String(strings.ReplaceAll(segment, "-", " "))
	}
	return strings.Join(words, " / ")
}
