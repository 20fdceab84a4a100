package keywordset

import "strings"

// Keyword is one member of a keyword set.
type Keyword struct {
	ID   string `json:"id" yaml:"id"`
	AtID string `json:"@id" yaml:"@id"`
}

// Set is a named group of keywords, e.g. the main categories of general events.
type Set struct {
	ID       string    `json:"id" yaml:"id"`
	Keywords []Keyword `json:"keywords" yaml:"keywords"`
}

// Contains reports whether ref names one of the set's keywords by @id or id.
func (s Set) Contains(ref string) bool {
	if ref == "" {
		return false
	}
	for _, kw := range s.Keywords {
		if kw.AtID == ref || kw.ID == ref {
			return true
		}
	}
	return false
}

// Taxonomy is the list of keyword sets the category rules consult.
type Taxonomy []Set

// Lookup finds a set by name. A set whose id is either name or ends in
// ":"+name matches, so "topic_content" finds "helsinki:topic_content".
func (t Taxonomy) Lookup(name string) (Set, bool) {
	if name == "" {
		return Set{}, false
	}
	for _, s := range t {
		if s.ID == name || strings.HasSuffix(s.ID, ":"+name) {
			return s, true
		}
	}
	return Set{}, false
}

// ContainsAny reports whether any ref belongs to the named set.
// A missing set contains nothing.
func (t Taxonomy) ContainsAny(name string, refs ...string) bool {
	s, ok := t.Lookup(name)
	if !ok {
		return false
	}
	for _, ref := range refs {
		if s.Contains(ref) {
			return true
		}
	}
	return false
}
