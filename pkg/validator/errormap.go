package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/eventkit/pkg/rules"
)

// ErrorMap maps a field name to its failures. A field missing from the map
// is valid; no entry is ever empty, at any depth.
//
// ErrorMap implements error so it can be returned from handlers, but an
// empty ErrorMap means "valid" and callers compare with IsEmpty.
type ErrorMap map[string]FieldErrors

// FieldErrors holds either the failing rules of a field or a nested map:
// per locale for localized fields, per index for offers and videos, per
// sub-event key for sub_events.
type FieldErrors struct {
	Rules  []rules.Name
	Nested ErrorMap
}

// Violation is one failing rule at a dotted path.
type Violation struct {
	Path string     `json:"path"`
	Rule rules.Name `json:"rule"`
}

func (f FieldErrors) IsEmpty() bool {
	return len(f.Rules) == 0 && len(f.Nested) == 0
}

// MarshalJSON renders rule lists as arrays and nested maps as objects.
func (f FieldErrors) MarshalJSON() ([]byte, error) {
	if len(f.Rules) == 0 && f.Nested != nil {
		return json.Marshal(f.Nested)
	}
	if f.Rules == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f.Rules)
}

// MarshalYAML mirrors MarshalJSON.
func (f FieldErrors) MarshalYAML() (any, error) {
	if len(f.Rules) == 0 && f.Nested != nil {
		return f.Nested, nil
	}
	if f.Rules == nil {
		return []rules.Name{}, nil
	}
	return f.Rules, nil
}

func (f *FieldErrors) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty field errors")
	}
	switch data[0] {
	case '[':
		f.Nested = nil
		return json.Unmarshal(data, &f.Rules)
	case '{':
		f.Rules = nil
		return json.Unmarshal(data, &f.Nested)
	default:
		return fmt.Errorf("field errors must be an array or an object, got %s", data)
	}
}

func (m ErrorMap) IsEmpty() bool {
	return len(m) == 0
}

// Get walks path and returns the node there.
func (m ErrorMap) Get(path ...string) (FieldErrors, bool) {
	if len(path) == 0 {
		return FieldErrors{}, false
	}
	cur := m
	for i, key := range path {
		fe, ok := cur[key]
		if !ok {
			return FieldErrors{}, false
		}
		if i == len(path)-1 {
			return fe, true
		}
		cur = fe.Nested
	}
	return FieldErrors{}, false
}

// Has reports whether anything failed at or below path.
func (m ErrorMap) Has(path ...string) bool {
	fe, ok := m.Get(path...)
	return ok && !fe.IsEmpty()
}

// Rules returns the failing rules directly at path.
func (m ErrorMap) Rules(path ...string) []rules.Name {
	fe, _ := m.Get(path...)
	return fe.Rules
}

// Fields returns the top-level field names in order.
func (m ErrorMap) Fields() []string {
	return sortedKeys(m)
}

// Flatten lists every violation, ordered by path. Rules at one path keep
// their rule-table order.
func (m ErrorMap) Flatten() []Violation {
	var out []Violation
	m.flatten("", &out)
	return out
}

func (m ErrorMap) flatten(prefix string, out *[]Violation) {
	for _, key := range sortedKeys(m) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		fe := m[key]
		for _, r := range fe.Rules {
			*out = append(*out, Violation{Path: path, Rule: r})
		}
		fe.Nested.flatten(path, out)
	}
}

// Count returns the number of violations.
func (m ErrorMap) Count() int {
	n := 0
	for _, fe := range m {
		n += len(fe.Rules) + fe.Nested.Count()
	}
	return n
}

func (m ErrorMap) Error() string {
	vs := m.Flatten()
	if len(vs) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.Path+": "+string(v.Rule))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ExtractErrorMap returns the ErrorMap inside err, if any.
func ExtractErrorMap(err error) (ErrorMap, bool) {
	var m ErrorMap
	if errors.As(err, &m) {
		return m, true
	}
	return nil, false
}

func IsValidationError(err error) bool {
	_, ok := ExtractErrorMap(err)
	return ok
}

// sortedKeys orders numeric keys numerically ahead of other keys.
func sortedKeys(m ErrorMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ai, aerr := strconv.Atoi(a)
		bi, berr := strconv.Atoi(b)
		switch {
		case aerr == nil && berr == nil:
			return ai - bi
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}
