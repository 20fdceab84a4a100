package rules

import "github.com/dmitrymomot/eventkit/pkg/event"

// Keyword set names the category rules look up in the taxonomy.
const (
	SetGeneral   = "topic_content"
	SetHobby     = "hobbytopics"
	SetCourse    = "coursetopics"
	SetSecondary = "service_content"
)

// MainCategorySet returns the keyword set holding the main categories of
// events of type t.
func MainCategorySet(t event.Type) string {
	switch t {
	case event.TypeHobby:
		return SetHobby
	case event.TypeCourse:
		return SetCourse
	default:
		return SetGeneral
	}
}

func atLeastOneMainCategory(c *Context, v any) bool {
	if c == nil {
		return false
	}
	return c.Taxonomy.ContainsAny(MainCategorySet(c.record().EffectiveType()), keywordRefs(v)...)
}

func atLeastOneSecondaryCategory(c *Context, v any) bool {
	if c == nil {
		return false
	}
	return c.Taxonomy.ContainsAny(SetSecondary, keywordRefs(v)...)
}

func keywordRefs(v any) []string {
	switch x := v.(type) {
	case []event.Keyword:
		refs := make([]string, 0, len(x))
		for _, kw := range x {
			refs = append(refs, kw.Value)
		}
		return refs
	case []string:
		return x
	default:
		return nil
	}
}
