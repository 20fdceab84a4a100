// Package editor implements the re-check policy of the event form.
//
// A Session owns the record being edited. Edits are cheap while the form is
// clean: the record is only re-validated after an edit when the previous
// check found errors, so inline messages disappear as soon as they are
// fixed. Check always validates and is what the form runs on submit.
//
//	s := editor.NewSession(record, editor.WithLanguages("fi", "en"), editor.WithTaxonomy(store))
//	if errs := s.Check(validator.IntentPublic); !errs.IsEmpty() {
//		// show errs
//	}
//	s.Edit(func(r *event.Record) { r.Name["en"] = "Concert" })
//
// A Session is safe for concurrent use.
package editor
