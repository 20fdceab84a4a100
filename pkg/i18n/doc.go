// Package i18n turns validation results into messages a person can read.
//
// Message bundles are YAML documents keyed by language, one file per
// language. The bundles for Finnish, Swedish and English are embedded and
// hold one message per rule under "validation.<rule>":
//
//	fi:
//	  validation:
//	    requiredMulti: "Tämä kenttä on pakollinen kaikilla valituilla kielillä"
//
// A Translator looks messages up with named placeholders ("%{max}") and
// falls back to its default language, then to the key itself:
//
//	tr, err := i18n.New()
//	if err != nil {
//		return err
//	}
//	msgs := tr.Localize(errs, tr.Match(r.Header.Get("Accept-Language")))
//
// Additional bundles can be layered over the embedded ones with
// WithBundles, for example to reword messages for a deployment.
//
// The HTTP middleware negotiates the response language from the "lang"
// query parameter or the Accept-Language header and stores it in the
// request context; GetLocale reads it back.
package i18n
