// Package rules is the library of named predicates event validation is
// built from.
//
// Every rule is a Func registered under a Name. The vocabulary is closed:
// All lists it, Lookup resolves a name, and an unknown name never matches.
// Rules are pure and total. They read the value under test and the
// read-only Context (the record, the current offer or video row, the
// content languages, the keyword taxonomy and the clock) and return true
// when the value is acceptable.
//
// Rules fall into families:
//
//   - presence: required, requiredString, requiredMulti, requiredAtId, the
//     *ForCourses variants that apply only to course and hobby events
//   - shape: isUrl, isDate, isTime, isInt and friends. Blank input passes;
//     presence is the job of the required* rules, so both kinds can sit in
//     one rule list
//   - length: shortString, mediumString, longString
//   - cross-field: afterStartTime, the age and capacity bounds, inTheFuture
//   - category: atLeastOneMainCategory, atLeastOneSecondaryCategory
//   - row rules: requiredVideoField, hasPrice, hasValidPrice and the
//     recurrence rule daysWithinInterval
//
// Localized values are checked in Context.Locale when it is set and in
// every locale they carry otherwise.
package rules
