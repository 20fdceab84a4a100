package rules

import (
	"slices"
	"time"

	"github.com/dmitrymomot/eventkit/pkg/event"
	"github.com/dmitrymomot/eventkit/pkg/keywordset"
)

// Name identifies a rule. The set of names is closed: every Name declared
// below has exactly one Func in the registry, and message bundles carry one
// message per Name.
type Name string

const (
	Required                  Name = "required"
	RequiredString            Name = "requiredString"
	RequiredMulti             Name = "requiredMulti"
	RequiredAtID              Name = "requiredAtId"
	RequiredImage             Name = "requiredImage"
	RequiredForCourses        Name = "requiredForCourses"
	RequiredStringForCourses  Name = "requiredStringForCourses"
	RequiredMultiForCourses   Name = "requiredMultiForCourses"
	RequiredInContentLanguage Name = "requiredInContentLanguage"

	AtLeastOne       Name = "atLeastOne"
	AtLeastOneIsTrue Name = "atLeastOneIsTrue"
	IsExisty         Name = "isExisty"
	IsUndefined      Name = "isUndefined"
	IsEmptyString    Name = "isEmptyString"
	IsTrue           Name = "isTrue"
	IsFalse          Name = "isFalse"

	IsURL     Name = "isUrl"
	IsEmail   Name = "isEmail"
	IsDate    Name = "isDate"
	IsTime    Name = "isTime"
	IsInt     Name = "isInt"
	IsNumeric Name = "isNumeric"
	IsFloat   Name = "isFloat"
	IsWords   Name = "isWords"

	ShortString  Name = "shortString"
	MediumString Name = "mediumString"
	LongString   Name = "longString"

	AfterStartTime            Name = "afterStartTime"
	AfterEnrolmentStartTime   Name = "afterEnrolmentStartTime"
	InTheFuture               Name = "inTheFuture"
	DefaultEndInTheFuture     Name = "defaultEndInTheFuture"
	IsLessThanMaxAge          Name = "isLessThanMaxAge"
	IsMoreThanMinAge          Name = "isMoreThanMinAge"
	IsLessThanMaximumCapacity Name = "isLessThanMaximumCapacity"
	IsMoreThanMinimumCapacity Name = "isMoreThanMinimumCapacity"

	IsMoreThanTwo       Name = "isMoreThanTwo"
	IsMoreThanSixtyFive Name = "isMoreThanSixtyFive"

	AtLeastOneMainCategory      Name = "atLeastOneMainCategory"
	AtLeastOneSecondaryCategory Name = "atLeastOneSecondaryCategory"

	RequiredVideoField Name = "requiredVideoField"
	HasPrice           Name = "hasPrice"
	HasValidPrice      Name = "hasValidPrice"
	DaysWithinInterval Name = "daysWithinInterval"
)

// Context is what a rule may read besides the value under test. Rules never
// modify it.
type Context struct {
	// Record is the event being validated; for sub-events, the sub-event.
	Record *event.Record
	// Offer is set while offer rows are evaluated.
	Offer *event.Offer
	// Video is set while video rows are evaluated.
	Video *event.Video
	// Recurrence is set while a recurring-event form is evaluated.
	Recurrence *event.Recurrence

	// Field is the name of the field under test, e.g. "end_time" or "alt_text".
	Field string
	// Locale restricts localized values to one content language. Empty means
	// every value of the map is considered.
	Locale string

	Languages []string
	Taxonomy  keywordset.Taxonomy
	Now       time.Time
}

func (c *Context) now() time.Time {
	if c == nil || c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

func (c *Context) record() *event.Record {
	if c == nil || c.Record == nil {
		return &event.Record{}
	}
	return c.Record
}

// Func is a rule predicate. It reports whether value satisfies the rule and
// must be total: any value of any type yields true or false.
type Func func(c *Context, value any) bool

var registry = map[Name]Func{
	Required:                  required,
	RequiredString:            requiredString,
	RequiredMulti:             requiredMulti,
	RequiredAtID:              requiredAtID,
	RequiredImage:             requiredImage,
	RequiredForCourses:        forCourses(required),
	RequiredStringForCourses:  forCourses(requiredString),
	RequiredMultiForCourses:   forCourses(requiredMulti),
	RequiredInContentLanguage: requiredInContentLanguage,

	AtLeastOne:       atLeastOne,
	AtLeastOneIsTrue: atLeastOneIsTrue,
	IsExisty:         isExisty,
	IsUndefined:      isUndefined,
	IsEmptyString:    isEmptyString,
	IsTrue:           isTrue,
	IsFalse:          isFalse,

	IsURL:     shape(isURL),
	IsEmail:   shape(isEmail),
	IsDate:    shape(isDate),
	IsTime:    shape(isClock),
	IsInt:     shape(intPattern.MatchString),
	IsNumeric: shape(numericPattern.MatchString),
	IsFloat:   shape(isFloat),
	IsWords:   shape(wordsPattern.MatchString),

	ShortString:  maxRunes(ShortLength),
	MediumString: maxRunes(MediumLength),
	LongString:   maxRunes(LongLength),

	AfterStartTime:            afterStartTime,
	AfterEnrolmentStartTime:   afterEnrolmentStartTime,
	InTheFuture:               inTheFuture,
	DefaultEndInTheFuture:     defaultEndInTheFuture,
	IsLessThanMaxAge:          notAbove(func(r *event.Record) event.Number { return r.AudienceMaxAge }),
	IsMoreThanMinAge:          notBelow(func(r *event.Record) event.Number { return r.AudienceMinAge }),
	IsLessThanMaximumCapacity: notAbove(func(r *event.Record) event.Number { return r.MaximumAttendeeCapacity }),
	IsMoreThanMinimumCapacity: notBelow(func(r *event.Record) event.Number { return r.MinimumAttendeeCapacity }),

	IsMoreThanTwo:       minCount(MinSeriesLength),
	IsMoreThanSixtyFive: maxCount(MaxSeriesLength),

	AtLeastOneMainCategory:      atLeastOneMainCategory,
	AtLeastOneSecondaryCategory: atLeastOneSecondaryCategory,

	RequiredVideoField: requiredVideoField,
	HasPrice:           hasPrice,
	HasValidPrice:      hasValidPrice,
	DaysWithinInterval: daysWithinInterval,
}

// Lookup returns the predicate registered for n.
func Lookup(n Name) (Func, bool) {
	fn, ok := registry[n]
	return fn, ok
}

// Valid reports whether n belongs to the vocabulary.
func (n Name) Valid() bool {
	_, ok := registry[n]
	return ok
}

func (n Name) String() string { return string(n) }

// All returns the vocabulary sorted by name.
func All() []Name {
	names := make([]Name, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Check runs rule n against value. Unknown names fail.
func Check(n Name, c *Context, value any) bool {
	fn, ok := registry[n]
	if !ok {
		return false
	}
	return fn(c, value)
}
