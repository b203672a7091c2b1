package survey

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names what a lookup was looking for.
type Kind string

const (
	KindSurvey Kind = "survey"
	KindFilter Kind = "filter"
)

var (
	// ErrSurveyNotFound matches any LookupError for a survey.
	ErrSurveyNotFound = errors.New("survey not found")

	// ErrFilterNotFound matches any LookupError for a filter.
	ErrFilterNotFound = errors.New("filter not found")
)

// LookupError is returned when a survey or filter identifier does not resolve.
type LookupError struct {
	Kind      Kind
	Name      string
	Survey    string // owning survey, for KindFilter
	Available []string
}

func (e *LookupError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q not found", e.Kind, e.Name)
	if e.Kind == KindFilter && e.Survey != "" {
		fmt.Fprintf(&b, " in survey %q", e.Survey)
	}
	if len(e.Available) > 0 {
		b.WriteString("; available: ")
		b.WriteString(strings.Join(e.Available, ", "))
	}
	return b.String()
}

// Is makes errors.Is(err, ErrSurveyNotFound) and
// errors.Is(err, ErrFilterNotFound) work.
func (e *LookupError) Is(target error) bool {
	switch target {
	case ErrSurveyNotFound:
		return e.Kind == KindSurvey
	case ErrFilterNotFound:
		return e.Kind == KindFilter
	}
	return false
}
