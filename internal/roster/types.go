package roster

import (
	"context"
	"fmt"
)

// Row is one table row of a roster page, each cell already stripped of line breaks.
type Row struct {
	Cells []string
}

// Page is what a Source returns for a single roster year.
type Page struct {
	// Locator is where the page was read from (url or file path).
	Locator string
	// Year is the year identifier extracted from the locator.
	Year string
	Rows []Row
}

// Source supplies the raw rows of a roster year.
//
// note: fetch errors are fatal for the whole run
type Source interface {
	Fetch(ctx context.Context, year int) (Page, error)
}

type PlayerRecord struct {
	Name       string
	Position   string
	City       string
	State      string
	HighSchool string
}

func (p PlayerRecord) filledFields() int {
	n := 0
	for _, v := range []string{p.Name, p.Position, p.City, p.State, p.HighSchool} {
		if v != "" {
			n++
		}
	}
	return n
}

type FailureKind int

const (
	FAILURE_ROW_TOO_SHORT FailureKind = iota
	FAILURE_MISSING_NAME
	FAILURE_MISSING_SEPARATOR
	FAILURE_MISSING_COMMA
	FAILURE_UNKNOWN_REGION
)

func (k FailureKind) String() string {
	switch k {
	case FAILURE_ROW_TOO_SHORT:
		return "row too short"
	case FAILURE_MISSING_NAME:
		return "missing name"
	case FAILURE_MISSING_SEPARATOR:
		return "missing hometown/high school separator"
	case FAILURE_MISSING_COMMA:
		return "missing city/region comma"
	case FAILURE_UNKNOWN_REGION:
		return "unknown region"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// Failure is a non-fatal data quality problem found while parsing a row.
type Failure struct {
	Year   int
	Player string
	Kind   FailureKind
	// Raw is the text that could not be parsed.
	Raw string
}

func (f Failure) Error() string {
	return fmt.Sprintf("%d: %q: %s (%q)", f.Year, f.Player, f.Kind, f.Raw)
}

// FetchError is returned when a roster year cannot be retrieved.
type FetchError struct {
	Year int
	Err  error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("fetch roster %d: %s", e.Year, e.Err)
}

func (e FetchError) Unwrap() error {
	return e.Err
}
