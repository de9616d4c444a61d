package roster

import (
	"rostergraph/lib/textutil"
	"strings"
)

const (
	nameCell     = 1
	positionCell = 2
	minCells     = 3
)

// ParseRow turns one roster row into a record for the given year.
//
// Parsing never fails as a whole, every problem is returned as a Failure and the
// record keeps whatever fields could be read. A record with an empty name cannot be
// keyed and comes with a FAILURE_MISSING_NAME.
func ParseRow(year int, row Row, regions RegionTable) (PlayerRecord, []Failure) {
	var record PlayerRecord
	var failures []Failure
	fail := func(kind FailureKind, raw string) {
		failures = append(failures, Failure{
			Year:   year,
			Player: record.Name,
			Kind:   kind,
			Raw:    raw,
		})
	}

	cells := row.Cells
	if len(cells) > nameCell {
		record.Name = textutil.NormalizeName(cells[nameCell])
	}
	if record.Name == "" {
		fail(FAILURE_MISSING_NAME, strings.Join(cells, " | "))
	}
	if len(cells) < minCells {
		fail(FAILURE_ROW_TOO_SHORT, strings.Join(cells, " | "))
		return record, failures
	}
	record.Position = textutil.CollapseWhitespace(cells[positionCell])

	composite := cells[len(cells)-1]
	segments := strings.Split(composite, "/")
	hometown := segments[0]
	if len(segments) < 2 {
		fail(FAILURE_MISSING_SEPARATOR, composite)
	}
	// without a separator the whole cell stands in for the high school
	record.HighSchool = textutil.CollapseWhitespace(segments[len(segments)-1])

	city, state, kind, ok := ParseHometown(hometown, regions)
	record.City = city
	record.State = state
	if !ok {
		fail(kind, strings.TrimSpace(hometown))
	}

	return record, failures
}
