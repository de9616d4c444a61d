package roster

import (
	"strings"
)

// RegionTable maps region text as it is printed on the roster pages to a canonical code.
type RegionTable map[string]string

// DefaultRegions lists every abbreviation seen on the 2009-2020 pages, punctuation
// variants included.
var DefaultRegions = RegionTable{
	"Pa.":      "PA",
	"Pa":       "PA",
	"Mich.":    "MI",
	"Ind.":     "IN",
	"Calif.":   "CA",
	"Ore.":     "OR",
	"Ill.":     "IL",
	"Ohio":     "OH",
	"W.Va.":    "WV",
	"Texas":    "TX",
	"Conn.":    "CT",
	"N.J.":     "NJ",
	"N.Y.":     "NY",
	"La.":      "LA",
	"Md.":      "MD",
	"Fla.":     "FL",
	"Mass.":    "MA",
	"Iowa":     "IA",
	"Va.":      "VA",
	"N.C.":     "NC",
	"Wis.":     "WI",
	"Tenn.":    "TN",
	"Ga.":      "GA",
	"Kan.":     "KA",
	"Canada":   "Canada",
	"Minn.":    "MN",
	"Germany":  "Germany",
	"Ala.":     "AL",
	"N.H.":     "NH",
	"Wash.":    "WA",
	"Ariz.":    "AZ",
	"Del.":     "DE",
	"D.C.":     "DC",
	"Ont.":     "ON",
	"Ontario":  "ON",
	"Victoria": "Victoria",
}

// With returns a copy of the table with extra entries, extra entries win.
func (t RegionTable) With(extra map[string]string) RegionTable {
	out := make(RegionTable, len(t)+len(extra))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func (t RegionTable) Lookup(region string) (string, bool) {
	code, ok := t[strings.TrimSpace(region)]
	return code, ok
}

// ParseHometown splits "City, Region" on the first comma and resolves the region,
// anything after a second comma ("Toronto, Ont., Canada") is ignored.
//
// Without a comma both city and state are empty. With an unknown region the city
// is kept and the state is empty. The returned kind is only meaningful when ok is false.
func ParseHometown(raw string, regions RegionTable) (city, state string, kind FailureKind, ok bool) {
	cityPart, regionPart, found := strings.Cut(raw, ",")
	if !found {
		return "", "", FAILURE_MISSING_COMMA, false
	}
	city = strings.TrimSpace(cityPart)
	regionPart, _, _ = strings.Cut(regionPart, ",")

	code, known := regions.Lookup(regionPart)
	if !known {
		return city, "", FAILURE_UNKNOWN_REGION, false
	}
	return city, code, 0, true
}
