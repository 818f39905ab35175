// Package sorters orders officials within one classified group. Key
// extractors pull a comparable value out of a record; a comparator
// factory and chain combinator build the actual less functions.
package sorters

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	. "civic/internal/models"
)

// KeyFunc extracts a sortable key from one official. Keys are either
// strings or float64s; mixed-type comparison never happens because one
// key function feeds one comparator.
type KeyFunc func(Politician) any

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LastNameKey is the last token of "<preferred_or_first> <last>".
func LastNameKey(pol Politician) any {
	first := pol.PreferredName
	if first == "" {
		first = pol.FirstName
	}
	name := strings.TrimSpace(first + " " + pol.LastName)
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return lower(name)
	}
	return lower(parts[len(parts)-1])
}

// AgencyKey is the first non-empty of formal chamber, chamber,
// government name, office title.
func AgencyKey(pol Politician) any {
	for _, s := range []string{pol.ChamberNameFormal, pol.ChamberName, pol.GovernmentName, pol.OfficeTitle} {
		if s != "" {
			return lower(s)
		}
	}
	return ""
}

func RoleKey(pol Politician) any {
	return lower(pol.OfficeTitle)
}

func StateKey(pol Politician) any {
	return lower(pol.RepresentingState)
}

func JurisdictionKey(pol Politician) any {
	return lower(pol.GovernmentName)
}

// PartyKey buckets parties predictably: dem < rep < ind < everything
// else, unknown parties alphabetical among themselves.
func PartyKey(pol Politician) any {
	p := lower(pol.Party)
	switch {
	case strings.HasPrefix(p, "dem"):
		return "1_democrat"
	case strings.HasPrefix(p, "rep"):
		return "2_republican"
	case strings.HasPrefix(p, "ind"):
		return "3_independent"
	}
	return "9_" + p
}

var districtNumberRe = regexp.MustCompile(`(\d{1,3})`)

// DistrictNumberKey extracts a number from "District 7", "IL-07",
// "ward 3", etc. Numberless districts sort last.
func DistrictNumberKey(pol Politician) any {
	label := pol.DistrictLabel + " " + pol.ChamberName + " " + pol.OfficeTitle
	m := districtNumberRe.FindString(label)
	if m == "" {
		return math.Inf(1)
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return math.Inf(1)
	}
	return float64(n)
}

// Role ranks for special groups.
var cabinetRank = []string{
	"president",
	"vice president",
	"secretary of state",
	"secretary of the treasury",
	"secretary of defense",
	"attorney general",
	"secretary of the interior",
	"secretary of agriculture",
	"secretary of commerce",
	"secretary of labor",
	"secretary of health",
	"secretary of housing",
	"secretary of transportation",
	"secretary of energy",
	"secretary of education",
	"secretary of veterans",
	"secretary of homeland",
}

var localExecRank = []string{
	"mayor",
	"county executive",
	"county board president",
	"city manager",
	"village president",
	"town supervisor",
}

func rankFromList(list []string, title string) float64 {
	t := lower(title)
	for i, k := range list {
		if strings.Contains(t, k) {
			return float64(i)
		}
	}
	return 999
}

func CabinetRankKey(pol Politician) any {
	return rankFromList(cabinetRank, pol.OfficeTitle)
}

func LocalExecRankKey(pol Politician) any {
	return rankFromList(localExecRank, pol.OfficeTitle)
}

// ElectedFirstKey sorts elected positions before appointed ones.
func ElectedFirstKey(pol Politician) any {
	if pol.IsElected {
		return float64(0)
	}
	return float64(1)
}

// Comparator returns negative, zero, or positive like strings.Compare.
type Comparator func(a, b Politician) int

// Less builds a comparator over keyFn's extracted keys. Nil keys
// coerce to the empty string; Desc negates the result.
func Less(keyFn KeyFunc, dir Direction) Comparator {
	return func(a, b Politician) int {
		res := compareKeys(keyFn(a), keyFn(b))
		if dir == Desc {
			return -res
		}
		return res
	}
}

func compareKeys(av, bv any) int {
	switch a := av.(type) {
	case float64:
		b, ok := bv.(float64)
		if !ok {
			return 0
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	case string:
		b, _ := bv.(string)
		return strings.Compare(a, b)
	case nil:
		b, _ := bv.(string)
		return strings.Compare("", b)
	}
	return 0
}

// Chain applies comparators in order, returning the first non-zero
// result for stable tie-breaking.
func Chain(comparators ...Comparator) Comparator {
	return func(a, b Politician) int {
		for _, cmp := range comparators {
			if r := cmp(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}
