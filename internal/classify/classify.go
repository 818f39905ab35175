// Package classify buckets officials into a federal/state/local
// hierarchy. Classification is heuristic keyword matching over
// free-text titles and chamber names, dispatched on the backend's
// district_type enum. Rule order is load-bearing: a record that is both
// "commissioner" and on a "board" classifies by whichever rule fires
// first.
package classify

import (
	"strings"

	. "civic/internal/models"
)

type Tier string

const (
	TierFederal Tier = "Federal"
	TierState   Tier = "State"
	TierLocal   Tier = "Local"
	TierUnknown Tier = "Unknown"
	TierHidden  Tier = "Hidden"
)

// Category is the (tier, group) pair an official classifies into.
type Category struct {
	Tier  Tier   `json:"tier"`
	Group string `json:"group"`
}

// Group labels referenced from multiple rules.
const (
	GroupUSSenate       = "U.S. Senate"
	GroupUSHouse        = "U.S. House"
	GroupPresidentVP    = "President / VP"
	GroupCabinet        = "Cabinet"
	GroupIndependent    = "Independent Agencies & Commissions"
	GroupExecOther      = "Executive (Other)"
	GroupGovernor       = "Governor & Lt. Governor"
	GroupStatewide      = "Statewide Constitutional Officers"
	GroupStateSenate    = "State Senate"
	GroupStateHouse     = "State House/Assembly"
	GroupStateDepts     = "Departments, Boards & Commissions"
	GroupMunicipalExec  = "Municipal Executives"
	GroupCityCouncil    = "City Council"
	GroupMunicipalOff   = "Municipal Officials"
	GroupTownship       = "Township Officials"
	GroupCountyLegis    = "County Legislators"
	GroupCountyExec     = "County Executives"
	GroupCountyOff      = "County Officials"
	GroupSchoolBoard    = "School Board"
	GroupLocalDepts     = "Local Departments & Special Districts"
	GroupLocalOther     = "Local (Other)"
	GroupStateJudiciary = "State Judiciary"
	GroupLocalJudiciary = "Local Judiciary"
	GroupLegisUpper     = "Legislature (Upper)"
	GroupLegisLower     = "Legislature (Lower)"
	GroupUncategorized  = "Uncategorized"
	GroupVacant         = "Vacant"
)

var (
	bodyAgency = []string{
		"commission",
		"department",
		"board",
		"authority",
		"agency",
		"office of",
		"division",
		"bureau",
		"council of state",
		"corporation",
	}
	bodyCouncil = []string{
		"council",
		"board of supervisors",
		"board of aldermen",
	}
	localSpecial = []string{
		"school board",
		"school district",
		"park district",
		"water district",
		"library board",
		"fire district",
		"sanitary district",
	}

	roleExecTop = []string{
		"governor",
		"lieutenant governor",
		"lt. governor",
		"lt governor",
	}
	roleExecStatewide = []string{
		"secretary of state",
		"attorney general",
		"treasurer",
		"comptroller",
		"superintendent",
	}
	roleLocalExec = []string{
		"mayor",
		"county executive",
		"county board president",
		"borough president",
		"city manager",
		"village president",
		"town supervisor",
	}
	roleLocalLegis = []string{
		"councilmember",
		"council member",
		"councilor",
		"alder",
		"alderman",
		"alderperson",
	}
	roleMunicipalOff = []string{
		"clerk",
		"city attorney",
		"city treasurer",
		"city auditor",
		"recorder",
	}
	roleCountyOff = []string{
		"sheriff",
		"clerk",
		"treasurer",
		"assessor",
		"auditor",
		"recorder",
		"coroner",
		"surveyor",
	}
	roleAgency = []string{
		"commissioner",
		"director",
		"administrator",
		"chair",
	}
)

func word(s string) string {
	return strings.ToLower(s)
}

func hasAny(s string, keywords []string) bool {
	t := word(s)
	for _, k := range keywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

// Classify maps one official to its (tier, group) pair. Pure and total:
// every input, including a zero record, yields a defined category.
func Classify(pol Politician) Category {
	chamber := pol.ChamberNameFormal
	if chamber == "" {
		chamber = pol.ChamberName
	}
	title := pol.OfficeTitle

	if pol.Vacant() {
		return Category{TierHidden, GroupVacant}
	}

	switch pol.DistrictType {
	case NationalUpper:
		return Category{TierFederal, GroupUSSenate}
	case NationalLower:
		return Category{TierFederal, GroupUSHouse}
	case StateUpper:
		return Category{TierState, GroupStateSenate}
	case StateLower:
		return Category{TierState, GroupStateHouse}

	case NationalExec:
		if hasAny(title, []string{"president", "vice president"}) {
			return Category{TierFederal, GroupPresidentVP}
		}
		if hasAny(title, []string{"secretary of"}) {
			return Category{TierFederal, GroupCabinet}
		}
		if hasAny(chamber, bodyAgency) || hasAny(title, roleAgency) {
			return Category{TierFederal, GroupIndependent}
		}
		return Category{TierFederal, GroupExecOther}

	case StateExec:
		if hasAny(title, roleExecTop) {
			return Category{TierState, GroupGovernor}
		}
		if hasAny(title, roleExecStatewide) {
			return Category{TierState, GroupStatewide}
		}
		if hasAny(chamber, bodyAgency) || hasAny(title, roleAgency) {
			return Category{TierState, GroupStateDepts}
		}
		return Category{TierState, GroupExecOther}

	case LocalExec:
		if hasAny(title, []string{"township"}) || hasAny(chamber, []string{"township"}) {
			return Category{TierLocal, GroupTownship}
		}
		if hasAny(chamber, bodyAgency) || hasAny(title, roleAgency) {
			return Category{TierLocal, GroupLocalDepts}
		}
		return Category{TierLocal, GroupMunicipalExec}

	case Local:
		if hasAny(title, []string{"township"}) || hasAny(chamber, []string{"township"}) {
			return Category{TierLocal, GroupTownship}
		}
		if hasAny(chamber, bodyCouncil) || hasAny(title, roleLocalLegis) {
			return Category{TierLocal, GroupCityCouncil}
		}
		if hasAny(title, roleMunicipalOff) {
			return Category{TierLocal, GroupMunicipalOff}
		}
		if hasAny(chamber, bodyAgency) || hasAny(chamber, localSpecial) || hasAny(title, localSpecial) {
			return Category{TierLocal, GroupLocalDepts}
		}
		if hasAny(chamber, []string{"board of commissioners"}) || hasAny(title, []string{"commissioner"}) {
			return Category{TierLocal, GroupCityCouncil}
		}
		return Category{TierLocal, GroupLocalOther}

	case County:
		if hasAny(title, []string{"commissioner", "supervisor", "council"}) {
			return Category{TierLocal, GroupCountyLegis}
		}
		if hasAny(title, roleLocalExec) {
			return Category{TierLocal, GroupCountyExec}
		}
		if hasAny(title, roleCountyOff) {
			return Category{TierLocal, GroupCountyOff}
		}
		return Category{TierLocal, GroupCountyOff}

	case School:
		return Category{TierLocal, GroupSchoolBoard}

	case Judicial:
		if hasAny(chamber, []string{"supreme", "appellate", "appeals"}) {
			return Category{TierState, GroupStateJudiciary}
		}
		return Category{TierLocal, GroupLocalJudiciary}
	}

	// Unrecognized district_type: fall back to chamber text.
	if hasAny(chamber, []string{"senate"}) {
		return Category{TierUnknown, GroupLegisUpper}
	}
	if hasAny(chamber, []string{"house", "assembly"}) {
		return Category{TierUnknown, GroupLegisLower}
	}
	return Category{TierUnknown, GroupUncategorized}
}
