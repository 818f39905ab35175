package sorters

import (
	"sort"

	"civic/internal/classify"
	. "civic/internal/models"
)

// SortOption is one named way to order a group. The first option in a
// group's list is its default.
type SortOption struct {
	ID    string
	Label string
	Cmp   func(Direction) Comparator
}

func byKey(id, label string, key KeyFunc) SortOption {
	return SortOption{
		ID:    id,
		Label: label,
		Cmp:   func(dir Direction) Comparator { return Less(key, dir) },
	}
}

// GroupSortOptions maps a classification group to its ordered sort
// options. Groups without an entry fall back to last name.
var GroupSortOptions = map[string][]SortOption{
	classify.GroupPresidentVP: {
		byKey("role_rank", "Role", CabinetRankKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupCabinet: {
		byKey("role_rank", "Role", CabinetRankKey),
		byKey("agency", "Department/Agency", AgencyKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupUSSenate: {
		byKey("name", "Name", LastNameKey),
		byKey("state", "State", StateKey),
	},
	classify.GroupUSHouse: {
		byKey("district", "District", DistrictNumberKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupStateSenate: {
		byKey("district", "District", DistrictNumberKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupStateHouse: {
		byKey("district", "District", DistrictNumberKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupStateDepts: {
		byKey("agency", "Agency/Body", AgencyKey),
		byKey("role", "Role/Title", RoleKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupMunicipalExec: {
		byKey("role_rank", "Role", LocalExecRankKey),
		byKey("jurisdiction", "Jurisdiction", JurisdictionKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupCityCouncil: {
		byKey("district", "District/Ward", DistrictNumberKey),
		byKey("body", "Body", AgencyKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupMunicipalOff: {
		byKey("role", "Office", RoleKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupTownship: {
		byKey("role", "Office", RoleKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupExecOther: {
		byKey("role", "Role/Title", RoleKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupLocalDepts: {
		byKey("agency", "Department/District", AgencyKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupLocalOther: {
		byKey("name", "Name", LastNameKey),
		byKey("elected", "Elected First", ElectedFirstKey),
	},
	classify.GroupIndependent: {
		byKey("agency", "Agency", AgencyKey),
		byKey("role", "Role/Title", RoleKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupCountyExec: {
		byKey("jurisdiction", "County", JurisdictionKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupCountyLegis: {
		byKey("jurisdiction", "County", JurisdictionKey),
		byKey("district", "District", DistrictNumberKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupCountyOff: {
		byKey("role", "Office", RoleKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupSchoolBoard: {
		byKey("jurisdiction", "School District", JurisdictionKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupStateJudiciary: {
		byKey("court", "Court", AgencyKey),
		byKey("name", "Name", LastNameKey),
	},
	classify.GroupLocalJudiciary: {
		byKey("court", "Court", AgencyKey),
		byKey("name", "Name", LastNameKey),
	},
}

// DefaultComparator returns a group's default (first-option) ascending
// comparator.
func DefaultComparator(group string) Comparator {
	opts := GroupSortOptions[group]
	if len(opts) == 0 {
		return Less(LastNameKey, Asc)
	}
	return opts[0].Cmp(Asc)
}

// DefaultSort returns a copy of list ordered by the group's default
// sort option.
func DefaultSort(group string, list []Politician) []Politician {
	sorted := make([]Politician, len(list))
	copy(sorted, list)
	cmp := DefaultComparator(group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cmp(sorted[i], sorted[j]) < 0
	})
	return sorted
}
