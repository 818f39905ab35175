package classify

import "sort"

// Canonical display order of groups within each tier. Groups absent
// from their tier's array sort after all listed ones, preserving their
// original relative order.
var (
	FederalOrder = []string{
		GroupPresidentVP,
		GroupCabinet,
		GroupUSSenate,
		GroupUSHouse,
		GroupIndependent,
		GroupExecOther,
	}

	StateOrder = []string{
		GroupGovernor,
		GroupStatewide,
		GroupStateSenate,
		GroupStateHouse,
		GroupStateDepts,
		GroupStateJudiciary,
		GroupExecOther,
	}

	LocalOrder = []string{
		GroupMunicipalExec,
		GroupCityCouncil,
		GroupMunicipalOff,
		GroupTownship,
		GroupCountyExec,
		GroupCountyLegis,
		GroupCountyOff,
		GroupSchoolBoard,
		GroupLocalDepts,
		GroupLocalJudiciary,
		GroupLocalOther,
	}
)

// TierOrder returns the order array for a tier; unknown tiers have none.
func TierOrder(tier Tier) []string {
	switch tier {
	case TierFederal:
		return FederalOrder
	case TierState:
		return StateOrder
	case TierLocal:
		return LocalOrder
	}
	return nil
}

// OrderedGroups ranks group names by their position in order. Unlisted
// names keep their position in groups, after every listed one.
func OrderedGroups(groups []string, order []string) []string {
	rank := func(g string) int {
		for i, o := range order {
			if o == g {
				return i
			}
		}
		return len(order) + 1
	}

	ranked := make([]string, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rank(ranked[i]) < rank(ranked[j])
	})
	return ranked
}

// displayNames maps internal group labels to shorter user-facing ones.
var displayNames = map[string]string{
	GroupStatewide:   "Statewide Officers",
	GroupStateDepts:  "Departments & Boards",
	GroupIndependent: "Independent Agencies",
	GroupLocalDepts:  "Departments & Districts",
	GroupStateHouse:  "State House",
}

// DisplayName returns the user-facing label for a group; unmapped
// groups pass through unchanged.
func DisplayName(group string) string {
	if name, ok := displayNames[group]; ok {
		return name
	}
	return group
}
