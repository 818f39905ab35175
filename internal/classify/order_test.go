package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedGroups(t *testing.T) {
	tests := []struct {
		name     string
		groups   []string
		order    []string
		expected []string
	}{
		{
			name:     "Federal groups follow canonical order",
			groups:   []string{GroupUSHouse, GroupPresidentVP, GroupUSSenate},
			order:    FederalOrder,
			expected: []string{GroupPresidentVP, GroupUSSenate, GroupUSHouse},
		},
		{
			name:     "Unlisted groups keep relative order after listed ones",
			groups:   []string{"Port Authority", GroupUSHouse, "Harbor Board", GroupUSSenate},
			order:    FederalOrder,
			expected: []string{GroupUSSenate, GroupUSHouse, "Port Authority", "Harbor Board"},
		},
		{
			name:     "Empty order leaves input order untouched",
			groups:   []string{"B", "A", "C"},
			order:    nil,
			expected: []string{"B", "A", "C"},
		},
		{
			name:     "Empty input",
			groups:   nil,
			order:    LocalOrder,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderedGroups(tt.groups, tt.order)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOrderedGroups_DoesNotMutateInput(t *testing.T) {
	groups := []string{GroupUSHouse, GroupPresidentVP}
	OrderedGroups(groups, FederalOrder)

	assert.Equal(t, []string{GroupUSHouse, GroupPresidentVP}, groups)
}

func TestTierOrder(t *testing.T) {
	assert.Equal(t, FederalOrder, TierOrder(TierFederal))
	assert.Equal(t, StateOrder, TierOrder(TierState))
	assert.Equal(t, LocalOrder, TierOrder(TierLocal))
	assert.Nil(t, TierOrder(TierUnknown))
	assert.Nil(t, TierOrder(TierHidden))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Statewide Officers", DisplayName(GroupStatewide))
	assert.Equal(t, "Departments & Boards", DisplayName(GroupStateDepts))
	assert.Equal(t, GroupCityCouncil, DisplayName(GroupCityCouncil))
	assert.Equal(t, "something else", DisplayName("something else"))
}

// Every group Classify can emit must be listed in its tier's order
// array, so no bucket ever depends on the unlisted-last fallback.
func TestTierOrders_CoverClassifierGroups(t *testing.T) {
	inOrder := func(order []string, group string) bool {
		for _, o := range order {
			if o == group {
				return true
			}
		}
		return false
	}

	federalGroups := []string{GroupPresidentVP, GroupCabinet, GroupUSSenate, GroupUSHouse, GroupIndependent, GroupExecOther}
	for _, g := range federalGroups {
		assert.True(t, inOrder(FederalOrder, g), "federal order missing %s", g)
	}

	stateGroups := []string{GroupGovernor, GroupStatewide, GroupStateSenate, GroupStateHouse, GroupStateDepts, GroupStateJudiciary, GroupExecOther}
	for _, g := range stateGroups {
		assert.True(t, inOrder(StateOrder, g), "state order missing %s", g)
	}

	localGroups := []string{
		GroupMunicipalExec, GroupCityCouncil, GroupMunicipalOff, GroupTownship,
		GroupCountyExec, GroupCountyLegis, GroupCountyOff, GroupSchoolBoard,
		GroupLocalDepts, GroupLocalJudiciary, GroupLocalOther,
	}
	for _, g := range localGroups {
		assert.True(t, inOrder(LocalOrder, g), "local order missing %s", g)
	}
}
