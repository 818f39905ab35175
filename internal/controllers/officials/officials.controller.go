package officialsController

import (
	"context"
	"strings"

	"civic/internal/classify"
	"civic/internal/logger"
	. "civic/internal/models"
	"civic/internal/services"
	"civic/internal/sorters"
	"civic/internal/utils"
)

// Backend is the slice of the essentials client this controller needs
// beyond resolution.
type Backend interface {
	GetPolitician(ctx context.Context, id string) (Politician, error)
	FetchCandidates(ctx context.Context, query string) ([]Politician, error)
}

type OfficialsController struct {
	resolver *services.ResolverService
	backend  Backend
	log      logger.Logger
}

func New(resolver *services.ResolverService, backend Backend) *OfficialsController {
	return &OfficialsController{
		resolver: resolver,
		backend:  backend,
		log:      logger.New("officialsController"),
	}
}

// Card is one display-ready official: the raw record plus the derived
// title/subtitle split.
type Card struct {
	Politician
	CardTitle    string `json:"card_title"`
	CardSubtitle string `json:"card_subtitle,omitempty"`
}

// TierGroup is one ordered category within a tier.
type TierGroup struct {
	Group     string `json:"group"`
	Label     string `json:"label"`
	Officials []Card `json:"officials"`
}

// TierSection is one tier with its categories in canonical order.
type TierSection struct {
	Tier   classify.Tier `json:"tier"`
	Groups []TierGroup   `json:"groups"`
}

// LookupResult is the full response for one location query.
type LookupResult struct {
	Phase            FetchPhase    `json:"phase"`
	Error            string        `json:"error,omitempty"`
	DataStatus       DataStatus    `json:"dataStatus,omitempty"`
	FormattedAddress string        `json:"formattedAddress,omitempty"`
	Tiers            []TierSection `json:"tiers"`
}

// Lookup resolves a location query and returns classified, ordered,
// display-ready groups. The candidate fetch is an independent sequence
// and simply merges into classification when requested.
func (c *OfficialsController) Lookup(ctx context.Context, query string, includeCandidates bool) (LookupResult, error) {
	log := c.log.Function("Lookup")

	sess := c.resolver.NewSession()
	final := sess.Resolve(ctx, query, services.ResolveOptions{Enabled: true}).Final()

	if final.Phase != PhaseFresh {
		return LookupResult{Phase: final.Phase, Error: final.Error}, nil
	}

	var candidates []Politician
	if includeCandidates {
		var err error
		candidates, err = c.backend.FetchCandidates(ctx, query)
		if err != nil {
			// Candidates are additive; a failed fetch degrades to the
			// officeholder list.
			log.Warn("failed to fetch candidates", "query", query, "error", err)
		}
	}

	return LookupResult{
		Phase:            final.Phase,
		DataStatus:       final.DataStatus,
		FormattedAddress: final.FormattedAddress,
		Tiers:            Group(final.Data, candidates),
	}, nil
}

// GetOfficial proxies a single-official fetch, normalizing biography
// text for display.
func (c *OfficialsController) GetOfficial(ctx context.Context, id string) (Politician, error) {
	pol, err := c.backend.GetPolitician(ctx, id)
	if err != nil {
		return Politician{}, c.log.Function("GetOfficial").Err("failed to get official", err, "id", id)
	}

	pol.Notes = utils.NormalizeNotes(pol.Notes)
	pol.OfficeTitle = utils.StripTrailingISODate(pol.OfficeTitle)
	return pol, nil
}

// tierRenderOrder matches the UI: local first, federal last, anything
// unclassifiable at the end.
var tierRenderOrder = []classify.Tier{
	classify.TierLocal,
	classify.TierState,
	classify.TierFederal,
	classify.TierUnknown,
}

// Group turns flat officeholder and candidate lists into the nested
// tier -> ordered groups -> sorted officials structure. Pure: safe to
// memoize on the input lists.
func Group(records []Politician, candidates []Politician) []TierSection {
	kept := make([]Politician, 0, len(records))
	for _, pol := range records {
		if !pol.Vacant() {
			kept = append(kept, pol)
		}
	}

	userState := homeState(kept)
	kept = filterFederalDelegation(kept, userState)

	for _, cand := range candidates {
		if cand.Vacant() {
			continue
		}
		if cand.ID == "" {
			cand.ID = "candidate-" + cand.ExternalID
		}
		kept = append(kept, cand)
	}

	type bucketKey struct {
		tier  classify.Tier
		group string
	}

	seen := make(map[string]struct{})
	buckets := make(map[bucketKey][]Politician)
	groupOrder := make(map[classify.Tier][]string)

	for _, pol := range kept {
		cat := classify.Classify(pol)
		if cat.Tier == classify.TierHidden {
			continue
		}

		// Same person under different source ids collapses to one card.
		dedupe := pol.FirstName + "\x00" + pol.LastName + "\x00" + pol.OfficeTitle + "\x00" + cat.Group
		if _, dup := seen[dedupe]; dup {
			continue
		}
		seen[dedupe] = struct{}{}

		key := bucketKey{cat.Tier, cat.Group}
		if _, ok := buckets[key]; !ok {
			groupOrder[cat.Tier] = append(groupOrder[cat.Tier], cat.Group)
		}
		buckets[key] = append(buckets[key], pol)
	}

	var sections []TierSection
	for _, tier := range tierRenderOrder {
		groups := classify.OrderedGroups(groupOrder[tier], classify.TierOrder(tier))
		if len(groups) == 0 {
			continue
		}

		section := TierSection{Tier: tier}
		for _, group := range groups {
			sorted := sorters.DefaultSort(group, buckets[bucketKey{tier, group}])
			section.Groups = append(section.Groups, TierGroup{
				Group:     group,
				Label:     classify.DisplayName(group),
				Officials: cards(sorted),
			})
		}
		sections = append(sections, section)
	}

	return sections
}

// homeState finds the user's state from any state- or local-level
// record.
func homeState(records []Politician) string {
	for _, pol := range records {
		dt := string(pol.DistrictType)
		if strings.Contains(dt, "STATE") || strings.Contains(dt, "LOCAL") ||
			pol.DistrictType == County || pol.DistrictType == School {
			if pol.RepresentingState != "" {
				return strings.ToUpper(pol.RepresentingState)
			}
		}
	}
	return ""
}

// filterFederalDelegation restricts senators and representatives to the
// user's home state. Executive-branch records are nationwide and always
// kept.
func filterFederalDelegation(records []Politician, userState string) []Politician {
	if userState == "" {
		return records
	}

	kept := make([]Politician, 0, len(records))
	for _, pol := range records {
		if pol.DistrictType == NationalUpper || pol.DistrictType == NationalLower {
			if strings.ToUpper(pol.RepresentingState) != userState {
				continue
			}
		}
		kept = append(kept, pol)
	}
	return kept
}

func cards(list []Politician) []Card {
	out := make([]Card, 0, len(list))
	for _, pol := range list {
		pol.Notes = utils.NormalizeNotes(pol.Notes)
		title, subtitle := utils.CardHeading(pol)
		out = append(out, Card{
			Politician:   pol,
			CardTitle:    title,
			CardSubtitle: subtitle,
		})
	}
	return out
}
