// Package stats contains aggregation and reporting helpers.
package stats

import (
	"sort"

	"github.com/verte-zerg/didit/internal/model"
)

// TierCount summarizes entries for one tier.
type TierCount struct {
	Tier   string
	Count  int
	Points int
}

// TierCounts groups entries by tier, ordered by points then name.
func TierCounts(entries []model.Entry) []TierCount {
	if len(entries) == 0 {
		return nil
	}
	byTier := map[string]*TierCount{}
	for _, e := range entries {
		tc, ok := byTier[e.Tier]
		if !ok {
			tc = &TierCount{Tier: e.Tier}
			byTier[e.Tier] = tc
		}
		tc.Count++
		tc.Points += e.Score
	}
	items := make([]TierCount, 0, len(byTier))
	for _, tc := range byTier {
		items = append(items, *tc)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Points == items[j].Points {
			return items[i].Tier < items[j].Tier
		}
		return items[i].Points > items[j].Points
	})
	return items
}
