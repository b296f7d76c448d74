package usecase

import (
	"context"
	"log"
	"sort"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

// GroupingCap bounds the in-memory grouped breakdowns. Per-row grouping
// cannot be a plain COUNT, so these two reports fetch at most this many
// rows and aggregate client-side. When the cap is hit the result carries
// Truncated=true instead of silently undercounting; the headline totals
// elsewhere stay COUNT-based and exact.
const GroupingCap = 5000

type MarketerPerformance struct {
	OwnerID        string  `json:"owner_id"`
	Total          int     `json:"total"`
	Converted      int     `json:"converted"`
	Lost           int     `json:"lost"`
	Pipeline       int     `json:"pipeline"`
	ConversionRate float64 `json:"conversionRate"`
}

type MarketerBreakdown struct {
	Marketers []MarketerPerformance `json:"marketers"`
	Truncated bool                  `json:"truncated"`
}

type SourceCount struct {
	Source     string  `json:"source"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type SourceBreakdown struct {
	Sources   []SourceCount `json:"sources"`
	Truncated bool          `json:"truncated"`
}

// ComputeMarketerPerformance groups the range's leads by owner. Admin-only
// view, so the scope is always all.
func (uc *KpiUseCase) ComputeMarketerPerformance(ctx context.Context, r entity.DateRange) MarketerBreakdown {
	rows, err := uc.Leads.FetchForGrouping(ctx, entity.ScopeAll(), r, GroupingCap)
	if err != nil {
		log.Printf("marketer performance degraded to empty: %v", err)
		return MarketerBreakdown{Marketers: []MarketerPerformance{}}
	}

	byOwner := make(map[string]*MarketerPerformance)
	for _, lead := range rows {
		perf, ok := byOwner[lead.OwnerID]
		if !ok {
			perf = &MarketerPerformance{OwnerID: lead.OwnerID}
			byOwner[lead.OwnerID] = perf
		}
		perf.Total++
		switch {
		case statusIn(lead.Status, convertedStatuses):
			perf.Converted++
		case statusIn(lead.Status, lostStatuses):
			perf.Lost++
		}
	}

	marketers := make([]MarketerPerformance, 0, len(byOwner))
	for _, perf := range byOwner {
		perf.Pipeline = perf.Total - perf.Converted - perf.Lost
		perf.ConversionRate = conversionRate(perf.Converted, perf.Total)
		marketers = append(marketers, *perf)
	}
	sort.Slice(marketers, func(i, j int) bool {
		if marketers[i].Converted != marketers[j].Converted {
			return marketers[i].Converted > marketers[j].Converted
		}
		return marketers[i].OwnerID < marketers[j].OwnerID
	})

	return MarketerBreakdown{
		Marketers: marketers,
		Truncated: len(rows) >= GroupingCap,
	}
}

// ComputeSourceHistogram groups the scope's leads by acquisition source.
func (uc *KpiUseCase) ComputeSourceHistogram(ctx context.Context, scope entity.LeadScope, r entity.DateRange) SourceBreakdown {
	rows, err := uc.Leads.FetchForGrouping(ctx, scope, r, GroupingCap)
	if err != nil {
		log.Printf("source histogram degraded to empty: %v", err)
		return SourceBreakdown{Sources: []SourceCount{}}
	}
	if len(rows) == 0 {
		return SourceBreakdown{Sources: []SourceCount{}}
	}

	counts := make(map[string]int)
	for _, lead := range rows {
		counts[lead.Source]++
	}

	sources := make([]SourceCount, 0, len(counts))
	for source, count := range counts {
		sources = append(sources, SourceCount{
			Source:     source,
			Count:      count,
			Percentage: round1(float64(count) / float64(len(rows)) * 100),
		})
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Count != sources[j].Count {
			return sources[i].Count > sources[j].Count
		}
		return sources[i].Source < sources[j].Source
	})

	return SourceBreakdown{
		Sources:   sources,
		Truncated: len(rows) >= GroupingCap,
	}
}

func statusIn(status string, set []string) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
