package usecase

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

// Status bucket definitions. The legacy WON/LOST pair still exists in old
// rows: WON counts as reached-out-to, LOST as lost. The write path never
// produces them.
var (
	convertedStatuses = []string{entity.LeadStatusSold}
	lostStatuses      = []string{
		entity.LeadStatusNotInterested,
		entity.LeadStatusNoResponse,
		entity.LeadStatusInvalidNumber,
		entity.LeadStatusLostLegacy,
	}
	contactedStatuses = []string{
		entity.LeadStatusContacted,
		entity.LeadStatusQualified,
		entity.LeadStatusProposal,
		entity.LeadStatusWonLegacy,
	}
	reportStatuses = []string{
		entity.LeadStatusNew,
		entity.LeadStatusContacted,
		entity.LeadStatusQualified,
		entity.LeadStatusProposal,
		entity.LeadStatusSold,
		entity.LeadStatusNotInterested,
		entity.LeadStatusNoResponse,
		entity.LeadStatusInvalidNumber,
		entity.LeadStatusWonLegacy,
		entity.LeadStatusLostLegacy,
	}
)

type KpiMetrics struct {
	Total          int     `json:"total"`
	Converted      int     `json:"converted"`
	Lost           int     `json:"lost"`
	Contacted      int     `json:"contacted"`
	Pipeline       int     `json:"pipeline"`
	ConversionRate float64 `json:"conversionRate"`
}

type StatusBucket struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DayBucket is one calendar day of the KPI chart. Days with no leads are
// still emitted with all-zero counts so the chart x-axis stays contiguous.
type DayBucket struct {
	Day           string `json:"day"`
	Total         int    `json:"total"`
	Sold          int    `json:"sold"`
	NotInterested int    `json:"notInterested"`
	NoResponse    int    `json:"noResponse"`
	InvalidNumber int    `json:"invalidNumber"`
	Contacted     int    `json:"contacted"`
	Pipeline      int    `json:"pipeline"`
}

type KpiUseCase struct {
	Leads entity.LeadRepositoryInterface
	now   func() time.Time
}

func NewKpiUseCase(leads entity.LeadRepositoryInterface) *KpiUseCase {
	return &KpiUseCase{Leads: leads, now: time.Now}
}

// ComputeMetrics returns the headline KPI numbers for a scope and range.
// A store failure degrades to the zero value: the dashboard shows zeros
// instead of an error page. That policy is why this returns no error.
func (uc *KpiUseCase) ComputeMetrics(ctx context.Context, scope entity.LeadScope, r entity.DateRange) KpiMetrics {
	total, err := uc.Leads.Count(ctx, scope, r)
	if err != nil {
		log.Printf("kpi metrics degraded to zero: count failed: %v", err)
		return KpiMetrics{}
	}

	converted, err := uc.Leads.CountByStatusIn(ctx, scope, r, convertedStatuses...)
	if err != nil {
		log.Printf("kpi metrics degraded to zero: converted count failed: %v", err)
		return KpiMetrics{}
	}

	lost, err := uc.Leads.CountByStatusIn(ctx, scope, r, lostStatuses...)
	if err != nil {
		log.Printf("kpi metrics degraded to zero: lost count failed: %v", err)
		return KpiMetrics{}
	}

	contacted, err := uc.Leads.CountByStatusIn(ctx, scope, r, contactedStatuses...)
	if err != nil {
		log.Printf("kpi metrics degraded to zero: contacted count failed: %v", err)
		return KpiMetrics{}
	}

	return KpiMetrics{
		Total:          total,
		Converted:      converted,
		Lost:           lost,
		Contacted:      contacted,
		Pipeline:       total - converted - lost,
		ConversionRate: conversionRate(converted, total),
	}
}

// ComputeStatusBreakdown counts every tracked status individually. Each
// count is its own server-side COUNT, so the breakdown stays exact no
// matter how many rows match.
func (uc *KpiUseCase) ComputeStatusBreakdown(ctx context.Context, scope entity.LeadScope, r entity.DateRange) []StatusBucket {
	total, err := uc.Leads.Count(ctx, scope, r)
	if err != nil {
		log.Printf("kpi breakdown degraded to empty: count failed: %v", err)
		return []StatusBucket{}
	}
	if total == 0 {
		return []StatusBucket{}
	}

	buckets := make([]StatusBucket, 0, len(reportStatuses))
	for _, status := range reportStatuses {
		count, err := uc.Leads.CountByStatusIn(ctx, scope, r, status)
		if err != nil {
			log.Printf("kpi breakdown degraded to empty: %s count failed: %v", status, err)
			return []StatusBucket{}
		}
		buckets = append(buckets, StatusBucket{
			Status:     status,
			Count:      count,
			Percentage: round1(float64(count) / float64(total) * 100),
		})
	}
	return buckets
}

// ComputeTimeSeries buckets the scope's leads by UTC calendar day across
// the whole range, zero-filling days without leads.
func (uc *KpiUseCase) ComputeTimeSeries(ctx context.Context, scope entity.LeadScope, r entity.DateRange) []DayBucket {
	r = ClampForSeries(r, uc.now())

	rows, err := uc.Leads.DailyStatusCounts(ctx, scope, r)
	if err != nil {
		log.Printf("kpi time series degraded to empty: %v", err)
		return []DayBucket{}
	}

	byDay := make(map[string]*DayBucket)
	for _, row := range rows {
		key := row.Day.UTC().Format("2006-01-02")
		bucket, ok := byDay[key]
		if !ok {
			bucket = &DayBucket{Day: key}
			byDay[key] = bucket
		}

		bucket.Total += row.Count
		switch row.Status {
		case entity.LeadStatusSold:
			bucket.Sold += row.Count
		case entity.LeadStatusNotInterested, entity.LeadStatusLostLegacy:
			bucket.NotInterested += row.Count
		case entity.LeadStatusNoResponse:
			bucket.NoResponse += row.Count
		case entity.LeadStatusInvalidNumber:
			bucket.InvalidNumber += row.Count
		case entity.LeadStatusContacted, entity.LeadStatusQualified,
			entity.LeadStatusProposal, entity.LeadStatusWonLegacy:
			bucket.Contacted += row.Count
		}
	}

	series := []DayBucket{}
	for day := dayFloor(*r.From); !day.After(dayFloor(*r.To)); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		if bucket, ok := byDay[key]; ok {
			bucket.Pipeline = bucket.Total - bucket.Sold -
				bucket.NotInterested - bucket.NoResponse - bucket.InvalidNumber
			series = append(series, *bucket)
		} else {
			series = append(series, DayBucket{Day: key})
		}
	}
	return series
}

// ConversionBand labels a conversion rate for the dashboard. Presentation
// only, never stored.
func ConversionBand(rate float64) string {
	switch {
	case rate > 50:
		return "Excellent"
	case rate >= 25:
		return "Good"
	default:
		return "Below Target"
	}
}

func conversionRate(converted, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(converted) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
