package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/usecase"
)

var (
	soldSet      = []string{entity.LeadStatusSold}
	lostSet      = []string{entity.LeadStatusNotInterested, entity.LeadStatusNoResponse, entity.LeadStatusInvalidNumber, entity.LeadStatusLostLegacy}
	contactedSet = []string{entity.LeadStatusContacted, entity.LeadStatusQualified, entity.LeadStatusProposal, entity.LeadStatusWonLegacy}
)

func utcDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Marketer A owns 10 leads in range: 6 SOLD, 2 NOT_INTERESTED, 2 CONTACTED.
func TestComputeMetricsForOwnerScope(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	uc := usecase.NewKpiUseCase(leads)

	scope := entity.ScopeOwner("marketer-a")
	r := entity.DateRange{}

	leads.On("Count", ctx, scope, r).Return(10, nil)
	leads.On("CountByStatusIn", ctx, scope, r, soldSet).Return(6, nil)
	leads.On("CountByStatusIn", ctx, scope, r, lostSet).Return(2, nil)
	leads.On("CountByStatusIn", ctx, scope, r, contactedSet).Return(2, nil)

	metrics := uc.ComputeMetrics(ctx, scope, r)

	assert.Equal(t, usecase.KpiMetrics{
		Total:          10,
		Converted:      6,
		Lost:           2,
		Contacted:      2,
		Pipeline:       2,
		ConversionRate: 60.0,
	}, metrics)

	// total == converted + lost + pipeline
	assert.Equal(t, metrics.Total, metrics.Converted+metrics.Lost+metrics.Pipeline)
}

func TestComputeMetricsZeroTotal(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	uc := usecase.NewKpiUseCase(leads)

	scope := entity.ScopeAll()
	r := entity.DateRange{}
	leads.On("Count", ctx, scope, r).Return(0, nil)
	leads.On("CountByStatusIn", ctx, scope, r, mock.Anything).Return(0, nil)

	metrics := uc.ComputeMetrics(ctx, scope, r)

	assert.Equal(t, 0, metrics.Total)
	assert.Equal(t, 0.0, metrics.ConversionRate)
}

// A store failure must zero the dashboard, not crash it.
func TestComputeMetricsDegradesToZeroOnError(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	uc := usecase.NewKpiUseCase(leads)

	scope := entity.ScopeAll()
	r := entity.DateRange{}
	leads.On("Count", ctx, scope, r).Return(0, assert.AnError)

	metrics := uc.ComputeMetrics(ctx, scope, r)

	assert.Equal(t, usecase.KpiMetrics{}, metrics)
}

func TestStatusBreakdownSumsToTotal(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	uc := usecase.NewKpiUseCase(leads)

	scope := entity.ScopeOwner("marketer-a")
	r := entity.DateRange{}
	counts := map[string]int{
		entity.LeadStatusSold:          6,
		entity.LeadStatusNotInterested: 2,
		entity.LeadStatusContacted:     2,
	}

	leads.On("Count", ctx, scope, r).Return(10, nil)
	for status, count := range counts {
		leads.On("CountByStatusIn", ctx, scope, r, []string{status}).Return(count, nil)
	}
	leads.On("CountByStatusIn", ctx, scope, r, mock.Anything).Return(0, nil).Maybe()

	breakdown := uc.ComputeStatusBreakdown(ctx, scope, r)

	sum := 0
	for _, bucket := range breakdown {
		sum += bucket.Count
	}
	assert.Equal(t, 10, sum)

	for _, bucket := range breakdown {
		if bucket.Status == entity.LeadStatusSold {
			assert.Equal(t, 60.0, bucket.Percentage)
		}
	}
}

func TestStatusBreakdownEmptyWhenNoLeads(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	uc := usecase.NewKpiUseCase(leads)

	scope := entity.ScopeAll()
	r := entity.DateRange{}
	leads.On("Count", ctx, scope, r).Return(0, nil)

	assert.Empty(t, uc.ComputeStatusBreakdown(ctx, scope, r))
	leads.AssertNotCalled(t, "CountByStatusIn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Days without leads still appear with all-zero counts: the chart x-axis
// must be contiguous.
func TestTimeSeriesZeroFillsMissingDays(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	uc := usecase.NewKpiUseCase(leads)

	from := utcDay(2026, time.March, 1)
	to := time.Date(2026, time.March, 4, 23, 59, 59, 0, time.UTC)
	scope := entity.ScopeAll()
	r := entity.DateRange{From: &from, To: &to}

	leads.On("DailyStatusCounts", ctx, scope, r).Return([]entity.DailyStatusCount{
		{Day: utcDay(2026, time.March, 1), Status: entity.LeadStatusSold, Count: 2},
		{Day: utcDay(2026, time.March, 1), Status: entity.LeadStatusNew, Count: 1},
		{Day: utcDay(2026, time.March, 3), Status: entity.LeadStatusNoResponse, Count: 4},
	}, nil)

	series := uc.ComputeTimeSeries(ctx, scope, r)

	assert.Len(t, series, 4)
	assert.Equal(t, "2026-03-01", series[0].Day)
	assert.Equal(t, "2026-03-02", series[1].Day)
	assert.Equal(t, "2026-03-03", series[2].Day)
	assert.Equal(t, "2026-03-04", series[3].Day)

	assert.Equal(t, 3, series[0].Total)
	assert.Equal(t, 2, series[0].Sold)
	assert.Equal(t, 1, series[0].Pipeline) // the NEW lead

	assert.Equal(t, usecase.DayBucket{Day: "2026-03-02"}, series[1])

	assert.Equal(t, 4, series[2].NoResponse)
	assert.Equal(t, 0, series[2].Pipeline)
}

func TestTimeSeriesDegradesToEmptyOnError(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	uc := usecase.NewKpiUseCase(leads)

	from := utcDay(2026, time.March, 1)
	to := utcDay(2026, time.March, 2)
	r := entity.DateRange{From: &from, To: &to}
	leads.On("DailyStatusCounts", ctx, entity.ScopeAll(), r).Return(nil, assert.AnError)

	assert.Empty(t, uc.ComputeTimeSeries(ctx, entity.ScopeAll(), r))
}

func TestConversionBands(t *testing.T) {
	assert.Equal(t, "Excellent", usecase.ConversionBand(50.1))
	assert.Equal(t, "Good", usecase.ConversionBand(50))
	assert.Equal(t, "Good", usecase.ConversionBand(25))
	assert.Equal(t, "Below Target", usecase.ConversionBand(24.9))
	assert.Equal(t, "Below Target", usecase.ConversionBand(0))
}

func TestMarketerPerformanceGroupsByOwner(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	uc := usecase.NewKpiUseCase(leads)

	r := entity.DateRange{}
	rows := []*entity.Lead{
		{OwnerID: "a", Status: entity.LeadStatusSold},
		{OwnerID: "a", Status: entity.LeadStatusSold},
		{OwnerID: "a", Status: entity.LeadStatusNotInterested},
		{OwnerID: "a", Status: entity.LeadStatusNew},
		{OwnerID: "b", Status: entity.LeadStatusSold},
		{OwnerID: "b", Status: entity.LeadStatusContacted},
	}
	leads.On("FetchForGrouping", ctx, entity.ScopeAll(), r, usecase.GroupingCap).Return(rows, nil)

	breakdown := uc.ComputeMarketerPerformance(ctx, r)

	assert.False(t, breakdown.Truncated)
	assert.Len(t, breakdown.Marketers, 2)

	top := breakdown.Marketers[0]
	assert.Equal(t, "a", top.OwnerID)
	assert.Equal(t, 4, top.Total)
	assert.Equal(t, 2, top.Converted)
	assert.Equal(t, 1, top.Lost)
	assert.Equal(t, 1, top.Pipeline)
	assert.Equal(t, 50.0, top.ConversionRate)
}

func TestSourceHistogramFlagsTruncation(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadRepository)
	uc := usecase.NewKpiUseCase(leads)

	r := entity.DateRange{}
	rows := make([]*entity.Lead, usecase.GroupingCap)
	for i := range rows {
		rows[i] = &entity.Lead{OwnerID: "a", Source: entity.LeadSourceWebsite, Status: entity.LeadStatusNew}
	}
	leads.On("FetchForGrouping", ctx, entity.ScopeAll(), r, usecase.GroupingCap).Return(rows, nil)

	breakdown := uc.ComputeSourceHistogram(ctx, entity.ScopeAll(), r)

	assert.True(t, breakdown.Truncated)
	assert.Len(t, breakdown.Sources, 1)
	assert.Equal(t, usecase.GroupingCap, breakdown.Sources[0].Count)
	assert.Equal(t, 100.0, breakdown.Sources[0].Percentage)
}
