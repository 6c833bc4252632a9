package ccfm

import (
	"testing"

	"github.com/finlytic/ccfm-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Metrics comfortably clear of every threshold.
func healthyMetrics() models.MetricSet {
	return models.MetricSet{
		NCF:                5000,
		CCC:                8.25,
		Runway:             90,
		LTVCACRatio:        4,
		ChurnRate:          5,
		GrossMargin:        60,
		DebtToEquityRatio:  0.5,
		ReserveUtilization: 20,
	}
}

func TestEvaluate_HealthyMetricsRaiseNothing(t *testing.T) {
	alerts := Evaluate(healthyMetrics())
	assert.Equal(t, models.AlertSet{}, alerts)
}

func TestEvaluate_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.MetricSet)
		want   models.AlertSet
	}{
		{"NCF below 2000", func(m *models.MetricSet) { m.NCF = 1999 }, models.AlertSet{CashFlowWarning: true}},
		{"NCF exactly 2000 passes", func(m *models.MetricSet) { m.NCF = 2000 }, models.AlertSet{}},
		{"CCC above 10", func(m *models.MetricSet) { m.CCC = 10.1 }, models.AlertSet{CCCWarning: true}},
		{"CCC exactly 10 passes", func(m *models.MetricSet) { m.CCC = 10 }, models.AlertSet{}},
		{"runway below 30", func(m *models.MetricSet) { m.Runway = 29 }, models.AlertSet{RunwayWarning: true}},
		{"LTV/CAC below 3", func(m *models.MetricSet) { m.LTVCACRatio = 2.9 }, models.AlertSet{LTVCACWarning: true}},
		{"churn above 10", func(m *models.MetricSet) { m.ChurnRate = 11 }, models.AlertSet{ChurnWarning: true}},
		{"margin below 30", func(m *models.MetricSet) { m.GrossMargin = 29.9 }, models.AlertSet{MarginWarning: true}},
		{"debt-to-equity above 2", func(m *models.MetricSet) { m.DebtToEquityRatio = 2.1 }, models.AlertSet{DebtWarning: true}},
		{"reserve utilization above 50", func(m *models.MetricSet) { m.ReserveUtilization = 51 }, models.AlertSet{ReserveWarning: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := healthyMetrics()
			tt.mutate(&m)
			assert.Equal(t, tt.want, Evaluate(m))
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	m := healthyMetrics()
	m.NCF = -100
	m.ChurnRate = 40

	first := Evaluate(m)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(m))
	}
}

func TestRecommend_EmptyAlertSet(t *testing.T) {
	recs := Recommend(models.AlertSet{})
	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_CanonicalOrderAndStaticContent(t *testing.T) {
	all := models.AlertSet{
		CashFlowWarning: true,
		CCCWarning:      true,
		RunwayWarning:   true,
		LTVCACWarning:   true,
		ChurnWarning:    true,
		MarginWarning:   true,
		DebtWarning:     true,
		ReserveWarning:  true,
	}

	recs := Recommend(all)
	require.Len(t, recs, 8)

	wantCategories := []string{
		"Cash Flow",
		"Cash Conversion Cycle",
		"Runway",
		"Customer Acquisition",
		"Customer Retention",
		"Profitability",
		"Financial Health",
		"Reserves",
	}
	wantPriorities := []string{
		PriorityHigh, PriorityMedium, PriorityHigh, PriorityMedium,
		PriorityHigh, PriorityMedium, PriorityHigh, PriorityMedium,
	}
	for i, rec := range recs {
		assert.Equal(t, wantCategories[i], rec.Category)
		assert.Equal(t, wantPriorities[i], rec.Priority)
		assert.NotEmpty(t, rec.Message)
	}
}

func TestRecommend_SubsetKeepsOrder(t *testing.T) {
	recs := Recommend(models.AlertSet{ReserveWarning: true, CashFlowWarning: true})

	require.Len(t, recs, 2)
	assert.Equal(t, "Cash Flow", recs[0].Category)
	assert.Equal(t, "Reserves", recs[1].Category)
}

func TestPipeline_ScenarioWithoutWarnings(t *testing.T) {
	m := Calculate(models.InputSnapshot{
		TotalRevenue:       100000,
		TotalUsersStart:    50,
		AccountsReceivable: 20000,
		TotalCreditSales:   50000,
		AccountsPayable:    15000,
		COGS:               40000,
		InventoryValue:     10000,
		CashInflows:        30000,
		CashOutflows:       25000,
	})

	alerts := Evaluate(m)
	assert.False(t, alerts.CashFlowWarning) // NCF 5000 >= 2000
	assert.False(t, alerts.CCCWarning)      // CCC 8.25 <= 10
}
