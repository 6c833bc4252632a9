package ccfm

import "github.com/finlytic/ccfm-service/internal/models"

// Recommendation priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// alertRule ties one threshold predicate to its alert flag and its fixed
// recommendation. Evaluate and Recommend are both folds over this table,
// so the thresholds and messages live in exactly one place.
type alertRule struct {
	predicate func(models.MetricSet) bool
	get       func(models.AlertSet) bool
	set       func(*models.AlertSet, bool)
	category  string
	message   string
	priority  string
}

// Rule order is the canonical recommendation order.
var alertRules = []alertRule{
	{
		predicate: func(m models.MetricSet) bool { return m.NCF < 2000 },
		get:       func(a models.AlertSet) bool { return a.CashFlowWarning },
		set:       func(a *models.AlertSet, v bool) { a.CashFlowWarning = v },
		category:  "Cash Flow",
		message:   "Consider reducing expenses or increasing revenue to improve cash flow",
		priority:  PriorityHigh,
	},
	{
		predicate: func(m models.MetricSet) bool { return m.CCC > 10 },
		get:       func(a models.AlertSet) bool { return a.CCCWarning },
		set:       func(a *models.AlertSet, v bool) { a.CCCWarning = v },
		category:  "Cash Conversion Cycle",
		message:   "Optimize inventory management and payment terms to reduce CCC",
		priority:  PriorityMedium,
	},
	{
		predicate: func(m models.MetricSet) bool { return m.Runway < 30 },
		get:       func(a models.AlertSet) bool { return a.RunwayWarning },
		set:       func(a *models.AlertSet, v bool) { a.RunwayWarning = v },
		category:  "Runway",
		message:   "Consider raising additional capital to extend runway",
		priority:  PriorityHigh,
	},
	{
		predicate: func(m models.MetricSet) bool { return m.LTVCACRatio < 3 },
		get:       func(a models.AlertSet) bool { return a.LTVCACWarning },
		set:       func(a *models.AlertSet, v bool) { a.LTVCACWarning = v },
		category:  "Customer Acquisition",
		message:   "Review customer acquisition strategies to improve LTV/CAC ratio",
		priority:  PriorityMedium,
	},
	{
		predicate: func(m models.MetricSet) bool { return m.ChurnRate > 10 },
		get:       func(a models.AlertSet) bool { return a.ChurnWarning },
		set:       func(a *models.AlertSet, v bool) { a.ChurnWarning = v },
		category:  "Customer Retention",
		message:   "Implement customer retention strategies to reduce churn",
		priority:  PriorityHigh,
	},
	{
		predicate: func(m models.MetricSet) bool { return m.GrossMargin < 30 },
		get:       func(a models.AlertSet) bool { return a.MarginWarning },
		set:       func(a *models.AlertSet, v bool) { a.MarginWarning = v },
		category:  "Profitability",
		message:   "Review pricing strategy and cost structure to improve margins",
		priority:  PriorityMedium,
	},
	{
		predicate: func(m models.MetricSet) bool { return m.DebtToEquityRatio > 2 },
		get:       func(a models.AlertSet) bool { return a.DebtWarning },
		set:       func(a *models.AlertSet, v bool) { a.DebtWarning = v },
		category:  "Financial Health",
		message:   "Consider debt restructuring or equity financing to improve debt-to-equity ratio",
		priority:  PriorityHigh,
	},
	{
		predicate: func(m models.MetricSet) bool { return m.ReserveUtilization > 50 },
		get:       func(a models.AlertSet) bool { return a.ReserveWarning },
		set:       func(a *models.AlertSet, v bool) { a.ReserveWarning = v },
		category:  "Reserves",
		message:   "Monitor reserve utilization and consider building additional reserves",
		priority:  PriorityMedium,
	},
}

// Evaluate applies every threshold rule to a metric set. Pure and
// deterministic: equal metric sets always produce equal alert sets.
func Evaluate(m models.MetricSet) models.AlertSet {
	var alerts models.AlertSet
	for _, r := range alertRules {
		r.set(&alerts, r.predicate(m))
	}
	return alerts
}

// Recommend maps triggered alerts to guidance, in canonical rule order.
// An empty alert set yields an empty (nil-free) slice so callers can
// render a "no issues" state.
func Recommend(alerts models.AlertSet) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(alertRules))
	for _, r := range alertRules {
		if r.get(alerts) {
			recs = append(recs, models.Recommendation{
				Category: r.category,
				Message:  r.message,
				Priority: r.priority,
			})
		}
	}
	return recs
}
