package ccfm

import (
	"fmt"

	"github.com/finlytic/ccfm-service/internal/models"
)

// Statuses builds the per-metric dashboard rows. The attention flags mix
// the computed alert set with the presentation layer's own inline
// thresholds (DSO > 15 vs the alert set's CCC > 10, and so on); the two
// sets of literals have always disagreed and are kept as-is.
func Statuses(m models.MetricSet, alerts models.AlertSet) []models.MetricStatus {
	return []models.MetricStatus{
		// Core cash flow
		{Name: "Average Revenue Per User (ARPU)", Value: fmt.Sprintf("$%.2f", m.ARPU), Alert: alerts.LTVCACWarning},
		{Name: "Days Sales Outstanding (DSO)", Value: fmt.Sprintf("%.1f days", m.DSO), Alert: m.DSO > 15},
		{Name: "Days Payable Outstanding (DPO)", Value: fmt.Sprintf("%.1f days", m.DPO), Alert: m.DPO < 5},
		{Name: "Days Inventory Outstanding (DIO)", Value: fmt.Sprintf("%.1f days", m.DIO), Alert: m.DIO > 10},
		{Name: "Cash Conversion Cycle (CCC)", Value: fmt.Sprintf("%.1f days", m.CCC), Alert: alerts.CCCWarning},
		{Name: "Net Cash Flow (NCF)", Value: fmt.Sprintf("$%.2f", m.NCF), Alert: alerts.CashFlowWarning},
		{Name: "Burn Rate", Value: fmt.Sprintf("$%.2f/day", m.BurnRate), Alert: m.BurnRate > 5000},
		{Name: "Runway", Value: fmt.Sprintf("%.1f days", m.Runway), Alert: alerts.RunwayWarning},

		// Financial health
		{Name: "Quick Ratio", Value: fmt.Sprintf("%.2f", m.QuickRatio), Alert: m.QuickRatio < 1},
		{Name: "Gross Margin", Value: fmt.Sprintf("%.2f%%", m.GrossMargin), Alert: alerts.MarginWarning},
		{Name: "Operating Expense Ratio", Value: fmt.Sprintf("%.2f%%", m.OperatingExpenseRatio), Alert: m.OperatingExpenseRatio > 70},
		{Name: "Debt-to-Equity Ratio", Value: fmt.Sprintf("%.2f", m.DebtToEquityRatio), Alert: alerts.DebtWarning},

		// Customer economics
		{Name: "Churn Rate", Value: fmt.Sprintf("%.2f%%", m.ChurnRate), Alert: alerts.ChurnWarning},
		{Name: "Customer Retention Rate", Value: fmt.Sprintf("%.2f%%", m.CustomerRetentionRate), Alert: m.CustomerRetentionRate < 80},
		{Name: "Lifetime Value (LTV)", Value: fmt.Sprintf("$%.2f", m.LTV), Alert: m.LTV < 100},
		{Name: "Customer Acquisition Cost (CAC)", Value: fmt.Sprintf("$%.2f", m.CAC), Alert: m.CAC > 150},
		{Name: "LTV/CAC Ratio", Value: fmt.Sprintf("%.2f", m.LTVCACRatio), Alert: alerts.LTVCACWarning},

		// Revenue mix
		{Name: "Subscription Revenue Mix", Value: fmt.Sprintf("%.2f%%", m.SubscriptionRevenueMix), Alert: m.SubscriptionRevenueMix < 60},
		{Name: "One-Time Revenue Mix", Value: fmt.Sprintf("%.2f%%", m.OneTimeRevenueMix), Alert: m.OneTimeRevenueMix > 40},

		// Reserves & net worth
		{Name: "Reserve Utilization", Value: fmt.Sprintf("%.2f%%", m.ReserveUtilization), Alert: alerts.ReserveWarning},
		{Name: "Net Worth", Value: fmt.Sprintf("$%.2f", m.NetWorth), Alert: m.NetWorth < 0},
	}
}
