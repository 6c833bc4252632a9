package ccfm

import "github.com/finlytic/ccfm-service/internal/models"

// Day-count basis for the outstanding-days metrics.
const periodDays = 30

// Revenue per user is projected over a fixed three-period customer lifespan.
const ltvHorizon = 3

// Calculate derives the full metric set from a validated snapshot. It is
// total: every guarded division falls back to 0 (100 for the one-time
// revenue mix) when the denominator is degenerate, so no output field is
// ever NaN or Inf.
func Calculate(in models.InputSnapshot) models.MetricSet {
	m := models.MetricSet{
		ARPU:     ratio(in.TotalRevenue, in.TotalUsersStart),
		DSO:      ratio(in.AccountsReceivable*periodDays, in.TotalCreditSales),
		DPO:      ratio(in.AccountsPayable*periodDays, in.COGS),
		DIO:      ratio(in.InventoryValue*periodDays, in.COGS),
		NCF:      in.CashInflows - in.CashOutflows,
		BurnRate: in.CashOutflows,
		Runway:   ratio(in.TotalReserve, in.CashOutflows),

		QuickRatio:            ratio(in.CashInflows+in.AccountsReceivable, in.AccountsPayable),
		GrossMargin:           ratio(in.TotalRevenue-in.COGS, in.TotalRevenue) * 100,
		OperatingExpenseRatio: ratio(in.OperatingExpenses, in.TotalRevenue) * 100,
		DebtToEquityRatio:     ratio(in.TotalDebt, in.TotalRevenue+in.AccountsReceivable-in.AccountsPayable),

		ChurnRate: ratio(in.ChurnedUsers, in.TotalUsersStart) * 100,
		LTV:       ratio(in.TotalRevenue, in.TotalUsersStart) * ltvHorizon,
		CAC:       ratio(in.TotalAcquisitionCost, in.NewUsersAcquired),

		SubscriptionRevenueMix: ratio(in.SubscriptionRevenue, in.TotalRevenue) * 100,

		ReserveUtilization: ratio(in.UsedReserve, in.TotalReserve) * 100,
		NetWorth:           in.CashInflows + in.AccountsReceivable + in.InventoryValue - in.AccountsPayable,
	}

	m.CCC = m.DSO + m.DIO - m.DPO
	m.LTVCACRatio = ratio(m.LTV, m.CAC)

	// Retained users can go negative when acquisitions outnumber the
	// period-end count; only the zero-start case is guarded.
	if in.TotalUsersStart != 0 {
		m.CustomerRetentionRate = (in.TotalUsersEnd - in.NewUsersAcquired) / in.TotalUsersStart * 100
	}

	if in.TotalRevenue > 0 {
		m.OneTimeRevenueMix = 100 - m.SubscriptionRevenueMix
	} else {
		m.OneTimeRevenueMix = 100
	}

	return m
}

// ratio is num/denom with the standard fallback: 0 unless denom > 0.
func ratio(num, denom float64) float64 {
	if denom > 0 {
		return num / denom
	}
	return 0
}
