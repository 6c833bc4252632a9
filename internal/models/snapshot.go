package models

// InputSnapshot holds the raw figures for one reporting period.
// Optional fields default to zero when absent from the submitted payload.
type InputSnapshot struct {
	// Revenue & receivables
	TotalRevenue        float64 `json:"totalRevenue"`
	SubscriptionRevenue float64 `json:"subscriptionRevenue"`
	AccountsReceivable  float64 `json:"accountsReceivable"`
	TotalCreditSales    float64 `json:"totalCreditSales"`

	// Payables & inventory
	AccountsPayable float64 `json:"accountsPayable"`
	InventoryValue  float64 `json:"inventoryValue"`
	COGS            float64 `json:"cogs"`

	// Cash flows
	CashInflows       float64 `json:"cashInflows"`
	CashOutflows      float64 `json:"cashOutflows"`
	OperatingExpenses float64 `json:"operatingExpenses"`

	// Reserves & debt
	TotalReserve float64 `json:"totalReserve"`
	UsedReserve  float64 `json:"usedReserve"`
	TotalDebt    float64 `json:"totalDebt"`

	// Customer counts
	TotalUsersStart      float64 `json:"totalUsersStart"`
	TotalUsersEnd        float64 `json:"totalUsersEnd"`
	ChurnedUsers         float64 `json:"churnedUsers"`
	NewUsersAcquired     float64 `json:"newUsersAcquired"`
	TotalAcquisitionCost float64 `json:"totalAcquisitionCost"`
}
