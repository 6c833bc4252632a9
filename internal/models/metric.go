package models

// MetricSet holds the derived metrics for one analysis. Every field is a
// total function of the input snapshot; degenerate denominators fall back
// to a defined value instead of producing NaN or Inf.
type MetricSet struct {
	// Core cash flow
	ARPU     float64 `json:"ARPU"`
	DSO      float64 `json:"DSO"`
	DPO      float64 `json:"DPO"`
	DIO      float64 `json:"DIO"`
	CCC      float64 `json:"CCC"`
	NCF      float64 `json:"NCF"`
	BurnRate float64 `json:"burnRate"`
	Runway   float64 `json:"runway"`

	// Financial health
	QuickRatio            float64 `json:"quickRatio"`
	GrossMargin           float64 `json:"grossMargin"`
	OperatingExpenseRatio float64 `json:"operatingExpenseRatio"`
	DebtToEquityRatio     float64 `json:"debtToEquityRatio"`

	// Customer economics
	ChurnRate             float64 `json:"churnRate"`
	CustomerRetentionRate float64 `json:"customerRetentionRate"`
	LTV                   float64 `json:"LTV"`
	CAC                   float64 `json:"CAC"`
	LTVCACRatio           float64 `json:"LTVCACRatio"`

	// Revenue mix
	SubscriptionRevenueMix float64 `json:"subscriptionRevenueMix"`
	OneTimeRevenueMix      float64 `json:"oneTimeRevenueMix"`

	// Reserves & net worth
	ReserveUtilization float64 `json:"reserveUtilization"`
	NetWorth           float64 `json:"netWorth"`
}

// AlertSet flags the threshold rules triggered by a metric set
type AlertSet struct {
	CashFlowWarning bool `json:"cashFlowWarning"`
	CCCWarning      bool `json:"cccWarning"`
	RunwayWarning   bool `json:"runwayWarning"`
	LTVCACWarning   bool `json:"ltvCacWarning"`
	ChurnWarning    bool `json:"churnWarning"`
	MarginWarning   bool `json:"marginWarning"`
	DebtWarning     bool `json:"debtWarning"`
	ReserveWarning  bool `json:"reserveWarning"`
}

// Recommendation is actionable guidance derived from a triggered alert.
// Priority is a fixed property of the alert kind, either "high" or "medium".
type Recommendation struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// MetricStatus is one dashboard row: a display name, a formatted value and
// an attention flag. The flag thresholds belong to the presentation layer
// and are looser or stricter than the AlertSet thresholds in places.
type MetricStatus struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Alert bool   `json:"alert"`
}
