package models

import "time"

// Analysis is one persisted snapshot with its computed results. Immutable
// once written; recommendations are regenerated from the alert set on read
// and never stored.
type Analysis struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	Inputs    InputSnapshot `json:"inputs"`
	Metrics   MetricSet     `json:"metrics"`
	Alerts    AlertSet      `json:"alerts"`
	CreatedAt time.Time     `json:"createdAt"`
}

// TrendPoint is the compact history projection used for charting
type TrendPoint struct {
	CreatedAt time.Time    `json:"createdAt"`
	Metrics   TrendMetrics `json:"metrics"`
}

// TrendMetrics carries the three headline series plotted on the dashboard
type TrendMetrics struct {
	NCF         float64 `json:"NCF"`
	CCC         float64 `json:"CCC"`
	LTVCACRatio float64 `json:"LTVCACRatio"`
}
