package ccfm

import "github.com/finlytic/ccfm-service/internal/models"

// TrendView projects persisted analyses into the compact series charted on
// the dashboard. The caller supplies the records most-recent-first and
// already bounded; nothing is recomputed here, and metrics absent from a
// legacy record simply read as 0.
func TrendView(records []models.Analysis) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, len(records))
	for _, rec := range records {
		points = append(points, models.TrendPoint{
			CreatedAt: rec.CreatedAt,
			Metrics: models.TrendMetrics{
				NCF:         rec.Metrics.NCF,
				CCC:         rec.Metrics.CCC,
				LTVCACRatio: rec.Metrics.LTVCACRatio,
			},
		})
	}
	return points
}
