package ccfm

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/finlytic/ccfm-service/internal/models"
)

// Validation error codes
const (
	CodeMissingField = "MissingField"
	CodeInvalidValue = "InvalidValue"
)

// FieldError describes one validation violation. Violations are always
// reported as a batch covering every bad field in the payload.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Field)
}

type inputField struct {
	key      string
	required bool
	set      func(*models.InputSnapshot, float64)
}

// Field order is fixed so error batches come back in a stable order.
var inputFields = []inputField{
	{"totalRevenue", true, func(s *models.InputSnapshot, v float64) { s.TotalRevenue = v }},
	{"accountsReceivable", true, func(s *models.InputSnapshot, v float64) { s.AccountsReceivable = v }},
	{"totalCreditSales", true, func(s *models.InputSnapshot, v float64) { s.TotalCreditSales = v }},
	{"accountsPayable", true, func(s *models.InputSnapshot, v float64) { s.AccountsPayable = v }},
	{"cogs", true, func(s *models.InputSnapshot, v float64) { s.COGS = v }},
	{"cashInflows", true, func(s *models.InputSnapshot, v float64) { s.CashInflows = v }},
	{"cashOutflows", true, func(s *models.InputSnapshot, v float64) { s.CashOutflows = v }},
	{"totalUsersStart", true, func(s *models.InputSnapshot, v float64) { s.TotalUsersStart = v }},
	{"subscriptionRevenue", false, func(s *models.InputSnapshot, v float64) { s.SubscriptionRevenue = v }},
	{"inventoryValue", false, func(s *models.InputSnapshot, v float64) { s.InventoryValue = v }},
	{"operatingExpenses", false, func(s *models.InputSnapshot, v float64) { s.OperatingExpenses = v }},
	{"totalReserve", false, func(s *models.InputSnapshot, v float64) { s.TotalReserve = v }},
	{"usedReserve", false, func(s *models.InputSnapshot, v float64) { s.UsedReserve = v }},
	{"totalDebt", false, func(s *models.InputSnapshot, v float64) { s.TotalDebt = v }},
	{"totalUsersEnd", false, func(s *models.InputSnapshot, v float64) { s.TotalUsersEnd = v }},
	{"churnedUsers", false, func(s *models.InputSnapshot, v float64) { s.ChurnedUsers = v }},
	{"newUsersAcquired", false, func(s *models.InputSnapshot, v float64) { s.NewUsersAcquired = v }},
	{"totalAcquisitionCost", false, func(s *models.InputSnapshot, v float64) { s.TotalAcquisitionCost = v }},
}

// Validate checks a raw payload against the required-field and
// non-negativity rules and produces either a usable snapshot or the full
// list of violations, never both. Absent optional fields are zero in the
// returned snapshot.
func Validate(raw map[string]any) (models.InputSnapshot, []FieldError) {
	var snap models.InputSnapshot
	var errs []FieldError

	for _, f := range inputFields {
		val, present := raw[f.key]
		if !present || val == nil || val == "" {
			if f.required {
				errs = append(errs, FieldError{
					Field:   f.key,
					Code:    CodeMissingField,
					Message: fmt.Sprintf("Missing required field: %s", f.key),
				})
			}
			continue
		}

		n, ok := toNumber(val)
		if !ok || n < 0 {
			errs = append(errs, FieldError{
				Field:   f.key,
				Code:    CodeInvalidValue,
				Message: fmt.Sprintf("Invalid value for %s: must be a positive number", f.key),
			})
			continue
		}
		f.set(&snap, n)
	}

	if len(errs) > 0 {
		return models.InputSnapshot{}, errs
	}
	return snap, nil
}

// toNumber coerces the JSON value shapes we accept (float64, json.Number,
// numeric string) into a finite float64.
func toNumber(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
