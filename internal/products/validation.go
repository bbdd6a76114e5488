package products

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

type ValidationMode int

const (
	// ModeCreate checks every field whether or not it was supplied.
	ModeCreate ValidationMode = iota
	// ModeUpdate checks only the fields present in the body: absence is
	// fine, presence of an invalid value is not.
	ModeUpdate
)

const maxNameLength = 255

// ValidateFields checks name, weight and threshold_days against the
// configured limits and returns every problem found. expiry_date is
// deliberately not checked here; date normalization is a separate concern
// with its own error. The body is never mutated.
func ValidateFields(body RawBody, mode ValidationMode, limits Limits) []string {
	var errs []string

	if mode == ModeCreate || body.Has("name") {
		name := body.String("name")
		if name == "" {
			errs = append(errs, "product name is required")
		} else if len([]rune(name)) > maxNameLength {
			errs = append(errs, fmt.Sprintf("product name must not exceed %d characters", maxNameLength))
		}
	}

	if mode == ModeCreate || body.Has("weight") {
		errs = append(errs, validateWeight(body, limits)...)
	}

	// threshold_days falls back to a configured default on create, so unlike
	// name and weight it is only checked when actually supplied.
	if body.Has("threshold_days") {
		if _, ok := ParseThreshold(body, limits); !ok {
			errs = append(errs, fmt.Sprintf("warning threshold must be between 1 and %d days", limits.MaxThresholdDays))
		}
	}

	return errs
}

func validateWeight(body RawBody, limits Limits) []string {
	weight, ok := ParseWeight(body)
	switch {
	case !ok || weight.Sign() <= 0:
		return []string{"weight must be a positive number"}
	case weight.LessThan(limits.MinWeight):
		return []string{fmt.Sprintf("weight must be at least %s kg", limits.MinWeight)}
	case weight.GreaterThan(limits.MaxWeight):
		return []string{fmt.Sprintf("weight must not exceed %s kg", limits.MaxWeight)}
	}
	return nil
}

// ParseWeight reads the weight field as a decimal. JSON numbers and numeric
// strings are both accepted; non-finite floats are not.
func ParseWeight(body RawBody) (decimal.Decimal, bool) {
	switch v := body["weight"].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case string:
		weight, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return weight, true
	default:
		return decimal.Zero, false
	}
}

// ParseThreshold reads threshold_days as an integer within [1, max]. JSON
// numbers must be integral; numeric strings are accepted.
func ParseThreshold(body RawBody, limits Limits) (int, bool) {
	var days int
	switch v := body["threshold_days"].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		days = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		days = parsed
	default:
		return 0, false
	}

	if days < 1 || days > limits.MaxThresholdDays {
		return 0, false
	}
	return days, true
}
