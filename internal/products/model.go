package products

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventsQueue  = "products.events"
	EventCreated = "product_created"
	EventUpdated = "product_updated"
	EventDeleted = "product_deleted"
)

type Product struct {
	ID            int64      `json:"id" example:"1"`
	Name          string     `json:"name" example:"Молоко"`
	Weight        float64    `json:"weight" example:"0.95"`
	ExpiryDate    string     `json:"expiry_date" example:"2026-09-30"`
	Type          string     `json:"type" example:"молочные"`
	ThresholdDays int        `json:"threshold_days" example:"7"`
	DaysRemaining float64    `json:"days_remaining" example:"29.4"`
	Status        Status     `json:"status" example:"ok"`
	IsDeleted     bool       `json:"is_deleted" example:"false"`
	CreatedAt     time.Time  `json:"created_at" example:"2026-09-01T12:00:00Z"`
	UpdatedAt     time.Time  `json:"updated_at" example:"2026-09-01T12:00:00Z"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// NewProduct is the validated, normalized payload handed to the store on
// create. ExpiryDate is always in canonical YYYY-MM-DD form.
type NewProduct struct {
	Name          string
	Weight        float64
	ExpiryDate    string
	Type          string
	ThresholdDays int
}

type ProductEvent struct {
	EventType  string    `json:"event_type"`
	ProductID  int64     `json:"product_id"`
	Name       string    `json:"name,omitempty"`
	ExpiryDate string    `json:"expiry_date,omitempty"`
	Status     Status    `json:"status,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Limits bounds the validated product fields. Weights are decimals so the
// inclusive bound comparisons are exact.
type Limits struct {
	MinWeight        decimal.Decimal
	MaxWeight        decimal.Decimal
	MaxThresholdDays int
}

// Defaults fills type and threshold_days when a create request omits them.
type Defaults struct {
	Type          string
	ThresholdDays int
}

func DefaultLimits() Limits {
	return Limits{
		MinWeight:        decimal.RequireFromString("0.001"),
		MaxWeight:        decimal.NewFromInt(1000),
		MaxThresholdDays: 365,
	}
}

func DefaultDefaults() Defaults {
	return Defaults{
		Type:          "разное",
		ThresholdDays: 7,
	}
}

// RawBody is a decoded request body: field name to raw JSON value. Partial
// update semantics hinge on key presence, so the body stays a map instead of
// being bound into a struct.
type RawBody map[string]any

func (b RawBody) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// String renders the raw value for key as a string. JSON numbers arrive as
// float64 and are rendered without exponent so "30" stays "30".
func (b RawBody) String(key string) string {
	v, ok := b[key]
	if !ok || v == nil {
		return ""
	}
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// DaysRemaining is the fractional day count from now to the expiry date's
// midnight. Negative once the date has passed. Rounding is left to callers.
func DaysRemaining(expiry, now time.Time) float64 {
	midnight := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Sub(now).Hours() / 24
}
