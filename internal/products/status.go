package products

type Status string

const (
	StatusExpired Status = "expired"
	StatusWarning Status = "warning"
	StatusOK      Status = "ok"
)

// Classify maps a remaining-days value to an expiry status. The warning band
// is inclusive on both ends: a product expiring today or exactly at its
// threshold is a warning, anything past midnight of the expiry date is
// expired.
func Classify(daysRemaining float64, thresholdDays int) Status {
	switch {
	case daysRemaining < 0:
		return StatusExpired
	case daysRemaining <= float64(thresholdDays):
		return StatusWarning
	default:
		return StatusOK
	}
}
