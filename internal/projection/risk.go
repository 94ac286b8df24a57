package projection

import "fmt"

// RiskKind tags a projection risk alert.
type RiskKind string

const (
	RiskNegativeBalance  RiskKind = "negative_balance"
	RiskNegativeMajority RiskKind = "negative_majority"
	RiskLowConfidence    RiskKind = "low_confidence"
)

// RiskAlert is one flag derived from a projected sequence.
type RiskAlert struct {
	Kind    RiskKind
	Message string
}

// lowConfidenceFloor marks projected months too uncertain to act on.
const lowConfidenceFloor = 0.5

// Risks inspects a projected sequence and flags: the accumulated balance
// going negative within the first three months, half or more of the months
// projecting a negative result, and any month below the confidence floor.
func Risks(months []Month) []RiskAlert {
	var alerts []RiskAlert

	for i, m := range months {
		if i >= 3 {
			break
		}
		if m.Accumulated.IsNegative() {
			alerts = append(alerts, RiskAlert{
				Kind:    RiskNegativeBalance,
				Message: fmt.Sprintf("accumulated balance turns negative in %s", m.Month),
			})
			break
		}
	}

	negative := 0
	for _, m := range months {
		if m.Result.IsNegative() {
			negative++
		}
	}
	if len(months) > 0 && negative*2 >= len(months) {
		alerts = append(alerts, RiskAlert{
			Kind:    RiskNegativeMajority,
			Message: fmt.Sprintf("%d of %d projected months have a negative result", negative, len(months)),
		})
	}

	for _, m := range months {
		if m.Confidence < lowConfidenceFloor {
			alerts = append(alerts, RiskAlert{
				Kind:    RiskLowConfidence,
				Message: fmt.Sprintf("confidence drops below %.0f%% from %s", lowConfidenceFloor*100, m.Month),
			})
			break
		}
	}

	return alerts
}
