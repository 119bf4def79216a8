package models

// TurnaroundStatus is the derived SLA status of a record.
type TurnaroundStatus string

const (
	StatusPending        TurnaroundStatus = "Pending"
	StatusClosedOnTime   TurnaroundStatus = "Closed on time"
	StatusClosedExceeded TurnaroundStatus = "Closed - exceeded"
)

// Per-entity SLA thresholds in days.
const (
	DefaultInsuranceExpectedDays    = 7
	DefaultVerificationExpectedDays = 5
)

// Turnaround is the derived pair stored on every record.
type Turnaround struct {
	Days   int
	Status TurnaroundStatus
}

// DeriveTurnaround computes elapsed days and status from the two dates.
// Either date missing yields (0, Pending).
func DeriveTurnaround(received, closed *Date, expectedDays int) Turnaround {
	if received == nil || closed == nil {
		return Turnaround{Days: 0, Status: StatusPending}
	}
	elapsed := received.DaysUntil(*closed)
	if elapsed <= expectedDays {
		return Turnaround{Days: elapsed, Status: StatusClosedOnTime}
	}
	return Turnaround{Days: elapsed, Status: StatusClosedExceeded}
}

// ClosedBeforeReceived reports whether the pair is out of order.
func ClosedBeforeReceived(received, closed *Date) bool {
	if received == nil || closed == nil {
		return false
	}
	return received.DaysUntil(*closed) < 0
}
