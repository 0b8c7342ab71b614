package model

// Result is the outcome of an operation that may be rejected for
// business reasons (room unavailable, overlapping dates, ...).  A
// rejection is an expected answer, not an error: Success is false and
// Message explains why.  Reason is a short machine-readable code used for
// metrics and logs.
type Result struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	Reason      string       `json:"-"`
	Reservation *Reservation `json:"-"`
}

// Reject builds a failed Result.
func Reject(reason, message string) Result {
	return Result{Success: false, Reason: reason, Message: message}
}
