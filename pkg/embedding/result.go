package embedding

type Status int

const (
	StatusOK Status = iota
	StatusUnavailable
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTimeout:
		return "timeout"
	default:
		return "unavailable"
	}
}

// Result is the outcome of one embedding request slot. Callers branch on
// Status instead of an error; a degraded service is an expected outcome,
// not a propagated failure.
type Result struct {
	Status Status
	Vector []float32
}

func (r Result) OK() bool {
	return r.Status == StatusOK
}

func ok(vector []float32) Result {
	return Result{Status: StatusOK, Vector: vector}
}

func unavailable() Result {
	return Result{Status: StatusUnavailable}
}

func timedOut() Result {
	return Result{Status: StatusTimeout}
}
