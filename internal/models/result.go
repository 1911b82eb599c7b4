package models

// Outcome classifies how a public operation finished.
type Outcome string

// Outcomes shared by recorder, cache and gallery operations.
const (
	OutcomeRecorded      Outcome = "recorded"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeRejected      Outcome = "rejected"
	OutcomeForwardFailed Outcome = "forward_failed"
	OutcomeReceiptFailed Outcome = "receipt_failed"

	OutcomeHit      Outcome = "hit"
	OutcomeFallback Outcome = "fallback"
	OutcomeStale    Outcome = "stale"
	OutcomeSkipped  Outcome = "skipped"

	OutcomeStored    Outcome = "stored"
	OutcomeRecovered Outcome = "recovered"
)

// Result carries a value together with how it was produced. Err is set only
// for genuine failures; a fallback value with a nil Err is normal control flow.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

// OK reports whether the operation finished without a genuine failure.
func (r Result[T]) OK() bool {
	return r.Err == nil
}
