// Package recorder turns user interactions with a place into popularity score
// increments, forwarding each (place, kind) at most once per day.
package recorder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"days/internal/metrics"
	"days/internal/models"
	"days/internal/receipts"
)

const defaultForwardTimeout = 5 * time.Second

// ErrRejectedPlace is reported for placeholder or sentinel place keys.
var ErrRejectedPlace = errors.New("placeholder place key rejected")

// ErrInvalidKind is reported for unknown interaction kinds.
var ErrInvalidKind = errors.New("invalid interaction kind")

// Aggregator is the remote score counter. It is not idempotent: calling it
// twice counts twice.
type Aggregator interface {
	Increment(ctx context.Context, place models.PlaceKey, kind models.InteractionKind) error
}

// Recorder gates interactions through the receipt store before forwarding them.
type Recorder struct {
	receipts *receipts.Store
	agg      Aggregator
	locks    *keyLock
	timeout  time.Duration
	wg       sync.WaitGroup
}

// New creates a recorder.
func New(store *receipts.Store, agg Aggregator) *Recorder {
	return &Recorder{
		receipts: store,
		agg:      agg,
		locks:    newKeyLock(),
		timeout:  defaultForwardTimeout,
	}
}

// Record counts one interaction. It never panics and never needs handling by
// the caller; the Result explains what happened.
//
// The receipt is written before the aggregator is called. A failed increment
// is logged and the receipt stays. If the receipt cannot be written the
// increment is not sent.
func (r *Recorder) Record(ctx context.Context, v models.Visitor, place models.PlaceKey, kind models.InteractionKind) models.Result[models.Receipt] {
	res := r.record(ctx, v, place, kind)
	metrics.ObserveInteraction(string(kind), string(res.Outcome))
	return res
}

func (r *Recorder) record(ctx context.Context, v models.Visitor, place models.PlaceKey, kind models.InteractionKind) models.Result[models.Receipt] {
	if !kind.Valid() {
		return models.Result[models.Receipt]{Outcome: models.OutcomeRejected, Err: ErrInvalidKind}
	}
	if models.IsPlaceholder(string(place)) {
		return models.Result[models.Receipt]{Outcome: models.OutcomeRejected, Err: ErrRejectedPlace}
	}

	unlock := r.locks.Lock(receipts.Key(v.Owner(kind), kind, place))
	has, err := r.receipts.Has(ctx, v, kind, place)
	if err != nil {
		// An unreadable receipt is treated like a failed write: skip rather
		// than risk a double count.
		unlock()
		slog.Warn("receipt check failed, interaction not forwarded", "place", place, "kind", kind, "error", err)
		return models.Result[models.Receipt]{Outcome: models.OutcomeReceiptFailed, Err: err}
	}
	if has {
		unlock()
		return models.Result[models.Receipt]{Outcome: models.OutcomeDuplicate}
	}
	receipt, err := r.receipts.Write(ctx, v, kind, place)
	unlock()
	if err != nil {
		slog.Warn("receipt write failed, interaction not forwarded", "place", place, "kind", kind, "error", err)
		return models.Result[models.Receipt]{Outcome: models.OutcomeReceiptFailed, Err: err}
	}

	if err := r.agg.Increment(ctx, place, kind); err != nil {
		slog.Error("failed to forward interaction", "place", place, "kind", kind, "error", err)
		return models.Result[models.Receipt]{Value: receipt, Outcome: models.OutcomeForwardFailed, Err: err}
	}
	return models.Result[models.Receipt]{Value: receipt, Outcome: models.OutcomeRecorded}
}

// RecordAsync records in the background, detached from the caller's request.
func (r *Recorder) RecordAsync(v models.Visitor, place models.PlaceKey, kind models.InteractionKind) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.Record(ctx, v, place, kind)
	}()
}

// Wait blocks until all background recordings have finished.
func (r *Recorder) Wait() {
	r.wg.Wait()
}
