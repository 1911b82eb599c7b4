package recorder

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"days/internal/kv"
	"days/internal/models"
	"days/internal/receipts"
)

type fakeAggregator struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
	delay time.Duration
}

func newFakeAggregator() *fakeAggregator {
	return &fakeAggregator{calls: make(map[string]int)}
}

func (f *fakeAggregator) Increment(_ context.Context, place models.PlaceKey, kind models.InteractionKind) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[string(place)+"/"+string(kind)]++
	return f.err
}

func (f *fakeAggregator) count(place string, kind models.InteractionKind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[place+"/"+string(kind)]
}

// failingStore refuses every write.
type failingStore struct{ *kv.Memory }

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("storage disabled")
}

func newRecorder(agg Aggregator) *Recorder {
	store := receipts.New(kv.NewMemory(0), kv.NewMemory(0), receipts.Config{})
	return New(store, agg)
}

var visitor = models.Visitor{TabID: "tab-1", DeviceID: "dev-1"}

func TestRecord_Idempotent(t *testing.T) {
	ctx := context.Background()
	agg := newFakeAggregator()
	r := newRecorder(agg)

	for _, kind := range []models.InteractionKind{models.InteractionView, models.InteractionChat, models.InteractionSave} {
		first := r.Record(ctx, visitor, "Osaka", kind)
		if first.Outcome != models.OutcomeRecorded {
			t.Fatalf("first Record(%s) outcome = %s", kind, first.Outcome)
		}
		for i := 0; i < 5; i++ {
			if res := r.Record(ctx, visitor, "Osaka", kind); res.Outcome != models.OutcomeDuplicate {
				t.Errorf("repeat Record(%s) outcome = %s, want duplicate", kind, res.Outcome)
			}
		}
		if n := agg.count("Osaka", kind); n != 1 {
			t.Errorf("aggregator calls for %s = %d, want 1", kind, n)
		}
	}
}

func TestRecord_ConcurrentCallsCountOnce(t *testing.T) {
	agg := newFakeAggregator()
	agg.delay = 10 * time.Millisecond
	r := newRecorder(agg)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Record(context.Background(), visitor, "Kyoto", models.InteractionView)
		}()
	}
	wg.Wait()

	if n := agg.count("Kyoto", models.InteractionView); n != 1 {
		t.Errorf("aggregator calls = %d, want 1", n)
	}
	if r.locks.size() != 0 {
		t.Errorf("key locks leaked: %d", r.locks.size())
	}
}

func TestRecord_RejectsPlaceholders(t *testing.T) {
	agg := newFakeAggregator()
	r := newRecorder(agg)

	for _, place := range []models.PlaceKey{"", "unknown", "Scanning…", "Scanning...", "Searching..."} {
		res := r.Record(context.Background(), visitor, place, models.InteractionView)
		if res.Outcome != models.OutcomeRejected || !errors.Is(res.Err, ErrRejectedPlace) {
			t.Errorf("Record(%q) = %+v, want rejected", place, res)
		}
	}
	if len(agg.calls) != 0 {
		t.Errorf("aggregator called for placeholders: %v", agg.calls)
	}
}

func TestRecord_InvalidKind(t *testing.T) {
	r := newRecorder(newFakeAggregator())
	res := r.Record(context.Background(), visitor, "Osaka", "like")
	if !errors.Is(res.Err, ErrInvalidKind) {
		t.Errorf("Record() error = %v, want ErrInvalidKind", res.Err)
	}
}

func TestRecord_ForwardFailureKeepsReceipt(t *testing.T) {
	ctx := context.Background()
	agg := newFakeAggregator()
	agg.err = errors.New("aggregator unreachable")
	r := newRecorder(agg)

	res := r.Record(ctx, visitor, "Osaka", models.InteractionSave)
	if res.Outcome != models.OutcomeForwardFailed || res.Err == nil {
		t.Fatalf("Record() = %+v, want forward_failed", res)
	}

	agg.err = nil
	if res := r.Record(ctx, visitor, "Osaka", models.InteractionSave); res.Outcome != models.OutcomeDuplicate {
		t.Errorf("retry outcome = %s, want duplicate (receipt not rolled back)", res.Outcome)
	}
	if n := agg.count("Osaka", models.InteractionSave); n != 1 {
		t.Errorf("aggregator calls = %d, want 1", n)
	}
}

func TestRecord_ReceiptFailureSkipsForward(t *testing.T) {
	agg := newFakeAggregator()
	broken := failingStore{kv.NewMemory(0)}
	r := New(receipts.New(broken, broken, receipts.Config{}), agg)

	res := r.Record(context.Background(), visitor, "Osaka", models.InteractionChat)
	if res.Outcome != models.OutcomeReceiptFailed {
		t.Errorf("Record() outcome = %s, want receipt_failed", res.Outcome)
	}
	if n := agg.count("Osaka", models.InteractionChat); n != 0 {
		t.Errorf("aggregator calls = %d, want 0", n)
	}
}

func TestRecord_NewTabCountsViewAgain(t *testing.T) {
	ctx := context.Background()
	agg := newFakeAggregator()
	r := newRecorder(agg)

	r.Record(ctx, visitor, "Osaka", models.InteractionView)
	r.Record(ctx, models.Visitor{TabID: "tab-2", DeviceID: "dev-1"}, "Osaka", models.InteractionView)
	r.Record(ctx, models.Visitor{TabID: "tab-2", DeviceID: "dev-1"}, "Osaka", models.InteractionSave)
	r.Record(ctx, visitor, "Osaka", models.InteractionSave)

	if n := agg.count("Osaka", models.InteractionView); n != 2 {
		t.Errorf("view calls = %d, want 2 (tab-scoped)", n)
	}
	if n := agg.count("Osaka", models.InteractionSave); n != 1 {
		t.Errorf("save calls = %d, want 1 (persistent)", n)
	}
}

func TestRecordAsync(t *testing.T) {
	agg := newFakeAggregator()
	r := newRecorder(agg)

	r.RecordAsync(visitor, "Osaka", models.InteractionView)
	r.RecordAsync(visitor, "Osaka", models.InteractionView)
	r.Wait()

	if n := agg.count("Osaka", models.InteractionView); n != 1 {
		t.Errorf("aggregator calls = %d, want 1", n)
	}
}

func TestRecord_LongLivedTabCountsOncePerDay(t *testing.T) {
	ctx := context.Background()
	seoul := time.FixedZone("KST", 9*60*60)
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, seoul)
	clock := func() time.Time { return now }
	store := kv.NewMemory(0).WithClock(clock)
	agg := newFakeAggregator()
	r := New(receipts.New(store, store, receipts.Config{Location: seoul}).WithClock(clock), agg)

	if res := r.Record(ctx, visitor, "Osaka", models.InteractionView); res.Outcome != models.OutcomeRecorded {
		t.Fatalf("09:00 outcome = %s", res.Outcome)
	}
	for _, at := range []string{"09:31", "14:00", "23:59"} {
		hm, _ := time.Parse("15:04", at)
		now = time.Date(2026, 10, 17, hm.Hour(), hm.Minute(), 0, 0, seoul)
		if res := r.Record(ctx, visitor, "Osaka", models.InteractionView); res.Outcome != models.OutcomeDuplicate {
			t.Errorf("%s outcome = %s, want duplicate", at, res.Outcome)
		}
	}
	if n := agg.count("Osaka", models.InteractionView); n != 1 {
		t.Errorf("aggregator view calls = %d, want 1", n)
	}

	now = time.Date(2026, 10, 18, 9, 0, 0, 0, seoul)
	if res := r.Record(ctx, visitor, "Osaka", models.InteractionView); res.Outcome != models.OutcomeRecorded {
		t.Errorf("next day outcome = %s, want recorded", res.Outcome)
	}
}

func TestRecord_SharedBudgetRecoversNextDay(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := kv.NewMemory(4 << 10).WithClock(clock)
	agg := newFakeAggregator()
	r := New(receipts.New(store, store, receipts.Config{}).WithClock(clock), agg)

	for i := 0; ; i++ {
		v := models.Visitor{TabID: "t", DeviceID: "dev-" + strconv.Itoa(i)}
		if res := r.Record(ctx, v, "Osaka", models.InteractionSave); res.Outcome == models.OutcomeReceiptFailed {
			break
		}
		if i > 1000 {
			t.Fatal("budget never reached")
		}
	}

	now = now.Add(24 * time.Hour)
	fresh := models.Visitor{TabID: "t", DeviceID: "dev-new"}
	if res := r.Record(ctx, fresh, "Kyoto", models.InteractionSave); res.Outcome != models.OutcomeRecorded {
		t.Errorf("next day outcome = %s, err = %v; want recorded", res.Outcome, res.Err)
	}
	if n := agg.count("Kyoto", models.InteractionSave); n != 1 {
		t.Errorf("Kyoto saves = %d, want 1", n)
	}
}
