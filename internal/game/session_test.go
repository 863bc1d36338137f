package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"tg-wheel-bot/internal/flag"
	"tg-wheel-bot/internal/storage"
)

// seqSource отдает заранее заданные числа по кругу
type seqSource struct {
	values []float64
	i      int
}

func (s *seqSource) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func runToEnd(t *testing.T, s *Session, start time.Time) *Result {
	t.Helper()
	ctx := context.Background()

	for step := time.Duration(0); step <= 2*DefaultSpinDuration; step += 50 * time.Millisecond {
		_, res, err := s.Advance(ctx, start.Add(step))
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if res != nil {
			return res
		}
	}
	t.Fatal("spin never finished")
	return nil
}

func TestSessionSpinSelectsAndLands(t *testing.T) {
	ctx := context.Background()
	// 0.99 -> r = 99 -> "0x"; 0.5 -> 5 + int(0.5*4) = 7 оборотов
	src := &seqSource{values: []float64{0.99, 0.5}}
	s := NewSession(referenceWheel(t), storage.NewMemory(), WithRand(src))

	plan, err := s.Spin(ctx, t0)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Index != 6 || plan.Turns != 7 {
		t.Errorf("plan: %+v", plan)
	}
	if !s.Spinning() {
		t.Errorf("session not spinning")
	}

	res := runToEnd(t, s, t0)
	if res.Index != plan.Index || res.Label != "0x" || res.Value != 0 {
		t.Errorf("result: %+v", res)
	}
	if s.Spinning() {
		t.Errorf("still spinning after result")
	}
}

func TestSessionTurnsRange(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		r    float64
		want int
	}{{0, 5}, {0.249, 5}, {0.25, 6}, {0.999999, 8}} {
		src := &seqSource{values: []float64{0.1, tc.r}}
		s := NewSession(referenceWheel(t), storage.NewMemory(), WithRand(src))
		plan, err := s.Spin(ctx, t0)
		if err != nil {
			t.Fatal(err)
		}
		if plan.Turns != tc.want {
			t.Errorf("r=%v: want %d turns, got %d", tc.r, tc.want, plan.Turns)
		}
	}
}

func TestSessionRejectsSecondSpin(t *testing.T) {
	ctx := context.Background()
	src := &seqSource{values: []float64{0.3, 0.1}}
	s := NewSession(referenceWheel(t), storage.NewMemory(), WithRand(src))

	first, err := s.Spin(ctx, t0)
	if err != nil {
		t.Fatal(err)
	}
	consumed := src.i

	if _, err := s.Spin(ctx, t0.Add(time.Second)); !errors.Is(err, ErrSpinning) {
		t.Fatalf("want ErrSpinning, got %v", err)
	}
	if src.i != consumed {
		t.Errorf("rejected spin consumed randomness")
	}
	if s.Spinner().Target() != first.Target {
		t.Errorf("rejected spin changed target")
	}
}

func TestSessionBoostIsSingleUse(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	_ = store.Set(ctx, storage.KeyBoostActiveDate, flag.Today(t0))

	// первый спин: 0.6 -> "3x", второй: тоже "3x"
	src := &seqSource{values: []float64{0.6, 0}}
	s := NewSession(referenceWheel(t), store, WithRand(src))
	if err := s.Refresh(ctx, t0); err != nil {
		t.Fatal(err)
	}
	if !s.Boosted() {
		t.Fatal("boost not picked up from store")
	}

	if _, err := s.Spin(ctx, t0); err != nil {
		t.Fatal(err)
	}
	res := runToEnd(t, s, t0)
	if !res.Boosted || res.Value != 30 || res.Label != "30x" {
		t.Errorf("boosted result: %+v", res)
	}
	if s.Boosted() {
		t.Errorf("boost still active after one result")
	}
	if _, ok, _ := store.Get(ctx, storage.KeyBoostActiveDate); ok {
		t.Errorf("boost date not removed from store")
	}

	next := t0.Add(time.Minute)
	if _, err := s.Spin(ctx, next); err != nil {
		t.Fatal(err)
	}
	res = runToEnd(t, s, next)
	if res.Boosted || res.Value != 3 {
		t.Errorf("second result should be plain: %+v", res)
	}
}

func TestSessionBoostConsumedByZeroOutcome(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	_ = store.Set(ctx, storage.KeyBoostActiveDate, flag.Today(t0))

	src := &seqSource{values: []float64{0.995, 0}}
	s := NewSession(referenceWheel(t), store, WithRand(src))
	_ = s.Refresh(ctx, t0)

	if _, err := s.Spin(ctx, t0); err != nil {
		t.Fatal(err)
	}
	res := runToEnd(t, s, t0)
	if res.Value != 0 || res.Label != "0x" || !res.Boosted {
		t.Errorf("zero outcome while boosted: %+v", res)
	}
	if s.Boosted() {
		t.Errorf("boost survived a zero outcome")
	}
}

func TestSessionEnterPhraseActivatesBoost(t *testing.T) {
	ctx := context.Background()
	s := NewSession(referenceWheel(t), storage.NewMemory(), WithPhrases(testPhrases))

	got, err := s.EnterPhrase(ctx, s.Gate().Phrase(t0), t0)
	if err != nil || got != AttemptCorrect {
		t.Fatalf("EnterPhrase: %v %v", got, err)
	}
	if !s.Boosted() {
		t.Errorf("boost not active after correct phrase")
	}

	got, _ = s.EnterPhrase(ctx, s.Gate().Phrase(t0), t0)
	if got != AttemptBlocked {
		t.Errorf("second attempt: want blocked, got %v", got)
	}
}

func TestSessionBoostExpiresNextDay(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	_ = store.Set(ctx, storage.KeyBoostActiveDate, flag.Today(t0))

	s := NewSession(referenceWheel(t), store)
	if err := s.Refresh(ctx, t0.AddDate(0, 0, 1)); err != nil {
		t.Fatal(err)
	}
	if s.Boosted() {
		t.Errorf("boost from yesterday is still active")
	}
}

// failingRemoveStore теряет связь на удалении ключей
type failingRemoveStore struct {
	*storage.MemoryStore
	fail bool
}

func (f *failingRemoveStore) Remove(ctx context.Context, key string) error {
	if f.fail {
		return errors.New("down")
	}
	return f.MemoryStore.Remove(ctx, key)
}

func TestSessionBoostNotRestoredAfterFailedClear(t *testing.T) {
	ctx := context.Background()
	store := &failingRemoveStore{MemoryStore: storage.NewMemory(), fail: true}
	_ = store.Set(ctx, storage.KeyBoostActiveDate, flag.Today(t0))

	// оба спина: 0.6 -> "3x"
	src := &seqSource{values: []float64{0.6, 0}}
	s := NewSession(referenceWheel(t), store, WithRand(src))
	if err := s.Refresh(ctx, t0); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Spin(ctx, t0); err != nil {
		t.Fatal(err)
	}
	var res *Result
	for step := time.Duration(0); res == nil && step <= 2*DefaultSpinDuration; step += 50 * time.Millisecond {
		var err error
		_, res, err = s.Advance(ctx, t0.Add(step))
		if res != nil && err == nil {
			t.Errorf("want clear error from store")
		}
	}
	if res == nil || !res.Boosted || res.Value != 30 {
		t.Fatalf("first result: %+v", res)
	}

	next := t0.Add(time.Minute)
	if err := s.Refresh(ctx, next); err == nil {
		t.Errorf("want clear error on refresh while store is down")
	}
	if s.Boosted() {
		t.Fatal("consumed boost restored from stale store")
	}

	store.fail = false
	if err := s.Refresh(ctx, next); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Get(ctx, storage.KeyBoostActiveDate); ok {
		t.Errorf("stale boost date not removed once store recovered")
	}

	if _, err := s.Spin(ctx, next); err != nil {
		t.Fatal(err)
	}
	res = runToEnd(t, s, next)
	if res.Boosted || res.Value != 3 {
		t.Errorf("second result should be plain: %+v", res)
	}
}
