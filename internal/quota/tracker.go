// Package quota gates remote fallback calls behind a per-day counter
// persisted across restarts.
package quota

import (
	"errors"
	"time"

	"github.com/answerfinder/answerfinder/internal/state"
)

// ErrExceeded is returned when today's fallback budget is spent.
var ErrExceeded = errors.New("daily fallback quota exceeded")

// dayFormat is the calendar-day key stored with the counter.
const dayFormat = "2006-01-02"

// Tracker is the per-day fallback counter. The counter lives in the state
// store; the store's lock serializes the read-rollover-increment-persist
// sequence, so two concurrent callers can never both reserve the final slot.
type Tracker struct {
	store *state.Store
	max   int

	// Now is the clock; overridable in tests for day-rollover cases.
	Now func() time.Time
}

// NewTracker creates a tracker capped at max calls per calendar day.
func NewTracker(store *state.Store, max int) *Tracker {
	return &Tracker{
		store: store,
		max:   max,
		Now:   time.Now,
	}
}

// CheckAndReserve consumes one fallback slot for today, resetting the
// counter first if the stored day has passed. The increment is persisted
// before the reservation is reported as successful.
func (t *Tracker) CheckAndReserve() error {
	today := t.Now().Format(dayFormat)

	exceeded := false
	err := t.store.Update(func(st *state.State) {
		if st.AIUsage.Date != today {
			st.AIUsage = state.Usage{Date: today}
		}
		if st.AIUsage.Count >= t.max {
			exceeded = true
			return
		}
		st.AIUsage.Count++
	})
	if err != nil {
		return err
	}
	if exceeded {
		return ErrExceeded
	}
	return nil
}

// Usage reports today's consumed count and the cap. A stored counter from a
// previous day reads as zero.
func (t *Tracker) Usage() (used, max int) {
	st := t.store.Get()
	if st.AIUsage.Date != t.Now().Format(dayFormat) {
		return 0, t.max
	}
	return st.AIUsage.Count, t.max
}
