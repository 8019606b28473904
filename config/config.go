// Package config holds the small set of process-wide knobs the flow
// classifier reads on every packet: the epoch the classifier was started
// at, and which of the two generational tables is currently live. It also
// tracks the insert-failure counter a collector polls for capacity
// pressure.
package config

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/spf13/cast"
)

// Slot indexes one of Table's fixed atomic slots.
type Slot int

const (
	StartTimeNS Slot = iota
	FlowPage
	numSlots
)

// Page identifies one of the two generational flow tables.
type Page uint8

const (
	Page1 Page = 0
	Page2 Page = 1
)

// Table is the thread-safe configuration store a table.Engine reads on
// every Observe call. The zero value is ready to use.
type Table struct {
	slots [numSlots]atomic.Int64

	// failures is lazily created on first IncrInsertFailures call; it
	// only ever holds one entry (key 0), mirroring caps.Caps's pattern
	// of a lazily-initialized, always-thread-safe xsync store.
	failures atomic.Pointer[xsync.MapOf[uint32, *atomic.Int64]]
}

// Init sets StartTimeNS to tm unless it was already set, and reports
// whether this call actually wrote it (i.e. this is the first packet the
// classifier has observed). Safe for concurrent callers; exactly one of
// them ever sees wrote=true for the same Table.
func (t *Table) Init(tm int64) (wrote bool) {
	return t.slots[StartTimeNS].CompareAndSwap(0, tm)
}

// StartTime returns the epoch passed to the first Init call, or 0 if
// Init has never been called.
func (t *Table) StartTime() int64 {
	return t.slots[StartTimeNS].Load()
}

// Page returns the currently active generation, as last set by SetPage.
func (t *Table) Page() Page {
	return Page(t.slots[FlowPage].Load())
}

// SetPage flips the active generation. A collector calls this before
// draining and clearing the page that was active, so the classifier
// starts filling the other one meanwhile.
func (t *Table) SetPage(p Page) {
	t.slots[FlowPage].Store(int64(p))
}

// failureMap returns the lazily-initialized stats map, creating it on
// first use. Concurrent callers race harmlessly on the CompareAndSwap;
// exactly one wins and the rest load what it stored.
func (t *Table) failureMap() *xsync.MapOf[uint32, *atomic.Int64] {
	m := t.failures.Load()
	if m != nil {
		return m
	}

	m = xsync.NewMapOf[uint32, *atomic.Int64]()
	if t.failures.CompareAndSwap(nil, m) {
		return m
	}
	return t.failures.Load()
}

// IncrInsertFailures records one insert rejected because the table
// generation was at capacity, and returns the new total.
func (t *Table) IncrInsertFailures() int64 {
	m := t.failureMap()
	counter, _ := m.LoadOrStore(0, new(atomic.Int64))
	return counter.Add(1)
}

// InsertFailures returns the total recorded insert failures, or 0 if
// none have ever been recorded.
func (t *Table) InsertFailures() int64 {
	m := t.failures.Load()
	if m == nil {
		return 0
	}
	counter, ok := m.Load(0)
	if !ok {
		return 0
	}
	return counter.Load()
}

// Load applies loosely-typed slot overrides onto t, coercing each value
// with spf13/cast so that callers fed by a YAML file or environment
// variables (an external loader, out of this module's scope) don't need
// to pre-convert to int64 themselves. Unknown keys are ignored. Returns
// the first coercion error encountered, if any; valid keys before it are
// still applied.
func (t *Table) Load(overrides map[string]any) error {
	for key, raw := range overrides {
		var slot Slot
		switch key {
		case "START_TIME_NS":
			slot = StartTimeNS
		case "FLOW_PAGE":
			slot = FlowPage
		default:
			continue
		}

		v, err := cast.ToInt64E(raw)
		if err != nil {
			return err
		}
		t.slots[slot].Store(v)
	}
	return nil
}
