// Package table implements the dual-table flow engine (C8): a bounded,
// lock-free map of flow records per generation, the direction test that
// tells a hit apart as A->B or B->A, and the per-packet TCP flag merge.
//
// A userspace collector drains and clears the inactive generation while
// the engine keeps writing the active one; this package provides the
// classifier side of that contract, not the collector itself.
package table

import (
	"errors"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/flowfix/flowfix/config"
	"github.com/flowfix/flowfix/flow"
	"github.com/flowfix/flowfix/frame"
)

// Page identifies one of the two generational tables. It's an alias for
// config.Page: the active page is config state, read by the engine and
// flipped by the collector, so both packages must agree on one type.
type Page = config.Page

const (
	Page1 = config.Page1
	Page2 = config.Page2
)

// DefaultCapacity bounds a single generation's record count absent an
// explicit Capacity in NewEngine.
const DefaultCapacity = 500_000

// Table is one generation: a capacity-capped, lock-free map of flow key
// to flow record.
type Table struct {
	m        *xsync.MapOf[uint64, *flow.Record]
	capacity int
}

func newTable(capacity int) *Table {
	return &Table{
		m:        xsync.NewMapOf[uint64, *flow.Record](),
		capacity: capacity,
	}
}

// Engine owns both generations plus the shared configuration slots, and
// implements Observe, the per-packet C8 algorithm.
type Engine struct {
	*zerolog.Logger

	cfg      *config.Table
	pages    [2]*Table
	capacity int

	warnedOverflow bool
}

// NewEngine returns a ready Engine. capacity <= 0 uses DefaultCapacity.
// logger may be nil, in which case logging is disabled.
func NewEngine(cfg *config.Table, capacity int, logger *zerolog.Logger) *Engine {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}

	e := &Engine{
		Logger:   logger,
		cfg:      cfg,
		capacity: capacity,
	}
	e.pages[Page1] = newTable(capacity)
	e.pages[Page2] = newTable(capacity)
	return e
}

// Observe runs the full per-packet engine algorithm: it parses f into a
// flow.Record, then looks it up in (or inserts it into) the active
// generation, merging metrics and TCP flag timestamps on a hit. On a hit
// the returned Record is the one already stored in the table, not the one
// Parse produced. On an insert rejected for capacity, the returned Record
// is the freshly parsed one, which the table does not keep.
func (e *Engine) Observe(f *frame.Frame, tm int64, byteLen int) *flow.Record {
	if e.cfg.Init(tm) {
		e.Debug().Int64("start_time_ns", tm).Msg("flow table engine initialized")
	}

	rec, err := flow.Parse(f, tm)
	if errors.Is(err, flow.ErrFragment) {
		e.Debug().Uint64("key", rec.Key).Msg("fragmented packet, network parsing aborted")
	}
	tbl := e.pages[e.cfg.Page()]

	rec.Metrics.ABPackets.Store(1)
	rec.Metrics.ABBytes.Store(int64(byteLen))
	rec.Start = tm
	rec.Last.Store(tm)

	existing, loaded := tbl.m.LoadOrStore(rec.Key, rec)
	if !loaded {
		if tbl.m.Size() > tbl.capacity {
			tbl.m.Delete(rec.Key)
			n := e.cfg.IncrInsertFailures()
			e.logOverflow(n)
		}
		return rec
	}

	e.merge(existing, rec, byteLen, tm)
	return existing
}

// merge folds a hit packet's metrics and TCP flag timestamps into the
// already-stored record.
func (e *Engine) merge(prev, new *flow.Record, byteLen int, tm int64) {
	ab := isABPacket(new, prev)

	if ab {
		prev.Metrics.ABPackets.Add(1)
		prev.Metrics.ABBytes.Add(int64(byteLen))
	} else {
		prev.Metrics.BAPackets.Add(1)
		prev.Metrics.BABytes.Add(int64(byteLen))
	}
	updateLast(prev, tm)

	if prev.LayersInfo.Has(flow.TRANSPORT) && new.LayersInfo.Has(flow.TRANSPORT) {
		mergeTCPFlags(prev, new, ab)
	}
}

// updateLast refreshes prev.Last to tm via an atomic max, so out-of-order
// delivery across CPUs can never move it backward.
func updateLast(prev *flow.Record, tm int64) {
	for {
		cur := prev.Last.Load()
		if tm <= cur {
			return
		}
		if prev.Last.CompareAndSwap(cur, tm) {
			return
		}
	}
}

// isABPacket implements spec.md's three-tier direction test: link
// hash_src first, falling back to network hash_src on a loopback MAC,
// falling back to port comparison when both MACs and both IPs match.
func isABPacket(new, prev *flow.Record) bool {
	if new.Link.MACSrc != new.Link.MACDst {
		return new.Link.HashSrc == prev.Link.HashSrc
	}
	if new.Network.IPSrc != new.Network.IPDst {
		return new.Network.HashSrc == prev.Network.HashSrc
	}
	return new.Transport.PortSrc > new.Transport.PortDst
}

// mergeTCPFlags folds new's AB timestamps into prev, zero-guarded so a
// timestamp once set is never overwritten, per spec.md's "fold under the
// same zero-guard" rule. When ab is false the packet runs in the reverse
// direction, so its ab_* fields fold into prev's ba_* slots instead.
func mergeTCPFlags(prev, new *flow.Record, ab bool) {
	set := func(dst *int64, v int64) {
		if v != 0 {
			atomic.CompareAndSwapInt64(dst, 0, v)
		}
	}
	if ab {
		set(&prev.Transport.ABSyn, new.Transport.ABSyn)
		set(&prev.Transport.ABFin, new.Transport.ABFin)
		set(&prev.Transport.ABRst, new.Transport.ABRst)
	} else {
		set(&prev.Transport.BASyn, new.Transport.ABSyn)
		set(&prev.Transport.BAFin, new.Transport.ABFin)
		set(&prev.Transport.BARst, new.Transport.ABRst)
	}
}

func (e *Engine) logOverflow(n int64) {
	if n == 1 || n%1000 == 0 {
		e.Warn().Int64("insert_failures", n).Msg("flow table full, dropping insert")
	}
}

// Drain returns a new map holding page's records; the records themselves
// are the stored pointers, not copies. It does not remove them; call
// Clear afterward once the collector's grace period passes.
func (e *Engine) Drain(page Page) map[uint64]*flow.Record {
	out := make(map[uint64]*flow.Record)
	e.pages[page].m.Range(func(key uint64, rec *flow.Record) bool {
		out[key] = rec
		return true
	})
	return out
}

// Clear empties page. The classifier never calls this itself; it exists
// for the collector side of the generational-rotation contract.
func (e *Engine) Clear(page Page) {
	e.pages[page].m.Clear()
}

// Len reports the current record count of page, for capacity monitoring.
func (e *Engine) Len(page Page) int {
	return e.pages[page].m.Size()
}

// InsertFailures returns the engine's total recorded insert failures.
func (e *Engine) InsertFailures() int64 {
	return e.cfg.InsertFailures()
}
