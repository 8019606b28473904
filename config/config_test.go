package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitIdempotent(t *testing.T) {
	assert := assert.New(t)

	var tbl Table
	assert.True(tbl.Init(1000))
	assert.False(tbl.Init(2000), "second Init must not overwrite")
	assert.Equal(int64(1000), tbl.StartTime())
}

func TestInitConcurrent(t *testing.T) {
	assert := assert.New(t)

	var tbl Table
	var wins atomic32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(tm int64) {
			defer wg.Done()
			if tbl.Init(tm) {
				wins.incr()
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.EqualValues(1, wins.load(), "exactly one caller observes wrote=true")
	assert.NotZero(tbl.StartTime())
}

func TestPageRoundTrip(t *testing.T) {
	assert := assert.New(t)

	var tbl Table
	assert.Equal(Page1, tbl.Page(), "zero value defaults to Page1")

	tbl.SetPage(Page2)
	assert.Equal(Page2, tbl.Page())
}

func TestInsertFailures(t *testing.T) {
	assert := assert.New(t)

	var tbl Table
	assert.Equal(int64(0), tbl.InsertFailures())

	for i := 0; i < 5; i++ {
		tbl.IncrInsertFailures()
	}
	assert.Equal(int64(5), tbl.InsertFailures())
}

func TestInsertFailuresConcurrent(t *testing.T) {
	assert := assert.New(t)

	var tbl Table
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tbl.IncrInsertFailures()
		}()
	}
	wg.Wait()

	assert.Equal(int64(200), tbl.InsertFailures())
}

func TestLoadCoercesLooseTypes(t *testing.T) {
	assert := assert.New(t)

	var tbl Table
	err := tbl.Load(map[string]any{
		"START_TIME_NS": "1700000000",
		"FLOW_PAGE":     1.0,
		"unknown_key":   "ignored",
	})
	assert.NoError(err)
	assert.Equal(int64(1700000000), tbl.StartTime())
	assert.Equal(Page2, tbl.Page())
}

func TestLoadRejectsUncoercible(t *testing.T) {
	assert := assert.New(t)

	var tbl Table
	err := tbl.Load(map[string]any{"FLOW_PAGE": "not-a-number"})
	assert.Error(err)
}

// atomic32 is a tiny test-only counter, avoiding a second import just to
// count goroutine wins.
type atomic32 struct {
	mu sync.Mutex
	n  int
}

func (a *atomic32) incr() {
	a.mu.Lock()
	a.n++
	a.mu.Unlock()
}

func (a *atomic32) load() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.n
}
