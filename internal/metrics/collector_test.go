package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpRoute, 10*time.Millisecond)
	c.RecordTiming(OpRoute, 30*time.Millisecond)

	snap := c.Snapshot()
	require.NotNil(t, snap.Route)
	assert.Equal(t, int64(2), snap.Route.Count)
	assert.Equal(t, int64(40), snap.Route.TotalTimeMs)
	assert.Equal(t, 20.0, snap.Route.AvgTimeMs)
	assert.Equal(t, int64(10), snap.Route.MinTimeMs)
	assert.Equal(t, int64(30), snap.Route.MaxTimeMs)
	assert.Nil(t, snap.Match, "no data recorded for match")
}

func TestCollector_Counters(t *testing.T) {
	c := NewCollector()
	c.Inc("match.lenient")
	c.Inc("match.lenient")
	c.Inc("match.matched")

	snap := c.Snapshot()
	assert.Equal(t, int64(2), snap.Counters["match.lenient"])
	assert.Equal(t, int64(1), snap.Counters["match.matched"])

	snap.Counters["match.lenient"] = 100
	assert.Equal(t, int64(2), c.Snapshot().Counters["match.lenient"], "snapshot is a copy")
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector
	c.RecordTiming(OpMatch, time.Second)
	c.Inc("x")
	c.Since(OpMatch, time.Now())
	assert.NotNil(t, c.Snapshot().Counters)
}

func TestCollector_Concurrent(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordTiming(OpMatch, time.Millisecond)
			c.Inc("match.matched")
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	require.NotNil(t, snap.Match)
	assert.Equal(t, int64(50), snap.Match.Count)
	assert.Equal(t, int64(50), snap.Counters["match.matched"])
}
