package events

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordsEvents(t *testing.T) {
	var handled []Event
	c := NewCollector(func(e Event) {
		handled = append(handled, e)
	})

	start := time.Now().Add(-time.Millisecond)
	c.AddTiming(ScanCompleted, start, map[string]interface{}{
		"rows.scanned": int64(10),
	})

	recorded := c.Events()
	require.Len(t, recorded, 1)
	assert.Equal(t, ScanCompleted, recorded[0].Name)
	assert.Equal(t, int64(10), recorded[0].Data["rows.scanned"])
	assert.True(t, recorded[0].Latency > 0)

	require.Len(t, handled, 1)
	assert.Equal(t, ScanCompleted, handled[0].Name)
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector(nil)
	c.AddTiming(PivotCompleted, time.Now(), nil)
	require.Len(t, c.Events(), 1)

	c.Reset()
	assert.Empty(t, c.Events())
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.Add(Event{Name: ScanBegin})
	c.AddTiming(ScanCompleted, time.Now(), nil)
	c.Reset()
	assert.Nil(t, c.Events())
}

func TestOutputFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter(&buf)

	f.Handle(Event{
		Name:    ScanCompleted,
		Latency: 3 * time.Millisecond,
		Data: map[string]interface{}{
			"rows.scanned": int64(100),
			"rows.folded":  int64(80),
			"groups":       5,
			"early.stop":   false,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Scan done")
	assert.Contains(t, out, "100 rows")
	assert.Contains(t, out, "80 rows")
	assert.Contains(t, out, "5 groups")
	assert.Contains(t, out, "[3.0ms]")
}

func TestOutputFormatterUnknownEventSilent(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter(&buf)
	f.Handle(Event{Name: "something/else"})
	assert.Empty(t, buf.String())
}
