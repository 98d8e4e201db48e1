package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func TestLogbookNewestFirst(t *testing.T) {
	clock := &stepClock{
		now:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		step: time.Second,
	}
	lb := NewLogbook(clock)

	lb.Append("alpha", "first")
	lb.Append("alpha", "second")
	lb.Append("ops", "third")

	entries := lb.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Text)
	assert.Equal(t, "ops", entries[0].Scope)
	assert.Equal(t, "first", entries[2].Text)
	assert.Equal(t, 3, lb.Len())
}

func TestLogEntryFormat(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
	lb := NewLogbook(clock)

	lb.Append("my guild", "Kicked %s", "alice")

	entries := lb.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "(09:26:53) [my guild] Kicked alice", entries[0].String())
}

func TestLogbookCopyTextReverseChronological(t *testing.T) {
	clock := &stepClock{
		now:  time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		step: time.Minute,
	}
	lb := NewLogbook(clock)

	lb.Append("g", "oldest")
	lb.Append("g", "middle")
	lb.Append("g", "newest")

	assert.Equal(t,
		"(12:02:00) [g] newest\n(12:01:00) [g] middle\n(12:00:00) [g] oldest",
		lb.CopyText())
}

func TestLogbookClear(t *testing.T) {
	lb := NewLogbook(nil)
	lb.Append("g", "line")
	require.Equal(t, 1, lb.Len())

	lb.Clear()
	assert.Zero(t, lb.Len())
	assert.Empty(t, lb.CopyText())
}
