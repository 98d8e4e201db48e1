package application

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softfang/guildctl/internal/domain"
)

func TestFanOutKeepsTargetOrder(t *testing.T) {
	targets := []string{"a", "b", "c", "d"}

	outcomes := fanOut(targets, func(id string) domain.ActionOutcome {
		return domain.ActionOutcome{TargetID: id, Succeeded: id != "c"}
	})

	require.Len(t, outcomes, 4)
	for i, o := range outcomes {
		assert.Equal(t, targets[i], o.TargetID)
	}
	assert.False(t, outcomes[2].Succeeded)
	assert.True(t, outcomes[3].Succeeded, "a failed sibling never blocks later targets")
}

func TestFanOutNExpandsRepeats(t *testing.T) {
	var runs atomic.Int64
	op := func(string) domain.ActionOutcome {
		runs.Add(1)
		return domain.ActionOutcome{Succeeded: true}
	}

	assert.Len(t, fanOutN([]string{"a", "b"}, 3, op), 6)
	assert.EqualValues(t, 6, runs.Load())

	runs.Store(0)
	assert.Len(t, fanOutN([]string{"a"}, 0, op), 1, "counts below one run once")
	assert.EqualValues(t, 1, runs.Load())
}

func TestCrossProductCoversEveryPair(t *testing.T) {
	seen := make(chan string, 16)
	outcomes := crossProduct([]string{"m1", "m2"}, []string{"r1", "r2", "r3"},
		func(m, r string) domain.ActionOutcome {
			seen <- m + "/" + r
			return domain.ActionOutcome{TargetID: m, Succeeded: true}
		})
	close(seen)

	assert.Len(t, outcomes, 6)
	pairs := map[string]bool{}
	for p := range seen {
		pairs[p] = true
	}
	assert.Len(t, pairs, 6)
	assert.True(t, pairs["m2/r3"])
}
