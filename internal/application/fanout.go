package application

import (
	"sync"

	"github.com/softfang/guildctl/internal/domain"
)

// fanOut runs one fallible operation per target concurrently and collects a
// per-target outcome. No target's failure cancels or blocks its siblings;
// the call returns once every target has finished. Outcomes keep target
// order even though execution is unordered.
func fanOut[T any](targets []T, op func(T) domain.ActionOutcome) []domain.ActionOutcome {
	outcomes := make([]domain.ActionOutcome, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = op(target)
		}()
	}
	wg.Wait()
	return outcomes
}

// fanOutN repeats the whole per-target operation count times, every
// repetition independently fallible and independently reported.
func fanOutN[T any](targets []T, count int, op func(T) domain.ActionOutcome) []domain.ActionOutcome {
	if count < 1 {
		count = 1
	}
	expanded := make([]T, 0, len(targets)*count)
	for range count {
		expanded = append(expanded, targets...)
	}
	return fanOut(expanded, op)
}

// crossProduct pairs every target with every item, fanning the whole grid
// out concurrently. A target's log entries are the union of its per-item
// outcomes; no roll-up is computed.
func crossProduct[T, U any](targets []T, items []U, op func(T, U) domain.ActionOutcome) []domain.ActionOutcome {
	type pair struct {
		target T
		item   U
	}
	pairs := make([]pair, 0, len(targets)*len(items))
	for _, target := range targets {
		for _, item := range items {
			pairs = append(pairs, pair{target: target, item: item})
		}
	}
	return fanOut(pairs, func(p pair) domain.ActionOutcome {
		return op(p.target, p.item)
	})
}
