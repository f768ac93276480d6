package usecase

import (
	"fmt"
	"sync"

	"adbridge/internal/core/domain"
)

// runBulk fans a per-item operation out over ids, one goroutine per item.
// Items fail or succeed independently: an error (or panic) in one item never
// cancels another, and the result list preserves input order. The sum of
// succeeded and failed always equals len(ids).
func runBulk(ids []string, op func(id string) error) *domain.BulkResult {
	items := make([]domain.BulkItem, len(ids))
	var wg sync.WaitGroup
	wg.Add(len(ids))
	for i, id := range ids {
		go func(i int, id string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					items[i] = domain.BulkItem{ID: id, Err: fmt.Sprintf("panic: %v", r)}
				}
			}()
			if err := op(id); err != nil {
				items[i] = domain.BulkItem{ID: id, Err: err.Error()}
				return
			}
			items[i] = domain.BulkItem{ID: id, OK: true}
		}(i, id)
	}
	wg.Wait()

	res := &domain.BulkResult{Items: items}
	for _, it := range items {
		if it.OK {
			res.Succeeded++
		} else {
			res.Failed++
		}
	}
	return res
}
