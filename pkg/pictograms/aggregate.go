package pictograms

import (
	"context"
	"log"
	"sync"

	"Lexipic/models"
)

// Searcher is the slice of the symbol search client the aggregator needs.
type Searcher interface {
	Search(ctx context.Context, language, query string) ([]models.Pictogram, error)
}

// Result is the outcome of one aggregation run. UsedQueries holds the
// queries that produced at least one pictogram, in planner order; when no
// query produced anything it holds the full original plan so callers can
// report what was attempted, and Message carries the user-facing note.
type Result struct {
	Pictograms  []models.Pictogram
	UsedQueries []string
	Message     string
}

// Aggregate fans the planned queries out to the search client, merges the
// per-query results in planner order, drops duplicate pictogram ids keeping
// the first occurrence, and truncates to max. Queries run concurrently but
// the merge is deterministic: ties always resolve by planner order, never by
// completion order. A failed query contributes zero pictograms and the run
// continues.
func Aggregate(ctx context.Context, svc Searcher, language string, queries []string, max int) Result {
	slots := make([][]models.Pictogram, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			found, err := svc.Search(ctx, language, q)
			if err != nil {
				log.Printf("[pictograms] search %q failed: %v", q, err)
				return
			}
			slots[i] = found
		}(i, q)
	}
	wg.Wait()

	var (
		aggregated []models.Pictogram
		used       []string
	)
	for i, found := range slots {
		if len(found) == 0 {
			continue
		}
		aggregated = append(aggregated, found...)
		used = append(used, queries[i])
	}

	if len(aggregated) == 0 {
		return Result{
			Pictograms:  []models.Pictogram{},
			UsedQueries: queries,
			Message:     "No se encontraron pictogramas",
		}
	}

	return Result{
		Pictograms:  Dedupe(aggregated, max),
		UsedQueries: used,
	}
}

// Dedupe removes duplicate pictograms by id, keeping the first occurrence,
// and cuts the list to max entries.
func Dedupe(list []models.Pictogram, max int) []models.Pictogram {
	seen := make(map[int]struct{}, len(list))
	result := make([]models.Pictogram, 0, max)
	for _, p := range list {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
		if len(result) >= max {
			break
		}
	}
	return result
}
