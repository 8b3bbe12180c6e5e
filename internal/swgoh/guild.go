package swgoh

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RosterFetchOptions tunes guild roster fetching. Workers bounds concurrent
// requests; Delay throttles each worker between requests so a 50-member
// fetch does not trip the API's rate limit.
type RosterFetchOptions struct {
	Workers int
	Delay   time.Duration

	// OnProgress, if set, is called after each member completes, with the
	// member and the fetch error (nil on success).
	OnProgress func(member GuildMember, err error)
}

// GuildRosters fetches every member's roster. A failed member is skipped
// rather than aborting the run; the count of failures is returned alongside
// the successful rosters, in member order. Context cancellation stops the
// fetch and returns the context error.
func (c *Client) GuildRosters(ctx context.Context, members []GuildMember, opts RosterFetchOptions) ([]PlayerResponse, int, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(members) {
		workers = len(members)
	}

	type result struct {
		index  int
		roster *PlayerResponse
	}

	jobs := make(chan int)
	results := make(chan result, len(members))
	var failed int
	var failedMu sync.Mutex

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				member := members[i]
				roster, err := c.Player(ctx, fmt.Sprintf("%d", member.AllyCode))
				if opts.OnProgress != nil {
					opts.OnProgress(member, err)
				}
				if err != nil {
					failedMu.Lock()
					failed++
					failedMu.Unlock()
				} else {
					results <- result{index: i, roster: roster}
				}

				if opts.Delay > 0 {
					select {
					case <-time.After(opts.Delay):
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	dispatch := func() {
		defer close(jobs)
		for i := range members {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}
	go dispatch()

	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	// Reassemble in member order so output is stable across runs.
	byIndex := make(map[int]*PlayerResponse, len(members))
	for r := range results {
		byIndex[r.index] = r.roster
	}
	rosters := make([]PlayerResponse, 0, len(byIndex))
	for i := range members {
		if roster, ok := byIndex[i]; ok {
			rosters = append(rosters, *roster)
		}
	}
	return rosters, failed, nil
}
