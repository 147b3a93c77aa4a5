// Package syncer mirrors unsynced local time entries into the tracker as
// worklogs and records which entries made it.
package syncer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"logtracker/entry"
	"logtracker/internal/timeutil"
)

// EntryStore is the slice of the persistence layer the orchestrator consumes.
// MarkSynced must be atomic: either every listed id is flipped or none are.
type EntryStore interface {
	ListUnsynced() ([]entry.Entry, error)
	MarkSynced(ids []int64) error
}

// WorklogPusher is the single remote call the orchestrator needs.
type WorklogPusher interface {
	PushWorklog(ctx context.Context, key string, minutes int, comment string, startedAt time.Time) error
}

// Outcome is the result for one entry within a sync run.
type Outcome struct {
	EntryID      int64
	TicketNumber string
	Succeeded    bool
	ErrorMessage string
}

// Report enumerates every attempted entry's outcome in input order.
// MarkedSynced is the number of entries whose sync flag was flipped.
type Report struct {
	Outcomes     []Outcome
	MarkedSynced int
}

func (r *Report) SucceededCount() int {
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Succeeded {
			count++
		}
	}
	return count
}

func (r *Report) FailedCount() int {
	return len(r.Outcomes) - r.SucceededCount()
}

type Service struct {
	store       EntryStore
	pusher      WorklogPusher
	concurrency int
}

// NewService wires the orchestrator. concurrency bounds the number of
// in-flight pushes; values below 1 run sequentially.
func NewService(store EntryStore, pusher WorklogPusher, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{store: store, pusher: pusher, concurrency: concurrency}
}

// Run loads the unsynced entries and syncs them.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	entries, err := s.store.ListUnsynced()
	if err != nil {
		return nil, fmt.Errorf("list unsynced entries: %w", err)
	}
	return s.Sync(ctx, entries)
}

// Sync pushes each entry once and marks the succeeded subset synced.
//
// Entries without a ticket reference have nothing to mirror and succeed
// without a remote call. A failed push is recovered into the entry's outcome
// and never aborts the run; the entry stays unsynced for the next attempt.
// MarkSynced is called at most once, after every push has completed, and its
// failure fails the whole run — worklogs already pushed in that run will be
// pushed again on retry because the remote API carries no idempotency key.
//
// Cancelling ctx skips the entries not yet attempted; they are omitted from
// the report and remain unsynced. Outcomes of already-finished pushes are
// kept.
func (s *Service) Sync(ctx context.Context, entries []entry.Entry) (*Report, error) {
	type slot struct {
		outcome   Outcome
		attempted bool
	}
	slots := make([]slot, len(entries))

	group := new(errgroup.Group)
	group.SetLimit(s.concurrency)

	for i := range entries {
		i := i
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			e := entries[i]
			slots[i].attempted = true
			slots[i].outcome = s.pushEntry(ctx, e)
			return nil
		})
	}
	// Join barrier: the synced batch is computed only after every push is done.
	_ = group.Wait()

	report := &Report{Outcomes: make([]Outcome, 0, len(entries))}
	succeededIDs := make([]int64, 0, len(entries))
	for _, item := range slots {
		if !item.attempted {
			continue
		}
		report.Outcomes = append(report.Outcomes, item.outcome)
		if item.outcome.Succeeded {
			succeededIDs = append(succeededIDs, item.outcome.EntryID)
		}
	}

	if len(succeededIDs) > 0 {
		if err := s.store.MarkSynced(succeededIDs); err != nil {
			return report, fmt.Errorf("mark %d entries synced: %w", len(succeededIDs), err)
		}
		report.MarkedSynced = len(succeededIDs)
	}

	return report, nil
}

func (s *Service) pushEntry(ctx context.Context, e entry.Entry) Outcome {
	outcome := Outcome{EntryID: e.ID, TicketNumber: e.TicketNumber}

	if !e.HasTicket() {
		outcome.Succeeded = true
		return outcome
	}

	startedAt, err := timeutil.ParseDayTime(e.Date, e.Time)
	if err != nil {
		outcome.ErrorMessage = err.Error()
		return outcome
	}

	comment := e.Description
	if e.TicketTitle != "" {
		comment = e.TicketTitle + "\n" + e.Description
	}

	if err := s.pusher.PushWorklog(ctx, e.TicketNumber, e.DurationMinutes, comment, startedAt); err != nil {
		outcome.ErrorMessage = err.Error()
		return outcome
	}

	outcome.Succeeded = true
	return outcome
}
