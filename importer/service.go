// Package importer refreshes the local path and sub-task registries from a
// full tracker search.
package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"logtracker/hierarchy"
	"logtracker/jira"
)

// issueFields is the field list requested from the search endpoint; it is
// exactly what the resolver consumes.
var issueFields = []string{"summary", "issuetype", "parent", "status"}

// IssueSearcher is the slice of the remote client the importer consumes.
type IssueSearcher interface {
	SearchIssues(ctx context.Context, query string, fields []string, maxResults int) ([]jira.Issue, error)
}

// RegistryStore persists both registries with replace-all semantics: the
// swap happens in one transaction or not at all.
type RegistryStore interface {
	ReplaceRegistries(paths []hierarchy.PathEntry, subtasks []hierarchy.SubtaskEntry) error
}

// Result summarizes one hierarchy import.
type Result struct {
	IssuesFetched   int
	PathCount       int
	SubtaskCount    int
	DroppedSubtasks int
	Elapsed         time.Duration
}

type Service struct {
	client     IssueSearcher
	store      RegistryStore
	maxResults int
}

func NewService(client IssueSearcher, store RegistryStore, maxResults int) *Service {
	return &Service{client: client, store: store, maxResults: maxResults}
}

// ImportHierarchy fetches the issues matching query, resolves their paths,
// and replaces both registries.
//
// A failed or empty fetch returns before storage is touched, so a bad query
// can never wipe a previously-good registry: an invalid query surfaces as a
// *RemoteError from the search, while a query that matches nothing returns a
// zero Result. A persistence failure rolls back entirely inside the store.
func (s *Service) ImportHierarchy(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("import query is required")
	}

	started := time.Now()

	issues, err := s.client.SearchIssues(ctx, query, issueFields, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("fetch issues: %w", err)
	}

	result := &Result{IssuesFetched: len(issues)}
	if len(issues) == 0 {
		result.Elapsed = time.Since(started)
		return result, nil
	}

	resolution := hierarchy.Resolve(issues)
	if err := s.store.ReplaceRegistries(resolution.Paths, resolution.Subtasks); err != nil {
		return nil, fmt.Errorf("replace registries: %w", err)
	}

	result.PathCount = len(resolution.Paths)
	result.SubtaskCount = len(resolution.Subtasks)
	result.DroppedSubtasks = resolution.DroppedSubtasks
	result.Elapsed = time.Since(started)
	return result, nil
}
