// Package hierarchy reconstructs human-readable project/epic/feature paths
// from the flat, parent-linked issue lists returned by the tracker.
package hierarchy

import (
	"logtracker/jira"
)

// PathEntry is one row of the path registry: a resolvable, non-sub-task
// issue and its `/`-joined ancestor path.
type PathEntry struct {
	Path      string
	TicketKey string
}

// SubtaskEntry is one row of the sub-task registry: a sub-task attached to
// the resolved path of its parent.
type SubtaskEntry struct {
	Path      string
	Title     string
	TicketKey string
}

// Resolution carries both registries produced by one Resolve call.
// DroppedSubtasks counts sub-tasks whose parent never resolved to a path;
// dropping them is expected behavior, the count exists for reporting.
type Resolution struct {
	Paths           []PathEntry
	Subtasks        []SubtaskEntry
	DroppedSubtasks int
}

// Resolve computes the path and sub-task registries for a flat issue list.
//
// It is a pure function: no I/O, no error paths, and deterministic output —
// registry rows keep the input order of their issues, so the same issue set
// always yields identical registries. Missing parents and parent cycles
// terminate the ancestor walk at that point instead of failing; an empty
// input yields two empty registries.
func Resolve(issues []jira.Issue) Resolution {
	index := make(map[string]jira.Issue, len(issues))
	for _, issue := range issues {
		if issue.Key == "" {
			continue
		}
		if _, exists := index[issue.Key]; exists {
			continue
		}
		index[issue.Key] = issue
	}

	resolution := Resolution{
		Paths:    make([]PathEntry, 0, len(issues)),
		Subtasks: make([]SubtaskEntry, 0),
	}

	pathByKey := make(map[string]string, len(issues))
	for _, issue := range issues {
		if issue.Type == jira.TypeSubtask || issue.Key == "" {
			continue
		}

		chain := ancestorChain(issue, index)
		if len(chain) == 0 {
			continue
		}

		path := buildPath(issue, chain)
		resolution.Paths = append(resolution.Paths, PathEntry{Path: path, TicketKey: issue.Key})
		pathByKey[issue.Key] = path
	}

	for _, issue := range issues {
		if issue.Type != jira.TypeSubtask {
			continue
		}
		parentPath, ok := pathByKey[issue.ParentKey]
		if !ok {
			resolution.DroppedSubtasks++
			continue
		}
		resolution.Subtasks = append(resolution.Subtasks, SubtaskEntry{
			Path:      parentPath,
			Title:     issue.Title,
			TicketKey: issue.Key,
		})
	}

	return resolution
}

// ancestorChain walks parent links upward from the issue and returns the
// collected titles ordered root-first, the issue's own title last. The walk
// stops at a missing parent key or when a key repeats (cycle).
func ancestorChain(issue jira.Issue, index map[string]jira.Issue) []string {
	seen := make(map[string]struct{}, 4)
	titles := make([]string, 0, 4)

	current := issue
	for {
		if _, visited := seen[current.Key]; visited {
			break
		}
		seen[current.Key] = struct{}{}
		titles = append(titles, current.Title)

		if current.ParentKey == "" {
			break
		}
		parent, ok := index[current.ParentKey]
		if !ok {
			break
		}
		current = parent
	}

	for i, j := 0, len(titles)-1; i < j; i, j = i+1, j-1 {
		titles[i], titles[j] = titles[j], titles[i]
	}
	return titles
}

// buildPath shapes the path by node role. The trailing-slash padding encodes
// the node's depth so registry consumers can distinguish projects, epics,
// and feature-level nodes from the path alone.
func buildPath(issue jira.Issue, chain []string) string {
	switch issue.Type {
	case jira.TypeProject:
		return issue.Title + "//"
	case jira.TypeEpic:
		if len(chain) >= 2 {
			return chain[0] + "/" + chain[1] + "//"
		}
		return chain[0] + "//"
	default:
		switch {
		case len(chain) >= 3:
			return chain[0] + "/" + chain[1] + "/" + chain[2]
		case len(chain) == 2:
			return chain[0] + "/" + chain[1] + "/"
		default:
			return chain[0] + "//"
		}
	}
}
