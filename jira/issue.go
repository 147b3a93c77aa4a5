package jira

import "strings"

// IssueType is the normalized role of a remote issue in the hierarchy.
type IssueType string

const (
	TypeProject IssueType = "project"
	TypeEpic    IssueType = "epic"
	TypeTask    IssueType = "task"
	TypeSubtask IssueType = "sub-task"
)

// ParseIssueType maps the source-supplied type name to an IssueType.
// Matching is case-insensitive and accepts the localized aliases seen in
// real instances; anything unrecognized is treated as a feature/task node.
func ParseIssueType(raw string) IssueType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "project", "projet":
		return TypeProject
	case "epic", "épopée", "epopee":
		return TypeEpic
	case "sub-task", "subtask", "sous-tâche", "sous-tache":
		return TypeSubtask
	default:
		return TypeTask
	}
}

// Issue is one remote tracker issue as returned by search or lookup calls.
// ParentKey is empty when the tracker reports no parent; it may also point
// at a key absent from the same search result.
type Issue struct {
	Key       string
	Title     string
	Type      IssueType
	ParentKey string
	Status    string
}
