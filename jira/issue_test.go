package jira

import "testing"

func TestParseIssueType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want IssueType
	}{
		{raw: "Project", want: TypeProject},
		{raw: "projet", want: TypeProject},
		{raw: "Epic", want: TypeEpic},
		{raw: "Épopée", want: TypeEpic},
		{raw: "epopee", want: TypeEpic},
		{raw: "Sub-task", want: TypeSubtask},
		{raw: "subtask", want: TypeSubtask},
		{raw: "Sous-tâche", want: TypeSubtask},
		{raw: "sous-tache", want: TypeSubtask},
		{raw: "Task", want: TypeTask},
		{raw: "Story", want: TypeTask},
		{raw: "Bug", want: TypeTask},
		{raw: "", want: TypeTask},
		{raw: "  epic  ", want: TypeEpic},
	}

	for _, tc := range cases {
		if got := ParseIssueType(tc.raw); got != tc.want {
			t.Fatalf("ParseIssueType(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
