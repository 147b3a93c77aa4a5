package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"logtracker/entry"
	"logtracker/hierarchy"
	"logtracker/internal/timeutil"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "logtracker_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_AddAndListEntries(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	withTicket := entry.Entry{
		Date:            "2026-08-14",
		Time:            "09:30",
		Project:         "Platform",
		TicketNumber:    "DEMO-12",
		TicketTitle:     "Checkout rework",
		Description:     "worked on parser",
		DurationMinutes: 90,
	}
	ticketless := entry.Entry{
		Date:            "2026-08-14",
		Time:            "14:00",
		Description:     "team meeting",
		DurationMinutes: 30,
	}

	firstID, err := store.AddEntry(withTicket)
	if err != nil {
		t.Fatalf("add entry with ticket: %v", err)
	}
	if _, err := store.AddEntry(ticketless); err != nil {
		t.Fatalf("add ticketless entry: %v", err)
	}

	entries, err := store.ListEntries(0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Newest first: the 14:00 entry leads.
	if entries[0].Description != "team meeting" || entries[0].HasTicket() {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}

	got := entries[1]
	if got.ID != firstID || got.Project != "Platform" || got.TicketNumber != "DEMO-12" || got.TicketTitle != "Checkout rework" {
		t.Fatalf("unexpected joined entry: %+v", got)
	}
	if got.Synced {
		t.Fatalf("new entries must start unsynced: %+v", got)
	}
}

func TestSQLiteStore_AddEntry_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if _, err := store.AddEntry(entry.Entry{Description: "", DurationMinutes: 30}); err == nil {
		t.Fatal("expected error for empty description")
	}
	if _, err := store.AddEntry(entry.Entry{Description: "x", DurationMinutes: 0}); err == nil {
		t.Fatal("expected error for non-positive duration")
	}
}

func TestSQLiteStore_MarkSyncedIsAtomic(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	ids := make([]int64, 0, 2)
	for _, desc := range []string{"one", "two"} {
		id, err := store.AddEntry(entry.Entry{
			Date: "2026-08-14", Time: "09:00",
			Description: desc, DurationMinutes: 30,
		})
		if err != nil {
			t.Fatalf("add entry: %v", err)
		}
		ids = append(ids, id)
	}

	// A batch containing a missing id must not mark anything.
	err := store.MarkSynced(append(append([]int64{}, ids...), 9999))
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	unsynced, err := store.ListUnsynced()
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(unsynced) != 2 {
		t.Fatalf("expected rollback to keep 2 unsynced entries, got %d", len(unsynced))
	}

	if err := store.MarkSynced(ids); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	unsynced, err = store.ListUnsynced()
	if err != nil {
		t.Fatalf("list unsynced: %v", err)
	}
	if len(unsynced) != 0 {
		t.Fatalf("expected no unsynced entries, got %d", len(unsynced))
	}

	// Empty batch is a no-op.
	if err := store.MarkSynced(nil); err != nil {
		t.Fatalf("mark synced with empty batch: %v", err)
	}
}

func TestSQLiteStore_ListEntries_DayWindow(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	today, _ := timeutil.FormatDayTime(time.Now())
	oldDay, _ := timeutil.FormatDayTime(time.Now().AddDate(0, 0, -30))

	if _, err := store.AddEntry(entry.Entry{Date: today, Time: "09:00", Description: "recent", DurationMinutes: 30}); err != nil {
		t.Fatalf("add recent entry: %v", err)
	}
	if _, err := store.AddEntry(entry.Entry{Date: oldDay, Time: "09:00", Description: "old", DurationMinutes: 30}); err != nil {
		t.Fatalf("add old entry: %v", err)
	}

	recent, err := store.ListEntries(7)
	if err != nil {
		t.Fatalf("list recent entries: %v", err)
	}
	if len(recent) != 1 || recent[0].Description != "recent" {
		t.Fatalf("expected only the recent entry, got %+v", recent)
	}

	all, err := store.ListEntries(0)
	if err != nil {
		t.Fatalf("list all entries: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries without window, got %d", len(all))
	}
}

func TestSQLiteStore_UpsertTicket_RefreshesTitleOnlyWhenProvided(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	projectID, err := store.UpsertProject("Platform")
	if err != nil {
		t.Fatalf("upsert project: %v", err)
	}

	first, err := store.UpsertTicket(projectID, "DEMO-12", "Original title")
	if err != nil {
		t.Fatalf("upsert ticket: %v", err)
	}

	// Empty title keeps the stored one.
	second, err := store.UpsertTicket(projectID, "DEMO-12", "")
	if err != nil {
		t.Fatalf("upsert ticket without title: %v", err)
	}
	if first != second {
		t.Fatalf("expected stable ticket id, got %d then %d", first, second)
	}

	if _, err := store.UpsertTicket(projectID, "DEMO-12", "Renamed"); err != nil {
		t.Fatalf("upsert ticket with new title: %v", err)
	}

	var title string
	if err := store.db.QueryRow(`SELECT title FROM tickets WHERE id = ?;`, first).Scan(&title); err != nil {
		t.Fatalf("read ticket title: %v", err)
	}
	if title != "Renamed" {
		t.Fatalf("expected refreshed title, got %q", title)
	}
}

func TestSQLiteStore_ReplaceRegistriesSwapsEverything(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	firstPaths := []hierarchy.PathEntry{
		{Path: "Old//", TicketKey: "OLD-1"},
		{Path: "Old/Epic//", TicketKey: "OLD-2"},
	}
	firstSubtasks := []hierarchy.SubtaskEntry{
		{Path: "Old/Epic//", Title: "Old sub", TicketKey: "OLD-3"},
	}
	if err := store.ReplaceRegistries(firstPaths, firstSubtasks); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	secondPaths := []hierarchy.PathEntry{{Path: "New//", TicketKey: "NEW-1"}}
	secondSubtasks := []hierarchy.SubtaskEntry{{Path: "New//", Title: "New sub", TicketKey: "NEW-2"}}
	if err := store.ReplaceRegistries(secondPaths, secondSubtasks); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	paths, err := store.ListPaths()
	if err != nil {
		t.Fatalf("list paths: %v", err)
	}
	if len(paths) != 1 || paths[0].TicketKey != "NEW-1" {
		t.Fatalf("expected old registry fully replaced, got %+v", paths)
	}

	subtasks, err := store.ListSubtasks()
	if err != nil {
		t.Fatalf("list sub-tasks: %v", err)
	}
	if len(subtasks) != 1 || subtasks[0].TicketKey != "NEW-2" {
		t.Fatalf("expected old sub-tasks fully replaced, got %+v", subtasks)
	}
}

func TestSQLiteStore_SearchSubtasks(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	subtasks := []hierarchy.SubtaskEntry{
		{Path: "Platform/Payments//", Title: "Harden rollout", TicketKey: "DEMO-20"},
		{Path: "Platform/Search//", Title: "Tune ranking", TicketKey: "DEMO-21"},
	}
	if err := store.ReplaceRegistries(nil, subtasks); err != nil {
		t.Fatalf("replace registries: %v", err)
	}

	byTitle, err := store.SearchSubtasks("ROLLOUT")
	if err != nil {
		t.Fatalf("search by title: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].TicketKey != "DEMO-20" {
		t.Fatalf("unexpected title match: %+v", byTitle)
	}

	byPath, err := store.SearchSubtasks("payments")
	if err != nil {
		t.Fatalf("search by path: %v", err)
	}
	if len(byPath) != 1 || byPath[0].TicketKey != "DEMO-20" {
		t.Fatalf("unexpected path match: %+v", byPath)
	}

	byKey, err := store.SearchSubtasks("demo-21")
	if err != nil {
		t.Fatalf("search by key: %v", err)
	}
	if len(byKey) != 1 || byKey[0].TicketKey != "DEMO-21" {
		t.Fatalf("unexpected key match: %+v", byKey)
	}

	all, err := store.SearchSubtasks("")
	if err != nil {
		t.Fatalf("search with empty term: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected empty term to match everything, got %d", len(all))
	}

	none, err := store.SearchSubtasks("no-such-thing")
	if err != nil {
		t.Fatalf("search with no match: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %+v", none)
	}
}
