package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"logtracker/entry"
	"logtracker/hierarchy"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var (
	ErrEntryNotFound  = errors.New("entry not found")
	ErrTicketNotFound = errors.New("ticket not found")
)

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS tickets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER,
	ticket_number TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	FOREIGN KEY (project_id) REFERENCES projects (id),
	UNIQUE(project_id, ticket_number)
);

CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER,
	ticket_id INTEGER,
	description TEXT NOT NULL,
	duration INTEGER NOT NULL CHECK(duration > 0),
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	is_synced INTEGER NOT NULL DEFAULT 0,
	ticket_title TEXT NOT NULL DEFAULT '',
	FOREIGN KEY (project_id) REFERENCES projects (id),
	FOREIGN KEY (ticket_id) REFERENCES tickets (id)
);

CREATE TABLE IF NOT EXISTS jira_paths (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL,
	ticket_key TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS jira_subtasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL,
	title TEXT NOT NULL,
	ticket_key TEXT NOT NULL
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// UpsertProject returns the row id for the named project, creating it when
// missing.
func (s *SQLiteStore) UpsertProject(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("project name is required")
	}

	if _, err := s.db.Exec(`INSERT OR IGNORE INTO projects (name) VALUES (?);`, name); err != nil {
		return 0, fmt.Errorf("insert project %q: %w", name, err)
	}

	var id int64
	if err := s.db.QueryRow(`SELECT id FROM projects WHERE name = ?;`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("query project %q: %w", name, err)
	}
	return id, nil
}

// UpsertTicket returns the row id for (projectID, ticketNumber), creating the
// ticket when missing. A non-empty title refreshes the stored title.
func (s *SQLiteStore) UpsertTicket(projectID int64, ticketNumber, title string) (int64, error) {
	ticketNumber = strings.TrimSpace(ticketNumber)
	if ticketNumber == "" {
		return 0, errors.New("ticket number is required")
	}

	const insertStmt = `
INSERT INTO tickets (project_id, ticket_number, title)
VALUES (?, ?, ?)
ON CONFLICT(project_id, ticket_number) DO UPDATE SET
	title = CASE WHEN excluded.title != '' THEN excluded.title ELSE tickets.title END;`

	if _, err := s.db.Exec(insertStmt, nullableID(projectID), ticketNumber, strings.TrimSpace(title)); err != nil {
		return 0, fmt.Errorf("upsert ticket %q: %w", ticketNumber, err)
	}

	var id int64
	err := s.db.QueryRow(
		`SELECT id FROM tickets WHERE project_id IS ? AND ticket_number = ?;`,
		nullableID(projectID),
		ticketNumber,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrTicketNotFound
		}
		return 0, fmt.Errorf("query ticket %q: %w", ticketNumber, err)
	}
	return id, nil
}

// AddEntry stores one time entry, creating the referenced project and ticket
// rows on the fly. Ticketless entries are valid.
func (s *SQLiteStore) AddEntry(e entry.Entry) (int64, error) {
	if strings.TrimSpace(e.Description) == "" {
		return 0, errors.New("entry description is required")
	}
	if e.DurationMinutes <= 0 {
		return 0, fmt.Errorf("entry duration must be positive, got %d", e.DurationMinutes)
	}

	var projectID int64
	if strings.TrimSpace(e.Project) != "" {
		id, err := s.UpsertProject(e.Project)
		if err != nil {
			return 0, err
		}
		projectID = id
	}

	var ticketID int64
	if e.TicketNumber != "" {
		id, err := s.UpsertTicket(projectID, e.TicketNumber, e.TicketTitle)
		if err != nil {
			return 0, err
		}
		ticketID = id
	}

	const insertStmt = `
INSERT INTO entries (project_id, ticket_id, description, duration, date, time, ticket_title)
VALUES (?, ?, ?, ?, ?, ?, ?);`

	res, err := s.db.Exec(
		insertStmt,
		nullableID(projectID),
		nullableID(ticketID),
		e.Description,
		e.DurationMinutes,
		e.Date,
		e.Time,
		e.TicketTitle,
	)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted entry id: %w", err)
	}
	return id, nil
}

// ListEntries returns entries joined with their project and ticket rows,
// newest first. days <= 0 lists everything.
func (s *SQLiteStore) ListEntries(days int) ([]entry.Entry, error) {
	query := entrySelect
	if days > 0 {
		query += fmt.Sprintf(" WHERE e.date >= date('now', '-%d days')", days)
	}
	query += " ORDER BY e.date DESC, e.time DESC, e.id DESC;"
	return s.queryEntries(query)
}

// ListUnsynced returns every entry whose sync flag is still unset.
func (s *SQLiteStore) ListUnsynced() ([]entry.Entry, error) {
	query := entrySelect + " WHERE e.is_synced = 0 ORDER BY e.date DESC, e.time DESC, e.id DESC;"
	return s.queryEntries(query)
}

// MarkSynced flips the sync flag for every listed id, all or nothing. The
// update runs in one transaction and rolls back when any id is missing, so a
// partially-marked batch is never observable.
func (s *SQLiteStore) MarkSynced(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("entry id must be > 0, got %d", id)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin mark-synced transaction: %w", err)
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := tx.Exec(`UPDATE entries SET is_synced = 1 WHERE id IN (`+placeholders+`);`, args...)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("mark entries synced: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("read marked row count: %w", err)
	}
	if affected != int64(len(ids)) {
		_ = tx.Rollback()
		return fmt.Errorf("mark synced expected %d rows, matched %d: %w", len(ids), affected, ErrEntryNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mark-synced transaction: %w", err)
	}
	return nil
}

// ReplaceRegistries swaps the full contents of both registry tables inside
// one transaction. A failure leaves the previous registries untouched.
func (s *SQLiteStore) ReplaceRegistries(paths []hierarchy.PathEntry, subtasks []hierarchy.SubtaskEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin registry transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM jira_paths;`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear path registry: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM jira_subtasks;`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear sub-task registry: %w", err)
	}

	pathStmt, err := tx.Prepare(`INSERT INTO jira_paths (path, ticket_key) VALUES (?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare path insert: %w", err)
	}
	defer pathStmt.Close()

	for _, row := range paths {
		if _, err := pathStmt.Exec(row.Path, row.TicketKey); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert path %q: %w", row.Path, err)
		}
	}

	subtaskStmt, err := tx.Prepare(`INSERT INTO jira_subtasks (path, title, ticket_key) VALUES (?, ?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare sub-task insert: %w", err)
	}
	defer subtaskStmt.Close()

	for _, row := range subtasks {
		if _, err := subtaskStmt.Exec(row.Path, row.Title, row.TicketKey); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert sub-task %q: %w", row.TicketKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registry transaction: %w", err)
	}
	return nil
}

// ListPaths returns the current path registry ordered by path.
func (s *SQLiteStore) ListPaths() ([]hierarchy.PathEntry, error) {
	rows, err := s.db.Query(`SELECT path, ticket_key FROM jira_paths ORDER BY path, ticket_key;`)
	if err != nil {
		return nil, fmt.Errorf("query path registry: %w", err)
	}
	defer rows.Close()

	paths := make([]hierarchy.PathEntry, 0, 64)
	for rows.Next() {
		var row hierarchy.PathEntry
		if err := rows.Scan(&row.Path, &row.TicketKey); err != nil {
			return nil, fmt.Errorf("scan path row: %w", err)
		}
		paths = append(paths, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate path registry: %w", err)
	}
	return paths, nil
}

// SearchSubtasks returns sub-task registry rows whose path, title, or key
// contains the term (case-insensitive). An empty term returns every row.
func (s *SQLiteStore) SearchSubtasks(term string) ([]hierarchy.SubtaskEntry, error) {
	const query = `
SELECT path, title, ticket_key
FROM jira_subtasks
WHERE ? = ''
   OR lower(path) LIKE ?
   OR lower(title) LIKE ?
   OR lower(ticket_key) LIKE ?
ORDER BY path, title, ticket_key;`

	term = strings.ToLower(strings.TrimSpace(term))
	pattern := "%" + term + "%"
	rows, err := s.db.Query(query, term, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("query sub-task registry: %w", err)
	}
	defer rows.Close()

	subtasks := make([]hierarchy.SubtaskEntry, 0, 64)
	for rows.Next() {
		var row hierarchy.SubtaskEntry
		if err := rows.Scan(&row.Path, &row.Title, &row.TicketKey); err != nil {
			return nil, fmt.Errorf("scan sub-task row: %w", err)
		}
		subtasks = append(subtasks, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sub-task registry: %w", err)
	}
	return subtasks, nil
}

// ListSubtasks returns the full sub-task registry.
func (s *SQLiteStore) ListSubtasks() ([]hierarchy.SubtaskEntry, error) {
	return s.SearchSubtasks("")
}

const entrySelect = `
SELECT
	e.id,
	e.date,
	e.time,
	COALESCE(p.name, '') AS project,
	COALESCE(e.ticket_id, 0) AS ticket_id,
	COALESCE(t.ticket_number, '') AS ticket_number,
	e.ticket_title,
	e.description,
	e.duration,
	e.is_synced
FROM entries e
LEFT JOIN projects p ON e.project_id = p.id
LEFT JOIN tickets t ON e.ticket_id = t.id`

func (s *SQLiteStore) queryEntries(query string) ([]entry.Entry, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]entry.Entry, 0, 64)
	for rows.Next() {
		var e entry.Entry
		if err := rows.Scan(
			&e.ID,
			&e.Date,
			&e.Time,
			&e.Project,
			&e.TicketID,
			&e.TicketNumber,
			&e.TicketTitle,
			&e.Description,
			&e.DurationMinutes,
			&e.Synced,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id > 0}
}
