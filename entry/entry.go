package entry

// Entry is the local time-entry record shared by storage, sync, and outputs.
//
// Date and Time keep the storage text layouts ("2006-01-02" and "15:04");
// use internal/timeutil to combine them into a time.Time.
type Entry struct {
	ID              int64
	Date            string
	Time            string
	Project         string
	TicketID        int64
	TicketNumber    string
	TicketTitle     string
	Description     string
	DurationMinutes int
	Synced          bool
}

// HasTicket reports whether the entry references a remote issue.
// Entries without a ticket have nothing to mirror and auto-succeed on sync.
func (e Entry) HasTicket() bool {
	return e.TicketNumber != ""
}
