package output

import (
	"fmt"
	"strings"

	"logtracker/entry"
)

type Writer interface {
	Write(path string, entries []entry.Entry) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

var headers = []string{"Date", "Time", "Project", "Ticket", "TicketTitle", "Description", "DurationMinutes", "Synced"}

func rowValues(e entry.Entry) []string {
	synced := "no"
	if e.Synced {
		synced = "yes"
	}
	return []string{
		e.Date,
		e.Time,
		e.Project,
		e.TicketNumber,
		e.TicketTitle,
		e.Description,
		fmt.Sprintf("%d", e.DurationMinutes),
		synced,
	}
}
