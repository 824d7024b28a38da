package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

// AttendanceRepository persists daily records. All methods are scoped by companyID.
type AttendanceRepository interface {
	// UpsertRecord atomically creates the (company, date) record or returns the existing one.
	UpsertRecord(ctx context.Context, companyID string, date calendar.Date) (DailyAttendanceRecord, error)

	// GetRecord returns the record with its entries, or ErrRecordNotFound.
	GetRecord(ctx context.Context, companyID string, date calendar.Date) (DailyAttendanceRecord, error)

	// ListRecords returns records in [from, to] ordered by date.
	ListRecords(ctx context.Context, companyID string, from, to calendar.Date) ([]DailyAttendanceRecord, error)

	// UpsertEntry writes the employee's entry, keeping one entry per (record, employee).
	UpsertEntry(ctx context.Context, recordID string, entry AttendanceEntry) (AttendanceEntry, error)
}
