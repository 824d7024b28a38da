package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkIn opens the employee's entry for the business-day of the timestamp.
	MarkIn(ctx context.Context, req MarkInRequest) (EntryResponse, error)

	// MarkOut closes the open entry and reclassifies it.
	MarkOut(ctx context.Context, req MarkOutRequest) (EntryResponse, error)

	// CorrectEntry overwrites an entry's times (administrator fix) and reclassifies it.
	CorrectEntry(ctx context.Context, req CorrectEntryRequest) (EntryResponse, error)

	// GetDailyTotals returns the record of a date with its folded totals.
	GetDailyTotals(ctx context.Context, date string) (DailyRecordResponse, error)
}
