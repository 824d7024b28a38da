package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records map[calendar.Date]attendance.DailyAttendanceRecord
}

func (f *fakeAttendanceRepo) GetRecord(ctx context.Context, companyID string, date calendar.Date) (attendance.DailyAttendanceRecord, error) {
	record, ok := f.records[date]
	if !ok {
		return attendance.DailyAttendanceRecord{}, attendance.ErrRecordNotFound
	}
	return record, nil
}

func openRecord(date calendar.Date, in time.Time) attendance.DailyAttendanceRecord {
	return attendance.DailyAttendanceRecord{
		ID:      "rec-" + date.String(),
		Date:    date,
		Entries: []attendance.AttendanceEntry{{EmployeeID: "E1", InTime: &in}},
	}
}

func TestOpenEntry_PreviousDayWithinShiftBound(t *testing.T) {
	yesterday := calendar.NewDate(2025, time.June, 2)
	today := yesterday.AddDays(1)
	in := time.Date(2025, 6, 2, 22, 0, 0, 0, time.UTC)

	svc := &AttendanceServiceImpl{AttendanceRepository: &fakeAttendanceRepo{
		records: map[calendar.Date]attendance.DailyAttendanceRecord{yesterday: openRecord(yesterday, in)},
	}}

	record, entry, err := svc.openEntry(context.Background(), "acme", "E1", today, time.Date(2025, 6, 3, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, yesterday, record.Date)
	assert.Equal(t, "E1", entry.EmployeeID)
}

func TestOpenEntry_PreviousDayBeyondShiftBound(t *testing.T) {
	yesterday := calendar.NewDate(2025, time.June, 2)
	today := yesterday.AddDays(1)
	in := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	svc := &AttendanceServiceImpl{AttendanceRepository: &fakeAttendanceRepo{
		records: map[calendar.Date]attendance.DailyAttendanceRecord{yesterday: openRecord(yesterday, in)},
	}}

	_, _, err := svc.openEntry(context.Background(), "acme", "E1", today, time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, attendance.ErrNotMarkedIn)
}

func TestOpenEntry_TodayAlreadyClosed(t *testing.T) {
	today := calendar.NewDate(2025, time.June, 3)
	in := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 6, 3, 17, 0, 0, 0, time.UTC)
	record := openRecord(today, in)
	record.Entries[0].OutTime = &out

	svc := &AttendanceServiceImpl{AttendanceRepository: &fakeAttendanceRepo{
		records: map[calendar.Date]attendance.DailyAttendanceRecord{today: record},
	}}

	_, _, err := svc.openEntry(context.Background(), "acme", "E1", today, time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarkedOut)
}
