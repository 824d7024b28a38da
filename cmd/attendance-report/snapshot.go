package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

// snapshot is an offline export of one company's configuration, holiday
// rules and daily records.
type snapshot struct {
	Company struct {
		ID              string             `json:"id"`
		Name            string             `json:"name"`
		Timezone        *string            `json:"timezone,omitempty"`
		WeeklyOffDays   []calendar.Weekday `json:"weeklyOffDays"`
		WorkingDays     []calendar.Weekday `json:"workingDays"`
		LateInHour      *int               `json:"lateInHour,omitempty"`
		EarlyOutHour    *int               `json:"earlyOutHour,omitempty"`
		HalfDayMaxHours *float64           `json:"halfDayMaxHours,omitempty"`
	} `json:"company"`
	Holidays []snapshotHoliday `json:"holidays"`
	Records  []snapshotRecord  `json:"records"`
}

type snapshotHoliday struct {
	ID                string        `json:"id"`
	Date              calendar.Date `json:"date"`
	Name              string        `json:"name"`
	Recurring         bool          `json:"recurring"`
	RecurrencePattern *string       `json:"recurrencePattern,omitempty"`
	IsWeeklyHoliday   bool          `json:"isWeeklyHoliday"`
}

type snapshotRecord struct {
	Date    calendar.Date   `json:"date"`
	Entries []snapshotEntry `json:"entries"`
}

type snapshotEntry struct {
	EmployeeID string     `json:"employeeId"`
	InTime     *time.Time `json:"inTime,omitempty"`
	OutTime    *time.Time `json:"outTime,omitempty"`
}

func loadSnapshot(path string) (*snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if err := company.ValidateWorkWeek(s.Company.WeeklyOffDays, s.Company.WorkingDays); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *snapshot) company() company.Company {
	return company.Company{
		ID:              s.Company.ID,
		Name:            s.Company.Name,
		Timezone:        s.Company.Timezone,
		WeeklyOffDays:   s.Company.WeeklyOffDays,
		WorkingDays:     s.Company.WorkingDays,
		LateInHour:      s.Company.LateInHour,
		EarlyOutHour:    s.Company.EarlyOutHour,
		HalfDayMaxHours: s.Company.HalfDayMaxHours,
	}
}

// rules stamps creation times from file position, so file order alone decides
// ties between rules on the same date. Exports list rules in creation order.
func (s *snapshot) rules() ([]holiday.HolidayRule, error) {
	rules := make([]holiday.HolidayRule, 0, len(s.Holidays))
	for i, h := range s.Holidays {
		rule := holiday.HolidayRule{
			ID:              h.ID,
			CompanyID:       s.Company.ID,
			AnchorDate:      h.Date,
			Name:            h.Name,
			Recurring:       h.Recurring,
			IsWeeklyHoliday: h.IsWeeklyHoliday,
			CreatedAt:       time.Unix(int64(i), 0).UTC(),
		}
		if rule.ID == "" {
			rule.ID = fmt.Sprintf("rule-%03d", i+1)
		}
		if h.RecurrencePattern != nil {
			p := holiday.RecurrencePattern(*h.RecurrencePattern)
			rule.RecurrencePattern = &p
		}
		if h.Recurring && (rule.RecurrencePattern == nil || !rule.RecurrencePattern.Valid()) {
			return nil, fmt.Errorf("%w: holiday %q", holiday.ErrInvalidRecurrence, h.Name)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (s *snapshot) records() []attendance.DailyAttendanceRecord {
	records := make([]attendance.DailyAttendanceRecord, 0, len(s.Records))
	for _, r := range s.Records {
		record := attendance.DailyAttendanceRecord{
			CompanyID: s.Company.ID,
			Date:      r.Date,
			Entries:   make([]attendance.AttendanceEntry, 0, len(r.Entries)),
		}
		for _, e := range r.Entries {
			record.Upsert(attendance.AttendanceEntry{
				EmployeeID: e.EmployeeID,
				InTime:     e.InTime,
				OutTime:    e.OutTime,
			})
		}
		records = append(records, record)
	}
	return records
}
