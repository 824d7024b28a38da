package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	companyRepo company.CompanyRepository
	normalizer  calendar.Normalizer
	thresholds  attendance.Thresholds
	now         func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	companyRepo company.CompanyRepository,
	normalizer calendar.Normalizer,
	thresholds attendance.Thresholds,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		companyRepo:          companyRepo,
		normalizer:           normalizer,
		thresholds:           thresholds,
		now:                  time.Now,
	}
}

// policy resolves the calling company's reference zone and thresholds.
func (a *AttendanceServiceImpl) policy(ctx context.Context) (string, calendar.Normalizer, attendance.Thresholds, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return "", calendar.Normalizer{}, attendance.Thresholds{}, err
	}
	c, err := a.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", calendar.Normalizer{}, attendance.Thresholds{}, company.ErrCompanyNotFound
		}
		return "", calendar.Normalizer{}, attendance.Thresholds{}, fmt.Errorf("failed to get company: %w", err)
	}
	return companyID, c.Normalizer(a.normalizer), c.Thresholds(a.thresholds), nil
}

func (a *AttendanceServiceImpl) instant(n calendar.Normalizer, ts *string) (time.Time, error) {
	if ts == nil {
		return a.now().UTC(), nil
	}
	return n.ParseInstant(*ts)
}

func (a *AttendanceServiceImpl) inTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		return fn(postgresql.ContextWithTx(ctx, tx))
	})
}

// MarkIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkIn(ctx context.Context, req attendance.MarkInRequest) (attendance.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EntryResponse{}, err
	}
	companyID, n, thresholds, err := a.policy(ctx)
	if err != nil {
		return attendance.EntryResponse{}, err
	}
	ts, err := a.instant(n, req.Timestamp)
	if err != nil {
		return attendance.EntryResponse{}, err
	}
	date := n.Normalize(ts)

	var saved attendance.AttendanceEntry
	err = a.inTx(ctx, func(txCtx context.Context) error {
		record, err := a.AttendanceRepository.UpsertRecord(txCtx, companyID, date)
		if err != nil {
			return fmt.Errorf("failed to upsert daily record: %w", err)
		}

		entry, found := record.Entry(req.EmployeeID)
		if found && entry.InTime != nil {
			return attendance.ErrAlreadyMarkedIn
		}
		entry.EmployeeID = req.EmployeeID
		entry.InTime = &ts
		if req.Notes != nil {
			entry.Notes = req.Notes
		}
		if req.DeviceInfo != nil {
			entry.DeviceInfo = req.DeviceInfo
		}

		classified, err := ClassifyEntry(entry, thresholds, n)
		if err != nil {
			return err
		}
		saved, err = a.AttendanceRepository.UpsertEntry(txCtx, record.ID, classified)
		if err != nil {
			return fmt.Errorf("failed to save attendance entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.EntryResponse{}, err
	}

	metrics.RecordMark("in", string(saved.InStatus))
	slog.Debug("marked in", "company_id", companyID, "employee_id", req.EmployeeID, "date", date.String(), "status", saved.InStatus)
	return attendance.NewEntryResponse(date, saved, n.Location), nil
}

// MarkOut implements attendance.AttendanceService.
// An entry left open on the previous day is closed too, so shifts may cross midnight.
func (a *AttendanceServiceImpl) MarkOut(ctx context.Context, req attendance.MarkOutRequest) (attendance.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EntryResponse{}, err
	}
	companyID, n, thresholds, err := a.policy(ctx)
	if err != nil {
		return attendance.EntryResponse{}, err
	}
	ts, err := a.instant(n, req.Timestamp)
	if err != nil {
		return attendance.EntryResponse{}, err
	}
	today := n.Normalize(ts)

	var (
		saved attendance.AttendanceEntry
		date  calendar.Date
	)
	err = a.inTx(ctx, func(txCtx context.Context) error {
		record, entry, err := a.openEntry(txCtx, companyID, req.EmployeeID, today, ts)
		if err != nil {
			return err
		}
		date = record.Date

		entry.OutTime = &ts
		if req.Notes != nil {
			entry.Notes = req.Notes
		}
		if req.DeviceInfo != nil {
			entry.DeviceInfo = req.DeviceInfo
		}

		classified, err := ClassifyEntry(entry, thresholds, n)
		if err != nil {
			return err
		}
		saved, err = a.AttendanceRepository.UpsertEntry(txCtx, record.ID, classified)
		if err != nil {
			return fmt.Errorf("failed to save attendance entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.EntryResponse{}, err
	}

	metrics.RecordMark("out", string(saved.OutStatus))
	slog.Debug("marked out", "company_id", companyID, "employee_id", req.EmployeeID, "date", date.String(), "work_hours", saved.WorkHours)
	return attendance.NewEntryResponse(date, saved, n.Location), nil
}

// maxOpenShift bounds how long an entry left open on the previous day may
// still be closed by a mark-out.
const maxOpenShift = 24 * time.Hour

// openEntry finds the employee's entry to close on today, then on the day
// before if it was opened no more than maxOpenShift before ts.
func (a *AttendanceServiceImpl) openEntry(ctx context.Context, companyID, employeeID string, today calendar.Date, ts time.Time) (attendance.DailyAttendanceRecord, attendance.AttendanceEntry, error) {
	for _, date := range []calendar.Date{today, today.AddDays(-1)} {
		record, err := a.AttendanceRepository.GetRecord(ctx, companyID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrRecordNotFound) {
				continue
			}
			return attendance.DailyAttendanceRecord{}, attendance.AttendanceEntry{}, fmt.Errorf("failed to get daily record: %w", err)
		}
		entry, found := record.Entry(employeeID)
		if !found || entry.InTime == nil {
			continue
		}
		if entry.OutTime != nil {
			if date == today {
				return attendance.DailyAttendanceRecord{}, attendance.AttendanceEntry{}, attendance.ErrAlreadyMarkedOut
			}
			continue
		}
		if date != today && ts.Sub(*entry.InTime) > maxOpenShift {
			continue
		}
		return record, entry, nil
	}
	return attendance.DailyAttendanceRecord{}, attendance.AttendanceEntry{}, attendance.ErrNotMarkedIn
}

// CorrectEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CorrectEntry(ctx context.Context, req attendance.CorrectEntryRequest) (attendance.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EntryResponse{}, err
	}
	companyID, n, thresholds, err := a.policy(ctx)
	if err != nil {
		return attendance.EntryResponse{}, err
	}
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return attendance.EntryResponse{}, err
	}

	var inTime, outTime *time.Time
	if req.InTime != nil {
		t, err := n.ParseInstant(*req.InTime)
		if err != nil {
			return attendance.EntryResponse{}, err
		}
		inTime = &t
	}
	if req.OutTime != nil {
		t, err := n.ParseInstant(*req.OutTime)
		if err != nil {
			return attendance.EntryResponse{}, err
		}
		outTime = &t
	}

	var saved attendance.AttendanceEntry
	err = a.inTx(ctx, func(txCtx context.Context) error {
		record, err := a.AttendanceRepository.UpsertRecord(txCtx, companyID, date)
		if err != nil {
			return fmt.Errorf("failed to upsert daily record: %w", err)
		}
		entry, _ := record.Entry(req.EmployeeID)
		entry.EmployeeID = req.EmployeeID
		entry.InTime = inTime
		entry.OutTime = outTime
		if req.Notes != nil {
			entry.Notes = req.Notes
		}

		classified, err := ClassifyEntry(entry, thresholds, n)
		if err != nil {
			return err
		}
		saved, err = a.AttendanceRepository.UpsertEntry(txCtx, record.ID, classified)
		if err != nil {
			return fmt.Errorf("failed to save attendance entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.EntryResponse{}, err
	}

	slog.Info("attendance entry corrected", "company_id", companyID, "employee_id", req.EmployeeID, "date", date.String())
	return attendance.NewEntryResponse(date, saved, n.Location), nil
}

// GetDailyTotals implements attendance.AttendanceService.
// A date without a record yields zero totals.
func (a *AttendanceServiceImpl) GetDailyTotals(ctx context.Context, date string) (attendance.DailyRecordResponse, error) {
	companyID, n, _, err := a.policy(ctx)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}
	day, err := n.ParseTimestamp(date)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	resp := attendance.DailyRecordResponse{Date: day.String(), Entries: []attendance.EntryResponse{}}
	record, err := a.AttendanceRepository.GetRecord(ctx, companyID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return resp, nil
		}
		return attendance.DailyRecordResponse{}, fmt.Errorf("failed to get daily record: %w", err)
	}

	for _, e := range record.Entries {
		resp.Entries = append(resp.Entries, attendance.NewEntryResponse(day, e, n.Location))
	}
	resp.Totals = FoldDay(record.Entries)
	return resp, nil
}
