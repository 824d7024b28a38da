package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const entryColumns = `
	id, record_id, employee_id, in_time, out_time, in_status, out_status,
	work_hours, notes, device_info, created_at, updated_at`

func scanEntry(row pgx.Row) (attendance.AttendanceEntry, error) {
	var (
		e                   attendance.AttendanceEntry
		inStatus, outStatus string
	)
	err := row.Scan(
		&e.ID, &e.RecordID, &e.EmployeeID, &e.InTime, &e.OutTime, &inStatus, &outStatus,
		&e.WorkHours, &e.Notes, &e.DeviceInfo, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return attendance.AttendanceEntry{}, err
	}
	e.InStatus = attendance.Status(inStatus)
	e.OutStatus = attendance.Status(outStatus)
	return e, nil
}

func scanRecord(row pgx.Row) (attendance.DailyAttendanceRecord, error) {
	var (
		r   attendance.DailyAttendanceRecord
		day time.Time
	)
	if err := row.Scan(&r.ID, &r.CompanyID, &day, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return attendance.DailyAttendanceRecord{}, err
	}
	r.Date = calendar.FromTime(day.UTC())
	r.Entries = []attendance.AttendanceEntry{}
	return r, nil
}

// UpsertRecord implements attendance.AttendanceRepository.
// Concurrent callers for the same (company, date) all receive the same row.
func (a *attendanceRepository) UpsertRecord(ctx context.Context, companyID string, date calendar.Date) (attendance.DailyAttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.DailyAttendanceRecord{}, fmt.Errorf("failed to generate record id: %w", err)
	}

	// The no-op update makes RETURNING yield the existing row on conflict
	// and locks it until the surrounding transaction ends.
	query := `
		INSERT INTO daily_attendance_records (id, company_id, date, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (company_id, date) DO UPDATE SET company_id = EXCLUDED.company_id
		RETURNING id, company_id, date, created_at, updated_at
	`
	record, err := scanRecord(q.QueryRow(ctx, query, id.String(), companyID, date.Time()))
	if err != nil {
		return attendance.DailyAttendanceRecord{}, fmt.Errorf("failed to upsert daily record: %w", err)
	}

	entries, err := a.entriesByRecord(ctx, q, []string{record.ID})
	if err != nil {
		return attendance.DailyAttendanceRecord{}, err
	}
	if e, ok := entries[record.ID]; ok {
		record.Entries = e
	}
	return record, nil
}

// GetRecord implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetRecord(ctx context.Context, companyID string, date calendar.Date) (attendance.DailyAttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, company_id, date, created_at, updated_at
		FROM daily_attendance_records
		WHERE company_id = $1 AND date = $2
	`
	record, err := scanRecord(q.QueryRow(ctx, query, companyID, date.Time()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DailyAttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.DailyAttendanceRecord{}, fmt.Errorf("failed to get daily record for %s: %w", date, err)
	}

	entries, err := a.entriesByRecord(ctx, q, []string{record.ID})
	if err != nil {
		return attendance.DailyAttendanceRecord{}, err
	}
	if e, ok := entries[record.ID]; ok {
		record.Entries = e
	}
	return record, nil
}

// ListRecords implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRecords(ctx context.Context, companyID string, from, to calendar.Date) ([]attendance.DailyAttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, company_id, date, created_at, updated_at
		FROM daily_attendance_records
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, companyID, from.Time(), to.Time())
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}
	defer rows.Close()

	records := []attendance.DailyAttendanceRecord{}
	ids := []string{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily record: %w", err)
		}
		records = append(records, record)
		ids = append(ids, record.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily records: %w", err)
	}
	if len(ids) == 0 {
		return records, nil
	}

	entries, err := a.entriesByRecord(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if e, ok := entries[records[i].ID]; ok {
			records[i].Entries = e
		}
	}
	return records, nil
}

// UpsertEntry implements attendance.AttendanceRepository.
// An existing entry keeps its id and creation time, so record order is stable.
func (a *attendanceRepository) UpsertEntry(ctx context.Context, recordID string, entry attendance.AttendanceEntry) (attendance.AttendanceEntry, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceEntry{}, fmt.Errorf("failed to generate entry id: %w", err)
	}

	query := `
		INSERT INTO attendance_entries (
			id, record_id, employee_id, in_time, out_time, in_status, out_status,
			work_hours, notes, device_info, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
		ON CONFLICT (record_id, employee_id) DO UPDATE SET
			in_time = EXCLUDED.in_time,
			out_time = EXCLUDED.out_time,
			in_status = EXCLUDED.in_status,
			out_status = EXCLUDED.out_status,
			work_hours = EXCLUDED.work_hours,
			notes = EXCLUDED.notes,
			device_info = EXCLUDED.device_info,
			updated_at = NOW()
		RETURNING ` + entryColumns

	saved, err := scanEntry(q.QueryRow(ctx, query,
		id.String(), recordID, entry.EmployeeID, entry.InTime, entry.OutTime,
		string(entry.InStatus), string(entry.OutStatus), entry.WorkHours, entry.Notes, entry.DeviceInfo,
	))
	if err != nil {
		return attendance.AttendanceEntry{}, fmt.Errorf("failed to upsert attendance entry: %w", err)
	}
	return saved, nil
}

// entriesByRecord loads the entries of the given records keyed by record id,
// each slice in insertion order.
func (a *attendanceRepository) entriesByRecord(ctx context.Context, q database.Querier, recordIDs []string) (map[string][]attendance.AttendanceEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM attendance_entries
		WHERE record_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`
	rows, err := q.Query(ctx, query, recordIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]attendance.AttendanceEntry, len(recordIDs))
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		out[e.RecordID] = append(out[e.RecordID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance entries: %w", err)
	}
	return out, nil
}
