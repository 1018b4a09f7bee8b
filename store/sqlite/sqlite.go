/*
Package sqlite provides a SQLite-backed implementation of the snapshot store.

PURPOSE:
  Persists full Schedule snapshots for the rotation engine. The engine
  never partially persists, so Save replaces the whole aggregate (schedule
  row plus day rows) inside one transaction, and Load reconstructs it
  wholesale.

KEY TABLES:
  schedules:     One row per schedule - anchor, state, vacation balance and
                 the embedded active interruption (at most one, so it lives
                 on the schedule row rather than its own table).
  schedule_days: One row per calendar day, keyed (schedule_id, date).

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery is cleaner.

USAGE:
  st, err := sqlite.New("./data/mizanflow.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - rotation/store.go: interface definition
  - rotation/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MizanFlowDEV/mizanflow/rotation"
)

// Store implements rotation.SnapshotStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		anchor TEXT NOT NULL,
		state TEXT NOT NULL,
		vacation_balance INTEGER NOT NULL DEFAULT 0,
		has_interruption INTEGER NOT NULL DEFAULT 0,
		int_start TEXT,
		int_end TEXT,
		int_type TEXT,
		int_preferred_weekday INTEGER,
		int_vacation_used INTEGER NOT NULL DEFAULT 0,
		int_realigned INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS schedule_days (
		schedule_id TEXT NOT NULL,
		date TEXT NOT NULL,
		day_type TEXT NOT NULL,
		holiday INTEGER NOT NULL DEFAULT 0,
		holiday_kind TEXT NOT NULL DEFAULT '',
		override INTEGER NOT NULL DEFAULT 0,
		note TEXT NOT NULL DEFAULT '',
		overtime_hours REAL NOT NULL DEFAULT 0,
		adl_hours REAL NOT NULL DEFAULT 0,
		in_hitch INTEGER NOT NULL DEFAULT 0,
		markers TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (schedule_id, date),
		FOREIGN KEY (schedule_id) REFERENCES schedules(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_schedule_days_schedule
		ON schedule_days(schedule_id, date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SNAPSHOT STORE IMPLEMENTATION
// =============================================================================

// Save replaces the stored snapshot for the schedule's ID.
func (s *Store) Save(ctx context.Context, sched *rotation.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_days WHERE schedule_id = ?`, sched.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, sched.ID); err != nil {
		return err
	}

	var (
		hasInt                        int
		intStart, intEnd, intType     any
		intWeekday                    any
		intVacationUsed, intRealigned int
	)
	if in := sched.Interruption; in != nil {
		hasInt = 1
		intStart, intEnd, intType = in.Start.String(), in.End.String(), string(in.Type)
		if in.PreferredReturnWeekday != nil {
			intWeekday = int(*in.PreferredReturnWeekday)
		}
		intVacationUsed = in.VacationDaysUsed
		if in.Realigned {
			intRealigned = 1
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schedules (id, anchor, state, vacation_balance, has_interruption,
			int_start, int_end, int_type, int_preferred_weekday, int_vacation_used, int_realigned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sched.ID, sched.Anchor.String(), string(sched.State), sched.VacationBalance, hasInt,
		intStart, intEnd, intType, intWeekday, intVacationUsed, intRealigned,
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO schedule_days (schedule_id, date, day_type, holiday, holiday_kind,
			override, note, overtime_hours, adl_hours, in_hitch, markers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, day := range sched.Days {
		markers, err := json.Marshal(day.Markers)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			sched.ID, day.Date.String(), string(day.Type), b2i(day.Holiday), string(day.HolidayKind),
			b2i(day.Override), day.Note, day.OvertimeHours, day.ADLHours, b2i(day.InHitch), string(markers),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load reconstructs the full schedule snapshot.
func (s *Store) Load(ctx context.Context, id string) (*rotation.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT anchor, state, vacation_balance, has_interruption,
			int_start, int_end, int_type, int_preferred_weekday, int_vacation_used, int_realigned
		FROM schedules WHERE id = ?`, id)

	var (
		anchorStr, stateStr           string
		balance, hasInt               int
		intStart, intEnd, intType     sql.NullString
		intWeekday                    sql.NullInt64
		intVacationUsed, intRealigned int
	)
	if err := row.Scan(&anchorStr, &stateStr, &balance, &hasInt,
		&intStart, &intEnd, &intType, &intWeekday, &intVacationUsed, &intRealigned); err != nil {
		if err == sql.ErrNoRows {
			return nil, rotation.ErrScheduleNotFound
		}
		return nil, err
	}

	anchor, err := rotation.ParseDate(anchorStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt anchor for schedule %s: %w", id, err)
	}

	sched := &rotation.Schedule{
		ID:              id,
		Anchor:          anchor,
		State:           rotation.ScheduleState(stateStr),
		VacationBalance: balance,
	}

	if hasInt == 1 {
		start, err := rotation.ParseDate(intStart.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt interruption start for schedule %s: %w", id, err)
		}
		end, err := rotation.ParseDate(intEnd.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt interruption end for schedule %s: %w", id, err)
		}
		in := &rotation.Interruption{
			Start:            start,
			End:              end,
			Type:             rotation.InterruptionType(intType.String),
			VacationDaysUsed: intVacationUsed,
			Realigned:        intRealigned == 1,
		}
		if intWeekday.Valid {
			wd := time.Weekday(intWeekday.Int64)
			in.PreferredReturnWeekday = &wd
		}
		sched.Interruption = in
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, day_type, holiday, holiday_kind, override, note,
			overtime_hours, adl_hours, in_hitch, markers
		FROM schedule_days WHERE schedule_id = ? ORDER BY date`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			dateStr, dayType, holidayKind, note, markersJSON string
			holiday, override, inHitch                       int
			overtime, adl                                    float64
		)
		if err := rows.Scan(&dateStr, &dayType, &holiday, &holidayKind, &override,
			&note, &overtime, &adl, &inHitch, &markersJSON); err != nil {
			return nil, err
		}
		date, err := rotation.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt day date for schedule %s: %w", id, err)
		}
		var markers []string
		if err := json.Unmarshal([]byte(markersJSON), &markers); err != nil {
			return nil, fmt.Errorf("corrupt markers for schedule %s at %s: %w", id, dateStr, err)
		}
		sched.Days = append(sched.Days, rotation.ScheduleDay{
			Date:          date,
			Type:          rotation.DayType(dayType),
			Holiday:       holiday == 1,
			HolidayKind:   rotation.HolidayKind(holidayKind),
			Override:      override == 1,
			Note:          note,
			OvertimeHours: overtime,
			ADLHours:      adl,
			InHitch:       inHitch == 1,
			Markers:       markers,
		})
	}
	return sched, rows.Err()
}

// Delete removes a snapshot. Unknown IDs are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_days WHERE schedule_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns all stored schedule IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM schedules ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
