package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LockPeriod marks a YYYY-MM period as locked. Locking twice is a no-op.
func (s *Store) LockPeriod(period string) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO period_locks(period, locked_at) VALUES (?, ?)`,
		period, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("locking period %s: %w", period, err)
	}
	return nil
}

// UnlockPeriod clears a period lock. Unlocking an open period is a no-op.
func (s *Store) UnlockPeriod(period string) error {
	if _, err := s.db.Exec(`DELETE FROM period_locks WHERE period = ?`, period); err != nil {
		return fmt.Errorf("unlocking period %s: %w", period, err)
	}
	return nil
}

// IsPeriodLocked reports whether a YYYY-MM period is locked.
func (s *Store) IsPeriodLocked(period string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM period_locks WHERE period = ?`, period).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking period lock %s: %w", period, err)
	}
	return true, nil
}
