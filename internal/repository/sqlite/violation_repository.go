package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"zoneguard/internal/model"
)

// ViolationRepository implements repository.ViolationRepository for SQLite.
type ViolationRepository struct {
	db *DB
}

// NewViolationRepository creates a new SQLite violation repository.
func NewViolationRepository(db *DB) *ViolationRepository {
	return &ViolationRepository{db: db}
}

// Insert appends a new violation to the log.
func (r *ViolationRepository) Insert(v *model.Violation) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO violations (timestamp, class, confidence, snapshot)
		VALUES (?, ?, ?, ?)
	`, v.Timestamp, v.Class, v.Confidence, v.Snapshot)
	if err != nil {
		return 0, fmt.Errorf("failed to insert violation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	v.ID = id
	return id, nil
}

// InsertBatch appends multiple violations in a single transaction.
func (r *ViolationRepository) InsertBatch(violations []model.Violation) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO violations (timestamp, class, confidence, snapshot)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, v := range violations {
		if _, err := stmt.Exec(v.Timestamp, v.Class, v.Confidence, v.Snapshot); err != nil {
			return fmt.Errorf("failed to insert violation: %w", err)
		}
	}

	return tx.Commit()
}

// GetRecent returns the newest violations, most recent first.
func (r *ViolationRepository) GetRecent(limit int) ([]model.Violation, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, timestamp, class, confidence, snapshot
		FROM violations ORDER BY timestamp DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()

	return scanViolations(rows)
}

// GetSince returns all violations at or after the given time, newest first.
func (r *ViolationRepository) GetSince(since time.Time) ([]model.Violation, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, timestamp, class, confidence, snapshot
		FROM violations WHERE timestamp >= ? ORDER BY timestamp DESC, id DESC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()

	return scanViolations(rows)
}

// GetLatest returns the most recent violation, or nil when the log is empty.
func (r *ViolationRepository) GetLatest() (*model.Violation, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var v model.Violation
	err := r.db.Conn().QueryRow(`
		SELECT id, timestamp, class, confidence, snapshot
		FROM violations ORDER BY timestamp DESC, id DESC LIMIT 1
	`).Scan(&v.ID, &v.Timestamp, &v.Class, &v.Confidence, &v.Snapshot)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest violation: %w", err)
	}

	return &v, nil
}

// CountByClass returns violation counts grouped by class.
func (r *ViolationRepository) CountByClass() (map[string]int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT class, COUNT(*) FROM violations GROUP BY class`)
	if err != nil {
		return nil, fmt.Errorf("failed to count violations: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var class string
		var count int
		if err := rows.Scan(&class, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[class] = count
	}

	return counts, nil
}

// Count returns the total number of logged violations.
func (r *ViolationRepository) Count() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM violations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count violations: %w", err)
	}
	return count, nil
}

// DeleteAll removes every violation from the log.
func (r *ViolationRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM violations`); err != nil {
		return fmt.Errorf("failed to delete violations: %w", err)
	}
	return nil
}

func scanViolations(rows *sql.Rows) ([]model.Violation, error) {
	var violations []model.Violation
	for rows.Next() {
		var v model.Violation
		if err := rows.Scan(&v.ID, &v.Timestamp, &v.Class, &v.Confidence, &v.Snapshot); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}
