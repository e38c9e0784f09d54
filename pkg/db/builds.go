package db

import (
	"fmt"
	"time"
)

// BuildRecord is one row of build history.
type BuildRecord struct {
	BuildID         int64
	Page            string
	Namespace       string
	Status          string
	Error           string
	BundleBytes     int64
	LinkedBytes     int64
	StandaloneBytes int64
	DurationMS      int64
	CreatedAt       time.Time
}

// RecordBuild inserts one build attempt and returns its ID.
func (db *DB) RecordBuild(rec BuildRecord) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO builds (page, namespace, status, error, bundle_bytes, linked_bytes, standalone_bytes, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Page, rec.Namespace, rec.Status, rec.Error,
		rec.BundleBytes, rec.LinkedBytes, rec.StandaloneBytes, rec.DurationMS)
	if err != nil {
		return 0, fmt.Errorf("failed to record build: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get build ID: %w", err)
	}
	return id, nil
}

// ListBuilds returns the most recent builds, newest first.
func (db *DB) ListBuilds(limit int) ([]BuildRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT build_id, page, namespace, status, COALESCE(error, ''),
		       bundle_bytes, linked_bytes, standalone_bytes, duration_ms, created_at
		FROM builds
		ORDER BY build_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer rows.Close()

	var records []BuildRecord
	for rows.Next() {
		var rec BuildRecord
		if err := rows.Scan(&rec.BuildID, &rec.Page, &rec.Namespace, &rec.Status, &rec.Error,
			&rec.BundleBytes, &rec.LinkedBytes, &rec.StandaloneBytes, &rec.DurationMS, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
