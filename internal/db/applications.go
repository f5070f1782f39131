package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound indicates that no application exists with the requested ID.
var ErrNotFound = errors.New("application not found")

const applicationColumns = `id, company, title, url, status, notes, date_applied,
	location, salary, resume_path, cover_letter_path, tags, created_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var app Application
	err := row.Scan(&app.ID, &app.Company, &app.Title, &app.URL, &app.Status,
		&app.Notes, &app.DateApplied, &app.Location, &app.Salary,
		&app.ResumePath, &app.CoverLetterPath, &app.Tags, &app.CreatedAt)
	if err != nil {
		return nil, err
	}
	if app.Tags == nil {
		app.Tags = []string{}
	}
	return &app, nil
}

// CreateApplication inserts a new application record and returns it.
func (db *DB) CreateApplication(ctx context.Context, in NewApplication) (*Application, error) {
	if in.Status == "" {
		in.Status = "saved"
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}

	app, err := scanApplication(db.pool.QueryRow(ctx,
		`INSERT INTO applications
		 (company, title, url, status, notes, date_applied, location, salary, resume_path, cover_letter_path, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+applicationColumns,
		in.Company, in.Title, in.URL, in.Status, in.Notes, in.DateApplied,
		in.Location, in.Salary, in.ResumePath, in.CoverLetterPath, in.Tags,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// GetApplication retrieves an application by ID. Returns nil if not found.
func (db *DB) GetApplication(ctx context.Context, id int64) (*Application, error) {
	app, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application %d: %w", id, err)
	}
	return app, nil
}

// GetApplicationByURL retrieves the most recent application for a job URL.
// Returns nil if none exists.
func (db *DB) GetApplicationByURL(ctx context.Context, url string) (*Application, error) {
	app, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE url = $1 ORDER BY created_at DESC LIMIT 1`, url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application by url: %w", err)
	}
	return app, nil
}

// ListApplications retrieves applications in fetch order (newest first),
// optionally filtered by status.
func (db *DB) ListApplications(ctx context.Context, opts ListOptions) ([]Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1=1`
	args := []any{}
	argNum := 1

	if opts.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, opts.Status)
		argNum++
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, opts.Limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, nil
}

// UpdateApplication applies a partial update and returns the updated record.
func (db *DB) UpdateApplication(ctx context.Context, id int64, upd ApplicationUpdate) (*Application, error) {
	sets, args := buildUpdateSets(upd)
	if len(sets) == 0 {
		return db.GetApplication(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE applications SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), applicationColumns)

	app, err := scanApplication(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update application %d: %w", id, err)
	}
	return app, nil
}

// UpdateApplicationStatus transitions a single application to the target
// status. The caller is responsible for validating the status value.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id int64, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status for application %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteApplication deletes an application by ID.
func (db *DB) DeleteApplication(ctx context.Context, id int64) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetApplications deletes every application record and returns the count.
// The confirmation phrase is enforced one level up; this is the raw wipe.
func (db *DB) ResetApplications(ctx context.Context) (int64, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM applications`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset applications: %w", err)
	}
	return result.RowsAffected(), nil
}

// StatusCounts returns the number of applications per status value.
// Statuses with no records are absent; callers zero-fill as needed.
func (db *DB) StatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, nil
}

// buildUpdateSets converts an ApplicationUpdate into SET clauses and args.
func buildUpdateSets(upd ApplicationUpdate) ([]string, []any) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Company != nil {
		add("company", *upd.Company)
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.URL != nil {
		add("url", *upd.URL)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if upd.DateApplied != nil {
		add("date_applied", *upd.DateApplied)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Salary != nil {
		add("salary", *upd.Salary)
	}
	if upd.ResumePath != nil {
		add("resume_path", *upd.ResumePath)
	}
	if upd.CoverLetterPath != nil {
		add("cover_letter_path", *upd.CoverLetterPath)
	}
	if upd.Tags != nil {
		add("tags", *upd.Tags)
	}

	return sets, args
}
