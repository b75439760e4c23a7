package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/gconvert/internal/model"
)

// PostgresRepository reads the transcript from the transcript_courses table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) LoadTranscript(ctx context.Context) (model.Transcript, error) {
	t, _, err := r.load(ctx)
	return t, err
}

func (r *PostgresRepository) LoadMetadata(ctx context.Context) (model.CourseMetadata, error) {
	_, meta, err := r.load(ctx)
	return meta, err
}

func (r *PostgresRepository) load(ctx context.Context) (model.Transcript, model.CourseMetadata, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT semester_id, semester_ord, position, course_code, course_name, credits, grade
		 FROM transcript_courses
		 ORDER BY semester_ord, position`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var courses []courseRow
	for rows.Next() {
		var c courseRow
		if err := rows.Scan(&c.SemesterID, &c.SemesterOrd, &c.Position, &c.Code, &c.Name, &c.Credits, &c.Grade); err != nil {
			return nil, nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	t, meta := unflatten(courses)
	return t, meta, nil
}

// Replace swaps the stored transcript for t in a single transaction.
func (r *PostgresRepository) Replace(ctx context.Context, t model.Transcript, meta model.CourseMetadata) (int64, error) {
	courses, err := flatten(t, meta)
	if err != nil {
		return 0, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transcript_courses`); err != nil {
		return 0, fmt.Errorf("clear transcript: %w", err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"transcript_courses"},
		[]string{"semester_id", "semester_ord", "position", "course_code", "course_name", "credits", "grade"},
		pgx.CopyFromSlice(len(courses), func(i int) ([]interface{}, error) {
			c := courses[i]
			return []interface{}{c.SemesterID, c.SemesterOrd, c.Position, c.Code, c.Name, c.Credits, c.Grade}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy transcript: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}
