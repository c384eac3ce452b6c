package repository

import (
	"context"
	"errors"
	"strings"

	"nextstep/internal/database"
	"nextstep/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type JobRepository interface {
	GetByID(ctx context.Context, jobID uuid.UUID) (job.Job, error)
	// FeedCandidates returns jobs with no application record for userID,
	// optionally narrowed by free-text query. The exclusion runs in SQL on
	// every call; the client is never trusted to suppress decided jobs.
	FeedCandidates(ctx context.Context, userID uuid.UUID, queryText string, limit int) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `
	j.id, COALESCE(j.company_id, '00000000-0000-0000-0000-000000000000'::uuid),
	COALESCE(c.name, ''), COALESCE(c.website, ''),
	j.title, j.description, j.locations, j.salary_range, j.schedule,
	j.benefits, j.skills, j.external_url, j.created_at, j.updated_at`

func (r *PostgresJobRepository) GetByID(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 LEFT JOIN companies c ON c.id = j.company_id
		 WHERE j.id = $1`,
		jobID,
	)

	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) FeedCandidates(ctx context.Context, userID uuid.UUID, queryText string, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}

	q := `SELECT ` + jobColumns + `
		 FROM jobs j
		 LEFT JOIN companies c ON c.id = j.company_id
		 WHERE NOT EXISTS (
		     SELECT 1 FROM applications a
		     WHERE a.user_id = $1 AND a.job_id = j.id
		 )`

	args := []any{userID}
	queryText = strings.TrimSpace(queryText)
	if queryText != "" {
		q += ` AND (
			j.title ILIKE $2
			OR j.description ILIKE $2
			OR j.schedule ILIKE $2
			OR j.salary_range ILIKE $2
			OR array_to_string(j.skills, ' ') ILIKE $2
			OR array_to_string(j.locations, ' ') ILIKE $2
			OR array_to_string(j.benefits, ' ') ILIKE $2
		)`
		args = append(args, "%"+queryText+"%")
		q += ` ORDER BY j.created_at DESC LIMIT $3`
	} else {
		q += ` ORDER BY j.created_at DESC LIMIT $2`
	}
	args = append(args, limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type jobRow interface {
	Scan(dest ...any) error
}

func scanJob(row jobRow) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.CompanyName, &j.CompanyURL,
		&j.Title, &j.Description, &j.Locations, &j.SalaryRange, &j.Schedule,
		&j.Benefits, &j.Skills, &j.ExternalURL, &j.CreatedAt, &j.UpdatedAt,
	)
	return j, err
}
