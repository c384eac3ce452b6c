package repository

import (
	"context"
	"errors"
	"time"

	"nextstep/internal/database"
	"nextstep/internal/domain/application"
	"nextstep/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ApplicationRow is an application record joined with its job and company
// projections, as served by the applications listing.
type ApplicationRow struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	Decision  application.Decision
	Status    string
	Notes     string
	DecidedAt time.Time
	UpdatedAt time.Time

	JobTitle     string
	JobLocations []string
	SalaryRange  string
	CompanyID    uuid.UUID
	CompanyName  string
	CompanyURL   string
}

type ApplicationRepository interface {
	// RecordDecision creates or conditionally upgrades the (user, job)
	// record in one statement. It returns application.ErrAlreadyDecided
	// when an existing Apply blocks the write, including an Apply-on-Apply
	// duplicate.
	RecordDecision(ctx context.Context, userID, jobID uuid.UUID, decision application.Decision) (application.Record, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ApplicationRow, error)
	GetForEmployer(ctx context.Context, applicationID uuid.UUID) (application.Record, uuid.UUID, error)
	UpdateStatus(ctx context.Context, applicationID uuid.UUID, status, notes string) (application.Record, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) RecordDecision(ctx context.Context, userID, jobID uuid.UUID, decision application.Decision) (application.Record, error) {
	var status any
	if decision == application.DecisionApply {
		status = application.StatusPending
	}

	// The WHERE clause makes Apply sticky: once decision=Apply is stored,
	// neither a duplicate Apply nor a later non-Apply touches the row, and
	// the empty RETURNING set reports the conflict. Racing inserts for the
	// same pair collapse onto the unique constraint, so exactly one wins.
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, user_id, job_id, decision, status, decided_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())
		 ON CONFLICT (user_id, job_id) DO UPDATE
		 SET decision = EXCLUDED.decision,
		     status = EXCLUDED.status,
		     updated_at = now()
		 WHERE applications.decision <> $6
		 RETURNING id, decided_at, updated_at`,
		uuid.New(), userID, jobID, int16(decision), status, int16(application.DecisionApply),
	)

	rec := application.Record{
		UserID:   userID,
		JobID:    jobID,
		Decision: decision,
	}
	if decision == application.DecisionApply {
		rec.Status = application.StatusPending
	}

	if err := row.Scan(&rec.ID, &rec.DecidedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Record{}, application.ErrAlreadyDecided
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return application.Record{}, job.ErrNotFound
		}
		return application.Record{}, err
	}
	return rec, nil
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]ApplicationRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.decision, COALESCE(a.status, ''), a.notes,
		        a.decided_at, a.updated_at,
		        j.title, j.locations, j.salary_range,
		        COALESCE(j.company_id, '00000000-0000-0000-0000-000000000000'::uuid),
		        COALESCE(c.name, ''), COALESCE(c.website, '')
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 LEFT JOIN companies c ON c.id = j.company_id
		 WHERE a.user_id = $1
		 ORDER BY a.decided_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ApplicationRow, 0)
	for rows.Next() {
		var a ApplicationRow
		var decision int16
		if err := rows.Scan(&a.ID, &a.JobID, &decision, &a.Status, &a.Notes,
			&a.DecidedAt, &a.UpdatedAt,
			&a.JobTitle, &a.JobLocations, &a.SalaryRange,
			&a.CompanyID, &a.CompanyName, &a.CompanyURL); err != nil {
			return nil, err
		}
		a.Decision = application.Decision(decision)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetForEmployer returns the record plus the company id owning the job, so
// the usecase can verify the caller's company before mutating status.
func (r *PostgresApplicationRepository) GetForEmployer(ctx context.Context, applicationID uuid.UUID) (application.Record, uuid.UUID, error) {
	row := r.db.QueryRow(ctx,
		`SELECT a.id, a.user_id, a.job_id, a.decision, COALESCE(a.status, ''), a.notes,
		        a.decided_at, a.updated_at,
		        COALESCE(j.company_id, '00000000-0000-0000-0000-000000000000'::uuid)
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1`,
		applicationID,
	)

	var rec application.Record
	var decision int16
	var companyID uuid.UUID
	err := row.Scan(&rec.ID, &rec.UserID, &rec.JobID, &decision, &rec.Status,
		&rec.Notes, &rec.DecidedAt, &rec.UpdatedAt, &companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Record{}, uuid.Nil, application.ErrNotFound
		}
		return application.Record{}, uuid.Nil, err
	}
	rec.Decision = application.Decision(decision)
	return rec, companyID, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, applicationID uuid.UUID, status, notes string) (application.Record, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications
		 SET status = $2, notes = $3, updated_at = now()
		 WHERE id = $1 AND decision = $4
		 RETURNING id, user_id, job_id, decision, COALESCE(status, ''), notes, decided_at, updated_at`,
		applicationID, status, notes, int16(application.DecisionApply),
	)

	var rec application.Record
	var decision int16
	err := row.Scan(&rec.ID, &rec.UserID, &rec.JobID, &decision, &rec.Status,
		&rec.Notes, &rec.DecidedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Record{}, application.ErrNotFound
		}
		return application.Record{}, err
	}
	rec.Decision = application.Decision(decision)
	return rec, nil
}
