package repository

import (
	"context"
	"errors"

	"nextstep/internal/database"
	"nextstep/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (user.Profile, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, skills, COALESCE(location, ''), employer_flag,
		        COALESCE(company_id, '00000000-0000-0000-0000-000000000000'::uuid),
		        created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	)

	var p user.Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Skills, &p.Location,
		&p.EmployerFlag, &p.CompanyID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}
