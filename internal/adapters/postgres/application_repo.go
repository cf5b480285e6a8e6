package postgres

// Package postgres implements the application-record store against PostgreSQL.

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/launchpath/lp-gateway/internal/domain/model"
	apperrors "github.com/launchpath/lp-gateway/internal/errors"
)

// ApplicationRepo implements ports.ApplicationRepository using PostgreSQL.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewApplicationRepo creates a new ApplicationRepo with the given pool.
func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

const applicationColumns = `id, program_id, founder_id, company, pitch, created_at, updated_at`

// GetByID returns an application row by ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (model.Application, error) {
	if strings.TrimSpace(id) == "" {
		return model.Application{}, errors.New("id is required")
	}

	var out model.Application
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`,
		id,
	)
	if err := row.Scan(
		&out.ID, &out.ProgramID, &out.FounderID, &out.Company, &out.Pitch,
		&out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		return model.Application{}, apperrors.MapDBError(err)
	}
	return out, nil
}
