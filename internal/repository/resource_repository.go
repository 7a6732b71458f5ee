package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mentorship-service/internal/domain"
)

// ResourceRepository reads mentorship resources. Resources are managed
// outside this service and only referenced here.
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MentorshipResource, error)
	ListActive(ctx context.Context) ([]domain.MentorshipResource, error)
}

type resourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository returns a Postgres-backed implementation.
func NewResourceRepository(pool *pgxpool.Pool) ResourceRepository {
	return &resourceRepository{pool: pool}
}

func (r *resourceRepository) GetByID(ctx context.Context, id int64) (*domain.MentorshipResource, error) {
	const query = `
        SELECT id, title, mentor_name, active, created_at
        FROM mentorship_resources WHERE id=$1`

	var resource domain.MentorshipResource
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&resource.ID,
		&resource.Title,
		&resource.MentorName,
		&resource.Active,
		&resource.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, translateStoreError(err)
	}
	return &resource, nil
}

func (r *resourceRepository) ListActive(ctx context.Context) ([]domain.MentorshipResource, error) {
	const query = `
        SELECT id, title, mentor_name, active, created_at
        FROM mentorship_resources WHERE active ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateStoreError(err)
	}
	defer rows.Close()

	var result []domain.MentorshipResource
	for rows.Next() {
		var resource domain.MentorshipResource
		if err := rows.Scan(
			&resource.ID,
			&resource.Title,
			&resource.MentorName,
			&resource.Active,
			&resource.CreatedAt,
		); err != nil {
			return nil, translateStoreError(err)
		}
		result = append(result, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, translateStoreError(err)
	}
	return result, nil
}
