package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/repository"
)

const categoryColumns = `id, name, parent_id, display_order, published, created_at, updated_at`

type categoryRepository struct{ pool *pgxpool.Pool }

func NewCategoryRepository(pool *pgxpool.Pool) repository.CategoryRepository {
	return &categoryRepository{pool: pool}
}

func scanCategory(row pgx.Row) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.ParentID, &c.DisplayOrder, &c.Published, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *categoryRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Category{}, err
	}
	out, err := scanCategory(getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO categories (name, parent_id, display_order, published)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+categoryColumns,
		c.Name, c.ParentID, c.DisplayOrder, c.Published,
	))
	if err != nil {
		return model.Category{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (model.Category, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Category{}, err
	}
	out, err := scanCategory(getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return model.Category{}, repository.MapPgError(err)
	}
	return out, nil
}

// ListAll returns every category in display order. The result is never nil,
// even for an empty table.
func (r *categoryRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY display_order, id`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.CategoryRepository = (*categoryRepository)(nil)
