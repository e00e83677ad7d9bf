package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/repository"
)

const brandColumns = `id, name, display_order, published, created_at, updated_at`

type brandRepository struct{ pool *pgxpool.Pool }

func NewBrandRepository(pool *pgxpool.Pool) repository.BrandRepository {
	return &brandRepository{pool: pool}
}

func (r *brandRepository) Create(ctx context.Context, b model.Brand) (model.Brand, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Brand{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO brands (name, display_order, published)
		 VALUES ($1, $2, $3)
		 RETURNING `+brandColumns,
		b.Name, b.DisplayOrder, b.Published,
	)
	var out model.Brand
	if err := row.Scan(&out.ID, &out.Name, &out.DisplayOrder, &out.Published, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Brand{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *brandRepository) GetByID(ctx context.Context, id int64) (model.Brand, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Brand{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+brandColumns+` FROM brands WHERE id = $1`, id)
	var out model.Brand
	if err := row.Scan(&out.ID, &out.Name, &out.DisplayOrder, &out.Published, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Brand{}, repository.MapPgError(err)
	}
	return out, nil
}

// List returns one window of brands and the total in a single round trip.
func (r *brandRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Brand], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Brand]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+brandColumns+`, COUNT(*) OVER() AS total
		 FROM brands
		 ORDER BY display_order, id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Brand]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Brand]{Items: make([]model.Brand, 0, limit)}
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.DisplayOrder, &b.Published, &b.CreatedAt, &b.UpdatedAt, &res.Total); err != nil {
			return repository.PageResult[model.Brand]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, b)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Brand]{}, repository.MapPgError(err)
	}
	if len(res.Items) == 0 && offset > 0 {
		// COUNT(*) OVER() yields nothing past the end; ask for the total directly.
		if err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM brands`).Scan(&res.Total); err != nil {
			return repository.PageResult[model.Brand]{}, repository.MapPgError(err)
		}
	}
	return res, nil
}

var _ repository.BrandRepository = (*brandRepository)(nil)
