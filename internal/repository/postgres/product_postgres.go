package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/repository"
)

const productColumns = `id, sku, name, brand_id, category_id, price_cents, published, created_at, updated_at`

type productRepository struct{ pool *pgxpool.Pool }

func NewProductRepository(pool *pgxpool.Pool) repository.ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Product{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO products (sku, name, brand_id, category_id, price_cents, published)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+productColumns,
		p.SKU, p.Name, p.BrandID, p.CategoryID, p.PriceCents, p.Published,
	)
	var out model.Product
	if err := row.Scan(&out.ID, &out.SKU, &out.Name, &out.BrandID, &out.CategoryID, &out.PriceCents, &out.Published, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Product{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (model.Product, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Product{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	var out model.Product
	if err := row.Scan(&out.ID, &out.SKU, &out.Name, &out.BrandID, &out.CategoryID, &out.PriceCents, &out.Published, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return model.Product{}, repository.MapPgError(err)
	}
	return out, nil
}

// productWhere renders the filter as a WHERE clause with positional args.
// Placeholders start at $1; the caller appends LIMIT/OFFSET after them.
func productWhere(f model.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.BrandID != nil {
		add("brand_id = $%d", *f.BrandID)
	}
	if f.CategoryID != nil {
		add("category_id = $%d", *f.CategoryID)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		add("(name ILIKE '%%' || $%[1]d::text || '%%' OR sku ILIKE '%%' || $%[1]d::text || '%%')", q)
	}
	if f.PublishedOnly {
		conds = append(conds, "published")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *productRepository) List(ctx context.Context, f model.ProductFilter, p repository.Page) (repository.PageResult[model.Product], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Product]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	where, args := productWhere(f)
	n := len(args)
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total FROM products%s ORDER BY id LIMIT $%d OFFSET $%d`,
		productColumns, where, n+1, n+2,
	)

	rows, err := getQ(ctx, r.pool).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return repository.PageResult[model.Product]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Product]{Items: make([]model.Product, 0, limit)}
	for rows.Next() {
		var it model.Product
		if err := rows.Scan(&it.ID, &it.SKU, &it.Name, &it.BrandID, &it.CategoryID, &it.PriceCents, &it.Published, &it.CreatedAt, &it.UpdatedAt, &res.Total); err != nil {
			return repository.PageResult[model.Product]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Product]{}, repository.MapPgError(err)
	}
	if len(res.Items) == 0 && offset > 0 {
		if err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&res.Total); err != nil {
			return repository.PageResult[model.Product]{}, repository.MapPgError(err)
		}
	}
	return res, nil
}

var _ repository.ProductRepository = (*productRepository)(nil)
