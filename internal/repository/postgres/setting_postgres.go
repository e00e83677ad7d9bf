package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/repository"
)

type settingRepository struct{ pool *pgxpool.Pool }

func NewSettingRepository(pool *pgxpool.Pool) repository.SettingRepository {
	return &settingRepository{pool: pool}
}

// FindByPrefix matches names case-insensitively; stored names are lower case.
func (r *settingRepository) FindByPrefix(ctx context.Context, prefix string) ([]model.Setting, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT name, metadata, updated_at
		 FROM settings
		 WHERE starts_with(name, $1)
		 ORDER BY name`,
		strings.ToLower(prefix),
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	var out []model.Setting
	for rows.Next() {
		var (
			s    model.Setting
			meta []byte
		)
		if err := rows.Scan(&s.Name, &meta, &s.UpdatedAt); err != nil {
			return nil, repository.MapPgError(err)
		}
		s.Metadata = meta
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (r *settingRepository) Upsert(ctx context.Context, s model.Setting) (model.Setting, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Setting{}, err
	}
	var (
		out  model.Setting
		meta []byte
	)
	err := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO settings (name, metadata)
		 VALUES ($1, $2::jsonb)
		 ON CONFLICT (name) DO UPDATE SET metadata = EXCLUDED.metadata, updated_at = now()
		 RETURNING name, metadata, updated_at`,
		strings.ToLower(s.Name), string(s.Metadata),
	).Scan(&out.Name, &meta, &out.UpdatedAt)
	if err != nil {
		return model.Setting{}, repository.MapPgError(err)
	}
	out.Metadata = meta
	return out, nil
}

var _ repository.SettingRepository = (*settingRepository)(nil)
