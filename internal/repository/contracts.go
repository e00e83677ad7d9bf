package repository

import (
	"context"

	"github.com/maxviazov/storefront-catalog/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// BrandRepository declares persistence operations for brands.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type BrandRepository interface {
	Create(ctx context.Context, b model.Brand) (model.Brand, error)
	GetByID(ctx context.Context, id int64) (model.Brand, error)
	List(ctx context.Context, p Page) (PageResult[model.Brand], error)
}

// CategoryRepository declares persistence operations for categories.
// The category set is small, so listing returns everything and paging happens in memory.
type CategoryRepository interface {
	Create(ctx context.Context, c model.Category) (model.Category, error)
	GetByID(ctx context.Context, id int64) (model.Category, error)
	ListAll(ctx context.Context) ([]model.Category, error)
}

// ProductRepository declares persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p model.Product) (model.Product, error)
	GetByID(ctx context.Context, id int64) (model.Product, error)
	List(ctx context.Context, f model.ProductFilter, p Page) (PageResult[model.Product], error)
}

// SettingRepository reads named settings. Names are matched by prefix the same
// way plugins look up their own settings.
type SettingRepository interface {
	FindByPrefix(ctx context.Context, prefix string) ([]model.Setting, error)
	Upsert(ctx context.Context, s model.Setting) (model.Setting, error)
}
