package service_test

import (
	"context"
	"slices"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/repository"
)

type fakeBrandRepo struct {
	nextID    int64
	items     []model.Brand
	createErr error
	listErr   error
	lastPage  repository.Page
}

func newFakeBrandRepo() *fakeBrandRepo { return &fakeBrandRepo{nextID: 1} }

func (f *fakeBrandRepo) Create(_ context.Context, b model.Brand) (model.Brand, error) {
	if f.createErr != nil {
		return model.Brand{}, f.createErr
	}
	b.ID = f.nextID
	f.nextID++
	f.items = append(f.items, b)
	return b, nil
}

func (f *fakeBrandRepo) GetByID(_ context.Context, id int64) (model.Brand, error) {
	for _, b := range f.items {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Brand{}, repository.ErrNotFound
}

// List windows the in-memory slice like LIMIT/OFFSET would.
func (f *fakeBrandRepo) List(_ context.Context, p repository.Page) (repository.PageResult[model.Brand], error) {
	f.lastPage = p
	if f.listErr != nil {
		return repository.PageResult[model.Brand]{}, f.listErr
	}
	return windowOf(f.items, p), nil
}

var _ repository.BrandRepository = (*fakeBrandRepo)(nil)

type fakeCategoryRepo struct {
	nextID  int64
	items   []model.Category
	nilList bool
	getErr  error
}

func newFakeCategoryRepo() *fakeCategoryRepo { return &fakeCategoryRepo{nextID: 1} }

func (f *fakeCategoryRepo) Create(_ context.Context, c model.Category) (model.Category, error) {
	c.ID = f.nextID
	f.nextID++
	f.items = append(f.items, c)
	return c, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (model.Category, error) {
	if f.getErr != nil {
		return model.Category{}, f.getErr
	}
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Category{}, repository.ErrNotFound
}

func (f *fakeCategoryRepo) ListAll(context.Context) ([]model.Category, error) {
	if f.nilList {
		return nil, nil
	}
	return append([]model.Category{}, f.items...), nil
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

type fakeProductRepo struct {
	nextID     int64
	items      []model.Product
	lastFilter model.ProductFilter
	lastPage   repository.Page
}

func newFakeProductRepo() *fakeProductRepo { return &fakeProductRepo{nextID: 1} }

func (f *fakeProductRepo) Create(_ context.Context, p model.Product) (model.Product, error) {
	if slices.ContainsFunc(f.items, func(it model.Product) bool { return it.SKU == p.SKU }) {
		return model.Product{}, repository.ErrAlreadyExists
	}
	p.ID = f.nextID
	f.nextID++
	f.items = append(f.items, p)
	return p, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (model.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repository.ErrNotFound
}

func (f *fakeProductRepo) List(_ context.Context, filter model.ProductFilter, p repository.Page) (repository.PageResult[model.Product], error) {
	f.lastFilter = filter
	f.lastPage = p
	matched := slices.DeleteFunc(slices.Clone(f.items), func(it model.Product) bool {
		return filter.BrandID != nil && (it.BrandID == nil || *it.BrandID != *filter.BrandID)
	})
	return windowOf(matched, p), nil
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func windowOf[T any](items []T, p repository.Page) repository.PageResult[T] {
	res := repository.PageResult[T]{Items: []T{}, Total: len(items)}
	if p.Offset >= len(items) {
		return res
	}
	end := min(p.Offset+p.Limit, len(items))
	res.Items = append(res.Items, items[p.Offset:end]...)
	return res
}

// fakeTx records how many units of work ran through it.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	f.calls++
	return fn(ctx)
}
