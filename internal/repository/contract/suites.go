// Package contract holds storage-agnostic test suites. Each backend wires its
// own factories and runs the same expectations against a live database.
package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/repository"
)

type BrandFactory func(t *testing.T) (repository.BrandRepository, func())

type CategoryFactory func(t *testing.T) (repository.CategoryRepository, func())

type ProductFactory func(t *testing.T) (repo repository.ProductRepository, mkBrand func(ctx context.Context, name string) (int64, error), cleanup func())

type SettingFactory func(t *testing.T) (repository.SettingRepository, func())

type TxFactory func(t *testing.T) (tx repository.TxManager, brands repository.BrandRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func RunBrandRepositoryContract(t *testing.T, makeRepo BrandFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Brand{Name: "Acme", Published: true})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Name != "Acme" || !got.Published {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_windows_and_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			if _, err := repo.Create(ctx, model.Brand{Name: fmt.Sprintf("Brand-%c", 'A'+i), DisplayOrder: i}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		first, err := repo.List(ctx, repository.PageAt(0, 3))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(first.Items) != 3 || first.Total != 7 || first.Items[0].Name != "Brand-A" {
			t.Fatalf("unexpected first page: len=%d total=%d", len(first.Items), first.Total)
		}
		last, err := repo.List(ctx, repository.PageAt(2, 3))
		if err != nil {
			t.Fatalf("list last: %v", err)
		}
		if len(last.Items) != 1 || last.Total != 7 || last.Items[0].Name != "Brand-G" {
			t.Fatalf("unexpected last page: len=%d total=%d", len(last.Items), last.Total)
		}
		past, err := repo.List(ctx, repository.PageAt(10, 3))
		if err != nil {
			t.Fatalf("list past end: %v", err)
		}
		if len(past.Items) != 0 || past.Total != 7 {
			t.Fatalf("past the end should be empty with total kept: len=%d total=%d", len(past.Items), past.Total)
		}
	})

	t.Run("duplicate_name_already_exists", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, model.Brand{Name: "Dup"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.Create(ctx, model.Brand{Name: "dup"})
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func RunCategoryRepositoryContract(t *testing.T, makeRepo CategoryFactory) {
	t.Helper()

	t.Run("list_all_empty_is_not_nil", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		all, err := repo.ListAll(context.Background())
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if all == nil || len(all) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", all)
		}
	})

	t.Run("create_child_and_list", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		root, err := repo.Create(ctx, model.Category{Name: "Apparel", DisplayOrder: 1})
		if err != nil {
			t.Fatalf("create root: %v", err)
		}
		child, err := repo.Create(ctx, model.Category{Name: "Shoes", ParentID: &root.ID, DisplayOrder: 2})
		if err != nil {
			t.Fatalf("create child: %v", err)
		}
		got, err := repo.GetByID(ctx, child.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ParentID == nil || *got.ParentID != root.ID {
			t.Fatalf("parent not stored: %+v", got)
		}
		all, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != 2 || all[0].ID != root.ID {
			t.Fatalf("unexpected listing: %+v", all)
		}
	})

	t.Run("unknown_parent_conflict", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		missing := int64(8888888)
		_, err := repo.Create(context.Background(), model.Category{Name: "Orphan", ParentID: &missing})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict on FK violation, got %v", err)
		}
	})
}

func RunProductRepositoryContract(t *testing.T, makeRepo ProductFactory) {
	t.Helper()

	t.Run("create_get_filter", func(t *testing.T) {
		repo, mkBrand, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		brandID, err := mkBrand(ctx, "Contoso")
		if err != nil {
			t.Fatalf("seed brand: %v", err)
		}
		for i := 0; i < 5; i++ {
			p := model.Product{SKU: fmt.Sprintf("SKU-%d", i), Name: fmt.Sprintf("Widget %d", i), PriceCents: int64(100 * i), Published: i%2 == 0}
			if i < 3 {
				p.BrandID = &brandID
			}
			if _, err := repo.Create(ctx, p); err != nil {
				t.Fatalf("seed product %d: %v", i, err)
			}
		}

		byBrand, err := repo.List(ctx, model.ProductFilter{BrandID: &brandID}, repository.PageAt(0, 2))
		if err != nil {
			t.Fatalf("list by brand: %v", err)
		}
		if len(byBrand.Items) != 2 || byBrand.Total != 3 {
			t.Fatalf("unexpected brand page: len=%d total=%d", len(byBrand.Items), byBrand.Total)
		}

		published, err := repo.List(ctx, model.ProductFilter{PublishedOnly: true}, repository.PageAt(0, 10))
		if err != nil {
			t.Fatalf("list published: %v", err)
		}
		if published.Total != 3 {
			t.Fatalf("expected 3 published, got %d", published.Total)
		}

		search, err := repo.List(ctx, model.ProductFilter{Query: "widget 4"}, repository.PageAt(0, 10))
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if search.Total != 1 || search.Items[0].SKU != "SKU-4" {
			t.Fatalf("unexpected search result: %+v", search)
		}

		got, err := repo.GetByID(ctx, search.Items[0].ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.PriceCents != 400 || got.BrandID != nil {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("duplicate_sku_already_exists", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, model.Product{SKU: "DUP-1", Name: "A"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.Create(ctx, model.Product{SKU: "DUP-1", Name: "B"})
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("unknown_brand_conflict", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		missing := int64(7777777)
		_, err := repo.Create(context.Background(), model.Product{SKU: "FK-1", Name: "X", BrandID: &missing})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func RunSettingRepositoryContract(t *testing.T, makeRepo SettingFactory) {
	t.Helper()

	t.Run("prefix_lookup", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seed := map[string]string{
			"facebookexternalauthsettings": `{"client_key_identifier":"app","client_secret":"s3cr3t"}`,
			"mediasettings":                `{"avatar_picture_size":120}`,
		}
		for name, meta := range seed {
			if _, err := repo.Upsert(ctx, model.Setting{Name: name, Metadata: json.RawMessage(meta)}); err != nil {
				t.Fatalf("seed %s: %v", name, err)
			}
		}
		found, err := repo.FindByPrefix(ctx, "FacebookExternalAuth")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(found) != 1 || found[0].Name != "facebookexternalauthsettings" {
			t.Fatalf("unexpected match: %+v", found)
		}
		var decoded map[string]string
		if err := json.Unmarshal(found[0].Metadata, &decoded); err != nil {
			t.Fatalf("metadata is not JSON: %v", err)
		}
		if decoded["client_secret"] != "s3cr3t" {
			t.Fatalf("metadata mismatch: %v", decoded)
		}
	})

	t.Run("no_match_is_empty", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		found, err := repo.FindByPrefix(context.Background(), "nothing-here")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(found) != 0 {
			t.Fatalf("expected no settings, got %+v", found)
		}
	})

	t.Run("upsert_overwrites", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Upsert(ctx, model.Setting{Name: "x.settings", Metadata: json.RawMessage(`{"v":1}`)}); err != nil {
			t.Fatalf("first upsert: %v", err)
		}
		if _, err := repo.Upsert(ctx, model.Setting{Name: "x.settings", Metadata: json.RawMessage(`{"v":2}`)}); err != nil {
			t.Fatalf("second upsert: %v", err)
		}
		found, err := repo.FindByPrefix(ctx, "x.")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		var v struct{ V int }
		if len(found) != 1 || json.Unmarshal(found[0].Metadata, &v) != nil || v.V != 2 {
			t.Fatalf("expected single overwritten setting, got %+v", found)
		}
	})
}

func RunTxContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, brands, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		boom := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			b, err := brands.Create(ctx, model.Brand{Name: "Ephemeral"})
			if err != nil {
				return err
			}
			createdID = b.ID
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if _, err := brands.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected rollback, got %v", err)
		}
	})

	t.Run("commit_on_success", func(t *testing.T) {
		tx, brands, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			b, err := brands.Create(ctx, model.Brand{Name: "Durable"})
			createdID = b.ID
			return err
		})
		if err != nil {
			t.Fatalf("tx: %v", err)
		}
		if _, err := brands.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed brand, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	p, cleanup := makePinger(t)
	t.Cleanup(cleanup)
	if err := p.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
