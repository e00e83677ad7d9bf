package settings_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/settings"
)

type fakeStore struct {
	items      []model.Setting
	err        error
	lastPrefix string
}

func (f *fakeStore) FindByPrefix(_ context.Context, prefix string) ([]model.Setting, error) {
	f.lastPrefix = prefix
	return f.items, f.err
}

type fbSettings struct {
	ClientKeyIdentifier string `json:"client_key_identifier"`
	ClientSecret        string `json:"client_secret"`
}

func TestLoad(t *testing.T) {
	fallback := fbSettings{ClientKeyIdentifier: "fallback"}
	ctx := context.Background()

	t.Run("loaded", func(t *testing.T) {
		store := &fakeStore{items: []model.Setting{{
			Name:     "facebookexternalauthsettings",
			Metadata: json.RawMessage(`{"client_key_identifier":"app","client_secret":"s"}`),
		}}}
		got, err := settings.Load(ctx, store, "FacebookExternalAuthSettings", fallback)
		require.NoError(t, err)
		assert.Equal(t, fbSettings{ClientKeyIdentifier: "app", ClientSecret: "s"}, got)
		assert.Equal(t, "facebookexternalauthsettings", store.lastPrefix)
		assert.Equal(t, "loaded", settings.Outcome(err))
	})

	t.Run("not configured", func(t *testing.T) {
		got, err := settings.Load(ctx, &fakeStore{}, "x", fallback)
		require.ErrorIs(t, err, settings.ErrNotConfigured)
		assert.Equal(t, fallback, got)
		assert.Equal(t, "not_configured", settings.Outcome(err))
	})

	t.Run("store unavailable", func(t *testing.T) {
		boom := errors.New("connection refused")
		got, err := settings.Load(ctx, &fakeStore{err: boom}, "x", fallback)
		require.ErrorIs(t, err, settings.ErrUnavailable)
		require.ErrorIs(t, err, boom)
		assert.Equal(t, fallback, got)
		assert.Equal(t, "unavailable", settings.Outcome(err))
	})

	t.Run("nil store", func(t *testing.T) {
		got, err := settings.Load[fbSettings](ctx, nil, "x", fallback)
		require.ErrorIs(t, err, settings.ErrUnavailable)
		assert.Equal(t, fallback, got)
	})

	t.Run("malformed", func(t *testing.T) {
		store := &fakeStore{items: []model.Setting{{Name: "x", Metadata: json.RawMessage(`{"client_secret":42}`)}}}
		got, err := settings.Load(ctx, store, "x", fallback)
		require.ErrorIs(t, err, settings.ErrMalformed)
		assert.Equal(t, fallback, got)
		assert.Equal(t, "malformed", settings.Outcome(err))
	})

	t.Run("empty metadata", func(t *testing.T) {
		store := &fakeStore{items: []model.Setting{{Name: "x"}}}
		_, err := settings.Load(ctx, store, "x", fallback)
		require.ErrorIs(t, err, settings.ErrMalformed)
	})
}
