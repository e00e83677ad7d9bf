package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/maxviazov/storefront-catalog/internal/config"
	"github.com/maxviazov/storefront-catalog/internal/repository"
	"github.com/maxviazov/storefront-catalog/internal/repository/contract"
)

var (
	client *Client
	skippy bool
)

func TestMain(m *testing.M) {
	uri := os.Getenv("APP_MONGO_URI")
	if os.Getenv("CONTRACT_TESTS") != "1" || uri == "" {
		skippy = true
		os.Exit(m.Run())
	}

	var err error
	client, err = Connect(context.Background(), config.MongoConfig{URI: uri, Database: "storefront_contract", ConnectAttempts: 3}, zerolog.Nop())
	if err != nil {
		fmt.Println("[contract] mongo connect error:", err)
		os.Exit(1)
	}

	code := m.Run()
	_ = client.Database().Drop(context.Background())
	_ = client.Close(context.Background())
	os.Exit(code)
}

func clearSettings(t *testing.T) {
	t.Helper()
	if _, err := client.Database().Collection(settingsCollection).DeleteMany(context.Background(), bson.M{}); err != nil {
		t.Fatalf("clear settings: %v", err)
	}
}

func makeSettingRepo(t *testing.T) (repository.SettingRepository, func()) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and APP_MONGO_URI")
	}
	clearSettings(t)
	return NewSettingRepository(client.Database()), func() { clearSettings(t) }
}

func TestSettingRepository_MongoContract(t *testing.T) {
	contract.RunSettingRepositoryContract(t, makeSettingRepo)
}

func TestPinger_MongoContract(t *testing.T) {
	contract.RunPingerContract(t, func(t *testing.T) (repository.Pinger, func()) {
		if skippy {
			t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and APP_MONGO_URI")
		}
		return client, func() {}
	})
}

func TestConnect_RequiresURI(t *testing.T) {
	_, err := Connect(context.Background(), config.MongoConfig{ConnectAttempts: 1}, zerolog.Nop())
	if err == nil {
		t.Fatal("expected error for empty uri")
	}
}
