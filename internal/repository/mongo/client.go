// Package mongo stores named settings in MongoDB for deployments that keep
// plugin configuration outside the catalog database.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/maxviazov/storefront-catalog/internal/config"
)

// Client bundles the driver client with the configured database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and waits for the primary to answer, retrying with
// backoff up to cfg.ConnectAttempts times.
func Connect(ctx context.Context, cfg config.MongoConfig, logger zerolog.Logger) (*Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}
	dbName := cfg.Database
	if dbName == "" {
		dbName = "storefront"
	}

	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	b := &backoff.Backoff{Min: 200 * time.Millisecond, Max: 5 * time.Second, Factor: 2, Jitter: true}
	attempts := max(cfg.ConnectAttempts, 1)
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = cl.Ping(pingCtx, readpref.Primary())
		cancel()
		if err == nil {
			break
		}
		if attempt >= attempts {
			_ = cl.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to ping mongo: %w", err)
		}
		wait := b.Duration()
		logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("mongo not ready")
		select {
		case <-ctx.Done():
			_ = cl.Disconnect(context.Background())
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	c := &Client{client: cl, db: cl.Database(dbName)}
	if err := ensureIndexes(ctx, c.db); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ensure mongo indexes: %w", err)
	}
	logger.Info().Str("db", dbName).Msg("Successfully connected to MongoDB")
	return c, nil
}

func (c *Client) Database() *mongo.Database { return c.db }

// Ping satisfies repository.Pinger.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
