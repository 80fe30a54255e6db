// Package docstore implements the dashboard repository on top of MongoDB.
package docstore

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config defines how to reach the document database.
type Config struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

// Store implements dependency.Repository over MongoDB collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ dependency.Repository = (*Store)(nil)

// New connects to MongoDB and checks the connection.
func New(ctx context.Context, c Config) (*Store, error) {
	if c.URI == "" {
		return nil, fmt.Errorf("mongo connection uri is empty")
	}
	if c.Database == "" {
		return nil, fmt.Errorf("mongo database name is empty")
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}

	opts := options.Client().ApplyURI(c.URI).
		SetConnectTimeout(c.ConnectTimeout).
		SetSocketTimeout(30 * time.Second)
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(c.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, c.ConnectTimeout)
	defer cancel()
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	s := &Store{client: client, db: client.Database(c.Database)}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	slog.Default().InfoContext(ctx, "connected to mongodb",
		slog.String("database", c.Database),
	)
	return s, nil
}

// NewWithDatabase wraps an already connected database handle.
func NewWithDatabase(db *mongo.Database) *Store {
	return &Store{client: db.Client(), db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Ping(ctx, nil); err != nil {
		return gerr.Storage("mongo ping", err)
	}
	return nil
}

func (s *Store) Close() {
	if err := s.client.Disconnect(context.Background()); err != nil {
		slog.Default().Error("can't disconnect mongo client",
			slog.String("err", err.Error()),
		)
	}
}
