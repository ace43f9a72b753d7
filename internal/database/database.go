// Package database holds the optional analysis archive: pool setup, embedded
// schema migrations and the query layer over the analyses table.
package database

import (
	"context"
	"fmt"

	"textlens/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
)

// EmbedDim is the dimensionality of archived input embeddings; it has to
// match both the migration's vector column and the configured embeddings
// model (nomic-embed-text yields 768).
const EmbedDim = 768

// URL builds a postgres connection URL from the CLI options.
func URL(options *models.Options) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		options.DBUser, options.DBPassword, options.DBHost, options.DBPort, options.DBName)
}

// InitPool connects to the archive database, brings the schema up to date and
// returns a ready connection pool with pgvector types registered.
func InitPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	// Migrations run on a plain connection; tern works on *pgx.Conn.
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect for migration: %w", err)
	}
	migrator, err := NewMigrator(ctx, conn)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	if err := migrator.Migrate(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := conn.Close(ctx); err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}
