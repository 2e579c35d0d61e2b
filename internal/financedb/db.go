// Package financedb is the relational store behind the importer: account
// identity, deduplicated transaction persistence, and summary reads.
package financedb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"k8s.io/klog"
)

type DB struct {
	*bun.DB
}

// Open opens the finance database and ensures the schema exists. The
// default backend is a sqlite file at path, with the parent directory
// created if missing. When databaseURL is set (hosted deployments) it is
// used as a postgres DSN instead and path is ignored.
func Open(path, databaseURL string) (*DB, error) {
	var db *bun.DB

	if databaseURL != "" {
		pgconn := pgdriver.NewConnector(pgdriver.WithDSN(databaseURL))
		db = bun.NewDB(sql.OpenDB(pgconn), pgdialect.New())
	} else {
		if path == "" {
			path = "data/finance.db"
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}

		sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+path+"?_pragma=foreign_keys(1)")
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
		}
		// a single connection keeps sqlite writes serialized
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &DB{DB: db}
	if err := store.migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	if databaseURL != "" {
		klog.Infof("Database initialized from DATABASE_URL")
	} else {
		klog.Infof("Database initialized: %s", path)
	}

	return store, nil
}

// migrate creates the tables if they don't exist. Statements run one at
// a time; bun renders dialect-appropriate DDL for both backends.
func (db *DB) migrate(ctx context.Context) error {
	_, err := db.NewCreateTable().
		Model((*Account)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create accounts table: %w", err)
	}

	_, err = db.NewCreateTable().
		Model((*Transaction)(nil)).
		IfNotExists().
		ForeignKey(`("account_id") REFERENCES "accounts" ("account_id")`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create transactions table: %w", err)
	}

	_, err = db.NewCreateTable().
		Model((*Category)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create categories table: %w", err)
	}

	_, err = db.NewCreateTable().
		Model((*CategoryRule)(nil)).
		IfNotExists().
		ForeignKey(`("category_name") REFERENCES "categories" ("category_name")`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create category_rules table: %w", err)
	}

	return nil
}

// Close releases the store connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
