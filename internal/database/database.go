/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package database reads numeric tables out of SQL databases. Dialects
// register a DialectHandler from their own package's init function.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tsframe/internal/config"
)

// DB holds the database connection pool and dialect handler.
type DB struct {
	Pool    *sql.DB
	Handler DialectHandler
	Config  config.DatabaseConfig
	Logger  *zap.Logger
}

// ColumnInfo holds basic information about a database column.
type ColumnInfo struct {
	Name     string
	DataType string
}

// DialectHandler implements the dialect specific parts of DB.
type DialectHandler interface {
	CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error)
	CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error)
	QuoteIdentifier(name string) string
	ListTables(ctx context.Context, db *DB) ([]string, error)
	ListColumns(ctx context.Context, db *DB, tableName string) ([]ColumnInfo, error)
	// IsNumericType reports whether values of dataType, as reported by
	// ListColumns, can be scanned into a float64.
	IsNumericType(dataType string) bool
}

var (
	dialectHandlers = make(map[string]DialectHandler)
	mu              sync.RWMutex
)

func RegisterDialectHandler(dialect string, handler DialectHandler) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := dialectHandlers[dialect]; exists {
		zap.L().Warn("dialect handler is being overwritten", zap.String("dialect", dialect))
	}
	dialectHandlers[dialect] = handler
}

func GetDialectHandler(dialect string) (DialectHandler, error) {
	mu.RLock()
	defer mu.RUnlock()
	handler, ok := dialectHandlers[dialect]
	if !ok {
		return nil, &ErrInvalidInput{Msg: fmt.Sprintf("unsupported database dialect: %s (registered: %s)", dialect, strings.Join(dialectsLocked(), ", "))}
	}
	return handler, nil
}

// Dialects lists the registered dialect names in sorted order.
func Dialects() []string {
	mu.RLock()
	defer mu.RUnlock()
	return dialectsLocked()
}

func dialectsLocked() []string {
	names := make([]string, 0, len(dialectHandlers))
	for name := range dialectHandlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New opens a pool for cfg.Dialect and pings it, retrying transient
// failures with DefaultRetryOptions. A nil logger is replaced by zap's
// global logger.
func New(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	handler, err := GetDialectHandler(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.L()
	}

	var pool *sql.DB
	if strings.HasPrefix(cfg.Dialect, "cloudsql") {
		pool, err = handler.CreateCloudSQLPool(cfg)
	} else {
		pool, err = handler.CreateStandardPool(cfg)
	}
	if err != nil {
		return nil, &ErrDatabaseConnection{Msg: "failed to create pool for dialect " + cfg.Dialect, Err: err}
	}

	return open(ctx, pool, handler, cfg, logger, DefaultRetryOptions)
}

func open(ctx context.Context, pool *sql.DB, handler DialectHandler, cfg config.DatabaseConfig, logger *zap.Logger, opts RetryOptions) (*DB, error) {
	db := &DB{
		Pool:    pool,
		Handler: handler,
		Config:  cfg,
		Logger:  logger.With(zap.String("dialect", cfg.Dialect)),
	}
	_, err := withRetry(ctx, db.Logger, opts, func(ctx context.Context) (struct{}, error) {
		if err := pool.PingContext(ctx); err != nil {
			return struct{}{}, &ErrDatabaseConnection{Msg: "ping failed", Err: err}
		}
		return struct{}{}, nil
	})
	if err != nil {
		pool.Close()
		return nil, err
	}
	db.Logger.Debug("connected to database", zap.String("dbname", cfg.DBName))
	return db, nil
}

func (db *DB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return &ErrDatabaseConnection{Msg: "ping failed", Err: fmt.Errorf("connection pool is not initialized")}
	}
	return db.Pool.PingContext(ctx)
}

func (db *DB) Close() error {
	if db.Pool != nil {
		return db.Pool.Close()
	}
	return nil
}

func (db *DB) ListTables(ctx context.Context) ([]string, error) {
	if db.Handler == nil {
		return nil, fmt.Errorf("dialect handler not initialized")
	}
	return db.Handler.ListTables(ctx, db)
}

func (db *DB) ListColumns(ctx context.Context, tableName string) ([]ColumnInfo, error) {
	if db.Handler == nil {
		return nil, fmt.Errorf("dialect handler not initialized")
	}
	return db.Handler.ListColumns(ctx, db, tableName)
}

func (db *DB) log() *zap.Logger {
	if db.Logger == nil {
		return zap.L()
	}
	return db.Logger
}
