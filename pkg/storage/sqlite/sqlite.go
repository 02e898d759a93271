package sqlite

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/mirra/pkg/logger"
	"github.com/kasuboski/mirra/pkg/storage"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const timestampFormat = time.DateTime

type SQLite struct {
	db *sql.DB
	tx *sql.Tx
	mu *sync.Mutex
}

// New creates a new sqlite database given a path to the database file and
// runs any pending migrations
func New(filePath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}

	// a single connection keeps in-memory databases coherent and sidesteps
	// sqlite write contention
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{
		db: db,
		mu: &sync.Mutex{},
	}, nil
}

// executor returns the transaction when one is in flight, otherwise the pool
func (s *SQLite) executor() qrm.DB {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Transaction runs fn against a Storage bound to a single transaction.
// Nested calls join the outer transaction.
func (s *SQLite) Transaction(ctx context.Context, fn func(storage.Storage) error) error {
	if s.tx != nil {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	scoped := &SQLite{db: s.db, tx: tx, mu: s.mu}
	if err := fn(scoped); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *SQLite) handleInsert(ctx context.Context, stmt sqlite.InsertStatement) (sql.Result, error) {
	return s.handleStatement(ctx, stmt)
}

func (s *SQLite) handleDelete(ctx context.Context, stmt sqlite.DeleteStatement) (sql.Result, error) {
	return s.handleStatement(ctx, stmt)
}

func (s *SQLite) handleStatement(ctx context.Context, stmt sqlite.Statement) (sql.Result, error) {
	log := logger.FromCtx(ctx)

	if s.tx != nil {
		result, err := stmt.ExecContext(ctx, s.tx)
		if err != nil {
			log.Debug("failed to execute statement in transaction", zap.String("query", stmt.DebugSql()), zap.Error(err))
		}
		return result, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result sql.Result

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Debug("failed to init transaction", zap.Error(err))
		return result, err
	}

	result, err = stmt.ExecContext(ctx, tx)
	if err != nil {
		log.Debug("failed to execute statement", zap.String("query", stmt.DebugSql()), zap.Error(err))
		tx.Rollback()
		return result, err
	}

	return result, tx.Commit()
}
