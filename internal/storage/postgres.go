package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientStorageTable = "client_storage"

// querier - то, что умеют и *pgxpool.Pool, и pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type postgresStore struct {
	pool    *pgxpool.Pool
	storage querier
	ttl     time.Duration
	psql    sq.StatementBuilderType
}

// NewPostgres - хранилище в таблице client_storage. Схему создают миграции (RunMigrations).
func NewPostgres(pool *pgxpool.Pool, ttl time.Duration) KeyValueStore {
	return &postgresStore{
		pool:    pool,
		storage: pool,
		ttl:     ttl,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *postgresStore) Get(ctx context.Context, namespace, slot string) (string, error) {
	where := sq.And{sq.Eq{"namespace": namespace, "slot": slot}}
	if s.ttl > 0 {
		where = append(where, sq.Gt{"updated_at": time.Now().Add(-s.ttl)})
	}
	query, args, err := s.psql.Select("value").From(clientStorageTable).Where(where).ToSql()
	if err != nil {
		return "", err
	}

	var value string
	if err := s.storage.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("postgres get %s: %w", slot, err)
	}
	return value, nil
}

func (s *postgresStore) Set(ctx context.Context, namespace, slot, value string) error {
	query, args, err := s.psql.Insert(clientStorageTable).
		Columns("namespace", "slot", "value", "updated_at").
		Values(namespace, slot, value, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (namespace, slot) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.storage.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("postgres set %s: %w", slot, err)
	}
	return nil
}

func (s *postgresStore) Del(ctx context.Context, namespace string, slots ...string) error {
	if len(slots) == 0 {
		return nil
	}
	query, args, err := s.psql.Delete(clientStorageTable).
		Where(sq.Eq{"namespace": namespace, "slot": slots}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.storage.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("postgres del: %w", err)
	}
	return nil
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}
