// Package storage - долговременное хранилище строковых слотов, разбитых по сессиям.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound - слот отсутствует (или истёк).
var ErrNotFound = errors.New("storage: слот не найден")

// KeyValueStore - хранилище, в которое мост пишет токены и активный контекст.
// namespace - идентификатор сессии браузера.
type KeyValueStore interface {
	Get(ctx context.Context, namespace, slot string) (string, error)
	Set(ctx context.Context, namespace, slot, value string) error
	Del(ctx context.Context, namespace string, slots ...string) error
	Close() error
}
