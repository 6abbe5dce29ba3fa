package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis - хранилище на Redis. Каждый слот - отдельный ключ <prefix><namespace>:<slot>.
// TTL скользящий и общий для всей сессии.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) KeyValueStore {
	if prefix == "" {
		prefix = "resto:storage:"
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &redisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *redisStore) key(namespace, slot string) string {
	return fmt.Sprintf("%s%s:%s", s.prefix, namespace, slot)
}

// index - множество слотов сессии. По нему продлевается срок жизни всех ключей разом.
func (s *redisStore) index(namespace string) string {
	return fmt.Sprintf("%s%s:_slots", s.prefix, namespace)
}

// touch продлевает TTL всех слотов сессии: срок отсчитывается от последнего обращения,
// и токены не переживают контекст или наоборот.
func (s *redisStore) touch(ctx context.Context, namespace string) error {
	slots, err := s.client.SMembers(ctx, s.index(namespace)).Result()
	if err != nil {
		return fmt.Errorf("redis smembers: %w", err)
	}
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, slot := range slots {
			pipe.Expire(ctx, s.key(namespace, slot), s.ttl)
		}
		pipe.Expire(ctx, s.index(namespace), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis expire: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, namespace, slot string) (string, error) {
	value, err := s.client.Get(ctx, s.key(namespace, slot)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", slot, err)
	}
	if err := s.touch(ctx, namespace); err != nil {
		return "", err
	}
	return value, nil
}

func (s *redisStore) Set(ctx context.Context, namespace, slot, value string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(namespace, slot), value, s.ttl)
		pipe.SAdd(ctx, s.index(namespace), slot)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", slot, err)
	}
	return s.touch(ctx, namespace)
}

func (s *redisStore) Del(ctx context.Context, namespace string, slots ...string) error {
	if len(slots) == 0 {
		return nil
	}
	keys := make([]string, 0, len(slots))
	for _, slot := range slots {
		keys = append(keys, s.key(namespace, slot))
	}
	members := make([]interface{}, 0, len(slots))
	for _, slot := range slots {
		members = append(members, slot)
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		pipe.SRem(ctx, s.index(namespace), members...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
