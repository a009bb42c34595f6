package scan

import (
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v7"
)

// how long a shared scan result stays retrievable
const DefaultTTL = 7 * 24 * time.Hour

var ErrNotFound = errors.New("scan was not found")

// Store keeps small JSON blobs keyed by an opaque id
type Store interface {
	Put(id string, payload []byte, ttl time.Duration) error
	Get(id string) ([]byte, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

func (s *RedisStore) Put(id string, payload []byte, ttl time.Duration) error {
	return s.client.Set("scan:"+id, payload, ttl).Err()
}

func (s *RedisStore) Get(id string) ([]byte, error) {
	r, err := s.client.Get("scan:" + id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// MemoryStore holds scans in process memory, it ignores the TTL and is meant
// for tests and local development without a redis instance
type MemoryStore struct {
	mutex sync.RWMutex
	items map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string][]byte),
	}
}

func (s *MemoryStore) Put(id string, payload []byte, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.items[id] = payload
	return nil
}

func (s *MemoryStore) Get(id string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	payload, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return payload, nil
}
