package storage

import (
	"context"
	"fmt"
	"sync"
)

// Ключи состояния колеса. Значения хранятся как даты YYYY-MM-DD.
const (
	KeyLastPasswordEntry = "lastPasswordEntry"
	KeyBoostActiveDate   = "boostActiveDate"
)

// Store строковое key-value хранилище с get/set/remove
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryStore хранилище в памяти процесса (терминальный режим без Redis, тесты)
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemory создает пустое хранилище в памяти
func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// scoped добавляет префикс ко всем ключам
type scoped struct {
	prefix string
	next   Store
}

// Scoped возвращает хранилище, где каждый ключ превращается в "<prefix>:<key>"
func Scoped(store Store, prefix string) Store {
	return &scoped{prefix: prefix, next: store}
}

// UserScope префикс ключей пользователя Telegram
func UserScope(userID int64) string {
	return fmt.Sprintf("wheel:%d", userID)
}

func (s *scoped) key(k string) string {
	return s.prefix + ":" + k
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.next.Get(ctx, s.key(key))
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.next.Set(ctx, s.key(key), value)
}

func (s *scoped) Remove(ctx context.Context, key string) error {
	return s.next.Remove(ctx, s.key(key))
}
