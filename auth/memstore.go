package auth

import (
	"context"
	"sync"
	"time"
)

type (
	// MemStore keeps users in memory, it is meant for tests and tooling
	// that do not need a database.
	MemStore struct {
		sync.Mutex
		nextID int64
		byKey  map[string]StoredUser
	}
)

func NewMemStore() *MemStore {
	return &MemStore{
		byKey: make(map[string]StoredUser),
	}
}

func (m *MemStore) CreateUser(_ context.Context, u StoredUser) (StoredUser, error) {
	key := EmailKey(u.Email)
	m.Lock()
	defer m.Unlock()
	if _, found := m.byKey[key]; found {
		return StoredUser{}, DuplicateEmail{Email: u.Email}
	}
	m.nextID++
	u.ID = m.nextID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	m.byKey[key] = u
	return u, nil
}

func (m *MemStore) FindUserByEmail(_ context.Context, email string) (StoredUser, error) {
	m.Lock()
	defer m.Unlock()
	u, found := m.byKey[EmailKey(email)]
	if !found {
		return StoredUser{}, UserNotFound{Email: email}
	}
	return u, nil
}
