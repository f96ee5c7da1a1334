package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pdfdesk/internal/models"
)

// MemoryStore keeps users and documents in process memory. It backs the
// "memory" database driver and the service tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]models.User
	docs  []models.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: map[string]models.User{}}
}

func (s *MemoryStore) Users() UserRepository         { return memoryUsers{s} }
func (s *MemoryStore) Documents() DocumentRepository { return memoryDocuments{s} }

// copyUser detaches the pointer fields so callers never share state with the store.
func copyUser(u models.User) *models.User {
	if u.OTP != nil {
		otp := *u.OTP
		u.OTP = &otp
	}
	if u.OTPExpiresAt != nil {
		exp := *u.OTPExpiresAt
		u.OTPExpiresAt = &exp
	}
	return &u
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.s.users[user.ID] = *copyUser(*user)
	return nil
}

func (r memoryUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (r memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r memoryUsers) Update(_ context.Context, user *models.User) error {
	if _, err := uuid.Parse(user.ID); err != nil {
		return ErrInvalidID
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	r.s.users[user.ID] = *copyUser(*user)
	return nil
}

func (r memoryUsers) ListExcept(_ context.Context, id string) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res := make([]*models.User, 0, len(r.s.users))
	for uid, u := range r.s.users {
		if uid == id {
			continue
		}
		res = append(res, copyUser(u))
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID < res[j].ID
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

type memoryDocuments struct{ s *MemoryStore }

func (r memoryDocuments) Create(_ context.Context, doc *models.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if doc.ExtractedURLs == nil {
		doc.ExtractedURLs = []string{}
	}
	d := *doc
	d.ExtractedURLs = append([]string{}, doc.ExtractedURLs...)
	r.s.docs = append(r.s.docs, d)
	return nil
}

func (r memoryDocuments) List(_ context.Context) ([]*models.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res := make([]*models.Document, 0, len(r.s.docs))
	for _, d := range r.s.docs {
		cp := d
		cp.ExtractedURLs = append([]string{}, d.ExtractedURLs...)
		res = append(res, &cp)
	}
	return res, nil
}
