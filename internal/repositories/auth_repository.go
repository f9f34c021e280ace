package repositories

import (
	"strings"
	"sync"
	"time"

	"studio_crm_backend/internal/models"
)

// AuthRepository defines the interface for operator account lookups.
// Accounts live in memory and are seeded once at startup from configuration.
type AuthRepository interface {
	SeedUser(user *models.User, hashedPassword string) int64
	FindUserByUsername(username string) (*models.User, string, error) // Returns User, HashedPassword, Error
	FindUserByID(userID int64) (*models.User, error)
}

type seededUser struct {
	user models.User
	hash string
}

type authRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  []seededUser
}

// NewAuthRepository creates an empty in-memory account store.
func NewAuthRepository() AuthRepository {
	return &authRepository{nextID: 1}
}

func (r *authRepository) SeedUser(user *models.User, hashedPassword string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++
	user.IsActive = true
	user.CreatedAt = time.Now()

	r.users = append(r.users, seededUser{user: *user, hash: hashedPassword})
	return user.ID
}

func (r *authRepository) FindUserByUsername(username string) (*models.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, su := range r.users {
		if strings.EqualFold(su.user.Username, username) {
			u := su.user
			return &u, su.hash, nil
		}
	}
	return nil, "", ErrNotFound
}

func (r *authRepository) FindUserByID(userID int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, su := range r.users {
		if su.user.ID == userID {
			u := su.user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}
