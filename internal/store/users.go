package store

import (
	"strings"
	"sync"

	"github.com/i474232898/arca/internal/user"
)

// Users is the concurrency-safe user directory.
type Users struct {
	mu    sync.RWMutex
	users []user.User
}

func NewUsers(seed ...user.User) *Users {
	return &Users{users: append([]user.User(nil), seed...)}
}

func (u *Users) List() []user.User {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return append([]user.User(nil), u.users...)
}

func (u *Users) Get(id int) (user.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, usr := range u.users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return user.User{}, ErrNotFound
}

func (u *Users) UpdateEmail(id int, email string) (user.User, error) {
	if err := user.ValidateEmail(email); err != nil {
		return user.User{}, err
	}
	return u.update(id, func(usr *user.User) { usr.Email = strings.TrimSpace(email) })
}

func (u *Users) UpdatePhone(id int, phone string) (user.User, error) {
	if err := user.ValidatePhone(phone); err != nil {
		return user.User{}, err
	}
	return u.update(id, func(usr *user.User) { usr.Phone = strings.TrimSpace(phone) })
}

func (u *Users) update(id int, apply func(*user.User)) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range u.users {
		if u.users[i].ID == id {
			apply(&u.users[i])
			return u.users[i], nil
		}
	}
	return user.User{}, ErrNotFound
}
