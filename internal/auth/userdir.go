package auth

import (
	"sync"
	"time"
)

// User is a resolved identity from an OAuth provider.
type User struct {
	Key      string    `json:"key"` // provider:subject
	Provider string    `json:"provider"`
	Subject  string    `json:"subject"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	LastSeen time.Time `json:"lastSeen"`
}

// UserDirectory is the demo-only user store: a bounded in-memory map keyed by
// provider:subject. It is cleared on restart and holds at most capacity
// entries, evicting the oldest insertion first. Not durable.
type UserDirectory struct {
	mu       sync.Mutex
	users    map[string]User
	order    []string
	capacity int
}

func NewUserDirectory(capacity int) *UserDirectory {
	return &UserDirectory{
		users:    make(map[string]User),
		capacity: capacity,
	}
}

// Put inserts or refreshes a user, evicting the oldest entry when full.
func (d *UserDirectory) Put(user User) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[user.Key]; !exists {
		if d.capacity > 0 && len(d.users) >= d.capacity {
			oldest := d.order[0]
			d.order = d.order[1:]
			delete(d.users, oldest)
		}
		d.order = append(d.order, user.Key)
	}
	d.users[user.Key] = user
}

func (d *UserDirectory) Get(key string) (User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[key]
	return user, ok
}

func (d *UserDirectory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.users)
}
