package session

import "sync"

// Account is a directory entry: the public user record plus the stored
// password hash. The hash never leaves this package.
type Account struct {
	User
	PasswordHash string
}

// Directory records every known user for the admin listing. Entries are
// keyed by email; saving an existing email replaces the entry.
type Directory interface {
	List() []User
	Find(email string) (Account, bool)
	Save(acc Account)
}

type InMemoryDirectory struct {
	mu       sync.RWMutex
	accounts []Account
}

func NewInMemoryDirectory(seed []Account) *InMemoryDirectory {
	d := &InMemoryDirectory{accounts: make([]Account, 0, len(seed))}
	d.accounts = append(d.accounts, seed...)
	return d
}

func (d *InMemoryDirectory) List() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]User, 0, len(d.accounts))
	for _, acc := range d.accounts {
		out = append(out, acc.User)
	}
	return out
}

func (d *InMemoryDirectory) Find(email string) (Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, acc := range d.accounts {
		if acc.Email == email {
			return acc, true
		}
	}
	return Account{}, false
}

func (d *InMemoryDirectory) Save(acc Account) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.accounts {
		if d.accounts[i].Email == acc.Email {
			d.accounts[i] = acc
			return
		}
	}
	d.accounts = append(d.accounts, acc)
}

// SampleAccounts seeds the directory with the storefront's mock users.
func SampleAccounts() []Account {
	return []Account{
		{User: User{ID: "u-admin-1", Email: "admin@treadmart.com", Name: "Site Admin", Role: RoleAdmin, CreatedAt: "2023-09-01T10:00:00Z"}},
		{User: User{ID: "u-1001", Email: "maya@example.com", Name: "Maya Patel", Phone: "555-0141", Role: RoleUser, CreatedAt: "2024-02-11T14:30:00Z"}},
		{User: User{ID: "u-1002", Email: "liam@example.com", Name: "Liam Ortega", Role: RoleUser, CreatedAt: "2024-04-27T08:12:00Z"}},
	}
}
