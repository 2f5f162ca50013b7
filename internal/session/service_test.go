package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/treadmart/tire-shop-backend/internal/storage"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	s := NewService(storage.Open(path), NewInMemoryDirectory(nil))
	s.SetLatency(nil) // synchronous in tests
	return s, path
}

func TestLoginFabricatesUserAndInfersRole(t *testing.T) {
	s, _ := newTestService(t)

	u, err := s.Login("jane@example.com", "whatever")
	if err != nil {
		t.Fatalf("login placeholder must not fail: %v", err)
	}
	if u.Role != RoleUser {
		t.Fatalf("expected standard role, got %q", u.Role)
	}
	if u.Name != "jane" {
		t.Fatalf("expected name derived from email, got %q", u.Name)
	}

	admin, _ := s.Login("admin@treadmart.test", "whatever")
	if admin.Role != RoleAdmin {
		t.Fatalf("email containing 'admin' must get the admin role, got %q", admin.Role)
	}
}

func TestLoginPersistsSessionAcrossRestart(t *testing.T) {
	s, path := newTestService(t)
	s.Login("jane@example.com", "pw")

	restarted := NewService(storage.Open(path), NewInMemoryDirectory(nil))
	u, ok := restarted.Current()
	if !ok {
		t.Fatalf("expected session to survive restart")
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("unexpected restored user %+v", u)
	}
}

func TestCorruptStoredSessionIsAnonymous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte(`{"user":[1,2,3]}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := NewService(storage.Open(path), NewInMemoryDirectory(nil))
	if _, ok := s.Current(); ok {
		t.Fatalf("corrupt session value must read as logged-out")
	}
}

func TestLogoutClearsSessionAndStore(t *testing.T) {
	s, path := newTestService(t)
	s.Login("jane@example.com", "pw")

	s.Logout()

	if _, ok := s.Current(); ok {
		t.Fatalf("expected no session after logout")
	}
	restarted := NewService(storage.Open(path), NewInMemoryDirectory(nil))
	if _, ok := restarted.Current(); ok {
		t.Fatalf("logout must clear the persisted record too")
	}
}

func TestRegisterAlwaysStandardRole(t *testing.T) {
	s, _ := newTestService(t)

	u, err := s.Register(Registration{Name: "Admin Wannabe", Email: "admin@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("register placeholder must not fail: %v", err)
	}
	if u.Role != RoleUser {
		t.Fatalf("register must assign the standard role, got %q", u.Role)
	}
	if u.CreatedAt == "" || u.ID == "" {
		t.Fatalf("register must stamp id and createdAt: %+v", u)
	}
}

func TestUpdateProfileMergesFields(t *testing.T) {
	s, _ := newTestService(t)
	s.Login("jane@example.com", "pw")

	name := "Jane Driver"
	phone := "555-0101"
	u, err := s.UpdateProfile(ProfileUpdate{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if u.Name != "Jane Driver" || u.Phone != "555-0101" {
		t.Fatalf("fields not merged: %+v", u)
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("untouched fields must survive the merge: %+v", u)
	}
}

func TestUpdateProfileWithoutSession(t *testing.T) {
	s, _ := newTestService(t)
	name := "Nobody"
	if _, err := s.UpdateProfile(ProfileUpdate{Name: &name}); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestDirectoryRecordsLoginsAndSeedUsers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s := NewService(storage.Open(path), NewInMemoryDirectory(SampleAccounts()))
	s.SetLatency(nil)

	before := len(s.Users())
	s.Login("new.customer@example.com", "pw")
	if len(s.Users()) != before+1 {
		t.Fatalf("login must record the user in the directory")
	}

	// logging in again with the same email must not duplicate the entry,
	// and must return the directory identity
	first, _ := s.Login("new.customer@example.com", "pw")
	if len(s.Users()) != before+1 {
		t.Fatalf("repeat login duplicated the directory entry")
	}
	again, _ := s.Login("new.customer@example.com", "pw")
	if again.ID != first.ID {
		t.Fatalf("returning user must keep their identity: %q vs %q", again.ID, first.ID)
	}
}
