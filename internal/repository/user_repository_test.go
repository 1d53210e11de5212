package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/tickettango/api/internal/store"
	"github.com/tickettango/api/internal/utils"
)

// bcrypt's minimum cost keeps these tests fast.
const testBcryptCost = 4

func TestUserCreateAndFetch(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	repo := NewUserRepo(st)
	ctx := context.Background()

	email := "alice@example.com"
	id, err := repo.Create(ctx, "alice", "s3cret-pass", &email, testBcryptCost)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if id == 0 {
		t.Fatal("id = 0")
	}

	u, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if u.ID != id {
		t.Errorf("id = %d, want %d", u.ID, id)
	}
	if u.Email == nil || *u.Email != email {
		t.Errorf("email = %v, want %q", u.Email, email)
	}
	// The stored hash must verify the original password and nothing else.
	if !utils.VerifyPassword(u.PasswordHash, "s3cret-pass") {
		t.Error("stored hash does not verify the password")
	}
	if utils.VerifyPassword(u.PasswordHash, "wrong") {
		t.Error("stored hash verifies a wrong password")
	}

	byID, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("username = %q", byID.Username)
	}
}

func TestUserDuplicateUsername(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	repo := NewUserRepo(st)
	ctx := context.Background()

	first, err := repo.Create(ctx, "bob", "password-one", nil, testBcryptCost)
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := repo.Create(ctx, "bob", "password-two", nil, testBcryptCost); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("duplicate: err = %v, want ErrUsernameExists", err)
	}

	// The original account is untouched by the failed attempt.
	u, err := repo.GetByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("get after duplicate: %v", err)
	}
	if u.ID != first {
		t.Errorf("id = %d, want %d", u.ID, first)
	}
	if !utils.VerifyPassword(u.PasswordHash, "password-one") {
		t.Error("first account's password no longer verifies")
	}
}

func TestUserUnknownUsername(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	repo := NewUserRepo(st)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestUserCreateTrimsUsername(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	repo := NewUserRepo(st)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "  carol  ", "pw", nil, testBcryptCost); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.GetByUsername(ctx, "carol"); err != nil {
		t.Errorf("trimmed lookup failed: %v", err)
	}
}
