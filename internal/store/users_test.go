package store

import (
	"context"
	"testing"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/db"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, model.User{
		Username:     "testuser",
		PasswordHash: "hash123",
		FullName:     "Test User",
		Email:        "test@uni.example",
		Phone:        "0770000000",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %q", user.Username)
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected default role 'user', got %q", user.Role)
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Email != "test@uni.example" || got.FullName != "Test User" {
		t.Errorf("profile not persisted: %+v", got)
	}
}

func TestGetUserByUsername(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	mustCreateUser(t, database, "alice")

	user, err := GetUserByUsername(ctx, database, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("expected alice, got %+v", user)
	}

	missing, err := GetUserByUsername(ctx, database, "bob")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing user")
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	mustCreateUser(t, database, "dup")
	if _, err := CreateUser(ctx, database, model.User{Username: "dup", PasswordHash: "x"}); err == nil {
		t.Error("expected error for duplicate username")
	}
}

func TestListAndDeleteUsers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a := mustCreateUser(t, database, "a")
	mustCreateUser(t, database, "b")

	users, err := ListUsers(ctx, database)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}

	if err := DeleteUser(ctx, database, a.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	n, err := CountUsers(ctx, database)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user after delete, got %d", n)
	}

	// Username becomes reusable after soft delete.
	mustCreateUser(t, database, "a")
}

func TestUpdateUserPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := mustCreateUser(t, database, "pwuser")
	if err := UpdateUserPassword(ctx, database, user.ID, "newhash"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got.PasswordHash != "newhash" {
		t.Errorf("expected password hash 'newhash', got %q", got.PasswordHash)
	}
}

func TestUpdateUserProfile(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u := mustCreateUser(t, database, "alice")

	updated, err := UpdateUserProfile(ctx, database, model.User{
		ID:                 u.ID,
		FullName:           "Alice Perera",
		Email:              "alice.perera@uni.example",
		Phone:              "",
		RegistrationNumber: "2020/E/001",
	})
	if err != nil {
		t.Fatalf("UpdateUserProfile: %v", err)
	}
	if updated.FullName != "Alice Perera" || updated.Email != "alice.perera@uni.example" ||
		updated.Phone != "" || updated.RegistrationNumber != "2020/E/001" {
		t.Errorf("profile not updated: %+v", updated)
	}
	if updated.Username != "alice" || updated.PasswordHash != u.PasswordHash {
		t.Errorf("profile update touched credentials: %+v", updated)
	}

	if err := DeleteUser(ctx, database, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	gone, err := UpdateUserProfile(ctx, database, model.User{ID: u.ID, FullName: "x", Email: "x@uni.example"})
	if err != nil {
		t.Fatalf("UpdateUserProfile: %v", err)
	}
	if gone != nil {
		t.Error("expected nil updating a deleted user")
	}
}
