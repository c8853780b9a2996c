package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
)

func mustCreateUser(t *testing.T, database *sql.DB, username string) *model.User {
	t.Helper()
	u, err := CreateUser(context.Background(), database, model.User{
		Username:     username,
		PasswordHash: "hash",
		FullName:     username + " full",
		Email:        username + "@uni.example",
		Phone:        "0771234567",
	})
	if err != nil {
		t.Fatalf("CreateUser(%q): %v", username, err)
	}
	return u
}

func day(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func mustCreateLost(t *testing.T, database *sql.DB, userID int64, category, name string) *model.LostItem {
	t.Helper()
	item, err := CreateLostItem(context.Background(), database, &model.LostItem{
		UserID:      userID,
		Category:    category,
		ItemName:    name,
		Color:       "Black",
		Location:    "Library",
		DateLost:    day("2024-03-01"),
		Description: "black phone with a cracked screen",
	})
	if err != nil {
		t.Fatalf("CreateLostItem: %v", err)
	}
	return item
}

func mustCreateFound(t *testing.T, database *sql.DB, userID int64, category, name string) *model.FoundItem {
	t.Helper()
	item, err := CreateFoundItem(context.Background(), database, &model.FoundItem{
		UserID:      userID,
		Category:    category,
		ItemName:    name,
		Color:       "Black",
		Location:    "Library",
		DateFound:   day("2024-03-01"),
		Description: "black phone with a cracked screen",
	})
	if err != nil {
		t.Fatalf("CreateFoundItem: %v", err)
	}
	return item
}
