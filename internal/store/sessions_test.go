package store

import (
	"context"
	"testing"
	"time"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/db"
)

func TestSessionSecretIsStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := SessionSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}

	second, err := SessionSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("expected same secret, got %q and %q", first, second)
	}
}

func TestTokenRevocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now()

	if revoked, _ := IsTokenRevoked(ctx, database, "live"); revoked {
		t.Fatal("expected fresh token not to be revoked")
	}

	for range 2 {
		if err := RevokeToken(ctx, database, "live", now.Add(time.Hour)); err != nil {
			t.Fatalf("RevokeToken: %v", err)
		}
	}
	if err := RevokeToken(ctx, database, "stale", now.Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}

	revoked, err := IsTokenRevoked(ctx, database, "live")
	if err != nil || !revoked {
		t.Fatalf("expected live token revoked, got %v (%v)", revoked, err)
	}

	n, err := PurgeRevokedTokens(ctx, database, now)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged revocation, got %d", n)
	}
	if revoked, _ := IsTokenRevoked(ctx, database, "live"); !revoked {
		t.Error("purge must keep unexpired revocations")
	}
}
