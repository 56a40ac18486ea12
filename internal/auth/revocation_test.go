package auth

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryRevocationStore(t *testing.T) {
	store := NewInMemoryRevocationStore()
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked {
		t.Fatal("token should not be revoked yet")
	}

	if err := store.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	revoked, _ = store.IsRevoked(ctx, "jti-1")
	if !revoked {
		t.Fatal("token should be revoked")
	}
}

func TestInMemoryRevocationStore_ExpiredEntryClears(t *testing.T) {
	store := NewInMemoryRevocationStore()
	ctx := context.Background()

	_ = store.Revoke(ctx, "jti-2", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	revoked, _ := store.IsRevoked(ctx, "jti-2")
	if revoked {
		t.Fatal("expired revocation entry should no longer apply")
	}
}

func TestRevoke_NonPositiveTTLIsNoop(t *testing.T) {
	store := NewInMemoryRevocationStore()
	ctx := context.Background()

	// A token past its expiry needs no tracking.
	_ = store.Revoke(ctx, "jti-3", -time.Minute)

	revoked, _ := store.IsRevoked(ctx, "jti-3")
	if revoked {
		t.Fatal("expired token should not be recorded")
	}
}
