package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	store := NewSessionStore(client, 2*time.Minute)

	active, err := store.IsActive(ctx, "u1")
	if err != nil || active {
		t.Fatalf("expected no session, got active=%v err=%v", active, err)
	}

	if err := store.Touch(ctx, "u1"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if !mr.Exists("quiz:session:u1") {
		t.Fatalf("expected session key")
	}
	if active, _ := store.IsActive(ctx, "u1"); !active {
		t.Fatalf("expected active session after touch")
	}

	if ok, err := store.Heartbeat(ctx, "u1"); err != nil || !ok {
		t.Fatalf("heartbeat = (%v, %v), want (true, nil)", ok, err)
	}

	if err := store.Remove(ctx, "u1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if mr.Exists("quiz:session:u1") {
		t.Fatalf("expected session key removed")
	}
}

func TestSessionStoreExpiresWithoutHeartbeat(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	store := NewSessionStore(client, 2*time.Minute)

	if err := store.Touch(ctx, "u1"); err != nil {
		t.Fatalf("touch: %v", err)
	}

	mr.FastForward(2*time.Minute + time.Second)

	if active, _ := store.IsActive(ctx, "u1"); active {
		t.Fatalf("expected session to expire")
	}
	if ok, _ := store.Heartbeat(ctx, "u1"); ok {
		t.Fatalf("heartbeat after expiry must report session gone")
	}
}

func TestHeartbeatExtendsSession(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	store := NewSessionStore(client, 2*time.Minute)

	if err := store.Touch(ctx, "u1"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	mr.FastForward(90 * time.Second)
	if ok, _ := store.Heartbeat(ctx, "u1"); !ok {
		t.Fatalf("expected live session")
	}
	mr.FastForward(90 * time.Second)
	if active, _ := store.IsActive(ctx, "u1"); !active {
		t.Fatalf("expected heartbeat to have reset the window")
	}
}
