package services

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestMessageStore(t *testing.T) (*MessageStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewMessageStore(client), mr
}

func TestPersonalMessageIsConsumedOnRead(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestMessageStore(t)

	if err := store.SendPersonal(ctx, 7, "mentor", "check the hint"); err != nil {
		t.Fatalf("send personal failed: %v", err)
	}

	inbox, err := store.FetchInbox(ctx, 7)
	if err != nil {
		t.Fatalf("fetch inbox failed: %v", err)
	}
	if inbox.Personal == nil || inbox.Personal.Text != "check the hint" {
		t.Fatalf("expected the personal message, got %+v", inbox.Personal)
	}

	inbox, err = store.FetchInbox(ctx, 7)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if inbox.Personal != nil {
		t.Fatalf("expected the personal message gone after the first read")
	}
}

func TestBroadcastSurvivesReads(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestMessageStore(t)

	if err := store.Broadcast(ctx, "mentor", "lesson extended"); err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		inbox, err := store.FetchInbox(ctx, uint(i+1))
		if err != nil {
			t.Fatalf("fetch inbox failed: %v", err)
		}
		if inbox.Broadcast == nil || inbox.Broadcast.Text != "lesson extended" {
			t.Fatalf("expected every poller to see the broadcast, got %+v", inbox.Broadcast)
		}
	}
}

func TestMessagesExpire(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestMessageStore(t)

	if err := store.SendPersonal(ctx, 7, "mentor", "hello"); err != nil {
		t.Fatalf("send personal failed: %v", err)
	}
	if err := store.Broadcast(ctx, "mentor", "hello all"); err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}

	mr.FastForward(broadcastMessageTTL + time.Second)

	inbox, err := store.FetchInbox(ctx, 7)
	if err != nil {
		t.Fatalf("fetch inbox failed: %v", err)
	}
	if inbox.Broadcast != nil {
		t.Fatalf("expected the broadcast expired after its TTL")
	}
	if inbox.Personal == nil {
		t.Fatalf("expected the personal message to outlive the broadcast TTL")
	}

	if err := store.SendPersonal(ctx, 8, "mentor", "hello again"); err != nil {
		t.Fatalf("send personal failed: %v", err)
	}
	mr.FastForward(personalMessageTTL + time.Second)

	inbox, err = store.FetchInbox(ctx, 8)
	if err != nil {
		t.Fatalf("fetch inbox failed: %v", err)
	}
	if inbox.Personal != nil {
		t.Fatalf("expected the unread personal message expired after its TTL")
	}
}

func TestPersonalMessageIsReplaced(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestMessageStore(t)

	if err := store.SendPersonal(ctx, 7, "mentor", "first"); err != nil {
		t.Fatalf("send personal failed: %v", err)
	}
	if err := store.SendPersonal(ctx, 7, "mentor", "second"); err != nil {
		t.Fatalf("send personal failed: %v", err)
	}

	inbox, err := store.FetchInbox(ctx, 7)
	if err != nil {
		t.Fatalf("fetch inbox failed: %v", err)
	}
	if inbox.Personal == nil || inbox.Personal.Text != "second" {
		t.Fatalf("expected the later message to replace the unread one, got %+v", inbox.Personal)
	}
}
