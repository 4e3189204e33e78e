package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/domain"
)

func TestCache_SetGetDel(t *testing.T) {
	srv := miniredis.RunT(t)
	cache := redisad.New(srv.Addr(), "", 0)
	ctx := context.Background()

	room := domain.Room{ID: 12, RoomNumber: "101", Type: domain.RoomDouble, Price: 100, Capacity: 2, IsAvailable: true}
	if err := cache.Set(ctx, "room:12", room, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got domain.Room
	ok, err := cache.Get(ctx, "room:12", &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if got.ID != 12 || got.RoomNumber != "101" || got.Type != domain.RoomDouble {
		t.Fatalf("unexpected value: %+v", got)
	}

	if err := cache.Del(ctx, "room:12"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	ok, err = cache.Get(ctx, "room:12", &got)
	if err != nil {
		t.Fatalf("Get after Del: %v", err)
	}
	if ok {
		t.Fatal("expected miss after delete")
	}
}

func TestCache_MissingKeyIsMissNotError(t *testing.T) {
	srv := miniredis.RunT(t)
	cache := redisad.New(srv.Addr(), "", 0)

	var dst domain.Room
	ok, err := cache.Get(context.Background(), "room:999", &dst)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}
