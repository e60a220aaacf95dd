package cache

import (
	"testing"
	"time"
)

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("etcd", Options{Size: 4, TTL: time.Minute})
	if err == nil {
		t.Fatal("Expected an error for an unknown provider")
	}
}

func TestProviders_Registered(t *testing.T) {
	providers := Providers()

	found := make(map[string]bool, len(providers))
	for _, name := range providers {
		found[name] = true
	}
	if !found["memory"] {
		t.Error("Expected memory provider to be registered")
	}
	if !found["redis"] {
		t.Error("Expected redis provider to be registered")
	}
}

func TestNew_RedisUnreachable(t *testing.T) {
	// No Redis server listens on a closed port; construction must fail fast
	// rather than hand back a broken cache.
	_, err := New("redis", Options{
		Size:         4,
		TTL:          time.Minute,
		RedisAddress: "127.0.0.1:1",
	})
	if err == nil {
		t.Fatal("Expected an error when Redis is unreachable")
	}
}
