package integration

import (
	"context"
	"testing"
	"time"

	"github.com/terratalk/terratalk/internal/adapter/cache"
)

// TestRedisCache_BasicOperations exercises the cache adapter against a real
// Redis instance.
func TestRedisCache_BasicOperations(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil {
		t.Skip("Redis not available")
	}

	c, err := cache.NewRedisCache(env.RedisURL, env.Logger)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	defer c.Close()

	ctx := context.Background()

	t.Run("SetGet", func(t *testing.T) {
		if err := c.Set(ctx, "geocode:test", "12.9716,77.5946", time.Minute); err != nil {
			t.Fatalf("Failed to set key: %v", err)
		}

		val, err := c.Get(ctx, "geocode:test")
		if err != nil {
			t.Fatalf("Failed to get key: %v", err)
		}
		if val != "12.9716,77.5946" {
			t.Errorf("Expected '12.9716,77.5946', got '%s'", val)
		}
	})

	t.Run("Miss", func(t *testing.T) {
		if _, err := c.Get(ctx, "geocode:nonexistent"); err == nil {
			t.Error("Expected an error on cache miss")
		}
	})

	t.Run("Expiration", func(t *testing.T) {
		if err := c.Set(ctx, "geocode:expiring", "value", 100*time.Millisecond); err != nil {
			t.Fatalf("Failed to set key: %v", err)
		}

		if _, err := c.Get(ctx, "geocode:expiring"); err != nil {
			t.Fatalf("Key should exist: %v", err)
		}

		time.Sleep(150 * time.Millisecond)

		if _, err := c.Get(ctx, "geocode:expiring"); err == nil {
			t.Error("Key should have expired")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set(ctx, "geocode:delete", "value", time.Minute)

		if err := c.Delete(ctx, "geocode:delete"); err != nil {
			t.Fatalf("Failed to delete key: %v", err)
		}

		if _, err := c.Get(ctx, "geocode:delete"); err == nil {
			t.Error("Key should have been deleted")
		}
	})

	t.Run("Ping", func(t *testing.T) {
		if err := c.Ping(); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})
}

// TestRedisCache_GeocodePattern exercises the cache-aside access pattern the
// geocoder uses.
func TestRedisCache_GeocodePattern(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil {
		t.Skip("Redis not available")
	}

	c, err := cache.NewRedisCache(env.RedisURL, env.Logger)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := "geocode:bangalore"

	// Cache miss resolves upstream and stores the result.
	if _, err := c.Get(ctx, key); err == nil {
		t.Fatal("Expected cache miss")
	}

	if err := c.Set(ctx, key, "12.9716,77.5946", 15*time.Minute); err != nil {
		t.Fatalf("Failed to cache: %v", err)
	}

	// Subsequent lookups hit the cache.
	cached, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Cache hit failed: %v", err)
	}
	if cached != "12.9716,77.5946" {
		t.Errorf("Cached data mismatch: got '%s'", cached)
	}
}
