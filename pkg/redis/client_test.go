package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/pricing-engine-backend/pkg/config"
)

func configRedis(url, addr string) config.RedisConfig {
	return config.RedisConfig{URL: url, Address: addr}
}

func TestQuoteCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.QuoteKey("c1", "p2", "q5")
	if _, found, err := client.Get(ctx, key); err != nil || found {
		t.Fatalf("expected miss on empty cache, found=%v err=%v", found, err)
	}

	if err := client.Set(ctx, key, `{"price":"160000"}`, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found || val != `{"price":"160000"}` {
		t.Fatalf("unexpected cached value %q found=%v", val, found)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, found, _ := client.Get(ctx, key); found {
		t.Fatal("expected miss after delete")
	}
}

func TestQuoteKeyNamespace(t *testing.T) {
	client := &Client{}
	if got := client.QuoteKey("c1", "p2", "q5"); got != "pricing:quote:c1:p2:q5" {
		t.Fatalf("unexpected quote key %s", got)
	}
}

func TestNilClientIsNoop(t *testing.T) {
	var client *Client
	ctx := context.Background()

	if _, found, err := client.Get(ctx, "k"); found || err != nil {
		t.Fatalf("nil client Get should be a silent miss, found=%v err=%v", found, err)
	}
	if err := client.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("nil client Set should be a no-op, got %v", err)
	}
	if err := client.Ping(ctx); err == nil {
		t.Fatal("nil client Ping should report unavailability")
	}
}

func TestOptionsFromConfigRequiresEndpoint(t *testing.T) {
	if _, err := optionsFromConfig(configRedis("", "")); err == nil {
		t.Fatal("expected error without url or address")
	}
	opts, err := optionsFromConfig(configRedis("", "localhost:6379"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %s", opts.Addr)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	if val, ok := m.data[key]; ok {
		return redis.NewStringResult(val, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (m *mockCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}
