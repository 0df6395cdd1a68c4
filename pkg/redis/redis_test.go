package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"eduboard/config"
)

// newTestClient 连接本地 Redis，不可用时跳过（集成测试）
func newTestClient(t *testing.T) *Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	c, err := NewClient(&config.RedisConfig{Addr: addr, DB: 15}, zap.NewNop())
	if err != nil {
		t.Skipf("Redis 不可用，跳过: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func testKey(t *testing.T) string {
	return fmt.Sprintf("test:ratelimit:%s:%d", t.Name(), time.Now().UnixNano())
}

func TestCheckRateLimit_AllowsUpToLimit(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := testKey(t)

	for i := 1; i <= 3; i++ {
		ok, err := c.CheckRateLimit(ctx, key, 3, time.Minute)
		if err != nil {
			t.Fatalf("第 %d 次调用出错: %v", i, err)
		}
		if !ok {
			t.Errorf("第 %d 次请求应放行", i)
		}
	}

	ok, err := c.CheckRateLimit(ctx, key, 3, time.Minute)
	if err != nil {
		t.Fatalf("超限调用出错: %v", err)
	}
	if ok {
		t.Error("第 4 次请求应被限制")
	}
}

func TestCheckRateLimit_ExpiryNotRefreshedBySubsequentRequests(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := testKey(t)

	if _, err := c.CheckRateLimit(ctx, key, 10, 2*time.Second); err != nil {
		t.Fatalf("首次调用出错: %v", err)
	}
	ttl1, err := c.rdb.PTTL(ctx, key).Result()
	if err != nil {
		t.Fatalf("读取 TTL 出错: %v", err)
	}

	time.Sleep(200 * time.Millisecond)

	if _, err := c.CheckRateLimit(ctx, key, 10, 2*time.Second); err != nil {
		t.Fatalf("第二次调用出错: %v", err)
	}
	ttl2, err := c.rdb.PTTL(ctx, key).Result()
	if err != nil {
		t.Fatalf("读取 TTL 出错: %v", err)
	}

	// 后续请求不得重置窗口，TTL 只会单调减少
	if ttl2 > ttl1 {
		t.Errorf("窗口被刷新: TTL 从 %v 增加到 %v", ttl1, ttl2)
	}
}

func TestCheckRateLimit_RecoversAfterWindowDespiteRetries(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := testKey(t)
	window := 500 * time.Millisecond

	// 超限后在窗口内持续重试
	for i := 0; i < 4; i++ {
		if _, err := c.CheckRateLimit(ctx, key, 2, window); err != nil {
			t.Fatalf("调用出错: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	time.Sleep(window)

	// 窗口过期后计数归零，重试方不会被永久封禁
	ok, err := c.CheckRateLimit(ctx, key, 2, window)
	if err != nil {
		t.Fatalf("窗口后调用出错: %v", err)
	}
	if !ok {
		t.Error("窗口过期后请求应放行")
	}
}

func TestBlacklistToken_RoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	jti := fmt.Sprintf("test-jti-%d", time.Now().UnixNano())

	if err := c.BlacklistToken(ctx, jti, time.Minute); err != nil {
		t.Fatalf("加入黑名单出错: %v", err)
	}

	blocked, err := c.IsBlacklisted(ctx, jti)
	if err != nil {
		t.Fatalf("黑名单查询出错: %v", err)
	}
	if !blocked {
		t.Error("JTI 应在黑名单中")
	}

	// 已过期 Token 不写入
	if err := c.BlacklistToken(ctx, "expired-jti", -time.Second); err != nil {
		t.Fatalf("过期 Token 处理出错: %v", err)
	}
	blocked, err = c.IsBlacklisted(ctx, "expired-jti")
	if err != nil {
		t.Fatalf("黑名单查询出错: %v", err)
	}
	if blocked {
		t.Error("过期 Token 不应写入黑名单")
	}
}
