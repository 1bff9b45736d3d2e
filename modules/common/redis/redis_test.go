package redis

import (
	"testing"
	"time"

	"ark-image-server/modules/common/config"
)

// REDIS_HOST 미설정 시 dial 없이 즉시 nil을 반환해야 한다
func TestConnectWithoutHost(t *testing.T) {
	start := time.Now()

	rdb := Connect(&config.Config{RedisPort: "6379"})
	if rdb != nil {
		t.Error("Connect returned a client without REDIS_HOST")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Connect took %v without a host, want immediate return", elapsed)
	}
}
