package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
)

// Store is a per-session key/value store. Values are opaque bytes.
type Store interface {
	Get(ctx context.Context, sessionId string, key string) ([]byte, bool, error)
	Set(ctx context.Context, sessionId string, key string, value []byte) error
	Close() error
}

func NewStore(conf config.SessionsConfig) (Store, error) {
	ttl := time.Duration(conf.TtlHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	switch conf.Backend {
	case "memory", "":
		return NewMemoryStore(ttl), nil
	case "redis":
		return NewRedisStore(conf.Redis, ttl)
	default:
		return nil, fmt.Errorf("%w: unknown session backend %q", common.ErrBadConfiguration, conf.Backend)
	}
}

func storeKey(sessionId string, key string) string {
	return sessionId + ":" + key
}
