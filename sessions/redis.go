package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/julender/julender/common/config"
	"github.com/sirupsen/logrus"
)

const redisKeyPrefix = "julender:session:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(conf config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        conf.Address,
		Password:    conf.Password,
		DB:          conf.DbNum,
		DialTimeout: 10 * time.Second,
	})

	logrus.Info("Contacting Redis...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	r, err := client.Ping(ctx).Result()
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	logrus.Infof("%s replied with: %s", client.String(), r)

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionId string, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, redisKeyPrefix+storeKey(sessionId, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionId string, key string, value []byte) error {
	return s.client.Set(ctx, redisKeyPrefix+storeKey(sessionId, key), value, s.ttl).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
