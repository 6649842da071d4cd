package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RootKey session 落地用的固定 key
const RootKey = "tickify:session"

// RedisPersister 以單一固定 key 將 session 存成 JSON blob
type RedisPersister struct {
	client *redis.Client
	key    string
}

func NewRedisPersister(client *redis.Client) *RedisPersister {
	return &RedisPersister{client: client, key: RootKey}
}

func (p *RedisPersister) Save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return p.client.Set(ctx, p.key, data, 0).Err()
}

func (p *RedisPersister) Load(ctx context.Context) (*Session, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (p *RedisPersister) Clear(ctx context.Context) error {
	return p.client.Del(ctx, p.key).Err()
}
