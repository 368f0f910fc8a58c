package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

type RedisTokenStore struct {
	client rueidis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisTokenStore(client rueidis.Client, prefix string, ttl time.Duration) *RedisTokenStore {
	return &RedisTokenStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisTokenStore) tokenKey(token string) string {
	return r.prefix + ":token:" + token
}

func (r *RedisTokenStore) userKey(userID string) string {
	return r.prefix + ":user:" + userID
}

func (r *RedisTokenStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()

	setCmd := r.client.B().Set().
		Key(r.tokenKey(token)).
		Value(userID).
		ExSeconds(int64(r.ttl.Seconds())).
		Build()
	if err := r.client.Do(ctx, setCmd).Error(); err != nil {
		return "", err
	}

	saddCmd := r.client.B().Sadd().Key(r.userKey(userID)).Member(token).Build()
	if err := r.client.Do(ctx, saddCmd).Error(); err != nil {
		return "", err
	}

	expireCmd := r.client.B().Expire().
		Key(r.userKey(userID)).
		Seconds(int64(r.ttl.Seconds())).
		Build()
	if err := r.client.Do(ctx, expireCmd).Error(); err != nil {
		return "", err
	}

	return token, nil
}

func (r *RedisTokenStore) Resolve(ctx context.Context, token string) (string, error) {
	cmd := r.client.B().Get().Key(r.tokenKey(token)).Build()
	result := r.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrTokenNotFound
		}
		return "", err
	}

	return result.ToString()
}

func (r *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	userID, err := r.Resolve(ctx, token)
	if err != nil {
		return err
	}

	delCmd := r.client.B().Del().Key(r.tokenKey(token)).Build()
	if err := r.client.Do(ctx, delCmd).Error(); err != nil {
		return err
	}

	sremCmd := r.client.B().Srem().Key(r.userKey(userID)).Member(token).Build()
	return r.client.Do(ctx, sremCmd).Error()
}

func (r *RedisTokenStore) RevokeAll(ctx context.Context, userID string) error {
	membersCmd := r.client.B().Smembers().Key(r.userKey(userID)).Build()
	tokens, err := r.client.Do(ctx, membersCmd).AsStrSlice()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil
		}
		return err
	}

	for _, token := range tokens {
		delCmd := r.client.B().Del().Key(r.tokenKey(token)).Build()
		if err := r.client.Do(ctx, delCmd).Error(); err != nil {
			return err
		}
	}

	delCmd := r.client.B().Del().Key(r.userKey(userID)).Build()
	return r.client.Do(ctx, delCmd).Error()
}
