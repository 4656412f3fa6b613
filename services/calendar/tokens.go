package calendar

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"golang.org/x/oauth2"
)

// TokenStore resolves the OAuth2 token for a user. Tokens are written by the
// (out of scope) auth flow; this package only reads them.
type TokenStore interface {
	Token(ctx context.Context, userID string) (*oauth2.Token, error)
}

// RedisTokenStore keeps per-user OAuth2 tokens in Redis as JSON.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func tokenKey(userID string) string {
	return "gcal:token:" + userID
}

func (s *RedisTokenStore) Token(ctx context.Context, userID string) (*oauth2.Token, error) {
	raw, err := s.client.Get(ctx, tokenKey(userID)).Result()
	if err == redis.Nil {
		return nil, &ProviderError{Kind: KindPermissionDenied, Op: "token", Err: fmt.Errorf("no calendar credentials for user %s", userID)}
	}
	if err != nil {
		return nil, &ProviderError{Kind: KindUnavailable, Op: "token", Err: err}
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil, &ProviderError{Kind: KindPermissionDenied, Op: "token", Err: fmt.Errorf("corrupt token for user %s: %w", userID, err)}
	}
	return &tok, nil
}

// SaveToken stores a freshly exchanged token for a user.
func (s *RedisTokenStore) SaveToken(ctx context.Context, userID string, tok *oauth2.Token) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, tokenKey(userID), b, 0).Err()
}
