// Package pending holds the one-time handoff between payment initiation
// and the widget load: a session token mapped to the signed payload and
// launch options. Entries live in Redis with a short TTL and are consumed
// on first read, so a restart or a replayed token cannot leak a session.
package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dltpay/paygate/internal/pkg/cache"
	"github.com/dltpay/paygate/internal/pkg/env"
	"github.com/dltpay/paygate/internal/pkg/widget"
)

const keyPrefix = "pending:tx:"

const defaultTTLMinutes = 15

// ErrNotFound is returned when a token is unknown, expired or already consumed.
var ErrNotFound = errors.New("pending transaction not found")

// Transaction is the payload stored per session token.
type Transaction struct {
	SignedData    widget.SignedData `json:"signedData"`
	WidgetOptions widget.Options    `json:"widgetOptions"`
}

// Store keeps pending transactions in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a store on the given Redis client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Default returns a store backed by the shared cache client, with the TTL
// taken from PENDING_TX_TTL_MINUTES. The struct is cheap, so it is rebuilt
// per call and always follows the current cache client.
func Default() *Store {
	minutes, err := strconv.Atoi(env.GetEnv("PENDING_TX_TTL_MINUTES", strconv.Itoa(defaultTTLMinutes)))
	if err != nil || minutes <= 0 {
		minutes = defaultTTLMinutes
	}
	return NewStore(cache.GetClient(), time.Duration(minutes)*time.Minute)
}

// Put stores the transaction under the token for the configured TTL.
func (s *Store) Put(ctx context.Context, token string, tx *Transaction) error {
	payload, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("marshal pending transaction: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err()
}

// Take consumes the transaction for the token. GETDEL makes consumption
// atomic: the first reader gets the payload, every later read sees
// ErrNotFound.
func (s *Store) Take(ctx context.Context, token string) (*Transaction, error) {
	payload, err := s.client.GetDel(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var tx Transaction
	if err := json.Unmarshal([]byte(payload), &tx); err != nil {
		return nil, fmt.Errorf("unmarshal pending transaction: %w", err)
	}
	return &tx, nil
}
