package pending

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dltpay/paygate/internal/pkg/widget"
)

func setupTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, ttl), mr
}

func testTransaction() *Transaction {
	return &Transaction{
		SignedData: widget.SignedData{
			Address:         "0x8ba1f109551bD432803012645Ac136ddd64DBA72",
			Commodity:       "USDT",
			CommodityAmount: 5,
			Network:         "polygon",
			Signature:       "cafe",
		},
		WidgetOptions: widget.Options{
			PartnerID: "partner-1",
			ClickID:   "c1",
			Origin:    "https://widget.wert.io",
		},
	}
}

func TestPutAndTake(t *testing.T) {
	store, _ := setupTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "tok-1", testTransaction()))

	got, err := store.Take(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, testTransaction(), got)
}

func TestTakeIsExactlyOnce(t *testing.T) {
	store, _ := setupTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "tok-1", testTransaction()))

	_, err := store.Take(ctx, "tok-1")
	require.NoError(t, err)

	_, err = store.Take(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTakeUnknownToken(t *testing.T) {
	store, _ := setupTestStore(t, time.Minute)

	_, err := store.Take(context.Background(), "never-stored")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntriesExpire(t *testing.T) {
	store, mr := setupTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "tok-1", testTransaction()))
	mr.FastForward(2 * time.Minute)

	_, err := store.Take(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
