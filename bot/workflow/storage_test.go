package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"BazaarBot/bot/i18n"
)

func TestMemoryStoreSaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := NewSessionState(Owner(1), 1, "checkout", "address", i18n.Fa)
	require.NoError(t, store.Save(ctx, state))

	got, err := store.Get(ctx, Owner(1), "checkout")
	require.NoError(t, err)
	require.Same(t, state, got)

	missing, err := store.Get(ctx, Owner(1), "other")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestMemoryStoreSaveOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := NewSessionState(Owner(1), 1, "checkout", "address", i18n.Fa)
	first.Set("address", "old street")
	require.NoError(t, store.Save(ctx, first))

	second := NewSessionState(Owner(1), 1, "checkout", "address", i18n.Fa)
	require.NoError(t, store.Save(ctx, second))

	got, _ := store.Get(ctx, Owner(1), "checkout")
	require.Same(t, second, got)
	require.Equal(t, "", got.GetString("address"))
	require.Equal(t, 1, store.Len())
}

func TestMemoryStoreFindByUserPrefersEntityScoped(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	plain := NewSessionState(Owner(1), 1, "checkout", "address", i18n.Fa)
	require.NoError(t, store.Save(ctx, plain))

	got, err := store.FindByUser(ctx, 1)
	require.NoError(t, err)
	require.Same(t, plain, got)

	scoped := NewSessionState(EntityOwner(1, "prod-9"), 1, "edit_product", "field", i18n.Fa)
	require.NoError(t, store.Save(ctx, scoped))

	got, err = store.FindByUser(ctx, 1)
	require.NoError(t, err)
	require.Same(t, scoped, got)
}

func TestMemoryStoreFindByUserUnknown(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.FindByUser(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemoryStoreDeleteAbsentIsNoop(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, Owner(1), "checkout"))

	state := NewSessionState(Owner(1), 1, "checkout", "address", i18n.Fa)
	require.NoError(t, store.Save(ctx, state))
	require.NoError(t, store.Delete(ctx, Owner(1), "checkout"))
	require.Equal(t, 0, store.Len())
}

func TestMemoryStoreSweepDropsIdleSessions(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	stale := NewSessionState(Owner(1), 1, "checkout", "address", i18n.Fa)
	require.NoError(t, store.Save(ctx, stale))
	stale.UpdatedAt = time.Now().Add(-time.Hour)

	fresh := NewSessionState(Owner(2), 2, "checkout", "address", i18n.Fa)
	require.NoError(t, store.Save(ctx, fresh))

	removed := store.Sweep(30 * time.Minute)
	require.Equal(t, 1, removed)
	require.Equal(t, 1, store.Len())

	got, _ := store.Get(ctx, Owner(2), "checkout")
	require.Same(t, fresh, got)
}
