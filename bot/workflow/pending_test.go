package workflow

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"BazaarBot/bot/i18n"
)

func TestReceiptRegistryRegisterAndFind(t *testing.T) {
	reg := NewReceiptRegistry()

	require.Nil(t, reg.FindByUser(1))

	reg.Register("ord-1", 1, 1, i18n.Fa)

	p := reg.FindByUser(1)
	require.NotNil(t, p)
	require.Equal(t, "ord-1", p.OrderID)
	require.Equal(t, i18n.Fa, p.Lang)
	require.Nil(t, reg.FindByUser(2))
}

func TestReceiptRegistryRegisterOverwrites(t *testing.T) {
	reg := NewReceiptRegistry()

	reg.Register("ord-1", 1, 1, i18n.Fa)
	reg.Register("ord-1", 1, 99, i18n.En)

	require.Equal(t, 1, reg.Len())

	p := reg.FindByUser(1)
	require.NotNil(t, p)
	require.Equal(t, int64(99), p.ChatID)
	require.Equal(t, i18n.En, p.Lang)
}

func TestReceiptRegistryResolveOnce(t *testing.T) {
	reg := NewReceiptRegistry()
	reg.Register("ord-1", 1, 1, i18n.Fa)

	require.True(t, reg.Resolve("ord-1"))
	require.False(t, reg.Resolve("ord-1"))
	require.False(t, reg.Resolve("never-registered"))
	require.Nil(t, reg.FindByUser(1))
}

func TestReceiptRegistryResolveRace(t *testing.T) {
	reg := NewReceiptRegistry()
	reg.Register("ord-1", 1, 1, i18n.Fa)

	const claimers = 16
	wins := make(chan bool, claimers)
	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- reg.Resolve("ord-1")
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for w := range wins {
		if w {
			won++
		}
	}
	require.Equal(t, 1, won)
	require.Equal(t, 0, reg.Len())
}

func TestReceiptRegistrySweep(t *testing.T) {
	reg := NewReceiptRegistry()
	reg.Register("old", 1, 1, i18n.Fa)
	reg.Register("new", 2, 2, i18n.Fa)

	reg.pending["old"].CreatedAt = time.Now().Add(-48 * time.Hour)

	removed := reg.Sweep(24 * time.Hour)
	require.Equal(t, 1, removed)
	require.Equal(t, 1, reg.Len())
	require.False(t, reg.Resolve("old"))
	require.True(t, reg.Resolve("new"))
}
