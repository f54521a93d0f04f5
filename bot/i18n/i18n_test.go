package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPick(t *testing.T) {
	require.Equal(t, En, Pick("en"))
	require.Equal(t, Fa, Pick("fa"))
	require.Equal(t, Fa, Pick(""))
	require.Equal(t, Fa, Pick("de"))
}

func TestTRendersBothLocales(t *testing.T) {
	fa := T(Fa, "admin.welcome")
	en := T(En, "admin.welcome")
	require.NotEmpty(t, fa)
	require.NotEmpty(t, en)
	require.NotEqual(t, fa, en)
}

func TestTFormatsArgs(t *testing.T) {
	got := T(En, "order.review_item", "Tea", 2, int64(1000))
	require.Equal(t, "Tea - 2 pcs - 1000 Toman", got)
}

func TestTUnknownKeyRendersKey(t *testing.T) {
	require.Equal(t, "no.such.key", T(Fa, "no.such.key"))
}

func TestEveryMessageHasBothLocales(t *testing.T) {
	for key, m := range messages {
		require.NotEmpty(t, m.fa, "missing fa text for %s", key)
		require.NotEmpty(t, m.en, "missing en text for %s", key)
	}
}

func TestVerbCountsMatchAcrossLocales(t *testing.T) {
	for key, m := range messages {
		require.Equal(t, strings.Count(m.fa, "%"), strings.Count(m.en, "%"),
			"format verb mismatch for %s", key)
	}
}
