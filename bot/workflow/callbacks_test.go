package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	require.Nil(t, ParseCallback("cat_12"))
	require.Nil(t, ParseCallback(""))

	cb := ParseCallback("wf:confirm")
	require.NotNil(t, cb)
	require.True(t, cb.IsConfirm())
	require.False(t, cb.IsCancel())
	require.Equal(t, "", cb.Value)

	cb = ParseCallback("wf:cancel")
	require.NotNil(t, cb)
	require.True(t, cb.IsCancel())

	cb = ParseCallback("wf:select:prod-42")
	require.NotNil(t, cb)
	require.Equal(t, "prod-42", cb.SelectedID())
}

func TestSelectedIDOnlyForSelect(t *testing.T) {
	cb := ParseCallback("wf:confirm:extra")
	require.NotNil(t, cb)
	require.Equal(t, "extra", cb.Value)
	require.Equal(t, "", cb.SelectedID())
}

func TestBuildCallbackRoundTrip(t *testing.T) {
	require.Equal(t, "wf:confirm", BuildCallback(ActionConfirm))
	require.Equal(t, "wf:select:5", BuildCallback(ActionSelect, "5"))
	require.Equal(t, "wf:cancel", BuildCallback(ActionCancel, ""))

	cb := ParseCallback(BuildCallback(ActionSelect, "prod-1"))
	require.NotNil(t, cb)
	require.Equal(t, "prod-1", cb.SelectedID())
}

func TestIsWorkflowCallback(t *testing.T) {
	require.True(t, IsWorkflowCallback("wf:confirm"))
	require.True(t, IsWorkflowCallback("wf:select:1"))
	require.False(t, IsWorkflowCallback("lang_fa"))
	require.False(t, IsWorkflowCallback("approve_payment_9"))
}
