package request

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsVerbose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	require.False(t, IsVerbose(ctx, false))
	require.True(t, IsVerbose(ctx, true))
	require.True(t, IsVerbose(WithVerbose(ctx), false))
	require.False(t, IsVerbose(context.WithValue(ctx, contextVerboseFlag, false), false))
	require.False(t, IsVerbose(context.WithValue(ctx, contextVerboseFlag, "bruh"), false))
	require.True(t, IsVerbose(context.WithValue(ctx, contextVerboseFlag, true), false))
}
