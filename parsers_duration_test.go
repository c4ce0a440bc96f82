package commandkit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDurationParser_Sum(t *testing.T) {
	in := NewCommandInput("1d12h30m")
	v, err := Duration.Parse(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour+12*time.Hour+30*time.Minute, v)
}

func TestDurationParser_Malformed(t *testing.T) {
	in := NewCommandInput("soon")
	_, err := Duration.Parse(context.Background(), in)
	require.Error(t, err)
}
