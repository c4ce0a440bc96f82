package commandkit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUUIDParser(t *testing.T) {
	id := uuid.New()
	in := NewCommandInput(id.String())
	v, err := UUID.Parse(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, id, v)
}

func TestUUIDParser_Malformed(t *testing.T) {
	in := NewCommandInput("not-a-uuid")
	_, err := UUID.Parse(context.Background(), in)
	require.Error(t, err)
}
