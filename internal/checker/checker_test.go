package checker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFunc_Delegates(t *testing.T) {
	var got string
	c := Func(func(_ context.Context, path string) ([]types.BrokenLink, error) {
		got = path
		return []types.BrokenLink{{Name: "Roads"}}, nil
	})

	links, err := c.BrokenLinks(context.Background(), "maps/a.mxd")

	require.NoError(t, err)
	assert.Equal(t, "maps/a.mxd", got)
	assert.Equal(t, []types.BrokenLink{{Name: "Roads"}}, links)
}

func TestUnconfigured_AlwaysFails(t *testing.T) {
	_, err := Unconfigured{}.BrokenLinks(context.Background(), "maps/a.mxd")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoChecker))
	assert.True(t, errors.Is(err, ErrOpenDocument))
	assert.Contains(t, err.Error(), "maps/a.mxd")
}
