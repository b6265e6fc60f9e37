package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	cap     int
	stamped bool
}

func TestApply_InOrder(t *testing.T) {
	tgt := &target{}

	err := Apply(tgt,
		NoError(func(c *target) { c.cap = 4 }),
		NoError(func(c *target) { c.stamped = true }),
		NoError(func(c *target) { c.cap = 8 }),
	)

	require.NoError(t, err)
	require.Equal(t, 8, tgt.cap)
	require.True(t, tgt.stamped)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	tgt := &target{}
	boom := errors.New("boom")

	err := Apply(tgt,
		NoError(func(c *target) { c.cap = 4 }),
		New(func(*target) error { return boom }),
		NoError(func(c *target) { c.stamped = true }),
	)

	require.ErrorIs(t, err, boom)
	require.Equal(t, 4, tgt.cap)
	require.False(t, tgt.stamped)
}

func TestApply_NoOptions(t *testing.T) {
	require.NoError(t, Apply(&target{}))
}

func TestNew_PropagatesError(t *testing.T) {
	opt := New(func(*target) error { return errors.New("invalid") })

	err := opt.apply(&target{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid")
}
