package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunBulkCountsAlwaysSum(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	res := runBulk(ids, func(id string) error {
		if id == "b" || id == "d" {
			return errors.New("nope")
		}
		return nil
	})

	require.Equal(t, 2, res.Succeeded)
	require.Equal(t, 2, res.Failed)
	require.Equal(t, len(ids), res.Succeeded+res.Failed)
	require.Len(t, res.Items, len(ids))
}

func TestRunBulkPreservesOrder(t *testing.T) {
	ids := []string{"z", "y", "x"}
	res := runBulk(ids, func(string) error { return nil })

	for i, id := range ids {
		require.Equal(t, id, res.Items[i].ID)
		require.True(t, res.Items[i].OK)
	}
}

func TestRunBulkIsolatesPanics(t *testing.T) {
	res := runBulk([]string{"ok", "boom", "ok2"}, func(id string) error {
		if id == "boom" {
			panic("exploded")
		}
		return nil
	})

	require.Equal(t, 2, res.Succeeded)
	require.Equal(t, 1, res.Failed)
	require.False(t, res.Items[1].OK)
	require.Contains(t, res.Items[1].Err, "panic")
}

func TestRunBulkEmptyInput(t *testing.T) {
	res := runBulk(nil, func(string) error { return nil })
	require.Zero(t, res.Succeeded)
	require.Zero(t, res.Failed)
	require.Empty(t, res.Items)
}
