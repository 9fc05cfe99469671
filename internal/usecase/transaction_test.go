package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_AllStepsSucceed(t *testing.T) {
	var trail []string
	tx := NewTransaction(nil)
	for _, name := range []string{"a", "b"} {
		name := name
		tx.AddStep(name,
			func(context.Context) error { trail = append(trail, "do "+name); return nil },
			func(context.Context) error { trail = append(trail, "undo "+name); return nil },
		)
	}

	require.NoError(t, tx.Execute(context.Background()))
	assert.Equal(t, []string{"do a", "do b"}, trail)
}

func TestTransaction_RollsBackInReverseOrder(t *testing.T) {
	var trail []string
	boom := errors.New("boom")
	tx := NewTransaction(nil)
	for _, name := range []string{"a", "b"} {
		name := name
		tx.AddStep(name,
			func(context.Context) error { trail = append(trail, "do "+name); return nil },
			func(context.Context) error { trail = append(trail, "undo "+name); return nil },
		)
	}
	tx.AddStep("c",
		func(context.Context) error { return boom },
		func(context.Context) error { trail = append(trail, "undo c"); return nil },
	)

	err := tx.Execute(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "operation 'c' failed")
	assert.Contains(t, err.Error(), "rolled back 2 operations")
	assert.Equal(t, []string{"do a", "do b", "undo b", "undo a"}, trail)
}

func TestTransaction_CompensationErrorDoesNotStopRollback(t *testing.T) {
	undone := false
	tx := NewTransaction(nil)
	tx.AddStep("a",
		func(context.Context) error { return nil },
		func(context.Context) error { undone = true; return nil },
	)
	tx.AddStep("b",
		func(context.Context) error { return nil },
		func(context.Context) error { return errors.New("undo failed") },
	)
	tx.AddOperation("c", func(context.Context) error { return errors.New("fail") })

	require.Error(t, tx.Execute(context.Background()))
	assert.True(t, undone)
}

func TestTransaction_CompensationsIgnoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var undoErr error
	tx := NewTransaction(nil)
	tx.AddStep("a",
		func(context.Context) error { return nil },
		func(ctx context.Context) error { undoErr = ctx.Err(); return nil },
	)
	tx.AddOperation("b", func(context.Context) error { cancel(); return context.Canceled })

	require.Error(t, tx.Execute(ctx))
	assert.NoError(t, undoErr)
}
