package firestore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchWriter_SplitsIntoChunks(t *testing.T) {
	t.Parallel()

	var sizes []int
	w := &batchWriter{
		limit: maxBatchWrites,
		commit: func(_ context.Context, ops []writeOp) error {
			sizes = append(sizes, len(ops))
			return nil
		},
	}
	for i := 0; i < 1201; i++ {
		w.Set(nil, map[string]any{"i": i})
	}
	require.Equal(t, 1201, w.Len())

	commits, err := w.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, commits)
	assert.Equal(t, []int{500, 500, 201}, sizes)
	assert.Zero(t, w.Len())
}

func TestBatchWriter_StopsOnFailedChunk(t *testing.T) {
	t.Parallel()

	calls := 0
	w := &batchWriter{
		limit: 2,
		commit: func(_ context.Context, _ []writeOp) error {
			calls++
			if calls == 2 {
				return errors.New("deadline exceeded")
			}
			return nil
		},
	}
	for i := 0; i < 5; i++ {
		w.Delete(nil)
	}

	commits, err := w.Commit(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, commits)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "commit batch 2 (writes 2-3)")
}

func TestBatchWriter_EmptyCommitIsNoop(t *testing.T) {
	t.Parallel()

	w := &batchWriter{commit: func(context.Context, []writeOp) error {
		t.Fatal("commit must not be called")
		return nil
	}}
	commits, err := w.Commit(context.Background())
	require.NoError(t, err)
	assert.Zero(t, commits)
}

func TestBatchWriter_CommitAtomicRefusesOversizedBatch(t *testing.T) {
	t.Parallel()

	calls := 0
	w := &batchWriter{
		limit: 2,
		commit: func(_ context.Context, _ []writeOp) error {
			calls++
			return nil
		},
	}
	for i := 0; i < 3; i++ {
		w.Set(nil, map[string]any{"i": i})
	}

	err := w.CommitAtomic(context.Background())
	require.ErrorIs(t, err, errBatchTooLarge)
	assert.Contains(t, err.Error(), "3 writes, limit 2")
	assert.Zero(t, calls)
	assert.Equal(t, 3, w.Len())

	w.ops = w.ops[:2]
	require.NoError(t, w.CommitAtomic(context.Background()))
	assert.Equal(t, 1, calls)
	assert.Zero(t, w.Len())
}
