package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/galois"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
)

func TestSampleCount(t *testing.T) {
	cases := []struct {
		min, max, step uint32
		want           int
	}{
		{10, 20, 5, 2},
		{10, 21, 5, 3},
		{0, 1, 1, 1},
		{5, 5, 3, 0},
		{0, 100, 1000, 1},
		{0, 0xFFFFFFFF, 0x80000000, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SampleCount(tc.min, tc.max, tc.step), "[%d, %d) step %d", tc.min, tc.max, tc.step)
	}
}

func TestBuildSparse(t *testing.T) {
	cfg := galois.MustWidth(32)

	s, err := BuildSparse(cfg, 10, 20, 5, nil)
	require.NoError(t, err)
	require.Len(t, s.Samples, 2)

	assert.Equal(t, uint32(10), s.Samples[0].Position)
	assert.Equal(t, cfg.StateAt(10), s.Samples[0].State)
	assert.Equal(t, uint32(15), s.Samples[1].Position)
	assert.Equal(t, cfg.StateAt(15), s.Samples[1].State)
	assert.True(t, cfg.Equal(s.Register))
}

func TestBuildSparseMatchesCounter(t *testing.T) {
	cfg := galois.MustWidth(12)

	s, err := BuildSparse(cfg, 3, 4000, 97, nil)
	require.NoError(t, err)
	require.Len(t, s.Samples, SampleCount(3, 4000, 97))

	r := lfsr.Default(cfg)
	pos := uint32(0)
	for _, sample := range s.Samples {
		for pos < sample.Position {
			r.Inc()
			pos++
		}
		require.Equal(t, r.State(), sample.State, "state at position %d", pos)
	}
}

func TestBuildSparseWholeSequence(t *testing.T) {
	cfg := galois.MustWidth(4)

	s, err := BuildSparse(cfg, 0, cfg.SequenceLength, 1, nil)
	require.NoError(t, err)
	require.Len(t, s.Samples, int(cfg.SequenceLength))

	seen := make(map[uint32]bool)
	for _, sample := range s.Samples {
		assert.False(t, seen[sample.State], "state %#x sampled twice", sample.State)
		seen[sample.State] = true
	}
}

func TestBuildSparseEmptyRange(t *testing.T) {
	s, err := BuildSparse(galois.MustWidth(8), 7, 7, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, s.Samples)
}

func TestBuildSparseRejectsBadRange(t *testing.T) {
	cfg := galois.MustWidth(8)

	_, err := BuildSparse(cfg, 0, 10, 0, nil)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = BuildSparse(cfg, 11, 10, 1, nil)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = BuildSparse(cfg, 0, 256, 1, nil)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestBuildSparseRejectsShortCycle(t *testing.T) {
	// Taps {4, 2} return to state 1 after 6 steps.
	cfg := lfsr.MustConfig("short4", 4, 15, 4, 2)

	_, err := BuildSparse(cfg, 0, 12, 1, nil)
	require.ErrorIs(t, err, ErrNotMaximal)

	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, uint64(6), cycleErr.Step)

	// A window that ends before the cycle closes cannot tell.
	_, err = BuildSparse(cfg, 0, 6, 1, nil)
	require.NoError(t, err)
}

func TestBuildSparseIsDeterministic(t *testing.T) {
	cfg := galois.MustWidth(20)

	a, err := BuildSparse(cfg, 1000, 50000, 333, nil)
	require.NoError(t, err)
	b, err := BuildSparse(cfg, 1000, 50000, 333, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Samples, b.Samples)
}

func TestBuildSparseReportsProgress(t *testing.T) {
	var calls int
	var last, total uint64
	opts := DefaultOptions()
	opts.ProgressEvery = 10
	opts.Progress = func(done, all uint64) {
		calls++
		last, total = done, all
	}

	_, err := BuildSparse(galois.MustWidth(16), 0, 100, 25, opts)
	require.NoError(t, err)

	assert.Equal(t, uint64(75), total)
	assert.Equal(t, uint64(75), last)
	assert.Equal(t, 8, calls)
}
