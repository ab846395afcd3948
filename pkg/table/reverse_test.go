package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/galois"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
)

// quickWidth is the widest register walked in -short mode.
const quickWidth = 20

func TestBuildReverseRoundTrip(t *testing.T) {
	for width := uint(lfsr.MinWidth); width <= DefaultMaxReverseWidth; width++ {
		if width > quickWidth && testing.Short() {
			break
		}
		cfg := galois.MustWidth(width)
		t.Run(cfg.Name, func(t *testing.T) {
			rev, err := BuildReverse(cfg, nil)
			require.NoError(t, err)
			require.Len(t, rev.Positions, 1<<width)

			_, ok := rev.Position(0)
			assert.False(t, ok, "lock-up state has a position")
			assert.Equal(t, Unvisited, rev.Positions[0])

			// Every position appears exactly once and every state the walk
			// visits maps back to where it was visited.
			seen := make([]bool, cfg.SequenceLength)
			state := lfsr.StartState
			for pos := uint32(0); pos < cfg.SequenceLength; pos++ {
				got, ok := rev.Position(state)
				if !ok || got != pos {
					t.Fatalf("Position(%#x) = %d, %v, want %d", state, got, ok, pos)
				}
				if seen[got] {
					t.Fatalf("position %d recorded twice", got)
				}
				seen[got] = true
				state = cfg.Up(state)
			}
			require.Equal(t, lfsr.StartState, state)
		})
	}
}

func TestBuildReverseRejectsShortCycle(t *testing.T) {
	cfg := lfsr.MustConfig("short4", 4, 15, 4, 2)

	_, err := BuildReverse(cfg, nil)
	require.ErrorIs(t, err, ErrNotMaximal)

	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, "short4", cycleErr.Register)
	assert.Equal(t, uint64(6), cycleErr.Step)
	assert.Equal(t, lfsr.StartState, cycleErr.State)
}

func TestBuildReverseRejectsWrongLength(t *testing.T) {
	// Maximal taps, but the declared length stops the walk one step early.
	cfg := lfsr.MustConfig("Galois4", 4, 14, 4, 3)

	_, err := BuildReverse(cfg, nil)
	require.ErrorIs(t, err, ErrNotMaximal)

	var cycleErr *CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, uint64(14), cycleErr.Step)
	assert.NotEqual(t, lfsr.StartState, cycleErr.State)
}

func TestBuildReverseTooLarge(t *testing.T) {
	_, err := BuildReverse(galois.MustWidth(DefaultMaxReverseWidth+1), nil)
	require.ErrorIs(t, err, ErrTableTooLarge)

	opts := DefaultOptions()
	opts.MaxReverseWidth = 8
	_, err = BuildReverse(galois.MustWidth(9), opts)
	require.ErrorIs(t, err, ErrTableTooLarge)

	_, err = BuildReverse(galois.MustWidth(8), opts)
	require.NoError(t, err)
}

func TestVerifyCycle(t *testing.T) {
	for width := uint(lfsr.MinWidth); width <= lfsr.MaxWidth; width++ {
		if width > 24 && testing.Short() {
			break
		}
		cfg := galois.MustWidth(width)
		require.NoError(t, VerifyCycle(cfg, nil), "width %d", width)
	}
}

func TestVerifyCycleRejects(t *testing.T) {
	cases := map[string]lfsr.Config{
		"short cycle":  lfsr.MustConfig("short4", 4, 15, 4, 2),
		"short cycle8": lfsr.MustConfig("short8", 8, 255, 8, 7),
		"length low":   lfsr.MustConfig("Galois4", 4, 14, 4, 3),
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			err := VerifyCycle(cfg, nil)
			require.ErrorIs(t, err, ErrNotMaximal)
		})
	}

	// Taps are judged against the declared length, not against 2^W-1.
	err := VerifyCycle(lfsr.MustConfig("short8", 8, 63, 8, 7), nil)
	require.NoError(t, err)
	err = VerifyCycle(lfsr.MustConfig("short8", 8, 64, 8, 7), nil)
	require.ErrorIs(t, err, ErrNotMaximal)
}

func TestVerifyCycleReportsProgress(t *testing.T) {
	var last, total uint64
	opts := DefaultOptions()
	opts.ProgressEvery = 1000
	opts.Progress = func(done, all uint64) { last, total = done, all }

	require.NoError(t, VerifyCycle(galois.MustWidth(16), opts))
	assert.Equal(t, uint64(65535), total)
	assert.Equal(t, uint64(65535), last)
}

func TestOptionsValidate(t *testing.T) {
	opts := &Options{}
	require.NoError(t, opts.Validate())
	assert.NotNil(t, opts.Log)
	assert.Equal(t, uint64(DefaultProgressEvery), opts.ProgressEvery)
	assert.Equal(t, uint(DefaultMaxReverseWidth), opts.MaxReverseWidth)

	opts.MaxReverseWidth = 33
	require.Error(t, opts.Validate())
}
