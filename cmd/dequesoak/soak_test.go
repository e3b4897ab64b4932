package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fission-codes/go-bucket-deque/stats"
	"github.com/stretchr/testify/require"
)

func TestSoakHeap(t *testing.T) {
	root := stats.NewDefaultStatsAndReporting()
	config := DefaultConfig()
	config.Ops = 3000
	config.BucketCheck = true

	result, err := Soak(context.Background(), config, root.WithContext("soak"))
	require.NoError(t, err)
	require.Equal(t, 3000, result.Ops)
	require.Zero(t, result.Rejected)
	require.Greater(t, root.Count("soak.alloc.Allocate"), uint64(0))
	require.Equal(t, root.Count("soak.alloc.Construct.Ok"), root.Count("soak.alloc.Destroy"))
}

func TestSoakIsDeterministic(t *testing.T) {
	config := DefaultConfig()
	config.Ops = 2000
	config.Seed = 42

	first, err := Soak(context.Background(), config, stats.NewDefaultStatsAndReporting())
	require.NoError(t, err)
	second, err := Soak(context.Background(), config, stats.NewDefaultStatsAndReporting())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSoakArenaLimit(t *testing.T) {
	root := stats.NewDefaultStatsAndReporting()
	config := DefaultConfig()
	config.Ops = 3000
	config.Arena = true
	config.MaxBlocks = 2
	config.BucketCheck = true

	result, err := Soak(context.Background(), config, root.WithContext("soak"))
	require.NoError(t, err)
	require.Greater(t, result.Rejected, 0)
	require.Equal(t, uint64(result.Rejected), root.Count("soak.Rejected"))
	require.LessOrEqual(t, result.Buckets, 2)
}

func TestSoakDiagram(t *testing.T) {
	config := DefaultConfig()
	config.Ops = 500
	config.Diagram = true

	_, err := Soak(context.Background(), config, stats.NewDefaultStatsAndReporting())
	require.NoError(t, err)
}

func TestSoakCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := Soak(ctx, DefaultConfig(), stats.NewDefaultStatsAndReporting())
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, result.Ops)
}

func TestRun(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"--ops", "500", "--seed", "7", "--arena"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	require.True(t, strings.HasPrefix(out.String(), "ops=500 "), out.String())
	require.Contains(t, out.String(), "digest=")

	var again bytes.Buffer
	require.Equal(t, 0, run(context.Background(), []string{"--ops", "500", "--seed", "7"}, &again, &errOut))
	digest := func(s string) string { return s[strings.Index(s, "digest="):] }
	require.Equal(t, digest(out.String()), digest(again.String()))
}

func TestRunRejectsBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--ops", "-1"},
		{"--max-blocks", "3"},
		{"--no-such-flag"},
		{"extra"},
		{"--log-level", "loud"},
	} {
		var out, errOut bytes.Buffer
		require.Equal(t, 2, run(context.Background(), args, &out, &errOut), "args %v", args)
		require.NotEmpty(t, errOut.String())
	}

	var out, errOut bytes.Buffer
	require.Equal(t, 0, run(context.Background(), []string{"--help"}, &out, &errOut))
}
