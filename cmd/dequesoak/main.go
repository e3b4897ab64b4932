// Command dequesoak runs long random operation sequences against a deque and
// a reference slice, checking after every step that both agree. It prints the
// allocator stats and an xxh3 digest of the final contents so two runs with
// the same seed can be compared.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fission-codes/go-bucket-deque/errors"
	"github.com/fission-codes/go-bucket-deque/stats"
	golog "github.com/ipfs/go-log/v2"
	flag "github.com/spf13/pflag"
)

var log = golog.Logger("dequesoak")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, errOut io.Writer) (Config, error) {
	config := DefaultConfig()
	flagSet := flag.NewFlagSet("dequesoak", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	flagSet.Int64Var(&config.Seed, "seed", config.Seed, "Seed for the operation sequence")
	flagSet.IntVar(&config.Ops, "ops", config.Ops, "Number of operations to run")
	flagSet.BoolVar(&config.Arena, "arena", config.Arena, "Allocate buckets from a recycling arena instead of the heap")
	flagSet.IntVar(&config.MaxBlocks, "max-blocks", config.MaxBlocks, "Arena bucket limit; pushes beyond it must fail cleanly (0 = unlimited)")
	flagSet.BoolVar(&config.BucketCheck, "bucket-check", config.BucketCheck, "Validate invariants and full contents after every operation")
	flagSet.BoolVar(&config.Diagram, "diagram", config.Diagram, "Log a mermaid diagram of storage state transitions")
	flagSet.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level (debug, info, warn, error)")

	if err := flagSet.Parse(args); err != nil {
		return config, err
	}
	if flagSet.NArg() > 0 {
		return config, fmt.Errorf("unexpected arguments: %v", flagSet.Args())
	}
	if config.Ops < 0 {
		return config, fmt.Errorf("--ops: %w: %d", errors.ErrInvalidCount, config.Ops)
	}
	if config.MaxBlocks > 0 && !config.Arena {
		return config, fmt.Errorf("--max-blocks requires --arena")
	}
	return config, nil
}

func run(ctx context.Context, args []string, out io.Writer, errOut io.Writer) int {
	config, err := parseFlags(args, errOut)
	if stderrors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}

	for _, name := range []string{"dequesoak", "go-bucket-deque"} {
		if err := golog.SetLogLevel(name, config.LogLevel); err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return 2
		}
	}

	if err := stats.InitDefault(); err != nil && !stderrors.Is(err, errors.ErrStatsAlreadyInitialized) {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}
	before := stats.GLOBAL_REPORTING.Snapshot()

	log.Infow("soak", "seed", config.Seed, "ops", config.Ops, "arena", config.Arena, "maxBlocks", config.MaxBlocks)
	result, err := Soak(ctx, config, stats.GLOBAL_STATS.WithContext("soak"))

	snapshot := before.Diff(stats.GLOBAL_REPORTING.Snapshot())
	snapshot.Filter("soak.").Write(&log.SugaredLogger)

	if err != nil {
		log.Errorw("soak failed", "ops", result.Ops, "error", err)
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}
	fmt.Fprintf(out, "ops=%d len=%d buckets=%d rejected=%d digest=%016x\n",
		result.Ops, result.Len, result.Buckets, result.Rejected, result.Digest)
	return 0
}
