package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/efreitasn/miniledger/internal/engine"
	"github.com/efreitasn/miniledger/internal/feed"
	"github.com/efreitasn/miniledger/internal/report"
)

var (
	processOutput string
	processWindow uint64
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Process a CSV transaction file and print final account summaries",
	Long: `Reads transaction records from the given CSV file (or stdin when the
argument is "-" or omitted), runs them through the ledger engine, and
writes one summary row per client to stdout. Rejected records are logged
to stderr and never abort the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "write summaries to a file instead of stdout")
	processCmd.Flags().Uint64VarP(&processWindow, "window", "w", 0, "dispute window size (overrides config)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	in := os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	window := cfg.WindowSize
	if processWindow > 0 {
		window = processWindow
	}

	reporter := report.NewLogReporter(logger)
	eng := engine.New(window, reporter, logger)

	// A fatal engine error (amount overflow) stops the stream but the
	// summaries accumulated so far are still written.
	fatal := run(eng, reporter, feed.NewReader(in))

	out := os.Stdout
	if processOutput != "" {
		f, err := os.Create(processOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := feed.NewWriter(out).WriteSnapshots(eng.Snapshots()); err != nil {
		return fmt.Errorf("write summaries: %w", err)
	}
	return fatal
}

// run feeds the reader's records into the engine until the input is
// exhausted or the engine reports a fatal error. Malformed rows are
// reported and skipped.
func run(eng *engine.Engine, reporter report.Reporter, r *feed.Reader) error {
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		var parseErr *feed.ParseError
		if errors.As(err, &parseErr) {
			reporter.Reject(report.NewNotice(0, "parse", 0, 0, parseErr.Error()))
			continue
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if _, err := eng.Process(rec); err != nil {
			logger.Error("processing stopped", "error", err.Error())
			return err
		}
	}
}
