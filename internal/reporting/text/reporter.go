package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, result *domain.RunResult) error {
	if result == nil {
		fmt.Fprintln(r.writer, "No run result to report.")
		return nil
	}

	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(r.writer, "Policy Run Report: %s\n", cyan(result.Policy))
	fmt.Fprintf(r.writer, "Resource kind: %s\n", result.Kind)
	fmt.Fprintf(r.writer, "Enumerated: %d  Matched: %d\n\n", result.Enumerated, result.Matched)

	if len(result.Actions) == 0 {
		fmt.Fprintln(r.writer, "No actions configured.")
		return nil
	}

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Action\tProcessed\tFailed")
	fmt.Fprintln(tw, "------\t---------\t------")
	for _, a := range result.Actions {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		failed := fmt.Sprintf("%d", len(a.Failures))
		if len(a.Failures) > 0 {
			failed = red(failed)
		} else {
			failed = green(failed)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", a.Action, a.Processed, failed)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, a := range result.Actions {
		for _, f := range a.Failures {
			fmt.Fprintf(r.writer, "%s %s: resource %s: %v\n", red("FAILED"), a.Action, f.ResourceID, f.Err)
		}
	}

	if n := result.FailureCount(); n > 0 {
		fmt.Fprintf(r.writer, "\nRun completed with %s per-resource failures.\n", red(fmt.Sprintf("%d", n)))
	} else {
		fmt.Fprintf(r.writer, "\nRun completed %s.\n", green("cleanly"))
	}
	return nil
}
