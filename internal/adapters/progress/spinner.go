package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/domain/config"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// SpinnerSink reports progress on the terminal. Interactive sessions get a
// spinner while the use case waits on the chain; otherwise each step is
// printed as a plain line.
type SpinnerSink struct {
	out         io.Writer
	interactive bool
	spinner     *spinner.Spinner
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	return &SpinnerSink{
		out:         out,
		interactive: interactive,
	}
}

// ProvideProgressSink picks the sink for the configured output mode. Progress
// goes to stderr; machine output gets none at all.
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.Output != config.OutputTable {
		return NewNopSink()
	}
	return NewSpinnerSink(os.Stderr, !cfg.NonInteractive)
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case usecase.StageModuleDone:
		s.stopSpinner()
		s.printModuleDone(event)
		return
	case usecase.StageCompleted:
		s.stopSpinner()
		return
	}

	message := event.Message
	if event.Total > 0 && event.Current > 0 {
		message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, message)
	}
	if message == "" {
		return
	}

	if !s.interactive {
		fmt.Fprintln(s.out, message)
		return
	}

	// Handle spinner states
	if event.Spinner {
		if s.spinner == nil {
			s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.spinner.Writer = s.out
			s.spinner.HideCursor = false
			_ = s.spinner.Color("cyan", "bold")
		}
		s.spinner.Suffix = " " + message
		if !s.spinner.Active() {
			s.spinner.Start()
		}
	} else {
		s.stopSpinner()
		fmt.Fprintln(s.out, message)
	}
}

func (s *SpinnerSink) printModuleDone(event usecase.ProgressEvent) {
	result, ok := event.Metadata.(*domain.UpgradeResult)
	if !ok {
		return
	}

	prefix := ""
	if event.Total > 0 {
		prefix = fmt.Sprintf("[%d/%d] ", event.Current, event.Total)
	}

	switch result.Outcome {
	case domain.OutcomeSuccess:
		color.New(color.FgGreen).Fprintf(s.out, "✓ %s%s upgraded to %s (%s)\n",
			prefix, result.Module, result.Implementation.Hex(), result.Duration.Round(time.Millisecond))
	case domain.OutcomeFailed:
		color.New(color.FgRed).Fprintf(s.out, "✗ %s%s failed: %s\n", prefix, result.Module, result.ErrorKind())
	}
}

// Info prints an info message
func (s *SpinnerSink) Info(message string) {
	wasActive := s.stopSpinner()
	color.New(color.FgCyan).Fprintln(s.out, message)
	if wasActive {
		s.spinner.Start()
	}
}

// Error prints an error message
func (s *SpinnerSink) Error(message string) {
	wasActive := s.stopSpinner()
	color.New(color.FgRed).Fprintln(s.out, message)
	if wasActive {
		s.spinner.Start()
	}
}

// stopSpinner stops an active spinner and reports whether it was running
func (s *SpinnerSink) stopSpinner() bool {
	if s.spinner != nil && s.spinner.Active() {
		s.spinner.Stop()
		return true
	}
	return false
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
