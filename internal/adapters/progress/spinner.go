package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// stageNames maps progress stages to the labels shown next to the spinner
var stageNames = map[string]string{
	"fees":    "Quoting fees",
	"deploy":  "Deploying",
	"poll":    "Bridging",
	"loading": "Loading",
}

// SpinnerProgressReporter implements progress reporting with a spinner
type SpinnerProgressReporter struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *spinner.Spinner
	stages  []stageInfo
}

type stageInfo struct {
	Stage     string
	StartTime time.Time
	EndTime   time.Time
	Message   string
	Current   int
	Total     int
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
// writing to stderr
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	return &SpinnerProgressReporter{out: out, spinner: s}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.stages); n == 0 || r.stages[n-1].Stage != event.Stage {
		if n > 0 {
			r.stages[n-1].EndTime = time.Now()
		}
		if _, shown := stageNames[event.Stage]; shown {
			r.stages = append(r.stages, stageInfo{Stage: event.Stage, StartTime: time.Now()})
		}
	}
	if n := len(r.stages); n > 0 && r.stages[n-1].Stage == event.Stage {
		r.stages[n-1].Message = event.Message
		r.stages[n-1].Current = event.Current
		r.stages[n-1].Total = event.Total
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.display()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.print(color.New(color.FgRed), message)
}

// Stop halts the spinner
func (r *SpinnerProgressReporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerProgressReporter) print(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	c.Fprintln(r.out, message)
	if wasActive {
		r.spinner.Start()
	}
}

// display renders "✓ Quoting fees (120ms) → ● Deploying (3s)"
func (r *SpinnerProgressReporter) display() string {
	var display string
	for i, stage := range r.stages {
		icon := "●"
		stageColor := color.New(color.FgYellow)
		var duration time.Duration
		if stage.EndTime.IsZero() {
			duration = time.Since(stage.StartTime).Round(time.Second)
		} else {
			icon = "✓"
			stageColor = color.New(color.FgGreen)
			duration = stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond)
		}

		label := stageNames[stage.Stage]
		if stage.Total > 0 {
			label = fmt.Sprintf("%s %d/%d", label, stage.Current, stage.Total)
		}
		if i > 0 {
			display += " → "
		}
		display += fmt.Sprintf("%s %s (%s)", icon, stageColor.Sprint(label), duration)
	}
	if n := len(r.stages); n > 0 && r.stages[n-1].Message != "" {
		display += " " + color.New(color.Faint).Sprint(r.stages[n-1].Message)
	}
	return display
}

var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
