// Package progress renders a stderr progress bar during project scans.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar for file processing. Tick is safe to call
// from concurrent workers.
type Tracker struct {
	bar *progressbar.ProgressBar
}

// New creates a tracker with the given label and total count.
func New(label string, total int) *Tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar}
}

// Tick advances the bar by one file.
func (t *Tracker) Tick() {
	t.bar.Add(1)
}

// Done clears the bar with no output.
func (t *Tracker) Done() {
	t.bar.Finish()
	t.bar.Clear()
}
