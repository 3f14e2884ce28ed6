package service

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// BFSProgress reports ProjectParser's BFS queue progress to a terminal. It
// is a cosmetic convenience: nothing in the resolver depends on it, and a
// nil *BFSProgress is always safe to call methods on.
type BFSProgress struct {
	bar *progressbar.ProgressBar
}

// NewBFSProgress creates a progress reporter writing to writer. It draws an
// indeterminate bar only when writer is a terminal; otherwise every method
// is a no-op.
func NewBFSProgress(writer io.Writer) *BFSProgress {
	f, ok := writer.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return &BFSProgress{}
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("resolving imports"),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(writer) }),
	)
	return &BFSProgress{bar: bar}
}

// Advance records that one more module finished its parse step.
func (p *BFSProgress) Advance() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
}

// Finish closes out the bar.
func (p *BFSProgress) Finish() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
