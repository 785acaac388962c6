package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// TransferUI renders a single file-count progress bar for one folder
// transfer call. It implements Sink.
//
// In a terminal it draws an mpb bar on stderr; otherwise it stays
// silent and only tracks counts.
type TransferUI struct {
	progress   *mpb.Progress
	bar        *mpb.Bar
	isTerminal bool
	total      int
}

// NewTransferUI creates a progress bar for total file operations.
// verb labels the bar ("Copying", "Moving", "Deleting").
func NewTransferUI(verb string, total int) *TransferUI {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))

	var p *mpb.Progress
	if isTerminal {
		enableWindowsANSI(os.Stderr)

		p = mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(300*time.Millisecond),
			mpb.WithWidth(60),
		)
	} else {
		p = mpb.New(mpb.WithOutput(io.Discard))
	}

	bar := p.New(int64(total),
		mpb.BarStyle().
			Lbound("[").
			Filler("█").
			Tip("█").
			Padding("░").
			Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(verb+" ", decor.WC{C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d files"),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
		),
	)

	return &TransferUI{
		progress:   p,
		bar:        bar,
		isTerminal: isTerminal,
		total:      total,
	}
}

// Report implements Sink. completed is monotonic across units, so
// SetCurrent is safe regardless of which unit reports last.
func (u *TransferUI) Report(completed, total int) {
	u.bar.SetCurrent(int64(completed))
}

// LazyTransferUI defers bar creation until the first report, when the
// total file count is known. Safe for concurrent reports.
type LazyTransferUI struct {
	Verb string

	once sync.Once
	ui   *TransferUI
}

// Report implements Sink, creating the bar on first call.
func (l *LazyTransferUI) Report(completed, total int) {
	l.once.Do(func() {
		l.ui = NewTransferUI(l.Verb, total)
	})
	l.ui.Report(completed, total)
}

// Wait blocks until the bar finishes. A no-op when nothing was ever
// reported.
func (l *LazyTransferUI) Wait() {
	if l.ui != nil {
		l.ui.Wait()
	}
}

// Writer returns a writer safe to use alongside the bar.
func (l *LazyTransferUI) Writer() io.Writer {
	if l.ui != nil {
		return l.ui.Writer()
	}
	return os.Stderr
}

// Wait blocks until the bar has rendered its final state.
func (u *TransferUI) Wait() {
	if u.total == 0 {
		// mpb never completes a zero-length bar on its own
		u.bar.SetTotal(0, true)
	}
	u.progress.Wait()
}

// IsTerminal reports whether the bar is actually drawn.
func (u *TransferUI) IsTerminal() bool { return u.isTerminal }

// Writer returns a writer that outputs safely above the bar.
func (u *TransferUI) Writer() io.Writer {
	if u.isTerminal {
		return u.progress
	}
	return os.Stderr
}
