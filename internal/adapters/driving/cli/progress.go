package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/errcorpus/internal/core/services"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// progressReporter rewrites one status line as slices finish. It prints
// nothing unless out is a terminal.
func progressReporter(out io.Writer, total int) services.SliceReporter {
	if !isTerminal(out) {
		return nil
	}

	var (
		mu      sync.Mutex
		done    int
		failed  int
		records int
	)
	return func(_ string, result *driving.SliceResult, err error) {
		mu.Lock()
		defer mu.Unlock()

		done++
		if err != nil {
			failed++
		} else if result != nil {
			records += result.Diagnostics
		}
		fmt.Fprintf(out, "\rCollected %d/%d slices (%d diagnostics, %d failed)", done, total, records, failed)
		if done == total {
			fmt.Fprintln(out)
		}
	}
}
