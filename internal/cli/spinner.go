package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinFrames = []rune("⣾⣽⣻⢿⡿⣟⣯⣷")

const spinInterval = 100 * time.Millisecond

// spin animates msg on w until stop is called or ctx ends. stop clears the
// line and returns once nothing more will be written; it may be called
// repeatedly.
func spin(ctx context.Context, w io.Writer, msg string) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	exited := make(chan struct{})
	blank := "\r" + strings.Repeat(" ", utf8.RuneCountInString(msg)+2) + "\r"

	go func() {
		defer close(exited)
		tick := time.NewTicker(spinInterval)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				_, _ = io.WriteString(w, blank)
				return
			case <-tick.C:
				frame := string(spinFrames[i%len(spinFrames)])
				fmt.Fprintf(w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(msg))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-exited
		})
	}
}
