package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Serve reads lines from in, submits each one and writes the answers to
// out until in is exhausted or ctx is done. "exit" and "quit" end the
// session.
//
// When in is a *bufio.Reader it is read directly, so callers can share it
// with the dashboard to prompt for more input.
func (t *Terminal) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	for _, line := range t.output {
		fmt.Fprintln(out, line)
	}

	r, ok := in.(*bufio.Reader)
	if !ok {
		r = bufio.NewReader(in)
	}

	for {
		fmt.Fprint(out, t.Prompt()+" ")
		line, err := ReadLine(r)
		if err != nil {
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if line == "exit" || line == "quit" {
			return nil
		}
		t.Type(line)
		for _, l := range t.Submit(ctx) {
			fmt.Fprintln(out, l)
		}
	}
}

// ReadLine reads one line without its line ending. A final line without a
// newline is returned before io.EOF.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
