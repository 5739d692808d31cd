package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers for interactive commands from the command's input.
type prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, reader: bufio.NewReader(in), out: out}
}

// line asks for a value, returning def when the answer is empty.
//
//nolint:errcheck // CLI helper, error ignored for UX
func (p *prompter) line(label, def string) string {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	input, _ := p.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return def
	}
	return input
}

// password asks for a secret without echo when reading from a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func (p *prompter) password(label string) string {
	fmt.Fprintf(p.out, "%s: ", label)
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err == nil {
			return string(secret)
		}
	}
	input, _ := p.reader.ReadString('\n')
	return strings.TrimRight(input, "\r\n")
}

// next reads one turn of a conversation. ok is false once input has ended.
//
//nolint:errcheck // CLI helper, error ignored for UX
func (p *prompter) next(label string) (text string, ok bool) {
	fmt.Fprintf(p.out, "%s: ", label)
	input, err := p.reader.ReadString('\n')
	if err != nil && input == "" {
		return "", false
	}
	return strings.TrimSpace(input), true
}
