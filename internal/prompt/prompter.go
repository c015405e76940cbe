// Package prompt collects operator input and renders status lines. All
// reads go through one scanner over a caller-supplied reader so tests can
// script an entire session.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// termReadPassword is a seam for tests.
var termReadPassword = term.ReadPassword

// termIsTerminal is a seam for tests.
var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}

// Prompter reads operator answers from In and writes questions and status
// lines to Out.
type Prompter struct {
	in      io.Reader
	out     io.Writer
	scanner *bufio.Scanner
}

// New creates a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:      in,
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// Out exposes the output writer for callers that render their own blocks.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// IsTerminal reports whether the input stream is an interactive terminal.
func (p *Prompter) IsTerminal() bool {
	if file, ok := p.in.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

// Ask requests a value, showing and applying def when the operator enters
// an empty line.
func (p *Prompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s %s: ", questionStyle.Render(label), defaultStyle.Render("["+def+"]"))
	} else {
		fmt.Fprintf(p.out, "%s: ", questionStyle.Render(label))
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskSecret requests a value without echoing it when the input is a
// terminal; otherwise it falls back to a plain line read so piped sessions
// still work.
func (p *Prompter) AskSecret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", questionStyle.Render(label))

	if file, ok := p.in.(*os.File); ok && termIsTerminal(int(file.Fd())) {
		raw, err := termReadPassword(int(file.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question, applying def on empty input.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s: ", questionStyle.Render(label), defaultStyle.Render(hint))

	line, err := p.readLine()
	if err != nil {
		return false, err
	}

	answer := strings.TrimSpace(strings.ToLower(line))
	if answer == "" {
		return def, nil
	}
	return answer == "y" || answer == "yes", nil
}

// Choose asks the operator to pick one of the lettered options, e.g.
// "[r]etry / [s]kip / [e]xit". It returns the matched option key, or the
// raw lowercased input when nothing matched so the caller decides what an
// unrecognized answer means.
func (p *Prompter) Choose(label string, options []string) (string, error) {
	parts := make([]string, len(options))
	for i, opt := range options {
		parts[i] = "[" + opt[:1] + "]" + opt[1:]
	}
	fmt.Fprintf(p.out, "%s %s: ", questionStyle.Render(label), defaultStyle.Render(strings.Join(parts, " / ")))

	line, err := p.readLine()
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(strings.ToLower(line))
	for _, opt := range options {
		if answer == opt || answer == opt[:1] {
			return opt, nil
		}
	}
	return answer, nil
}

// Banner prints the tool banner.
func (p *Prompter) Banner(text string) {
	fmt.Fprintln(p.out, bannerStyle.Render(text))
}

// Success prints a green check status line.
func (p *Prompter) Success(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", successStyle.Render("✓"), msg)
}

// Warn prints a yellow warning status line.
func (p *Prompter) Warn(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", warnStyle.Render("!"), msg)
}

// Fail prints a red failure status line naming the failed step and the
// underlying error text.
func (p *Prompter) Fail(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", failureStyle.Render("✗"), msg)
}

// Info prints a muted informational line.
func (p *Prompter) Info(msg string) {
	fmt.Fprintf(p.out, "%s\n", infoStyle.Render(msg))
}

func (p *Prompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}
