// Package terminal provides prompts and line clearing for interactive commands.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when a prompt needs a terminal but stdin is piped.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm func(fd int) bool
	readPw func(fd int) ([]byte, error)
}

// NewPrompter returns a Prompter bound to the process stdin and stdout.
func NewPrompter() *Prompter {
	return &Prompter{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		fd:     int(os.Stdin.Fd()),
		isTerm: term.IsTerminal,
		readPw: term.ReadPassword,
	}
}

// NewPrompterFrom returns a Prompter over arbitrary streams. Password prompts
// read a plain line since r is not a terminal.
func NewPrompterFrom(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		in:     bufio.NewReader(r),
		out:    w,
		fd:     -1,
		isTerm: func(int) bool { return false },
	}
}

// Line prints label and returns the trimmed line typed by the user.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Password prints label and reads a secret without echo. When stdin is not a
// terminal the secret is read as a plain line, unless requireTTY is set.
func (p *Prompter) Password(label string, requireTTY bool) (string, error) {
	if !p.isTerm(p.fd) {
		if requireTTY {
			return "", ErrNotInteractive
		}
		line, err := p.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(p.out, label)
	b, err := p.readPw(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// ClearPreviousLines clears text from the terminal that was previously printed.
// It calculates how many lines were used by the provided text based on the current
// terminal width, then moves up and clears each line.
//
// Parameters:
//   - textLength: The total number of characters in the text to clear (prompt + user input)
func ClearPreviousLines(textLength int) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	termWidth := 80 // default fallback
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		termWidth = width
	}
	fmt.Print(clearSequence(linesUsed(textLength, termWidth)))
}

// linesUsed returns how many rows textLength characters occupy, plus the row
// the cursor moved to after Enter.
func linesUsed(textLength, width int) int {
	totalLines := int(math.Ceil(float64(textLength) / float64(width)))
	if totalLines < 1 {
		totalLines = 1
	}
	return totalLines + 1
}

func clearSequence(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		b.WriteString("\r\x1b[2K") // start of line, clear it
		if i < lines-1 {
			b.WriteString("\x1b[1A") // up one line
		}
	}
	return b.String()
}
