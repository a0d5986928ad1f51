package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers line by line. Questions are only printed when the
// input is a terminal, so piped answers produce clean output.
type prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &prompter{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// ask prints question and returns the trimmed answer. End of input yields an
// empty answer.
func (p *prompter) ask(question string) (string, error) {
	if p.interactive {
		fmt.Fprint(p.out, question)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
