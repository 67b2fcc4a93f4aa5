// Package prompt fills in command arguments the user left out by asking on
// the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when a required argument is missing and
// there is no terminal to ask on.
var ErrNotInteractive = errors.New("missing argument and stdin is not a terminal")

// Args are the values a packaging run needs from the user.
type Args struct {
	Input  string
	Output string
	Title  string
}

// Prompter asks for missing values on in, writing questions to out.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// New returns a Prompter. When interactive is false it never reads from in.
func New(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// Stdio returns a Prompter on the process's stdin and stdout that only
// asks when stdin is a terminal.
func Stdio() *Prompter {
	return New(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

// Resolve returns args with every empty field filled in. Input and output
// are asked for in that order; a missing title is asked for too, and falls
// back to the input's base name when no answer is available.
func (p *Prompter) Resolve(args Args) (Args, error) {
	var err error
	if args.Input == "" {
		if args.Input, err = p.required("Love file or directory: ", "input"); err != nil {
			return Args{}, err
		}
	}
	if args.Output == "" {
		if args.Output, err = p.required("Output directory: ", "output"); err != nil {
			return Args{}, err
		}
	}
	if args.Title == "" {
		if p.interactive {
			if args.Title, err = p.ask("Game name: "); err != nil {
				return Args{}, err
			}
		}
		if args.Title == "" {
			args.Title = DefaultTitle(args.Input)
		}
	}
	return args, nil
}

func (p *Prompter) required(question, name string) (string, error) {
	if !p.interactive {
		return "", fmt.Errorf("%s: %w", name, ErrNotInteractive)
	}
	answer, err := p.ask(question)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return answer, nil
}

// ask writes question and reads one trimmed line. EOF yields whatever was
// read before it, possibly nothing.
func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// DefaultTitle derives a game title from the input path: its base name
// without a .love extension.
func DefaultTitle(input string) string {
	base := filepath.Base(filepath.Clean(input))
	if base == "." || base == string(filepath.Separator) {
		return "LÖVE game"
	}
	return strings.TrimSuffix(base, ".love")
}
