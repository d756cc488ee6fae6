// Package prompt asks the user questions on the terminal.
//
// When stdin is a terminal questions are read with readline (line editing, ^C to abort).
// Otherwise answers are read line by line from the input, and an exhausted input selects each
// question's default. This keeps piped and scripted invocations working.
//
// Example:
//
//	p := prompt.New(os.Stdin, os.Stdout)
//
//	ok, err := p.Confirm("Do you have production dbt artifacts saved locally?")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if ok {
//		path, _ := p.Ask("Prod artifacts location", "")
//		fmt.Println(path)
//	}
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks questions and reads answers.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	lines       *bufio.Reader
	interactive bool
}

// New creates a Prompter reading from in and writing questions to out. Readline is only used
// when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: in, out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.interactive = true
	} else {
		p.lines = bufio.NewReader(in)
	}

	return p
}

// Interactive reports whether the Prompter reads from a terminal.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Ask asks question and returns the trimmed answer, or def when the answer is empty.
func (p *Prompter) Ask(question, def string) (string, error) {
	label := question
	if def != "" {
		label += fmt.Sprintf(" [%s]", def)
	}

	answer, err := p.readLine(label + ": ")
	if err != nil {
		return "", err
	}

	if answer == "" {
		return def, nil
	}

	return answer, nil
}

// Confirm asks a yes/no question. The default is no.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.readLine(question + " [y/N]: ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Choose lists options and returns the one picked, by number or by name. An empty answer picks
// nothing and returns an empty string.
func (p *Prompter) Choose(question string, options []string) (string, error) {
	_, _ = fmt.Fprintln(p.out, question)
	for i, opt := range options {
		_, _ = fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}

	answer, err := p.readLine("Choice: ")
	if err != nil || answer == "" {
		return "", err
	}

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(options) {
			return "", errors.Errorf("invalid choice %d, expected 1-%d", n, len(options))
		}
		return options[n-1], nil
	}

	for _, opt := range options {
		if opt == answer {
			return opt, nil
		}
	}

	return "", errors.Errorf("invalid choice %q", answer)
}

func (p *Prompter) readLine(prompt string) (string, error) {
	if !p.interactive {
		_, _ = fmt.Fprint(p.out, prompt)

		line, err := p.lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "failed to read answer")
		}

		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(p.out)
		}

		return strings.TrimSpace(line), nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		Stdin:           io.NopCloser(p.in),
		Stdout:          p.out,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to initialize prompt")
	}
	defer func() { _ = rl.Close() }()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrAborted
	}
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read answer")
	}

	return strings.TrimSpace(line), nil
}
