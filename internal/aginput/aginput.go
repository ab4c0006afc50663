// Package aginput reads grammar production lines from stdin: a
// readline-backed reader when attached to a terminal (for history and line
// editing), and a direct
// bufio-backed reader otherwise (piped input, redirected files).
package aginput

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one grammar line at a time, returning io.EOF (with an
// empty string) once input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// DirectLineReader reads lines from any io.Reader without escape-sequence
// handling; use it for piped or redirected input.
type DirectLineReader struct {
	r *bufio.Reader
}

// NewDirectReader wraps r for line-at-a-time reading.
func NewDirectReader(r io.Reader) *DirectLineReader {
	return &DirectLineReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line, trimmed of its trailing newline only (a
// grammar line's leading/trailing spaces are the caller's concern). A
// blank line is returned as "", nil, not skipped — parsing a grammar
// treats a blank line as the end of input.
func (d *DirectLineReader) ReadLine() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close is a no-op; DirectLineReader owns no resources beyond the buffer.
func (d *DirectLineReader) Close() error { return nil }

// InteractiveLineReader reads lines from stdin via GNU-readline-style
// editing and history, for use when stdin is an interactive terminal.
type InteractiveLineReader struct {
	rl *readline.Instance
}

// NewInteractiveReader initializes a readline session with prompt.
func NewInteractiveReader(prompt string) (*InteractiveLineReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &InteractiveLineReader{rl: rl}, nil
}

// ReadLine returns the next line the user entered.
func (i *InteractiveLineReader) ReadLine() (string, error) {
	line, err := i.rl.Readline()
	if err != nil {
		return "", err
	}
	return line, nil
}

// Close tears down the underlying readline instance.
func (i *InteractiveLineReader) Close() error {
	return i.rl.Close()
}
