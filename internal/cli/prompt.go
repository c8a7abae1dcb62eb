package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers from stdin. Passwords are read without echo when
// stdin is a terminal and as plain lines otherwise, so scripts can pipe them.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the terminal file descriptor, or -1 when stdin is not a terminal.
	fd int
}

func newPrompter(in io.Reader, out io.Writer, fd int) *prompter {
	if fd >= 0 && !term.IsTerminal(fd) {
		fd = -1
	}
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// line prompts for a single line. EOF with no input is an error.
func (p *prompter) line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	s, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// password prompts for a secret.
func (p *prompter) password(label string) (string, error) {
	if p.fd < 0 {
		return p.line(label)
	}
	fmt.Fprintf(p.out, "%s: ", label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(b), nil
}

// confirm asks a yes/no question; anything but y/yes, including EOF, is no.
func (p *prompter) confirm(message string) bool {
	for {
		fmt.Fprintf(p.out, "%s [y/N]: ", message)
		line, err := p.in.ReadString('\n')
		response := strings.TrimSpace(strings.ToLower(line))
		switch response {
		case "y", "yes":
			return true
		case "n", "no", "":
			return false
		}
		if err != nil {
			return false
		}
		fmt.Fprintln(p.out, "Please enter 'y' or 'n'.")
	}
}

// secretLine reads one line from stdin without a prompt, for
// --password-stdin.
func (p *prompter) secretLine() (string, error) {
	s, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}
