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

// readPassword reads from the terminal without echo; tests replace it.
var readPassword = term.ReadPassword

const (
	inputMarker    = "> "
	multilineHint  = "(press Enter on an empty line to finish)"
	passwordPrompt = "Enter password: "
)

// readLine returns the next line without its line ending. A last line that
// is not terminated by a newline is still returned; io.EOF is reported only
// when nothing was left to read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GetSimpleText asks one question and returns the trimmed answer. The
// question goes on its own line, followed by the "> " marker.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n%s", prompt, inputMarker); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTextWithDefault edits an existing value: the current value is shown in
// brackets, Enter keeps it and a single "-" clears it.
func GetTextWithDefault(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	v, err := GetSimpleText(reader, prompt, w)
	switch {
	case err != nil:
		return "", err
	case v == "":
		return current, nil
	case v == "-":
		return "", nil
	}
	return v, nil
}

// GetPassword reads a password from stdin with echo off. Callers wipe the
// returned slice once they are done with it.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := io.WriteString(w, passwordPrompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	// The terminal swallowed the user's Enter.
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}

// GetMultiline collects lines until an empty one or the end of input, and
// returns them joined with "\n" and trimmed. Used for the bio.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n%s\n", prompt, multilineHint); err != nil {
		return "", err
	}

	var b strings.Builder
	for {
		line, err := readLine(reader)
		if err != nil || line == "" {
			break
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return strings.TrimSpace(b.String()), nil
}

func wipe(b []byte) {
	clear(b)
}
