package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

// LineReader shows a prompt and reads one line of operator input. It returns
// io.EOF once the input is closed.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// BufioReader reads lines from any stream, used when stdin is not a terminal
type BufioReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewBufioReader creates a reader that writes prompts to out and reads from in
func NewBufioReader(in io.Reader, out io.Writer) *BufioReader {
	return &BufioReader{in: bufio.NewReader(in), out: out}
}

// ReadLine writes the prompt and reads up to the next newline
func (r *BufioReader) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(r.out, prompt); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		// a final line without newline still counts
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// SurveyReader reads lines through a survey input prompt
type SurveyReader struct {
	opts []survey.AskOpt
}

// NewSurveyReader creates a reader for interactive terminals
func NewSurveyReader(opts ...survey.AskOpt) *SurveyReader {
	return &SurveyReader{opts: opts}
}

// ReadLine asks for one line; Ctrl+C and Ctrl+D end the input
func (r *SurveyReader) ReadLine(prompt string) (string, error) {
	input := &survey.Input{
		Message: strings.TrimRight(prompt, "\n"),
	}

	var answer string
	if err := survey.AskOne(input, &answer, r.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", err
	}
	return answer, nil
}

// NewReader picks the survey reader when stdin is a terminal and falls back
// to plain line reading otherwise
func NewReader(in *os.File, out io.Writer) LineReader {
	if term.IsTerminal(int(in.Fd())) {
		return NewSurveyReader(survey.WithStdio(in, os.Stdout, os.Stderr))
	}
	return NewBufioReader(in, out)
}
