// Package cli holds the interactive prompts: model choice and page names.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"webcopy/webcopy/services/llm"
	"webcopy/webcopy/utils/color"
)

// ErrNoInput is returned when input ends before an answer is read.
var ErrNoInput = errors.New("no input: reached end of input before an answer was given")

const (
	modelPrompt   = "Enter the number corresponding to the model you want to use: "
	pagesPrompt   = "Enter the names of the webpages you need copy for, separated by commas: "
	invalidChoice = "Invalid choice. Please enter a valid number."
	invalidNumber = "Invalid input. Please enter a valid number."
)

// Prompter reads answers line by line from in and writes prompts to out.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// maxLineSize bounds a single answer; page lists can run far past bufio's 64 KiB default.
const maxLineSize = 16 << 20

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Prompter{scanner: scanner, out: out}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, color.ColorPrompt(prompt))
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrNoInput
	}
	return p.scanner.Text(), nil
}

// ListModels prints every registry entry with its 1-based index.
func (p *Prompter) ListModels(reg *llm.Registry) {
	fmt.Fprintln(p.out, "Available models:")
	for _, e := range reg.Entries() {
		fmt.Fprintf(p.out, "%d. %s - %s\n", e.Index, color.ColorModel(e.ID), e.Description)
	}
}

// SelectModel lists the registry and asks until a valid index is entered.
func (p *Prompter) SelectModel(reg *llm.Registry) (llm.ModelDescriptor, error) {
	p.ListModels(reg)
	for {
		line, err := p.readLine(modelPrompt)
		if err != nil {
			return llm.ModelDescriptor{}, err
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(p.out, color.ColorError(invalidNumber))
			continue
		}
		model, ok := reg.At(choice)
		if !ok {
			fmt.Fprintln(p.out, color.ColorError(invalidChoice))
			continue
		}
		return model, nil
	}
}

// AskPageNames reads one line of comma-separated page names.
func (p *Prompter) AskPageNames() ([]string, error) {
	line, err := p.readLine(pagesPrompt)
	if err != nil {
		return nil, err
	}
	return ParsePageNames(line), nil
}

// ParsePageNames splits on commas and trims each name. Empty names are kept
// and duplicates are not removed.
func ParsePageNames(line string) []string {
	names := strings.Split(strings.TrimSpace(line), ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names
}
