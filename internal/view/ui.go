// Package view renders the marketplace pages into a terminal and wires
// user input back into gateway calls. Each page controller follows the
// same shape: refresh the navbar, gate on the session state, load data,
// then handle interactions until the user navigates away.
package view

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

// AlertKind mirrors the severity classes of the alert banner.
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertWarning AlertKind = "warning"
	AlertDanger  AlertKind = "danger"
)

// UI owns the terminal: prompts are read from in, pages are rendered
// to out. All DOM-equivalent mutation happens here and only here.
type UI struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewUI(in io.Reader, out io.Writer) *UI {
	return &UI{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Say renders one line of page content.
func (u *UI) Say(format string, args ...any) {
	fmt.Fprintf(u.out, format+"\n", args...)
}

// Alert renders a transient inline message. Alerts never abort the
// page; they are a rendering concern only.
func (u *UI) Alert(kind AlertKind, message string) {
	fmt.Fprintf(u.out, "[%s] %s\n", kind, message)
}

// Ask prompts for a single field value and returns the trimmed line.
// End of input reads as an empty value.
func (u *UI) Ask(label string) string {
	fmt.Fprintf(u.out, "%s: ", label)
	if !u.in.Scan() {
		return ""
	}
	return strings.TrimSpace(u.in.Text())
}

// Command prompts for the next page command.
func (u *UI) Command(page string) string {
	fmt.Fprintf(u.out, "%s> ", page)
	if !u.in.Scan() {
		return "quit"
	}
	return strings.TrimSpace(strings.ToLower(u.in.Text()))
}

// Confirm asks a yes/no question and only returns true on an explicit
// yes. Destructive calls are gated on this.
func (u *UI) Confirm(question string) bool {
	fmt.Fprintf(u.out, "%s [y/N]: ", question)
	if !u.in.Scan() {
		return false
	}
	answer := strings.TrimSpace(strings.ToLower(u.in.Text()))
	return answer == "y" || answer == "yes"
}

// sequencer issues monotonically increasing load tickets. A completed
// load renders only while its ticket is still the latest one, so a
// slow response can never overwrite the result of a newer reload.
type sequencer struct {
	n atomic.Uint64
}

func (s *sequencer) next() uint64 {
	return s.n.Add(1)
}

func (s *sequencer) isCurrent(ticket uint64) bool {
	return s.n.Load() == ticket
}
