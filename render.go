package parsec

import (
	"fmt"
	"strings"
)

// RenderError formats e in the exact multi-line layout from spec.md §6/§8
// scenario 5:
//
//	"<name>" (line L, column C):
//	unexpected <payload>
//	expecting <x>, <y> or <z>
//	<generic line 1>
//	<generic line 2>
//
// <name> is omitted (together with its surrounding quotes) when empty, and
// each subsection is omitted when it has no messages. A SystemUnexpected or
// Unexpected payload of "" renders as "end of input".
func RenderError(e ParseError) string {
	var b strings.Builder

	if e.Pos.Name != "" {
		fmt.Fprintf(&b, "%q ", e.Pos.Name)
	}
	fmt.Fprintf(&b, "(line %d, column %d):", e.Pos.Line, e.Pos.Column)

	if unexpected, ok := firstUnexpected(e.Messages); ok {
		if unexpected == "" {
			unexpected = "end of input"
		}
		fmt.Fprintf(&b, "\nunexpected %s", unexpected)
	}

	if expected := expectedMessages(e.Messages); len(expected) > 0 {
		fmt.Fprintf(&b, "\nexpecting %s", joinExpected(expected))
	}

	for _, m := range e.Messages {
		if m.Kind == Generic {
			fmt.Fprintf(&b, "\n%s", m.Text)
		}
	}

	return b.String()
}

func firstUnexpected(msgs []Message) (string, bool) {
	for _, m := range msgs {
		if m.Kind == SystemUnexpected || m.Kind == Unexpected {
			return m.Text, true
		}
	}
	return "", false
}

func expectedMessages(msgs []Message) []string {
	var out []string
	for _, m := range msgs {
		if m.Kind == Expected {
			out = append(out, m.Text)
		}
	}
	return out
}

// joinExpected joins labels with commas and a final " or ", e.g.
// "a, b or c".
func joinExpected(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + " or " + labels[len(labels)-1]
	}
}
