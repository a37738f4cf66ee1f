package adapter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder is rendered for any absent optional field
const Placeholder = "N/A"

// TimestampLayout is used for Unix epoch fields
const TimestampLayout = "2006-01-02 15:04:05"

// View tells Format how to phrase one tool's results
type View[T any] struct {
	// Action completes "Error <action>: ...", e.g. "listing applications"
	Action string
	// Verb completes "Failed to <verb>: ...", e.g. "list applications"
	Verb string
	// Empty is returned verbatim for a zero-result success
	Empty string
	// Render formats a non-empty payload
	Render func(items []T) string
}

// Format turns an outcome into the text returned to the caller. It never fails.
func Format[T any](o Outcome[T], v View[T]) string {
	switch o.Kind {
	case KindSuccess:
		if len(o.Payload) == 0 || v.Render == nil {
			return v.Empty
		}
		return v.Render(o.Payload)
	case KindConfigurationFailure:
		return errorText(o.Err)
	case KindApplicationFailure:
		return fmt.Sprintf("Failed to %s: %s", v.Verb, applicationMessage(o.Err))
	default:
		return fmt.Sprintf("Error %s: %s", v.Action, errorText(o.Err))
	}
}

func applicationMessage(err error) string {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return errorText(err)
}

func errorText(err error) string {
	if err == nil {
		return "Unknown error"
	}
	return err.Error()
}

// Field is one labelled value of a record
type Field struct {
	Label string
	Value string
}

// Record is one block of a listing
type Record struct {
	Title string
	// Note is appended to the title in parentheses, e.g. "ID: 42"
	Note   string
	Fields []Field
}

// Section is a titled group of fields in a detail view
type Section struct {
	Heading string
	Fields  []Field
}

// Node is one line of an outline. Children are indented two spaces deeper.
type Node struct {
	Text     string
	Children []Node
	// Gap adds a blank line after the node and its children
	Gap bool
}

// Header returns "Found N <noun>:"
func Header(n int, noun string) string {
	return fmt.Sprintf("Found %d %s:", n, noun)
}

// RenderBlocks renders a header followed by one bulleted block per record
func RenderBlocks(header string, records []Record) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, r := range records {
		if r.Note != "" {
			fmt.Fprintf(&b, "• **%s** (%s)\n", r.Title, r.Note)
		} else {
			fmt.Fprintf(&b, "• **%s**\n", r.Title)
		}
		for _, f := range r.Fields {
			fmt.Fprintf(&b, "  - %s: %s\n", f.Label, f.Value)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderLines renders a header, a blank line and one line per item
func RenderLines(header string, lines []string) string {
	return header + "\n\n" + strings.Join(lines, "\n")
}

// RenderFields renders "Label: Value" lines
func RenderFields(fields []Field) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, f.Label+": "+f.Value)
	}
	return strings.Join(lines, "\n")
}

// RenderDetail renders a titled record with bold labels followed by its sections
func RenderDetail(title string, fields []Field, sections []Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", title)

	for _, f := range fields {
		fmt.Fprintf(&b, "- **%s**: %s\n", f.Label, f.Value)
	}

	for _, s := range sections {
		fmt.Fprintf(&b, "\n**%s:**\n", s.Heading)
		for _, f := range s.Fields {
			fmt.Fprintf(&b, "- %s: %s\n", f.Label, f.Value)
		}
	}

	return b.String()
}

// RenderOutline renders a header followed by an indented tree of nodes
func RenderOutline(header string, nodes []Node) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	writeNodes(&b, nodes, 0)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		b.WriteString(indent)
		b.WriteString(n.Text)
		b.WriteString("\n")
		writeNodes(b, n.Children, depth+1)
		if n.Gap {
			b.WriteString("\n")
		}
	}
}

// Value renders an optional value, or placeholder when it is absent
func Value[T any](v *T, placeholder string) string {
	if v == nil {
		return placeholder
	}
	return fmt.Sprint(*v)
}

// Text renders a string field, treating the empty string as absent
func Text(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// Unit renders an optional number followed by unit, or the placeholder alone when absent
func Unit[T any](v *T, unit string) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprint(*v) + unit
}

// Check renders a boolean as ✓ or ✗. Absent counts as false.
func Check(v *bool) string {
	if v != nil && *v {
		return "✓"
	}
	return "✗"
}

// YesNo renders a boolean as Yes or No. Absent counts as false.
func YesNo(v *bool) string {
	if v != nil && *v {
		return "Yes"
	}
	return "No"
}

// Bool renders a boolean as true or false. Absent counts as false.
func Bool(v *bool) string {
	if v != nil && *v {
		return "true"
	}
	return "false"
}

// Timestamp converts a Unix epoch string (seconds with optional fraction, or milliseconds) to TimestampLayout in loc.
// Values that are not epochs, such as ISO strings, are returned unchanged.
func Timestamp(ts string, loc *time.Location) string {
	if ts == "" {
		return Placeholder
	}
	f, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return ts
	}
	if loc == nil {
		loc = time.Local
	}
	// Epochs of 13 or more digits are in milliseconds
	if f >= 1e12 || f <= -1e12 {
		f /= 1000
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).In(loc).Format(TimestampLayout)
}
