package diff

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"go.jacobcolvin.com/miniyaml"
)

// Printer writes changes in a line-oriented text form:
//
//	- .replicas: 2
//	+ .image.tag: "v2"
//	~ .timeout: 30 -> 45
//
// Changes between two multi-line strings are expanded into a line diff.
type Printer struct {
	add    *color.Color
	remove *color.Color
	change *color.Color
	path   *color.Color
}

// NewPrinter returns a [Printer]. Colors are only emitted when colored is
// true, independent of the package-level [color.NoColor] setting.
func NewPrinter(colored bool) *Printer {
	p := &Printer{
		add:    color.New(color.FgGreen),
		remove: color.New(color.FgRed),
		change: color.New(color.FgYellow),
		path:   color.New(color.Bold),
	}

	for _, c := range []*color.Color{p.add, p.remove, p.change, p.path} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Print writes every change to w.
func (p *Printer) Print(w io.Writer, changes []Change) error {
	var sb strings.Builder

	for _, c := range changes {
		p.format(&sb, c)
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write diff: %w", err)
	}

	return nil
}

func (p *Printer) format(sb *strings.Builder, c Change) {
	path := p.path.Sprint(c.Path)

	switch c.Op {
	case OpAdd:
		fmt.Fprintf(sb, "%s %s: %s\n", p.add.Sprint("+"), path, p.add.Sprint(inline(c.To)))
	case OpRemove:
		fmt.Fprintf(sb, "%s %s: %s\n", p.remove.Sprint("-"), path, p.remove.Sprint(inline(c.From)))
	case OpChange:
		from, fromOK := c.From.AsString()
		to, toOK := c.To.AsString()

		if fromOK && toOK && (strings.Contains(from, "\n") || strings.Contains(to, "\n")) {
			fmt.Fprintf(sb, "%s %s:\n", p.change.Sprint("~"), path)
			p.lines(sb, from, to)

			return
		}

		fmt.Fprintf(sb, "%s %s: %s -> %s\n", p.change.Sprint("~"), path,
			p.remove.Sprint(inline(c.From)), p.add.Sprint(inline(c.To)))
	}
}

// lines writes a line-level diff of two multi-line strings.
func (p *Printer) lines(sb *strings.Builder, from, to string) {
	dmp := diffpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	for _, d := range diffs {
		prefix, c := " ", (*color.Color)(nil)

		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, c = "+", p.add
		case diffpatch.DiffDelete:
			prefix, c = "-", p.remove
		case diffpatch.DiffEqual:
		}

		for line := range strings.Lines(d.Text) {
			text := "    " + prefix + " " + strings.TrimSuffix(line, "\n")
			if c != nil {
				text = c.Sprint(text)
			}

			sb.WriteString(text)
			sb.WriteByte('\n')
		}
	}
}

// inline renders v as single-line JSON.
func inline(v miniyaml.Value) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}

	return string(b)
}
