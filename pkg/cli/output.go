package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jinzhu/inflection"
	"gopkg.in/yaml.v3"

	"github.com/mycotrack/mycotrack/pkg/models"
)

type printer struct {
	w      io.Writer
	format string
}

// structured writes v as JSON or YAML and reports whether it did.
// Text output is left to the caller.
func (p printer) structured(v any) (bool, error) {
	switch p.format {
	case OutputJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case OutputYAML:
		return true, writeYAML(p.w, v)
	default:
		return false, nil
	}
}

func (p printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p printer) linef(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// writeYAML encodes v through its JSON form so field names and optional
// values match the JSON output.
func writeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

// count returns "1 batch", "3 batches".
func count(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional[T any](o models.Optional[T], format func(T) string) string {
	v, ok := o.Get()
	if !ok {
		return "-"
	}
	return format(v)
}

// table renders rows as left-aligned columns separated by two spaces.
func table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len([]rune(cell)))
		}
	}

	pad := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = c + strings.Repeat(" ", widths[i]-len([]rune(c)))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render(pad(headers)))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(pad(row))
	}
	return b.String()
}
