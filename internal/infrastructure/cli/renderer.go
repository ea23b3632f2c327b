package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/ports"
)

// Format selects the result rendering.
type Format string

const (
	FormatJSON  Format = "json"
	FormatText  Format = "text"
	FormatTable Format = "table"
)

// Render writes one result envelope in the requested format. JSON is
// always the full envelope; text and table are friendlier projections.
func Render(w io.Writer, format Format, result domain.Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatTable:
		return renderTable(w, result)
	default:
		return renderText(w, result)
	}
}

func renderText(w io.Writer, result domain.Result) error {
	fmt.Fprintf(w, "%s %s\n", statusGlyph(result.Success), result.Message)

	if suggestions := suggestionList(result.Data); len(suggestions) > 0 {
		fmt.Fprintln(w)
		for _, s := range suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}

	for _, key := range sortedDataKeys(result.Data) {
		switch key {
		case "suggestions", "request_id", "items", "error":
			continue
		}
		fmt.Fprintf(w, "  %s: %v\n", key, result.Data[key])
	}

	if items, ok := result.Data["items"]; ok {
		fmt.Fprintln(w)
		renderItems(w, items)
	}
	return nil
}

func renderTable(w io.Writer, result domain.Result) error {
	if items, ok := result.Data["items"]; ok {
		renderItems(w, items)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, key := range sortedDataKeys(result.Data) {
		if key == "suggestions" {
			continue
		}
		fmt.Fprintf(tw, "%s\t%v\n", key, result.Data[key])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s %s\n", statusGlyph(result.Success), result.Message)
	return nil
}

func renderItems(w io.Writer, items any) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	switch rows := items.(type) {
	case []ports.NodeSummary:
		fmt.Fprintln(tw, "NID\tTITLE\tCREATED")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Title, r.Created)
		}
	case []ports.UserSummary:
		fmt.Fprintln(tw, "UID\tNAME\tMAIL")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Name, r.Mail)
		}
	default:
		fmt.Fprintf(tw, "%v\n", items)
	}
}

func statusGlyph(success bool) string {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	switch {
	case success && tty:
		return "✓"
	case success:
		return "[ok]"
	case tty:
		return "✗"
	default:
		return "[failed]"
	}
}

func suggestionList(data map[string]any) []string {
	raw, ok := data["suggestions"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, s := range v {
			out = append(out, fmt.Sprint(s))
		}
		return out
	default:
		return nil
	}
}

func sortedDataKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
