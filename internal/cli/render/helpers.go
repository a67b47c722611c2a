package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/agentnft/beaconctl/internal/domain/config"
)

var titleCaser = cases.Title(language.English)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Capitalize first letter
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// writeStructured writes v as JSON or YAML. It reports false for table output.
func writeStructured(out io.Writer, format config.OutputFormat, v any) (bool, error) {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return true, nil
	case config.OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// newTable creates a borderless table in the style used by every command
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.Style().Format.Header = text.FormatDefault
	return t
}

// addressOrDash prints a placeholder for the zero address
func addressOrDash(addr common.Address) string {
	if addr == (common.Address{}) {
		return "-"
	}
	return addr.Hex()
}

// shortHash abbreviates a transaction hash for tables
func shortHash(hash common.Hash) string {
	if hash == (common.Hash{}) {
		return "-"
	}
	h := hash.Hex()
	return h[:10] + "…" + h[len(h)-8:]
}
