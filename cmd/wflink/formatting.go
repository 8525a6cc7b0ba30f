package wflink

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"text/template"

	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !isTerminal(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatUpper returns the string in uppercase
func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// FormatError renders err for stderr, red on a terminal
func FormatError(err error) string {
	msg := MsgErrorPrefix + err.Error()
	if !isTerminal(os.Stderr) {
		return msg
	}
	return pterm.Red(msg)
}

// FormatErrorDetails renders the details attached to err, one line per key
// in key order
func FormatErrorDetails(err error) []string {
	details := errors.GetErrorDetails(err)
	lines := make([]string, 0, len(details))
	for _, key := range slices.Sorted(maps.Keys(details)) {
		lines = append(lines, fmt.Sprintf(MsgErrorDetail, key, details[key]))
	}
	return lines
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     formatUpper,
		"boldUpper": formatBoldUpper,
	})
}
