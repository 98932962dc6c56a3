package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

var (
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	addressStyle       = color.New(color.FgWhite)
	hashStyle          = color.New(color.Faint)
	networkStyle       = color.New(color.FgCyan, color.Bold)
	okStyle            = color.New(color.FgGreen)
	failStyle          = color.New(color.FgRed)
	pendingStyle       = color.New(color.FgYellow)
	labelStyle         = color.New(color.Faint)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// RenderJSON writes v as indented JSON
func RenderJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatEther renders wei as ether without trailing zeros
func FormatEther(wei *big.Int) string {
	s := usecase.FormatEther(wei)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return relPath
}

// newTable creates a borderless table in the style of the list output
func newTable(out io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Options.SeparateHeader = true
	t.Style().Format.Header = text.FormatDefault
	t.Style().Box.PaddingRight = "   "
	if header != nil {
		t.AppendHeader(header)
	}
	return t
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[mGKHF]`)

// stripAnsiCodes removes ANSI escape sequences from a string
func stripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func printSection(out io.Writer, title string) {
	fmt.Fprintln(out, sectionHeaderStyle.Sprint(title))
}
