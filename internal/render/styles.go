// Package render draws ledgers and statements as terminal tables.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")
	colorBorder  = lipgloss.Color("#4B5563")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	totalStyle   = cellStyle.Bold(true)
)

// Success writes a success message.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

// Warning writes a warning message.
func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render("⚠ ")+fmt.Sprintf(format, args...))
}

// Muted writes a de-emphasised line.
func Muted(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Title writes a section heading with an optional subtitle.
func Title(w io.Writer, title, subtitle string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if subtitle != "" {
		fmt.Fprintln(w, mutedStyle.Render(subtitle))
	}
}

// Money formats an amount with two decimals and thousands separators,
// e.g. "-261,200.00".
func Money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() && !d.Round(2).IsZero() {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// moneyOrBlank leaves zero amounts empty, as journals and trial balances do.
func moneyOrBlank(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return Money(d)
}

// grid is a table whose listed columns are right-aligned and whose rows in
// bold are rendered heavier.
type grid struct {
	headers []string
	rows    [][]string
	right   map[int]bool
	bold    map[int]bool
}

func newGrid(headers []string, rightCols ...int) *grid {
	g := &grid{headers: headers, right: map[int]bool{}, bold: map[int]bool{}}
	for _, c := range rightCols {
		g.right[c] = true
	}
	return g
}

func (g *grid) add(cells ...string) {
	g.rows = append(g.rows, cells)
}

func (g *grid) addTotal(cells ...string) {
	g.bold[len(g.rows)] = true
	g.rows = append(g.rows, cells)
}

func (g *grid) String() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(g.headers...).
		Rows(g.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = headerStyle
			case g.bold[row]:
				s = totalStyle
			default:
				s = cellStyle
			}
			if g.right[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	return t.String()
}

func (g *grid) write(w io.Writer) {
	fmt.Fprintln(w, g.String())
}
