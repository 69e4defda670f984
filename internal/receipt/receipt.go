// Package receipt renders bills as fixed-width text for 80mm thermal
// printers. Rendering is a pure function of its inputs: no clock, no
// storage, no side effects.
package receipt

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// amounts carry thousands separators ("1,234.00") like the printed bills.
var amountPrinter = message.NewPrinter(language.English)

func formatAmount(v float64) string {
	return amountPrinter.Sprintf("%.2f", v)
}

// DefaultWidth is the canonical column count: 80mm paper with a ~72mm
// printable area fits 42 monospace columns.
const DefaultWidth = 42

// DefaultHeader is the centered block printed at the top of every receipt.
var DefaultHeader = []string{
	"MAYKA'S HOLIDAY HOMES",
	"AND CAFE",
	"POS RECEIPT",
	"+94 71 944 7567",
}

// DefaultFooter is the closing centered block.
var DefaultFooter = []string{"Thank you!"}

// Line is one item row of the receipt.
type Line struct {
	Name       string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

// Receipt carries everything needed to render one bill.
type Receipt struct {
	// Number is the human-readable bill number (e.g. "BILL-000042").
	Number string

	// PrintedAt is the moment of printing, shown as "yyyy-MM-dd HH:mm".
	PrintedAt time.Time

	// RoomCode labels the room row; a placeholder dash is printed when
	// empty (walk-in café bills).
	RoomCode string

	// Total is the stored bill total. When zero the rendered TOTAL row
	// falls back to the computed subtotal.
	Total float64

	// Lines are the item rows, printed in order.
	Lines []Line

	// Header and Footer override the default centered blocks when set.
	Header []string
	Footer []string
}

// LR lays out a left and a right fragment on one line of the given width.
// The right fragment is always fully visible: when both do not fit with at
// least one separating space, the left fragment is truncated from the end.
func LR(left, right string, width int) string {
	left = strings.TrimRight(left, " ")
	right = strings.TrimLeft(right, " ")
	if len(left)+1+len(right) > width {
		maxLeft := width - len(right) - 1
		if maxLeft < 0 {
			maxLeft = 0
		}
		if len(left) > maxLeft {
			left = left[:maxLeft]
		}
	}
	spaces := width - len(left) - len(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

// Wrap breaks text into lines of at most width characters, preferring the
// last space at or before the width and falling back to a hard break. The
// returned sequence is lazy and restartable.
func Wrap(text string, width int) iter.Seq[string] {
	return func(yield func(string) bool) {
		// Work on a copy so re-ranging the sequence starts over from
		// the full text.
		rest := strings.TrimSpace(text)
		if rest == "" || width <= 0 {
			return
		}
		for len(rest) > width {
			cut := strings.LastIndex(rest[:width+1], " ")
			if cut <= 0 {
				cut = width
			}
			if !yield(strings.TrimRight(rest[:cut], " ")) {
				return
			}
			rest = strings.TrimLeft(rest[cut:], " ")
		}
		if len(rest) > 0 {
			yield(rest)
		}
	}
}

// center pads a line on the left so it sits in the middle of the width.
func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", (width-len(s))/2) + s
}

// Render produces the complete receipt text. A non-positive width falls
// back to DefaultWidth.
func Render(r Receipt, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	header := r.Header
	if header == nil {
		header = DefaultHeader
	}
	footer := r.Footer
	if footer == nil {
		footer = DefaultFooter
	}

	var b strings.Builder
	writeLine := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	writeBlock := func(block []string) {
		for _, s := range block {
			if strings.TrimSpace(s) == "" {
				writeLine("")
				continue
			}
			// Long lines wrap rather than overflow narrow printers.
			for piece := range Wrap(s, width) {
				writeLine(center(piece, width))
			}
		}
	}

	writeBlock(header)

	sep := strings.Repeat("-", width)
	writeLine(sep)

	writeLine(LR("Receipt:", r.Number, width))
	writeLine(LR("Date:", r.PrintedAt.Format("2006-01-02 15:04"), width))
	room := r.RoomCode
	if strings.TrimSpace(room) == "" {
		room = "-"
	}
	writeLine(LR("Room:", room, width))

	writeLine(sep)

	// Compact receipt style: wrapped name line(s), then a qty x rate row
	// with the amount right-justified.
	var subtotal float64
	for _, ln := range r.Lines {
		subtotal += ln.TotalPrice

		name := ln.Name
		if strings.TrimSpace(name) == "" {
			name = "-"
		}
		for nameLine := range Wrap(name, width) {
			writeLine(nameLine)
		}

		qtyRate := fmt.Sprintf("%d x %s", ln.Quantity, formatAmount(ln.UnitPrice))
		writeLine(LR(qtyRate, formatAmount(ln.TotalPrice), width))
	}

	writeLine(sep)

	grand := r.Total
	if grand == 0 {
		grand = subtotal
	}
	writeLine(LR("Subtotal", "LKR "+formatAmount(subtotal), width))
	writeLine(LR("TOTAL", "LKR "+formatAmount(grand), width))

	writeLine(sep)
	for wordsLine := range Wrap(MoneyWords(grand), width) {
		writeLine(wordsLine)
	}

	writeLine("")
	writeBlock(footer)

	return b.String()
}
