package receipt

import (
	"strings"
	"testing"
	"time"
)

func TestLR(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		width int
		want  string
	}{
		{
			name:  "short fragments get padded apart",
			left:  "Receipt:",
			right: "BILL-000042",
			width: 42,
			want:  "Receipt:" + strings.Repeat(" ", 42-8-11) + "BILL-000042",
		},
		{
			name:  "long left is truncated to keep the amount visible",
			left:  "A very very very long item description here",
			right: "1,234.00",
			width: 20,
			want:  "A very very 1,234.00",
		},
		{
			name:  "exact fit keeps one space",
			left:  "Subtotal",
			right: "LKR 540.00",
			width: 19,
			want:  "Subtotal LKR 540.00",
		},
		{
			name:  "surrounding whitespace is trimmed",
			left:  "Date:   ",
			right: "   2025-01-01 10:30",
			width: 42,
			want:  "Date:" + strings.Repeat(" ", 42-5-16) + "2025-01-01 10:30",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LR(tt.left, tt.right, tt.width)
			if got != tt.want {
				t.Errorf("LR(%q, %q, %d) = %q, want %q", tt.left, tt.right, tt.width, got, tt.want)
			}
			if len(got) != tt.width {
				t.Errorf("LR result length = %d, want %d", len(got), tt.width)
			}
			if !strings.HasSuffix(got, tt.right[strings.LastIndex(tt.right, " ")+1:]) {
				t.Errorf("LR result %q does not end with right fragment", got)
			}
		})
	}
}

func collect(seq func(func(string) bool)) []string {
	var out []string
	seq(func(s string) bool {
		out = append(out, s)
		return true
	})
	return out
}

func TestWrap(t *testing.T) {
	t.Run("breaks at spaces and reproduces the text", func(t *testing.T) {
		text := "Tandoori Chicken Family Combo Deluxe Platter"
		lines := collect(Wrap(text, 20))
		if len(lines) < 2 {
			t.Fatalf("Expected multiple lines, got %v", lines)
		}
		for _, ln := range lines {
			if len(ln) > 20 {
				t.Errorf("Line %q exceeds width 20", ln)
			}
		}
		if joined := strings.Join(lines, " "); joined != text {
			t.Errorf("Rejoined = %q, want %q", joined, text)
		}
	})

	t.Run("hard break when no space fits", func(t *testing.T) {
		lines := collect(Wrap("ABCDEFGHIJKLMNOP", 5))
		want := []string{"ABCDE", "FGHIJ", "KLMNO", "P"}
		if len(lines) != len(want) {
			t.Fatalf("Lines = %v, want %v", lines, want)
		}
		for i := range want {
			if lines[i] != want[i] {
				t.Errorf("Line %d = %q, want %q", i, lines[i], want[i])
			}
		}
	})

	t.Run("short text is a single line", func(t *testing.T) {
		lines := collect(Wrap("  Tea  ", 42))
		if len(lines) != 1 || lines[0] != "Tea" {
			t.Errorf("Lines = %v, want [Tea]", lines)
		}
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		if lines := collect(Wrap("   ", 10)); lines != nil {
			t.Errorf("Lines = %v, want none", lines)
		}
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		seq := Wrap("one two three four five six seven", 9)
		first := collect(seq)
		second := collect(seq)
		if strings.Join(first, "|") != strings.Join(second, "|") {
			t.Errorf("Second pass %v differs from first %v", second, first)
		}
	})
}

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{1, "One"},
		{13, "Thirteen"},
		{20, "Twenty"},
		{42, "Forty Two"},
		{100, "One Hundred"},
		{105, "One Hundred Five"},
		{350, "Three Hundred Fifty"},
		{999, "Nine Hundred Ninety Nine"},
		{1000, "One Thousand"},
		{1001, "One Thousand One"},
		{250080, "Two Hundred Fifty Thousand Eighty"},
		{1_000_000, "One Million"},
		{2_000_000_000, "Two Billion"},
		{1_234_567_890, "One Billion Two Hundred Thirty Four Million Five Hundred Sixty Seven Thousand Eight Hundred Ninety"},
		{-42, "Minus Forty Two"},
	}
	for _, tt := range tests {
		if got := NumberToWords(tt.n); got != tt.want {
			t.Errorf("NumberToWords(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestNumberToWordsFullRange(t *testing.T) {
	// The billions chunk itself exceeds three digits near the top of the
	// int64 range; it must still be spelled completely.
	got := NumberToWords(9_223_372_036_854_775_807)
	if !strings.HasPrefix(got, "Nine Billion Two Hundred Twenty Three Million") {
		t.Errorf("Max int64 words start = %q", got[:60])
	}
	if !strings.HasSuffix(got, "Eight Hundred Seven") {
		t.Errorf("Max int64 words end = %q", got)
	}
}

func TestMoneyWords(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "LKR Zero only"},
		{350.00, "LKR Three Hundred Fifty only"},
		{12.34, "LKR Twelve and Thirty Four cents only"},
		{0.50, "LKR Zero and Fifty cents only"},
		{1000, "LKR One Thousand only"},
	}
	for _, tt := range tests {
		if got := MoneyWords(tt.amount); got != tt.want {
			t.Errorf("MoneyWords(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	printedAt := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	r := Receipt{
		Number:    "BILL-000042",
		PrintedAt: printedAt,
		RoomCode:  "101",
		Total:     350.00,
		Lines: []Line{
			{Name: "Room: Non/AC Family Room", Quantity: 1, UnitPrice: 100.00, TotalPrice: 100.00},
			{Name: "Biryani", Quantity: 1, UnitPrice: 250.00, TotalPrice: 250.00},
		},
	}
	out := Render(r, DefaultWidth)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	for i, ln := range lines {
		if len(ln) > DefaultWidth {
			t.Errorf("Line %d exceeds width: %q", i, ln)
		}
	}

	mustContain := []string{
		LR("Receipt:", "BILL-000042", DefaultWidth),
		LR("Date:", "2025-03-14 09:30", DefaultWidth),
		LR("Room:", "101", DefaultWidth),
		LR("1 x 250.00", "250.00", DefaultWidth),
		LR("Subtotal", "LKR 350.00", DefaultWidth),
		LR("TOTAL", "LKR 350.00", DefaultWidth),
		"Biryani",
	}
	for _, want := range mustContain {
		found := false
		for _, ln := range lines {
			if ln == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Rendered receipt is missing row %q\n%s", want, out)
		}
	}

	if !strings.Contains(out, "LKR Three Hundred Fifty only") {
		t.Errorf("Money words missing:\n%s", out)
	}
	if !strings.Contains(out, "MAYKA'S HOLIDAY HOMES") || !strings.Contains(out, "Thank you!") {
		t.Errorf("Header or footer missing:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("-", DefaultWidth)) {
		t.Errorf("Separator rule missing:\n%s", out)
	}
}

func TestRenderTotalFallback(t *testing.T) {
	r := Receipt{
		Number:    "BILL-000007",
		PrintedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Total:     0, // stored total of zero falls back to the subtotal
		Lines: []Line{
			{Name: "Tea", Quantity: 2, UnitPrice: 40.00, TotalPrice: 80.00},
		},
	}
	out := Render(r, DefaultWidth)
	if !strings.Contains(out, LR("TOTAL", "LKR 80.00", DefaultWidth)) {
		t.Errorf("TOTAL fallback missing:\n%s", out)
	}
	if !strings.Contains(out, "LKR Eighty only") {
		t.Errorf("Words use fallback total:\n%s", out)
	}
}

func TestRenderNoRoom(t *testing.T) {
	r := Receipt{
		Number:    "BILL-000001",
		PrintedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Lines:     []Line{{Name: "Coffee", Quantity: 1, UnitPrice: 80, TotalPrice: 80}},
	}
	out := Render(r, DefaultWidth)
	if !strings.Contains(out, LR("Room:", "-", DefaultWidth)) {
		t.Errorf("Placeholder dash for missing room not rendered:\n%s", out)
	}
}

func TestRenderLongNamesWrap(t *testing.T) {
	r := Receipt{
		Number:    "BILL-000002",
		PrintedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Lines: []Line{{
			Name:       "Tandoori Chicken Family Combo Deluxe Platter With Extra Naan",
			Quantity:   1,
			UnitPrice:  990.00,
			TotalPrice: 990.00,
		}},
	}
	out := Render(r, 20)
	for i, ln := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if len(ln) > 20 {
			t.Errorf("Line %d exceeds narrow width: %q", i, ln)
		}
	}
	// The default header is wider than 20 columns; it wraps instead of
	// being dropped or overflowing.
	if !strings.Contains(out, "MAYKA'S") || !strings.Contains(out, "HOMES") {
		t.Errorf("Wrapped header content missing:\n%s", out)
	}
}

func TestRenderGroupsThousands(t *testing.T) {
	r := Receipt{
		Number:    "BILL-000003",
		PrintedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Lines: []Line{{
			Name:       "Banquet Package",
			Quantity:   2,
			UnitPrice:  1250.50,
			TotalPrice: 2501.00,
		}},
	}
	out := Render(r, DefaultWidth)
	if !strings.Contains(out, LR("2 x 1,250.50", "2,501.00", DefaultWidth)) {
		t.Errorf("Line amounts not grouped:\n%s", out)
	}
	if !strings.Contains(out, LR("TOTAL", "LKR 2,501.00", DefaultWidth)) {
		t.Errorf("Total amount not grouped:\n%s", out)
	}
	if !strings.Contains(out, "LKR Two Thousand Five Hundred One only") {
		t.Errorf("Money words missing:\n%s", out)
	}
}
