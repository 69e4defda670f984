package receipt

import (
	"math"
	"strings"
)

var ones = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"Zero", "Ten", "Twenty", "Thirty", "Forty", "Fifty", "Sixty",
	"Seventy", "Eighty", "Ninety",
}

// MoneyWords spells an amount for the receipt, e.g. 350.50 ->
// "LKR Three Hundred Fifty and Fifty cents only". The fractional part is
// rounded half-away-from-zero to two digits.
func MoneyWords(amount float64) string {
	abs := math.Abs(amount)
	rupees := int64(math.Floor(abs))
	cents := int(math.Round((abs - float64(rupees)) * 100))
	if cents >= 100 {
		// Rounding 0.995 and up carries into the whole units.
		rupees += int64(cents / 100)
		cents %= 100
	}

	words := NumberToWords(rupees)
	if cents > 0 {
		return "LKR " + words + " and " + NumberToWords(int64(cents)) + " cents only"
	}
	return "LKR " + words + " only"
}

// NumberToWords converts an integer to English words: a 0-19 table, a tens
// table combined with a units digit, hundreds grouping, and thousand/
// million/billion scale chunks joined most-significant-first. Zero renders
// as "Zero"; the full int64 range is supported.
func NumberToWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "Minus " + NumberToWords(-n)
	}

	scales := []struct {
		value int64
		name  string
	}{
		{1_000_000_000, "Billion"},
		{1_000_000, "Million"},
		{1_000, "Thousand"},
	}

	var parts []string
	for _, s := range scales {
		if n < s.value {
			continue
		}
		chunk := n / s.value
		n %= s.value
		// Only the billions chunk can itself reach a thousand (int64
		// tops out above nine quintillion); spell it recursively.
		if chunk >= 1000 {
			parts = append(parts, NumberToWords(chunk)+" "+s.name)
		} else {
			parts = append(parts, wordsBelowThousand(int(chunk))+" "+s.name)
		}
	}
	if n > 0 {
		parts = append(parts, wordsBelowThousand(int(n)))
	}
	return strings.Join(parts, " ")
}

// wordsBelowThousand spells 1..999.
func wordsBelowThousand(n int) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		t := tens[n/10]
		if n%10 != 0 {
			t += " " + ones[n%10]
		}
		parts = append(parts, t)
	case n > 0:
		parts = append(parts, ones[n])
	}
	return strings.Join(parts, " ")
}
