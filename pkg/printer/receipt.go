package printer

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

const (
	FontNormal = 0x00
	FontDouble = 0x11
)

// Receipt builds an ESC/POS byte stream. Width is in characters: 32 for
// 58mm paper, 48 for 80mm.
type Receipt struct {
	buf   bytes.Buffer
	width int
}

// NewReceipt starts a receipt with the printer initialised
func NewReceipt(width int) *Receipt {
	if width <= 0 {
		width = 32
	}
	r := &Receipt{width: width}
	r.buf.Write([]byte{esc, '@'})
	return r
}

func (r *Receipt) Align(align int) *Receipt {
	r.buf.Write([]byte{esc, 'a', byte(align)})
	return r
}

func (r *Receipt) Bold(on bool) *Receipt {
	b := byte(0)
	if on {
		b = 1
	}
	r.buf.Write([]byte{esc, 'E', b})
	return r
}

func (r *Receipt) FontSize(size byte) *Receipt {
	r.buf.Write([]byte{gs, '!', size})
	return r
}

// Line writes s and a line feed. Text longer than the paper is cut.
func (r *Receipt) Line(s string) *Receipt {
	r.buf.WriteString(truncate(s, r.width))
	r.buf.WriteByte(lf)
	return r
}

// Separator prints a full-width rule
func (r *Receipt) Separator(char byte) *Receipt {
	return r.Line(strings.Repeat(string(char), r.width))
}

// Columns prints left and right on one line, shortening left when needed
func (r *Receipt) Columns(left, right string) *Receipt {
	room := r.width - len(right) - 1
	if room < 1 {
		return r.Line(left).Line(right)
	}
	left = truncate(left, room)
	return r.Line(left + strings.Repeat(" ", r.width-len(left)-len(right)) + right)
}

func (r *Receipt) Feed(n int) *Receipt {
	for i := 0; i < n; i++ {
		r.buf.WriteByte(lf)
	}
	return r
}

// Cut feeds past the tear bar and partially cuts the paper
func (r *Receipt) Cut() *Receipt {
	r.Feed(3)
	r.buf.Write([]byte{gs, 'V', 0x01})
	return r
}

func (r *Receipt) Bytes() []byte {
	return r.buf.Bytes()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Rupiah formats an amount as "Rp 120.000", rounding to whole rupiah
func Rupiah(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	digits := amount.Round(0).StringFixed(0)
	var grouped strings.Builder
	for i, ch := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(ch)
	}
	return sign + "Rp " + grouped.String()
}
