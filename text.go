package unum

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/joeycumines/floater"
)

const (
	infText = "Inf"
	nanText = "NaN"

	// Decimal exponents outside this range are printed in e-notation.
	sciMinExp = -6
	sciMaxExp = 20
)

// ParseG reads a general interval from s. The accepted forms are:
//
//	NaN
//	Inf, -Inf, +Inf
//	1.5, -3.2768e4          (exact)
//	(1,2] [-Inf,0.5) (3,Inf) (open or closed per bracket)
//
// Numerals are parsed at prec bits (or a default if prec is 0). A numeral
// with no exact binary value is enclosed: a left end is rounded down and a
// right end up, and the rounded end becomes open. A bare numeral with no
// exact binary value becomes the closed interval between its two roundings.
//
// Anything malformed gives NaN.
func ParseG(s string, prec uint) Gbnd {
	if prec == 0 {
		prec = defaultPrec
	}
	if strings.Contains(s, nanText) {
		return GNaN()
	}

	bL := strings.IndexAny(s, "([")
	bC := strings.IndexByte(s, ',')
	bR := strings.IndexAny(s, ")]")
	if bL >= 0 && bC >= 0 && bR >= 0 {
		if !(bL < bC && bC < bR) {
			return GNaN()
		}
		l, ok := parseGnum(s[bL+1:bC], prec, big.ToNegativeInf)
		if !ok {
			return GNaN()
		}
		r, ok := parseGnum(s[bC+1:bR], prec, big.ToPositiveInf)
		if !ok {
			return GNaN()
		}
		l.Open = l.Open || s[bL] == '('
		r.Open = r.Open || s[bR] == ')'
		return Gbnd{L: l, R: r}
	}

	l, ok := parseGnum(s, prec, big.ToNegativeInf)
	if !ok {
		return GNaN()
	}
	if !l.Open {
		return Gbnd{L: l, R: l.copy()}
	}
	r, _ := parseGnum(s, prec, big.ToPositiveInf)
	l.Open, r.Open = false, false
	return Gbnd{L: l, R: r}
}

// parseGnum parses one numeral, marking the result open if it had to be
// rounded.
func parseGnum(s string, prec uint, mode big.RoundingMode) (Gnum, bool) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, infText); i >= 0 {
		sign := 1
		if i > 0 && s[i-1] == '-' {
			sign = -1
		}
		return gInf(sign, false), true
	}

	f, _, err := big.ParseFloat(s, 10, prec, mode)
	if err != nil {
		return Gnum{}, false
	}
	if f.Sign() == 0 && f.Signbit() {
		f.Neg(f)
	}
	return Gnum{F: f, Open: f.Acc() != big.Exact}, true
}

// ParseBound reads s with ParseG and encodes the result.
func (e *Env) ParseBound(s string) Ubound {
	return e.fromG(ParseG(s, e.prec))
}

// ParseUnum reads s as a single unum. A bound that cannot be unified into
// one unum gives the quiet NaN.
func (e *Env) ParseUnum(s string) Unum {
	return e.Collapse(e.ParseBound(s))
}

func (g Gbnd) String() string {
	var sb strings.Builder
	g.format(&sb)
	return sb.String()
}

func (g Gbnd) format(sb *strings.Builder) {
	if g.NaN {
		sb.WriteString(nanText)
		return
	}
	if !g.L.Open && !g.R.Open && g.L.F.Cmp(g.R.F) == 0 {
		formatFloat(sb, g.L.F)
		return
	}
	if g.L.Open {
		sb.WriteByte('(')
	} else {
		sb.WriteByte('[')
	}
	formatFloat(sb, g.L.F)
	sb.WriteByte(',')
	formatFloat(sb, g.R.F)
	if g.R.Open {
		sb.WriteByte(')')
	} else {
		sb.WriteByte(']')
	}
}

// formatFloat writes every digit f needs to be exact.
func formatFloat(sb *strings.Builder, f *big.Float) {
	if f.IsInf() {
		if f.Sign() < 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(infText)
		return
	}
	if f.Sign() == 0 {
		sb.WriteByte('0')
		return
	}

	r, _ := f.Rat(nil)
	decimals, _ := r.FloatPrec()
	s := floater.FormatDecimalRat(r, decimals, f.Prec())
	sb.WriteString(toScientific(s))
}

// toScientific rewrites a plain decimal in e-notation when its decimal
// exponent is out of range.
func toScientific(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var exp int
	var digits string
	if intPart != "0" {
		exp = len(intPart) - 1
		digits = intPart + fracPart
	} else {
		trimmed := strings.TrimLeft(fracPart, "0")
		exp = -(len(fracPart) - len(trimmed) + 1)
		digits = trimmed
	}

	if exp >= sciMinExp && exp <= sciMaxExp {
		if neg {
			return "-" + s
		}
		return s
	}

	digits = strings.TrimRight(digits, "0")
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteByte(digits[0])
	if len(digits) > 1 {
		sb.WriteByte('.')
		sb.WriteString(digits[1:])
	}
	sb.WriteByte('e')
	if exp < 0 {
		sb.WriteByte('-')
		exp = -exp
	} else {
		sb.WriteByte('+')
	}
	if exp < 10 {
		sb.WriteByte('0')
	}
	sb.WriteString(strconv.Itoa(exp))
	return sb.String()
}

func (e *Env) FormatBound(b Ubound) string { return e.BoundToG(b).String() }
func (e *Env) FormatUnum(u Unum) string    { return e.UnumToG(u).String() }

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiRed     = "\x1b[31m"
	ansiYellow  = "\x1b[33m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
)

// View shows the bit fields of u, most significant first: sign, exponent,
// fraction, ubit, exponent size and fraction size. If color is set, fields
// are wrapped in ANSI escapes.
func (e *Env) View(u Unum, color bool) string {
	var sb strings.Builder
	e.view(&sb, u, color)
	return sb.String()
}

func (e *Env) view(sb *strings.Builder, u Unum, color bool) {
	t := e.Tag(u)
	pos := uint(1 + t.ESize + t.FSize + e.utagsize)

	paint := func(code string) {
		if color {
			sb.WriteString(code)
		}
	}
	field := func(n int) {
		for ; n > 0; n-- {
			pos--
			sb.WriteByte(byte('0' + u.Bit(pos)))
		}
	}

	paint(ansiBold)
	paint(ansiRed)
	field(1)
	sb.WriteByte(' ')
	paint(ansiCyan)
	field(t.ESize)
	sb.WriteByte(' ')
	paint(ansiYellow)
	field(t.FSize)
	sb.WriteByte(' ')
	paint(ansiReset)
	paint(ansiMagenta)
	field(1)
	sb.WriteByte(' ')
	paint(ansiCyan)
	field(e.esizesize)
	sb.WriteByte(' ')
	paint(ansiYellow)
	field(e.fsizesize)
	paint(ansiReset)
}

// ViewBound is View for a ubound; a pair is shown as |l,r|.
func (e *Env) ViewBound(b Ubound, color bool) string {
	if !b.pair {
		return e.View(b.l, color)
	}
	var sb strings.Builder
	sb.WriteByte('|')
	e.view(&sb, b.l, color)
	sb.WriteByte(',')
	e.view(&sb, b.r, color)
	sb.WriteByte('|')
	return sb.String()
}
