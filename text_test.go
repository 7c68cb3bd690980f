package unum

import (
	"testing"

	"github.com/shabbyrobe/golib/assert"
)

func TestView(t *testing.T) {
	e := env34
	for _, tc := range []struct {
		name string
		u    Unum
		out  string
	}{
		{"one", u64(0x100), "0 0 1 0 000 0000"},
		{"three", u64(0x300), "0 1 1 0 000 0000"},
		{"neg-one-two", u64(0x580), "1 0 1 1 000 0000"},
		{"maxreal", e.MaxRealU(), "0 11111111 1111111111111110 0 111 1111"},
		{"qnan", e.QNaNU(), "0 11111111 1111111111111111 1 111 1111"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tt := assert.WrapTB(t)
			tt.MustEqual(tc.out, e.View(tc.u, false))
		})
	}
}

func TestViewColor(t *testing.T) {
	tt := assert.WrapTB(t)
	exp := "\x1b[1m\x1b[31m0 \x1b[36m1 \x1b[33m1 \x1b[0m\x1b[35m0 \x1b[36m000 \x1b[33m0000\x1b[0m"
	tt.MustEqual(exp, env34.View(u64(0x300), true))
}

func TestViewBound(t *testing.T) {
	tt := assert.WrapTB(t)
	e := env34
	tt.MustEqual("0 1 1 0 000 0000", e.ViewBound(Single(u64(0x300)), false))
	tt.MustEqual("|0 0 1 0 000 0000,0 1 1 0 000 0000|", e.ViewBound(Pair(u64(0x100), u64(0x300)), false))
}

func TestParseBound(t *testing.T) {
	e := env34
	for _, tc := range []struct {
		in  string
		out Ubound
	}{
		{"1", Single(u64(0x100))},
		{"  3 ", Single(u64(0x300))},
		{"-1", Single(u64(0x500))},
		{"(1,2)", Single(u64(0x180))},
		{"[1,2)", Pair(u64(0x100), u64(0x180))},
		{"[-Inf,Inf]", Pair(e.NegInfU(), e.PosInfU())},
		{"NaN", Single(e.QNaNU())},
		{"junk", Single(e.QNaNU())},
		{"[1,junk]", Single(e.QNaNU())},
		{")1,2(", Single(e.QNaNU())},
	} {
		t.Run(tc.in, func(t *testing.T) {
			tt := assert.WrapTB(t)
			out := e.ParseBound(tc.in)
			tt.MustEqual(tc.out, out, "found %s", out)
		})
	}
}

func TestParseBoundInexact(t *testing.T) {
	tt := assert.WrapTB(t)
	e := env34

	b := e.ParseBound("0.1")
	tt.MustAssert(!b.IsPair())
	tt.MustAssert(e.IsInexact(b.Left()))
	tt.MustEqual("(0.09999942779541015625,0.1000003814697265625)", e.FormatBound(b))
	tt.MustAssert(e.BoundToG(b).SomewhereEqual(gs("0.1")))
}

func TestParseUnum(t *testing.T) {
	tt := assert.WrapTB(t)
	e := env34

	tt.MustEqual(u64(0x180), e.ParseUnum("(1,2)"))
	tt.MustEqual(u64(0x310), e.ParseUnum("1.5"))
	tt.MustEqual(e.QNaNU(), e.ParseUnum("[1,2]"))
	tt.MustEqual(e.QNaNU(), e.ParseUnum("junk"))
}

func TestFormatBound(t *testing.T) {
	e := env34
	for _, in := range []string{
		"0", "1", "-3", "0.5", "(1,2)", "[1,2)", "(-2,-1)", "[1,2]",
		"Inf", "-Inf", "NaN", "[-Inf,0]", "(3,Inf]",
	} {
		t.Run(in, func(t *testing.T) {
			tt := assert.WrapTB(t)
			tt.MustEqual(in, e.FormatBound(e.ParseBound(in)))
		})
	}
}
