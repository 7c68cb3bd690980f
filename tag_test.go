package unum

import (
	"fmt"
	"testing"

	"github.com/shabbyrobe/golib/assert"
)

func TestTag(t *testing.T) {
	for _, tc := range []struct {
		u   Unum
		tag UTag
	}{
		{u64(0x100), UTag{ESize: 1, FSize: 1}},
		{u64(0x180), UTag{ESize: 1, FSize: 1, Inexact: true}},
		{u64(0x210), UTag{ESize: 2, FSize: 1}},
		{u64(0x201), UTag{ESize: 1, FSize: 2}},
		{u64(0xfffffe7f), UTag{ESize: 8, FSize: 16}},
		{u64(0xffffffff), UTag{ESize: 8, FSize: 16, Inexact: true}},
	} {
		t.Run(tc.u.String(), func(t *testing.T) {
			tt := assert.WrapTB(t)
			tt.MustEqual(tc.tag, env34.Tag(tc.u))
			tt.MustEqual(!tc.tag.Inexact, env34.IsExact(tc.u))
			tt.MustEqual(tc.tag.Inexact, env34.IsInexact(tc.u))
		})
	}
}

func TestTagSpecials(t *testing.T) {
	tt := assert.WrapTB(t)
	e := env34

	tt.MustAssert(e.IsNaN(e.QNaNU()))
	tt.MustAssert(e.IsNaN(e.SNaNU()))
	tt.MustAssert(!e.IsNaN(e.PosInfU()))
	tt.MustAssert(e.IsInf(e.PosInfU()))
	tt.MustAssert(e.IsInf(e.NegInfU()))
	tt.MustAssert(!e.IsInf(e.MaxRealU()))

	tt.MustAssert(!e.IsNegative(u64(0x100)))
	tt.MustAssert(e.IsNegative(u64(0x500)))
	tt.MustAssert(e.IsNegative(e.NegInfU()))
	tt.MustAssert(!e.IsNegative(e.PosInfU()))

	tt.MustEqual(u64(0x500), e.NegateUnum(u64(0x100)))
	tt.MustEqual(u64(0x100), e.NegateUnum(u64(0x500)))
	tt.MustEqual(e.NegInfU(), e.NegateUnum(e.PosInfU()))
	tt.MustEqual(zeroUnum, e.NegateUnum(zeroUnum))
}

func TestFloatToUnumEncoding(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out Unum
	}{
		{"0", u64(0)},
		{"1", u64(0x100)},
		{"2", u64(0x200)},
		{"3", u64(0x300)},
		{"0.5", u64(0x110)},
		{"0.25", u64(0x220)},
		{"1.5", u64(0x310)},
		{"-1", u64(0x500)},
		{"-2", u64(0x600)},
	} {
		t.Run(tc.in, func(t *testing.T) {
			tt := assert.WrapTB(t)
			g := gs(tc.in)
			tt.MustAssert(g.IsPoint())
			u := env34.FloatToUnum(g.L.F)
			tt.MustEqual(tc.out, u, "found %#x", u)
			tt.MustAssert(env34.UnumToFloat(u).Cmp(g.L.F) == 0)
		})
	}
}

func TestPromote(t *testing.T) {
	tt := assert.WrapTB(t)
	e := env34

	tt.MustEqual(u64(0x201), e.PromoteFraction(u64(0x100)))
	tt.MustEqual(u64(0x210), e.PromoteExponent(u64(0x100)))
	tt.MustEqual(u64(0x510), e.PromoteExponent(u64(0x300)))

	// Already at the maximum sizes.
	tt.MustEqual(e.MaxRealU(), e.PromoteFraction(e.MaxRealU()))
	tt.MustEqual(e.MaxRealU(), e.PromoteExponent(e.MaxRealU()))
	tt.MustEqual(e.PosInfU(), e.PromoteExponent(e.PosInfU()))

	u, v := e.PromotePair(u64(0x100), u64(0x510))
	tt.MustEqual(u64(0x210), u)
	tt.MustEqual(u64(0x510), v)
}

func TestDemote(t *testing.T) {
	tt := assert.WrapTB(t)
	e := env34

	tt.MustEqual(u64(0x100), e.DemoteExponent(u64(0x210)))
	tt.MustEqual(u64(0x100), e.DemoteFraction(u64(0x201)))

	// Nothing left to take away.
	tt.MustEqual(u64(0x100), e.DemoteFraction(u64(0x100)))
	tt.MustEqual(u64(0x100), e.DemoteExponent(u64(0x100)))
	tt.MustEqual(e.QNaNU(), e.DemoteFraction(e.QNaNU()))
	tt.MustEqual(e.PosInfU(), e.DemoteExponent(e.PosInfU()))
}

// exactUnums calls fn with every finite exact unum in e.
func exactUnums(e *Env, fn func(u Unum)) {
	uts := uint(e.utagsize)
	for es := 1; es <= e.esizemax; es++ {
		for fs := 1; fs <= e.fsizemax; fs++ {
			tag := e.tagBits(es, fs)
			for body := uint64(0); body < 1<<uint(1+es+fs); body++ {
				u := UnumFrom64(body).Lsh(uts).Add64(tag)
				if e.IsNaN(u) || e.IsInf(u) {
					continue
				}
				fn(u)
			}
		}
	}
}

func TestPromotePreservesValue(t *testing.T) {
	for _, e := range []*Env{MustEnv(1, 1), MustEnv(2, 2), MustEnv(1, 3)} {
		t.Run(e.String(), func(t *testing.T) {
			tt := assert.WrapTB(t)
			exactUnums(e, func(u Unum) {
				want := e.UnumToFloat(u)
				tg := e.Tag(u)

				if tg.FSize < e.fsizemax {
					p := e.PromoteFraction(u)
					tt.MustEqual(tg.FSize+1, e.Tag(p).FSize)
					tt.MustAssert(e.UnumToFloat(p).Cmp(want) == 0, "fraction %s", u)
					tt.MustEqual(u, e.DemoteFraction(p), "demote fraction %s", p)
				}
				if tg.ESize < e.esizemax {
					p := e.PromoteExponent(u)
					tt.MustEqual(tg.ESize+1, e.Tag(p).ESize)
					tt.MustAssert(e.UnumToFloat(p).Cmp(want) == 0, "exponent %s -> %s", u, p)
					tt.MustAssert(e.IsExact(p))
				}
			})
		})
	}
}

func TestDemoteEncloses(t *testing.T) {
	e := MustEnv(2, 2)
	exactUnums(e, func(u Unum) {
		if e.Tag(u).ESize == 1 {
			return
		}
		t.Run(fmt.Sprintf("%#x", u), func(t *testing.T) {
			tt := assert.WrapTB(t)
			d := e.DemoteExponent(u)
			tt.MustEqual(e.Tag(u).ESize-1, e.Tag(d).ESize)

			// Either the value survives, or the ubit marks an interval that
			// still holds it.
			g, dg := e.UnumToG(u), e.UnumToG(d)
			if e.IsExact(d) {
				tt.MustAssert(dg.Same(g), "%s became %s", g, dg)
			} else {
				tt.MustAssert(dg.SomewhereEqual(g), "%s became %s", g, dg)
			}
		})
	})
}
