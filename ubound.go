package unum

import (
	"fmt"
)

// Ubound is either a single unum, or a pair of unums describing the interval
// from the start of the left one to the end of the right one.
type Ubound struct {
	l, r Unum
	pair bool
}

func Single(u Unum) Ubound { return Ubound{l: u, r: u} }

// Pair creates a two-unum bound. It is not normalised; use Env.Unify to
// collapse it when both ends describe the same value.
func Pair(l, r Unum) Ubound { return Ubound{l: l, r: r, pair: true} }

func (b Ubound) IsPair() bool { return b.pair }
func (b Ubound) Left() Unum   { return b.l }

// Right returns the right unum of a pair, or the only unum of a single.
func (b Ubound) Right() Unum {
	if b.pair {
		return b.r
	}
	return b.l
}

func (b Ubound) String() string {
	if b.pair {
		return fmt.Sprintf("{%#x, %#x}", b.l, b.r)
	}
	return b.l.String()
}

// NegateUnum flips the sign bit of u. Zero is left alone.
func (e *Env) NegateUnum(u Unum) Unum {
	if u.IsZero() {
		return u
	}
	return u.Xor(e.signMask(u))
}

// NegateBound negates both ends of b, swapping them if b is a pair.
func (e *Env) NegateBound(b Ubound) Ubound {
	if !b.pair {
		return Single(e.NegateUnum(b.l))
	}
	return Pair(e.NegateUnum(b.r), e.NegateUnum(b.l))
}

func (e *Env) Add(u, v Ubound) Ubound {
	return e.fromG(e.BoundToG(u).Add(e.BoundToG(v)))
}

func (e *Env) Sub(u, v Ubound) Ubound {
	return e.fromG(e.BoundToG(u).Sub(e.BoundToG(v)))
}

func (e *Env) Mul(u, v Ubound) Ubound {
	return e.fromG(e.BoundToG(u).Mul(e.BoundToG(v)))
}

// Quo divides u by v. A divisor that contains zero gives NaN.
func (e *Env) Quo(u, v Ubound) Ubound {
	return e.fromG(e.BoundToG(u).Quo(e.BoundToG(v)))
}

func (e *Env) Square(u Ubound) Ubound {
	return e.fromG(e.BoundToG(u).Square())
}

func (e *Env) Sqrt(u Ubound) Ubound {
	return e.fromG(e.BoundToG(u).Sqrt())
}

// Neg is NegateBound; it needs no trip through the g-layer.
func (e *Env) Neg(u Ubound) Ubound {
	return e.NegateBound(u)
}

func (e *Env) Abs(u Ubound) Ubound {
	return e.fromG(e.BoundToG(u).Abs())
}

func (e *Env) Min(u, v Ubound) Ubound {
	return e.fromG(e.BoundToG(u).Min(e.BoundToG(v)))
}

func (e *Env) Max(u, v Ubound) Ubound {
	return e.fromG(e.BoundToG(u).Max(e.BoundToG(v)))
}

// ClipLow raises either end of u that is below the matching end of v.
func (e *Env) ClipLow(u, v Ubound) (Ubound, bool) {
	g, clipped := e.BoundToG(u).ClipLow(e.BoundToG(v))
	return e.fromG(g), clipped
}

// ClipHigh lowers either end of u that is above the matching end of v.
func (e *Env) ClipHigh(u, v Ubound) (Ubound, bool) {
	g, clipped := e.BoundToG(u).ClipHigh(e.BoundToG(v))
	return e.fromG(g), clipped
}

func (e *Env) Less(u, v Ubound) bool {
	return e.BoundToG(u).Less(e.BoundToG(v))
}

func (e *Env) Greater(u, v Ubound) bool {
	return e.BoundToG(u).Greater(e.BoundToG(v))
}

func (e *Env) NowhereEqual(u, v Ubound) bool {
	return e.BoundToG(u).NowhereEqual(e.BoundToG(v))
}

func (e *Env) SomewhereEqual(u, v Ubound) bool {
	return e.BoundToG(u).SomewhereEqual(e.BoundToG(v))
}

// Same reports whether u and v describe identical intervals, regardless of
// how they are encoded.
func (e *Env) Same(u, v Ubound) bool {
	return e.BoundToG(u).Same(e.BoundToG(v))
}

func (e *Env) CmpEnd(u Ubound, ue End, v Ubound, ve End) int {
	return e.BoundToG(u).CmpEnd(ue, e.BoundToG(v), ve)
}

func (e *Env) SpansZero(u Ubound) bool {
	return e.BoundToG(u).SpansZero()
}

// Collapse returns the single unum that b describes, unifying a pair if
// needed. A pair that cannot be unified gives the quiet NaN.
func (e *Env) Collapse(b Ubound) Unum {
	if !b.pair {
		return b.l
	}
	a := e.Unify(b)
	if a.pair {
		return e.qNaNu
	}
	return a.l
}

func (e *Env) UnumAdd(u, v Unum) Unum {
	return e.Collapse(e.Add(Single(u), Single(v)))
}

func (e *Env) UnumSub(u, v Unum) Unum {
	return e.Collapse(e.Sub(Single(u), Single(v)))
}

func (e *Env) UnumMul(u, v Unum) Unum {
	return e.Collapse(e.Mul(Single(u), Single(v)))
}

func (e *Env) UnumQuo(u, v Unum) Unum {
	return e.Collapse(e.Quo(Single(u), Single(v)))
}

func (e *Env) UnumSquare(u Unum) Unum {
	return e.Collapse(e.Square(Single(u)))
}

func (e *Env) UnumSqrt(u Unum) Unum {
	return e.Collapse(e.Sqrt(Single(u)))
}

func (e *Env) UnumNeg(u Unum) Unum {
	return e.NegateUnum(u)
}

func (e *Env) UnumAbs(u Unum) Unum {
	return e.Collapse(e.Abs(Single(u)))
}

func (e *Env) UnumGuess(u Unum) Unum {
	return e.Guess(Single(u))
}

func (e *Env) UnumLess(u, v Unum) bool {
	return e.Less(Single(u), Single(v))
}

func (e *Env) UnumGreater(u, v Unum) bool {
	return e.Greater(Single(u), Single(v))
}

func (e *Env) UnumNowhereEqual(u, v Unum) bool {
	return e.NowhereEqual(Single(u), Single(v))
}

func (e *Env) UnumSomewhereEqual(u, v Unum) bool {
	return e.SomewhereEqual(Single(u), Single(v))
}

func (e *Env) UnumSame(u, v Unum) bool {
	return e.Same(Single(u), Single(v))
}
