package unum

import (
	"math/big"
	"math/bits"
)

// Unify looks for the narrowest ubound that still describes exactly the same
// interval as b, ideally a single unum. If nothing narrower is found, b is
// returned unchanged.
func (e *Env) Unify(b Ubound) Ubound {
	return e.unify(b, 0)
}

func (e *Env) unify(b Ubound, depth int) Ubound {
	if depth > e.unifyDepth {
		return b
	}

	u, v := b.Left(), b.Right()
	if e.IsNaN(u) || e.IsNaN(v) {
		return Single(e.qNaNu)
	}
	if u == e.posinfu && v == e.posinfu {
		return Single(e.posinfu)
	}
	if u == e.neginfu && v == e.neginfu {
		return Single(e.neginfu)
	}

	gu, gv := e.UnumToG(u), e.UnumToG(v)
	zero := GInt(0)
	if e.IsInf(u) || e.IsInf(v) || (gu.Less(zero) && !gv.Less(zero)) {
		return b
	}
	if gu.Less(zero) && gv.Less(zero) {
		return e.NegateBound(e.unifyPos(e.NegateBound(b), depth))
	}

	// Same value, so use the smaller bit string.
	if gu.Same(gv) {
		if u.LessThan(v) {
			return Single(u)
		}
		return Single(v)
	}
	return e.unifyPos(b, depth)
}

var unifyBarriers = []Gbnd{GInt(0), GInt(1), GInt(2), GInt(3)}

// unifyPos seeks a single-ULP enclosure for a ubound that is not below
// zero.
func (e *Env) unifyPos(b Ubound, depth int) Ubound {
	u, v := b.Left(), b.Right()
	gu, gv := e.UnumToG(u), e.UnumToG(v)

	if gu.Same(gv) {
		return e.gToBound(gu, depth+1)
	}

	// Exact 0, 1, 2 or 3 inside the interval would be lost.
	gb := e.BoundToG(b)
	for _, x := range unifyBarriers {
		if gb.SomewhereEqual(x) {
			return b
		}
	}

	uu, _ := e.PromotePair(e.gnumToUnum(gu.L), e.efsizemask)
	uv, _ := e.PromotePair(e.gnumToUnum(gv.R), e.efsizemask)

	// Nudge each end one half-ULP toward the interior.
	if e.IsInexact(u) {
		uu = uu.Add(e.ubitmask)
	} else {
		uu = uu.Sub(e.ubitmask)
	}
	if e.IsInexact(v) {
		uv = uv.Sub(e.ubitmask)
	} else {
		uv = uv.Add(e.ubitmask)
	}
	if uu == uv {
		return Single(uu)
	}

	gv = e.UnumToG(uv)
	if gv.R.F.IsInf() && gv.R.F.Sign() > 0 && gv.R.Open {
		return e.unifyOpenInf(uu)
	}

	for uu != uv && e.Tag(uu).ESize > 1 {
		uw, ux := e.DemoteExponent(uu), e.DemoteExponent(uv)
		gw, gx := e.UnumToG(uw), e.UnumToG(ux)
		if gw.L.F.Cmp(gx.L.F) >= 0 || gw.R.F.Cmp(gx.R.F) >= 0 ||
			(gx.R.F.IsInf() && gx.R.F.Sign() > 0) {
			break
		}
		uu, uv = uw, ux
	}

	for uu != uv {
		t := e.Tag(uu)
		if t.FSize <= 1 || e.fractionField(uu, t) == e.fractionField(uv, t) {
			break
		}
		uu, uv = e.DemoteFraction(uu), e.DemoteFraction(uv)
	}

	if uu != uv && e.IsInexact(uu) && uu.And(e.floatMask(e.Tag(uu))).IsZero() {
		if gv = e.UnumToG(uv); gv.Less(GInt(1)) {
			return Single(e.unifyOpenZero(uv))
		}
	}

	if uu == uv {
		return Single(uu)
	}
	return b
}

// unifyOpenInf handles an upper end that has become the open interval to
// infinity.
func (e *Env) unifyOpenInf(uu Unum) Ubound {
	if e.UnumToG(e.maxrealu).Less(e.UnumToG(uu)) {
		return Single(e.maxrealu.Or(e.ubitmask))
	}

	// Demote the lower end until it reaches infinity too.
	for {
		g := e.UnumToG(uu)
		if g.R.F.IsInf() && g.R.F.Sign() > 0 {
			break
		}
		var next Unum
		if e.Tag(uu).ESize > 1 {
			next = e.DemoteExponent(uu)
		} else {
			next = e.DemoteFraction(uu)
		}
		if next == uu {
			break
		}
		uu = next
	}
	return Single(uu)
}

// unifyOpenZero finds the open interval from zero that covers an upper end
// below 1: (0, 2^-(2^n-1)) where n = floor(log2(1-ceil(log2(upper)))).
func (e *Env) unifyOpenZero(uv Unum) Unum {
	ux := uv
	if e.IsExact(uv) {
		ux = uv.Add(e.ubitmask)
	}
	x := e.UnumToG(ux).R.F

	mant := new(big.Float)
	exp := x.MantExp(mant)
	if mant.Cmp(bigHalf) == 0 {
		exp--
	}
	exp = 1 - exp

	n := bits.Len(uint(exp)) - 1
	if n > e.esizemax {
		n = e.esizemax
	}
	f := new(big.Float).SetMantExp(bigFloat1, -(1<<uint(n) - 1))
	return e.FloatToUnum(f).Sub(e.ubitmask)
}
