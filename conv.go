package unum

import (
	"math"
	"math/big"
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// UnumToFloat decodes the value of u, ignoring the ubit. Infinity and NaN
// are not handled; they decode as the finite value of their bit pattern.
func (e *Env) UnumToFloat(u Unum) *big.Float {
	t := e.Tag(u)
	bias := 1<<uint(t.ESize-1) - 1
	expo := e.exponentField(u, t)
	expoValue := int(expo) - bias
	if expo == 0 {
		expoValue++
	}

	frac := e.fractionField(u, t)
	if expo != 0 {
		frac = frac.SetBit(uint(t.FSize))
	}
	f := e.newFloat().SetInt(frac.AsBigInt())
	f.SetMantExp(f, expoValue-t.FSize)
	if u.Bit(e.signPos(t)) != 0 && f.Sign() != 0 {
		f.Neg(f)
	}
	return f
}

// subnormalScale is log2 of the smallest subnormal.
func (e *Env) subnormalScale() int {
	return -(1<<uint(e.esizemax-1) + e.fsizemax - 2)
}

// FloatToUnum encodes f in the shortest unum that holds it exactly, or in the
// inexact unum of maximum fraction width that lies just below it. Magnitudes
// beyond the largest real (including infinity) saturate to the open interval
// above it; magnitudes below the smallest subnormal become an inexact zero.
func (e *Env) FloatToUnum(f *big.Float) Unum {
	if f.Sign() == 0 {
		return zeroUnum
	}
	neg := f.Sign() < 0
	absf := new(big.Float).Abs(f)

	if absf.IsInf() || absf.Cmp(e.maxreal) > 0 {
		u := e.maxrealu.Or(e.ubitmask)
		if neg {
			u = u.Or(e.signbigu)
		}
		return u
	}

	if absf.Cmp(e.smallsubnormal) < 0 {
		u := e.utagmask
		if neg {
			u = u.Or(e.signbigu)
		}
		return u
	}

	if absf.Cmp(e.smallnormal) < 0 {
		return e.subnormalToUnum(absf, neg)
	}

	sf := scale(absf)
	uts := uint(e.utagsize)

	// Powers of two are sometimes more concise as subnormals.
	if absf.MinPrec() == 1 && sf <= 0 {
		tmp := uint(1 - sf)
		if bits.OnesCount(tmp) == 1 {
			es := uint(bits.Len(tmp))
			u := UnumFrom64(uint64(es-1) << uint(e.fsizesize)).Or(e.ulpu)
			if neg {
				u = u.SetBit(es + 1 + uts)
			}
			return u
		}
	}

	fs := int(absf.MinPrec()) - 1
	if fs <= e.fsizemax {
		return e.exactToUnum(absf, sf, fs, neg)
	}
	return e.inexactToUnum(absf, sf, neg)
}

func (e *Env) subnormalToUnum(absf *big.Float, neg bool) Unum {
	q := new(big.Float).SetMantExp(absf, -e.subnormalScale())
	qi, acc := q.Int(nil)
	inexact := acc != big.Exact

	efbits := e.efsizemask.lo
	spos := uint(e.maxubits - 1)
	if !inexact {
		for qi.Bit(0) == 0 {
			qi.Rsh(qi, 1)
			efbits--
			spos--
		}
	}

	frac, _ := UnumFromBigInt(qi)
	u := frac.Lsh(uint(e.utagsize)).Add64(efbits)
	if inexact {
		u = u.Or(e.ubitmask)
	}
	if neg {
		u = u.SetBit(spos)
	}
	return u
}

// exactToUnum encodes a normal absf with scale sf that needs fs fraction
// bits.
func (e *Env) exactToUnum(absf *big.Float, sf, fs int, neg bool) Unum {
	nef := ne(absf)
	uts := uint(e.utagsize)

	fsField := fs
	if fs > 0 {
		fsField--
	}
	u := UnumFrom64(uint64(fsField) | uint64(nef-1)<<uint(e.fsizesize))

	if fs > 0 {
		m := new(big.Float).SetMantExp(absf, fs-sf)
		mi, _ := m.Int(nil)
		mi.SetBit(mi, fs, 0) // hidden bit
		frac, _ := UnumFromBigInt(mi)
		u = u.Or(frac.Lsh(uts))
	}

	width := uint(fs)
	if fs == 0 {
		width = 1
	}
	expo := uint64(sf + 1<<uint(nef-1) - 1)
	u = u.Or(UnumFrom64(expo).Lsh(uts + width))
	if neg {
		u = u.SetBit(uts + width + uint(nef))
	}
	return u
}

// inexactToUnum rounds absf up at the maximum fraction width, then backs off
// by one ULP to the open interval just below.
func (e *Env) inexactToUnum(absf *big.Float, sf int, neg bool) Unum {
	uts := uint(e.utagsize)
	sff := sf - e.fsizemax

	m := new(big.Float).SetMantExp(absf, -sff)
	c, acc := m.Int(nil)
	if acc != big.Exact {
		c.Add(c, big1)
	}

	s1 := sf
	if c.BitLen() > e.fsizemax+1 {
		s1++
		c.SetInt64(0)
	} else {
		c.SetBit(c, e.fsizemax, 0)
	}

	ne2 := ne(absf)
	if n := neScale(s1); n > ne2 {
		ne2 = n
	}

	frac, _ := UnumFromBigInt(c)
	u := e.fsizemask.
		Or(UnumFrom64(uint64(ne2-1) << uint(e.fsizesize))).
		Or(e.ubitmask).
		Or(frac.Lsh(uts)).
		Or(UnumFrom64(uint64(s1 + 1<<uint(ne2-1) - 1)).Lsh(uts + uint(e.fsizemax)))

	// Borrows from the exponent when the fraction is zero.
	u = u.Sub(e.ulpu)
	if neg {
		u = u.SetBit(uts + uint(e.fsizemax) + uint(ne2))
	}
	return u
}

// encode converts f under the env's rounding policy.
func (e *Env) encode(f *big.Float) Unum {
	u := e.FloatToUnum(f)
	if e.rounding == RoundNearestEven {
		u = e.roundNearestEven(u)
	}
	return u
}

// roundNearestEven replaces an inexact unum with the even exact neighbour,
// then drops the trailing zero that leaves in the fraction.
func (e *Env) roundNearestEven(u Unum) Unum {
	if e.IsExact(u) {
		return u
	}
	if u.Bit(uint(e.utagsize)) != 0 {
		u = u.Add(e.ubitmask)
	} else {
		u = u.Sub(e.ubitmask)
	}
	return e.DemoteFraction(u)
}

// UnumToG decodes u into a general interval.
func (e *Env) UnumToG(u Unum) Gbnd {
	if e.IsNaN(u) {
		return GNaN()
	}
	if s := e.infSign(u); s != 0 {
		return GInf(s)
	}
	if e.IsExact(u) {
		f := e.UnumToFloat(u)
		return Gbnd{L: Gnum{F: f}, R: Gnum{F: new(big.Float).Copy(f)}}
	}

	bu := e.bigU(u).Or(e.ubitmask)
	if u == bu {
		return Gbnd{L: Gnum{F: e.UnumToFloat(u), Open: true}, R: gInf(1, true)}
	}
	if u == bu.Or(e.signMask(u)) {
		return Gbnd{L: gInf(-1, true), R: Gnum{F: e.UnumToFloat(u), Open: true}}
	}

	next := u.Add(e.ulpu)
	if e.IsNegative(u) {
		return Gbnd{
			L: Gnum{F: e.UnumToFloat(next), Open: true},
			R: Gnum{F: e.UnumToFloat(u), Open: true},
		}
	}
	return Gbnd{
		L: Gnum{F: e.UnumToFloat(u), Open: true},
		R: Gnum{F: e.UnumToFloat(next), Open: true},
	}
}

// BoundToG decodes b into a general interval.
func (e *Env) BoundToG(b Ubound) Gbnd {
	if !b.pair {
		return e.UnumToG(b.l)
	}
	if e.IsNaN(b.l) || e.IsNaN(b.r) {
		return GNaN()
	}
	return Gbnd{L: e.UnumToG(b.l).L, R: e.UnumToG(b.r).R}
}

// illFormed reports whether g has no unum encoding other than NaN.
func (e *Env) illFormed(g Gbnd) bool {
	if g.NaN {
		return true
	}
	switch c := g.L.F.Cmp(g.R.F); {
	case c > 0:
		return true
	case c == 0:
		if e.nanRule == NaNRuleXor {
			return g.L.Open != g.R.Open
		}
		return g.L.Open || g.R.Open
	}
	return false
}

// gnumToUnum encodes the value of an endpoint, ignoring its open flag.
func (e *Env) gnumToUnum(g Gnum) Unum {
	if g.F.IsInf() {
		if g.F.Sign() > 0 {
			return e.posinfu
		}
		return e.neginfu
	}
	return e.FloatToUnum(g.F)
}

// ubLeft finds the unum that starts where the left endpoint g does.
func (e *Env) ubLeft(g Gnum) Unum {
	if g.F.IsInf() && g.F.Sign() < 0 {
		if g.Open {
			return e.negopeninfu
		}
		return e.neginfu
	}
	u := e.FloatToUnum(g.F)
	if e.UnumToFloat(u).Cmp(g.F) == 0 {
		if g.Open {
			if g.F.Sign() < 0 {
				u = u.Sub(e.ulpu)
			}
			u = u.Or(e.ubitmask)
		}
		return u
	}
	if g.Open {
		u = u.Or(e.ubitmask)
	}
	return u
}

// ubRight finds the unum that ends where the right endpoint g does. An open
// zero on the right is the negative open zero.
func (e *Env) ubRight(g Gnum) Unum {
	if g.F.IsInf() && g.F.Sign() > 0 {
		if g.Open {
			return e.posopeninfu
		}
		return e.posinfu
	}
	if g.Open && g.F.Sign() == 0 {
		return e.negopenzerou
	}
	u := e.FloatToUnum(g.F)
	if e.UnumToFloat(u).Cmp(g.F) == 0 {
		if g.Open {
			if g.F.Sign() >= 0 {
				u = u.Sub(e.ulpu)
			}
			u = u.Or(e.ubitmask)
		}
		return u
	}
	if g.Open {
		u = u.Or(e.ubitmask)
	}
	return u
}

// GToBound encodes g as the closest ubound, unified to a single unum when
// that loses nothing.
func (e *Env) GToBound(g Gbnd) Ubound {
	return e.gToBound(g, 0)
}

func (e *Env) gToBound(g Gbnd, depth int) Ubound {
	if e.illFormed(g) {
		return Single(e.qNaNu)
	}

	l, r := e.gnumToUnum(g.L), e.gnumToUnum(g.R)
	if g.L.Open == g.R.Open && l == r {
		return Single(l)
	}

	ub := Pair(e.ubLeft(g.L), e.ubRight(g.R))
	a := e.unify(ub, depth+1)
	if !e.BoundToG(a).Same(e.BoundToG(ub)) {
		return ub
	}
	return a
}

// GToExactBound encodes g as the single unum nearest its midpoint.
func (e *Env) GToExactBound(g Gbnd) Ubound {
	if e.illFormed(g) {
		return Single(e.qNaNu)
	}
	return Single(e.roundNearestEven(e.midpointUnum(g)))
}

// fromG encodes g under the env's rounding policy.
func (e *Env) fromG(g Gbnd) Ubound {
	if e.rounding == RoundNearestEven {
		return e.GToExactBound(g)
	}
	return e.GToBound(g)
}

func (e *Env) midpointUnum(g Gbnd) Unum {
	f, inf := g.midpoint(e.prec, big.ToNearestEven)
	switch {
	case inf > 0:
		return e.posinfu
	case inf < 0:
		return e.neginfu
	}
	return e.FloatToUnum(f)
}

// Guess collapses b to the unum nearest the midpoint of its interval, in
// imitation of float behaviour.
func (e *Env) Guess(b Ubound) Unum {
	g := e.BoundToG(b)
	if g.NaN {
		return e.qNaNu
	}
	return e.roundNearestEven(e.midpointUnum(g))
}

// ToBigFloat returns the midpoint of b, clamped to the finite range of e.
// NaN gives zero. A midpoint too wide for the scratch precision is rounded
// under the env's MidpointRounding.
func (e *Env) ToBigFloat(b Ubound) *big.Float {
	g := e.BoundToG(b)
	if g.NaN {
		return e.newFloat()
	}
	f, inf := g.midpoint(e.prec, e.midpointRounding.mode())
	negMax := new(big.Float).Neg(e.maxreal)
	switch {
	case inf < 0 || (inf == 0 && f.Cmp(negMax) < 0):
		return negMax
	case inf > 0 || f.Cmp(e.maxreal) > 0:
		return e.MaxReal()
	}
	return f
}

// FromInt encodes v as a single unum.
func FromInt[T constraints.Integer](env *Env, v T) Ubound {
	f := new(big.Float).SetPrec(64)
	if v < 0 {
		f.SetInt64(int64(v))
	} else {
		f.SetUint64(uint64(v))
	}
	return Single(env.encode(f))
}

// FromFloat encodes v as a single unum. NaN gives the quiet NaN, and the
// infinities map to the infinite unums.
func FromFloat[T constraints.Float](env *Env, v T) Ubound {
	fv := float64(v)
	switch {
	case math.IsNaN(fv):
		return Single(env.qNaNu)
	case math.IsInf(fv, 1):
		return Single(env.posinfu)
	case math.IsInf(fv, -1):
		return Single(env.neginfu)
	}
	return Single(env.encode(new(big.Float).SetFloat64(fv)))
}

func intLimits[T constraints.Integer]() (lo, hi T) {
	size := uint(unsafe.Sizeof(lo)) * 8
	if ^T(0) < 0 {
		hi = T(1)<<(size-1) - 1
		lo = -hi - 1
		return lo, hi
	}
	return 0, ^T(0)
}

// ToInt rounds the midpoint of b to an integer under the env's
// MidpointRounding, clamped to the range of T. NaN gives 0.
func ToInt[T constraints.Integer](env *Env, b Ubound) T {
	g := env.BoundToG(b)
	if g.NaN {
		return 0
	}
	lo, hi := intLimits[T]()
	signed := lo < 0

	f, inf := g.midpoint(env.prec, env.midpointRounding.mode())
	if inf < 0 {
		return lo
	} else if inf > 0 {
		return hi
	}

	i := roundInt(f, env.midpointRounding)
	if signed {
		if i.Cmp(big.NewInt(int64(lo))) < 0 {
			return lo
		} else if i.Cmp(big.NewInt(int64(hi))) > 0 {
			return hi
		}
		return T(i.Int64())
	}
	if i.Sign() < 0 {
		return lo
	} else if i.Cmp(new(big.Int).SetUint64(uint64(hi))) > 0 {
		return hi
	}
	return T(i.Uint64())
}

// ToFloat rounds the midpoint of b to a T under the env's MidpointRounding.
// NaN gives NaN and the infinities are kept. A finite midpoint beyond the
// range of T truncates to T's largest finite value, or rounds to infinity.
func ToFloat[T constraints.Float](env *Env, b Ubound) T {
	g := env.BoundToG(b)
	if g.NaN {
		return T(math.NaN())
	}
	mode := env.midpointRounding
	f, inf := g.midpoint(env.prec, mode.mode())
	if inf != 0 {
		return T(math.Inf(inf))
	}
	var z T
	if unsafe.Sizeof(z) == 4 {
		if mode == MidpointTruncate {
			f = truncFloat(f, 24, -125, 128, math.MaxFloat32)
		}
		v, _ := f.Float32()
		return T(v)
	}
	if mode == MidpointTruncate {
		f = truncFloat(f, 53, -1021, 1024, math.MaxFloat64)
	}
	v, _ := f.Float64()
	return T(v)
}

// roundInt rounds f to an integer under r.
func roundInt(f *big.Float, r MidpointRounding) *big.Int {
	i, acc := f.Int(nil)
	if r != MidpointNearestEven || acc == big.Exact {
		return i
	}

	// Int truncated; step away from zero if the dropped part is over a half,
	// or exactly a half with i odd.
	frac := new(big.Float).SetPrec(f.Prec()).Sub(f, new(big.Float).SetInt(i))
	frac.Abs(frac)
	c := frac.Cmp(bigHalf)
	if c > 0 || (c == 0 && i.Bit(0) == 1) {
		if f.Sign() < 0 {
			i.Sub(i, big1)
		} else {
			i.Add(i, big1)
		}
	}
	return i
}

// truncFloat rounds f toward zero so that it converts exactly to a binary
// float with mbits of mantissa. minExp and maxExp are the MantExp of the
// smallest normal and the largest finite value; largest is the largest finite
// value itself.
func truncFloat(f *big.Float, mbits, minExp, maxExp int, largest float64) *big.Float {
	if f.Sign() == 0 {
		return f
	}
	exp := f.MantExp(nil)
	if exp > maxExp {
		out := new(big.Float).SetFloat64(largest)
		if f.Sign() < 0 {
			out.Neg(out)
		}
		return out
	}

	p := mbits
	if exp < minExp {
		p -= minExp - exp
	}
	if p <= 0 {
		out := new(big.Float)
		if f.Sign() < 0 {
			out.Neg(out)
		}
		return out
	}
	return new(big.Float).SetPrec(uint(p)).SetMode(big.ToZero).Set(f)
}
