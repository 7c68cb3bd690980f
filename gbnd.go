package unum

import (
	"math/big"
)

// End selects one end of a Gbnd when comparing endpoints. The values take
// part in the ordering of open and closed endpoints that share a value:
//
//	n] < [n < (n    and    n) < n] (closed ends of either kind compare equal)
type End int

const (
	RightEnd End = 0
	LeftEnd  End = 2
)

func (e End) String() string {
	if e == LeftEnd {
		return "left"
	}
	return "right"
}

// Gnum is one endpoint of a general interval. Infinity is carried by F
// itself.
type Gnum struct {
	F    *big.Float
	Open bool
}

type gkind int

const (
	kindNegInf gkind = iota
	kindNeg
	kindZero
	kindPos
	kindPosInf
)

func (g Gnum) kind() gkind {
	switch {
	case g.F.IsInf() && g.F.Sign() < 0:
		return kindNegInf
	case g.F.IsInf():
		return kindPosInf
	case g.F.Sign() < 0:
		return kindNeg
	case g.F.Sign() > 0:
		return kindPos
	default:
		return kindZero
	}
}

func (g Gnum) IsInf() bool { return g.F.IsInf() }
func (g Gnum) Sign() int   { return g.F.Sign() }

func (g Gnum) closedZero() bool { return !g.Open && g.kind() == kindZero }
func (g Gnum) openZero() bool   { return g.Open && g.kind() == kindZero }
func (g Gnum) closedInf() bool  { return !g.Open && g.F.IsInf() }
func (g Gnum) openInf() bool    { return g.Open && g.F.IsInf() }

// below reports whether g is negative or an open zero, which, on the right
// end of an interval, puts everything the interval holds below zero.
func (g Gnum) below() bool { return g.Sign() < 0 || g.openZero() }

// above reports whether g is positive or an open zero.
func (g Gnum) above() bool { return g.Sign() > 0 || g.openZero() }

// reaches reports whether g is strictly positive or a closed zero.
func (g Gnum) reachesUp() bool { return g.Sign() > 0 || g.closedZero() }

// reachesDown reports whether g is strictly negative or a closed zero.
func (g Gnum) reachesDown() bool { return g.Sign() < 0 || g.closedZero() }

func (g Gnum) neg() Gnum {
	f := new(big.Float).Neg(g.F)
	if f.Sign() == 0 && f.Signbit() {
		f.Abs(f)
	}
	return Gnum{F: f, Open: g.Open}
}

func (g Gnum) abs() Gnum {
	return Gnum{F: new(big.Float).Abs(g.F), Open: g.Open}
}

func (g Gnum) copy() Gnum {
	return Gnum{F: new(big.Float).Copy(g.F), Open: g.Open}
}

func gZero(open bool) Gnum {
	return Gnum{F: new(big.Float), Open: open}
}

func gInf(sign int, open bool) Gnum {
	return Gnum{F: new(big.Float).SetInf(sign < 0), Open: open}
}

// cmpGnum compares endpoints, breaking ties on value by open-ness and end.
func cmpGnum(x Gnum, xe End, y Gnum, ye End) int {
	if x.F.IsInf() && !y.F.IsInf() {
		return x.F.Sign()
	}
	if !x.F.IsInf() && y.F.IsInf() {
		return -y.F.Sign()
	}
	if res := x.F.Cmp(y.F); res != 0 {
		return res
	}
	xo, yo := 1, 1
	if x.Open {
		xo = int(xe)
	}
	if y.Open {
		yo = int(ye)
	}
	return xo - yo
}

// Gbnd is a general interval: the scratchpad the arithmetic is done in,
// with more precision than any unum environment can represent.
//
// Gbnd is a value type; all operations return new values, and no operation
// modifies the *big.Float of an operand.
type Gbnd struct {
	L, R Gnum
	NaN  bool
}

func GNaN() Gbnd {
	return Gbnd{L: gZero(true), R: gZero(true), NaN: true}
}

// GPoint returns the closed, single-point interval [f, f]. f may be infinite.
func GPoint(f *big.Float) Gbnd {
	return Gbnd{
		L: Gnum{F: new(big.Float).Copy(f)},
		R: Gnum{F: new(big.Float).Copy(f)},
	}
}

func GInt(v int64) Gbnd      { return GPoint(new(big.Float).SetInt64(v)) }
func GUint(v uint64) Gbnd    { return GPoint(new(big.Float).SetUint64(v)) }
func GInf(sign int) Gbnd     { return Gbnd{L: gInf(sign, false), R: gInf(sign, false)} }
func GInterval(l, r Gnum) Gbnd { return Gbnd{L: l.copy(), R: r.copy()} }

// GFloat64 returns a point for a finite or infinite f, or NaN.
func GFloat64(f float64) Gbnd {
	if f != f {
		return GNaN()
	}
	return GPoint(new(big.Float).SetFloat64(f))
}

// Less reports whether g is strictly less than h.
func (g Gbnd) Less(h Gbnd) bool {
	return !(g.NaN || h.NaN) && cmpGnum(g.R, RightEnd, h.L, LeftEnd) < 0
}

// Greater reports whether g is strictly greater than h.
func (g Gbnd) Greater(h Gbnd) bool {
	return !(g.NaN || h.NaN) && cmpGnum(g.L, LeftEnd, h.R, RightEnd) > 0
}

// NowhereEqual reports whether g and h are disjoint.
func (g Gbnd) NowhereEqual(h Gbnd) bool {
	return !(g.NaN || h.NaN) && (g.Less(h) || g.Greater(h))
}

// SomewhereEqual reports whether g and h overlap.
func (g Gbnd) SomewhereEqual(h Gbnd) bool {
	return !(g.NaN || h.NaN) && !(g.Less(h) || g.Greater(h))
}

// Same reports whether g and h are identical. Two NaNs are the same.
func (g Gbnd) Same(h Gbnd) bool {
	if g.NaN || h.NaN {
		return g.NaN && h.NaN
	}
	return g.L.F.Cmp(h.L.F) == 0 && g.L.Open == h.L.Open &&
		g.R.F.Cmp(h.R.F) == 0 && g.R.Open == h.R.Open
}

// CmpEnd compares the ge end of g with the he end of h. NaN compares as 0.
func (g Gbnd) CmpEnd(ge End, h Gbnd, he End) int {
	if g.NaN || h.NaN {
		return 0
	}
	return cmpGnum(g.end(ge), ge, h.end(he), he)
}

func (g Gbnd) end(e End) Gnum {
	if e == LeftEnd {
		return g.L
	}
	return g.R
}

// SpansZero reports whether g contains zero.
func (g Gbnd) SpansZero() bool {
	return g.L.closedZero() || g.R.closedZero() || (g.L.Sign() < 0 && g.R.Sign() > 0)
}

// IsPoint reports whether g is a closed interval of one value.
func (g Gbnd) IsPoint() bool {
	return !g.NaN && !g.L.Open && !g.R.Open && g.L.F.Cmp(g.R.F) == 0
}

func (g Gbnd) prec() uint {
	return maxPrec(g.L.F, g.R.F)
}

func maxPrec(fs ...*big.Float) uint {
	p := uint(minGPrec)
	for _, f := range fs {
		if f.Prec() > p {
			p = f.Prec()
		}
	}
	return p
}

func (g Gbnd) Neg() Gbnd {
	if g.NaN {
		return GNaN()
	}
	return Gbnd{L: g.R.neg(), R: g.L.neg()}
}

// plusLeft applies the left endpoint table for addition; it returns false if
// the result is NaN.
func plusLeft(x, y Gnum, prec uint) (Gnum, bool) {
	xk, yk := x.kind(), y.kind()
	switch {
	case xk == kindNegInf && !x.Open:
		if yk == kindPosInf && !y.Open {
			return Gnum{}, false
		}
		return gInf(-1, false), true
	case yk == kindNegInf && !y.Open:
		if xk == kindPosInf && !x.Open {
			return Gnum{}, false
		}
		return gInf(-1, false), true
	case (xk == kindPosInf && !x.Open) || (yk == kindPosInf && !y.Open):
		return gInf(1, false), true
	case xk == kindNegInf || yk == kindNegInf:
		return gInf(-1, true), true
	}
	return addRounded(x, y, prec, big.ToNegativeInf), true
}

func plusRight(x, y Gnum, prec uint) (Gnum, bool) {
	xk, yk := x.kind(), y.kind()
	switch {
	case xk == kindNegInf && !x.Open:
		if yk == kindPosInf && !y.Open {
			return Gnum{}, false
		}
		return gInf(-1, false), true
	case yk == kindNegInf && !y.Open:
		if xk == kindPosInf && !x.Open {
			return Gnum{}, false
		}
		return gInf(-1, false), true
	case (xk == kindPosInf && !x.Open) || (yk == kindPosInf && !y.Open):
		return gInf(1, false), true
	case xk == kindPosInf || yk == kindPosInf:
		return gInf(1, true), true
	}
	return addRounded(x, y, prec, big.ToPositiveInf), true
}

// addRounded adds two endpoints rounding in the given direction. The result
// is open when either operand is, and also when the sum had to be rounded.
// This intentionally goes beyond combining the operands' open flags: a
// rounded end no longer reaches the true sum, so it cannot stay closed.
// mulRounded and quoRounded follow the same rule.
func addRounded(x, y Gnum, prec uint, mode big.RoundingMode) Gnum {
	z := new(big.Float).SetPrec(prec).SetMode(mode)
	z.Add(x.F, y.F)
	return Gnum{F: z, Open: x.Open || y.Open || z.Acc() != big.Exact}
}

func mulRounded(x, y Gnum, prec uint, mode big.RoundingMode) Gnum {
	z := new(big.Float).SetPrec(prec).SetMode(mode)
	z.Mul(x.F, y.F)
	return Gnum{F: z, Open: x.Open || y.Open || z.Acc() != big.Exact}
}

func quoRounded(x, y Gnum, prec uint, mode big.RoundingMode) Gnum {
	z := new(big.Float).SetPrec(prec).SetMode(mode)
	z.Quo(x.F, y.F)
	return Gnum{F: z, Open: x.Open || y.Open || z.Acc() != big.Exact}
}

func (g Gbnd) Add(h Gbnd) Gbnd {
	if g.NaN || h.NaN {
		return GNaN()
	}
	prec := maxPrec(g.L.F, g.R.F, h.L.F, h.R.F)
	l, ok := plusLeft(g.L, h.L, prec)
	if !ok {
		return GNaN()
	}
	r, ok := plusRight(g.R, h.R, prec)
	if !ok {
		return GNaN()
	}
	return Gbnd{L: l, R: r}
}

func (g Gbnd) Sub(h Gbnd) Gbnd {
	return g.Add(h.Neg())
}

// timesPosLeft multiplies two non-negative left endpoints, rounding down.
func timesPosLeft(x, y Gnum, prec uint) (Gnum, bool) {
	switch {
	case x.closedZero():
		if y.closedInf() {
			return Gnum{}, false
		}
		return gZero(false), true
	case y.closedZero():
		if x.closedInf() {
			return Gnum{}, false
		}
		return gZero(false), true
	case x.openZero():
		if y.closedInf() {
			return gInf(1, false), true
		}
		return gZero(true), true
	case y.openZero():
		if x.closedInf() {
			return gInf(1, false), true
		}
		return gZero(true), true
	case x.closedInf() || y.closedInf():
		return gInf(1, false), true
	}
	return mulRounded(x, y, prec, big.ToNegativeInf), true
}

// timesPosRight multiplies two non-negative right endpoints, rounding up.
func timesPosRight(x, y Gnum, prec uint) (Gnum, bool) {
	switch {
	case x.closedInf():
		if y.closedZero() {
			return Gnum{}, false
		}
		return gInf(1, false), true
	case y.closedInf():
		if x.closedZero() {
			return Gnum{}, false
		}
		return gInf(1, false), true
	case x.openInf():
		if y.closedZero() {
			return gZero(false), true
		}
		return gInf(1, true), true
	case y.openInf():
		if x.closedZero() {
			return gZero(false), true
		}
		return gInf(1, true), true
	case x.closedZero() || y.closedZero():
		return gZero(false), true
	}
	return mulRounded(x, y, prec, big.ToPositiveInf), true
}

// candidates tracks the running left and right endpoint of a product or
// quotient as the corners of the operand rectangle are visited.
type candidates struct {
	l, r Gnum
	nan  bool
}

func (c *candidates) lower(a Gnum, ok bool) {
	if !ok {
		c.nan = true
		return
	}
	if !c.nan && cmpGnum(a, LeftEnd, c.l, LeftEnd) < 0 {
		c.l = a
	}
}

func (c *candidates) upper(a Gnum, ok bool) {
	if !ok {
		c.nan = true
		return
	}
	if !c.nan && cmpGnum(a, RightEnd, c.r, RightEnd) > 0 {
		c.r = a
	}
}

func negOK(a Gnum, ok bool) (Gnum, bool) {
	if !ok {
		return a, false
	}
	return a.neg(), true
}

func (g Gbnd) Mul(h Gbnd) Gbnd {
	if g.NaN || h.NaN {
		return GNaN()
	}
	x, y := g, h
	prec := maxPrec(x.L.F, x.R.F, y.L.F, y.R.F)
	c := candidates{l: gInf(1, false), r: gInf(-1, false)}

	// Left endpoint: the lowest of the four corners, facing uphill.
	if x.L.Sign() >= 0 && y.L.Sign() >= 0 {
		c.lower(timesPosLeft(x.L, y.L, prec))
	}
	if x.R.below() && y.R.below() {
		c.lower(timesPosLeft(x.R.neg(), y.R.neg(), prec))
	}
	if x.L.reachesDown() && y.R.reachesUp() {
		c.lower(negOK(timesPosRight(x.L.neg(), y.R, prec)))
	}
	if x.R.reachesUp() && y.L.reachesDown() {
		c.lower(negOK(timesPosRight(x.R, y.L.neg(), prec)))
	}

	// Right endpoint: the highest corner, facing downhill.
	if x.R.reachesUp() && y.R.reachesUp() {
		c.upper(timesPosRight(x.R, y.R, prec))
	}
	if x.L.reachesDown() && y.L.reachesDown() {
		c.upper(timesPosRight(x.L.neg(), y.L.neg(), prec))
	}
	if x.R.below() && y.L.Sign() >= 0 {
		c.upper(negOK(timesPosLeft(x.R.neg(), y.L, prec)))
	}
	if x.L.Sign() >= 0 && y.R.below() {
		c.upper(negOK(timesPosLeft(x.L, y.R.neg(), prec)))
	}

	if c.nan {
		return GNaN()
	}
	return Gbnd{L: c.l, R: c.r}
}

// divPosLeft divides two non-negative endpoints for a left result, rounding
// down.
func divPosLeft(x, y Gnum, prec uint) (Gnum, bool) {
	switch {
	case y.closedZero():
		return Gnum{}, false
	case x.closedInf():
		if y.closedInf() {
			return Gnum{}, false
		}
		return gInf(1, false), true
	case x.closedZero() || y.closedInf():
		return gZero(false), true
	case x.openZero() || y.openInf():
		return gZero(true), true
	}
	return quoRounded(x, y, prec, big.ToNegativeInf), true
}

// divPosRight divides two non-negative endpoints for a right result,
// rounding up.
func divPosRight(x, y Gnum, prec uint) (Gnum, bool) {
	switch {
	case y.closedZero():
		return Gnum{}, false
	case x.closedInf():
		if y.closedInf() {
			return Gnum{}, false
		}
		return gInf(1, false), true
	case x.closedZero() || y.closedInf():
		return gZero(false), true
	case x.openInf() || y.openZero():
		return gInf(1, true), true
	}
	return quoRounded(x, y, prec, big.ToPositiveInf), true
}

// Quo divides g by h. A divisor that contains zero gives NaN.
func (g Gbnd) Quo(h Gbnd) Gbnd {
	if g.NaN || h.NaN {
		return GNaN()
	}
	x, y := g, h
	if y.L.reachesDown() && y.R.reachesUp() {
		return GNaN()
	}
	prec := maxPrec(x.L.F, x.R.F, y.L.F, y.R.F)
	c := candidates{l: gInf(1, false), r: gInf(-1, false)}

	if x.L.Sign() >= 0 && y.R.reachesUp() {
		c.lower(divPosLeft(x.L, y.R, prec))
	}
	if x.R.below() && y.L.reachesDown() {
		c.lower(divPosLeft(x.R.neg(), y.L.neg(), prec))
	}
	if x.L.reachesDown() && y.L.Sign() >= 0 {
		c.lower(negOK(divPosRight(x.L.neg(), y.L, prec)))
	}
	if x.R.reachesUp() && y.R.below() {
		c.lower(negOK(divPosRight(x.R, y.R.neg(), prec)))
	}

	if x.R.reachesUp() && y.L.Sign() >= 0 {
		c.upper(divPosRight(x.R, y.L, prec))
	}
	if x.L.reachesDown() && y.R.below() {
		c.upper(divPosRight(x.L.neg(), y.R.neg(), prec))
	}
	if x.R.below() && y.R.reachesUp() {
		c.upper(negOK(divPosLeft(x.R.neg(), y.R, prec)))
	}
	if x.L.Sign() >= 0 && y.L.reachesDown() {
		c.upper(negOK(divPosLeft(x.L, y.L.neg(), prec)))
	}

	if c.nan {
		return GNaN()
	}
	return Gbnd{L: c.l, R: c.r}
}

func (g Gbnd) Square() Gbnd {
	if g.NaN {
		return GNaN()
	}
	prec := g.prec()
	sq := func(x Gnum, mode big.RoundingMode) Gnum {
		if x.F.IsInf() {
			return gInf(1, x.Open)
		}
		a := x.abs()
		return mulRounded(a, a, prec, mode)
	}

	// Each square is computed rounded both ways, since either one can end up
	// on the left.
	t1l, t1r := sq(g.L, big.ToNegativeInf), sq(g.L, big.ToPositiveInf)
	t2l, t2r := sq(g.R, big.ToNegativeInf), sq(g.R, big.ToPositiveInf)

	var out Gbnd
	if cmpGnum(t1r, RightEnd, t2r, RightEnd) > 0 {
		out.L, out.R = t2l, t1r
	} else {
		out.L, out.R = t1l, t2r
	}
	if g.SpansZero() {
		out.L = gZero(false)
	}
	return out
}

// Sqrt gives NaN for anything that reaches below zero.
func (g Gbnd) Sqrt() Gbnd {
	if g.NaN || g.L.Sign() < 0 {
		return GNaN()
	}
	prec := g.prec()
	return Gbnd{
		L: sqrtRounded(g.L, prec, false),
		R: sqrtRounded(g.R, prec, true),
	}
}

// sqrtRounded returns a bound for the square root of x, rounded up if up is
// set and down otherwise.
func sqrtRounded(x Gnum, prec uint, up bool) Gnum {
	if x.F.IsInf() {
		return gInf(1, x.Open)
	}
	if x.F.Sign() == 0 {
		return gZero(x.Open)
	}
	s := new(big.Float).SetPrec(prec).Sqrt(x.F)
	sq := new(big.Float).SetPrec(2 * prec).Mul(s, s)
	cmp := sq.Cmp(x.F)
	if cmp == 0 {
		return Gnum{F: s, Open: x.Open}
	}
	if up && cmp < 0 {
		s = nextUp(s)
	} else if !up && cmp > 0 {
		s = nextDown(s)
	}
	return Gnum{F: s, Open: true}
}

// ulpOf returns the value of the last mantissa bit of the finite, non-zero
// f.
func ulpOf(f *big.Float) *big.Float {
	return new(big.Float).SetMantExp(bigFloat1, f.MantExp(nil)-int(f.Prec()))
}

func nextUp(f *big.Float) *big.Float {
	return new(big.Float).SetPrec(f.Prec()).SetMode(big.ToPositiveInf).Add(f, ulpOf(f))
}

func nextDown(f *big.Float) *big.Float {
	return new(big.Float).SetPrec(f.Prec()).SetMode(big.ToNegativeInf).Sub(f, ulpOf(f))
}

func (g Gbnd) Abs() Gbnd {
	if g.NaN {
		return GNaN()
	}
	l, r := g.L.abs(), g.R.abs()
	switch {
	case g.R.Sign() <= 0:
		return Gbnd{L: r, R: l}
	case g.L.Sign() <= 0:
		out := Gbnd{L: gZero(false)}
		switch c := l.F.Cmp(r.F); {
		case c < 0:
			out.R = r
		case c > 0:
			out.R = l
		default:
			out.R = Gnum{F: r.F, Open: l.Open && r.Open}
		}
		return out
	default:
		return Gbnd{L: l, R: r}
	}
}

// Min takes the lower of each pair of ends.
func (g Gbnd) Min(h Gbnd) Gbnd {
	if g.NaN || h.NaN {
		return GNaN()
	}
	var out Gbnd
	if cmpGnum(g.L, LeftEnd, h.L, LeftEnd) < 0 {
		out.L = g.L.copy()
	} else {
		out.L = h.L.copy()
	}
	if cmpGnum(g.R, RightEnd, h.R, RightEnd) < 0 {
		out.R = g.R.copy()
	} else {
		out.R = h.R.copy()
	}
	return out
}

// Max takes the higher of each pair of ends.
func (g Gbnd) Max(h Gbnd) Gbnd {
	if g.NaN || h.NaN {
		return GNaN()
	}
	var out Gbnd
	if cmpGnum(g.L, LeftEnd, h.L, LeftEnd) > 0 {
		out.L = g.L.copy()
	} else {
		out.L = h.L.copy()
	}
	if cmpGnum(g.R, RightEnd, h.R, RightEnd) > 0 {
		out.R = g.R.copy()
	} else {
		out.R = h.R.copy()
	}
	return out
}

// ClipLow raises either end of g that is below the matching end of h, and
// reports whether anything changed.
func (g Gbnd) ClipLow(h Gbnd) (Gbnd, bool) {
	if g.NaN || h.NaN {
		return GNaN(), false
	}
	var out Gbnd
	var clipped bool
	if cmpGnum(g.L, LeftEnd, h.L, LeftEnd) < 0 {
		out.L, clipped = h.L.copy(), true
	} else {
		out.L = g.L.copy()
	}
	if cmpGnum(g.R, RightEnd, h.R, RightEnd) < 0 {
		out.R, clipped = h.R.copy(), true
	} else {
		out.R = g.R.copy()
	}
	return out, clipped
}

// ClipHigh lowers either end of g that is above the matching end of h, and
// reports whether anything changed.
func (g Gbnd) ClipHigh(h Gbnd) (Gbnd, bool) {
	if g.NaN || h.NaN {
		return GNaN(), false
	}
	var out Gbnd
	var clipped bool
	if cmpGnum(g.L, LeftEnd, h.L, LeftEnd) > 0 {
		out.L, clipped = h.L.copy(), true
	} else {
		out.L = g.L.copy()
	}
	if cmpGnum(g.R, RightEnd, h.R, RightEnd) > 0 {
		out.R, clipped = h.R.copy(), true
	} else {
		out.R = g.R.copy()
	}
	return out, clipped
}

// midpoint returns the midpoint of a non-NaN g, or the sign of the infinity
// it collapses to. f is nil whenever inf is non-zero. A sum of the ends that
// does not fit in prec+1 bits is rounded with mode.
func (g Gbnd) midpoint(prec uint, mode big.RoundingMode) (f *big.Float, inf int) {
	lInf, rInf := g.L.F.IsInf(), g.R.F.IsInf()
	switch {
	case !lInf && !rInf:
		f = new(big.Float).SetPrec(prec + 1).SetMode(mode)
		if g.L.F.Cmp(g.R.F) == 0 {
			return f.Set(g.L.F), 0
		}
		f.Add(g.L.F, g.R.F)
		return f.SetMantExp(f, -1), 0
	case lInf && rInf:
		if g.L.F.Sign() != g.R.F.Sign() {
			return new(big.Float).SetPrec(prec), 0
		}
		return nil, g.L.F.Sign()
	case lInf:
		return nil, g.L.F.Sign()
	default:
		return nil, g.R.F.Sign()
	}
}
