package unum

import (
	"fmt"
	"math/big"
)

// NaNRule decides which degenerate g-layer bounds are ill-formed when they are
// turned back into unums.
type NaNRule int

const (
	// NaNRuleOr treats a bound with equal ends as NaN when either end is
	// open. (x,x], [x,x) and (x,x) are all NaN.
	NaNRuleOr NaNRule = iota

	// NaNRuleXor treats a bound with equal ends as NaN only when exactly one
	// end is open; (x,x) then encodes as the exact unum for x.
	NaNRuleXor
)

func (r NaNRule) String() string {
	switch r {
	case NaNRuleOr:
		return "or"
	case NaNRuleXor:
		return "xor"
	default:
		return fmt.Sprintf("NaNRule(%d)", int(r))
	}
}

// Rounding selects how a computed g-layer bound is encoded back into unums.
type Rounding int

const (
	// RoundEnclose produces the tightest ubound that contains the bound
	// (one or two unums, unified where possible).
	RoundEnclose Rounding = iota

	// RoundNearestEven produces a single unum at the midpoint of the bound,
	// rounded to a fraction of at most the maximum width.
	RoundNearestEven
)

func (r Rounding) String() string {
	switch r {
	case RoundEnclose:
		return "enclose"
	case RoundNearestEven:
		return "nearest"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

// MidpointRounding selects how the midpoint of a bound is rounded when it
// leaves the package as a Go integer, a Go float or a big.Float.
type MidpointRounding int

const (
	// MidpointTruncate rounds the midpoint toward zero.
	MidpointTruncate MidpointRounding = iota

	// MidpointNearestEven rounds the midpoint to the nearest value, ties to
	// even.
	MidpointNearestEven
)

func (r MidpointRounding) String() string {
	switch r {
	case MidpointTruncate:
		return "truncate"
	case MidpointNearestEven:
		return "nearest"
	default:
		return fmt.Sprintf("MidpointRounding(%d)", int(r))
	}
}

func (r MidpointRounding) mode() big.RoundingMode {
	if r == MidpointNearestEven {
		return big.ToNearestEven
	}
	return big.ToZero
}

// Option configures an Env in NewEnv.
type Option func(*Env)

// WithNaNRule sets the rule that decides which degenerate bounds become NaN.
// The default is NaNRuleOr.
func WithNaNRule(rule NaNRule) Option {
	return func(e *Env) { e.nanRule = rule }
}

// WithRounding sets how the results of bound operations and parsing are
// encoded. The default is RoundEnclose.
func WithRounding(r Rounding) Option {
	return func(e *Env) { e.rounding = r }
}

// WithMidpointRounding sets how ToInt, ToFloat and ToBigFloat round the
// midpoint of a bound. The default is MidpointTruncate.
func WithMidpointRounding(r MidpointRounding) Option {
	return func(e *Env) { e.midpointRounding = r }
}

// WithUnifyDepth sets the recursion guard used by Unify. Values below 1 are
// ignored.
func WithUnifyDepth(n int) Option {
	return func(e *Env) {
		if n > 0 {
			e.unifyDepth = n
		}
	}
}

// Env holds everything derived from the two size parameters of a unum
// environment. An Env is immutable once created and may be shared between
// goroutines; any number of them may be in use at once.
type Env struct {
	esizesize int
	fsizesize int
	esizemax  int
	fsizemax  int
	utagsize  int
	maxubits  int
	prec      uint

	ubitmask   Unum
	fsizemask  Unum
	esizemask  Unum
	efsizemask Unum
	utagmask   Unum
	ulpu       Unum

	smallsubnormalu Unum
	smallnormalu    Unum
	signbigu        Unum
	posinfu         Unum
	maxrealu        Unum
	minrealu        Unum
	neginfu         Unum
	negbigu         Unum
	qNaNu           Unum
	sNaNu           Unum
	negopeninfu     Unum
	posopeninfu     Unum
	negopenzerou    Unum

	maxreal        *big.Float
	smallsubnormal *big.Float
	smallnormal    *big.Float

	nanRule          NaNRule
	rounding         Rounding
	midpointRounding MidpointRounding
	unifyDepth       int
}

func NewEnv(esizesize, fsizesize int, opts ...Option) (*Env, error) {
	if esizesize < 0 || esizesize > MaxESizeSize {
		return nil, fmt.Errorf("unum: esizesize %d out of range [0, %d]", esizesize, MaxESizeSize)
	}
	if fsizesize < 0 || fsizesize > MaxFSizeSize {
		return nil, fmt.Errorf("unum: fsizesize %d out of range [0, %d]", fsizesize, MaxFSizeSize)
	}

	e := &Env{
		esizesize:  esizesize,
		fsizesize:  fsizesize,
		unifyDepth: DefaultUnifyDepth,
	}
	for _, o := range opts {
		o(e)
	}

	e.esizemax = 1 << uint(esizesize)
	e.fsizemax = 1 << uint(fsizesize)
	e.utagsize = 1 + esizesize + fsizesize
	e.maxubits = 1 + e.esizemax + e.fsizemax + e.utagsize
	e.prec = uint(e.fsizemax + 2 + scratchExtraPrec)

	uts := uint(e.utagsize)
	e.ubitmask = unumBit(uts - 1)
	e.fsizemask = unumMask(uint(fsizesize))
	e.esizemask = e.ubitmask.Sub(oneUnum).Sub(e.fsizemask)
	e.efsizemask = e.esizemask.Or(e.fsizemask)
	e.utagmask = e.ubitmask.Or(e.efsizemask)
	e.ulpu = unumBit(uts)

	e.smallsubnormalu = e.efsizemask.Add(e.ulpu)
	e.smallnormalu = unumBit(uts + 1).Or(e.esizemask)
	e.signbigu = unumBit(uint(e.maxubits - 1))
	e.posinfu = e.signbigu.Sub(oneUnum).Sub(e.ubitmask)
	e.maxrealu = e.posinfu.Sub(e.ulpu)
	e.minrealu = e.maxrealu.Add(e.signbigu)
	e.neginfu = e.posinfu.Add(e.signbigu)
	e.negbigu = e.neginfu.Sub(e.ulpu)
	e.qNaNu = e.posinfu.Add(e.ubitmask)
	e.sNaNu = e.neginfu.Add(e.ubitmask)

	if e.utagsize == 1 {
		e.negopeninfu = UnumFrom64(0xd)
		e.posopeninfu = UnumFrom64(0x5)
	} else {
		e.negopeninfu = UnumFrom64(0xf).Lsh(uts - 1)
		e.posopeninfu = UnumFrom64(0x7).Lsh(uts - 1)
	}
	e.negopenzerou = UnumFrom64(0x9).Lsh(uts - 1)

	// maxreal = (2^fsizemax - 1) / 2^(fsizemax-1) * 2^(2^(esizemax-1))
	mant := new(big.Int).Lsh(big1, uint(e.fsizemax))
	mant.Sub(mant, big1)
	e.maxreal = new(big.Float).SetPrec(e.prec).SetInt(mant)
	e.maxreal.SetMantExp(e.maxreal, (1<<uint(e.esizemax-1))-(e.fsizemax-1))

	e.smallsubnormal = new(big.Float).SetPrec(e.prec).SetMantExp(bigFloat1, -((1 << uint(e.esizemax-1)) + e.fsizemax - 2))
	e.smallnormal = e.UnumToFloat(e.smallnormalu)

	return e, nil
}

// MustEnv is NewEnv for environments known to be valid, like package-level
// variables. It panics on error.
func MustEnv(esizesize, fsizesize int, opts ...Option) *Env {
	e, err := NewEnv(esizesize, fsizesize, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Env) String() string {
	return fmt.Sprintf("{%d,%d}", e.esizesize, e.fsizesize)
}

func (e *Env) ESizeSize() int { return e.esizesize }
func (e *Env) FSizeSize() int { return e.fsizesize }
func (e *Env) ESizeMax() int  { return e.esizemax }
func (e *Env) FSizeMax() int  { return e.fsizemax }
func (e *Env) UTagSize() int  { return e.utagsize }
func (e *Env) MaxUBits() int  { return e.maxubits }

// Prec is the precision of the scratch reals used by e.
func (e *Env) Prec() uint { return e.prec }

func (e *Env) NaNRule() NaNRule   { return e.nanRule }
func (e *Env) Rounding() Rounding { return e.rounding }

func (e *Env) MidpointRounding() MidpointRounding { return e.midpointRounding }

func (e *Env) UBitMask() Unum   { return e.ubitmask }
func (e *Env) FSizeMask() Unum  { return e.fsizemask }
func (e *Env) ESizeMask() Unum  { return e.esizemask }
func (e *Env) EFSizeMask() Unum { return e.efsizemask }
func (e *Env) UTagMask() Unum   { return e.utagmask }
func (e *Env) ULPU() Unum       { return e.ulpu }

func (e *Env) SmallSubnormalU() Unum { return e.smallsubnormalu }
func (e *Env) SmallNormalU() Unum    { return e.smallnormalu }
func (e *Env) SignBigU() Unum        { return e.signbigu }
func (e *Env) PosInfU() Unum         { return e.posinfu }
func (e *Env) NegInfU() Unum         { return e.neginfu }
func (e *Env) MaxRealU() Unum        { return e.maxrealu }
func (e *Env) MinRealU() Unum        { return e.minrealu }
func (e *Env) NegBigU() Unum         { return e.negbigu }
func (e *Env) QNaNU() Unum           { return e.qNaNu }
func (e *Env) SNaNU() Unum           { return e.sNaNu }
func (e *Env) NegOpenInfU() Unum     { return e.negopeninfu }
func (e *Env) PosOpenInfU() Unum     { return e.posopeninfu }
func (e *Env) NegOpenZeroU() Unum    { return e.negopenzerou }

// MaxReal returns a copy of the largest finite exact value of e.
func (e *Env) MaxReal() *big.Float { return new(big.Float).Copy(e.maxreal) }

// SmallSubnormal returns a copy of the smallest positive exact value of e.
func (e *Env) SmallSubnormal() *big.Float { return new(big.Float).Copy(e.smallsubnormal) }

func (e *Env) newFloat() *big.Float {
	return new(big.Float).SetPrec(e.prec)
}
