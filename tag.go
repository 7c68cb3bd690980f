package unum

import (
	"math/big"
	"math/bits"
)

// UTag is the decoded trailing tag of a unum.
type UTag struct {
	ESize   int
	FSize   int
	Inexact bool
}

// Tag decodes the utag of u. The utag is at most 12 bits wide, so only the
// low word is consulted.
func (e *Env) Tag(u Unum) UTag {
	u0 := u.lo
	return UTag{
		FSize:   int(u0&e.fsizemask.lo) + 1,
		ESize:   int((u0&e.esizemask.lo)>>uint(e.fsizesize)) + 1,
		Inexact: u0&e.ubitmask.lo != 0,
	}
}

func (e *Env) IsExact(u Unum) bool   { return u.lo&e.ubitmask.lo == 0 }
func (e *Env) IsInexact(u Unum) bool { return u.lo&e.ubitmask.lo != 0 }

func (e *Env) IsNaN(u Unum) bool { return u == e.qNaNu || u == e.sNaNu }
func (e *Env) IsInf(u Unum) bool { return u == e.posinfu || u == e.neginfu }

// infSign returns 1 for positive infinity, -1 for negative infinity and 0
// otherwise.
func (e *Env) infSign(u Unum) int {
	if u == e.posinfu {
		return 1
	} else if u == e.neginfu {
		return -1
	}
	return 0
}

func (e *Env) nanSign(u Unum) int {
	if u == e.qNaNu {
		return 1
	} else if u == e.sNaNu {
		return -1
	}
	return 0
}

// IsNegative reports whether the sign bit of u is set. The sign bit position
// depends on the tag.
func (e *Env) IsNegative(u Unum) bool {
	return !u.And(e.signMask(u)).IsZero()
}

func (e *Env) signPos(t UTag) uint {
	return uint(t.ESize + t.FSize + e.utagsize)
}

func (e *Env) signMask(u Unum) Unum {
	return unumBit(e.signPos(e.Tag(u)))
}

// bigU returns the biggest unum with the same utag contents as u.
func (e *Env) bigU(u Unum) Unum {
	t := e.Tag(u)
	a := unumBit(e.signPos(t)).Sub(e.ulpu)
	if t.ESize == e.esizemax && t.FSize == e.fsizemax {
		a = a.Sub(e.ulpu)
	}
	return a.Add64(uint64(((t.ESize - 1) << uint(e.fsizesize)) | (t.FSize - 1)))
}

// tagBits encodes an exact utag.
func (e *Env) tagBits(esize, fsize int) uint64 {
	return uint64(((esize - 1) << uint(e.fsizesize)) | (fsize - 1))
}

// floatMask covers the sign, exponent and fraction fields of a unum with tag
// t.
func (e *Env) floatMask(t UTag) Unum {
	return unumMask(uint(1 + t.ESize + t.FSize)).Lsh(uint(e.utagsize))
}

func (e *Env) exponentField(u Unum, t UTag) uint64 {
	return u.Rsh(uint(t.FSize + e.utagsize)).AsUint64() & (1<<uint(t.ESize) - 1)
}

func (e *Env) fractionField(u Unum, t UTag) Unum {
	return u.Rsh(uint(e.utagsize)).And(unumMask(uint(t.FSize)))
}

// scale returns floor(log2(|f|)), or 0 for zero.
func scale(f *big.Float) int {
	if f.Sign() == 0 {
		return 0
	}
	return f.MantExp(nil) - 1
}

// ne returns the best number of exponent bits for f, accounting for
// subnormals.
func ne(f *big.Float) int {
	if f.Sign() == 0 {
		return 1
	}
	return neScale(scale(f))
}

func neScale(sf int) int {
	if sf == 1 {
		return 1
	}
	tmp := sf - 1
	if tmp < 0 {
		tmp = -tmp
	}
	return bits.Len(uint(tmp)) + 1
}

// PromoteFraction adds a zero bit to the fraction of an exact unum, if
// there's room. The ubit is not carried over.
func (e *Env) PromoteFraction(u Unum) Unum {
	t := e.Tag(u)
	if t.FSize >= e.fsizemax {
		return u
	}
	a := u.And(e.floatMask(t)).Lsh(1)
	return a.Add64(uint64(((t.ESize - 1) << uint(e.fsizesize)) | t.FSize))
}

// PromoteExponent widens the exponent field of an exact unum by one bit, if
// there's room. NaN and infinity already use the maximum exponent size and
// are returned unchanged. The ubit is not carried over.
func (e *Env) PromoteExponent(u Unum) Unum {
	t := e.Tag(u)
	if t.ESize == e.esizemax {
		return u
	}

	es, fs := uint(t.ESize), uint(t.FSize)
	uts := uint(e.utagsize)
	expo := e.exponentField(u, t)
	frac := e.fractionField(u, t)
	tag := uint64((t.ESize << uint(e.fsizesize)) | (t.FSize - 1))

	if expo == 0 && frac.IsZero() {
		return UnumFrom64(tag)
	}

	var s uint64
	if u.Bit(es+fs+uts) != 0 {
		s = 1
	}

	if expo > 0 {
		a := UnumFrom64(s<<(es+1) + expo + 1<<(es-1))
		a = a.Lsh(fs).Or(frac).Lsh(uts)
		return a.Add64(tag)
	}

	nsigbits := frac.BitLen()
	if int(fs)-int(nsigbits) >= 1<<(es-1) {
		a := frac.Lsh(1<<(es-1) + uts).Add64(tag)
		if s != 0 {
			a = a.SetBit(es + 1 + fs + uts)
		}
		return a
	}

	// Subnormal becomes normal: the leftmost 1 becomes the hidden bit.
	a := UnumFrom64(s<<(es+1) + 1<<(es-1) - uint64(fs) + uint64(nsigbits))
	frac = frac.ClearBit(nsigbits - 1).Lsh(fs - nsigbits + 1)
	a = a.Lsh(fs).Or(frac).Lsh(uts)
	return a.Add64(tag)
}

// PromotePair brings two exact unums to the same exponent and fraction sizes.
func (e *Env) PromotePair(u, v Unum) (Unum, Unum) {
	ut, vt := e.Tag(u), e.Tag(v)
	for ; ut.ESize < vt.ESize; ut.ESize++ {
		u = e.PromoteExponent(u)
	}
	for ; vt.ESize < ut.ESize; vt.ESize++ {
		v = e.PromoteExponent(v)
	}
	for ; ut.FSize < vt.FSize; ut.FSize++ {
		u = e.PromoteFraction(u)
	}
	for ; vt.FSize < ut.FSize; vt.FSize++ {
		v = e.PromoteFraction(v)
	}
	return u, v
}

// DemoteFraction drops the last fraction bit of u, even if that makes it
// inexact. A dropped 1 bit lands in the ubit.
func (e *Env) DemoteFraction(u Unum) Unum {
	t := e.Tag(u)
	if t.FSize == 1 || e.IsInf(u) || e.IsNaN(u) {
		return u
	}
	a := u.And(e.floatMask(t)).Rsh(1)
	tag := uint64(((t.ESize - 1) << uint(e.fsizesize)) | (t.FSize - 2))
	if t.Inexact {
		tag |= e.ubitmask.lo
	}
	return a.Or(UnumFrom64(tag))
}

// DemoteExponent narrows the exponent field of u by one bit, even if that
// makes it inexact. The ubit is kept, and is set if bits are lost.
func (e *Env) DemoteExponent(u Unum) Unum {
	t := e.Tag(u)
	if t.ESize == 1 || e.IsInf(u) || e.IsNaN(u) {
		return u
	}

	es, fs := uint(t.ESize), uint(t.FSize)
	uts := uint(e.utagsize)
	expo := e.exponentField(u, t)
	spos := es + fs + uts
	sign := u.Bit(spos) != 0
	frac := e.fractionField(u, t)

	tag := uint64(((t.ESize - 2) << uint(e.fsizesize)) | (t.FSize - 1))
	if t.Inexact {
		tag |= e.ubitmask.lo
	}

	finish := func(body Unum, lost bool) Unum {
		a := body.Lsh(uts).Add64(tag)
		if sign {
			a = a.SetBit(spos - 1)
		}
		if lost {
			a = a.Or(e.ubitmask)
		}
		return a
	}

	// Subnormal, so shrinking the exponent shifts the fraction right.
	if expo == 0 {
		q, lost := truncRsh(frac, 1<<(es-2))
		return finish(q, lost)
	}

	left2 := (expo >> (es - 2)) & 3

	// Leading exponent bits 00 on a normal number: the result is subnormal.
	if left2 == 0 {
		frac = frac.SetBit(fs)
		q, lost := truncRsh(frac, uint(1<<(es-2)-expo+1))
		return finish(q, lost)
	}

	// 01 or 10: squeeze out the second bit.
	if left2 <= 2 {
		ex := (expo & (1<<(es-2) - 1)) | ((left2 >> 1) << (es - 2))
		var lost bool
		if ex == 0 {
			frac, lost = truncRsh(frac.SetBit(fs), 1)
		}
		body := UnumFrom64(ex).Lsh(fs).Or(frac)
		return finish(body, lost)
	}

	// 11: always an unbounded unum with an all-ones fraction.
	a := unumMask(es + fs).Lsh(uts - 1).Add64(uint64(((t.ESize - 2) << uint(e.fsizesize)) | (t.FSize - 1)))
	if sign {
		a = a.SetBit(spos - 1)
	}
	return a
}

// truncRsh shifts u right by n, reporting whether any set bits fell off.
func truncRsh(u Unum, n uint) (Unum, bool) {
	lost := !u.And(unumMask(n)).IsZero()
	return u.Rsh(n), lost
}
