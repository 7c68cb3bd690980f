package unum

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"
)

// Unum is a packed unum bit string. The widest supported environment needs
// 157 bits, so 256 is plenty; bits above Env.MaxUBits are always zero in a
// valid unum.
//
// Unum is a value type; all operations return new values.
type Unum struct {
	hi, hm, lm, lo uint64
}

func UnumFrom64(in uint64) Unum {
	return Unum{lo: in}
}

// UnumFromBigInt creates a Unum from a big.Int. Negative values and values
// wider than 256 bits are rejected with inRange set to 'false'.
func UnumFromBigInt(v *big.Int) (out Unum, inRange bool) {
	if v.Sign() < 0 {
		return out, false
	}

	words := v.Bits()

	switch intSize {
	case 64:
		switch len(words) {
		case 0:
			return Unum{}, true
		case 1:
			return Unum{lo: uint64(words[0])}, true
		case 2:
			return Unum{lm: uint64(words[1]), lo: uint64(words[0])}, true
		case 3:
			return Unum{hm: uint64(words[2]), lm: uint64(words[1]), lo: uint64(words[0])}, true
		case 4:
			return Unum{hi: uint64(words[3]), hm: uint64(words[2]), lm: uint64(words[1]), lo: uint64(words[0])}, true
		default:
			return maxUnum, false
		}

	case 32:
		if len(words) > 8 {
			return maxUnum, false
		}
		var w [8]uint64
		for i, x := range words {
			w[i] = uint64(x)
		}
		return Unum{
			hi: (w[7] << 32) | w[6],
			hm: (w[5] << 32) | w[4],
			lm: (w[3] << 32) | w[2],
			lo: (w[1] << 32) | w[0],
		}, true

	default:
		panic("unum: unsupported bit size")
	}
}

// UnumFromBytes reads up to 32 little-endian bytes. Missing high bytes are
// zero.
func UnumFromBytes(b []byte) (out Unum) {
	var buf [32]byte
	copy(buf[:], b)
	out.lo = binary.LittleEndian.Uint64(buf[0:])
	out.lm = binary.LittleEndian.Uint64(buf[8:])
	out.hm = binary.LittleEndian.Uint64(buf[16:])
	out.hi = binary.LittleEndian.Uint64(buf[24:])
	return out
}

// PutBytes writes the low len(b) bytes of u into b, little endian.
func (u Unum) PutBytes(b []byte) {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], u.lo)
	binary.LittleEndian.PutUint64(buf[8:], u.lm)
	binary.LittleEndian.PutUint64(buf[16:], u.hm)
	binary.LittleEndian.PutUint64(buf[24:], u.hi)
	copy(b, buf[:])
}

func (u Unum) Add(n Unum) (v Unum) {
	var carry uint64
	v.lo, carry = bits.Add64(u.lo, n.lo, 0)
	v.lm, carry = bits.Add64(u.lm, n.lm, carry)
	v.hm, carry = bits.Add64(u.hm, n.hm, carry)
	v.hi, _ = bits.Add64(u.hi, n.hi, carry)
	return v
}

func (u Unum) Add64(n uint64) Unum {
	return u.Add(Unum{lo: n})
}

func (u Unum) And(n Unum) Unum {
	u.hi = u.hi & n.hi
	u.hm = u.hm & n.hm
	u.lm = u.lm & n.lm
	u.lo = u.lo & n.lo
	return u
}

func (u Unum) AndNot(n Unum) Unum {
	u.hi = u.hi &^ n.hi
	u.hm = u.hm &^ n.hm
	u.lm = u.lm &^ n.lm
	u.lo = u.lo &^ n.lo
	return u
}

func (u Unum) Not() Unum {
	u.hi = ^u.hi
	u.hm = ^u.hm
	u.lm = ^u.lm
	u.lo = ^u.lo
	return u
}

func (u Unum) Or(n Unum) Unum {
	u.hi = u.hi | n.hi
	u.hm = u.hm | n.hm
	u.lm = u.lm | n.lm
	u.lo = u.lo | n.lo
	return u
}

func (u Unum) Xor(n Unum) Unum {
	u.hi = u.hi ^ n.hi
	u.hm = u.hm ^ n.hm
	u.lm = u.lm ^ n.lm
	u.lo = u.lo ^ n.lo
	return u
}

// Bit returns the value of the i'th bit of u.
func (u Unum) Bit(i uint) uint {
	switch {
	case i < 64:
		return uint(u.lo>>i) & 1
	case i < 128:
		return uint(u.lm>>(i-64)) & 1
	case i < 192:
		return uint(u.hm>>(i-128)) & 1
	case i < 256:
		return uint(u.hi>>(i-192)) & 1
	}
	return 0
}

func (u Unum) SetBit(i uint) Unum {
	return u.Or(unumBit(i))
}

func (u Unum) ClearBit(i uint) Unum {
	return u.AndNot(unumBit(i))
}

// BitLen returns the length of the absolute value of u in bits. The bit
// length of 0 is 0.
func (u Unum) BitLen() uint {
	return 256 - u.LeadingZeros()
}

func (u Unum) IntoBigInt(b *big.Int) {
	switch intSize {
	case 64:
		bits := b.Bits()
		ln := len(bits)
		if len(bits) < 4 {
			bits = append(bits, make([]big.Word, 4-ln)...)
		}
		bits = bits[:4]
		bits[0] = big.Word(u.lo)
		bits[1] = big.Word(u.lm)
		bits[2] = big.Word(u.hm)
		bits[3] = big.Word(u.hi)
		b.SetBits(bits)

	default:
		b.SetUint64(u.hi)
		b.Lsh(b, 64).Or(b, new(big.Int).SetUint64(u.hm))
		b.Lsh(b, 64).Or(b, new(big.Int).SetUint64(u.lm))
		b.Lsh(b, 64).Or(b, new(big.Int).SetUint64(u.lo))
	}
}

func (u Unum) AsBigInt() (b *big.Int) {
	var v big.Int
	u.IntoBigInt(&v)
	return &v
}

// AsUint64 truncates u to its low 64 bits.
func (u Unum) AsUint64() uint64 { return u.lo }

// IsUint64 reports whether u can be represented as a uint64.
func (u Unum) IsUint64() bool { return u.hi == 0 && u.hm == 0 && u.lm == 0 }

func (u Unum) IsZero() bool { return u.hi == 0 && u.hm == 0 && u.lm == 0 && u.lo == 0 }

func (u Unum) Cmp(n Unum) int {
	if u.hi > n.hi {
		return 1
	} else if u.hi < n.hi {
		return -1
	} else if u.hm > n.hm {
		return 1
	} else if u.hm < n.hm {
		return -1
	} else if u.lm > n.lm {
		return 1
	} else if u.lm < n.lm {
		return -1
	} else if u.lo > n.lo {
		return 1
	} else if u.lo < n.lo {
		return -1
	}
	return 0
}

func (u Unum) Dec() Unum { return u.Sub(Unum{lo: 1}) }
func (u Unum) Inc() Unum { return u.Add(Unum{lo: 1}) }

func (u Unum) Equal(v Unum) bool            { return u == v }
func (u Unum) GreaterThan(v Unum) bool      { return u.Cmp(v) > 0 }
func (u Unum) GreaterOrEqualTo(v Unum) bool { return u.Cmp(v) >= 0 }
func (u Unum) LessThan(v Unum) bool         { return u.Cmp(v) < 0 }
func (u Unum) LessOrEqualTo(v Unum) bool    { return u.Cmp(v) <= 0 }

func (u Unum) Format(s fmt.State, c rune) {
	// FIXME: This is good enough for now, but not forever.
	u.AsBigInt().Format(s, c)
}

func (u Unum) LeadingZeros() uint {
	if u.hi != 0 {
		return uint(bits.LeadingZeros64(u.hi))
	} else if u.hm != 0 {
		return uint(bits.LeadingZeros64(u.hm)) + 64
	} else if u.lm != 0 {
		return uint(bits.LeadingZeros64(u.lm)) + 128
	} else if u.lo != 0 {
		return uint(bits.LeadingZeros64(u.lo)) + 192
	}
	return 256
}

func (u Unum) TrailingZeros() uint {
	if u.lo != 0 {
		return uint(bits.TrailingZeros64(u.lo))
	} else if u.lm != 0 {
		return uint(bits.TrailingZeros64(u.lm)) + 64
	} else if u.hm != 0 {
		return uint(bits.TrailingZeros64(u.hm)) + 128
	} else if u.hi != 0 {
		return uint(bits.TrailingZeros64(u.hi)) + 192
	}
	return 256
}

func (u Unum) Lsh(n uint) (v Unum) {
	if n == 0 {
		return u

	} else if n < 64 {
		return Unum{
			hi: (u.hi << n) | (u.hm >> (64 - n)),
			hm: (u.hm << n) | (u.lm >> (64 - n)),
			lm: (u.lm << n) | (u.lo >> (64 - n)),
			lo: u.lo << n,
		}

	} else if n == 64 {
		return Unum{hi: u.hm, hm: u.lm, lm: u.lo}

	} else if n < 128 {
		n -= 64
		return Unum{
			hi: (u.hm << n) | (u.lm >> (64 - n)),
			hm: (u.lm << n) | (u.lo >> (64 - n)),
			lm: u.lo << n,
		}

	} else if n == 128 {
		return Unum{hi: u.lm, hm: u.lo}

	} else if n < 192 {
		n -= 128
		return Unum{
			hi: (u.lm << n) | (u.lo >> (64 - n)),
			hm: u.lo << n,
		}

	} else if n == 192 {
		return Unum{hi: u.lo}
	} else if n < 256 {
		return Unum{hi: u.lo << (n - 192)}
	} else {
		return Unum{}
	}
}

func (u Unum) Rsh(n uint) (v Unum) {
	if n == 0 {
		return u

	} else if n < 64 {
		return Unum{
			hi: u.hi >> n,
			hm: (u.hm >> n) | (u.hi << (64 - n)),
			lm: (u.lm >> n) | (u.hm << (64 - n)),
			lo: (u.lo >> n) | (u.lm << (64 - n)),
		}

	} else if n == 64 {
		return Unum{hm: u.hi, lm: u.hm, lo: u.lm}

	} else if n < 128 {
		n -= 64
		return Unum{
			hm: u.hi >> n,
			lm: (u.hm >> n) | (u.hi << (64 - n)),
			lo: (u.lm >> n) | (u.hm << (64 - n)),
		}

	} else if n == 128 {
		return Unum{lm: u.hi, lo: u.hm}

	} else if n < 192 {
		n -= 128
		return Unum{
			lm: u.hi >> n,
			lo: (u.hm >> n) | (u.hi << (64 - n)),
		}

	} else if n == 192 {
		return Unum{lo: u.hi}

	} else if n < 256 {
		return Unum{lo: u.hi >> (n - 192)}

	} else {
		return Unum{}
	}
}

// String returns u as 0x-prefixed hex, which is the only readable way to look
// at a packed bit string. Use Env.View to see the fields.
func (u Unum) String() string {
	return fmt.Sprintf("%#x", u)
}

func (u Unum) Sub(n Unum) (v Unum) {
	var borrow uint64
	v.lo, borrow = bits.Sub64(u.lo, n.lo, 0)
	v.lm, borrow = bits.Sub64(u.lm, n.lm, borrow)
	v.hm, borrow = bits.Sub64(u.hm, n.hm, borrow)
	v.hi, _ = bits.Sub64(u.hi, n.hi, borrow)
	return v
}

func (u Unum) Sub64(n uint64) Unum {
	return u.Sub(Unum{lo: n})
}

// unumBit returns 1<<i, or zero when i is out of range.
func unumBit(i uint) Unum {
	switch {
	case i < 64:
		return Unum{lo: 1 << i}
	case i < 128:
		return Unum{lm: 1 << (i - 64)}
	case i < 192:
		return Unum{hm: 1 << (i - 128)}
	case i < 256:
		return Unum{hi: 1 << (i - 192)}
	}
	return Unum{}
}

// unumMask returns (1<<n)-1.
func unumMask(n uint) Unum {
	if n >= 256 {
		return maxUnum
	}
	return unumBit(n).Dec()
}
