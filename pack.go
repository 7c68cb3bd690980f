package unum

import (
	"errors"
	"fmt"
)

var (
	ErrShortBuffer  = errors.New("unum: short buffer")
	ErrBadBoundFlag = errors.New("unum: bad ubound flag byte")
)

const (
	boundSingle byte = 0
	boundPair   byte = 1
)

// NumBits returns the bit length of the packed unum at the start of b, which
// is stored little endian by an environment with the given esizesize and
// fsizesize. Only the (ess+fss+7)/8 bytes that hold the size fields are read,
// and b must have at least that many.
func NumBits(ess, fss int, b []byte) int {
	efbytes := (ess + fss + 7) / 8
	var tmp uint64
	for i := efbytes - 1; i >= 0; i-- {
		tmp = tmp<<8 | uint64(b[i])
	}
	fsize := int(tmp&(1<<uint(fss)-1)) + 1
	esize := int((tmp>>uint(fss))&(1<<uint(ess)-1)) + 1
	return 2 + esize + fsize + ess + fss
}

// unumBytes is the number of whole bytes needed to hold u.
func (e *Env) unumBytes(u Unum) int {
	t := e.Tag(u)
	return (2 + t.ESize + t.FSize + e.esizesize + e.fsizesize + 7) / 8
}

// UnumBytes returns the packed form of u.
func (e *Env) UnumBytes(u Unum) []byte {
	return e.AppendUnum(nil, u)
}

// AppendUnum appends the packed form of u to dst.
func (e *Env) AppendUnum(dst []byte, u Unum) []byte {
	n := e.unumBytes(u)
	var buf [32]byte
	u.PutBytes(buf[:])
	return append(dst, buf[:n]...)
}

// LoadUnum reads a packed unum from the start of b, returning it along with
// the number of bytes consumed.
func (e *Env) LoadUnum(b []byte) (u Unum, n int, err error) {
	efbytes := (e.esizesize + e.fsizesize + 7) / 8
	if len(b) < efbytes || len(b) == 0 {
		return u, 0, fmt.Errorf("%w: need at least %d bytes, found %d", ErrShortBuffer, max(efbytes, 1), len(b))
	}
	n = (NumBits(e.esizesize, e.fsizesize, b) + 7) / 8
	if len(b) < n {
		return u, 0, fmt.Errorf("%w: need %d bytes, found %d", ErrShortBuffer, n, len(b))
	}
	var buf [32]byte
	copy(buf[:], b[:n])
	return UnumFromBytes(buf[:]), n, nil
}

// BoundBytes returns the packed form of b: a flag byte followed by one or
// two packed unums.
func (e *Env) BoundBytes(b Ubound) []byte {
	return e.AppendBound(nil, b)
}

func (e *Env) AppendBound(dst []byte, b Ubound) []byte {
	if !b.pair {
		dst = append(dst, boundSingle)
		return e.AppendUnum(dst, b.l)
	}
	dst = append(dst, boundPair)
	dst = e.AppendUnum(dst, b.l)
	return e.AppendUnum(dst, b.r)
}

// LoadBound reads a packed ubound from the start of b, returning it along
// with the number of bytes consumed.
func (e *Env) LoadBound(b []byte) (out Ubound, n int, err error) {
	if len(b) == 0 {
		return out, 0, fmt.Errorf("%w: missing ubound flag byte", ErrShortBuffer)
	}
	flag := b[0]
	if flag != boundSingle && flag != boundPair {
		return out, 0, fmt.Errorf("%w: %#x", ErrBadBoundFlag, flag)
	}

	l, ln, err := e.LoadUnum(b[1:])
	if err != nil {
		return out, 0, err
	}
	if flag == boundSingle {
		return Single(l), 1 + ln, nil
	}

	r, rn, err := e.LoadUnum(b[1+ln:])
	if err != nil {
		return out, 0, err
	}
	return Pair(l, r), 1 + ln + rn, nil
}
