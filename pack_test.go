package unum

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shabbyrobe/golib/assert"
)

func TestNumBits(t *testing.T) {
	for idx, tc := range []struct {
		ess, fss int
		in       []byte
		out      int
	}{
		{3, 4, []byte{0x00, 0x03}, 11},
		{3, 4, []byte{0x7f}, 33},
		{2, 7, []byte{0x00, 0x0c}, 13},
		{2, 7, []byte{0xff, 0x01}, 143},
		{0, 0, []byte{}, 4},
	} {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			tt := assert.WrapTB(t)
			tt.MustEqual(tc.out, NumBits(tc.ess, tc.fss, tc.in))
		})
	}
}

func TestPackUnum(t *testing.T) {
	tt := assert.WrapTB(t)

	tt.MustEqual([]byte{0x00, 0x03}, env34.UnumBytes(u64(0x300)))
	tt.MustEqual([]byte{0x7f, 0xfe, 0xff, 0xff, 0x00}, env34.UnumBytes(env34.MaxRealU()))
	tt.MustEqual([]byte{0x00, 0x0c}, env27.UnumBytes(u64(0xc00)))
	tt.MustEqual([]byte{0x7f, 0xfe, 0xff, 0xff, 0x00}, env34.AppendUnum(nil, env34.MaxRealU()))
	tt.MustEqual([]byte{0xaa, 0x00, 0x03}, env34.AppendUnum([]byte{0xaa}, u64(0x300)))
}

func TestLoadUnum(t *testing.T) {
	for _, e := range []*Env{env34, env27, MustEnv(0, 0), MustEnv(4, 7)} {
		t.Run(e.String(), func(t *testing.T) {
			tt := assert.WrapTB(t)
			for _, u := range []Unum{
				zeroUnum, e.ULPU(), e.MaxRealU(), e.MinRealU(),
				e.PosInfU(), e.NegInfU(), e.QNaNU(), e.SNaNU(),
				e.SmallSubnormalU(), e.UTagMask(),
			} {
				b := e.UnumBytes(u)
				b = append(b, 0xff, 0xff)

				out, n, err := e.LoadUnum(b)
				tt.MustOK(err)
				tt.MustEqual(u, out)
				tt.MustEqual(len(b)-2, n)
				tt.MustEqual((e.Tag(u).ESize+e.Tag(u).FSize+e.ESizeSize()+e.FSizeSize()+2+7)/8, n)
			}
		})
	}
}

func TestLoadUnumShort(t *testing.T) {
	tt := assert.WrapTB(t)

	_, _, err := env34.LoadUnum(nil)
	tt.MustAssert(errors.Is(err, ErrShortBuffer))

	b := env34.UnumBytes(env34.MaxRealU())
	_, _, err = env34.LoadUnum(b[:len(b)-1])
	tt.MustAssert(errors.Is(err, ErrShortBuffer), err)

	_, _, err = env27.LoadUnum([]byte{0x00})
	tt.MustAssert(errors.Is(err, ErrShortBuffer), err)
}

func TestBoundBytes(t *testing.T) {
	tt := assert.WrapTB(t)
	e := env34

	single := Single(u64(0x300))
	pair := Pair(u64(0x100), u64(0x180))

	tt.MustEqual([]byte{0x00, 0x00, 0x03}, e.BoundBytes(single))
	tt.MustEqual([]byte{0x01, 0x00, 0x01, 0x80, 0x01}, e.BoundBytes(pair))

	var buf []byte
	buf = e.AppendBound(buf, single)
	buf = e.AppendBound(buf, pair)

	out, n, err := e.LoadBound(buf)
	tt.MustOK(err)
	tt.MustEqual(single, out)
	tt.MustEqual(3, n)

	out, n, err = e.LoadBound(buf[n:])
	tt.MustOK(err)
	tt.MustEqual(pair, out)
	tt.MustEqual(5, n)
}

func TestLoadBoundErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
		err  error
	}{
		{"empty", nil, ErrShortBuffer},
		{"flag", []byte{0x02, 0x00, 0x03}, ErrBadBoundFlag},
		{"single-short", []byte{0x00}, ErrShortBuffer},
		{"pair-short", []byte{0x01, 0x00, 0x01}, ErrShortBuffer},
		{"pair-truncated", []byte{0x01, 0x00, 0x01, 0x7f, 0xfe}, ErrShortBuffer},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tt := assert.WrapTB(t)
			_, n, err := env34.LoadBound(tc.in)
			tt.MustAssert(errors.Is(err, tc.err), "found %v", err)
			tt.MustEqual(0, n)
		})
	}
}
