package unum

import (
	"math/big"
	"testing"
)

var (
	BenchBigFloatResult *big.Float
	BenchBoolResult     bool
	BenchBoundResult    Ubound
	BenchBytesResult    []byte
	BenchGbndResult     Gbnd
	BenchIntResult      int
	BenchStringResult   string
	BenchUnumResult     Unum
)

var benchEnvs = []*Env{MustEnv(2, 2), MustEnv(3, 4), MustEnv(4, 6)}

type benchOperands struct {
	name string
	u, v Ubound
}

func benchOperandsFor(e *Env) []benchOperands {
	return []benchOperands{
		{"exact", e.ParseBound("3"), e.ParseBound("0.5")},
		{"inexact", e.ParseBound("0.1"), e.ParseBound("3.14159")},
		{"pair", e.ParseBound("[1,2)"), e.ParseBound("(-3,0.25]")},
	}
}

func runBoundBench(b *testing.B, fn func(e *Env, u, v Ubound) Ubound) {
	for _, e := range benchEnvs {
		for _, bc := range benchOperandsFor(e) {
			b.Run(e.String()+"/"+bc.name, func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					BenchBoundResult = fn(e, bc.u, bc.v)
				}
			})
		}
	}
}

func BenchmarkAdd(b *testing.B) {
	runBoundBench(b, func(e *Env, u, v Ubound) Ubound { return e.Add(u, v) })
}

func BenchmarkMul(b *testing.B) {
	runBoundBench(b, func(e *Env, u, v Ubound) Ubound { return e.Mul(u, v) })
}

func BenchmarkQuo(b *testing.B) {
	runBoundBench(b, func(e *Env, u, v Ubound) Ubound { return e.Quo(u, v) })
}

func BenchmarkSqrt(b *testing.B) {
	runBoundBench(b, func(e *Env, u, v Ubound) Ubound { return e.Sqrt(u) })
}

func BenchmarkUnify(b *testing.B) {
	e := env34
	for _, bc := range []struct {
		name string
		in   Ubound
	}{
		{"single", Single(u64(0x180))},
		{"joins", Pair(u64(0x281), u64(0x381))},
		{"barrier", Pair(u64(0x100), u64(0x200))},
	} {
		b.Run(bc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				BenchBoundResult = e.Unify(bc.in)
			}
		})
	}
}

func BenchmarkLess(b *testing.B) {
	e := env34
	u, v := e.ParseBound("(1,2)"), e.ParseBound("[2,3]")
	for i := 0; i < b.N; i++ {
		BenchBoolResult = e.Less(u, v)
	}
}

func BenchmarkFloatToUnum(b *testing.B) {
	for _, e := range benchEnvs {
		for _, s := range []string{"3", "0.1", "1e30"} {
			f, _, _ := big.ParseFloat(s, 10, e.Prec(), big.ToNearestEven)
			b.Run(e.String()+"/"+s, func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					BenchUnumResult = e.FloatToUnum(f)
				}
			})
		}
	}
}

func BenchmarkUnumToG(b *testing.B) {
	e := env34
	u := e.ParseUnum("0.1")
	for i := 0; i < b.N; i++ {
		BenchGbndResult = e.UnumToG(u)
	}
}

func BenchmarkFormatBound(b *testing.B) {
	e := env34
	u := e.ParseBound("(1,2)")
	for i := 0; i < b.N; i++ {
		BenchStringResult = e.FormatBound(u)
	}
}

func BenchmarkAppendBound(b *testing.B) {
	e := env34
	u := Pair(u64(0x100), e.MaxRealU())
	buf := make([]byte, 0, 16)
	for i := 0; i < b.N; i++ {
		BenchBytesResult = e.AppendBound(buf[:0], u)
	}
}

func BenchmarkLoadBound(b *testing.B) {
	e := env34
	buf := e.BoundBytes(Pair(u64(0x100), e.MaxRealU()))
	for i := 0; i < b.N; i++ {
		BenchBoundResult, BenchIntResult, _ = e.LoadBound(buf)
	}
}

func BenchmarkBigFloatQuo(b *testing.B) {
	x := big.NewFloat(1).SetPrec(env34.Prec())
	y := big.NewFloat(3).SetPrec(env34.Prec())
	for i := 0; i < b.N; i++ {
		BenchBigFloatResult = new(big.Float).SetPrec(env34.Prec()).Quo(x, y)
	}
}
