/*
Package unum implements unum, ubound and general interval (gbnd) arithmetic.

A unum is a variable-width binary number: a sign, an exponent and a fraction,
followed by a "utag" holding a ubit and the sizes of the exponent and
fraction fields. When the ubit is set the unum stands for the open interval
between its value and the next representable value one ULP further from
zero. Nothing is ever rounded away silently; an inexact result says so.

Every operation happens in an Env, which fixes the number of bits used for
the exponent size and fraction size fields. Envs are immutable after
construction and can be shared freely between goroutines:

	e := unum.MustEnv(3, 4)
	third := e.Quo(unum.FromInt(e, 1), unum.FromInt(e, 3))
	fmt.Println(e.FormatBound(third)) // an open interval around 1/3

Unum is a value type, as is Ubound, which holds either a single unum or a
pair describing an interval from the start of the left to the end of the
right. Arithmetic is done by converting each ubound to a Gbnd (two
math/big endpoints, each open or closed), operating there, and encoding the
result back into the smallest ubound that encloses it:

	Env.Add, Env.Sub, Env.Mul, Env.Quo
	Env.Square, Env.Sqrt, Env.Abs, Env.Neg
	Env.Min, Env.Max, Env.ClipLow, Env.ClipHigh
	Env.Less, Env.Greater, Env.NowhereEqual, Env.SomewhereEqual, Env.Same

Conversion to and from other representations:

	Env.FloatToUnum(f *big.Float) Unum
	Env.UnumToFloat(u Unum) *big.Float
	Env.ParseBound(s string) Ubound
	Env.FormatBound(b Ubound) string
	FromInt, ToInt, FromFloat, ToFloat (generic over Go numeric types)
	Env.AppendBound, Env.LoadBound (packed, variable-width bytes)

The bit layout of any unum can be shown with Env.View.
*/
package unum
