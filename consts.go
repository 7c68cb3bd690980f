package unum

import (
	"math/big"
)

const (
	// MaxESizeSize and MaxFSizeSize bound the environment parameters. The
	// largest environment (4, 7) has a 157-bit maxubits, which fits in a Unum.
	MaxESizeSize = 4
	MaxFSizeSize = 7

	// Bits carried by the scratch reals beyond the widest fraction.
	scratchExtraPrec = 128

	// Scratch precision used for values that don't come from an Env, like
	// ParseG with prec 0.
	defaultPrec = 256

	// Minimum precision of a computed g-layer endpoint.
	minGPrec = 64

	// DefaultUnifyDepth bounds the mutual recursion between Unify and
	// GToBound.
	DefaultUnifyDepth = 8

	intSize = 32 << (^uint(0) >> 63)
)

var (
	maxUnum = Unum{hi: 1<<64 - 1, hm: 1<<64 - 1, lm: 1<<64 - 1, lo: 1<<64 - 1}

	zeroUnum Unum
	oneUnum  = Unum{lo: 1}

	// Shared read-only operands. Never pass these as a receiver.
	big1      = big.NewInt(1)
	bigFloat1 = big.NewFloat(1)
	bigHalf   = big.NewFloat(0.5)
)
