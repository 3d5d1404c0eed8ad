package numbits

import (
	"math/big"
	"math/bits"

	"github.com/holiman/uint256"
)

// U256FromBigInt creates a 256-bit word from a big.Int, keeping the low 256
// bits of v's two's complement representation. accurate is false if any
// bits were discarded.
func U256FromBigInt(v *big.Int) (out uint256.Int, accurate bool) {
	masked := new(big.Int).And(v, maxBigU256)
	accurate = v.Sign() >= 0 && masked.Cmp(v) == 0
	out.SetFromBig(masked)
	return out, accurate
}

// I256AsBigInt interprets w as a two's complement signed value.
func I256AsBigInt(w uint256.Int) *big.Int {
	b := w.ToBig()
	if w.Sign() < 0 {
		b.Sub(b, new(big.Int).Lsh(big1, 256))
	}
	return b
}

// u256Kernel works on uint256.Int values rather than pointers so that words
// behave like the other value types here. Every op writes into a fresh local.
type u256Kernel struct{}

func (u256Kernel) Width() int                  { return 256 }
func (u256Kernel) Zero() (z uint256.Int)       { return z }
func (u256Kernel) One() uint256.Int            { return *uint256.NewInt(1) }
func (u256Kernel) Equal(a, b uint256.Int) bool { return a.Eq(&b) }

func (u256Kernel) And(a, b uint256.Int) (z uint256.Int) { z.And(&a, &b); return z }
func (u256Kernel) Or(a, b uint256.Int) (z uint256.Int)  { z.Or(&a, &b); return z }
func (u256Kernel) Xor(a, b uint256.Int) (z uint256.Int) { z.Xor(&a, &b); return z }
func (u256Kernel) Not(a uint256.Int) (z uint256.Int)    { z.Not(&a); return z }

func (u256Kernel) Lsh(a uint256.Int, n uint) (z uint256.Int)        { z.Lsh(&a, n); return z }
func (u256Kernel) RshLogical(a uint256.Int, n uint) (z uint256.Int) { z.Rsh(&a, n); return z }
func (u256Kernel) RshArith(a uint256.Int, n uint) (z uint256.Int)   { z.SRsh(&a, n); return z }

func (u256Kernel) OnesCount(a uint256.Int) (n int) {
	for _, limb := range a {
		n += bits.OnesCount64(limb)
	}
	return n
}

// U256Bits returns the Fixed for unsigned 256-bit words.
func U256Bits() Fixed[uint256.Int] { return NewFixed[uint256.Int](u256Kernel{}, false) }

// I256Bits returns the Fixed for 256-bit words read as two's complement
// signed values. It shares its words with U256Bits; only right shifts
// differ.
func I256Bits() Fixed[uint256.Int] { return NewFixed[uint256.Int](u256Kernel{}, true) }

var (
	U256Ops = MustDerive[uint256.Int](U256Bits())
	I256Ops = MustDerive[uint256.Int](I256Bits())
)
