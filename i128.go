package numbits

import (
	"fmt"
	"math/big"
	"math/bits"
)

type I128 struct {
	hi uint64
	lo uint64
}

const signBit = 0x8000000000000000

// I128FromRaw is the complement to I128.Raw(); it creates an I128 from two
// uint64s representing the hi and lo bits.
func I128FromRaw(hi, lo uint64) I128 {
	return I128{hi: hi, lo: lo}
}

func I128From64(v int64) I128 {
	var hi uint64
	if v < 0 {
		hi = maxUint64
	}
	return I128{hi: hi, lo: uint64(v)}
}

func I128From32(v int32) I128   { return I128From64(int64(v)) }
func I128From16(v int16) I128   { return I128From64(int64(v)) }
func I128From8(v int8) I128     { return I128From64(int64(v)) }
func I128FromU64(v uint64) I128 { return I128{lo: v} }

var (
	minI128AsAbsU128 = U128{hi: 0x8000000000000000, lo: 0}
	maxI128AsU128    = U128{hi: 0x7FFFFFFFFFFFFFFF, lo: 0xFFFFFFFFFFFFFFFF}
)

// I128FromBigInt creates an I128 from a big.Int. Overflow truncates to
// MaxI128/MinI128 and sets accurate to 'false'.
func I128FromBigInt(v *big.Int) (out I128, accurate bool) {
	neg := v.Sign() < 0

	abs := new(big.Int).Abs(v)
	u, accurate := U128FromBigInt(abs)

	if !neg {
		if cmp := u.Cmp(maxI128AsU128); cmp == 0 {
			out = MaxI128
		} else if cmp > 0 {
			out, accurate = MaxI128, false
		} else {
			out = u.AsI128()
		}

	} else {
		if cmp := u.Cmp(minI128AsAbsU128); cmp == 0 {
			out = MinI128
		} else if cmp > 0 {
			out, accurate = MinI128, false
		} else {
			out = u.AsI128().Neg()
		}
	}

	return out, accurate
}

func (i I128) IsZero() bool { return i == zeroI128 }

// Raw returns access to the I128 as a pair of uint64s. See I128FromRaw() for
// the counterpart.
func (i I128) Raw() (hi uint64, lo uint64) { return i.hi, i.lo }

func (i I128) String() string {
	return i.AsBigInt().String()
}

func (i I128) Format(s fmt.State, c rune) {
	i.AsBigInt().Format(s, c)
}

// IntoBigInt copies this I128 into a big.Int, allowing you to retain and
// recycle memory.
func (i I128) IntoBigInt(b *big.Int) {
	neg := i.Sign() < 0
	i.AsU128().IntoBigInt(b)
	if neg {
		b.Xor(b, maxBigU128).Add(b, big1).Neg(b)
	}
}

// AsBigInt allocates a new big.Int and copies this I128 into it.
func (i I128) AsBigInt() (b *big.Int) {
	b = new(big.Int)
	i.IntoBigInt(b)
	return b
}

// AsU128 performs a direct cast of an I128 to a U128. Negative numbers
// become values > math.MaxI128.
func (i I128) AsU128() U128 {
	return U128{lo: i.lo, hi: i.hi}
}

// AsInt64 truncates the I128 to fit in a int64. Values outside the range will
// over/underflow. See IsInt64() if you want to check before you convert.
func (i I128) AsInt64() int64 {
	return int64(i.lo)
}

// IsInt64 reports whether i can be represented as a int64.
func (i I128) IsInt64() bool {
	if i.hi&signBit != 0 {
		return i.hi == maxUint64 && i.lo >= 0x8000000000000000
	} else {
		return i.hi == 0 && i.lo <= maxInt64
	}
}

func (i I128) Sign() int {
	if i == zeroI128 {
		return 0
	} else if i.hi&signBit == 0 {
		return 1
	}
	return -1
}

func (i I128) Inc() (v I128) {
	v.lo = i.lo + 1
	v.hi = i.hi
	if i.lo > v.lo {
		v.hi++
	}
	return v
}

// Neg returns -i. -MinI128 overflows to MinI128.
func (i I128) Neg() (v I128) {
	return i.Not().Inc()
}

// Cmp compares i to n and returns:
//
//	< 0 if i <  n
//	  0 if i == n
//	> 0 if i >  n
//
// The specific value returned by Cmp is undefined, but it is guaranteed to
// satisfy the above constraints.
func (i I128) Cmp(n I128) int {
	if i.hi == n.hi && i.lo == n.lo {
		return 0
	} else if i.hi&signBit == n.hi&signBit {
		if i.hi > n.hi || (i.hi == n.hi && i.lo > n.lo) {
			return 1
		}
	} else if i.hi&signBit == 0 {
		return 1
	}
	return -1
}

func (i I128) Equal(n I128) bool {
	return i.hi == n.hi && i.lo == n.lo
}

func (i I128) And(n I128) I128    { return I128{hi: i.hi & n.hi, lo: i.lo & n.lo} }
func (i I128) AndNot(n I128) I128 { return I128{hi: i.hi &^ n.hi, lo: i.lo &^ n.lo} }
func (i I128) Or(n I128) I128     { return I128{hi: i.hi | n.hi, lo: i.lo | n.lo} }
func (i I128) Xor(n I128) I128    { return I128{hi: i.hi ^ n.hi, lo: i.lo ^ n.lo} }

// Not returns the bitwise complement of i, which is -i-1.
func (i I128) Not() I128 { return I128{hi: ^i.hi, lo: ^i.lo} }

// Lsh returns i shifted left by n bits. Shifts of 128 or more return 0.
func (i I128) Lsh(n uint) I128 {
	return i.AsU128().Lsh(n).AsI128()
}

// Rsh returns i shifted right by n bits. The shift is arithmetic: vacated bits
// are filled with copies of the sign bit, so shifts of 128 or more return 0
// or -1.
func (i I128) Rsh(n uint) (v I128) {
	if n == 0 {
		return i
	}

	fill := uint64(int64(i.hi) >> 63)
	if n >= 128 {
		return I128{hi: fill, lo: fill}
	} else if n > 64 {
		v.lo = uint64(int64(i.hi) >> (n - 64))
		v.hi = fill
	} else if n < 64 {
		v.lo = (i.lo >> n) | (i.hi << (64 - n))
		v.hi = uint64(int64(i.hi) >> n)
	} else if n == 64 {
		v.lo = i.hi
		v.hi = fill
	}
	return v
}

// Bit returns the value of the i'th bit of the two's complement
// representation of i. Indexes of 128 or more return the sign bit.
func (i I128) Bit(idx int) uint {
	if idx >= 128 {
		idx = 127
	}
	return i.AsU128().Bit(idx)
}

// SetBit returns i with i's idx'th bit set to b (0 or 1). Indexes of 128 or
// more leave i unchanged: Bit reads those positions as copies of the sign bit,
// which only SetBit(127, b) can change.
func (i I128) SetBit(idx int, b uint) I128 {
	return i.AsU128().SetBit(idx, b).AsI128()
}

// OnesCount returns the number of one bits in the two's complement
// representation of i.
func (i I128) OnesCount() int {
	return bits.OnesCount64(i.hi) + bits.OnesCount64(i.lo)
}

type i128Kernel struct{}

func (i128Kernel) Width() int                     { return 128 }
func (i128Kernel) Zero() I128                     { return I128{} }
func (i128Kernel) One() I128                      { return I128{lo: 1} }
func (i128Kernel) Equal(a, b I128) bool           { return a.Equal(b) }
func (i128Kernel) And(a, b I128) I128             { return a.And(b) }
func (i128Kernel) Or(a, b I128) I128              { return a.Or(b) }
func (i128Kernel) Xor(a, b I128) I128             { return a.Xor(b) }
func (i128Kernel) Not(a I128) I128                { return a.Not() }
func (i128Kernel) Lsh(a I128, n uint) I128        { return a.Lsh(n) }
func (i128Kernel) RshLogical(a I128, n uint) I128 { return a.AsU128().Rsh(n).AsI128() }
func (i128Kernel) RshArith(a I128, n uint) I128   { return a.Rsh(n) }
func (i128Kernel) OnesCount(a I128) int           { return a.OnesCount() }

// I128Bits returns the Fixed for signed 128-bit words.
func I128Bits() Fixed[I128] { return NewFixed[I128](i128Kernel{}, true) }

var I128Ops = MustDerive[I128](I128Bits())
