package numbits

import (
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
)

type U128 struct {
	hi, lo uint64
}

func U128FromRaw(hi, lo uint64) U128 { return U128{hi: hi, lo: lo} }
func U128From64(v uint64) U128       { return U128{hi: 0, lo: v} }
func U128From32(v uint32) U128       { return U128{hi: 0, lo: uint64(v)} }
func U128From16(v uint16) U128       { return U128{hi: 0, lo: uint64(v)} }
func U128From8(v uint8) U128         { return U128{hi: 0, lo: uint64(v)} }

// U128FromBigInt creates a U128 from a big.Int. Overflow truncates to MaxU128
// and sets accurate to 'false'.
func U128FromBigInt(v *big.Int) (out U128, accurate bool) {
	if v.Sign() < 0 {
		return out, false
	}

	words := v.Bits()

	switch intSize {
	case 64:
		lw := len(words)
		switch lw {
		case 0:
			return U128{}, true
		case 1:
			return U128{lo: uint64(words[0])}, true
		case 2:
			return U128{hi: uint64(words[1]), lo: uint64(words[0])}, true
		default:
			return MaxU128, false
		}

	case 32:
		lw := len(words)
		switch lw {
		case 0:
			return U128{}, true
		case 1:
			return U128{lo: uint64(words[0])}, true
		case 2:
			return U128{lo: (uint64(words[1]) << 32) | (uint64(words[0]))}, true
		case 3:
			return U128{hi: uint64(words[2]), lo: (uint64(words[1]) << 32) | (uint64(words[0]))}, true
		case 4:
			return U128{
				hi: (uint64(words[3]) << 32) | (uint64(words[2])),
				lo: (uint64(words[1]) << 32) | (uint64(words[0])),
			}, true
		default:
			return MaxU128, false
		}

	default:
		panic("numbits: unsupported bit size")
	}
}

func (u U128) IsZero() bool { return u == zeroU128 }

// Raw returns access to the U128 as a pair of uint64s. See U128FromRaw() for
// the counterpart.
func (u U128) Raw() (hi, lo uint64) { return u.hi, u.lo }

func (u U128) String() string {
	if u == zeroU128 {
		return "0"
	}
	if u.hi == 0 {
		return strconv.FormatUint(u.lo, 10)
	}
	return u.AsBigInt().String()
}

func (u U128) Format(s fmt.State, c rune) {
	u.AsBigInt().Format(s, c)
}

func (u U128) IntoBigInt(b *big.Int) {
	if u.hi > 0 {
		b.SetUint64(u.hi)
		b.Lsh(b, 64)
	} else {
		b.SetUint64(0)
	}
	var lo big.Int
	lo.SetUint64(u.lo)
	b.Add(b, &lo)
}

func (u U128) AsBigInt() (b *big.Int) {
	var v big.Int
	u.IntoBigInt(&v)
	return &v
}

// AsI128 performs a direct cast of a U128 to an I128, which will interpret it
// as a two's complement value.
func (u U128) AsI128() I128 {
	return I128{lo: u.lo, hi: u.hi}
}

// AsUint64 truncates the U128 to fit in a uint64. Values outside the range
// will over/underflow. See IsUint64() if you want to check before you convert.
func (u U128) AsUint64() uint64 {
	return u.lo
}

// IsUint64 reports whether u can be represented as a uint64.
func (u U128) IsUint64() bool {
	return u.hi == 0
}

func (u U128) Cmp(n U128) int {
	if u.hi > n.hi {
		return 1
	} else if u.hi < n.hi {
		return -1
	} else if u.lo > n.lo {
		return 1
	} else if u.lo < n.lo {
		return -1
	}
	return 0
}

func (u U128) Equal(n U128) bool {
	return u.hi == n.hi && u.lo == n.lo
}

func (u U128) And(v U128) (out U128) {
	out.hi = u.hi & v.hi
	out.lo = u.lo & v.lo
	return out
}

func (u U128) AndNot(v U128) (out U128) {
	out.hi = u.hi &^ v.hi
	out.lo = u.lo &^ v.lo
	return out
}

func (u U128) Not() (out U128) {
	out.hi = ^u.hi
	out.lo = ^u.lo
	return out
}

func (u U128) Or(v U128) (out U128) {
	out.hi = u.hi | v.hi
	out.lo = u.lo | v.lo
	return out
}

func (u U128) Xor(v U128) (out U128) {
	out.hi = u.hi ^ v.hi
	out.lo = u.lo ^ v.lo
	return out
}

// Lsh returns u shifted left by n bits. Shifts of 128 or more return 0.
func (u U128) Lsh(n uint) (v U128) {
	if n == 0 {
		return u
	} else if n > 64 {
		v.hi = u.lo << (n - 64)
		v.lo = 0
	} else if n < 64 {
		v.hi = (u.hi << n) | (u.lo >> (64 - n))
		v.lo = u.lo << n
	} else if n == 64 {
		v.hi = u.lo
		v.lo = 0
	}
	return v
}

// Rsh returns u shifted right by n bits, filling with zeros. Shifts of 128 or
// more return 0.
func (u U128) Rsh(n uint) (v U128) {
	if n == 0 {
		return u
	} else if n > 64 {
		v.lo = u.hi >> (n - 64)
		v.hi = 0
	} else if n < 64 {
		v.lo = (u.lo >> n) | (u.hi << (64 - n))
		v.hi = u.hi >> n
	} else if n == 64 {
		v.lo = u.hi
		v.hi = 0
	}

	return v
}

// RotateLeft returns the value of u rotated left by (k mod 128) bits. To
// rotate u right by k bits, call u.RotateLeft(-k).
func (u U128) RotateLeft(k int) U128 {
	n := uint(k) & 127
	if n == 0 {
		return u
	}
	return u.Lsh(n).Or(u.Rsh(128 - n))
}

// Bit returns the value of the i'th bit of u. The bit index i must be >= 0.
// Indexes of 128 or more return 0.
func (u U128) Bit(i int) uint {
	if i < 0 {
		panic("numbits: negative bit index")
	}
	if i >= 128 {
		return 0
	} else if i >= 64 {
		return uint((u.hi >> uint(i-64)) & 1)
	}
	return uint((u.lo >> uint(i)) & 1)
}

// SetBit returns u with u's i'th bit set to b (0 or 1). If b is not 0 or 1,
// SetBit will panic. If i < 0, SetBit will panic. Indexes of 128 or more
// leave u unchanged.
func (u U128) SetBit(i int, b uint) (out U128) {
	if i < 0 {
		panic("numbits: negative bit index")
	}
	if b > 1 {
		panic("numbits: bit value not 0 or 1")
	}

	out = u
	if i >= 128 {
		return out
	} else if i >= 64 {
		if b == 0 {
			out.hi &^= 1 << uint(i-64)
		} else {
			out.hi |= 1 << uint(i-64)
		}
	} else {
		if b == 0 {
			out.lo &^= 1 << uint(i)
		} else {
			out.lo |= 1 << uint(i)
		}
	}
	return out
}

// BitLen returns the length of the absolute value of u in bits. The bit
// length of 0 is 0.
func (u U128) BitLen() int {
	return 128 - int(u.LeadingZeros())
}

// OnesCount returns the number of one bits ("population count") in u.
func (u U128) OnesCount() int {
	return bits.OnesCount64(u.hi) + bits.OnesCount64(u.lo)
}

// LeadingZeros returns the number of leading zero bits in u; the result is 128
// for u == 0.
func (u U128) LeadingZeros() uint {
	if u.hi == 0 {
		return uint(bits.LeadingZeros64(u.lo)) + 64
	} else {
		return uint(bits.LeadingZeros64(u.hi))
	}
}

type u128Kernel struct{}

func (u128Kernel) Width() int                     { return 128 }
func (u128Kernel) Zero() U128                     { return U128{} }
func (u128Kernel) One() U128                      { return U128{lo: 1} }
func (u128Kernel) Equal(a, b U128) bool           { return a.Equal(b) }
func (u128Kernel) And(a, b U128) U128             { return a.And(b) }
func (u128Kernel) Or(a, b U128) U128              { return a.Or(b) }
func (u128Kernel) Xor(a, b U128) U128             { return a.Xor(b) }
func (u128Kernel) Not(a U128) U128                { return a.Not() }
func (u128Kernel) Lsh(a U128, n uint) U128        { return a.Lsh(n) }
func (u128Kernel) RshLogical(a U128, n uint) U128 { return a.Rsh(n) }
func (u128Kernel) RshArith(a U128, n uint) U128   { return a.AsI128().Rsh(n).AsU128() }
func (u128Kernel) OnesCount(a U128) int           { return a.OnesCount() }

// U128Bits returns the Fixed for unsigned 128-bit words.
func U128Bits() Fixed[U128] { return NewFixed[U128](u128Kernel{}, false) }

var U128Ops = MustDerive[U128](U128Bits())
