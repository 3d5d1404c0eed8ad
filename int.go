package numbits

import (
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
)

// Int is an arbitrary-precision signed integer. Bit operations treat it as
// an infinitely long two's complement bit string: non-negative values have
// infinitely many leading zeros, negative values infinitely many leading
// ones.
//
// Int is a value type; all operations return new values. The zero value is 0.
type Int struct {
	// Values that fit in an int64 are always stored in small, so two equal
	// Ints have equal representations.
	small int64
	big   *big.Int // big != nil <=> value does not fit in an int64; never mutated
}

func IntFrom64(v int64) Int { return Int{small: v} }
func IntFrom32(v int32) Int { return Int{small: int64(v)} }
func IntFromInt(v int) Int  { return Int{small: int64(v)} }

func IntFromU64(v uint64) Int {
	if v <= maxInt64 {
		return Int{small: int64(v)}
	}
	return Int{big: new(big.Int).SetUint64(v)}
}

// IntFromBigInt creates an Int from a copy of v.
func IntFromBigInt(v *big.Int) Int {
	return makeInt(new(big.Int).Set(v))
}

func IntFromU128(v U128) Int {
	if v.IsUint64() {
		return IntFromU64(v.AsUint64())
	}
	return makeInt(v.AsBigInt())
}

func IntFromI128(v I128) Int {
	if v.IsInt64() {
		return IntFrom64(v.AsInt64())
	}
	return makeInt(v.AsBigInt())
}

// makeInt takes ownership of b.
func makeInt(b *big.Int) Int {
	if b.IsInt64() {
		return Int{small: b.Int64()}
	}
	return Int{big: b}
}

// AsBigInt returns a new big.Int holding x.
func (x Int) AsBigInt() *big.Int {
	if x.big != nil {
		return new(big.Int).Set(x.big)
	}
	return new(big.Int).SetInt64(x.small)
}

// bigOf returns x as a big.Int that must not be modified.
func (x Int) bigOf() *big.Int {
	if x.big != nil {
		return x.big
	}
	return new(big.Int).SetInt64(x.small)
}

// IsInt64 reports whether x can be represented as an int64.
func (x Int) IsInt64() bool { return x.big == nil }

// AsInt64 returns the low 64 bits of x as an int64.
func (x Int) AsInt64() int64 {
	if x.big != nil {
		return int64(new(big.Int).And(x.big, maxBigUint64).Uint64())
	}
	return x.small
}

func (x Int) IsZero() bool { return x.big == nil && x.small == 0 }

func (x Int) Sign() int {
	if x.big != nil {
		return x.big.Sign()
	}
	if x.small < 0 {
		return -1
	} else if x.small > 0 {
		return 1
	}
	return 0
}

func (x Int) Cmp(y Int) int {
	if x.big == nil && y.big == nil {
		if x.small < y.small {
			return -1
		} else if x.small > y.small {
			return 1
		}
		return 0
	}
	return x.bigOf().Cmp(y.bigOf())
}

func (x Int) Equal(y Int) bool {
	if x.big == nil && y.big == nil {
		return x.small == y.small
	} else if x.big == nil || y.big == nil {
		return false
	}
	return x.big.Cmp(y.big) == 0
}

func (x Int) String() string {
	if x.big != nil {
		return x.big.String()
	}
	return strconv.FormatInt(x.small, 10)
}

func (x Int) Format(s fmt.State, c rune) {
	x.bigOf().Format(s, c)
}

func (x Int) And(y Int) Int {
	if x.big == nil && y.big == nil {
		return Int{small: x.small & y.small}
	}
	return makeInt(new(big.Int).And(x.bigOf(), y.bigOf()))
}

func (x Int) AndNot(y Int) Int {
	if x.big == nil && y.big == nil {
		return Int{small: x.small &^ y.small}
	}
	return makeInt(new(big.Int).AndNot(x.bigOf(), y.bigOf()))
}

func (x Int) Or(y Int) Int {
	if x.big == nil && y.big == nil {
		return Int{small: x.small | y.small}
	}
	return makeInt(new(big.Int).Or(x.bigOf(), y.bigOf()))
}

func (x Int) Xor(y Int) Int {
	if x.big == nil && y.big == nil {
		return Int{small: x.small ^ y.small}
	}
	return makeInt(new(big.Int).Xor(x.bigOf(), y.bigOf()))
}

// Not returns the bitwise complement of x, which is -(x+1).
func (x Int) Not() Int {
	if x.big == nil {
		return Int{small: ^x.small}
	}
	return makeInt(new(big.Int).Not(x.big))
}

// Lsh returns x * 2**n.
func (x Int) Lsh(n uint) Int {
	if x.big == nil {
		if x.small == 0 || n == 0 {
			return x
		}
		if n < 63 {
			if r := x.small << n; r>>n == x.small {
				return Int{small: r}
			}
		}
	}
	return makeInt(new(big.Int).Lsh(x.bigOf(), n))
}

// Rsh returns x / 2**n, rounded towards negative infinity.
func (x Int) Rsh(n uint) Int {
	if x.big == nil {
		if n > 63 {
			n = 63
		}
		return Int{small: x.small >> n}
	}
	return makeInt(new(big.Int).Rsh(x.big, n))
}

// Shift returns x * 2**n if n >= 0, or x / 2**-n rounded towards negative
// infinity if n < 0.
func (x Int) Shift(n int) Int {
	if n >= 0 {
		return x.Lsh(uint(n))
	}
	return x.Rsh(uint(negDistance(n)))
}

// Bit returns the value of the i'th bit of x's two's complement
// representation. The bit index i must be >= 0.
func (x Int) Bit(i int) uint {
	if i < 0 {
		panic("numbits: negative bit index")
	}
	if x.big == nil {
		if i > 63 {
			i = 63
		}
		return uint(x.small>>uint(i)) & 1
	}
	return x.big.Bit(i)
}

// SetBit returns x with x's i'th bit set to b (0 or 1). If b is not 0 or 1,
// SetBit will panic. If i < 0, SetBit will panic.
func (x Int) SetBit(i int, b uint) Int {
	if i < 0 {
		panic("numbits: negative bit index")
	}
	if b > 1 {
		panic("numbits: bit value not 0 or 1")
	}
	if x.big == nil && i < 63 {
		if b == 0 {
			return Int{small: x.small &^ (1 << uint(i))}
		}
		return Int{small: x.small | (1 << uint(i))}
	}
	return makeInt(new(big.Int).SetBit(x.bigOf(), i, b))
}

// BitLen returns the length of the absolute value of x in bits. The bit
// length of 0 is 0.
func (x Int) BitLen() int {
	if x.big != nil {
		return x.big.BitLen()
	}
	abs := uint64(x.small)
	if x.small < 0 {
		abs = -abs
	}
	return bits.Len64(abs)
}

// PopCount returns the number of one bits in x if x >= 0. If x < 0, x has
// infinitely many one bits, so PopCount returns the number of zero bits
// instead, negated.
func (x Int) PopCount() (n int) {
	if x.Sign() < 0 {
		return -x.Not().PopCount()
	}
	if x.big == nil {
		return bits.OnesCount64(uint64(x.small))
	}
	for _, w := range x.big.Bits() {
		n += bits.OnesCount(uint(w))
	}
	return n
}

// Unbounded implements Bits for Int.
//
// Int has no fixed width, so BitWidth returns ErrNoFixedWidth and Rotate is
// the same as Shift: there is nowhere for the bits to wrap around to.
type Unbounded struct{}

func (Unbounded) Zero() Int              { return Int{} }
func (Unbounded) One() Int               { return Int{small: 1} }
func (Unbounded) Equal(a, b Int) bool    { return a.Equal(b) }
func (Unbounded) And(a, b Int) Int       { return a.And(b) }
func (Unbounded) Or(a, b Int) Int        { return a.Or(b) }
func (Unbounded) Xor(a, b Int) Int       { return a.Xor(b) }
func (Unbounded) Complement(a Int) Int   { return a.Not() }
func (Unbounded) Shift(x Int, n int) Int { return x.Shift(n) }
func (Unbounded) PopCount(x Int) int     { return x.PopCount() }
func (Unbounded) IsSigned() bool         { return true }

// Rotate is Shift. It never wraps around.
func (Unbounded) Rotate(x Int, n int) Int { return x.Shift(n) }

func (Unbounded) BitWidth() (int, error) { return 0, ErrNoFixedWidth }

var UnboundedOps = MustDerive[Int](Unbounded{})
