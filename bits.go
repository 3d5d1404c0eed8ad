package numbits

import (
	"fmt"
	"math"
)

// Bits is the set of primitives every integral type must supply. Ops
// derives everything else from it.
//
// A Bits implementation must also implement Shifter, LRShifter, or both.
// Rotator, LRRotator and PopCounter are optional; Derive picks them up by
// type assertion when they are present.
type Bits[T any] interface {
	Zero() T
	One() T
	Equal(a, b T) bool

	And(a, b T) T
	Or(a, b T) T
	Xor(a, b T) T
	Complement(a T) T

	// BitWidth returns the number of bits in T, or an error wrapping
	// errors.ErrUnsupported (see ErrNoFixedWidth) if T has no fixed width.
	BitWidth() (int, error)

	// IsSigned reports whether T can represent negative values.
	IsSigned() bool
}

// Shifter shifts x left by n if n > 0, right by -n if n < 0.
type Shifter[T any] interface {
	Shift(x T, n int) T
}

// LRShifter supplies directional shifts. ShiftLeft and ShiftRight are only
// called by Ops with n >= 0.
type LRShifter[T any] interface {
	ShiftLeft(x T, n int) T
	ShiftRight(x T, n int) T
}

// Rotator rotates x left by n if n > 0, right by -n if n < 0.
type Rotator[T any] interface {
	Rotate(x T, n int) T
}

// LRRotator supplies directional rotates. RotateLeft and RotateRight are
// only called by Ops with n >= 0.
type LRRotator[T any] interface {
	RotateLeft(x T, n int) T
	RotateRight(x T, n int) T
}

// PopCounter counts set bits. For a negative value of a type with no fixed
// width, the result is the negated count of zero bits.
type PopCounter[T any] interface {
	PopCount(x T) int
}

// Ops is the full bit operation set for T. Operations the underlying Bits
// does not implement natively are derived from the ones it does:
//
//	ShiftLeft(x, i)     = Shift(x, i)
//	ShiftRight(x, i)    = Shift(x, -i)
//	Shift(x, i)         = ShiftRight(x, -i) if i < 0, x if i == 0, ShiftLeft(x, i) if i > 0
//	RotateLeft(x, i)    = Rotate(x, i)
//	RotateRight(x, i)   = Rotate(x, -i)
//	Rotate(x, i)        = Shift(x, i)
//	Bit(i)              = ShiftLeft(One, i)
//	SetBit(x, i)        = Or(x, Bit(i))
//	ClearBit(x, i)      = And(x, Complement(Bit(i)))
//	ComplementBit(x, i) = Xor(x, Bit(i))
//	TestBit(x, i)       = And(x, Bit(i)) != Zero
//
// The derived Rotate never wraps around. Types with a fixed width should
// supply Rotate or RotateLeft/RotateRight themselves.
//
// Ops is immutable once built and may be shared between goroutines.
type Ops[T any] struct {
	b   Bits[T]
	sh  Shifter[T]
	lrs LRShifter[T]
	rot Rotator[T]
	lrr LRRotator[T]
	pop PopCounter[T]
}

// Derive builds the full operation set for b.
func Derive[T any](b Bits[T]) (ops Ops[T], err error) {
	ops.b = b
	ops.sh, _ = b.(Shifter[T])
	ops.lrs, _ = b.(LRShifter[T])
	ops.rot, _ = b.(Rotator[T])
	ops.lrr, _ = b.(LRRotator[T])
	ops.pop, _ = b.(PopCounter[T])

	if ops.sh == nil && ops.lrs == nil {
		return Ops[T]{}, fmt.Errorf("%w (%T)", errNoShift, b)
	}
	return ops, nil
}

// MustDerive is like Derive but panics if b is incomplete. It is intended for
// package-level variable initialisation.
func MustDerive[T any](b Bits[T]) Ops[T] {
	ops, err := Derive(b)
	if err != nil {
		panic(err)
	}
	return ops
}

// Primitive returns the Bits the operations were derived from.
func (o Ops[T]) Primitive() Bits[T] { return o.b }

func (o Ops[T]) Zero() T           { return o.b.Zero() }
func (o Ops[T]) One() T            { return o.b.One() }
func (o Ops[T]) Equal(a, b T) bool { return o.b.Equal(a, b) }
func (o Ops[T]) And(a, b T) T      { return o.b.And(a, b) }
func (o Ops[T]) Or(a, b T) T       { return o.b.Or(a, b) }
func (o Ops[T]) Xor(a, b T) T      { return o.b.Xor(a, b) }
func (o Ops[T]) Complement(a T) T  { return o.b.Complement(a) }
func (o Ops[T]) IsSigned() bool    { return o.b.IsSigned() }

func (o Ops[T]) BitWidth() (int, error) { return o.b.BitWidth() }

// BitSizeMaybe returns the width of T and true, or 0 and false if T has no
// fixed width.
func (o Ops[T]) BitSizeMaybe() (int, bool) {
	w, err := o.b.BitWidth()
	if err != nil {
		return 0, false
	}
	return w, true
}

// ZeroBits returns the value with no bits set.
func (o Ops[T]) ZeroBits() T { return o.b.Zero() }

// AllOnes returns the value with every bit set. For signed types with no
// fixed width this is -1.
func (o Ops[T]) AllOnes() T { return o.b.Complement(o.b.Zero()) }

func (o Ops[T]) Shift(x T, n int) T {
	if o.sh != nil {
		return o.sh.Shift(x, n)
	}
	if n < 0 {
		return o.lrs.ShiftRight(x, negDistance(n))
	} else if n == 0 {
		return x
	}
	return o.lrs.ShiftLeft(x, n)
}

// ShiftLeft shifts x left by n. A negative n shifts right.
func (o Ops[T]) ShiftLeft(x T, n int) T {
	if n < 0 {
		return o.ShiftRight(x, negDistance(n))
	}
	if o.lrs != nil {
		return o.lrs.ShiftLeft(x, n)
	}
	return o.sh.Shift(x, n)
}

// ShiftRight shifts x right by n. A negative n shifts left.
func (o Ops[T]) ShiftRight(x T, n int) T {
	if n < 0 {
		return o.ShiftLeft(x, negDistance(n))
	}
	if o.lrs != nil {
		return o.lrs.ShiftRight(x, n)
	}
	return o.sh.Shift(x, -n)
}

func (o Ops[T]) Rotate(x T, n int) T {
	if o.rot != nil {
		return o.rot.Rotate(x, n)
	}
	if o.lrr != nil {
		if n == math.MinInt {
			// -n does not fit in an int.
			return o.lrr.RotateRight(o.lrr.RotateRight(x, math.MaxInt), 1)
		} else if n < 0 {
			return o.lrr.RotateRight(x, -n)
		} else if n == 0 {
			return x
		}
		return o.lrr.RotateLeft(x, n)
	}
	return o.Shift(x, n)
}

// RotateLeft rotates x left by n. A negative n rotates right.
func (o Ops[T]) RotateLeft(x T, n int) T {
	if o.lrr != nil && n >= 0 {
		return o.lrr.RotateLeft(x, n)
	}
	return o.Rotate(x, n)
}

// RotateRight rotates x right by n. A negative n rotates left.
func (o Ops[T]) RotateRight(x T, n int) T {
	if o.lrr != nil && n >= 0 {
		return o.lrr.RotateRight(x, n)
	}
	if n == math.MinInt {
		return o.Rotate(o.Rotate(x, math.MaxInt), 1)
	}
	return o.Rotate(x, -n)
}

// Bit returns the value with only bit i set.
func (o Ops[T]) Bit(i int) T { return o.ShiftLeft(o.b.One(), i) }

func (o Ops[T]) SetBit(x T, i int) T   { return o.b.Or(x, o.Bit(i)) }
func (o Ops[T]) ClearBit(x T, i int) T { return o.b.And(x, o.b.Complement(o.Bit(i))) }

func (o Ops[T]) ComplementBit(x T, i int) T { return o.b.Xor(x, o.Bit(i)) }

func (o Ops[T]) TestBit(x T, i int) bool {
	return !o.b.Equal(o.b.And(x, o.Bit(i)), o.b.Zero())
}

// PopCount returns the number of set bits in x. If T has no fixed width and
// x is negative, it returns the number of zero bits in x, negated.
func (o Ops[T]) PopCount(x T) (n int) {
	if o.pop != nil {
		return o.pop.PopCount(x)
	}

	if w, err := o.b.BitWidth(); err == nil {
		for i := 0; i < w; i++ {
			if o.TestBit(x, i) {
				n++
			}
		}
		return n
	}

	// Without a width, shift right until only the sign remains; an
	// arithmetic shift always converges on zero or all ones.
	var ones, zeros int
	zero, allOnes := o.b.Zero(), o.AllOnes()
	for !o.b.Equal(x, zero) && !o.b.Equal(x, allOnes) {
		if o.TestBit(x, 0) {
			ones++
		} else {
			zeros++
		}
		x = o.ShiftRight(x, 1)
	}
	if o.b.Equal(x, zero) {
		return ones
	}
	return -zeros
}

// negDistance negates a shift distance without overflowing at math.MinInt.
func negDistance(n int) int {
	if n == math.MinInt {
		return math.MaxInt
	}
	return -n
}
