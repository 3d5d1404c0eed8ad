package numbits

import (
	"math/bits"
	"unsafe"
)

// WordKernel supplies raw bit operations on a fixed-size word W. Shift
// counts passed to Lsh, RshLogical and RshArith are always in [0, Width()).
//
// RshArith fills vacated bits with the word's top bit regardless of how the
// word is otherwise interpreted; RshLogical fills them with zero.
type WordKernel[W any] interface {
	Width() int
	Zero() W
	One() W
	Equal(a, b W) bool

	And(a, b W) W
	Or(a, b W) W
	Xor(a, b W) W
	Not(a W) W

	Lsh(a W, n uint) W
	RshLogical(a W, n uint) W
	RshArith(a W, n uint) W
}

// OnesCounter is implemented by kernels that can count set bits faster than
// testing each one.
type OnesCounter[W any] interface {
	OnesCount(a W) int
}

// Integer is the set of Go's built-in integer types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// nativeKernel uses Go's own operators on T. Go defines >> as arithmetic for
// signed types and logical for unsigned ones, so each direction that the
// operator does not give us for free is patched up with a mask.
type nativeKernel[T Integer] struct {
	width uint
	mask  uint64 // low 'width' bits
}

func newNativeKernel[T Integer]() nativeKernel[T] {
	var z T
	w := uint(unsafe.Sizeof(z)) * 8
	return nativeKernel[T]{width: w, mask: ^uint64(0) >> (64 - w)}
}

func isSignedInteger[T Integer]() bool {
	var z T
	return z-1 < z
}

func (k nativeKernel[T]) Width() int        { return int(k.width) }
func (k nativeKernel[T]) Zero() T           { return 0 }
func (k nativeKernel[T]) One() T            { return 1 }
func (k nativeKernel[T]) Equal(a, b T) bool { return a == b }
func (k nativeKernel[T]) And(a, b T) T      { return a & b }
func (k nativeKernel[T]) Or(a, b T) T       { return a | b }
func (k nativeKernel[T]) Xor(a, b T) T      { return a ^ b }
func (k nativeKernel[T]) Not(a T) T         { return ^a }
func (k nativeKernel[T]) Lsh(a T, n uint) T { return a << n }

func (k nativeKernel[T]) RshLogical(a T, n uint) T {
	// For n == 0 the mask shift is by the full width, which Go defines as 0.
	return (a >> n) &^ (^T(0) << (k.width - n))
}

func (k nativeKernel[T]) RshArith(a T, n uint) T {
	r := a >> n
	if (a>>(k.width-1))&1 != 0 {
		// No-op for signed T, where ^T(0)>>n is still all ones.
		r |= ^(^T(0) >> n)
	}
	return r
}

func (k nativeKernel[T]) OnesCount(a T) int {
	return bits.OnesCount64(uint64(a) & k.mask)
}
