package numbits

// Fixed implements Bits for a two's-complement word of a fixed width. All
// operations preserve the width; bit 0 is the least significant.
//
// Fixed supplies Shift and Rotate natively. Shifts by the width or more
// discard every bit (or, for a right shift of a negative signed value, leave
// every bit set), so the kernel is never asked to shift by more than it
// supports.
type Fixed[W any] struct {
	k      WordKernel[W]
	width  int
	signed bool
}

// NewFixed wraps a word kernel. If signed is true, right shifts are
// arithmetic; otherwise they are logical.
func NewFixed[W any](k WordKernel[W], signed bool) Fixed[W] {
	return Fixed[W]{k: k, width: k.Width(), signed: signed}
}

// NativeBits returns the Fixed for one of Go's built-in integer types. Width
// and signedness come from T, so int, uint and uintptr take the platform's
// word size.
func NativeBits[T Integer]() Fixed[T] {
	return NewFixed[T](newNativeKernel[T](), isSignedInteger[T]())
}

func (f Fixed[W]) Zero() W           { return f.k.Zero() }
func (f Fixed[W]) One() W            { return f.k.One() }
func (f Fixed[W]) Equal(a, b W) bool { return f.k.Equal(a, b) }
func (f Fixed[W]) And(a, b W) W      { return f.k.And(a, b) }
func (f Fixed[W]) Or(a, b W) W       { return f.k.Or(a, b) }
func (f Fixed[W]) Xor(a, b W) W      { return f.k.Xor(a, b) }
func (f Fixed[W]) Complement(a W) W  { return f.k.Not(a) }
func (f Fixed[W]) IsSigned() bool    { return f.signed }

func (f Fixed[W]) BitWidth() (int, error) { return f.width, nil }

func (f Fixed[W]) Shift(x W, n int) W {
	if n >= 0 {
		if n >= f.width {
			return f.k.Zero()
		}
		return f.k.Lsh(x, uint(n))
	}

	n = negDistance(n)
	if f.signed {
		if n >= f.width {
			n = f.width - 1
		}
		return f.k.RshArith(x, uint(n))
	}
	if n >= f.width {
		return f.k.Zero()
	}
	return f.k.RshLogical(x, uint(n))
}

// Rotate rotates x left by n bits, or right by -n bits if n is negative. The
// distance is taken modulo the width. Bits that are rotated out re-enter
// unchanged; the sign bit is not extended.
func (f Fixed[W]) Rotate(x W, n int) W {
	r := n % f.width
	if r < 0 {
		r += f.width
	}
	if r == 0 {
		return x
	}
	return f.k.Or(f.k.Lsh(x, uint(r)), f.k.RshLogical(x, uint(f.width-r)))
}

func (f Fixed[W]) PopCount(x W) (n int) {
	if oc, ok := f.k.(OnesCounter[W]); ok {
		return oc.OnesCount(x)
	}
	one := f.k.One()
	for i := 0; i < f.width; i++ {
		if !f.k.Equal(f.k.And(x, one), f.k.Zero()) {
			n++
		}
		x = f.k.RshLogical(x, 1)
	}
	return n
}

func Int8Bits() Fixed[int8]       { return NativeBits[int8]() }
func Int16Bits() Fixed[int16]     { return NativeBits[int16]() }
func Int32Bits() Fixed[int32]     { return NativeBits[int32]() }
func Int64Bits() Fixed[int64]     { return NativeBits[int64]() }
func IntBits() Fixed[int]         { return NativeBits[int]() }
func Uint8Bits() Fixed[uint8]     { return NativeBits[uint8]() }
func Uint16Bits() Fixed[uint16]   { return NativeBits[uint16]() }
func Uint32Bits() Fixed[uint32]   { return NativeBits[uint32]() }
func Uint64Bits() Fixed[uint64]   { return NativeBits[uint64]() }
func UintBits() Fixed[uint]       { return NativeBits[uint]() }
func UintptrBits() Fixed[uintptr] { return NativeBits[uintptr]() }

var (
	Int8Ops    = MustDerive[int8](Int8Bits())
	Int16Ops   = MustDerive[int16](Int16Bits())
	Int32Ops   = MustDerive[int32](Int32Bits())
	Int64Ops   = MustDerive[int64](Int64Bits())
	IntOps     = MustDerive[int](IntBits())
	Uint8Ops   = MustDerive[uint8](Uint8Bits())
	Uint16Ops  = MustDerive[uint16](Uint16Bits())
	Uint32Ops  = MustDerive[uint32](Uint32Bits())
	Uint64Ops  = MustDerive[uint64](Uint64Bits())
	UintOps    = MustDerive[uint](UintBits())
	UintptrOps = MustDerive[uintptr](UintptrBits())
)
