/*
Package numbits provides a single set of bitwise operations (AND, OR, XOR,
complement, shift, rotate and single-bit access) over any integer type,
from Go's built-in integers through 128- and 256-bit words to an unbounded
Int.

A type describes itself with a small set of primitives (Bits, plus at least
one of Shifter or LRShifter) and Derive builds the rest:

	ops, err := numbits.Derive[uint16](myBits{})
	ops.SetBit(x, 3)
	ops.RotateLeft(x, 5)

Ready-made operation sets are provided for:

	Int8Ops ... Int64Ops, Uint8Ops ... Uint64Ops   sized built-in integers
	IntOps, UintOps, UintptrOps                    int, uint and uintptr
	U128Ops, I128Ops                               U128 and I128
	U256Ops, I256Ops                               uint256.Int, unsigned or two's complement
	UnboundedOps                                   Int

Each is derived from a constructor of the same name ending in Bits
(Int8Bits, U128Bits and so on); NativeBits covers any built-in integer type.

Fixed-width types keep every result inside their width. Shifting by the
width or more clears every bit, except that an arithmetic right shift of a
negative value leaves every bit set. Rotation distances are taken modulo
the width.

Int has no width. Its shifts multiply or floor-divide by powers of two,
its rotations are plain shifts, and its BitWidth reports ErrNoFixedWidth:

	numbits.UnboundedOps.Shift(numbits.IntFrom64(-5), -1) // -3

U128, I128 and Int are value types; all operations return new values.
*/
package numbits
