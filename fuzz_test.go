package numbits

import (
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/holiman/uint256"
)

type fuzzOp string
type fuzzType string

// This is the equivalent of passing -numbits.fuzziter=2000 to 'go test':
const fuzzDefaultIterations = 2000

// These ops are all enabled by default. You can instead pass them explicitly
// on the command line like so: '-numbits.fuzzop=and -numbits.fuzzop=or', or
// you can use the short form '-numbits.fuzzop=and,or,xor'.
//
// If you add a new op, search for the string 'NEWOP' in this file for all the
// places you need to update.
const (
	fuzzAnd           fuzzOp = "and"
	fuzzClearBit      fuzzOp = "clearbit"
	fuzzComplement    fuzzOp = "complement"
	fuzzComplementBit fuzzOp = "complementbit"
	fuzzOr            fuzzOp = "or"
	fuzzPopCount      fuzzOp = "popcount"
	fuzzRotate        fuzzOp = "rotate"
	fuzzSetBit        fuzzOp = "setbit"
	fuzzShift         fuzzOp = "shift"
	fuzzTestBit       fuzzOp = "testbit"
	fuzzXor           fuzzOp = "xor"
)

// allFuzzOps are active by default.
//
// NEWOP: Update this list if a NEW op is added otherwise it won't be
// enabled by default.
//
// Please keep this list alphabetised.
var allFuzzOps = []fuzzOp{
	fuzzAnd,
	fuzzClearBit,
	fuzzComplement,
	fuzzComplementBit,
	fuzzOr,
	fuzzPopCount,
	fuzzRotate,
	fuzzSetBit,
	fuzzShift,
	fuzzTestBit,
	fuzzXor,
}

var allFuzzTypes = []fuzzType{
	"u8", "i8", "u16", "i16", "u32", "i32", "u64", "i64",
	"goint", "gouint", "uintptr",
	"u128", "i128", "u256", "i256", "int",
}

// NEWOP: update this interface if a new op is added.
type fuzzOps interface {
	Name() string // Not an op

	And() error
	ClearBit() error
	Complement() error
	ComplementBit() error
	Or() error
	PopCount() error
	Rotate() error
	SetBit() error
	Shift() error
	TestBit() error
	Xor() error
}

// classic rando!
type rando struct {
	operands []*big.Int
	rng      *rand.Rand
}

func (r *rando) Operands() []*big.Int { return r.operands }

func (r *rando) Clear() {
	for i := range r.operands {
		r.operands[i] = nil
	}
	r.operands = r.operands[:0]
}

func (r *rando) Intn(n int) int {
	v := r.rng.Intn(n)
	r.operands = append(r.operands, big.NewInt(int64(v)))
	return v
}

// Distance returns a shift or rotate distance in [-limit, limit].
func (r *rando) Distance(limit int) int {
	v := r.rng.Intn(limit*2+1) - limit
	r.operands = append(r.operands, big.NewInt(int64(v)))
	return v
}

// Value returns a random value representable in width bits. A width of 0
// means unbounded.
func (r *rando) Value(width int, signed bool) *big.Int {
	var v *big.Int
	if width == 0 {
		v = randomBig(r.rng, 300, true)
	} else {
		v = wrapBig(randomBig(r.rng, width, signed), width, signed)
	}
	r.operands = append(r.operands, v)
	return v
}

// fuzzBits checks Ops[T] against math/big. width == 0 means T is unbounded,
// in which case nothing is wrapped and rotate is expected to behave like
// shift.
type fuzzBits[T any] struct {
	name   string
	ops    Ops[T]
	width  int
	signed bool
	from   func(*big.Int) T
	to     func(T) *big.Int
	source *rando
}

func (f *fuzzBits[T]) Name() string { return f.name }

func (f *fuzzBits[T]) wrap(b *big.Int) *big.Int {
	if f.width == 0 {
		return b
	}
	return wrapBig(b, f.width, f.signed)
}

// bitLimit is the largest bit index worth testing; for unbounded values,
// indexes past the operand's length are still interesting.
func (f *fuzzBits[T]) bitLimit() int {
	if f.width == 0 {
		return 320
	}
	return f.width + 8
}

func (f *fuzzBits[T]) check(result T, expected *big.Int) error {
	got := f.to(result)
	if got.Cmp(expected) != 0 {
		return fmt.Errorf("%s(%s) != big(%s)", f.name, got, expected)
	}
	return nil
}

func (f *fuzzBits[T]) pair() (b1, b2 *big.Int, v1, v2 T) {
	b1, b2 = f.source.Value(f.width, f.signed), f.source.Value(f.width, f.signed)
	return b1, b2, f.from(b1), f.from(b2)
}

func (f *fuzzBits[T]) And() error {
	b1, b2, v1, v2 := f.pair()
	return f.check(f.ops.And(v1, v2), f.wrap(new(big.Int).And(b1, b2)))
}

func (f *fuzzBits[T]) Or() error {
	b1, b2, v1, v2 := f.pair()
	return f.check(f.ops.Or(v1, v2), f.wrap(new(big.Int).Or(b1, b2)))
}

func (f *fuzzBits[T]) Xor() error {
	b1, b2, v1, v2 := f.pair()
	return f.check(f.ops.Xor(v1, v2), f.wrap(new(big.Int).Xor(b1, b2)))
}

func (f *fuzzBits[T]) Complement() error {
	b1 := f.source.Value(f.width, f.signed)
	v1 := f.from(b1)
	if err := f.check(f.ops.Complement(v1), f.wrap(new(big.Int).Not(b1))); err != nil {
		return err
	}
	if rd := f.ops.Complement(f.ops.Complement(v1)); !f.ops.Equal(rd, v1) {
		return fmt.Errorf("double complement does not equal input. expected %s, found %s", b1, f.to(rd))
	}
	return nil
}

func (f *fuzzBits[T]) Shift() error {
	b1 := f.source.Value(f.width, f.signed)
	limit := f.width + 16
	if f.width == 0 {
		limit = 400
	}
	by := f.source.Distance(limit)

	rb := new(big.Int)
	if by >= 0 {
		rb.Lsh(b1, uint(by))
	} else {
		rb.Rsh(b1, uint(-by))
	}
	return f.check(f.ops.Shift(f.from(b1), by), f.wrap(rb))
}

func (f *fuzzBits[T]) Rotate() error {
	if f.width == 0 {
		return f.Shift()
	}

	b1 := f.source.Value(f.width, f.signed)
	by := f.source.Distance(f.width * 3)

	r := by % f.width
	if r < 0 {
		r += f.width
	}
	u := maskBig(b1, f.width)
	rb := new(big.Int).Lsh(u, uint(r))
	rb.Or(rb, new(big.Int).Rsh(u, uint(f.width-r)))

	v1 := f.from(b1)
	if err := f.check(f.ops.Rotate(v1, by), f.wrap(rb)); err != nil {
		return err
	}

	// Rotating back the other way must restore the input:
	if back := f.ops.RotateRight(f.ops.RotateLeft(v1, by), by); !f.ops.Equal(back, v1) {
		return fmt.Errorf("rotate left then right by %d: expected %s, found %s", by, b1, f.to(back))
	}
	return nil
}

func (f *fuzzBits[T]) SetBit() error {
	b1 := f.source.Value(f.width, f.signed)
	bt := f.source.Intn(f.bitLimit())
	rb := new(big.Int).SetBit(b1, bt, 1)
	return f.check(f.ops.SetBit(f.from(b1), bt), f.wrap(rb))
}

func (f *fuzzBits[T]) ClearBit() error {
	b1 := f.source.Value(f.width, f.signed)
	bt := f.source.Intn(f.bitLimit())
	rb := new(big.Int).SetBit(b1, bt, 0)
	return f.check(f.ops.ClearBit(f.from(b1), bt), f.wrap(rb))
}

func (f *fuzzBits[T]) ComplementBit() error {
	b1 := f.source.Value(f.width, f.signed)
	bt := f.source.Intn(f.bitLimit())
	rb := new(big.Int).SetBit(b1, bt, b1.Bit(bt)^1)
	return f.check(f.ops.ComplementBit(f.from(b1), bt), f.wrap(rb))
}

func (f *fuzzBits[T]) TestBit() error {
	b1 := f.source.Value(f.width, f.signed)
	bt := f.source.Intn(f.bitLimit())

	pattern := b1
	if f.width > 0 {
		pattern = maskBig(b1, f.width)
	}
	expected := pattern.Bit(bt) == 1
	if result := f.ops.TestBit(f.from(b1), bt); result != expected {
		return fmt.Errorf("%s(%v) != big(%v)", f.name, result, expected)
	}
	return nil
}

func (f *fuzzBits[T]) PopCount() error {
	b1 := f.source.Value(f.width, f.signed)

	var expected int
	if f.width > 0 {
		expected = bigOnesCount(maskBig(b1, f.width))
	} else if b1.Sign() < 0 {
		expected = -bigOnesCount(new(big.Int).Not(b1))
	} else {
		expected = bigOnesCount(b1)
	}

	if result := f.ops.PopCount(f.from(b1)); result != expected {
		return fmt.Errorf("%s(%d) != big(%d)", f.name, result, expected)
	}
	return nil
}

// NEWOP: func (f *fuzzBits[T]) ...() error {}

func bigOnesCount(b *big.Int) (n int) {
	for i := 0; i < b.BitLen(); i++ {
		n += int(b.Bit(i))
	}
	return n
}

func fuzzNative[T Integer](name string, source *rando) fuzzOps {
	signed := isSignedInteger[T]()
	return &fuzzBits[T]{
		name:   name,
		ops:    MustDerive[T](NativeBits[T]()),
		width:  newNativeKernel[T]().Width(),
		signed: signed,
		from: func(b *big.Int) T {
			return T(maskBig(b, 64).Uint64())
		},
		to: func(v T) *big.Int {
			if signed {
				return big.NewInt(int64(v))
			}
			return new(big.Int).SetUint64(uint64(v))
		},
		source: source,
	}
}

func newFuzzType(ft fuzzType, source *rando) fuzzOps {
	switch ft {
	case "u8":
		return fuzzNative[uint8](string(ft), source)
	case "i8":
		return fuzzNative[int8](string(ft), source)
	case "u16":
		return fuzzNative[uint16](string(ft), source)
	case "i16":
		return fuzzNative[int16](string(ft), source)
	case "u32":
		return fuzzNative[uint32](string(ft), source)
	case "i32":
		return fuzzNative[int32](string(ft), source)
	case "u64":
		return fuzzNative[uint64](string(ft), source)
	case "i64":
		return fuzzNative[int64](string(ft), source)
	case "goint":
		return fuzzNative[int](string(ft), source)
	case "gouint":
		return fuzzNative[uint](string(ft), source)
	case "uintptr":
		return fuzzNative[uintptr](string(ft), source)

	case "u128":
		return &fuzzBits[U128]{
			name:   "u128",
			ops:    U128Ops,
			width:  128,
			signed: false,
			source: source,
			from:   func(b *big.Int) U128 { u, _ := U128FromBigInt(maskBig(b, 128)); return u },
			to:     func(v U128) *big.Int { return v.AsBigInt() },
		}

	case "i128":
		return &fuzzBits[I128]{
			name:   "i128",
			ops:    I128Ops,
			width:  128,
			signed: true,
			source: source,
			from:   func(b *big.Int) I128 { u, _ := U128FromBigInt(maskBig(b, 128)); return u.AsI128() },
			to:     func(v I128) *big.Int { return v.AsBigInt() },
		}

	case "u256":
		return &fuzzBits[uint256.Int]{
			name:   "u256",
			ops:    U256Ops,
			width:  256,
			signed: false,
			source: source,
			from:   func(b *big.Int) uint256.Int { u, _ := U256FromBigInt(b); return u },
			to:     func(v uint256.Int) *big.Int { return v.ToBig() },
		}

	case "i256":
		return &fuzzBits[uint256.Int]{
			name:   "i256",
			ops:    I256Ops,
			width:  256,
			signed: true,
			source: source,
			from:   func(b *big.Int) uint256.Int { u, _ := U256FromBigInt(b); return u },
			to:     I256AsBigInt,
		}

	case "int":
		return &fuzzBits[Int]{
			name:   "int",
			ops:    UnboundedOps,
			width:  0,
			signed: true,
			source: source,
			from:   IntFromBigInt,
			to:     func(v Int) *big.Int { return v.AsBigInt() },
		}

	default:
		panic(fmt.Errorf("unknown fuzz type %q", ft))
	}
}

func TestFuzz(t *testing.T) {
	// fuzzOpsActive comes from the -numbits.fuzzop flag, in TestMain:
	var runFuzzOps = fuzzOpsActive

	// fuzzTypesActive comes from the -numbits.fuzztype flag, in TestMain:
	var runFuzzTypes = fuzzTypesActive

	var source = &rando{rng: globalRNG} // Classic rando!
	var totalFailures int

	var fuzzTypes []fuzzOps
	for _, ft := range runFuzzTypes {
		fuzzTypes = append(fuzzTypes, newFuzzType(ft, source))
	}

	for _, fuzzImpl := range fuzzTypes {
		var failures = make([]int, len(runFuzzOps))

		for opIdx, op := range runFuzzOps {
			for i := 0; i < fuzzIterations; i++ {
				source.Clear()

				var err error

				// NEWOP: add a new branch here in alphabetical order if a new
				// op is added.
				switch op {
				case fuzzAnd:
					err = fuzzImpl.And()
				case fuzzClearBit:
					err = fuzzImpl.ClearBit()
				case fuzzComplement:
					err = fuzzImpl.Complement()
				case fuzzComplementBit:
					err = fuzzImpl.ComplementBit()
				case fuzzOr:
					err = fuzzImpl.Or()
				case fuzzPopCount:
					err = fuzzImpl.PopCount()
				case fuzzRotate:
					err = fuzzImpl.Rotate()
				case fuzzSetBit:
					err = fuzzImpl.SetBit()
				case fuzzShift:
					err = fuzzImpl.Shift()
				case fuzzTestBit:
					err = fuzzImpl.TestBit()
				case fuzzXor:
					err = fuzzImpl.Xor()
				default:
					panic(fmt.Errorf("unsupported op %q", op))
				}

				if err != nil {
					failures[opIdx]++
					t.Logf("%s %s: %s\n", fuzzImpl.Name(), op.Print(source.Operands()...), err)
				}
			}
		}

		for opIdx, cnt := range failures {
			if cnt > 0 {
				totalFailures += cnt
				t.Logf("impl %s, op %s: %d/%d failed", fuzzImpl.Name(), string(runFuzzOps[opIdx]), cnt, fuzzIterations)
			}
		}
	}

	if totalFailures > 0 {
		t.Fail()
	}
}

func (op fuzzOp) Print(operands ...*big.Int) string {
	strs := make([]string, len(operands))
	for i, o := range operands {
		strs[i] = o.String()
	}
	return fmt.Sprintf("%s(%s)", op, strings.Join(strs, ", "))
}
