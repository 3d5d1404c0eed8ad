package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/holiman/uint256"
	numbits "github.com/shabbyrobe/go-numbits"
)

// This is a small calculator for poking at the bit operations from the
// command line, mostly useful for checking what the fuzzer is complaining
// about without writing a test case first.

const usage = `Bit calculator

Usage: bitcalc [-dump] <type> <op> [<x> [<y>|<n>]]

Types:
  u8 u16 u32 u64 u128 u256
  i8 i16 i32 i64 i128 i256
  int (unbounded)

Ops:
  and, or, xor        <x> <y>
  not, popcount       <x>
  shl, shr, shift     <x> <n>
  rotl, rotr, rotate  <x> <n>
  set, clear, flip    <x> <n>
  test                <x> <n>
  bit                 <n>
  width, signed

Operands are parsed like Go integer literals ('0x', '0b' and '0o' prefixes
are accepted). Values that do not fit in <type> are wrapped.
`

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var dump bool

	fs := flag.NewFlagSet("bitcalc", flag.ContinueOnError)
	fs.BoolVar(&dump, "dump", false, "Dump the result's internal representation")
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	args := fs.Args()
	if len(args) < 2 {
		fs.Usage()
		return fmt.Errorf("missing args")
	}

	c, err := calculatorFor(args[0])
	if err != nil {
		return err
	}

	result, err := c.calc(args[1], args[2:])
	if err != nil {
		return err
	}

	fmt.Println(result.text)
	if dump && result.raw != nil {
		spew.Dump(result.raw)
	}
	return nil
}

type result struct {
	text string
	raw  interface{}
}

type calculator interface {
	calc(op string, args []string) (result, error)
}

// typedCalc runs ops on T. Operands and results pass through big.Int so that
// every type is read and printed the same way.
type typedCalc[T any] struct {
	ops  numbits.Ops[T]
	from func(*big.Int) T
	to   func(T) *big.Int
}

func (c typedCalc[T]) value(s string) (T, error) {
	var zero T
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return zero, fmt.Errorf("bitcalc: invalid integer %q", s)
	}
	return c.from(b), nil
}

func (c typedCalc[T]) values(args []string, n int) (out []T, err error) {
	if len(args) != n {
		return nil, fmt.Errorf("bitcalc: expected %d operands, found %d", n, len(args))
	}
	for _, a := range args {
		v, err := c.value(a)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c typedCalc[T]) valueAndCount(args []string) (x T, n int, err error) {
	if len(args) != 2 {
		return x, 0, fmt.Errorf("bitcalc: expected <x> <n>, found %d operands", len(args))
	}
	if x, err = c.value(args[0]); err != nil {
		return x, 0, err
	}
	if n, err = strconv.Atoi(args[1]); err != nil {
		return x, 0, err
	}
	return x, n, nil
}

func (c typedCalc[T]) show(v T) result {
	return result{text: c.to(v).String(), raw: v}
}

func (c typedCalc[T]) calc(op string, args []string) (result, error) {
	switch op {
	case "and", "or", "xor":
		vs, err := c.values(args, 2)
		if err != nil {
			return result{}, err
		}
		switch op {
		case "and":
			return c.show(c.ops.And(vs[0], vs[1])), nil
		case "or":
			return c.show(c.ops.Or(vs[0], vs[1])), nil
		default:
			return c.show(c.ops.Xor(vs[0], vs[1])), nil
		}

	case "not", "popcount":
		vs, err := c.values(args, 1)
		if err != nil {
			return result{}, err
		}
		if op == "not" {
			return c.show(c.ops.Complement(vs[0])), nil
		}
		return result{text: strconv.Itoa(c.ops.PopCount(vs[0]))}, nil

	case "shl", "shr", "shift", "rotl", "rotr", "rotate", "set", "clear", "flip", "test":
		x, n, err := c.valueAndCount(args)
		if err != nil {
			return result{}, err
		}
		switch op {
		case "shl":
			return c.show(c.ops.ShiftLeft(x, n)), nil
		case "shr":
			return c.show(c.ops.ShiftRight(x, n)), nil
		case "shift":
			return c.show(c.ops.Shift(x, n)), nil
		case "rotl":
			return c.show(c.ops.RotateLeft(x, n)), nil
		case "rotr":
			return c.show(c.ops.RotateRight(x, n)), nil
		case "rotate":
			return c.show(c.ops.Rotate(x, n)), nil
		case "set":
			return c.show(c.ops.SetBit(x, n)), nil
		case "clear":
			return c.show(c.ops.ClearBit(x, n)), nil
		case "flip":
			return c.show(c.ops.ComplementBit(x, n)), nil
		default:
			return result{text: strconv.FormatBool(c.ops.TestBit(x, n))}, nil
		}

	case "bit":
		if len(args) != 1 {
			return result{}, fmt.Errorf("bitcalc: expected <n>, found %d operands", len(args))
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return result{}, err
		}
		return c.show(c.ops.Bit(n)), nil

	case "width":
		w, err := c.ops.BitWidth()
		if err != nil {
			return result{}, err
		}
		return result{text: strconv.Itoa(w)}, nil

	case "signed":
		return result{text: strconv.FormatBool(c.ops.IsSigned())}, nil

	default:
		return result{}, fmt.Errorf("bitcalc: unknown op %q", op)
	}
}

var mask64 = new(big.Int).SetUint64(1<<64 - 1)

func low64(b *big.Int) uint64 { return new(big.Int).And(b, mask64).Uint64() }

func native[T numbits.Integer](ops numbits.Ops[T]) calculator {
	signed := ops.IsSigned()
	return typedCalc[T]{
		ops:  ops,
		from: func(b *big.Int) T { return T(low64(b)) },
		to: func(v T) *big.Int {
			if signed {
				return big.NewInt(int64(v))
			}
			return new(big.Int).SetUint64(uint64(v))
		},
	}
}

func wide[T any](ops numbits.Ops[T], from func(*big.Int) T, to func(T) *big.Int) calculator {
	return typedCalc[T]{ops: ops, from: from, to: to}
}

func u256From(b *big.Int) uint256.Int {
	u, _ := numbits.U256FromBigInt(b)
	return u
}

func u128From(b *big.Int) numbits.U128 {
	hi := low64(new(big.Int).Rsh(b, 64))
	return numbits.U128FromRaw(hi, low64(b))
}

func calculatorFor(numType string) (calculator, error) {
	switch numType {
	case "u8":
		return native(numbits.Uint8Ops), nil
	case "u16":
		return native(numbits.Uint16Ops), nil
	case "u32":
		return native(numbits.Uint32Ops), nil
	case "u64":
		return native(numbits.Uint64Ops), nil
	case "i8":
		return native(numbits.Int8Ops), nil
	case "i16":
		return native(numbits.Int16Ops), nil
	case "i32":
		return native(numbits.Int32Ops), nil
	case "i64":
		return native(numbits.Int64Ops), nil

	case "u128":
		return wide(numbits.U128Ops, u128From, numbits.U128.AsBigInt), nil
	case "i128":
		return wide(numbits.I128Ops,
			func(b *big.Int) numbits.I128 { return u128From(b).AsI128() },
			numbits.I128.AsBigInt), nil
	case "u256":
		return wide(numbits.U256Ops, u256From, func(v uint256.Int) *big.Int { return v.ToBig() }), nil
	case "i256":
		return wide(numbits.I256Ops, u256From, numbits.I256AsBigInt), nil

	case "int":
		return wide(numbits.UnboundedOps, numbits.IntFromBigInt, numbits.Int.AsBigInt), nil

	default:
		return nil, fmt.Errorf("bitcalc: unknown type %q", numType)
	}
}
