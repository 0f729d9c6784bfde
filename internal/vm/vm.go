package vm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nukata/goarith"

	"lisc/internal/ir"
)

// VM executes an encoded module: it decodes the constant pool and the
// instruction list, evaluates every instruction in order, and yields
// the value of the last one.
type VM struct {
	consts []goarith.Number
	insts  []inst
}

type inst struct {
	op   *ir.Op
	args []operand
}

type operand struct {
	tag byte
	idx uint32
}

// New decodes an encoded module. The byte slice must carry the "LBC"
// magic and a supported version.
func New(code []byte) (*VM, error) {
	r := &reader{buf: code}

	magic := r.bytes(len(ir.Magic))
	if string(magic) != ir.Magic {
		return nil, errors.New("invalid module header")
	}
	if v := r.byte(); v != ir.Version {
		return nil, fmt.Errorf("unsupported module version %d", v)
	}

	vm := &VM{}
	nConsts := r.uint32()
	for i := uint32(0); i < nConsts && r.err == nil; i++ {
		vm.consts = append(vm.consts, goarith.AsNumber(int64(r.uint64())))
	}

	nInsts := r.uint32()
	for i := uint32(0); i < nInsts && r.err == nil; i++ {
		op, ok := ir.OpByCode(r.byte())
		if !ok && r.err == nil {
			return nil, fmt.Errorf("unknown opcode in instruction %d", i)
		}
		in := inst{op: op}
		argc := r.byte()
		for j := byte(0); j < argc && r.err == nil; j++ {
			in.args = append(in.args, operand{tag: r.byte(), idx: r.uint32()})
		}
		vm.insts = append(vm.insts, in)
	}
	if r.err != nil {
		return nil, r.err
	}
	return vm, nil
}

// Run evaluates the instruction list and returns the last result.
func (vm *VM) Run() (goarith.Number, error) {
	if len(vm.insts) == 0 {
		return nil, errors.New("module has no instructions")
	}

	results := make([]goarith.Number, len(vm.insts))
	for i, in := range vm.insts {
		args := make([]goarith.Number, len(in.args))
		for j, a := range in.args {
			switch a.tag {
			case ir.TagConst:
				if int(a.idx) >= len(vm.consts) {
					return nil, fmt.Errorf("instruction %d: constant %d out of range", i, a.idx)
				}
				args[j] = vm.consts[a.idx]
			case ir.TagResult:
				if int(a.idx) >= i {
					return nil, fmt.Errorf("instruction %d: result %%%d not yet computed", i, a.idx)
				}
				args[j] = results[a.idx]
			default:
				return nil, fmt.Errorf("instruction %d: unknown operand tag %d", i, a.tag)
			}
		}
		if len(args) != in.op.Arity {
			return nil, fmt.Errorf("instruction %d: %s expects %d operands, got %d", i, in.op.Name, in.op.Arity, len(args))
		}
		results[i] = in.op.Apply(args)
	}
	return results[len(results)-1], nil
}

// Run decodes and executes an encoded module in one step.
func Run(code []byte) (goarith.Number, error) {
	vm, err := New(code)
	if err != nil {
		return nil, err
	}
	return vm.Run()
}

// reader walks the encoded byte stream, latching the first error so
// decode loops stay flat.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.buf) {
		r.err = errors.New("truncated module")
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) byte() byte {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) uint32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) uint64() uint64 {
	b := r.bytes(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}
