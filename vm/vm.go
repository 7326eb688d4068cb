// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package vm

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Overflow selects what Add and Sub do when the result does not
// fit in a Cell.
type Overflow int

const (
	WrapOnOverflow = Overflow(iota) // two's complement wraparound
	TrapOnOverflow                  // IntegerOverflow trap
)

func (o Overflow) String() string {
	switch o {
	case WrapOnOverflow:
		return "wrap"
	case TrapOnOverflow:
		return "trap"
	}
	return fmt.Sprintf("overflow(%d)", int(o))
}

// ParseOverflow parses "wrap" or "trap".
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "wrap":
		return WrapOnOverflow, nil
	case "trap":
		return TrapOnOverflow, nil
	}
	return 0, fmt.Errorf("unknown overflow policy %q", s)
}

// Options tune a VM.  The zero value is an unlimited stack,
// wrapping arithmetic and no logging.
type Options struct {
	MaxDepth int             // operand stack limit, 0 for none
	Overflow Overflow        // Add and Sub overflow behaviour
	Log      *zerolog.Logger // trace log, nil for none
}

// VM runs a single program.  It owns its operand stack and
// cursor and must not be reused for another program.
type VM struct {
	prog     Cursor
	out      io.Writer
	stack    vmStack
	pc       int   // number of instructions pulled
	lastpc   int   // offset of the last instruction pulled
	instr    Instr // last instruction pulled
	overflow Overflow
	log      zerolog.Logger
}

// New returns a VM that will run prog, printing to out.
func New(prog Cursor, out io.Writer, opts Options) *VM {
	vm := &VM{
		prog:     prog,
		out:      out,
		stack:    vmStack{max: opts.MaxDepth},
		overflow: opts.Overflow,
		log:      zerolog.Nop(),
	}
	if opts.Log != nil {
		vm.log = *opts.Log
	}
	return vm
}

// Stack returns a copy of the operand stack, bottom first.
func (vm *VM) Stack() Stack {
	return vm.stack.snapshot()
}

// Int64s returns s as int64 values.
func (s Stack) Int64s() []int64 {
	v := make([]int64, len(s))
	for i, c := range s {
		v[i] = int64(c)
	}
	return v
}

func (vm *VM) trace(in Instr) {
	if e := vm.log.Trace(); e.Enabled() {
		e.Int("pc", vm.lastpc).
			Stringer("instr", in).
			Ints64("stack", vm.stack.cells.Int64s()).
			Msg("step")
	}
}

// next pulls the next instruction off the cursor.  It returns
// io.EOF at the end of the program.
func (vm *VM) next() (Instr, error) {
	in, err := vm.prog.Next()
	switch {
	case errors.Is(err, io.EOF):
		return in, io.EOF
	case err != nil:
		return in, vm.newSourceError(err)
	}
	vm.lastpc, vm.instr = vm.pc, in
	vm.pc++
	return in, nil
}

// exec dispatches in, which must be the last instruction pulled.
func (vm *VM) exec(in Instr) error {
	pc := vm.lastpc
	vm.trace(in)
	err := vm.step(in)
	if errno, ok := err.(Errno); ok {
		return vm.newErrorAt(errno, pc, in)
	}
	return err
}

func (vm *VM) step(in Instr) error {
	switch in.Op {
	case Push:
		return vm.stack.push(in.Arg)
	case Pop:
		return vm.drop()
	case Add:
		return vm.plus()
	case Sub:
		return vm.minus()
	case Not:
		return vm.not()
	case Eq:
		return vm.equals()
	case Dup:
		return vm.dup()
	case Dump:
		return vm.dot()
	case If:
		return vm.ifElse()
	case Else, End:
		// IF consumes its own ELSE and END
		return UnmatchedControlFlow
	}
	return IllegalInstruction
}

// block dispatches instructions up to the ELSE or END closing the
// current conditional and returns the closing op.
func (vm *VM) block() (Op, error) {
	for {
		in, err := vm.next()
		if err != nil {
			return 0, err
		}
		if in.Op == Else || in.Op == End {
			return in.Op, nil
		}
		if err := vm.exec(in); err != nil {
			return 0, err
		}
	}
}

// skip pulls instructions without dispatching them up to the END
// closing the current conditional, or up to its ELSE if toElse
// is set, and returns the closing op.
func (vm *VM) skip(toElse bool) (Op, error) {
	from := vm.pc
	depth := 1
	for {
		in, err := vm.next()
		if err != nil {
			return 0, err
		}
		switch in.Op {
		case If:
			depth++
			continue
		case Else:
			if depth > 1 {
				continue
			}
			if !toElse {
				return 0, vm.newError(UnmatchedControlFlow)
			}
		case End:
			if depth--; depth > 0 {
				continue
			}
		default:
			continue
		}
		vm.log.Trace().Int("from", from).Int("to", vm.lastpc).Msg("skip")
		return in.Op, nil
	}
}

// if ( x -- )
func (vm *VM) ifElse() error {
	at, in := vm.lastpc, vm.instr
	unmatched := func(err error) error {
		if err == io.EOF {
			return vm.newErrorAt(UnmatchedControlFlow, at, in)
		}
		return err
	}
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	if c != 0 {
		op, err := vm.block()
		if err == nil && op == Else {
			_, err = vm.skip(false)
		}
		return unmatched(err)
	}
	op, err := vm.skip(true)
	if err != nil {
		return unmatched(err)
	}
	if op == Else {
		if op, err = vm.block(); err != nil {
			return unmatched(err)
		}
		if op == Else {
			return vm.newError(UnmatchedControlFlow)
		}
	}
	return nil
}

// Run executes the program up to its end or the first trap.
func (vm *VM) Run() error {
	for {
		in, err := vm.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := vm.exec(in); err != nil {
			return err
		}
	}
}
