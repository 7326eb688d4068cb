// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package vm

import "strconv"

// List of VM traps for Errno
const (
	StackUnderflow = Errno(iota)
	StackOverflow
	UnmatchedControlFlow
	IntegerOverflow
	IllegalInstruction
	SourceError
	IOError
)

var strError = []string{
	"stack underflow",
	"stack overflow",
	"unmatched control flow",
	"integer overflow",
	"illegal instruction",
	"source error",
	"I/O error",
}

// Errno describes the reason for a VM trap.
type Errno int

func (e Errno) Error() string {
	if e < 0 || int(e) >= len(strError) {
		return "trap " + strconv.Itoa(int(e))
	}
	return strError[e]
}

// Error describes the cause and the context of a VM trap.
type Error struct {
	Errno Errno // nature of the trap
	Err   error // cause when Errno is SourceError or IOError
	PC    int   // offset of the instruction that raised the trap
	Instr Instr // instruction that raised the trap, unless SourceError
	Stack Stack // operand stack at the time of the trap
}

func (e *Error) Error() string {
	var msg = "stax: "
	if e.Err != nil {
		msg += e.Err.Error()
	} else {
		msg += e.Errno.Error()
	}
	msg += " at " + strconv.Itoa(e.PC)
	if e.Errno != SourceError {
		msg += " (" + e.Instr.String() + ")"
	}
	return msg
}

// Unwrap makes both the Errno and the cause visible to errors.Is
// and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Errno, e.Err}
	}
	return []error{e.Errno}
}

func (vm *VM) newErrorFull(errno Errno, err error, pc int, in Instr) error {
	return &Error{
		Errno: errno,
		Err:   err,
		PC:    pc,
		Instr: in,
		Stack: vm.stack.snapshot(),
	}
}

func (vm *VM) newErrorAt(errno Errno, pc int, in Instr) error {
	return vm.newErrorFull(errno, nil, pc, in)
}

func (vm *VM) newError(errno Errno) error {
	return vm.newErrorAt(errno, vm.lastpc, vm.instr)
}

func (vm *VM) newSourceError(err error) error {
	return vm.newErrorFull(SourceError, err, vm.pc, Instr{})
}

func (vm *VM) newIOError(err error) error {
	return vm.newErrorFull(IOError, err, vm.lastpc, vm.instr)
}
