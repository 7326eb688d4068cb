// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package vm

import (
	"fmt"
	"strconv"
)

// Cell is the unit of the operand stack.
type Cell int64

func (c Cell) String() string {
	return strconv.FormatInt(int64(c), 10)
}

// Op is an instruction kind.
type Op uint8

// Instruction set
const (
	Push = Op(iota)
	Pop
	Add
	Sub
	Not
	Eq
	Dup
	Dump
	If
	Else
	End
	NumOps // number of instruction kinds
)

var opNames = [NumOps]string{
	Push: "push",
	Pop:  "pop",
	Add:  "+",
	Sub:  "-",
	Not:  "not",
	Eq:   "=",
	Dup:  "dup",
	Dump: ".",
	If:   "if",
	Else: "else",
	End:  "end",
}

// String returns the source keyword of op, or "push" for Push.
func (op Op) String() string {
	if op < NumOps {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Instr is a single instruction.  Arg is only meaningful when Op
// is Push.
type Instr struct {
	Op  Op
	Arg Cell
}

// String disassembles in.
func (in Instr) String() string {
	if in.Op == Push {
		return "push " + in.Arg.String()
	}
	return in.Op.String()
}
