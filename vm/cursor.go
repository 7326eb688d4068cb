// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package vm

import "io"

// A Cursor yields a program one instruction at a time, in order.
//
// Next returns io.EOF at the end of the program and keeps
// returning it.  Any other error ends the program with a
// SourceError trap.  A cursor has no notion of position and can
// not go back.
type Cursor interface {
	Next() (Instr, error)
}

type sliceCursor struct {
	prog []Instr
}

// NewCursor returns a Cursor over prog.  prog must not be
// modified while the cursor is in use.
func NewCursor(prog []Instr) Cursor {
	return &sliceCursor{prog}
}

func (c *sliceCursor) Next() (Instr, error) {
	if len(c.prog) == 0 {
		return Instr{}, io.EOF
	}
	in := c.prog[0]
	c.prog = c.prog[1:]
	return in, nil
}
