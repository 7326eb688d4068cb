// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package vm

// Stack is a snapshot of the operand stack, bottom first.
type Stack []Cell

type vmStack struct {
	cells Stack
	max   int // 0 for unlimited
}

func (s *vmStack) depth() int {
	return len(s.cells)
}

func (s *vmStack) need(down, up int) error {
	switch {
	case len(s.cells) < down:
		return StackUnderflow
	case s.max > 0 && len(s.cells)+up > s.max:
		return StackOverflow
	}
	return nil
}

func (s *vmStack) push(c Cell) error {
	if err := s.need(0, 1); err != nil {
		return err
	}
	s.cells = append(s.cells, c)
	return nil
}

func (s *vmStack) pop() (Cell, error) {
	if err := s.need(1, 0); err != nil {
		return 0, err
	}
	l := len(s.cells) - 1
	c := s.cells[l]
	s.cells = s.cells[:l]
	return c, nil
}

// pop2 pops y, then x.  Nothing is popped on underflow.
func (s *vmStack) pop2() (x, y Cell, err error) {
	if err = s.need(2, 0); err != nil {
		return
	}
	y, _ = s.pop()
	x, _ = s.pop()
	return
}

func (s *vmStack) snapshot() Stack {
	return append(Stack(nil), s.cells...)
}
