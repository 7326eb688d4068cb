// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package vm

import "io"

func flag(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

func (vm *VM) unaryOp(op func(c Cell) Cell) error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.stack.push(op(c))
}

func (vm *VM) binaryOp(op func(x, y Cell) Cell) error {
	x, y, err := vm.stack.pop2()
	if err != nil {
		return err
	}
	return vm.stack.push(op(x, y))
}

// arith is binaryOp for operations that can overflow.
func (vm *VM) arith(op func(x, y Cell) (Cell, bool)) error {
	x, y, err := vm.stack.pop2()
	if err != nil {
		return err
	}
	z, overflow := op(x, y)
	if overflow && vm.overflow == TrapOnOverflow {
		return IntegerOverflow
	}
	return vm.stack.push(z)
}

func add(x, y Cell) (Cell, bool) {
	z := x + y
	return z, (z > x) != (y > 0)
}

func sub(x, y Cell) (Cell, bool) {
	z := x - y
	return z, (z < x) != (y > 0)
}

// pop ( x -- )
func (vm *VM) drop() error {
	_, err := vm.stack.pop()
	return err
}

// + ( n1 n2 -- n3 )
func (vm *VM) plus() error {
	return vm.arith(add)
}

// - ( n1 n2 -- n3 )
func (vm *VM) minus() error {
	return vm.arith(sub)
}

// not ( x -- flag )
func (vm *VM) not() error {
	return vm.unaryOp(func(c Cell) Cell { return flag(c == 0) })
}

// = ( x1 x2 -- flag )
func (vm *VM) equals() error {
	return vm.binaryOp(func(x, y Cell) Cell { return flag(x == y) })
}

// dup ( x -- x x )
func (vm *VM) dup() error {
	if err := vm.stack.need(1, 1); err != nil {
		return err
	}
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	if err := vm.stack.push(c); err != nil {
		return err
	}
	return vm.stack.push(c)
}

// . ( n -- )
func (vm *VM) dot() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(vm.out, c.String()+"\n"); err != nil {
		return vm.newIOError(err)
	}
	return nil
}
