// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Package vm implements the stax virtual machine.
//
// The stax VM executes a program directly from a forward-only
// instruction cursor against a single operand stack of 64-bit
// signed cells.  There is no compilation pass and no jump table:
// conditionals are resolved when IF is dispatched, by pulling
// instructions from the cursor and counting nesting depth.
//
// Each instruction is either Push, which carries an immediate
// cell, or one of ten nullary operations.  Stack effects are
// given in FORTH notation.
//
//	Op	Source	Stack effect
//
//	Push	n	( -- n )
//	Pop	pop	( x -- )
//	Add	+	( n1 n2 -- n1+n2 )
//	Sub	-	( n1 n2 -- n1-n2 )
//	Not	not	( x -- flag )		\ 1 if x is 0, else 0
//	Eq	=	( x1 x2 -- flag )	\ 1 if equal, else 0
//	Dup	dup	( x -- x x )
//	Dump	.	( n -- )		\ print n and a newline
//	If	if	( x -- )		\ x is true if non-zero
//	Else	else	( -- )
//	End	end	( -- )
//
// Flags are 1 and 0, not the FORTH all-ones true.
//
// A true IF runs the instructions up to the matching ELSE or END,
// then skips the else-branch, if any, up to the matching END.  A
// false IF skips to the matching ELSE, then runs the else-branch
// up to END, or skips to the matching END if there is no ELSE.
// ELSE and END are only meaningful to the IF that owns them; an
// ELSE or END reached any other way is a trap.
//
// Add and Sub either wrap around on overflow or trap, depending
// on Options.Overflow.
//
// Any trap ends the run.  Run returns it as an *Error describing
// the nature of the trap and the offset of the instruction that
// raised it.
package vm
