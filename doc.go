/* Package main: JSL -- a small concatenative stack language

A JSL program is a sequence of whitespace separated words, evaluated strictly
left to right against one operand stack. Numbers push themselves; every other
word either names a primitive, opens a structure, or is an identifier resolved
at the moment it is evaluated.

Values

There are four kinds of value: Float (also used for booleans, true being 1
and false 0), String, Array and Object. Strings are written with str, which
quotes exactly the next word:

	str hello put

Arrays are built by evaluating their body on a fresh, empty stack; whatever it
leaves becomes the elements:

	[ 1 2 3 add ] put       prints [1, 5]

Objects name a single word value per property:

	object { x = 1 y = 2 } get y put

Control

then runs the following { ... } body (or single word) only when the popped
value is exactly 1; times runs its body n times:

	1 then { str yes put }
	3 times { str hi put }
	2 times str ho put done

Bindings, functions and macros

let NAME pops into a new binding, set NAME replaces an existing one. Functions
take their arguments from the stack, the top value going to the first
parameter, and see only their own parameters and lets:

	fn sub a b do a b minus end
	10 3 sub put           prints 7

Macros are named token sequences inlined where they are used:

	macro square dup mul end

An identifier resolves, in order, to a binding, a macro, a function, or a host
primitive (fs::readFile, fs::createFile, length, array::nth, array::pop,
array::push, exit). Anything else stops the program.

Imports

import NAME lexes another source into the program in place. The names math,
std and memory refer to a bundled library; anything else is opened as a file.

Section 1: see lexer.go

Section 2: see eval.go

*/
package main
