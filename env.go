package main

// Binding is one named, mutable value created by let.
type Binding struct {
	sym   uint
	Value Value
}

// FunctionDef is a user function: parameter names and a shared body.
type FunctionDef struct {
	Name   string
	Params []string
	Body   []Token
}

// MacroDef is a named token sequence, inlined wherever its name is used.
type MacroDef struct {
	Name string
	Body []Token
}

// Frame holds the local bindings of one function call.
type Frame struct {
	Fn     *FunctionDef
	Locals []Binding
}

// Env is everything evaluation may bind: global bindings, the call stack of
// function frames, and the function and macro registries.
//
// The active binding space is the global one while no call is in progress,
// otherwise the top frame. Every lookup is first-match-wins within the active
// space; let appends, so a redeclared name keeps resolving to its first
// binding until that one is removed.
type Env struct {
	symbols
	globals   []Binding
	frames    []Frame
	functions []*FunctionDef
	macros    []*MacroDef
}

func (env *Env) active() *[]Binding {
	if i := len(env.frames) - 1; i >= 0 {
		return &env.frames[i].Locals
	}
	return &env.globals
}

func (env *Env) name(b Binding) string { return env.string(b.sym) }

func (env *Env) let(name string, value Value) {
	space := env.active()
	*space = append(*space, Binding{env.symbolicate(name), value})
}

func (env *Env) lookup(name string) *Binding {
	sym := env.symbol(name)
	if sym == 0 {
		return nil
	}
	space := *env.active()
	for i := range space {
		if space[i].sym == sym {
			return &space[i]
		}
	}
	return nil
}

func (env *Env) set(name string, value Value) bool {
	if b := env.lookup(name); b != nil {
		b.Value = value
		return true
	}
	return false
}

// mempop removes the most recently created global binding.
func (env *Env) mempop() (Value, bool) {
	i := len(env.globals) - 1
	if i < 0 {
		return Value{}, false
	}
	b := env.globals[i]
	env.globals = env.globals[:i]
	return b.Value, true
}

func (env *Env) memusage() int { return len(env.globals) }

func (env *Env) enter(fn *FunctionDef, locals []Binding) {
	env.frames = append(env.frames, Frame{fn, locals})
}

func (env *Env) leave() {
	if i := len(env.frames) - 1; i >= 0 {
		env.frames[i] = Frame{}
		env.frames = env.frames[:i]
	}
}

func (env *Env) defineFunction(fn *FunctionDef) { env.functions = append(env.functions, fn) }
func (env *Env) defineMacro(mac *MacroDef)      { env.macros = append(env.macros, mac) }

func (env *Env) function(name string) *FunctionDef {
	for _, fn := range env.functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

func (env *Env) macro(name string) *MacroDef {
	for _, mac := range env.macros {
		if mac.Name == name {
			return mac
		}
	}
	return nil
}
