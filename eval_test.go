package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jsl-lang/jsl/internal/logio"
	"github.com/stretchr/testify/assert"
)

type evalTestCases []evalTestCase

func (evts evalTestCases) run(t *testing.T) {
	{
		var exclusive []evalTestCase
		for _, evt := range evts {
			if evt.exclusive {
				exclusive = append(exclusive, evt)
			}
		}
		if len(exclusive) > 0 {
			evts = exclusive
		}
	}
	for _, evt := range evts {
		if !t.Run(evt.name, evt.run) {
			return
		}
	}
}

func evalTest(name string) (evt evalTestCase) {
	evt.name = name
	return evt
}

// testProgram is shorthand for a single input case, built from the generated
// expectEval* and withEval* helpers.
func testProgram(name, input string, wraps ...func(evalTestCase) evalTestCase) evalTestCase {
	return evalTest(name).withInput(input).apply(wraps...)
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type evalTestCase struct {
	name    string
	opts    []interface{}
	inputs  []string
	ops     []func(vm *VM)
	expect  []func(t *testing.T, vm *VM)
	timeout time.Duration
	wantErr error

	exclusive bool
}

func (evt evalTestCase) apply(wraps ...func(evalTestCase) evalTestCase) evalTestCase {
	for _, wrap := range wraps {
		evt = wrap(evt)
	}
	return evt
}

func (evt evalTestCase) exclusiveTest() evalTestCase {
	evt.exclusive = true
	return evt
}

func (evt evalTestCase) withOptions(opts ...VMOption) evalTestCase {
	for _, opt := range opts {
		evt.opts = append(evt.opts, opt)
	}
	return evt
}

func (evt evalTestCase) withStack(values ...Value) evalTestCase {
	evt.opts = append(evt.opts, optFunc(func(vm *VM) {
		vm.stack = append(vm.stack, values...)
	}))
	return evt
}

func (evt evalTestCase) withGlobal(name string, value Value) evalTestCase {
	evt.opts = append(evt.opts, optFunc(func(vm *VM) {
		vm.env.let(name, value)
	}))
	return evt
}

func (evt evalTestCase) withImports(fsys fs.FS) evalTestCase {
	evt.opts = append(evt.opts, WithImportFS(fsys))
	return evt
}

// withInput adds one more program; each is lexed and evaluated in turn
// against the same VM, as successive REPL entries would be.
func (evt evalTestCase) withInput(input string) evalTestCase {
	evt.inputs = append(evt.inputs, input)
	return evt
}

// do adds ops to run directly against the VM after every input.
func (evt evalTestCase) do(ops ...func(vm *VM)) evalTestCase {
	evt.ops = append(evt.ops, ops...)
	return evt
}

func (evt evalTestCase) withTimeout(timeout time.Duration) evalTestCase {
	evt.timeout = timeout
	return evt
}

func (evt evalTestCase) expectError(err error) evalTestCase {
	evt.wantErr = err
	return evt
}

func (evt evalTestCase) expectStack(values ...Value) evalTestCase {
	evt.expect = append(evt.expect, func(t *testing.T, vm *VM) {
		assert.True(t, valuesEqual(values, vm.stack),
			"expected stack values\nwant: %v\nhave: %v", values, vm.stack)
	})
	return evt
}

func (evt evalTestCase) expectMemUsage(n int) evalTestCase {
	evt.expect = append(evt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, n, vm.env.memusage(), "expected global binding count")
	})
	return evt
}

func (evt evalTestCase) expectGlobal(name string, value Value) evalTestCase {
	evt.expect = append(evt.expect, func(t *testing.T, vm *VM) {
		if len(vm.env.frames) > 0 {
			t.Errorf("expected no active frame, have %v", len(vm.env.frames))
			return
		}
		b := vm.env.lookup(name)
		if assert.NotNil(t, b, "expected global %q", name) {
			assert.True(t, value.Equal(b.Value), "expected global %q = %v, have %v", name, value, b.Value)
		}
	})
	return evt
}

func (evt evalTestCase) expectFrames(n int) evalTestCase {
	evt.expect = append(evt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, n, len(vm.env.frames), "expected call frame depth")
	})
	return evt
}

func (evt evalTestCase) expectOutput(output string) evalTestCase {
	var out strings.Builder
	evt.opts = append(evt.opts, func(evt *evalTestCase, t *testing.T) VMOption {
		out.Reset()
		return WithOutput(&out)
	})
	evt.expect = append(evt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return evt
}

func (evt evalTestCase) expectDump(dump string) evalTestCase {
	evt.expect = append(evt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return evt
}

func (evt evalTestCase) withTestOutput() evalTestCase {
	evt.opts = append(evt.opts, func(evt *evalTestCase, t *testing.T) VMOption {
		lw := &logio.Writer{Logf: func(mess string, args ...interface{}) {
			t.Logf("out: "+mess, args...)
		}}
		return WithTee(lw)
	})
	return evt
}

func (evt evalTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Now().Sub(then))
	}(time.Now())

	if testFails(func(t *testing.T) {
		evt.runEvalTest(context.Background(), t, evt.buildVM(t))
	}) {
		vm := evt.buildVM(t)
		WithLogf(t.Logf).apply(vm)
		evt.runEvalTest(context.Background(), t, vm)
	}
}

func (evt evalTestCase) runEvalTest(ctx context.Context, t *testing.T, vm *VM) {
	const defaultTimeout = time.Second
	timeout := evt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			evt.dumpToTest(t, vm)
		}
	}()

	if err := evt.runVM(ctx, t, vm); evt.wantErr != nil {
		assert.True(t, errors.Is(err, evt.wantErr), "expected error: %v\ngot: %+v", evt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected eval error")
	}

	if !t.Failed() {
		for _, expect := range evt.expect {
			expect(t, vm)
		}
	}
}

func (evt evalTestCase) runVM(ctx context.Context, t *testing.T, vm *VM) (rerr error) {
	defer func() {
		if err := vm.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("vm.Close failed: %w", err)
		}
	}()
	for i, input := range evt.inputs {
		name := t.Name() + "/input"
		if i > 0 {
			name += "_" + strconv.Itoa(i+1)
		}
		if err := vm.Run(ctx, name, strings.NewReader(input)); err != nil {
			return err
		}
	}
	for _, op := range evt.ops {
		op(vm)
	}
	return nil
}

func (evt evalTestCase) buildVM(t *testing.T) *VM {
	var opt VMOption
	for _, o := range evt.opts {
		switch impl := o.(type) {
		case func(evt *evalTestCase, t *testing.T) VMOption:
			opt = VMOptions(opt, impl(&evt, t))
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported evalTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(opt)
}

func (evt evalTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

func testFails(fn func(t *testing.T)) bool {
	var fakeT testing.T
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(&fakeT)
	}()
	<-done
	return fakeT.Failed()
}

func valuesEqual(want, have []Value) bool {
	if len(want) != len(have) {
		return false
	}
	for i := range want {
		if !want[i].Equal(have[i]) {
			return false
		}
	}
	return true
}

func floats(nums ...float64) []Value {
	values := make([]Value, len(nums))
	for i, f := range nums {
		values[i] = Float(f)
	}
	return values
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
