package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jsl-lang/jsl/internal/panicerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeout(t *testing.T) {
	evalTestCases{
		evalTest("long loop").
			withInput("1000000000 times { 1 drop }").
			withTimeout(10 * time.Millisecond).
			expectError(context.DeadlineExceeded),
		evalTest("frames unwound").
			withInput("fn spin do 1000000000 times { 1 drop } end spin").
			withTimeout(10 * time.Millisecond).
			expectError(context.DeadlineExceeded).
			expectFrames(0),
	}.run(t)
}

func TestVM_Session(t *testing.T) {
	var out strings.Builder
	vm := New(WithOutput(&out))
	defer vm.Close()
	ctx := context.Background()

	require.NoError(t, vm.Run(ctx, "one", strings.NewReader("1 let x fn inc n do n 1 add end")))
	require.NoError(t, vm.Run(ctx, "two", strings.NewReader("x inc put")))
	assert.Equal(t, "2\n", out.String())

	err := vm.Run(ctx, "three", strings.NewReader("5 nope"))
	assert.True(t, errors.Is(err, UnresolvedIdentifier), "got %v", err)
	assert.Contains(t, err.Error(), "three:1: unresolved identifier in nope")

	// state left by a failure carries on
	assert.Equal(t, []Value{Float(5)}, vm.Stack())
	require.NoError(t, vm.Run(ctx, "four", strings.NewReader("inc")))
	assert.Equal(t, []Value{Float(6)}, vm.Stack())

	var dump strings.Builder
	vm.Dump(&dump)
	assert.Contains(t, dump.String(), "@0 x = 1")
	assert.Contains(t, dump.String(), "fn inc n do n 1 add end")
}

func TestVM_LexThenEval(t *testing.T) {
	vm := New()
	defer vm.Close()

	toks, err := vm.Lex("prog", strings.NewReader("2 3 mul"))
	require.NoError(t, err)
	require.NoError(t, vm.Eval(context.Background(), toks))
	require.NoError(t, vm.Eval(context.Background(), toks))
	assert.Equal(t, []Value{Float(6), Float(6)}, vm.Stack())

	_, err = vm.Lex("prog", strings.NewReader("{"))
	assert.True(t, errors.Is(err, errUnterminated), "got %v", err)

	err = vm.Eval(context.Background(), []Token{{Kind: tokThen}})
	assert.True(t, errors.Is(err, MalformedProgram), "expected a then without a body to fail, got %v", err)
}

func TestVM_Options(t *testing.T) {
	var out, tee strings.Builder
	var trace []string
	vm := New(
		WithOutput(&out),
		WithTee(&tee),
		WithLogf(func(mess string, args ...interface{}) {
			trace = append(trace, mess)
		}),
	)
	require.NoError(t, vm.Run(context.Background(), "prog", strings.NewReader("str hi put")))
	require.NoError(t, vm.Close())

	assert.Equal(t, "hi\n", out.String())
	assert.Equal(t, "hi\n", tee.String())
	assert.NotEmpty(t, trace, "expected trace logging")
}

type panicWriter struct{}

func (panicWriter) Write(p []byte) (int, error) { panic("broken output") }

func TestVM_panicStack(t *testing.T) {
	vm := New(WithOutput(panicWriter{}))
	err := vm.Run(context.Background(), "prog", strings.NewReader("str hi put"))
	require.True(t, panicerr.IsPanic(err), "expected a recovered panic, got %v", err)
	stack := panicerr.PanicStack(err)
	assert.NotEmpty(t, stack)
	assert.Contains(t, fmt.Sprintf("%+v", err), stack, "expected verbose form to carry the stack")
	assert.NotContains(t, fmt.Sprintf("%v", err), stack)
}
