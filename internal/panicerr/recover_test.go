package panicerr

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stopError struct{ error }

func TestRecover(t *testing.T) {
	for _, tc := range []struct {
		name    string
		fun     func() error
		err     string
		panic   bool
		exit    bool
		wrapped error
	}{
		{
			name: "ok",
			fun:  func() error { return nil },
		},
		{
			name: "returned",
			fun:  func() error { return errors.New("bang") },
			err:  "bang",
		},
		{
			name:    "halted",
			fun:     func() error { panic(stopError{errors.New("stack underflow")}) },
			err:     "halted paniced: stack underflow",
			panic:   true,
			wrapped: stopError{},
		},
		{
			name:  "string panic",
			fun:   func() error { panic("hello") },
			err:   "string panic paniced: hello",
			panic: true,
		},
		{
			name:  "runtime panic",
			fun:   func() error { _ = ([]int)(nil)[1]; return nil },
			err:   "runtime panic paniced: runtime error: index out of range [1] with length 0",
			panic: true,
		},
		{
			name: "goexit",
			fun:  func() error { runtime.Goexit(); return nil },
			err:  "goexit called runtime.Goexit",
			exit: true,
		},
		{
			name: "",
			fun:  func() error { runtime.Goexit(); return nil },
			err:  "runtime.Goexit called",
			exit: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := Recover(tc.name, tc.fun)
			if tc.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.err)
			assert.Equal(t, tc.panic, IsPanic(err), "expected IsPanic")
			assert.Equal(t, tc.exit, IsExit(err), "expected IsExit")
			if tc.panic {
				assert.NotEmpty(t, PanicStack(err), "expected a stack trace")
			} else {
				assert.Empty(t, PanicStack(err), "expected no stack trace")
			}
			if tc.wrapped != nil {
				var stop stopError
				assert.True(t, errors.As(err, &stop), "expected to recover the panic value")
			}
		})
	}
}

func TestRecover_verbose(t *testing.T) {
	err := Recover("", func() error { panic("nope") })
	require.Error(t, err)
	assert.True(t,
		strings.HasSuffix(fmt.Sprintf("%+v", err), PanicStack(err)),
		"expected verbose format to end with a stack trace")
}
