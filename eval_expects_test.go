package main

// @generated from eval_test.go

//go:generate go run scripts/gen_eval_expects.go -- eval_test.go eval_expects_test.go

import (
	"io/fs"
	"time"
)

func withEvalOptions(opts ...VMOption) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.withOptions(opts...)
	}
}

func withEvalStack(values ...Value) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.withStack(values...)
	}
}

func withEvalGlobal(name string, value Value) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.withGlobal(name, value)
	}
}

func withEvalImports(fsys fs.FS) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.withImports(fsys)
	}
}

func withEvalInput(input string) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.withInput(input)
	}
}

func withEvalTimeout(timeout time.Duration) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.withTimeout(timeout)
	}
}

func expectEvalError(err error) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.expectError(err)
	}
}

func expectEvalStack(values ...Value) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.expectStack(values...)
	}
}

func expectEvalMemUsage(n int) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.expectMemUsage(n)
	}
}

func expectEvalGlobal(name string, value Value) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.expectGlobal(name, value)
	}
}

func expectEvalFrames(n int) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.expectFrames(n)
	}
}

func expectEvalOutput(output string) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.expectOutput(output)
	}
}

func expectEvalDump(dump string) func(evalTestCase) evalTestCase {
	return func(evt evalTestCase) evalTestCase {
		return evt.expectDump(dump)
	}
}
