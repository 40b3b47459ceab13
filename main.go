package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/jsl-lang/jsl/internal/logio"
)

func main() {
	ctx := context.Background()

	var (
		timeout time.Duration
		trace   bool
		dump    bool
		repl    bool
		history string
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "dump the stack and memory after running")
	flag.BoolVar(&repl, "repl", false, "start an interactive session after any files")
	flag.StringVar(&history, "history", defaultHistoryPath(), "repl history file")
	flag.Parse()

	var log logio.Logger
	log.SetOutput(os.Stderr)

	var opts = []VMOption{
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	vm := New(opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err := runFiles(ctx, vm, flag.Args())
	if err == nil && (repl || (flag.NArg() == 0 && isTerminal(os.Stdin))) {
		err = runREPL(ctx, vm, history, &log)
	}
	if dump {
		vm.Dump(os.Stderr)
	}
	log.ErrorIf(vm.Close())

	var exit ExitError
	if errors.As(err, &exit) {
		log.Close()
		os.Exit(int(exit))
	} else if err != nil {
		log.Errorf("%+v", err)
	}
	os.Exit(log.ExitCode())
}

// runFiles runs each named program in order against one VM; with no names,
// and no terminal, the program is read from stdin.
func runFiles(ctx context.Context, vm *VM, names []string) error {
	if len(names) == 0 {
		if isTerminal(os.Stdin) {
			return nil
		}
		return vm.Run(ctx, "<stdin>", os.Stdin)
	}
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			return &Error{Kind: ResourceError, Op: name, Err: err}
		}
		err = vm.Run(ctx, name, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jsl_history")
}
