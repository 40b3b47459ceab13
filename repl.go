package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jsl-lang/jsl/internal/logio"
	"github.com/peterh/liner"
)

const (
	promptMain = "jsl> "
	promptCont = "...> "
)

// runREPL reads and evaluates one entry at a time against vm, until end of
// input, :quit, or the exit primitive. Errors are logged and the session
// continues with the VM state as the failure left it.
func runREPL(ctx context.Context, vm *VM, historyPath string, log *logio.Logger) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for entry := 1; ; entry++ {
		name := fmt.Sprintf("<repl:%v>", entry)
		toks, src, ok := readEntry(ln, vm, name)
		if !ok {
			return nil
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			return nil
		case ":stack":
			vmDumper{vm: vm, out: os.Stdout}.dumpStack()
			continue
		case ":dump":
			vm.Dump(os.Stdout)
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if toks == nil {
			continue
		}
		err := vm.Eval(ctx, toks)
		var exit ExitError
		if errors.As(err, &exit) {
			return err
		} else if err != nil {
			log.Printf("ERROR", "%v", err)
		}
	}
}

// readEntry prompts until the accumulated lines lex without an unterminated
// block. Any other lex error is printed and yields nil tokens.
func readEntry(ln *liner.State, vm *VM, name string) (toks []Token, src string, ok bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			// io.EOF, liner.ErrPromptAborted, or a dead terminal
			return nil, "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src = b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return nil, src, true
		}

		toks, err = vm.Lex(name, strings.NewReader(src))
		if errors.Is(err, errUnterminated) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return nil, src, true
		}
		return toks, src, true
	}
}
