package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	dump.dumpStack()
	dump.dumpMem()
}

func (dump vmDumper) dumpStack() {
	var buf strings.Builder
	buf.WriteByte('[')
	for i, v := range dump.vm.stack {
		if i > 0 {
			buf.WriteByte(' ')
		}
		formatLiteral(&buf, v)
	}
	buf.WriteByte(']')
	fmt.Fprintf(dump.out, "  stack: %v\n", buf.String())
}

func (dump vmDumper) dumpMem() {
	env := &dump.vm.env

	if len(env.globals) > 0 {
		fmt.Fprintf(dump.out, "# Globals\n")
		dump.dumpBindings(env.globals)
	}

	if len(env.functions) > 0 {
		fmt.Fprintf(dump.out, "# Functions\n")
		for _, fn := range env.functions {
			fmt.Fprintf(dump.out, "  %v %v end\n",
				Token{Kind: tokFunction, Name: fn.Name, Params: fn.Params},
				strings.TrimSpace(formatTokens(fn.Body)))
		}
	}

	if len(env.macros) > 0 {
		fmt.Fprintf(dump.out, "# Macros\n")
		for _, mac := range env.macros {
			fmt.Fprintf(dump.out, "  macro %v %v end\n",
				mac.Name, strings.TrimSpace(formatTokens(mac.Body)))
		}
	}
}

func (dump vmDumper) dumpBindings(bindings []Binding) {
	var buf strings.Builder
	for i, b := range bindings {
		buf.Reset()
		formatLiteral(&buf, b.Value)
		fmt.Fprintf(dump.out, "  @%v %v = %v\n", i, dump.vm.env.name(b), buf.String())
	}
}

// formatLiteral writes v as it could be read back: strings quoted.
func formatLiteral(buf *strings.Builder, v Value) {
	switch v.kind {
	case KindString:
		buf.WriteString(strconv.Quote(v.str))
	case KindArray:
		buf.WriteString("[ ")
		for _, elem := range v.elems {
			formatLiteral(buf, elem)
			buf.WriteByte(' ')
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteString("object { ")
		for _, prop := range v.props {
			buf.WriteString(prop.Name)
			buf.WriteString(" = ")
			formatLiteral(buf, prop.Value)
			buf.WriteByte(' ')
		}
		buf.WriteByte('}')
	default:
		buf.WriteString(v.String())
	}
}
