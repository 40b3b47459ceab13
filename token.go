package main

import (
	"strconv"
	"strings"

	"github.com/jsl-lang/jsl/internal/fileinput"
)

// TokenKind is the closed set of instruction and structural tags produced by
// the lexer.
type TokenKind uint8

const (
	tokNone TokenKind = iota

	tokNumber // <LITERAL>  push a Float
	tokStr    // str        push the next word as a String

	// Here's a handy summary of the simple words:
	tokAdd      // add       a b -- a+b
	tokMinus    // minus     a b -- b-a
	tokDiv      // div       a b -- b/a
	tokMul      // mul       a b -- a*b
	tokMod      // mod       a b -- b%a
	tokSwap     // swap      a b -- b a
	tokRot      // rot       a b c -- c b a
	tokDup      // dup       a -- a a
	tokDrop     // drop      a --
	tokEq       // eq        a b -- a==b
	tokNoteq    // noteq     a b -- a!=b
	tokBigger   // bigger    a b -- a>b
	tokSmaller  // smaller   a b -- a<b
	tokTrue     // true      -- 1
	tokFalse    // false     -- 0
	tokPut      // put       a --       print a and a newline
	tokPutc     // putc      a --       print a as a character
	tokMempop   // mempop    -- v       remove the last global binding
	tokMemusage // memusage  -- n       count global bindings

	tokThen  // then      c --      run the next Scope if c is 1
	tokTimes // times     n --      run the next Scope n times

	tokScope    // { ... }
	tokArray    // [ ... ]
	tokObject   // object { name = value ... }
	tokGet      // get NAME
	tokImport   // import NAME
	tokLet      // let NAME
	tokSet      // set NAME
	tokFunction // fn NAME PARAMS... do
	tokMacro    // macro NAME ... end
	tokCall     // call NAME
	tokIdent    // <IDENTIFIER>

	tokMax
)

var tokenNames = [tokMax]string{
	"none",
	"number",
	"str",
	"add",
	"minus",
	"div",
	"mul",
	"mod",
	"swap",
	"rot",
	"dup",
	"drop",
	"eq",
	"noteq",
	"bigger",
	"smaller",
	"true",
	"false",
	"put",
	"putc",
	"mempop",
	"memusage",
	"then",
	"times",
	"scope",
	"array",
	"object",
	"get",
	"import",
	"let",
	"set",
	"fn",
	"macro",
	"call",
	"ident",
}

// simpleWords maps each keyword that stands alone to its token kind; the
// lexer handles structural keywords separately.
var simpleWords map[string]TokenKind

func init() {
	simpleWords = make(map[string]TokenKind, tokMemusage-tokAdd+1)
	for kind := tokAdd; kind <= tokMemusage; kind++ {
		simpleWords[tokenNames[kind]] = kind
	}
}

func (kind TokenKind) String() string {
	if kind < tokMax {
		return tokenNames[kind]
	}
	return "token(" + strconv.Itoa(int(kind)) + ")"
}

// Token is one node of the token tree. Which fields are meaningful depends on
// Kind:
//	- Num for tokNumber
//	- Name for tokStr (its text), and every named form
//	- Params for tokFunction
//	- Body for tokScope, tokArray, tokImport and tokMacro
//	- Props for tokObject
type Token struct {
	Kind   TokenKind
	Num    float64
	Name   string
	Params []string
	Body   []Token
	Props  []TokenProp
	Loc    fileinput.Location
}

// TokenProp is one name = value pair of an object literal.
type TokenProp struct {
	Name  string
	Value Token
}

func (tok Token) String() string {
	switch tok.Kind {
	case tokNumber:
		return formatFloat(tok.Num)
	case tokStr, tokGet, tokImport, tokLet, tokSet, tokMacro, tokCall:
		return tok.Kind.String() + " " + tok.Name
	case tokIdent:
		return tok.Name
	case tokFunction:
		var sb strings.Builder
		sb.WriteString("fn ")
		sb.WriteString(tok.Name)
		for _, param := range tok.Params {
			sb.WriteByte(' ')
			sb.WriteString(param)
		}
		sb.WriteString(" do")
		return sb.String()
	case tokScope:
		return "{ " + formatTokens(tok.Body) + "}"
	case tokArray:
		return "[ " + formatTokens(tok.Body) + "]"
	case tokObject:
		var sb strings.Builder
		sb.WriteString("object { ")
		for _, prop := range tok.Props {
			sb.WriteString(prop.Name)
			sb.WriteString(" = ")
			sb.WriteString(prop.Value.String())
			sb.WriteByte(' ')
		}
		sb.WriteString("}")
		return sb.String()
	}
	return tok.Kind.String()
}

func formatTokens(toks []Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.String())
		sb.WriteByte(' ')
	}
	return sb.String()
}
