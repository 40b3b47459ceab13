package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jsl-lang/jsl/internal/fileinput"
	"github.com/jsl-lang/jsl/internal/runeio"
)

// lexer turns source text into a token tree. Sub-bodies (scopes, arrays,
// function and macro bodies, imports) are lexed recursively.
type lexer struct {
	logging
	open      importer
	importing []string
}

func (lex *lexer) lex(name string, r io.Reader) ([]Token, error) {
	in := fileinput.Input{Queue: []io.Reader{fileinput.NamedReader(name, r)}}
	words, err := in.ScanWords()
	if err != nil {
		return nil, &Error{Kind: ResourceError, Op: name, Loc: in.Scan, Err: err}
	}
	lex.logf("lex", "%v words from %v", len(words), name)
	return lex.lexWords(words)
}

func (lex *lexer) lexWords(words []fileinput.Word) (toks []Token, err error) {
	for i := 0; i < len(words); i++ {
		word := words[i]
		tok := Token{Loc: word.Location}

		if kind, simple := simpleWords[word.Text]; simple {
			tok.Kind = kind
			toks = append(toks, tok)
			continue
		}

		switch word.Text {

		// str <word> -- exactly the next word, verbatim
		case "str", "let", "set", "call", "get":
			tok.Kind = wordKinds[word.Text]
			if tok.Name, err = nextWord(words, &i); err != nil {
				return nil, err
			}
			toks = append(toks, tok)

		case "then":
			tok.Kind = tokThen
			toks = append(toks, tok)
			if i+1 < len(words) && words[i+1].Text == "{" {
				continue
			}
			// a bare then guards exactly one word
			if i+1 >= len(words) {
				return nil, unterminated(word, "body")
			}
			i++
			body, err := lex.lexWords(words[i : i+1])
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: tokScope, Body: body, Loc: words[i].Location})

		case "times":
			tok.Kind = tokTimes
			toks = append(toks, tok)
			if i+1 < len(words) && words[i+1].Text == "{" {
				continue
			}
			// a bare times runs everything up to done
			j, err := closeBlock(words, i+1, word, "done", isBareTimes)
			if err != nil {
				return nil, err
			}
			body, err := lex.lexWords(words[i+1 : j])
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: tokScope, Body: body, Loc: word.Location})
			i = j

		case "{", "[":
			tok.Kind, tok.Body, err = lex.lexBlock(words, &i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)

		case "fn":
			fn, body, err := lex.lexFunction(words, &i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, fn, body)

		case "macro":
			tok.Kind = tokMacro
			if tok.Name, err = nextWord(words, &i); err != nil {
				return nil, err
			}
			j, err := closeBlock(words, i+1, word, "end", isDefinition)
			if err != nil {
				return nil, err
			}
			if tok.Body, err = lex.lexWords(words[i+1 : j]); err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = j

		case "object":
			if tok, err = lex.lexObject(words, &i); err != nil {
				return nil, err
			}
			toks = append(toks, tok)

		case "import":
			name, err := nextWord(words, &i)
			if err != nil {
				return nil, err
			}
			if tok, err = lex.lexImport(word, name); err != nil {
				return nil, err
			}
			toks = append(toks, tok)

		case "}", "]", "do", "end", "done":
			return nil, &Error{
				Kind: MalformedProgram,
				Op:   word.Text,
				Loc:  word.Location,
				Err:  errors.New("unexpected block terminator"),
			}

		default:
			toks = append(toks, literal(word))
		}
	}
	return toks, nil
}

var wordKinds = map[string]TokenKind{
	"str":  tokStr,
	"let":  tokLet,
	"set":  tokSet,
	"call": tokCall,
	"get":  tokGet,
}

// literal classifies a plain word: a number if the entire word parses as a
// float, a character literal like 'a' or <NL>, or else an identifier.
func literal(word fileinput.Word) Token {
	tok := Token{Kind: tokNumber, Loc: word.Location}
	if f, err := strconv.ParseFloat(word.Text, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		tok.Num = f
		return tok
	}
	if r, err := runeio.UnquoteRune(word.Text); err == nil {
		tok.Num = float64(r)
		return tok
	}
	tok.Kind = tokIdent
	tok.Name = word.Text
	return tok
}

func (lex *lexer) lexBlock(words []fileinput.Word, i *int) (TokenKind, []Token, error) {
	open := words[*i]
	kind, close := tokScope, "}"
	if open.Text == "[" {
		kind, close = tokArray, "]"
	}
	j, err := closeBlock(words, *i+1, open, close, isWord(open.Text))
	if err != nil {
		return kind, nil, err
	}
	body, err := lex.lexWords(words[*i+1 : j])
	*i = j
	return kind, body, err
}

// lexFunction lexes "fn NAME PARAMS... do BODY... end" into a Function token
// and the Scope token that carries its body.
func (lex *lexer) lexFunction(words []fileinput.Word, i *int) (fn, body Token, err error) {
	open := words[*i]
	fn = Token{Kind: tokFunction, Loc: open.Location}
	body = Token{Kind: tokScope, Loc: open.Location}
	if fn.Name, err = nextWord(words, i); err != nil {
		return fn, body, err
	}
	for {
		if *i++; *i >= len(words) {
			return fn, body, unterminated(open, "do")
		}
		if param := words[*i].Text; param != "do" {
			fn.Params = append(fn.Params, param)
			continue
		}
		break
	}
	j, err := closeBlock(words, *i+1, open, "end", isDefinition)
	if err != nil {
		return fn, body, err
	}
	body.Body, err = lex.lexWords(words[*i+1 : j])
	*i = j
	return fn, body, err
}

// lexObject lexes "object { NAME = VALUE ... }"; each VALUE is a single
// word whose first token becomes the property.
func (lex *lexer) lexObject(words []fileinput.Word, i *int) (Token, error) {
	open := words[*i]
	tok := Token{Kind: tokObject, Loc: open.Location}
	if *i++; *i >= len(words) || words[*i].Text != "{" {
		return tok, unterminated(open, "{")
	}
	for {
		if *i++; *i >= len(words) {
			return tok, unterminated(open, "}")
		}
		name := words[*i]
		if name.Text == "}" {
			return tok, nil
		}
		if *i+2 >= len(words) || words[*i+1].Text != "=" {
			return tok, &Error{
				Kind: MalformedProgram,
				Op:   "object",
				Loc:  name.Location,
				Err:  fmt.Errorf("expected %q = VALUE", name.Text),
			}
		}
		*i += 2
		value, err := lex.lexWords(words[*i : *i+1])
		if err != nil {
			return tok, err
		}
		tok.Props = append(tok.Props, TokenProp{Name: name.Text, Value: value[0]})
	}
}

func (lex *lexer) lexImport(word fileinput.Word, name string) (Token, error) {
	tok := Token{Kind: tokImport, Name: name, Loc: word.Location}
	for _, active := range lex.importing {
		if active == name {
			return tok, &Error{
				Kind: MalformedProgram,
				Op:   tok.String(),
				Loc:  word.Location,
				Err:  fmt.Errorf("import cycle through %q", name),
			}
		}
	}

	rc, err := lex.open(name)
	if err != nil {
		return tok, &Error{Kind: ResourceError, Op: tok.String(), Loc: word.Location, Err: err}
	}
	defer rc.Close()

	lex.logf("lex", "import %v", name)
	lex.importing = append(lex.importing, name)
	defer func() { lex.importing = lex.importing[:len(lex.importing)-1] }()
	tok.Body, err = lex.lex(name, rc)
	return tok, err
}

func nextWord(words []fileinput.Word, i *int) (string, error) {
	if *i+1 >= len(words) {
		return "", unterminated(words[*i], "name")
	}
	*i++
	return words[*i].Text, nil
}

// closeBlock returns the index of the close word matching the block opened by
// open, starting its search at words[from]. Nested blocks are those where
// isOpen returns true; the word following a naming keyword is never counted.
func closeBlock(
	words []fileinput.Word, from int,
	open fileinput.Word, close string,
	isOpen func(words []fileinput.Word, j int) bool,
) (int, error) {
	depth := 0
	for j := from; j < len(words); j++ {
		switch text := words[j].Text; {
		case wordKinds[text] != 0, text == "import":
			j++
		case text == close:
			if depth == 0 {
				return j, nil
			}
			depth--
		case isOpen(words, j):
			depth++
		}
	}
	return 0, unterminated(open, close)
}

func isWord(text string) func(words []fileinput.Word, j int) bool {
	return func(words []fileinput.Word, j int) bool { return words[j].Text == text }
}

func isDefinition(words []fileinput.Word, j int) bool {
	text := words[j].Text
	return text == "fn" || text == "macro"
}

func isBareTimes(words []fileinput.Word, j int) bool {
	return words[j].Text == "times" && (j+1 >= len(words) || words[j+1].Text != "{")
}

func unterminated(open fileinput.Word, missing string) *Error {
	return &Error{
		Kind: MalformedProgram,
		Op:   open.Text,
		Loc:  open.Location,
		Err:  fmt.Errorf("%w, missing %q", errUnterminated, missing),
	}
}

// errUnterminated marks input that ended inside a block; more input could
// complete it.
var errUnterminated = errors.New("unterminated block")
