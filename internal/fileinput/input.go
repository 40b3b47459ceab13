package fileinput

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jsl-lang/jsl/internal/runeio"
)

// Location names an a line in an Input file.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Word is one whitespace delimited word of source text along with the
// Location where it starts.
type Word struct {
	Location
	Text string
}

func (w Word) String() string { return fmt.Sprintf("%v %q", w.Location, w.Text) }

// Input implements sequential rune reading through a Queue of one or more
// input streams. Scan is the Location of the line being read.
type Input struct {
	rr    io.RuneReader
	Queue []io.Reader
	Scan  Location
}

// ReadRune reads one rune from the current input stream, advancing Scan after
// line feed. A 0 rune with nil error marks the boundary between two queued
// streams.
func (in *Input) ReadRune() (rune, int, error) {
	if in.rr == nil && !in.nextIn() {
		return 0, 0, io.EOF
	}

	r, n, err := in.rr.ReadRune()
	if r == '\n' {
		in.Scan.Line++
	}

	if r != 0 {
		return r, n, nil
	}
	if err == io.EOF && in.nextIn() {
		err = nil
	}
	return 0, n, err
}

// ScanWord skips any whitespace, then reads runes up to the next whitespace,
// stream boundary, or end of input. Returns io.EOF only when no word remains.
func (in *Input) ScanWord() (Word, error) {
	var (
		word Word
		sb   strings.Builder
	)
	for {
		r, _, err := in.ReadRune()
		if isSpace(r) {
			if err != nil {
				return word, err
			}
			continue
		}
		word.Location = in.Scan
		sb.WriteRune(r)
		break
	}
	for {
		r, _, err := in.ReadRune()
		if isSpace(r) {
			if err != nil && err != io.EOF {
				return word, err
			}
			break
		}
		sb.WriteRune(r)
	}
	word.Text = sb.String()
	return word, nil
}

// ScanWords reads every remaining word.
func (in *Input) ScanWords() (words []Word, err error) {
	for {
		word, err := in.ScanWord()
		if err == io.EOF {
			return words, nil
		} else if err != nil {
			return words, err
		}
		words = append(words, word)
	}
}

func isSpace(r rune) bool { return r == 0 || unicode.IsSpace(r) || unicode.IsControl(r) }

func (in *Input) nextIn() bool {
	if in.rr != nil {
		if cl, ok := in.rr.(io.Closer); ok {
			cl.Close()
		}
		in.rr = nil
	}
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.rr = runeio.NewReader(r)
		in.Scan.Name = NameOf(r)
		in.Scan.Line = 1
	}
	return in.rr != nil
}

// NamedReader attaches a name to a reader, to be reported in Locations.
func NamedReader(name string, r io.Reader) io.Reader {
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

// NameOf returns obj.Name() if implemented, or a placeholder naming its type.
func NameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
