package vecpath

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	tdstrconv "github.com/tdewolff/parse/v2/strconv"
)

// TextOptions specifies optional settings for [Path.WriteText].
type TextOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// Text returns the path in the text format read by [ParseText], with full
// precision. The text ends before the first element with a NaN or infinite
// coordinate, which [Path.WriteText] reports as an error.
func (p Path) Text() string {
	sb := &strings.Builder{}
	p.WriteText(sb, TextOptions{})
	return sb.String()
}

// WriteText writes the path in the text format read by [ParseText] to w.
// Every element is written as one absolute command: M, L, Q, C, A or Z.
// Elements with NaN or infinite coordinates can't be represented and return
// an error.
func (p Path) WriteText(w io.Writer, opts TextOptions) error {
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			if err == nil {
				err = fmt.Errorf("vecpath: cannot write non-finite number %g", n)
			}
			return ""
		}
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		maxPrec = min(maxPrec, 17)
		if math.Abs(n)*math.Pow10(maxPrec) < 1<<62 {
			// AppendDecimal scales to an int64
			return string(tdstrconv.AppendDecimal(nil, n, maxPrec))
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		if strings.ContainsRune(s, '.') {
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".")
		}
		if s == "-0" {
			s = "0"
		}
		return s
	}
	pt := func(p Point) string {
		return format(p.X) + "," + format(p.Y)
	}
	for i, el := range p.elements {
		if i > 0 {
			writef(" ")
		}
		switch el.Kind {
		case MoveToKind:
			writef("M%s", pt(el.P0))
		case LineToKind:
			writef("L%s", pt(el.P0))
		case QuadToKind:
			writef("Q%s %s", pt(el.P0), pt(el.P1))
		case CubicToKind:
			writef("C%s %s %s", pt(el.P0), pt(el.P1), pt(el.P2))
		case ArcToKind:
			writef("A%s %s %s", pt(el.P0), pt(el.P1), format(el.Radius))
		case ClosePathKind:
			writef("Z")
		default:
			panic(fmt.Sprintf("unhandled path element kind %s", el.Kind))
		}
	}
	return err
}

// MustParseText is like [ParseText] but panics on error.
func MustParseText(s string) Path {
	p, err := ParseText(s)
	if err != nil {
		panic(err)
	}
	return p
}

// numbers per command
var commandArity = [256]int{
	'M': 2, 'm': 2,
	'L': 2, 'l': 2,
	'H': 1, 'h': 1,
	'V': 1, 'v': 1,
	'Q': 4, 'q': 4,
	'T': 2, 't': 2,
	'C': 6, 'c': 6,
	'S': 4, 's': 4,
	'A': 5, 'a': 5,
	'Z': 0, 'z': 0,
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Q', 'q', 'T', 't', 'C', 'c', 'S', 's', 'A', 'a', 'Z', 'z':
		return true
	default:
		return false
	}
}

func startsNumber(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func skipCommaWhitespace(b []byte, i int) int {
	comma := false
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\n', '\r', '\f':
		case ',':
			if comma {
				return i
			}
			comma = true
		default:
			return i
		}
		i++
	}
	return i
}

// ParseText parses a path from text.
//
// The text is a sequence of commands, each a letter followed by its numeric
// arguments, separated by whitespace or commas. Upper case commands use
// absolute coordinates, lower case ones coordinates relative to the current
// point.
//
//	M x y                 move to
//	L x y                 line to
//	H x, V y              horizontal and vertical line to
//	Q x1 y1 x y           quadratic Bézier to
//	T x y                 quadratic Bézier to, reflecting the previous control point
//	C x1 y1 x2 y2 x y     cubic Bézier to
//	S x2 y2 x y           cubic Bézier to, reflecting the previous control point
//	A x1 y1 x2 y2 r       arc to, see [Path.ArcTo]
//	Z                     close path
//
// A command may be followed by several groups of arguments, which repeats
// the command. Groups following M are treated as L.
//
// Numbers are correctly rounded, so paths written by [Path.WriteText] at full
// precision parse to the same elements. Numbers beyond the range of float64
// are rejected.
//
// The empty string is the empty path. Malformed input returns a
// [*ParseError].
func ParseText(s string) (Path, error) {
	b := []byte(s)
	var st parseState
	var cmd byte
	i := skipCommaWhitespace(b, 0)
	for i < len(b) {
		c := b[i]
		switch {
		case isCommand(c):
			cmd = c
			i++
		case cmd == 0:
			return Path{}, &ParseError{Offset: i, Msg: fmt.Sprintf("expected command, found %q", c)}
		case c == ',':
			return Path{}, &ParseError{Offset: i, Command: cmd, Msg: "unexpected separator"}
		case !startsNumber(c):
			return Path{}, &ParseError{Offset: i, Msg: fmt.Sprintf("unknown command %q", c)}
		case cmd == 'Z' || cmd == 'z':
			return Path{}, &ParseError{Offset: i, Command: cmd, Msg: "close path takes no arguments"}
		case cmd == 'M':
			cmd = 'L'
		case cmd == 'm':
			cmd = 'l'
		}
		if st.path.IsEmpty() && cmd != 'M' && cmd != 'm' {
			return Path{}, &ParseError{Offset: i - 1, Command: cmd, Msg: "path must start with a move to"}
		}

		n := commandArity[cmd]
		var args [6]float64
		for k := range n {
			i = skipCommaWhitespace(b, i)
			_, adv := tdstrconv.ParseFloat(b[i:])
			if adv == 0 {
				if n == 1 {
					return Path{}, &ParseError{Offset: i, Command: cmd, Msg: "expected a number"}
				}
				return Path{}, &ParseError{Offset: i, Command: cmd, Msg: fmt.Sprintf("expected %d numbers, got %d", n, k)}
			}
			// the value tdewolff computes is approximate past 15 digits
			f, err := strconv.ParseFloat(string(b[i:i+adv]), 64)
			if err != nil || math.IsInf(f, 0) {
				return Path{}, &ParseError{Offset: i, Command: cmd, Msg: "number out of range"}
			}
			args[k] = f
			i += adv
		}
		if (cmd == 'A' || cmd == 'a') && args[4] < 0 {
			return Path{}, &ParseError{Offset: i, Command: cmd, Msg: "negative radius"}
		}
		st.apply(cmd, args[:n])
		i = skipCommaWhitespace(b, i)
	}
	return st.path, nil
}

// parseState accumulates the result of parsing path text.
type parseState struct {
	path Path
	cur  Point
	// control points of the previous command for reflection by S and T, and
	// whether the previous command was a cubic or quadratic Bézier
	cubicCtrl, quadCtrl Point
	prevCubic, prevQuad bool
}

// apply executes one command.
func (st *parseState) apply(cmd byte, args []float64) {
	rel := cmd >= 'a' && cmd <= 'z'
	abs := func(x, y float64) Point {
		if rel {
			return Pt(st.cur.X+x, st.cur.Y+y)
		}
		return Pt(x, y)
	}
	prevCubic, prevQuad := st.prevCubic, st.prevQuad
	st.prevCubic, st.prevQuad = false, false

	switch cmd {
	case 'M', 'm':
		st.path.MoveTo(abs(args[0], args[1]))
	case 'L', 'l':
		st.path.LineTo(abs(args[0], args[1]))
	case 'H', 'h':
		x := args[0]
		if rel {
			x += st.cur.X
		}
		st.path.LineTo(Pt(x, st.cur.Y))
	case 'V', 'v':
		y := args[0]
		if rel {
			y += st.cur.Y
		}
		st.path.LineTo(Pt(st.cur.X, y))
	case 'Q', 'q':
		c := abs(args[0], args[1])
		st.path.QuadTo(c, abs(args[2], args[3]))
		st.quadCtrl, st.prevQuad = c, true
	case 'T', 't':
		c := st.cur
		if prevQuad {
			c = st.cur.Translate(st.cur.Sub(st.quadCtrl))
		}
		st.path.QuadTo(c, abs(args[0], args[1]))
		st.quadCtrl, st.prevQuad = c, true
	case 'C', 'c':
		c2 := abs(args[2], args[3])
		st.path.CubicTo(abs(args[0], args[1]), c2, abs(args[4], args[5]))
		st.cubicCtrl, st.prevCubic = c2, true
	case 'S', 's':
		c1 := st.cur
		if prevCubic {
			c1 = st.cur.Translate(st.cur.Sub(st.cubicCtrl))
		}
		c2 := abs(args[0], args[1])
		st.path.CubicTo(c1, c2, abs(args[2], args[3]))
		st.cubicCtrl, st.prevCubic = c2, true
	case 'A', 'a':
		st.path.ArcTo(abs(args[0], args[1]), abs(args[2], args[3]), args[4])
	case 'Z', 'z':
		st.path.Close()
	default:
		panic(fmt.Sprintf("unhandled path command %q", cmd))
	}
	st.cur = st.path.CurrentPoint()
}
