package css

import (
	"strconv"
	"strings"
)

// ValueComponentKind discriminates the shape of one piece of a Value.
type ValueComponentKind int

const (
	VCIdent ValueComponentKind = iota
	VCString
	VCURL
	VCNumber
	VCPercentage
	VCDimension
	VCHash
	VCFunction
	VCGroup // a bare, non-function "( ... )"
	VCDelim
	VCWhitespace
)

// ValueComponent is one token-derived piece of a Value. Function and Group
// components carry their argument list in Args.
type ValueComponent struct {
	Kind ValueComponentKind
	Text string // ident/string/url/hash/delim text, or function/group name
	Num  float64
	Unit string
	Args []ValueComponent
}

// Value is the opaque value subtree spec.md §3.2/§4.4 describes: possibly
// compound, it keeps a textual form even when its components aren't
// otherwise given semantic structure (unknown/vendor-prefixed values).
// Text is rebuilt from the tokens, not copied from the source: numbers are
// re-formatted, strings are re-quoted with '"', runs of whitespace become
// one space and comments are dropped.
type Value struct {
	Components []ValueComponent
	Text       string
	Important  bool
}

// ValueBuilder is the token-driven assembler spec.md §4.4 describes: it
// builds a (possibly compound) value, tracks the trailing "!important"
// flag, and exposes IsReady so callers (chiefly the media-feature reader)
// can tell whether a ')' terminates the value or belongs to an open
// function argument list.
type ValueBuilder struct {
	cfg *Config

	top   []ValueComponent
	stack []ValueComponent // open VCFunction/VCGroup frames

	important        bool
	pendingImportant bool
	haveAny          bool
	sb               strings.Builder
}

// NewValueBuilder returns a ValueBuilder in its reset state.
func NewValueBuilder(cfg *Config) *ValueBuilder {
	b := &ValueBuilder{cfg: cfg}
	b.Reset()
	return b
}

// Reset starts building a new value.
func (b *ValueBuilder) Reset() {
	b.top = nil
	b.stack = nil
	b.important = false
	b.pendingImportant = false
	b.haveAny = false
	b.sb.Reset()
}

// IsReady reports whether the builder would accept a terminator at this
// point: no function/group argument list is open and "!" is not dangling
// waiting for "important".
func (b *ValueBuilder) IsReady() bool {
	return len(b.stack) == 0 && !b.pendingImportant
}

// IsImportant reports whether a trailing "!important" has been seen.
func (b *ValueBuilder) IsImportant() bool { return b.important }

// Result returns the built Value, or nil if nothing was ever applied.
func (b *ValueBuilder) Result() *Value {
	if !b.haveAny {
		return nil
	}
	comps := b.top
	for len(comps) > 0 && comps[len(comps)-1].Kind == VCWhitespace {
		comps = comps[:len(comps)-1]
	}
	return &Value{
		Components: comps,
		Text:       strings.TrimSpace(b.sb.String()),
		Important:  b.important,
	}
}

func (b *ValueBuilder) pushComponent(c ValueComponent) {
	if len(b.stack) == 0 {
		b.top = append(b.top, c)
		return
	}
	frame := &b.stack[len(b.stack)-1]
	frame.Args = append(frame.Args, c)
}

// Apply advances the builder by one token. It never panics.
func (b *ValueBuilder) Apply(tok Token) {
	switch tok.Kind {
	case Function:
		b.pendingImportant = false
		b.haveAny = true
		b.stack = append(b.stack, ValueComponent{Kind: VCFunction, Text: tok.Text})
		b.sb.WriteString(tok.Text)
		b.sb.WriteByte('(')
		return
	case RoundOpen:
		b.pendingImportant = false
		b.haveAny = true
		b.stack = append(b.stack, ValueComponent{Kind: VCGroup})
		b.sb.WriteByte('(')
		return
	case RoundClose:
		b.pendingImportant = false
		if len(b.stack) == 0 {
			return
		}
		closed := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		b.pushComponent(closed)
		b.sb.WriteByte(')')
		return
	case Whitespace:
		if b.pendingImportant || !b.haveAny {
			return
		}
		b.pushComponent(ValueComponent{Kind: VCWhitespace, Text: " "})
		b.sb.WriteByte(' ')
		return
	case Delim:
		if tok.Text == "!" && len(b.stack) == 0 {
			b.pendingImportant = true
			return
		}
	}

	if b.pendingImportant {
		b.pendingImportant = false
		if tok.Kind == Ident && foldEquals(tok.Text, "important") {
			b.important = true
			return
		}
		// Not actually "!important": fold the '!' back in literally.
		b.pushComponent(ValueComponent{Kind: VCDelim, Text: "!"})
		b.sb.WriteByte('!')
	}

	b.haveAny = true
	c, text := componentFromToken(tok)
	b.pushComponent(c)
	b.sb.WriteString(text)
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func componentFromToken(tok Token) (ValueComponent, string) {
	switch tok.Kind {
	case Ident:
		return ValueComponent{Kind: VCIdent, Text: tok.Text}, tok.Text
	case String:
		return ValueComponent{Kind: VCString, Text: tok.Text}, "\"" + tok.Text + "\""
	case URL, BadURL:
		return ValueComponent{Kind: VCURL, Text: tok.Text}, "url(" + tok.Text + ")"
	case Number:
		return ValueComponent{Kind: VCNumber, Num: tok.Num}, formatNum(tok.Num)
	case Integer:
		return ValueComponent{Kind: VCNumber, Num: tok.Num}, formatNum(tok.Num)
	case Percentage:
		return ValueComponent{Kind: VCPercentage, Num: tok.Num}, formatNum(tok.Num) + "%"
	case Dimension:
		return ValueComponent{Kind: VCDimension, Num: tok.Num, Unit: tok.Unit}, formatNum(tok.Num) + tok.Unit
	case Hash:
		return ValueComponent{Kind: VCHash, Text: tok.Text}, "#" + tok.Text
	case Comma:
		return ValueComponent{Kind: VCDelim, Text: ","}, ","
	case Colon:
		return ValueComponent{Kind: VCDelim, Text: ":"}, ":"
	case Delim:
		return ValueComponent{Kind: VCDelim, Text: tok.Text}, tok.Text
	default:
		return ValueComponent{Kind: VCDelim, Text: tok.Text}, tok.Text
	}
}
