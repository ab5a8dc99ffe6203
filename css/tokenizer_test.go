package css

import "testing"

func tokenize(text string) []Token {
	tok := NewTokenizer(NewStringSource(text), NewConfig())
	var out []Token
	for {
		t := tok.Next()
		out = append(out, t)
		if t.Kind == EOF {
			return out
		}
	}
}

func TestTokenizeIdentAndColon(t *testing.T) {
	toks := tokenize("color: red;")
	want := []Kind{Ident, Colon, Ident, Semicolon, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[0].Text != "color" {
		t.Errorf("got ident text %q, want %q", toks[0].Text, "color")
	}
}

func TestTokenizeWhitespaceElidedInModeData(t *testing.T) {
	toks := tokenize("a   b")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (whitespace elided): %v", len(toks), toks)
	}
}

func TestTokenizeString(t *testing.T) {
	toks := tokenize(`"hello world"`)
	if toks[0].Kind != String || toks[0].Text != "hello world" {
		t.Errorf("got %v %q, want String %q", toks[0].Kind, toks[0].Text, "hello world")
	}
}

func TestTokenizeUnterminatedStringReportsError(t *testing.T) {
	cfg := NewConfig()
	var got []ErrorEvent
	cfg.AddListener(ErrorListenerFunc(func(e ErrorEvent) { got = append(got, e) }))
	tok := NewTokenizer(NewStringSource("\"unterminated"), cfg)
	first := tok.Next()
	if first.Kind != String {
		t.Fatalf("got %v, want String (best-effort recovery)", first.Kind)
	}
	if len(got) != 1 || got[0].Code != UnterminatedString {
		t.Errorf("got %v, want one UnterminatedString event", got)
	}
}

func TestTokenizeNumericKinds(t *testing.T) {
	cases := []struct {
		text string
		kind Kind
		num  float64
		unit string
	}{
		{"42", Integer, 42, ""},
		{"4.2", Number, 4.2, ""},
		{"50%", Percentage, 50, ""},
		{"10px", Dimension, 10, "px"},
		{"-3.5em", Dimension, -3.5, "em"},
	}
	for _, c := range cases {
		toks := tokenize(c.text)
		if toks[0].Kind != c.kind {
			t.Errorf("%q: got kind %v, want %v", c.text, toks[0].Kind, c.kind)
			continue
		}
		if toks[0].Num != c.num {
			t.Errorf("%q: got num %v, want %v", c.text, toks[0].Num, c.num)
		}
		if toks[0].Unit != c.unit {
			t.Errorf("%q: got unit %q, want %q", c.text, toks[0].Unit, c.unit)
		}
	}
}

func TestTokenizeHashDistinguishesIDFromUnrestricted(t *testing.T) {
	toks := tokenize("#header #3")
	if toks[0].Kind != Hash || toks[0].HashType != HashID {
		t.Errorf("got %v/%v, want Hash/HashID", toks[0].Kind, toks[0].HashType)
	}
	if toks[1].Kind != Hash || toks[1].HashType != HashUnrestricted {
		t.Errorf("got %v/%v, want Hash/HashUnrestricted", toks[1].Kind, toks[1].HashType)
	}
}

func TestTokenizeURLUnquoted(t *testing.T) {
	toks := tokenize("url(foo.png)")
	if toks[0].Kind != URL || toks[0].Text != "foo.png" {
		t.Errorf("got %v %q, want URL %q", toks[0].Kind, toks[0].Text, "foo.png")
	}
}

func TestTokenizeFunctionVsURL(t *testing.T) {
	toks := tokenize(`url("quoted.png")`)
	if toks[0].Kind != Function || toks[0].Text != "url" {
		t.Errorf("quoted url(...) should lex as Function \"url\", got %v %q", toks[0].Kind, toks[0].Text)
	}
}

func TestTokenizeSelectorModeMatchers(t *testing.T) {
	tok := NewTokenizer(NewStringSource(`[a~=b]`), NewConfig())
	tok.SetMode(ModeSelector)
	var kinds []Kind
	for {
		t := tok.Next()
		kinds = append(kinds, t.Kind)
		if t.Kind == EOF {
			break
		}
	}
	want := []Kind{SquareOpen, Ident, Includes, Ident, SquareClose, EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("token %d: got %v, want %v", i, kinds[i], k)
		}
	}
}

func TestJumpToClosedArgumentsHandlesNesting(t *testing.T) {
	tok := NewTokenizer(NewStringSource(`a(b(c))) rest`), NewConfig())
	tok.JumpToClosedArguments()
	next := tok.Next()
	if next.Kind != Ident || next.Text != "rest" {
		t.Errorf("got %v %q, want Ident \"rest\" after closing the matching ')'", next.Kind, next.Text)
	}
}
