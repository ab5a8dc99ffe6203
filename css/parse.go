package css

import (
	"context"
	"fmt"
	"sync"
)

// ParseStylesheet synchronously parses CSS source text into a Stylesheet
// (spec.md §6.2). It never fails: malformed input yields a partial
// stylesheet plus whatever ErrorEvents cfg's listeners received.
func ParseStylesheet(text string, cfg *Config) *Stylesheet {
	tok := NewTokenizer(NewStringSource(text), cfg)
	return NewParser(tok, cfg).Parse()
}

// ParseStylesheetFromSource is ParseStylesheet for any TextSource, such as
// one from NewReaderSource that is read lazily from an io.Reader; callers
// that already have a string should prefer ParseStylesheet.
func ParseStylesheetFromSource(source TextSource, cfg *Config) *Stylesheet {
	tok := NewTokenizer(source, cfg)
	return NewParser(tok, cfg).Parse()
}

// AsyncParser wraps a TextSource with the single-latch guard spec.md §5
// requires: the asynchronous entry point starts the parse at most once per
// instance; later calls, concurrent or not, return the same result.
type AsyncParser struct {
	source TextSource
	cfg    *Config

	once   sync.Once
	done   chan struct{}
	sheet  *Stylesheet
	err    error
}

// NewAsyncParser returns an AsyncParser over source that has not yet
// started.
func NewAsyncParser(source TextSource, cfg *Config) *AsyncParser {
	return &AsyncParser{source: source, cfg: cfg, done: make(chan struct{})}
}

// Parse awaits source.PrefetchAll — the only suspension point — then runs
// the synchronous parser to completion. Cancellation via ctx is observed
// only before prefetch returns; once parsing starts it runs to Eof, and
// either the whole sheet is produced or none of it is.
func (a *AsyncParser) Parse(ctx context.Context) (*Stylesheet, error) {
	a.once.Do(func() {
		defer close(a.done)
		if err := a.source.PrefetchAll(ctx); err != nil {
			a.err = fmt.Errorf("css: prefetch source: %w", err)
			return
		}
		tok := NewTokenizer(a.source, a.cfg)
		a.sheet = NewParser(tok, a.cfg).Parse()
	})
	<-a.done
	return a.sheet, a.err
}

// ParseStylesheetAsync is the convenience entry point over AsyncParser for
// callers that don't need to hold onto the latch themselves.
func ParseStylesheetAsync(ctx context.Context, source TextSource, cfg *Config) (*Stylesheet, error) {
	return NewAsyncParser(source, cfg).Parse(ctx)
}

// ParseSelector parses a single selector; returns nil if it is empty,
// invalid, or tokens remain after it.
func ParseSelector(text string, cfg *Config) *Selector {
	tok := NewTokenizer(NewStringSource(text), cfg)
	tok.SetMode(ModeSelector)
	sc := NewSelectorConstructor(cfg)
	for {
		t := tok.Next()
		if t.Kind == EOF {
			break
		}
		if t.Kind == CurlyOpen || t.Kind == CurlyClose {
			return nil
		}
		sc.Apply(t)
	}
	if !sc.IsValid() {
		return nil
	}
	return sc.Result()
}

// ParseValue parses a single value; returns nil if it is empty or the
// builder was not ready (an unclosed function argument list) at Eof.
func ParseValue(text string, cfg *Config) *Value {
	tok := NewTokenizer(NewStringSource(text), cfg)
	tok.SetMode(ModeValue)
	vb := NewValueBuilder(cfg)
	for {
		t := tok.Next()
		if t.Kind == EOF {
			break
		}
		vb.Apply(t)
	}
	if !vb.IsReady() {
		return nil
	}
	return vb.Result()
}

// ParseRule parses a single at-rule or style rule; returns nil if
// unparseable or tokens remain after it.
func ParseRule(text string, cfg *Config) Rule {
	p := NewParser(NewTokenizer(NewStringSource(text), cfg), cfg)
	p.setMode(ModeData)
	tok := p.peekToken()
	var r Rule
	switch tok.Kind {
	case EOF:
		return nil
	case AtKeyword:
		p.nextToken()
		r = p.parseAtRule(tok, nil)
	default:
		r = p.parseStyleRule(nil)
	}
	if r == nil || p.peekToken().Kind != EOF {
		return nil
	}
	p.sheet.append(r, nil)
	return r
}

// ParseDeclaration parses a single "name: value" pair; returns nil if
// unparseable or tokens remain after it.
func ParseDeclaration(text string, cfg *Config) *Property {
	p := NewParser(NewTokenizer(NewStringSource(text), cfg), cfg)
	block := NewDeclarationBlock()
	p.readDeclaration(block)
	if p.peekToken().Kind != EOF {
		return nil
	}
	props := block.Properties()
	if len(props) == 0 {
		return nil
	}
	return props[0]
}

// ParseDeclarations parses a ';'-separated run of declarations with no
// enclosing braces, as in an inline style attribute.
func ParseDeclarations(text string, cfg *Config) *DeclarationBlock {
	p := NewParser(NewTokenizer(NewStringSource(text), cfg), cfg)
	block := NewDeclarationBlock()
	p.setMode(ModeData)
	for {
		tok := p.peekToken()
		switch tok.Kind {
		case EOF:
			return block
		case Semicolon:
			p.nextToken()
		default:
			p.readDeclaration(block)
			if p.peekToken().Kind == Semicolon {
				p.nextToken()
			}
		}
	}
}

// SyntaxError reports that a strict single-construct parse failed: the
// construct itself was unparseable, or tokens remained after it.
type SyntaxError struct {
	Text string
}

func (e *SyntaxError) Error() string { return "css: syntax error parsing " + e.Text }

// ParseMediaList strictly parses a comma-separated medium list (spec.md
// §6.2): unlike the other single-construct entry points, leftover input is
// a SyntaxError rather than a null result.
func ParseMediaList(text string, cfg *Config) ([]CssMedium, error) {
	p := NewParser(NewTokenizer(NewStringSource(text), cfg), cfg)
	p.setMode(ModeValue)
	mediums := p.readMediaList()
	if p.peekToken().Kind != EOF {
		return nil, &SyntaxError{Text: text}
	}
	return mediums, nil
}

// ParseMedium strictly parses a single medium; leftover input is a
// SyntaxError.
func ParseMedium(text string, cfg *Config) (CssMedium, error) {
	p := NewParser(NewTokenizer(NewStringSource(text), cfg), cfg)
	p.setMode(ModeValue)
	m, ok := p.readMedium()
	if !ok || p.peekToken().Kind != EOF {
		return CssMedium{}, &SyntaxError{Text: text}
	}
	return m, nil
}

// ParseCondition parses a single @supports condition; returns nil if
// unparseable or tokens remain after it.
func ParseCondition(text string, cfg *Config) Condition {
	p := NewParser(NewTokenizer(NewStringSource(text), cfg), cfg)
	p.setMode(ModeValue)
	cond := p.readCondition()
	if cond == nil || p.peekToken().Kind != EOF {
		return nil
	}
	return cond
}

// ParseDocumentRules parses a comma-separated list of @document functions;
// returns nil if none were read or tokens remain after them.
func ParseDocumentRules(text string, cfg *Config) []DocumentFunction {
	p := NewParser(NewTokenizer(NewStringSource(text), cfg), cfg)
	p.setMode(ModeData)
	funcs := p.readDocumentFunctions()
	if len(funcs) == 0 || p.peekToken().Kind != EOF {
		return nil
	}
	return funcs
}

// ParseKeyframeSelector parses a single keyframe selector (a percentage
// list, or from/to); returns nil if unparseable or tokens remain after it.
func ParseKeyframeSelector(text string, cfg *Config) *KeyframeSelector {
	p := NewParser(NewTokenizer(NewStringSource(text), cfg), cfg)
	p.setMode(ModeSelector)
	sel := p.readKeyframeSelector()
	if sel == nil || p.peekToken().Kind != EOF {
		return nil
	}
	return sel
}

// ParseKeyframeRule parses a single "percentage-list { declarations }";
// returns nil if unparseable or tokens remain after it.
func ParseKeyframeRule(text string, cfg *Config) *KeyframeRule {
	p := NewParser(NewTokenizer(NewStringSource(text), cfg), cfg)
	kr := p.parseKeyframeRule()
	if kr == nil || p.peekToken().Kind != EOF {
		return nil
	}
	return kr
}
