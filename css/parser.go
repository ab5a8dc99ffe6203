package css

import "strings"

// Parser is the recursive-descent, error-tolerant rule parser spec.md §4.2
// describes: it pulls tokens from a Tokenizer on demand and assembles a
// Stylesheet, recovering at the nearest applicable boundary after any
// malformed construct instead of aborting.
type Parser struct {
	tok   *Tokenizer
	cfg   *Config
	sheet *Stylesheet

	pending *Token // one token of lookahead; a token peeked before a mode switch is returned as it was lexed
}

// NewParser returns a Parser reading from tok, reporting errors and
// resolving collaborators through cfg (nil uses defaults).
func NewParser(tok *Tokenizer, cfg *Config) *Parser {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Parser{tok: tok, cfg: cfg, sheet: newStylesheet(cfg.Encoding)}
}

func (p *Parser) nextToken() Token {
	if p.pending != nil {
		t := *p.pending
		p.pending = nil
		return t
	}
	return p.tok.Next()
}

func (p *Parser) peekToken() Token {
	if p.pending == nil {
		t := p.tok.Next()
		p.pending = &t
	}
	return *p.pending
}

func (p *Parser) setMode(m Mode) { p.tok.SetMode(m) }

// skipSpace discards buffered whitespace tokens. ModeSelector and ModeValue
// preserve whitespace (it carries combinator/separator meaning for the
// selector and value builders), so readers that match keywords or
// structural tokens directly against a peeked token in those modes must
// skip past any intervening whitespace first.
func (p *Parser) skipSpace() {
	for p.peekToken().Kind == Whitespace {
		p.nextToken()
	}
}

// skipUnknownRule discards the buffered lookahead (its bytes are already
// behind the raw source's current position either way) and resumes at the
// tokenizer's own resync primitive.
func (p *Parser) skipUnknownRule() {
	p.pending = nil
	p.tok.SkipUnknownRule()
}

func (p *Parser) jumpToNextSemicolon() {
	p.pending = nil
	p.tok.JumpToNextSemicolon()
}

func (p *Parser) jumpToEndOfDeclaration() {
	if p.pending != nil {
		switch p.pending.Kind {
		case Semicolon:
			p.pending = nil
			return
		case CurlyClose, EOF:
			return
		}
	}
	p.pending = nil
	p.tok.JumpToEndOfDeclaration()
}

func (p *Parser) jumpToClosedArguments() {
	p.pending = nil
	p.tok.JumpToClosedArguments()
}

// Parse runs the parser to completion and returns the assembled Stylesheet.
// It never panics: every malformed construct is reported and recovered.
func (p *Parser) Parse() *Stylesheet {
	p.setMode(ModeData)
	for {
		tok := p.peekToken()
		switch tok.Kind {
		case EOF:
			return p.sheet
		case AtKeyword:
			p.nextToken()
			if r := p.parseAtRule(tok, nil); r != nil {
				p.sheet.append(r, nil)
			}
		case CurlyOpen:
			p.nextToken()
			p.cfg.report(InvalidBlockStart, tok.Pos)
			p.skipUnknownRule()
		case CurlyClose:
			p.nextToken()
			p.cfg.report(InvalidToken, tok.Pos)
		default:
			if r := p.parseStyleRule(nil); r != nil {
				p.sheet.append(r, nil)
			}
		}
	}
}

// parseNestedRules reads rules (at-rules and style rules) until a top-level
// '}' or Eof, attaching each to parent as it completes.
func (p *Parser) parseNestedRules(parent Rule) {
	for {
		tok := p.peekToken()
		switch tok.Kind {
		case EOF:
			return
		case CurlyClose:
			p.nextToken()
			return
		case AtKeyword:
			p.nextToken()
			if r := p.parseAtRule(tok, parent); r != nil {
				p.sheet.append(r, parent)
			}
		case CurlyOpen:
			p.nextToken()
			p.cfg.report(InvalidBlockStart, tok.Pos)
			p.skipUnknownRule()
		default:
			if r := p.parseStyleRule(parent); r != nil {
				p.sheet.append(r, parent)
			}
		}
	}
}

// parseAtRule dispatches on the at-keyword's case-folded name, stripping a
// vendor prefix so "-moz-document"/"-webkit-keyframes" route to the same
// handler as their unprefixed form.
func (p *Parser) parseAtRule(kw Token, parent Rule) Rule {
	name := stripVendorPrefix(fold(kw.Text))
	switch name {
	case "charset":
		return p.parseCharsetRule(kw.Pos)
	case "import":
		return p.parseImportRule(kw.Pos)
	case "namespace":
		return p.parseNamespaceRule(kw.Pos)
	case "media":
		return p.parseMediaRule(kw.Pos)
	case "supports":
		return p.parseSupportsRule(kw.Pos)
	case "document":
		return p.parseDocumentRule(kw.Pos)
	case "page":
		return p.parsePageRule(kw.Pos)
	case "font-face":
		return p.parseFontFaceRule(kw.Pos)
	case "keyframes":
		return p.parseKeyframesRule(kw.Pos)
	default:
		return p.parseUnknownAtRule(kw)
	}
}

func stripVendorPrefix(name string) string {
	if len(name) < 2 || name[0] != '-' {
		return name
	}
	rest := name[1:]
	idx := strings.IndexByte(rest, '-')
	if idx < 0 {
		return name
	}
	return rest[idx+1:]
}

// expectSemicolon consumes a trailing ';', or reports InvalidToken and
// jumps to the next one when it is missing.
func (p *Parser) expectSemicolon() {
	tok := p.peekToken()
	if tok.Kind == Semicolon {
		p.nextToken()
		return
	}
	p.cfg.report(InvalidToken, tok.Pos)
	p.jumpToNextSemicolon()
}

// expectBlock consumes an opening '{', or reports InvalidToken and skips
// the unknown construct when it is missing. Returns false on the latter.
func (p *Parser) expectBlock() bool {
	tok := p.peekToken()
	if tok.Kind == CurlyOpen {
		p.nextToken()
		return true
	}
	p.cfg.report(InvalidToken, tok.Pos)
	p.skipUnknownRule()
	return false
}

func (p *Parser) parseCharsetRule(pos Position) Rule {
	p.setMode(ModeData)
	tok := p.nextToken()
	if tok.Kind != String {
		p.cfg.report(InvalidToken, tok.Pos)
		p.jumpToNextSemicolon()
		return nil
	}
	enc := tok.Text
	p.expectSemicolon()
	return &CharsetRule{Encoding: enc}
}

func (p *Parser) parseImportRule(pos Position) Rule {
	p.setMode(ModeData)
	tok := p.nextToken()
	var url string
	switch tok.Kind {
	case String, URL:
		url = tok.Text
	default:
		p.cfg.report(InvalidToken, tok.Pos)
		p.jumpToNextSemicolon()
		return nil
	}
	p.setMode(ModeValue)
	mediums := p.readMediaList()
	p.setMode(ModeData)
	p.expectSemicolon()
	return &ImportRule{URL: url, Mediums: mediums}
}

func (p *Parser) parseNamespaceRule(pos Position) Rule {
	p.setMode(ModeData)
	tok := p.nextToken()
	var prefix, uri string
	if tok.Kind == Ident {
		prefix = tok.Text
		tok = p.nextToken()
	}
	switch tok.Kind {
	case String, URL:
		uri = tok.Text
	default:
		p.cfg.report(InvalidToken, tok.Pos)
		p.jumpToNextSemicolon()
		return nil
	}
	p.expectSemicolon()
	return &NamespaceRule{Prefix: prefix, URI: uri}
}

func (p *Parser) parseMediaRule(pos Position) Rule {
	p.setMode(ModeValue)
	mediums := p.readMediaList()
	p.setMode(ModeData)
	if len(mediums) == 0 {
		p.cfg.report(InvalidToken, pos)
	}
	if !p.expectBlock() {
		return nil
	}
	rule := &MediaRule{Mediums: mediums}
	p.parseNestedRules(rule)
	return rule
}

func (p *Parser) parseSupportsRule(pos Position) Rule {
	p.setMode(ModeValue)
	cond := p.readCondition()
	p.setMode(ModeData)
	if cond == nil {
		p.cfg.report(InvalidToken, pos)
	}
	if !p.expectBlock() {
		return nil
	}
	rule := &SupportsRule{Condition: cond}
	p.parseNestedRules(rule)
	return rule
}

func (p *Parser) parseDocumentRule(pos Position) Rule {
	p.setMode(ModeData)
	funcs := p.readDocumentFunctions()
	if !p.expectBlock() {
		return nil
	}
	rule := &DocumentRule{Functions: funcs}
	p.parseNestedRules(rule)
	return rule
}

// readDocumentFunctions reads a comma-separated list of tokens convertible
// to document functions, stopping at the first token that isn't one.
func (p *Parser) readDocumentFunctions() []DocumentFunction {
	var out []DocumentFunction
	for {
		tok := p.peekToken()
		switch tok.Kind {
		case URL:
			p.nextToken()
			out = append(out, DocumentFunction{Name: "url", Arg: tok.Text})
		case Function:
			name := fold(tok.Text)
			if name != "url-prefix" && name != "domain" && name != "regexp" {
				return out
			}
			p.nextToken()
			out = append(out, DocumentFunction{Name: tok.Text, Arg: p.readRawUntilRoundClose()})
		default:
			return out
		}
		sep := p.peekToken()
		if sep.Kind != Comma {
			return out
		}
		p.nextToken()
	}
}

// readRawUntilRoundClose consumes tokens up to and including the ')'
// matching the '(' the caller already consumed (a Function token), tracking
// nested parens, and reconstructs their approximate source text.
func (p *Parser) readRawUntilRoundClose() string {
	depth := 1
	var sb strings.Builder
	for {
		tok := p.nextToken()
		switch tok.Kind {
		case EOF:
			return sb.String()
		case RoundOpen:
			depth++
			sb.WriteByte('(')
		case RoundClose:
			depth--
			if depth == 0 {
				return sb.String()
			}
			sb.WriteByte(')')
		default:
			sb.WriteString(renderToken(tok))
		}
	}
}

func (p *Parser) parsePageRule(pos Position) Rule {
	p.setMode(ModeSelector)
	var sel *Selector
	if p.peekToken().Kind != CurlyOpen {
		sc := NewSelectorConstructor(p.cfg)
		for {
			tok := p.peekToken()
			if tok.Kind == CurlyOpen || tok.Kind == EOF {
				break
			}
			p.nextToken()
			sc.Apply(tok)
		}
		sel = sc.Result()
		if !sc.IsValid() {
			p.cfg.report(InvalidSelector, pos)
		}
	}
	p.setMode(ModeData)
	if !p.expectBlock() {
		return nil
	}
	return &PageRule{Selector: sel, Style: p.readDeclarationBlockBody()}
}

func (p *Parser) parseFontFaceRule(pos Position) Rule {
	p.setMode(ModeData)
	if !p.expectBlock() {
		return nil
	}
	return &FontFaceRule{Style: p.readDeclarationBlockBody()}
}

func (p *Parser) parseUnknownAtRule(kw Token) Rule {
	p.cfg.report(UnknownAtRule, kw.Pos)
	p.setMode(ModeData)
	var sb strings.Builder
	for {
		tok := p.peekToken()
		if tok.Kind == CurlyOpen || tok.Kind == Semicolon || tok.Kind == EOF {
			break
		}
		p.nextToken()
		sb.WriteString(renderToken(tok))
	}
	prelude := strings.TrimSpace(sb.String())
	term := p.peekToken()
	switch term.Kind {
	case Semicolon:
		p.nextToken()
	case CurlyOpen:
		p.nextToken()
		p.skipUnknownRule()
	}
	return &UnknownAtRule{Name: kw.Text, Prelude: prelude}
}

// parseStyleRule reads a selector then its declaration block, dropping the
// rule (but still consuming its source span) when the selector result is
// null, or invalid and Config.RelaxedSelectors is false.
func (p *Parser) parseStyleRule(parent Rule) Rule {
	p.setMode(ModeSelector)
	startPos := p.peekToken().Pos
	sc := NewSelectorConstructor(p.cfg)
	for {
		tok := p.peekToken()
		if tok.Kind == CurlyOpen || tok.Kind == CurlyClose || tok.Kind == EOF {
			break
		}
		p.nextToken()
		sc.Apply(tok)
	}
	sel := sc.Result()
	if !sc.IsValid() {
		p.cfg.report(InvalidSelector, startPos)
	}
	drop := sel == nil || (!sc.IsValid() && !p.cfg.RelaxedSelectors)

	p.setMode(ModeData)
	if p.peekToken().Kind != CurlyOpen {
		// Selector ran out (Eof or '}') without ever reaching a block:
		// nothing more to read or skip; a '}' is left for the caller.
		return nil
	}
	p.nextToken() // consume '{'

	if drop {
		p.skipUnknownRule()
		return nil
	}
	return &StyleRule{Selector: sel, Style: p.readDeclarationBlockBody()}
}

// readDeclarationBlockBody reads declarations until a top-level '}' (which
// it consumes) or Eof.
func (p *Parser) readDeclarationBlockBody() *DeclarationBlock {
	block := NewDeclarationBlock()
	p.setMode(ModeData)
	for {
		tok := p.peekToken()
		switch tok.Kind {
		case CurlyClose:
			p.nextToken()
			return block
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

// readDeclaration implements spec.md §4.2's declaration-filling algorithm:
// Ident, ':', a value read in Value mode, then the !important flag is
// stamped from the value builder's terminal state regardless of whether the
// property accepted the value.
func (p *Parser) readDeclaration(block *DeclarationBlock) {
	p.setMode(ModeData)
	tok := p.nextToken()
	if tok.Kind != Ident {
		p.cfg.report(IdentExpected, tok.Pos)
		p.jumpToEndOfDeclaration()
		return
	}
	name := tok.Text

	colon := p.peekToken()
	if colon.Kind != Colon {
		p.cfg.report(ColonMissing, colon.Pos)
		p.jumpToEndOfDeclaration()
		return
	}
	p.nextToken()

	prop := p.cfg.factory().Create(fold(name), block)
	unknown := prop == nil

	p.setMode(ModeValue)
	vb := NewValueBuilder(p.cfg)
	for {
		t := p.peekToken()
		if (t.Kind == Semicolon || t.Kind == CurlyClose) && vb.IsReady() {
			break
		}
		if t.Kind == EOF {
			break
		}
		p.nextToken()
		vb.Apply(t)
	}
	p.setMode(ModeData)

	val := vb.Result()
	if val == nil {
		p.cfg.report(ValueMissing, colon.Pos)
		p.jumpToEndOfDeclaration()
		return
	}

	if unknown {
		p.cfg.report(UnknownDeclarationName, tok.Pos)
		prop = newUnknownProperty(name, val.Text)
	} else {
		prop.Name = name
	}
	prop.TrySetValue(val)
	prop.Important = vb.IsImportant()
	block.Set(prop)
}

// renderToken reconstructs an approximate source rendering of a single
// token, used only for preserving raw prelude/argument text of constructs
// this package does not otherwise structure (unknown at-rules, @document
// function arguments).
func renderToken(tok Token) string {
	switch tok.Kind {
	case Ident:
		return tok.Text
	case AtKeyword:
		return "@" + tok.Text
	case Hash:
		return "#" + tok.Text
	case String:
		return "\"" + tok.Text + "\""
	case URL, BadURL:
		return "url(" + tok.Text + ")"
	case Function:
		return tok.Text + "("
	case Number, Integer:
		return formatNum(tok.Num)
	case Percentage:
		return formatNum(tok.Num) + "%"
	case Dimension:
		return formatNum(tok.Num) + tok.Unit
	case Comma:
		return ","
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Whitespace:
		return " "
	case RoundOpen:
		return "("
	case RoundClose:
		return ")"
	case SquareOpen:
		return "["
	case SquareClose:
		return "]"
	case Delim:
		return tok.Text
	default:
		return tok.Text
	}
}
