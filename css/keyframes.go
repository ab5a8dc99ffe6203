package css

// parseKeyframesRule reads `@keyframes name { keyframe-rules }`.
func (p *Parser) parseKeyframesRule(pos Position) Rule {
	p.setMode(ModeData)
	tok := p.nextToken()
	if tok.Kind != Ident {
		p.cfg.report(IdentExpected, tok.Pos)
		p.skipUnknownRule()
		return nil
	}
	name := tok.Text
	if !p.expectBlock() {
		return nil
	}
	rule := &KeyframesRule{Name: name}
	p.parseKeyframesBody(rule)
	return rule
}

// parseKeyframesBody reads a sequence of keyframe rules until a top-level
// '}' (consumed) or Eof.
func (p *Parser) parseKeyframesBody(rule *KeyframesRule) {
	for {
		tok := p.peekToken()
		switch tok.Kind {
		case CurlyClose:
			p.nextToken()
			return
		case EOF:
			return
		default:
			if kr := p.parseKeyframeRule(); kr != nil {
				p.sheet.append(kr, rule)
			}
		}
	}
}

// parseKeyframeRule reads one "percentage-list { declarations }". A
// malformed selector is skipped to the end of the declaration and produces
// no rule.
func (p *Parser) parseKeyframeRule() *KeyframeRule {
	p.setMode(ModeSelector)
	pos := p.peekToken().Pos
	sel := p.readKeyframeSelector()
	p.setMode(ModeData)
	if sel == nil {
		p.cfg.report(InvalidSelector, pos)
		p.jumpToEndOfDeclaration()
		return nil
	}
	if !p.expectBlock() {
		return nil
	}
	return &KeyframeRule{Selector: sel, Style: p.readDeclarationBlockBody()}
}

// readKeyframeSelector reads a comma-separated list of percentages or
// from/to keywords; "from" and "to" map to 0 and 100.
func (p *Parser) readKeyframeSelector() *KeyframeSelector {
	var pcts []float64
	for {
		p.skipSpace()
		tok := p.nextToken()
		switch {
		case tok.Kind == Ident && foldEquals(tok.Text, "from"):
			pcts = append(pcts, 0)
		case tok.Kind == Ident && foldEquals(tok.Text, "to"):
			pcts = append(pcts, 100)
		case tok.Kind == Percentage:
			pcts = append(pcts, tok.Num)
		default:
			return nil
		}
		p.skipSpace()
		if p.peekToken().Kind != Comma {
			break
		}
		p.nextToken()
	}
	if len(pcts) == 0 {
		return nil
	}
	return &KeyframeSelector{Percentages: pcts}
}
