package css

// readMediaList reads a comma-separated list of mediums (spec.md §4.2),
// stopping without consuming at the first token that cannot start or
// continue one.
func (p *Parser) readMediaList() []CssMedium {
	var out []CssMedium
	for {
		m, ok := p.readMedium()
		if ok {
			out = append(out, m)
		}
		p.skipSpace()
		if p.peekToken().Kind != Comma {
			return out
		}
		p.nextToken()
	}
}

// readMedium reads one medium: an optional not/only modifier, an optional
// type identifier, and zero or more parenthesized constraints, each
// optionally joined by "and".
func (p *Parser) readMedium() (CssMedium, bool) {
	var m CssMedium

	p.skipSpace()
	tok := p.peekToken()
	if tok.Kind == Ident {
		switch {
		case foldEquals(tok.Text, "not"):
			m.Inverse = true
			p.nextToken()
			p.skipSpace()
			tok = p.peekToken()
		case foldEquals(tok.Text, "only"):
			m.Exclusive = true
			p.nextToken()
			p.skipSpace()
			tok = p.peekToken()
		}
	}
	if tok.Kind == Ident {
		m.Type = tok.Text
		p.nextToken()
		p.skipSpace()
		tok = p.peekToken()
	}

	for {
		if tok.Kind == Ident && foldEquals(tok.Text, "and") {
			p.nextToken()
			p.skipSpace()
			tok = p.peekToken()
		}
		if tok.Kind != RoundOpen {
			break
		}
		if c, ok := p.readConstraint(); ok {
			m.Constraints = append(m.Constraints, c)
		}
		p.skipSpace()
		tok = p.peekToken()
	}

	if m.Type == "" && !m.Inverse && !m.Exclusive && len(m.Constraints) == 0 {
		return CssMedium{}, false
	}
	return m, true
}

// readConstraint reads "(feature)" or "(feature: value)"; the caller has
// confirmed the next token is '('.
func (p *Parser) readConstraint() (MediaConstraint, bool) {
	p.nextToken() // '('
	var c MediaConstraint

	p.skipSpace()
	tok := p.nextToken()
	if tok.Kind != Ident {
		p.cfg.report(InvalidToken, tok.Pos)
		p.jumpToClosedArguments()
		return c, false
	}
	c.Feature = tok.Text

	p.skipSpace()
	if p.peekToken().Kind == Colon {
		p.nextToken()
		p.setMode(ModeValue)
		vb := NewValueBuilder(p.cfg)
		for {
			t := p.peekToken()
			if t.Kind == RoundClose && vb.IsReady() {
				break
			}
			if t.Kind == EOF {
				break
			}
			p.nextToken()
			vb.Apply(t)
		}
		p.setMode(ModeData)
		if v := vb.Result(); v != nil {
			c.Value = v.Text
			c.HasValue = true
		}
	}

	if p.peekToken().Kind != RoundClose {
		p.cfg.report(InvalidToken, p.peekToken().Pos)
		p.jumpToClosedArguments()
		return c, false
	}
	p.nextToken()
	return c, true
}
