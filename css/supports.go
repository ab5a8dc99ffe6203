package css

// readCondition reads an @supports condition per spec.md §4.2's grammar:
//
//	cond := '(' cond ')' | 'not' cond | '(' decl ')' | cond 'and' cond | cond 'or' cond
//
// Mixing 'and'/'or' at the same nesting level is not allowed: the first
// connector seen at a level locks it for that level, and a differing
// connector terminates the level (left for the caller to see).
func (p *Parser) readCondition() Condition {
	first := p.readConditionTerm()
	if first == nil {
		return nil
	}
	return p.readConditionTail(first)
}

// readConditionTerm reads one 'not cond' or parenthesized term.
func (p *Parser) readConditionTerm() Condition {
	p.skipSpace()
	tok := p.peekToken()
	switch {
	case tok.Kind == Ident && foldEquals(tok.Text, "not"):
		p.nextToken()
		inner := p.readConditionTerm()
		if inner == nil {
			return nil
		}
		return NotCondition{Inner: inner}
	case tok.Kind == RoundOpen:
		p.nextToken()
		return p.readParenCondition()
	default:
		p.cfg.report(InvalidToken, tok.Pos)
		return nil
	}
}

// readParenCondition is called with the opening '(' already consumed. It is
// either a grouped sub-condition "(cond)" or a declaration condition
// "(property: value)".
func (p *Parser) readParenCondition() Condition {
	p.skipSpace()
	tok := p.peekToken()
	if tok.Kind == RoundOpen || (tok.Kind == Ident && foldEquals(tok.Text, "not")) {
		inner := p.readConditionTerm()
		sub := p.readConditionTail(inner)
		p.skipSpace()
		p.expectConditionClose()
		return GroupCondition{Inner: sub}
	}

	if tok.Kind != Ident {
		p.cfg.report(InvalidToken, tok.Pos)
		p.jumpToClosedArguments()
		return nil
	}
	p.nextToken()
	prop := tok.Text

	p.skipSpace()
	if p.peekToken().Kind != Colon {
		p.cfg.report(ColonMissing, p.peekToken().Pos)
		p.jumpToClosedArguments()
		return nil
	}
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

	var val string
	if v := vb.Result(); v != nil {
		val = v.Text
	}
	p.expectConditionClose()
	return DeclarationCondition{Property: prop, Value: val}
}

func (p *Parser) expectConditionClose() {
	if p.peekToken().Kind == RoundClose {
		p.nextToken()
		return
	}
	p.cfg.report(InvalidToken, p.peekToken().Pos)
	p.jumpToClosedArguments()
}

// readConditionTail consumes a chain of same-connector 'and'/'or' terms
// following first, locking whichever connector is seen first at this level.
func (p *Parser) readConditionTail(first Condition) Condition {
	p.skipSpace()
	tok := p.peekToken()
	var connector string
	switch {
	case tok.Kind == Ident && foldEquals(tok.Text, "and"):
		connector = "and"
	case tok.Kind == Ident && foldEquals(tok.Text, "or"):
		connector = "or"
	default:
		return first
	}

	children := []Condition{first}
	for {
		p.skipSpace()
		tok = p.peekToken()
		if tok.Kind != Ident || !foldEquals(tok.Text, connector) {
			break
		}
		p.nextToken()
		next := p.readConditionTerm()
		if next == nil {
			break
		}
		children = append(children, next)
	}
	if connector == "and" {
		return AndCondition{Children: children}
	}
	return OrCondition{Children: children}
}
