package css

// Combinator identifies how a CompoundSelector relates to the compound
// before it in a ComplexSelector.
type Combinator int

const (
	// CombinatorNone marks the first compound in a complex selector.
	CombinatorNone Combinator = iota
	// CombinatorDescendant is whitespace between two compounds.
	CombinatorDescendant
	// CombinatorChild is '>'.
	CombinatorChild
	// CombinatorNextSibling is '+'.
	CombinatorNextSibling
	// CombinatorSubsequentSibling is '~'.
	CombinatorSubsequentSibling
	// CombinatorColumn is '||'.
	CombinatorColumn
)

// AttrMatcher identifies an attribute selector's comparison operator.
type AttrMatcher int

const (
	AttrExists AttrMatcher = iota
	AttrEquals
	AttrIncludesWord
	AttrDashMatches
	AttrPrefixMatches
	AttrSuffixMatches
	AttrSubstringMatches
)

// AttrSelector is one `[name op value]` clause.
type AttrSelector struct {
	Name            string
	Matcher         AttrMatcher
	Value           string
	CaseInsensitive bool
}

// PseudoSelector is `:name`, `::name`, or `:name(args)`.
type PseudoSelector struct {
	Name    string
	Element bool // true for '::'
	// Args holds the parsed selector list for functional pseudos whose
	// argument is itself a selector list (:not(), :is(), :where()).
	Args []ComplexSelector
	// ArgText holds the raw argument text for functional pseudos whose
	// argument is not a selector list (:nth-child(2n+1)).
	ArgText string
}

// CompoundSelector is a run of simple selectors with no combinator between
// them (tag name, id, classes, attributes, pseudos), preceded by the
// Combinator that relates it to the previous compound.
type CompoundSelector struct {
	Combinator Combinator
	TypeName   string // "" if absent, "*" for the universal selector
	ID         string
	Classes    []string
	Attrs      []AttrSelector
	Pseudos    []PseudoSelector
}

func (c *CompoundSelector) empty() bool {
	return c.TypeName == "" && c.ID == "" && len(c.Classes) == 0 &&
		len(c.Attrs) == 0 && len(c.Pseudos) == 0
}

// ComplexSelector is compounds joined by combinators, e.g. "div.a > p:hover".
type ComplexSelector struct {
	Compounds []CompoundSelector
}

// Selector is a comma-separated selector list, the opaque subtree type
// spec.md §3.2 describes.
type Selector struct {
	List []ComplexSelector
}

// selState is the SelectorConstructor's top-level state.
type selState int

const (
	selReady            selState = iota // ready for a compound/combinator/comma
	selExpectClassName                  // just consumed '.'
	selExpectPseudoName                 // just consumed one ':'
	selExpectPseudoElem                 // just consumed '::'
)

// attrState is the sub-state machine active while inAttr is set.
type attrState int

const (
	attrExpectName attrState = iota
	attrExpectOpOrClose
	attrExpectValue
	attrExpectFlagOrClose
)

// SelectorConstructor is the token-driven state machine spec.md §4.3
// describes: it incrementally builds a selector tree and reports validity
// without ever throwing, so the rule parser can drive it with an arbitrary
// token sequence and always get a usable (possibly empty/invalid) result.
type SelectorConstructor struct {
	cfg   *Config
	valid bool

	list        []ComplexSelector
	cur         ComplexSelector
	compound    CompoundSelector
	havePending bool
	pendingComb Combinator
	sawSpace    bool

	state selState

	inAttr   bool
	attrSt   attrState
	attr     AttrSelector

	inPseudoArgs bool
	pseudoName   string
	pseudoElem   bool
	nested       *SelectorConstructor
	pseudoArgRaw []Token // accumulated when the pseudo isn't a known selector-list function
}

// NewSelectorConstructor returns a SelectorConstructor in its reset state.
func NewSelectorConstructor(cfg *Config) *SelectorConstructor {
	s := &SelectorConstructor{cfg: cfg}
	s.Reset()
	return s
}

// Reset starts a new selector, discarding any in-progress state.
func (s *SelectorConstructor) Reset() {
	s.valid = true
	s.list = nil
	s.cur = ComplexSelector{}
	s.compound = CompoundSelector{}
	s.havePending = false
	s.pendingComb = CombinatorNone
	s.sawSpace = false
	s.state = selReady
	s.inAttr = false
	s.attr = AttrSelector{}
	s.inPseudoArgs = false
	s.nested = nil
	s.pseudoArgRaw = nil
}

// IsValid reports whether no syntactic error has been seen yet.
func (s *SelectorConstructor) IsValid() bool { return s.valid }

func (s *SelectorConstructor) fail(pos Position) {
	s.valid = false
	s.cfg.report(InvalidSelector, pos)
}

// selectorListFunctions names the functional pseudos whose argument is
// itself read as a nested selector list (spec.md §4.3's explicit examples).
var selectorListFunctions = map[string]bool{
	"not": true, "is": true, "where": true, "has": true,
}

// Result returns the built Selector, or nil if it is empty. An invalid
// selector can still yield a non-nil result; check IsValid separately.
func (s *SelectorConstructor) Result() *Selector {
	s.flushCompound()
	s.flushComplex()
	if len(s.list) == 0 {
		return nil
	}
	return &Selector{List: s.list}
}

func (s *SelectorConstructor) flushCompound() {
	if !s.havePending {
		return
	}
	if s.compound.empty() && s.pendingComb == CombinatorNone && len(s.cur.Compounds) == 0 {
		s.havePending = false
		return
	}
	s.compound.Combinator = s.pendingComb
	s.cur.Compounds = append(s.cur.Compounds, s.compound)
	s.compound = CompoundSelector{}
	s.havePending = false
	s.pendingComb = CombinatorNone
	s.sawSpace = false
}

func (s *SelectorConstructor) flushComplex() {
	s.flushCompound()
	if len(s.cur.Compounds) > 0 {
		s.list = append(s.list, s.cur)
	}
	s.cur = ComplexSelector{}
}

func (s *SelectorConstructor) startCompoundIfNeeded() {
	if s.havePending {
		if !s.sawSpace {
			return
		}
		// Whitespace after a compound ends it; what follows starts a new
		// compound joined by the descendant combinator.
		s.flushCompound()
		s.sawSpace = true
	}
	if s.sawSpace && len(s.cur.Compounds) > 0 && s.pendingComb == CombinatorNone {
		s.pendingComb = CombinatorDescendant
	}
	s.sawSpace = false
	s.havePending = true
}

// Apply advances the state machine by one token. It never panics.
func (s *SelectorConstructor) Apply(tok Token) {
	if s.inPseudoArgs {
		s.applyPseudoArgToken(tok)
		return
	}
	if s.inAttr {
		s.applyAttrToken(tok)
		return
	}

	switch s.state {
	case selExpectClassName:
		s.state = selReady
		if tok.Kind != Ident {
			s.fail(tok.Pos)
			return
		}
		s.startCompoundIfNeeded()
		s.compound.Classes = append(s.compound.Classes, tok.Text)
		return
	case selExpectPseudoName:
		if tok.Kind == Colon {
			s.state = selExpectPseudoElem
			return
		}
		s.state = selReady
		s.applyPseudoNameToken(tok, false)
		return
	case selExpectPseudoElem:
		s.state = selReady
		s.applyPseudoNameToken(tok, true)
		return
	}

	switch tok.Kind {
	case Whitespace:
		if s.havePending || len(s.cur.Compounds) > 0 {
			s.sawSpace = true
		}
	case Comma:
		s.flushComplex()
	case Ident:
		s.startCompoundIfNeeded()
		if s.compound.TypeName != "" {
			s.fail(tok.Pos)
			return
		}
		s.compound.TypeName = tok.Text
	case Hash:
		s.startCompoundIfNeeded()
		s.compound.ID = tok.Text
	case Colon:
		s.startCompoundIfNeeded()
		s.state = selExpectPseudoName
	case SquareOpen:
		s.startCompoundIfNeeded()
		s.inAttr = true
		s.attrSt = attrExpectName
		s.attr = AttrSelector{}
	case Delim:
		s.applyDelim(tok)
	case Function:
		s.startCompoundIfNeeded()
		s.beginFunctionalPseudo(tok.Text, tok.Pos, false)
	case Includes, DashMatch, PrefixMatch, SuffixMatch, Substring, NotMatch, Column:
		s.fail(tok.Pos)
	case EOF, CurlyOpen, CurlyClose:
		// Terminators the rule parser watches for directly; ignore here.
	default:
		s.fail(tok.Pos)
	}
}

func (s *SelectorConstructor) applyDelim(tok Token) {
	switch tok.Text {
	case "*":
		s.startCompoundIfNeeded()
		if s.compound.TypeName != "" {
			s.fail(tok.Pos)
			return
		}
		s.compound.TypeName = "*"
	case ".":
		s.startCompoundIfNeeded()
		s.state = selExpectClassName
	case ">":
		s.setCombinator(CombinatorChild, tok.Pos)
	case "+":
		s.setCombinator(CombinatorNextSibling, tok.Pos)
	case "~":
		s.setCombinator(CombinatorSubsequentSibling, tok.Pos)
	case "=":
		s.fail(tok.Pos) // '=' only valid inside an attribute selector
	default:
		s.fail(tok.Pos)
	}
}

func (s *SelectorConstructor) setCombinator(c Combinator, pos Position) {
	s.flushCompound()
	if len(s.cur.Compounds) == 0 {
		s.fail(pos)
		return
	}
	s.pendingComb = c
	s.sawSpace = false
}

func (s *SelectorConstructor) applyPseudoNameToken(tok Token, element bool) {
	switch tok.Kind {
	case Ident:
		s.compound.Pseudos = append(s.compound.Pseudos, PseudoSelector{Name: tok.Text, Element: element})
	case Function:
		s.beginFunctionalPseudo(tok.Text, tok.Pos, element)
	default:
		s.fail(tok.Pos)
	}
}

func (s *SelectorConstructor) beginFunctionalPseudo(name string, pos Position, element bool) {
	s.inPseudoArgs = true
	s.pseudoName = name
	s.pseudoElem = element
	s.pseudoArgRaw = nil
	if selectorListFunctions[fold(name)] {
		s.nested = NewSelectorConstructor(s.cfg)
	} else {
		s.nested = nil
	}
}

func (s *SelectorConstructor) applyPseudoArgToken(tok Token) {
	if tok.Kind == RoundClose {
		s.finishFunctionalPseudo()
		return
	}
	if s.nested != nil {
		s.nested.Apply(tok)
		return
	}
	s.pseudoArgRaw = append(s.pseudoArgRaw, tok)
}

func (s *SelectorConstructor) finishFunctionalPseudo() {
	ps := PseudoSelector{Name: s.pseudoName, Element: s.pseudoElem}
	if s.nested != nil {
		if res := s.nested.Result(); res != nil {
			ps.Args = res.List
		}
		if !s.nested.IsValid() {
			s.fail(Position{})
		}
	} else {
		ps.ArgText = tokensRawText(s.pseudoArgRaw)
	}
	s.compound.Pseudos = append(s.compound.Pseudos, ps)
	s.inPseudoArgs = false
	s.nested = nil
	s.pseudoArgRaw = nil
}

func (s *SelectorConstructor) applyAttrToken(tok Token) {
	if tok.Kind == SquareClose {
		s.finishAttr(tok.Pos)
		return
	}
	switch s.attrSt {
	case attrExpectName:
		if tok.Kind == Whitespace {
			return
		}
		if tok.Kind != Ident {
			s.fail(tok.Pos)
			return
		}
		s.attr.Name = tok.Text
		s.attrSt = attrExpectOpOrClose
	case attrExpectOpOrClose:
		if tok.Kind == Whitespace {
			return
		}
		if m, ok := attrMatcherFor(tok); ok {
			s.attr.Matcher = m
			s.attrSt = attrExpectValue
			return
		}
		s.fail(tok.Pos)
	case attrExpectValue:
		if tok.Kind == Whitespace {
			return
		}
		switch tok.Kind {
		case String, Ident:
			s.attr.Value = tok.Text
			s.attrSt = attrExpectFlagOrClose
		default:
			s.fail(tok.Pos)
		}
	case attrExpectFlagOrClose:
		if tok.Kind == Whitespace {
			return
		}
		if tok.Kind == Ident && (foldEquals(tok.Text, "i") || foldEquals(tok.Text, "s")) {
			s.attr.CaseInsensitive = foldEquals(tok.Text, "i")
			return
		}
		s.fail(tok.Pos)
	}
}

func attrMatcherFor(tok Token) (AttrMatcher, bool) {
	switch tok.Kind {
	case Includes:
		return AttrIncludesWord, true
	case DashMatch:
		return AttrDashMatches, true
	case PrefixMatch:
		return AttrPrefixMatches, true
	case SuffixMatch:
		return AttrSuffixMatches, true
	case Substring:
		return AttrSubstringMatches, true
	case Delim:
		if tok.Text == "=" {
			return AttrEquals, true
		}
	}
	return 0, false
}

func (s *SelectorConstructor) finishAttr(pos Position) {
	if s.attr.Name == "" {
		s.fail(pos)
	}
	s.compound.Attrs = append(s.compound.Attrs, s.attr)
	s.inAttr = false
	s.attr = AttrSelector{}
}

func tokensRawText(toks []Token) string {
	var out []rune
	for _, t := range toks {
		switch t.Kind {
		case Whitespace:
			out = append(out, ' ')
		case Ident, Function, AtKeyword, Hash, String, Delim:
			out = append(out, []rune(t.Text)...)
		case Comma:
			out = append(out, ',')
		case Colon:
			out = append(out, ':')
		case Number, Integer:
			out = append(out, []rune(formatNum(t.Num))...)
		case Percentage:
			out = append(out, []rune(formatNum(t.Num)+"%")...)
		case Dimension:
			out = append(out, []rune(formatNum(t.Num)+t.Unit)...)
		}
	}
	return string(out)
}
