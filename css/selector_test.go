package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelectorSimpleTypeClassID(t *testing.T) {
	sel := ParseSelector("div.foo#bar", nil)
	require.NotNil(t, sel)
	require.Len(t, sel.List, 1)
	compounds := sel.List[0].Compounds
	require.Len(t, compounds, 1)
	assert.Equal(t, "div", compounds[0].TypeName)
	assert.Equal(t, []string{"foo"}, compounds[0].Classes)
	assert.Equal(t, "bar", compounds[0].ID)
}

func TestParseSelectorDescendantCombinator(t *testing.T) {
	sel := ParseSelector("div p", nil)
	require.NotNil(t, sel)
	compounds := sel.List[0].Compounds
	require.Len(t, compounds, 2)
	assert.Equal(t, CombinatorNone, compounds[0].Combinator)
	assert.Equal(t, CombinatorDescendant, compounds[1].Combinator)
	assert.Equal(t, "p", compounds[1].TypeName)
}

func TestParseSelectorChildCombinator(t *testing.T) {
	sel := ParseSelector("ul > li", nil)
	require.NotNil(t, sel)
	compounds := sel.List[0].Compounds
	require.Len(t, compounds, 2)
	assert.Equal(t, CombinatorChild, compounds[1].Combinator)
}

func TestParseSelectorCommaList(t *testing.T) {
	sel := ParseSelector("a, b", nil)
	require.NotNil(t, sel)
	assert.Len(t, sel.List, 2)
}

func TestParseSelectorAttribute(t *testing.T) {
	sel := ParseSelector(`a[href^="https"]`, nil)
	require.NotNil(t, sel)
	attrs := sel.List[0].Compounds[0].Attrs
	require.Len(t, attrs, 1)
	assert.Equal(t, "href", attrs[0].Name)
	assert.Equal(t, AttrPrefixMatches, attrs[0].Matcher)
	assert.Equal(t, "https", attrs[0].Value)
}

func TestParseSelectorPseudoClassAndElement(t *testing.T) {
	sel := ParseSelector("a:hover::before", nil)
	require.NotNil(t, sel)
	pseudos := sel.List[0].Compounds[0].Pseudos
	require.Len(t, pseudos, 2)
	assert.Equal(t, "hover", pseudos[0].Name)
	assert.False(t, pseudos[0].Element)
	assert.Equal(t, "before", pseudos[1].Name)
	assert.True(t, pseudos[1].Element)
}

func TestParseSelectorNotFunctionNestsSelectorList(t *testing.T) {
	sel := ParseSelector(":not(.a, .b)", nil)
	require.NotNil(t, sel)
	pseudos := sel.List[0].Compounds[0].Pseudos
	require.Len(t, pseudos, 1)
	assert.Equal(t, "not", pseudos[0].Name)
	assert.Len(t, pseudos[0].Args, 2)
}

func TestParseSelectorNthChildKeepsRawArgText(t *testing.T) {
	sel := ParseSelector(":nth-child(2n+1)", nil)
	require.NotNil(t, sel)
	pseudos := sel.List[0].Compounds[0].Pseudos
	require.Len(t, pseudos, 1)
	assert.Equal(t, "2n+1", pseudos[0].ArgText)
}

func TestParseSelectorEmptyIsNil(t *testing.T) {
	assert.Nil(t, ParseSelector("", nil))
}

func TestParseSelectorInvalidReportsError(t *testing.T) {
	cfg := NewConfig()
	var events []ErrorEvent
	cfg.AddListener(ErrorListenerFunc(func(e ErrorEvent) { events = append(events, e) }))
	sel := ParseSelector("div..foo", cfg)
	assert.Nil(t, sel)
	require.NotEmpty(t, events)
	assert.Equal(t, InvalidSelector, events[0].Code)
}
