package css

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStylesheetAsyncRunsOnce(t *testing.T) {
	ap := NewAsyncParser(NewStringSource("a { color: red; }"), nil)

	sheet1, err1 := ap.Parse(context.Background())
	require.NoError(t, err1)
	require.Len(t, sheet1.Rules, 1)

	sheet2, err2 := ap.Parse(context.Background())
	require.NoError(t, err2)
	assert.Same(t, sheet1, sheet2)
}

func TestParseStylesheetAsyncConcurrentCallersShareResult(t *testing.T) {
	ap := NewAsyncParser(NewStringSource("a { color: red; }"), nil)

	const n = 8
	results := make([]*Stylesheet, n)
	errs := make([]error, n)
	done := make(chan int, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			results[i], errs[i] = ap.Parse(context.Background())
			done <- i
		}(i)
	}
	for i := 0; i < n; i++ {
		<-done
	}
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
}

func TestParseStylesheetAsyncReader(t *testing.T) {
	source := NewReaderSource(strings.NewReader("a { color: red; }"))
	sheet, err := ParseStylesheetAsync(context.Background(), source, nil)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)
}

func TestParseMediaListStrictErrorsOnLeftover(t *testing.T) {
	_, err := ParseMediaList("screen, print extra-junk(", nil)
	assert.Error(t, err)
	var synErr *SyntaxError
	assert.ErrorAs(t, err, &synErr)
}

func TestParseMediaListStrictSucceeds(t *testing.T) {
	mediums, err := ParseMediaList("screen, print", nil)
	require.NoError(t, err)
	require.Len(t, mediums, 2)
	assert.Equal(t, "screen", mediums[0].Type)
	assert.Equal(t, "print", mediums[1].Type)
}

func TestParseMediumStrict(t *testing.T) {
	m, err := ParseMedium("screen and (min-width: 10px)", nil)
	require.NoError(t, err)
	assert.Equal(t, "screen", m.Type)
	require.Len(t, m.Constraints, 1)

	_, err = ParseMedium("screen )", nil)
	assert.Error(t, err)
}

func TestParseConditionNested(t *testing.T) {
	cond := ParseCondition("not (display: grid)", nil)
	require.NotNil(t, cond)
	n, ok := cond.(NotCondition)
	require.True(t, ok)
	_, ok = n.Inner.(DeclarationCondition)
	assert.True(t, ok)
}

func TestParseDocumentRulesFunctions(t *testing.T) {
	funcs := ParseDocumentRules(`url(http://example.com/), domain("example.com")`, nil)
	require.Len(t, funcs, 2)
	assert.Equal(t, "url", funcs[0].Name)
	assert.Equal(t, "domain", funcs[1].Name)
}

func TestParseKeyframeSelectorFromTo(t *testing.T) {
	sel := ParseKeyframeSelector("from, 50%, to", nil)
	require.NotNil(t, sel)
	assert.Equal(t, []float64{0, 50, 100}, sel.Percentages)
}

func TestParseKeyframeRuleSelectorAndBlock(t *testing.T) {
	kr := ParseKeyframeRule("50% { opacity: 0.5; }", nil)
	require.NotNil(t, kr)
	assert.Equal(t, []float64{50}, kr.Selector.Percentages)
	prop, ok := kr.Style.Get("opacity")
	require.True(t, ok)
	assert.Equal(t, "0.5", prop.Value.Text)
}

func TestParseDeclarationSingle(t *testing.T) {
	prop := ParseDeclaration("color: red", nil)
	require.NotNil(t, prop)
	assert.Equal(t, "color", prop.Name)
	assert.Equal(t, "red", prop.Value.Text)

	assert.Nil(t, ParseDeclaration("color: red; font-size: 1px", nil))
}
