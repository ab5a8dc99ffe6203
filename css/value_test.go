package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueSimpleIdent(t *testing.T) {
	v := ParseValue("red", nil)
	require.NotNil(t, v)
	require.Len(t, v.Components, 1)
	assert.Equal(t, VCIdent, v.Components[0].Kind)
	assert.Equal(t, "red", v.Components[0].Text)
	assert.False(t, v.Important)
}

func TestParseValueFunctionNestsArgs(t *testing.T) {
	v := ParseValue("rgba(1, 2, 3, 0.5)", nil)
	require.NotNil(t, v)
	require.Len(t, v.Components, 1)
	fn := v.Components[0]
	assert.Equal(t, VCFunction, fn.Kind)
	assert.Equal(t, "rgba", fn.Text)
	var nums []ValueComponent
	for _, c := range fn.Args {
		if c.Kind == VCNumber {
			nums = append(nums, c)
		}
	}
	assert.Len(t, nums, 4)
}

func TestParseValueImportant(t *testing.T) {
	v := ParseValue("red !important", nil)
	require.NotNil(t, v)
	assert.True(t, v.Important)
	assert.Len(t, v.Components, 1)
}

func TestParseValueBangNotImportantFoldsBackIn(t *testing.T) {
	v := ParseValue("foo !bar", nil)
	require.NotNil(t, v)
	assert.False(t, v.Important)
	var delims []string
	for _, c := range v.Components {
		if c.Kind == VCDelim {
			delims = append(delims, c.Text)
		}
	}
	assert.Contains(t, delims, "!")
}

func TestParseValueUnclosedFunctionIsNotReady(t *testing.T) {
	v := ParseValue("rgba(1, 2, 3", nil)
	assert.Nil(t, v)
}

func TestParseValueEmptyIsNil(t *testing.T) {
	assert.Nil(t, ParseValue("", nil))
}

func TestParseValueCompoundSpaceSeparated(t *testing.T) {
	v := ParseValue("1px solid red", nil)
	require.NotNil(t, v)
	var kinds []ValueComponentKind
	for _, c := range v.Components {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []ValueComponentKind{VCDimension, VCWhitespace, VCIdent, VCWhitespace, VCIdent}, kinds)
}
