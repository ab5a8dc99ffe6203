package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPropertyFactoryAlwaysUnknown(t *testing.T) {
	var f DefaultPropertyFactory
	assert.Nil(t, f.Create("color", NewDeclarationBlock()))
}

type stubFactory struct{}

func (stubFactory) Create(name string, owner *DeclarationBlock) *Property {
	if name == "color" {
		return &Property{Name: name}
	}
	return nil
}

func TestCustomPropertyFactoryIsUsed(t *testing.T) {
	cfg := NewConfig()
	cfg.PropertyFactory = stubFactory{}

	sheet := ParseStylesheet("a { color: red; margin: 1px; }", cfg)
	rule := sheet.Rules[0].(*StyleRule)

	color, ok := rule.Style.Get("color")
	require.True(t, ok)
	assert.False(t, color.Unknown)

	margin, ok := rule.Style.Get("margin")
	require.True(t, ok)
	assert.True(t, margin.Unknown)
}

func TestDeclarationBlockOrderPreservedAcrossOverwrite(t *testing.T) {
	block := NewDeclarationBlock()
	block.Set(&Property{Name: "color"})
	block.Set(&Property{Name: "margin"})
	block.Set(&Property{Name: "color"})

	names := make([]string, 0, 2)
	for _, p := range block.Properties() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"color", "margin"}, names)
}
