package css

// PropertyFactory is the external style-property registry collaborator:
// it maps a lowercase property name to a typed Property object. The parser
// core never validates property values itself, and Property.TrySetValue
// accepts every value. Out of scope for this
// package per spec.md §1 ("the style-property registry... referenced only
// through their interfaces").
type PropertyFactory interface {
	// Create returns a Property for the given lowercase name, or nil if the
	// name is unrecognized, in which case the declaration reader wraps the
	// raw value text in an opaque unknown property instead.
	Create(name string, owner *DeclarationBlock) *Property
}

// DefaultPropertyFactory is the PropertyFactory used when a Config supplies
// none. It never rejects a name: every property is created as opaque,
// preserving raw value text so nothing is ever silently dropped.
type DefaultPropertyFactory struct{}

// Create implements PropertyFactory by always returning nil, signalling
// "unknown" so the caller wraps the declaration as an opaque property.
func (DefaultPropertyFactory) Create(name string, owner *DeclarationBlock) *Property {
	return nil
}

// newUnknownProperty wraps a declaration whose name the factory did not
// recognize (or whose factory is the default) as an opaque property that
// still round-trips its raw value text.
func newUnknownProperty(name, rawText string) *Property {
	return &Property{Name: name, Unknown: true, RawText: rawText}
}
