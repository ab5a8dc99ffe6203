package css

import "github.com/lukehoban/csscore/log"

// ErrorCode identifies a recoverable problem encountered while parsing.
// The parser never stops on one of these; it reports the code and position
// on the error channel and applies the nearest resync primitive.
type ErrorCode int

const (
	// UnknownAtRule is reported for an @-rule keyword the parser does not
	// recognize; its body is skipped.
	UnknownAtRule ErrorCode = iota
	// InvalidBlockStart is reported for a top-level '{' with no preceding
	// selector or at-keyword.
	InvalidBlockStart
	// InvalidToken is reported for an unexpected closer or literal at a
	// position where a rule or construct was expected.
	InvalidToken
	// InvalidSelector is reported when the selector constructor flags the
	// selector it built as invalid.
	InvalidSelector
	// IdentExpected is reported when a declaration does not start with an
	// identifier.
	IdentExpected
	// ColonMissing is reported when a declaration's property name is not
	// followed by ':'.
	ColonMissing
	// UnknownDeclarationName is reported when the property factory does not
	// recognize a property name (the declaration is still kept, wrapped as
	// an opaque property).
	UnknownDeclarationName
	// ValueMissing is reported when a declaration's value builder yields no
	// value at all.
	ValueMissing
	// InvalidEscape is a tokenizer-level error for a malformed escape sequence.
	InvalidEscape
	// UnterminatedString is a tokenizer-level error for a string with no
	// closing quote before EOF or a newline.
	UnterminatedString
	// UnterminatedComment is a tokenizer-level error for a comment with no
	// closing "*/" before EOF.
	UnterminatedComment
)

var errorCodeNames = [...]string{
	"UnknownAtRule", "InvalidBlockStart", "InvalidToken", "InvalidSelector",
	"IdentExpected", "ColonMissing", "UnknownDeclarationName", "ValueMissing",
	"InvalidEscape", "UnterminatedString", "UnterminatedComment",
}

func (c ErrorCode) String() string {
	if int(c) < 0 || int(c) >= len(errorCodeNames) {
		return "ErrorCode(?)"
	}
	return errorCodeNames[c]
}

// ErrorEvent is published on the error channel for every recoverable
// problem: a code plus the source position it was detected at.
type ErrorEvent struct {
	Code ErrorCode
	Pos  Position
}

func (e ErrorEvent) Error() string {
	return e.Code.String() + " at " + e.Pos.String()
}

// ErrorListener receives ErrorEvents synchronously on the parsing thread.
// Implementations must not call back into the parser that is invoking them.
type ErrorListener interface {
	OnError(ErrorEvent)
}

// ErrorListenerFunc adapts a function to an ErrorListener.
type ErrorListenerFunc func(ErrorEvent)

// OnError implements ErrorListener.
func (f ErrorListenerFunc) OnError(e ErrorEvent) { f(e) }

// multiListener fans an ErrorEvent out to every registered listener, in
// registration order.
type multiListener []ErrorListener

func (m multiListener) OnError(e ErrorEvent) {
	for _, l := range m {
		l.OnError(e)
	}
}

// NewLogListener returns an ErrorListener backed by the package's own
// leveled logger: every event is logged at Warn with its code and position
// as structured fields. A Config with no listeners registered reports
// nothing; callers that want this behavior must AddListener it themselves,
// e.g. cfg.AddListener(NewLogListener(nil)).
func NewLogListener(logger *log.Logger) ErrorListener {
	if logger == nil {
		logger = log.New(nil, log.WarnLevel)
	}
	return ErrorListenerFunc(func(e ErrorEvent) {
		logger.WithFields(log.WarnLevel, "css: "+e.Code.String(), map[string]interface{}{
			"line": e.Pos.Line,
			"col":  e.Pos.Col,
		})
	})
}

// Config carries the parser's pluggable collaborators and feature toggles.
type Config struct {
	// Encoding names the source's character encoding. The parser core never
	// decodes bytes itself (that's a caller concern); this is informational
	// metadata threaded through to Stylesheet for CSS-OM consumers.
	Encoding string

	// PropertyFactory creates typed Property values by lowercase name. When
	// nil, DefaultPropertyFactory is used, which preserves every
	// declaration as an opaque raw-text property.
	PropertyFactory PropertyFactory

	// RelaxedSelectors controls whether a style rule whose selector
	// constructor reports IsValid()==false but still produced a non-nil
	// Selector is kept (true) or dropped (false, the default) alongside
	// rules whose selector is nil. See DESIGN.md's Open Question note.
	RelaxedSelectors bool

	listeners multiListener
}

// AddListener registers an ErrorListener. Listeners are invoked
// synchronously, in registration order, for every ErrorEvent.
func (c *Config) AddListener(l ErrorListener) {
	if l == nil {
		return
	}
	c.listeners = append(c.listeners, l)
}

func (c *Config) report(code ErrorCode, pos Position) {
	if c == nil {
		return
	}
	c.listeners.OnError(ErrorEvent{Code: code, Pos: pos})
}

func (c *Config) factory() PropertyFactory {
	if c == nil || c.PropertyFactory == nil {
		return DefaultPropertyFactory{}
	}
	return c.PropertyFactory
}

// NewConfig returns a Config with no listeners and the default property
// factory.
func NewConfig() *Config {
	return &Config{}
}
