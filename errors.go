package xmlstream

import "fmt"

// Kind identifies the category of a parse fault, matching the taxonomy a
// host needs to decide whether a fault is its own bug (lifecycle misuse),
// a resource limit it can raise, or a genuinely malformed document.
type Kind int

const (
	// KindNone is the zero Kind; ParseError is never constructed with it.
	KindNone Kind = iota

	// Syntactic.
	KindUnexpectedByte
	KindUnterminatedToken
	KindBadXMLDecl
	KindBadDoctype
	KindBadCData
	KindBadComment
	KindBadPI
	KindBadAttribute
	KindBadCharRef

	// Well-formedness.
	KindMismatchedTag
	KindDuplicateAttribute
	KindMultipleRoots
	KindContentBeforeRoot
	KindIllegalChar
	KindCDataEndInText
	KindReservedPITarget

	// Resource.
	KindBufferTooSmall
	KindNameTooLong
	KindTextTooLong
	KindNestingTooDeep
	KindTooManyAttributes
	KindEntityTooDeep
	KindUndefinedEntity
	KindEntityLoop

	// Lifecycle.
	KindPrematureClose
	KindCallbackAbort
	KindFeedAfterClose
)

var kindStrings = map[Kind]string{
	KindUnexpectedByte:     "unexpected byte",
	KindUnterminatedToken:  "unterminated token",
	KindBadXMLDecl:         "bad XML declaration",
	KindBadDoctype:         "bad DOCTYPE",
	KindBadCData:           "bad CDATA section",
	KindBadComment:         "bad comment",
	KindBadPI:              "bad processing instruction",
	KindBadAttribute:       "bad attribute syntax",
	KindBadCharRef:         "bad character or entity reference",
	KindMismatchedTag:      "mismatched end tag",
	KindDuplicateAttribute: "duplicate attribute",
	KindMultipleRoots:      "multiple root elements",
	KindContentBeforeRoot:  "content before root element",
	KindIllegalChar:        "illegal character in content",
	KindCDataEndInText:     "']]>' in text content",
	KindReservedPITarget:   "reserved 'xml' processing instruction target",
	KindBufferTooSmall:     "buffer too small for lookahead",
	KindNameTooLong:        "name too long",
	KindTextTooLong:        "text too long",
	KindNestingTooDeep:     "nesting too deep",
	KindTooManyAttributes:  "attribute count exceeded",
	KindEntityTooDeep:      "entity expansion too deep",
	KindUndefinedEntity:    "undefined entity",
	KindEntityLoop:         "entity loop",
	KindPrematureClose:     "premature close",
	KindCallbackAbort:      "callback abort",
	KindFeedAfterClose:     "feed after close",
}

// String returns the taxonomy description of k, used as ParseError's
// human-readable description (§7 "error_description").
func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return "unknown error"
}

// ParseError is the sole error type surfaced by the parser: every fault,
// syntactic, well-formedness, resource, or lifecycle, pinpoints the first
// byte the tokenizer could not accept (§7).
type ParseError struct {
	Kind   Kind
	Line   int
	Column int
	// Offset is the absolute byte offset in the logical stream, counted
	// from the first byte ever fed to the parser.
	Offset int64
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("xmlstream: %s (line %d, column %d)", e.Kind, e.Line, e.Column)
}

// newParseError builds a ParseError anchored at the tokenizer's current
// position. It never wraps another error: once raised it is the terminal,
// sticky fault for the instance (§7 propagation policy).
func newParseError(kind Kind, line, column int, offset int64) *ParseError {
	return &ParseError{Kind: kind, Line: line, Column: column, Offset: offset}
}
