package xmlstream

// charclass.go implements the XML 1.0 character-class predicates the
// tokenizer consults on every byte: NameStartChar, NameChar, whitespace
// ("S"), restricted control characters, and the overall "is this a valid
// XML 1.0 character" test used by numeric character references.
//
// These are pure functions over runes with no parser state. The tokenizer
// itself classifies most bytes without decoding a full rune (see
// isNameStartByte in tokenizer.go); these rune-level predicates are used
// directly wherever a full code point is already in hand, such as a
// decoded numeric character reference.

// isWhitespace reports whether b is XML 1.0 "S" (space, tab, CR, or LF).
func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// isNameStartChar reports whether r may begin an XML Name.
//
//	NameStartChar ::= ":" | [A-Z] | "_" | [a-z]
//	                | [#xC0-#xD6] | [#xD8-#xF6] | [#xF8-#x2FF]
//	                | [#x370-#x37D] | [#x37F-#x1FFF] | [#x200C-#x200D]
//	                | [#x2070-#x218F] | [#x2C00-#x2FEF] | [#x3001-#xD7FF]
//	                | [#xF900-#xFDCF] | [#xFDF0-#xFFFD] | [#x10000-#xEFFFF]
func isNameStartChar(r rune) bool {
	switch {
	case r == ':' || r == '_':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= 0xC0 && r <= 0xD6:
		return true
	case r >= 0xD8 && r <= 0xF6:
		return true
	case r >= 0xF8 && r <= 0x2FF:
		return true
	case r >= 0x370 && r <= 0x37D:
		return true
	case r >= 0x37F && r <= 0x1FFF:
		return true
	case r >= 0x200C && r <= 0x200D:
		return true
	case r >= 0x2070 && r <= 0x218F:
		return true
	case r >= 0x2C00 && r <= 0x2FEF:
		return true
	case r >= 0x3001 && r <= 0xD7FF:
		return true
	case r >= 0xF900 && r <= 0xFDCF:
		return true
	case r >= 0xFDF0 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

// isNameChar reports whether r may occur after the first character of an
// XML Name.
//
//	NameChar ::= NameStartChar | "-" | "." | [0-9] | #xB7
//	           | [#x0300-#x036F] | [#x203F-#x2040]
func isNameChar(r rune) bool {
	switch {
	case isNameStartChar(r):
		return true
	case r == '-' || r == '.':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == 0xB7:
		return true
	case r >= 0x0300 && r <= 0x036F:
		return true
	case r >= 0x203F && r <= 0x2040:
		return true
	}
	return false
}

// isXMLChar reports whether r is a valid XML 1.0 character, the set a
// numeric character reference (`&#D;`/`&#xH;`) is allowed to resolve to.
//
//	Char ::= #x9 | #xA | #xD | [#x20-#xD7FF] | [#xE000-#xFFFD] | [#x10000-#x10FFFF]
func isXMLChar(r rune) bool {
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// isRestrictedChar reports whether r is one of the control characters
// XML 1.1 calls "RestrictedChar": every C0 and C1 control except NUL,
// tab, LF, CR and NEL (#x85). The tokenizer rejects these in content.
func isRestrictedChar(r rune) bool {
	switch {
	case r >= 0x1 && r <= 0x8:
		return true
	case r >= 0xB && r <= 0xC:
		return true
	case r >= 0xE && r <= 0x1F:
		return true
	case r >= 0x7F && r <= 0x84:
		return true
	case r >= 0x86 && r <= 0x9F:
		return true
	}
	return false
}
