// Package xmldecl validates the encoding label carried in an XML
// declaration's encoding="..." pseudo-attribute.
//
// The parser never transcodes: per spec, non-UTF-8 charsets are out of
// scope beyond a "permissive pass-through of declared encodings". What it
// does still owe a host is rejecting a declaration whose label isn't a
// real encoding name at all (a typo, a stray token) versus silently
// accepting garbage. htmlindex carries the IANA/WHATWG label registry
// already, so this package is a thin lookup over it rather than a
// hand-rolled label table.
package xmldecl

import "golang.org/x/text/encoding/htmlindex"

// KnownLabel reports whether label resolves to a registered encoding,
// matching case-insensitively and ignoring surrounding whitespace the way
// htmlindex's registry does for HTML/XML charset labels.
func KnownLabel(label string) bool {
	if label == "" {
		return false
	}
	_, err := htmlindex.Get(label)
	return err == nil
}
