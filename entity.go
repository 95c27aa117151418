package xmlstream

import "bytes"

// entity is a single name/replacement-text pair.
type entity struct {
	name  []byte
	value []byte
}

// entityTable resolves entity references: the five predefined entities
// are always present; DOCTYPE internal-subset `<!ENTITY ...>` declarations
// append user-defined ones. Lookup is a linear scan, which is fine at the
// table sizes an embedded document's DOCTYPE realistically declares; the
// entries slice is reused via `[:0]` rather than reaching for a map,
// though each reset re-seeds the predefined entries with fresh byte
// slices and each define copies its name and value.
type entityTable struct {
	entries []entity
}

func newEntityTable() *entityTable {
	t := &entityTable{entries: make([]entity, 0, 8)}
	t.seedPredefined()
	return t
}

func (t *entityTable) reset() {
	t.entries = t.entries[:0]
	t.seedPredefined()
}

// Predefined replacement text is stored as a numeric character reference
// rather than the literal character itself wherever the literal would be
// re-interpreted by the very scanner its expansion frame is re-fed
// through: resolveEntityRef pushes a named entity's value onto
// p.expansion and stepScan/stepAttrValueBody scan it byte by byte,
// treating a literal '&' as the start of a nested reference. Spelling
// amp's and lt's replacements as "&#38;"/"&#60;" routes that rescan
// through parseCharRef's direct-append path (no new expansion frame),
// which resolves to the literal character instead of looping forever
// trying to re-expand it as a named entity.
func (t *entityTable) seedPredefined() {
	t.entries = append(t.entries,
		entity{name: []byte("lt"), value: []byte("&#60;")},
		entity{name: []byte("gt"), value: []byte(">")},
		entity{name: []byte("amp"), value: []byte("&#38;")},
		entity{name: []byte("apos"), value: []byte("'")},
		entity{name: []byte("quot"), value: []byte("\"")},
	)
}

// define adds a DOCTYPE-declared internal entity. Redeclaration of an
// existing name is ignored (first declaration wins, as with predefined
// entities XML 1.0 forbids redefining); it is not reported as an error
// since DOCTYPE internal subsets are only lexed here, not validated.
func (t *entityTable) define(name, value []byte) {
	if _, ok := t.lookup(name); ok {
		return
	}
	nameCopy := append([]byte(nil), name...)
	valueCopy := append([]byte(nil), value...)
	t.entries = append(t.entries, entity{name: nameCopy, value: valueCopy})
}

func (t *entityTable) lookup(name []byte) ([]byte, bool) {
	for i := range t.entries {
		if bytes.Equal(t.entries[i].name, name) {
			return t.entries[i].value, true
		}
	}
	return nil, false
}

// parseCharRef parses the body of a numeric character reference (the bytes
// between "&#" or "&#x" and the terminating ";") into a Unicode code
// point, validating it against XML 1.0's Char production. body must not
// include the "#" prefix; hex is true when body was introduced by "#x".
func parseCharRef(body []byte, hex bool) (rune, Kind) {
	if len(body) == 0 {
		return 0, KindBadCharRef
	}
	var v int64
	if hex {
		for _, b := range body {
			var d int64
			switch {
			case b >= '0' && b <= '9':
				d = int64(b - '0')
			case b >= 'a' && b <= 'f':
				d = int64(b-'a') + 10
			case b >= 'A' && b <= 'F':
				d = int64(b-'A') + 10
			default:
				return 0, KindBadCharRef
			}
			v = v*16 + d
			if v > 0x10FFFF {
				return 0, KindBadCharRef
			}
		}
	} else {
		for _, b := range body {
			if b < '0' || b > '9' {
				return 0, KindBadCharRef
			}
			v = v*10 + int64(b-'0')
			if v > 0x10FFFF {
				return 0, KindBadCharRef
			}
		}
	}
	r := rune(v)
	if !isXMLChar(r) {
		return 0, KindBadCharRef
	}
	return r, KindNone
}
