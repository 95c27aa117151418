package xmlstream

import "bytes"

// attribute is a single (name, value) pair. value has already been
// normalized by the time it reaches here: whitespace collapsed and any
// entity/character references expanded.
type attribute struct {
	name  []byte
	value []byte
}

// attrTable is the per-start-tag scratch collection: duplicate-checked,
// capacity-bounded, and reused across start tags by truncating to zero
// length rather than reallocating.
type attrTable struct {
	attrs []attribute
	max   int
}

func newAttrTable(max int) *attrTable {
	return &attrTable{attrs: make([]attribute, 0, max), max: max}
}

func (t *attrTable) reset(max int) {
	t.max = max
	t.attrs = t.attrs[:0]
}

// add appends a (name, value) pair, copying both out of the feed buffer.
// Returns KindDuplicateAttribute if name already exists in this table, or
// KindTooManyAttributes if max is exceeded.
func (t *attrTable) add(name, value []byte) Kind {
	for i := range t.attrs {
		if bytes.Equal(t.attrs[i].name, name) {
			return KindDuplicateAttribute
		}
	}
	if len(t.attrs) >= t.max {
		return KindTooManyAttributes
	}
	nameCopy := make([]byte, len(name))
	copy(nameCopy, name)
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	t.attrs = append(t.attrs, attribute{name: nameCopy, value: valueCopy})
	return KindNone
}

func (t *attrTable) count() int { return len(t.attrs) }

func (t *attrTable) name(i int) []byte {
	if i < 0 || i >= len(t.attrs) {
		return nil
	}
	return t.attrs[i].name
}

func (t *attrTable) value(i int) []byte {
	if i < 0 || i >= len(t.attrs) {
		return nil
	}
	return t.attrs[i].value
}
