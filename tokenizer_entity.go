package xmlstream

import (
	"bytes"
	"unicode/utf8"
)

// tokenizer_entity.go handles the single "&...;" reference sub-state
// shared by text content and attribute values. p.returnState records
// which of the two contexts the reference was found in; that context is
// invariant across nested expansions (a reference inside a replacement
// text stays in whatever context the outermost "&" was found in), so it
// never needs its own stack, only p.expansion (the bytes still to scan)
// and p.activeEntities (for cycle detection) do.
func (p *Parser) stepEntityRefName() (stepOutcome, Kind) {
	b, ok := p.nextByte()
	if !ok {
		return outcomeNeedMore, KindNone
	}
	if b == ';' {
		p.consumeByte()
		return p.resolveEntityRef()
	}
	if len(p.entityRefBuf) == 0 && b == '#' {
		p.consumeByte()
		p.entityRefBuf = append(p.entityRefBuf, b)
		return outcomeContinue, KindNone
	}
	if len(p.entityRefBuf) == 1 && p.entityRefBuf[0] == '#' && (b == 'x' || b == 'X') {
		p.consumeByte()
		p.entityRefBuf = append(p.entityRefBuf, b)
		return outcomeContinue, KindNone
	}
	p.consumeByte()
	p.entityRefBuf = append(p.entityRefBuf, b)
	if len(p.entityRefBuf) > p.cfg.MaxNameLen {
		return outcomeFatal, KindNameTooLong
	}
	return outcomeContinue, KindNone
}

// resolveEntityRef is called the instant the terminating ';' of a
// reference is consumed. Numeric references decode directly into the
// target buffer; named references push an expansion frame so their
// replacement text is scanned through the very same dispatch (stepScan /
// stepAttrValueBody), which treats it as literal data except for any
// further "&" it contains.
func (p *Parser) resolveEntityRef() (stepOutcome, Kind) {
	body := p.entityRefBuf
	if len(body) > 0 && body[0] == '#' {
		hex := len(body) > 1 && (body[1] == 'x' || body[1] == 'X')
		start := 1
		if hex {
			start = 2
		}
		r, kind := parseCharRef(body[start:], hex)
		if kind != KindNone {
			return outcomeFatal, kind
		}
		var tmp [utf8.UTFMax]byte
		n := utf8.EncodeRune(tmp[:], r)
		return p.appendResolvedText(tmp[:n])
	}

	val, found := p.entities.lookup(body)
	if !found {
		return outcomeFatal, KindUndefinedEntity
	}
	for _, active := range p.activeEntities {
		if bytes.Equal(active, body) {
			return outcomeFatal, KindEntityLoop
		}
	}
	if len(p.activeEntities) >= p.cfg.MaxEntityExpansionDepth {
		return outcomeFatal, KindEntityTooDeep
	}
	nameCopy := append([]byte(nil), body...)
	p.activeEntities = append(p.activeEntities, nameCopy)
	p.expansion = append(p.expansion, entityFrame{data: val})
	p.state = p.returnState
	return outcomeContinue, KindNone
}

// appendResolvedText writes a numeric character reference's decoded bytes
// directly into the target buffer for the context the "&" was found in.
func (p *Parser) appendResolvedText(resolved []byte) (stepOutcome, Kind) {
	switch p.returnState {
	case stAttrValueBody:
		for _, b := range resolved {
			p.appendAttrValueByte(b)
		}
		p.state = p.returnState
		return outcomeContinue, KindNone
	default: // stScan
		p.textBuf = append(p.textBuf, resolved...)
		if bytes.HasSuffix(p.textBuf, cdataEndMarker) {
			return outcomeFatal, KindCDataEndInText
		}
		p.state = p.returnState
		if len(p.textBuf) >= p.cfg.MaxTextLen {
			p.pendingEventKind = TextNode
			return outcomeEvent, KindNone
		}
		return outcomeContinue, KindNone
	}
}
