package xmlstream

// tokenizer_doctype.go lexes the `<!DOCTYPE ...>` markup declaration,
// including its optional internal subset, without validating it: external
// identifiers (PUBLIC/SYSTEM) are skipped as opaque quoted/unquoted runs,
// `<!ENTITY name "value">` declarations populate the entity table,
// `<!NOTATION name ...>` declarations fire a Notation event, and any other
// declaration (`<!ELEMENT`, `<!ATTLIST`, ...) is skipped to its closing
// '>'. Comments are allowed inside the internal subset and fire a Comment
// event like any other comment.
func (p *Parser) stepDoctype() (stepOutcome, Kind) {
	switch p.state {

	case stDoctypeLit:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b != doctypeLitTail[p.litIdx] {
			return outcomeFatal, KindBadDoctype
		}
		p.consumeByte()
		p.litIdx++
		if p.litIdx == len(doctypeLitTail) {
			p.quote = 0
			p.state = stDoctypeBeforeName
		}
		return outcomeContinue, KindNone

	case stDoctypeBeforeName:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		p.state = stDoctypeExternalID
		return outcomeContinue, KindNone

	case stDoctypeExternalID:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if p.quote != 0 {
			p.consumeByte()
			if b == p.quote {
				p.quote = 0
			}
			return outcomeContinue, KindNone
		}
		switch b {
		case '"', '\'':
			p.quote = b
			p.consumeByte()
			return outcomeContinue, KindNone
		case '[':
			p.consumeByte()
			p.state = stDoctypeSubset
			return outcomeContinue, KindNone
		case '>':
			p.consumeByte()
			p.state = stScan
			return outcomeContinue, KindNone
		default:
			p.consumeByte()
			return outcomeContinue, KindNone
		}

	case stDoctypeSubset:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		switch {
		case b == ']':
			p.consumeByte()
			p.state = stDoctypeAfterSubset
			return outcomeContinue, KindNone
		case b == '<':
			p.consumeByte()
			p.state = stDoctypeDeclLt
			return outcomeContinue, KindNone
		case isWhitespace(b):
			p.consumeByte()
			return outcomeContinue, KindNone
		default:
			return outcomeFatal, KindBadDoctype
		}

	case stDoctypeDeclLt:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b != '!' {
			return outcomeFatal, KindBadDoctype
		}
		p.consumeByte()
		p.state = stDoctypeBangSeen
		return outcomeContinue, KindNone

	case stDoctypeBangSeen:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b == '-' {
			p.consumeByte()
			p.afterCommentState = stDoctypeSubset
			p.state = stCommentDash1
			return outcomeContinue, KindNone
		}
		p.dtDeclKeyword = p.dtDeclKeyword[:0]
		p.state = stDoctypeDeclKeyword
		return outcomeContinue, KindNone

	case stDoctypeDeclKeyword:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b >= 'A' && b <= 'Z' {
			p.consumeByte()
			p.dtDeclKeyword = append(p.dtDeclKeyword, b)
			if len(p.dtDeclKeyword) > 16 {
				return outcomeFatal, KindBadDoctype
			}
			return outcomeContinue, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			switch string(p.dtDeclKeyword) {
			case "ENTITY":
				p.state = stDoctypeEntityWS
			case "NOTATION":
				p.state = stDoctypeNotationWS
			default:
				p.quote = 0
				p.state = stDoctypeDeclSkip
			}
			return outcomeContinue, KindNone
		}
		return outcomeFatal, KindBadDoctype

	case stDoctypeDeclSkip:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if p.quote != 0 {
			p.consumeByte()
			if b == p.quote {
				p.quote = 0
			}
			return outcomeContinue, KindNone
		}
		switch b {
		case '"', '\'':
			p.quote = b
			p.consumeByte()
			return outcomeContinue, KindNone
		case '>':
			p.consumeByte()
			p.state = stDoctypeSubset
			return outcomeContinue, KindNone
		default:
			p.consumeByte()
			return outcomeContinue, KindNone
		}

	case stDoctypeEntityWS:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		p.dtEntityName = p.dtEntityName[:0]
		p.state = stDoctypeEntityName
		return outcomeContinue, KindNone

	case stDoctypeEntityName:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			p.state = stDoctypeEntityWS2
			return outcomeContinue, KindNone
		}
		if !isNameByte(b) {
			return outcomeFatal, KindBadDoctype
		}
		p.consumeByte()
		p.dtEntityName = append(p.dtEntityName, b)
		if len(p.dtEntityName) > p.cfg.MaxNameLen {
			return outcomeFatal, KindNameTooLong
		}
		return outcomeContinue, KindNone

	case stDoctypeEntityWS2:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		if b == '"' || b == '\'' {
			p.quote = b
			p.consumeByte()
			p.dtEntityValue = p.dtEntityValue[:0]
			p.state = stDoctypeEntityValue
			return outcomeContinue, KindNone
		}
		// External or parameter entity (SYSTEM/PUBLIC/%...): not materialized,
		// only its declaration is skipped.
		p.quote = 0
		p.state = stDoctypeDeclSkip
		return outcomeContinue, KindNone

	case stDoctypeEntityValue:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b == p.quote {
			p.consumeByte()
			p.entities.define(p.dtEntityName, p.dtEntityValue)
			p.quote = 0
			p.state = stDoctypeDeclSkip
			return outcomeContinue, KindNone
		}
		p.consumeByte()
		p.dtEntityValue = append(p.dtEntityValue, b)
		if len(p.dtEntityValue) > p.cfg.MaxTextLen {
			return outcomeFatal, KindTextTooLong
		}
		return outcomeContinue, KindNone

	case stDoctypeNotationWS:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		p.dtNotationName = p.dtNotationName[:0]
		p.state = stDoctypeNotationName
		return outcomeContinue, KindNone

	case stDoctypeNotationName:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) || b == '>' {
			if len(p.dtNotationName) == 0 {
				return outcomeFatal, KindBadDoctype
			}
			if b == '>' {
				p.consumeByte()
				p.pendingEventKind = Notation
				p.state = stDoctypeSubset
				return outcomeEvent, KindNone
			}
			p.consumeByte()
			p.quote = 0
			p.state = stDoctypeNotationTail
			return outcomeContinue, KindNone
		}
		if !isNameByte(b) {
			return outcomeFatal, KindBadDoctype
		}
		p.consumeByte()
		p.dtNotationName = append(p.dtNotationName, b)
		if len(p.dtNotationName) > p.cfg.MaxNameLen {
			return outcomeFatal, KindNameTooLong
		}
		return outcomeContinue, KindNone

	case stDoctypeNotationTail:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if p.quote != 0 {
			p.consumeByte()
			if b == p.quote {
				p.quote = 0
			}
			return outcomeContinue, KindNone
		}
		switch b {
		case '"', '\'':
			p.quote = b
			p.consumeByte()
			return outcomeContinue, KindNone
		case '>':
			p.consumeByte()
			p.pendingEventKind = Notation
			p.state = stDoctypeSubset
			return outcomeEvent, KindNone
		default:
			p.consumeByte()
			return outcomeContinue, KindNone
		}

	case stDoctypeAfterSubset:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		if b != '>' {
			return outcomeFatal, KindBadDoctype
		}
		p.consumeByte()
		p.state = stScan
		return outcomeContinue, KindNone

	default:
		return outcomeFatal, KindBadDoctype
	}
}
