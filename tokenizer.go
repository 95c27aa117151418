package xmlstream

import "bytes"

// tokenizer.go is the resumable state machine this package is built
// around: between any two consumed bytes it may suspend, and a later
// Drive must resume with identical semantics. Unlike a read-a-chunk-then-
// scan-for-matched-brackets design built around a blocking io.Reader, this
// scanner processes exactly one logical byte per step() call against a
// flat state enum, since the host may feed a single byte at a time and all
// progress must be capturable in named struct fields rather than a
// suspended call stack.
//
// State is split across this file (content/tag/comment/CDATA/PI) and
// tokenizer_doctype.go (the DOCTYPE internal-subset sub-lexer) and
// tokenizer_entity.go (the entity-reference sub-state shared by text and
// attribute-value scanning). All three dispatch through the same step().

type tstate int

const (
	stDocStart tstate = iota // optional UTF-8 BOM, then Prolog
	stScan                   // unified Prolog/Content/Epilog text+markup dispatch
	stLt                     // saw '<'
	stBang                   // saw "<!"

	stCommentDash1    // saw "<!-", expect second '-'
	stCommentBody     // accumulating comment text
	stCommentDash     // saw one '-' inside comment body
	stCommentDashDash // saw "--" inside comment body, must be followed by '>'

	stCDataLit      // matching "CDATA[" after "<!["
	stCDataBody     // accumulating CDATA content
	stCDataBracket1 // saw one ']' inside CDATA
	stCDataBracket2 // saw "]]" inside CDATA

	stPITarget   // accumulating a PI/XMLDecl target name
	stPITargetWS // whitespace after a non-XMLDecl PI target
	stPIData     // accumulating PI data
	stPIQuestion // saw '?' inside PI data, expect '>'

	stXMLDeclWS    // scanning XML declaration pseudo-attributes
	stXMLDeclClose // saw '?' while expecting XML declaration close

	stTagName    // accumulating a start- or end-tag name (p.isEndTag disambiguates)
	stEndTagWS   // whitespace/`>` after an end-tag name
	stStartTagWS // whitespace/attrs/`/`/`>` after a start-tag name
	stSelfCloseSlash
	stSelfCloseEnd // synthesizes the EndElement for a self-closing tag

	stAttrName
	stAttrEqWS
	stAttrValueWS
	stAttrValueBody

	stEntityRefName // accumulating an entity/char reference name between '&' and ';'

	stDoctypeLit         // matching "OCTYPE" after "<!D"
	stDoctypeBeforeName  // whitespace before the DOCTYPE root name
	stDoctypeExternalID  // skipping root name / PUBLIC/SYSTEM identifiers
	stDoctypeSubset      // inside the internal subset "[ ... ]"
	stDoctypeDeclLt      // saw '<' inside the internal subset
	stDoctypeBangSeen    // saw "<!" inside the internal subset
	stDoctypeDeclKeyword // accumulating ENTITY/NOTATION/... keyword
	stDoctypeDeclSkip    // skipping an unsupported declaration to its '>'
	stDoctypeEntityWS
	stDoctypeEntityName
	stDoctypeEntityWS2
	stDoctypeEntityValue
	stDoctypeNotationWS
	stDoctypeNotationName
	stDoctypeNotationTail
	stDoctypeAfterSubset // after ']', whitespace before the final '>'

	stDocEnd // terminal: document fully delivered
	stErrorState
)

var cdataEndMarker = []byte("]]>")

const doctypeLitTail = "OCTYPE"
const cdataLitTail = "CDATA["

// stepOutcome is step()'s result; Drive interprets it into a DriveResult.
type stepOutcome int

const (
	outcomeContinue stepOutcome = iota
	outcomeNeedMore
	outcomeEvent
	outcomeFatal
)

// isNameStartByte is the byte-level, permissive analogue of
// isNameStartChar: any byte at or above 0x80 is presumed to be the lead
// (or a continuation) byte of a valid multi-byte NameStartChar, since this
// tokenizer classifies Name bytes without decoding full runes. This is a
// deliberate simplification consistent with permissive UTF-8 pass-through.
func isNameStartByte(b byte) bool {
	if b < 0x80 {
		return isNameStartChar(rune(b))
	}
	return true
}

func isNameByte(b byte) bool {
	if b < 0x80 {
		return isNameChar(rune(b))
	}
	return true
}

// isReservedTarget reports whether name is a case-insensitive match for
// "xml", the reserved PI target family.
func isReservedTarget(name []byte) bool {
	if len(name) != 3 {
		return false
	}
	return lower(name[0]) == 'x' && lower(name[1]) == 'm' && lower(name[2]) == 'l'
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// popExpansionFrame discards the innermost exhausted entity-expansion
// frame and its matching active-name entry.
func (p *Parser) popExpansionFrame() {
	n := len(p.expansion)
	if n == 0 {
		return
	}
	p.expansion = p.expansion[:n-1]
	p.activeEntities = p.activeEntities[:len(p.activeEntities)-1]
}

// step advances the tokenizer by exactly one logical byte (or, for
// zero-width transitions such as a synthesized end tag, by zero bytes),
// returning what Drive's loop should do next.
func (p *Parser) step() (stepOutcome, Kind) {
	switch p.state {

	case stDocStart:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		switch p.bomIdx {
		case 0:
			if b == 0xEF {
				p.consumeByte()
				p.bomIdx = 1
				return outcomeContinue, KindNone
			}
			p.state = stScan
			return outcomeContinue, KindNone
		case 1:
			if b != 0xBB {
				return outcomeFatal, KindUnexpectedByte
			}
			p.consumeByte()
			p.bomIdx = 2
			return outcomeContinue, KindNone
		default: // 2
			if b != 0xBF {
				return outcomeFatal, KindUnexpectedByte
			}
			p.consumeByte()
			p.bomIdx = 3
			p.state = stScan
			return outcomeContinue, KindNone
		}

	case stScan:
		return p.stepScan()

	case stLt:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		switch b {
		case '/':
			p.consumeByte()
			p.isEndTag = true
			p.nameBuf = p.nameBuf[:0]
			p.state = stTagName
			return outcomeContinue, KindNone
		case '!':
			p.consumeByte()
			p.state = stBang
			return outcomeContinue, KindNone
		case '?':
			p.consumeByte()
			p.piTargetBuf = p.piTargetBuf[:0]
			p.state = stPITarget
			return outcomeContinue, KindNone
		default:
			if !isNameStartByte(b) {
				return outcomeFatal, KindUnexpectedByte
			}
			p.isEndTag = false
			p.nameBuf = p.nameBuf[:0]
			p.attrs.reset(p.cfg.MaxAttributesPerElement)
			p.state = stTagName
			return outcomeContinue, KindNone
		}

	case stBang:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		switch b {
		case '-':
			p.consumeByte()
			p.afterCommentState = stScan
			p.state = stCommentDash1
			return outcomeContinue, KindNone
		case '[':
			if p.stack.depth() == 0 {
				return outcomeFatal, KindUnexpectedByte
			}
			p.consumeByte()
			p.litIdx = 0
			p.state = stCDataLit
			return outcomeContinue, KindNone
		case 'D':
			if p.stack.depth() > 0 || p.hadRoot || p.doctypeSeen {
				return outcomeFatal, KindBadDoctype
			}
			p.doctypeSeen = true
			p.consumeByte()
			p.litIdx = 0
			p.state = stDoctypeLit
			return outcomeContinue, KindNone
		default:
			return outcomeFatal, KindUnexpectedByte
		}

	case stCommentDash1:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b != '-' {
			return outcomeFatal, KindBadComment
		}
		p.consumeByte()
		p.commentBuf = p.commentBuf[:0]
		p.state = stCommentBody
		return outcomeContinue, KindNone

	case stCommentBody:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b == '-' {
			p.consumeByte()
			p.state = stCommentDash
			return outcomeContinue, KindNone
		}
		if b < 0x80 && isRestrictedChar(rune(b)) {
			return outcomeFatal, KindBadComment
		}
		p.consumeByte()
		p.commentBuf = append(p.commentBuf, b)
		if len(p.commentBuf) > p.cfg.MaxTextLen {
			return outcomeFatal, KindTextTooLong
		}
		return outcomeContinue, KindNone

	case stCommentDash:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b == '-' {
			p.consumeByte()
			p.state = stCommentDashDash
			return outcomeContinue, KindNone
		}
		p.consumeByte()
		p.commentBuf = append(p.commentBuf, '-', b)
		p.state = stCommentBody
		return outcomeContinue, KindNone

	case stCommentDashDash:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b != '>' {
			return outcomeFatal, KindBadComment
		}
		p.consumeByte()
		p.pendingEventKind = Comment
		p.state = p.afterCommentState
		return outcomeEvent, KindNone

	case stCDataLit:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b != cdataLitTail[p.litIdx] {
			return outcomeFatal, KindBadCData
		}
		p.consumeByte()
		p.litIdx++
		if p.litIdx == len(cdataLitTail) {
			p.textBuf = p.textBuf[:0]
			p.state = stCDataBody
		}
		return outcomeContinue, KindNone

	case stCDataBody:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b == ']' {
			p.consumeByte()
			p.state = stCDataBracket1
			return outcomeContinue, KindNone
		}
		p.consumeByte()
		p.textBuf = append(p.textBuf, b)
		if len(p.textBuf) >= p.cfg.MaxTextLen {
			p.pendingEventKind = CData
			return outcomeEvent, KindNone
		}
		return outcomeContinue, KindNone

	case stCDataBracket1:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b == ']' {
			p.consumeByte()
			p.state = stCDataBracket2
			return outcomeContinue, KindNone
		}
		p.consumeByte()
		p.textBuf = append(p.textBuf, ']', b)
		p.state = stCDataBody
		if len(p.textBuf) >= p.cfg.MaxTextLen {
			p.pendingEventKind = CData
			return outcomeEvent, KindNone
		}
		return outcomeContinue, KindNone

	case stCDataBracket2:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b == '>' {
			p.consumeByte()
			p.pendingEventKind = CData
			p.state = stScan
			return outcomeEvent, KindNone
		}
		p.textBuf = append(p.textBuf, ']')
		p.state = stCDataBracket1
		if len(p.textBuf) >= p.cfg.MaxTextLen {
			p.pendingEventKind = CData
			return outcomeEvent, KindNone
		}
		return outcomeContinue, KindNone

	case stPITarget:
		return p.stepPITarget()
	case stPITargetWS:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		p.piDataBuf = p.piDataBuf[:0]
		p.state = stPIData
		return outcomeContinue, KindNone
	case stPIData:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b == '?' {
			p.consumeByte()
			p.state = stPIQuestion
			return outcomeContinue, KindNone
		}
		p.consumeByte()
		p.piDataBuf = append(p.piDataBuf, b)
		if len(p.piDataBuf) > p.cfg.MaxTextLen {
			return outcomeFatal, KindTextTooLong
		}
		return outcomeContinue, KindNone
	case stPIQuestion:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b == '>' {
			p.consumeByte()
			p.pendingEventKind = ProcessingInstruction
			p.state = stScan
			return outcomeEvent, KindNone
		}
		p.piDataBuf = append(p.piDataBuf, '?')
		p.state = stPIData
		return outcomeContinue, KindNone

	case stXMLDeclWS:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		if b == '?' {
			p.consumeByte()
			p.state = stXMLDeclClose
			return outcomeContinue, KindNone
		}
		if isNameStartByte(b) {
			p.attrNameBuf = p.attrNameBuf[:0]
			p.attrReturnState = stXMLDeclWS
			p.state = stAttrName
			return outcomeContinue, KindNone
		}
		return outcomeFatal, KindBadXMLDecl

	case stXMLDeclClose:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b != '>' {
			return outcomeFatal, KindBadXMLDecl
		}
		p.consumeByte()
		if kind := p.finishXMLDecl(); kind != KindNone {
			return outcomeFatal, kind
		}
		p.state = stScan
		return outcomeContinue, KindNone

	case stTagName:
		return p.stepTagName()
	case stEndTagWS:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		if b != '>' {
			return outcomeFatal, KindUnexpectedByte
		}
		p.consumeByte()
		top := p.stack.top()
		if top == nil || !bytes.Equal(top, p.nameBuf) {
			return outcomeFatal, KindMismatchedTag
		}
		p.pendingEventKind = EndElement
		p.state = stScan
		return outcomeEvent, KindNone

	case stStartTagWS:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		if b == '/' {
			p.consumeByte()
			p.selfClosing = true
			p.state = stSelfCloseSlash
			return outcomeContinue, KindNone
		}
		if b == '>' {
			p.consumeByte()
			return p.finishStartTag()
		}
		if isNameStartByte(b) {
			p.attrNameBuf = p.attrNameBuf[:0]
			p.attrReturnState = stStartTagWS
			p.state = stAttrName
			return outcomeContinue, KindNone
		}
		return outcomeFatal, KindBadAttribute

	case stSelfCloseSlash:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if b != '>' {
			return outcomeFatal, KindUnexpectedByte
		}
		p.consumeByte()
		return p.finishStartTag()

	case stSelfCloseEnd:
		p.pendingEventKind = EndElement
		p.state = stScan
		return outcomeEvent, KindNone

	case stAttrName:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			p.state = stAttrEqWS
			return outcomeContinue, KindNone
		}
		if b == '=' {
			p.consumeByte()
			p.state = stAttrValueWS
			return outcomeContinue, KindNone
		}
		if b == '"' || b == '\'' || b == '<' || b == '>' || b == '/' {
			return outcomeFatal, KindBadAttribute
		}
		p.consumeByte()
		p.attrNameBuf = append(p.attrNameBuf, b)
		if len(p.attrNameBuf) > p.cfg.MaxNameLen {
			return outcomeFatal, KindNameTooLong
		}
		return outcomeContinue, KindNone

	case stAttrEqWS:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		if b != '=' {
			return outcomeFatal, KindBadAttribute
		}
		p.consumeByte()
		p.state = stAttrValueWS
		return outcomeContinue, KindNone

	case stAttrValueWS:
		b, ok := p.nextByte()
		if !ok {
			return outcomeNeedMore, KindNone
		}
		if isWhitespace(b) {
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		if b != '"' && b != '\'' {
			return outcomeFatal, KindBadAttribute
		}
		p.quote = b
		p.consumeByte()
		p.attrValueBuf = p.attrValueBuf[:0]
		p.attrValueSawSpace = false
		p.state = stAttrValueBody
		return outcomeContinue, KindNone

	case stAttrValueBody:
		return p.stepAttrValueBody()

	case stEntityRefName:
		return p.stepEntityRefName()

	case stDoctypeLit, stDoctypeBeforeName, stDoctypeExternalID, stDoctypeSubset,
		stDoctypeDeclLt, stDoctypeBangSeen, stDoctypeDeclKeyword, stDoctypeDeclSkip,
		stDoctypeEntityWS, stDoctypeEntityName, stDoctypeEntityWS2, stDoctypeEntityValue,
		stDoctypeNotationWS, stDoctypeNotationName, stDoctypeNotationTail, stDoctypeAfterSubset:
		return p.stepDoctype()

	case stDocEnd:
		return outcomeContinue, KindNone

	default:
		return outcomeFatal, KindUnexpectedByte
	}
}

// stepScan implements the unified Prolog/Content/Epilog dispatch described
// in the file header. When an entity expansion is active, every byte
// (including '<') is literal data save for a nested '&' (replacement text
// is re-fed through the same scanner, but never re-interpreted as markup);
// otherwise normal markup recognition applies.
func (p *Parser) stepScan() (stepOutcome, Kind) {
	if len(p.expansion) > 0 {
		b, ok := p.nextByte()
		if !ok {
			p.popExpansionFrame()
			return outcomeContinue, KindNone
		}
		if b == '&' {
			p.consumeByte()
			p.returnState = stScan
			p.entityRefBuf = p.entityRefBuf[:0]
			p.state = stEntityRefName
			return outcomeContinue, KindNone
		}
		p.consumeByte()
		if b < 0x80 && isRestrictedChar(rune(b)) {
			return outcomeFatal, KindIllegalChar
		}
		p.textBuf = append(p.textBuf, b)
		if bytes.HasSuffix(p.textBuf, cdataEndMarker) {
			return outcomeFatal, KindCDataEndInText
		}
		if len(p.textBuf) >= p.cfg.MaxTextLen {
			p.pendingEventKind = TextNode
			return outcomeEvent, KindNone
		}
		return outcomeContinue, KindNone
	}

	b, ok := p.nextByte()
	if !ok {
		if p.stack.depth() == 0 && p.hadRoot && !p.docEndDelivered {
			p.pendingEventKind = EndDocument
			p.docEndDelivered = true
			return outcomeEvent, KindNone
		}
		return outcomeNeedMore, KindNone
	}

	switch b {
	case '<':
		if len(p.textBuf) > 0 {
			p.pendingEventKind = TextNode
			return outcomeEvent, KindNone // '<' left unconsumed
		}
		p.consumeByte()
		p.afterCommentState = stScan
		p.state = stLt
		return outcomeContinue, KindNone
	case '&':
		if p.stack.depth() == 0 {
			return outcomeFatal, KindContentBeforeRoot
		}
		p.consumeByte()
		p.returnState = stScan
		p.entityRefBuf = p.entityRefBuf[:0]
		p.state = stEntityRefName
		return outcomeContinue, KindNone
	default:
		if p.stack.depth() == 0 {
			if !isWhitespace(b) {
				return outcomeFatal, KindContentBeforeRoot
			}
			p.consumeByte()
			return outcomeContinue, KindNone
		}
		if b < 0x80 && isRestrictedChar(rune(b)) {
			return outcomeFatal, KindIllegalChar
		}
		p.consumeByte()
		p.textBuf = append(p.textBuf, b)
		if bytes.HasSuffix(p.textBuf, cdataEndMarker) {
			return outcomeFatal, KindCDataEndInText
		}
		if len(p.textBuf) >= p.cfg.MaxTextLen {
			p.pendingEventKind = TextNode
			return outcomeEvent, KindNone
		}
		return outcomeContinue, KindNone
	}
}

func (p *Parser) stepPITarget() (stepOutcome, Kind) {
	b, ok := p.nextByte()
	if !ok {
		return outcomeNeedMore, KindNone
	}
	if isWhitespace(b) || b == '?' {
		if len(p.piTargetBuf) == 0 {
			return outcomeFatal, KindBadPI
		}
		if isReservedTarget(p.piTargetBuf) {
			// Only a "<?xml" occupying the document's first five bytes
			// (after an optional BOM) is the XML declaration.
			if p.buf.offset == int64(p.bomIdx)+int64(len("<?xml")) && string(p.piTargetBuf) == "xml" {
				p.inXMLDecl = true
			} else {
				return outcomeFatal, KindReservedPITarget
			}
		}
		consumed := false
		if isWhitespace(b) {
			p.consumeByte()
			consumed = true
		}
		if p.inXMLDecl {
			p.state = stXMLDeclWS
		} else if consumed {
			p.state = stPITargetWS
		} else {
			p.piDataBuf = p.piDataBuf[:0]
			p.state = stPIData
		}
		return outcomeContinue, KindNone
	}
	if !isNameByte(b) {
		return outcomeFatal, KindBadPI
	}
	p.consumeByte()
	p.piTargetBuf = append(p.piTargetBuf, b)
	if len(p.piTargetBuf) > p.cfg.MaxNameLen {
		return outcomeFatal, KindNameTooLong
	}
	return outcomeContinue, KindNone
}

func (p *Parser) stepTagName() (stepOutcome, Kind) {
	b, ok := p.nextByte()
	if !ok {
		return outcomeNeedMore, KindNone
	}
	if isWhitespace(b) || b == '>' || b == '/' {
		if len(p.nameBuf) == 0 {
			return outcomeFatal, KindUnexpectedByte
		}
		if isWhitespace(b) {
			p.consumeByte()
			if p.isEndTag {
				p.state = stEndTagWS
			} else {
				p.state = stStartTagWS
			}
			return outcomeContinue, KindNone
		}
		// b == '>' or '/': leave the delimiter unconsumed for the next state.
		if p.isEndTag {
			p.state = stEndTagWS
		} else {
			p.state = stStartTagWS
		}
		return outcomeContinue, KindNone
	}
	if !isNameByte(b) {
		return outcomeFatal, KindUnexpectedByte
	}
	p.consumeByte()
	p.nameBuf = append(p.nameBuf, b)
	if len(p.nameBuf) > p.cfg.MaxNameLen {
		return outcomeFatal, KindNameTooLong
	}
	return outcomeContinue, KindNone
}

func (p *Parser) finishStartTag() (stepOutcome, Kind) {
	if p.stack.depth() == 0 && p.hadRoot {
		return outcomeFatal, KindMultipleRoots
	}
	if kind := p.stack.push(p.nameBuf); kind != KindNone {
		return outcomeFatal, kind
	}
	p.hadRoot = true
	p.tokenCount++
	p.pendingEventKind = StartElement
	if p.selfClosing {
		p.state = stSelfCloseEnd
	} else {
		p.state = stScan
	}
	return outcomeEvent, KindNone
}

func (p *Parser) stepAttrValueBody() (stepOutcome, Kind) {
	if len(p.expansion) > 0 {
		b, ok := p.nextByte()
		if !ok {
			p.popExpansionFrame()
			return outcomeContinue, KindNone
		}
		if b == '&' {
			p.consumeByte()
			p.returnState = stAttrValueBody
			p.entityRefBuf = p.entityRefBuf[:0]
			p.state = stEntityRefName
			return outcomeContinue, KindNone
		}
		p.consumeByte()
		p.appendAttrValueByte(b)
		if len(p.attrValueBuf) > p.cfg.MaxTextLen {
			return outcomeFatal, KindTextTooLong
		}
		return outcomeContinue, KindNone
	}

	b, ok := p.nextByte()
	if !ok {
		return outcomeNeedMore, KindNone
	}
	if b == p.quote {
		p.consumeByte()
		kind := p.attrs.add(p.attrNameBuf, p.attrValueBuf)
		p.quote = 0
		if kind != KindNone {
			return outcomeFatal, kind
		}
		p.state = p.attrReturnState
		return outcomeContinue, KindNone
	}
	if b == '<' {
		return outcomeFatal, KindBadAttribute
	}
	if b == '&' {
		p.consumeByte()
		p.returnState = stAttrValueBody
		p.entityRefBuf = p.entityRefBuf[:0]
		p.state = stEntityRefName
		return outcomeContinue, KindNone
	}
	p.consumeByte()
	p.appendAttrValueByte(b)
	if len(p.attrValueBuf) > p.cfg.MaxTextLen {
		return outcomeFatal, KindTextTooLong
	}
	return outcomeContinue, KindNone
}

func (p *Parser) appendAttrValueByte(b byte) {
	if isWhitespace(b) {
		if !p.attrValueSawSpace {
			p.attrValueBuf = append(p.attrValueBuf, ' ')
			p.attrValueSawSpace = true
		}
		return
	}
	p.attrValueSawSpace = false
	p.attrValueBuf = append(p.attrValueBuf, b)
}
