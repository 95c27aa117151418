package xmlstream

import "github.com/kori-labs/xmlstream/internal/xmldecl"

// entityFrame is one level of active entity-reference expansion: the
// replacement text being scanned like a secondary, in-memory ByteBuffer,
// plus how far into it the tokenizer has read. Pushed by resolveEntityRef,
// popped by popExpansionFrame once pos reaches len(data).
type entityFrame struct {
	data []byte
	pos  int
}

// Parser is the aggregate §3 "ParserInstance": the sole root entity,
// owning every other component (byteBuffer, elementStack, attrTable,
// entityTable), the tokenizer's state, and the scratch buffers backing
// the current event. A zero-value Parser is not ready to use; construct
// one with New, or reuse caller-owned storage with Reset.
type Parser struct {
	cfg      Config
	buf      *byteBuffer
	stack    *elementStack
	attrs    *attrTable
	entities *entityTable
	handler  Handler

	state  tstate
	bomIdx int
	litIdx int
	quote  byte

	isEndTag          bool
	selfClosing       bool
	hadRoot           bool
	doctypeSeen       bool
	inXMLDecl         bool
	tokenCount        int
	docEndDelivered   bool
	startDocDelivered bool

	afterCommentState tstate
	attrReturnState   tstate
	returnState       tstate

	nameBuf           []byte
	piTargetBuf       []byte
	piDataBuf         []byte
	commentBuf        []byte
	textBuf           []byte
	attrNameBuf       []byte
	attrValueBuf      []byte
	attrValueSawSpace bool
	entityRefBuf      []byte

	dtDeclKeyword  []byte
	dtEntityName   []byte
	dtEntityValue  []byte
	dtNotationName []byte

	expansion      []entityFrame
	activeEntities [][]byte

	pendingEventKind EventKind
	err              *ParseError
}

// New allocates a Parser with its own storage (spec §6 init_internal) and
// configures it with opts applied over DefaultConfig.
func New(handler Handler, opts ...Option) *Parser {
	p := &Parser{}
	p.Reset(handler, opts...)
	return p
}

// Reset (re)initializes p, installing handler and applying opts over
// DefaultConfig. Called on a caller-supplied zero-value Parser this is
// spec §6's init_external. On a Parser that has been used before, the
// existing feed buffer and scratch slices are reused via truncation
// rather than reallocated; element names, attribute names and values,
// declared entities and the predefined entity table are still copied
// into new allocations for each document.
func (p *Parser) Reset(handler Handler, opts ...Option) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	p.cfg = cfg
	p.handler = handler

	if p.buf == nil {
		p.buf = newByteBuffer(cfg.FeedBufferCapacity)
	} else {
		p.buf.reset(cfg.FeedBufferCapacity)
	}
	if p.stack == nil {
		p.stack = newElementStack(cfg.MaxElementDepth, cfg.MaxPathLen)
	} else {
		p.stack.reset(cfg.MaxElementDepth, cfg.MaxPathLen)
	}
	if p.attrs == nil {
		p.attrs = newAttrTable(cfg.MaxAttributesPerElement)
	} else {
		p.attrs.reset(cfg.MaxAttributesPerElement)
	}
	if p.entities == nil {
		p.entities = newEntityTable()
	} else {
		p.entities.reset()
	}

	p.state = stDocStart
	p.bomIdx = 0
	p.litIdx = 0
	p.quote = 0

	p.isEndTag = false
	p.selfClosing = false
	p.hadRoot = false
	p.doctypeSeen = false
	p.inXMLDecl = false
	p.tokenCount = 0
	p.docEndDelivered = false
	p.startDocDelivered = false

	p.afterCommentState = stScan
	p.attrReturnState = stScan
	p.returnState = stScan

	p.nameBuf = p.nameBuf[:0]
	p.piTargetBuf = p.piTargetBuf[:0]
	p.piDataBuf = p.piDataBuf[:0]
	p.commentBuf = p.commentBuf[:0]
	p.textBuf = p.textBuf[:0]
	p.attrNameBuf = p.attrNameBuf[:0]
	p.attrValueBuf = p.attrValueBuf[:0]
	p.attrValueSawSpace = false
	p.entityRefBuf = p.entityRefBuf[:0]

	p.dtDeclKeyword = p.dtDeclKeyword[:0]
	p.dtEntityName = p.dtEntityName[:0]
	p.dtEntityValue = p.dtEntityValue[:0]
	p.dtNotationName = p.dtNotationName[:0]

	p.expansion = p.expansion[:0]
	p.activeEntities = p.activeEntities[:0]

	p.pendingEventKind = StartDocument
	p.err = nil
}

// Feed delegates to the internal byteBuffer, never blocking and never
// driving the tokenizer (§4.1). It returns the number of bytes actually
// accepted, which may be less than len(b) if the fixed feed buffer is
// full; the host must Drive to make room before feeding the remainder.
func (p *Parser) Feed(b []byte) (int, error) {
	if p.buf.closed {
		if p.err == nil {
			p.fail(KindFeedAfterClose)
		}
		return 0, p.err
	}
	return p.buf.add(b), nil
}

// Drive advances the tokenizer until an event is delivered, the fed
// bytes are exhausted, the document ends, or an error is raised (§4.6).
func (p *Parser) Drive() DriveResult {
	if p.err != nil {
		return Error
	}
	if !p.startDocDelivered {
		p.startDocDelivered = true
		p.pendingEventKind = StartDocument
		if p.invokeHandler() == StatusAbort {
			return p.fail(KindCallbackAbort)
		}
		return Progressed
	}
	if p.state == stDocEnd {
		return Finished
	}
	for {
		outcome, kind := p.step()
		switch outcome {
		case outcomeContinue:
			continue
		case outcomeNeedMore:
			if p.buf.atCapacity() {
				return p.fail(KindBufferTooSmall)
			}
			return NeedMoreData
		case outcomeEvent:
			status := p.invokeHandler()
			p.afterDispatch()
			if status == StatusAbort {
				return p.fail(KindCallbackAbort)
			}
			return Progressed
		case outcomeFatal:
			return p.fail(kind)
		default:
			return p.fail(KindUnexpectedByte)
		}
	}
}

// Close marks p's feed buffer closed, so later Feed calls fail, and
// reports a premature close if the document had not reached DocEnd and
// no error was already pending (§4.6, §7 KindPrematureClose). The
// storage stays with p and is reused by a later Reset.
func (p *Parser) Close() error {
	if p.err == nil && p.state != stDocEnd {
		p.fail(KindPrematureClose)
	}
	p.buf.close()
	if p.err != nil {
		return p.err
	}
	return nil
}

func (p *Parser) invokeHandler() HandlerStatus {
	if p.handler == nil {
		return StatusOK
	}
	return p.handler(p)
}

// afterDispatch performs the bookkeeping that must happen only once the
// Handler invoked for pendingEventKind has returned: popping the element
// stack after an EndElement callback has seen the path still including
// that element (§4.3), truncating scratch accumulators so the next
// accumulation starts clean, and flipping to the terminal state once
// EndDocument has been delivered.
func (p *Parser) afterDispatch() {
	switch p.pendingEventKind {
	case StartElement:
		p.attrs.reset(p.cfg.MaxAttributesPerElement)
	case EndElement:
		p.stack.pop()
	case TextNode, CData:
		p.textBuf = p.textBuf[:0]
	case Comment:
		p.commentBuf = p.commentBuf[:0]
	case ProcessingInstruction:
		p.piTargetBuf = p.piTargetBuf[:0]
		p.piDataBuf = p.piDataBuf[:0]
	case Notation:
		p.dtNotationName = p.dtNotationName[:0]
	case EndDocument:
		p.state = stDocEnd
	}
}

func (p *Parser) fail(kind Kind) DriveResult {
	p.err = newParseError(kind, p.buf.line, p.buf.column, p.buf.offset)
	p.state = stErrorState
	return Error
}

// nextByte peeks the next logical byte without consuming it: the top of
// the entity-expansion stack if one is active, otherwise the feed
// buffer's readable window. ok is false when that source is exhausted.
func (p *Parser) nextByte() (byte, bool) {
	if n := len(p.expansion); n > 0 {
		fr := &p.expansion[n-1]
		if fr.pos >= len(fr.data) {
			return 0, false
		}
		return fr.data[fr.pos], true
	}
	w := p.buf.readableWindow()
	if len(w) == 0 {
		return 0, false
	}
	return w[0], true
}

// consumeByte advances past the byte nextByte last returned.
func (p *Parser) consumeByte() {
	if n := len(p.expansion); n > 0 {
		p.expansion[n-1].pos++
		return
	}
	p.buf.consume(1)
}

// finishXMLDecl validates the pseudo-attributes accumulated in p.attrs
// while scanning "<?xml ... ?>" (§6: "only version and encoding are
// recognized") and resets the table for reuse by the first real start
// tag's attributes.
func (p *Parser) finishXMLDecl() Kind {
	defer p.attrs.reset(p.cfg.MaxAttributesPerElement)

	version, ok := p.xmlDeclAttr("version")
	if !ok || string(version) != "1.0" {
		return KindBadXMLDecl
	}
	if encoding, ok := p.xmlDeclAttr("encoding"); ok {
		if !xmldecl.KnownLabel(string(encoding)) {
			return KindBadXMLDecl
		}
	}
	p.inXMLDecl = false
	return KindNone
}

func (p *Parser) xmlDeclAttr(name string) ([]byte, bool) {
	for i := 0; i < p.attrs.count(); i++ {
		if string(p.attrs.name(i)) == name {
			return p.attrs.value(i), true
		}
	}
	return nil, false
}

// Event returns the kind of the event currently live during Handler.
func (p *Parser) Event() EventKind { return p.pendingEventKind }

// ElementName returns the local name for a StartElement/EndElement
// event. The returned slice is borrowed; copy it to retain past
// Handler's return.
func (p *Parser) ElementName() []byte { return p.nameBuf }

// Path returns the live "/a/b/c" path of open elements. At a
// StartElement or EndElement callback it ends with "/"+ElementName().
func (p *Parser) Path() []byte { return p.stack.currentPath() }

// AttrCount returns the number of attributes on the current
// StartElement event.
func (p *Parser) AttrCount() int { return p.attrs.count() }

// AttrName returns the i'th attribute's name, or nil if i is out of range.
func (p *Parser) AttrName(i int) []byte { return p.attrs.name(i) }

// AttrValue returns the i'th attribute's normalized value, or nil if i
// is out of range.
func (p *Parser) AttrValue(i int) []byte { return p.attrs.value(i) }

// Text returns the coalesced character data for a TextNode event, or the
// literal content for a CData event; the two event kinds share this
// accessor since both carry plain text payloads distinguished only by
// Event().
func (p *Parser) Text() []byte { return p.textBuf }

// Comment returns the text between "<!--" and "-->" for a Comment event.
func (p *Parser) Comment() []byte { return p.commentBuf }

// PITarget returns a ProcessingInstruction event's target name.
func (p *Parser) PITarget() []byte { return p.piTargetBuf }

// PIData returns a ProcessingInstruction event's data.
func (p *Parser) PIData() []byte { return p.piDataBuf }

// NotationName returns a Notation event's declared name.
func (p *Parser) NotationName() []byte { return p.dtNotationName }

// Err returns the sticky parse error once Drive has returned Error, or
// nil otherwise.
func (p *Parser) Err() *ParseError { return p.err }
