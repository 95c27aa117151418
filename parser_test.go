package xmlstream_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kori-labs/xmlstream"
)

// recordedEvent is a deep copy of everything a Handler could observe
// during one callback; Parser's own accessors return borrowed slices
// that die at Handler return, so tests snapshot into plain strings.
type recordedEvent struct {
	Kind  xmlstream.EventKind
	Name  string
	Path  string
	Text  string
	Attrs [][2]string
}

func recordHandler(events *[]recordedEvent) xmlstream.Handler {
	return func(p *xmlstream.Parser) xmlstream.HandlerStatus {
		ev := recordedEvent{Kind: p.Event(), Path: string(p.Path())}
		switch p.Event() {
		case xmlstream.StartElement, xmlstream.EndElement:
			ev.Name = string(p.ElementName())
			for i := 0; i < p.AttrCount(); i++ {
				ev.Attrs = append(ev.Attrs, [2]string{string(p.AttrName(i)), string(p.AttrValue(i))})
			}
		case xmlstream.TextNode, xmlstream.CData:
			ev.Text = string(p.Text())
		case xmlstream.Comment:
			ev.Text = string(p.Comment())
		case xmlstream.ProcessingInstruction:
			ev.Name = string(p.PITarget())
			ev.Text = string(p.PIData())
		case xmlstream.Notation:
			ev.Name = string(p.NotationName())
		}
		*events = append(*events, ev)
		return xmlstream.StatusOK
	}
}

// runDocument feeds doc through a fresh Parser chunkSize bytes at a time
// (chunkSize <= 0 means "whole document in one Feed"), driving until
// Finished or Error, and returns every event delivered plus the final
// Drive result and the Parser itself (for Err()).
func runDocument(t *testing.T, doc []byte, chunkSize int, opts ...xmlstream.Option) ([]recordedEvent, xmlstream.DriveResult, *xmlstream.Parser) {
	t.Helper()
	if chunkSize <= 0 {
		chunkSize = len(doc) + 1
	}
	var events []recordedEvent
	p := xmlstream.New(recordHandler(&events), opts...)

	pos := 0
	for {
		result := p.Drive()
		switch result {
		case xmlstream.Finished, xmlstream.Error:
			return events, result, p
		case xmlstream.Progressed:
			continue
		case xmlstream.NeedMoreData:
			if pos >= len(doc) {
				return events, result, p
			}
			end := pos + chunkSize
			if end > len(doc) {
				end = len(doc)
			}
			n, err := p.Feed(doc[pos:end])
			require.NoError(t, err)
			require.Greater(t, n, 0)
			pos += n
		}
	}
}

func TestS1SelfClosingElement(t *testing.T) {
	events, result, _ := runDocument(t, []byte(`<a/>`), 0)
	assert.Equal(t, xmlstream.Finished, result)
	want := []recordedEvent{
		{Kind: xmlstream.StartDocument},
		{Kind: xmlstream.StartElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.EndElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.EndDocument},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestS2ElementWithText(t *testing.T) {
	events, result, _ := runDocument(t, []byte(`<a>hi</a>`), 0)
	assert.Equal(t, xmlstream.Finished, result)
	want := []recordedEvent{
		{Kind: xmlstream.StartDocument},
		{Kind: xmlstream.StartElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.TextNode, Text: "hi", Path: "/a"},
		{Kind: xmlstream.EndElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.EndDocument},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestS3AttributesBothQuoteStyles(t *testing.T) {
	events, result, _ := runDocument(t, []byte(`<a x="1" y='2'/>`), 0)
	assert.Equal(t, xmlstream.Finished, result)
	want := []recordedEvent{
		{Kind: xmlstream.StartDocument},
		{Kind: xmlstream.StartElement, Name: "a", Path: "/a", Attrs: [][2]string{{"x", "1"}, {"y", "2"}}},
		{Kind: xmlstream.EndElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.EndDocument},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestS4PredefinedEntities(t *testing.T) {
	events, result, _ := runDocument(t, []byte(`<a>&lt;&amp;&gt;</a>`), 0)
	assert.Equal(t, xmlstream.Finished, result)
	want := []recordedEvent{
		{Kind: xmlstream.StartDocument},
		{Kind: xmlstream.StartElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.TextNode, Text: "<&>", Path: "/a"},
		{Kind: xmlstream.EndElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.EndDocument},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestS5CommentAndCData(t *testing.T) {
	events, result, _ := runDocument(t, []byte(`<a><!-- c --><![CDATA[<raw>]]></a>`), 0)
	assert.Equal(t, xmlstream.Finished, result)
	want := []recordedEvent{
		{Kind: xmlstream.StartDocument},
		{Kind: xmlstream.StartElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.Comment, Text: " c ", Path: "/a"},
		{Kind: xmlstream.CData, Text: "<raw>", Path: "/a"},
		{Kind: xmlstream.EndElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.EndDocument},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestS6MismatchedEndTag(t *testing.T) {
	events, result, p := runDocument(t, []byte(`<a></b>`), 0)
	assert.Equal(t, xmlstream.Error, result)
	require.NotEmpty(t, events)
	assert.Equal(t, xmlstream.StartElement, events[len(events)-1].Kind)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindMismatchedTag, p.Err().Kind)
	assert.Equal(t, 1, p.Err().Line)
}

func TestS7FeedGranularityInvariance(t *testing.T) {
	doc := []byte(`<a x="1" y='2'/>`)
	whole, wholeResult, _ := runDocument(t, doc, 0)
	byByte, byteResult, _ := runDocument(t, doc, 1)
	assert.Equal(t, wholeResult, byteResult)
	if diff := cmp.Diff(whole, byByte); diff != "" {
		t.Fatalf("feed-granularity mismatch (-whole +byByte):\n%s", diff)
	}
}

func TestNestedElementsAndPath(t *testing.T) {
	events, result, _ := runDocument(t, []byte(`<a><b><c/></b></a>`), 3)
	assert.Equal(t, xmlstream.Finished, result)
	want := []recordedEvent{
		{Kind: xmlstream.StartDocument},
		{Kind: xmlstream.StartElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.StartElement, Name: "b", Path: "/a/b"},
		{Kind: xmlstream.StartElement, Name: "c", Path: "/a/b/c"},
		{Kind: xmlstream.EndElement, Name: "c", Path: "/a/b/c"},
		{Kind: xmlstream.EndElement, Name: "b", Path: "/a/b"},
		{Kind: xmlstream.EndElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.EndDocument},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestProcessingInstruction(t *testing.T) {
	events, result, _ := runDocument(t, []byte(`<a><?target data here?></a>`), 0)
	assert.Equal(t, xmlstream.Finished, result)
	want := []recordedEvent{
		{Kind: xmlstream.StartDocument},
		{Kind: xmlstream.StartElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.ProcessingInstruction, Name: "target", Text: "data here", Path: "/a"},
		{Kind: xmlstream.EndElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.EndDocument},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestXMLDeclarationNotDeliveredAsEvent(t *testing.T) {
	events, result, _ := runDocument(t, []byte(`<?xml version="1.0" encoding="UTF-8"?><a/>`), 7)
	assert.Equal(t, xmlstream.Finished, result)
	want := []recordedEvent{
		{Kind: xmlstream.StartDocument},
		{Kind: xmlstream.StartElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.EndElement, Name: "a", Path: "/a"},
		{Kind: xmlstream.EndDocument},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestBadXMLDeclarationVersion(t *testing.T) {
	_, result, p := runDocument(t, []byte(`<?xml version="2.0"?><a/>`), 0)
	assert.Equal(t, xmlstream.Error, result)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindBadXMLDecl, p.Err().Kind)
}

func TestBadXMLDeclarationEncoding(t *testing.T) {
	_, result, p := runDocument(t, []byte(`<?xml version="1.0" encoding="not-a-real-charset"?><a/>`), 0)
	assert.Equal(t, xmlstream.Error, result)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindBadXMLDecl, p.Err().Kind)
}

func TestDoctypeEntityAndNotation(t *testing.T) {
	doc := []byte(`<!DOCTYPE note [
  <!ENTITY writer "Ann">
  <!NOTATION gif SYSTEM "viewer.exe">
]>
<note>&writer;</note>`)
	events, result, _ := runDocument(t, doc, 5)
	assert.Equal(t, xmlstream.Finished, result)

	var sawNotation, sawText bool
	for _, ev := range events {
		switch ev.Kind {
		case xmlstream.Notation:
			sawNotation = true
			assert.Equal(t, "gif", ev.Name)
		case xmlstream.TextNode:
			sawText = true
			assert.Equal(t, "Ann", ev.Text)
		}
	}
	assert.True(t, sawNotation, "expected a Notation event")
	assert.True(t, sawText, "expected entity-expanded text")
}

func TestDuplicateAttributeIsError(t *testing.T) {
	_, result, p := runDocument(t, []byte(`<a x="1" x="2"/>`), 0)
	assert.Equal(t, xmlstream.Error, result)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindDuplicateAttribute, p.Err().Kind)
}

func TestMultipleRootsIsError(t *testing.T) {
	_, result, p := runDocument(t, []byte(`<a/><b/>`), 0)
	assert.Equal(t, xmlstream.Error, result)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindMultipleRoots, p.Err().Kind)
}

func TestContentBeforeRootIsError(t *testing.T) {
	_, result, p := runDocument(t, []byte(`stray<a/>`), 0)
	assert.Equal(t, xmlstream.Error, result)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindContentBeforeRoot, p.Err().Kind)
}

func TestCDataEndMarkerInTextIsError(t *testing.T) {
	_, result, p := runDocument(t, []byte(`<a>]]></a>`), 0)
	assert.Equal(t, xmlstream.Error, result)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindCDataEndInText, p.Err().Kind)
}

func TestUndefinedEntityIsError(t *testing.T) {
	_, result, p := runDocument(t, []byte(`<a>&bogus;</a>`), 0)
	assert.Equal(t, xmlstream.Error, result)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindUndefinedEntity, p.Err().Kind)
}

func TestEntityLoopIsError(t *testing.T) {
	doc := []byte(`<!DOCTYPE a [
  <!ENTITY x "&y;">
  <!ENTITY y "&x;">
]>
<a>&x;</a>`)
	_, result, p := runDocument(t, doc, 0)
	assert.Equal(t, xmlstream.Error, result)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindEntityLoop, p.Err().Kind)
}

func TestNestingTooDeep(t *testing.T) {
	doc := []byte(`<a><b><c/></b></a>`)
	_, result, p := runDocument(t, doc, 0, xmlstream.WithMaxElementDepth(2))
	assert.Equal(t, xmlstream.Error, result)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindNestingTooDeep, p.Err().Kind)
}

// The tokenizer consumes at most one byte per step and never needs more
// than one byte of lookahead at a time (that's what makes it resumable
// at every byte boundary), so a tiny feed buffer never actually starves
// it of lookahead; it only forces more, smaller Feed calls for the same
// result. KindBufferTooSmall stays in the taxonomy as a defensive
// backstop rather than a reachable path under this design.
func TestTinyFeedBufferCapacityStillParses(t *testing.T) {
	doc := []byte(`<averylongelementnamethatoverflows attr="value"/>`)
	events, result, _ := runDocument(t, doc, 1, xmlstream.WithFeedBufferCapacity(4))
	assert.Equal(t, xmlstream.Finished, result)
	require.Len(t, events, 4)
	assert.Equal(t, "averylongelementnamethatoverflows", events[1].Name)
}

func TestTextChunkingIsDeterministic(t *testing.T) {
	doc := []byte(`<a>abcdefghij</a>`)
	events, result, _ := runDocument(t, doc, 0, xmlstream.WithMaxTextLen(4))
	assert.Equal(t, xmlstream.Finished, result)

	var chunks []string
	for _, ev := range events {
		if ev.Kind == xmlstream.TextNode {
			chunks = append(chunks, ev.Text)
		}
	}
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, chunks)
}

func TestCallbackAbortIsSticky(t *testing.T) {
	p := xmlstream.New(func(p *xmlstream.Parser) xmlstream.HandlerStatus {
		if p.Event() == xmlstream.StartElement {
			return xmlstream.StatusAbort
		}
		return xmlstream.StatusOK
	})
	_, err := p.Feed([]byte(`<a/>`))
	require.NoError(t, err)

	var last xmlstream.DriveResult
	for i := 0; i < 4; i++ {
		last = p.Drive()
		if last == xmlstream.Error {
			break
		}
	}
	assert.Equal(t, xmlstream.Error, last)
	require.NotNil(t, p.Err())
	assert.Equal(t, xmlstream.KindCallbackAbort, p.Err().Kind)

	again := p.Drive()
	assert.Equal(t, xmlstream.Error, again)
	assert.Equal(t, p.Err(), p.Err())
}

func TestPrematureCloseIsReported(t *testing.T) {
	p := xmlstream.New(func(*xmlstream.Parser) xmlstream.HandlerStatus { return xmlstream.StatusOK })
	_, err := p.Feed([]byte(`<a>`))
	require.NoError(t, err)
	require.Equal(t, xmlstream.Progressed, p.Drive()) // StartDocument
	require.Equal(t, xmlstream.Progressed, p.Drive()) // StartElement a

	err = p.Close()
	require.Error(t, err)
	var pe *xmlstream.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, xmlstream.KindPrematureClose, pe.Kind)
}

func TestFeedAfterCloseIsReported(t *testing.T) {
	p := xmlstream.New(func(*xmlstream.Parser) xmlstream.HandlerStatus { return xmlstream.StatusOK })
	_, err := p.Feed([]byte(`<a/>`))
	require.NoError(t, err)
	for p.Drive() == xmlstream.Progressed {
	}
	_ = p.Close()

	_, err = p.Feed([]byte(`more`))
	require.Error(t, err)
	var pe *xmlstream.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, xmlstream.KindFeedAfterClose, pe.Kind)
}

func TestResetReusesStorageForNextDocument(t *testing.T) {
	var first []recordedEvent
	p := xmlstream.New(recordHandler(&first))
	_, err := p.Feed([]byte(`<a/>`))
	require.NoError(t, err)
	for p.Drive() != xmlstream.Finished {
	}

	var second []recordedEvent
	p.Reset(recordHandler(&second))
	_, err = p.Feed([]byte(`<b x="1"/>`))
	require.NoError(t, err)
	for p.Drive() != xmlstream.Finished {
	}

	want := []recordedEvent{
		{Kind: xmlstream.StartDocument},
		{Kind: xmlstream.StartElement, Name: "b", Path: "/b", Attrs: [][2]string{{"x", "1"}}},
		{Kind: xmlstream.EndElement, Name: "b", Path: "/b"},
		{Kind: xmlstream.EndDocument},
	}
	if diff := cmp.Diff(want, second); diff != "" {
		t.Fatalf("unexpected events after Reset (-want +got):\n%s", diff)
	}
}
