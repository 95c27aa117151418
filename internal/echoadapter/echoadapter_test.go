package echoadapter_test

import (
	"net"
	"testing"
	"time"

	"github.com/kori-labs/xmlstream"
	"github.com/kori-labs/xmlstream/internal/echoadapter"
)

func TestServeParsesDocumentAndClosesOnFinish(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	var names []string
	var traced []echoadapter.Event
	handler := func(p *xmlstream.Parser) xmlstream.HandlerStatus {
		if p.Event() == xmlstream.StartElement {
			names = append(names, string(p.ElementName()))
		}
		return xmlstream.StatusOK
	}
	wrapped := echoadapter.WrapHandler(handler, func(ev echoadapter.Event) {
		traced = append(traced, ev)
	})
	p := xmlstream.New(wrapped)

	done := make(chan error, 1)
	go func() {
		done <- echoadapter.Serve(server, p)
	}()

	if _, err := client.Write([]byte(`<root><child/></root>`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	client.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return in time")
	}

	if len(names) != 2 || names[0] != "root" || names[1] != "child" {
		t.Fatalf("names = %v, want [root child]", names)
	}
	if len(traced) == 0 {
		t.Fatal("expected at least one traced event")
	}
}

func TestServeReportsParseError(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	p := xmlstream.New(func(p *xmlstream.Parser) xmlstream.HandlerStatus {
		return xmlstream.StatusOK
	})

	done := make(chan error, 1)
	go func() {
		done <- echoadapter.Serve(server, p)
	}()

	if _, err := client.Write([]byte(`<a></b>`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	client.Close()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected Serve to return a parse error")
		}
		perr, ok := err.(*xmlstream.ParseError)
		if !ok {
			t.Fatalf("error type = %T, want *xmlstream.ParseError", err)
		}
		if perr.Kind != xmlstream.KindMismatchedTag {
			t.Fatalf("kind = %v, want KindMismatchedTag", perr.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return in time")
	}
}
