// Package echoadapter hosts a Parser over a net.Conn connection the way
// the reference board's tcpWorker task hosted the original parser over a
// BSD socket: read whatever is ready, feed it, drive the engine until it
// asks for more, and close the parser and return once the document
// finishes, the client goes quiet past a timeout, or a read or parse
// error occurs. Closing the connection is left to the caller.
package echoadapter

import (
	"io"
	"net"
	"time"

	"github.com/kori-labs/xmlstream"
)

// ClientTimeout bounds how long a connection may sit idle, mid-document,
// before the adapter gives up on it. Named for the reference loop's
// TIME_OUT_ON_CLIENT constant.
const ClientTimeout = 2 * time.Second

// ReceiveBufferSize is how much is read from the connection per recv,
// mirroring the reference loop's fixed-size u8ReceiveBuffer.
const ReceiveBufferSize = 1000

// DebugTrace is called once per event, immediately after the Parser's own
// Handler has returned for it, and never influences parsing. Unlike
// Verbose.c's global VERBOSE_printf wired straight into the parser
// callback, this is a plain optional hook a caller supplies per Parser; a
// demo host can wire it to log.Printf without making the parser itself
// aware of any logger. event is a value-type copy safe to retain past the
// call, unlike the borrowed slices Parser's own accessors return.
type DebugTrace func(event Event)

// Event is a point-in-time copy of the fields an observer might want to
// log, taken right after Handler returns so it never aliases a Parser's
// reused scratch buffers.
type Event struct {
	Kind xmlstream.EventKind
	Path string
	Name string
	Text string
}

// WrapHandler returns a Handler that calls handler and then, if trace is
// non-nil, reports the Event that was just seen. Construct the Parser
// passed to Serve with this wrapped Handler to get tracing; Serve itself
// has no hook into a Parser's Handler once the Parser is built.
func WrapHandler(handler xmlstream.Handler, trace DebugTrace) xmlstream.Handler {
	if trace == nil {
		return handler
	}
	return func(p *xmlstream.Parser) xmlstream.HandlerStatus {
		status := handler(p)
		trace(Event{
			Kind: p.Event(),
			Path: string(p.Path()),
			Name: string(p.ElementName()),
			Text: string(p.Text()),
		})
		return status
	}
}

// Serve reads from conn until the document hosted by p completes, the
// connection times out waiting on the client, or a read or parse error
// occurs. Serve owns p for the duration of the call: it Feeds and Drives
// it and Closes it before returning, matching the original loop only
// closing clientfd after LwXMLP_srCloseParser had already run. The
// caller still owns conn and should close it once Serve returns.
func Serve(conn net.Conn, p *xmlstream.Parser) error {
	recvBuf := make([]byte, ReceiveBufferSize)
	deadline := time.Now().Add(ClientTimeout)

	for {
		if err := conn.SetReadDeadline(deadline); err != nil {
			p.Close()
			return err
		}
		n, readErr := conn.Read(recvBuf)
		if n > 0 {
			if _, feedErr := p.Feed(recvBuf[:n]); feedErr != nil {
				p.Close()
				return feedErr
			}
			deadline = time.Now().Add(ClientTimeout)
		}

		for {
			result := p.Drive()
			if result == xmlstream.Finished {
				return p.Close()
			}
			if result == xmlstream.Error {
				err := p.Err()
				p.Close()
				return err
			}
			if result == xmlstream.Progressed {
				continue
			}
			break // NeedMoreData: go back to reading the connection.
		}

		if readErr != nil {
			if isTimeout(readErr) {
				if time.Now().After(deadline) {
					return p.Close()
				}
				continue
			}
			if readErr == io.EOF {
				return p.Close()
			}
			p.Close()
			return readErr
		}
	}
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
