package transport

import "io"

// ReadHalf is the receive side of a bidirectional stream. CancelRead aborts
// an in-flight or future Read with an application error code; it is safe to
// call more than once.
type ReadHalf interface {
	io.Reader
	CancelRead(code uint64)
}

// WriteHalf is the send side of a bidirectional stream. Close signals a
// graceful end of the send side (a FIN); CancelWrite aborts it immediately
// with an application error code.
type WriteHalf interface {
	io.Writer
	Close() error
	CancelWrite(code uint64)
}

// BidiStream is a bidirectional byte stream with independent read and write
// halves, each individually cancellable. This is the only transport
// requirement the moqt core has; it is satisfied by a QUIC stream, a
// WebTransport stream, or any test double built over an in-memory pipe.
type BidiStream interface {
	ReadHalf
	WriteHalf
}
