package transport

import "github.com/quic-go/quic-go"

// quicStream is the subset of quic-go's quic.Stream that FromQUICStream
// needs. CancelRead/CancelWrite are declared with quic.StreamErrorCode,
// matching quic.Stream's actual method signatures exactly, so a real
// quic.Stream satisfies this interface directly.
type quicStream interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	CancelRead(code quic.StreamErrorCode)
	CancelWrite(code quic.StreamErrorCode)
}

// quicAdapter adapts a quic-go quic.Stream to BidiStream. BidiStream's
// CancelRead/CancelWrite take a plain uint64, so the two cancel methods are
// overridden here to convert; Read, Write, and Close are promoted unchanged
// from the embedded quicStream.
type quicAdapter struct {
	quicStream
}

func (a quicAdapter) CancelRead(code uint64) {
	a.quicStream.CancelRead(quic.StreamErrorCode(code))
}

func (a quicAdapter) CancelWrite(code uint64) {
	a.quicStream.CancelWrite(quic.StreamErrorCode(code))
}

// FromQUICStream wraps a quic.Stream (or a WebTransport stream with the same
// method set) as a BidiStream.
func FromQUICStream(s quicStream) BidiStream {
	return quicAdapter{quicStream: s}
}
