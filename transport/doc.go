// Package transport defines the minimal bidirectional byte-stream contract
// the moqt core requires from its host session layer. It knows nothing
// about QUIC, WebTransport, or TCP; [BidiStream] is shaped to match
// quic-go's quic.Stream (and equally a WebTransport stream) closely enough
// that adapting either is a zero-cost wrapper — see quic.go.
package transport
