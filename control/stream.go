package control

import (
	"errors"
	"sync"
	"time"

	"github.com/zsiec/moqt/transport"
	"github.com/zsiec/moqt/varint"
	"golang.org/x/sync/errgroup"
)

// Option configures a Stream.
type Option func(*Stream)

// WithPartialMessageTimeout bounds how long the ingest loop waits for more
// bytes after an incomplete header or payload. Zero (the default) means
// wait indefinitely.
func WithPartialMessageTimeout(d time.Duration) Option {
	return func(s *Stream) { s.partialMessageTimeout = d }
}

// WithOnSent registers a callback invoked after every successful Send.
func WithOnSent(f func(Message)) Option {
	return func(s *Stream) { s.onSent = f }
}

// WithOnReceived registers a callback invoked after every message the
// ingest loop decodes, before it is enqueued to Messages().
func WithOnReceived(f func(Message)) Option {
	return func(s *Stream) { s.onReceived = f }
}

// Stream frames MoQT control messages over a bidirectional byte stream:
// VarInt(type) || U16(payload length) || payload. It starts its ingest
// loop immediately on construction and exposes decoded messages on
// Messages(). The loop's terminal condition — clean close, protocol
// violation, or timeout — is available from Err() once Messages() closes.
// Messages() must be drained promptly: the ingest loop blocks on enqueuing
// a decoded message rather than drop it, so a stalled consumer stalls
// ingest.
type Stream struct {
	bidi                  transport.BidiStream
	partialMessageTimeout time.Duration
	onSent                func(Message)
	onReceived            func(Message)

	messages chan Message

	writeMu sync.Mutex

	doneMu sync.Mutex
	done   bool
	err    error

	closeOnce sync.Once
}

// New constructs a Stream over bidi and starts its ingest loop.
func New(bidi transport.BidiStream, opts ...Option) *Stream {
	s := &Stream{
		bidi:     bidi,
		messages: make(chan Message, 16),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.ingestLoop()
	return s
}

// Messages returns the channel of decoded messages. It closes when ingest
// ends; call Err() afterward to distinguish a clean close from a failure.
func (s *Stream) Messages() <-chan Message { return s.messages }

// Err returns the terminal error for the ingest loop, or nil if it ended
// cleanly. Only meaningful after Messages() has closed.
func (s *Stream) Err() error {
	s.doneMu.Lock()
	defer s.doneMu.Unlock()
	return s.err
}

func (s *Stream) finish(err error) {
	s.doneMu.Lock()
	if !s.done {
		s.done = true
		s.err = err
	}
	s.doneMu.Unlock()
	close(s.messages)
}

// Send serialises msg and writes it to bidi in a single call, so no
// external synchronization is needed to keep messages atomic on the wire.
// A write failure closes both stream halves and returns a TerminationError
// with CodeInternalError.
func (s *Stream) Send(msg Message) error {
	buf := varint.NewBuffer()
	if err := msg.Encode(buf); err != nil {
		return err
	}

	s.writeMu.Lock()
	_, err := s.bidi.Write(buf.Bytes())
	s.writeMu.Unlock()

	if err != nil {
		_ = s.closeHalves()
		return &TerminationError{Code: CodeInternalError, Text: "write failed", Err: err}
	}
	if s.onSent != nil {
		s.onSent(msg)
	}
	return nil
}

// Close concurrently closes the write half and cancels the read half,
// swallowing individual errors from each.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() { _ = s.closeHalves() })
	return nil
}

func (s *Stream) closeHalves() error {
	var eg errgroup.Group
	eg.Go(func() error {
		return s.bidi.Close()
	})
	eg.Go(func() error {
		s.bidi.CancelRead(0)
		return nil
	})
	return eg.Wait()
}

// readResult carries the outcome of a single blocking Read off the ingest
// loop's goroutine, so it can be raced against a timeout.
type readResult struct {
	n   int
	err error
}

// readChunk performs one Read, racing it against the partial-message
// timeout when partial is true and the timeout is non-zero. On timeout it
// returns ErrTimeout without waiting for the Read to return; the spawned
// goroutine's result is discarded when it eventually arrives.
func (s *Stream) readChunk(partial bool) ([]byte, error) {
	buf := make([]byte, 4096)
	done := make(chan readResult, 1)
	go func() {
		n, err := s.bidi.Read(buf)
		done <- readResult{n, err}
	}()

	if !partial || s.partialMessageTimeout <= 0 {
		r := <-done
		if r.err != nil {
			return nil, r.err
		}
		return buf[:r.n], nil
	}

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return buf[:r.n], nil
	case <-time.After(s.partialMessageTimeout):
		return nil, ErrTimeout
	}
}

func (s *Stream) ingestLoop() {
	receive := varint.NewBuffer()

	for {
		if receive.Len() == 0 {
			chunk, err := s.readChunk(false)
			if err != nil {
				s.finish(s.terminalError(err, receive.Len() > 0))
				return
			}
			receive.PutBytes(chunk)
		}

		msg, complete, err := tryDecodeOne(receive)
		if err != nil {
			_ = s.closeHalves()
			s.finish(&TerminationError{Code: CodeProtocolViolation, Text: err.Error(), Err: err})
			return
		}
		if !complete {
			chunk, err := s.readChunk(true)
			if err != nil {
				s.finish(s.terminalError(err, receive.Len() > 0))
				return
			}
			receive.PutBytes(chunk)
			continue
		}

		receive.Compact()
		if s.onReceived != nil {
			s.onReceived(msg)
		}
		s.messages <- msg
	}
}

// terminalError maps a readChunk failure to the ingest loop's terminal
// error: a timeout propagates as-is, a clean EOF with nothing buffered
// closes gracefully (nil), and a clean EOF with a message in flight is a
// protocol violation.
func (s *Stream) terminalError(readErr error, hasBuffered bool) error {
	if errors.Is(readErr, ErrTimeout) {
		return ErrTimeout
	}
	if hasBuffered {
		return &TerminationError{Code: CodeProtocolViolation, Text: "incomplete message data", Err: readErr}
	}
	return nil
}

// tryDecodeOne attempts to decode a single complete message from the front
// of receive without consuming anything on failure. complete is false when
// more bytes are needed (the header or payload is incomplete); err is
// non-nil only for a structurally invalid message, which is fatal.
func tryDecodeOne(receive *varint.Buffer) (msg Message, complete bool, err error) {
	receive.Checkpoint()
	defer receive.Commit()

	start := receive.Pos()
	msgType, terr := receive.GetVarInt()
	if terr != nil {
		receive.Restore()
		return Message{}, false, nil
	}
	length, terr := receive.GetU16()
	if terr != nil {
		receive.Restore()
		return Message{}, false, nil
	}
	headerSize := receive.Pos() - start
	totalSize := headerSize + int(length)

	receive.Restore()
	if receive.Len() < totalSize {
		return Message{}, false, nil
	}

	raw, terr := receive.GetBytes(totalSize)
	if terr != nil {
		return Message{}, false, nil
	}
	payload := make([]byte, len(raw)-headerSize)
	copy(payload, raw[headerSize:])

	decoded, derr := decodeMessage(msgType, payload)
	if derr != nil {
		return Message{}, false, derr
	}
	return decoded, true, nil
}
