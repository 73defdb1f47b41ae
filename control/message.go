package control

import "github.com/zsiec/moqt/varint"

// MessageKind discriminates Message's variants.
type MessageKind int

const (
	KindClientSetup MessageKind = iota
	KindServerSetup
	KindSubscribe
	KindSubscribeOK
	KindSubscribeError
	KindUnsubscribe
	KindMaxRequestID
	KindGoAway
)

// Message is a decoded control message, tagged by Kind. Only the field
// matching Kind is populated.
type Message struct {
	Kind MessageKind

	ClientSetup    ClientSetup
	ServerSetup    ServerSetup
	Subscribe      Subscribe
	SubscribeOK    SubscribeOK
	SubscribeError SubscribeError
	Unsubscribe    Unsubscribe
	MaxRequestID   MaxRequestIDMsg
	GoAway         GoAway
}

// EncodeMessage returns the wire encoding of msg as a standalone byte
// slice.
func EncodeMessage(msg Message) ([]byte, error) {
	buf := varint.NewBuffer()
	if err := msg.Encode(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode appends the wire encoding of m (type tag, U16 length, payload) to
// buf.
func (m Message) Encode(buf *varint.Buffer) error {
	var msgType uint64
	var payload []byte

	switch m.Kind {
	case KindClientSetup:
		msgType, payload = TypeClientSetup, EncodeClientSetup(m.ClientSetup)
	case KindServerSetup:
		msgType, payload = TypeServerSetup, EncodeServerSetup(m.ServerSetup)
	case KindSubscribe:
		msgType, payload = TypeSubscribe, EncodeSubscribe(m.Subscribe)
	case KindSubscribeOK:
		msgType, payload = TypeSubscribeOK, EncodeSubscribeOK(m.SubscribeOK)
	case KindSubscribeError:
		msgType, payload = TypeSubscribeError, EncodeSubscribeError(m.SubscribeError)
	case KindUnsubscribe:
		msgType, payload = TypeUnsubscribe, EncodeUnsubscribe(m.Unsubscribe)
	case KindMaxRequestID:
		msgType, payload = TypeMaxRequestID, EncodeMaxRequestID(m.MaxRequestID)
	case KindGoAway:
		msgType, payload = TypeGoAway, EncodeGoAway(m.GoAway)
	default:
		return &DecodeError{Field: "kind", Err: ErrUnknownMessageKind}
	}

	if len(payload) > 0xFFFF {
		return &DecodeError{Field: "payload", Err: ErrPayloadTooLarge}
	}
	buf.PutVarInt(msgType)
	buf.PutU16(uint16(len(payload)))
	buf.PutBytes(payload)
	return nil
}

// decodeMessage dispatches a raw (type, payload) pair to the matching
// Decode* function and wraps the result in a Message.
func decodeMessage(msgType uint64, payload []byte) (Message, error) {
	switch msgType {
	case TypeClientSetup:
		v, err := DecodeClientSetup(payload)
		return Message{Kind: KindClientSetup, ClientSetup: v}, err
	case TypeServerSetup:
		v, err := DecodeServerSetup(payload)
		return Message{Kind: KindServerSetup, ServerSetup: v}, err
	case TypeSubscribe:
		v, err := DecodeSubscribe(payload)
		return Message{Kind: KindSubscribe, Subscribe: v}, err
	case TypeSubscribeOK:
		v, err := DecodeSubscribeOK(payload)
		return Message{Kind: KindSubscribeOK, SubscribeOK: v}, err
	case TypeSubscribeError:
		v, err := DecodeSubscribeError(payload)
		return Message{Kind: KindSubscribeError, SubscribeError: v}, err
	case TypeUnsubscribe:
		v, err := DecodeUnsubscribe(payload)
		return Message{Kind: KindUnsubscribe, Unsubscribe: v}, err
	case TypeMaxRequestID:
		v, err := DecodeMaxRequestID(payload)
		return Message{Kind: KindMaxRequestID, MaxRequestID: v}, err
	case TypeGoAway:
		v, err := DecodeGoAway(payload)
		return Message{Kind: KindGoAway, GoAway: v}, err
	default:
		return Message{}, &DecodeError{Field: "type", Err: ErrUnknownMessageType}
	}
}
