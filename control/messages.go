package control

import "github.com/zsiec/moqt/varint"

// Message type IDs, per MoQ Transport draft-15 §6.
const (
	TypeSubscribe      uint64 = 0x03
	TypeSubscribeOK    uint64 = 0x04
	TypeSubscribeError uint64 = 0x05
	TypeUnsubscribe    uint64 = 0x0a
	TypeGoAway         uint64 = 0x10
	TypeMaxRequestID   uint64 = 0x15
	TypeClientSetup    uint64 = 0x20
	TypeServerSetup    uint64 = 0x21
)

// Version is the MoQ Transport version this core speaks.
const Version uint64 = 0xff00000f

// Setup parameter keys, draft-15 §6.2.
const (
	ParamPath         uint64 = 0x01 // odd: length-prefixed byte string
	ParamMaxRequestID uint64 = 0x02 // even: varint value
)

// Subscribe filter types, draft-15 §6.6.
const (
	FilterNextGroupStart uint64 = 0x01
	FilterLatestObject   uint64 = 0x02
	FilterAbsoluteStart  uint64 = 0x03
	FilterAbsoluteRange  uint64 = 0x04
)

// Group order values, draft-15 §6.6.
const (
	GroupOrderDefault    byte = 0x00
	GroupOrderAscending  byte = 0x01
	GroupOrderDescending byte = 0x02
)

// ClientSetup is the first message a client sends on the control stream.
type ClientSetup struct {
	Versions     []uint64
	Path         string
	HasPath      bool
	MaxRequestID uint64
}

// ServerSetup is the server's response to ClientSetup.
type ServerSetup struct {
	SelectedVersion uint64
	MaxRequestID    uint64
}

// Subscribe requests delivery of a track.
type Subscribe struct {
	RequestID  uint64
	Namespace  []string
	TrackName  string
	Priority   byte
	GroupOrder byte
	Forward    byte
	FilterType uint64
	StartGroup uint64 // AbsoluteStart, AbsoluteRange
	StartObj   uint64 // AbsoluteStart, AbsoluteRange
	EndGroup   uint64 // AbsoluteRange
}

// SubscribeOK confirms a subscription.
type SubscribeOK struct {
	RequestID     uint64
	TrackAlias    uint64
	Expires       uint64
	GroupOrder    byte
	ContentExists bool
	LargestGroup  uint64 // only when ContentExists
	LargestObj    uint64 // only when ContentExists
}

// SubscribeError rejects a subscription.
type SubscribeError struct {
	RequestID    uint64
	ErrorCode    uint64
	ReasonPhrase string
}

// Unsubscribe cancels a subscription.
type Unsubscribe struct {
	RequestID uint64
}

// MaxRequestIDMsg updates the peer's request ID quota.
type MaxRequestIDMsg struct {
	RequestID uint64
}

// GoAway signals a graceful session shutdown, optionally redirecting the
// client to a new session URI.
type GoAway struct {
	NewSessionURI string
}

// EncodeClientSetup serialises a ClientSetup payload.
func EncodeClientSetup(cs ClientSetup) []byte {
	buf := varint.NewBuffer()
	buf.PutVarInt(uint64(len(cs.Versions)))
	for _, v := range cs.Versions {
		buf.PutVarInt(v)
	}

	numParams := uint64(0)
	if cs.HasPath {
		numParams++
	}
	if cs.MaxRequestID != 0 {
		numParams++
	}
	buf.PutVarInt(numParams)
	if cs.HasPath {
		buf.PutVarInt(ParamPath)
		buf.PutLenPrefixedBytes([]byte(cs.Path))
	}
	if cs.MaxRequestID != 0 {
		buf.PutVarInt(ParamMaxRequestID)
		buf.PutVarInt(cs.MaxRequestID)
	}
	return buf.Bytes()
}

// DecodeClientSetup parses a ClientSetup payload.
func DecodeClientSetup(data []byte) (ClientSetup, error) {
	buf := varint.NewFrozenBuffer(data)
	var cs ClientSetup

	numVersions, err := buf.GetVarInt()
	if err != nil {
		return cs, &DecodeError{Field: "num_versions", Err: err}
	}
	cs.Versions = make([]uint64, numVersions)
	for i := range cs.Versions {
		v, err := buf.GetVarInt()
		if err != nil {
			return cs, &DecodeError{Field: "version", Err: err}
		}
		cs.Versions[i] = v
	}

	numParams, err := buf.GetVarInt()
	if err != nil {
		return cs, &DecodeError{Field: "num_params", Err: err}
	}
	for i := uint64(0); i < numParams; i++ {
		key, err := buf.GetVarInt()
		if err != nil {
			return cs, &DecodeError{Field: "param_key", Err: err}
		}
		if key%2 == 1 {
			val, err := buf.GetLenPrefixedBytes()
			if err != nil {
				return cs, &DecodeError{Field: "param_value", Err: err}
			}
			if key == ParamPath {
				cs.Path = string(val)
				cs.HasPath = true
			}
		} else {
			val, err := buf.GetVarInt()
			if err != nil {
				return cs, &DecodeError{Field: "param_value", Err: err}
			}
			if key == ParamMaxRequestID {
				cs.MaxRequestID = val
			}
		}
	}
	return cs, nil
}

// EncodeServerSetup serialises a ServerSetup payload.
func EncodeServerSetup(ss ServerSetup) []byte {
	buf := varint.NewBuffer()
	buf.PutVarInt(ss.SelectedVersion)
	buf.PutVarInt(1)
	buf.PutVarInt(ParamMaxRequestID)
	buf.PutVarInt(ss.MaxRequestID)
	return buf.Bytes()
}

// DecodeServerSetup parses a ServerSetup payload.
func DecodeServerSetup(data []byte) (ServerSetup, error) {
	buf := varint.NewFrozenBuffer(data)
	var ss ServerSetup

	var err error
	ss.SelectedVersion, err = buf.GetVarInt()
	if err != nil {
		return ss, &DecodeError{Field: "selected_version", Err: err}
	}

	numParams, err := buf.GetVarInt()
	if err != nil {
		return ss, &DecodeError{Field: "num_params", Err: err}
	}
	for i := uint64(0); i < numParams; i++ {
		key, err := buf.GetVarInt()
		if err != nil {
			return ss, &DecodeError{Field: "param_key", Err: err}
		}
		if key%2 == 1 {
			if _, err := buf.GetLenPrefixedBytes(); err != nil {
				return ss, &DecodeError{Field: "param_value", Err: err}
			}
		} else {
			val, err := buf.GetVarInt()
			if err != nil {
				return ss, &DecodeError{Field: "param_value", Err: err}
			}
			if key == ParamMaxRequestID {
				ss.MaxRequestID = val
			}
		}
	}
	return ss, nil
}

// EncodeSubscribe serialises a Subscribe payload.
func EncodeSubscribe(s Subscribe) []byte {
	buf := varint.NewBuffer()
	buf.PutVarInt(s.RequestID)
	putNamespaceTuple(buf, s.Namespace)
	buf.PutLenPrefixedBytes([]byte(s.TrackName))
	buf.PutU8(s.Priority)
	buf.PutU8(s.GroupOrder)
	buf.PutU8(s.Forward)
	buf.PutVarInt(s.FilterType)

	switch s.FilterType {
	case FilterAbsoluteStart:
		buf.PutVarInt(s.StartGroup)
		buf.PutVarInt(s.StartObj)
	case FilterAbsoluteRange:
		buf.PutVarInt(s.StartGroup)
		buf.PutVarInt(s.StartObj)
		buf.PutVarInt(s.EndGroup)
	}
	buf.PutVarInt(0) // NumParams
	return buf.Bytes()
}

// DecodeSubscribe parses a Subscribe payload.
func DecodeSubscribe(data []byte) (Subscribe, error) {
	buf := varint.NewFrozenBuffer(data)
	var s Subscribe

	var err error
	s.RequestID, err = buf.GetVarInt()
	if err != nil {
		return s, &DecodeError{Field: "request_id", Err: err}
	}
	s.Namespace, err = getNamespaceTuple(buf)
	if err != nil {
		return s, &DecodeError{Field: "namespace", Err: err}
	}
	trackName, err := buf.GetLenPrefixedBytes()
	if err != nil {
		return s, &DecodeError{Field: "track_name", Err: err}
	}
	s.TrackName = string(trackName)

	if s.Priority, err = buf.GetU8(); err != nil {
		return s, &DecodeError{Field: "priority", Err: err}
	}
	if s.GroupOrder, err = buf.GetU8(); err != nil {
		return s, &DecodeError{Field: "group_order", Err: err}
	}
	if s.Forward, err = buf.GetU8(); err != nil {
		return s, &DecodeError{Field: "forward", Err: err}
	}
	if s.FilterType, err = buf.GetVarInt(); err != nil {
		return s, &DecodeError{Field: "filter_type", Err: err}
	}

	switch s.FilterType {
	case FilterAbsoluteStart:
		if s.StartGroup, err = buf.GetVarInt(); err != nil {
			return s, &DecodeError{Field: "start_group", Err: err}
		}
		if s.StartObj, err = buf.GetVarInt(); err != nil {
			return s, &DecodeError{Field: "start_object", Err: err}
		}
	case FilterAbsoluteRange:
		if s.StartGroup, err = buf.GetVarInt(); err != nil {
			return s, &DecodeError{Field: "start_group", Err: err}
		}
		if s.StartObj, err = buf.GetVarInt(); err != nil {
			return s, &DecodeError{Field: "start_object", Err: err}
		}
		if s.EndGroup, err = buf.GetVarInt(); err != nil {
			return s, &DecodeError{Field: "end_group", Err: err}
		}
	}
	return s, nil
}

// EncodeSubscribeOK serialises a SubscribeOK payload.
func EncodeSubscribeOK(ok SubscribeOK) []byte {
	buf := varint.NewBuffer()
	buf.PutVarInt(ok.RequestID)
	buf.PutVarInt(ok.TrackAlias)
	buf.PutVarInt(ok.Expires)
	buf.PutU8(ok.GroupOrder)
	if ok.ContentExists {
		buf.PutU8(1)
		buf.PutVarInt(ok.LargestGroup)
		buf.PutVarInt(ok.LargestObj)
	} else {
		buf.PutU8(0)
	}
	buf.PutVarInt(0) // NumParams
	return buf.Bytes()
}

// DecodeSubscribeOK parses a SubscribeOK payload.
func DecodeSubscribeOK(data []byte) (SubscribeOK, error) {
	buf := varint.NewFrozenBuffer(data)
	var ok SubscribeOK

	var err error
	if ok.RequestID, err = buf.GetVarInt(); err != nil {
		return ok, &DecodeError{Field: "request_id", Err: err}
	}
	if ok.TrackAlias, err = buf.GetVarInt(); err != nil {
		return ok, &DecodeError{Field: "track_alias", Err: err}
	}
	if ok.Expires, err = buf.GetVarInt(); err != nil {
		return ok, &DecodeError{Field: "expires", Err: err}
	}
	if ok.GroupOrder, err = buf.GetU8(); err != nil {
		return ok, &DecodeError{Field: "group_order", Err: err}
	}
	exists, err := buf.GetU8()
	if err != nil {
		return ok, &DecodeError{Field: "content_exists", Err: err}
	}
	ok.ContentExists = exists != 0
	if ok.ContentExists {
		if ok.LargestGroup, err = buf.GetVarInt(); err != nil {
			return ok, &DecodeError{Field: "largest_group", Err: err}
		}
		if ok.LargestObj, err = buf.GetVarInt(); err != nil {
			return ok, &DecodeError{Field: "largest_object", Err: err}
		}
	}
	return ok, nil
}

// EncodeSubscribeError serialises a SubscribeError payload.
func EncodeSubscribeError(se SubscribeError) []byte {
	buf := varint.NewBuffer()
	buf.PutVarInt(se.RequestID)
	buf.PutVarInt(se.ErrorCode)
	buf.PutLenPrefixedBytes([]byte(se.ReasonPhrase))
	return buf.Bytes()
}

// DecodeSubscribeError parses a SubscribeError payload.
func DecodeSubscribeError(data []byte) (SubscribeError, error) {
	buf := varint.NewFrozenBuffer(data)
	var se SubscribeError

	var err error
	if se.RequestID, err = buf.GetVarInt(); err != nil {
		return se, &DecodeError{Field: "request_id", Err: err}
	}
	if se.ErrorCode, err = buf.GetVarInt(); err != nil {
		return se, &DecodeError{Field: "error_code", Err: err}
	}
	reason, err := buf.GetLenPrefixedBytes()
	if err != nil {
		return se, &DecodeError{Field: "reason_phrase", Err: err}
	}
	se.ReasonPhrase = string(reason)
	return se, nil
}

// EncodeUnsubscribe serialises an Unsubscribe payload.
func EncodeUnsubscribe(u Unsubscribe) []byte {
	buf := varint.NewBuffer()
	buf.PutVarInt(u.RequestID)
	return buf.Bytes()
}

// DecodeUnsubscribe parses an Unsubscribe payload.
func DecodeUnsubscribe(data []byte) (Unsubscribe, error) {
	buf := varint.NewFrozenBuffer(data)
	reqID, err := buf.GetVarInt()
	if err != nil {
		return Unsubscribe{}, &DecodeError{Field: "request_id", Err: err}
	}
	return Unsubscribe{RequestID: reqID}, nil
}

// EncodeMaxRequestID serialises a MaxRequestIDMsg payload.
func EncodeMaxRequestID(m MaxRequestIDMsg) []byte {
	buf := varint.NewBuffer()
	buf.PutVarInt(m.RequestID)
	return buf.Bytes()
}

// DecodeMaxRequestID parses a MaxRequestIDMsg payload.
func DecodeMaxRequestID(data []byte) (MaxRequestIDMsg, error) {
	buf := varint.NewFrozenBuffer(data)
	reqID, err := buf.GetVarInt()
	if err != nil {
		return MaxRequestIDMsg{}, &DecodeError{Field: "request_id", Err: err}
	}
	return MaxRequestIDMsg{RequestID: reqID}, nil
}

// EncodeGoAway serialises a GoAway payload.
func EncodeGoAway(ga GoAway) []byte {
	buf := varint.NewBuffer()
	buf.PutLenPrefixedBytes([]byte(ga.NewSessionURI))
	return buf.Bytes()
}

// DecodeGoAway parses a GoAway payload.
func DecodeGoAway(data []byte) (GoAway, error) {
	buf := varint.NewFrozenBuffer(data)
	uri, err := buf.GetLenPrefixedBytes()
	if err != nil {
		return GoAway{}, &DecodeError{Field: "new_session_uri", Err: err}
	}
	return GoAway{NewSessionURI: string(uri)}, nil
}

func putNamespaceTuple(buf *varint.Buffer, parts []string) {
	buf.PutVarInt(uint64(len(parts)))
	for _, p := range parts {
		buf.PutLenPrefixedBytes([]byte(p))
	}
}

func getNamespaceTuple(buf *varint.FrozenBuffer) ([]string, error) {
	count, err := buf.GetVarInt()
	if err != nil {
		return nil, err
	}
	parts := make([]string, count)
	for i := range parts {
		b, err := buf.GetLenPrefixedBytes()
		if err != nil {
			return nil, err
		}
		parts[i] = string(b)
	}
	return parts, nil
}
