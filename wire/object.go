package wire

import "github.com/zsiec/moqt/varint"

// Object is the per-object record carried on a data stream and held in a
// cache. It is immutable after construction; ownership transfers from
// producer to cache or subscriber on delivery.
type Object struct {
	Location          Location
	Payload           []byte
	ExtensionHeaders  []KeyValuePair
	TrackAlias        uint64
	SubgroupID        uint64
	PublisherPriority byte
}

// EncodeRecord appends obj's per-object wire record to buf, in the shape
// used inside both Fetch and Subgroup data streams:
// VarInt(ObjectID) || VarInt(extLen) || extensions || VarInt(payloadLen) || payload.
func (o Object) EncodeRecord(buf *varint.Buffer) {
	buf.PutVarInt(o.Location.Object)

	var extBuf varint.Buffer
	for _, kv := range o.ExtensionHeaders {
		kv.Encode(&extBuf)
	}
	ext := extBuf.Bytes()

	buf.PutVarInt(uint64(len(ext)))
	buf.PutBytes(ext)
	buf.PutLenPrefixedBytes(o.Payload)
}

// DecodeRecord reads a per-object wire record from buf, populating
// everything in an Object except Location.Group, TrackAlias, SubgroupID and
// PublisherPriority, which come from the enclosing stream header.
func DecodeRecord(buf *varint.FrozenBuffer) (Object, error) {
	var obj Object

	objID, err := buf.GetVarInt()
	if err != nil {
		return obj, &ParseError{Field: "object_id", Err: err}
	}
	obj.Location.Object = objID

	extLen, err := buf.GetVarInt()
	if err != nil {
		return obj, &ParseError{Field: "extension_headers_length", Err: err}
	}
	extBytes, err := buf.GetBytes(int(extLen))
	if err != nil {
		return obj, &ParseError{Field: "extension_headers", Err: err}
	}
	extReader := varint.NewFrozenBuffer(extBytes)
	for extReader.Len() > 0 {
		kv, err := DecodeKeyValuePair(extReader)
		if err != nil {
			return obj, &ParseError{Field: "extension_header", Err: err}
		}
		obj.ExtensionHeaders = append(obj.ExtensionHeaders, kv)
	}

	payload, err := buf.GetLenPrefixedBytes()
	if err != nil {
		return obj, &ParseError{Field: "payload", Err: err}
	}
	obj.Payload = payload

	return obj, nil
}
