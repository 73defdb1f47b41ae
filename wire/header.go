package wire

import "github.com/zsiec/moqt/varint"

// Data-header type tags (draft-ietf-moq-transport). FetchHeader has a
// single tag; SubgroupHeader's six tags each select a different
// combination of how the Subgroup ID is carried and whether objects on the
// stream have extension headers.
const (
	TagFetchHeader uint64 = 0x05

	TagSubgroupZeroNoExt     uint64 = 0x08 // Subgroup ID = 0, no extensions
	TagSubgroupZeroExt       uint64 = 0x09 // Subgroup ID = 0, extensions present
	TagSubgroupFirstNoExt    uint64 = 0x0A // Subgroup ID = first object's ID, no extensions
	TagSubgroupFirstExt      uint64 = 0x0B // Subgroup ID = first object's ID, extensions present
	TagSubgroupExplicitNoExt uint64 = 0x0C // Subgroup ID carried explicitly, no extensions
	TagSubgroupExplicitExt   uint64 = 0x0D // Subgroup ID carried explicitly, extensions present
)

// SubgroupIDMode says how a SubgroupHeader's stream carries its Subgroup ID.
type SubgroupIDMode int

const (
	SubgroupIDZero SubgroupIDMode = iota
	SubgroupIDFirstObject
	SubgroupIDExplicit
)

// FetchHeader is the envelope at the start of a MoQ Fetch data stream: just
// the Request ID of the FETCH that opened it, since track/group/object
// addressing for the rest of the stream comes from the FETCH message
// itself.
type FetchHeader struct {
	RequestID uint64
}

// Encode appends the wire encoding of h to buf, tag included.
func (h FetchHeader) Encode(buf *varint.Buffer) {
	buf.PutVarInt(TagFetchHeader)
	buf.PutVarInt(h.RequestID)
}

// decodeFetchHeader consumes the tag itself (already peeked by
// DeserializeHeader) and the remaining fields.
func decodeFetchHeader(buf *varint.FrozenBuffer) (FetchHeader, error) {
	if _, err := buf.GetVarInt(); err != nil { // tag
		return FetchHeader{}, &ParseError{Field: "tag", Err: err}
	}
	reqID, err := buf.GetVarInt()
	if err != nil {
		return FetchHeader{}, &ParseError{Field: "request_id", Err: err}
	}
	return FetchHeader{RequestID: reqID}, nil
}

// SubgroupHeader is the envelope at the start of a MoQ Subgroup data
// stream. HasExtensions and IDMode are derived from (and determine) the
// wire tag; SubgroupID is only meaningful when IDMode == SubgroupIDExplicit.
type SubgroupHeader struct {
	TrackAlias        uint64
	GroupID           uint64
	IDMode            SubgroupIDMode
	SubgroupID        uint64
	PublisherPriority byte
	HasExtensions     bool
}

func (h SubgroupHeader) tag() uint64 {
	switch h.IDMode {
	case SubgroupIDZero:
		if h.HasExtensions {
			return TagSubgroupZeroExt
		}
		return TagSubgroupZeroNoExt
	case SubgroupIDFirstObject:
		if h.HasExtensions {
			return TagSubgroupFirstExt
		}
		return TagSubgroupFirstNoExt
	default: // SubgroupIDExplicit
		if h.HasExtensions {
			return TagSubgroupExplicitExt
		}
		return TagSubgroupExplicitNoExt
	}
}

// Encode appends the wire encoding of h to buf, tag included.
func (h SubgroupHeader) Encode(buf *varint.Buffer) {
	buf.PutVarInt(h.tag())
	buf.PutVarInt(h.TrackAlias)
	buf.PutVarInt(h.GroupID)
	if h.IDMode == SubgroupIDExplicit {
		buf.PutVarInt(h.SubgroupID)
	}
	buf.PutU8(h.PublisherPriority)
}

// decodeSubgroupHeader consumes the tag and dispatches on it for field
// presence, then reads the remaining fields.
func decodeSubgroupHeader(buf *varint.FrozenBuffer) (SubgroupHeader, error) {
	tag, err := buf.GetVarInt()
	if err != nil {
		return SubgroupHeader{}, &ParseError{Field: "tag", Err: err}
	}

	var h SubgroupHeader
	switch tag {
	case TagSubgroupZeroNoExt:
		h.IDMode, h.HasExtensions = SubgroupIDZero, false
	case TagSubgroupZeroExt:
		h.IDMode, h.HasExtensions = SubgroupIDZero, true
	case TagSubgroupFirstNoExt:
		h.IDMode, h.HasExtensions = SubgroupIDFirstObject, false
	case TagSubgroupFirstExt:
		h.IDMode, h.HasExtensions = SubgroupIDFirstObject, true
	case TagSubgroupExplicitNoExt:
		h.IDMode, h.HasExtensions = SubgroupIDExplicit, false
	case TagSubgroupExplicitExt:
		h.IDMode, h.HasExtensions = SubgroupIDExplicit, true
	default:
		return SubgroupHeader{}, &ParseError{Field: "tag", Err: ErrInvalidType}
	}

	h.TrackAlias, err = buf.GetVarInt()
	if err != nil {
		return SubgroupHeader{}, &ParseError{Field: "track_alias", Err: err}
	}
	h.GroupID, err = buf.GetVarInt()
	if err != nil {
		return SubgroupHeader{}, &ParseError{Field: "group_id", Err: err}
	}
	if h.IDMode == SubgroupIDExplicit {
		h.SubgroupID, err = buf.GetVarInt()
		if err != nil {
			return SubgroupHeader{}, &ParseError{Field: "subgroup_id", Err: err}
		}
	}
	h.PublisherPriority, err = buf.GetU8()
	if err != nil {
		return SubgroupHeader{}, &ParseError{Field: "publisher_priority", Err: err}
	}

	return h, nil
}

// HeaderKind discriminates Header's two variants.
type HeaderKind int

const (
	HeaderKindFetch HeaderKind = iota
	HeaderKindSubgroup
)

// Header is the tagged union of the two MoQ data-stream envelopes.
type Header struct {
	Kind     HeaderKind
	Fetch    FetchHeader
	Subgroup SubgroupHeader
}

// Encode appends the wire encoding of whichever variant h holds.
func (h Header) Encode(buf *varint.Buffer) {
	switch h.Kind {
	case HeaderKindFetch:
		h.Fetch.Encode(buf)
	case HeaderKindSubgroup:
		h.Subgroup.Encode(buf)
	}
}

// DeserializeHeader peeks the leading VarInt type tag via checkpoint+
// restore (the tag itself is consumed again by the concrete decoder this
// dispatches to), then reads the complete envelope. On any error the
// buffer's offset is restored to where it stood on entry, so a caller that
// gets ErrNotEnoughBytes can retry later with more data.
func DeserializeHeader(buf *varint.FrozenBuffer) (Header, error) {
	buf.Checkpoint()
	defer buf.Commit()

	tag, err := buf.GetVarInt()
	if err != nil {
		buf.Restore()
		return Header{}, &ParseError{Field: "tag", Err: err}
	}
	buf.Restore() // rewind so the concrete decoder re-reads the tag itself

	switch {
	case tag == TagFetchHeader:
		fh, err := decodeFetchHeader(buf)
		if err != nil {
			buf.Restore()
			return Header{}, err
		}
		return Header{Kind: HeaderKindFetch, Fetch: fh}, nil
	case tag >= TagSubgroupZeroNoExt && tag <= TagSubgroupExplicitExt:
		sh, err := decodeSubgroupHeader(buf)
		if err != nil {
			buf.Restore()
			return Header{}, err
		}
		return Header{Kind: HeaderKindSubgroup, Subgroup: sh}, nil
	default:
		buf.Restore()
		return Header{}, &ParseError{Field: "tag", Err: ErrInvalidType}
	}
}
