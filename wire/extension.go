package wire

// LOC extension header type IDs. CaptureTimestamp, VideoFrameMarking and
// AudioLevel are even (VarInt-valued); VideoConfig is odd (length-prefixed
// bytes). AudioLevel's ID (6) is not pinned by spec; it is chosen to sit
// between the teacher's existing CaptureTimestamp/VideoFrameMarking pair
// (2, 4) and VideoConfig (13), following the same even-ID spacing.
const (
	TypeCaptureTimestamp  uint64 = 2
	TypeVideoFrameMarking uint64 = 4
	TypeAudioLevel        uint64 = 6
	TypeVideoConfig       uint64 = 13
)

// ExtensionKind discriminates the closed set of ExtensionHeader variants.
type ExtensionKind int

const (
	ExtCaptureTimestamp ExtensionKind = iota
	ExtVideoFrameMarking
	ExtAudioLevel
	ExtVideoConfig
)

// ExtensionHeader is a tagged union over the known LOC extension header
// variants. Only the field(s) matching Kind are meaningful.
type ExtensionHeader struct {
	Kind ExtensionKind

	CaptureTimestampUs uint64 // ExtCaptureTimestamp: microseconds since epoch
	IsKeyframe         bool   // ExtVideoFrameMarking: 1 = keyframe on the wire
	AudioLevelValue    uint64 // ExtAudioLevel
	VideoConfigData    []byte // ExtVideoConfig: codec-specific description
}

// NewCaptureTimestamp builds a CaptureTimestamp extension header.
func NewCaptureTimestamp(us uint64) ExtensionHeader {
	return ExtensionHeader{Kind: ExtCaptureTimestamp, CaptureTimestampUs: us}
}

// NewVideoFrameMarking builds a VideoFrameMarking extension header.
func NewVideoFrameMarking(isKeyframe bool) ExtensionHeader {
	return ExtensionHeader{Kind: ExtVideoFrameMarking, IsKeyframe: isKeyframe}
}

// NewAudioLevel builds an AudioLevel extension header.
func NewAudioLevel(level uint64) ExtensionHeader {
	return ExtensionHeader{Kind: ExtAudioLevel, AudioLevelValue: level}
}

// NewVideoConfig builds a VideoConfig extension header from a codec-specific
// decoder configuration record.
func NewVideoConfig(data []byte) ExtensionHeader {
	return ExtensionHeader{Kind: ExtVideoConfig, VideoConfigData: data}
}

// ToKeyValuePair encodes h as its underlying KeyValuePair.
func (h ExtensionHeader) ToKeyValuePair() KeyValuePair {
	switch h.Kind {
	case ExtCaptureTimestamp:
		kv, _ := NewVarInt(TypeCaptureTimestamp, h.CaptureTimestampUs)
		return kv
	case ExtVideoFrameMarking:
		var v uint64
		if h.IsKeyframe {
			v = 1
		}
		kv, _ := NewVarInt(TypeVideoFrameMarking, v)
		return kv
	case ExtAudioLevel:
		kv, _ := NewVarInt(TypeAudioLevel, h.AudioLevelValue)
		return kv
	case ExtVideoConfig:
		kv, _ := NewBytes(TypeVideoConfig, h.VideoConfigData)
		return kv
	default:
		return KeyValuePair{}
	}
}

// FromKeyValuePair attempts each known variant in turn (CaptureTimestamp,
// VideoFrameMarking, AudioLevel, VideoConfig) and returns the first match.
// An unrecognized type ID reports ok == false; the pair should be dropped,
// not treated as an error.
func FromKeyValuePair(p KeyValuePair) (h ExtensionHeader, ok bool) {
	switch p.Type {
	case TypeCaptureTimestamp:
		if !p.IsVarInt() {
			return ExtensionHeader{}, false
		}
		return NewCaptureTimestamp(p.VarIntValue), true
	case TypeVideoFrameMarking:
		if !p.IsVarInt() {
			return ExtensionHeader{}, false
		}
		return NewVideoFrameMarking(p.VarIntValue == 1), true
	case TypeAudioLevel:
		if !p.IsVarInt() {
			return ExtensionHeader{}, false
		}
		return NewAudioLevel(p.VarIntValue), true
	case TypeVideoConfig:
		if p.IsVarInt() {
			return ExtensionHeader{}, false
		}
		return NewVideoConfig(p.BytesValue), true
	default:
		return ExtensionHeader{}, false
	}
}

// FromKeyValuePairs maps ps to their ExtensionHeader variants, dropping any
// pair with an unrecognized type, and preserving the input order of the
// pairs that did match.
func FromKeyValuePairs(ps []KeyValuePair) []ExtensionHeader {
	out := make([]ExtensionHeader, 0, len(ps))
	for _, p := range ps {
		if h, ok := FromKeyValuePair(p); ok {
			out = append(out, h)
		}
	}
	return out
}

// Builder fluently assembles a sequence of KeyValuePairs from extension
// header values, in call order.
type Builder struct {
	pairs []KeyValuePair
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// CaptureTimestamp appends a CaptureTimestamp pair.
func (b *Builder) CaptureTimestamp(us uint64) *Builder {
	b.pairs = append(b.pairs, NewCaptureTimestamp(us).ToKeyValuePair())
	return b
}

// VideoFrameMarking appends a VideoFrameMarking pair.
func (b *Builder) VideoFrameMarking(isKeyframe bool) *Builder {
	b.pairs = append(b.pairs, NewVideoFrameMarking(isKeyframe).ToKeyValuePair())
	return b
}

// AudioLevel appends an AudioLevel pair.
func (b *Builder) AudioLevel(level uint64) *Builder {
	b.pairs = append(b.pairs, NewAudioLevel(level).ToKeyValuePair())
	return b
}

// VideoConfig appends a VideoConfig pair.
func (b *Builder) VideoConfig(data []byte) *Builder {
	b.pairs = append(b.pairs, NewVideoConfig(data).ToKeyValuePair())
	return b
}

// Build returns the assembled sequence of KeyValuePairs.
func (b *Builder) Build() []KeyValuePair { return b.pairs }
