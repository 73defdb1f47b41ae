// Package varint implements the QUIC-style variable-length integer codec
// and the growable/frozen byte buffers built on top of it (RFC 9000 §16).
// It generalizes the ad hoc bufReader the teacher used internally for MoQ
// control-message parsing into a reusable, checkpoint-capable cursor, while
// keeping quic-go's quicvarint package as the actual varint encode/decode
// primitive.
package varint
