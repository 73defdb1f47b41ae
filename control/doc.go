// Package control implements the MoQT control stream: message framing
// (VarInt type, U16 length, payload) over a transport.BidiStream, and the
// control messages themselves (ClientSetup, ServerSetup, Subscribe,
// SubscribeOK, SubscribeError, Unsubscribe, MaxRequestIDMsg, GoAway) in
// both the client-sends and client-receives directions.
package control
