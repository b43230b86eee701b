// Package game exposes a game session over gRPC.
//
// GameService is a hand-written service descriptor whose messages are
// google.protobuf.Struct values, so the JSON shape of the aggregate state
// travels unchanged:
//   - Dispatch -> apply one action to a session
//   - GetState -> read the current state
//   - Save / Load / ListSaves -> saved games of a session
//   - Undo -> restore the state before the last change
//
// Every request names its session in "sessionId"; the x-boothill-session-id
// header is used when the field is absent.
package game
