// Package collab is a small WebSocket relay carrying rebased transform
// actions between editors, the out-of-process collaborator the history
// core's rebased contract (SPEC_FULL.md §6) assumes a host supplies
// (SPEC_FULL.md §4.J).
package collab

import "encoding/json"

// Action is the wire form of a history.Action crossing the relay. Steps
// travel as opaque JSON (each Step's own ToJSON/FromJSON pair does the
// real encoding); the relay itself never interprets a step's content,
// only the count of them, to stamp Rebased per recipient.
type Action struct {
	ClientID  string            `json:"clientId"`
	Time      int64             `json:"time"`
	Steps     []json.RawMessage `json:"steps"`
	Rebased   *int              `json:"rebased,omitempty"`
	SessionID string            `json:"sessionId"`
}

// decodeAction parses a published payload. It returns the JSON error for a
// payload that doesn't parse as an Action; Relay.forward logs such a
// payload and drops it without forwarding it to anyone.
func decodeAction(payload []byte) (Action, error) {
	var a Action
	err := json.Unmarshal(payload, &a)
	return a, err
}
