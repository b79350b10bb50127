package collab

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient() *Client {
	return &Client{ID: uuid.New(), send: make(chan []byte, 4)}
}

func encodeAction(t *testing.T, stepCount int) []byte {
	steps := make([]json.RawMessage, stepCount)
	for i := range steps {
		steps[i] = json.RawMessage(`{}`)
	}
	payload, err := json.Marshal(Action{ClientID: "whoever", Steps: steps})
	require.NoError(t, err)
	return payload
}

// recv waits briefly for a client's next message, decompresses and
// decodes it, and fails the test if nothing arrives in time — Run's
// processing of a publish is asynchronous with the test goroutine, so a
// bounded wait (rather than a fixed sleep) is the only safe way to
// observe it.
func recv(t *testing.T, c *Client) Action {
	t.Helper()
	select {
	case raw := <-c.send:
		payload, err := decompressPayload(raw)
		require.NoError(t, err)
		action, err := decodeAction(payload)
		require.NoError(t, err)
		return action
	case <-time.After(time.Second):
		t.Fatalf("client %s never received a message", c.ID)
		return Action{}
	}
}

func assertNoMessage(t *testing.T, c *Client) {
	t.Helper()
	select {
	case <-c.send:
		t.Fatalf("client %s unexpectedly received a message", c.ID)
	default:
	}
}

// A relay never forwards a client's own action back to itself (P10), and
// it forwards to every other connected client.
func TestRelayNeverEchoesSender(t *testing.T) {
	relay := NewRelay(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.Run(ctx)

	a, b, c := testClient(), testClient(), testClient()
	relay.register <- a
	relay.register <- b
	relay.register <- c

	relay.publish <- publishedMessage{from: a.ID, payload: encodeAction(t, 2)}

	recv(t, b)
	recv(t, c)
	assertNoMessage(t, a)
}

// Forwarded actions are marked rebased against each recipient's own
// unconfirmed-steps count (SPEC_FULL.md §4.J): a recipient that has
// published N steps since it last received anything should see the next
// incoming action stamped Rebased == N, and that count resets to 0 once
// the message is delivered.
func TestRelayStampsRebasedPerRecipient(t *testing.T) {
	relay := NewRelay(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.Run(ctx)

	a, b := testClient(), testClient()
	relay.register <- a
	relay.register <- b

	// b publishes 3 steps; a is the only recipient, with no unconfirmed
	// steps of its own yet, so it should see Rebased == 0.
	relay.publish <- publishedMessage{from: b.ID, payload: encodeAction(t, 3)}
	first := recv(t, a)
	require.NotNil(t, first.Rebased)
	assert.Equal(t, 0, *first.Rebased)

	// a now publishes 5 steps of its own, accumulating unconfirmed steps
	// against b (who has not been sent anything since registering).
	relay.publish <- publishedMessage{from: a.ID, payload: encodeAction(t, 5)}
	second := recv(t, b)
	require.NotNil(t, second.Rebased)
	assert.Equal(t, 3, *second.Rebased, "b published 3 steps in the first round and has received nothing since")

	// b publishes again; a has 5 unconfirmed steps in flight (from the
	// previous round) that this message must be marked as rebasing
	// against.
	relay.publish <- publishedMessage{from: b.ID, payload: encodeAction(t, 1)}
	third := recv(t, a)
	require.NotNil(t, third.Rebased)
	assert.Equal(t, 5, *third.Rebased)

	// Having just received a message, a's unconfirmed count is back to
	// 0: a further message to a should be marked Rebased == 0 again.
	relay.publish <- publishedMessage{from: b.ID, payload: encodeAction(t, 1)}
	fourth := recv(t, a)
	require.NotNil(t, fourth.Rebased)
	assert.Equal(t, 0, *fourth.Rebased)
}

// Unregistering a client removes it from subsequent broadcasts.
func TestRelayUnregisterStopsDelivery(t *testing.T) {
	relay := NewRelay(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.Run(ctx)

	a, b := testClient(), testClient()
	relay.register <- a
	relay.register <- b
	relay.unregister <- b

	relay.publish <- publishedMessage{from: a.ID, payload: encodeAction(t, 1)}
	assertNoMessage(t, b)
}
