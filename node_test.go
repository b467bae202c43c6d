package umsg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/embedwire/umsg/transports/loopback"
)

func newTestPair(t *testing.T, cfg Config) (*Node, *Node) {
	t.Helper()
	a, b := loopback.NewPair(4096)
	na, err := NewNode(a, cfg)
	require.NoError(t, err)
	nb, err := NewNode(b, cfg)
	require.NoError(t, err)
	return na, nb
}

func TestNodeHappyPath(t *testing.T) {
	cfg := Config{MaxPayloadSize: 32, MaxHandlers: 4}
	na, nb := newTestPair(t, cfg)

	var gotPayload []byte
	var gotHash uint32
	calls := 0
	require.NoError(t, nb.Register(9, func(payload []byte, msgHash uint32) error {
		calls++
		gotPayload = append([]byte{}, payload...)
		gotHash = msgHash
		return nil
	}))

	require.NoError(t, na.Publish(9, 0xAABBCCDD, []byte{0x10, 0x00, 0x20}))
	require.Equal(t, 0, nb.Poll())

	require.Equal(t, 1, calls)
	require.Equal(t, uint32(0xAABBCCDD), gotHash)
	require.Equal(t, []byte{0x10, 0x00, 0x20}, gotPayload)
}

func TestNodeTypedPublishAndDispatch(t *testing.T) {
	cfg := Config{MaxPayloadSize: 32, MaxHandlers: 4}
	na, nb := newTestPair(t, cfg)

	var got uint32
	require.NoError(t, nb.Register(10, Typed(func(m *testValue) error {
		got = m.Val
		return nil
	})))

	require.NoError(t, na.PublishMsg(10, &testValue{Val: 0x12345678}))
	require.Equal(t, 0, nb.Poll())
	require.Equal(t, uint32(0x12345678), got)
}

func TestNodePollCountsDispatchErrors(t *testing.T) {
	cfg := Config{MaxPayloadSize: 32, MaxHandlers: 4}
	na, nb := newTestPair(t, cfg)

	// No handler registered on the receiver: every packet counts one error.
	require.NoError(t, na.Publish(5, 0, nil))
	require.NoError(t, na.Publish(6, 0, nil))
	require.Equal(t, 2, nb.Poll())

	// The receiver keeps draining afterwards.
	ok := 0
	require.NoError(t, nb.Register(7, func([]byte, uint32) error { ok++; return nil }))
	require.NoError(t, na.Publish(5, 0, nil))
	require.NoError(t, na.Publish(7, 0, nil))
	require.Equal(t, 1, nb.Poll())
	require.Equal(t, 1, ok)
}

func TestNodePublishOversizedPayload(t *testing.T) {
	cfg := Config{MaxPayloadSize: 8, MaxHandlers: 1}
	na, _ := newTestPair(t, cfg)

	payload := make([]byte, 9)
	require.ErrorIs(t, na.Publish(1, 0, payload), ErrInvalidParameter)
}

func TestNodeTransportWriteFailure(t *testing.T) {
	a, _ := loopback.NewPair(4) // far too small for any packet
	na, err := NewNode(a, Config{MaxPayloadSize: 16, MaxHandlers: 1})
	require.NoError(t, err)

	require.ErrorIs(t, na.Publish(1, 0, []byte{1, 2, 3, 4}), ErrTransport)
}

func TestNodeConfigValidation(t *testing.T) {
	a, _ := loopback.NewPair(16)
	_, err := NewNode(nil, Config{MaxPayloadSize: 8, MaxHandlers: 1})
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewNode(a, Config{MaxPayloadSize: 8, MaxHandlers: 0})
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestLoopbackStress(t *testing.T) {
	const rounds = 1000
	cfg := Config{MaxPayloadSize: 64, MaxHandlers: 8}
	na, nb := newTestPair(t, cfg)

	type delivery struct {
		msgID   uint8
		msgHash uint32
		payload []byte
	}
	var deliveries []delivery

	record := func(id uint8) HandlerFunc {
		return func(payload []byte, msgHash uint32) error {
			deliveries = append(deliveries, delivery{
				msgID:   id,
				msgHash: msgHash,
				payload: append([]byte{}, payload...),
			})
			return nil
		}
	}
	for id := uint8(0); id < 8; id++ {
		require.NoError(t, nb.Register(id, record(id)))
	}

	var sent []delivery
	for i := 0; i < rounds; i++ {
		id := uint8(i % 8)
		hash := uint32(i) * 0x9E3779B9
		size := i % (cfg.MaxPayloadSize + 1)
		payload := make([]byte, size)
		for j := range payload {
			// Plenty of embedded zeros.
			payload[j] = byte((i + j) % 7)
		}
		require.NoError(t, na.Publish(id, hash, payload), "round %d", i)
		require.Equal(t, 0, nb.Poll(), "round %d", i)
		sent = append(sent, delivery{msgID: id, msgHash: hash, payload: payload})
	}

	require.Len(t, deliveries, rounds)
	for i := range sent {
		require.Equal(t, sent[i].msgID, deliveries[i].msgID, fmt.Sprintf("round %d id", i))
		require.Equal(t, sent[i].msgHash, deliveries[i].msgHash, fmt.Sprintf("round %d hash", i))
		require.Equal(t, sent[i].payload, deliveries[i].payload, fmt.Sprintf("round %d payload", i))
	}
}
