package stream

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/embedwire/umsg/internal/testutil/testlog"
)

func TestReadByteDrainsConnection(t *testing.T) {
	logger := testlog.Start(t)
	a, b := net.Pipe()
	tr := New(a, 64, logger)
	defer tr.Close()

	go func() {
		b.Write([]byte{1, 2, 3})
	}()

	var got []byte
	require.Eventually(t, func() bool {
		for {
			v, ok := tr.ReadByte()
			if !ok {
				break
			}
			got = append(got, v)
		}
		return len(got) == 3
	}, time.Second, time.Millisecond)
	require.Equal(t, []byte{1, 2, 3}, got)
}

func TestReadByteNonBlockingWhenIdle(t *testing.T) {
	logger := testlog.Start(t)
	a, _ := net.Pipe()
	tr := New(a, 64, logger)
	defer tr.Close()

	start := time.Now()
	_, ok := tr.ReadByte()
	require.False(t, ok)
	require.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWriteDeliversAllBytes(t *testing.T) {
	logger := testlog.Start(t)
	a, b := net.Pipe()
	tr := New(a, 64, logger)
	defer tr.Close()

	done := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 4)
		n := 0
		for n < len(buf) {
			m, err := b.Read(buf[n:])
			if err != nil {
				done <- nil
				return
			}
			n += m
		}
		done <- buf
	}()

	require.True(t, tr.Write([]byte{9, 8, 7, 6}))
	select {
	case got := <-done:
		require.Equal(t, []byte{9, 8, 7, 6}, got)
	case <-time.After(time.Second):
		t.Fatalf("peer never received bytes")
	}
}

func TestWriteAfterCloseFails(t *testing.T) {
	logger := testlog.Start(t)
	a, _ := net.Pipe()
	tr := New(a, 64, logger)
	require.NoError(t, tr.Close())
	require.False(t, tr.Write([]byte{1}))
}
