package umsg

import "testing"

func TestSizeMath(t *testing.T) {
	if MaxFrameSize(32) != 40 {
		t.Fatalf("MaxFrameSize(32) = %d", MaxFrameSize(32))
	}
	if CobsOverhead(0) != 0 || CobsOverhead(1) != 1 || CobsOverhead(254) != 1 || CobsOverhead(255) != 2 {
		t.Fatalf("cobs overhead: %d %d %d %d",
			CobsOverhead(0), CobsOverhead(1), CobsOverhead(254), CobsOverhead(255))
	}
	// frame(40) + crc(4) = 44, +1 overhead +1 delimiter.
	if MaxPacketSize(32) != 46 {
		t.Fatalf("MaxPacketSize(32) = %d", MaxPacketSize(32))
	}
}

func TestMaxPacketSizeHoldsWorstCase(t *testing.T) {
	// Every packet a node can produce must fit the size bound, including
	// the eager block flush at 254-literal boundaries.
	for _, payloadSize := range []int{0, 1, 242, 245, 246, 247, 253, 254, 255, 300, 496, 508, 1000} {
		frame := make([]byte, MaxFrameSize(payloadSize))
		for i := range frame {
			frame[i] = 0x01 // all non-zero maximizes COBS output
		}
		f := NewFramer(MaxPacketSize(payloadSize))
		packet := make([]byte, MaxPacketSize(payloadSize))
		if _, err := f.CreatePacket(frame, packet); err != nil {
			t.Fatalf("payload %d: worst-case packet does not fit: %v", payloadSize, err)
		}
	}
}
