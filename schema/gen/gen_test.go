package gen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/embedwire/umsg/schema"
)

const sensorSource = `
struct SensorReading {
    uint32_t sensor_id;
    double values[3];
    bool valid;
};
`

func TestGoFieldName(t *testing.T) {
	cases := map[string]string{
		"led":        "Led",
		"sensor_id":  "SensorId",
		"max_value_": "MaxValue",
	}
	for in, want := range cases {
		if got := GoFieldName(in); got != want {
			t.Fatalf("GoFieldName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileOutput(t *testing.T) {
	msg, err := schema.Parse(sensorSource)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	src, err := File(msg, "msgs", "sensor_reading.umsg")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		Header,
		"package msgs",
		"SensorReadingMsgHash",
		fmt.Sprintf("= %#08x", msg.Hash),
		"SensorReadingPayloadSize",
		"= 29",
		"SensorId uint32",
		"[3]float64",
		"func (m *SensorReading) Encode(buf []byte) (int, error)",
		"w.WriteFloat64Array(m.Values[:])",
		"r.ReadUint32()",
		"func (m *SensorReading) Decode(data []byte) error",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("generated source missing %q:\n%s", want, src)
		}
	}
}

func TestFileDeterministic(t *testing.T) {
	msg, err := schema.Parse(sensorSource)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a, _ := File(msg, "msgs", "s.umsg")
	b, _ := File(msg, "msgs", "s.umsg")
	if a != b {
		t.Fatalf("generator output not deterministic")
	}
}
