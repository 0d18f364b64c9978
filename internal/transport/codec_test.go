package transport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-biosignal/measure/affect"
	"github.com/cwbudde/algo-biosignal/measure/cardiac"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

func TestCodecByName(t *testing.T) {
	c, err := CodecByName("")
	require.NoError(t, err)
	require.Equal(t, "application/json", c.ContentType())

	c, err = CodecByName("msgpack")
	require.NoError(t, err)
	require.Equal(t, "application/msgpack", c.ContentType())

	_, err = CodecByName("xml")
	require.Error(t, err)
}

func TestCodecsRoundTripRawSample(t *testing.T) {
	in := pipeline.RawSample{Counter: 9, Ch: [3]uint16{1, 2048, 4095}}

	for _, c := range []Codec{JSONCodec{}, MsgpackCodec{}} {
		data, err := c.Marshal(in)
		require.NoError(t, err)

		var out pipeline.RawSample
		require.NoError(t, c.Unmarshal(data, &out))
		require.Equal(t, in, out, c.ContentType())
	}
}

func TestJSONCardiacUpdateFields(t *testing.T) {
	bpm := 72
	sdnn := 41.5
	display := 71.2
	up := pipeline.CardiacUpdate{
		Seq:        500,
		Result:     cardiac.Result{BPM: &bpm, SDNN: &sdnn, Peaks: []int{}},
		State:      affect.Relaxed,
		Stable:     affect.NoData,
		DisplayBPM: &display,
	}

	data, err := JSONCodec{}.Marshal(up)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, JSONCodec{}.Unmarshal(data, &fields))
	require.EqualValues(t, 72, fields["bpm"])
	require.EqualValues(t, 41.5, fields["sdnn"])
	require.Nil(t, fields["rmssd"])
	require.Equal(t, "relaxed", fields["state"])
	require.Equal(t, "no_data", fields["stableState"])
	require.EqualValues(t, 500, fields["seq"])
}
