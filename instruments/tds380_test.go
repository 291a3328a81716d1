package instruments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest380(t *testing.T) (*TDS380, *SimulatedAdapter) {
	t.Helper()
	sim := NewSimulatedAdapter()
	sim.Replies["SYST:ERR?;*CLS"] = "0,\"No error\""
	osc := &TDS380{}
	require.NoError(t, osc.Init(sim))
	return osc, sim
}

func TestTDS380SourceRoundTrip(t *testing.T) {
	osc, sim := newTest380(t)

	wires := map[string]string{
		"Channel1": "CH1", "Channel2": "CH2", "Reference2": "REF2", "Math1": "MATH1",
	}
	for logical, wire := range wires {
		require.NoError(t, osc.SetSource(logical))
		assert.Equal(t, "DAT:SOU "+wire, sim.LastSent())

		sim.Replies["DAT:SOU?"] = wire
		value, err := osc.Source()
		require.NoError(t, err)
		assert.Equal(t, logical, value)
	}

	err := osc.SetSource("Channel3")
	var invalid *InvalidValueError
	assert.ErrorAs(t, err, &invalid)
}

func TestTDS380DataFormat(t *testing.T) {
	osc, sim := newTest380(t)

	require.NoError(t, osc.SetDataFormat("ASCII"))
	assert.Equal(t, "DAT:ENC ASCI", sim.LastSent())

	sim.Replies["DAT:ENC?"] = "RIB"
	format, err := osc.DataFormat()
	require.NoError(t, err)
	assert.Equal(t, "Ribinary", format)
}

func TestTDS380DataWidthPassthrough(t *testing.T) {
	osc, sim := newTest380(t)

	// Ширина точки объявлена без ограничения и передается как есть.
	require.NoError(t, osc.SetDataWidth(2))
	assert.Equal(t, "DAT:WID 2", sim.LastSent())

	require.NoError(t, osc.SetDataWidth(7))
	assert.Equal(t, "DAT:WID 7", sim.LastSent())
}

func TestTDS380DataWindowClamping(t *testing.T) {
	osc, sim := newTest380(t)

	require.NoError(t, osc.SetDataStart(0))
	assert.Equal(t, "DAT:STAR 1", sim.LastSent())

	require.NoError(t, osc.SetDataStop(2000))
	assert.Equal(t, "DAT:STOP 1000", sim.LastSent())

	require.NoError(t, osc.SetDataStop(100))
	assert.Equal(t, "DAT:STOP 501", sim.LastSent())
}

func TestTDS380Waveform(t *testing.T) {
	osc, sim := newTest380(t)

	sim.Replies["WFMPR?"] = "1;8;ASC;RP;MSB;500"
	info, err := osc.WaveformInfo()
	require.NoError(t, err)
	assert.Equal(t, "1;8;ASC;RP;MSB;500", info)

	sim.Replies["CURV?"] = "12,-7,128"
	curve, err := osc.GetCurve()
	require.NoError(t, err)
	assert.Equal(t, []float64{12, -7, 128}, curve)
}
