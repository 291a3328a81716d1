package instruments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest5640(t *testing.T) (*LI5640, *SimulatedAdapter) {
	t.Helper()
	sim := NewSimulatedAdapter()
	sim.Replies["SYST:ERR?;*CLS"] = "0,\"No error\""
	li := &LI5640{}
	require.NoError(t, li.Init(sim))
	return li, sim
}

func TestLI5640PhaseClamping(t *testing.T) {
	li, sim := newTest5640(t)

	require.NoError(t, li.SetPhase(-300))
	assert.Equal(t, "PHAS -180", sim.LastSent())

	require.NoError(t, li.SetPhase(200))
	assert.Equal(t, "PHAS 179.99", sim.LastSent())

	require.NoError(t, li.SetPhase(45))
	assert.Equal(t, "PHAS 45", sim.LastSent())
}

func TestLI5640AmplitudeRanges(t *testing.T) {
	li, sim := newTest5640(t)

	require.NoError(t, li.SetAmplitude50mV(25))
	assert.Equal(t, "AMPL 25, 0", sim.LastSent())

	require.NoError(t, li.SetAmplitude500mV(900))
	assert.Equal(t, "AMPL 500, 1", sim.LastSent())

	require.NoError(t, li.SetAmplitude5V(2.5))
	assert.Equal(t, "AMPL 2.5, 2", sim.LastSent())
}

func TestLI5640VoltageSensitivityRoundTrip(t *testing.T) {
	li, sim := newTest5640(t)

	require.NoError(t, li.SetVoltageSensitivity(2e-9))
	assert.Equal(t, "VSEN 0", sim.LastSent())

	require.NoError(t, li.SetVoltageSensitivity(1))
	assert.Equal(t, "VSEN 26", sim.LastSent())

	sim.Replies["VSEN?"] = "19"
	volts, err := li.VoltageSensitivity()
	require.NoError(t, err)
	assert.Equal(t, 5e-3, volts)

	// Промежуточное значение — не из таблицы.
	err = li.SetVoltageSensitivity(3e-9)
	var invalid *InvalidValueError
	assert.ErrorAs(t, err, &invalid)
}

func TestLI5640TimeConstantRoundTrip(t *testing.T) {
	li, sim := newTest5640(t)

	require.NoError(t, li.SetTimeConstant(30e-6))
	assert.Equal(t, "TCON 1", sim.LastSent())

	sim.Replies["TCON?"] = "19"
	seconds, err := li.TimeConstant()
	require.NoError(t, err)
	assert.Equal(t, 30e3, seconds)
}

func TestLI5640SignalInput(t *testing.T) {
	li, sim := newTest5640(t)

	wires := map[string]string{"A": "0", "AB": "1", "I6": "2", "I8": "3"}
	for logical, wire := range wires {
		require.NoError(t, li.SetSignalInput(logical))
		assert.Equal(t, "ISRC "+wire, sim.LastSent())

		sim.Replies["ISRC?"] = wire
		value, err := li.SignalInput()
		require.NoError(t, err)
		assert.Equal(t, logical, value)
	}
}

func TestLI5640Slope(t *testing.T) {
	li, sim := newTest5640(t)

	require.NoError(t, li.SetSlope(24))
	assert.Equal(t, "SLOP 3", sim.LastSent())

	err := li.SetSlope(9)
	var invalid *InvalidValueError
	assert.ErrorAs(t, err, &invalid)
}

func TestLI5640DataRecording(t *testing.T) {
	li, sim := newTest5640(t)

	require.NoError(t, li.SetData1("Noise"))
	assert.Equal(t, "DDEF 1, 2", sim.LastSent())

	require.NoError(t, li.SetData2("Theta"))
	assert.Equal(t, "DDEF 2, 1", sim.LastSent())

	require.NoError(t, li.SetDataSize("64K"))
	assert.Equal(t, "DSIZ 5", sim.LastSent())

	require.NoError(t, li.SetDataNumber(64))
	assert.Equal(t, "DNUM 31", sim.LastSent())

	require.NoError(t, li.SetDataSamplingPeriod(62.5e-6))
	assert.Equal(t, "DSMP 1", sim.LastSent())

	require.NoError(t, li.DataSamplingByGPIB())
	assert.Equal(t, "DSMP 0", sim.LastSent())
}

func TestLI5640Actions(t *testing.T) {
	li, sim := newTest5640(t)

	require.NoError(t, li.Trigger())
	assert.Equal(t, "*TRG", sim.LastSent())

	require.NoError(t, li.Start())
	assert.Equal(t, "STRT", sim.LastSent())

	require.NoError(t, li.Stop())
	assert.Equal(t, "STOP", sim.LastSent())

	sim.Replies["SPTS?"] = "2048"
	points, err := li.StoredPoints()
	require.NoError(t, err)
	assert.Equal(t, 2048, points)
}

func TestLI5640Read(t *testing.T) {
	li, sim := newTest5640(t)
	sim.Replies["DOUT?"] = "1.5e-6,-0.25"

	data, err := li.Read()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5e-6, -0.25}, data)
}
