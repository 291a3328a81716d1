package instruments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest330(t *testing.T) (*LakeShore330, *SimulatedAdapter) {
	t.Helper()
	sim := NewSimulatedAdapter()
	sim.Replies["SYST:ERR?;*CLS"] = "0,\"No error\""
	tc := &LakeShore330{}
	require.NoError(t, tc.Init(sim))
	return tc, sim
}

func TestLS330TemperatureA(t *testing.T) {
	tc, sim := newTest330(t)
	sim.Replies["KRDG? A"] = "+77.350"

	kelvin, err := tc.TemperatureA()
	require.NoError(t, err)
	assert.Equal(t, 77.35, kelvin)
}

func TestLS330SetpointClamping(t *testing.T) {
	tc, sim := newTest330(t)

	require.NoError(t, tc.SetSetpoint(-10))
	assert.Equal(t, "SETP 0", sim.LastSent())

	require.NoError(t, tc.SetSetpoint(500))
	assert.Equal(t, "SETP 475", sim.LastSent())

	require.NoError(t, tc.SetSetpoint(50))
	assert.Equal(t, "SETP 50", sim.LastSent())
}

func TestLS330HeaterRangeRoundTrip(t *testing.T) {
	tc, sim := newTest330(t)

	wires := map[string]string{"off": "0", "low": "1", "medium": "2", "high": "3"}
	for logical, wire := range wires {
		require.NoError(t, tc.SetHeaterRange(logical))
		assert.Equal(t, "RANG "+wire, sim.LastSent())

		sim.Replies["RANG?"] = wire
		value, err := tc.HeaterRange()
		require.NoError(t, err)
		assert.Equal(t, logical, value)
	}

	err := tc.SetHeaterRange("maximum")
	var invalid *InvalidValueError
	assert.ErrorAs(t, err, &invalid)
}

func TestLS330AutoTune(t *testing.T) {
	tc, sim := newTest330(t)

	require.NoError(t, tc.SetAutoTune("PID"))
	assert.Equal(t, "TUNE 3", sim.LastSent())

	sim.Replies["TUNE?"] = "4"
	mode, err := tc.AutoTune()
	require.NoError(t, err)
	assert.Equal(t, "Zone", mode)
}

func TestLS330PIDTerms(t *testing.T) {
	tc, sim := newTest330(t)

	require.NoError(t, tc.SetGain(1500))
	assert.Equal(t, "GAIN 999", sim.LastSent())

	require.NoError(t, tc.SetIntegral(-5))
	assert.Equal(t, "RSET 0", sim.LastSent())

	require.NoError(t, tc.SetRate(100))
	assert.Equal(t, "RATE 100", sim.LastSent())
}
