package instruments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPL330DP(t *testing.T) (*TTiPL330DP, *SimulatedAdapter) {
	t.Helper()
	sim := NewSimulatedAdapter()
	sim.Replies["SYST:ERR?;*CLS"] = "0,\"No error\""
	ps := &TTiPL330DP{}
	require.NoError(t, ps.Init(sim))
	return ps, sim
}

func TestPL330DPVoltageClamping(t *testing.T) {
	ps, sim := newTestPL330DP(t)

	require.NoError(t, ps.SetMasterVoltage(12.5))
	assert.Equal(t, "V1 12.5", sim.LastSent())

	require.NoError(t, ps.SetMasterVoltage(45))
	assert.Equal(t, "V1 30", sim.LastSent())

	require.NoError(t, ps.SetSlaveVoltage(-3))
	assert.Equal(t, "V2 0", sim.LastSent())

	sim.Replies["V1?"] = "12.5"
	volts, err := ps.MasterVoltage()
	require.NoError(t, err)
	assert.Equal(t, 12.5, volts)
}

func TestPL330DPCurrentClamping(t *testing.T) {
	ps, sim := newTestPL330DP(t)

	require.NoError(t, ps.SetMasterCurrent(1500))
	assert.Equal(t, "I1 1500", sim.LastSent())

	require.NoError(t, ps.SetSlaveCurrent(5000))
	assert.Equal(t, "I2 3030", sim.LastSent())

	sim.Replies["I2?"] = "3030"
	milliamps, err := ps.SlaveCurrent()
	require.NoError(t, err)
	assert.Equal(t, 3030.0, milliamps)
}

func TestPL330DPAddress(t *testing.T) {
	ps, sim := newTestPL330DP(t)

	sim.Replies["ADDRESS?"] = "11"
	address, err := ps.Address()
	require.NoError(t, err)
	assert.Equal(t, 11, address)
}
