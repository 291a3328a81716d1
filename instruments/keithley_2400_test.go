package instruments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest2400(t *testing.T) (*Keithley2400, *SimulatedAdapter) {
	t.Helper()
	sim := NewSimulatedAdapter()
	sim.Replies["SYST:ERR?;*CLS"] = "0,\"No error\""
	sm := &Keithley2400{}
	require.NoError(t, sm.Init(sim))
	return sm, sim
}

func TestK2400ReadSrcData(t *testing.T) {
	sm, sim := newTest2400(t)
	sim.Replies[":READ?"] = "+0.000000E+00,+1.500000E+00,+2.500000E-03"

	current, voltage, err := sm.ReadSrcData()
	require.NoError(t, err)
	assert.Equal(t, 2.5e-3, current)
	assert.Equal(t, 1.5, voltage)

	sim.Replies[":READ?"] = "+1.5"
	_, _, err = sm.ReadSrcData()
	assert.Error(t, err)
}

func TestK2400SuitableVoltageRange(t *testing.T) {
	sm, _ := newTest2400(t)

	// Ближайший допустимый диапазон с округлением вверх.
	assert.Equal(t, 0.02, sm.GetSuitableVoltageRange(0.01))
	assert.Equal(t, 0.2, sm.GetSuitableVoltageRange(0.1))
	assert.Equal(t, 2.0, sm.GetSuitableVoltageRange(1.5))
	assert.Equal(t, 20.0, sm.GetSuitableVoltageRange(-15))
	assert.Equal(t, 200.0, sm.GetSuitableVoltageRange(500))
}

func TestK2400SuitableCurrentRange(t *testing.T) {
	sm, _ := newTest2400(t)

	assert.Equal(t, 10e-9, sm.GetSuitableCurrentRange(5e-9))
	assert.Equal(t, 1e-6, sm.GetSuitableCurrentRange(0.5e-6))
	assert.Equal(t, 0.1, sm.GetSuitableCurrentRange(0.05))
	assert.Equal(t, 1.0, sm.GetSuitableCurrentRange(10))
}

func TestK2400FixedRangeVoltageSource(t *testing.T) {
	sm, sim := newTest2400(t)

	require.NoError(t, sm.SetFixedRangeVoltageSource(1.5, 0.01, 1, true))
	assert.Contains(t, sim.Sent, "SOUR:FUNC VOLT")
	assert.Contains(t, sim.Sent, "SOUR:VOLT:MODE FIX")
	assert.Contains(t, sim.Sent, "SOUR:VOLT:RANG 2.000000")
	assert.Contains(t, sim.Sent, "SENS:CURR:DC:RANG 0.010000")
	assert.Contains(t, sim.Sent, "SYST:RSEN ON")
}

func TestK2400AutoRangeCurrentSource(t *testing.T) {
	sm, sim := newTest2400(t)

	require.NoError(t, sm.SetAutoRangeCurrentSource(1e-3, 10, 1, false))
	assert.Contains(t, sim.Sent, "SOUR:FUNC CURR")
	assert.Contains(t, sim.Sent, "SENS:VOLT:DC:RANG:AUTO ON")
	assert.Contains(t, sim.Sent, "SOUR:CURR 0.001000")
	assert.Contains(t, sim.Sent, "SYST:RSEN OFF")
}
