package instruments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCommands = map[string]Command{
	"mode": {
		Query: "MODE?", Write: "MODE %s",
		Check: Map{"fast": "FAST", "slow": "SLOW"},
	},
	"level": {
		Query: "LEV?", Write: "LEV %g",
		Check: Range{Min: 0, Max: 10},
	},
	"reading": {Query: "READ?"},
	"start":   {Write: "STRT"},
}

func newTestInstrument() (*Instrument, *SimulatedAdapter) {
	sim := NewSimulatedAdapter()
	inst := NewInstrument(sim, "Test Instrument", testCommands)
	return inst, sim
}

func TestSetMappedProperty(t *testing.T) {
	inst, sim := newTestInstrument()

	require.NoError(t, inst.Set("mode", "fast"))
	assert.Equal(t, "MODE FAST", sim.LastSent())
}

func TestSetDiscreteViolationSendsNothing(t *testing.T) {
	inst, sim := newTestInstrument()

	err := inst.Set("mode", "turbo")
	var invalid *InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, sim.Sent)
}

func TestSetRangeClamping(t *testing.T) {
	inst, sim := newTestInstrument()

	require.NoError(t, inst.Set("level", -5))
	assert.Equal(t, "LEV 0", sim.LastSent())

	require.NoError(t, inst.Set("level", 15))
	assert.Equal(t, "LEV 10", sim.LastSent())

	require.NoError(t, inst.Set("level", 7.5))
	assert.Equal(t, "LEV 7.5", sim.LastSent())
}

func TestGetMappedProperty(t *testing.T) {
	inst, sim := newTestInstrument()
	sim.Replies["MODE?"] = "SLOW"

	value, err := inst.GetString("mode")
	require.NoError(t, err)
	assert.Equal(t, "slow", value)
}

func TestMappedRoundTrip(t *testing.T) {
	inst, sim := newTestInstrument()

	for logical, wire := range map[string]string{"fast": "FAST", "slow": "SLOW"} {
		require.NoError(t, inst.Set("mode", logical))
		sim.Replies["MODE?"] = wire
		value, err := inst.GetString("mode")
		require.NoError(t, err)
		assert.Equal(t, logical, value)
	}
}

func TestGetNumericProperty(t *testing.T) {
	inst, sim := newTestInstrument()
	sim.Replies["READ?"] = "+1.25E-3"

	value, err := inst.GetFloat("reading")
	require.NoError(t, err)
	assert.Equal(t, 1.25e-3, value)
}

func TestAccessDirectionErrors(t *testing.T) {
	inst, _ := newTestInstrument()

	_, err := inst.Get("start")
	assert.Error(t, err)

	err = inst.Set("reading", 1)
	assert.Error(t, err)

	_, err = inst.Get("unknown")
	assert.Error(t, err)
}

func TestCheckErrors(t *testing.T) {
	inst, sim := newTestInstrument()

	sim.Replies["SYST:ERR?;*CLS"] = "0,\"No error\""
	assert.NoError(t, inst.CheckErrors())

	sim.Replies["SYST:ERR?;*CLS"] = "-113,\"Undefined header\""
	assert.Error(t, inst.CheckErrors())
}

func TestWriteCheckedWrapsInstrumentError(t *testing.T) {
	inst, sim := newTestInstrument()
	sim.Replies["SYST:ERR?;*CLS"] = "-221,\"Settings conflict\""

	err := inst.WriteChecked("STRT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRT")
	assert.Contains(t, err.Error(), "Settings conflict")
}

func TestReadinessString(t *testing.T) {
	assert.Equal(t, "NotReady", NotReady.String())
	assert.Equal(t, "Ready", Ready.String())
	assert.Equal(t, "Unknown", Unknown.String())
}
