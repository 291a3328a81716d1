package instruments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest2182A(t *testing.T) (*Keithley2182A, *SimulatedAdapter) {
	t.Helper()
	sim := NewSimulatedAdapter()
	sim.Replies["SYST:ERR?;*CLS"] = "0,\"No error\""
	nv := &Keithley2182A{}
	require.NoError(t, nv.Init(sim))
	return nv, sim
}

func TestK2182ATriggerSequence(t *testing.T) {
	nv, sim := newTest2182A(t)

	started := time.Now()
	require.NoError(t, nv.Trigger())
	elapsed := time.Since(started)

	assert.Equal(t, ":TRAC:CLE; :SENS:FUNC 'VOLT'; :TRAC:POIN 100; "+
		":TRAC:FEED:CONT NEXT; :TRAC:FEED SENS; :INIT:CONT 1", sim.LastSent())
	// Управление возвращается только после фиксированной паузы.
	assert.GreaterOrEqual(t, elapsed, bufferFillDelay)
}

func TestK2182ACheckStatusBoundary(t *testing.T) {
	nv, sim := newTest2182A(t)

	sim.Replies[":STAT:MEAS:COND?"] = "895"
	state, err := nv.CheckStatus()
	require.NoError(t, err)
	assert.Equal(t, NotReady, state)

	sim.Replies[":STAT:MEAS:COND?"] = "896"
	state, err = nv.CheckStatus()
	require.NoError(t, err)
	assert.Equal(t, Ready, state)
}

func TestK2182ACheckStatusUnknownOnFault(t *testing.T) {
	nv, sim := newTest2182A(t)
	sim.Replies[":STAT:MEAS:COND?"] = "not a number"

	state, err := nv.CheckStatus()
	assert.Error(t, err)
	assert.Equal(t, Unknown, state)
}

func TestK2182AReadingAvailable(t *testing.T) {
	nv, sim := newTest2182A(t)

	sim.Replies[":STAT:MEAS?"] = "32"
	available, err := nv.ReadingAvailable()
	require.NoError(t, err)
	assert.False(t, available)

	sim.Replies[":STAT:MEAS?"] = "512"
	available, err = nv.ReadingAvailable()
	require.NoError(t, err)
	assert.True(t, available)
}

func TestK2182AGetBuffer(t *testing.T) {
	nv, sim := newTest2182A(t)
	sim.Replies["TRAC:DATA?"] = "1.0,2.0,3.0"

	buffer, err := nv.GetBuffer()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, buffer)
}

func TestK2182AMeasurementRoundTrip(t *testing.T) {
	nv, sim := newTest2182A(t)

	wires := map[string]string{"Voltage": "VOLT", "Temperature": "TEMP"}
	for logical, wire := range wires {
		require.NoError(t, nv.SetMeasurement(logical))
		assert.Equal(t, ":SENS:FUNC '"+wire+"'", sim.LastSent())

		sim.Replies[":SENS:FUNC?"] = wire
		value, err := nv.Measurement()
		require.NoError(t, err)
		assert.Equal(t, logical, value)
	}

	err := nv.SetMeasurement("Current")
	var invalid *InvalidValueError
	assert.ErrorAs(t, err, &invalid)
}

func TestK2182AChannel(t *testing.T) {
	nv, sim := newTest2182A(t)

	require.NoError(t, nv.SetChannel(2))
	assert.Equal(t, ":SENS:CHAN 2", sim.LastSent())

	err := nv.SetChannel(5)
	var invalid *InvalidValueError
	assert.ErrorAs(t, err, &invalid)
}

func TestK2182ABufferSizeClamping(t *testing.T) {
	nv, sim := newTest2182A(t)

	require.NoError(t, nv.SetBufferSize(1))
	assert.Equal(t, ":TRAC:POIN 2", sim.LastSent())

	require.NoError(t, nv.SetBufferSize(4096))
	assert.Equal(t, ":TRAC:POIN 1024", sim.LastSent())

	require.NoError(t, nv.SetBufferSize(100))
	assert.Equal(t, ":TRAC:POIN 100", sim.LastSent())
}

func TestK2182ABufferControlRoundTrip(t *testing.T) {
	nv, sim := newTest2182A(t)

	require.NoError(t, nv.SetBufferControl("Stop"))
	assert.Equal(t, ":TRAC:FEED:CONT NEV", sim.LastSent())

	sim.Replies[":TRAC:FEED:CONT?"] = "NEXT"
	mode, err := nv.BufferControl()
	require.NoError(t, err)
	assert.Equal(t, "Start", mode)
}

func TestK2182AInitiateContinuous(t *testing.T) {
	nv, sim := newTest2182A(t)

	require.NoError(t, nv.SetInitiateContinuous(true))
	assert.Equal(t, ":INIT:CONT 1", sim.LastSent())

	sim.Replies[":INIT:CONT?"] = "0"
	enabled, err := nv.InitiateContinuous()
	require.NoError(t, err)
	assert.False(t, enabled)
}
