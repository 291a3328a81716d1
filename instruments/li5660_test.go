package instruments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest5660(t *testing.T) (*LI5660, *SimulatedAdapter) {
	t.Helper()
	sim := NewSimulatedAdapter()
	sim.Replies["SYST:ERR?;*CLS"] = "0,\"No error\""
	li := &LI5660{}
	require.NoError(t, li.Init(sim))
	return li, sim
}

func TestLI5660DetectionModeRoundTrip(t *testing.T) {
	li, sim := newTest5660(t)

	wires := map[string]string{
		"Single": "SING", "Dual1": "DUAL1", "Dual2": "DUAL2", "Cascade": "CASC",
	}
	for logical, wire := range wires {
		require.NoError(t, li.SetDetectionMode(logical))
		assert.Equal(t, ":DET "+wire, sim.LastSent())

		sim.Replies[":DET?"] = wire
		value, err := li.DetectionMode()
		require.NoError(t, err)
		assert.Equal(t, logical, value)
	}
}

func TestLI5660MultiplierCompoundWrite(t *testing.T) {
	li, sim := newTest5660(t)

	// Запись множителя дополнительно включает расчет расширения.
	require.NoError(t, li.SetParameter("calculate1_multiplier", 10))
	assert.Equal(t, ":CALC5:MATH EXP; :CALC1:MULT 10", sim.LastSent())

	err := li.SetParameter("calculate1_multiplier", 7)
	var invalid *InvalidValueError
	assert.ErrorAs(t, err, &invalid)
}

func TestLI5660OffsetCompoundWrite(t *testing.T) {
	li, sim := newTest5660(t)

	require.NoError(t, li.SetPrimaryXOffset(200))
	assert.Equal(t, ":CALC1:OFFS:STAT ON; :CALC1:OFFS 105", sim.LastSent())

	require.NoError(t, li.SetSecondaryYOffset(-50))
	assert.Equal(t, ":CALC4:OFFS:STAT ON; :CALC4:OFFS -50", sim.LastSent())
}

func TestLI5660InputGain(t *testing.T) {
	li, sim := newTest5660(t)

	require.NoError(t, li.SetParameter("input_gain", 100))
	assert.Equal(t, ":INP:GAIN IE8", sim.LastSent())

	sim.Replies[":INP:GAIN?"] = "IE6"
	value, err := li.Parameter("input_gain")
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestLI5660TriggerDelayClamping(t *testing.T) {
	li, sim := newTest5660(t)

	require.NoError(t, li.SetParameter("trigger_delay", 350))
	assert.Equal(t, ":TRIG:DEL 100", sim.LastSent())
}

func TestLI5660BufferOperations(t *testing.T) {
	li, sim := newTest5660(t)

	sim.Replies[":DATA:COUN? BUF2"] = "512"
	count, err := li.BufferCount("Buffer2")
	require.NoError(t, err)
	assert.Equal(t, 512, count)

	sim.Replies[":DATA:DATA? BUF1, 3, 0"] = "1.0,2.0,3.0"
	data, err := li.GetBuffer("Buffer1", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, data)

	require.NoError(t, li.ClearBuffer("Buffer3"))
	assert.Equal(t, ":DATA:DEL BUF3", sim.LastSent())

	require.NoError(t, li.ClearAllBuffers())
	assert.Equal(t, ":DATA:DEL:ALL", sim.LastSent())

	require.NoError(t, li.DataFeed("Buffer1", 30))
	assert.Equal(t, ":DATA:FEED BUF1, 30", sim.LastSent())

	require.NoError(t, li.DataFeedControl("Buffer1", "Always"))
	assert.Equal(t, ":DATA:FEED:CONT BUF1, ALW", sim.LastSent())

	require.NoError(t, li.DataPoints("Buffer1", 16))
	assert.Equal(t, ":DATA:POIN BUF1, 16", sim.LastSent())

	var invalid *InvalidValueError
	_, err = li.BufferCount("Buffer4")
	assert.ErrorAs(t, err, &invalid)

	err = li.DataFeedControl("Buffer1", "Sometimes")
	assert.ErrorAs(t, err, &invalid)
}

func TestLI5660GetStatus(t *testing.T) {
	li, sim := newTest5660(t)
	sim.Replies[":DATA 1; :FETC?"] = "3"

	status, err := li.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status)
}

func TestLI5660Fetch(t *testing.T) {
	li, sim := newTest5660(t)
	sim.Replies[":FETC?"] = "3,1.0E-6,-0.5E-6"

	data, err := li.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1.0e-6, -0.5e-6}, data)
}

func TestLI5660DrainErrors(t *testing.T) {
	li, sim := newTest5660(t)

	// Очередь прибора отдает ошибки до кода 0; заглушка отвечает
	// на повторный запрос одним и тем же ответом, поэтому очередь
	// из одной ошибки моделируется сменой ответа между вызовами.
	sim.Replies[":SYST:ERR?"] = "0,\"No error\""
	drained, err := li.DrainErrors()
	require.NoError(t, err)
	assert.Empty(t, drained)
}

func TestLI5660AutoActions(t *testing.T) {
	li, sim := newTest5660(t)

	require.NoError(t, li.AutoMeasurement())
	assert.Equal(t, ":AUTO:ONCE", sim.LastSent())

	require.NoError(t, li.AutoPhase())
	assert.Equal(t, ":PHAS:AUTO:ONCE", sim.LastSent())

	require.NoError(t, li.AutoFilter())
	assert.Equal(t, ":FILT:AUTO:ONCE", sim.LastSent())

	require.NoError(t, li.AutoVoltageRange())
	assert.Equal(t, ":VOLT:AC:RANG:AUTO:ONCE", sim.LastSent())

	require.NoError(t, li.AutoCurrentRange())
	assert.Equal(t, ":CURR:AC:RANG:AUTO:ONCE", sim.LastSent())

	require.NoError(t, li.AutoInputOffset())
	assert.Equal(t, ":INP:OFFS:AUTO:ONCE", sim.LastSent())

	require.NoError(t, li.RestoreInputOffset())
	assert.Equal(t, ":INP:OFFS:RST", sim.LastSent())
}

func TestLI5660TriggerSystem(t *testing.T) {
	li, sim := newTest5660(t)

	require.NoError(t, li.Initiate())
	assert.Equal(t, ":INIT", sim.LastSent())

	require.NoError(t, li.Trigger())
	assert.Equal(t, ":TRIG", sim.LastSent())

	require.NoError(t, li.Abort())
	assert.Equal(t, ":ABOR", sim.LastSent())

	require.NoError(t, li.Initialize())
	assert.Equal(t, ":SYST:RST", sim.LastSent())
}
