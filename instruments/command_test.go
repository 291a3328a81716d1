package instruments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeTruncation(t *testing.T) {
	check := Range{Min: 2, Max: 1024}

	below, err := check.Validate(1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, below)

	above, err := check.Validate(5000)
	require.NoError(t, err)
	assert.Equal(t, 1024.0, above)

	inside, err := check.Validate(100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, inside)

	_, err = check.Validate("ten")
	assert.Error(t, err)
}

func TestSetMembership(t *testing.T) {
	check := Set{0, 1, 2}

	value, err := check.Validate(1)
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	_, err = check.Validate(5)
	var invalid *InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 5, invalid.Value)
}

func TestMapSubstitution(t *testing.T) {
	check := Map{"Voltage": "'VOLT'", "Temperature": "'TEMP'"}

	wire, err := check.Validate("Voltage")
	require.NoError(t, err)
	assert.Equal(t, "'VOLT'", wire)

	_, err = check.Validate("Current")
	var invalid *InvalidValueError
	require.ErrorAs(t, err, &invalid)
}

func TestMapLogicalLookup(t *testing.T) {
	stringMap := Map{"Voltage": "'VOLT'", "Temperature": "'TEMP'"}
	logical, found := stringMap.Logical("VOLT")
	require.True(t, found)
	assert.Equal(t, "Voltage", logical)

	intMap := Map{"off": 0, "low": 1, "medium": 2, "high": 3}
	logical, found = intMap.Logical("2")
	require.True(t, found)
	assert.Equal(t, "medium", logical)

	floatMap := Map{2e-9: 0, 5e-9: 1}
	logical, found = floatMap.Logical("1")
	require.True(t, found)
	assert.Equal(t, 5e-9, logical)

	_, found = intMap.Logical("7")
	assert.False(t, found)
}

func TestFormatCommand(t *testing.T) {
	// Целочисленный формат принимает вещественное значение после усечения.
	assert.Equal(t, ":TRAC:POIN 100", formatCommand(":TRAC:POIN %d", 100.0))
	assert.Equal(t, "SETP 50.5", formatCommand("SETP %g", 50.5))
	assert.Equal(t, "SETP 50", formatCommand("SETP %g", 50))
	assert.Equal(t, ":SENS:FUNC 'VOLT'", formatCommand(":SENS:FUNC %s", "'VOLT'"))
	assert.Equal(t, "AMPL 5, 1", formatCommand("AMPL %g, 1", 5.0))
}

func TestParseValues(t *testing.T) {
	values, err := parseValues("1.0,2.0,3.0\n")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, values)

	values, err = parseValues(" -1.5e-3 , 2.25 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{-1.5e-3, 2.25}, values)

	_, err = parseValues("1.0,abc")
	assert.Error(t, err)
}
