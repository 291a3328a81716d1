// Управление двухканальным источником питания TTi PL330DP
// https://resources.aimtti.com/manuals/PL-P_Series_Instruction_Manual-Iss18.pdf

package instruments

import (
	"github.com/pkg/errors"
)

var pl330dpCommands = map[string]Command{
	"master_voltage": {
		Query: "V1?", Write: "V1 %g",
		Check: Range{Min: 0, Max: 30},
	},
	// Токи задаются в миллиамперах.
	"master_current": {
		Query: "I1?", Write: "I1 %g",
		Check: Range{Min: 0, Max: 3030},
	},
	"slave_voltage": {
		Query: "V2?", Write: "V2 %g",
		Check: Range{Min: 0, Max: 30},
	},
	"slave_current": {
		Query: "I2?", Write: "I2 %g",
		Check: Range{Min: 0, Max: 3030},
	},
}

type TTiPL330DP struct {
	inst *Instrument
}

// Инициализация источника питания.
func (ps *TTiPL330DP) Init(adapter Adapter) error {
	ps.inst = NewInstrument(adapter, "TTi PL330DP Power Supply", pl330dpCommands)
	return ps.inst.Reset()
}

// Напряжение главного канала в вольтах: от 0 до 30.
func (ps *TTiPL330DP) SetMasterVoltage(volts float64) error {
	return ps.inst.Set("master_voltage", volts)
}

func (ps *TTiPL330DP) MasterVoltage() (float64, error) {
	return ps.inst.GetFloat("master_voltage")
}

// Ток главного канала в миллиамперах: от 0 до 3030.
func (ps *TTiPL330DP) SetMasterCurrent(milliamps float64) error {
	return ps.inst.Set("master_current", milliamps)
}

func (ps *TTiPL330DP) MasterCurrent() (float64, error) {
	return ps.inst.GetFloat("master_current")
}

// Напряжение второго канала в вольтах: от 0 до 30.
func (ps *TTiPL330DP) SetSlaveVoltage(volts float64) error {
	return ps.inst.Set("slave_voltage", volts)
}

func (ps *TTiPL330DP) SlaveVoltage() (float64, error) {
	return ps.inst.GetFloat("slave_voltage")
}

// Ток второго канала в миллиамперах: от 0 до 3030.
func (ps *TTiPL330DP) SetSlaveCurrent(milliamps float64) error {
	return ps.inst.Set("slave_current", milliamps)
}

func (ps *TTiPL330DP) SlaveCurrent() (float64, error) {
	return ps.inst.GetFloat("slave_current")
}

// Адрес прибора на шине; используется GPIB, на остальных интерфейсах
// служит общим идентификатором.
func (ps *TTiPL330DP) Address() (int, error) {
	values, err := ps.inst.Values("ADDRESS?")
	if err != nil {
		return 0, errors.Wrap(err, "address read fail")
	}
	if len(values) == 0 {
		return 0, errors.New("get empty address response")
	}
	return int(values[0]), nil
}
