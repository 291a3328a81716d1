// Управление источником-измерителем Keithley 2420
// https://download.tek.com/manual/2400S-900-01_K-Sep2011_User.pdf

package instruments

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Значение статусного байта, означающее заполнение буфера показаний.
const k2420BufferFullStatus = 65

var k2420Commands = map[string]Command{
	"config_measurement": {
		Query: ":CONF?", Write: ":CONF:%s",
		Check: Map{"Amps": "CURR:DC", "Volts": "VOLT:DC", "Ohms": "RES"},
	},
	"count": {
		Query: "COUN?", Write: "COUN %d",
		Check: Range{Min: 1, Max: 2500},
	},
	"buffer_points": {
		Query: ":TRAC:POIN?", Write: ":TRAC:POIN %d",
		Check: Range{Min: 1, Max: 2500},
	},
	"source_mode": {
		Query: ":SOUR:FUNC?", Write: ":SOUR:FUNC %s",
		Check: Map{"current": "CURR", "voltage": "VOLT"},
	},
	"source_enabled": {
		Query: "OUTPut?", Write: "OUTPut %d",
		Check: Map{true: 1, false: 0},
	},
	"source_current": {
		Query: ":SOUR:CURR?", Write: ":SOUR:CURR:LEV %g",
		Check: Range{Min: -1.05, Max: 1.05},
	},
	"source_current_range": {
		Query: ":SOUR:CURR:RANG?", Write: ":SOUR:CURR:RANG:AUTO 0;:SOUR:CURR:RANG %g",
		Check: Range{Min: -1.05, Max: 1.05},
	},
	"compliance_voltage": {
		Query: ":SENS:VOLT:PROT?", Write: ":SENS:VOLT:PROT %g",
		Check: Range{Min: -210, Max: 210},
	},
	"compliance_current": {
		Query: ":SENS:CURR:PROT?", Write: ":SENS:CURR:PROT %g",
		Check: Range{Min: 10e-9, Max: 3.15},
	},
	"source_voltage": {
		Query: ":SOUR:VOLT?", Write: ":SOUR:VOLT:LEV %g",
		Check: Range{Min: -10.05, Max: 10.05},
	},
	"source_voltage_range": {
		Query: ":SOUR:VOLT:RANG?", Write: ":SOUR:VOLT:RANG:AUTO 0;:SOUR:VOLT:RANG %g",
		Check: Range{Min: -210, Max: 210},
	},
	// Диапазоны измерителя, используются measure-методами при отключенном
	// автоматическом выборе диапазона.
	"current_range": {
		Query: ":SENS:CURR:RANG?", Write: ":SENS:CURR:RANG:AUTO 0;:SENS:CURR:RANG %g",
		Check: Range{Min: -1.05, Max: 1.05},
	},
	"voltage_range": {
		Query: ":SENS:VOLT:RANG?", Write: ":SENS:VOLT:RANG:AUTO 0;:SENS:VOLT:RANG %g",
		Check: Range{Min: -210, Max: 210},
	},
	"resistance_range": {
		Query: ":SENS:RES:RANG?", Write: ":SENS:RES:RANG:AUTO 0;:SENS:RES:RANG %g",
		Check: Range{Min: 0, Max: 2.1e8},
	},
	"wires": {
		Query: ":SYSTEM:RSENSE?", Write: ":SYSTEM:RSENSE %d",
		Check: Map{4: 1, 2: 0},
	},
}

type Keithley2420 struct {
	inst *Instrument
}

// Инициализация источника-измерителя.
func (sm *Keithley2420) Init(adapter Adapter) error {
	sm.inst = NewInstrument(adapter, "Keithley 2420 SourceMeter", k2420Commands)
	return sm.inst.Reset()
}

// Выбор измеряемой величины: Amps, Volts или Ohms.
func (sm *Keithley2420) SetConfigMeasurement(function string) error {
	return sm.inst.Set("config_measurement", function)
}

func (sm *Keithley2420) ConfigMeasurement() (string, error) {
	return sm.inst.GetString("config_measurement")
}

// Число повторов операции в слое триггерной модели: от 1 до 2500.
func (sm *Keithley2420) SetCount(count int) error {
	return sm.inst.Set("count", count)
}

func (sm *Keithley2420) Count() (int, error) {
	return sm.inst.GetInt("count")
}

// Настроенное число точек буфера: от 1 до 2500.
func (sm *Keithley2420) SetBufferPoints(points int) error {
	return sm.inst.Set("buffer_points", points)
}

func (sm *Keithley2420) BufferPoints() (int, error) {
	return sm.inst.GetInt("buffer_points")
}

// Режим источника: current или voltage.
func (sm *Keithley2420) SetSourceMode(mode string) error {
	return sm.inst.Set("source_mode", mode)
}

func (sm *Keithley2420) SourceMode() (string, error) {
	return sm.inst.GetString("source_mode")
}

// Состояние выхода источника.
func (sm *Keithley2420) SetSourceEnabled(enabled bool) error {
	return sm.inst.Set("source_enabled", enabled)
}

func (sm *Keithley2420) SourceEnabled() (bool, error) {
	return sm.inst.GetBool("source_enabled")
}

// Ток источника в амперах: от -1.05 до 1.05.
func (sm *Keithley2420) SetSourceCurrent(amps float64) error {
	return sm.inst.Set("source_current", amps)
}

func (sm *Keithley2420) SourceCurrent() (float64, error) {
	return sm.inst.GetFloat("source_current")
}

// Диапазон тока источника в амперах, автодиапазон при этом отключается.
func (sm *Keithley2420) SetSourceCurrentRange(amps float64) error {
	return sm.inst.Set("source_current_range", amps)
}

func (sm *Keithley2420) SourceCurrentRange() (float64, error) {
	return sm.inst.GetFloat("source_current_range")
}

// Предел напряжения в вольтах: от -210 до 210.
func (sm *Keithley2420) SetComplianceVoltage(volts float64) error {
	return sm.inst.Set("compliance_voltage", volts)
}

func (sm *Keithley2420) ComplianceVoltage() (float64, error) {
	return sm.inst.GetFloat("compliance_voltage")
}

// Предел тока в амперах: от 10 нА до 3.15 А.
func (sm *Keithley2420) SetComplianceCurrent(amps float64) error {
	return sm.inst.Set("compliance_current", amps)
}

func (sm *Keithley2420) ComplianceCurrent() (float64, error) {
	return sm.inst.GetFloat("compliance_current")
}

// Напряжение источника в вольтах: от -10.05 до 10.05.
func (sm *Keithley2420) SetSourceVoltage(volts float64) error {
	return sm.inst.Set("source_voltage", volts)
}

func (sm *Keithley2420) SourceVoltage() (float64, error) {
	return sm.inst.GetFloat("source_voltage")
}

// Диапазон напряжения источника в вольтах, автодиапазон при этом отключается.
func (sm *Keithley2420) SetSourceVoltageRange(volts float64) error {
	return sm.inst.Set("source_voltage_range", volts)
}

func (sm *Keithley2420) SourceVoltageRange() (float64, error) {
	return sm.inst.GetFloat("source_voltage_range")
}

// Число проводов для измерения сопротивления: 2 или 4.
func (sm *Keithley2420) SetWires(wires int) error {
	return sm.inst.Set("wires", wires)
}

func (sm *Keithley2420) Wires() (int, error) {
	return sm.inst.GetInt("wires")
}

// Запуск настроенного измерения и чтение результата.
func (sm *Keithley2420) Read() ([]float64, error) {
	return sm.inst.Values(":READ?")
}

// Настройка измерения тока: nplc от 0.01 до 10, current — верхний предел
// тока в амперах для фиксированного диапазона, autoRange включает
// автоматический выбор диапазона.
func (sm *Keithley2420) MeasureCurrent(nplc, current float64, autoRange bool) error {
	log.Infof("%s is measuring current.", sm.inst.Name())
	err := sm.inst.Write(fmt.Sprintf(":SENS:FUNC 'CURR';:SENS:CURR:NPLC %f;:FORM:ELEM CURR;", nplc))
	if err != nil {
		return errors.Wrap(err, "current measurement setup fail")
	}
	if autoRange {
		err = sm.inst.Write(":SENS:CURR:RANG:AUTO 1;")
	} else {
		err = sm.inst.Set("current_range", current)
	}
	if err != nil {
		return errors.Wrap(err, "current measurement setup fail")
	}
	return sm.inst.CheckErrors()
}

// Настройка измерения напряжения: nplc от 0.01 до 10, voltage — верхний
// предел напряжения в вольтах для фиксированного диапазона.
func (sm *Keithley2420) MeasureVoltage(nplc, voltage float64, autoRange bool) error {
	log.Infof("%s is measuring voltage.", sm.inst.Name())
	err := sm.inst.Write(fmt.Sprintf(":SENS:FUNC 'VOLT';:SENS:VOLT:NPLC %f;:FORM:ELEM VOLT;", nplc))
	if err != nil {
		return errors.Wrap(err, "voltage measurement setup fail")
	}
	if autoRange {
		err = sm.inst.Write(":SENS:VOLT:RANG:AUTO 1;")
	} else {
		err = sm.inst.Set("voltage_range", voltage)
	}
	if err != nil {
		return errors.Wrap(err, "voltage measurement setup fail")
	}
	return sm.inst.CheckErrors()
}

// Настройка измерения сопротивления: nplc от 0.01 до 10, resistance —
// верхний предел сопротивления в омах для фиксированного диапазона.
func (sm *Keithley2420) MeasureResistance(nplc, resistance float64, autoRange bool) error {
	log.Infof("%s is measuring resistance.", sm.inst.Name())
	err := sm.inst.Write(fmt.Sprintf(":SENS:FUNC 'RES';:SENS:RES:MODE MAN;:SENS:RES:NPLC %f;:FORM:ELEM RES;", nplc))
	if err != nil {
		return errors.Wrap(err, "resistance measurement setup fail")
	}
	if autoRange {
		err = sm.inst.Write(":SENS:RES:RANG:AUTO 1;")
	} else {
		err = sm.inst.Set("resistance_range", resistance)
	}
	if err != nil {
		return errors.Wrap(err, "resistance measurement setup fail")
	}
	return sm.inst.CheckErrors()
}

// Перевод триггерной системы в состояние ожидания запуска.
func (sm *Keithley2420) Initiate() error {
	return sm.inst.Write(":INIT")
}

// Сброс триггерной системы в состояние покоя.
func (sm *Keithley2420) Abort() error {
	return sm.inst.Write(":ABOR")
}

// Считывание накопленного буфера показаний.
func (sm *Keithley2420) GetData() ([]float64, error) {
	data, err := sm.inst.Values(":TRAC:DATA?")
	if err != nil {
		return nil, errors.Wrap(err, "buffer read fail")
	}
	return data, nil
}

// Заполнен ли буфер показаний, по значению статусного байта.
func (sm *Keithley2420) IsBufferFull() (bool, error) {
	response, err := sm.inst.Query("*STB?")
	if err != nil {
		return false, errors.Wrap(err, "status byte read fail")
	}
	statusBit, err := strconv.Atoi(strings.TrimSpace(response))
	if err != nil {
		return false, errors.Wrap(err, "conversion for status byte failed")
	}
	return statusBit == k2420BufferFullStatus, nil
}

// Включение выхода источника тока или напряжения.
func (sm *Keithley2420) EnableSource() error {
	return sm.inst.Write("OUTPUT ON")
}

// Отключение выхода источника тока или напряжения.
func (sm *Keithley2420) DisableSource() error {
	return sm.inst.Write("OUTPUT OFF")
}
