// Управление нановольтметром Keithley 2182A
// https://download.tek.com/manual/2182A-900-01.pdf

package instruments

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Пауза после запуска сбора данных, чтобы прибор начал заполнять буфер.
const bufferFillDelay = time.Second

const (
	// Значение регистра состояния измерения, при котором буфер заполнен.
	k2182aReadyCondition = 896
	// Значение регистра событий измерения, означающее отсутствие нового показания.
	k2182aNoReadingEvent = 32
)

// Составная команда запуска: очистка буфера, выбор функции, буфер на 100
// точек, режим дозаписи, источник показаний и непрерывный запуск.
const k2182aTriggerCommand = ":TRAC:CLE; :SENS:FUNC 'VOLT'; :TRAC:POIN 100; " +
	":TRAC:FEED:CONT NEXT; :TRAC:FEED SENS; :INIT:CONT 1"

var k2182aCommands = map[string]Command{
	"measurement": {
		Query: ":SENS:FUNC?", Write: ":SENS:FUNC %s",
		Check: Map{"Voltage": "'VOLT'", "Temperature": "'TEMP'"},
	},
	"channel": {
		Query: ":SENS:CHAN?", Write: ":SENS:CHAN %d",
		Check: Set{0, 1, 2},
	},
	"reading":      {Query: ":SENS:DATA:FRES?"},
	"last_reading": {Query: ":SENS:DATA?"},
	"buffer_size": {
		Query: ":TRAC:POIN?", Write: ":TRAC:POIN %d",
		Check: Range{Min: 2, Max: 1024},
	},
	"buffer_source": {
		Query: ":TRAC:FEED?", Write: ":TRAC:FEED %s",
		Check: Map{"Sense": "SENS", "Calculate": "CALC", "None": "NONE"},
	},
	"buffer_control": {
		Query: ":TRAC:FEED:CONT?", Write: ":TRAC:FEED:CONT %s",
		Check: Map{"Start": "NEXT", "Stop": "NEV"},
	},
	"initiate_continuous": {
		Query: ":INIT:CONT?", Write: ":INIT:CONT %d",
		Check: Map{true: 1, false: 0},
	},
}

type Keithley2182A struct {
	inst *Instrument
}

// Инициализация нановольтметра.
func (nv *Keithley2182A) Init(adapter Adapter) error {
	nv.inst = NewInstrument(adapter, "Keithley 2182A Nanovoltmeter", k2182aCommands)
	return nv.inst.Reset()
}

// Выбор измеряемой величины: Voltage или Temperature.
func (nv *Keithley2182A) SetMeasurement(function string) error {
	return nv.inst.Set("measurement", function)
}

func (nv *Keithley2182A) Measurement() (string, error) {
	return nv.inst.GetString("measurement")
}

// Выбор канала измерения: 0, 1 или 2 (0 — внутренний датчик температуры).
func (nv *Keithley2182A) SetChannel(channel int) error {
	return nv.inst.Set("channel", channel)
}

func (nv *Keithley2182A) Channel() (int, error) {
	return nv.inst.GetInt("channel")
}

// Новое измерение.
func (nv *Keithley2182A) Read() (float64, error) {
	return nv.inst.GetFloat("reading")
}

// Последнее показание из памяти прибора.
func (nv *Keithley2182A) LastReading() (float64, error) {
	return nv.inst.GetFloat("last_reading")
}

// Размер буфера показаний: от 2 до 1024 точек.
func (nv *Keithley2182A) SetBufferSize(points int) error {
	return nv.inst.Set("buffer_size", points)
}

func (nv *Keithley2182A) BufferSize() (int, error) {
	return nv.inst.GetInt("buffer_size")
}

// Источник показаний для буфера: Sense, Calculate или None.
func (nv *Keithley2182A) SetBufferSource(source string) error {
	return nv.inst.Set("buffer_source", source)
}

func (nv *Keithley2182A) BufferSource() (string, error) {
	return nv.inst.GetString("buffer_source")
}

// Режим записи в буфер: Start или Stop.
func (nv *Keithley2182A) SetBufferControl(mode string) error {
	return nv.inst.Set("buffer_control", mode)
}

func (nv *Keithley2182A) BufferControl() (string, error) {
	return nv.inst.GetString("buffer_control")
}

// Включение или отключение непрерывного запуска измерений.
func (nv *Keithley2182A) SetInitiateContinuous(enabled bool) error {
	return nv.inst.Set("initiate_continuous", enabled)
}

func (nv *Keithley2182A) InitiateContinuous() (bool, error) {
	return nv.inst.GetBool("initiate_continuous")
}

// Очистка буфера показаний.
func (nv *Keithley2182A) ClearBuffer() error {
	return nv.inst.Write(":TRAC:CLE")
}

// Запуск сбора данных одной составной командой. После отправки
// выдерживается фиксированная пауза, чтобы прибор начал заполнять буфер;
// дальнейшее ожидание готовности — через опрос CheckStatus.
func (nv *Keithley2182A) Trigger() error {
	err := nv.inst.Write(k2182aTriggerCommand)
	if err != nil {
		return errors.Wrap(err, "acquisition start fail")
	}
	time.Sleep(bufferFillDelay)
	return nil
}

// Значение регистра состояния измерения.
func (nv *Keithley2182A) Status() (int, error) {
	response, err := nv.inst.Query(":STAT:MEAS:COND?")
	if err != nil {
		return 0, errors.Wrap(err, "measurement status read fail")
	}
	status, err := strconv.Atoi(strings.TrimSpace(response))
	if err != nil {
		return 0, errors.Wrap(err, "conversion for measurement status failed")
	}
	return status, nil
}

// Готовность буфера по регистру состояния измерения.
func (nv *Keithley2182A) CheckStatus() (Readiness, error) {
	status, err := nv.Status()
	if err != nil {
		return Unknown, err
	}
	if status < k2182aReadyCondition {
		return NotReady, nil
	}
	return Ready, nil
}

// Наличие нового показания по регистру событий измерения.
func (nv *Keithley2182A) ReadingAvailable() (bool, error) {
	values, err := nv.inst.Values(":STAT:MEAS?")
	if err != nil {
		return false, errors.Wrap(err, "event register read fail")
	}
	if len(values) == 0 {
		return false, fmt.Errorf("get empty event register response")
	}
	if values[0] == k2182aNoReadingEvent {
		return false, nil
	}
	return true, nil
}

// Считывание накопленного буфера показаний.
func (nv *Keithley2182A) GetBuffer() ([]float64, error) {
	voltage, err := nv.inst.Values("TRAC:DATA?")
	if err != nil {
		return nil, errors.Wrap(err, "buffer read fail")
	}
	return voltage, nil
}
