// Управление фемтоамперметром-источником Keithley 6430
// https://download.tek.com/manual/6430-900-01.pdf

package instruments

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Значение регистра состояния измерения, при котором буфер заполнен.
const k6430ReadyCondition = 768

// Составная команда запуска: очистка буфера, настройка источника и
// измерителя, буфер на 100 точек, включение выхода и явный запуск.
const k6430TriggerCommand = ":TRAC:CLE; :SOUR:FUNC VOLT; :SENS:FUNC 'CURR'; " +
	":SENS:VOLT:NPLC 1; :DISP:DIG 7; :FORM:ELEM CURR; :TRAC:POIN 100; " +
	":TRIG:COUN 100; :TRAC:FEED SENS; :TRAC:FEED:CONT NEXT; :OUTP ON; :INIT;"

type Keithley6430 struct {
	inst *Instrument
}

// Инициализация источника-измерителя.
func (sm *Keithley6430) Init(adapter Adapter) error {
	sm.inst = NewInstrument(adapter, "Keithley 6430 Sub-Femtoamp SourceMeter", nil)
	return sm.inst.Reset()
}

// Запуск сбора данных одной составной командой. После отправки
// выдерживается фиксированная пауза, чтобы прибор начал заполнять буфер.
func (sm *Keithley6430) Trigger() error {
	err := sm.inst.Write(k6430TriggerCommand)
	if err != nil {
		return errors.Wrap(err, "acquisition start fail")
	}
	time.Sleep(bufferFillDelay)
	return nil
}

// Значение регистра состояния измерения.
func (sm *Keithley6430) Status() (int, error) {
	response, err := sm.inst.Query(":STAT:MEAS:COND?")
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
func (sm *Keithley6430) CheckStatus() (Readiness, error) {
	status, err := sm.Status()
	if err != nil {
		return Unknown, err
	}
	if status < k6430ReadyCondition {
		return NotReady, nil
	}
	return Ready, nil
}

// Среднее значение накопленного буфера показаний.
func (sm *Keithley6430) GetBuffer() (float64, error) {
	current, err := sm.inst.Values("TRAC:DATA?")
	if err != nil {
		return 0, errors.Wrap(err, "buffer read fail")
	}
	if len(current) == 0 {
		return 0, fmt.Errorf("get empty buffer from instr")
	}
	sum := 0.0
	for _, value := range current {
		sum += value
	}
	return sum / float64(len(current)), nil
}

// Отключение выхода источника.
func (sm *Keithley6430) DisableSource() error {
	return sm.inst.Write(":OUTP OFF")
}
