// Управление цифровым синхронным усилителем NF LI5660
// https://www.nfcorp.co.jp/english/pro/mi/loc/loc/li5660/

package instruments

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Буферы данных измерений прибора.
var li5660Buffers = map[string]string{
	"Buffer1": "BUF1",
	"Buffer2": "BUF2",
	"Buffer3": "BUF3",
}

var li5660OnOff = Map{"On": 1, "Off": 0}

var li5660Commands = map[string]Command{
	// Подсистема CALCulate: величины на выходах DATA1..DATA4
	// и постобработка результатов.
	"calculate1_format": {
		Query: ":CALC1:FORM?", Write: ":CALC1:FORM %s",
		Check: Map{
			"Real": "REAL", "Mlinear": "MLIN", "Imaginary": "IMAG",
			"Phase": "PHAS", "Noise": "NOIS", "Aux1": "AUX1",
			"Real2": "REAL2", "Mlinear2": "MLIN2",
		},
	},
	"calculate2_format": {
		Query: ":CALC2:FORM?", Write: ":CALC2:FORM %s",
		Check: Map{
			"Imaginary": "IMAG", "Phase": "PHAS", "Aux1": "AUX1",
			"Aux2": "AUX2", "Real2": "REAL2", "Mlinear2": "MLIN2",
			"Imaginary2": "IMAG2", "Phase2": "PHAS2",
		},
	},
	"calculate3_format": {
		Query: ":CALC3:FORM?", Write: ":CALC3:FORM %s",
		Check: Map{
			"Real": "REAL", "Mlinear": "MLIN", "Imaginary": "IMAG",
			"Phase": "PHAS", "Real2": "REAL2", "Mlinear2": "MLIN2",
		},
	},
	"calculate4_format": {
		Query: ":CALC4:FORM?", Write: ":CALC4:FORM %s",
		Check: Map{
			"Imaginary": "IMAG", "Phase": "PHAS", "Real2": "REAL2",
			"Mlinear2": "MLIN2", "Imaginary2": "IMAG2", "Phase2": "PHAS2",
		},
	},
	"calculate1_math_current": {
		Query: ":CALC1:MATH:CURR?", Write: ":CALC1:MATH:CURR %g",
		Check: Range{Min: 1e-15, Max: 1e-6},
	},
	"calculate1_math_expression": {
		Query: ":CALC1:MATH:EXPR:NAME?", Write: ":CALC1:MATH:EXPR:NAME %s",
		Check: Map{
			"DB":          "DB, 'dB'",
			"Reference":   "PCNT, ''",
			"Sensitivity": "PCFS, ''",
		},
	},
	"calculate1_math_voltage": {
		Query: ":CALC1:MATH:VOLT?", Write: ":CALC1:MATH:VOLT %g",
		Check: Range{Min: 1e-9, Max: 10},
	},
	// Множители расширения выходов; вывод результата дополнительно
	// требует включения расчета командой :CALC5:MATH EXP.
	"calculate1_multiplier": {
		Query: ":CALC1:MULT?", Write: ":CALC5:MATH EXP; :CALC1:MULT %d",
		Check: Set{1, 10, 100},
	},
	"calculate2_multiplier": {
		Query: ":CALC2:MULT?", Write: ":CALC5:MATH EXP; :CALC2:MULT %d",
		Check: Set{1, 10, 100},
	},
	"calculate3_multiplier": {
		Query: ":CALC3:MULT?", Write: ":CALC5:MATH EXP; :CALC3:MULT %d",
		Check: Set{1, 10, 100},
	},
	"calculate4_multiplier": {
		Query: ":CALC4:MULT?", Write: ":CALC5:MATH EXP; :CALC4:MULT %d",
		Check: Set{1, 10, 100},
	},
	// Смещения выходов в процентах полной шкалы чувствительности.
	"calculate1_offset": {
		Query: "CALC1:OFFS?", Write: ":CALC1:OFFS:STAT ON; :CALC1:OFFS %g",
		Check: Range{Min: -105, Max: 105},
	},
	"calculate2_offset": {
		Query: "CALC2:OFFS?", Write: ":CALC2:OFFS:STAT ON; :CALC2:OFFS %g",
		Check: Range{Min: -105, Max: 105},
	},
	"calculate3_offset": {
		Query: "CALC3:OFFS?", Write: ":CALC3:OFFS:STAT ON; :CALC3:OFFS %g",
		Check: Range{Min: -105, Max: 105},
	},
	"calculate4_offset": {
		Query: "CALC4:OFFS?", Write: ":CALC4:OFFS:STAT ON; :CALC4:OFFS %g",
		Check: Range{Min: -105, Max: 105},
	},
	"calculate1_offset_state": {
		Query: ":CALC1:OFFS:STAT?", Write: ":CALC1:OFFS:STAT %d",
		Check: li5660OnOff,
	},
	"calculate2_offset_state": {
		Query: ":CALC2:OFFS:STAT?", Write: ":CALC2:OFFS:STAT %d",
		Check: li5660OnOff,
	},
	"calculate3_offset_state": {
		Query: ":CALC3:OFFS:STAT?", Write: ":CALC3:OFFS:STAT %d",
		Check: li5660OnOff,
	},
	"calculate4_offset_state": {
		Query: ":CALC4:OFFS:STAT?", Write: ":CALC4:OFFS:STAT %d",
		Check: li5660OnOff,
	},
	"calculation_method": {
		Query: ":CALC5:MATH?", Write: ":CALC5:MATH %s",
		Check: Map{"Off": "OFF", "Expand": "EXP", "Normalize": "NORM", "Ratio": "RAT"},
	},
	// Подсистема DATA: внутренний таймер и состав записываемых данных.
	"data_timer": {
		Query: ":DATA:TIM?", Write: ":DATA:TIM:STAT ON; :DATA:TIM %g",
		Check: Range{Min: 1.92e-6, Max: 20},
	},
	"data_timer_state": {
		Query: ":DATA:TIM:STAT?", Write: ":DATA:TIM:STAT %d",
		Check: li5660OnOff,
	},
	// Битовая маска набора данных для :FETC?: 1 — STATUS, 2 — DATA1,
	// 4 — DATA2, 8 — DATA3, 16 — DATA4, 32 — FREQ.
	"data_sets": {
		Query: ":DATA?", Write: ":DATA %d",
		Check: Range{Min: 0, Max: 63},
	},
	// Подсистема DISPlay
	"screen": {
		Query: ":DISP?", Write: ":DISP %s",
		Check: Map{"Normal": "NORM", "Large": "LARG", "Fine": "FINE"},
	},
	"display_window": {
		Query: ":DISP:WIND?", Write: ":DISP:WIND %d",
		Check: li5660OnOff,
	},
	// Подсистема FORMat
	"format": {
		Query: ":FORM?", Write: ":FORM %s",
		Check: Map{"ASCII": "ASC", "Real": "REAL", "Integer": "INT"},
	},
	// Подсистема INPut
	"input_coupling": {
		Query: ":INP:COUP?", Write: ":INP:COUP %s",
		Check: Set{"AC", "DC"},
	},
	"input_notch_frequency": {
		Query: ":INP:FILT:NOTC1:FREQ?", Write: ":INP:FILT:NOTC1:FREQ %d",
		Check: Set{50, 60},
	},
	"input_notch1_state": {
		Query: ":INP:FILT:NOTC1?", Write: ":INP:FILT:NOTC1 %d",
		Check: li5660OnOff,
	},
	"input_notch2_state": {
		Query: ":INP:FILT:NOTC2?", Write: ":INP:FILT:NOTC2 %d",
		Check: li5660OnOff,
	},
	// Коэффициент преобразования ток-напряжение: 1 МВ/А или 100 МВ/А.
	"input_gain": {
		Query: ":INP:GAIN?", Write: ":INP:GAIN %s",
		Check: Map{1: "IE6", 100: "IE8"},
	},
	"input_impedance": {
		Query: ":INP:IMP?", Write: ":INP:IMP %g",
	},
	"input_low": {
		Query: ":INP:LOW?", Write: ":INP:LOW %s",
		Check: Map{"Float": "FLO", "Ground": "GRO"},
	},
	"input_offset_auto": {
		Query: ":INP:OFFS:AUTO?", Write: ":INP:OFFS:AUTO %d",
		Check: li5660OnOff,
	},
	"input_offset_stime": {
		Query: ":INP:OFFS:STIM?", Write: ":INP:OFFS:STIM %g",
		Check: Set{200e-3, 750e-3, 3000e-3},
	},
	"input_type": {
		Query: ":INP2:TYPE?", Write: ":INP2:TYPE %s",
		Check: Map{"Sine": "SIN", "TTL Rising": "TPOS", "TTL Falling": "TNEG"},
	},
	// Подсистема OUTPut: состояние выходных клемм DATA1..DATA4.
	"output1_state": {
		Query: ":OUTP?", Write: ":OUTP %d",
		Check: li5660OnOff,
	},
	"output2_state": {
		Query: ":OUTP2?", Write: ":OUTP2 %d",
		Check: li5660OnOff,
	},
	"output3_state": {
		Query: ":OUTP3?", Write: ":OUTP3 %d",
		Check: li5660OnOff,
	},
	"output4_state": {
		Query: ":OUTP4?", Write: ":OUTP4 %d",
		Check: li5660OnOff,
	},
	// Подсистема ROUTe: входной разъем и источник опорного сигнала.
	"route_terminals": {
		Query: ":ROUT?", Write: ":ROUT %s",
		Check: Set{"A", "AB", "C", "I", "HF"},
	},
	"route2_terminals": {
		Query: ":ROUT2?", Write: "ROUT2 %s",
		Check: Map{"Ref In": "RINP", "Internal": "IOSC", "Signal In": "SINP"},
	},
	// Чувствительность
	"current_ac_range_auto": {
		Query: ":CURR:AC:RANG:AUTO?", Write: ":CURR:AC:RANG:AUTO %d",
		Check: li5660OnOff,
	},
	"current_ac_range": {
		Query: ":CURR:AC:RANG?", Write: ":ROUT I; :CURR:AC:RANG %g",
		Check: Range{Min: 10e-15, Max: 1e-6},
	},
	"current2_ac_range": {
		Query: ":CURR2:AC:RANG?", Write: ":ROUT I; :CURR2:AC:RANG %g",
		Check: Range{Min: 10e-15, Max: 1e-6},
	},
	"detector": {
		Query: ":DET?", Write: ":DET %s",
		Check: Map{"Single": "SING", "Dual1": "DUAL1", "Dual2": "DUAL2", "Cascade": "CASC"},
	},
	"dynamic_reserve": {
		Query: "DRES?", Write: "DRES %s",
		Check: Map{"High": "HIGH", "Medium": "MED", "Low": "LOW"},
	},
	"filter_slope": {
		Query: ":FILT:SLOP?", Write: ":FILT:SLOP %d",
		Check: Set{6, 12, 18, 24},
	},
	"time_constant": {
		Query: ":FILT:TCON?", Write: ":FILT:TCON %g",
		Check: Range{Min: 1e-6, Max: 50e3},
	},
	"filter_type": {
		Query: ":FILT:TYPE?", Write: ":FILT:TYPE %s",
		Check: Map{"Exponential": "EXP", "Moving": "MOV"},
	},
	"filter2_slope": {
		Query: ":FILT2:SLOP?", Write: ":FILT2:SLOP %d",
		Check: Set{6, 12, 18, 24},
	},
	"time_constant2": {
		Query: ":FILT2:TCON?", Write: ":FILT2:TCON %g",
		Check: Range{Min: 1e-6, Max: 50e3},
	},
	"filter2_type": {
		Query: ":FILT2:TYPE?", Write: ":FILT2:TYPE %s",
		Check: Map{"Exponential": "EXP", "Moving": "MOV"},
	},
	"frequency_harmonic": {
		Query: ":FREQ:HARM?", Write: ":FREQ:HARM %d",
		Check: li5660OnOff,
	},
	"frequency_harmonic_multiplier": {
		Query: ":FREQ:MULT?", Write: ":FREQ:HARM ON; :FREQ:MULT %d",
		Check: Range{Min: 1, Max: 63},
	},
	"frequency_subharmonic_multiplier": {
		Query: "FREQ:SMUL?", Write: ":FREQ:HARM ON; :FREQ:SMUL %d",
		Check: Range{Min: 1, Max: 63},
	},
	"frequency2_harmonic": {
		Query: ":FREQ2:HARM?", Write: ":FREQ2:HARM %d",
		Check: li5660OnOff,
	},
	"frequency2_harmonic_multiplier": {
		Query: ":FREQ2:MULT?", Write: ":FREQ2:HARM ON; :FREQ2:MULT %d",
		Check: Range{Min: 1, Max: 63},
	},
	// Коэффициент сглаживания при измерении плотности шума.
	"smoothing": {
		Query: ":NOIS?", Write: ":NOIS %d",
		Check: Set{1, 4, 16, 64},
	},
	"phase": {
		Query: ":PHAS?", Write: ":PHAS %g",
		Check: Range{Min: -180, Max: 179.999},
	},
	"phase2": {
		Query: ":PHAS2?", Write: ":PHAS2 %g",
		Check: Range{Min: -180, Max: 179.999},
	},
	"reference_frequency_source": {
		Query: ":ROSC:SOUR?", Write: ":ROSC:SOUR %s",
		Check: Map{"Internal": "INT", "External": "EXT"},
	},
	"voltage_ac_range_auto": {
		Query: ":VOLT:AC:RANG:AUTO?", Write: ":VOLT:AC:RANG:AUTO %d",
		Check: li5660OnOff,
	},
	"voltage_ac_range": {
		Query: ":VOLT:AC:RANG?", Write: ":VOLT:AC:RANG %g",
		Check: Range{Min: 10e-9, Max: 10},
	},
	"voltage2_ac_range": {
		Query: ":VOLT2:AC:RANG?", Write: ":VOLT2:AC:RANG %g",
		Check: Range{Min: 10e-9, Max: 10},
	},
	// Входы AUX IN 1 и AUX IN 2.
	"voltage5_dc_state": {
		Query: ":VOLT5:STAT?", Write: ":VOLT5:STAT %d",
		Check: li5660OnOff,
	},
	"voltage5_dc_timeconstant": {
		Query: ":VOLT5:TCON?", Write: ":VOLT5:TCON %g",
		Check: Set{125e-6, 500e-6, 2e-3},
	},
	"voltage6_dc_state": {
		Query: ":VOLT6:STAT?", Write: ":VOLT6:STAT %d",
		Check: li5660OnOff,
	},
	"voltage6_dc_timeconstant": {
		Query: ":VOLT6:TCON?", Write: ":VOLT6:TCON %g",
		Check: Set{125e-6, 500e-6, 2e-3},
	},
	// Подсистема SOURce: внутренние генераторы и выходы AUX OUT.
	"source_frequency": {
		Query: ":SOUR:FREQ?", Write: "SOUR:FREQ %g",
		Check: Range{Min: 300e-3, Max: 1.15e7},
	},
	"source_frequency2": {
		Query: ":SOUR:FREQ2?", Write: ":SOUR:FREQ2 %g",
		Check: Range{Min: 300e-3, Max: 1.15e7},
	},
	"source_oscillator": {
		Query: ":SOUR:IOSC?", Write: ":SOUR:IOSC %s",
		Check: Map{"Primary": "PRI", "Secondary": "SEC"},
	},
	"source_voltage": {
		Query: ":SOUR:VOLT?", Write: ":SOUR:VOLT %g",
		Check: Range{Min: 0, Max: 1},
	},
	"source_voltage_range": {
		Query: ":SOUR:VOLT:RANG?", Write: ":SOUR:VOLT:RANG %g",
		Check: Set{10e-3, 100e-3, 1},
	},
	"source5_voltage_offset": {
		Query: ":SOUR5:VOLT:OFFS?", Write: ":SOUR5:VOLT:OFFS %g",
		Check: Range{Min: -10.5, Max: 10.5},
	},
	"source6_voltage_offset": {
		Query: ":SOUR6:VOLT:OFFS?", Write: ":SOUR6:VOLT:OFFS %g",
		Check: Range{Min: -10.5, Max: 10.5},
	},
	// Подсистема STATus
	"status_operation_enable": {
		Query: ":STAT:OPER:ENAB?", Write: ":STAT:OPER:ENAB %d",
		Check: Range{Min: 0, Max: 65535},
	},
	// Подсистема SYSTem
	"system_key_lock": {
		Query: ":SYST:KLOC?", Write: ":SYST:KLOC %d",
		Check: li5660OnOff,
	},
	// Подсистема TRIGger
	"trigger_delay": {
		Query: ":TRIG:DEL?", Write: ":TRIG:DEL %g",
		Check: Range{Min: 0, Max: 100},
	},
	"trigger_source": {
		Query: ":TRIG:SOUR?", Write: ":TRIG:SOUR %s",
		Check: Map{"Manual": "MAN", "External": "EXT", "Bus": "BUS"},
	},
}

type LI5660 struct {
	inst *Instrument
}

// Инициализация синхронного усилителя.
func (li *LI5660) Init(adapter Adapter) error {
	li.inst = NewInstrument(adapter, "NF Lock-In Amplifier LI5660", li5660Commands)
	return li.inst.Reset()
}

// SetParameter записывает значение параметра из таблицы команд,
// Parameter читает его. Таблица покрывает все подсистемы прибора;
// для часто используемых параметров ниже есть типизированные методы.
func (li *LI5660) SetParameter(name string, value any) error {
	return li.inst.Set(name, value)
}

func (li *LI5660) Parameter(name string) (any, error) {
	return li.inst.Get(name)
}

// Величина на выходе DATA1: Real, Mlinear, Imaginary, Phase, Noise,
// Aux1, Real2 или Mlinear2.
func (li *LI5660) SetData1Format(format string) error {
	return li.inst.Set("calculate1_format", format)
}

func (li *LI5660) Data1Format() (string, error) {
	return li.inst.GetString("calculate1_format")
}

// Величина на выходе DATA2.
func (li *LI5660) SetData2Format(format string) error {
	return li.inst.Set("calculate2_format", format)
}

func (li *LI5660) Data2Format() (string, error) {
	return li.inst.GetString("calculate2_format")
}

// Величина на выходе DATA3.
func (li *LI5660) SetData3Format(format string) error {
	return li.inst.Set("calculate3_format", format)
}

// Величина на выходе DATA4.
func (li *LI5660) SetData4Format(format string) error {
	return li.inst.Set("calculate4_format", format)
}

// Метод расчета отображаемых величин: Off, Expand, Normalize или Ratio.
func (li *LI5660) SetCalculationMethod(method string) error {
	return li.inst.Set("calculation_method", method)
}

func (li *LI5660) CalculationMethod() (string, error) {
	return li.inst.GetString("calculation_method")
}

// Смещение выхода X первичного ФЧД в процентах полной шкалы.
func (li *LI5660) SetPrimaryXOffset(percent float64) error {
	return li.inst.Set("calculate1_offset", percent)
}

// Смещение выхода Y первичного ФЧД.
func (li *LI5660) SetPrimaryYOffset(percent float64) error {
	return li.inst.Set("calculate2_offset", percent)
}

// Смещение выхода X вторичного ФЧД.
func (li *LI5660) SetSecondaryXOffset(percent float64) error {
	return li.inst.Set("calculate3_offset", percent)
}

// Смещение выхода Y вторичного ФЧД.
func (li *LI5660) SetSecondaryYOffset(percent float64) error {
	return li.inst.Set("calculate4_offset", percent)
}

// Автоматическая установка смещений X и Y первичного ФЧД
// по текущему сигналу с включением подстройки.
func (li *LI5660) AutoPrimaryOffset() error {
	return li.inst.Write(":CALC1:OFFS:AUTO:ONCE")
}

// Автоматическая установка смещений X и Y вторичного ФЧД.
func (li *LI5660) AutoSecondaryOffset() error {
	return li.inst.Write(":CALC3:OFFS:AUTO:ONCE")
}

// Режим детектирования: Single, Dual1, Dual2 или Cascade.
func (li *LI5660) SetDetectionMode(mode string) error {
	return li.inst.Set("detector", mode)
}

func (li *LI5660) DetectionMode() (string, error) {
	return li.inst.GetString("detector")
}

// Динамический резерв: High, Medium или Low.
func (li *LI5660) SetDynamicReserve(level string) error {
	return li.inst.Set("dynamic_reserve", level)
}

func (li *LI5660) DynamicReserve() (string, error) {
	return li.inst.GetString("dynamic_reserve")
}

// Входной разъем измеряемого сигнала: A, AB, C, I или HF.
func (li *LI5660) SetInputTerminal(terminal string) error {
	return li.inst.Set("route_terminals", terminal)
}

func (li *LI5660) InputTerminal() (string, error) {
	return li.inst.GetString("route_terminals")
}

// Источник опорного сигнала: Ref In, Internal или Signal In.
func (li *LI5660) SetReferenceSignal(source string) error {
	return li.inst.Set("route2_terminals", source)
}

func (li *LI5660) ReferenceSignal() (string, error) {
	return li.inst.GetString("route2_terminals")
}

// Связь по входу: AC или DC.
func (li *LI5660) SetCoupling(method string) error {
	return li.inst.Set("input_coupling", method)
}

func (li *LI5660) Coupling() (string, error) {
	return li.inst.GetString("input_coupling")
}

// Частота режекторного фильтра помехи сети: 50 или 60 Гц.
func (li *LI5660) SetNotchFrequency(hertz int) error {
	return li.inst.Set("input_notch_frequency", hertz)
}

// Фазовый сдвиг первичного ФЧД в градусах.
func (li *LI5660) SetPhase(degrees float64) error {
	return li.inst.Set("phase", degrees)
}

func (li *LI5660) Phase() (float64, error) {
	return li.inst.GetFloat("phase")
}

// Фазовый сдвиг вторичного ФЧД в градусах.
func (li *LI5660) SetPhase2(degrees float64) error {
	return li.inst.Set("phase2", degrees)
}

func (li *LI5660) Phase2() (float64, error) {
	return li.inst.GetFloat("phase2")
}

// Автоподстройка фазового сдвига до нулевой фазы первичного ФЧД.
func (li *LI5660) AutoPhase() error {
	return li.inst.Write(":PHAS:AUTO:ONCE")
}

// Автоподстройка фазового сдвига вторичного ФЧД.
func (li *LI5660) AutoPhase2() error {
	return li.inst.Write(":PHAS2:AUTO:ONCE")
}

// Постоянная времени фильтра первичного ФЧД в секундах,
// ряд 1-2-5 от 1 мкс до 50 кс.
func (li *LI5660) SetTimeConstant(seconds float64) error {
	return li.inst.Set("time_constant", seconds)
}

func (li *LI5660) TimeConstant() (float64, error) {
	return li.inst.GetFloat("time_constant")
}

// Крутизна среза фильтра первичного ФЧД: 6, 12, 18 или 24 дБ/окт.
func (li *LI5660) SetFilterSlope(dbPerOct int) error {
	return li.inst.Set("filter_slope", dbPerOct)
}

func (li *LI5660) FilterSlope() (int, error) {
	return li.inst.GetInt("filter_slope")
}

// Автоподбор постоянной времени фильтра по частоте.
func (li *LI5660) AutoFilter() error {
	return li.inst.Write(":FILT:AUTO:ONCE")
}

// Чувствительность по напряжению первичного ФЧД в вольтах.
func (li *LI5660) SetVoltageSensitivity(volts float64) error {
	return li.inst.Set("voltage_ac_range", volts)
}

func (li *LI5660) VoltageSensitivity() (float64, error) {
	return li.inst.GetFloat("voltage_ac_range")
}

// Однократный автоподбор чувствительности по напряжению.
func (li *LI5660) AutoVoltageRange() error {
	return li.inst.Write(":VOLT:AC:RANG:AUTO:ONCE")
}

// Чувствительность по току первичного ФЧД в амперах.
func (li *LI5660) SetCurrentSensitivity(amps float64) error {
	return li.inst.Set("current_ac_range", amps)
}

func (li *LI5660) CurrentSensitivity() (float64, error) {
	return li.inst.GetFloat("current_ac_range")
}

// Однократный автоподбор чувствительности по току.
func (li *LI5660) AutoCurrentRange() error {
	return li.inst.Write(":CURR:AC:RANG:AUTO:ONCE")
}

// Однократный автоподбор чувствительности и постоянной времени,
// соответствует панельной операции AUTO -> MEASURE.
func (li *LI5660) AutoMeasurement() error {
	return li.inst.Write(":AUTO:ONCE")
}

// Однократная автоподстройка смещения входа ФЧД.
func (li *LI5660) AutoInputOffset() error {
	return li.inst.Write(":INP:OFFS:AUTO:ONCE")
}

// Отключение подстройки смещения входа ФЧД и возврат
// заводской настройки.
func (li *LI5660) RestoreInputOffset() error {
	return li.inst.Write(":INP:OFFS:RST")
}

// Частота первичного ФЧД в герцах.
func (li *LI5660) PrimaryFrequency() (float64, error) {
	values, err := li.inst.Values(":FREQ?")
	if err != nil {
		return 0, errors.Wrap(err, "primary frequency read fail")
	}
	if len(values) == 0 {
		return 0, errors.New("get empty frequency response")
	}
	return values[0], nil
}

// Частота вторичного ФЧД, используется в режимах Dual2 и Cascade.
func (li *LI5660) SecondaryFrequency() (float64, error) {
	values, err := li.inst.Values(":FREQ2?")
	if err != nil {
		return 0, errors.Wrap(err, "secondary frequency read fail")
	}
	if len(values) == 0 {
		return 0, errors.New("get empty frequency response")
	}
	return values[0], nil
}

// Частота внутреннего генератора первичного ФЧД в герцах.
func (li *LI5660) SetSourceFrequency(hertz float64) error {
	return li.inst.Set("source_frequency", hertz)
}

func (li *LI5660) SourceFrequency() (float64, error) {
	return li.inst.GetFloat("source_frequency")
}

// Амплитуда внутреннего генератора в вольтах: от 0 до 1.
func (li *LI5660) SetSourceVoltage(volts float64) error {
	return li.inst.Set("source_voltage", volts)
}

func (li *LI5660) SourceVoltage() (float64, error) {
	return li.inst.GetFloat("source_voltage")
}

// Новейшие измеренные данные согласно набору data_sets.
func (li *LI5660) Fetch() ([]float64, error) {
	data, err := li.inst.Values(":FETC?")
	if err != nil {
		return nil, errors.Wrap(err, "fetch fail")
	}
	return data, nil
}

// Статус измерения: выбор набора STATUS и его чтение одним запросом.
func (li *LI5660) GetStatus() (int, error) {
	values, err := li.inst.Values(":DATA 1; :FETC?")
	if err != nil {
		return 0, errors.Wrap(err, "status read fail")
	}
	if len(values) == 0 {
		return 0, errors.New("get empty status response")
	}
	return int(values[0]), nil
}

// Значение регистра условий операций (OPCR).
func (li *LI5660) OperationCondition() (int, error) {
	response, err := li.inst.Query(":STAT:OPER:COND?")
	if err != nil {
		return 0, errors.Wrap(err, "operation condition read fail")
	}
	condition, err := strconv.Atoi(strings.TrimSpace(response))
	if err != nil {
		return 0, errors.Wrap(err, "conversion for operation condition failed")
	}
	return condition, nil
}

// Число точек, записанных в буфер данных измерений.
func (li *LI5660) BufferCount(buffer string) (int, error) {
	wire, err := li.bufferName(buffer)
	if err != nil {
		return 0, err
	}
	values, err := li.inst.Values(fmt.Sprintf(":DATA:COUN? %s", wire))
	if err != nil {
		return 0, errors.Wrap(err, "buffer count read fail")
	}
	if len(values) == 0 {
		return 0, errors.New("get empty buffer count response")
	}
	return int(values[0]), nil
}

// Считывание участка буфера данных измерений.
func (li *LI5660) GetBuffer(buffer string, length, start int) ([]float64, error) {
	wire, err := li.bufferName(buffer)
	if err != nil {
		return nil, err
	}
	data, err := li.inst.Values(fmt.Sprintf(":DATA:DATA? %s, %d, %d", wire, length, start))
	if err != nil {
		return nil, errors.Wrap(err, "buffer read fail")
	}
	return data, nil
}

// Очистка буфера данных измерений.
func (li *LI5660) ClearBuffer(buffer string) error {
	wire, err := li.bufferName(buffer)
	if err != nil {
		return err
	}
	return li.inst.Write(fmt.Sprintf(":DATA:DEL %s", wire))
}

// Очистка всех буферов данных измерений.
func (li *LI5660) ClearAllBuffers() error {
	return li.inst.Write(":DATA:DEL:ALL")
}

// Состав данных, записываемых в буфер, битовой маской как в data_sets.
func (li *LI5660) DataFeed(buffer string, sets int) error {
	wire, err := li.bufferName(buffer)
	if err != nil {
		return err
	}
	return li.inst.Write(fmt.Sprintf(":DATA:FEED %s, %d", wire, sets))
}

// Разрешение записи данных измерений в буфер: Always или Never.
func (li *LI5660) DataFeedControl(buffer string, state string) error {
	wire, err := li.bufferName(buffer)
	if err != nil {
		return err
	}
	states := map[string]string{"Always": "ALW", "Never": "NEV"}
	wireState, known := states[state]
	if !known {
		return &InvalidValueError{Value: state, Allowed: "Always, Never"}
	}
	return li.inst.Write(fmt.Sprintf(":DATA:FEED:CONT %s, %s", wire, wireState))
}

// Размер буфера данных измерений в точках.
func (li *LI5660) DataPoints(buffer string, size int) error {
	wire, err := li.bufferName(buffer)
	if err != nil {
		return err
	}
	return li.inst.Write(fmt.Sprintf(":DATA:POIN %s, %d", wire, size))
}

// Очистка указанной конфигурационной памяти.
func (li *LI5660) DeleteMemory(num int) error {
	return li.inst.Write(fmt.Sprintf(":MEM:STAT:DEL %d", num))
}

// Переименование указанной конфигурационной памяти.
func (li *LI5660) NameMemory(name string, num int) error {
	return li.inst.Write(fmt.Sprintf(":MEM:STAT:DEF '%s', %d", name, num))
}

// Перевод триггерной системы в состояние ожидания запуска.
func (li *LI5660) Initiate() error {
	return li.inst.Write(":INIT")
}

// Остановка записи в буфер и возврат триггерной системы
// в состояние покоя.
func (li *LI5660) Abort() error {
	return li.inst.Write(":ABOR")
}

// Программный запуск: запись данных в разрешенные буферы;
// требует предварительного Initiate.
func (li *LI5660) Trigger() error {
	return li.inst.Write(":TRIG")
}

// Инициализация настроек; в отличие от *RST очищает
// и конфигурационные памяти 1-9.
func (li *LI5660) Initialize() error {
	return li.inst.Write(":SYST:RST")
}

// Выборка очереди ошибок прибора до кода 0.
func (li *LI5660) DrainErrors() ([]string, error) {
	var drained []string
	for {
		response, err := li.inst.Query(":SYST:ERR?")
		if err != nil {
			return drained, errors.Wrap(err, "error queue read fail")
		}
		splitResponse := strings.SplitN(strings.TrimSpace(response), ",", 2)
		code, err := strconv.Atoi(splitResponse[0])
		if err != nil {
			return drained, errors.Wrap(err, "conversion for error code failed")
		}
		if code == 0 {
			return drained, nil
		}
		message := fmt.Sprintf("NF LI5660: %s", response)
		log.Error(message)
		drained = append(drained, message)
	}
}

func (li *LI5660) bufferName(buffer string) (string, error) {
	wire, known := li5660Buffers[buffer]
	if !known {
		return "", &InvalidValueError{Value: buffer, Allowed: "Buffer1, Buffer2, Buffer3"}
	}
	return wire, nil
}
