// Управление синхронным усилителем NF LI5640
// https://www.nfcorp.co.jp/english/pro/mi/loc/loc/li5640/

package instruments

import (
	"github.com/pkg/errors"
)

var li5640Commands = map[string]Command{
	// Опорная система
	"phase": {
		Query: "PHAS?", Write: "PHAS %g",
		Check: Range{Min: -180, Max: 179.99},
	},
	"frequency": {
		Query: "FREQ?", Write: "FREQ %g",
		Check: Range{Min: 0.0005, Max: 105.00},
	},
	// Амплитуда внутреннего генератора в трех диапазонах выхода:
	// 50 мВ, 500 мВ и 5 В, номер диапазона зашит во второй аргумент.
	"amplitude_50mV": {
		Query: "AMPL?", Write: "AMPL %g, 0",
		Check: Range{Min: 0, Max: 50},
	},
	"amplitude_500mV": {
		Query: "AMPL?", Write: "AMPL %g, 1",
		Check: Range{Min: 0, Max: 500},
	},
	"amplitude_5V": {
		Query: "AMPL?", Write: "AMPL %g, 2",
		Check: Range{Min: 0, Max: 5},
	},
	"harmonic": {
		Query: "HARM?", Write: "HARM %d",
		Check: Range{Min: 1, Max: 19999},
	},
	"source": {
		Query: "RSRC?", Write: "RSRC %d",
		Check: Map{"Ref": 0, "Int": 1, "Signal": 2},
	},
	"edge": {
		Query: "REDG?", Write: "REDG %d",
		Check: Map{"Sine": 0, "TTLP": 1, "TTLN": 2},
	},
	// Входной тракт
	"signal": {
		Query: "ISRC?", Write: "ISRC %d",
		Check: Map{"A": 0, "AB": 1, "I6": 2, "I8": 3},
	},
	"coupling": {
		Query: "ICPL?", Write: "ICPL %d",
		Check: Map{"AC": 0, "DC": 1},
	},
	"ground": {
		Query: "IGND?", Write: "IGND %d",
		Check: Map{"Float": 0, "Ground": 1},
	},
	// Чувствительность по напряжению в вольтах, от 2 нВ до 1 В.
	"voltage_sensitivity": {
		Query: "VSEN?", Write: "VSEN %d",
		Check: Map{
			2e-9: 0, 5e-9: 1, 10e-9: 2, 20e-9: 3, 50e-9: 4, 100e-9: 5,
			200e-9: 6, 500e-9: 7, 1e-6: 8, 2e-6: 9, 5e-6: 10, 10e-6: 11,
			20e-6: 12, 50e-6: 13, 100e-6: 14, 200e-6: 15, 500e-6: 16,
			1e-3: 17, 2e-3: 18, 5e-3: 19, 10e-3: 20, 20e-3: 21, 50e-3: 22,
			100e-3: 23, 200e-3: 24, 500e-3: 25, 1: 26,
		},
	},
	// Постоянная времени в секундах, от 10 мкс до 30 кс.
	"time_constant": {
		Query: "TCON?", Write: "TCON %d",
		Check: Map{
			10e-6: 0, 30e-6: 1, 100e-6: 2, 300e-6: 3,
			1e-3: 4, 3e-3: 5, 10e-3: 6, 30e-3: 7, 100e-3: 8, 300e-3: 9,
			1: 10, 3: 11, 10: 12, 30: 13, 100: 14, 300: 15,
			1e3: 16, 3e3: 17, 10e3: 18, 30e3: 19,
		},
	},
	"synchronous": {
		Query: "SYNC?", Write: "SYNC %d",
		Check: Map{"On": 1, "Off": 0},
	},
	// Крутизна среза фильтра в дБ/окт.
	"slope": {
		Query: "SLOP?", Write: "SLOP %d",
		Check: Map{6: 0, 12: 1, 18: 2, 24: 3},
	},
	// Отображаемые и записываемые величины
	"data1": {
		Query: "DDEF? 1", Write: "DDEF 1, %d",
		Check: Map{"X": 0, "R": 1, "Noise": 2, "AUX1": 3},
	},
	"data2": {
		Query: "DDEF? 2", Write: "DDEF 2, %d",
		Check: Map{"Y": 0, "Theta": 1, "AUX1": 2, "AUX2": 3},
	},
	"data_type": {
		Query: "DTYP?", Write: "DTYP %d",
		Check: Map{"Data1": 0, "Data2": 1, "Data1,2": 2},
	},
	"data_size": {
		Query: "DSIZ?", Write: "DSIZ %d",
		Check: Map{"2K": 0, "4K": 1, "8K": 2, "16K": 3, "32K": 4, "64K": 5},
	},
	"data_number": {
		Query: "DNUM?", Write: "DNUM %d",
		Check: Range{Min: 0, Max: 31},
	},
	// Период выборки в секундах; нулевой код зарезервирован
	// за выборкой по команде GPIB, см. DataSamplingByGPIB.
	"data_sampling_period": {
		Query: "DSMP?", Write: "DSMP %d",
		Check: Map{
			62.5e-6: 1, 125e-6: 2, 250e-6: 3, 500e-6: 4,
			1e-3: 5, 2e-3: 6, 5e-3: 7, 10e-3: 8, 20e-3: 9, 50e-3: 10,
			100e-3: 11, 200e-3: 12, 500e-3: 13,
			1: 14, 2: 15, 5: 16, 10: 17, 20: 18,
		},
	},
}

type LI5640 struct {
	inst *Instrument
}

// Инициализация синхронного усилителя.
func (li *LI5640) Init(adapter Adapter) error {
	li.inst = NewInstrument(adapter, "NF Lock-In Amplifier LI5640", li5640Commands)
	return li.inst.Reset()
}

// Фазовый сдвиг в градусах: от -180 до 179.99.
func (li *LI5640) SetPhase(degrees float64) error {
	return li.inst.Set("phase", degrees)
}

func (li *LI5640) Phase() (float64, error) {
	return li.inst.GetFloat("phase")
}

// Частота внутреннего генератора в килогерцах.
func (li *LI5640) SetFrequency(kilohertz float64) error {
	return li.inst.Set("frequency", kilohertz)
}

func (li *LI5640) Frequency() (float64, error) {
	return li.inst.GetFloat("frequency")
}

// Амплитуда внутреннего генератора в диапазоне выхода 50 мВ.
func (li *LI5640) SetAmplitude50mV(millivolts float64) error {
	return li.inst.Set("amplitude_50mV", millivolts)
}

// Амплитуда внутреннего генератора в диапазоне выхода 500 мВ.
func (li *LI5640) SetAmplitude500mV(millivolts float64) error {
	return li.inst.Set("amplitude_500mV", millivolts)
}

// Амплитуда внутреннего генератора в диапазоне выхода 5 В.
func (li *LI5640) SetAmplitude5V(volts float64) error {
	return li.inst.Set("amplitude_5V", volts)
}

func (li *LI5640) Amplitude() (float64, error) {
	return li.inst.GetFloat("amplitude_50mV")
}

// Номер гармоники опорного сигнала: от 1 до 19999.
func (li *LI5640) SetHarmonic(order int) error {
	return li.inst.Set("harmonic", order)
}

func (li *LI5640) Harmonic() (int, error) {
	return li.inst.GetInt("harmonic")
}

// Источник опорного сигнала: Ref, Int или Signal.
func (li *LI5640) SetReferenceSource(source string) error {
	return li.inst.Set("source", source)
}

func (li *LI5640) ReferenceSource() (string, error) {
	return li.inst.GetString("source")
}

// Фронт синхронизации опорного сигнала: Sine, TTLP или TTLN.
func (li *LI5640) SetReferenceEdge(edge string) error {
	return li.inst.Set("edge", edge)
}

func (li *LI5640) ReferenceEdge() (string, error) {
	return li.inst.GetString("edge")
}

// Вход измеряемого сигнала: A, AB, I6 или I8.
func (li *LI5640) SetSignalInput(input string) error {
	return li.inst.Set("signal", input)
}

func (li *LI5640) SignalInput() (string, error) {
	return li.inst.GetString("signal")
}

// Связь по входу: AC или DC.
func (li *LI5640) SetCoupling(coupling string) error {
	return li.inst.Set("coupling", coupling)
}

func (li *LI5640) Coupling() (string, error) {
	return li.inst.GetString("coupling")
}

// Заземление входа: Float или Ground.
func (li *LI5640) SetGround(ground string) error {
	return li.inst.Set("ground", ground)
}

func (li *LI5640) Ground() (string, error) {
	return li.inst.GetString("ground")
}

// Чувствительность по напряжению в вольтах, табличное значение.
func (li *LI5640) SetVoltageSensitivity(volts float64) error {
	return li.inst.Set("voltage_sensitivity", volts)
}

func (li *LI5640) VoltageSensitivity() (float64, error) {
	return li.inst.GetFloat("voltage_sensitivity")
}

// Постоянная времени фильтра в секундах, табличное значение.
func (li *LI5640) SetTimeConstant(seconds float64) error {
	return li.inst.Set("time_constant", seconds)
}

func (li *LI5640) TimeConstant() (float64, error) {
	return li.inst.GetFloat("time_constant")
}

// Тип фильтра: On — синхронный, Off — обычный.
func (li *LI5640) SetSynchronous(mode string) error {
	return li.inst.Set("synchronous", mode)
}

func (li *LI5640) Synchronous() (string, error) {
	return li.inst.GetString("synchronous")
}

// Крутизна среза фильтра: 6, 12, 18 или 24 дБ/окт.
func (li *LI5640) SetSlope(dbPerOct int) error {
	return li.inst.Set("slope", dbPerOct)
}

func (li *LI5640) Slope() (int, error) {
	return li.inst.GetInt("slope")
}

// Величина на выходе DATA1: X, R, Noise или AUX1.
func (li *LI5640) SetData1(kind string) error {
	return li.inst.Set("data1", kind)
}

func (li *LI5640) Data1() (string, error) {
	return li.inst.GetString("data1")
}

// Величина на выходе DATA2: Y, Theta, AUX1 или AUX2.
func (li *LI5640) SetData2(kind string) error {
	return li.inst.Set("data2", kind)
}

func (li *LI5640) Data2() (string, error) {
	return li.inst.GetString("data2")
}

// Состав записываемых данных: Data1, Data2 или Data1,2.
func (li *LI5640) SetDataType(kind string) error {
	return li.inst.Set("data_type", kind)
}

func (li *LI5640) DataType() (string, error) {
	return li.inst.GetString("data_type")
}

// Длина записи: 2K, 4K, 8K, 16K, 32K или 64K.
func (li *LI5640) SetDataSize(size string) error {
	return li.inst.Set("data_size", size)
}

func (li *LI5640) DataSize() (string, error) {
	return li.inst.GetString("data_size")
}

// Номер памяти данных для записи: от 0 до 31.
func (li *LI5640) SetDataNumber(number int) error {
	return li.inst.Set("data_number", number)
}

func (li *LI5640) DataNumber() (int, error) {
	return li.inst.GetInt("data_number")
}

// Период выборки в секундах, табличное значение.
func (li *LI5640) SetDataSamplingPeriod(seconds float64) error {
	return li.inst.Set("data_sampling_period", seconds)
}

func (li *LI5640) DataSamplingPeriod() (float64, error) {
	return li.inst.GetFloat("data_sampling_period")
}

// Новейшие измеренные данные.
func (li *LI5640) Read() ([]float64, error) {
	data, err := li.inst.Values("DOUT?")
	if err != nil {
		return nil, errors.Wrap(err, "data read fail")
	}
	return data, nil
}

// Перевод выборки данных на запуск командой по GPIB.
func (li *LI5640) DataSamplingByGPIB() error {
	return li.inst.Write("DSMP 0")
}

// Программный запуск выборки.
func (li *LI5640) Trigger() error {
	return li.inst.Write("*TRG")
}

// Старт записи данных.
func (li *LI5640) Start() error {
	return li.inst.Write("STRT")
}

// Остановка записи данных.
func (li *LI5640) Stop() error {
	return li.inst.Write("STOP")
}

// Число записанных точек.
func (li *LI5640) StoredPoints() (int, error) {
	values, err := li.inst.Values("SPTS?")
	if err != nil {
		return 0, errors.Wrap(err, "stored points read fail")
	}
	if len(values) == 0 {
		return 0, errors.New("get empty stored points response")
	}
	return int(values[0]), nil
}
