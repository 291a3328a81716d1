// Управление температурным контроллером Lake Shore 330
// https://www.lakeshore.com/docs/default-source/product-downloads/330_manual.pdf

package instruments

import (
	"github.com/pkg/errors"
)

var ls330Commands = map[string]Command{
	"setpoint": {
		Query: "SETP?", Write: "SETP %g",
		Check: Range{Min: 0, Max: 475},
	},
	"heater_range": {
		Query: "RANG?", Write: "RANG %d",
		Check: Map{"off": 0, "low": 1, "medium": 2, "high": 3},
	},
	"auto_tune": {
		Query: "TUNE?", Write: "TUNE %d",
		Check: Map{"Manual": 0, "P": 1, "PI": 2, "PID": 3, "Zone": 4},
	},
	"gain": {
		Query: "GAIN?", Write: "GAIN %d",
		Check: Range{Min: 0, Max: 999},
	},
	"reset": {
		Query: "RSET?", Write: "RSET %d",
		Check: Range{Min: 0, Max: 999},
	},
	"rate": {
		Query: "RATE?", Write: "RATE %d",
		Check: Range{Min: 0, Max: 999},
	},
}

type LakeShore330 struct {
	inst *Instrument
}

// Инициализация контроллера температуры.
func (tc *LakeShore330) Init(adapter Adapter) error {
	tc.inst = NewInstrument(adapter, "Lake Shore 330 Temperature Controller", ls330Commands)
	return tc.inst.Reset()
}

// Температура датчика A в кельвинах.
func (tc *LakeShore330) TemperatureA() (float64, error) {
	values, err := tc.inst.Values("KRDG? A")
	if err != nil {
		return 0, errors.Wrap(err, "temperature read fail")
	}
	if len(values) == 0 {
		return 0, errors.New("get empty temperature response")
	}
	return values[0], nil
}

// Уставка температуры контура 1 в кельвинах: от 0 до 475.
func (tc *LakeShore330) SetSetpoint(kelvin float64) error {
	return tc.inst.Set("setpoint", kelvin)
}

func (tc *LakeShore330) Setpoint() (float64, error) {
	return tc.inst.GetFloat("setpoint")
}

// Диапазон мощности нагревателя: off, low, medium или high,
// что соответствует 0, 0.5, 5 и 50 Вт.
func (tc *LakeShore330) SetHeaterRange(heaterRange string) error {
	return tc.inst.Set("heater_range", heaterRange)
}

func (tc *LakeShore330) HeaterRange() (string, error) {
	return tc.inst.GetString("heater_range")
}

// Режим автонастройки регулятора: Manual, P, PI, PID или Zone.
func (tc *LakeShore330) SetAutoTune(mode string) error {
	return tc.inst.Set("auto_tune", mode)
}

func (tc *LakeShore330) AutoTune() (string, error) {
	return tc.inst.GetString("auto_tune")
}

// Пропорциональная составляющая (P) регулятора: от 0 до 999.
func (tc *LakeShore330) SetGain(gain int) error {
	return tc.inst.Set("gain", gain)
}

func (tc *LakeShore330) Gain() (int, error) {
	return tc.inst.GetInt("gain")
}

// Интегральная составляющая (I) регулятора: от 0 до 999.
func (tc *LakeShore330) SetIntegral(value int) error {
	return tc.inst.Set("reset", value)
}

func (tc *LakeShore330) Integral() (int, error) {
	return tc.inst.GetInt("reset")
}

// Дифференциальная составляющая (D) регулятора: от 0 до 999.
func (tc *LakeShore330) SetRate(value int) error {
	return tc.inst.Set("rate", value)
}

func (tc *LakeShore330) Rate() (int, error) {
	return tc.inst.GetInt("rate")
}
