// Управление осциллографом Tektronix TDS 380
// https://download.tek.com/manual/070897805.pdf

package instruments

import (
	"github.com/pkg/errors"
)

var tds380Commands = map[string]Command{
	"source": {
		Query: "DAT:SOU?", Write: "DAT:SOU %s",
		Check: Map{
			"Channel1":   "CH1",
			"Channel2":   "CH2",
			"Reference2": "REF2",
			"Math1":      "MATH1",
		},
	},
	"data_format": {
		Query: "DAT:ENC?", Write: "DAT:ENC %s",
		Check: Map{
			"ASCII":     "ASCI",
			"Ribinary":  "RIB",
			"Rpbinary":  "RPB",
			"Sribinary": "SRI",
			"Srpbinary": "SRP",
		},
	},
	// Ширина точки в байтах передается как есть, без проверки.
	"data_width": {
		Query: "DAT:WID?", Write: "DAT:WID %d",
	},
	"data_start": {
		Query: "DAT:STAR?", Write: "DAT:STAR %d",
		Check: Range{Min: 1, Max: 500},
	},
	"data_stop": {
		Query: "DAT:STOP?", Write: "DAT:STOP %d",
		Check: Range{Min: 501, Max: 1000},
	},
}

type TDS380 struct {
	inst *Instrument
}

// Инициализация осциллографа.
func (osc *TDS380) Init(adapter Adapter) error {
	osc.inst = NewInstrument(adapter, "Tektronix TDS 380", tds380Commands)
	return osc.inst.Reset()
}

// Источник осциллограммы: Channel1, Channel2, Reference2 или Math1.
func (osc *TDS380) SetSource(source string) error {
	return osc.inst.Set("source", source)
}

func (osc *TDS380) Source() (string, error) {
	return osc.inst.GetString("source")
}

// Формат передачи данных осциллограммы.
func (osc *TDS380) SetDataFormat(format string) error {
	return osc.inst.Set("data_format", format)
}

func (osc *TDS380) DataFormat() (string, error) {
	return osc.inst.GetString("data_format")
}

// Число байтов на точку осциллограммы: 1 или 2.
func (osc *TDS380) SetDataWidth(bytes int) error {
	return osc.inst.Set("data_width", bytes)
}

func (osc *TDS380) DataWidth() (int, error) {
	return osc.inst.GetInt("data_width")
}

// Начальная точка передаваемого участка осциллограммы: от 1 до 500.
func (osc *TDS380) SetDataStart(point int) error {
	return osc.inst.Set("data_start", point)
}

func (osc *TDS380) DataStart() (int, error) {
	return osc.inst.GetInt("data_start")
}

// Конечная точка передаваемого участка осциллограммы: от 501 до 1000.
func (osc *TDS380) SetDataStop(point int) error {
	return osc.inst.Set("data_stop", point)
}

func (osc *TDS380) DataStop() (int, error) {
	return osc.inst.GetInt("data_stop")
}

// Преамбула осциллограммы: параметры оцифровки выбранного источника.
func (osc *TDS380) WaveformInfo() (string, error) {
	return osc.inst.Query("WFMPR?")
}

// Данные осциллограммы выбранного источника.
func (osc *TDS380) GetCurve() ([]float64, error) {
	curve, err := osc.inst.Values("CURV?")
	if err != nil {
		return nil, errors.Wrap(err, "curve read fail")
	}
	return curve, nil
}
