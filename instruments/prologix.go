package instruments

import (
	"fmt"
	"strings"
	"time"

	"github.com/gotmc/prologix"
	"github.com/pkg/errors"
	"github.com/tarm/serial"
)

// PrologixAdapter — обмен SCPI-командами через контроллер Prologix GPIB-USB,
// подключенный как виртуальный COM-порт.
type PrologixAdapter struct {
	Port    string
	Address int
	Baud    int

	port *serial.Port
	gpib *prologix.Controller
}

var _ Adapter = (*PrologixAdapter)(nil)

// Инициализация: открытие порта и настройка контроллера
// на адрес прибора на шине GPIB.
func (pa *PrologixAdapter) Init() error {

	baud := pa.Baud
	if baud == 0 {
		baud = 115200
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        pa.Port,
		Baud:        baud,
		ReadTimeout: 3 * time.Second,
	})
	if err != nil {
		context := fmt.Sprintf("unable to open serial port \"%s\"", pa.Port)
		return errors.Wrap(err, context)
	}
	pa.port = port

	gpib, err := prologix.NewController(port, pa.Address, false)
	if err != nil {
		port.Close()
		pa.port = nil
		context := fmt.Sprintf("unable to init Prologix controller on \"%s\"", pa.Port)
		return errors.Wrap(err, context)
	}
	pa.gpib = gpib
	return nil
}

// Отправить команду прибору.
func (pa *PrologixAdapter) Write(cmd string) error {
	err := pa.gpib.Command(cmd)
	if err != nil {
		context := fmt.Sprintf("an GPIB error occurred while writing \"%s\" command", cmd)
		return errors.Wrap(err, context)
	}
	return nil
}

// Отправить запрос и прочитать ответ прибора.
func (pa *PrologixAdapter) Query(cmd string) (string, error) {
	response, err := pa.gpib.Query(cmd)
	if err != nil {
		context := fmt.Sprintf("an GPIB error occurred while querying \"%s\" command", cmd)
		return "", errors.Wrap(err, context)
	}
	return strings.TrimRight(response, "\r\n"), nil
}

// Отправить запрос и разобрать ответ в массив чисел.
func (pa *PrologixAdapter) QueryValues(cmd string) ([]float64, error) {
	response, err := pa.Query(cmd)
	if err != nil {
		return nil, err
	}
	return parseValues(response)
}

// Закрыть контроллер и вернуть прибор в локальное управление.
func (pa *PrologixAdapter) Close() error {
	if pa.gpib != nil {
		if err := pa.gpib.FrontPanel(true); err != nil {
			log.Warnf("unable to return instrument to front panel control: %v", err)
		}
		pa.gpib = nil
	}
	if pa.port != nil {
		err := pa.port.Close()
		pa.port = nil
		if err != nil {
			return errors.Wrap(err, "unable to close serial port")
		}
	}
	return nil
}
