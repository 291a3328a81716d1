package instruments

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tarm/serial"
)

// SerialAdapter — обмен SCPI-командами напрямую через COM-порт
// для приборов с интерфейсом RS-232.
type SerialAdapter struct {
	Port        string
	Baud        int
	ReadTimeout time.Duration
	Terminator  string // окончание команд, по умолчанию "\n"

	port *serial.Port
}

var _ Adapter = (*SerialAdapter)(nil)

// Инициализация: открытие порта.
func (sa *SerialAdapter) Init() error {

	baud := sa.Baud
	if baud == 0 {
		baud = 9600
	}
	timeout := sa.ReadTimeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        sa.Port,
		Baud:        baud,
		ReadTimeout: timeout,
	})
	if err != nil {
		context := fmt.Sprintf("unable to open serial port \"%s\"", sa.Port)
		return errors.Wrap(err, context)
	}
	sa.port = port
	return nil
}

// Отправить команду прибору.
func (sa *SerialAdapter) Write(cmd string) error {
	_, err := sa.port.Write([]byte(cmd + sa.terminator()))
	if err != nil {
		context := fmt.Sprintf("an serial error occurred while writing \"%s\" command", cmd)
		return errors.Wrap(err, context)
	}
	return nil
}

// Отправить запрос и прочитать ответ прибора.
func (sa *SerialAdapter) Query(cmd string) (string, error) {
	err := sa.Write(cmd)
	if err != nil {
		return "", err
	}
	response, err := sa.readLine()
	if err != nil {
		context := fmt.Sprintf("an serial error occurred while reading response after \"%s\" command", cmd)
		return "", errors.Wrap(err, context)
	}
	return response, nil
}

// Отправить запрос и разобрать ответ в массив чисел.
func (sa *SerialAdapter) QueryValues(cmd string) ([]float64, error) {
	response, err := sa.Query(cmd)
	if err != nil {
		return nil, err
	}
	return parseValues(response)
}

// Закрыть порт.
func (sa *SerialAdapter) Close() error {
	if sa.port == nil {
		return nil
	}
	err := sa.port.Close()
	sa.port = nil
	return err
}

// Чтение ответа до перевода строки. Пустое чтение означает,
// что прибор не ответил за отведенное время.
func (sa *SerialAdapter) readLine() (string, error) {
	var response []byte
	buf := make([]byte, 128)
	for {
		n, err := sa.port.Read(buf)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", fmt.Errorf("read timeout, got \"%s\"", string(response))
		}
		response = append(response, buf[:n]...)
		if strings.ContainsRune(string(buf[:n]), '\n') {
			break
		}
	}
	return strings.TrimRight(string(response), "\r\n"), nil
}

func (sa *SerialAdapter) terminator() string {
	if len(sa.Terminator) == 0 {
		return "\n"
	}
	return sa.Terminator
}
