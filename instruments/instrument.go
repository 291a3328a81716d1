package instruments

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Логгер пакета. По умолчанию пишет в stderr с уровнем Warn,
// приложение может подменить его через SetLogger.
var log = newDefaultLogger()

func newDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// SetLogger подменяет логгер пакета.
func SetLogger(logger *logrus.Logger) {
	log = logger
}

// Readiness — результат опроса готовности измерения.
// Драйвер не встраивает собственных циклов ожидания: вызывающая сторона
// сама выбирает период опроса и предел ожидания.
type Readiness int

const (
	NotReady Readiness = iota
	Ready
	Unknown
)

func (r Readiness) String() string {
	switch r {
	case NotReady:
		return "NotReady"
	case Ready:
		return "Ready"
	case Unknown:
		return "Unknown"
	}
	return fmt.Sprintf("Readiness(%d)", int(r))
}

// Instrument — общая часть всех драйверов: транспорт, таблица команд
// и очередь ошибок прибора.
type Instrument struct {
	adapter    Adapter
	name       string
	commands   map[string]Command
	errorQuery string
}

// NewInstrument создает базу драйвера поверх открытого транспорта.
func NewInstrument(adapter Adapter, name string, commands map[string]Command) *Instrument {
	return &Instrument{
		adapter:    adapter,
		name:       name,
		commands:   commands,
		errorQuery: "SYST:ERR?",
	}
}

func (in *Instrument) Name() string {
	return in.name
}

// SetErrorQuery задает команду опроса очереди ошибок прибора.
func (in *Instrument) SetErrorQuery(query string) {
	in.errorQuery = query
}

// Write отправляет команду прибору без проверки очереди ошибок.
func (in *Instrument) Write(cmd string) error {
	log.Debugf("%s <- %s", in.name, cmd)
	return in.adapter.Write(cmd)
}

// WriteChecked отправляет команду и сразу опрашивает очередь ошибок прибора.
func (in *Instrument) WriteChecked(cmd string) error {
	err := in.Write(cmd)
	if err != nil {
		return err
	}
	instrErr := in.CheckErrors()
	if instrErr != nil {
		context := fmt.Sprintf("an instr error occurred while writing \"%s\" command", cmd)
		return errors.Wrap(instrErr, context)
	}
	return nil
}

// Query отправляет запрос и возвращает ответ прибора.
func (in *Instrument) Query(cmd string) (string, error) {
	log.Debugf("%s <- %s", in.name, cmd)
	response, err := in.adapter.Query(cmd)
	if err != nil {
		return "", err
	}
	log.Debugf("%s -> %s", in.name, response)
	return response, nil
}

// Values отправляет запрос и разбирает ответ в массив чисел.
func (in *Instrument) Values(cmd string) ([]float64, error) {
	log.Debugf("%s <- %s", in.name, cmd)
	return in.adapter.QueryValues(cmd)
}

// Проверка очереди ошибок прибора, ненулевой код превращается в ошибку.
func (in *Instrument) CheckErrors() error {
	res, _ := in.adapter.Query(in.errorQuery + ";*CLS")
	res = strings.ReplaceAll(res, "\"", "")
	splitRes := strings.Split(res, ",")
	code, _ := strconv.Atoi(splitRes[0])

	if code != 0 {
		return fmt.Errorf(res)
	}
	return nil
}

// Запрос строки идентификации прибора.
func (in *Instrument) ID() (string, error) {
	return in.Query("*IDN?")
}

// Сброс прибора в состояние по умолчанию.
func (in *Instrument) Reset() error {
	return in.WriteChecked("*RST")
}

// Очистка регистров состояния прибора.
func (in *Instrument) Clear() error {
	return in.Write("*CLS")
}

// Get выполняет запрос параметра из таблицы команд и возвращает
// его логическое значение. Ответ прибора разбирается по описанию
// параметра: обратный поиск по таблице значений либо разбор числа.
func (in *Instrument) Get(name string) (any, error) {
	command, err := in.lookup(name)
	if err != nil {
		return nil, err
	}
	if len(command.Query) == 0 {
		return nil, fmt.Errorf("parameter \"%s\" of %s is write only", name, in.name)
	}
	response, err := in.Query(command.Query)
	if err != nil {
		context := fmt.Sprintf("get of \"%s\" failed", name)
		return nil, errors.Wrap(err, context)
	}
	if mapping, ok := command.Check.(Map); ok {
		logical, found := mapping.Logical(response)
		if !found {
			return nil, fmt.Errorf("response \"%s\" for parameter \"%s\" is not in the value map", response, name)
		}
		return logical, nil
	}
	token := strings.TrimSpace(response)
	if number, parseErr := strconv.ParseFloat(token, 64); parseErr == nil {
		return number, nil
	}
	return token, nil
}

// Set проверяет значение по описанию параметра и отправляет команду записи.
// Значение вне строгого набора отклоняется до отправки.
func (in *Instrument) Set(name string, value any) error {
	command, err := in.lookup(name)
	if err != nil {
		return err
	}
	if len(command.Write) == 0 {
		return fmt.Errorf("parameter \"%s\" of %s is read only", name, in.name)
	}
	wire := value
	if command.Check != nil {
		wire, err = command.Check.Validate(value)
		if err != nil {
			return err
		}
	}
	err = in.Write(formatCommand(command.Write, wire))
	if err != nil {
		context := fmt.Sprintf("set of \"%s\" failed", name)
		return errors.Wrap(err, context)
	}
	return nil
}

// GetFloat возвращает числовое значение параметра.
func (in *Instrument) GetFloat(name string) (float64, error) {
	value, err := in.Get(name)
	if err != nil {
		return 0, err
	}
	number, err := toFloat(value)
	if err != nil {
		return 0, fmt.Errorf("parameter \"%s\" of %s is not a number: %v", name, in.name, value)
	}
	return number, nil
}

// GetInt возвращает целочисленное значение параметра.
func (in *Instrument) GetInt(name string) (int, error) {
	number, err := in.GetFloat(name)
	if err != nil {
		return 0, err
	}
	return int(math.Round(number)), nil
}

// GetBool возвращает значение параметра-флага.
func (in *Instrument) GetBool(name string) (bool, error) {
	value, err := in.Get(name)
	if err != nil {
		return false, err
	}
	switch v := value.(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	case int:
		return v != 0, nil
	case string:
		token := strings.ToUpper(strings.TrimSpace(v))
		return token == "1" || token == "ON", nil
	}
	return false, fmt.Errorf("parameter \"%s\" of %s is not a flag: %v", name, in.name, value)
}

// GetString возвращает строковое значение параметра.
func (in *Instrument) GetString(name string) (string, error) {
	value, err := in.Get(name)
	if err != nil {
		return "", err
	}
	if token, ok := value.(string); ok {
		return token, nil
	}
	return fmt.Sprint(value), nil
}

func (in *Instrument) lookup(name string) (Command, error) {
	command, exists := in.commands[name]
	if !exists {
		return Command{}, fmt.Errorf("unknown parameter \"%s\" of %s", name, in.name)
	}
	return command, nil
}
