package instruments

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Adapter — транспортный канал обмена SCPI-командами с прибором.
// Реализации: VisaAdapter, PrologixAdapter, SerialAdapter и
// SimulatedAdapter для тестов без оборудования.
type Adapter interface {
	Write(cmd string) error
	Query(cmd string) (string, error)
	QueryValues(cmd string) ([]float64, error)
}

// Разбор ASCII-ответа прибора в массив чисел.
func parseValues(response string) ([]float64, error) {
	fields := strings.Split(strings.TrimSpace(response), ",")
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if len(field) == 0 {
			continue
		}
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrap(err, "conversion for buffer value failed")
		}
		values = append(values, value)
	}
	return values, nil
}
