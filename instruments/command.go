package instruments

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Command — описание одного логического параметра прибора: строка запроса,
// формат команды записи и ограничение допустимых значений.
// Таблицы команд собираются один раз при инициализации драйвера
// и дальше не изменяются.
type Command struct {
	Query string
	Write string
	Check Validator
}

// Validator проверяет значение перед отправкой и возвращает
// значение для передачи прибору.
type Validator interface {
	Validate(value any) (any, error)
}

// Range — усечение числового значения до диапазона [Min, Max].
// Значение вне диапазона молча приводится к ближайшей границе,
// ошибки при этом не возникает.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Validate(value any) (any, error) {
	number, err := toFloat(value)
	if err != nil {
		return nil, err
	}
	if number < r.Min {
		return r.Min, nil
	}
	if number > r.Max {
		return r.Max, nil
	}
	return number, nil
}

// Set — строгий набор допустимых значений, передаваемых прибору как есть.
// Значение вне набора отклоняется до отправки команды.
type Set []any

func (s Set) Validate(value any) (any, error) {
	for _, allowed := range s {
		if valuesEqual(value, allowed) {
			return value, nil
		}
	}
	return nil, &InvalidValueError{Value: value, Allowed: renderAllowed([]any(s))}
}

// Map — строгий набор допустимых значений с подстановкой проводного
// представления перед отправкой; при чтении выполняется обратный поиск
// логического значения по ответу прибора.
type Map map[any]any

func (m Map) Validate(value any) (any, error) {
	for logical, wire := range m {
		if valuesEqual(value, logical) {
			return wire, nil
		}
	}
	return nil, &InvalidValueError{Value: value, Allowed: renderAllowed(m.keys())}
}

// Logical ищет логическое значение по проводному представлению из ответа
// прибора. Числовые представления сравниваются по значению, строковые —
// без обрамляющих одинарных кавычек.
func (m Map) Logical(token string) (any, bool) {
	token = strings.TrimSpace(token)
	number, numberErr := strconv.ParseFloat(token, 64)
	for logical, wire := range m {
		switch w := wire.(type) {
		case string:
			if strings.Trim(w, "'") == strings.Trim(token, "'") {
				return logical, true
			}
		case int:
			if numberErr == nil && float64(w) == number {
				return logical, true
			}
		case float64:
			if numberErr == nil && w == number {
				return logical, true
			}
		}
	}
	return nil, false
}

func (m Map) keys() []any {
	keys := make([]any, 0, len(m))
	for logical := range m {
		keys = append(keys, logical)
	}
	return keys
}

// InvalidValueError — значение не входит в допустимый набор параметра,
// команда прибору не отправлялась.
type InvalidValueError struct {
	Value   any
	Allowed string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("value %v is not in the allowed set {%s}", e.Value, e.Allowed)
}

func renderAllowed(values []any) string {
	rendered := make([]string, len(values))
	for i, value := range values {
		rendered[i] = fmt.Sprint(value)
	}
	sort.Strings(rendered)
	return strings.Join(rendered, ", ")
}

func valuesEqual(a, b any) bool {
	if a == b {
		return true
	}
	aNumber, aErr := toFloat(a)
	bNumber, bErr := toFloat(b)
	return aErr == nil && bErr == nil && aNumber == bNumber
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("value %v is not a number", value)
}

// Подстановка значения в формат команды записи. Целочисленные форматы
// принимают и вещественные значения после усечения диапазона.
func formatCommand(format string, value any) string {
	switch {
	case strings.Contains(format, "%d"):
		if number, err := toFloat(value); err == nil {
			return fmt.Sprintf(format, int64(math.Round(number)))
		}
	case strings.Contains(format, "%g"), strings.Contains(format, "%f"), strings.Contains(format, "%e"):
		if number, err := toFloat(value); err == nil {
			return fmt.Sprintf(format, number)
		}
	case strings.Contains(format, "%s"):
		return fmt.Sprintf(format, fmt.Sprint(value))
	}
	return fmt.Sprintf(format, value)
}
