package instruments

import "fmt"

// SimulatedAdapter — транспорт-заглушка: фиксированные ответы на запросы
// и журнал отправленных команд. Применяется в тестах вместо прибора.
type SimulatedAdapter struct {
	Replies map[string]string
	Sent    []string
	Err     error
}

var _ Adapter = (*SimulatedAdapter)(nil)

func NewSimulatedAdapter() *SimulatedAdapter {
	return &SimulatedAdapter{Replies: make(map[string]string)}
}

func (sa *SimulatedAdapter) Write(cmd string) error {
	if sa.Err != nil {
		return sa.Err
	}
	sa.Sent = append(sa.Sent, cmd)
	return nil
}

func (sa *SimulatedAdapter) Query(cmd string) (string, error) {
	if sa.Err != nil {
		return "", sa.Err
	}
	sa.Sent = append(sa.Sent, cmd)
	response, exists := sa.Replies[cmd]
	if !exists {
		return "", fmt.Errorf("no reply programmed for \"%s\" command", cmd)
	}
	return response, nil
}

func (sa *SimulatedAdapter) QueryValues(cmd string) ([]float64, error) {
	response, err := sa.Query(cmd)
	if err != nil {
		return nil, err
	}
	return parseValues(response)
}

// LastSent возвращает последнюю отправленную команду.
func (sa *SimulatedAdapter) LastSent() string {
	if len(sa.Sent) == 0 {
		return ""
	}
	return sa.Sent[len(sa.Sent)-1]
}
