// Описание измерительного стенда: какие приборы подключены
// и через какие транспорты к ним обращаться.

package bench

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Виды транспортных адаптеров стенда.
const (
	AdapterVisa     = "visa"
	AdapterPrologix = "prologix"
	AdapterSerial   = "serial"
)

type Config struct {
	Instruments []InstrumentConfig `yaml:"instruments"`
}

type InstrumentConfig struct {
	// Имя прибора на стенде, по нему выполняется Open.
	Name string `yaml:"name"`
	// Вид транспорта: visa, prologix или serial.
	Adapter string `yaml:"adapter"`
	// VISA-адрес ресурса, например TCPIP0::10.0.0.5::INSTR.
	Resource string `yaml:"resource"`
	// COM-порт для транспортов prologix и serial.
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
	// Адрес прибора на шине GPIB для транспорта prologix.
	GPIBAddress int `yaml:"gpib_address"`
	// Тайм-аут чтения для транспорта serial.
	ReadTimeout Duration `yaml:"read_timeout"`
}

// Duration — длительность в YAML-файле стенда, записывается
// строкой вида "500ms" или "2s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("unable to parse duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Load читает описание стенда из YAML-файла. Ссылки вида ${VAR}
// в адресах ресурсов и портов разворачиваются из окружения,
// так что файл стенда может не содержать адресов вовсе.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read bench config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse bench config %q: %w", path, err)
	}

	for i := range cfg.Instruments {
		cfg.Instruments[i].Resource = os.ExpandEnv(cfg.Instruments[i].Resource)
		cfg.Instruments[i].Port = os.ExpandEnv(cfg.Instruments[i].Port)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет корректность описания стенда.
// Конфигурация при этом не изменяется.
func Validate(cfg *Config) error {
	if len(cfg.Instruments) == 0 {
		return fmt.Errorf("bench config has no instruments")
	}

	names := make(map[string]struct{}, len(cfg.Instruments))
	for _, entry := range cfg.Instruments {
		if entry.Name == "" {
			return fmt.Errorf("bench entry without a name")
		}
		if _, duplicate := names[entry.Name]; duplicate {
			return fmt.Errorf("duplicate instrument name %q", entry.Name)
		}
		names[entry.Name] = struct{}{}

		switch entry.Adapter {
		case AdapterVisa:
			if entry.Resource == "" {
				return fmt.Errorf("instrument %q: visa adapter requires a resource", entry.Name)
			}
		case AdapterPrologix:
			if entry.Port == "" {
				return fmt.Errorf("instrument %q: prologix adapter requires a port", entry.Name)
			}
			if entry.GPIBAddress < 0 || entry.GPIBAddress > 30 {
				return fmt.Errorf("instrument %q: gpib_address %d is out of 0..30",
					entry.Name, entry.GPIBAddress)
			}
		case AdapterSerial:
			if entry.Port == "" {
				return fmt.Errorf("instrument %q: serial adapter requires a port", entry.Name)
			}
		default:
			return fmt.Errorf("instrument %q: unknown adapter kind %q", entry.Name, entry.Adapter)
		}
	}
	return nil
}

func (c *Config) find(name string) (InstrumentConfig, error) {
	for _, entry := range c.Instruments {
		if entry.Name == name {
			return entry, nil
		}
	}
	return InstrumentConfig{}, fmt.Errorf("instrument %q is not described in the bench config", name)
}
