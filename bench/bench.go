package bench

import (
	"fmt"
	"time"

	"github.com/jpoirier/visa"
	"github.com/pkg/errors"

	"github.com/YangUnremitting/pymeasure/instruments"
)

// Bench открывает транспортные адаптеры приборов по их именам
// из описания стенда. Все VISA-ресурсы делят один менеджер ресурсов,
// открытые адаптеры закрываются в обратном порядке вызовом Close.
type Bench struct {
	cfg *Config

	rm      *visa.Session
	opened  map[string]instruments.Adapter
	closers []func() error
}

// Open загружает описание стенда и готовит его к открытию адаптеров.
func Open(path string) (*Bench, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

// New готовит стенд по уже загруженному описанию.
func New(cfg *Config) *Bench {
	return &Bench{
		cfg:    cfg,
		opened: make(map[string]instruments.Adapter),
	}
}

// OpenAdapter открывает транспорт прибора по его имени на стенде.
// Повторный вызов с тем же именем возвращает уже открытый адаптер.
func (b *Bench) OpenAdapter(name string) (instruments.Adapter, error) {
	if adapter, ready := b.opened[name]; ready {
		return adapter, nil
	}

	entry, err := b.cfg.find(name)
	if err != nil {
		return nil, err
	}

	var adapter instruments.Adapter
	var closer func() error

	switch entry.Adapter {
	case AdapterVisa:
		rm, err := b.resourceManager()
		if err != nil {
			return nil, err
		}
		va := &instruments.VisaAdapter{
			ResourceName:    entry.Resource,
			ResourceManager: rm,
		}
		if err := va.Init(); err != nil {
			return nil, errors.Wrapf(err, "unable to open instrument %q", name)
		}
		adapter, closer = va, va.Close

	case AdapterPrologix:
		pa := &instruments.PrologixAdapter{
			Port:    entry.Port,
			Address: entry.GPIBAddress,
			Baud:    entry.Baud,
		}
		if err := pa.Init(); err != nil {
			return nil, errors.Wrapf(err, "unable to open instrument %q", name)
		}
		adapter, closer = pa, pa.Close

	case AdapterSerial:
		sa := &instruments.SerialAdapter{
			Port:        entry.Port,
			Baud:        entry.Baud,
			ReadTimeout: time.Duration(entry.ReadTimeout),
		}
		if err := sa.Init(); err != nil {
			return nil, errors.Wrapf(err, "unable to open instrument %q", name)
		}
		adapter, closer = sa, sa.Close

	default:
		return nil, fmt.Errorf("instrument %q: unknown adapter kind %q", name, entry.Adapter)
	}

	b.opened[name] = adapter
	b.closers = append(b.closers, closer)
	return adapter, nil
}

// Close закрывает все открытые адаптеры в порядке, обратном открытию,
// и затем менеджер VISA-ресурсов. Возвращается первая из ошибок закрытия.
func (b *Bench) Close() error {
	var firstErr error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	b.closers = nil
	b.opened = make(map[string]instruments.Adapter)

	if b.rm != nil {
		rm := b.rm
		b.rm = nil
		if status := rm.Close(); status != visa.SUCCESS && firstErr == nil {
			firstErr = fmt.Errorf("unable to close VISA resource manager, status %d", status)
		}
	}
	return firstErr
}

func (b *Bench) resourceManager() (*visa.Session, error) {
	if b.rm != nil {
		return b.rm, nil
	}
	rm, err := instruments.GetResourceManager()
	if err != nil {
		return nil, err
	}
	b.rm = &rm
	return b.rm, nil
}
