package instruments

import (
	"fmt"
	"strings"

	"github.com/jpoirier/visa"
	"github.com/pkg/errors"
)

const bufferSize = 4096

// VisaAdapter — обмен SCPI-командами через VISA-ресурс.
type VisaAdapter struct {
	ResourceName    string
	ResourceManager *visa.Session
	instr           *visa.Object
	info            map[string]string
}

var _ Adapter = (*VisaAdapter)(nil)

// GetResourceManager открывает менеджер VISA-ресурсов по умолчанию.
func GetResourceManager() (visa.Session, error) {
	rm, visaStatus := visa.OpenDefaultRM()
	if visaStatus != visa.SUCCESS {
		return rm, fmt.Errorf("unable to open VISA resource manager, status %d", visaStatus)
	}
	return rm, nil
}

// Инициализация: открытие ресурса и разбор ответа *IDN?.
func (va *VisaAdapter) Init() error {

	instr, visaStatus := va.ResourceManager.Open(va.ResourceName, uint32(visa.NULL), uint32(visa.NULL))
	if visaStatus != visa.SUCCESS {
		statusDesc, _ := instr.StatusDesc(visaStatus)
		visaErr := fmt.Errorf("%d, %s", visaStatus, trimStatusDesc(statusDesc))
		context := fmt.Sprintf("an VISA error occurred while connect to \"%s\"", va.ResourceName)
		return errors.Wrap(visaErr, context)
	}

	va.instr = &instr
	response, err := va.Query("*IDN?")
	if err != nil {
		return err
	}
	splitResponse := strings.Split(response, ",")
	if len(splitResponse) < 4 {
		return fmt.Errorf("unexpected *IDN? response \"%s\" from \"%s\"", response, va.ResourceName)
	}
	va.info = make(map[string]string, 4)
	va.info["Manufacturer"] = splitResponse[0]
	va.info["Model"] = splitResponse[1]
	va.info["Serial"] = splitResponse[2]
	va.info["Version"] = splitResponse[3]
	return nil
}

// Отправить запрос и прочитать ответ прибора.
func (va *VisaAdapter) Query(cmd string) (string, error) {

	_, visaStatus := va.instr.Write([]byte(cmd), uint32(len(cmd)))
	if visaStatus != visa.SUCCESS {
		statusDesc, _ := va.instr.StatusDesc(visaStatus)
		visaErr := fmt.Errorf("%d, %s", visaStatus, trimStatusDesc(statusDesc))
		context := fmt.Sprintf("an VISA error occurred while writing \"%s\" command", cmd)
		return "", errors.Wrap(visaErr, context)
	}

	bytes, _, visaStatus := va.instr.Read(bufferSize)
	if visaStatus != visa.SUCCESS {
		statusDesc, _ := va.instr.StatusDesc(visaStatus)
		visaErr := fmt.Errorf("%d, %s", visaStatus, trimStatusDesc(statusDesc))
		context := fmt.Sprintf("an VISA error occurred while reading response after \"%s\" command", cmd)
		return "", errors.Wrap(visaErr, context)
	}
	response := string(bytes)
	if len(response) == 0 {
		return response, fmt.Errorf("get empty response from instr after \"%s\" command", cmd)
	}
	if newline := strings.Index(response, "\n"); newline >= 0 {
		response = response[0:newline]
	}
	return strings.TrimRight(response, "\r"), nil
}

// Отправить команду прибору.
func (va *VisaAdapter) Write(cmd string) error {

	_, visaStatus := va.instr.Write([]byte(cmd), uint32(len(cmd)))
	if visaStatus != visa.SUCCESS {
		statusDesc, _ := va.instr.StatusDesc(visaStatus)
		visaErr := fmt.Errorf("%d, %s", visaStatus, trimStatusDesc(statusDesc))
		context := fmt.Sprintf("an VISA error occurred while writing \"%s\" command", cmd)
		return errors.Wrap(visaErr, context)
	}
	return nil
}

// Отправить запрос и разобрать ответ в массив чисел.
func (va *VisaAdapter) QueryValues(cmd string) ([]float64, error) {
	response, err := va.Query(cmd)
	if err != nil {
		return nil, err
	}
	return parseValues(response)
}

// GetInfo возвращает разобранный ответ *IDN?.
func (va *VisaAdapter) GetInfo() map[string]string {
	return va.info
}

// Представление информации о приборе в виде строки.
func (va *VisaAdapter) String() string {
	infoStr := fmt.Sprintf(
		"Manufacturer:\t%s\n"+
			"Model:\t\t%s\n"+
			"Serial:\t\t%s\n"+
			"Version:\t%s\n",
		va.info["Manufacturer"], va.info["Model"], va.info["Serial"], va.info["Version"])
	return infoStr
}

// Закрыть VISA-ресурс.
func (va *VisaAdapter) Close() error {
	if va.instr == nil {
		return nil
	}
	visaStatus := va.instr.Close()
	va.instr = nil
	if visaStatus != visa.SUCCESS {
		return fmt.Errorf("unable to close \"%s\", status %d", va.ResourceName, visaStatus)
	}
	return nil
}

// Описание статуса VISA без завершающей точки.
func trimStatusDesc(statusDesc string) string {
	if dot := strings.Index(statusDesc, "."); dot >= 0 {
		return statusDesc[0:dot]
	}
	return statusDesc
}
