package api

import "fmt"

// documentErrorDescriptions maps the known rejection codes to their published
// descriptions, used when the envelope carries no message of its own.
var documentErrorDescriptions = map[string]string{
	"OF-01": "Faltan datos obligatorios en el documento",
	"OF-02": "RUT del receptor inválido",
	"OF-03": "RUT del emisor inválido",
	"OF-04": "Tipo de documento no soportado",
	"OF-05": "Fecha de emisión fuera de rango",
	"OF-06": "Folio no disponible para el tipo de documento",
	"OF-07": "Montos del documento no cuadran",
	"OF-08": "IVA calculado no corresponde a la tasa vigente",
	"OF-09": "Detalle del documento vacío",
	"OF-10": "Línea de detalle inválida",
	"OF-11": "Documento duplicado para la clave de idempotencia",
	"OF-12": "Organización no autorizada para emitir este tipo de documento",
	"OF-13": "Resolución SII no vigente",
	"OF-14": "Giro del emisor no registrado ante el SII",
	"OF-15": "Comuna del receptor desconocida",
	"OF-16": "Documento de referencia no encontrado",
	"OF-17": "Documento rechazado por el SII",
	"OF-18": "Error interno al timbrar el documento",
}

// DocumentError is a domain-level rejection of an emission attempt: the remote
// API answered with the {error:{code,message,details}} envelope. It wraps the
// structured detail so callers can branch per field.
type DocumentError struct {
	Code       string
	Message    string
	Details    []ErrorDetail
	StatusCode int
}

func documentErrorFromEnvelope(statusCode int, envelope *errorEnvelope) *DocumentError {
	message := envelope.Message
	if message == "" {
		message = documentErrorDescriptions[envelope.Code]
	}
	if message == "" {
		message = "documento rechazado"
	}

	return &DocumentError{
		Code:       envelope.Code,
		Message:    message,
		Details:    envelope.Details,
		StatusCode: statusCode,
	}
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DocumentError) HasDetails() bool {
	return len(e.Details) > 0
}

// DetailsForField returns every issue reported against the given field.
func (e *DocumentError) DetailsForField(field string) []string {
	var issues []string
	for _, detail := range e.Details {
		if detail.Field == field {
			issues = append(issues, detail.Issue)
		}
	}
	return issues
}

// ErrorFields returns the distinct fields mentioned in the details, in the
// order they were reported.
func (e *DocumentError) ErrorFields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, detail := range e.Details {
		if !seen[detail.Field] {
			seen[detail.Field] = true
			fields = append(fields, detail.Field)
		}
	}
	return fields
}
