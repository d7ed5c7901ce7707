package audit

import "github.com/tu-usuario/simpleshop-api/pkg/logger"

// Sink recibe eventos de auditoría (ORDER_CREATE, ORDER_CANCEL, ...).
// Es best-effort: se invoca después del commit, nunca dentro de la transacción,
// y sus fallos se tragan aquí; jamás deben afectar la operación de negocio.
type Sink interface {
	Record(action, message string, metadata map[string]any)
}

// Noop descarta todos los eventos. Útil en tests.
type Noop struct{}

func (Noop) Record(string, string, map[string]any) {}

// LogSink escribe los eventos de auditoría como logs estructurados.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink construye el sink por defecto (sin broker externo).
func NewLogSink(l *logger.Logger) *LogSink {
	return &LogSink{log: l}
}

func (s *LogSink) Record(action, message string, metadata map[string]any) {
	s.log.Info().
		Str("action", action).
		Fields(metadata).
		Msg(message)
}
