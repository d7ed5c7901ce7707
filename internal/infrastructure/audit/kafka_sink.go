package audit

import (
	"context"
	"encoding/json"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/tu-usuario/simpleshop-api/pkg/logger"
)

// KafkaSink publica los eventos de auditoría en un topic de Kafka.
// La publicación corre en una goroutine con timeout: si el broker no responde
// se registra un warn y el evento se pierde, nunca se bloquea ni falla el caller.
type KafkaSink struct {
	writer *kafkaGo.Writer
	log    *logger.Logger
}

// NewKafkaSink construye el sink con los brokers y el topic configurados.
func NewKafkaSink(brokers []string, topic string, l *logger.Logger) *KafkaSink {
	w := &kafkaGo.Writer{
		Addr:     kafkaGo.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafkaGo.LeastBytes{},
	}
	return &KafkaSink{writer: w, log: l}
}

type auditEvent struct {
	Action   string         `json:"action"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
	At       time.Time      `json:"at"`
}

func (s *KafkaSink) Record(action, message string, metadata map[string]any) {
	payload, err := json.Marshal(auditEvent{
		Action:   action,
		Message:  message,
		Metadata: metadata,
		At:       time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("serializar evento de auditoría")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.writer.WriteMessages(ctx, kafkaGo.Message{
			Key:   []byte(action),
			Value: payload,
		})
		if err != nil {
			// Best-effort: el evento se descarta, la venta ya está confirmada.
			s.log.Warn().Err(err).Str("action", action).Msg("publicar evento de auditoría en kafka")
		}
	}()
}

// Close cierra el writer de Kafka.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
