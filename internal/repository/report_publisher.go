package repository

import (
	"context"
	"fmt"

	"PriceCast/internal/domain/models"
	domrepo "PriceCast/internal/domain/repository"
	"PriceCast/pkg/kafka"
	applogger "PriceCast/pkg/logger"
)

// messagePublisher is the subset of kafka.Producer used here.
type messagePublisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaReportPublisher publishes report JSON keyed by symbol.
type KafkaReportPublisher struct {
	p     messagePublisher
	topic string
	l     *applogger.Logger
}

func NewKafkaReportPublisher(p *kafka.Producer, topic string, l *applogger.Logger) *KafkaReportPublisher {
	return newKafkaReportPublisher(p, topic, l)
}

func newKafkaReportPublisher(p messagePublisher, topic string, l *applogger.Logger) *KafkaReportPublisher {
	if l == nil {
		l = applogger.Nop()
	}
	return &KafkaReportPublisher{p: p, topic: topic, l: l}
}

func (k *KafkaReportPublisher) Publish(ctx context.Context, r *models.Report) error {
	if r == nil {
		return nil
	}
	if err := k.p.Publish(ctx, k.topic, []byte(r.Symbol), models.NewReportResponse(r)); err != nil {
		k.l.Warn("report.publish error",
			applogger.String("topic", k.topic),
			applogger.String("symbol", r.Symbol),
			applogger.Error(err),
		)
		return fmt.Errorf("publish report %s: %w", r.ID, err)
	}
	return nil
}

func (k *KafkaReportPublisher) Close() error {
	return k.p.Close()
}

// NoopReportPublisher drops every report.
type NoopReportPublisher struct{}

func (NoopReportPublisher) Publish(context.Context, *models.Report) error { return nil }
func (NoopReportPublisher) Close() error                                  { return nil }

var (
	_ domrepo.ReportPublisher = (*KafkaReportPublisher)(nil)
	_ domrepo.ReportPublisher = NoopReportPublisher{}
)
