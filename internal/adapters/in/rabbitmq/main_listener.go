package rabbitmq

import (
	"context"
	"fmt"
	"strings"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/salon-availability-engine/internal/config"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/in"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// CacheHitListener слушает события изменений CRM и инвалидирует кэши
type CacheHitListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.SchedulingUseCase
	cfg     *config.Config
	logger  out.LoggerPort

	mu              sync.Mutex
	consumerCancels []chan struct{}
	consumerWg      sync.WaitGroup
}

type (
	CacheHitType         string
	CacheHitResourceType string
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	CacheHitType CacheHitType
}

const (
	CacheHitResourceTypeAll         CacheHitResourceType = "_all_"
	CacheHitResourceTypeAppointment CacheHitResourceType = "appointment"
	CacheHitResourceTypeSchedule    CacheHitResourceType = "schedule"
)

const (
	CacheHitTypeStore      CacheHitType = "store"
	CacheHitTypeInvalidate CacheHitType = "invalidate"
)

func NewCacheHitListener(useCase in.SchedulingUseCase, cfg *config.Config, logger out.LoggerPort) (*CacheHitListener, error) {
	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMq.AmqpUri,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &CacheHitListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *CacheHitListener) Start(ctx context.Context) error {
	var err error
	err = l.startAppointmentQueue(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.AppointmentQueueName,
	})
	err = l.startScheduleQueue(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("schedule.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.ScheduleQueueName,
	})
	err = l.startAllQueue(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("_all_.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.AllQueueName,
	})

	return nil
}

func (l *CacheHitListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	l.mu.Lock()
	for _, cancel := range l.consumerCancels {
		close(cancel)
	}
	l.consumerCancels = nil
	l.mu.Unlock()

	l.consumerWg.Wait()

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *CacheHitListener) addConsumerCancel(cancel chan struct{}) {
	l.mu.Lock()
	l.consumerCancels = append(l.consumerCancels, cancel)
	l.mu.Unlock()
}

func (l *CacheHitListener) closeConnection(reason string) {
	l.logger.Warn("rabbitmq.connection.closing", out.LogFields{
		"reason": reason,
	})
	if l.channel != nil {
		l.channel.Close()
	}
	if l.conn != nil {
		l.conn.Close()
	}
}

// Пример routingKey:
// crm.availability-engine.appointment.<appointmentId>.store
// crm.availability-engine.schedule.<staffId>.invalidate
// crm.availability-engine._all_._._.invalidate
func (l *CacheHitListener) parseCacheMessageRoutingKey(ctx context.Context, msg amqp.Delivery) (CacheMessageRoutingKey, error) {
	routingKey := msg.RoutingKey
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return CacheMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		CacheHitType: CacheHitType(parts[4]),
	}, nil
}
