package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// Очередь _all_ для полного сброса кэшей, например после массового импорта в CRM
func (l *CacheHitListener) startAllQueue(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMq.QueueConfig.AllQueueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}
	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMq.QueueConfig.AllQueueBind,
		l.cfg.RabbitMq.QueueConfig.AllQueueExchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	consumerCancel := make(chan struct{})
	l.addConsumerCancel(consumerCancel)

	l.consumerWg.Add(1)
	go func() {
		defer l.consumerWg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-consumerCancel:
				return
			case msg, ok := <-msgs:
				if !ok {
					l.closeConnection(fmt.Sprintf("consumer channel closed for queue %s", queue.Name))
					return
				}
				if err := l.processAllMessage(ctx, msg); err != nil {
					msg.Nack(false, false)
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

func (l *CacheHitListener) processAllMessage(ctx context.Context, msg amqp.Delivery) error {
	cacheMessageRoutingKey, err := l.parseCacheMessageRoutingKey(ctx, msg)
	if err != nil {
		return err
	}

	if cacheMessageRoutingKey.ResourceType != CacheHitResourceTypeAll {
		return nil
	}

	invalidateCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Сбрасываем вообще все: слоты, часы салона, расписания мастеров
	if err := l.useCase.InvalidateAllSlotsCache(invalidateCtx); err != nil {
		l.logger.Error("_all_.invalidate_slots.failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}
	if err := l.useCase.InvalidateScheduleCache(invalidateCtx); err != nil {
		l.logger.Error("_all_.invalidate_schedules.failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}

	l.logger.Info("_all_.message.invalidated", out.LogFields{
		"routingKey": msg.RoutingKey,
	})

	return nil
}
