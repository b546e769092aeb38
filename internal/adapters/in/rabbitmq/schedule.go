package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/salon-availability-engine/internal/core/ports/out"
)

// Очередь изменений расписаний: часы салона и персональные расписания мастеров
func (l *CacheHitListener) startScheduleQueue(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMq.QueueConfig.ScheduleQueueName,
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
		l.cfg.RabbitMq.QueueConfig.ScheduleQueueBind,
		l.cfg.RabbitMq.QueueConfig.ScheduleQueueExchange,
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
				if err := l.processScheduleMessage(ctx, msg); err != nil {
					msg.Nack(false, false)
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

func (l *CacheHitListener) processScheduleMessage(ctx context.Context, msg amqp.Delivery) error {
	cacheMessageRoutingKey, err := l.parseCacheMessageRoutingKey(ctx, msg)
	if err != nil {
		return err
	}

	if cacheMessageRoutingKey.ResourceType != CacheHitResourceTypeSchedule {
		return nil
	}

	// Изменение расписания делает невалидными и кэш расписаний, и все слоты
	if cacheMessageRoutingKey.CacheHitType == CacheHitTypeInvalidate ||
		cacheMessageRoutingKey.CacheHitType == CacheHitTypeStore {
		invalidateCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := l.useCase.InvalidateScheduleCache(invalidateCtx); err != nil {
			l.logger.Error("schedule.invalidate_cache.failed", out.LogFields{
				"error": err.Error(),
			})
			return err
		}

		l.logger.Info("schedule.message.invalidated", out.LogFields{
			"routingKey": msg.RoutingKey,
		})
	}

	return nil
}
