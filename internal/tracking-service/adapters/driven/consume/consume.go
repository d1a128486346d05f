package consume

import (
	"context"
	"encoding/json"

	"bus-track/internal/mylogger"
	"bus-track/internal/tracking-service/core/domain/dto"
	"bus-track/internal/tracking-service/core/ports/driven"
	"bus-track/internal/tracking-service/core/ports/driver"
)

const (
	fixQueueName  = "bus_fixes"
	fixBindingKey = "bus.fix.*"
)

// Consumer drains fix messages published by device gateways and feeds them
// into the tracking service.
type Consumer struct {
	ctx      context.Context
	log      mylogger.Logger
	broker   driven.IFixBroker
	tracking driver.ITrackingService
}

func NewConsumer(ctx context.Context, broker driven.IFixBroker, tracking driver.ITrackingService, log mylogger.Logger) *Consumer {
	return &Consumer{
		ctx:      ctx,
		broker:   broker,
		tracking: tracking,
		log:      log,
	}
}

func (c *Consumer) SubscribeForFixes() error {
	msgCh, err := c.broker.Consume(c.ctx, fixQueueName, fixBindingKey, driven.ConsumeOptions{
		Prefetch:     16,
		AutoAck:      false,
		QueueDurable: true,
	})
	if err != nil {
		c.log.Action("consume").Error("failed to start fix consumer", err)
		return err
	}

	go func() {
		for msg := range msgCh {
			var fix dto.FixMessage
			if err := json.Unmarshal(msg.Body, &fix); err != nil {
				c.log.Action("consume").Error("failed to unmarshal fix", err)
				_ = msg.Nack(false, false)
				continue
			}

			_, err := c.tracking.RecordFix(c.ctx, fix.DeviceID, dto.FixRequestDto{
				Latitude:  fix.Latitude,
				Longitude: fix.Longitude,
			}, "amqp")
			if err != nil {
				c.log.Action("consume").Error("failed to record fix", err, "device_id", fix.DeviceID)
				// bad payloads are dropped, not requeued
				_ = msg.Nack(false, false)
				continue
			}

			if err := msg.Ack(false); err != nil {
				c.log.Action("consume").Error("failed to acknowledge fix", err)
			}
		}
	}()
	return nil
}
