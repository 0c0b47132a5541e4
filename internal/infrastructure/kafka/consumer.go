package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/DRSN-tech/storefront-gateway/internal/cfg"
	"github.com/DRSN-tech/storefront-gateway/pkg/e"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
	"github.com/jimlawless/whereami"
	kafkago "github.com/segmentio/kafka-go"
)

// CatalogInvalidator сбрасывает кэш каталога после события об изменении данных.
type CatalogInvalidator interface {
	InvalidateCatalog()
}

// catalogEvent описывает событие каталога из топика бэкофиса.
type catalogEvent struct {
	Type      string `json:"type"`
	ProductID string `json:"product_id,omitempty"`
}

// Consumer читает события изменения каталога и инвалидирует кэш витрины.
type Consumer struct {
	reader      *kafkago.Reader
	invalidator CatalogInvalidator
	logger      logger.Logger
}

func NewConsumer(cfg *cfg.KafkaCfg, invalidator CatalogInvalidator, logger logger.Logger) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.Topic,
	})

	return &Consumer{
		reader:      reader,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Run крутит цикл чтения до отмены контекста. Некорректные события
// логируются и коммитятся, чтобы не блокировать партицию.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			c.logger.Errorf(e.Wrap(whereami.WhereAmI(), err), "Failed to fetch catalog event")
			continue
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Errorf(e.Wrap(whereami.WhereAmI(), err), "Failed to commit catalog event")
		}
	}
}

func (c *Consumer) handle(_ context.Context, msg kafkago.Message) {
	var event catalogEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warnf("Malformed catalog event at offset %d: %v", msg.Offset, e.Wrap(whereami.WhereAmI(), err))
		return
	}

	c.logger.Infof("Catalog event received: type=%s product=%s", event.Type, event.ProductID)
	c.invalidator.InvalidateCatalog()
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
