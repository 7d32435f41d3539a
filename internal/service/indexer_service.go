package service

import (
	"context"
	"encoding/json"
	"time"

	"booksland-be/internal/dto"
	"booksland-be/internal/pkg/logger"
	"booksland-be/pkg/clip"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IIndexerService keeps the CLIP service's embedding index in sync with the
// catalog. Sync requests go through the event bus so callers never wait on
// the (slow) push.
type IIndexerService interface {
	RequestSync(ctx context.Context, reason string) error
	Consume(ctx context.Context) error
}

type indexerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	catalog    ICatalogService
	clipClient *clip.Client
	logger     logger.ILogger
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	catalog ICatalogService,
	clipClient *clip.Client,
	logger logger.ILogger,
) IIndexerService {
	return &indexerService{
		pubSub:     pubSub,
		topicName:  topicName,
		catalog:    catalog,
		clipClient: clipClient,
		logger:     logger,
	}
}

func (is *indexerService) RequestSync(_ context.Context, reason string) error {
	payload, err := json.Marshal(dto.CatalogSyncMessage{
		RequestedAt: time.Now(),
		Reason:      reason,
	})
	if err != nil {
		return err
	}
	return is.pubSub.Publish(is.topicName, message.NewMessage(watermill.NewUUID(), payload))
}

func (is *indexerService) Consume(ctx context.Context) error {
	messages, err := is.pubSub.Subscribe(ctx, is.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			is.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (is *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CatalogSyncMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		is.logger.Error("INDEXER", "Failed to unmarshal sync message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are never retriable
		return
	}

	books, err := is.catalog.All(ctx)
	if err != nil {
		is.logger.Error("INDEXER", "Failed to load catalog", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	if len(books) == 0 {
		is.logger.Warn("INDEXER", "Catalog is empty, nothing to push", nil)
		msg.Ack()
		return
	}

	if err := is.clipClient.PushCatalog(ctx, books); err != nil {
		is.logger.Error("INDEXER", "Catalog push failed", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	is.logger.Info("INDEXER", "Catalog pushed to CLIP service", map[string]interface{}{
		"books":  len(books),
		"reason": payload.Reason,
	})
	msg.Ack()
}
