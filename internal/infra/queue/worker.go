package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CRMClient pushes a submitted brief into the external CRM.
type CRMClient interface {
	PushBrief(ctx context.Context, evt BriefSubmittedEvent) error
}

// BriefStore marks records once the CRM accepted them.
type BriefStore interface {
	MarkSynced(ctx context.Context, id string) error
}

// Worker consumes brief.submitted events and syncs them to the CRM. The
// sync is at-least-once and fully decoupled from the submission pipeline.
type Worker struct {
	ch    *amqp.Channel
	crm   CRMClient
	store BriefStore
	log   *slog.Logger
}

func NewWorker(ch *amqp.Channel, crm CRMClient, store BriefStore, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}
	return &Worker{ch: ch, crm: crm, store: store, log: log}
}

// Start blocks consuming the queue until the channel closes.
func (w *Worker) Start(queueName string) error {
	msgs, err := w.ch.Consume(
		queueName,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	w.log.Info("brief sync worker running", "queue", queueName)

	for d := range msgs {
		var evt BriefSubmittedEvent
		if err := json.Unmarshal(d.Body, &evt); err != nil {
			w.log.Error("malformed event, sending to DLQ", "error", err)
			// Malformed payload: no requeue, the DLQ keeps it for inspection.
			d.Nack(false, false)
			continue
		}

		if err := w.process(context.Background(), evt); err != nil {
			w.log.Error("brief sync failed", "brief_id", evt.BriefID, "error", err)
			d.Nack(false, false)
			continue
		}

		w.log.Info("brief synced to CRM", "brief_id", evt.BriefID)
		d.Ack(false)
	}

	return nil
}

func (w *Worker) process(ctx context.Context, evt BriefSubmittedEvent) error {
	if err := w.crm.PushBrief(ctx, evt); err != nil {
		return err
	}
	return w.store.MarkSynced(ctx, evt.BriefID)
}
