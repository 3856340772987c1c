package webhook

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/dltpay/paygate/app/models"
	"github.com/dltpay/paygate/app/repository"
	"github.com/dltpay/paygate/internal/pkg/relay"
)

// Outcome describes how far an inbound webhook got through processing.
// Every outcome is a success towards the provider; the distinction only
// shows up in the acknowledgement message.
type Outcome int

const (
	// OutcomeNotProcessed: raw event logged and relayed, no user data present.
	OutcomeNotProcessed Outcome = iota
	// OutcomeUserUpdated: user resolved and updated, no order data present.
	OutcomeUserUpdated
	// OutcomeProcessed: user and order persisted.
	OutcomeProcessed
)

// Message returns the acknowledgement sent back to the provider.
func (o Outcome) Message() string {
	switch o {
	case OutcomeNotProcessed:
		return "Webhook received but not processed (missing user data)"
	case OutcomeUserUpdated:
		return "User updated, no order data"
	default:
		return "Webhook processed successfully"
	}
}

// Service orchestrates one inbound webhook end-to-end: audit write, partner
// relay, user resolution and order upsert, in that order.
type Service struct {
	users  repository.UserRepository
	orders repository.OrderRepository
	events repository.WebhookEventRepository
	relay  *relay.Relay

	now func() time.Time
}

// NewService creates a webhook service from injected repositories and relay.
func NewService(repos *repository.Repositories, r *relay.Relay) *Service {
	return &Service{
		users:  repos.User,
		orders: repos.Order,
		events: repos.WebhookEvent,
		relay:  r,
		now:    time.Now,
	}
}

// Process handles one provider callback. The audit write is the only step
// whose failure aborts the request: losing the raw event is worse than any
// downstream failure. The relay runs before state updates and its outcome
// is logged but never fatal; partner notification and internal state are
// independent concerns.
func (s *Service) Process(ctx context.Context, evt *Event) (Outcome, error) {
	eventType := evt.Type
	if eventType == "" {
		eventType = models.EVENT_TYPE_UNKNOWN
	}

	if err := s.events.Create(&models.WebhookEvent{
		EventType: eventType,
		Payload:   string(evt.Raw),
	}); err != nil {
		return 0, fmt.Errorf("persist raw webhook event: %w", err)
	}

	s.dispatchRelay(ctx, evt)

	if !evt.HasUser() {
		log.Printf("Webhook skipped: missing user information (type=%s)", eventType)
		return OutcomeNotProcessed, nil
	}

	user, err := s.resolveUser(evt)
	if err != nil {
		return 0, fmt.Errorf("resolve webhook user: %w", err)
	}

	if !evt.HasOrder() {
		log.Printf("Webhook for user %s processed, no order data present", evt.User.UserID)
		return OutcomeUserUpdated, nil
	}

	if err := s.upsertOrder(evt, user); err != nil {
		return 0, fmt.Errorf("upsert order %s: %w", evt.Order.ID, err)
	}

	log.Printf("Order %s has been processed with status: %s", evt.Order.ID, evt.Type)
	return OutcomeProcessed, nil
}

// dispatchRelay forwards the raw event to the configured partner endpoints
// and logs the per-destination outcome.
func (s *Service) dispatchRelay(ctx context.Context, evt *Event) {
	results, err := s.relay.Dispatch(ctx, relay.Event{
		Type:    evt.Type,
		Payload: evt.Raw,
	})

	successCount := 0
	for _, result := range results {
		if result.Success {
			successCount++
		}
	}
	log.Printf("Webhook delivery: %d successful, %d failed", successCount, len(results)-successCount)

	for _, result := range results {
		if !result.Success {
			log.Printf("Webhook delivery to %s failed: %s", result.URL, result.Error)
		}
	}
	if err != nil {
		log.Printf("External webhook relay failed entirely: %v", err)
	}
}

// resolveUser finds the user the event refers to, preferring the click id
// minted at initiation over the provider's own user id, and syncs the
// provider id and verification status onto the resolved row.
func (s *Service) resolveUser(evt *Event) (*models.User, error) {
	if evt.ClickID != "" {
		user, err := s.users.GetByLastClickID(evt.ClickID)
		if err == nil {
			user.WertUserID = evt.User.UserID
			if evt.User.VerificationStatus != "" {
				user.VerificationStatus = evt.User.VerificationStatus
			}
			return user, s.users.Update(user)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	user, err := s.users.GetByWertUserID(evt.User.UserID)
	if err == nil {
		if evt.User.VerificationStatus != "" {
			user.VerificationStatus = evt.User.VerificationStatus
		}
		return user, s.users.Update(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{
		WertUserID:         evt.User.UserID,
		VerificationStatus: evt.User.VerificationStatus,
	}
	return user, s.users.Create(user)
}

// upsertOrder merges the lifecycle fields into the order row keyed by the
// provider's order id. On create the full provider order block is stored;
// on update only status, timestamps and transaction id move.
func (s *Service) upsertOrder(evt *Event, user *models.User) error {
	fields := LifecycleFields(evt.Type, evt.Order.TransactionID, s.now())

	order := &models.Order{
		WertOrderID:     evt.Order.ID,
		ClickID:         evt.ClickID,
		Commodity:       evt.Order.Base,
		CommodityAmount: parseAmount(evt.Order.BaseAmount),
		Currency:        evt.Order.Quote,
		CurrencyAmount:  parseAmount(evt.Order.QuoteAmount),
		TransactionID:   evt.Order.TransactionID,
		UserID:          user.ID,
	}
	if pd := evt.Order.PartnerData; pd != nil {
		order.SCAddress = pd.SCAddress
		order.SCInputData = pd.SCInputData
	}
	applyLifecycle(order, fields)

	return s.orders.Upsert(order, fields)
}

// applyLifecycle folds the column assignment map into the create-branch struct.
func applyLifecycle(order *models.Order, fields map[string]interface{}) {
	if status, ok := fields["status"].(string); ok {
		order.Status = status
	}
	if txID, ok := fields["transaction_id"].(string); ok {
		order.TransactionID = txID
	}
	for _, column := range []struct {
		name string
		dest **time.Time
	}{
		{"payment_started_at", &order.PaymentStartedAt},
		{"transfer_started_at", &order.TransferStartedAt},
		{"completed_at", &order.CompletedAt},
		{"failed_at", &order.FailedAt},
		{"canceled_at", &order.CanceledAt},
	} {
		if ts, ok := fields[column.name].(time.Time); ok {
			t := ts
			*column.dest = &t
		}
	}
}

// parseAmount converts the provider's stringified decimal; malformed or
// absent amounts become zero rather than failing the whole event.
func parseAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Ignoring malformed amount %q: %v", raw, err)
		return 0
	}
	return amount
}
