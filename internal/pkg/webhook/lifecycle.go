package webhook

import (
	"time"

	"github.com/dltpay/paygate/app/models"
)

// lifecycleRule describes which order columns an event type touches beyond
// the status itself.
type lifecycleRule struct {
	timestampColumn   string
	setsTransactionID bool
}

// One rule per known event type. Event types outside this table are
// provider additions we pass through: they update the status and nothing
// else. The mapper never validates ordering, because the provider delivers
// events out of order and more than once.
var lifecycleRules = map[string]lifecycleRule{
	models.ORDER_PAYMENT_STARTED:  {timestampColumn: "payment_started_at"},
	models.ORDER_TRANSFER_STARTED: {timestampColumn: "transfer_started_at", setsTransactionID: true},
	models.ORDER_COMPLETE:         {timestampColumn: "completed_at", setsTransactionID: true},
	models.ORDER_FAILED:           {timestampColumn: "failed_at"},
	models.ORDER_CANCELED:         {timestampColumn: "canceled_at"},
}

// LifecycleFields maps an inbound event type onto the order column
// assignments to merge. The same set is used for the update branch and
// folded into the create branch of the upsert.
func LifecycleFields(eventType, transactionID string, now time.Time) map[string]interface{} {
	fields := map[string]interface{}{
		"status": eventType,
	}

	rule, ok := lifecycleRules[eventType]
	if !ok {
		return fields
	}

	fields[rule.timestampColumn] = now
	if rule.setsTransactionID {
		fields["transaction_id"] = transactionID
	}
	return fields
}
