package webhook

import "encoding/json"

// Event is the payment provider's callback body.
type Event struct {
	Type    string     `json:"type"`
	ClickID string     `json:"click_id"`
	Order   *OrderData `json:"order"`
	User    *UserData  `json:"user"`

	// Raw is the verbatim request body, kept for the audit log and the
	// partner relay.
	Raw json.RawMessage `json:"-"`
}

// OrderData is the provider's order block. Amounts arrive as strings.
type OrderData struct {
	ID            string       `json:"id"`
	Base          string       `json:"base"`
	BaseAmount    string       `json:"base_amount"`
	Quote         string       `json:"quote"`
	QuoteAmount   string       `json:"quote_amount"`
	TransactionID string       `json:"transaction_id"`
	PartnerData   *PartnerData `json:"partner_data"`
}

// PartnerData echoes the smart-contract fields submitted at initiation.
type PartnerData struct {
	SCAddress   string `json:"sc_address"`
	SCInputData string `json:"sc_input_data"`
}

// UserData is the provider's user block.
type UserData struct {
	UserID             string `json:"user_id"`
	VerificationStatus string `json:"verification_status"`
}

// HasUser reports whether the event carries a usable user identifier.
func (e *Event) HasUser() bool {
	return e.User != nil && e.User.UserID != ""
}

// HasOrder reports whether the event carries a usable order identifier.
func (e *Event) HasOrder() bool {
	return e.Order != nil && e.Order.ID != ""
}
