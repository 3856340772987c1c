// Package widget builds and signs the payload handed to the hosted payment
// widget: the smart-contract call data for the settlement contract and the
// partner signature the provider verifies before opening a session.
package widget

// SignedData is the smart-contract block shown to the widget. Signature is
// empty until SignSmartContractData has run.
type SignedData struct {
	Address         string  `json:"address"`
	Commodity       string  `json:"commodity"`
	CommodityAmount float64 `json:"commodity_amount"`
	Network         string  `json:"network"`
	SCAddress       string  `json:"sc_address"`
	SCInputData     string  `json:"sc_input_data"`
	Signature       string  `json:"signature,omitempty"`
}

// Options are the widget launch parameters handed to the checkout frontend.
type Options struct {
	PartnerID string `json:"partner_id"`
	ClickID   string `json:"click_id"`
	Origin    string `json:"origin"`
}
