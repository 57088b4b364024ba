package ns

// TldPricing holds the standard price table entry for one TLD, keyed by the
// uppercase product name from namecheap.users.getPricing.
type TldPricing struct {
	Currency      string `json:"currency,omitempty"`
	RegisterPrice string `json:"register_price,omitempty"`
	RenewPrice    string `json:"renew_price,omitempty"`
	TransferPrice string `json:"transfer_price,omitempty"`
}

func (p TldPricing) HasAnyPrice() bool {
	return p.RegisterPrice != "" || p.RenewPrice != "" || p.TransferPrice != ""
}
