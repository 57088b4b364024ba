package ns

type DomainCheckResult struct {
	Domain                   string `json:"domain"`
	Available                bool   `json:"available"`
	IsPremiumName            bool   `json:"is_premium"`
	PremiumRegistrationPrice string `json:"premium_registration_price,omitempty"`
	PremiumRenewalPrice      string `json:"premium_renewal_price,omitempty"`
	PremiumRestorePrice      string `json:"premium_restore_price,omitempty"`
	PremiumTransferPrice     string `json:"premium_transfer_price,omitempty"`
	IcannFee                 string `json:"icann_fee,omitempty"`
	EapFee                   string `json:"eap_fee,omitempty"`
	Error                    string `json:"error,omitempty"`
	TldCurrency              string `json:"tld_currency,omitempty"`
	TldRegisterPrice         string `json:"tld_register_price,omitempty"`
	TldRenewPrice            string `json:"tld_renew_price,omitempty"`
	TldTransferPrice         string `json:"tld_transfer_price,omitempty"`
}
