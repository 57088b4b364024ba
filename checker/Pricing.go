package checker

import (
	"strings"

	"github.com/seoistop/check-domain-nc/ns"
)

// ExtractTld returns the lowercase suffix after the final dot, or "" when
// the domain has no dot. Multi-level TLDs like co.uk resolve to their last
// label, matching how the price table is keyed.
func ExtractTld(domain string) string {
	idx := strings.LastIndex(domain, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(domain[idx+1:]))
}

// AttachTldPricing fills the tld_* fields of every non-premium result from
// the standard price table. The table is fetched at most once per run no
// matter how many TLDs are involved, then filtered down to the codes
// actually needed. Premium rows always end up with empty tld_* fields; their
// pricing lives in the premium_* fields.
func (c *Checker) AttachTldPricing(results []ns.DomainCheckResult) {
	needed := make(map[string]bool)
	for i := range results {
		if results[i].IsPremiumName {
			continue
		}
		if tld := ExtractTld(results[i].Domain); tld != "" {
			needed[strings.ToUpper(tld)] = true
		}
	}

	pricing := make(map[string]ns.TldPricing)
	if len(needed) > 0 {
		table := c.Gateway.GetPricing()
		for code := range needed {
			if entry, ok := table[code]; ok {
				pricing[code] = entry
			}
		}
	}

	for i := range results {
		r := &results[i]
		r.TldCurrency = ""
		r.TldRegisterPrice = ""
		r.TldRenewPrice = ""
		r.TldTransferPrice = ""
		if r.IsPremiumName {
			continue
		}
		code := strings.ToUpper(ExtractTld(r.Domain))
		if code == "" {
			continue
		}
		if entry, ok := pricing[code]; ok {
			r.TldCurrency = entry.Currency
			r.TldRegisterPrice = entry.RegisterPrice
			r.TldRenewPrice = entry.RenewPrice
			r.TldTransferPrice = entry.TransferPrice
		}
	}
}
