package checker

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"

	"github.com/seoistop/check-domain-nc/ns"
)

// CsvHeader is the fixed column order consumers of the report rely on.
var CsvHeader = []string{
	"domain",
	"available",
	"is_premium",
	"premium_registration_price",
	"premium_renewal_price",
	"premium_transfer_price",
	"icann_fee",
	"eap_fee",
	"tld_currency",
	"tld_register_price",
	"tld_renew_price",
	"tld_transfer_price",
	"note",
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func csvRow(r ns.DomainCheckResult) []string {
	return []string{
		r.Domain,
		boolString(r.Available),
		boolString(r.IsPremiumName),
		r.PremiumRegistrationPrice,
		r.PremiumRenewalPrice,
		r.PremiumTransferPrice,
		r.IcannFee,
		r.EapFee,
		r.TldCurrency,
		r.TldRegisterPrice,
		r.TldRenewPrice,
		r.TldTransferPrice,
		r.Error,
	}
}

func WriteCSVTo(w io.Writer, results []ns.DomainCheckResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CsvHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := writer.Write(csvRow(r)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteCSV(path string, results []ns.DomainCheckResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSVTo(file, results); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Report is the JSON dump schema: the full per-domain records plus the
// global error strings from the run.
type Report struct {
	Results []ns.DomainCheckResult `json:"results"`
	Errors  []string               `json:"errors"`
}

func WriteJSONTo(w io.Writer, results []ns.DomainCheckResult, globalErrors []string) error {
	report := Report{Results: results, Errors: globalErrors}
	if report.Results == nil {
		report.Results = []ns.DomainCheckResult{}
	}
	if report.Errors == nil {
		report.Errors = []string{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func WriteJSON(path string, results []ns.DomainCheckResult, globalErrors []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSONTo(file, results, globalErrors); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
