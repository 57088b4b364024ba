package checker

import (
	"fmt"
	"os"
	"strings"
)

// NormalizeDomains cleans raw input lines into queryable domain names:
// blank lines and # comments are dropped, a leading www. is stripped and
// everything is lowercased.
func NormalizeDomains(lines []string) []string {
	var domains []string
	for _, line := range lines {
		d := strings.ToLower(strings.TrimSpace(line))
		if d == "" || strings.HasPrefix(d, "#") {
			continue
		}
		d = strings.TrimPrefix(d, "www.")
		domains = append(domains, d)
	}
	return domains
}

// ReadDomainList loads and normalizes the input file, one domain per line.
// A missing file or an input with no usable domains is fatal for the run.
func ReadDomainList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	domains := NormalizeDomains(strings.Split(string(data), "\n"))
	if len(domains) == 0 {
		return nil, fmt.Errorf("no domains in input file %s", path)
	}
	return domains, nil
}
