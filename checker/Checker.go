package checker

import (
	"time"

	"go.uber.org/zap"

	"github.com/seoistop/check-domain-nc/ns"
)

// MaxPerCall is the registrar's hard ceiling on domains per
// namecheap.domains.check call.
const MaxPerCall = 50

// batchDelay is the courtesy pause after each API call to stay clear of the
// registrar's rate limit.
const batchDelay = 400 * time.Millisecond

// Gateway is the slice of the API client the pipeline drives. ns.Client
// satisfies it; tests substitute a fake.
type Gateway interface {
	CheckDomains(domains []string) ns.BatchResponse
	GetPricing() map[string]ns.TldPricing
}

type Checker struct {
	Gateway   Gateway
	BatchSize int

	logger *zap.Logger
	sleep  func(time.Duration)
}

func New(gateway Gateway, batchSize int, logger *zap.Logger) *Checker {
	if batchSize <= 0 || batchSize > MaxPerCall {
		batchSize = MaxPerCall
	}
	return &Checker{
		Gateway:   gateway,
		BatchSize: batchSize,
		logger:    logger,
		sleep:     time.Sleep,
	}
}

// Chunk splits domains into consecutive groups of at most size, preserving
// order.
func Chunk(domains []string, size int) [][]string {
	var chunks [][]string
	for i := 0; i < len(domains); i += size {
		end := i + size
		if end > len(domains) {
			end = len(domains)
		}
		chunks = append(chunks, domains[i:end])
	}
	return chunks
}

// Run checks every domain in batches of at most BatchSize, serialized with a
// courtesy delay between calls. A failed batch contributes its messages to
// the returned global error list and the run carries on; partial output is
// the normal outcome for long lists.
func (c *Checker) Run(domains []string) ([]ns.DomainCheckResult, []string) {
	var results []ns.DomainCheckResult
	var globalErrors []string

	chunks := Chunk(domains, c.BatchSize)
	for i, batch := range chunks {
		resp := c.Gateway.CheckDomains(batch)
		if resp.Status == ns.StatusError && len(resp.Errors) > 0 {
			c.logger.Warn("batch failed",
				zap.Int("batch", i+1),
				zap.Strings("errors", resp.Errors))
			globalErrors = append(globalErrors, resp.Errors...)
		}
		results = append(results, resp.Results...)
		c.logger.Info("batch done",
			zap.Int("batch", i+1),
			zap.Int("batches", len(chunks)),
			zap.Int("results", len(resp.Results)))
		c.sleep(batchDelay)
	}
	return results, globalErrors
}

// RunToFiles is the whole pipeline: read the input list, check in batches,
// attach TLD pricing and write the CSV (and the JSON dump when jsonPath is
// set). The returned strings are the accumulated global errors, which do not
// prevent output from being written.
func (c *Checker) RunToFiles(inputPath, csvPath, jsonPath string) ([]string, error) {
	domains, err := ReadDomainList(inputPath)
	if err != nil {
		return nil, err
	}
	c.logger.Info("starting check",
		zap.Int("domains", len(domains)),
		zap.Int("batchSize", c.BatchSize))

	results, globalErrors := c.Run(domains)
	c.AttachTldPricing(results)

	if err := WriteCSV(csvPath, results); err != nil {
		return globalErrors, err
	}
	if jsonPath != "" {
		if err := WriteJSON(jsonPath, results, globalErrors); err != nil {
			return globalErrors, err
		}
	}
	return globalErrors, nil
}
