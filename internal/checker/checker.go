// Package checker decides whether typo candidates are still unregistered
package checker

import (
	"context"
	"time"

	"github.com/jasona7/typosquat"
	"github.com/projectdiscovery/gologger"
)

// Options of a Checker
type Options struct {
	// delay between two DNS probes
	DNSDelay time.Duration
	// delay between two RDAP lookups
	RDAPDelay time.Duration
	// DNS resolvers in host:port form
	Resolvers []string
	// suffix to RDAP base URL, DefaultRDAPServers when empty
	RDAPServers map[string]string
	// per DNS query timeout
	Timeout time.Duration
}

// Checker runs DNS probes first and confirms DNS-clear domains over RDAP.
// Probes run one after another with fixed delays.
type Checker struct {
	options *Options
	dns     DNSProber
	rdap    RDAPProber
}

// New creates a checker backed by real DNS and RDAP clients
func New(opts *Options) *Checker {
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	return &Checker{
		options: opts,
		dns:     NewDNSResolver(opts.Resolvers, opts.Timeout),
		rdap:    NewRDAPClient(opts.RDAPServers),
	}
}

// Check returns a verdict for every candidate. When ctx is cancelled
// the verdicts gathered so far are returned together with ctx.Err().
func (c *Checker) Check(ctx context.Context, candidates []*typosquat.Candidate) ([]Result, error) {
	results := make([]Result, 0, len(candidates))
	dnsClear := []*typosquat.Candidate{}

	for i, candidate := range candidates {
		if i > 0 {
			if err := sleep(ctx, c.options.DNSDelay); err != nil {
				return results, err
			}
		}
		if c.dns.HasRecords(ctx, candidate.Domain) {
			results = append(results, Result{Candidate: candidate, HasDNS: true})
			continue
		}
		dnsClear = append(dnsClear, candidate)
	}
	gologger.Verbose().Msgf("%d of %d domains have no DNS records", len(dnsClear), len(candidates))

	for i, candidate := range dnsClear {
		if i > 0 {
			if err := sleep(ctx, c.options.RDAPDelay); err != nil {
				return results, err
			}
		}
		registered := c.rdap.Registered(ctx, candidate.Domain, candidate.Suffix)
		results = append(results, Result{
			Candidate:      candidate,
			RDAPRegistered: registered,
			// no DNS and no confirmation either way is likely available
			Available: registered == nil || !*registered,
		})
	}
	return results, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
