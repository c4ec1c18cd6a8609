package checker

import (
	"context"
	"time"

	"github.com/miekg/dns"
	"github.com/projectdiscovery/gologger"
)

// DefaultResolvers are used when no resolver is configured
var DefaultResolvers = []string{"1.1.1.1:53", "8.8.8.8:53"}

// record types that indicate a domain is in use
var probeTypes = []uint16{dns.TypeA, dns.TypeAAAA, dns.TypeCNAME, dns.TypeMX}

// DNSProber reports whether a domain has any DNS records
type DNSProber interface {
	HasRecords(ctx context.Context, domain string) bool
}

// DNSResolver probes domains against a list of resolvers
type DNSResolver struct {
	Resolvers []string
	client    *dns.Client
}

// NewDNSResolver returns a resolver with a per-query timeout
func NewDNSResolver(resolvers []string, timeout time.Duration) *DNSResolver {
	if len(resolvers) == 0 {
		resolvers = DefaultResolvers
	}
	return &DNSResolver{
		Resolvers: resolvers,
		client:    &dns.Client{Net: "udp", Timeout: timeout},
	}
}

// HasRecords returns true as soon as any probed record type has an answer.
// Timeouts and resolver errors count as no records.
func (r *DNSResolver) HasRecords(ctx context.Context, domain string) bool {
	for _, qtype := range probeTypes {
		msg := new(dns.Msg)
		msg.SetQuestion(dns.Fqdn(domain), qtype)
		msg.RecursionDesired = true
		resp := r.exchange(ctx, msg)
		if resp != nil && resp.Rcode == dns.RcodeSuccess && len(resp.Answer) > 0 {
			return true
		}
	}
	return false
}

// exchange tries resolvers in order until one answers
func (r *DNSResolver) exchange(ctx context.Context, msg *dns.Msg) *dns.Msg {
	for _, resolver := range r.Resolvers {
		resp, _, err := r.client.ExchangeContext(ctx, msg, resolver)
		if err != nil {
			gologger.Debug().Msgf("dns: %v query for %v via %v failed: %v", dns.TypeToString[msg.Question[0].Qtype], msg.Question[0].Name, resolver, err)
			continue
		}
		return resp
	}
	return nil
}
