package checker

import (
	"context"
	"net/http"
	"strings"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/retryablehttp-go"
)

// DefaultRDAPServers maps suffixes to their registry RDAP base URL
var DefaultRDAPServers = map[string]string{
	".com": "https://rdap.verisign.com/com/v1",
	".net": "https://rdap.verisign.com/net/v1",
	".org": "https://rdap.org/org/v1",
	".io":  "https://rdap.nic.io",
	".ai":  "https://rdap.nic.ai",
	".co":  "https://rdap.nic.co",
	".app": "https://rdap.nic.google",
	".dev": "https://rdap.nic.google",
	".xyz": "https://rdap.nic.xyz",
	".me":  "https://rdap.nic.me",
	".gg":  "https://rdap.nic.gg",
	".tv":  "https://rdap.nic.tv",
}

// RDAPProber looks up registration of a domain.
// A nil verdict means registration could not be confirmed either way.
type RDAPProber interface {
	Registered(ctx context.Context, domain, suffix string) *bool
}

// RDAPClient queries registry RDAP servers
type RDAPClient struct {
	Servers map[string]string
	client  *retryablehttp.Client
}

// NewRDAPClient returns a client for servers (DefaultRDAPServers when empty)
func NewRDAPClient(servers map[string]string) *RDAPClient {
	if len(servers) == 0 {
		servers = DefaultRDAPServers
	}
	return &RDAPClient{
		Servers: servers,
		client:  retryablehttp.NewClient(retryablehttp.DefaultOptionsSingle),
	}
}

func (r *RDAPClient) Registered(ctx context.Context, domain, suffix string) *bool {
	server, ok := r.Servers[suffix]
	if !ok {
		return nil
	}
	url := strings.TrimSuffix(server, "/") + "/domain/" + domain
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/rdap+json")
	resp, err := r.client.Do(req)
	if err != nil {
		gologger.Debug().Msgf("rdap: lookup of %v failed: %v", domain, err)
		return nil
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return verdict(true)
	case http.StatusNotFound:
		return verdict(false)
	default:
		return nil
	}
}

func verdict(v bool) *bool {
	return &v
}
