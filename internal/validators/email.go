package validators

import (
	"net"
	"strings"
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DomainLookup resolves whether a mail domain exists.
type DomainLookup func(domain string) bool

func DNSLookup(domain string) bool {
	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

func IsEmailDomainValid(email string, lookup DomainLookup) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if lookup == nil {
		return true
	}
	return lookup(email[at+1:])
}
