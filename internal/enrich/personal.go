package enrich

// defaultPersonalDomains lists consumer email providers excluded from
// business matching when the treat-personal-as-unmatched toggle is on.
// Built in rather than configured to keep the library YAML simple.
var defaultPersonalDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"yahoo.com":      {},
	"ymail.com":      {},
	"outlook.com":    {},
	"hotmail.com":    {},
	"live.com":       {},
	"msn.com":        {},
	"icloud.com":     {},
	"me.com":         {},
	"mac.com":        {},
	"aol.com":        {},
	"proton.me":      {},
	"protonmail.com": {},
	"gmx.com":        {},
	"gmx.net":        {},
}

// PersonalDomainCount reports the size of the built-in personal-domain set,
// for library status output.
func PersonalDomainCount() int { return len(defaultPersonalDomains) }

// IsPersonalDomain reports whether a normalized domain belongs to a consumer
// email provider.
func IsPersonalDomain(domain string) bool {
	_, ok := defaultPersonalDomains[domain]
	return ok
}
