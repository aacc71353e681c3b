// Package library loads the external account and alias directories the
// matcher runs against: published CSV exports fetched over HTTP with a
// time-boxed cache, or a live Salesforce query. Everything here is
// collaborator territory; the enrichment core receives plain records.
package library

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Source names inside data_sources.yaml.
const (
	SourceAccounts = "sf_accounts"
	SourceAlias    = "domain_alias"
	SourceContacts = "sf_contacts"
)

// Source describes one published CSV table.
type Source struct {
	URL             string   `yaml:"url"`
	RequiredColumns []string `yaml:"required_columns"`
}

// Sources is the parsed data_sources.yaml.
type Sources struct {
	Sources map[string]Source `yaml:"sources"`
}

// Accounts returns the account directory source.
func (s *Sources) Accounts() Source { return s.Sources[SourceAccounts] }

// Alias returns the alias directory source.
func (s *Sources) Alias() Source { return s.Sources[SourceAlias] }

// Contacts returns the optional contacts source and whether it is defined.
func (s *Sources) Contacts() (Source, bool) {
	src, ok := s.Sources[SourceContacts]
	return src, ok
}

// LoadSources reads and validates data_sources.yaml. The accounts and alias
// sources are mandatory; contacts is optional.
func LoadSources(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "library: read sources %s", path)
	}

	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, eris.Wrapf(err, "library: parse sources %s", path)
	}

	for _, name := range []string{SourceAccounts, SourceAlias} {
		src, ok := s.Sources[name]
		if !ok || src.URL == "" {
			return nil, eris.Errorf("library: sources file must define %q with a url", name)
		}
	}

	return &s, nil
}
