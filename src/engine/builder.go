// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package engine

import (
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/H0llyW00dzZ/certtrust/src/config"
	"github.com/H0llyW00dzZ/certtrust/src/internal/document"
	"github.com/H0llyW00dzZ/certtrust/src/internal/signature"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
	x509revocation "github.com/H0llyW00dzZ/certtrust/src/internal/x509/revocation"
	"github.com/H0llyW00dzZ/certtrust/src/logger"
	"github.com/H0llyW00dzZ/certtrust/src/version"
)

// Builder assembles an [Engine] with a fluent interface.
//
// Example usage:
//
//	eng, err := NewBuilder().
//	    WithConfig(cfg).
//	    WithClock(clockwork.NewFakeClock()).
//	    WithCRLFetcher("ldap", ldapFetcher).
//	    Build()
type Builder struct {
	cfg        *config.Config
	log        logger.Logger
	clock      clockwork.Clock
	version    string
	httpClient *http.Client
	fetchers   map[string]x509revocation.CRLFetcher
}

// NewBuilder creates a builder with no dependencies configured. Build fills
// every missing dependency with its default.
func NewBuilder() *Builder { return &Builder{} }

// WithConfig sets the configuration. A nil config selects [config.Default].
func (b *Builder) WithConfig(cfg *config.Config) *Builder {
	b.cfg = cfg
	return b
}

// WithLogger sets the logger. Raw transport errors are only logged at debug level.
func (b *Builder) WithLogger(log logger.Logger) *Builder {
	b.log = log
	return b
}

// WithClock sets the clock used for trust evaluation and signing time.
func (b *Builder) WithClock(clock clockwork.Clock) *Builder {
	b.clock = clock
	return b
}

// WithVersion sets the version reported in the User-Agent header.
func (b *Builder) WithVersion(v string) *Builder {
	b.version = v
	return b
}

// WithHTTPClient replaces the HTTP client used for CRL, OCSP and issuer fetches.
func (b *Builder) WithHTTPClient(c *http.Client) *Builder {
	b.httpClient = c
	return b
}

// WithCRLFetcher registers a CRL fetcher for a URL scheme such as "ldap".
func (b *Builder) WithCRLFetcher(scheme string, f x509revocation.CRLFetcher) *Builder {
	if b.fetchers == nil {
		b.fetchers = make(map[string]x509revocation.CRLFetcher)
	}
	b.fetchers[scheme] = f
	return b
}

// Build validates the configuration and constructs the engine.
//
// Returns:
//   - *Engine: Ready-to-use engine
//   - error: Configuration validation failure
func (b *Builder) Build() (*Engine, error) {
	cfg := b.cfg
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := b.log
	if log == nil {
		log = logger.Discard()
	}
	clock := b.clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	v := b.version
	if v == "" {
		v = version.Version
	}

	hash, err := x509revocation.ParseHash(cfg.Revocation.OCSPHash)
	if err != nil {
		return nil, err
	}
	scheme, err := signature.ParseScheme(cfg.Signing.Scheme)
	if err != nil {
		return nil, err
	}

	httpCfg := x509revocation.NewHTTPConfig(v)
	httpCfg.UserAgent = cfg.Revocation.UserAgent
	httpCfg.MaxResponseBytes = cfg.Revocation.MaxResponseBytes
	if b.httpClient != nil {
		httpCfg.SetClient(b.httpClient)
	}

	return &Engine{
		cfg:    cfg,
		log:    log,
		clock:  clock,
		parser: x509certs.New(),
		http:   httpCfg,
		checker: x509revocation.New(x509revocation.Config{
			HTTP:        httpCfg,
			CRLTimeout:  cfg.Revocation.CRLTimeout(),
			OCSPTimeout: cfg.Revocation.OCSPTimeout(),
			OCSPHash:    hash,
			Clock:       clock,
			Fetchers:    b.fetchers,
		}, log),
		signer: document.NewSigner(clock),
		scheme: scheme,
	}, nil
}
