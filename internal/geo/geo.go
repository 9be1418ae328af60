// Package geo resolves the player's country from public IP lookup services,
// falling back to the local timezone.
package geo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

// Cooldown is how long a provider that answered 429 is skipped.
const Cooldown = 5 * time.Minute

// DefaultProviders are tried in order.
var DefaultProviders = []string{
	"https://ipapi.co/json/",
	"https://ipwho.is/",
	"https://freegeoip.app/json/",
}

var restrictedCountries = []string{
	"Afghanistan", "Brunei", "Gambia", "Iran", "Iraq", "Jamaica", "Kenya",
	"Libya", "Malaysia", "Nigeria", "Pakistan", "Qatar", "Saudi Arabia",
	"Sudan", "Somalia", "Tanzania", "Uganda", "Yemen", "Zambia",
	"Zimbabwe", "Russia", "Hungary", "Georgia", "Bulgaria",
}

// IsRestricted reports whether the overlay toggle is unavailable in country.
func IsRestricted(country string) bool {
	return slices.Contains(restrictedCountries, country)
}

// RestrictedCountries returns a copy of the restricted list.
func RestrictedCountries() []string {
	return slices.Clone(restrictedCountries)
}

// Noticer receives the progress lines printed while resolving.
type Noticer interface {
	Notice(line string)
}

// Options configures a Resolver.
type Options struct {
	Providers []string
	Timeout   time.Duration    // per provider request
	Zones     *ZoneTables      // nil disables the timezone fallback
	Now       func() time.Time // defaults to time.Now
	LocalZone func() string    // defaults to LocalZoneName
}

// Resolver looks up the country once per call, remembering which providers
// are cooling down between calls.
type Resolver struct {
	providers  []string
	timeout    time.Duration
	zones      *ZoneTables
	now        func() time.Time
	localZone  func() string
	httpClient *http.Client
	out        Noticer
	logger     *slog.Logger

	mu      sync.Mutex
	blocked map[string]time.Time
}

// NewResolver builds a Resolver. client may be nil.
func NewResolver(opts Options, client *http.Client, out Noticer, logger *slog.Logger) *Resolver {
	if len(opts.Providers) == 0 {
		opts.Providers = DefaultProviders
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.LocalZone == nil {
		opts.LocalZone = LocalZoneName
	}
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		providers:  slices.Clone(opts.Providers),
		timeout:    opts.Timeout,
		zones:      opts.Zones,
		now:        opts.Now,
		localZone:  opts.LocalZone,
		httpClient: client,
		out:        out,
		logger:     logger,
		blocked:    make(map[string]time.Time),
	}
}

// Resolve returns the country name, or false when neither the providers
// nor the timezone fallback could tell.
func (r *Resolver) Resolve(ctx context.Context) (string, bool) {
	for _, provider := range r.providers {
		if ctx.Err() != nil {
			return "", false
		}
		if r.coolingDown(provider) {
			r.logger.Debug("Skipping rate limited provider", "provider", provider)
			continue
		}

		country, err := r.lookup(ctx, provider)
		if err != nil {
			r.logger.Debug("Geolocation provider failed", "provider", provider, "error", err)
			r.notice(fmt.Sprintf("Error with %s: %v", provider, err))
			continue
		}
		if country != "" {
			r.logger.Debug("Country resolved", "provider", provider, "country", country)
			return country, true
		}
	}

	if r.zones != nil {
		r.notice("Could not determine country from APIs. Trying timezone...")
		if country, ok := r.zones.CountryForZone(r.localZone()); ok {
			r.logger.Debug("Country resolved from timezone", "country", country)
			return country, true
		}
	}

	r.notice("Could not determine user's country.")
	return "", false
}

func (r *Resolver) coolingDown(provider string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.blocked[provider]
	return ok && r.now().Before(until)
}

func (r *Resolver) block(provider string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocked[provider] = r.now().Add(Cooldown)
}

// lookup returns "" with a nil error when the provider answered 429 or the
// response had no country field.
func (r *Resolver) lookup(ctx context.Context, provider string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, provider, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		r.block(provider)
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid JSON response")
	}

	for _, field := range []string{"country_name", "country"} {
		if v := gjson.GetBytes(body, field); v.Exists() && v.Type == gjson.String {
			if name := strings.TrimSpace(v.String()); name != "" {
				return name, nil
			}
		}
	}
	r.notice(fmt.Sprintf("Unexpected response format from %s", provider))
	return "", nil
}

func (r *Resolver) notice(line string) {
	if r.out != nil {
		r.out.Notice(line)
	}
}
