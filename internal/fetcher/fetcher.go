package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"justel_spider/internal/config"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"
)

const MaxHops = 15

// The portal serves legacy single-byte markup and routinely omits or
// mislabels the charset header, so the decode label is fixed rather than
// sniffed from the response.
const bodyCharset = "windows-1252"

// ErrNotFound wraps HTTP 404 so callers can tell a missing resource (e.g. a
// law that was never translated) apart from a real transport failure.
var ErrNotFound = errors.New("resource not found")

// Clock abstracts time so tests can assert rate-limit and backoff waits
// without real delays.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Fetcher issues rate-limited, retrying GETs against the portal. lastRequest
// is guarded by mu; the limiter spaces request *starts*, so the timestamp is
// taken before the request goes out, not after it completes.
type Fetcher struct {
	client      *http.Client
	cfg         *config.Config
	clock       Clock
	robotsGroup *robotstxt.Group

	mu          sync.Mutex
	lastRequest time.Time
}

func New(cfg *config.Config, clock Clock) *Fetcher {
	if clock == nil {
		clock = realClock{}
	}
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				DisableKeepAlives: true,
				MaxIdleConns:      0,
			},
			Timeout: time.Duration(cfg.Logic.TimeoutSec) * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= MaxHops {
					return fmt.Errorf("stopped after %d redirects (MaxHops exceeded)", MaxHops)
				}
				return nil
			},
		},
		cfg:   cfg,
		clock: clock,
	}
}

// LoadRobots fetches the portal's robots.txt once. Any failure is logged and
// ignored; the check is advisory politeness, not a correctness requirement.
func (f *Fetcher) LoadRobots(ctx context.Context) {
	u, err := url.Parse(f.cfg.Portal.BaseURL)
	if err != nil {
		log.Printf("robots.txt: cannot parse base URL: %v", err)
		return
	}
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", f.cfg.Portal.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		log.Printf("robots.txt: load failed (ignored): %v", err)
		return
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		log.Printf("robots.txt: parse failed (ignored): %v", err)
		return
	}
	f.robotsGroup = data.FindGroup(f.cfg.Portal.UserAgent)
	log.Printf("robots.txt loaded from %s", robotsURL)
}

func (f *Fetcher) allowed(urlStr string) bool {
	if f.robotsGroup == nil {
		return true
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return f.robotsGroup.Test(u.Path)
}

// waitTurn enforces the minimum spacing between request starts and stamps
// the new start time while still holding the lock.
func (f *Fetcher) waitTurn() {
	f.mu.Lock()
	defer f.mu.Unlock()

	minGap := time.Duration(f.cfg.Logic.DelayMS) * time.Millisecond
	if !f.lastRequest.IsZero() {
		elapsed := f.clock.Now().Sub(f.lastRequest)
		if elapsed < minGap {
			f.clock.Sleep(minGap - elapsed)
		}
	}
	f.lastRequest = f.clock.Now()
}

// Fetch GETs one URL and returns the decoded body. Up to MaxRetries attempts;
// between attempt n and n+1 it backs off n seconds. The last error is
// surfaced, never swallowed.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (string, error) {
	if !f.allowed(urlStr) {
		return "", fmt.Errorf("robots.txt disallows %s", urlStr)
	}

	var lastErr error
	for attempt := 1; attempt <= f.cfg.Logic.MaxRetries; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt-1) * time.Second
			log.Printf("retry %d/%d for %s in %s", attempt, f.cfg.Logic.MaxRetries, urlStr, backoff)
			f.clock.Sleep(backoff)
		}

		body, err := f.fetchOnce(ctx, urlStr)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("fetch %s: %w", urlStr, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, urlStr string) (string, error) {
	f.waitTurn()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.cfg.Portal.UserAgent)
	req.Header.Set("Accept-Language", f.cfg.Portal.AcceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%s: %w", urlStr, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	reader, err := charset.NewReaderLabel(bodyCharset, resp.Body)
	if err != nil {
		reader = resp.Body
	}
	bodyBytes, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(bodyBytes), ""), nil
}
