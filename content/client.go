package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// SectionError reports that one section could not be fetched.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// Client fetches the page content from a content server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL. A nil hc uses a
// client with a 10 second timeout.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Fetch requests all eight sections in parallel. Sections that fail are
// left nil in the bundle and reported as *SectionError values joined into
// the returned error; the others are still filled in.
func (c *Client) Fetch(ctx context.Context) (*Bundle, error) {
	b := &Bundle{}
	errs := make([]error, len(PageSections))

	// A plain Group, not WithContext: one section failing must not cancel
	// the others. Failures are recorded per slot in errs and the closures
	// always return nil.
	var g errgroup.Group
	fetch := func(i int, section string, load func(context.Context, string) error) {
		g.Go(func() error {
			if err := load(ctx, section); err != nil {
				errs[i] = &SectionError{Section: section, Err: err}
			}
			return nil
		})
	}

	fetch(0, SectionProfile, func(ctx context.Context, s string) error {
		var v Profile
		if err := c.get(ctx, s, &v); err != nil {
			return err
		}
		b.Profile = &v
		return nil
	})
	fetch(1, SectionMetrics, func(ctx context.Context, s string) error {
		var v []Metric
		if err := c.get(ctx, s, &v); err != nil {
			return err
		}
		b.Metrics = v
		return nil
	})
	fetch(2, SectionAbout, func(ctx context.Context, s string) error {
		var v About
		if err := c.get(ctx, s, &v); err != nil {
			return err
		}
		b.About = &v
		return nil
	})
	fetch(3, SectionSkills, func(ctx context.Context, s string) error {
		var v Skills
		if err := c.get(ctx, s, &v); err != nil {
			return err
		}
		b.Skills = &v
		return nil
	})
	fetch(4, SectionServices, func(ctx context.Context, s string) error {
		var v []Service
		if err := c.get(ctx, s, &v); err != nil {
			return err
		}
		b.Services = v
		return nil
	})
	fetch(5, SectionProjects, func(ctx context.Context, s string) error {
		var v []Project
		if err := c.get(ctx, s, &v); err != nil {
			return err
		}
		b.Projects = v
		return nil
	})
	fetch(6, SectionExperience, func(ctx context.Context, s string) error {
		var v []Experience
		if err := c.get(ctx, s, &v); err != nil {
			return err
		}
		b.Experience = v
		return nil
	})
	fetch(7, SectionContact, func(ctx context.Context, s string) error {
		var v Contact
		if err := c.get(ctx, s, &v); err != nil {
			return err
		}
		b.Contact = &v
		return nil
	})

	_ = g.Wait() // always nil, see above
	return b, errors.Join(errs...)
}

func (c *Client) get(ctx context.Context, section string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/"+section, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
