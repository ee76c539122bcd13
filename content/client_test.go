package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func contentServer(t *testing.T, failing ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	link := "https://example.com"
	records := map[string]any{
		SectionProfile:    Profile{FirstName: "Ada", LastName: "Lovelace"},
		SectionMetrics:    []Metric{{Value: "15+", Label: "Projects"}},
		SectionAbout:      About{AboutMe: "<p>me</p>", AboutLogo: "<p>logo</p>"},
		SectionSkills:     Skills{Skills: []Skill{{Name: "Go", Percentage: 90}}},
		SectionServices:   []Service{{Title: "Pipelines", Icon: "transfer"}},
		SectionProjects:   []Project{{Title: "Open", Link: &link}},
		SectionExperience: []Experience{{Title: "Engineer", StartDate: "Jan 2022", EndDate: "Present"}},
		SectionContact:    Contact{Email: "a@b.c"},
	}
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		section := strings.TrimPrefix(r.URL.Path, "/api/")
		for _, f := range failing {
			if f == section {
				http.Error(w, `{"detail":"Internal Server Error"}`, http.StatusInternalServerError)
				return
			}
		}
		v, ok := records[section]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestClientFetchAll(t *testing.T) {
	defer goleak.VerifyNone(t)
	srv, hits := contentServer(t)
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()
	c := NewClient(srv.URL+"/", srv.Client())

	b, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, len(PageSections), hits.Load())

	require.NotNil(t, b.Profile)
	assert.Equal(t, "Ada Lovelace", b.Profile.FullName())
	assert.Len(t, b.Metrics, 1)
	require.NotNil(t, b.About)
	assert.Equal(t, "<p>me</p>", b.About.AboutMe)
	require.NotNil(t, b.Skills)
	assert.Equal(t, 90, b.Skills.Skills[0].Percentage)
	assert.Len(t, b.Services, 1)
	require.Len(t, b.Projects, 1)
	assert.Equal(t, "https://example.com", *b.Projects[0].Link)
	assert.Len(t, b.Experience, 1)
	require.NotNil(t, b.Contact)
	assert.Equal(t, "a@b.c", b.Contact.Email)

}

func TestClientPartialFailure(t *testing.T) {
	defer goleak.VerifyNone(t)
	srv, _ := contentServer(t, SectionProfile, SectionSkills)
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()
	c := NewClient(srv.URL, srv.Client())

	b, err := c.Fetch(context.Background())
	require.Error(t, err)
	require.NotNil(t, b)

	assert.Nil(t, b.Profile)
	assert.Nil(t, b.Skills)
	assert.NotNil(t, b.About)
	assert.NotNil(t, b.Contact)
	assert.Len(t, b.Metrics, 1)

	var se *SectionError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, []string{SectionProfile, SectionSkills}, se.Section)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	var sections []string
	for _, e := range joined.Unwrap() {
		var se *SectionError
		require.True(t, errors.As(e, &se))
		sections = append(sections, se.Section)
	}
	assert.ElementsMatch(t, []string{SectionProfile, SectionSkills}, sections)
	assert.Contains(t, err.Error(), "unexpected status 500")

}

func TestClientCanceled(t *testing.T) {
	srv, _ := contentServer(t)
	c := NewClient(srv.URL, srv.Client())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, err := c.Fetch(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, b.Profile)
}

func TestClientFailureDoesNotCancelSlowSections(t *testing.T) {
	defer goleak.VerifyNone(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimPrefix(r.URL.Path, "/api/") {
		case SectionProfile:
			http.Error(w, "boom", http.StatusInternalServerError)
		case SectionContact:
			select {
			case <-time.After(50 * time.Millisecond):
			case <-r.Context().Done():
				return
			}
			_ = json.NewEncoder(w).Encode(Contact{Email: "late@example.com"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	defer srv.Client().CloseIdleConnections()

	b, err := NewClient(srv.URL, srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	require.NotNil(t, b.Contact, "slow section should still arrive after another failed")
	assert.Equal(t, "late@example.com", b.Contact.Email)
	assert.Nil(t, b.Profile)
}
