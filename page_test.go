package folio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phanxgames/folio/content"
	"go.uber.org/goleak"
)

type fakeFetcher struct {
	bundle *content.Bundle
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*content.Bundle, error) {
	f.calls++
	return f.bundle, f.err
}

func fullBundle() *content.Bundle {
	p := testProfile
	return &content.Bundle{
		Profile: &p,
		Metrics: []content.Metric{{Value: "15+", Label: "Projects"}},
		Skills:  &content.Skills{Skills: []content.Skill{{Name: "Go", Percentage: 90}}},
		Contact: &content.Contact{Email: "a@b.c", GitHub: "github.com/a", LinkedIn: "linkedin.com/in/a"},
	}
}

func pageRig(t *testing.T, prefs Preferences, f Fetcher) (*Document, *Session, *Page) {
	t.Helper()
	doc := NewDocument(1280, 720)
	BuildSkeleton(doc, DefaultBrand)
	session := NewSession(nil, nil, prefs)
	return doc, session, NewPage(doc, session, f, PageConfig{})
}

func TestPageBypassPaintsAfterFetch(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := &fakeFetcher{bundle: fullBundle()}
	doc, _, p := pageRig(t, Preferences{ReducedMotion: true}, f)
	paints := 0
	p.OnPaint = func() { paints++ }

	p.Boot(context.Background())
	if p.Intro.State() != IntroSkipped {
		t.Fatalf("state = %v, want skipped", p.Intro.State())
	}
	if p.Painted() {
		t.Fatal("should not paint before the fetch resolves")
	}
	p.Wait()
	doc.Update(frame)

	if !p.Painted() || paints != 1 || f.calls != 1 {
		t.Fatalf("painted = %v paints = %d calls = %d", p.Painted(), paints, f.calls)
	}
	if p.Bundle() == nil {
		t.Error("bundle should be kept")
	}
	if doc.GetElementByID(LoaderID) != nil {
		t.Error("loader should be removed on bypass")
	}
	if n := len(doc.GetElementByID("metrics-content").AllByClass("metric-card")); n != 1 {
		t.Errorf("metric cards = %d, want 1", n)
	}
	if len(p.Reveal.Entries()) == 0 {
		t.Error("reveal engine should be armed after paint")
	}
	if doc.Query("hero-title") == nil {
		t.Error("bypass should render the plain hero title")
	}

	doc.Advance(time.Second, frame)
	if paints != 1 {
		t.Errorf("paints = %d, want 1", paints)
	}
}

func TestPageTimedPathPaintsAtDetach(t *testing.T) {
	defer goleak.VerifyNone(t)
	doc, session, p := pageRig(t, Preferences{}, &fakeFetcher{bundle: fullBundle()})
	p.Boot(context.Background())
	p.Wait()

	if !session.LoaderShown() {
		t.Error("timed path should mark the loader shown")
	}
	doc.Advance(DefaultIntroTimeline.Detach-100*time.Millisecond, tick)
	if p.Painted() {
		t.Fatal("should not paint before detach")
	}
	doc.Advance(200*time.Millisecond, tick)
	if !p.Painted() {
		t.Fatal("should paint at detach")
	}
	if doc.GetElementByID(HeroTitleSlotID) == nil {
		t.Error("hero should get a slot while the brand travels")
	}

	doc.Advance(2*time.Second, tick)
	if p.Intro.State() != IntroHandedOff {
		t.Errorf("state = %v, want handed-off", p.Intro.State())
	}
}

func TestPagePartialFailure(t *testing.T) {
	defer goleak.VerifyNone(t)
	b := fullBundle()
	b.Profile = nil
	f := &fakeFetcher{bundle: b, err: errors.Join(&content.SectionError{Section: content.SectionProfile, Err: errors.New("boom")})}
	doc, _, p := pageRig(t, Preferences{ReducedMotion: true}, f)
	p.Boot(context.Background())
	p.Wait()
	doc.Update(frame)

	if !p.Painted() {
		t.Fatal("partial content should still paint")
	}
	if doc.GetElementByID("hero-content").NumChildren() != 0 {
		t.Error("failed section should stay empty")
	}
	if len(doc.GetElementByID("skills-content").AllByClass(ClassSkillFill)) != 1 {
		t.Error("loaded sections should render")
	}
}

func TestPageNilFetcher(t *testing.T) {
	doc, _, p := pageRig(t, Preferences{ReducedMotion: true}, nil)
	p.Boot(context.Background())
	if !p.Painted() {
		t.Fatal("page without a fetcher paints on bypass")
	}
	if doc.GetElementByID("metrics-content").NumChildren() != 0 {
		t.Error("nothing to render")
	}
}

func TestPageToggleTheme(t *testing.T) {
	defer goleak.VerifyNone(t)
	doc, session, p := pageRig(t, Preferences{ReducedMotion: true}, &fakeFetcher{bundle: fullBundle()})
	p.Boot(context.Background())
	p.Wait()
	doc.Update(frame)

	if doc.Theme() != ThemeDark {
		t.Fatalf("theme = %s, want dark", doc.Theme())
	}
	icon := doc.GetElementByID(GitHubIconID)
	if src, _ := icon.Attr("src"); src != githubIconDark {
		t.Errorf("src = %q, want dark icon", src)
	}

	p.ToggleTheme()
	if doc.Theme() != ThemeLight || session.Theme() != ThemeLight {
		t.Errorf("theme = %s/%s, want light", doc.Theme(), session.Theme())
	}
	if src, _ := icon.Attr("src"); src != githubIconLight {
		t.Errorf("src = %q, want light icon", src)
	}

	// A script step toggles through the same path.
	r, err := LoadScript([]byte(`{"steps": [{"action": "toggle-theme"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	doc.SetScript(r)
	doc.Update(frame)
	if doc.Theme() != ThemeDark || session.Theme() != ThemeDark {
		t.Errorf("scripted toggle left theme %s", doc.Theme())
	}
}

func TestPageThemeRestoredFromSession(t *testing.T) {
	doc := NewDocument(1280, 720)
	BuildSkeleton(doc, DefaultBrand)
	local := &MemoryKV{}
	if err := local.Set(themeKey, ThemeLight); err != nil {
		t.Fatal(err)
	}
	p := NewPage(doc, NewSession(nil, local, Preferences{ReducedMotion: true}), nil, PageConfig{})
	p.Boot(context.Background())
	if doc.Theme() != ThemeLight {
		t.Errorf("theme = %s, want light", doc.Theme())
	}
}

func TestPageMenuAndScroll(t *testing.T) {
	defer goleak.VerifyNone(t)
	doc, _, p := pageRig(t, Preferences{ReducedMotion: true}, &fakeFetcher{bundle: fullBundle()})
	p.Boot(context.Background())
	p.Wait()
	doc.Update(frame)

	menu := doc.GetElementByID(MobileMenuID)
	burger := doc.GetElementByID(HamburgerID)
	p.ToggleMenu()
	if menu.Style.Display != DisplayBlock || !burger.HasClass(ClassActive) {
		t.Fatal("menu should open")
	}
	if v, _ := burger.Attr("aria-expanded"); v != "true" {
		t.Errorf("aria-expanded = %s", v)
	}

	skills := doc.GetElementByID("skills")
	target, _ := doc.documentRect(skills)
	p.ScrollToSection("skills")
	if menu.Style.Display != DisplayNone || burger.HasClass(ClassActive) {
		t.Error("scrolling to a section should close the menu")
	}
	if !doc.Viewport().Scrolling() {
		t.Fatal("scroll should animate")
	}
	doc.Advance(time.Second, frame)
	if !approx(doc.Viewport().ScrollY, target.Y) {
		t.Errorf("scrollY = %v, want %v", doc.Viewport().ScrollY, target.Y)
	}
	if !doc.GetElementByID(NavbarID).HasClass("scrolled") {
		t.Error("navbar should be marked scrolled")
	}

	p.ScrollToSection("nope")
	if doc.Viewport().Scrolling() {
		t.Error("unknown section should be ignored")
	}

	doc.Viewport().ScrollBy(-doc.Viewport().ScrollY)
	doc.Update(frame)
	if doc.GetElementByID(NavbarID).HasClass("scrolled") {
		t.Error("scrolled class should clear at the top")
	}
}
