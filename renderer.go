package folio

import (
	"fmt"
	"strconv"
	"time"

	"github.com/phanxgames/folio/content"
	"go.uber.org/zap"
)

// GitHub icon sources per theme.
const (
	githubIconDark  = "/static/images/github-logo-dark.png"
	githubIconLight = "/static/images/github-logo-light.png"
	linkedInIcon    = "/static/images/linkedin-logo.png"
)

func githubIcon(theme string) string {
	if theme == ThemeLight {
		return githubIconLight
	}
	return githubIconDark
}

// Renderer paints content records into the skeleton's section containers.
// Sections whose record is missing are left untouched, so one failed
// section never blocks the others.
type Renderer struct {
	doc    *Document
	brand  BrandConfig
	logger *zap.Logger

	// PendingBrand reports the intro's brand element while it is still
	// travelling to the hero. When it returns an element the hero gets a
	// slot sized to it instead of the final title markup.
	PendingBrand func() *Element
	// Now resolves "present" in experience dates.
	Now func() time.Time
}

// NewRenderer creates a renderer for doc.
func NewRenderer(doc *Document, brand BrandConfig) *Renderer {
	return &Renderer{
		doc:    doc,
		brand:  brand,
		logger: doc.Logger().Named("render"),
		Now:    time.Now,
	}
}

// Render paints every section present in b.
func (r *Renderer) Render(b *content.Bundle) {
	if b == nil {
		return
	}
	if b.Profile != nil {
		r.Hero(*b.Profile)
		r.Footer(*b.Profile)
	}
	if b.Metrics != nil {
		r.Metrics(b.Metrics)
	}
	if b.About != nil {
		r.About(*b.About)
	}
	if b.Skills != nil {
		r.Skills(*b.Skills)
	}
	if b.Services != nil {
		r.Services(b.Services)
	}
	if b.Projects != nil {
		r.Projects(b.Projects)
	}
	if b.Experience != nil {
		r.Experience(b.Experience)
	}
	if b.Contact != nil {
		r.Contact(*b.Contact)
	}
}

// container returns the emptied "<section>-content" element, or nil.
func (r *Renderer) container(section string) *Element {
	c := r.doc.GetElementByID(section + "-content")
	if c == nil {
		return nil
	}
	for len(c.children) > 0 {
		c.children[len(c.children)-1].Dispose()
	}
	return c
}

func textEl(tag, s string, classes ...string) *Element {
	el := NewText("", s, classes...)
	el.Tag = tag
	return el
}

func div(classes ...string) *Element {
	return NewElement("div", "", classes...)
}

func staggered(el *Element, i int, step float64) {
	el.SetAttr("style", fmt.Sprintf("animation-delay: %gs", float64(i)*step))
}

// Hero renders the greeting, name, title, tagline and status badge.
// The title is always the brand mark (logo plus BrandConfig.Text), either
// as a slot the travelling loader brand lands in or rendered directly, so
// both intro paths leave the same structure. Profile.Title is not shown
// here; it appears on the CV.
func (r *Renderer) Hero(p content.Profile) {
	c := r.container("hero")
	if c == nil {
		return
	}
	c.AppendChild(textEl("p", "Hi, I'm", "hero-greeting"))

	name := NewElement("h1", "", "hero-name")
	typing := NewText("", p.FullName(), "typing-text")
	name.AppendChild(typing)
	c.AppendChild(name)

	var brand *Element
	if r.PendingBrand != nil {
		brand = r.PendingBrand()
	}
	if brand != nil {
		slot := NewElement("div", HeroTitleSlotID, "hero-title-slot")
		box := r.doc.ClientRect(brand)
		slot.Style.Width = Px(box.Width)
		slot.Style.Height = Px(box.Height)
		c.AppendChild(slot)
	} else {
		c.AppendChild(heroTitle(r.brand))
	}

	c.AppendChild(textEl("p", p.Tagline, "hero-tagline"))
	status := "unavailable"
	if p.StatusAvailable {
		status = "available"
	}
	badge := div("status-badge", status)
	badge.Style.Display = DisplayRow
	badge.Style.Gap = 6
	dot := NewElement("span", "", "status-dot")
	dot.Intrinsic = Vec2{X: 8, Y: 8}
	badge.AppendChild(dot)
	badge.AppendChild(NewText("", p.Status))
	c.AppendChild(badge)

	// Typing effect on the name: reveal it left to right on the next frame.
	r.doc.NextFrame(func(time.Duration) {
		if typing.IsDisposed() {
			return
		}
		w := r.doc.MeasureNatural(typing).X
		typing.Style.ClipOverflow = true
		typing.Style.Width = Px(0)
		r.doc.TransitionWidth(typing, w, 1800*time.Millisecond, nil)
	})
}

// Metrics renders one counter card per metric. The counter starts at 0 and
// carries its target and suffix for the reveal engine.
func (r *Renderer) Metrics(ms []content.Metric) {
	c := r.container("metrics")
	if c == nil {
		return
	}
	c.Style.Display = DisplayRow
	c.Style.Gap = 24
	for _, m := range ms {
		target, suffix := content.ParseMetricValue(m.Value)
		card := div("metric-card", ClassAnimateOnScroll)
		v := textEl("div", "0", ClassMetricValue)
		v.SetData("target", strconv.Itoa(target))
		v.SetData("suffix", suffix)
		card.AppendChild(v)
		card.AppendChild(textEl("div", m.Label, "metric-label"))
		c.AppendChild(card)
	}
}

// About renders the two pre-rendered HTML columns.
func (r *Renderer) About(a content.About) {
	c := r.container("about")
	if c == nil {
		return
	}
	for _, col := range []struct{ class, title, html string }{
		{"about-text-col", "About Me", a.AboutMe},
		{"about-logo-col", "The Logo", a.AboutLogo},
	} {
		el := div(col.class)
		el.AppendChild(textEl("h3", col.title, "about-col-title"))
		body := div("about-text")
		body.SetAttr("html", col.html)
		el.AppendChild(body)
		c.AppendChild(el)
	}
}

// Skills renders the skill bars with empty fills; the reveal engine fills
// them to data-width percent.
func (r *Renderer) Skills(s content.Skills) {
	c := r.container("skills")
	if c == nil {
		return
	}
	for _, sk := range s.Skills {
		item := div("skill-item")
		head := div("skill-header")
		head.Style.Display = DisplayRow
		head.Style.Gap = 8
		head.AppendChild(NewText("", sk.Name, "skill-name"))
		head.AppendChild(NewText("", strconv.Itoa(sk.Percentage)+"%", "skill-percentage"))
		item.AppendChild(head)

		bar := div("skill-bar")
		bar.Style.Height = Px(8)
		fill := div(ClassSkillFill)
		fill.Style.Width = Px(0)
		fill.Style.Height = Px(8)
		fill.SetData("width", strconv.Itoa(sk.Percentage))
		bar.AppendChild(fill)
		item.AppendChild(bar)
		c.AppendChild(item)
	}
	c.AppendChild(textEl("p", s.Note, "skills-note"))
}

// Services renders one card per service.
func (r *Renderer) Services(ss []content.Service) {
	c := r.container("services")
	if c == nil {
		return
	}
	for i, s := range ss {
		card := div("service-card", ClassAnimateOnScroll)
		staggered(card, i, 0.1)
		icon := div("service-icon")
		icon.Intrinsic = Vec2{X: 24, Y: 24}
		icon.SetAttr("html", content.ServiceIcon(s.Icon))
		card.AppendChild(icon)
		card.AppendChild(textEl("h3", s.Title, "service-title"))
		card.AppendChild(textEl("p", s.Description, "service-description"))
		c.AppendChild(card)
	}
}

// Projects renders one card per project. NDA projects get a badge and no
// link.
func (r *Renderer) Projects(ps []content.Project) {
	c := r.container("projects")
	if c == nil {
		return
	}
	for i, p := range ps {
		card := div("project-card")
		if p.NDA {
			card.AddClass("nda")
		}
		card.AddClass(ClassAnimateOnScroll)
		staggered(card, i, 0.1)
		card.AppendChild(textEl("h3", p.Title, "project-title"))

		tags := div("project-tags")
		tags.Style.Display = DisplayRow
		tags.Style.Gap = 6
		for _, tag := range p.Tags {
			t := NewText("", tag, "project-tag")
			t.SetData("hue", strconv.Itoa(content.TagHue(tag)))
			tags.AppendChild(t)
		}
		card.AppendChild(tags)
		card.AppendChild(textEl("p", p.Description, "project-description"))

		switch {
		case p.NDA:
			card.AppendChild(NewText("", "NDA", "nda-badge"))
		case p.Link != nil && *p.Link != "":
			a := textEl("a", "View Project →", "project-link")
			a.SetAttr("href", *p.Link)
			a.SetAttr("target", "_blank")
			a.SetAttr("rel", "noopener")
			card.AppendChild(a)
		}
		c.AppendChild(card)
	}
}

// Experience renders the timeline. Unparseable dates leave the duration
// blank.
func (r *Renderer) Experience(es []content.Experience) {
	c := r.container("experience")
	if c == nil {
		return
	}
	for i, e := range es {
		item := div("timeline-item", ClassAnimateOnScroll)
		staggered(item, i, 0.15)
		item.AppendChild(textEl("div", e.StartDate+" - "+e.EndDate, "timeline-date"))
		d, err := content.FormatDuration(e.StartDate, e.EndDate, r.Now())
		if err != nil {
			r.logger.Warn("experience duration", zap.String("title", e.Title), zap.Error(err))
		}
		item.AppendChild(textEl("div", d, "timeline-duration"))
		title := div("timeline-title")
		title.Style.Display = DisplayRow
		title.Style.Gap = 6
		title.AppendChild(NewText("", e.Title))
		title.AppendChild(NewText("", "@ "+e.Company, "timeline-company"))
		item.AppendChild(title)
		c.AppendChild(item)
	}
}

// Contact renders the email, GitHub and LinkedIn cards. The GitHub icon
// follows the current theme.
func (r *Renderer) Contact(ct content.Contact) {
	c := r.container("contact")
	if c == nil {
		return
	}
	c.Style.Display = DisplayRow
	c.Style.Gap = 16
	cards := []struct {
		label, value, href, icon, iconID string
	}{
		{"Email", ct.Email, "mailto:" + ct.Email, "", ""},
		{"GitHub", ct.GitHub, "https://" + ct.GitHub, githubIcon(r.doc.Theme()), GitHubIconID},
		{"LinkedIn", ct.LinkedIn, "https://" + ct.LinkedIn, linkedInIcon, ""},
	}
	for i, cd := range cards {
		a := NewElement("a", "", "contact-card", ClassAnimateOnScroll)
		a.SetAttr("href", cd.href)
		staggered(a, i, 0.1)
		icon := div("contact-icon")
		if cd.icon == "" {
			icon.Text = "✉"
		} else {
			img := NewElement("img", cd.iconID)
			img.Intrinsic = Vec2{X: 24, Y: 24}
			img.SetAttr("src", cd.icon)
			img.SetAttr("alt", cd.label)
			icon.AppendChild(img)
		}
		a.AppendChild(icon)
		a.AppendChild(textEl("div", cd.label, "contact-label"))
		a.AppendChild(textEl("div", cd.value, "contact-value"))
		c.AppendChild(a)
	}
}

// Footer sets the footer text.
func (r *Renderer) Footer(p content.Profile) {
	if el := r.doc.GetElementByID(FooterTextID); el != nil {
		el.Text = p.Footer
	}
}
