package folio

// Section ids in page order. Each section holds a "<id>-content"
// container that the renderer fills.
var SectionIDs = []string{"hero", "metrics", "about", "skills", "services", "projects", "experience", "contact"}

// navSections are the sections linked from the navbar.
var navSections = []struct{ id, label string }{
	{"about", "About"},
	{"skills", "Skills"},
	{"services", "Services"},
	{"projects", "Projects"},
	{"experience", "Experience"},
	{"contact", "Contact"},
}

var sectionTitles = map[string]string{
	"metrics":    "By the Numbers",
	"about":      "About",
	"skills":     "Skills",
	"services":   "Services",
	"projects":   "Projects",
	"experience": "Experience",
	"contact":    "Get in Touch",
}

// Ids of the static controls.
const (
	ThemeToggleID = "theme-toggle"
	HamburgerID   = "hamburger"
	MobileMenuID  = "mobile-menu"
	FooterTextID  = "footer-text"
	GitHubIconID  = "github-icon"
)

// BrandConfig describes the logo and wordmark shared by the loader brand
// and the hero title.
type BrandConfig struct {
	Text     string
	LogoSrc  string
	LogoSize Vec2
	Gap      float64 // gap between logo and wordmark at rest
}

// DefaultBrand is the stock brand.
var DefaultBrand = BrandConfig{
	Text:     "freelanxur",
	LogoSrc:  "/static/images/gold-logo-transparent-bg.PNG",
	LogoSize: Vec2{X: 32, Y: 32},
	Gap:      DefaultIntroTimeline.BrandGap,
}

// BuildSkeleton adds the static page markup to doc's body: navbar, mobile
// menu, loader overlay, empty sections and footer.
func BuildSkeleton(doc *Document, brand BrandConfig) {
	body := doc.Body()
	vp := doc.Viewport()

	nav := NewElement("nav", NavbarID, "navbar")
	nav.Style.Display = DisplayRow
	nav.Style.Position = PositionFixed
	nav.Style.Width = Px(vp.Width)
	nav.Style.Gap = 16
	logo := NewText("", brand.Text, "nav-logo")
	nav.AppendChild(logo)
	for _, s := range navSections {
		a := NewText("", s.label, ClassNavLink)
		a.Tag = "a"
		a.SetAttr("href", "#"+s.id)
		nav.AppendChild(a)
	}
	toggle := NewText(ThemeToggleID, "◐", "theme-toggle")
	toggle.Tag = "button"
	nav.AppendChild(toggle)
	burger := NewText(HamburgerID, "≡", "hamburger")
	burger.Tag = "button"
	burger.SetAttr("aria-expanded", "false")
	nav.AppendChild(burger)
	body.AppendChild(nav)

	menu := NewElement("div", MobileMenuID, "mobile-menu")
	menu.Style.Display = DisplayNone
	for _, s := range navSections {
		a := NewText("", s.label, "mobile-link")
		a.Tag = "a"
		a.SetAttr("href", "#"+s.id)
		menu.AppendChild(a)
	}
	body.AppendChild(menu)

	main := NewElement("main", "")
	for _, id := range SectionIDs {
		sec := NewElement("section", id, ClassSection, id)
		if id == "hero" {
			sec.Style.Height = Px(vp.Height)
			sec.Style.Center = true
		} else {
			sec.AppendChild(NewText("", sectionTitles[id], "section-title"))
		}
		sec.AppendChild(NewElement("div", id+"-content", id+"-content"))
		main.AppendChild(sec)
	}
	body.AppendChild(main)

	footer := NewElement("footer", "", "footer")
	footer.AppendChild(NewText(FooterTextID, "", "footer-text"))
	body.AppendChild(footer)

	loader := NewElement("div", LoaderID, "loader")
	loader.Style.Position = PositionFixed
	loader.Style.Width = Px(vp.Width)
	loader.Style.Height = Px(vp.Height)
	loader.Style.Center = true
	b := NewElement("div", LoaderBrandID, "loader-brand")
	b.Style.Display = DisplayRow
	img := NewElement("img", "", "loader-logo")
	img.Intrinsic = brand.LogoSize
	img.SetAttr("src", brand.LogoSrc)
	img.SetAttr("alt", "logo")
	b.AppendChild(img)
	b.AppendChild(NewText(LoaderTextID, brand.Text, "loader-text"))
	loader.AppendChild(b)
	body.AppendChild(loader)
}

// heroTitle builds the resting hero title markup, the same structure the
// loader brand has after its handoff.
func heroTitle(brand BrandConfig) *Element {
	t := NewElement("div", "", "hero-title")
	t.Style.Display = DisplayRow
	t.Style.Gap = brand.Gap
	img := NewElement("img", "", "logo-img")
	img.Intrinsic = brand.LogoSize
	img.SetAttr("src", brand.LogoSrc)
	img.SetAttr("alt", "logo")
	t.AppendChild(img)
	t.AppendChild(NewText("", brand.Text, "title-text"))
	return t
}
