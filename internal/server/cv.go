package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/unicode/norm"

	"github.com/phanxgames/folio/content"
)

// CV page geometry in millimetres on A4.
const (
	cvPageW    = 210.0
	cvMargin   = 12.0
	cvContentW = cvPageW - 2*cvMargin
	cvBannerH  = 28.0
	cvProjects = 3 // projects listed before the "see more" line
)

type rgb struct{ r, g, b int }

var (
	cvAccent  = rgb{14, 17, 23}
	cvHeading = rgb{245, 197, 66}
	cvGoldMid = rgb{232, 163, 23}
	cvDark    = rgb{40, 40, 45}
	cvBody    = rgb{70, 70, 75}
	cvMuted   = rgb{120, 120, 125}
	cvCardBG  = rgb{252, 250, 245}
	cvBarBG   = rgb{255, 248, 225}
	cvRule    = rgb{230, 225, 210}
	cvSep     = rgb{156, 163, 175}
	cvLink    = rgb{201, 184, 122}
)

var cvGradient = [3]rgb{{232, 163, 23}, {245, 197, 66}, {251, 232, 138}}

// gradientAt interpolates the gold gradient at t in [0, 1].
func gradientAt(t float64) rgb {
	c0, c1, f := cvGradient[0], cvGradient[1], t/0.5
	if t > 0.5 {
		c0, c1, f = cvGradient[1], cvGradient[2], (t-0.5)/0.5
	}
	lerp := func(a, b int) int { return int(float64(a) + float64(b-a)*f) }
	return rgb{lerp(c0.r, c1.r), lerp(c0.g, c1.g), lerp(c0.b, c1.b)}
}

var latin1Replacer = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'",
	"\u201C", `"`, "\u201D", `"`,
	"\u2013", "-", "\u2014", "--",
	"\u2026", "...", "\u00A0", " ",
	"\u200B", "", "\u200D", "", "\uFEFF", "",
)

var emojiRanges = [...]struct{ lo, hi rune }{
	{0xFE00, 0xFE0F},
	{0x2702, 0x27B0},
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F700, 0x1F8FF},
	{0x1F900, 0x1F9FF},
	{0x1FA00, 0x1FAFF},
	{0x2600, 0x26FF},
	{0x203C, 0x3299},
}

func isEmoji(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

// latin1 reduces s to characters the core PDF fonts can encode. Typographic
// punctuation becomes ASCII, emoji are dropped, and any other character
// outside Latin-1 keeps only the Latin-1 parts of its canonical
// decomposition, so "ź" becomes "z".
func latin1(s string) string {
	s = latin1Replacer.Replace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case isEmoji(r):
		case r < 256:
			b.WriteRune(r)
		default:
			for _, c := range norm.NFD.String(string(r)) {
				if c < 256 {
					b.WriteRune(c)
				}
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// cvData is everything printed on the CV.
type cvData struct {
	Profile    content.Profile
	About      string // markdown source, printed as-is
	Skills     []content.Skill
	Experience []content.Experience
	Projects   []content.Project
	Contact    content.Contact
	SiteURL    string
}

// cv serves a one-page PDF CV built from the content files. Profile,
// skills, experience and contact are required; about and projects are
// optional.
func (s *Server) cv(w http.ResponseWriter, r *http.Request) {
	d, err := s.loadCV()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := writeCV(&buf, d); err != nil {
		s.writeError(w, r, err)
		return
	}
	name := strings.ReplaceAll(latin1(d.Profile.FullName()), " ", "_")
	if name == "" {
		name = "cv"
	} else {
		name += "_CV"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) loadCV() (cvData, error) {
	d := cvData{SiteURL: s.cfg.SiteURL}
	var err error
	if d.Profile, err = s.store.Profile(); err != nil {
		return d, err
	}
	skills, err := s.store.Skills()
	if err != nil {
		return d, err
	}
	d.Skills = skills.Skills
	if d.Experience, err = s.store.Experience(); err != nil {
		return d, err
	}
	if d.Contact, err = s.store.Contact(); err != nil {
		return d, err
	}
	if d.About, err = s.store.AboutText(); err != nil && !errors.Is(err, content.ErrNotFound) {
		return d, err
	}
	if d.Projects, err = s.store.Projects(); err != nil && !errors.Is(err, content.ErrNotFound) {
		return d, err
	}
	return d, nil
}

// cvWriter draws the CV sections top to bottom on a single page.
type cvWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// writeCV renders d as a one-page A4 PDF.
func writeCV(out io.Writer, d cvData) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(cvMargin, 10, cvMargin)
	pdf.SetTitle(latin1(d.Profile.FullName()+" CV"), false)
	pdf.AddPage()

	w := &cvWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	w.banner(d)
	w.about(d.About)
	w.experience(d.Experience)
	w.skills(d.Skills)
	w.projects(d)
	return pdf.Output(out)
}

// text sanitises s and converts it to the core fonts' single-byte encoding.
func (w *cvWriter) text(s string) string { return w.tr(latin1(s)) }

func (w *cvWriter) fill(c rgb)  { w.pdf.SetFillColor(c.r, c.g, c.b) }
func (w *cvWriter) color(c rgb) { w.pdf.SetTextColor(c.r, c.g, c.b) }

func (w *cvWriter) font(style string, size float64) { w.pdf.SetFont("Helvetica", style, size) }

// cell writes s in a box of width wd, leaving the cursor to its right.
func (w *cvWriter) cell(wd, h float64, s, link string) {
	w.pdf.CellFormat(wd, h, s, "", 0, "", false, 0, link)
}

// lines counts the wrapped lines of an already encoded string at the
// current font.
func (w *cvWriter) lines(s string, width float64) int {
	return len(w.pdf.SplitLines([]byte(s), width))
}

func (w *cvWriter) card(x, y, wd, h float64) {
	w.fill(cvCardBG)
	w.pdf.SetDrawColor(cvRule.r, cvRule.g, cvRule.b)
	w.pdf.SetLineWidth(0.25)
	w.pdf.RoundedRect(x, y, wd, h, 2, "1234", "DF")
}

// accentCard draws a card with the gold strip on its left edge.
func (w *cvWriter) accentCard(y, h float64) {
	w.card(cvMargin, y, cvContentW, h)
	w.fill(cvHeading)
	w.pdf.Rect(cvMargin, y, 1, h, "F")
}

func (w *cvWriter) gradientBar(x, y, width, h float64, bands int) {
	bw := width / float64(bands)
	for i := range bands {
		w.fill(gradientAt(float64(i) / float64(max(bands-1, 1))))
		bx := x + float64(i)*bw
		w.pdf.Rect(bx, y, min(bw+0.2, x+width-bx), h, "F")
	}
}

func (w *cvWriter) heading(title string) {
	pdf := w.pdf
	pdf.Ln(3)
	y := pdf.GetY()
	w.fill(cvHeading)
	pdf.Circle(cvMargin+0.9, y+2.1, 0.9, "F")

	pdf.SetXY(cvMargin+3.5, y)
	w.font("B", 9)
	w.color(cvDark)
	pdf.CellFormat(0, 4.5, strings.ToUpper(title), "", 1, "", false, 0, "")

	y = pdf.GetY() + 0.2
	pdf.SetDrawColor(cvRule.r, cvRule.g, cvRule.b)
	pdf.SetLineWidth(0.2)
	pdf.Line(cvMargin, y, cvPageW-cvMargin, y)
	pdf.Ln(1.5)
}

type cvLinkItem struct{ label, url string }

func siteLabel(site string) string {
	if u, err := url.Parse(site); err == nil && u.Host != "" {
		return u.Host
	}
	return site
}

func (w *cvWriter) banner(d cvData) {
	pdf := w.pdf
	w.fill(cvAccent)
	pdf.Rect(0, 0, cvPageW, cvBannerH, "F")
	w.gradientBar(0, cvBannerH-0.8, cvPageW, 0.8, 40)

	pdf.SetXY(cvMargin, 6)
	w.font("B", 20)
	w.color(cvHeading)
	pdf.CellFormat(0, 8, w.text(d.Profile.FullName()), "", 1, "C", false, 0, "")
	if d.Profile.Title != "" {
		w.font("I", 9)
		w.color(cvBody)
		pdf.CellFormat(0, 5, w.text(d.Profile.Title), "", 1, "C", false, 0, "")
	}

	c := d.Contact
	var links []cvLinkItem
	if c.Email != "" {
		links = append(links, cvLinkItem{c.Email, "mailto:" + c.Email})
	}
	if d.SiteURL != "" {
		links = append(links, cvLinkItem{siteLabel(d.SiteURL), d.SiteURL})
	}
	if c.GitHub != "" {
		links = append(links, cvLinkItem{"GitHub", "https://" + c.GitHub})
	}
	if c.LinkedIn != "" {
		links = append(links, cvLinkItem{"LinkedIn", "https://" + c.LinkedIn})
	}

	const sep = "  |  "
	w.font("", 7.5)
	sepW := pdf.GetStringWidth(sep)
	w.font("U", 7.5)
	total := 0.0
	for i, l := range links {
		if i > 0 {
			total += sepW
		}
		total += pdf.GetStringWidth(w.text(l.label))
	}

	pdf.SetXY((cvPageW-total)/2, pdf.GetY())
	for i, l := range links {
		if i > 0 {
			w.font("", 7.5)
			w.color(cvSep)
			w.cell(sepW, 4.5, sep, "")
		}
		label := w.text(l.label)
		w.font("U", 7.5)
		w.color(cvLink)
		w.cell(pdf.GetStringWidth(label), 4.5, label, l.url)
	}
	pdf.SetY(cvBannerH + 1.5)
}

func (w *cvWriter) about(text string) {
	if text == "" {
		return
	}
	w.heading("About Me")
	w.font("", 8)
	w.color(cvBody)
	w.pdf.SetX(cvMargin)
	w.pdf.MultiCell(cvContentW, 3.5, w.text(text), "", "", false)
}

func (w *cvWriter) experience(es []content.Experience) {
	if len(es) == 0 {
		return
	}
	w.heading("Experience")
	pdf := w.pdf
	const titleH, lineH = 4.5, 3.3
	inner := cvMargin + 5
	bulletX := inner + 1
	bulletW := cvContentW - 8

	for _, e := range es {
		title := w.text(e.Title + " @ " + e.Company)
		date := w.text(e.StartDate + " - " + e.EndDate)

		w.font("", 7.5)
		bullets := make([]string, len(e.CVBullets))
		lines := 0
		for i, b := range e.CVBullets {
			bullets[i] = w.text("- " + b)
			lines += w.lines(bullets[i], bulletW)
		}
		h := 2 + titleH + 1
		if len(bullets) > 0 {
			h += float64(lines)*lineH + 0.5
		}

		y := pdf.GetY()
		w.accentCard(y, h)

		pdf.SetXY(inner, y+1)
		w.font("B", 8.5)
		w.color(cvDark)
		w.cell(pdf.GetStringWidth(title)+1, titleH, title, "")

		w.font("", 7.5)
		w.color(cvMuted)
		dw := pdf.GetStringWidth(date)
		pdf.SetXY(cvMargin+cvContentW-5-dw, y+1)
		w.cell(dw, titleH, date, "")

		w.color(cvBody)
		pdf.SetY(y + 1 + titleH)
		for _, b := range bullets {
			pdf.SetX(bulletX)
			pdf.MultiCell(bulletW, lineH, b, "", "", false)
		}
		pdf.SetY(y + h + 1.5)
	}
}

// skills draws the bars in two columns, the first column taking the odd
// one out.
func (w *cvWriter) skills(skills []content.Skill) {
	if len(skills) == 0 {
		return
	}
	w.heading("Skills")
	pdf := w.pdf
	const labelW, colGap, rowH, pad, barH = 30.0, 10.0, 5.5, 4.0, 2.8
	barW := (cvContentW - 2*pad - 2*labelW - colGap) / 2

	mid := (len(skills) + 1) / 2
	cols := [2][]content.Skill{skills[:mid], skills[mid:]}
	h := 5 + float64(mid)*rowH
	y := pdf.GetY()
	w.card(cvMargin, y, cvContentW, h)

	for ci, col := range cols {
		x := cvMargin + pad + float64(ci)*(labelW+barW+colGap)
		rowY := y + 2.5
		for _, sk := range col {
			pdf.SetXY(x, rowY)
			w.font("", 7.5)
			w.color(cvDark)
			w.cell(labelW, 3.5, w.text(sk.Name), "")

			bx, by := x+labelW, rowY+0.3
			w.fill(cvBarBG)
			pdf.RoundedRect(bx, by, barW, barH, barH/2, "1234", "F")
			if fillW := barW * float64(min(max(sk.Percentage, 0), 100)) / 100; fillW > 0 {
				w.gradientBar(bx, by, fillW, barH, 20)
			}
			rowY += rowH
		}
	}
	pdf.SetY(y + h + 1.5)
}

func (w *cvWriter) projects(d cvData) {
	ps := d.Projects[:min(len(d.Projects), cvProjects)]
	if len(ps) == 0 {
		return
	}
	w.heading("Projects")
	pdf := w.pdf
	const lineH = 3.3
	inner := cvMargin + 5
	descW := cvContentW - 12

	for _, p := range ps {
		desc := w.text(p.Description)
		link := ""
		if p.Link != nil {
			link = *p.Link
		}

		w.font("", 7.5)
		h := 3 + 4.5
		if link != "" || p.NDA {
			h += 3.5
		}
		if desc != "" {
			h += float64(w.lines(desc, descW))*lineH + 0.5
		}

		y := pdf.GetY()
		w.accentCard(y, h)

		pdf.SetXY(inner, y+1)
		w.font("B", 8.5)
		w.color(cvDark)
		pdf.CellFormat(0, 4.5, w.text(p.Title), "", 1, "", false, 0, "")

		switch {
		case p.NDA:
			pdf.SetX(inner)
			w.font("I", 7)
			w.color(cvMuted)
			pdf.CellFormat(0, 3.5, "Not publicly available due to NDA", "", 1, "", false, 0, "")
		case link != "":
			pdf.SetX(inner)
			w.font("U", 7)
			w.color(cvGoldMid)
			pdf.CellFormat(0, 3.5, w.text(link), "", 1, "", false, 0, link)
		}

		if desc != "" {
			pdf.SetX(inner)
			w.font("", 7.5)
			w.color(cvBody)
			pdf.MultiCell(descW, lineH, desc, "", "", false)
		}
		pdf.SetY(y + h + 1.5)
	}

	w.seeMore(d)
}

// seeMore points to the full project list on the site and GitHub.
func (w *cvWriter) seeMore(d cvData) {
	var links []cvLinkItem
	if d.SiteURL != "" {
		links = append(links, cvLinkItem{"website", strings.TrimRight(d.SiteURL, "/") + "/#projects"})
	}
	if d.Contact.GitHub != "" {
		links = append(links, cvLinkItem{"GitHub", "https://" + d.Contact.GitHub})
	}
	if len(links) == 0 {
		return
	}

	pdf := w.pdf
	const h = 8.0
	y := pdf.GetY()
	w.card(cvMargin, y, cvContentW, h)
	pdf.SetXY(cvMargin+5, y+2)

	plain := func(s string) {
		w.font("I", 7.5)
		w.color(cvMuted)
		w.cell(pdf.GetStringWidth(s), 4, s, "")
	}
	plain("For more projects, see my ")
	for i, l := range links {
		if i > 0 {
			plain(" and ")
		}
		w.font("BU", 7.5)
		w.color(cvGoldMid)
		w.cell(pdf.GetStringWidth(l.label), 4, l.label, l.url)
	}
	pdf.SetY(y + h + 1.5)
}
