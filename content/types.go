// Package content holds the portfolio records, the file-backed store that
// serves them and the HTTP client that fetches them for the page.
package content

// Profile is the hero section record.
type Profile struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Title           string `json:"title"`
	Tagline         string `json:"tagline"`
	Status          string `json:"status"`
	StatusAvailable bool   `json:"status_available"`
	PageTitle       string `json:"page_title"`
	Footer          string `json:"footer"`
}

// FullName joins first and last name.
func (p Profile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Metric is a headline number such as "15+" projects delivered.
type Metric struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// About holds two pre-rendered HTML fragments.
type About struct {
	AboutMe   string `json:"about_me"`
	AboutLogo string `json:"about_logo"`
}

// Skill is one bar in the skills section.
type Skill struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// Skills is the skills section record.
type Skills struct {
	Skills []Skill `json:"skills"`
	Note   string  `json:"note"`
}

// Service is one service card.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Project is one project card. NDA projects never expose their link.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Link        *string  `json:"link"`
	NDA         bool     `json:"nda"`
}

// Experience is one timeline entry. Dates are "Mon YYYY" tokens or
// "Present".
type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description string   `json:"description"`
	CVBullets   []string `json:"cv_bullets"`
}

// Contact is the contact section record.
type Contact struct {
	Email    string `json:"email"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
}

// TechCategory groups tags in the tech stack listing.
type TechCategory struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// TechStack is the tech stack record.
type TechStack struct {
	Categories []TechCategory `json:"categories"`
}

// Bundle is everything the page renders. A nil field means that section
// could not be loaded.
type Bundle struct {
	Profile    *Profile
	Metrics    []Metric
	About      *About
	Skills     *Skills
	Services   []Service
	Projects   []Project
	Experience []Experience
	Contact    *Contact
}

// Section names, also the endpoint paths under /api/.
const (
	SectionProfile    = "profile"
	SectionMetrics    = "metrics"
	SectionAbout      = "about"
	SectionSkills     = "skills"
	SectionServices   = "services"
	SectionProjects   = "projects"
	SectionExperience = "experience"
	SectionContact    = "contact"
	SectionTechStack  = "tech-stack"
)

// PageSections lists the eight sections fetched by the page, in render
// order.
var PageSections = []string{
	SectionProfile, SectionMetrics, SectionAbout, SectionSkills,
	SectionServices, SectionProjects, SectionExperience, SectionContact,
}
