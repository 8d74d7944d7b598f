package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Profile es la entidad raíz persistida: la configuración del sitio de un
// abogado o firma, identificada por Code (también es el _id del documento).
//
// Data se mantiene opaco (bson.M) para el flujo de propiedad: las escrituras
// parciales hacen merge campo a campo y un documento a medio escribir no tiene
// por qué cumplir el esquema completo. La forma tipada vive en ContentData y
// se aplica en validación estricta (escritura completa) o best-effort (lecturas).
type Profile struct {
	Code       string    `json:"code" bson:"_id"`
	OwnerUID   string    `json:"ownerUid,omitempty" bson:"ownerUid,omitempty"`
	OwnerEmail string    `json:"ownerEmail,omitempty" bson:"ownerEmail,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	Data       bson.M    `json:"data,omitempty" bson:"data,omitempty"`
}

// Owned indica si el perfil ya fue reclamado.
func (p *Profile) Owned() bool { return p.OwnerUID != "" }

// Enumeraciones del esquema.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"

	LocaleES = "es"
	LocaleEN = "en"

	EntityFirm   = "firm"
	EntityPerson = "person"
)

// PageClickKeys secciones con contador de clics de página.
var PageClickKeys = map[string]bool{
	"hero": true, "services": true, "team": true,
	"cases": true, "contact": true, "experience": true,
}

// ContactClickKeys canales con contador de clics de contacto.
var ContactClickKeys = map[string]bool{
	"whatsapp": true, "email": true, "phone": true,
}

// ── Settings ──────────────────────────────────────────────────────────────

type Settings struct {
	Theme                string   `json:"theme" bson:"theme" validate:"oneof=light dark auto"`
	EnableDarkModeToggle bool     `json:"enableDarkModeToggle" bson:"enableDarkModeToggle"`
	DefaultLanguage      string   `json:"defaultLanguage" bson:"defaultLanguage" validate:"oneof=es en"`
	Languages            []string `json:"languages" bson:"languages" validate:"required,min=1,dive,oneof=es en"`
	EntityType           string   `json:"entityType" bson:"entityType" validate:"oneof=firm person"`
}

// ── Styling ───────────────────────────────────────────────────────────────

type StylingTheme struct {
	PrimaryColor     string `json:"primaryColor" bson:"primaryColor"`
	SecondaryColor   string `json:"secondaryColor" bson:"secondaryColor"`
	BackgroundColor  string `json:"backgroundColor" bson:"backgroundColor"`
	TextPrimary      string `json:"textPrimary" bson:"textPrimary"`
	TextSecondary    string `json:"textSecondary" bson:"textSecondary"`
	BorderColor      string `json:"borderColor" bson:"borderColor"`
	CardBackground   string `json:"cardBackground" bson:"cardBackground"`
	FooterBackground string `json:"footerBackground" bson:"footerBackground"`
	FooterText       string `json:"footerText" bson:"footerText"`
}

type Styling struct {
	Light      StylingTheme      `json:"light" bson:"light"`
	Dark       StylingTheme      `json:"dark" bson:"dark"`
	FontFamily string            `json:"fontFamily" bson:"fontFamily"`
	FontSize   map[string]string `json:"fontSize" bson:"fontSize"`
}

// ── Analytics ─────────────────────────────────────────────────────────────

type PageClicks struct {
	Hero       int `json:"hero" bson:"hero"`
	Services   int `json:"services" bson:"services"`
	Team       int `json:"team" bson:"team"`
	Cases      int `json:"cases" bson:"cases"`
	Contact    int `json:"contact" bson:"contact"`
	Experience int `json:"experience" bson:"experience"`
}

type ContactClicks struct {
	Whatsapp int `json:"whatsapp" bson:"whatsapp"`
	Email    int `json:"email" bson:"email"`
	Phone    int `json:"phone" bson:"phone"`
}

type Analytics struct {
	VisitorCount     int           `json:"visitorCount" bson:"visitorCount"`
	VisitorLocations []string      `json:"visitorLocations" bson:"visitorLocations"`
	PageClicks       PageClicks    `json:"pageClicks" bson:"pageClicks"`
	ContactClicks    ContactClicks `json:"contactClicks" bson:"contactClicks"`
}

// ── Content (por idioma) ──────────────────────────────────────────────────

type MenuItem struct {
	Label  string `json:"label" bson:"label"`
	Anchor string `json:"anchor" bson:"anchor"`
}

type Header struct {
	LogoText  string     `json:"logoText" bson:"logoText"`
	MenuItems []MenuItem `json:"menuItems" bson:"menuItems" validate:"dive"`
}

type HeroFeature struct {
	Icon        string `json:"icon" bson:"icon"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	ButtonText  string `json:"buttonText" bson:"buttonText"`
	ButtonLink  string `json:"buttonLink" bson:"buttonLink"`
}

type Hero struct {
	BackgroundImage string        `json:"backgroundImage" bson:"backgroundImage"`
	Title           string        `json:"title" bson:"title"`
	Subtitle        string        `json:"subtitle" bson:"subtitle"`
	Features        []HeroFeature `json:"features" bson:"features" validate:"dive"`
}

type About struct {
	Title      string `json:"title" bson:"title"`
	Mission    string `json:"mission" bson:"mission"`
	Values     string `json:"values" bson:"values"`
	ButtonText string `json:"buttonText" bson:"buttonText"`
	ButtonLink string `json:"buttonLink" bson:"buttonLink"`
}

type ExperienceItem struct {
	DateRange string `json:"dateRange" bson:"dateRange"`
	Role      string `json:"role" bson:"role"`
	Details   string `json:"details" bson:"details"`
}

type Person struct {
	Photo            string           `json:"photo" bson:"photo"`
	Name             string           `json:"name" bson:"name"`
	Title            string           `json:"title" bson:"title"`
	Bio              string           `json:"bio" bson:"bio"`
	Experience       []ExperienceItem `json:"experience" bson:"experience" validate:"dive"`
	CareerHighlights []string         `json:"careerHighlights" bson:"careerHighlights"`
	ExperienceTitle  string           `json:"experienceTitle" bson:"experienceTitle"`
	HighlightsTitle  string           `json:"highlightsTitle" bson:"highlightsTitle"`
	ExperienceButton string           `json:"experienceButton" bson:"experienceButton"`
	LearnMoreButton  string           `json:"learnMoreButton" bson:"learnMoreButton"`
}

type ConsultationContactInfo struct {
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
	Hours   string `json:"hours" bson:"hours"`
	Email   string `json:"email" bson:"email"`
}

type Consultation struct {
	Title       string                  `json:"title" bson:"title"`
	Subtitle    string                  `json:"subtitle" bson:"subtitle"`
	Icon        string                  `json:"icon" bson:"icon"`
	ContactInfo ConsultationContactInfo `json:"contactInfo" bson:"contactInfo"`
}

type ServiceItem struct {
	Icon        string `json:"icon" bson:"icon"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	ButtonText  string `json:"buttonText" bson:"buttonText"`
	ButtonLink  string `json:"buttonLink" bson:"buttonLink"`
}

type Services struct {
	Title string        `json:"title" bson:"title"`
	Items []ServiceItem `json:"items" bson:"items" validate:"dive"`
}

type TeamMember struct {
	Photo     string `json:"photo" bson:"photo"`
	Name      string `json:"name" bson:"name"`
	Role      string `json:"role" bson:"role"`
	BioLink   string `json:"bioLink" bson:"bioLink"`
	BioButton string `json:"bioButton" bson:"bioButton"`
}

type Team struct {
	Title   string       `json:"title" bson:"title"`
	Members []TeamMember `json:"members" bson:"members" validate:"dive"`
}

type CaseItem struct {
	CaseTitle     string `json:"caseTitle" bson:"caseTitle"`
	Description   string `json:"description" bson:"description"`
	DetailsLink   string `json:"detailsLink" bson:"detailsLink"`
	DetailsButton string `json:"detailsButton" bson:"detailsButton"`
}

type Cases struct {
	Title string     `json:"title" bson:"title"`
	Items []CaseItem `json:"items" bson:"items" validate:"dive"`
}

type FormField struct {
	Label       string `json:"label" bson:"label"`
	Type        string `json:"type" bson:"type"`
	Name        string `json:"name" bson:"name"`
	Placeholder string `json:"placeholder" bson:"placeholder"`
}

type ContactLocation struct {
	EmbedMapURL string `json:"embedMapUrl" bson:"embedMapUrl"`
}

type ContactDetails struct {
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
	Email   string `json:"email" bson:"email"`
	Hours   string `json:"hours" bson:"hours"`
}

type Contact struct {
	Title            string          `json:"title" bson:"title"`
	FormFields       []FormField     `json:"formFields" bson:"formFields" validate:"dive"`
	SubmitButtonText string          `json:"submitButtonText" bson:"submitButtonText"`
	Location         ContactLocation `json:"location" bson:"location"`
	Details          ContactDetails  `json:"details" bson:"details"`
}

type FooterLink struct {
	Label  string  `json:"label" bson:"label"`
	Anchor *string `json:"anchor,omitempty" bson:"anchor,omitempty"`
	URL    *string `json:"url,omitempty" bson:"url,omitempty"`
}

type FooterResource struct {
	Label string `json:"label" bson:"label"`
	URL   string `json:"url" bson:"url"`
}

type Footer struct {
	QuickLinks       []FooterLink     `json:"quickLinks" bson:"quickLinks" validate:"dive"`
	Resources        []FooterResource `json:"resources" bson:"resources" validate:"dive"`
	LanguageSelector string           `json:"languageSelector" bson:"languageSelector"`
	Copyright        string           `json:"copyright" bson:"copyright"`
}

type SocialNetwork struct {
	Name string `json:"name" bson:"name"`
	URL  string `json:"url" bson:"url"`
	Icon string `json:"icon" bson:"icon"`
}

type SocialMedia struct {
	Title         string          `json:"title" bson:"title"`
	Networks      []SocialNetwork `json:"networks" bson:"networks" validate:"dive"`
	ContactButton string          `json:"contactButton" bson:"contactButton"`
	ContactText   string          `json:"contactText" bson:"contactText"`
}

type UIEntityToggle struct {
	FirmLabel      string `json:"firmLabel" bson:"firmLabel"`
	PersonLabel    string `json:"personLabel" bson:"personLabel"`
	SwitchToFirm   string `json:"switchToFirm" bson:"switchToFirm"`
	SwitchToPerson string `json:"switchToPerson" bson:"switchToPerson"`
}

type UI struct {
	EntityToggle UIEntityToggle `json:"entityToggle" bson:"entityToggle"`
}

// ContentLanguage es el paquete de contenido de un idioma: las 12 secciones
// fijas de la página.
type ContentLanguage struct {
	Header       Header       `json:"header" bson:"header"`
	Hero         Hero         `json:"hero" bson:"hero"`
	About        About        `json:"about" bson:"about"`
	Person       Person       `json:"person" bson:"person"`
	Consultation Consultation `json:"consultation" bson:"consultation"`
	Services     Services     `json:"services" bson:"services"`
	Team         Team         `json:"team" bson:"team"`
	Cases        Cases        `json:"cases" bson:"cases"`
	Contact      Contact      `json:"contact" bson:"contact"`
	Footer       Footer       `json:"footer" bson:"footer"`
	SocialMedia  SocialMedia  `json:"socialMedia" bson:"socialMedia"`
	UI           UI           `json:"ui" bson:"ui"`
}

// ContentData es el documento anidado completo bajo Profile.data.
// Las claves de content están restringidas a los locales soportados.
type ContentData struct {
	Settings  Settings                   `json:"settings" bson:"settings" validate:"required"`
	Styling   Styling                    `json:"styling" bson:"styling" validate:"required"`
	Analytics Analytics                  `json:"analytics" bson:"analytics"`
	Content   map[string]ContentLanguage `json:"content" bson:"content" validate:"required,min=1,dive,keys,oneof=es en,endkeys,required"`
}

// ToDocument convierte el contenido tipado al documento crudo que se persiste.
// Pasa por los tags bson para conservar los nombres camelCase del esquema.
func (cd *ContentData) ToDocument() (bson.M, error) {
	raw, err := bson.Marshal(cd)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
