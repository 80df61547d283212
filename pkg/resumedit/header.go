package resumedit

import (
	"regexp"
	"strings"

	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

var (
	emailPattern = regexp.MustCompile(`\b[\w\.-]+@[\w\.-]+\.\w+\b`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\-\s\(\)]{7,}\d`)
)

// ContactSeparator separates the fields of the contact line.
const ContactSeparator = " • "

// HeaderFields are the identity and contact details at the top of a resume.
type HeaderFields struct {
	Name        string `json:"name" yaml:"name"`
	Location    string `json:"location" yaml:"location"`
	Phone       string `json:"phone" yaml:"phone"`
	Email       string `json:"email" yaml:"email"`
	LinkedInURL string `json:"linkedin_url" yaml:"linkedin_url"`
	GitHubURL   string `json:"github_url" yaml:"github_url"`
}

// Merge returns h with every empty field of patch replaced by h's value.
func (h HeaderFields) Merge(patch HeaderFields) HeaderFields {
	pick := func(v, fallback string) string {
		if v != "" {
			return v
		}
		return fallback
	}
	return HeaderFields{
		Name:        pick(patch.Name, h.Name),
		Location:    pick(patch.Location, h.Location),
		Phone:       pick(patch.Phone, h.Phone),
		Email:       pick(patch.Email, h.Email),
		LinkedInURL: pick(patch.LinkedInURL, h.LinkedInURL),
		GitHubURL:   pick(patch.GitHubURL, h.GitHubURL),
	}
}

// contactLink is a hyperlink on the contact line with its resolved target.
type contactLink struct {
	Text string
	URL  string
}

// nameParagraph returns the first heading-shaped paragraph, which holds the
// candidate's name.
func (d *Document) nameParagraph() (int, *docxml.Paragraph) {
	for i, p := range d.paragraphs {
		if IsHeading(p.GetText()) {
			return i, p
		}
	}
	return -1, nil
}

// contactParagraph finds the contact line: the first paragraph after the
// name, before the next heading, that contains an e-mail address, a phone
// number or a LinkedIn/GitHub label.
func (d *Document) contactParagraph(name string) *docxml.Paragraph {
	want := strings.ToUpper(normalizeText(name))
	start := -1
	for i, p := range d.paragraphs {
		if strings.ToUpper(normalizeText(p.GetText())) == want {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	for _, p := range d.paragraphs[start+1:] {
		text := normalizeText(p.GetText())
		if text != "" && IsHeading(text) {
			break
		}
		if text == "" {
			continue
		}
		if emailPattern.MatchString(text) || phonePattern.MatchString(text) ||
			strings.Contains(text, "LinkedIn") || strings.Contains(text, "GitHub") {
			return p
		}
	}
	return nil
}

// contactLinks returns the non-empty hyperlinks of the contact line.
func (d *Document) contactLinks(p *docxml.Paragraph) []contactLink {
	var links []contactLink
	for _, h := range p.Hyperlinks() {
		text := normalizeText(h.GetText())
		if text == "" {
			continue
		}
		link := contactLink{Text: text}
		if rel := d.relationship(h.ID); rel != nil {
			link.URL = rel.Target
		}
		links = append(links, link)
	}
	return links
}

// GetHeader reads the name, contact details and profile links from the top
// of the resume.
func (d *Document) GetHeader() (*HeaderFields, error) {
	_, nameP := d.nameParagraph()
	if nameP == nil {
		return nil, &NotFoundError{What: "name", Message: "name heading not found"}
	}
	fields := &HeaderFields{Name: normalizeText(nameP.GetText())}

	contact := d.contactParagraph(fields.Name)
	if contact == nil {
		return nil, &NotFoundError{What: "contact line", Message: "contact line not found under the name"}
	}

	var parts []string
	for _, part := range strings.Split(normalizeText(contact.GetText()), BulletGlyph) {
		if t := strings.TrimSpace(part); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) > 0 {
		fields.Location = parts[0]
	}
	for _, part := range parts {
		if fields.Phone == "" && phonePattern.MatchString(part) {
			fields.Phone = part
		}
		if fields.Email == "" && emailPattern.MatchString(part) {
			fields.Email = part
		}
	}

	var seenLinkedIn, seenGitHub bool
	for _, link := range d.contactLinks(contact) {
		lower := strings.ToLower(link.Text)
		if !seenLinkedIn && strings.Contains(lower, "linkedin") {
			fields.LinkedInURL, seenLinkedIn = link.URL, true
		}
		if !seenGitHub && strings.Contains(lower, "github") {
			fields.GitHubURL, seenGitHub = link.URL, true
		}
	}

	return fields, nil
}

// UpdateHeader rewrites the contact line as "location • phone • email • "
// followed by the existing hyperlinks, separated by " • ". Hyperlink runs
// and their formatting are kept; an empty URL leaves the corresponding link
// target unchanged. The name paragraph is not modified.
func (d *Document) UpdateHeader(fields HeaderFields) error {
	_, nameP := d.nameParagraph()
	if nameP == nil {
		return &NotFoundError{What: "name", Message: "name heading not found"}
	}
	contact := d.contactParagraph(nameP.GetText())
	if contact == nil {
		return &NotFoundError{What: "contact line", Message: "contact line not found under the name"}
	}

	prefix := strings.Join([]string{
		strings.TrimSpace(fields.Location),
		strings.TrimSpace(fields.Phone),
		strings.TrimSpace(fields.Email),
	}, ContactSeparator) + ContactSeparator

	setTextBeforeFirstHyperlink(contact, prefix)
	setSeparatorBetweenHyperlinks(contact, ContactSeparator)

	d.updateLinkTarget(contact, "linkedin", fields.LinkedInURL)
	d.updateLinkTarget(contact, "github", fields.GitHubURL)

	d.logger.WithField("links", len(contact.Hyperlinks())).Debug("updated contact line")
	return nil
}

// setTextBeforeFirstHyperlink puts text in the runs ahead of the first
// hyperlink: the first of them receives it, the others are emptied. Without
// hyperlinks the whole paragraph becomes the trimmed text.
func setTextBeforeFirstHyperlink(p *docxml.Paragraph, text string) {
	firstLink := -1
	for i, content := range p.Content {
		if _, ok := content.(*docxml.Hyperlink); ok {
			firstLink = i
			break
		}
	}

	if firstLink < 0 {
		var format *RunFormat
		if runs := p.Runs(); len(runs) > 0 {
			format = CaptureRunFormat(runs[0])
		}
		run := docxml.NewRun(strings.TrimSpace(text))
		format.ApplyTo(run)
		p.Content = []docxml.ParagraphContent{run}
		return
	}

	var before []*docxml.Run
	for _, content := range p.Content[:firstLink] {
		if r, ok := content.(*docxml.Run); ok {
			before = append(before, r)
		}
	}

	if len(before) == 0 {
		// Keep the prefix in front of the links
		content := make([]docxml.ParagraphContent, 0, len(p.Content)+1)
		content = append(content, p.Content[:firstLink]...)
		content = append(content, docxml.NewRun(text))
		content = append(content, p.Content[firstLink:]...)
		p.Content = content
		return
	}

	before[0].SetText(text)
	for _, r := range before[1:] {
		r.SetText("")
	}
}

// setSeparatorBetweenHyperlinks rewrites the runs between the first two
// hyperlinks so that they read sep. Nothing happens when there is no run
// between them.
func setSeparatorBetweenHyperlinks(p *docxml.Paragraph, sep string) {
	var linkAt []int
	for i, content := range p.Content {
		if _, ok := content.(*docxml.Hyperlink); ok {
			linkAt = append(linkAt, i)
		}
	}
	if len(linkAt) < 2 {
		return
	}

	var between []*docxml.Run
	for _, content := range p.Content[linkAt[0]+1 : linkAt[1]] {
		if r, ok := content.(*docxml.Run); ok {
			between = append(between, r)
		}
	}
	if len(between) == 0 {
		return
	}
	between[0].SetText(sep)
	for _, r := range between[1:] {
		r.SetText("")
	}
}

// updateLinkTarget points every hyperlink whose display text contains label
// at url. An empty url is a no-op.
func (d *Document) updateLinkTarget(p *docxml.Paragraph, label, url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	for _, h := range p.Hyperlinks() {
		if !strings.Contains(strings.ToLower(h.GetText()), label) {
			continue
		}
		rel := d.relationship(h.ID)
		if rel == nil {
			d.logger.WithField("label", label).Warn("hyperlink has no relationship to update")
			continue
		}
		rel.Target = url
		rel.TargetMode = targetModeExtern
		d.relsDirty = true
	}
}
