package resumedit

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	docxml "github.com/benjaminschreck/go-resumedit/pkg/resumedit/xml"
)

// BulletGlyph is the character resumes type in front of manual bullets.
const BulletGlyph = "•"

var (
	headingPattern       = regexp.MustCompile(`^[A-Z0-9 &/\-]+$`)
	sectionHeaderPattern = regexp.MustCompile(`^[A-Z][A-Z\s&]{2,}$`)
)

// normalizeText puts text in NFC form and trims surrounding whitespace.
// Word may store accented characters decomposed; comparisons against user
// supplied labels must not depend on that.
func normalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// isBlank reports whether a paragraph has no visible text.
func isBlank(p *docxml.Paragraph) bool {
	return strings.TrimSpace(p.GetText()) == ""
}

// hasLetter reports whether s contains at least one letter.
func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// isUpper reports whether s has cased letters and all of them are upper case.
func isUpper(s string) bool {
	return hasLetter(s) && strings.ToUpper(s) == s
}

// IsHeading reports whether text is a section heading: non-empty after
// trimming, all upper case with at least one letter, and made only of
// A-Z, digits, spaces, '&', '/' and '-'.
func IsHeading(text string) bool {
	t := normalizeText(text)
	if t == "" {
		return false
	}
	return isUpper(t) && headingPattern.MatchString(t)
}

// LooksLikeSectionHeader is the stricter heading test used by analysis: an
// upper-case letter followed by at least two more upper-case letters,
// spaces or '&'.
func LooksLikeSectionHeader(text string) bool {
	return sectionHeaderPattern.MatchString(normalizeText(text))
}

// IsBullet reports whether a paragraph is a list item: it carries
// numbering, its style name mentions "list" or "bullet", or its text starts
// with a bullet glyph.
func (d *Document) IsBullet(p *docxml.Paragraph) bool {
	if p == nil {
		return false
	}
	if p.HasNumbering() {
		return true
	}

	if id := p.StyleID(); id != "" {
		name := strings.ToLower(d.styleName(id))
		if strings.Contains(name, "list") || strings.Contains(name, "bullet") {
			return true
		}
	}

	return strings.HasPrefix(strings.TrimLeftFunc(p.GetText(), unicode.IsSpace), BulletGlyph)
}
