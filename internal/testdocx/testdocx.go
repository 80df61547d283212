// Package testdocx builds small resume documents in memory for tests.
// It should not be used in production code.
package testdocx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
)

const (
	// ContentTypes is the [Content_Types].xml part.
	ContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

	packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	// DocumentRels carries the two contact hyperlinks used by Contact.
	DocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
  <Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://linkedin.com/in/jane" TargetMode="External"/>
  <Relationship Id="rId6" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://github.com/jane" TargetMode="External"/>
</Relationships>`

	// Styles declares the ListBullet paragraph style by its display name.
	Styles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/></w:style>
  <w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
  <w:style w:type="character" w:styleId="Hyperlink"><w:name w:val="Hyperlink"/></w:style>
</w:styles>`

	sectPr = `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="720" w:right="720" w:bottom="720" w:left="720"/></w:sectPr>`
)

// Build packages body, the inner XML of w:body, into a DOCX.
func Build(body string) ([]byte, error) {
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>` +
		body + sectPr + `</w:body></w:document>`

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", ContentTypes},
		{"_rels/.rels", packageRels},
		{"word/document.xml", document},
		{"word/_rels/document.xml.rels", DocumentRels},
		{"word/styles.xml", Styles},
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, part := range parts {
		f, err := w.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(f, part.content); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustBuild is Build for fixtures that are known to be valid.
func MustBuild(body string) []byte {
	content, err := Build(body)
	if err != nil {
		panic(err)
	}
	return content
}

// Para is a plain paragraph.
func Para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

// Heading is a bold Heading1 paragraph.
func Heading(text string) string {
	return `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t>` + text + `</w:t></w:r></w:p>`
}

// Blank is an empty spacer paragraph with 6pt spacing after.
func Blank() string {
	return `<w:p><w:pPr><w:spacing w:after="120"/></w:pPr></w:p>`
}

// Bullet is a numbered ListBullet paragraph in Calibri 10.5pt.
func Bullet(text string) string {
	return `<w:p><w:pPr><w:pStyle w:val="ListBullet"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="7"/></w:numPr>` +
		`<w:spacing w:before="60" w:after="0"/><w:ind w:left="360" w:hanging="360"/></w:pPr>` +
		`<w:r><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="21"/></w:rPr><w:t>` + text + `</w:t></w:r></w:p>`
}

// EntryTable is a one-row, two-cell entry header such as company and dates.
func EntryTable(left, right string) string {
	return `<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/></w:tblPr>` +
		`<w:tblGrid><w:gridCol w:w="6000"/><w:gridCol w:w="3000"/></w:tblGrid><w:tr>` +
		`<w:tc><w:tcPr><w:tcW w:w="6000" w:type="dxa"/></w:tcPr><w:p><w:r><w:rPr><w:b/></w:rPr><w:t>` + left + `</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:tcPr><w:tcW w:w="3000" w:type="dxa"/></w:tcPr><w:p><w:pPr><w:jc w:val="right"/></w:pPr><w:r><w:t>` + right + `</w:t></w:r></w:p></w:tc>` +
		`</w:tr></w:tbl>`
}

// Contact is a contact line with LinkedIn (rId5) and GitHub (rId6) links.
func Contact() string {
	return `<w:p><w:r><w:t xml:space="preserve">Berlin • +49 170 1234567 • jane@example.com • </w:t></w:r>` +
		`<w:hyperlink r:id="rId5"><w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>LinkedIn</w:t></w:r></w:hyperlink>` +
		`<w:r><w:t xml:space="preserve"> | </w:t></w:r>` +
		`<w:hyperlink r:id="rId6"><w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>GitHub</w:t></w:r></w:hyperlink></w:p>`
}

// Summary is a justified paragraph whose first run is italic.
func Summary() string {
	return `<w:p><w:pPr><w:jc w:val="both"/></w:pPr><w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">Backend engineer </w:t></w:r>` +
		`<w:r><w:t>building reliable systems.</w:t></w:r></w:p>`
}

// Skill is a skills line in 10pt.
func Skill(text string) string {
	return `<w:p><w:pPr><w:spacing w:after="40"/></w:pPr><w:r><w:rPr><w:sz w:val="20"/></w:rPr><w:t>` + text + `</w:t></w:r></w:p>`
}

// ResumeBody is a complete resume: name, contact line, summary, education
// table, skills, three experience entries and one project.
func ResumeBody() string {
	return strings.Join([]string{
		Heading("JANE DOE"),
		Contact(),
		Blank(),
		Heading("SUMMARY"),
		Summary(),
		Para("Open to remote roles."),
		Blank(),
		Heading("EDUCATION"),
		EntryTable("TU Berlin", "2014 - 2018"),
		Blank(),
		Heading("TECHNICAL SKILLS"),
		Skill("Languages: Go, Python"),
		Skill("Cloud: AWS, GCP"),
		Skill("Tools: Docker"),
		Blank(),
		Blank(),
		Heading("EXPERIENCE"),
		EntryTable("Acme Corp", "2020 - 2023"),
		Bullet("Built the billing pipeline"),
		Bullet("Mentored two engineers"),
		Blank(),
		EntryTable("Globex", "2018 - 2020"),
		Bullet("Shipped the search service"),
		Blank(),
		EntryTable("Initech", "2016 - 2018"),
		Bullet("Wrote internal tooling"),
		Bullet("Automated releases"),
		Blank(),
		Heading("PROJECTS"),
		EntryTable("resumedit", "2024"),
		Bullet("Open-source DOCX editor"),
	}, "")
}

// Resume is ResumeBody packaged as a DOCX.
func Resume() []byte {
	return MustBuild(ResumeBody())
}
