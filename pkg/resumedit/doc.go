// Package resumedit edits the sections of a resume stored as a Word document
// (DOCX) while keeping its visual layout.
//
// Resumes built from a template share a loose structure: an upper-case name
// followed by a contact line, upper-case section headings (SUMMARY,
// EDUCATION, TECHNICAL SKILLS, EXPERIENCE, PROJECTS), and for each
// experience or project entry a two-cell table ("Acme Corp | 2020 - 2023")
// followed by a bullet list. The editors find these parts with text
// heuristics and rewrite them in place, reusing the formatting that is
// already there instead of imposing new styles.
//
// # Quick Start
//
//	doc, err := resumedit.Open("resume.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = doc.ReplaceBullets(1, []string{
//	    "Cut p99 latency by 40% by batching writes",
//	    "Led migration of billing to event sourcing",
//	}, resumedit.DefaultBulletOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := doc.Save("resume-updated.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Editors
//
//   - Header: GetHeader / UpdateHeader rewrite the contact line and retarget
//     the LinkedIn and GitHub hyperlinks.
//   - Summary: GetSummary / UpdateSummary collapse the section into one
//     paragraph and blank the rest.
//   - Table rows: GetTableRow / UpdateTableRow rewrite the two cells of an
//     education or entry header row.
//   - Skills: GetSkills / ReplaceSkills replace the whole section, keeping
//     the blank gap before the next heading.
//   - Bullets: BulletTexts / ReplaceBullets replace the bullet block of an
//     entry, cloning the list formatting of its first bullet.
//
// A failed edit returns before the document is modified. Callers must not
// save a document after an edit error. Errors can be classified with
// IsNotFound, IsEmptyInput and IsStructural.
//
// # Analysis
//
// DetectHeaders, ScanTextDateTables and Analyze describe the document;
// SectionMap assigns entry tables to sections, and Preview renders a short
// plain-text view of a section for display.
//
// # Configuration
//
// Config is read from RESUMEDIT_LOG_LEVEL, RESUMEDIT_MAX_BLANK_REMOVAL and
// RESUMEDIT_JUSTIFY_BULLETS; see ConfigFromEnvironment.
package resumedit
