package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/benjaminschreck/go-resumedit/pkg/resumedit"
)

type PatchHeaderRequest struct {
	Location    string `json:"location"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedin_url"`
	GitHubURL   string `json:"github_url"`
}

type PatchSummaryRequest struct {
	Summary string `json:"summary"`
}

type PatchEducationRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type PatchSkillsRequest struct {
	Lines []string `json:"lines"`
}

type PatchBulletsRequest struct {
	TableIndex   *int   `json:"table_index" binding:"required"`
	UpdateHeader bool   `json:"update_header"`
	HeaderLeft   string `json:"header_left"`
	HeaderRight  string `json:"header_right"`
	// ReplaceAll defaults to true
	ReplaceAll *bool    `json:"replace_all"`
	Bullets    []string `json:"bullets"`
	// KeepOneBlankLineBeforeNext defaults to true
	KeepOneBlankLineBeforeNext *bool `json:"keep_one_blank_line_before_next"`
}

func (h *Handler) HandleUpload(c *gin.Context) {
	if h.MaxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUpload)
	}

	file, err := c.FormFile("file")
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": "form field 'file' is required: " + err.Error()})
		return
	}

	f, err := file.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	id, err := h.Store.Create(file.Filename, f)
	if err != nil {
		h.fail(c, err)
		return
	}

	doc, err := h.Store.Open(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	a := doc.Analyze(h.Layout.Sections)

	c.JSON(http.StatusOK, gin.H{
		"resume_id":         id,
		"detected_sections": a.Headers,
		"tables_found":      a.TablesFound,
	})
}

func (h *Handler) HandleSections(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.Store.Open(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	a := doc.Analyze(h.Layout.Sections)

	c.JSON(http.StatusOK, gin.H{
		"resume_id":         id,
		"detected_sections": a.Headers,
		"section_tables":    a.SectionTables,
	})
}

func (h *Handler) HandlePreview(c *gin.Context) {
	id := c.Param("id")
	section := strings.ToUpper(c.Param("section"))

	var tableIndex *int
	if raw := c.Query("table_index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "table_index must be an integer"})
			return
		}
		tableIndex = &n
	}

	doc, err := h.Store.Open(id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resume_id":    id,
		"section":      section,
		"preview_text": doc.Preview(section, tableIndex),
		"meta":         gin.H{"table_index": tableIndex},
	})
}

func (h *Handler) HandlePatchHeader(c *gin.Context) {
	var req PatchHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid header payload: " + err.Error()})
		return
	}

	h.patch(c, "HEADER", "Header updated.", func(doc *resumedit.Document) error {
		current, err := doc.GetHeader()
		if err != nil {
			return err
		}
		return doc.UpdateHeader(current.Merge(resumedit.HeaderFields{
			Location:    req.Location,
			Phone:       req.Phone,
			Email:       req.Email,
			LinkedInURL: req.LinkedInURL,
			GitHubURL:   req.GitHubURL,
		}))
	})
}

func (h *Handler) HandlePatchSummary(c *gin.Context) {
	var req PatchSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid summary payload: " + err.Error()})
		return
	}

	h.patch(c, resumedit.SectionSummary, "Summary updated.", func(doc *resumedit.Document) error {
		return doc.UpdateSummary(req.Summary)
	})
}

func (h *Handler) HandlePatchEducation(c *gin.Context) {
	var req PatchEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid education payload: " + err.Error()})
		return
	}

	table := 0
	if tables := h.Layout.Sections[resumedit.SectionEducation]; len(tables) > 0 {
		table = tables[0]
	}
	row := h.Layout.EducationRow

	h.patch(c, resumedit.SectionEducation, "Education updated.", func(doc *resumedit.Document) error {
		current, err := doc.GetTableRow(table, row)
		if err != nil {
			return err
		}
		return doc.UpdateTableRow(table, row, current.Merge(resumedit.TableRowFields{Left: req.Left, Right: req.Right}))
	})
}

func (h *Handler) HandlePatchSkills(c *gin.Context) {
	var req PatchSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skills payload: " + err.Error()})
		return
	}

	h.patch(c, resumedit.SectionSkills, "Skills updated.", func(doc *resumedit.Document) error {
		return doc.ReplaceSkills(req.Lines)
	})
}

func (h *Handler) HandlePatchBullets(c *gin.Context) {
	section := strings.ToUpper(c.Param("section"))
	if section != resumedit.SectionExperience && section != resumedit.SectionProjects {
		c.JSON(http.StatusBadRequest, gin.H{"error": "section must be EXPERIENCE or PROJECTS"})
		return
	}

	var req PatchBulletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bullets payload: " + err.Error()})
		return
	}
	table := *req.TableIndex

	opts := resumedit.DefaultBulletOptions()
	if req.KeepOneBlankLineBeforeNext != nil {
		opts.KeepBlankLineBeforeNext = *req.KeepOneBlankLineBeforeNext
	}
	replaceAll := req.ReplaceAll == nil || *req.ReplaceAll

	h.patch(c, section, fmt.Sprintf("%s bullets updated.", section), func(doc *resumedit.Document) error {
		if req.UpdateHeader {
			current, err := doc.GetTableRow(table, 0)
			if err != nil {
				return err
			}
			patch := resumedit.TableRowFields{Left: req.HeaderLeft, Right: req.HeaderRight}
			if err := doc.UpdateTableRow(table, 0, current.Merge(patch)); err != nil {
				return err
			}
		}
		if !replaceAll {
			return nil
		}
		// Scope the block to the section so an edit never runs into the
		// first entry of the following section.
		sections := doc.Analyze(h.Layout.Sections).SectionTables
		if next, ok := sections.NextInSection(section, table); ok {
			opts.NextTableOverride = &next
		}
		return doc.ReplaceBullets(table, req.Bullets, opts)
	})
}

func (h *Handler) HandleReset(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.Reset(id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resume_id": id, "section": "ALL", "message": "Resume reset to the uploaded version."})
}

func (h *Handler) HandleDownload(c *gin.Context) {
	path, err := h.Store.CurrentPath(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Type", docxMediaType)
	c.FileAttachment(path, "resume_updated.docx")
}

// patch runs edit against the working copy of the session and reports the
// outcome in the common patch response shape.
func (h *Handler) patch(c *gin.Context, section, message string, edit func(*resumedit.Document) error) {
	id := c.Param("id")
	if err := h.Store.Edit(id, edit); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"resume_id": id,
		"section":   section,
		"message":   message,
	})
}
