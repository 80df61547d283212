package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-resumedit/internal/config"
	"github.com/benjaminschreck/go-resumedit/internal/server"
	"github.com/benjaminschreck/go-resumedit/internal/storage"
	"github.com/benjaminschreck/go-resumedit/pkg/resumedit"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "resumedit",
		Short: "Edit the sections of a DOCX resume in place",
		Long: `resumedit rewrites individual sections of a Word resume while keeping
the template's look: fonts, spacing, bullet numbering and hyperlinks.

Editable sections:
  - Header (location, phone, email, LinkedIn and GitHub links)
  - Summary
  - Education (one table row)
  - Technical skills
  - Experience and project entries (header row and bullets)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			if level != "" {
				resumedit.GetLogger().SetLevel(resumedit.ParseLogLevel(level))
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("layout", "", "YAML file mapping sections to table indices (default: $RESUMEDIT_SECTION_MAP)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error, off")

	rootCmd.AddCommand(sectionsCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(headerCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(educationCmd())
	rootCmd.AddCommand(skillsCmd())
	rootCmd.AddCommand(bulletsCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections <resume.docx>",
		Short: "List detected headings and the entry tables of each section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := loadLayout(cmd)
			if err != nil {
				return err
			}
			doc, err := resumedit.Open(args[0])
			if err != nil {
				return err
			}

			a := doc.Analyze(layout.Sections)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Detected sections: %s\n", strings.Join(a.Headers, ", "))
			fmt.Fprintf(out, "Entry tables: %d\n", a.TablesFound)

			names := make([]string, 0, len(a.SectionTables))
			for name := range a.SectionTables {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "\n%s:\n", name)
				for _, ti := range a.SectionTables[name] {
					row, err := doc.GetTableRow(ti, 0)
					if err != nil {
						fmt.Fprintf(out, "  [%d] (%v)\n", ti, err)
						continue
					}
					fmt.Fprintf(out, "  [%d] %s | %s\n", ti, row.Left, row.Right)
				}
			}
			return nil
		},
	}
}

func previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <resume.docx> <section>",
		Short: "Print a short text preview of a section",
		Long: `Print a short text preview of a section.

With --table, EXPERIENCE and PROJECTS previews show a single entry: its
header row followed by its bullets.

Example:
  resumedit preview resume.docx summary
  resumedit preview resume.docx experience --table 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := resumedit.Open(args[0])
			if err != nil {
				return err
			}

			var tableIndex *int
			if cmd.Flags().Changed("table") {
				ti, _ := cmd.Flags().GetInt("table")
				tableIndex = &ti
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.Preview(args[1], tableIndex))
			return nil
		},
	}

	cmd.Flags().Int("table", 0, "entry table index")
	return cmd
}

func headerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header <resume.docx>",
		Short: "Show or update the contact line under the name",
		Long: `Show or update the contact line under the name.

Without flags the current values are printed. Flags that are not given keep
their current value.

Example:
  resumedit header resume.docx
  resumedit header resume.docx --location "Munich" --github https://github.com/jdoe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := resumedit.Open(args[0])
			if err != nil {
				return err
			}
			current, err := doc.GetHeader()
			if err != nil {
				return err
			}

			var patch resumedit.HeaderFields
			patch.Location, _ = cmd.Flags().GetString("location")
			patch.Phone, _ = cmd.Flags().GetString("phone")
			patch.Email, _ = cmd.Flags().GetString("email")
			patch.LinkedInURL, _ = cmd.Flags().GetString("linkedin")
			patch.GitHubURL, _ = cmd.Flags().GetString("github")

			if patch == (resumedit.HeaderFields{}) {
				printHeader(cmd, current)
				return nil
			}

			if err := doc.UpdateHeader(current.Merge(patch)); err != nil {
				return err
			}
			return save(cmd, doc, args[0], "HEADER_EDITED")
		},
	}

	cmd.Flags().String("location", "", "new location")
	cmd.Flags().String("phone", "", "new phone number")
	cmd.Flags().String("email", "", "new email address")
	cmd.Flags().String("linkedin", "", "new LinkedIn URL")
	cmd.Flags().String("github", "", "new GitHub URL")
	addOutputFlags(cmd)
	return cmd
}

func printHeader(cmd *cobra.Command, h *resumedit.HeaderFields) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "name: %s\n", h.Name)
	fmt.Fprintf(out, "location: %s\n", h.Location)
	fmt.Fprintf(out, "phone: %s\n", h.Phone)
	fmt.Fprintf(out, "email: %s\n", h.Email)
	fmt.Fprintf(out, "linkedin_url: %s\n", h.LinkedInURL)
	fmt.Fprintf(out, "github_url: %s\n", h.GitHubURL)
}

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <resume.docx>",
		Short: "Show or replace the SUMMARY paragraph",
		Long: `Show or replace the SUMMARY paragraph.

The new text is taken from --text or, with --stdin, read from standard input
up to the first empty line. Line breaks are collapsed into one paragraph.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := resumedit.Open(args[0])
			if err != nil {
				return err
			}

			text, _ := cmd.Flags().GetString("text")
			fromStdin, _ := cmd.Flags().GetBool("stdin")
			if fromStdin {
				lines, err := readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = strings.Join(lines, "\n")
			}

			if !fromStdin && !cmd.Flags().Changed("text") {
				current, err := doc.GetSummary()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), current)
				return nil
			}

			if err := doc.UpdateSummary(text); err != nil {
				return err
			}
			return save(cmd, doc, args[0], "SUMMARY_EDITED")
		},
	}

	cmd.Flags().String("text", "", "new summary text")
	cmd.Flags().Bool("stdin", false, "read the summary from standard input")
	addOutputFlags(cmd)
	return cmd
}

func educationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "education <resume.docx>",
		Short: "Show or update the education row",
		Long: `Show or update the education row: degree and school on the left, dates
on the right. The table and row come from the section layout unless --table
or --row is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := loadLayout(cmd)
			if err != nil {
				return err
			}
			table, row := 0, layout.EducationRow
			if tables := layout.Sections[resumedit.SectionEducation]; len(tables) > 0 {
				table = tables[0]
			}
			if cmd.Flags().Changed("table") {
				table, _ = cmd.Flags().GetInt("table")
			}
			if cmd.Flags().Changed("row") {
				row, _ = cmd.Flags().GetInt("row")
			}

			doc, err := resumedit.Open(args[0])
			if err != nil {
				return err
			}
			current, err := doc.GetTableRow(table, row)
			if err != nil {
				return err
			}

			var patch resumedit.TableRowFields
			patch.Left, _ = cmd.Flags().GetString("left")
			patch.Right, _ = cmd.Flags().GetString("right")
			if patch == (resumedit.TableRowFields{}) {
				fmt.Fprintf(cmd.OutOrStdout(), "left: %s\nright: %s\n", current.Left, current.Right)
				return nil
			}

			if err := doc.UpdateTableRow(table, row, current.Merge(patch)); err != nil {
				return err
			}
			return save(cmd, doc, args[0], "EDU_EDITED")
		},
	}

	cmd.Flags().String("left", "", "degree and school")
	cmd.Flags().String("right", "", "dates")
	cmd.Flags().Int("table", 0, "education table index")
	cmd.Flags().Int("row", 0, "row within the education table")
	addOutputFlags(cmd)
	return cmd
}

func skillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills <resume.docx>",
		Short: "Show or replace the TECHNICAL SKILLS lines",
		Long: `Show or replace the TECHNICAL SKILLS lines.

New lines are given with repeated --line flags or, with --stdin, pasted on
standard input and ended by an empty line.

Example:
  resumedit skills resume.docx --line "Languages: Go, Python" --line "Cloud: AWS"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := resumedit.Open(args[0])
			if err != nil {
				return err
			}

			lines, _ := cmd.Flags().GetStringArray("line")
			fromStdin, _ := cmd.Flags().GetBool("stdin")
			if fromStdin {
				lines, err = readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			if !fromStdin && len(lines) == 0 {
				current, err := doc.GetSkills()
				if err != nil {
					return err
				}
				for _, line := range current {
					if strings.TrimSpace(line) != "" {
						fmt.Fprintln(cmd.OutOrStdout(), line)
					}
				}
				return nil
			}

			if err := doc.ReplaceSkills(lines); err != nil {
				return err
			}
			return save(cmd, doc, args[0], "SKILLS_EDITED")
		},
	}

	cmd.Flags().StringArray("line", nil, "skills line (repeatable)")
	cmd.Flags().Bool("stdin", false, "read the skills lines from standard input")
	addOutputFlags(cmd)
	return cmd
}

func bulletsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bullets <resume.docx> <experience|projects> <table-index>",
		Short: "Replace the bullets of an experience or project entry",
		Long: `Replace the bullets of an experience or project entry.

Bullets are pasted on standard input. A bullet may span several lines; an
empty line starts the next bullet and a line containing only DONE ends the
input. Leading bullet characters (•, -, *, ·) are removed.

The replacement stays inside the entry: it never reaches the next entry of
the same section. The header row of the entry can be changed at the same
time with --left and --right.

Example:
  resumedit bullets resume.docx experience 1 < bullets.txt
  resumedit bullets resume.docx projects 4 --right "2023 - 2024" --list`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := strings.ToUpper(args[1])
			if section != resumedit.SectionExperience && section != resumedit.SectionProjects {
				return fmt.Errorf("section must be EXPERIENCE or PROJECTS, got %q", args[1])
			}
			table, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid table index %q: %w", args[2], err)
			}

			layout, err := loadLayout(cmd)
			if err != nil {
				return err
			}
			doc, err := resumedit.Open(args[0])
			if err != nil {
				return err
			}

			if list, _ := cmd.Flags().GetBool("list"); list {
				bullets, err := doc.BulletTexts(table)
				if err != nil {
					return err
				}
				for i, b := range bullets {
					fmt.Fprintf(cmd.OutOrStdout(), "%d) %s\n", i, b)
				}
				return nil
			}

			var patch resumedit.TableRowFields
			patch.Left, _ = cmd.Flags().GetString("left")
			patch.Right, _ = cmd.Flags().GetString("right")
			if patch != (resumedit.TableRowFields{}) {
				current, err := doc.GetTableRow(table, 0)
				if err != nil {
					return err
				}
				if err := doc.UpdateTableRow(table, 0, current.Merge(patch)); err != nil {
					return err
				}
			}

			bullets, err := readBullets(cmd.InOrStdin())
			if err != nil {
				return err
			}

			opts := resumedit.DefaultBulletOptions()
			if noSpacer, _ := cmd.Flags().GetBool("no-spacer"); noSpacer {
				opts.KeepBlankLineBeforeNext = false
			}
			sections := doc.Analyze(layout.Sections).SectionTables
			if next, ok := sections.NextInSection(section, table); ok {
				opts.NextTableOverride = &next
			}

			if err := doc.ReplaceBullets(table, bullets, opts); err != nil {
				return err
			}

			updated, err := doc.BulletTexts(table)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated bullets [%d]:\n", len(updated))
			for i, b := range updated {
				fmt.Fprintf(cmd.OutOrStdout(), "%d) %s\n", i, b)
			}
			return save(cmd, doc, args[0], section+"_EDITED")
		},
	}

	cmd.Flags().String("left", "", "new left cell of the entry header")
	cmd.Flags().String("right", "", "new right cell (dates) of the entry header")
	cmd.Flags().Bool("no-spacer", false, "do not keep a blank line before the next element")
	cmd.Flags().Bool("list", false, "print the current bullets and exit")
	addOutputFlags(cmd)
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP editing API",
		Long: `Run the HTTP editing API.

Configuration is read from the environment (and a .env file if present):
  PORT                      listen port (default 8080)
  RESUMEDIT_WORK_DIR        session storage directory (default data/sessions)
  RESUMEDIT_MAX_UPLOAD_MB   upload size limit (default 10)
  RESUMEDIT_SECTION_MAP     section layout YAML file (default sections.yaml)
  RESUMEDIT_LOG_LEVEL       log level (default info)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Port = port
			}
			if level, _ := cmd.Flags().GetString("log-level"); level == "" {
				resumedit.GetLogger().SetLevel(resumedit.ParseLogLevel(cfg.LogLevel))
			}

			layout, err := loadLayout(cmd)
			if err != nil {
				return err
			}
			store, err := storage.New(cfg.WorkDir)
			if err != nil {
				return err
			}

			r := server.NewRouter(&server.Handler{
				Store:     store,
				Layout:    layout,
				MaxUpload: cfg.MaxUploadBytes(),
				Logger:    resumedit.GetLogger(),
			})

			resumedit.WithFields(resumedit.Fields{"port": cfg.Port, "work_dir": cfg.WorkDir}).Info("starting server")
			return r.Run(":" + cfg.Port)
		},
	}

	cmd.Flags().String("port", "", "listen port (overrides $PORT)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "resumedit version %s\n", version)
		},
	}
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "output path (default: <name>_<SECTION>_EDITED.docx next to the input)")
	cmd.Flags().Bool("in-place", false, "overwrite the input file")
}

// loadLayout resolves the section layout from --layout, falling back to the
// file named by the environment.
func loadLayout(cmd *cobra.Command) (*config.Layout, error) {
	path, _ := cmd.Flags().GetString("layout")
	if path == "" {
		path = config.LoadConfig().SectionMapFile
	}
	return config.LoadLayout(path)
}

// outputPath picks where an edited resume is written.
func outputPath(cmd *cobra.Command, input, suffix string) string {
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		return out
	}
	if inPlace, _ := cmd.Flags().GetBool("in-place"); inPlace {
		return input
	}
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(filepath.Dir(input), stem+"_"+suffix+".docx")
}

func save(cmd *cobra.Command, doc *resumedit.Document, input, suffix string) error {
	path := outputPath(cmd, input, suffix)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := storage.SaveDocument(doc, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", path)
	return nil
}
