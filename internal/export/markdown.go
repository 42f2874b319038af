package export

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ace-iot/subnet-academy/internal/bbmd"
	"github.com/ace-iot/subnet-academy/internal/ipv4"
	"github.com/ace-iot/subnet-academy/internal/scenario"
	"github.com/ace-iot/subnet-academy/internal/storm"
)

// MarkdownFileName is the worksheet written next to the user's notes.
const MarkdownFileName = "SUBNET-ACADEMY.md"

//go:embed markdown.tmpl
var markdownTmpl string

// SplitSection is one splitter exercise: a parent carved into /NewBits
// children.
type SplitSection struct {
	Parent   ipv4.Subnet
	NewBits  int
	Children []ipv4.Subnet
}

// PlanSection is a named BBMD plan with its validation findings.
type PlanSection struct {
	Name     string
	Plan     *bbmd.Plan
	Problems []bbmd.Problem
}

// Worksheet collects everything a session produced for export.
type Worksheet struct {
	Subnets   []ipv4.Info
	Splits    []SplitSection
	Storms    []storm.Result
	Plans     []PlanSection
	Scenarios []scenario.Scenario
}

// RenderWorksheet generates the full markdown worksheet.
func RenderWorksheet(w *Worksheet) (string, error) {
	printer := message.NewPrinter(language.English)

	funcs := template.FuncMap{
		"add":  func(a, b int) int { return a + b },
		"info": func(s ipv4.Subnet) ipv4.Info { return s.Info() },
		"hosts": func(n uint64) string {
			return printer.Sprintf("%d", n)
		},
		"count": func(n int64) string {
			return printer.Sprintf("%d", n)
		},
		"perhop": func(counts []int64) string {
			parts := make([]string, len(counts))
			for i, c := range counts {
				parts[i] = fmt.Sprintf("%d", c)
			}
			return strings.Join(parts, ", ")
		},
		"bdt": func(refs []string) string {
			if len(refs) == 0 {
				return "-"
			}
			return strings.Join(refs, ", ")
		},
		"inline":     markdownInline,
		"blockquote": markdownBlockquote,
	}

	tmpl := template.Must(template.New("markdown").Funcs(funcs).Parse(markdownTmpl))
	var sb strings.Builder
	if err := tmpl.Execute(&sb, w); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return sb.String(), nil
}

// Save renders the worksheet and writes it into dir.
func Save(dir string, w *Worksheet) error {
	md, err := RenderWorksheet(w)
	if err != nil {
		return err
	}
	fileName := filepath.Join(dir, MarkdownFileName)
	if err := os.WriteFile(fileName, []byte(md), 0644); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	return nil
}

func markdownInline(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "|", "\\|")
	return value
}

func markdownBlockquote(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")
	return "> " + strings.ReplaceAll(value, "\n", "\n> ")
}
