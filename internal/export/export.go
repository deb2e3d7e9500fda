// Package export writes the task list in printable and machine-readable
// formats.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nibzard/focuslist/internal/todo"
)

// Format is an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat parses a format name. An empty string means FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown export format %q, must be one of: json, csv, pdf", s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Options controls an export.
type Options struct {
	Title  string
	Filter todo.Filter
	Now    time.Time
}

// Write exports tasks to w. Tasks are filtered and ordered the way the list
// view shows them.
func Write(w io.Writer, format Format, tasks []todo.Task, opts Options) error {
	if opts.Filter == "" {
		opts.Filter = todo.FilterAll
	}
	if opts.Title == "" {
		opts.Title = "focuslist"
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	visible := todo.Visible(tasks, opts.Filter)

	switch format {
	case FormatJSON, "":
		data, err := todo.MarshalSnapshot(visible)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatCSV:
		return writeCSV(w, visible)
	case FormatPDF:
		return writePDF(w, visible, opts)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeCSV(w io.Writer, tasks []todo.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "isDone"}); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write([]string{strconv.FormatInt(t.ID, 10), t.Text, strconv.FormatBool(t.IsDone)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks []todo.Task, opts Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreationDate(opts.Now)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(opts.Title))
	pdf.Ln(10)

	c := todo.Count(tasks)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(0, 6, fmt.Sprintf("%s - %d tasks, %d pending, %d completed - %s",
		opts.Filter.Label(), c.All, c.Pending, c.Completed, opts.Now.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	if len(tasks) == 0 {
		pdf.SetTextColor(110, 110, 110)
		pdf.MultiCell(0, 6, "You are all caught up!", "0", "L", false)
	}
	for _, t := range tasks {
		box := "[ ]"
		pdf.SetTextColor(0, 0, 0)
		if t.IsDone {
			box = "[x]"
			pdf.SetTextColor(120, 120, 120)
		}
		pdf.MultiCell(0, 7, tr(box+"  "+t.Text), "0", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
