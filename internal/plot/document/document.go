// Package document assembles rendered pages into a single PDF file.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mmugram/internal/logging"

	"github.com/go-pdf/fpdf"
)

var ErrClosed = errors.New("document already closed")

// Document is built in memory and only reaches its destination path on
// Commit. Close must always be called; closing an uncommitted document
// discards it so a failed run never leaves a truncated file behind.
type Document struct {
	path   string
	title  string
	width  float64
	height float64
	pdf    *fpdf.Fpdf
	pages  int

	committed bool
	closed    bool
}

// New starts a document whose pages are width x height inches.
func New(path, title string, width, height float64) *Document {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("mmugram", true)

	return &Document{
		path:   path,
		title:  title,
		width:  width,
		height: height,
		pdf:    pdf,
	}
}

func (d *Document) Title() string {
	return d.title
}

func (d *Document) PageCount() int {
	return d.pages
}

// AddPage appends a full-page PNG image.
func (d *Document) AddPage(image []byte) error {
	if d.closed || d.committed {
		return ErrClosed
	}

	name := fmt.Sprintf("page-%d", d.pages+1)
	opts := fpdf.ImageOptions{ImageType: "PNG"}

	d.pdf.AddPage()
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(image))
	d.pdf.ImageOptions(name, 0, 0, d.width, d.height, false, opts, 0, "")
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("failed to add page %d: %w", d.pages+1, err)
	}

	d.pages++
	return nil
}

// Commit writes the finished document next to its destination and renames
// it into place.
func (d *Document) Commit() (err error) {
	if d.closed || d.committed {
		return ErrClosed
	}
	if d.pages == 0 {
		return fmt.Errorf("refusing to write %s without pages", d.path)
	}

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".mmugram-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temporary output: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err = d.pdf.Output(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("failed to move document into place: %w", err)
	}

	d.committed = true
	logging.GetLogger().WithField("output", d.path).WithField("pages", d.pages).Debug("Document committed")
	return nil
}

// Close releases the document. It is safe to call more than once.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if !d.committed {
		logging.GetLogger().WithField("output", d.path).WithField("pages", d.pages).Warn("Discarding unfinished document")
	}
	d.pdf = nil
	return nil
}
