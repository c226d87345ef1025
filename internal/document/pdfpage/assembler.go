// Package pdfpage lays rasterized document bitmaps onto A4 PDF pages,
// splitting any bitmap taller than one printable page into consecutive
// horizontal bands.
package pdfpage

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/superbill/superbill/internal/document/raster"
)

// Fixed page geometry in millimeters.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
	MarginMM     = 10.0

	PrintableWidthMM  = PageWidthMM - 2*MarginMM
	PrintableHeightMM = PageHeightMM - 2*MarginMM
)

// Assembler accumulates canvases into one multi-page PDF. Pages are added
// strictly in the order canvases and their bands are supplied.
type Assembler struct {
	pdf       *gofpdf.Fpdf
	imgSerial int
}

func NewAssembler() *Assembler {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(MarginMM, MarginMM, MarginMM)
	pdf.SetAutoPageBreak(false, 0)
	return &Assembler{pdf: pdf}
}

// band is one horizontal slice of a source bitmap, in pixels.
type band struct {
	y, h int
}

// splitBands cuts a bitmap height into consecutive bands of at most bandPx
// pixels. The final band may be shorter; it is never padded or stretched.
func splitBands(heightPx, bandPx int) []band {
	var bands []band
	for y := 0; y < heightPx; y += bandPx {
		h := bandPx
		if y+h > heightPx {
			h = heightPx - y
		}
		bands = append(bands, band{y: y, h: h})
	}
	return bands
}

// AddCanvas places one rasterized document into the PDF. The pixels-per-mm
// ratio is recomputed per canvas from its own pixel width against the
// printable width, since documents may rasterize at different effective
// sizes.
func (a *Assembler) AddCanvas(bm *raster.Bitmap) error {
	if bm.Width <= 0 || bm.Height <= 0 {
		return fmt.Errorf("canvas has no pixels: %dx%d", bm.Width, bm.Height)
	}

	pxPerMM := float64(bm.Width) / PrintableWidthMM
	scaledHeightMM := float64(bm.Height) / pxPerMM

	if scaledHeightMM <= PrintableHeightMM {
		a.addImagePage(bm.PNG, PrintableWidthMM, scaledHeightMM)
		return a.pdf.Error()
	}

	src, err := png.Decode(bytes.NewReader(bm.PNG))
	if err != nil {
		return fmt.Errorf("decode canvas: %w", err)
	}

	bandPx := int(PrintableHeightMM * pxPerMM)
	for _, bd := range splitBands(bm.Height, bandPx) {
		cropped, err := cropBand(src, bm.Width, bd)
		if err != nil {
			return err
		}
		a.addImagePage(cropped, PrintableWidthMM, float64(bd.h)/pxPerMM)
		if err := a.pdf.Error(); err != nil {
			return err
		}
	}
	return nil
}

// cropBand copies one horizontal slice of the source image into its own
// PNG.
func cropBand(src image.Image, widthPx int, bd band) ([]byte, error) {
	bounds := src.Bounds()
	rect := image.Rect(bounds.Min.X, bounds.Min.Y+bd.y, bounds.Min.X+widthPx, bounds.Min.Y+bd.y+bd.h)
	dst := image.NewRGBA(image.Rect(0, 0, widthPx, bd.h))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode band: %w", err)
	}
	return buf.Bytes(), nil
}

// addImagePage adds a fresh page (except before the very first image of the
// document) and draws the PNG at the fixed margin offset.
func (a *Assembler) addImagePage(pngData []byte, widthMM, heightMM float64) {
	a.pdf.AddPage()
	a.imgSerial++
	name := fmt.Sprintf("canvas-%d", a.imgSerial)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	a.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(pngData))
	a.pdf.ImageOptions(name, MarginMM, MarginMM, widthMM, heightMM, false, opts, 0, "")
}

// PageCount returns the number of pages added so far.
func (a *Assembler) PageCount() int {
	return a.pdf.PageCount()
}

// Output finalizes the document and returns the PDF bytes.
func (a *Assembler) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename derives a download name from the patient name and issue date.
func Filename(patientName string, issueDate time.Time) string {
	name := strings.ReplaceAll(strings.TrimSpace(patientName), " ", "_")
	if name == "" {
		name = "Superbill"
	}
	return name + "_" + issueDate.Format("01-02-2006") + ".pdf"
}

// GroupFilename names a grouped-submission bundle by its generation date.
func GroupFilename(generated time.Time) string {
	return "Superbills_" + generated.Format("01-02-2006") + ".pdf"
}
