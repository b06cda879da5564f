package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/georgepadayatti/pdfgen/pdf/content"
	"github.com/georgepadayatti/pdfgen/pdf/document"
	"github.com/georgepadayatti/pdfgen/pdf/fonts"
	"github.com/georgepadayatti/pdfgen/pdf/generic"
	"github.com/georgepadayatti/pdfgen/pdf/images"
)

type fontResource struct {
	ref  generic.Reference
	meta *document.FontMetadata
}

type imageResource struct {
	ref  generic.Reference
	meta document.ImageMetadata
}

type builder struct {
	doc     *document.Document
	baseDir string
	fonts   map[string]fontResource
	images  map[string]imageResource
}

// Build validates cfg and renders it into a new document. Relative file
// paths are resolved against baseDir.
func Build(cfg *DocumentConfig, baseDir string, opts ...document.Option) (*document.Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	info, err := cfg.Info.Info()
	if err != nil {
		return nil, err
	}

	docOpts := []document.Option{
		document.WithVersion(cfg.Version),
		document.WithCompression(cfg.Compress),
	}
	if cfg.Info != nil {
		docOpts = append(docOpts, document.WithInfo(info))
	}
	b := &builder{
		doc:     document.New(append(docOpts, opts...)...),
		baseDir: baseDir,
		fonts:   make(map[string]fontResource),
		images:  make(map[string]imageResource),
	}

	for i, f := range cfg.Fonts {
		if err := b.embedFont(f); err != nil {
			return nil, fmt.Errorf("fonts[%d]: %w", i, err)
		}
	}
	for i, img := range cfg.Images {
		if err := b.embedImage(img); err != nil {
			return nil, fmt.Errorf("images[%d]: %w", i, err)
		}
	}
	for i, page := range cfg.Pages {
		if err := b.addPage(page); err != nil {
			return nil, fmt.Errorf("pages[%d]: %w", i, err)
		}
	}
	return b.doc, nil
}

func (b *builder) readFile(name string) ([]byte, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (b *builder) embedFont(f FontConfig) error {
	var (
		ref  generic.Reference
		meta *document.FontMetadata
		err  error
	)
	if f.Standard != "" {
		ref, meta, err = b.doc.EmbedStandardFont(fonts.StandardFont(f.Standard))
	} else {
		var data []byte
		if data, err = b.readFile(f.File); err != nil {
			return err
		}
		ref, meta, err = b.doc.EmbedFont(data, f.Flags.Flags())
	}
	if err != nil {
		return err
	}
	b.fonts[f.Name] = fontResource{ref: ref, meta: meta}
	return nil
}

func (b *builder) embedImage(img ImageConfig) error {
	data, err := b.readFile(img.File)
	if err != nil {
		return err
	}

	var res imageResource
	switch images.DetectFormat(data) {
	case images.FormatJPEG:
		res.ref, res.meta, err = b.doc.EmbedJPG(data)
	case images.FormatPNG:
		res.ref, res.meta, err = b.doc.EmbedPNG(data)
	default:
		return &generic.EmbeddingError{Resource: img.File, Cause: images.ErrUnsupportedFormat}
	}
	if err != nil {
		return err
	}
	b.images[img.Name] = res
	return nil
}

func (b *builder) addPage(cfg PageConfig) error {
	size, err := cfg.PageSize()
	if err != nil {
		return err
	}
	page := b.doc.CreatePage(size, nil)

	var groups []any
	for i, item := range cfg.Items {
		ops, err := b.drawItem(page, item)
		if err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
		groups = append(groups, ops)
	}

	if len(groups) > 0 {
		cs, err := b.doc.CreateContentStream(groups...)
		if err != nil {
			return err
		}
		page.AddContentStreams(b.doc.Register(cs))
	}
	b.doc.AddPage(page)
	return nil
}

func (b *builder) drawItem(page *document.Page, item ItemConfig) ([]content.Operator, error) {
	switch {
	case item.Rectangle != nil:
		return drawRectangle(item.Rectangle)
	case item.Ellipse != nil:
		return drawEllipse(item.Ellipse)
	case item.Line != nil:
		return drawLine(item.Line)
	case item.Text != nil:
		return b.drawText(page, item.Text)
	case item.Image != nil:
		return b.drawImage(page, item.Image)
	}
	return nil, NewConfigError("", "empty item")
}

func drawRectangle(cfg *RectangleConfig) ([]content.Operator, error) {
	opts := content.DefaultRectangleOptions()
	opts.X, opts.Y = cfg.X, cfg.Y
	if cfg.Width != 0 {
		opts.Width = cfg.Width
	}
	if cfg.Height != 0 {
		opts.Height = cfg.Height
	}

	var err error
	if opts.Color, err = parseColor("color", cfg.Color); err != nil {
		return nil, err
	}
	if cfg.Border != nil {
		opts.BorderWidth = cfg.Border.Width
		if opts.BorderColor, err = parseColor("border.color", cfg.Border.Color); err != nil {
			return nil, err
		}
	}
	return content.DrawRectangle(opts), nil
}

func drawEllipse(cfg *EllipseConfig) ([]content.Operator, error) {
	opts := content.DefaultEllipseOptions()
	opts.X, opts.Y = cfg.X, cfg.Y
	if cfg.XScale != 0 {
		opts.XScale = cfg.XScale
	}
	if cfg.YScale != 0 {
		opts.YScale = cfg.YScale
	}

	var err error
	if opts.Color, err = parseColor("color", cfg.Color); err != nil {
		return nil, err
	}
	if cfg.Border != nil {
		opts.BorderWidth = cfg.Border.Width
		if opts.BorderColor, err = parseColor("border.color", cfg.Border.Color); err != nil {
			return nil, err
		}
	}
	return content.DrawEllipse(opts), nil
}

func drawLine(cfg *LineConfig) ([]content.Operator, error) {
	opts := content.DefaultLineOptions()
	opts.Start, opts.End = cfg.Start, cfg.End
	if cfg.Thickness != 0 {
		opts.Thickness = cfg.Thickness
	}
	var err error
	if opts.Color, err = parseColor("color", cfg.Color); err != nil {
		return nil, err
	}
	return content.DrawLine(opts), nil
}

func (b *builder) drawText(page *document.Page, cfg *TextConfig) ([]content.Operator, error) {
	font := b.fonts[cfg.Font]
	page.AddFont(cfg.Font, font.ref)

	opts := content.DefaultTextOptions()
	opts.Font = cfg.Font
	opts.Y = cfg.Y
	if cfg.FontSize != 0 {
		opts.Size = cfg.FontSize
	}
	opts.LineHeight = cfg.LineHeight
	var err error
	if opts.Color, err = parseColor("color", cfg.Color); err != nil {
		return nil, err
	}

	lines := strings.Split(cfg.Content, "\n")
	if cfg.Align == "" || cfg.Align == "left" {
		encoded := make([]generic.PdfObject, len(lines))
		for i, line := range lines {
			encoded[i] = font.meta.EncodeText(line)
		}
		opts.X = cfg.X
		return content.DrawLinesOfText(encoded, opts), nil
	}

	// Aligned lines start at different offsets, so each is its own text
	// object.
	var ops []content.Operator
	for i, line := range lines {
		lineOpts := opts
		lineOpts.X = alignedX(cfg.X, cfg.Align, font.meta.WidthOfTextAtSize(line, opts.Size))
		lineOpts.Y = cfg.Y - float64(i)*opts.Leading()
		ops = append(ops, content.DrawText(font.meta.EncodeText(line), lineOpts)...)
	}
	return ops, nil
}

func alignedX(x float64, align string, width float64) float64 {
	switch align {
	case "center":
		return x - width/2
	case "right":
		return x - width
	}
	return x
}

func (b *builder) drawImage(page *document.Page, cfg *ImageItemConfig) ([]content.Operator, error) {
	img := b.images[cfg.Name]
	page.AddXObject(cfg.Name, img.ref)

	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}
	dims := img.meta.Scale(scale)
	opts := content.ImageOptions{X: cfg.X, Y: cfg.Y, Width: dims.Width, Height: dims.Height}
	if cfg.Width != 0 {
		opts.Width = cfg.Width
	}
	if cfg.Height != 0 {
		opts.Height = cfg.Height
	}
	return content.DrawImage(cfg.Name, opts), nil
}
