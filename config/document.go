package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgepadayatti/pdfgen/pdf/content"
	"github.com/georgepadayatti/pdfgen/pdf/document"
	"github.com/georgepadayatti/pdfgen/pdf/fonts"
)

// DocumentConfig describes a document to render.
type DocumentConfig struct {
	// Version is the PDF header version; defaults to 1.7.
	Version string `yaml:"version" json:"version,omitempty"`

	// Compress enables FlateDecode for content streams and font programs.
	Compress bool `yaml:"compress" json:"compress"`

	Info    *InfoConfig    `yaml:"info" json:"info,omitempty"`
	Fonts   []FontConfig   `yaml:"fonts" json:"fonts,omitempty"`
	Images  []ImageConfig  `yaml:"images" json:"images,omitempty"`
	Pages   []PageConfig   `yaml:"pages" json:"pages,omitempty"`
	Logging *LoggingConfig `yaml:"logging" json:"logging,omitempty"`
}

// InfoConfig contains the document information entries.
type InfoConfig struct {
	Title    string `yaml:"title" json:"title,omitempty"`
	Author   string `yaml:"author" json:"author,omitempty"`
	Subject  string `yaml:"subject" json:"subject,omitempty"`
	Keywords string `yaml:"keywords" json:"keywords,omitempty"`
	Creator  string `yaml:"creator" json:"creator,omitempty"`
	Producer string `yaml:"producer" json:"producer,omitempty"`

	// CreationDate is an RFC 3339 timestamp.
	CreationDate string `yaml:"creation-date" json:"creation_date,omitempty"`
}

// FontConfig declares a font resource. Exactly one of File and Standard
// is set.
type FontConfig struct {
	// Name is the resource name used by text items.
	Name string `yaml:"name" json:"name"`

	// File is a TrueType font path, relative to the description file.
	File string `yaml:"file" json:"file,omitempty"`

	// Standard is a Standard-14 font name.
	Standard string `yaml:"standard" json:"standard,omitempty"`

	Flags *FontFlagsConfig `yaml:"flags" json:"flags,omitempty"`
}

// FontFlagsConfig selects font descriptor flags for embedded fonts.
type FontFlagsConfig struct {
	FixedPitch bool `yaml:"fixed-pitch" json:"fixed_pitch"`
	Serif      bool `yaml:"serif" json:"serif"`
	Symbolic   bool `yaml:"symbolic" json:"symbolic"`
	Script     bool `yaml:"script" json:"script"`
	Italic     bool `yaml:"italic" json:"italic"`
	AllCap     bool `yaml:"all-cap" json:"all_cap"`
	SmallCap   bool `yaml:"small-cap" json:"small_cap"`
	ForceBold  bool `yaml:"force-bold" json:"force_bold"`
}

// ImageConfig declares a JPEG or PNG image resource.
type ImageConfig struct {
	Name string `yaml:"name" json:"name"`
	File string `yaml:"file" json:"file"`
}

// PageConfig describes one page.
type PageConfig struct {
	// Size is a preset name (a3, a4, letter, legal); ignored when Width and
	// Height are set.
	Size   string       `yaml:"size" json:"size,omitempty"`
	Width  float64      `yaml:"width" json:"width,omitempty"`
	Height float64      `yaml:"height" json:"height,omitempty"`
	Items  []ItemConfig `yaml:"items" json:"items,omitempty"`
}

// ItemConfig is one drawing on a page; exactly one field is set.
type ItemConfig struct {
	Rectangle *RectangleConfig `yaml:"rectangle" json:"rectangle,omitempty"`
	Ellipse   *EllipseConfig   `yaml:"ellipse" json:"ellipse,omitempty"`
	Line      *LineConfig      `yaml:"line" json:"line,omitempty"`
	Text      *TextConfig      `yaml:"text" json:"text,omitempty"`
	Image     *ImageItemConfig `yaml:"image" json:"image,omitempty"`
}

// BorderConfig contains configuration for shape borders.
type BorderConfig struct {
	// Width is the border width in points.
	Width float64 `yaml:"width" json:"width"`

	// Color is the border color.
	Color string `yaml:"color" json:"color,omitempty"`
}

// RectangleConfig draws a rectangle. Zero dimensions use 150x100.
type RectangleConfig struct {
	X      float64       `yaml:"x" json:"x"`
	Y      float64       `yaml:"y" json:"y"`
	Width  float64       `yaml:"width" json:"width,omitempty"`
	Height float64       `yaml:"height" json:"height,omitempty"`
	Color  string        `yaml:"color" json:"color,omitempty"`
	Border *BorderConfig `yaml:"border" json:"border,omitempty"`
}

// EllipseConfig draws an ellipse centred at X, Y.
type EllipseConfig struct {
	X      float64       `yaml:"x" json:"x"`
	Y      float64       `yaml:"y" json:"y"`
	XScale float64       `yaml:"x-scale" json:"x_scale,omitempty"`
	YScale float64       `yaml:"y-scale" json:"y_scale,omitempty"`
	Color  string        `yaml:"color" json:"color,omitempty"`
	Border *BorderConfig `yaml:"border" json:"border,omitempty"`
}

// LineConfig draws a straight line.
type LineConfig struct {
	Start     [2]float64 `yaml:"start" json:"start"`
	End       [2]float64 `yaml:"end" json:"end"`
	Thickness float64    `yaml:"thickness" json:"thickness,omitempty"`
	Color     string     `yaml:"color" json:"color,omitempty"`
}

// TextConfig shows one or more lines of text.
type TextConfig struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`

	// Font is the name of a declared font.
	Font       string  `yaml:"font" json:"font"`
	FontSize   float64 `yaml:"font-size" json:"font_size,omitempty"`
	LineHeight float64 `yaml:"line-height" json:"line_height,omitempty"`
	Color      string  `yaml:"color" json:"color,omitempty"`

	// Align positions the text relative to X: left, center or right.
	Align string `yaml:"align" json:"align,omitempty"`

	// Content is split into lines on newlines.
	Content string `yaml:"content" json:"content"`
}

// ImageItemConfig places a declared image. Zero dimensions use the pixel
// size multiplied by Scale.
type ImageItemConfig struct {
	Name   string  `yaml:"name" json:"name"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width,omitempty"`
	Height float64 `yaml:"height" json:"height,omitempty"`
	Scale  float64 `yaml:"scale" json:"scale,omitempty"`
}

var pageSizes = map[string][2]float64{
	"a3":     document.PageSizeA3,
	"a4":     document.PageSizeA4,
	"letter": document.PageSizeLetter,
	"legal":  document.PageSizeLegal,
}

// PageSize resolves the page dimensions. The default is A4.
func (p *PageConfig) PageSize() ([2]float64, error) {
	if p.Width != 0 || p.Height != 0 {
		if p.Width <= 0 || p.Height <= 0 {
			return [2]float64{}, NewConfigError("width", "page dimensions must be positive")
		}
		return [2]float64{p.Width, p.Height}, nil
	}
	if p.Size == "" {
		return document.PageSizeA4, nil
	}
	size, ok := pageSizes[strings.ToLower(p.Size)]
	if !ok {
		return [2]float64{}, NewConfigError("size", fmt.Sprintf("unknown page size %q", p.Size))
	}
	return size, nil
}

// Flags converts the configured flags. Nil yields nil, leaving the default
// to the embedder.
func (f *FontFlagsConfig) Flags() *fonts.Flags {
	if f == nil {
		return nil
	}
	return &fonts.Flags{
		FixedPitch:  f.FixedPitch,
		Serif:       f.Serif,
		Symbolic:    f.Symbolic,
		Script:      f.Script,
		Nonsymbolic: !f.Symbolic,
		Italic:      f.Italic,
		AllCap:      f.AllCap,
		SmallCap:    f.SmallCap,
		ForceBold:   f.ForceBold,
	}
}

// Info converts the information entries.
func (c *InfoConfig) Info() (document.Info, error) {
	if c == nil {
		return document.Info{}, nil
	}
	info := document.Info{
		Title:    c.Title,
		Author:   c.Author,
		Subject:  c.Subject,
		Keywords: c.Keywords,
		Creator:  c.Creator,
		Producer: c.Producer,
	}
	if c.CreationDate != "" {
		t, err := time.Parse(time.RFC3339, c.CreationDate)
		if err != nil {
			return document.Info{}, &ConfigError{
				Field:   "info.creation-date",
				Message: err.Error(),
				Err:     ErrConfigurationError,
			}
		}
		info.CreationDate = t
	}
	return info, nil
}

var namedColors = map[string]*content.Color{
	"black": content.Black(),
	"white": content.White(),
	"gray":  content.Gray(0.5),
	"red":   content.RGB(1, 0, 0),
	"green": content.RGB(0, 1, 0),
	"blue":  content.RGB(0, 0, 1),
}

// parseColor accepts a color name or a hex value; empty means unset.
func parseColor(field, value string) (*content.Color, error) {
	if value == "" {
		return nil, nil
	}
	if c, ok := namedColors[strings.ToLower(value)]; ok {
		copied := *c
		return &copied, nil
	}
	c, err := content.ParseHex(value)
	if err != nil {
		return nil, &ConfigError{Field: field, Message: err.Error(), Err: ErrConfigurationError}
	}
	return c, nil
}

// Validate checks the description without touching the file system.
func (c *DocumentConfig) Validate() error {
	if c.Version != "" && !validVersion(c.Version) {
		return NewConfigError("version", fmt.Sprintf("unsupported version %q", c.Version))
	}
	if _, err := c.Info.Info(); err != nil {
		return err
	}
	if c.Logging != nil {
		if _, err := ParseLevel(c.Logging.Level); err != nil {
			return err
		}
	}

	fontNames := make(map[string]bool)
	for i, f := range c.Fonts {
		field := fmt.Sprintf("fonts[%d]", i)
		if f.Name == "" {
			return missingField(field + ".name")
		}
		if fontNames[f.Name] {
			return NewConfigError(field+".name", fmt.Sprintf("duplicate font %q", f.Name))
		}
		fontNames[f.Name] = true
		switch {
		case f.File == "" && f.Standard == "":
			return missingField(field + ".file")
		case f.File != "" && f.Standard != "":
			return NewConfigError(field, "file and standard are mutually exclusive")
		case f.Standard != "" && !fonts.IsStandardFont(f.Standard):
			return NewConfigError(field+".standard", fmt.Sprintf("%q is not a standard font", f.Standard))
		}
	}

	imageNames := make(map[string]bool)
	for i, img := range c.Images {
		field := fmt.Sprintf("images[%d]", i)
		if img.Name == "" {
			return missingField(field + ".name")
		}
		if img.File == "" {
			return missingField(field + ".file")
		}
		if imageNames[img.Name] {
			return NewConfigError(field+".name", fmt.Sprintf("duplicate image %q", img.Name))
		}
		imageNames[img.Name] = true
	}

	for i, page := range c.Pages {
		field := fmt.Sprintf("pages[%d]", i)
		if _, err := page.PageSize(); err != nil {
			var cfgErr *ConfigError
			if errors.As(err, &cfgErr) {
				cfgErr.Field = field + "." + cfgErr.Field
			}
			return err
		}
		for j, item := range page.Items {
			if err := item.validate(fmt.Sprintf("%s.items[%d]", field, j), fontNames, imageNames); err != nil {
				return err
			}
		}
	}
	return nil
}

func validVersion(v string) bool {
	switch v {
	case "1.3", "1.4", "1.5", "1.6", "1.7", "2.0":
		return true
	}
	return false
}

func (item *ItemConfig) validate(field string, fontNames, imageNames map[string]bool) error {
	set := 0
	for _, present := range []bool{
		item.Rectangle != nil, item.Ellipse != nil, item.Line != nil, item.Text != nil, item.Image != nil,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return NewConfigError(field, fmt.Sprintf("expected exactly one drawing, got %d", set))
	}

	type colorField struct{ field, value string }
	var colors []colorField
	switch {
	case item.Rectangle != nil:
		colors = append(colors, colorField{field + ".rectangle.color", item.Rectangle.Color})
		if b := item.Rectangle.Border; b != nil {
			colors = append(colors, colorField{field + ".rectangle.border.color", b.Color})
		}
	case item.Ellipse != nil:
		colors = append(colors, colorField{field + ".ellipse.color", item.Ellipse.Color})
		if b := item.Ellipse.Border; b != nil {
			colors = append(colors, colorField{field + ".ellipse.border.color", b.Color})
		}
	case item.Line != nil:
		colors = append(colors, colorField{field + ".line.color", item.Line.Color})
	case item.Text != nil:
		t := item.Text
		if t.Font == "" {
			return missingField(field + ".text.font")
		}
		if !fontNames[t.Font] {
			return &ConfigError{Field: field + ".text.font", Message: fmt.Sprintf("undeclared font %q", t.Font), Err: ErrUnknownReference}
		}
		switch t.Align {
		case "", "left", "center", "right":
		default:
			return NewConfigError(field+".text.align", fmt.Sprintf("unknown alignment %q", t.Align))
		}
		colors = append(colors, colorField{field + ".text.color", t.Color})
	case item.Image != nil:
		if item.Image.Name == "" {
			return missingField(field + ".image.name")
		}
		if !imageNames[item.Image.Name] {
			return &ConfigError{Field: field + ".image.name", Message: fmt.Sprintf("undeclared image %q", item.Image.Name), Err: ErrUnknownReference}
		}
	}
	for _, c := range colors {
		if _, err := parseColor(c.field, c.value); err != nil {
			return err
		}
	}
	return nil
}
