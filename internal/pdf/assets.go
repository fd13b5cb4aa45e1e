package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/webp"
)

var ErrEmptyImage = errors.New("image is empty")

// Image is a decoded-and-validated asset ready to embed.
type Image struct {
	Name   string
	Type   string
	Data   []byte
	Width  int
	Height int
}

// LoadImage checks the bytes are a decodable image. WebP is converted to PNG
// because gofpdf only embeds JPEG, PNG and GIF.
func LoadImage(name string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	cfg, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		imgType, ok := map[string]string{"png": "PNG", "jpeg": "JPG", "gif": "GIF"}[kind]
		if !ok {
			return nil, fmt.Errorf("unsupported image format %q", kind)
		}
		return &Image{Name: name, Type: imgType, Data: data, Width: cfg.Width, Height: cfg.Height}, nil
	}

	decoded, webpErr := webp.Decode(bytes.NewReader(data))
	if webpErr != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return nil, fmt.Errorf("convert webp image %s: %w", name, err)
	}
	bounds := decoded.Bounds()
	return &Image{Name: name, Type: "PNG", Data: buf.Bytes(), Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

// embed registers the image with the document and draws it inside a box of
// the given height, keeping the aspect ratio. A failure clears the document
// error so the rest of the layout can proceed.
func (w *PageWriter) embed(img *Image, x, y, height float64) error {
	opts := gofpdf.ImageOptions{ImageType: img.Type}
	w.pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
	if !w.pdf.Ok() {
		err := w.pdf.Error()
		w.pdf.ClearError()
		return err
	}
	w.pdf.ImageOptions(img.Name, x, y, 0, height, false, opts, 0, "")
	if !w.pdf.Ok() {
		err := w.pdf.Error()
		w.pdf.ClearError()
		return err
	}
	return nil
}
