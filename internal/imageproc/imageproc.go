// Package imageproc validates and decodes the base64 data-URI images attached
// to a report. Image content is never analyzed; only format, size and colour
// mode are checked.
package imageproc

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"strings"

	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultMaxImages = 3
	DefaultMaxBytes  = 10 * 1024 * 1024
	// DefaultMaxPixels matches the decompression bomb threshold of common
	// imaging libraries (1 GiB of 24-bit pixels).
	DefaultMaxPixels = 1024 * 1024 * 1024 / 4 / 3

	dataURIPrefix = "data:image/"
)

var (
	ErrInvalidPrefix    = errors.New("missing data:image/ prefix")
	ErrMalformedDataURI = errors.New("malformed data URI")
	ErrInvalidBase64    = errors.New("invalid base64 payload")
	ErrImageTooLarge    = errors.New("image exceeds size limit")
	ErrUndecodableImage = errors.New("undecodable image")
	ErrImageDimensions  = errors.New("image dimensions exceed pixel limit")
)

// ProcessedImage is an attachment that passed validation.
type ProcessedImage struct {
	Index  int
	Format string
	Mode   string // colour mode after normalization: "RGB" or "L"
	Width  int
	Height int
	Image  image.Image
}

// ImageError records why the attachment at Index was skipped.
type ImageError struct {
	Index int
	Err   error
}

func (e ImageError) Error() string {
	return fmt.Sprintf("image %d: %v", e.Index+1, e.Err)
}

func (e ImageError) Unwrap() error { return e.Err }

// Result holds the accepted and rejected attachments of one request.
type Result struct {
	Images   []ProcessedImage
	Rejected []ImageError
}

// Decoded returns the accepted images in submission order.
func (r Result) Decoded() []image.Image {
	out := make([]image.Image, len(r.Images))
	for i, p := range r.Images {
		out[i] = p.Image
	}
	return out
}

// Processor validates image payloads. The zero value is not usable; use New.
type Processor struct {
	maxImages int
	maxBytes  int
	maxPixels int64
}

// New returns a Processor. Non-positive limits fall back to the defaults.
func New(maxImages, maxBytes, maxPixels int) *Processor {
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Processor{maxImages: maxImages, maxBytes: maxBytes, maxPixels: int64(maxPixels)}
}

// ProcessAll handles up to maxImages payloads independently. A failing
// payload is logged and skipped; it never aborts the others.
func (p *Processor) ProcessAll(ctx context.Context, payloads []string) Result {
	var res Result
	if len(payloads) > p.maxImages {
		payloads = payloads[:p.maxImages]
	}
	for i, raw := range payloads {
		if err := ctx.Err(); err != nil {
			res.Rejected = append(res.Rejected, ImageError{Index: i, Err: err})
			continue
		}
		img, err := p.Process(raw)
		if err != nil {
			ie := ImageError{Index: i, Err: err}
			log.WithField("image", i+1).Warnf("Skipping image: %v", err)
			res.Rejected = append(res.Rejected, ie)
			continue
		}
		img.Index = i
		log.WithFields(log.Fields{
			"image":  i + 1,
			"format": img.Format,
			"mode":   img.Mode,
			"width":  img.Width,
			"height": img.Height,
		}).Info("Successfully processed image")
		res.Images = append(res.Images, img)
	}
	return res
}

// Process validates and decodes a single data-URI payload.
func (p *Processor) Process(raw string) (ProcessedImage, error) {
	if !strings.HasPrefix(raw, dataURIPrefix) {
		return ProcessedImage{}, ErrInvalidPrefix
	}
	_, payload, ok := strings.Cut(raw, ",")
	if !ok {
		return ProcessedImage{}, ErrMalformedDataURI
	}

	data, err := decodeBase64(stripWhitespace(payload))
	if err != nil {
		return ProcessedImage{}, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	if len(data) > p.maxBytes {
		return ProcessedImage{}, fmt.Errorf("%w (%d > %d bytes)", ErrImageTooLarge, len(data), p.maxBytes)
	}

	// Decoders allocate the whole pixel buffer from the header, so the
	// declared dimensions are checked before any pixel data is read.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ProcessedImage{}, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > p.maxPixels {
		return ProcessedImage{}, fmt.Errorf("%w (%dx%d > %d pixels)", ErrImageDimensions, cfg.Width, cfg.Height, p.maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ProcessedImage{}, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	img = Normalize(img)
	b := img.Bounds()
	return ProcessedImage{
		Format: format,
		Mode:   ColorMode(img),
		Width:  b.Dx(),
		Height: b.Dy(),
		Image:  img,
	}, nil
}

func decodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

func stripWhitespace(s string) string {
	if !strings.ContainsAny(s, " \t\r\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}

// ColorMode names the colour mode of img: "RGB" and "L" (grayscale) are the
// normalized modes; anything else needs conversion.
func ColorMode(img image.Image) string {
	switch img.(type) {
	case *image.RGBA, *image.RGBA64, *image.YCbCr:
		return "RGB"
	case *image.Gray, *image.Gray16:
		return "L"
	case *image.NRGBA, *image.NRGBA64:
		return "RGBA"
	case *image.Paletted:
		return "P"
	case *image.CMYK:
		return "CMYK"
	case *image.Alpha, *image.Alpha16:
		return "A"
	case *image.NYCbCrA:
		return "YCbCrA"
	}
	return "unknown"
}

// Normalize converts img to an opaque RGB image unless it is already RGB or
// grayscale. Alpha is dropped, keeping the straight colour values.
func Normalize(img image.Image) image.Image {
	switch ColorMode(img) {
	case "RGB", "L":
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}
