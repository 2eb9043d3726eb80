package imageproc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// headerOnlyPNG returns a PNG signature and IHDR chunk declaring a w x h RGBA
// image, with no pixel data following.
func headerOnlyPNG(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // colour type RGBA

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func solidRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	return img
}

func TestProcessor_Process_Formats(t *testing.T) {
	translucent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range translucent.Pix {
		translucent.Pix[i] = 128
	}
	paletted := image.NewPaletted(image.Rect(0, 0, 3, 3), color.Palette{color.Black, color.White})
	gray := image.NewGray(image.Rect(0, 0, 5, 4))

	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, solidRGBA(8, 8), nil))
	var gf bytes.Buffer
	require.NoError(t, gif.Encode(&gf, solidRGBA(4, 4), nil))

	testCases := []struct {
		name           string
		payload        string
		expectedFormat string
		expectedMode   string
		expectedW      int
		expectedH      int
	}{
		{"Opaque PNG stays RGB", dataURI("image/png", encodePNG(t, solidRGBA(4, 3))), "png", "RGB", 4, 3},
		{"Translucent PNG converted", dataURI("image/png", encodePNG(t, translucent)), "png", "RGB", 2, 2},
		{"Paletted PNG converted", dataURI("image/png", encodePNG(t, paletted)), "png", "RGB", 3, 3},
		{"Grayscale PNG kept", dataURI("image/png", encodePNG(t, gray)), "png", "L", 5, 4},
		{"JPEG", dataURI("image/jpeg", jpg.Bytes()), "jpeg", "RGB", 8, 8},
		{"GIF converted", dataURI("image/gif", gf.Bytes()), "gif", "RGB", 4, 4},
	}

	p := New(0, 0, 0)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img, err := p.Process(tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedFormat, img.Format)
			assert.Equal(t, tc.expectedMode, img.Mode)
			assert.Equal(t, tc.expectedW, img.Width)
			assert.Equal(t, tc.expectedH, img.Height)
		})
	}
}

func TestProcessor_Process_Rejections(t *testing.T) {
	small := encodePNG(t, solidRGBA(2, 2))

	testCases := []struct {
		name     string
		payload  string
		maxBytes int
		expected error
	}{
		{"Missing prefix", base64.StdEncoding.EncodeToString(small), 0, ErrInvalidPrefix},
		{"Wrong media type", dataURI("text/plain", small), 0, ErrInvalidPrefix},
		{"No comma", "data:image/png;base64" + base64.StdEncoding.EncodeToString(small), 0, ErrMalformedDataURI},
		{"Bad base64", "data:image/png;base64,!!!not-base64!!!", 0, ErrInvalidBase64},
		{"Too large", dataURI("image/png", small), 16, ErrImageTooLarge},
		{"Not an image", dataURI("image/png", []byte("definitely not a png")), 0, ErrUndecodableImage},
		{"Oversized and not base64", "data:image/png;base64," + strings.Repeat("@", 64), 16, ErrInvalidBase64},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(3, tc.maxBytes, 0).Process(tc.payload)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestProcessor_Process_SizeLimitIsInclusive(t *testing.T) {
	data := encodePNG(t, solidRGBA(2, 2))

	_, err := New(3, len(data), 0).Process(dataURI("image/png", data))
	assert.NoError(t, err)

	_, err = New(3, len(data)-1, 0).Process(dataURI("image/png", data))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestProcessor_Process_RejectsDeclaredDimensionsOverLimit(t *testing.T) {
	forged := headerOnlyPNG(20000, 20000)
	require.Less(t, len(forged), 64)

	_, err := New(3, 10<<20, 0).Process(dataURI("image/png", forged))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImageDimensions)
	assert.NotErrorIs(t, err, ErrUndecodableImage)
}

func TestProcessor_Process_PixelLimitIsInclusive(t *testing.T) {
	payload := dataURI("image/png", encodePNG(t, solidRGBA(4, 3)))

	_, err := New(3, 0, 12).Process(payload)
	assert.NoError(t, err)

	_, err = New(3, 0, 11).Process(payload)
	assert.ErrorIs(t, err, ErrImageDimensions)
}

func TestProcessor_ProcessAll_SkipsForgedDimensions(t *testing.T) {
	good := dataURI("image/png", encodePNG(t, solidRGBA(2, 2)))
	res := New(3, 0, 0).ProcessAll(context.Background(), []string{dataURI("image/png", headerOnlyPNG(50000, 50000)), good})

	require.Len(t, res.Images, 1)
	assert.Equal(t, 1, res.Images[0].Index)
	require.Len(t, res.Rejected, 1)
	assert.ErrorIs(t, res.Rejected[0], ErrImageDimensions)
}

func TestProcessor_Process_AcceptsUnpaddedAndWrappedBase64(t *testing.T) {
	data := encodePNG(t, solidRGBA(3, 3))
	enc := base64.RawStdEncoding.EncodeToString(data)

	_, err := New(0, 0, 0).Process("data:image/png;base64," + enc)
	require.NoError(t, err)

	wrapped := enc[:10] + "\n" + enc[10:]
	_, err = New(0, 0, 0).Process("data:image/png;base64," + wrapped)
	require.NoError(t, err)
}

func TestProcessor_ProcessAll_SkipsFailuresIndependently(t *testing.T) {
	good := dataURI("image/png", encodePNG(t, solidRGBA(2, 2)))
	payloads := []string{"not-a-data-uri", good, "data:image/png;base64,@@@"}

	res := New(3, 0, 0).ProcessAll(context.Background(), payloads)

	require.Len(t, res.Images, 1)
	assert.Equal(t, 1, res.Images[0].Index)
	require.Len(t, res.Rejected, 2)
	assert.Equal(t, 0, res.Rejected[0].Index)
	assert.ErrorIs(t, res.Rejected[0], ErrInvalidPrefix)
	assert.Equal(t, 2, res.Rejected[1].Index)
	assert.ErrorIs(t, res.Rejected[1], ErrInvalidBase64)
	assert.Len(t, res.Decoded(), 1)
	assert.True(t, strings.HasPrefix(res.Rejected[0].Error(), "image 1:"))
}

func TestProcessor_ProcessAll_CapsImageCount(t *testing.T) {
	good := dataURI("image/png", encodePNG(t, solidRGBA(1, 1)))
	res := New(3, 0, 0).ProcessAll(context.Background(), []string{good, good, good, good})

	assert.Len(t, res.Images, 3)
	assert.Empty(t, res.Rejected)
}

func TestProcessor_ProcessAll_Empty(t *testing.T) {
	res := New(3, 0, 0).ProcessAll(context.Background(), nil)
	assert.Empty(t, res.Images)
	assert.Empty(t, res.Rejected)
	assert.Empty(t, res.Decoded())
}

func TestNormalize_DropsAlphaKeepsColour(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	out := Normalize(src)
	rgba, ok := out.(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 200, G: 100, B: 50, A: 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, "RGB", ColorMode(out))
}

func TestNormalize_LeavesRGBAndGrayUntouched(t *testing.T) {
	rgb := solidRGBA(2, 2)
	gray := image.NewGray(image.Rect(0, 0, 2, 2))

	assert.Same(t, rgb, Normalize(rgb))
	assert.Same(t, gray, Normalize(gray))
}
