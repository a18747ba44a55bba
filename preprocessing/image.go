// Package preprocessing decodes dataset images and converts them into
// CHW float32 tensors ready for model input.
package preprocessing

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"github.com/tsawler/go-voc/tensor"
)

// DecodeImage decodes a JPEG or PNG stream.
func DecodeImage(reader io.Reader) (image.Image, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}
	return img, nil
}

// OpenImage opens and decodes an image file.
func OpenImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %v", err)
	}
	defer f.Close()
	return DecodeImage(f)
}

// ToRGBA forces an image into RGBA, dropping exotic color models.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// Resize scales an image to width x height with nearest-neighbor
// sampling.
func Resize(img image.Image, width, height int) *image.RGBA {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	scaleX := float64(srcW) / float64(width)
	scaleY := float64(srcH) / float64(height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			srcX := int(float64(x) * scaleX)
			srcY := int(float64(y) * scaleY)

			if srcX >= srcW {
				srcX = srcW - 1
			}
			if srcY >= srcH {
				srcY = srcH - 1
			}

			out.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}
	return out
}

// ToTensor converts an image to a (3, H, W) Float32 tensor with
// channel values scaled to [0, 1].
func ToTensor(img image.Image) (*tensor.Tensor, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("cannot convert empty %dx%d image", width, height)
	}

	plane := width * height
	data := make([]float32, 3*plane)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			idx := y*width + x
			data[idx] = float32(r) / 65535.0
			data[plane+idx] = float32(g) / 65535.0
			data[2*plane+idx] = float32(b) / 65535.0
		}
	}

	return tensor.NewTensor([]int{3, height, width}, tensor.Float32, data)
}

// MaskToTensor converts a segmentation class mask to an (H, W) Int32
// tensor of class indices. VOC masks are paletted PNGs whose palette
// index is the class; grayscale masks are read directly.
func MaskToTensor(img image.Image) (*tensor.Tensor, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	data := make([]int32, width*height)

	switch m := img.(type) {
	case *image.Paletted:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				data[y*width+x] = int32(m.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
	case *image.Gray:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				data[y*width+x] = int32(m.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported mask image type %T", img)
	}

	return tensor.NewTensor([]int{height, width}, tensor.Int32, data)
}
