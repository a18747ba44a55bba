package preprocessing

import (
	"fmt"
	"image"
	"io"
	"os"
	"sync"

	"github.com/tsawler/go-voc/tensor"
)

// ImageProcessor resizes and converts images with buffer reuse, for
// hot loops that process many images at one fixed size. The zero
// target size is invalid; use NewImageProcessor.
type ImageProcessor struct {
	mu            sync.Mutex
	resizeBuffer  *image.RGBA
	processBuffer []float32
	width         int
	height        int
}

func NewImageProcessor(width, height int) *ImageProcessor {
	return &ImageProcessor{
		width:  width,
		height: height,
	}
}

// Process resizes the image to the processor's target size and returns
// a (3, height, width) Float32 tensor in [0, 1]. Safe for concurrent
// use; the internal buffers are copied out before returning.
func (p *ImageProcessor) Process(img image.Image) (*tensor.Tensor, error) {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("cannot process empty %dx%d image", srcW, srcH)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resizeBuffer == nil || p.resizeBuffer.Bounds().Dx() != p.width || p.resizeBuffer.Bounds().Dy() != p.height {
		p.resizeBuffer = image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	}
	target := p.resizeBuffer

	scaleX := float64(srcW) / float64(p.width)
	scaleY := float64(srcH) / float64(p.height)

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			srcX := int(float64(x) * scaleX)
			srcY := int(float64(y) * scaleY)

			if srcX >= srcW {
				srcX = srcW - 1
			}
			if srcY >= srcH {
				srcY = srcH - 1
			}

			target.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}

	plane := p.width * p.height
	required := 3 * plane
	if len(p.processBuffer) < required {
		p.processBuffer = make([]float32, required)
	}
	data := p.processBuffer[:required]

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			r, g, b, _ := target.At(x, y).RGBA()

			idx := y*p.width + x
			data[idx] = float32(r) / 65535.0
			data[plane+idx] = float32(g) / 65535.0
			data[2*plane+idx] = float32(b) / 65535.0
		}
	}

	// Copy out of the reusable buffer.
	result := make([]float32, required)
	copy(result, data)

	return tensor.NewTensor([]int{3, p.height, p.width}, tensor.Float32, result)
}

// DecodeAndProcess decodes from a reader and processes in one step.
func (p *ImageProcessor) DecodeAndProcess(reader io.Reader) (*tensor.Tensor, error) {
	img, err := DecodeImage(reader)
	if err != nil {
		return nil, err
	}
	return p.Process(img)
}

// ProcessFile opens, decodes and processes an image file.
func (p *ImageProcessor) ProcessFile(path string) (*tensor.Tensor, error) {
	img, err := OpenImage(path)
	if err != nil {
		return nil, err
	}
	return p.Process(img)
}

// PreprocessBatch processes multiple image files concurrently, keeping
// results in input order.
func PreprocessBatch(imagePaths []string, width, height, maxWorkers int) ([]*tensor.Tensor, error) {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	results := make([]*tensor.Tensor, len(imagePaths))
	errors := make([]error, len(imagePaths))

	type job struct {
		index int
		path  string
	}

	jobs := make(chan job, len(imagePaths))
	var wg sync.WaitGroup

	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			processor := NewImageProcessor(width, height)

			for j := range jobs {
				file, err := os.Open(j.path)
				if err != nil {
					errors[j.index] = err
					continue
				}

				img, err := processor.DecodeAndProcess(file)
				file.Close()

				if err != nil {
					errors[j.index] = err
				} else {
					results[j.index] = img
				}
			}
		}()
	}

	for i, path := range imagePaths {
		jobs <- job{index: i, path: path}
	}
	close(jobs)

	wg.Wait()

	for i, err := range errors {
		if err != nil {
			return nil, fmt.Errorf("failed to process image %d: %v", i, err)
		}
	}

	return results, nil
}
