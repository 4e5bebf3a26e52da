/**
 * Image splitter and enhancer
 *
 * Prepares one column of a scanned sheet for recognition:
 * crop -> grayscale -> upscale -> contrast stretch -> sharpen -> binarize.
 * The result is written as a PNG into the temp directory and must be removed
 * by the caller once recognition is done.
 */

package enhance

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// Region is a crop rectangle in source-image pixel coordinates.
type Region struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// SplitColumns derives the two column regions of a sheet: left and right
// halves, split at floor(width/2), both spanning the full height.
func SplitColumns(width, height int) (left, right Region) {
	half := width / 2
	left = Region{Left: 0, Top: 0, Width: half, Height: height}
	right = Region{Left: half, Top: 0, Width: half, Height: height}
	return left, right
}

// LoadImage decodes the source image and reports its decoded format.
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Enhancer turns column regions of a source image into binarized PNGs.
type Enhancer struct {
	tempDir   string
	threshold uint8
	upscale   int
}

// NewEnhancer creates an enhancer writing temp files under tempDir.
func NewEnhancer(tempDir string, threshold uint8, upscale int) *Enhancer {
	if upscale < 1 {
		upscale = 1
	}
	return &Enhancer{
		tempDir:   tempDir,
		threshold: threshold,
		upscale:   upscale,
	}
}

// EnhanceRegion crops the region out of src, enhances it for recognition and
// writes the result to a uniquely named PNG. It returns the file path.
func (e *Enhancer) EnhanceRegion(src image.Image, region Region, label string) (string, error) {
	if region.Width <= 0 || region.Height <= 0 {
		return "", fmt.Errorf("empty region for column %s", label)
	}

	gray := grayscaleCrop(src, region)
	scaled := upscaleGray(gray, e.upscale)
	stretchContrast(scaled)
	sharpened := sharpen(scaled)
	binarize(sharpened, e.threshold)

	path := filepath.Join(e.tempDir, fmt.Sprintf("enhanced-%s-%s.png", label, uuid.New().String()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create enhanced image: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, sharpened); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encode enhanced image: %w", err)
	}
	return path, nil
}

// grayscaleCrop copies the region out of src into a fresh grayscale image.
func grayscaleCrop(src image.Image, region Region) *image.Gray {
	rect := image.Rect(region.Left, region.Top, region.Left+region.Width, region.Top+region.Height)
	rect = rect.Intersect(src.Bounds())
	gray := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(gray, gray.Bounds(), src, rect.Min, draw.Src)
	return gray
}

// upscaleGray scales the image uniformly by factor using Catmull-Rom
// resampling, the slowest but sharpest of the x/image kernels.
func upscaleGray(src *image.Gray, factor int) *image.Gray {
	if factor == 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// stretchContrast linearly remaps the luminance histogram to the full 0-255
// range in place. A flat image is left untouched.
func stretchContrast(img *image.Gray) {
	min, max := uint8(255), uint8(0)
	for _, v := range img.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min >= max {
		return
	}
	scale := 255.0 / float64(max-min)
	for i, v := range img.Pix {
		img.Pix[i] = uint8(float64(v-min)*scale + 0.5)
	}
}

// sharpen applies a fixed-strength 3x3 unsharp kernel:
//
//	 0 -1  0
//	-1  5 -1
//	 0 -1  0
//
// Border pixels are copied unchanged.
func sharpen(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)
	copy(dst.Pix, src.Pix)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			center := int(src.Pix[y*src.Stride+x])
			sum := 5*center -
				int(src.Pix[(y-1)*src.Stride+x]) -
				int(src.Pix[(y+1)*src.Stride+x]) -
				int(src.Pix[y*src.Stride+x-1]) -
				int(src.Pix[y*src.Stride+x+1])
			if sum < 0 {
				sum = 0
			}
			if sum > 255 {
				sum = 255
			}
			dst.Pix[y*dst.Stride+x] = uint8(sum)
		}
	}
	return dst
}

// binarize thresholds the image in place: pixels below the cutoff become
// black, the rest white.
func binarize(img *image.Gray, threshold uint8) {
	for i, v := range img.Pix {
		if v < threshold {
			img.Pix[i] = 0
		} else {
			img.Pix[i] = 255
		}
	}
}
