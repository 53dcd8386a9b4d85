package service

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nfnt/resize"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
)

// PreviewSize bounds both sides of the fast preview shown before the full image.
const PreviewSize = 500

// DateLayout formats modification times in the info panel and details text.
const DateLayout = "02-01-2006 15:04:05"

// EXIFFields are the EXIF tags shown for an image, in display order.
var EXIFFields = []exif.FieldName{
	exif.DateTimeOriginal, exif.Make, exif.Model, exif.ExposureTime,
	exif.FNumber, exif.ISOSpeedRatings, exif.FocalLength,
}

// ImageInfo holds metadata about an image file.
type ImageInfo struct {
	Name     string
	Path     string
	Format   string
	Width    int
	Height   int
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// DateModified returns the modification time as dd-mm-YYYY HH:MM:SS.
func (i *ImageInfo) DateModified() string {
	return i.ModTime.Format(DateLayout)
}

// Dimensions returns the pixel size as WxH.
func (i *ImageInfo) Dimensions() string {
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// ImageService loads images and extracts their metadata.
type ImageService struct {
}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// GetEXIF extracts the EXIFFields present in r. Images without EXIF data, which
// includes every non-JPEG, yield an empty map and no error.
func (is *ImageService) GetEXIF(r io.Reader) map[string]string {
	result := make(map[string]string)
	x, err := exif.Decode(r)
	if err != nil {
		return result
	}
	for _, field := range EXIFFields {
		tag, err := x.Get(field)
		if err == nil && tag != nil {
			result[string(field)] = tag.String()
		}
	}
	return result
}

// GetImageInfo decodes the image at path and returns its metadata along with
// the decoded image.
func (is *ImageService) GetImageInfo(path string) (*ImageInfo, image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image for info: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat image file: %w", err)
	}

	exifData := is.GetEXIF(f)

	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("failed to seek in image file: %w", err)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image %s: %w", filepath.Base(path), err)
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Name:     filepath.Base(path),
		Path:     path,
		Format:   format,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Size:     fi.Size(),
		ModTime:  fi.ModTime(),
		EXIFData: exifData,
	}, img, nil
}

// Preview scales img down to fit PreviewSize x PreviewSize. Smaller images are
// returned as they are.
func (is *ImageService) Preview(img image.Image) image.Image {
	return resize.Thumbnail(PreviewSize, PreviewSize, img, resize.Bilinear)
}
