package collective

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 85
	maxUploadSize = 10 << 20 // 10MB
)

// processImage decodes an image, resizes it down to maxImageWidth if
// wider, and re-encodes it as JPEG. The returned key is the SHA-256 of
// the encoded bytes, so identical uploads always map to one object.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	key := hex.EncodeToString(sum[:]) + ".jpg"

	return Image{
		Key:          key,
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

// storeUploadedImage reads the multipart "image" file, processes it and
// persists blob plus metadata row.
func (a *App) storeUploadedImage(c echo.Context) (Image, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return Image{}, echo.NewHTTPError(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return Image{}, echo.NewHTTPError(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return Image{}, err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return Image{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	if err := a.Blobs.Put(img.Key, data); err != nil {
		return Image{}, fmt.Errorf("write image: %w", err)
	}
	if err := a.Store.SaveImage(img); err != nil {
		return Image{}, err
	}
	return img, nil
}

// handleImageUpload is the API upload route: it answers with the object
// key as plain text.
func (a *App) handleImageUpload(c echo.Context) error {
	img, err := a.storeUploadedImage(c)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, img.Key)
}

// handleImageGet serves raw image bytes with long-lived cache headers;
// content-hashed keys never change content, so clients may cache hard.
func (a *App) handleImageGet(c echo.Context) error {
	key := c.Param("id")
	data, err := a.Blobs.Get(key)
	if err != nil {
		if err == ErrNotFound {
			return c.String(http.StatusNotFound, "Not Found")
		}
		return err
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=2592000")
	return c.Blob(http.StatusOK, contentTypeForKey(key), data)
}

func contentTypeForKey(key string) string {
	switch {
	case strings.HasSuffix(key, ".png"):
		return "image/png"
	case strings.HasSuffix(key, ".gif"):
		return "image/gif"
	case strings.HasSuffix(key, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// handleImageList returns uploaded image metadata for the admin editor.
func (a *App) handleImageList(c echo.Context) error {
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	if images == nil {
		images = []Image{}
	}
	return c.JSON(http.StatusOK, images)
}

// handleImageDelete removes an image from the blob store and its metadata
// row. Blob removal is best-effort.
func (a *App) handleImageDelete(c echo.Context) error {
	key := c.Param("id")
	if err := a.Blobs.Delete(key); err != nil {
		a.Log.Warn("delete image blob", zap.String("key", key), zap.Error(err))
	}
	if err := a.Store.DeleteImage(key); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
