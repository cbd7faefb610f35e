package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/webcms/cms-api/internal/domain"
)

const (
	MB = 1 << 20

	MaxImageSize        = 2 * MB
	MaxGalleryImageSize = 5 * MB
	MaxDocumentSize     = 10 * MB
)

var (
	ImageExts    = []string{".jpeg", ".jpg", ".png", ".gif"}
	GalleryExts  = []string{".jpeg", ".jpg", ".png", ".gif", ".webp"}
	PDFExts      = []string{".pdf"}
	DocumentExts = []string{".pdf", ".doc", ".docx"}
)

type FileRule struct {
	Field    string
	MaxSize  int64
	Exts     []string
	Required bool
}

// ReadUploads collects the files named by rules from a multipart request.
// Absent optional files are left out of the result. Violations come back as
// validation.Errors keyed by field.
func ReadUploads(ctx *gin.Context, rules ...FileRule) (map[string]*domain.Upload, error) {
	uploads := make(map[string]*domain.Upload, len(rules))
	errs := validation.Errors{}

	for _, rule := range rules {
		header, err := ctx.FormFile(rule.Field)
		if err != nil {
			if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
				return nil, fmt.Errorf("ctx.FormFile(%s) -> %w", rule.Field, err)
			}
			if rule.Required {
				errs[rule.Field] = errors.New("is required")
			}
			continue
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if len(rule.Exts) > 0 && !slices.Contains(rule.Exts, ext) {
			errs[rule.Field] = fmt.Errorf("must be a file of type: %s", strings.Join(trimDots(rule.Exts), ", "))
			continue
		}
		if rule.MaxSize > 0 && header.Size > rule.MaxSize {
			errs[rule.Field] = fmt.Errorf("may not be greater than %d kilobytes", rule.MaxSize/1024)
			continue
		}

		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("header.Open -> %w", err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("io.ReadAll -> %w", err)
		}

		uploads[rule.Field] = &domain.Upload{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  bytes.NewReader(data),
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return uploads, nil
}

func trimDots(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.TrimPrefix(e, ".")
	}

	return out
}
