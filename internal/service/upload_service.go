package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const articleImageDir = "articles"

// allowedImageTypes maps sniffed content types to stored extensions
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type uploadService struct {
	cfg config.UploadConfig
	log zerolog.Logger
}

func newUploadService(cfg config.UploadConfig, log zerolog.Logger) *uploadService {
	return &uploadService{cfg: cfg, log: log.With().Str("service", "upload").Logger()}
}

// SaveArticleImage stores an image under the upload dir and returns its public URL.
// The stored name is random; the client filename is only logged.
func (s *uploadService) SaveArticleImage(ctx context.Context, filename string, size int64, r io.Reader) (*models.Upload, error) {
	if size <= 0 {
		return nil, apperr.InvalidField("file", "is required")
	}
	if s.cfg.MaxSize > 0 && size > s.cfg.MaxSize {
		return nil, apperr.InvalidField("file", fmt.Sprintf("must be at most %d bytes", s.cfg.MaxSize))
	}

	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, apperr.Upstream("read upload", err)
	}
	ext, ok := allowedImageTypes[http.DetectContentType(head)]
	if !ok {
		return nil, apperr.InvalidField("file", "must be a JPEG, PNG, GIF or WebP image")
	}

	dir := filepath.Join(s.cfg.Dir, articleImageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Upstream("create upload dir", err)
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, apperr.Upstream("create upload file", err)
	}

	limit := size
	if s.cfg.MaxSize > 0 {
		limit = s.cfg.MaxSize
	}
	written, err := io.Copy(f, io.LimitReader(br, limit+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > limit {
		os.Remove(dst)
		return nil, apperr.InvalidField("file", fmt.Sprintf("must be at most %d bytes", limit))
	}
	if err != nil {
		os.Remove(dst)
		return nil, apperr.Upstream("write upload", err)
	}
	if ctx.Err() != nil {
		os.Remove(dst)
		return nil, apperr.Upstream("write upload", ctx.Err())
	}

	url := strings.TrimRight(s.cfg.PublicURL, "/") + "/" + path.Join(articleImageDir, name)

	s.log.Info().
		Str("original_name", filename).
		Str("stored", dst).
		Int64("bytes", written).
		Msg("Article image uploaded")

	return &models.Upload{URL: url}, nil
}
