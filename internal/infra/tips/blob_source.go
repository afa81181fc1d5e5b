// Package tips loads the seller tip catalog from blob storage.
package tips

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agromart/config"
	"agromart/internal/domain/entity"
	"agromart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	"gopkg.in/yaml.v3"
)

const defaultCategory = "general"

// tipNamespace seeds IDs for catalog entries that do not carry one, so a
// re-import of the same title updates the existing row.
var tipNamespace = uuid.MustParse("6b1f3c52-7f0e-4d8a-9a57-2f4f5f0b9c31")

// catalogFile is the YAML document stored in the bucket.
type catalogFile struct {
	Tips []catalogTip `yaml:"tips"`
}

type catalogTip struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	Category string `yaml:"category"`
}

type blobSource struct {
	bucketURL string
	key       string
	logger    *slog.Logger
	now       func() time.Time
}

// NewBlobSource reads the catalog from bucketURL/key. Any gocloud blob URL
// with a registered driver works; file:// and gs:// are linked in.
func NewBlobSource(bucketURL, key string, logger *slog.Logger) service.TipSource {
	return &blobSource{
		bucketURL: bucketURL,
		key:       key,
		logger:    logger,
		now:       time.Now,
	}
}

// NewTipSource builds the source from configuration. It returns nil when no bucket is configured.
func NewTipSource(cfg *config.Config, logger *slog.Logger) service.TipSource {
	if cfg.Tips == nil || strings.TrimSpace(cfg.Tips.BucketURL) == "" {
		return nil
	}

	return NewBlobSource(cfg.Tips.BucketURL, cfg.Tips.Key, logger)
}

// Load implements service.TipSource.
func (s *blobSource) Load(ctx context.Context) ([]*entity.SellerTip, error) {
	bucket, err := blob.OpenBucket(ctx, s.bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", s.bucketURL)
	}
	defer bucket.Close()

	data, err := bucket.ReadAll(ctx, s.key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", s.key)
	}

	tips, err := Parse(data, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Loaded seller tip catalog",
		slog.String("bucket", s.bucketURL),
		slog.String("key", s.key),
		slog.Int("count", len(tips)),
	)

	return tips, nil
}

// Parse decodes a YAML catalog. Entries without a title or content are rejected.
func Parse(data []byte, now time.Time) ([]*entity.SellerTip, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse tip catalog")
	}

	tips := make([]*entity.SellerTip, 0, len(file.Tips))
	for idx, raw := range file.Tips {
		title := strings.TrimSpace(raw.Title)
		content := strings.TrimSpace(raw.Content)
		if title == "" || content == "" {
			return nil, errors.Errorf("tip %d: title and content are required", idx)
		}

		id := uuid.NewSHA1(tipNamespace, []byte(title))
		if raw.ID != "" {
			parsed, err := uuid.Parse(raw.ID)
			if err != nil {
				return nil, errors.Wrapf(err, "tip %d: invalid id", idx)
			}
			id = parsed
		}

		category := strings.ToLower(strings.TrimSpace(raw.Category))
		if category == "" {
			category = defaultCategory
		}

		tips = append(tips, &entity.SellerTip{
			ID:        id,
			Title:     title,
			Content:   content,
			Category:  category,
			CreatedAt: now,
		})
	}

	return tips, nil
}
