package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hitenchhabria09/film-folio-pro/internal/catalog"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/models"
)

// ShareLinkTTL is how long a shared favorites link stays valid.
const ShareLinkTTL = 15 * time.Minute

// ErrSharingDisabled is returned when no bucket is configured.
var ErrSharingDisabled = errors.New("sharing is not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}

	presignGetObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return s3.NewPresignClient(c).PresignGetObject(ctx, in, optFns...)
	}
)

// S3Config locates the bucket favorites are shared through.
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// SharedFavorites is the document uploaded by ShareService.
type SharedFavorites struct {
	ProfileID string          `json:"profile_id"`
	Name      string          `json:"name"`
	SharedAt  time.Time       `json:"shared_at"`
	Favorites []string        `json:"favorites"`
	Movies    []catalog.Movie `json:"movies"`
}

// ShareService publishes a favorites list to S3 and hands out a presigned
// link to it.
type ShareService struct {
	cfg       S3Config
	favorites *FavoritesService
	now       func() time.Time
}

func NewShareService(cfg S3Config, favorites *FavoritesService) *ShareService {
	return &ShareService{cfg: cfg, favorites: favorites, now: time.Now}
}

// Enabled reports whether a bucket is configured.
func (s *ShareService) Enabled() bool {
	return s.cfg.Bucket != ""
}

// ObjectKey returns the object key a profile's favorites are stored under.
func ObjectKey(profileID string) string {
	return "favorites/" + profileID + ".json"
}

func (s *ShareService) client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.cfg.Region)}
	if s.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.cfg.AccessKey, s.cfg.SecretKey, ""),
		))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Share uploads p's favorites and returns a presigned GET URL for them.
func (s *ShareService) Share(ctx context.Context, p models.Profile) (string, error) {
	if !s.Enabled() {
		return "", ErrSharingDisabled
	}

	movies, err := s.favorites.Resolve(ctx, p)
	if err != nil {
		return "", err
	}
	doc := SharedFavorites{
		ProfileID: p.ID,
		Name:      p.Name,
		SharedAt:  s.now().UTC(),
		Favorites: p.Clone().Favorites,
		Movies:    movies,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode favorites: %w", err)
	}

	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	key := ObjectKey(p.ID)
	err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload favorites: %w", err)
	}

	req, err := presignGetObject(client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ShareLinkTTL))
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return req.URL, nil
}
