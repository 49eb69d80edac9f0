package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/models"
	"github.com/hitenchhabria09/film-folio-pro/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// s3Seams swaps the S3 function variables for the duration of a test.
type s3Seams struct {
	LastRegion       string
	LastBaseEndpoint string
	LastPutKey       string
	LastPutBody      []byte
	LastGetKey       string
	LastExpires      time.Duration

	PutErr     error
	PresignErr error
	LoadErr    error
}

func installS3Seams(t *testing.T) *s3Seams {
	t.Helper()
	f := &s3Seams{}

	origLoad, origNew, origPut, origPresign := loadDefaultAWSConfig, newS3ClientFromConfig, putObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, putObject, presignGetObject = origLoad, origNew, origPut, origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		f.LastRegion = lo.Region
		return aws.Config{}, f.LoadErr
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		if o.BaseEndpoint != nil {
			f.LastBaseEndpoint = *o.BaseEndpoint
		}
		return &s3.Client{}
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		f.LastPutKey = aws.ToString(in.Key)
		body, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		f.LastPutBody = body
		return f.PutErr
	}
	presignGetObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		f.LastGetKey = aws.ToString(in.Key)
		f.LastExpires = po.Expires
		if f.PresignErr != nil {
			return nil, f.PresignErr
		}
		return &v4.PresignedHTTPRequest{URL: "https://s3.test/" + f.LastGetKey + "?sig=1"}, nil
	}
	return f
}

func newShare(cfg S3Config) *ShareService {
	fc := &fakeCatalog{Movies: moviesByID("550", "13")}
	return NewShareService(cfg, NewFavoritesService(fc, 0, logging.NewNop()))
}

var testS3 = S3Config{
	Bucket:       "favorites",
	Region:       "us-east-1",
	BaseEndpoint: "http://127.0.0.1:9000",
	AccessKey:    "minioadmin",
	SecretKey:    "minioadmin",
}

func TestShare_UploadsAndPresigns(t *testing.T) {
	seams := installS3Seams(t)
	s := newShare(testS3)

	url, err := s.Share(context.Background(), models.Profile{
		ID: "u1", Email: "a@b.c", Name: "Ann", Favorites: []string{"550", "gone", "13"},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://s3.test/favorites/u1.json?sig=1", url)
	assert.Equal(t, "us-east-1", seams.LastRegion)
	assert.Equal(t, "http://127.0.0.1:9000", seams.LastBaseEndpoint)
	assert.Equal(t, "favorites/u1.json", seams.LastPutKey)
	assert.Equal(t, "favorites/u1.json", seams.LastGetKey)
	assert.Equal(t, ShareLinkTTL, seams.LastExpires)

	var doc SharedFavorites
	require.NoError(t, json.Unmarshal(seams.LastPutBody, &doc))
	assert.Equal(t, "u1", doc.ProfileID)
	assert.Equal(t, []string{"550", "gone", "13"}, doc.Favorites)
	assert.Equal(t, []string{"550", "13"}, titles(doc.Movies))
}

func TestShare_Disabled(t *testing.T) {
	s := newShare(S3Config{})
	assert.False(t, s.Enabled())

	_, err := s.Share(context.Background(), models.Profile{ID: "u1"})
	assert.ErrorIs(t, err, ErrSharingDisabled)
}

func TestShare_Errors(t *testing.T) {
	tests := []struct {
		name string
		set  func(*s3Seams)
		want string
	}{
		{"load config", func(f *s3Seams) { f.LoadErr = errors.New("no region") }, "load aws config"},
		{"upload", func(f *s3Seams) { f.PutErr = errors.New("denied") }, "upload favorites: denied"},
		{"presign", func(f *s3Seams) { f.PresignErr = errors.New("bad creds") }, "presign: bad creds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seams := installS3Seams(t)
			tt.set(seams)

			_, err := newShare(testS3).Share(context.Background(), models.Profile{ID: "u1", Favorites: []string{}})
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
