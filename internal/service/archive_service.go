package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	config "github.com/benask/autoposter/configs"
	"github.com/h2non/filetype"
)

// maxArchiveSize caps how much of a media file is mirrored.
const maxArchiveSize = 100 * 1024 * 1024

// Archiver mirrors a post's media file to durable storage so a scheduled
// re-post still works after the source is deleted.
type Archiver interface {
	Archive(ctx context.Context, userID int64, redditPostID, mediaURL string) (string, error)
}

// R2Archive stores media in an S3-compatible bucket (Cloudflare R2).
type R2Archive struct {
	config config.Config
	http   *http.Client
}

func NewR2Archive(cfg config.Config) *R2Archive {
	return &R2Archive{
		config: cfg,
		http:   &http.Client{Timeout: 2 * time.Minute},
	}
}

func (r *R2Archive) Enabled() bool {
	r2 := r.config.R2
	return r2.AccountID != "" && r2.AccessKey != "" && r2.SecretKey != "" && r2.BucketName != ""
}

func (r *R2Archive) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.R2.AccessKey, r.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.R2.AccountID))
	}), nil
}

func (r *R2Archive) Archive(ctx context.Context, userID int64, redditPostID, mediaURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", r.config.RedditUserAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize))
	if err != nil {
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	ext := ""
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		contentType = kind.MIME.Value
		ext = "." + kind.Extension
	}

	key := fmt.Sprintf("media/%d/%s%s", userID, redditPostID, ext)

	client, err := r.client(ctx)
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	if r.config.R2.PublicURL != "" {
		return strings.TrimSuffix(r.config.R2.PublicURL, "/") + "/" + key, nil
	}
	return key, nil
}
