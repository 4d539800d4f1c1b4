package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// CalculationArchive mirrors audit rows into an R2/S3 bucket as JSON blobs.
// Strictly best-effort: the DB row is the source of truth, the bucket is for
// offline analysis.
type CalculationArchive struct {
	client        *s3.Client
	bucketName    string
	publicURL     string
	uploadTimeout time.Duration
}

func NewCalculationArchive(ctx context.Context, accountId, accessKey, secretKey, bucketName, publicURL string, uploadTimeout time.Duration) (*CalculationArchive, error) {
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountId),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &CalculationArchive{
		client:        client,
		bucketName:    bucketName,
		publicURL:     strings.TrimSuffix(publicURL, "/"),
		uploadTimeout: uploadTimeout,
	}, nil
}

// Put stores one serialized calculation under calculations/<yyyy-mm-dd>/<id>.json.
func (a *CalculationArchive) Put(ctx context.Context, calculationID string, data []byte) (string, error) {
	key := fmt.Sprintf("calculations/%s/%s.json", time.Now().UTC().Format("2006-01-02"), calculationID)

	uploadCtx, cancel := context.WithTimeout(ctx, a.uploadTimeout)
	defer cancel()

	_, err := a.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive calculation: %w", err)
	}

	if a.publicURL == "" {
		return key, nil
	}
	return fmt.Sprintf("%s/%s", a.publicURL, key), nil
}
