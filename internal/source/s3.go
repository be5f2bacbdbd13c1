package source

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ignite/constituent-reconciler/internal/reconcile"
)

// s3Getter is the slice of the S3 API the reader needs.
type s3Getter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Reader reads the three CSV exports from an S3 bucket.
type S3Reader struct {
	client s3Getter
	cfg    S3Config
}

// NewS3Reader creates a reader over S3-hosted CSV exports.
func NewS3Reader(ctx context.Context, cfg S3Config) (*S3Reader, error) {
	var awsCfg aws.Config
	var err error
	if cfg.AWSProfile != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithSharedConfigProfile(cfg.AWSProfile),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &S3Reader{client: s3.NewFromConfig(awsCfg), cfg: cfg}, nil
}

// Read loads all three tables from the bucket.
func (r *S3Reader) Read(ctx context.Context) (reconcile.Tables, error) {
	var tables reconcile.Tables

	err := r.withObject(ctx, r.cfg.ConstituentsKey, func(body *s3.GetObjectOutput) error {
		rows, err := DecodeConstituents(body.Body)
		tables.Constituents = rows
		return err
	})
	if err != nil {
		return tables, fmt.Errorf("read constituents: %w", err)
	}

	err = r.withObject(ctx, r.cfg.EmailsKey, func(body *s3.GetObjectOutput) error {
		rows, err := DecodeEmails(body.Body)
		tables.Emails = rows
		return err
	})
	if err != nil {
		return tables, fmt.Errorf("read emails: %w", err)
	}

	err = r.withObject(ctx, r.cfg.DonationsKey, func(body *s3.GetObjectOutput) error {
		rows, err := DecodeDonations(body.Body)
		tables.Donations = rows
		return err
	})
	if err != nil {
		return tables, fmt.Errorf("read donations: %w", err)
	}

	return tables, nil
}

func (r *S3Reader) withObject(ctx context.Context, key string, fn func(*s3.GetObjectOutput) error) error {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("get s3://%s/%s: %w", r.cfg.Bucket, key, err)
	}
	defer out.Body.Close()
	return fn(out)
}
