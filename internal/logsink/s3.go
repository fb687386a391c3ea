// internal/logsink/s3.go

// Package logsink appends intake interactions to a CSV object in S3.
package logsink

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"
)

const objectKey = "logs/agent_interactions.csv"

// Record is one intake interaction.
type Record struct {
	Timestamp       time.Time
	RemoteAddr      string
	Endpoint        string
	FirstName       string
	FishingLocation string
	RateLimited     bool
}

// S3API defines the S3 operations the sink performs.
type S3API interface {
	GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error)
	PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

// S3Sink serializes interaction records into an append-only CSV in S3.
type S3Sink struct {
	bucket string
	client S3API
	logger *zap.Logger
	mutex  sync.Mutex
}

// New creates an S3Sink against the configured bucket.
func New(region, endpoint, bucket string, logger *zap.Logger) (*S3Sink, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Sink{
		bucket: bucket,
		client: s3.New(sess),
		logger: logger,
	}, nil
}

// Append downloads the existing CSV, appends the record, and uploads the
// result. Failures are logged, never surfaced to the request path.
func (s *S3Sink) Append(rec Record) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	row := []string{
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.RemoteAddr,
		rec.Endpoint,
		rec.FirstName,
		rec.FishingLocation,
		fmt.Sprintf("%t", rec.RateLimited),
	}

	var existing [][]string
	resp, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err == nil {
		defer resp.Body.Close()
		bodyBytes, err := io.ReadAll(resp.Body)
		if err == nil && len(bodyBytes) > 0 {
			reader := csv.NewReader(bytes.NewReader(bodyBytes))
			existing, err = reader.ReadAll()
			if err != nil {
				s.logger.Warn("Failed to parse existing interaction CSV", zap.Error(err))
				existing = [][]string{}
			}
		}
	} else {
		s.logger.Info("No existing interaction CSV in S3, creating a new one", zap.Error(err))
	}

	if len(existing) == 0 {
		existing = append(existing, []string{
			"timestamp",
			"remote_addr",
			"endpoint",
			"first_name",
			"fishing_location",
			"is_rate_limited",
		})
	}

	existing = append(existing, row)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(existing); err != nil {
		s.logger.Error("Failed to write interaction CSV to buffer", zap.Error(err))
		return
	}

	_, err = s.client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		s.logger.Error("Failed to upload interaction CSV to S3", zap.Error(err))
	}
}
