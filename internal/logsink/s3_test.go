// internal/logsink/s3_test.go

package logsink

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeS3 struct {
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*input.Key]
	if !ok {
		return nil, fmt.Errorf("NoSuchKey: %s", *input.Key)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*input.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func TestAppend(t *testing.T) {
	fake := newFakeS3()
	sink := &S3Sink{bucket: "agent-logs", client: fake, logger: zap.NewNop()}

	ts := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	sink.Append(Record{
		Timestamp:       ts,
		RemoteAddr:      "10.0.0.1",
		Endpoint:        "/user/info",
		FirstName:       "John",
		FishingLocation: "Cape Cod",
	})
	sink.Append(Record{
		Timestamp:       ts.Add(time.Minute),
		RemoteAddr:      "10.0.0.2",
		Endpoint:        "/user/info",
		FirstName:       "Sally",
		FishingLocation: "Boston Harbor",
	})

	reader := csv.NewReader(bytes.NewReader(fake.objects[objectKey]))
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// Header plus two records.
	require.Len(t, rows, 3)
	assert.Equal(t, "timestamp", rows[0][0])
	assert.Equal(t, "John", rows[1][3])
	assert.Equal(t, "Cape Cod", rows[1][4])
	assert.Equal(t, "Sally", rows[2][3])
	assert.Equal(t, "false", rows[2][5])
}
