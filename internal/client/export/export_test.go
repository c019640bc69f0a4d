package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pagedLister struct {
	all     []models.Customer
	filters []models.CustomerFilter
	err     error
}

func (p *pagedLister) List(ctx context.Context, f models.CustomerFilter) (models.CustomerPage, error) {
	p.filters = append(p.filters, f)
	if p.err != nil {
		return models.CustomerPage{}, p.err
	}
	end := min(f.Skip+f.Limit, len(p.all))
	if f.Skip >= len(p.all) {
		return models.CustomerPage{Total: len(p.all)}, nil
	}
	return models.CustomerPage{Items: p.all[f.Skip:end], Total: len(p.all)}, nil
}

type memSink struct {
	body []byte
	err  error
}

func (m *memSink) Put(ctx context.Context, body []byte) error {
	m.body = append([]byte(nil), body...)
	return m.err
}

func (m *memSink) Location() string { return "memory" }

func roster(n int) []models.Customer {
	out := make([]models.Customer, n)
	for i := range out {
		out[i] = models.Customer{ID: string(rune('a' + i%26)), FirstName: "C", Status: models.StatusActive}
	}
	return out
}

func TestRoster_PagesThroughEverything(t *testing.T) {
	src := &pagedLister{all: roster(7)}
	r := NewRoster(src, nil)
	r.batch = 3
	sink := &memSink{}

	n, err := r.Export(context.Background(), models.CustomerFilter{Status: models.StatusActive, Skip: 50, Limit: 1}, sink)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	require.Len(t, src.filters, 3)
	assert.Equal(t, []int{0, 3, 6}, []int{src.filters[0].Skip, src.filters[1].Skip, src.filters[2].Skip})
	for _, f := range src.filters {
		assert.Equal(t, 3, f.Limit)
		assert.Equal(t, models.StatusActive, f.Status)
	}

	lines := 0
	sc := bufio.NewScanner(bytes.NewReader(sink.body))
	for sc.Scan() {
		var c models.Customer
		require.NoError(t, json.Unmarshal(sc.Bytes(), &c))
		lines++
	}
	assert.Equal(t, 7, lines)
}

func TestRoster_EmptyListing(t *testing.T) {
	sink := &memSink{}
	n, err := NewRoster(&pagedLister{}, nil).Export(context.Background(), models.CustomerFilter{}, sink)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, sink.body)
}

func TestRoster_Errors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewRoster(&pagedLister{err: boom}, nil).Export(context.Background(), models.CustomerFilter{}, &memSink{})
	assert.ErrorIs(t, err, boom)

	_, err = NewRoster(&pagedLister{all: roster(2)}, nil).Export(context.Background(), models.CustomerFilter{}, &memSink{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "roster.jsonl")
	s := FileSink{Path: path}

	require.NoError(t, s.Put(context.Background(), []byte("{}\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
	assert.Equal(t, path, s.Location())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Sink_Put(t *testing.T) {
	p := &fakePutter{}
	s := S3Sink{Client: p, Bucket: "gym", Key: "exports/roster.jsonl"}

	require.NoError(t, s.Put(context.Background(), []byte("line\n")))
	assert.Equal(t, "gym", aws.ToString(p.in.Bucket))
	assert.Equal(t, "exports/roster.jsonl", aws.ToString(p.in.Key))
	assert.Equal(t, ContentType, aws.ToString(p.in.ContentType))
	assert.Equal(t, "line\n", string(p.body))
	assert.Equal(t, "s3://gym/exports/roster.jsonl", s.Location())

	p.err = errors.New("denied")
	assert.ErrorIs(t, s.Put(context.Background(), nil), p.err)
}

func TestParseS3URL(t *testing.T) {
	b, k, ok, err := ParseS3URL("s3://gym/a/b.jsonl")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "gym", b)
	assert.Equal(t, "a/b.jsonl", k)

	_, _, ok, err = ParseS3URL("/tmp/roster.jsonl")
	assert.NoError(t, err)
	assert.False(t, ok)

	for _, bad := range []string{"s3://", "s3://gym", "s3://gym/", "s3:///key"} {
		_, _, ok, err = ParseS3URL(bad)
		assert.True(t, ok, bad)
		assert.ErrorIs(t, err, ErrBadDestination, bad)
	}
}

func TestNewS3Client_AppliesConfig(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minioadmin", creds.AccessKeyID)
		return aws.Config{Region: lo.Region}, nil
	}

	var got s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&got)
		}
		return origNew(cfg, optFns...)
	}

	c, err := NewS3Client(context.Background(), S3Config{
		Region:    "us-east-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(got.BaseEndpoint))
	assert.True(t, got.UsePathStyle)
}

func TestNewS3Client_LoadError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	boom := errors.New("no config")
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, boom
	}

	_, err := NewS3Client(context.Background(), S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, boom)

	_, err = OpenSink(context.Background(), "s3://gym/roster.jsonl", S3Config{})
	assert.ErrorIs(t, err, boom)
}

func TestOpenSink_File(t *testing.T) {
	s, err := OpenSink(context.Background(), " /tmp/roster.jsonl ", S3Config{})
	require.NoError(t, err)
	assert.Equal(t, FileSink{Path: "/tmp/roster.jsonl"}, s)

	_, err = OpenSink(context.Background(), "  ", S3Config{})
	assert.ErrorIs(t, err, ErrBadDestination)
}
