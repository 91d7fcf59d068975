package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []schema.BucketRow {
	return []schema.BucketRow{
		{Field: schema.FieldTotals, Key: "total_commits", Value: 42},
		{Field: schema.FieldCommitsByMonth, Key: "1", Value: 30},
		{Field: schema.FieldCommitsByMonth, Key: "2", Value: 12},
		{Field: schema.FieldLanguages, Key: "Go", Value: 0.75},
	}
}

func TestBucketStructTags(t *testing.T) {
	s := parquet.SchemaOf(Bucket{})
	for _, colName := range []string{"year", "field", "key", "value"} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestConvertBucketRows(t *testing.T) {
	buckets := ConvertBucketRows(2024, sampleRows())
	require.Len(t, buckets, 4)
	assert.Equal(t, Bucket{Year: 2024, Field: "languages", Key: "Go", Value: 0.75}, buckets[3])
}

func readBuckets(t *testing.T, r io.ReaderAt) []Bucket {
	t.Helper()
	reader := parquet.NewGenericReader[Bucket](r)
	defer func() { _ = reader.Close() }()

	rows := make([]Bucket, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestWriteBuckets(t *testing.T) {
	data := ConvertBucketRows(2024, sampleRows())

	var buf bytes.Buffer
	require.NoError(t, WriteBuckets(&buf, data))
	assert.Equal(t, data, readBuckets(t, bytes.NewReader(buf.Bytes())))
}

func TestWriteBucketsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "buckets.parquet")
	data := ConvertBucketRows(2023, sampleRows())

	require.NoError(t, WriteBucketsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()
	assert.Equal(t, data, readBuckets(t, file))
}

func TestWriteBucketsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteBucketsParquet(nil, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size(), "an empty file still carries the footer")
}

func TestWriteBucketsParquet_InvalidPath(t *testing.T) {
	err := WriteBucketsParquet(nil, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}
