// Package parquet writes flattened statistics records as Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"

	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/parquet-go/parquet-go"
)

// Bucket is one (field, key, value) cell of a yearly statistics record.
// This struct maps to the devwrapped_buckets database table.
type Bucket struct {
	// Year is the calendar year the record covers
	Year int32 `parquet:"year,snappy"`

	// Field names the bucket family, e.g. commits_by_month
	Field string `parquet:"field,snappy,dict"`

	// Key is the bucket key within the family, e.g. "3" for March
	Key string `parquet:"key,snappy"`

	// Value is the bucket value; counts are stored as whole numbers
	Value float64 `parquet:"value,snappy"`
}

// ConvertBucketRows tags flattened rows with their year.
func ConvertBucketRows(year int, rows []schema.BucketRow) []Bucket {
	out := make([]Bucket, len(rows))
	for i, r := range rows {
		out[i] = Bucket{
			Year:  int32(year),
			Field: r.Field,
			Key:   r.Key,
			Value: r.Value,
		}
	}
	return out
}

// WriteBuckets encodes data as a Parquet file onto w.
func WriteBuckets(w io.Writer, data []Bucket) error {
	// The schema is derived from the Bucket struct tags
	writer := parquet.NewGenericWriter[Bucket](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the row groups and writes the footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteBucketsParquet writes data to a Parquet file at outputPath.
func WriteBucketsParquet(data []Bucket, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteBuckets(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
