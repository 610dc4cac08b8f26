package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/impact/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		schema  *parquet.Schema
		columns []string
	}{
		{"branch", parquet.SchemaOf(new(Branch)), []string{"repo", "branch", "authors", "indexed_at"}},
		{"author", parquet.SchemaOf(new(Author)), []string{
			"repo", "branch", "author_id", "name", "email",
			"revisions_all", "revisions_current_period", "first_action", "last_action",
		}},
		{"ranked", parquet.SchemaOf(new(Ranked)), []string{"rank", "id", "name", "count"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.schema)
			for _, colName := range tt.columns {
				_, ok := tt.schema.Lookup(colName)
				assert.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

func TestConvertAuthors(t *testing.T) {
	first := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	authors := []schema.AuthorStats{
		{ID: 7, Name: "Alice", Email: "alice@example.com", RevisionsAll: 10, RevisionsCurrentPeriod: 2, FirstAction: first, LastAction: first.Add(time.Hour)},
		{ID: 9, Name: "Bob", RevisionsAll: 1},
	}

	rows := ConvertAuthors("widgets", "main", authors)
	require.Len(t, rows, 2)
	assert.Equal(t, "widgets", rows[0].Repo)
	assert.Equal(t, "main", rows[0].Branch)
	assert.Equal(t, int64(7), rows[0].AuthorID)
	assert.Equal(t, int32(10), rows[0].RevisionsAll)
	assert.Equal(t, int32(2), rows[0].RevisionsCurrentPeriod)
	require.NotNil(t, rows[0].FirstAction)
	assert.Equal(t, first, *rows[0].FirstAction)
	assert.Nil(t, rows[1].FirstAction)
	assert.Nil(t, rows[1].LastAction)
}

func TestConvertPage(t *testing.T) {
	page := schema.ContributorsPage{
		Page:    3,
		Pages:   3,
		PerPage: 25,
		Authors: []schema.AuthorRow{{ID: 1, Name: "Alice", Count: 4}, {ID: 2, Name: "Bob", Count: 3}},
	}
	rows := ConvertPage(page)
	require.Len(t, rows, 2)
	assert.Equal(t, int32(51), rows[0].Rank)
	assert.Equal(t, int32(52), rows[1].Rank)
	assert.Equal(t, int32(3), rows[1].Count)
}

func TestWriteFileRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "authors.parquet")
	last := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	data := []Author{
		{Repo: "widgets", Branch: "main", AuthorID: 1, Name: "Alice", RevisionsAll: 5, LastAction: &last},
		{Repo: "widgets", Branch: "main", AuthorID: 2, Name: "Bob", RevisionsAll: 3},
	}

	require.NoError(t, WriteFile(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[Author](file)
	defer func() { _ = reader.Close() }()

	readData := make([]Author, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)
	for i := range data {
		assert.Equal(t, data[i].AuthorID, readData[i].AuthorID)
		assert.Equal(t, data[i].Name, readData[i].Name)
		assert.Equal(t, data[i].RevisionsAll, readData[i].RevisionsAll)
	}
	require.NotNil(t, readData[0].LastAction)
	assert.WithinDuration(t, last, *readData[0].LastAction, time.Millisecond)
	assert.Nil(t, readData[1].LastAction)
}

func TestWriteRowsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, []Branch{}))
	assert.Greater(t, buf.Len(), 0, "an empty file still carries a footer")
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile([]Branch{{Repo: "r"}}, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}

func TestConvertImpact(t *testing.T) {
	data := schema.ImpactData{
		Data: []schema.ImpactEntry{
			{Href: "/author/1?repo=widgets", Count: 9},
			{Href: "/author/2?repo=widgets", Count: 4},
		},
		AuthorCount: 2,
	}
	bars := ConvertImpact(data)
	require.Len(t, bars, 2)
	assert.Equal(t, Bar{Position: 1, Href: "/author/2?repo=widgets", Count: 4}, bars[1])

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, bars))
	reader := parquet.NewGenericReader[Bar](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(2), reader.NumRows())
}
