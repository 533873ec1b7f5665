package migrations

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsAreOrdered(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{
		"00001_create_trivia_schema.sql",
		"00002_seed_sample_questions.sql",
	}, names)

	for _, name := range names {
		body, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), name)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), name)
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := Run(context.Background(), nil, FS, ".", "sideways")
	assert.ErrorContains(t, err, `unknown migration command "sideways"`)
}
