package backends

import (
	"context"
	"path/filepath"
	"testing"

	"fitscore/internal/config"
	"fitscore/internal/excel"
	"fitscore/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, closer, err := Open(ctx, &config.Config{StoreBackend: config.BackendExcel, ExcelPath: filepath.Join(t.TempDir(), "f.xlsx")})
	require.NoError(t, err)
	assert.IsType(t, &excel.EntryFile{}, st)
	assert.NoError(t, closer.Close())

	st, _, err = Open(ctx, &config.Config{StoreBackend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, st)

	_, _, err = Open(ctx, &config.Config{StoreBackend: config.BackendGSheets, GoogleCredentialsPath: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	_, _, err = Open(ctx, &config.Config{StoreBackend: "csv"})
	assert.Error(t, err)
}
