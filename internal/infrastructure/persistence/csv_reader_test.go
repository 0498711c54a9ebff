package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultrisk/calibration/internal/infrastructure/persistence"
	"github.com/vaultrisk/calibration/pkg/errors"
	"github.com/vaultrisk/calibration/pkg/logger"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exploits.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_AliasedColumns(t *testing.T) {
	reader := persistence.NewCSVReader(logger.NewNoopLogger())

	path := writeCSV(t, "name,date,classification,target_type,amount_m,chain\n"+
		"Protocol A,2021-08-10,reentrancy,lending,12.5,ethereum\n")

	rows, err := reader.Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Protocol A", row.Name)
	assert.Equal(t, "2021-08-10", row.Date)
	assert.False(t, row.HasTechnique)
	assert.Equal(t, "reentrancy", row.Classification)
	assert.False(t, row.HasTargetType)
	assert.Equal(t, "lending", row.TargetTypeAlt)
	assert.False(t, row.HasAmount)
	assert.True(t, row.HasAmountM)
	assert.Equal(t, "12.5", row.AmountM)
}

func TestRead_PrimaryColumns(t *testing.T) {
	reader := persistence.NewCSVReader(logger.NewNoopLogger())

	path := writeCSV(t, "name_lower,date,technique,targetType,amount\n"+
		"protocol b,2022-01-01,oracle manipulation,dex,2500000\n")

	rows, err := reader.Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Empty(t, row.Name)
	assert.Equal(t, "protocol b", row.NameLower)
	assert.True(t, row.HasTechnique)
	assert.Equal(t, "oracle manipulation", row.Technique)
	assert.True(t, row.HasTargetType)
	assert.Equal(t, "dex", row.TargetType)
	assert.True(t, row.HasAmount)
	assert.Equal(t, "2500000", row.Amount)
}

func TestRead_MissingColumnsDefault(t *testing.T) {
	reader := persistence.NewCSVReader(logger.NewNoopLogger())

	path := writeCSV(t, "name,date\nProtocol C,2020-05-05\n")

	rows, err := reader.Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.False(t, row.HasTechnique)
	assert.False(t, row.HasAmount)
	assert.False(t, row.HasAmountM)
	assert.Empty(t, row.Classification)
}

func TestRead_MissingFile(t *testing.T) {
	reader := persistence.NewCSVReader(logger.NewNoopLogger())

	_, err := reader.Read(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingFile, errors.CodeOf(err))
}

func TestRead_ShortLinesTolerated(t *testing.T) {
	reader := persistence.NewCSVReader(logger.NewNoopLogger())

	path := writeCSV(t, "name,date,technique\nProtocol D,2023-02-02,flash loan\nProtocol E\n")

	rows, err := reader.Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Protocol E", rows[1].Name)
	assert.Empty(t, rows[1].Technique)
}
