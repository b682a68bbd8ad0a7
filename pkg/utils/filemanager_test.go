package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ginjaninja78/asientos-xml/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutputFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "asientos.xml")

	require.NoError(t, utils.WriteOutputFile(path, []byte("first version, longer")))
	require.NoError(t, utils.WriteOutputFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.True(t, utils.FileExists(path))
}

func TestWriteOutputFile_Error(t *testing.T) {
	dir := t.TempDir()
	// a directory cannot be overwritten by a file
	err := utils.WriteOutputFile(dir, []byte("x"))
	assert.Error(t, err)
}

func TestWriteErrorLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	path, err := utils.WriteErrorLog(nil, dir)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.False(t, utils.FileExists(dir))

	path, err = utils.WriteErrorLog([]utils.ErrorLogEntry{{
		Timestamp:    time.Now(),
		FileName:     "asientos.xml",
		ErrorType:    "MissingRequiredField",
		ErrorMessage: "Cuentas 2, field 'Monto': missing 'Monto' element",
		ElementName:  "Cuentas",
		LineNumber:   2,
		FieldName:    "Monto",
		Inserted:     1,
	}}, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Total Errors: 1")
	assert.Contains(t, content, "Field:          Monto")
	assert.Contains(t, content, "Line Number:    2")
	assert.Contains(t, content, "Inserted:       1")
	assert.NotContains(t, content, "Value:")
}
