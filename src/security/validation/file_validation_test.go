package validation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType("text/csv"))
	assert.NoError(t, ValidateClientContentType("TEXT/CSV"))
	assert.NoError(t, ValidateClientContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	assert.ErrorIs(t, ValidateClientContentType("application/x-msdownload"), ErrValidationFailed)
}

func TestValidateFileContentByMagicBytes(t *testing.T) {
	t.Run("csv text passes", func(t *testing.T) {
		r := bytes.NewReader([]byte("accountNumber,amount\n123,-1.00\n"))
		detected, err := ValidateFileContentByMagicBytes(r)
		require.NoError(t, err)
		assert.Equal(t, "text/plain", detected)

		// The reader is rewound for the parser.
		buf := make([]byte, 5)
		n, _ := r.Read(buf)
		assert.Equal(t, "accou", string(buf[:n]))
	})

	t.Run("zip signature reads as workbook", func(t *testing.T) {
		r := bytes.NewReader(append([]byte{0x50, 0x4B, 0x03, 0x04}, make([]byte, 64)...))
		detected, err := ValidateFileContentByMagicBytes(r)
		require.NoError(t, err)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", detected)
	})

	t.Run("binary content rejected", func(t *testing.T) {
		png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
		_, err := ValidateFileContentByMagicBytes(bytes.NewReader(png))
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("nil file rejected", func(t *testing.T) {
		_, err := ValidateFileContentByMagicBytes(nil)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}
