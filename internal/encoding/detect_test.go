package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/smartbooks/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with accented characters should pass through unchanged.
	input := "date,type,purpose\n2024-01-05,expense,Cartão refeição\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 encoded "Cartão\n": ã = 0xE3.
	input := []byte{'C', 'a', 'r', 't', 0xE3, 'o', '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Cartão\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// The UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("date,type,amount\n")

	r, err := encoding.NewUTF8Reader(bytes.NewReader(append(bom, content...)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "date,type,amount\n", string(got))
}
