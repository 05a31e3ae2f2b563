package csvutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEscapes(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []string{"name", "note"}, [][]string{
		{"Mug", "plain"},
		{`Tee, "Large"`, "has\nnewline"},
	})
	require.NoError(t, err)

	assert.Equal(t, "name,note\nMug,plain\n\"Tee, \"\"Large\"\"\",\"has\nnewline\"\n", buf.String())
}

func TestReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"name", "email"}, [][]string{
		{`Ann "A" Lee`, "ann@example.com"},
	}))

	records, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `Ann "A" Lee`, records[0]["name"])
	assert.Equal(t, "ann@example.com", records[0]["email"])
}

func TestReadTrimsAndFillsShortRows(t *testing.T) {
	in := " name , email ,phone\n  Bob ,  bob@example.com\n\n'x',y,z\n"
	records, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Bob", records[0]["name"])
	assert.Equal(t, "bob@example.com", records[0]["email"])
	assert.Equal(t, "", records[0]["phone"])
	assert.Equal(t, "z", records[1]["phone"])
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)
}
