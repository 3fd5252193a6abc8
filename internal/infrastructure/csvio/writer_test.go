package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCSV(t *testing.T) {
	data, err := BuildCSV(
		[]string{"Name", "Tags"},
		[][]string{
			{"Ada", "fintech;lagos"},
			{"Bola, Jr.", ""},
		},
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Tags", lines[0])
	assert.Equal(t, "Ada,fintech;lagos", lines[1])
	assert.Equal(t, `"Bola, Jr.",`, lines[2])
}

func TestBuildCSVWithBOM(t *testing.T) {
	data, err := BuildCSV([]string{"Name"}, nil, WithBOM(true))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])

	// round-trips through the parser
	p, err := ParseFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())
	assert.Equal(t, []string{"name"}, p.Headers())
}

func TestWriterRejectsLateHeader(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	require.NoError(t, w.WriteRecord([]string{"x"}))
	assert.Error(t, w.WriteHeader([]string{"Name"}))
}
