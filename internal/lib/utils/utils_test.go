package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]int{"applied": 7}))
	assert.Equal(t, "{\n\t\"applied\": 7\n}\n", buf.String())

	assert.Error(t, PrintJSON(&buf, make(chan int)))
}
