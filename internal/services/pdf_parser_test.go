package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInspectRejectsEmptyInput(t *testing.T) {
	info, err := NewPDFParserService().Inspect(nil)
	assert.Error(t, err)
	assert.Nil(t, info)
}

func TestInspectRejectsGarbage(t *testing.T) {
	info, err := NewPDFParserService().Inspect([]byte("this is not a pdf at all"))
	assert.Error(t, err)
	assert.Nil(t, info)
}
