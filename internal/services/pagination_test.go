package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Size: DefaultPageSize}, Page{}.Normalize())
	assert.Equal(t, Page{Number: 3, Size: MaxPageSize}, Page{Number: 3, Size: 500}.Normalize())
	assert.Equal(t, Page{Number: 1, Size: 5}, Page{Number: -2, Size: 5}.Normalize())
	assert.Equal(t, 40, Page{Number: 3, Size: 20}.Offset())
}
