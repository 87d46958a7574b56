package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, "UTC", Location("UTC").String())
	assert.True(t, IsValid("Europe/Warsaw"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))

	fallback := Location("Mars/Olympus").String()
	assert.Contains(t, []string{DefaultTimezone, "UTC"}, fallback)
}
