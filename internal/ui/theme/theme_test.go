package theme

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestOptionColor(t *testing.T) {
	s := OptionColor("#FF0000")
	assert.Equal(t, lipgloss.Color("#FF0000"), s.GetForeground())
	assert.Equal(t, lipgloss.NoColor{}, s.GetBackground())
	assert.True(t, s.GetBold())

	assert.Equal(t, Body, OptionColor(""))
}
