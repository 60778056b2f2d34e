package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")

	calls := 0
	err := Spin(&buf, "Validating", func() error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Empty(t, buf.String())
}

func TestSpinnerModel(t *testing.T) {
	m := newSpinnerModel("Validating ./deploy")
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Validating ./deploy...")

	tick := m.spinner.Tick()
	_, cmd := m.Update(tick)
	assert.NotNil(t, cmd)

	boom := errors.New("boom")
	_, cmd = m.Update(spinnerDoneMsg{err: boom})
	assert.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.Equal(t, boom, m.err)
	assert.Empty(t, m.View())

	// Ticks after completion stop the animation
	_, cmd = m.Update(tick)
	assert.Nil(t, cmd)
}
