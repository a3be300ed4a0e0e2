package helper

import (
	"testing"

	"leonine/config"

	"github.com/stretchr/testify/assert"
)

func TestRunner_UnknownAction(t *testing.T) {
	err := Runner(&config.Config{}, "sideways")

	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestActionsRegistered(t *testing.T) {
	for _, action := range []string{ActionUp, ActionDown, ActionStepUp, ActionDrop, ActionVersion} {
		assert.Contains(t, actions, action)
	}
}
