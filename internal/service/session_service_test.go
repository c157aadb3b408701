package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubInvalidator struct {
	calls int
}

func (s *stubInvalidator) Invalidate() { s.calls++ }

func TestSessionLifecycle(t *testing.T) {
	inv := &stubInvalidator{}
	sessions := NewSessionService(inv, nil)

	_, active := sessions.Current()
	assert.False(t, active)

	sessions.Start("6504001")
	id, active := sessions.Current()
	assert.True(t, active)
	assert.Equal(t, "6504001", id)

	sessions.Clear()
	_, active = sessions.Current()
	assert.False(t, active)
	assert.Equal(t, 1, inv.calls, "logout drops the document cache")
}

func TestSessionStartReplacesPrevious(t *testing.T) {
	sessions := NewSessionService(nil, nil)

	sessions.Start("6504001")
	sessions.Start("6504002")

	id, active := sessions.Current()
	assert.True(t, active)
	assert.Equal(t, "6504002", id)
}
