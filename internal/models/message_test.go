package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	req := require.New(t)

	before := time.Now().UnixMilli()
	first := NewMessage("u1", "alice", "hi")
	second := NewMessage("u1", "alice", "hi")
	after := time.Now().UnixMilli()

	req.NotEmpty(first.ID)
	req.NotEqual(first.ID, second.ID)
	req.Equal("u1", first.UserID)
	req.Equal("alice", first.Username)
	req.Equal("hi", first.Text)
	req.GreaterOrEqual(first.Timestamp, before)
	req.LessOrEqual(first.Timestamp, after)
}
