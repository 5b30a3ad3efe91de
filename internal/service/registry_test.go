package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	req := require.New(t)
	registry := NewConnectionRegistry()

	_, ok := registry.Lookup("u1")
	req.False(ok)

	registry.Register("u1", "s1")

	sessionID, ok := registry.Lookup("u1")
	req.True(ok)
	req.Equal("s1", sessionID)
}

func TestRegistry_RegisterOverwritesPriorMapping(t *testing.T) {
	req := require.New(t)
	registry := NewConnectionRegistry()

	// 同一用戶再次註冊時後寫者勝
	registry.Register("u1", "s1")
	registry.Register("u1", "s2")

	sessionID, ok := registry.Lookup("u1")
	req.True(ok)
	req.Equal("s2", sessionID)
}

func TestRegistry_UnregisterSweepsBySessionID(t *testing.T) {
	req := require.New(t)
	registry := NewConnectionRegistry()

	registry.Register("u1", "s1")
	registry.Register("u2", "s2")

	// 按會話 ID 清掃只移除映射到該會話的條目
	registry.Unregister("s1")

	_, ok := registry.Lookup("u1")
	req.False(ok)
	sessionID, ok := registry.Lookup("u2")
	req.True(ok)
	req.Equal("s2", sessionID)
}

func TestRegistry_UnregisterUnknownSessionIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := NewConnectionRegistry()

	registry.Register("u1", "s1")

	// 對不存在的會話清掃不產生任何影響
	registry.Unregister("unknown")
	registry.Unregister("unknown")

	_, ok := registry.Lookup("u1")
	req.True(ok)
}

func TestRegistry_RemoveDeletesByKeyUnconditionally(t *testing.T) {
	req := require.New(t)
	registry := NewConnectionRegistry()

	// 即使條目已被更新的會話覆蓋，按鍵刪除仍然生效
	registry.Register("u1", "s1")
	registry.Register("u1", "s2")
	registry.Remove("u1")

	_, ok := registry.Lookup("u1")
	req.False(ok)

	// 重複刪除是冪等的
	registry.Remove("u1")
	_, ok = registry.Lookup("u1")
	req.False(ok)
}
