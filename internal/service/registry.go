package service

import "sync"

// ConnectionRegistry 維護用戶標識到當前活躍會話的全局映射
// 這是核心中唯一的共享可變狀態之一，三個操作各自原子
type ConnectionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]string // userID -> sessionID
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		sessions: make(map[string]string),
	}
}

// Register 註冊用戶的會話，覆蓋該用戶之前的任何映射（後寫者勝）
func (r *ConnectionRegistry) Register(userID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = sessionID
}

// Unregister 移除所有映射到指定會話的條目
// 用於斷線清掃：斷線時只知道會話 ID，不知道對應的用戶，冪等
func (r *ConnectionRegistry) Unregister(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, sid := range r.sessions {
		if sid == sessionID {
			delete(r.sessions, userID)
		}
	}
}

// Remove 按用戶標識無條件刪除映射，即使該條目已被更新的會話覆蓋
func (r *ConnectionRegistry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// Lookup 查詢用戶當前的會話 ID
func (r *ConnectionRegistry) Lookup(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionID, ok := r.sessions[userID]
	return sessionID, ok
}
