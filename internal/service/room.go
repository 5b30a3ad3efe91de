package service

import "sync"

// RoomMembership 管理廣播組成員關係
// 每個用戶對應一個以其 userID 命名的廣播組；加入新組不會自動離開舊組，
// 調用方需要顯式調用 Leave
type RoomMembership struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool // room -> client -> bool
}

func NewRoomMembership() *RoomMembership {
	return &RoomMembership{
		rooms: make(map[string]map[*Client]bool),
	}
}

// Join 將客戶端加入指定廣播組
func (m *RoomMembership) Join(room string, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rooms[room] == nil {
		m.rooms[room] = make(map[*Client]bool)
	}
	m.rooms[room][client] = true
}

// Leave 將客戶端從指定廣播組移除，組空了就刪除該組
func (m *RoomMembership) Leave(room string, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if clients, ok := m.rooms[room]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(m.rooms, room)
		}
	}
}

// LeaveAll 將客戶端從所有廣播組移除，用於斷線清理
func (m *RoomMembership) LeaveAll(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for room, clients := range m.rooms {
		delete(clients, client)
		if len(clients) == 0 {
			delete(m.rooms, room)
		}
	}
}

// Members 返回指定廣播組的在線客戶端數量
func (m *RoomMembership) Members(room string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.rooms[room])
}
