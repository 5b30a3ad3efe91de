package service

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chat_web/internal/models"
	"chat_web/internal/repository"
)

// 客戶端發來的事件名稱
const (
	EventJoin  = "join"
	EventLeave = "leave"
	EventSend  = "send"
)

// 服務端發出的事件名稱
const (
	EventInitialMessages = "initialMessages"
	EventMessage         = "message"
	EventAck             = "ack"
	EventServerError     = "serverError"
)

// ClientEvent 是客戶端發來的事件封包
type ClientEvent struct {
	Event string          `json:"event"`
	AckID int64           `json:"ackId,omitempty"`
	Data  json.RawMessage `json:"data"`
}

// ServerEvent 是服務端發出的事件封包
type ServerEvent struct {
	Event string      `json:"event"`
	AckID int64       `json:"ackId,omitempty"`
	Data  interface{} `json:"data"`
}

// IdentityPayload 是 join/leave 事件的負載
type IdentityPayload struct {
	UserID string `json:"userId"`
}

// SendPayload 是 send 事件的負載
type SendPayload struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

// Ack 是對 send 事件的確認回執，只發給發送者本人
type Ack struct {
	Success bool            `json:"success"`
	Message *models.Message `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	SessionID string            // 本次連接的會話 ID
	Conn      *websocket.Conn   // WebSocket 連接
	SendChan  chan *ServerEvent // 消息發送通道，用於異步傳送消息
	done      chan struct{}     // 連接關閉後通知 writePump 退出
}

// NewClient 包裝一個新的 WebSocket 連接，分配會話 ID
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		SessionID: uuid.NewString(),
		Conn:      conn,
		SendChan:  make(chan *ServerEvent, 256), // 設置緩衝大小為 256 的消息通道
		done:      make(chan struct{}),
	}
}

// ChatService 管理所有的 WebSocket 連接、會話生命週期和消息廣播
type ChatService struct {
	messageRepo repository.MessageRepository
	registry    *ConnectionRegistry
	rooms       *RoomMembership

	clientsMux sync.RWMutex     // 用於保護 clients map 的讀寫鎖
	clients    map[*Client]bool // 所有在線會話

	sendMux sync.Mutex // 串行化「持久化後廣播」，使廣播順序與提交順序一致
}

// NewChatService 創建並初始化聊天服務
func NewChatService(messageRepo repository.MessageRepository) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		registry:    NewConnectionRegistry(),
		rooms:       NewRoomMembership(),
		clients:     make(map[*Client]bool),
	}
}

// Registry 返回連接註冊表
func (s *ChatService) Registry() *ConnectionRegistry {
	return s.registry
}

// Rooms 返回廣播組成員關係
func (s *ChatService) Rooms() *RoomMembership {
	return s.rooms
}

// HandleConnection 處理新的 WebSocket 連接，阻塞直到連接關閉
func (s *ChatService) HandleConnection(conn *websocket.Conn) {
	client := NewClient(conn)
	s.addClient(client)

	// 確保連接關閉時清理資源
	defer func() {
		s.Disconnect(client)
		conn.Close()
		close(client.done)
	}()

	// 啟動讀寫處理
	go s.writePump(client)
	s.readPump(client)
}

// readPump 持續監聽並分發從客戶端接收的事件
func (s *ChatService) readPump(client *Client) {
	client.Conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		var event ClientEvent
		if err := json.Unmarshal(message, &event); err != nil {
			log.Printf("event parse error: %v", err)
			continue
		}

		switch event.Event {
		case EventJoin:
			s.Join(client, event.Data)
		case EventLeave:
			s.Leave(client, event.Data)
		case EventSend:
			s.handleSend(client, event.AckID, event.Data)
		default:
			log.Printf("unknown event %q from session %s", event.Event, client.SessionID)
		}
	}
}

// writePump 處理向客戶端發送事件的邏輯
func (s *ChatService) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

			w, err := client.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			eventBytes, err := json.Marshal(event)
			if err != nil {
				log.Printf("event encoding error: %v", err)
				continue
			}

			if _, err := w.Write(eventBytes); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-client.done:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// Join 處理 join 事件：綁定用戶身份、加入廣播組並回放歷史消息
// userId 缺失時記錄日誌並忽略，不向調用方返回錯誤
func (s *ChatService) Join(client *Client, data json.RawMessage) {
	var payload IdentityPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("join payload parse error: %v", err)
		return
	}
	if payload.UserID == "" {
		log.Printf("join without userId from session %s, ignored", client.SessionID)
		return
	}

	// 後寫者勝：同一用戶的新會話覆蓋舊映射，但不關閉舊連接
	s.registry.Register(payload.UserID, client.SessionID)
	s.rooms.Join(payload.UserID, client)

	// 歷史回放只發給本會話，不廣播
	messages, err := s.messageRepo.FindAll()
	if err != nil {
		log.Printf("failed to load message history: %v", err)
		s.deliver(client, &ServerEvent{Event: EventServerError, Data: "failed to load message history"})
		return
	}

	// 存儲按時間降序返回，回放前反轉為升序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	if messages == nil {
		messages = []models.Message{}
	}

	s.deliver(client, &ServerEvent{Event: EventInitialMessages, Data: messages})
}

// Leave 處理 leave 事件：退出廣播組並按 userId 刪除註冊表條目
// 注意這裡是按鍵無條件刪除，即使該條目已被同一用戶更新的會話覆蓋
func (s *ChatService) Leave(client *Client, data json.RawMessage) {
	var payload IdentityPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("leave payload parse error: %v", err)
		return
	}
	if payload.UserID == "" {
		log.Printf("leave without userId from session %s, ignored", client.SessionID)
		return
	}

	s.rooms.Leave(payload.UserID, client)
	s.registry.Remove(payload.UserID)
}

// Disconnect 處理傳輸層斷線：清掃註冊表中映射到該會話的所有條目
// 斷線時不知道會話對應的用戶，這是唯一按值反查的地方
func (s *ChatService) Disconnect(client *Client) {
	s.registry.Unregister(client.SessionID)
	s.rooms.LeaveAll(client)
	s.removeClient(client)
}

// handleSend 處理 send 事件並向發送者回執確認
func (s *ChatService) handleSend(client *Client, ackID int64, data json.RawMessage) {
	var payload SendPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("send payload parse error: %v", err)
		s.deliver(client, &ServerEvent{Event: EventAck, AckID: ackID, Data: Ack{
			Success: false,
			Error:   "incomplete or empty message data",
		}})
		return
	}

	ack := s.SendMessage(payload.UserID, payload.Username, payload.Text)
	// 發送者已斷線時回執被丟棄，消息本身照常存儲並廣播
	s.deliver(client, &ServerEvent{Event: EventAck, AckID: ackID, Data: ack})
}

// SendMessage 是消息廣播管道：校驗、持久化，然後向所有在線會話扇出
// 廣播絕不會發生在持久化成功之前
func (s *ChatService) SendMessage(userID, username, text string) Ack {
	trimmed := strings.TrimSpace(text)
	if userID == "" || username == "" || trimmed == "" {
		return Ack{Success: false, Error: "incomplete or empty message data"}
	}

	// 持久化與廣播作為一個串行段執行，保證廣播順序等於提交順序
	s.sendMux.Lock()
	defer s.sendMux.Unlock()

	message := models.NewMessage(userID, username, trimmed)
	if err := s.messageRepo.Create(&message); err != nil {
		log.Printf("failed to store message: %v", err)
		return Ack{Success: false, Error: "failed to store message"}
	}

	// 全局扇出，不按廣播組過濾
	s.broadcast(&ServerEvent{Event: EventMessage, Data: message})

	return Ack{Success: true, Message: &message}
}

// broadcast 向所有在線會話發送事件
func (s *ChatService) broadcast(event *ServerEvent) {
	s.clientsMux.RLock()
	clients := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.clientsMux.RUnlock()

	for _, client := range clients {
		s.deliver(client, event)
	}
}

// deliver 將事件加入客戶端的發送隊列，隊列滿了就關閉連接
func (s *ChatService) deliver(client *Client, event *ServerEvent) {
	select {
	case client.SendChan <- event:
		// 事件成功加入發送隊列
	default:
		// 客戶端消息隊列已滿，關閉連接
		log.Printf("send queue full, closing session %s", client.SessionID)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

// addClient 安全地添加新的客戶端連接
func (s *ChatService) addClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	s.clients[client] = true
}

// removeClient 安全地移除客戶端連接
func (s *ChatService) removeClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	delete(s.clients, client)
}

// OnlineClients 獲取當前在線會話數量
func (s *ChatService) OnlineClients() int {
	s.clientsMux.RLock()
	defer s.clientsMux.RUnlock()

	return len(s.clients)
}
