package monitor

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Stream 把模拟事件广播给 websocket 订阅者，是 runner 的观测面，
// 决策核心本身不做任何网络 I/O。
type Stream struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewStream() *Stream {
	return &Stream{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 本地监控端口，不做来源校验
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP 升级为 websocket 并保持连接直到对端关闭。
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()

	// 读循环只为感知断开
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Pump 消费 Publisher 的事件并广播，ctx 结束后退出。
func (s *Stream) Pump(ctx context.Context, pub *Publisher) {
	quotes := pub.SubscribeQuotes()
	marks := pub.SubscribeMarks()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-quotes:
				s.broadcast(map[string]interface{}{"type": "quote", "data": e})
			case e := <-marks:
				s.broadcast(map[string]interface{}{"type": "mark", "data": e})
			}
		}
	}()
}

func (s *Stream) broadcast(v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		if err := conn.WriteJSON(v); err != nil {
			_ = conn.Close()
			delete(s.conns, conn)
		}
	}
}

func (s *Stream) drop(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = conn.Close()
	delete(s.conns, conn)
}
