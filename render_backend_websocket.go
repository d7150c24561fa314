// render_backend_websocket.go - Websocket render sink streaming frames to browser clients

/*
ScopeEngine - Real-time telemetry engine for microcontroller debug visualisation
(logic analyzer, XY scope, spectrogram and spectrum analyzer windows)

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ScopeEngine
License: GPLv3 or later
*/

package main

import (
	"encoding/binary"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const DEFAULT_WS_LISTEN = "127.0.0.1:8437"

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16384,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebsocketSink serves encoded frames to any number of browser clients.
// Each client has a one-slot mailbox: a slow client is coalesced to the
// newest frame, never allowed to back-pressure ingestion.
type WebsocketSink struct {
	addr string

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	server  *http.Server
	started bool

	frameCount uint64
}

type wsClient struct {
	conn    *websocket.Conn
	mailbox chan []byte
	closed  chan struct{}
}

func NewWebsocketSink(addr string) *WebsocketSink {
	if addr == "" {
		addr = DEFAULT_WS_LISTEN
	}
	return &WebsocketSink{
		addr:    addr,
		clients: make(map[*wsClient]struct{}),
	}
}

func (s *WebsocketSink) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/stream", s.handleStream)
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return &RenderError{Operation: "listen", Details: s.addr, Err: err}
	}
	s.server = &http.Server{Handler: mux}
	s.started = true
	go func() {
		if serveErr := s.server.Serve(ln); serveErr != http.ErrServerClosed {
			log.Error("websocket sink stopped", "err", serveErr)
		}
	}()
	log.Info("websocket sink listening", "addr", s.addr)
	return nil
}

func (s *WebsocketSink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	s.started = false
	for c := range s.clients {
		close(c.closed)
		delete(s.clients, c)
	}
	return s.server.Close()
}

func (s *WebsocketSink) Close() error { return s.Stop() }

func (s *WebsocketSink) IsStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *WebsocketSink) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := &wsClient{
		conn:    conn,
		mailbox: make(chan []byte, 1),
		closed:  make(chan struct{}),
	}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	log.Info("scope client connected", "remote", r.RemoteAddr)

	go s.writeLoop(c)
	// Drain (and ignore) client messages so pings keep the connection alive.
	go func() {
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				s.dropClient(c)
				return
			}
		}
	}()
}

func (s *WebsocketSink) writeLoop(c *wsClient) {
	for {
		select {
		case <-c.closed:
			c.conn.Close()
			return
		case buf := <-c.mailbox:
			if err := c.conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
				s.dropClient(c)
				c.conn.Close()
				return
			}
		}
	}
}

func (s *WebsocketSink) dropClient(c *wsClient) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.closed)
	}
	s.mu.Unlock()
}

func (s *WebsocketSink) Clear() error {
	s.broadcast([]byte{wsMsgClear})
	return nil
}

func (s *WebsocketSink) SubmitFrame(frame *RenderFrame) error {
	atomic.AddUint64(&s.frameCount, 1)
	s.broadcast(encodeWSFrame(frame))
	return nil
}

func (s *WebsocketSink) Present() error { return nil }

func (s *WebsocketSink) GetFrameCount() uint64 {
	return atomic.LoadUint64(&s.frameCount)
}

// broadcast delivers latest-wins into every client mailbox.
func (s *WebsocketSink) broadcast(buf []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.mailbox <- buf:
		default:
			select {
			case <-c.mailbox:
			default:
			}
			select {
			case c.mailbox <- buf:
			default:
			}
		}
	}
}

// Websocket message types
const (
	wsMsgFrame = 1
	wsMsgClear = 2
)

// encodeWSFrame packs a frame into the little-endian binary layout consumed
// by the browser viewer: header, point list, cell list, palette.
func encodeWSFrame(f *RenderFrame) []byte {
	buf := make([]byte, 0, 16+len(f.Points)*12+len(f.Cells)*5+len(f.Palette)*4)
	buf = append(buf, wsMsgFrame, byte(f.Mode))
	var flags byte
	if f.Triggered {
		flags |= 1
	}
	buf = append(buf, flags, 0)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(f.Width))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(f.Height))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(f.Seq))

	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(f.Points)))
	for _, p := range f.Points {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(p.X))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(p.Y))
		buf = binary.LittleEndian.AppendUint32(buf, p.Color<<8|uint32(p.Opacity))
	}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(f.Cells)))
	for _, c := range f.Cells {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(c.Column))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(c.Row))
		buf = append(buf, c.ColorIndex)
	}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(f.Palette)))
	for _, p := range f.Palette {
		buf = binary.LittleEndian.AppendUint32(buf, p)
	}
	return buf
}
