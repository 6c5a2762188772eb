// Package chat drives the shopping-assistant widget: a lazily started
// remote session and an append-only transcript.
package chat

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
)

const (
	Greeting      = "Hello! I'm your AI shopping assistant. How can I help you find products today?"
	ConnectFailed = "Sorry, I'm having trouble connecting. Please try again later."
	SendFailed    = "Sorry, I couldn't process your message. Please try again."
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

func (m Message) FromUser() bool { return m.Role == RoleUser }

type Assistant interface {
	StartSession(ctx context.Context) (string, error)
	SendMessage(ctx context.Context, sessionID, message string) (string, error)
}

type Options struct {
	Logger *zap.Logger
	// OnAppend runs after every transcript append, outside the session lock.
	OnAppend func(Message)
}

// Session is one chat widget. The session id lives only as long as the
// Session value.
type Session struct {
	mu         sync.Mutex
	visible    bool
	starting   bool
	sessionID  string
	input      string
	transcript []Message

	assistant Assistant
	onAppend  func(Message)
	logger    *zap.Logger
}

func NewSession(assistant Assistant, opts Options) *Session {
	s := &Session{
		assistant: assistant,
		onAppend:  opts.OnAppend,
		logger:    logging.OrNop(opts.Logger),
	}
	if s.onAppend == nil {
		s.onAppend = func(Message) {}
	}
	return s
}

// Open toggles the widget and returns the new visibility. Becoming visible
// without a session starts one; a start that failed earlier is attempted
// again on the next open.
func (s *Session) Open(ctx context.Context) bool {
	s.mu.Lock()
	s.visible = !s.visible
	visible := s.visible
	start := visible && s.sessionID == "" && !s.starting
	if start {
		s.starting = true
	}
	s.mu.Unlock()

	if start {
		s.start(ctx)
	}
	return visible
}

func (s *Session) start(ctx context.Context) {
	log := logging.WithCtx(ctx, s.logger)

	id, err := s.assistant.StartSession(ctx)

	s.mu.Lock()
	s.starting = false
	var msg Message
	if err != nil {
		log.Error("error initializing chat", zap.Error(err))
		msg = Message{Role: RoleAssistant, Text: ConnectFailed}
	} else {
		log.Info("chat session initialized", zap.String("session_id", id))
		s.sessionID = id
		msg = Message{Role: RoleAssistant, Text: Greeting}
	}
	s.transcript = append(s.transcript, msg)
	s.mu.Unlock()

	s.onAppend(msg)
}

// Send posts text to the assistant. Blank text, or no session, does nothing.
// Failures are reported in the transcript, never to the caller.
func (s *Session) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if text == "" || s.sessionID == "" {
		s.mu.Unlock()
		return
	}
	s.input = ""
	sid := s.sessionID
	userMsg := Message{Role: RoleUser, Text: text}
	s.transcript = append(s.transcript, userMsg)
	s.mu.Unlock()

	s.onAppend(userMsg)

	reply, err := s.assistant.SendMessage(ctx, sid, text)
	msg := Message{Role: RoleAssistant, Text: reply}
	if err != nil {
		logging.WithCtx(ctx, s.logger).Error("error sending message", zap.Error(err))
		msg.Text = SendFailed
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, msg)
	s.mu.Unlock()

	s.onAppend(msg)
}

// SetInput stores the draft text of the input field.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// SendInput sends the current draft.
func (s *Session) SendInput(ctx context.Context) {
	s.Send(ctx, s.Input())
}

func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

func (s *Session) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}
