package testutil

import (
	"errors"
	"sync"

	tele "gopkg.in/telebot.v3"
)

// SentMessage is a message recorded by FakeMessenger
type SentMessage struct {
	Text    string
	Options []interface{}
}

// FakeMessenger records bot API calls and assigns message IDs
type FakeMessenger struct {
	mu      sync.Mutex
	nextID  int
	Sent    []SentMessage
	Edited  []SentMessage
	Deleted []int

	// EditErr is returned by Edit when set
	EditErr error
}

func (m *FakeMessenger) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	text, ok := what.(string)
	if !ok {
		return nil, errors.New("unsupported content")
	}
	chat, _ := to.(*tele.Chat)
	m.nextID++
	m.Sent = append(m.Sent, SentMessage{Text: text, Options: opts})
	return &tele.Message{ID: m.nextID, Chat: chat, Text: text}, nil
}

func (m *FakeMessenger) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.EditErr != nil {
		return nil, m.EditErr
	}
	text, _ := what.(string)
	m.Edited = append(m.Edited, SentMessage{Text: text, Options: opts})
	edited := *msg.(*tele.Message)
	edited.Text = text
	return &edited, nil
}

func (m *FakeMessenger) Delete(msg tele.Editable) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deleted = append(m.Deleted, msg.(*tele.Message).ID)
	return nil
}

// SentTexts returns the text of every sent message
func (m *FakeMessenger) SentTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	texts := make([]string, 0, len(m.Sent))
	for _, s := range m.Sent {
		texts = append(texts, s.Text)
	}
	return texts
}

// FakeContext is a tele.Context for one incoming update.
// Methods not overridden here panic through the nil embedded interface.
type FakeContext struct {
	tele.Context

	ChatValue     *tele.Chat
	SenderValue   *tele.User
	TextValue     string
	CallbackValue *tele.Callback
	MessageValue  *tele.Message

	Sent      []SentMessage
	Responses []*tele.CallbackResponse
	Deletes   int
}

// NewFakeContext creates a context for a text message in chatID
func NewFakeContext(chatID int64, text string) *FakeContext {
	return &FakeContext{
		ChatValue:    &tele.Chat{ID: chatID},
		SenderValue:  &tele.User{ID: chatID, Username: "student"},
		TextValue:    text,
		MessageValue: &tele.Message{ID: 1, Text: text},
	}
}

// NewFakeCallback creates a context for an inline button press in chatID
func NewFakeCallback(chatID int64, unique, data string) *FakeContext {
	c := NewFakeContext(chatID, "")
	c.CallbackValue = &tele.Callback{ID: "cb", Unique: unique, Data: data}
	return c
}

func (c *FakeContext) Chat() *tele.Chat         { return c.ChatValue }
func (c *FakeContext) Sender() *tele.User       { return c.SenderValue }
func (c *FakeContext) Text() string             { return c.TextValue }
func (c *FakeContext) Callback() *tele.Callback { return c.CallbackValue }
func (c *FakeContext) Message() *tele.Message   { return c.MessageValue }

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	text, _ := what.(string)
	c.Sent = append(c.Sent, SentMessage{Text: text, Options: opts})
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		c.Responses = append(c.Responses, nil)
		return nil
	}
	c.Responses = append(c.Responses, resp[0])
	return nil
}

func (c *FakeContext) Delete() error {
	c.Deletes++
	return nil
}

// LastResponse returns the most recent callback answer, nil when it was empty
func (c *FakeContext) LastResponse() *tele.CallbackResponse {
	if len(c.Responses) == 0 {
		return nil
	}
	return c.Responses[len(c.Responses)-1]
}
