package service

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"campusportal/internal/clock"
	"campusportal/internal/domain"

	"go.uber.org/zap"
)

// Placeholder profile used for logins, there is no real credential check
const (
	placeholderName  = "John Doe"
	placeholderEmail = "john.doe@university.edu"
)

const (
	msgFillAllFields  = "Please fill in all fields"
	msgInvalidDueDate = "Please enter the date as YYYY-MM-DD HH:MM"
	msgReminderAdded  = "Reminder added successfully!"
	chatGreeting      = "Hello! I'm your university assistant. How can I help you today?"
)

// Presenter displays screens and notices to the user
type Presenter interface {
	Show(screen domain.Screen)
	Notify(notice domain.Notice)
}

// SessionOptions tunes the loading affordances of a session
type SessionOptions struct {
	RenderDelay time.Duration
	ReplyDelay  time.Duration
	// AutoResume opens the portal when a remembered identity is restored
	AutoResume bool
}

// DefaultSessionOptions returns the standard delays
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		RenderDelay: 300 * time.Millisecond,
		ReplyDelay:  time.Second,
	}
}

// Session is the navigation controller of one user.
// Operations and timer callbacks are serialized by mu.
type Session struct {
	identities *IdentityStore
	renderer   *Renderer
	responder  *Responder
	presenter  Presenter
	scheduler  clock.Scheduler
	logger     *zap.Logger
	opts       SessionOptions

	mu         sync.Mutex
	state      domain.ViewState
	identity   *domain.Identity
	generation uint64
	render     clock.Timer
	replies    []clock.Timer
	transcript []domain.ChatMessage
	typing     int
}

// NewSession creates a logged-out session
func NewSession(
	identities *IdentityStore,
	renderer *Renderer,
	responder *Responder,
	presenter Presenter,
	scheduler clock.Scheduler,
	logger *zap.Logger,
	opts SessionOptions,
) *Session {
	return &Session{
		identities: identities,
		renderer:   renderer,
		responder:  responder,
		presenter:  presenter,
		scheduler:  scheduler,
		logger:     logger.With(zap.String("slot", identities.Key())),
		opts:       opts,
		state:      domain.LoginState(),
	}
}

// State returns the current view state
func (s *Session) State() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Identity returns a copy of the current identity, or nil
func (s *Session) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

// Authenticated reports whether the portal is open
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Authenticated()
}

// Transcript returns a copy of the chat messages
func (s *Session) Transcript() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage(nil), s.transcript...)
}

// Start restores the remembered identity and presents the current view
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.restore()
	if !s.state.Authenticated() {
		s.show()
	}
	return err
}

// RestoreSession loads the remembered identity. It only opens the portal
// when AutoResume is set.
func (s *Session) RestoreSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restore()
}

func (s *Session) restore() error {
	identity, err := s.identities.Load()
	if err != nil {
		s.logger.Error("Failed to restore session", zap.Error(err))
		return err
	}
	if identity == nil {
		return nil
	}

	s.identity = identity
	s.logger.Info("Remembered identity restored",
		zap.String("student_id", identity.ID),
		zap.Bool("auto_resume", s.opts.AutoResume),
	)

	if s.opts.AutoResume {
		s.enterPortal()
	}
	return nil
}

// Refresh presents the current view again
func (s *Session) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.show()
}

// Dispatch routes a UI event to the matching operation
func (s *Session) Dispatch(ev domain.Event) error {
	switch e := ev.(type) {
	case domain.ClickEvent:
		return s.click(e)
	case domain.SubmitEvent:
		return s.submit(e)
	}
	return fmt.Errorf("unsupported event %T", ev)
}

func (s *Session) click(e domain.ClickEvent) error {
	switch e.Target {
	case domain.TargetLogout:
		return s.Logout()
	case domain.TargetMenuItem:
		return s.Navigate(e.Page)
	case domain.TargetQuickQuery:
		return s.SendChat(e.Query)
	case domain.TargetShowSignup:
		s.ShowSignup()
		return nil
	case domain.TargetShowLogin:
		s.ShowLogin()
		return nil
	case domain.TargetCancel:
		s.Refresh()
		return nil
	}
	return fmt.Errorf("unhandled click target %q", e.Target)
}

func (s *Session) submit(e domain.SubmitEvent) error {
	f := e.Fields
	switch e.Form {
	case domain.FormLogin:
		return s.SubmitLogin(f[domain.FieldStudentID], f[domain.FieldPassword], parseRemember(f[domain.FieldRememberMe]))
	case domain.FormSignup:
		return s.SubmitSignup(f[domain.FieldFullName], f[domain.FieldEmail], f[domain.FieldNewStudentID], f[domain.FieldNewPassword], f[domain.FieldConfirmPassword])
	case domain.FormReminder:
		return s.SubmitReminder(f[domain.FieldReminderTitle], f[domain.FieldReminderDesc], f[domain.FieldReminderDate])
	}
	return fmt.Errorf("unhandled form %q", e.Form)
}

// parseRemember reads a checkbox-like value
func parseRemember(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "on":
		return true
	}
	remember, _ := strconv.ParseBool(value)
	return remember
}

// SubmitLogin accepts any non-empty credentials
func (s *Session) SubmitLogin(studentID, password string, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireFields(domain.FormLogin, map[string]string{
		domain.FieldStudentID: studentID,
		domain.FieldPassword:  password,
	}); err != nil {
		return s.reject(err)
	}

	identity := domain.Identity{
		ID:          studentID,
		DisplayName: placeholderName,
		Email:       placeholderEmail,
	}
	if remember {
		if err := s.identities.Save(identity); err != nil {
			s.logger.Error("Failed to remember identity", zap.Error(err))
		}
	}

	s.identity = &identity
	s.logger.Info("User logged in", zap.String("student_id", studentID), zap.Bool("remember", remember))
	s.enterPortal()
	return nil
}

// SubmitSignup creates an identity from the form and always remembers it
func (s *Session) SubmitSignup(fullName, email, studentID, password, confirmPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireFields(domain.FormSignup, map[string]string{
		domain.FieldFullName:        fullName,
		domain.FieldEmail:           email,
		domain.FieldNewStudentID:    studentID,
		domain.FieldNewPassword:     password,
		domain.FieldConfirmPassword: confirmPassword,
	}); err != nil {
		return s.reject(err)
	}
	if password != confirmPassword {
		return s.reject(&domain.MismatchError{Form: domain.FormSignup})
	}

	identity := domain.Identity{
		ID:          studentID,
		DisplayName: fullName,
		Email:       email,
	}
	if err := s.identities.Save(identity); err != nil {
		s.logger.Error("Failed to remember identity", zap.Error(err))
	}

	s.identity = &identity
	s.logger.Info("User signed up", zap.String("student_id", studentID))
	s.enterPortal()
	return nil
}

// Logout forgets the identity and returns to the login page. It is idempotent.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.advance()
	s.identity = nil
	s.state = domain.LoginState()

	err := s.identities.Clear()
	if err != nil {
		s.logger.Error("Failed to clear remembered identity", zap.Error(err))
	}

	s.logger.Info("User logged out")
	s.show()
	return err
}

// ShowSignup switches the login page to the signup form
func (s *Session) ShowSignup() {
	s.setAuthMode(domain.AuthModeSignup)
}

// ShowLogin switches the login page back to the login form
func (s *Session) ShowLogin() {
	s.setAuthMode(domain.AuthModeLogin)
}

func (s *Session) setAuthMode(mode domain.AuthMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Authenticated() {
		return
	}
	s.state.AuthMode = mode
	s.show()
}

// Navigate opens a portal page after the render delay.
// Unknown names leave the state untouched.
func (s *Session) Navigate(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Authenticated() {
		s.logger.Debug("Navigation ignored while logged out", zap.String("view", name))
		return domain.ErrNotAuthenticated
	}

	view, err := domain.ParseSubView(name)
	if err != nil {
		s.logger.Error("Rejected navigation", zap.Error(err))
		return err
	}

	s.open(view)
	return nil
}

// SendChat posts text to the assistant, the reply follows after the reply delay
func (s *Session) SendChat(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if !s.state.Authenticated() || s.state.SubView != domain.SubViewChatbot || s.state.Loading {
		return domain.ErrChatUnavailable
	}

	s.transcript = append(s.transcript, domain.NewChatMessage(text, domain.OriginUser, s.scheduler.Now()))
	s.typing++
	s.show()

	gen := s.generation
	s.replies = append(s.replies, s.scheduler.AfterFunc(s.opts.ReplyDelay, func() {
		s.reply(gen, text)
	}))
	return nil
}

// SubmitReminder validates a reminder draft and confirms it
func (s *Session) SubmitReminder(title, description, dueAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Authenticated() {
		return domain.ErrNotAuthenticated
	}

	if err := requireFields(domain.FormReminder, map[string]string{
		domain.FieldReminderTitle: title,
		domain.FieldReminderDate:  dueAt,
	}); err != nil {
		return s.reject(err)
	}

	due, ok := domain.ParseDueAt(strings.TrimSpace(dueAt))
	if !ok {
		return s.reject(&domain.ValidationError{
			Form:    domain.FormReminder,
			Fields:  []string{domain.FieldReminderDate},
			Message: msgInvalidDueDate,
		})
	}

	reminder := domain.NewReminder(title, description, due)
	s.logger.Info("Reminder drafted",
		zap.String("reminder_id", reminder.ID.String()),
		zap.String("title", reminder.Title),
		zap.Time("due_at", reminder.DueAt),
	)
	s.presenter.Notify(domain.Notice{Kind: domain.NoticeInfo, Text: msgReminderAdded})
	return nil
}

// requireFields returns a ValidationError naming every empty field
func requireFields(form domain.FormName, values map[string]string) error {
	var missing []string
	for _, field := range form.Fields() {
		value, required := values[field]
		if required && strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Form: form, Fields: missing, Message: msgFillAllFields}
	}
	return nil
}

// reject surfaces a user error as a notice and returns it
func (s *Session) reject(err error) error {
	s.logger.Info("Form rejected", zap.Error(err))
	if msg, ok := domain.UserMessage(err); ok {
		s.presenter.Notify(domain.Notice{Kind: domain.NoticeError, Text: msg})
	}
	return err
}

// enterPortal opens the portal on the dashboard
func (s *Session) enterPortal() {
	s.state = domain.ViewState{Page: domain.PagePortal}
	s.open(domain.SubViewDashboard)
}

// open switches to view, shows the loading screen and schedules the real render
func (s *Session) open(view domain.SubView) {
	s.advance()
	s.state.SubView = view
	s.state.Loading = true
	s.show()

	gen := s.generation
	s.render = s.scheduler.AfterFunc(s.opts.RenderDelay, func() {
		s.finishRender(gen)
	})
}

// advance invalidates every pending callback of the current view
// Close cancels pending renders and replies
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advance()
}

func (s *Session) advance() {
	s.generation++
	if s.render != nil {
		s.render.Stop()
		s.render = nil
	}
	for _, t := range s.replies {
		t.Stop()
	}
	s.replies = nil
	s.transcript = nil
	s.typing = 0
}

func (s *Session) finishRender(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("Discarding stale render", zap.Uint64("generation", gen))
		return
	}

	s.render = nil
	s.state.Loading = false
	if s.state.SubView == domain.SubViewChatbot {
		s.transcript = []domain.ChatMessage{
			domain.NewChatMessage(chatGreeting, domain.OriginAssistant, s.scheduler.Now()),
		}
	}
	s.show()
}

func (s *Session) reply(gen uint64, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("Discarding stale chat reply", zap.Uint64("generation", gen))
		return
	}

	if s.typing > 0 {
		s.typing--
	}
	s.transcript = append(s.transcript, domain.NewChatMessage(s.responder.Respond(query), domain.OriginAssistant, s.scheduler.Now()))
	s.show()
}

// show renders the current state and hands it to the presenter
func (s *Session) show() {
	screen, err := s.renderer.Render(s.state, s.identity, Transcript{
		Messages: s.transcript,
		Typing:   s.typing > 0,
	})
	if err != nil {
		s.logger.Error("Render aborted",
			zap.Error(err),
			zap.String("page", s.state.Page.String()),
			zap.String("view", s.state.SubView.String()),
		)
		return
	}
	s.presenter.Show(screen)
}
