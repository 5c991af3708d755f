package tickets

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Jacobbrewer1/concierge/pkg/access"
	"github.com/Jacobbrewer1/concierge/pkg/dataaccess"
	"github.com/Jacobbrewer1/concierge/pkg/logging"
	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

const (
	testGuild   = "guild"
	testChannel = "panel-channel"
	testHandle  = "handle-channel"
	testLogs    = "transcripts-channel"
)

type testEnv struct {
	registry *Registry
	ctrl     *Controller
	platform *fakePlatform
	tickets  dataaccess.TicketDal
	guilds   dataaccess.GuildDal
}

func newTestEnv(t *testing.T, opts ...ControllerOption) *testEnv {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	s, err := dataaccess.NewFileStore(l, t.TempDir())
	require.NoError(t, err)

	locks := dataaccess.NewLocker()
	guilds := dataaccess.NewGuildDal(l, s, locks)
	tickets := dataaccess.NewTicketDal(l, s, locks)
	trusted := dataaccess.NewTrustedDal(l, s, locks)

	registry := NewRegistry(l, dataaccess.NewPanelDal(l, s, locks))
	platform := newFakePlatform()

	opts = append([]ControllerOption{WithCloseDelay(0)}, opts...)
	ctrl := NewController(l, registry, tickets, guilds, access.NewPolicy(l, guilds, trusted, "owner"), platform, opts...)

	return &testEnv{
		registry: registry,
		ctrl:     ctrl,
		platform: platform,
		tickets:  tickets,
		guilds:   guilds,
	}
}

func user(id, name string) *access.Actor {
	return &access.Actor{UserID: id, Name: name, GuildID: testGuild, GuildOwnerID: "guild-owner"}
}

func admin(id, name string) *access.Actor {
	a := user(id, name)
	a.Permissions = discordgo.PermissionAdministrator
	return a
}

func testOption(label string) *OptionInput {
	return &OptionInput{
		ButtonLabel:          label,
		TitleFormat:          "ticket-{username}",
		OpenMessage:          "Tell us more",
		HandleChannelID:      testHandle,
		TranscriptsChannelID: testLogs,
	}
}

type fakeThread struct {
	thread   *Thread
	members  map[string]bool
	roles    []string
	messages []*Message
	archived bool
}

type fakeMessage struct {
	channelID string
	notice    *HandleNotice
}

// fakePlatform is an in-memory chat platform.
type fakePlatform struct {
	mut sync.Mutex

	nextID      int
	threads     map[string]*fakeThread
	notices     map[string]*fakeMessage
	welcomes    map[string]*Welcome
	sent        map[string][]string
	transcripts map[string][]*Transcript

	// failures maps a method name to the error it returns.
	failures map[string]error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		threads:     make(map[string]*fakeThread),
		notices:     make(map[string]*fakeMessage),
		welcomes:    make(map[string]*Welcome),
		sent:        make(map[string][]string),
		transcripts: make(map[string][]*Transcript),
		failures:    make(map[string]error),
	}
}

func (p *fakePlatform) fail(method string, err error) {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.failures[method] = err
}

func (p *fakePlatform) id(prefix string) string {
	p.nextID++
	return fmt.Sprintf("%s-%d", prefix, p.nextID)
}

func (p *fakePlatform) thread(id string) (*fakeThread, error) {
	th, ok := p.threads[id]
	if !ok {
		return nil, fmt.Errorf("thread %s: %w", id, ErrPlatformNotFound)
	}
	return th, nil
}

func (p *fakePlatform) CreateThread(_ context.Context, channelID, name string) (*Thread, error) {
	p.mut.Lock()
	defer p.mut.Unlock()

	if err := p.failures["CreateThread"]; err != nil {
		return nil, err
	}

	th := &Thread{ID: p.id("thread"), Name: name, CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	p.threads[th.ID] = &fakeThread{thread: th, members: make(map[string]bool)}
	return th, nil
}

func (p *fakePlatform) GrantRole(_ context.Context, threadID, roleID string) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	th, err := p.thread(threadID)
	if err != nil {
		return err
	}
	th.roles = append(th.roles, roleID)
	return nil
}

func (p *fakePlatform) AddMember(_ context.Context, threadID, userID string) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	if err := p.failures["AddMember"]; err != nil {
		return err
	}

	th, err := p.thread(threadID)
	if err != nil {
		return err
	}
	th.members[userID] = true
	return nil
}

func (p *fakePlatform) SendHandleNotice(_ context.Context, channelID string, n *HandleNotice) (string, error) {
	p.mut.Lock()
	defer p.mut.Unlock()

	if err := p.failures["SendHandleNotice"]; err != nil {
		return "", err
	}

	id := p.id("notice")
	p.notices[id] = &fakeMessage{channelID: channelID, notice: n}
	return id, nil
}

func (p *fakePlatform) EditHandleNotice(_ context.Context, channelID, messageID string, n *HandleNotice) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	if _, ok := p.notices[messageID]; !ok {
		return fmt.Errorf("message %s: %w", messageID, ErrPlatformNotFound)
	}
	p.notices[messageID] = &fakeMessage{channelID: channelID, notice: n}
	return nil
}

func (p *fakePlatform) SendWelcome(_ context.Context, threadID string, w *Welcome) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	p.welcomes[threadID] = w
	return nil
}

func (p *fakePlatform) SendMessage(_ context.Context, channelID, content string) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	p.sent[channelID] = append(p.sent[channelID], content)
	return nil
}

func (p *fakePlatform) DeleteMessage(_ context.Context, _, messageID string) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	if _, ok := p.notices[messageID]; !ok {
		return fmt.Errorf("message %s: %w", messageID, ErrPlatformNotFound)
	}
	delete(p.notices, messageID)
	return nil
}

func (p *fakePlatform) Thread(_ context.Context, threadID string) (*Thread, error) {
	p.mut.Lock()
	defer p.mut.Unlock()

	th, err := p.thread(threadID)
	if err != nil {
		return nil, err
	}
	return th.thread, nil
}

func (p *fakePlatform) History(_ context.Context, threadID string) ([]*Message, error) {
	p.mut.Lock()
	defer p.mut.Unlock()

	th, err := p.thread(threadID)
	if err != nil {
		return nil, err
	}
	return th.messages, nil
}

func (p *fakePlatform) SendTranscript(_ context.Context, channelID string, t *Transcript) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	if err := p.failures["SendTranscript"]; err != nil {
		return err
	}
	p.transcripts[channelID] = append(p.transcripts[channelID], t)
	return nil
}

func (p *fakePlatform) DeleteThread(_ context.Context, threadID string) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	if _, err := p.thread(threadID); err != nil {
		return err
	}
	delete(p.threads, threadID)
	return nil
}

func (p *fakePlatform) ArchiveThread(_ context.Context, threadID string) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	th, err := p.thread(threadID)
	if err != nil {
		return err
	}
	th.archived = true
	return nil
}

func (p *fakePlatform) addMessage(threadID string, m *Message) {
	p.mut.Lock()
	defer p.mut.Unlock()

	p.threads[threadID].messages = append(p.threads[threadID].messages, m)
}

func (p *fakePlatform) hasThread(threadID string) bool {
	p.mut.Lock()
	defer p.mut.Unlock()

	_, ok := p.threads[threadID]
	return ok
}
