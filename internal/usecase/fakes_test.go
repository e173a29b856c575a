package usecase

import (
	"context"
	"sync"

	"kasubs/internal/domain/model"
	"kasubs/internal/domain/ports"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type memStore struct {
	mu    sync.Mutex
	trees map[model.TreeKey]model.Node
	loads int
	err   error
}

func newMemStore() *memStore {
	return &memStore{trees: make(map[model.TreeKey]model.Node)}
}

func (m *memStore) Load(_ context.Context, key model.TreeKey) (model.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	tree, ok := m.trees[key]
	if !ok {
		return nil, ports.ErrTreeNotFound
	}
	return tree, nil
}

func (m *memStore) Save(_ context.Context, key model.TreeKey, tree model.Node) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.trees[key] = tree
	return nil
}

type fakeSource struct {
	locale string
	trees  map[model.ContentType]model.Node
	errs   map[model.ContentType]error
}

func (f *fakeSource) Locale() string { return f.locale }

func (f *fakeSource) Video(context.Context, string) (*model.Video, error)     { return nil, nil }
func (f *fakeSource) Article(context.Context, string) (*model.Article, error) { return nil, nil }
func (f *fakeSource) Topic(context.Context, string) (*model.Topic, error)     { return nil, nil }

func (f *fakeSource) TopicContent(context.Context, string, model.ContentType) ([]model.Node, error) {
	return nil, nil
}

func (f *fakeSource) TopicTree(_ context.Context, ct model.ContentType) (model.Node, error) {
	if err := f.errs[ct]; err != nil {
		return nil, err
	}
	return f.trees[ct], nil
}

type fakeNotifier struct {
	sent []model.Notification
}

func (f *fakeNotifier) Send(_ context.Context, n model.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

func topic(id, title string, rt model.RenderType, children ...model.Node) *model.Topic {
	if children == nil {
		children = []model.Node{}
	}
	return &model.Topic{Content: model.Content{ID: id, Title: title, Slug: id}, RenderType: rt, Children: children}
}

func video(id, title, ytid string) *model.Video {
	return &model.Video{Content: model.Content{ID: id, Title: title}, YouTubeID: ytid, Duration: 60}
}

// scenarioTree is Subject > [v1, Tutorial > [v2]].
func scenarioTree() model.Node {
	return topic("math", "Math", model.RenderSubject,
		video("v1", "A", "yt1"),
		topic("lesson", "Lesson", model.RenderTutorial, video("v2", "B", "yt2")),
	)
}
