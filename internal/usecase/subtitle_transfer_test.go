package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kasubs/internal/domain/model"
)

var errDeclined = errors.New("declined")

type fakeHost struct {
	videos     map[string]string
	languages  map[string]map[string]int
	durations  map[string]int
	subs       map[string]string
	declineCmp bool

	calls    []string
	uploaded map[string]string
	nextID   string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		videos:    map[string]string{},
		languages: map[string]map[string]int{},
		durations: map[string]int{},
		subs:      map[string]string{},
		uploaded:  map[string]string{},
		nextID:    "NEW",
	}
}

func (f *fakeHost) CheckVideo(_ context.Context, videoURL string) (*model.AmaraVideoList, error) {
	f.calls = append(f.calls, "check_video")
	list := &model.AmaraVideoList{}
	if id, ok := f.videos[videoURL]; ok {
		list.Objects = []model.AmaraVideo{{ID: id}}
	}
	return list, nil
}

func (f *fakeHost) AddVideo(_ context.Context, videoURL, lang string) (*model.AmaraVideo, error) {
	f.calls = append(f.calls, "add_video:"+lang)
	f.videos[videoURL] = f.nextID
	f.durations[f.nextID] = f.durations["SRC"]
	return &model.AmaraVideo{ID: f.nextID, PrimaryAudioLanguageCode: lang}, nil
}

func (f *fakeHost) AddLanguage(_ context.Context, videoID, lang string, isOriginal bool) (*model.AmaraLanguage, error) {
	f.calls = append(f.calls, "add_language")
	if f.languages[videoID] == nil {
		f.languages[videoID] = map[string]int{}
	}
	f.languages[videoID][lang] = 0
	return &model.AmaraLanguage{LanguageCode: lang, IsPrimaryAudioLanguage: isOriginal}, nil
}

func (f *fakeHost) CheckLanguage(_ context.Context, videoID, lang string) (bool, int, error) {
	f.calls = append(f.calls, "check_language")
	n, ok := f.languages[videoID][lang]
	return ok, n, nil
}

func (f *fakeHost) UploadSubs(_ context.Context, videoID, lang string, _ bool, subs, _ string) (*model.AmaraSubtitles, error) {
	f.calls = append(f.calls, "upload")
	f.uploaded[videoID+"/"+lang] = subs
	f.languages[videoID][lang]++
	return &model.AmaraSubtitles{VersionNumber: f.languages[videoID][lang]}, nil
}

func (f *fakeHost) DownloadSubs(_ context.Context, videoID, lang, _ string) (string, error) {
	f.calls = append(f.calls, "download")
	return f.subs[videoID+"/"+lang], nil
}

func (f *fakeHost) CompareVideos(_ context.Context, id1, id2 string) (bool, error) {
	f.calls = append(f.calls, "compare")
	if f.durations[id1] == f.durations[id2] {
		return true, nil
	}
	if f.declineCmp {
		return false, errDeclined
	}
	return false, nil
}

func TestSubtitleTransfer_CreatesTarget(t *testing.T) {
	host := newFakeHost()
	host.videos["https://youtu.be/orig"] = "SRC"
	host.durations["SRC"] = 300
	host.languages["SRC"] = map[string]int{"cs": 2}
	host.subs["SRC/cs"] = "1\n00:00:01,000 --> 00:00:02,000\nAhoj\n"

	res, err := NewSubtitleTransfer(host, nopLogger{}).Transfer(context.Background(), TransferRequest{
		SourceVideoURL: "https://youtu.be/orig",
		TargetVideoURL: "https://youtu.be/dub",
		Language:       "cs",
		Complete:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, "SRC", res.SourceID)
	assert.Equal(t, "NEW", res.TargetID)
	assert.True(t, res.CreatedVideo)
	assert.True(t, res.CreatedLanguage)
	assert.True(t, res.SameDuration)
	assert.Equal(t, 1, res.Version)
	assert.Equal(t, host.subs["SRC/cs"], host.uploaded["NEW/cs"])
	assert.Equal(t, []string{
		"check_video", "check_language", "check_video", "add_video:cs",
		"compare", "download", "check_language", "add_language", "upload",
	}, host.calls)
}

func TestSubtitleTransfer_ExistingTarget(t *testing.T) {
	host := newFakeHost()
	host.videos["a"] = "SRC"
	host.videos["b"] = "TGT"
	host.durations["SRC"] = 300
	host.durations["TGT"] = 310
	host.languages["SRC"] = map[string]int{"en": 1}
	host.languages["TGT"] = map[string]int{"en": 3}
	host.subs["SRC/en"] = "WEBVTT\n\n00:01.000 --> 00:02.000\nHi\n"

	res, err := NewSubtitleTransfer(host, nopLogger{}).Transfer(context.Background(), TransferRequest{
		SourceVideoURL: "a", TargetVideoURL: "b", Language: "en", TargetAudioLanguage: "cs", Format: "vtt",
	})
	require.NoError(t, err)
	assert.False(t, res.CreatedVideo)
	assert.False(t, res.CreatedLanguage)
	assert.False(t, res.SameDuration)
	assert.Equal(t, 3, res.PreviousVersions)
	assert.Equal(t, 4, res.Version)
}

func TestSubtitleTransfer_Stops(t *testing.T) {
	ctx := context.Background()

	host := newFakeHost()
	_, err := NewSubtitleTransfer(host, nopLogger{}).Transfer(ctx, TransferRequest{SourceVideoURL: "a", TargetVideoURL: "b", Language: "cs"})
	assert.True(t, errors.Is(err, ErrVideoNotFound))

	host = newFakeHost()
	host.videos["a"] = "SRC"
	_, err = NewSubtitleTransfer(host, nopLogger{}).Transfer(ctx, TransferRequest{SourceVideoURL: "a", TargetVideoURL: "b", Language: "cs"})
	assert.ErrorContains(t, err, "has no cs subtitles")

	host = newFakeHost()
	host.videos["a"] = "SRC"
	host.videos["b"] = "TGT"
	host.durations["SRC"] = 1
	host.durations["TGT"] = 2
	host.languages["SRC"] = map[string]int{"cs": 1}
	host.declineCmp = true
	_, err = NewSubtitleTransfer(host, nopLogger{}).Transfer(ctx, TransferRequest{SourceVideoURL: "a", TargetVideoURL: "b", Language: "cs"})
	assert.True(t, errors.Is(err, errDeclined))
	assert.NotContains(t, host.calls, "upload")

	_, err = NewSubtitleTransfer(host, nopLogger{}).Transfer(ctx, TransferRequest{SourceVideoURL: "a"})
	assert.Error(t, err)
}
