package ports

import (
	"context"

	"kasubs/internal/domain/model"
)

// SubtitleHost is the subtitle hosting platform (Amara).
type SubtitleHost interface {
	CheckVideo(ctx context.Context, videoURL string) (*model.AmaraVideoList, error)
	AddVideo(ctx context.Context, videoURL, lang string) (*model.AmaraVideo, error)
	AddLanguage(ctx context.Context, videoID, lang string, isOriginal bool) (*model.AmaraLanguage, error)
	CheckLanguage(ctx context.Context, videoID, lang string) (present bool, versions int, err error)
	UploadSubs(ctx context.Context, videoID, lang string, isComplete bool, subs, format string) (*model.AmaraSubtitles, error)
	DownloadSubs(ctx context.Context, videoID, lang, format string) (string, error)
	CompareVideos(ctx context.Context, videoID1, videoID2 string) (bool, error)
}
