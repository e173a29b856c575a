package usecase

import (
	"context"
	"errors"
	"fmt"

	"kasubs/internal/domain/ports"
)

// ErrVideoNotFound is returned when a source video is not registered on the
// subtitle host.
var ErrVideoNotFound = errors.New("video not found on subtitle host")

// TransferRequest describes copying one subtitle language between two videos,
// typically from an original video to its dubbed version.
type TransferRequest struct {
	SourceVideoURL string
	TargetVideoURL string
	// Language is the subtitle language copied.
	Language string
	// TargetAudioLanguage is the primary audio language used when the target
	// video has to be registered. Defaults to Language.
	TargetAudioLanguage string
	Format              string
	Complete            bool
}

// TransferResult summarizes a transfer.
type TransferResult struct {
	SourceID         string `json:"source_id"`
	TargetID         string `json:"target_id"`
	CreatedVideo     bool   `json:"created_video"`
	CreatedLanguage  bool   `json:"created_language"`
	PreviousVersions int    `json:"previous_versions"`
	Version          int    `json:"version"`
	SameDuration     bool   `json:"same_duration"`
}

// SubtitleTransfer sequences subtitle host calls to copy subtitles.
type SubtitleTransfer struct {
	host   ports.SubtitleHost
	logger ports.Logger
}

// NewSubtitleTransfer constructs a SubtitleTransfer use case.
func NewSubtitleTransfer(host ports.SubtitleHost, logger ports.Logger) *SubtitleTransfer {
	return &SubtitleTransfer{host: host, logger: logger}
}

// Transfer copies the subtitles. The first error stops the run, including an
// operator declining a confirmation.
func (s *SubtitleTransfer) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	if req.SourceVideoURL == "" || req.TargetVideoURL == "" || req.Language == "" {
		return nil, errors.New("transfer: source url, target url and language are required")
	}
	format := req.Format
	if format == "" {
		format = "srt"
	}
	audioLang := req.TargetAudioLanguage
	if audioLang == "" {
		audioLang = req.Language
	}

	res := &TransferResult{}

	sources, err := s.host.CheckVideo(ctx, req.SourceVideoURL)
	if err != nil {
		return nil, err
	}
	if len(sources.Objects) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, req.SourceVideoURL)
	}
	res.SourceID = sources.Objects[0].ID

	present, _, err := s.host.CheckLanguage(ctx, res.SourceID, req.Language)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, fmt.Errorf("transfer: source video %s has no %s subtitles", res.SourceID, req.Language)
	}

	targets, err := s.host.CheckVideo(ctx, req.TargetVideoURL)
	if err != nil {
		return nil, err
	}
	if len(targets.Objects) > 0 {
		res.TargetID = targets.Objects[0].ID
	} else {
		created, err := s.host.AddVideo(ctx, req.TargetVideoURL, audioLang)
		if err != nil {
			return nil, err
		}
		res.TargetID = created.ID
		res.CreatedVideo = true
		s.logger.Info(ctx, "target video registered", "video_id", res.TargetID, "url", req.TargetVideoURL)
	}
	if res.TargetID == res.SourceID {
		return nil, fmt.Errorf("transfer: source and target resolve to the same video %s", res.SourceID)
	}

	res.SameDuration, err = s.host.CompareVideos(ctx, res.SourceID, res.TargetID)
	if err != nil {
		return nil, err
	}

	subs, err := s.host.DownloadSubs(ctx, res.SourceID, req.Language, format)
	if err != nil {
		return nil, err
	}

	present, versions, err := s.host.CheckLanguage(ctx, res.TargetID, req.Language)
	if err != nil {
		return nil, err
	}
	res.PreviousVersions = versions
	if !present {
		if _, err := s.host.AddLanguage(ctx, res.TargetID, req.Language, req.Language == audioLang); err != nil {
			return nil, err
		}
		res.CreatedLanguage = true
	}

	uploaded, err := s.host.UploadSubs(ctx, res.TargetID, req.Language, req.Complete, subs, format)
	if err != nil {
		return nil, err
	}
	res.Version = uploaded.VersionNumber

	s.logger.Info(ctx, "subtitles transferred",
		"source_id", res.SourceID,
		"target_id", res.TargetID,
		"language", req.Language,
		"version", res.Version,
	)
	return res, nil
}
