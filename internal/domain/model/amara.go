package model

// AmaraPage is the pagination block of Amara list responses.
type AmaraPage struct {
	Previous   string `json:"previous"`
	Next       string `json:"next"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
	TotalCount int    `json:"total_count"`
}

// AmaraVideo is a video record on Amara.
type AmaraVideo struct {
	ID                       string   `json:"id"`
	VideoType                string   `json:"video_type,omitempty"`
	PrimaryAudioLanguageCode string   `json:"primary_audio_language_code"`
	Title                    string   `json:"title"`
	Description              string   `json:"description"`
	Duration                 int      `json:"duration"`
	Thumbnail                string   `json:"thumbnail,omitempty"`
	Team                     string   `json:"team,omitempty"`
	Project                  string   `json:"project,omitempty"`
	AllURLs                  []string `json:"all_urls,omitempty"`
	ResourceURI              string   `json:"resource_uri,omitempty"`
}

// AmaraVideoList is the response of a video lookup. An empty Objects slice
// means the URL is not registered.
type AmaraVideoList struct {
	Meta    AmaraPage    `json:"meta"`
	Objects []AmaraVideo `json:"objects"`
}

// AmaraSubtitleVersion is one uploaded revision of a subtitle language.
type AmaraSubtitleVersion struct {
	Author    string `json:"author"`
	VersionNo int    `json:"version_no"`
	Published bool   `json:"published"`
}

// AmaraLanguage is a subtitle language track of a video.
type AmaraLanguage struct {
	LanguageCode           string                 `json:"language_code"`
	Name                   string                 `json:"name"`
	IsPrimaryAudioLanguage bool                   `json:"is_primary_audio_language"`
	IsRTL                  bool                   `json:"is_rtl"`
	SubtitlesComplete      bool                   `json:"subtitles_complete"`
	Versions               []AmaraSubtitleVersion `json:"versions"`
	ResourceURI            string                 `json:"resource_uri,omitempty"`
}

// AmaraLanguageList is one page of a video's languages.
type AmaraLanguageList struct {
	Meta    AmaraPage       `json:"meta"`
	Objects []AmaraLanguage `json:"objects"`
}

// AmaraSubtitles is the response to a subtitle upload.
type AmaraSubtitles struct {
	VersionNumber int    `json:"version_number"`
	SubFormat     string `json:"sub_format"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Language      struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"language"`
}
