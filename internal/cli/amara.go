package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kasubs/internal/usecase"
)

func newAmaraCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amara",
		Short: "Manage videos and subtitles on Amara",
	}

	checkVideo := &cobra.Command{
		Use:   "check-video URL",
		Short: "Look up the Amara video registered for a video URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := rt.app.Host().CheckVideo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}

	addVideo := &cobra.Command{
		Use:   "add-video URL LANG",
		Short: "Register a video URL with its primary audio language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rt.app.Host().AddVideo(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}

	addLanguage := &cobra.Command{
		Use:   "add-language VIDEO_ID LANG",
		Short: "Register a subtitle language on a video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, _ := cmd.Flags().GetBool("original")
			lang, err := rt.app.Host().AddLanguage(cmd.Context(), args[0], args[1], original)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), lang)
		},
	}
	addLanguage.Flags().Bool("original", false, "Mark the language as the primary audio language")

	checkLanguage := &cobra.Command{
		Use:   "check-language VIDEO_ID LANG",
		Short: "Report whether a language exists on a video and its version count",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			present, versions, err := rt.app.Host().CheckLanguage(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"present": present, "versions": versions})
		},
	}

	upload := &cobra.Command{
		Use:   "upload VIDEO_ID LANG FILE",
		Short: "Upload a subtitle file as a new version",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[2])
			if err != nil {
				return fmt.Errorf("read subtitles: %w", err)
			}
			format, _ := cmd.Flags().GetString("format")
			complete, _ := cmd.Flags().GetBool("complete")

			res, err := rt.app.Host().UploadSubs(cmd.Context(), args[0], args[1], complete, string(data), format)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	upload.Flags().String("format", "srt", "Subtitle format")
	upload.Flags().Bool("complete", false, "Mark the subtitles as complete")

	download := &cobra.Command{
		Use:   "download VIDEO_ID LANG",
		Short: "Download the subtitles of a language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			text, err := rt.app.Host().DownloadSubs(cmd.Context(), args[0], args[1], format)
			if err != nil {
				return err
			}
			w, closeOut, err := output(cmd)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprint(w, text); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	download.Flags().String("format", "srt", "Subtitle format")
	addOutputFlag(download)

	compare := &cobra.Command{
		Use:   "compare VIDEO_ID VIDEO_ID",
		Short: "Compare the durations of two videos",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			same, err := rt.app.Host().CompareVideos(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"same_duration": same})
		},
	}

	transfer := &cobra.Command{
		Use:   "transfer",
		Short: "Copy subtitles of one language from a video to another",
		Example: `  kasubs amara transfer --from https://youtu.be/original --to https://youtu.be/dubbed --lang cs --complete
  kasubs amara transfer --from https://youtu.be/a --to https://youtu.be/b --lang en --audio-lang cs --format vtt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req usecase.TransferRequest
			req.SourceVideoURL, _ = cmd.Flags().GetString("from")
			req.TargetVideoURL, _ = cmd.Flags().GetString("to")
			req.Language, _ = cmd.Flags().GetString("lang")
			req.TargetAudioLanguage, _ = cmd.Flags().GetString("audio-lang")
			req.Format, _ = cmd.Flags().GetString("format")
			req.Complete, _ = cmd.Flags().GetBool("complete")

			res, err := rt.app.Transfer().Transfer(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	transfer.Flags().String("from", "", "Source video URL")
	transfer.Flags().String("to", "", "Target video URL")
	transfer.Flags().String("lang", "", "Subtitle language to copy")
	transfer.Flags().String("audio-lang", "", "Primary audio language when the target must be registered (default: --lang)")
	transfer.Flags().String("format", "srt", "Subtitle format")
	transfer.Flags().Bool("complete", false, "Mark the uploaded subtitles as complete")
	_ = transfer.MarkFlagRequired("from")
	_ = transfer.MarkFlagRequired("to")
	_ = transfer.MarkFlagRequired("lang")

	cmd.AddCommand(checkVideo, addVideo, addLanguage, checkLanguage, upload, download, compare, transfer)
	return cmd
}
