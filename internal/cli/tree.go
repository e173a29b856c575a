package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"kasubs/internal/domain/contenttree"
	"kasubs/internal/domain/model"
)

func newTreeCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Fetch, cache and export Khan Academy topic trees",
	}
	cmd.AddCommand(
		newTreeFetchCmd(rt),
		newTreeExportCmd(rt),
		newTreeUniqueCmd(rt),
		newTreeTopicsCmd(rt),
		newTreeItemsCmd(rt),
		newTreeFindVideoCmd(rt),
		newTreeFindTopicCmd(rt),
	)
	return cmd
}

func newTreeFetchCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download topic trees and store them in the cache",
		Example: `  kasubs tree fetch --locale cs --type video,exercise
  kasubs tree fetch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := contentTypesFlag(cmd, "type")
			if err != nil {
				return err
			}
			refresh := rt.app.Refresh()
			if len(types) == 0 {
				types = refresh.ContentTypes()
			}

			var errs []error
			for _, ct := range types {
				tree, err := refresh.RefreshOne(cmd.Context(), ct)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d topics, %d items\n", ct,
					len(contenttree.Topics(tree, model.RenderAll)),
					len(contenttree.ContentItems(tree, model.ContentAll)))
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringSlice("type", nil, "Content types to fetch (default: KHAN_CONTENT_TYPES)")
	return cmd
}

func newTreeExportCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the cached tree as semicolon separated rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := contentTypeFlag(cmd, "type")
			if err != nil {
				return err
			}
			export := rt.app.Export()
			if withDesc, _ := cmd.Flags().GetBool("description"); withDesc {
				export = export.WithDescriptions()
			}

			w, closeOut, err := output(cmd)
			if err != nil {
				return err
			}
			if err := export.Report(cmd.Context(), w, ct); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	cmd.Flags().String("type", string(model.ContentVideo), "Content type of the cached tree")
	cmd.Flags().Bool("description", false, "Append the plain-text description to every row")
	addOutputFlag(cmd)
	return cmd
}

func newTreeUniqueCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unique",
		Short: "Write one row per distinct content item across cached trees",
		Example: `  kasubs tree unique --type video --keys id,title,youtube_id,duration
  kasubs tree unique --type video,exercise,article --keys id,kind,title -o content.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := contentTypesFlag(cmd, "type")
			if err != nil {
				return err
			}
			keys, _ := cmd.Flags().GetStringSlice("keys")

			w, closeOut, err := output(cmd)
			if err != nil {
				return err
			}
			n, err := rt.app.Export().Unique(cmd.Context(), w, types, keys)
			if err != nil {
				closeOut()
				return err
			}
			rt.app.Logger().Info(cmd.Context(), "unique content written", "records", n)
			return closeOut()
		},
	}
	cmd.Flags().StringSlice("type", []string{string(model.ContentVideo)}, "Content types of the cached trees")
	cmd.Flags().StringSlice("keys", []string{"id", "title"}, "Attributes to project")
	addOutputFlag(cmd)
	return cmd
}

func newTreeTopicsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List topics of a render type: all, Subject, Domain, Topic or Tutorial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := contentTypeFlag(cmd, "type")
			if err != nil {
				return err
			}
			renderType, _ := cmd.Flags().GetString("render-type")

			topics, err := rt.app.Catalog().For(ct).Topics(cmd.Context(), model.RenderType(renderType))
			if err != nil {
				return err
			}
			for _, t := range topics {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", t.RenderType, t.Slug, t.Title)
			}
			return nil
		},
	}
	cmd.Flags().String("type", string(model.ContentVideo), "Content type of the cached tree")
	cmd.Flags().String("render-type", string(model.RenderAll), "Render type filter")
	return cmd
}

func newTreeItemsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the content items of a cached tree in document order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := contentTypeFlag(cmd, "type")
			if err != nil {
				return err
			}
			items, err := rt.app.Export().Items(cmd.Context(), ct)
			if err != nil {
				return err
			}
			for _, n := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", n.Kind(), n.Info().ID, n.Info().Title)
			}
			return nil
		},
	}
	cmd.Flags().String("type", string(model.ContentVideo), "Content type of the cached tree")
	return cmd
}

func newTreeFindVideoCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find-video VALUE",
		Short: "Find the first cached video whose attribute equals VALUE",
		Example: `  kasubs tree find-video dQw4w9WgXcQ
  kasubs tree find-video --attr translated_youtube_id x9aB3kLmN0q`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attr, _ := cmd.Flags().GetString("attr")
			cache := rt.app.Catalog().For(model.ContentVideo)

			var video *model.Video
			if attr == "youtube_id" {
				tree, err := cache.Get(cmd.Context())
				if err != nil {
					return err
				}
				video = contenttree.FindVideoByYouTubeID(tree, args[0])
			} else {
				v, err := cache.FindVideo(cmd.Context(), attr, args[0])
				if err != nil {
					return err
				}
				video = v
			}
			if video == nil {
				return fmt.Errorf("video with %s %q: %w", attr, args[0], errNoResult)
			}
			return printNode(cmd.OutOrStdout(), video)
		},
	}
	cmd.Flags().String("attr", "youtube_id", "Attribute to match")
	return cmd
}

func newTreeFindTopicCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find-topic TITLE",
		Short: "Find the first cached node whose title or slug equals TITLE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := contentTypeFlag(cmd, "type")
			if err != nil {
				return err
			}
			tree, err := rt.app.Catalog().For(ct).Get(cmd.Context())
			if err != nil {
				return err
			}
			found := contenttree.FindTopic(tree, args[0])
			if found == nil {
				return fmt.Errorf("topic %q: %w", args[0], errNoResult)
			}
			return printNode(cmd.OutOrStdout(), found)
		},
	}
	cmd.Flags().String("type", string(model.ContentVideo), "Content type of the cached tree")
	return cmd
}
