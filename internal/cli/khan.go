package cli

import (
	"github.com/spf13/cobra"

	"kasubs/internal/domain/model"
)

func newKhanCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "khan",
		Short: "Query the Khan Academy API directly",
	}

	video := &cobra.Command{
		Use:   "video ID",
		Short: "Fetch a video by YouTube id or readable id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rt.app.Source().Video(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if v == nil {
				return errNoResult
			}
			return printNode(cmd.OutOrStdout(), v)
		},
	}

	article := &cobra.Command{
		Use:   "article ID",
		Short: "Fetch an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.app.Source().Article(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a == nil {
				return errNoResult
			}
			return printNode(cmd.OutOrStdout(), a)
		},
	}

	topic := &cobra.Command{
		Use:   "topic SLUG",
		Short: "Fetch a topic, or with --content its videos or exercises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, _ := cmd.Flags().GetString("content")
			if content != "" {
				ct, err := contentTypeFlag(cmd, "content")
				if err != nil {
					return err
				}
				nodes, err := rt.app.Source().TopicContent(cmd.Context(), args[0], ct)
				if err != nil {
					return err
				}
				return printNodes(cmd.OutOrStdout(), nodes)
			}

			t, err := rt.app.Source().Topic(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if t == nil {
				return errNoResult
			}
			return printNode(cmd.OutOrStdout(), t)
		},
	}
	topic.Flags().String("content", "", "List the topic's video or exercise items")

	tree := &cobra.Command{
		Use:   "topictree",
		Short: "Download a topic tree and print it as JSON without caching it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := contentTypeFlag(cmd, "type")
			if err != nil {
				return err
			}
			t, err := rt.app.Source().TopicTree(cmd.Context(), ct)
			if err != nil {
				return err
			}
			if t == nil {
				return errNoResult
			}
			w, closeOut, err := output(cmd)
			if err != nil {
				return err
			}
			if err := printNode(w, t); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	tree.Flags().String("type", string(model.ContentVideo), "Content type of the tree")
	addOutputFlag(tree)

	cmd.AddCommand(video, article, topic, tree)
	return cmd
}
