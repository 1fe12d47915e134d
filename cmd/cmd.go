package cmd

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmorganca/minbpe/envconfig"
	"github.com/jmorganca/minbpe/logutil"
	"github.com/jmorganca/minbpe/model"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minbpe [flags] <text>",
		Short: "Train a byte pair encoding on text, then encode and decode it",
		Args:  cobra.ExactArgs(1),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
			slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), logutil.Level(envconfig.Debug, envconfig.Trace)))
		},
		RunE: RunHandler,
	}

	rootCmd.Flags().Int("vocab-size", envconfig.VocabSize, "Target vocabulary size, at least 256")
	rootCmd.Flags().Bool("merges", false, "Print the learned merge table")

	appendEnvDocs(rootCmd)
	return rootCmd
}

func appendEnvDocs(cmd *cobra.Command) {
	envs := envconfig.AsMap()
	keys := make([]string, 0, len(envs))
	for k := range envs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	sb.WriteString("\nEnvironment Variables:\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "      %-20s %s\n", envs[k].Name, envs[k].Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + sb.String())
}

func RunHandler(cmd *cobra.Command, args []string) error {
	vocabSize, err := cmd.Flags().GetInt("vocab-size")
	if err != nil {
		return err
	}

	showMerges, err := cmd.Flags().GetBool("merges")
	if err != nil {
		return err
	}

	text := args[0]
	bpe, err := model.Train(text, vocabSize)
	if err != nil {
		return err
	}

	ids := bpe.Encode(text)
	decoded, err := bpe.Decode(ids)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Encoded: %s\n", formatIDs(ids))
	fmt.Fprintf(w, "Decoded: %q\n", decoded)

	if showMerges {
		return showMergeTable(bpe, w)
	}

	return nil
}

func formatIDs(ids []int32) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = fmt.Sprint(id)
	}
	return "[" + strings.Join(s, ", ") + "]"
}
