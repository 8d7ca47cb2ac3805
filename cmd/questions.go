package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobcoach/internal/questions"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the interview questions of the bank",
	Run: func(cmd *cobra.Command, _ []string) {
		listQuestions(cmd)
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().StringP("level", "l", "", "only list questions of this level")
	questionsCmd.Flags().StringP("technology", "t", string(questions.TechnologyAll), "only list questions of this technology")
}

func listQuestions(cmd *cobra.Command) {
	config, logger := setup("questions")

	bank, err := loadBank(config)
	if err != nil {
		logger.Fatal("loading question bank", zap.Error(err))
	}

	filter, err := questionFilter(cmd.Flag("level").Value.String(), cmd.Flag("technology").Value.String())
	if err != nil {
		logger.Fatal("invalid filter", zap.Error(err))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLEVEL\tTECHNOLOGY\tPROMPT")
	for _, q := range bank.Filter(filter) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", q.ID, q.Level, q.Technology, q.Prompt)
	}
	if err := w.Flush(); err != nil {
		logger.Fatal("writing questions", zap.Error(err))
	}
}

// questionFilter parses the flags; an empty level lists every level.
func questionFilter(level, technology string) (questions.Filter, error) {
	filter := questions.Filter{Technology: questions.Technology(technology)}
	if level == "" {
		return filter, nil
	}

	parsed, ok := questions.ParseLevel(level)
	if !ok {
		return filter, fmt.Errorf("unknown level %q", level)
	}
	filter.Level = parsed
	return filter, nil
}
