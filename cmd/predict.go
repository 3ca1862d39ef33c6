package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/studentdash/internal/predict"
	"github.com/KaramelBytes/studentdash/internal/utils"
)

var (
	predInputs predict.Inputs
	predJSON   bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict an assessment score from five learning metrics",
	Long: `Predict an assessment score as the equally weighted (0.2) sum of
comprehension, attention, focus, retention and engagement time.
Omitted or non-numeric values count as 0.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		score := predInputs.Predict()
		if predJSON {
			b, err := utils.PrettyJSON(struct {
				Inputs    predict.Inputs `json:"inputs"`
				Predicted float64        `json:"predicted"`
			}{predInputs, score})
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", b)
			return nil
		}
		for _, f := range predict.Fields {
			if v := predInputs.Get(f); v != "" {
				debugf("%s = %s", f, v)
			}
		}
		printf(cmd, "Predicted Assessment Score: %.2f\n", score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().StringVar(&predInputs.Comprehension, "comprehension", "", "comprehension score")
	predictCmd.Flags().StringVar(&predInputs.Attention, "attention", "", "attention score")
	predictCmd.Flags().StringVar(&predInputs.Focus, "focus", "", "focus score")
	predictCmd.Flags().StringVar(&predInputs.Retention, "retention", "", "retention score")
	predictCmd.Flags().StringVar(&predInputs.EngagementTime, "engagement-time", "", "engagement time")
	predictCmd.Flags().BoolVar(&predJSON, "json", false, "emit JSON")
}
