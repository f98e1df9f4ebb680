package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"babysafety/internal/client/api"
	"babysafety/internal/client/guard"

	"github.com/spf13/cobra"
)

func (a *app) cryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cry",
		Short: "Cry analysis from feeding history and room conditions",
	}
	cmd.AddCommand(a.cryAnalyzeCmd(), a.cryHistoryCmd())
	return cmd
}

func (a *app) cryAnalyzeCmd() *cobra.Command {
	var (
		roomTemp float64
		foodTemp float64
		crying   bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <babyId>",
		Short: "Guess why the baby is crying",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.guarded(at(guard.EmotionDetection), func(cmd *cobra.Command, args []string) error {
		in := api.CryRequest{Crying: crying}
		if cmd.Flags().Changed("room-temp") {
			in.RoomTemperature = &roomTemp
		}
		if cmd.Flags().Changed("food-temp") {
			in.FoodTemperature = &foodTemp
		}
		res, err := a.client.AnalyzeCry(cmd.Context(), a.token(), args[0], in)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Reason:         %s (%.0f%%, %s)\n", res.Reason, res.Confidence, res.Source)
		fmt.Fprintf(a.out, "Recommendation: %s\n", res.Recommendation)
		for _, r := range res.Reasons {
			fmt.Fprintf(a.out, "  - %s\n", r)
		}
		if s := res.Suitability; s != nil {
			verdict := "not suitable"
			if s.Suitable {
				verdict = "suitable"
			}
			fmt.Fprintf(a.out, "Feeding:        %s (score %d/8, %.0f%%)\n", verdict, s.Score, s.Confidence)
		}
		for _, r := range res.Recommendations {
			fmt.Fprintf(a.out, "  * %s\n", r)
		}
		return nil
	})
	cmd.Flags().Float64Var(&roomTemp, "room-temp", 0, "room temperature in °C")
	cmd.Flags().Float64Var(&foodTemp, "food-temp", 0, "food temperature in °C")
	cmd.Flags().BoolVar(&crying, "crying", true, "baby is crying right now")
	return cmd
}

func (a *app) cryHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <babyId>",
		Short: "Past cry analyses, newest first",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.guarded(at(guard.EmotionDetection), func(cmd *cobra.Command, args []string) error {
		items, err := a.client.CryHistory(cmd.Context(), a.token(), args[0])
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(a.out, "No analyses yet.")
			return nil
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tREASON\tCONFIDENCE\tSOURCE\tRECOMMENDATION")
		for _, c := range items {
			fmt.Fprintf(tw, "%s\t%s\t%.0f%%\t%s\t%s\n",
				c.Time, c.Reason, c.Confidence, c.Source, strings.TrimSpace(c.Recommendation))
		}
		return tw.Flush()
	})
	return cmd
}
