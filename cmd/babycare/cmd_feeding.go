package main

import (
	"fmt"
	"text/tabwriter"

	"babysafety/internal/client/api"
	"babysafety/internal/client/guard"

	"github.com/spf13/cobra"
)

func (a *app) feedingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "feeding",
		Aliases: []string{"feed"},
		Short:   "Track feedings",
	}
	cmd.AddCommand(a.feedingAddCmd(), a.feedingListCmd(), a.feedingTodayCmd(), a.feedingDeleteCmd())
	return cmd
}

func (a *app) feedingAddCmd() *cobra.Command {
	var in api.FeedingInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a feeding",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.guarded(at(guard.FeedingTracker), func(cmd *cobra.Command, args []string) error {
		e, err := a.client.AddFeeding(cmd.Context(), a.token(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s %s %s %s id=%s\n", e.Date, e.Time, e.FoodType, e.Amount, e.ID)
		return nil
	})
	f := cmd.Flags()
	f.StringVar(&in.BabyID, "baby", "", "baby id")
	f.StringVar(&in.Time, "time", "", "HH:MM")
	f.StringVar(&in.Date, "date", "", "YYYY-MM-DD (default today)")
	f.StringVar(&in.FoodType, "food", "", "food type, e.g. formula")
	f.StringVar(&in.Amount, "amount", "", "amount, e.g. 120ml")
	f.StringVar(&in.Notes, "notes", "", "notes")
	for _, name := range []string{"baby", "time", "food", "amount"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) feedingListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <babyId>",
		Short: "All feedings of a baby",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.guarded(at(guard.FeedingTracker), func(cmd *cobra.Command, args []string) error {
		items, err := a.client.FeedingsForBaby(cmd.Context(), a.token(), args[0])
		if err != nil {
			return err
		}
		return a.printFeedings(items)
	})
	return cmd
}

func (a *app) feedingTodayCmd() *cobra.Command {
	var day string
	cmd := &cobra.Command{
		Use:   "today <babyId>",
		Short: "Feeding schedule for one day",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.guarded(at(guard.FeedingSchedule), func(cmd *cobra.Command, args []string) error {
		sum, err := a.client.TodayFeedings(cmd.Context(), a.token(), args[0], day)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Date:        %s\n", sum.Date)
		fmt.Fprintf(a.out, "Total feeds: %d\n", sum.TotalFeeds)
		fmt.Fprintf(a.out, "Last feed:   %s\n", dash(sum.LastFeed))
		fmt.Fprintf(a.out, "Next feed:   %s\n\n", dash(sum.NextFeed))
		return a.printFeedings(sum.Entries)
	})
	cmd.Flags().StringVar(&day, "date", "", "YYYY-MM-DD (default today)")
	return cmd
}

func (a *app) feedingDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <babyId> <entryId>",
		Short: "Delete a feeding entry",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = a.guarded(at(guard.FeedingTracker), func(cmd *cobra.Command, args []string) error {
		return a.client.DeleteFeeding(cmd.Context(), a.token(), args[0], args[1])
	})
	return cmd
}

func (a *app) printFeedings(items []api.Feeding) error {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No feedings recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tFOOD\tAMOUNT\tNOTES")
	for _, e := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Time, e.FoodType, e.Amount, dash(e.Notes))
	}
	return tw.Flush()
}
