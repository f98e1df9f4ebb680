package main

import (
	"fmt"
	"text/tabwriter"

	"babysafety/internal/client/guard"
	"babysafety/internal/domain/monitoring"

	"github.com/spf13/cobra"
)

func (a *app) dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Babies, today's feedings and monitor status at a glance",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.guarded(at(guard.Dashboard), a.runDashboard)
	return cmd
}

func (a *app) runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	tok := a.token()

	u, _ := a.session.User()
	fmt.Fprintf(a.out, "Dashboard for %s <%s>\n\n", u.Name, u.Email)

	babies, err := a.client.MyBabies(ctx, tok)
	if err != nil {
		return err
	}
	if len(babies) == 0 {
		fmt.Fprintln(a.out, `No babies yet. Add one with "babycare baby add".`)
	} else {
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "BABY\tAGE\tFEEDS TODAY\tLAST\tNEXT")
		for _, b := range babies {
			today, err := a.client.TodayFeedings(ctx, tok, b.ID.String(), "")
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
				b.Name, ageLabel(b.AgeInMonths), today.TotalFeeds, dash(today.LastFeed), dash(today.NextFeed))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out)
	for _, kind := range []monitoring.Kind{monitoring.KindObject, monitoring.KindEmotion} {
		snap, err := a.client.MonitorStatus(ctx, tok, kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%-8s monitor: %s, %s\n", kind, snap.State, snap.Alert)
	}
	return nil
}

func ageLabel(months int) string {
	if months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", months)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
