package main

import (
	"fmt"
	"text/tabwriter"

	"babysafety/internal/client/api"
	"babysafety/internal/client/guard"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (a *app) babyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "baby",
		Aliases: []string{"babies"},
		Short:   "Manage baby profiles",
	}
	cmd.AddCommand(a.babyListCmd(), a.babyAddCmd(), a.babyUpdateCmd(), a.babyDeleteCmd())
	return cmd
}

func babyFlags(f *pflag.FlagSet, in *api.BabyInput) {
	f.StringVar(&in.Name, "name", "", "baby name")
	f.StringVar(&in.BirthDate, "birth-date", "", "YYYY-MM-DD")
	f.StringVar(&in.Gender, "gender", "", "gender")
	f.StringVar(&in.Weight, "weight", "", "weight (free text, e.g. 6.2kg)")
	f.StringVar(&in.Height, "height", "", "height (free text, e.g. 61cm)")
	f.StringVar(&in.HealthIssues, "health-issues", "", "known health issues")
	f.StringVar(&in.Allergies, "allergies", "", "allergies")
	f.StringVar(&in.Notes, "notes", "", "notes")
}

func (a *app) babyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your babies",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.guarded(at(guard.BabyProfile), func(cmd *cobra.Command, args []string) error {
		babies, err := a.client.MyBabies(cmd.Context(), a.token())
		if err != nil {
			return err
		}
		if len(babies) == 0 {
			fmt.Fprintln(a.out, "No babies yet.")
			return nil
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tBORN\tAGE\tGENDER\tWEIGHT\tHEIGHT")
		for _, b := range babies {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				b.ID, b.Name, b.BirthDate, ageLabel(b.AgeInMonths), dash(b.Gender), dash(b.Weight), dash(b.Height))
		}
		return tw.Flush()
	})
	return cmd
}

func (a *app) babyAddCmd() *cobra.Command {
	var in api.BabyInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a baby profile",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.guarded(at(guard.BabyProfile), func(cmd *cobra.Command, args []string) error {
		b, err := a.client.AddBaby(cmd.Context(), a.token(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s (%s) id=%s\n", b.Name, ageLabel(b.AgeInMonths), b.ID)
		return nil
	})
	babyFlags(cmd.Flags(), &in)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("birth-date")
	return cmd
}

// babyUpdateCmd reemplaza el perfil completo: los flags omitidos quedan vacíos.
func (a *app) babyUpdateCmd() *cobra.Command {
	var in api.BabyInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a baby profile",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.guarded(at(guard.BabyProfile), func(cmd *cobra.Command, args []string) error {
		b, err := a.client.UpdateBaby(cmd.Context(), a.token(), args[0], in)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s (%s) id=%s\n", b.Name, ageLabel(b.AgeInMonths), b.ID)
		return nil
	})
	babyFlags(cmd.Flags(), &in)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("birth-date")
	return cmd
}

func (a *app) babyDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a baby and its feedings",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.guarded(at(guard.BabyProfile), func(cmd *cobra.Command, args []string) error {
		return a.client.DeleteBaby(cmd.Context(), a.token(), args[0])
	})
	return cmd
}
