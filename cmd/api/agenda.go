package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-dashboard/internal/app"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/schedule"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
)

func newAgendaCmd() *cobra.Command {
	var (
		date string
		view string
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Print the day or week schedule of the sample data set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lg, err := setup()
			if err != nil {
				return err
			}
			mode, err := schedule.ParseViewMode(view)
			if err != nil {
				return err
			}
			a, err := app.New(cfg, lg)
			if err != nil {
				return err
			}

			day := a.Schedule.Today()
			if date != "" {
				if day, err = datekey.ParseDay(date); err != nil {
					return err
				}
			}
			return printAgenda(cmd.Context(), cmd.OutOrStdout(), a.Schedule, mode, day)
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "day to show as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&view, "view", "day", "day or week")
	return cmd
}

func printAgenda(ctx context.Context, out io.Writer, sched *schedule.Service, mode model.ViewMode, day datekey.Day) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	if mode == model.ViewWeek {
		wv := sched.WeekView(ctx, day)
		fmt.Fprintf(w, "Week %s - %s\n", wv.Start, wv.End)
		for _, d := range wv.Days {
			fmt.Fprintf(w, "\n%s %s\n", d.Weekday, d.Date)
			writeAppointments(w, d.Appointments)
		}
		return w.Flush()
	}

	dv := sched.DayView(ctx, day)
	fmt.Fprintf(w, "%s %s\n", day.Weekday(), dv.Date)
	for _, b := range dv.Buckets {
		fmt.Fprintf(w, "\n%s\n", b.Label)
		writeAppointments(w, b.Appointments)
	}
	return w.Flush()
}

func writeAppointments(w io.Writer, appts []model.ScheduledAppointment) {
	if len(appts) == 0 {
		fmt.Fprintln(w, "  -")
		return
	}
	for _, a := range appts {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d min\n",
			a.Start.Format("15:04"), a.PatientName, a.Type, a.DurationMinutes)
	}
}
