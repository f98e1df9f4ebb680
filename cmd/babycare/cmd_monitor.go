package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"babysafety/internal/client/guard"
	"babysafety/internal/domain/monitoring"

	"github.com/spf13/cobra"
)

func (a *app) monitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Object and emotion detection monitors (simulated)",
		Long: `Monitors run on the server, one per account and kind (object | emotion).
Detections are simulated; alerts last 5 seconds after a hazardous event.`,
	}
	cmd.AddCommand(
		a.monitorActionCmd("start", "Start a monitor", func(cmd *cobra.Command, kind monitoring.Kind) error {
			res, err := a.client.StartMonitor(cmd.Context(), a.token(), kind)
			if err != nil {
				return err
			}
			if !res.Changed {
				fmt.Fprintf(a.out, "%s monitor already active.\n", kind)
			}
			printSnapshot(a.out, res.Snapshot)
			return nil
		}),
		a.monitorActionCmd("stop", "Stop a monitor", func(cmd *cobra.Command, kind monitoring.Kind) error {
			res, err := a.client.StopMonitor(cmd.Context(), a.token(), kind)
			if err != nil {
				return err
			}
			if !res.Changed {
				fmt.Fprintf(a.out, "%s monitor already idle.\n", kind)
			}
			printSnapshot(a.out, res.Snapshot)
			return nil
		}),
		a.monitorActionCmd("status", "Show monitor state, alert and recent events", func(cmd *cobra.Command, kind monitoring.Kind) error {
			snap, err := a.client.MonitorStatus(cmd.Context(), a.token(), kind)
			if err != nil {
				return err
			}
			printSnapshot(a.out, snap)
			return nil
		}),
		a.monitorActionCmd("emergency", "Request emergency help (simulated, nothing is dialed)", func(cmd *cobra.Command, kind monitoring.Kind) error {
			ack, err := a.client.Emergency(cmd.Context(), a.token(), kind)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s (ref %s)\n", ack.Message, ack.ID)
			return nil
		}),
		a.monitorWatchCmd(),
	)
	return cmd
}

func kindArg(args []string) (monitoring.Kind, error) {
	if len(args) != 1 {
		return "", errors.New("expected one monitor kind: object | emotion")
	}
	return monitoring.ParseKind(args[0])
}

// monitorRoute: object => /object-detection, emotion => /emotion-detection.
func monitorRoute(args []string) string {
	if k, err := kindArg(args); err == nil && k == monitoring.KindEmotion {
		return guard.EmotionDetection
	}
	return guard.ObjectDetection
}

func validKind(_ *cobra.Command, args []string) error {
	_, err := kindArg(args)
	return err
}

func (a *app) monitorActionCmd(use, short string, fn func(*cobra.Command, monitoring.Kind) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:       use + " <object|emotion>",
		Short:     short,
		Args:      validKind,
		ValidArgs: []string{string(monitoring.KindObject), string(monitoring.KindEmotion)},
	}
	cmd.RunE = a.guarded(monitorRoute, func(cmd *cobra.Command, args []string) error {
		kind, _ := kindArg(args)
		return fn(cmd, kind)
	})
	return cmd
}

// monitorWatchCmd consulta el estado cada interval e imprime solo lo nuevo.
func (a *app) monitorWatchCmd() *cobra.Command {
	var (
		interval time.Duration
		count    int
	)
	cmd := &cobra.Command{
		Use:   "watch <object|emotion>",
		Short: "Follow a monitor until interrupted",
		Args:  validKind,
	}
	cmd.RunE = a.guarded(monitorRoute, func(cmd *cobra.Command, args []string) error {
		if interval <= 0 {
			return errors.New("--interval must be positive")
		}
		kind, _ := kindArg(args)
		ctx := cmd.Context()

		w := &watcher{out: a.out, seen: map[string]bool{}}
		t := time.NewTicker(interval)
		defer t.Stop()

		for polls := 0; count <= 0 || polls < count; polls++ {
			if polls > 0 {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
				}
			}
			snap, err := a.client.MonitorStatus(ctx, a.token(), kind)
			if err != nil {
				return err
			}
			w.update(snap)
		}
		return nil
	})
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "poll interval")
	cmd.Flags().IntVar(&count, "count", 0, "stop after N polls (0 = until interrupted)")
	return cmd
}

type watcher struct {
	out   io.Writer
	seen  map[string]bool
	state monitoring.State
	alert monitoring.AlertStatus
}

func (w *watcher) update(s monitoring.Snapshot) {
	if s.State != w.state {
		fmt.Fprintf(w.out, "monitor %s\n", s.State)
		w.state = s.State
	}
	for _, e := range s.History {
		if w.seen[e.ID] {
			continue
		}
		w.seen[e.ID] = true
		fmt.Fprintln(w.out, eventLine(e))
	}
	if s.Alert != w.alert {
		if s.Alert == monitoring.AlertAlarm {
			fmt.Fprintln(w.out, "!! ALERT: potential danger detected")
		} else if w.alert != "" {
			fmt.Fprintln(w.out, "alert cleared")
		}
		w.alert = s.Alert
	}
}

func printSnapshot(out io.Writer, s monitoring.Snapshot) {
	fmt.Fprintf(out, "%s monitor: %s, status %s\n", s.Kind, s.State, s.Alert)
	if s.AlertEvent != nil && s.Alert == monitoring.AlertAlarm {
		fmt.Fprintf(out, "alert: %s\n", eventLine(*s.AlertEvent))
	}
	if len(s.History) == 0 {
		return
	}
	fmt.Fprintln(out, "recent:")
	for _, e := range s.History {
		fmt.Fprintf(out, "  %s\n", eventLine(e))
	}
	for _, c := range s.Tally {
		if c.Count == 0 {
			continue
		}
		fmt.Fprintf(out, "  %-12s %3d  %5.1f%%\n", c.Category, c.Count, c.Percentage)
	}
}

func eventLine(e monitoring.Event) string {
	line := fmt.Sprintf("%s %-12s %3.0f%%", e.Timestamp.Format("15:04:05"), e.Category, e.Confidence)
	if e.Hazardous {
		line += " HAZARD"
	}
	if e.Reason != "" {
		line += " (" + e.Reason + ")"
	}
	return line
}
