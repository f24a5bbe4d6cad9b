// cmd/pzem-monitor/bench.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tamzrod/pzem-monitor/internal/poller"
	"github.com/tamzrod/pzem-monitor/internal/status"
	"github.com/tamzrod/pzem-monitor/internal/validate"
)

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "poll both meters back to back and report throughput",
		Flags: []cli.Flag{
			configFlag,
			&cli.DurationFlag{Name: "duration", Usage: "how long to run", Value: 30 * time.Second},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			meters, err := buildMeters(cfg)
			if err != nil {
				return err
			}

			pollers := make([]*poller.Poller, 0, len(meters))
			for _, m := range meters {
				ch, err := m.Open()
				if err != nil {
					for _, p := range pollers {
						_ = p.Detach()
					}
					return fmt.Errorf("open %s: %w", m.Poller.MeterID(), err)
				}
				m.Poller.Attach(ch)
				pollers = append(pollers, m.Poller)
			}
			defer func() {
				for _, p := range pollers {
					_ = p.Detach()
				}
			}()

			ctx, cancel := context.WithTimeout(c.Context, c.Duration("duration"))
			defer cancel()

			counters := map[string]*status.FaultCounters{}
			for _, p := range pollers {
				counters[p.MeterID()] = &status.FaultCounters{}
			}

			start := time.Now()
			poller.Run(ctx, pollers, cfg.Monitor.Poll.InterChannelDelay(), func(res poller.PollResult) {
				o := res.Classify()
				if o == status.OutcomeSuccess && !validate.Check(res.Reading).Valid() {
					o = status.OutcomeInvalid
				}
				counters[res.MeterID].Record(o)
			})
			elapsed := time.Since(start)

			w := c.App.Writer
			for _, p := range pollers {
				fc := counters[p.MeterID()]
				fmt.Fprintf(w, "%s: %.2f readings/s, success=%d invalid=%d timeout=%d error=%d (%.1f%%)\n",
					p.MeterID(),
					float64(fc.Success)/elapsed.Seconds(),
					fc.Success, fc.Invalid, fc.Timeout, fc.Error,
					fc.SuccessRate(),
				)
			}
			return nil
		},
	}
}
