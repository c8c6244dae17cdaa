//go:build !tinygo

package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gortos/internal/buildinfo"
	"gortos/port"
	"gortos/rtos"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the producer/consumer scenario",
	RunE:  runScenario,
}

var runConfigPath string

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "scenario TOML file")
	rootCmd.AddCommand(runCmd)
}

func newLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().
		Str("app", "gortosdemo").Str("build", buildinfo.Short()).Logger()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenarioConfig(runConfigPath)
	if err != nil {
		return err
	}

	logger := newLogger()
	hostCfg := port.HostConfig{TickPeriod: cfg.TickPeriod}
	if cfg.Trace {
		trace := logger.With().Str("layer", "port").Logger()
		hostCfg.Trace = &trace
	}
	p := port.NewHost(hostCfg)

	rtos.SetPanicHandler(func(info rtos.PanicInfo) {
		logger.Error().Str("task", info.Task).Interface("value", info.Value).
			Msg("task panicked")
	})

	queue := rtos.NewQueue[int](p, cfg.QueueCapacity)
	if !queue.Init() {
		logger.Fatal().Msg("queue init failed")
	}
	events := rtos.NewCounter(p, cfg.CounterMax)
	if !events.Init() {
		logger.Fatal().Msg("counter init failed")
	}

	done := make(chan struct{})
	consumer := rtos.NewTask(p, rtos.TaskConfig{
		Name: "consumer",
		Func: func(any) {
			var v int
			for queue.Receive(&v, rtos.Forever) {
				if v < 0 {
					close(done)
					return
				}
				logger.Info().Int("item", v).Int("free", queue.FreeSpace()).
					Msg("consumed")
			}
		},
	})
	if !consumer.Init() {
		logger.Fatal().Msg("consumer init failed")
	}

	var producer *rtos.Task
	producer = rtos.NewTask(p, rtos.TaskConfig{
		Name: "producer",
		Arg:  cfg.Events,
		Func: func(arg any) {
			count := arg.(int)
			producer.SyncWaitInit()
			for i := 0; i < count; i++ {
				producer.SyncWait(cfg.ProduceEvery)
				queue.Send(i, rtos.Forever)
				if i%3 == 0 {
					p.RunInISR(func() { events.Give() })
				}
			}
			queue.Send(-1, rtos.Forever)
		},
	})
	if !producer.Init() {
		logger.Fatal().Msg("producer init failed")
	}

	heartbeat := rtos.NewTimer(p, rtos.TimerConfig{
		Name:       "heartbeat",
		AutoReload: true,
		Tag:        "hb",
		Callback: func(tag any) {
			pending := 0
			for events.Take(0) {
				pending++
			}
			logger.Info().Uint64("tick", uint64(rtos.TickCount(p))).
				Int("events", pending).Msg("heartbeat")
		},
	})
	if !heartbeat.Init() {
		logger.Fatal().Msg("timer init failed")
	}
	heartbeat.Start(cfg.HeartbeatEvery)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-done:
		logger.Info().Int("events", cfg.Events).Msg("scenario complete")
	case <-ctx.Done():
		logger.Info().Msg("interrupted")
	}

	heartbeat.Stop()
	heartbeat.Destroy()
	logger.Info().Uint64("deferred_yields", p.YieldRequests()).Msg("shutdown")
	return nil
}
