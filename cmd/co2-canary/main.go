// Command co2-canary subscribes to an air-quality feed over MQTT and drives
// the mechanical canary's escalating reactions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sweeney/co2-canary/internal/actuator"
	"github.com/sweeney/co2-canary/internal/conn"
	"github.com/sweeney/co2-canary/internal/gpio"
	"github.com/sweeney/co2-canary/internal/logic"
	"github.com/sweeney/co2-canary/internal/mode"
	"github.com/sweeney/co2-canary/internal/mqtt"
	"github.com/sweeney/co2-canary/internal/notify"
	"github.com/sweeney/co2-canary/internal/reading"
	"github.com/sweeney/co2-canary/internal/sched"
	"github.com/sweeney/co2-canary/internal/status"
	"github.com/sweeney/co2-canary/internal/web"
)

// defaultEnvFile is written by the deployment playbook.
const defaultEnvFile = "/etc/co2-canary.env"

type options struct {
	broker   string
	topic    string
	clientID string

	tick         time.Duration
	linkRetry    time.Duration
	sessionRetry time.Duration
	dwell        time.Duration
	pass         time.Duration

	thresholds logic.Thresholds

	audio    bool
	httpAddr string

	pinAudioOn  int
	pinAudioOff int
	pinWing     int
	pinHatch    int
	pinPerch    int
	audioDir    string

	telegramToken string
	telegramChat  int64
}

func main() {
	loadEnvFiles()

	broker := flag.String("broker", envOr("CANARY_BROKER", "tcp://192.168.1.200:1883"), "MQTT broker address")
	topic := flag.String("topic", envOr("CANARY_TOPIC", mqtt.DefaultTopic), "MQTT readings topic")
	clientID := flag.String("client-id", envOr("CANARY_CLIENT_ID", "co2-canary"), "MQTT client identity")
	tick := flag.Duration("tick", time.Second, "severity evaluation interval")
	linkRetry := flag.Duration("link-retry", 5*time.Second, "minimum interval between link reconnect attempts")
	sessionRetry := flag.Duration("session-retry", 10*time.Second, "minimum interval between session reconnect attempts")
	dwell := flag.Duration("dwell", 30*time.Second, "terminal visual dwell time")
	pass := flag.Duration("pass", 50*time.Millisecond, "scheduler pass interval")
	tStuffy := flag.Int("threshold-stuffy", 1000, "CO2 ppm above which the air is stuffy")
	tOpenWindow := flag.Int("threshold-open-window", 2000, "CO2 ppm above which a window must be opened")
	tPassOut := flag.Int("threshold-pass-out", 3000, "CO2 ppm above which the canary passes out")
	tExpire := flag.Int("threshold-expire", 4000, "CO2 ppm at which the canary expires")
	audio := flag.Bool("audio", true, "start with audio enabled")
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	pinAudioOn := flag.Int("pin-audio-on", gpio.PinAudioOn, "BCM pin number for the audio-enable button")
	pinAudioOff := flag.Int("pin-audio-off", gpio.PinAudioOff, "BCM pin number for the audio-disable button")
	pinWing := flag.Int("pin-wing", actuator.DefaultPinWing, "BCM pin number for the wing servo")
	pinHatch := flag.Int("pin-hatch", actuator.DefaultPinHatch, "BCM pin number for the cage hatch")
	pinPerch := flag.Int("pin-perch", actuator.DefaultPinPerch, "BCM pin number for the perch release")
	audioDir := flag.String("audio-dir", envOr("CANARY_AUDIO_DIR", "/usr/share/co2-canary"), "directory holding the audio tracks")
	telegramToken := flag.String("telegram-token", os.Getenv("CANARY_TELEGRAM_TOKEN"), "Telegram bot token for operator notifications (empty to disable)")
	telegramChat := flag.Int64("telegram-chat", envInt64("CANARY_TELEGRAM_CHAT", 0), "Telegram chat ID for operator notifications")
	probe := flag.Bool("probe", false, "Probe broker reachability and exit")

	flag.Parse()

	opts := options{
		broker:       *broker,
		topic:        *topic,
		clientID:     *clientID,
		tick:         *tick,
		linkRetry:    *linkRetry,
		sessionRetry: *sessionRetry,
		dwell:        *dwell,
		pass:         *pass,
		thresholds: logic.Thresholds{
			Stuffy:     *tStuffy,
			OpenWindow: *tOpenWindow,
			PassOut:    *tPassOut,
			Expire:     *tExpire,
		},
		audio:         *audio,
		httpAddr:      *httpAddr,
		pinAudioOn:    *pinAudioOn,
		pinAudioOff:   *pinAudioOff,
		pinWing:       *pinWing,
		pinHatch:      *pinHatch,
		pinPerch:      *pinPerch,
		audioDir:      *audioDir,
		telegramToken: *telegramToken,
		telegramChat:  *telegramChat,
	}

	if err := opts.thresholds.Validate(); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if *probe {
		if err := runProbe(opts.broker); err != nil {
			log.Fatalf("fatal: %v", err)
		}
		return
	}

	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// runProbe reports broker reachability and exits.
func runProbe(broker string) error {
	transport, err := mqtt.NewRealTransport(broker)
	if err != nil {
		return err
	}
	if err := transport.LinkConnect(); err != nil {
		fmt.Printf("broker %s: UNREACHABLE (%v)\n", broker, err)
		return nil
	}
	fmt.Printf("broker %s: REACHABLE\n", broker)
	return nil
}

func run(opts options) error {
	// Initialize transport
	transport, err := mqtt.NewRealTransport(opts.broker)
	if err != nil {
		return fmt.Errorf("init transport: %w", err)
	}
	defer transport.Close()

	// Initialize mode toggle and its buttons
	toggle := mode.NewToggle(opts.audio)
	buttons, err := gpio.NewRealButtons(opts.pinAudioOn, opts.pinAudioOff)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()
	if err := buttons.Watch(toggle.Enable, toggle.Disable); err != nil {
		return fmt.Errorf("watch buttons: %w", err)
	}

	// Initialize actuator
	act, err := actuator.NewRealActuator(opts.pinWing, opts.pinHatch, opts.pinPerch, opts.audioDir)
	if err != nil {
		return fmt.Errorf("init actuator: %w", err)
	}
	defer act.Close()

	// Operator channel (best-effort; absence never blocks startup)
	var notifier notify.Notifier = notify.Nop{}
	if opts.telegramToken != "" && opts.telegramChat != 0 {
		tg, err := notify.NewTelegram(opts.telegramToken, opts.telegramChat)
		if err != nil {
			log.Printf("telegram notifier disabled: %v", err)
		} else {
			notifier = tg
			defer tg.Close()
			log.Printf("telegram notifier enabled for chat %d", opts.telegramChat)
		}
	}

	// Status tracker doubles as the display renderer
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:         opts.tick.Milliseconds(),
		LinkRetryMs:    opts.linkRetry.Milliseconds(),
		SessionRetryMs: opts.sessionRetry.Milliseconds(),
		DwellMs:        opts.dwell.Milliseconds(),
		Broker:         opts.broker,
		Topic:          opts.topic,
		HTTPAddr:       opts.httpAddr,
		Thresholds:     opts.thresholds,
	})

	// Start HTTP status server
	if opts.httpAddr != "" {
		srv := web.New(opts.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", opts.httpAddr)
	}

	supervisor := conn.New(transport, opts.clientID, opts.topic, opts.linkRetry, opts.sessionRetry, notifier)
	store := reading.NewStore()

	scheduler := sched.New(sched.Config{
		Thresholds:    opts.thresholds,
		TickInterval:  opts.tick,
		TerminalDwell: opts.dwell,
		PassInterval:  opts.pass,
	}, sched.Deps{
		Supervisor: supervisor,
		Store:      store,
		Toggle:     toggle,
		Actuator:   act,
		Display:    tracker,
		Notifier:   notifier,
	})

	log.Printf("started: broker=%s topic=%s tick=%v thresholds=%d/%d/%d/%d",
		opts.broker, opts.topic, opts.tick,
		opts.thresholds.Stuffy, opts.thresholds.OpenWindow,
		opts.thresholds.PassOut, opts.thresholds.Expire)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = scheduler.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Printf("received signal, shutting down")
		return nil
	}
	return err
}

// loadEnvFiles overlays env files onto the environment before flag defaults
// are computed. Flags still win over env values.
func loadEnvFiles() {
	for _, path := range []string{".env", defaultEnvFile} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("env file %s: %v", path, err)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("env %s: cannot parse %q: %v", key, v, err)
		return fallback
	}
	return n
}
