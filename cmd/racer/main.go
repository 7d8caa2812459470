package main

import (
	"flag"
	"os"
	"strconv"

	"racer/internal/game"
	"racer/internal/logging"
	"racer/internal/sim"
)

func main() {
	var (
		trackPath  string
		assetsDir  string
		recordPath string
		headless   bool
		ticks      int
		logLevel   string
		noColor    bool
		mute       bool
	)

	flag.StringVar(&trackPath, "track", getEnv("RACER_TRACK", ""), "Track definition JSON file. Default: built-in course")
	flag.StringVar(&assetsDir, "assets", getEnv("RACER_ASSETS", ""), "Directory with sprite images overriding the procedural ones")
	flag.StringVar(&recordPath, "record", getEnv("RACER_RECORD", ""), "Write per-tick telemetry CSV to this file")
	flag.BoolVar(&headless, "headless", getEnvBool("RACER_HEADLESS", false), "Run without a window")
	flag.IntVar(&ticks, "ticks", getEnvInt("RACER_TICKS", 3600), "Number of ticks to simulate in headless mode")
	flag.StringVar(&logLevel, "log-level", getEnv("RACER_LOG_LEVEL", "info"), "Log level: trace, debug, info, warn, error, off")
	flag.BoolVar(&noColor, "no-color", getEnvBool("RACER_NO_COLOR", false), "Disable coloured console output")
	flag.BoolVar(&mute, "mute", getEnvBool("RACER_MUTE", false), "Disable sound")
	flag.Parse()

	log := logging.Setup(logLevel, os.Stderr, noColor)
	opts := sim.Options{
		TrackPath:  trackPath,
		AssetsDir:  assetsDir,
		RecordPath: recordPath,
		Log:        log,
		Notify:     logging.NewNotifier(os.Stdout, noColor),
	}

	if headless {
		runner, err := sim.New(opts)
		if err != nil {
			log.Error().Err(err).Msg("failed to set up race")
			os.Exit(1)
		}
		runner.RunHeadless(ticks)
		if err := runner.Close(); err != nil {
			log.Error().Err(err).Msg("failed to finish race")
			os.Exit(1)
		}
		return
	}

	err := game.RunDesktop(game.Options{Sim: opts, FPS: game.FPS, Mute: mute})
	if err != nil {
		log.Error().Err(err).Msg("failed to set up race")
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
