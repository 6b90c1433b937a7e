// Command tunesca shows the main menu: a looping background video with the
// NEW GAME and SYSTEM buttons and looping music.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/faiface/beep/speaker"
	_ "github.com/silbinarywolf/preferdiscretegpu"
	"github.com/sirupsen/logrus"

	"github.com/erparts/tunesca/internal/config"
	"github.com/erparts/tunesca/internal/logging"
	"github.com/erparts/tunesca/internal/media"
	"github.com/erparts/tunesca/internal/menu"
	"github.com/erparts/tunesca/internal/playback"
	"github.com/erparts/tunesca/internal/screen"
	"github.com/erparts/tunesca/internal/soundtrack"
)

func main() {
	envFile := flag.String("env", ".env", "Optional .env file with TUNESCA_* settings")
	video := flag.String("video", "", "Background video (overrides TUNESCA_VIDEO)")
	music := flag.String("music", "", "Background music (overrides TUNESCA_MUSIC)")
	flag.Parse()

	envErr := config.Load(*envFile)
	cfg := config.FromEnv()
	if *video != "" {
		cfg.VideoPath = *video
	}
	if *music != "" {
		cfg.MusicPath = *music
	}

	session := logging.Configure(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if envErr != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"file":     *envFile,
		}).Debug("No env file, using the environment and defaults")
	}

	logrus.WithFields(logrus.Fields{
		"function": "main",
		"session":  session,
		"video":    cfg.VideoPath,
		"music":    cfg.MusicPath,
	}).Info("Starting menu")

	if err := run(cfg); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"error":    err.Error(),
			"fatal":    playback.IsFatal(err),
		}).Error(failureMessage(err))
		os.Exit(1)
	}

	logrus.WithField("function", "main").Info("Menu closed")
}

func run(cfg config.Menu) error {
	source, err := media.OpenVideo(cfg.VideoPath)
	if err != nil {
		return fmt.Errorf("couldn't open the background video: %w", err)
	}
	defer source.Close()

	converter, closeConverter, err := newConverter(cfg.Converter, source)
	if err != nil {
		return err
	}
	defer closeConverter()

	stopMusic := startMusic(cfg.MusicPath, cfg.MusicVolume)
	defer stopMusic()

	labels, err := screen.NewLabels(cfg.FontSize)
	if err != nil {
		return err
	}

	loop, err := menu.New(menu.Options{
		Source:         source,
		Converter:      converter,
		Textures:       screen.Textures{},
		Labels:         labels,
		Cursor:         &screen.Cursor{},
		Regions:        menu.Regions,
		Actions:        menu.DefaultActions(),
		DecodeAttempts: cfg.DecodeAttempts,
	})
	if err != nil {
		return err
	}

	tps := cfg.TPS
	if tps <= 0 {
		tps = frameRate(source)
	}

	err = screen.NewGame(loop, cfg.Width, cfg.Height).Run(cfg.Title, tps, menu.ErrExit)

	stats := loop.Stats()
	logrus.WithFields(logrus.Fields{
		"function":  "run",
		"ticks":     stats.Ticks,
		"presented": stats.Presented,
		"uploads":   stats.Uploads,
		"loopbacks": stats.LoopBacks,
		"skipped":   stats.Skipped,
	}).Info("Menu statistics")

	return err
}

// failureMessage tells media and configuration problems, which a restart
// won't fix, apart from runtime failures.
func failureMessage(err error) string {
	if playback.IsFatal(err) {
		return "Menu can't run with this media or configuration"
	}

	return "Menu failed"
}

// newConverter picks the pixel converter by name.
func newConverter(name string, source *media.VideoSource) (playback.Converter, func(), error) {
	switch name {
	case "software":
		width, height := source.Geometry()
		converter, err := playback.NewSoftwareConverter(width, height)
		if err != nil {
			return nil, nil, err
		}
		return converter, func() {}, nil

	case "swscale", "":
		scaler, err := media.NewScaler(source)
		if err != nil {
			return nil, nil, fmt.Errorf("couldn't create the scaler: %w", err)
		}
		return scaler, func() { scaler.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown converter %q", name)
	}
}

// frameRate rounds the video frame rate, falling back to 30.
func frameRate(source *media.VideoSource) int {
	num, den := source.FrameRate()
	if num <= 0 || den <= 0 {
		return 30
	}

	return int(math.Round(float64(num) / float64(den)))
}

// startMusic plays path in a loop on the speaker. Music is optional: any
// failure is logged and the menu runs silent.
func startMusic(path string, volume float64) func() {
	if path == "" {
		return func() {}
	}

	logger := logrus.WithFields(logrus.Fields{
		"function": "startMusic",
		"music":    path,
	})

	audio, err := media.OpenAudio(path)
	if err != nil {
		logger.WithField("error", err.Error()).Warn("Couldn't open the music, running silent")
		return func() {}
	}

	track := soundtrack.NewTrack(audio)
	sr := track.Format().SampleRate
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		logger.WithField("error", err.Error()).Warn("Couldn't open the audio device, running silent")
		audio.Close()
		return func() {}
	}

	speaker.Play(track.Volume(volume))
	logger.WithField("sample_rate", int(sr)).Info("Playing music")

	return func() {
		speaker.Clear()

		speaker.Lock()
		err, loops := track.Err(), track.Loops()
		speaker.Unlock()

		if err != nil {
			logger.WithField("error", err.Error()).Warn("Music stopped early")
		}
		logger.WithField("loops", loops).Debug("Music stopped")

		audio.Close()
	}
}
