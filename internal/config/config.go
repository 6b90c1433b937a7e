// Package config reads the menu settings from the environment, optionally
// seeded from a .env file, on top of compiled defaults.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Menu holds every setting of the menu screen.
type Menu struct {
	VideoPath      string
	MusicPath      string
	Title          string
	Width          int
	Height         int
	FontSize       float64
	DecodeAttempts int
	// TPS is the update rate. Zero means the video's frame rate.
	TPS int
	// MusicVolume is a beep volume in powers of two; 0 is unchanged.
	MusicVolume float64
	// Converter selects the pixel converter: "swscale" or "software".
	Converter string
	LogLevel  string
	LogFormat string
}

// Defaults returns the built-in settings.
func Defaults() Menu {
	return Menu{
		VideoPath:      "back.mp4",
		MusicPath:      "music.mp3",
		Title:          "TUNESCA",
		Width:          1280,
		Height:         800,
		FontSize:       34,
		DecodeAttempts: 8,
		TPS:            0,
		MusicVolume:    0,
		Converter:      "swscale",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load seeds the process environment from env files, ".env" when none are
// named. Variables already set in the environment win. A missing file is
// reported but the caller may go on with the environment and Defaults.
func Load(paths ...string) error {
	if len(paths) == 0 {
		return godotenv.Load(".env")
	}

	return godotenv.Load(paths...)
}

// FromEnv returns the defaults overridden by TUNESCA_* and LOG_* variables.
func FromEnv() Menu {
	d := Defaults()

	return Menu{
		VideoPath:      GetEnv("TUNESCA_VIDEO", d.VideoPath),
		MusicPath:      GetEnv("TUNESCA_MUSIC", d.MusicPath),
		Title:          GetEnv("TUNESCA_TITLE", d.Title),
		Width:          GetEnvInt("TUNESCA_WIDTH", d.Width),
		Height:         GetEnvInt("TUNESCA_HEIGHT", d.Height),
		FontSize:       GetEnvFloat("TUNESCA_FONT_SIZE", d.FontSize),
		DecodeAttempts: GetEnvInt("TUNESCA_DECODE_ATTEMPTS", d.DecodeAttempts),
		TPS:            GetEnvInt("TUNESCA_TPS", d.TPS),
		MusicVolume:    GetEnvFloat("TUNESCA_MUSIC_VOLUME", d.MusicVolume),
		Converter:      GetEnv("TUNESCA_CONVERTER", d.Converter),
		LogLevel:       GetEnv("LOG_LEVEL", d.LogLevel),
		LogFormat:      GetEnv("LOG_FORMAT", d.LogFormat),
	}
}

// GetEnv reads key, falling back when it is unset or empty.
func GetEnv(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}

	return value
}

// GetEnvInt reads key as a decimal integer. Unparsable values fall back.
func GetEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}

	return n
}

// GetEnvFloat reads key as a float. Unparsable values fall back.
func GetEnvFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(GetEnv(key, ""), 64)
	if err != nil {
		return fallback
	}

	return f
}
