package configuration

import (
	"runtime"

	"github.com/spf13/viper"
)

type Config struct {
	JpegQuality int
	LogLevel    string
	MaxWorkers  int
	OutputDir   string
	ThumbWidth  int
}

/*
LoadConfig builds the runtime settings from defaults overridable through
AZMAGALL_-prefixed environment variables. The command line only carries
the spec'd positional arguments and the --external-thumbs switch.
*/
func LoadConfig() Config {
	v := viper.New()

	v.SetEnvPrefix("azmagall")
	v.AutomaticEnv()

	v.SetDefault("jpeg_quality", 85)
	v.SetDefault("log_level", "info")
	v.SetDefault("max_workers", runtime.NumCPU())
	v.SetDefault("output_dir", "gallery")
	v.SetDefault("thumb_width", 320)

	return Config{
		JpegQuality: v.GetInt("jpeg_quality"),
		LogLevel:    v.GetString("log_level"),
		MaxWorkers:  v.GetInt("max_workers"),
		OutputDir:   v.GetString("output_dir"),
		ThumbWidth:  v.GetInt("thumb_width"),
	}
}
