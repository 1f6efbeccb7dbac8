// internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Source  SourceConfig
	Dest    DestConfig
	Run     RunConfig
	Publish PublishConfig
}

// SourceConfig locates the daily extract files.
type SourceConfig struct {
	Dir string
}

// DestConfig locates the workbook, chart and portal artifacts.
type DestConfig struct {
	Dir          string
	WorkbookName string
	ChartName    string
	PortalName   string
	TemplateDir  string
}

// RunConfig holds the knobs of a single pipeline run.
type RunConfig struct {
	DemoMode    bool
	DemoDate    string // YYYYMMDD, used when DemoMode is on
	TargetValue float64
	ChartDays   int
	LogLevel    string
}

// PublishConfig configures optional S3-compatible publication of the
// portal artifacts. Disabled unless an endpoint is set.
type PublishConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// Enabled reports whether object-storage publication is configured.
func (p PublishConfig) Enabled() bool {
	return p.Endpoint != ""
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SOURCE_DIR", "./data/extracts")
		viper.SetDefault("DEST_DIR", "./output")
		viper.SetDefault("WORKBOOK_NAME", "Inventory Value.xlsx")
		viper.SetDefault("CHART_NAME", "behavior_trend.png")
		viper.SetDefault("PORTAL_NAME", "index.html")
		viper.SetDefault("TEMPLATE_DIR", "./web")
		viper.SetDefault("DEMO_MODE", false)
		viper.SetDefault("DEMO_DATE", "20260206")
		viper.SetDefault("TARGET_VALUE", 1875000000.0)
		viper.SetDefault("CHART_DAYS", 7)
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("PUBLISH_ENDPOINT", "")
		viper.SetDefault("PUBLISH_ACCESS_KEY", "")
		viper.SetDefault("PUBLISH_SECRET_KEY", "")
		viper.SetDefault("PUBLISH_BUCKET", "")
		viper.SetDefault("PUBLISH_PREFIX", "inventory-portal")
		viper.SetDefault("PUBLISH_USE_SSL", true)

		// Read from environment variables
		viper.AutomaticEnv()

		// Ensure the destination directory exists
		ensureDir(viper.GetString("DEST_DIR"))

		instance = &Config{
			Source: SourceConfig{
				Dir: viper.GetString("SOURCE_DIR"),
			},
			Dest: DestConfig{
				Dir:          viper.GetString("DEST_DIR"),
				WorkbookName: viper.GetString("WORKBOOK_NAME"),
				ChartName:    viper.GetString("CHART_NAME"),
				PortalName:   viper.GetString("PORTAL_NAME"),
				TemplateDir:  viper.GetString("TEMPLATE_DIR"),
			},
			Run: RunConfig{
				DemoMode:    viper.GetBool("DEMO_MODE"),
				DemoDate:    viper.GetString("DEMO_DATE"),
				TargetValue: viper.GetFloat64("TARGET_VALUE"),
				ChartDays:   viper.GetInt("CHART_DAYS"),
				LogLevel:    viper.GetString("LOG_LEVEL"),
			},
			Publish: PublishConfig{
				Endpoint:  viper.GetString("PUBLISH_ENDPOINT"),
				AccessKey: viper.GetString("PUBLISH_ACCESS_KEY"),
				SecretKey: viper.GetString("PUBLISH_SECRET_KEY"),
				Bucket:    viper.GetString("PUBLISH_BUCKET"),
				Prefix:    viper.GetString("PUBLISH_PREFIX"),
				UseSSL:    viper.GetBool("PUBLISH_USE_SSL"),
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
