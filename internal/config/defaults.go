package config

const (
	defaultStoreDir  = "~/.local/share/picbox/store"
	defaultDataDir   = "~/.local/share/picbox"
	defaultLogDir    = "~/.local/share/picbox/logs"
	defaultPageSize  = 20
	defaultMaxWidth  = 200
	defaultMaxHeight = 200
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StoreDir: defaultStoreDir,
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
		},
		Catalog: Catalog{
			PageSize:          defaultPageSize,
			AllowedExtensions: defaultExtensions(),
			MissingCategory:   MissingCategoryReject,
		},
		Thumbnails: Thumbnails{
			MaxWidth:  defaultMaxWidth,
			MaxHeight: defaultMaxHeight,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
