package config

const (
	defaultLibraryRoot      = "/var/lib/plexmediaserver/Library"
	defaultMoviesDir        = "Movies"
	defaultTVDir            = "TV_Shows"
	defaultLogDir           = "~/.local/share/mvvid/logs"
	defaultLockFileName     = "mvvid.lock"
	defaultAllowedSourceDir = "Videos"
	defaultOwnerUser        = "plex"
	defaultOwnerGroup       = "plex"
	defaultScannerPath      = "/usr/lib/plexmediaserver/Plex Media Scanner"
	defaultServiceUser      = "plex"
	defaultElevateCommand   = "sudo"
	defaultPlexURL          = "http://127.0.0.1:32400"
	defaultMoviesSection    = 3
	defaultTVSection        = 4
	defaultRequestTimeout   = 10
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Refresh methods understood by plex.refresh_method.
const (
	RefreshScanner = "scanner"
	RefreshHTTP    = "http"
	RefreshNone    = "none"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AllowedSourceDirs: []string{defaultAllowedSourceDir},
			LogDir:            defaultLogDir,
		},
		Library: Library{
			Root:      defaultLibraryRoot,
			MoviesDir: defaultMoviesDir,
			TVDir:     defaultTVDir,
		},
		Ownership: Ownership{
			User:  defaultOwnerUser,
			Group: defaultOwnerGroup,
		},
		Plex: Plex{
			RefreshMethod:  RefreshScanner,
			ScannerPath:    defaultScannerPath,
			ScannerArgs:    defaultScannerArgs(),
			ServiceUser:    defaultServiceUser,
			ElevateCommand: defaultElevateCommand,
			URL:            defaultPlexURL,
			MoviesSection:  defaultMoviesSection,
			TVSection:      defaultTVSection,
			RequestTimeout: defaultRequestTimeout,
		},
		Jellyfin: Jellyfin{
			RequestTimeout: defaultRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultScannerArgs() []string {
	return []string{"--scan", "--refresh"}
}
