package config

const (
	// HTTP client Defaults
	DefaultHTTPTimeoutSecs        = 10
	DefaultHTTPUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultHTTPInsecureSkipVerify = true
	DefaultHTTPFollowRedirects    = true
	DefaultHTTPMaxRedirects       = 10
	DefaultHTTPMaxContentSize     = 5 * 1024 * 1024
	DefaultHTTPEnableHTTP2        = true

	// Detection Defaults
	DefaultDetectionLookaheadWindow = 35
	DefaultDetectionErrorPagePath   = "/idontexist"
	DefaultDetectionLoginPath       = "/typo3/index.php"

	// Tunnel Defaults
	DefaultTunnelHost             = "127.0.0.1"
	DefaultTunnelPort             = 8118
	DefaultTunnelCheckURL         = "https://check.torproject.org/"
	DefaultTunnelConfirmationText = "Congratulations. This browser is configured to use Tor."
	DefaultTunnelTimeoutSecs      = 30

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "TYPO3ENUM_CONFIG_PATH"
)

// DefaultTunnelServices are started in order and stopped in reverse.
var DefaultTunnelServices = []string{"tor", "privoxy"}
