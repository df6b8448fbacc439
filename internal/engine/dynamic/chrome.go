// internal/engine/dynamic/chrome.go
package dynamic

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// chromeEnvVars are checked, in order, before any standard location
var chromeEnvVars = []string{"PHONECRAWL_CHROME_PATH", "CHROME_PATH"}

// chromeBinaries are looked up in PATH when no standard location matches
var chromeBinaries = []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser", "chrome"}

// FindChrome locates a Chrome/Chromium executable, or returns "" when none is found
func FindChrome() string {
	for _, env := range chromeEnvVars {
		path := os.Getenv(env)
		if path == "" {
			continue
		}
		if isExecutable(path) {
			log.Debug().Str("path", path).Str("env", env).Msg("Chrome found via environment variable")
			return path
		}
		log.Warn().Str("path", path).Str("env", env).Msg("Chrome path set but not executable")
	}

	for _, path := range standardLocations() {
		if isExecutable(path) {
			log.Debug().Str("path", path).Str("os", runtime.GOOS).Msg("Chrome found at standard location")
			return path
		}
	}

	for _, name := range chromeBinaries {
		if path, err := exec.LookPath(name); err == nil {
			log.Debug().Str("path", path).Msg("Chrome found in PATH")
			return path
		}
	}

	log.Debug().Str("os", runtime.GOOS).Msg("Chrome not found")
	return ""
}

// defaultChrome caches the FindChrome lookup for launches without an explicit path
var defaultChrome = sync.OnceValue(FindChrome)

func standardLocations() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	case "windows":
		var paths []string
		for _, base := range []string{os.Getenv("ProgramFiles"), os.Getenv("ProgramFiles(x86)"), os.Getenv("LocalAppData")} {
			if base != "" {
				paths = append(paths, filepath.Join(base, "Google", "Chrome", "Application", "chrome.exe"))
			}
		}
		return paths
	default:
		return []string{
			"/usr/bin/google-chrome-stable",
			"/usr/bin/google-chrome",
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
			"/snap/bin/chromium",
		}
	}
}

// isExecutable checks if a file exists and is executable
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	// Windows has no execute bit
	return runtime.GOOS == "windows" || info.Mode()&0o111 != 0
}

// AllocatorConfig holds the launch settings shared by pooled and one-shot browsers
type AllocatorConfig struct {
	ChromePath string
	Headless   bool
	UserAgent  string
	Proxy      string
}

// allocatorOptions builds the chromedp flags for a browser launch
func allocatorOptions(cfg AllocatorConfig) []chromedp.ExecAllocatorOption {
	chromePath := cfg.ChromePath
	if chromePath == "" {
		chromePath = defaultChrome()
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("log-level", "3"),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.Flag("disk-cache-size", "0"),
	}

	if chromePath != "" {
		opts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, opts...)
	}
	if cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	if cfg.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(cfg.Proxy))
	}

	return opts
}
