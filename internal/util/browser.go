package util

import (
	"os/exec"
	"runtime"
)

// OpenBrowser opens url in the default browser
func OpenBrowser(url string) error {
	return browserCommand(runtime.GOOS, url).Start()
}

// OpenBrowserWithFallback tries the default browser first, then common alternatives
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}

	for _, name := range fallbackBrowsers(runtime.GOOS) {
		if ferr := exec.Command(name, url).Start(); ferr == nil {
			return nil
		}
	}
	return err
}

func browserCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "windows":
		// rundll32 also works on Windows 7 where `cmd /c start` mangles some URLs
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		return exec.Command("open", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

func fallbackBrowsers(goos string) []string {
	switch goos {
	case "windows":
		return []string{"explorer"}
	case "linux":
		return []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"}
	}
	return nil
}
