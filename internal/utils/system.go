package utils

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// --------------------------------------
// RENDERER BINARY DISCOVERY
// --------------------------------------

// FindWkhtml locates the wkhtmltoimage binary used by the primary
// rasterization backend.
func FindWkhtml() (string, error) {
	if path, err := exec.LookPath("wkhtmltoimage"); err == nil {
		return path, nil
	}

	for _, path := range commonWkhtmlPaths() {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("wkhtmltoimage not found in PATH or common locations")
}

func commonWkhtmlPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\wkhtmltopdf\bin\wkhtmltoimage.exe`,
			`C:\Program Files (x86)\wkhtmltopdf\bin\wkhtmltoimage.exe`,
			`C:\wkhtmltopdf\bin\wkhtmltoimage.exe`,
		}
	default:
		return []string{
			"/usr/bin/wkhtmltoimage",
			"/usr/local/bin/wkhtmltoimage",
		}
	}
}

// FindChrome locates a Chrome or Chromium binary for the fallback backend.
// Discovery failure is reported as an error so the renderer can surface it
// as a backend failure rather than crashing.
func FindChrome() (string, error) {
	// Try common binary names
	binaries := []string{
		"google-chrome",
		"google-chrome-stable",
		"chromium",
		"chromium-browser",
	}

	for _, bin := range binaries {
		if path, err := exec.LookPath(bin); err == nil {
			return path, nil
		}
	}

	// Check common installation paths
	for _, path := range commonChromePaths() {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("chrome/chromium not found in PATH or common locations")
}

func commonChromePaths() []string {
	switch runtime.GOOS {
	case "darwin": // macOS
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}

	case "linux":
		return []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}

	case "windows":
		return []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files\Chromium\Application\chromium.exe`,
			`C:\Program Files (x86)\Chromium\Application\chromium.exe`,
		}

	default:
		return []string{}
	}
}
