package visualize

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"runtime"

	"github.com/fogleman/gg"
)

// SavePNG writes the image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}

// ShowImage writes the image to a temporary PNG and opens it in the
// platform image viewer. The file is left behind for the viewer to
// read.
func ShowImage(img image.Image) error {
	f, err := os.CreateTemp("", "voc-show-*.png")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	if err := SavePNG(path, img); err != nil {
		return err
	}
	return OpenViewer(path)
}

// OpenViewer opens the given file in the default image viewer. It
// detects the operating system and uses the appropriate command.
func OpenViewer(path string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{path}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", path}
	case "linux":
		cmd = "xdg-open"
		args = []string{path}
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	err := exec.Command(cmd, args...).Start()
	if err != nil && runtime.GOOS == "linux" {
		// If xdg-open fails, try common viewers.
		alternatives := []string{"gnome-open", "kde-open", "display", "eog", "feh"}
		for _, alt := range alternatives {
			if err = exec.Command(alt, path).Start(); err == nil {
				return nil
			}
		}
	}

	return err
}
