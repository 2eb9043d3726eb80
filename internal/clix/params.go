package clix

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"civiceye/internal/util"
)

// ParseReportText returns --text, else the cleaned contents of --file, else
// the positional args joined by spaces.
func ParseReportText(flags *pflag.FlagSet, args []string) (string, error) {
	text, _ := flags.GetString("text")
	if path, _ := flags.GetString("file"); strings.TrimSpace(text) == "" && path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read report %s: %w", path, err)
		}
		if text, err = util.CleanReportText(raw, path); err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(text) == "" {
		text = strings.Join(args, " ")
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("report text is required (use --text or positional arguments)")
	}
	return text, nil
}

// ParseImages reads each --image path and wraps it as a base64 data URI.
// Values that already look like data URIs are passed through.
func ParseImages(flags *pflag.FlagSet) ([]string, error) {
	paths, _ := flags.GetStringSlice("image")
	var images []string
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "data:") {
			images = append(images, p)
			continue
		}
		uri, err := FileToDataURI(p)
		if err != nil {
			return nil, err
		}
		images = append(images, uri)
	}
	return images, nil
}

// FileToDataURI reads path and encodes it as data:<mime>;base64,<payload>,
// sniffing the MIME type from the content.
func FileToDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", path, err)
	}
	mime := http.DetectContentType(data)
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}
