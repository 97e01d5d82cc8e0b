package legacygateway

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"order-status/internal/common/legacyprotocol"
)

const DefaultTimeout = 30 * time.Second

// LoadConfig resolves the legacy endpoint and request template. An explicit
// endpoint wins over the settings file.
func LoadConfig(endpoint, settingsFile, templateFile string) (Config, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" && settingsFile != "" {
		doc, err := os.ReadFile(settingsFile)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read legacy settings: %w", err)
		}
		settings, err := legacyprotocol.ParseSettings(doc)
		if err != nil {
			return Config{}, err
		}
		endpoint = settings.EndpointURI
	}
	if endpoint == "" {
		return Config{}, errors.New("legacy endpoint is not configured")
	}

	text := legacyprotocol.DefaultTemplate
	if templateFile != "" {
		b, err := os.ReadFile(templateFile)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read legacy template: %w", err)
		}
		text = string(b)
	}
	tmpl, err := legacyprotocol.NewTemplate(text)
	if err != nil {
		return Config{}, fmt.Errorf("invalid legacy template: %w", err)
	}
	return Config{
		Endpoint: endpoint,
		Template: tmpl,
		Timeout:  DefaultTimeout,
	}, nil
}
