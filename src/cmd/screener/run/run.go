package run

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-screener/src/marketdata"
	"github.com/jiaming2012/option-screener/src/models"
	"github.com/jiaming2012/option-screener/src/utils"
)

const (
	ProviderTradier = "tradier"
	ProviderPolygon = "polygon"
	ProviderCsv     = "csv"

	FormatTable = "table"
	FormatJSON  = "json"
	FormatCsv   = "csv"

	defaultTradierBaseURL = "https://api.tradier.com"
)

// NewProvider builds the named market data provider. Remote providers are wrapped
// with retries, pacing and a circuit breaker.
func NewProvider(name, csvFile string) (marketdata.Provider, error) {
	switch strings.ToLower(name) {
	case ProviderTradier:
		token, err := utils.GetEnv("TRADIER_BEARER_TOKEN")
		if err != nil {
			return nil, fmt.Errorf("NewProvider: %w", err)
		}

		baseURL := utils.GetEnvOrDefault("TRADIER_BASE_URL", defaultTradierBaseURL)
		tradier := marketdata.NewTradierProvider(baseURL, token)

		return marketdata.NewResilientProvider(tradier, marketdata.DefaultResilienceConfig(ProviderTradier)), nil
	case ProviderPolygon:
		apiKey, err := utils.GetEnv("POLYGON_API_KEY")
		if err != nil {
			return nil, fmt.Errorf("NewProvider: %w", err)
		}

		polygon := marketdata.NewPolygonProvider(apiKey)

		return marketdata.NewResilientProvider(polygon, marketdata.DefaultResilienceConfig(ProviderPolygon)), nil
	case ProviderCsv:
		if csvFile == "" {
			return nil, fmt.Errorf("NewProvider: --csv-file is required for the csv provider")
		}

		return marketdata.NewCSVProvider(csvFile)
	default:
		return nil, fmt.Errorf("NewProvider: unknown provider %q", name)
	}
}

// LoadProfiles reads a screening profiles file. An empty path yields no profiles.
func LoadProfiles(path string) (*models.ScreeningProfilesYAML, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadProfiles: failed to read %s: %w", path, err)
	}

	return models.ParseScreeningProfiles(data)
}

// ResolveParameters layers the named profile over the strategy defaults and then
// applies the explicitly set overrides.
func ResolveParameters(strategy models.Strategy, profiles *models.ScreeningProfilesYAML, profileName string, overrides func(*models.ScreeningParameters)) (models.ScreeningParameters, error) {
	params := models.DefaultParametersFor(strategy)

	if profileName != "" {
		if profiles == nil {
			return params, fmt.Errorf("ResolveParameters: %w: %s", models.ErrProfileNotFound, profileName)
		}

		profile, err := profiles.GetProfile(profileName)
		if err != nil {
			return params, fmt.Errorf("ResolveParameters: %w", err)
		}

		if profile.Strategy != "" {
			if s, err := models.ParseStrategy(profile.Strategy); err == nil && s != strategy {
				log.Warnf("profile %s is meant for %s, applying it to %s", profile.Name, s, strategy)
			}
		}

		if params, err = profile.Apply(params); err != nil {
			return params, fmt.Errorf("ResolveParameters: %w", err)
		}
	}

	if overrides != nil {
		overrides(&params)
	}

	if err := params.CapitalMode.Validate(); err != nil {
		return params, fmt.Errorf("ResolveParameters: %w", err)
	}

	return params, nil
}

func WriteResult(result *models.ScreeningResult, format string, w io.Writer) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		utils.RenderScreeningTable(result, w)
		return nil
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case FormatCsv:
		return utils.WriteScreeningCsv(result, w)
	default:
		return fmt.Errorf("WriteResult: unknown format %q", format)
	}
}
