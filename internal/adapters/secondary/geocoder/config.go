package geocoder

type Config struct {
	BaseURL   string `envconfig:"BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent string `envconfig:"USER_AGENT" default:"vedics-api/1.0"`
}
