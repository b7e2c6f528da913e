package domain

import "fmt"

// WeatherReport is the payload of the showWeatherCard signal and the data
// half of the weather collaborator response.
type WeatherReport struct {
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	WeatherCode int     `json:"weatherCode"`
}

// SpokenMessage renders the sentence spoken for a weather report.
func (w WeatherReport) SpokenMessage() string {
	return fmt.Sprintf(
		"The weather in %s is %s. Temperature is %g°C, but feels like %g°C. Humidity is %g percent.",
		w.Location, w.Description, w.Temperature, w.FeelsLike, w.Humidity,
	)
}

var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	95: "Slight or moderate thunderstorm",
}

// WeatherDescription maps a WMO weather code to a spoken description.
func WeatherDescription(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}
	return "unknown"
}
