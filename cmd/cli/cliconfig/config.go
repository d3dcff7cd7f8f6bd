package cliconfig

import "os"

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the fleet asset API.
// It can be overridden with the FLEET_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("FLEET_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// APIToken returns the token sent as X-API-Token on every request.
// Set via FLEET_API_TOKEN.
func APIToken() string {
	return os.Getenv("FLEET_API_TOKEN")
}
