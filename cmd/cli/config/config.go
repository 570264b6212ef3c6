package config

import "os"

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the donation scheduler API.
// It can be overridden with the DONATION_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("DONATION_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// ServiceKey returns the privileged service credential sent in the api-key
// header of trigger requests. Empty when unset, which only works against a
// dev server with auth disabled.
func ServiceKey() string {
	return os.Getenv("DONATION_SERVICE_KEY")
}
