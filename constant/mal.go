// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// MyAnimeList endpoint roots.
const (
	MalAPIBase       = "https://api.myanimelist.net/v2"
	MalSiteBase      = "https://myanimelist.net"
	MalAuthEndpoint  = "https://myanimelist.net/v1/oauth2/authorize"
	MalTokenEndpoint = "https://myanimelist.net/v1/oauth2/token"
)
