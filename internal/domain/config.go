package domain

// Config carries the node-level settings handlers and services need.
type Config struct {
	SiteName           string `yaml:"siteName"`
	TokenSecret        string `yaml:"tokenSecret"`
	AccessTokenExpiry  int    `yaml:"accessTokenExpiryMinutes"`
	RefreshTokenExpiry int    `yaml:"refreshTokenExpiryDays"`
	MaxPageSize        int    `yaml:"maxPageSize"`
}
