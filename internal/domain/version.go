package domain

import "time"

// Version is the build metadata stamped into the rendered page.
type Version struct {
	RevID            string    `json:"revid"`
	Datetime         time.Time `json:"datetime"`
	LanguageVersions []string  `json:"language_versions"`
}
