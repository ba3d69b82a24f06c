package model

import "github.com/getsavvyinc/webtoapk/guide"

// GenerationRequest is built once per submission and not modified afterwards.
type GenerationRequest struct {
	RepositoryURL   string   `json:"repository_url" yaml:"repository_url"`
	PlatformVersion string   `json:"platform_version" yaml:"platform_version"`
	OS              guide.OS `json:"os,omitempty" yaml:"os,omitempty"`
}
