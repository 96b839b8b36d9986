package service

import (
	"strings"

	"github.com/lshigami/vocabtest/config"
)

// MediaResolver turns stored image references into URLs clients can fetch.
type MediaResolver interface {
	URL(ref string) string
}

type mediaResolver struct {
	baseURL string
}

func NewMediaResolver(cfg *config.Config) MediaResolver {
	return &mediaResolver{baseURL: strings.TrimRight(cfg.Media.BaseURL, "/")}
}

func (m *mediaResolver) URL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || m.baseURL == "" {
		return ref
	}
	return m.baseURL + "/" + strings.TrimLeft(ref, "/")
}
