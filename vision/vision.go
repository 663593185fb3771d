// Package vision is a client for the Azure Computer Vision image analysis API.
package vision

import (
	"errors"
	"fmt"
	"time"
)

// Feature selects a section of the analysis result.
type Feature string

const (
	FeatureCategories  Feature = "Categories"
	FeatureDescription Feature = "Description"
	FeatureFaces       Feature = "Faces"
	FeatureImageType   Feature = "ImageType"
	FeatureTags        Feature = "Tags"
	FeatureAdult       Feature = "Adult"
	FeatureColor       Feature = "Color"
	FeatureBrands      Feature = "Brands"
	FeatureObjects     Feature = "Objects"
)

// AllFeatures returns every feature the analyze endpoint supports.
func AllFeatures() []Feature {
	return []Feature{
		FeatureCategories,
		FeatureDescription,
		FeatureFaces,
		FeatureImageType,
		FeatureTags,
		FeatureAdult,
		FeatureColor,
		FeatureBrands,
		FeatureObjects,
	}
}

// Result is the part of an analysis the bot reports back. The slices are never nil.
type Result struct {
	Tags       []string
	Categories []string
	Captions   []string
	// Raw is the response body as returned by the service.
	Raw []byte
}

// Config holds the service credentials. Both values come from the Azure portal.
type Config struct {
	APIKey   string        `json:"api_key" yaml:"api_key" env:"API_KEY"`
	Endpoint string        `json:"endpoint" yaml:"endpoint" env:"API_ENDPOINT"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout" env:"TIMEOUT"`
}

// Validate reports missing credentials.
func (c *Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New("vision: api key is required"))
	}
	if c.Endpoint == "" {
		errs = append(errs, errors.New("vision: endpoint is required"))
	}
	return errors.Join(errs...)
}

// ServiceError is a non-2xx answer from the analyze endpoint.
type ServiceError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("vision: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("vision: status %d: %s: %s", e.Status, e.Code, e.Message)
}
