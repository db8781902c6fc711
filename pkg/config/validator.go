package config

import (
	"fmt"
	"net/url"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration before any ingestion work starts.
// A non-empty result is a startup failure: the run must not begin.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Sources config
	if c.Sources.RootDir == "" {
		errors = append(errors, ValidationError{
			Field:   "sources.root_dir",
			Message: "source root directory is required",
		})
	}

	for _, raw := range c.Sources.WebURLs {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "sources.web_urls",
				Message: fmt.Sprintf("invalid URL: %s", raw),
			})
		}
	}

	for _, ext := range c.Sources.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errors = append(errors, ValidationError{
				Field:   "sources.extensions",
				Message: fmt.Sprintf("invalid extension format: %s", ext),
			})
		}
	}

	// Validate Chunker config
	if c.Chunker.ChunkSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "chunker.chunk_size",
			Message: "chunk_size must be positive",
		})
	}

	if c.Chunker.ChunkOverlap < 0 || c.Chunker.ChunkOverlap >= c.Chunker.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "chunker.chunk_overlap",
			Message: "chunk_overlap must be non-negative and less than chunk_size",
		})
	}

	// Validate Web config
	if c.Web.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "web.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	if c.Web.TimeoutSecs < 1 {
		errors = append(errors, ValidationError{
			Field:   "web.timeout_secs",
			Message: "timeout_secs must be positive",
		})
	}

	// Validate Database config
	if c.Database.URL != "" {
		if _, err := url.Parse(c.Database.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	}

	if c.Database.VectorDim < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.vector_dim",
			Message: "vector_dim must be positive",
		})
	}

	if c.Database.BatchSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.batch_size",
			Message: "batch_size must be positive",
		})
	}

	// Validate Retriever config
	if c.Retriever.K < 1 {
		errors = append(errors, ValidationError{
			Field:   "retriever.k",
			Message: "k must be positive",
		})
	}

	// Validate Log config
	if c.Log.Dir == "" {
		errors = append(errors, ValidationError{
			Field:   "log.dir",
			Message: "log directory is required",
		})
	}

	if c.Log.File == "" {
		errors = append(errors, ValidationError{
			Field:   "log.file",
			Message: "log file name is required",
		})
	}

	return errors
}
