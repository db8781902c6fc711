package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Sources struct {
		RootDir    string   `yaml:"root_dir"`
		WebURLs    []string `yaml:"web_urls"`
		Extensions []string `yaml:"extensions"`
	} `yaml:"sources"`

	Chunker struct {
		ChunkSize    int `yaml:"chunk_size"`
		ChunkOverlap int `yaml:"chunk_overlap"`
	} `yaml:"chunker"`

	Tabular struct {
		RosterMarkers     []string `yaml:"roster_markers"`
		DepartmentColumns []string `yaml:"department_columns"`
		PersonnelLabels   []string `yaml:"personnel_labels"`
	} `yaml:"tabular"`

	Web struct {
		RateLimit   float64 `yaml:"rate_limit"`
		TimeoutSecs int     `yaml:"timeout_secs"`
	} `yaml:"web"`

	Embedder struct {
		Model string `yaml:"model"`
	} `yaml:"embedder"`

	Database struct {
		URL       string `yaml:"url"`
		TableName string `yaml:"table_name"`
		VectorDim int    `yaml:"vector_dim"`
		BatchSize int    `yaml:"batch_size"`
	} `yaml:"database"`

	Retriever struct {
		K int `yaml:"k"`
	} `yaml:"retriever"`

	Log struct {
		Dir  string `yaml:"dir"`
		File string `yaml:"file"`
	} `yaml:"log"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/kura/config.yaml"),
			"/etc/kura/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	// Merge with environment variables
	mergeWithEnv(&config)

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if len(config.Sources.Extensions) == 0 {
		config.Sources.Extensions = []string{
			".pdf", ".txt", ".csv", ".docx", ".md", ".markdown", ".html", ".htm",
		}
	}

	if config.Chunker.ChunkSize == 0 {
		config.Chunker.ChunkSize = 500
	}
	if config.Chunker.ChunkOverlap == 0 {
		config.Chunker.ChunkOverlap = 50
	}

	if len(config.Tabular.RosterMarkers) == 0 {
		config.Tabular.RosterMarkers = []string{"社員名簿", "従業員", "employee", "roster"}
	}
	if len(config.Tabular.DepartmentColumns) == 0 {
		config.Tabular.DepartmentColumns = []string{"従業員区分", "department", "部署"}
	}
	if len(config.Tabular.PersonnelLabels) == 0 {
		config.Tabular.PersonnelLabels = []string{"人事部", "HR"}
	}

	if config.Web.RateLimit == 0 {
		config.Web.RateLimit = 2.0
	}
	if config.Web.TimeoutSecs == 0 {
		config.Web.TimeoutSecs = 30
	}

	if config.Embedder.Model == "" {
		config.Embedder.Model = "text-embedding-3-small"
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "documents"
	}
	if config.Database.VectorDim == 0 {
		config.Database.VectorDim = 1536
	}
	if config.Database.BatchSize == 0 {
		config.Database.BatchSize = 100
	}

	if config.Retriever.K == 0 {
		config.Retriever.K = 5
	}

	if config.Log.File == "" {
		config.Log.File = "ingest.log"
	}
}

func mergeWithEnv(config *Config) {
	if rootDir := os.Getenv("KURA_ROOT_DIR"); rootDir != "" {
		config.Sources.RootDir = rootDir
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if logDir := os.Getenv("KURA_LOG_DIR"); logDir != "" {
		config.Log.Dir = logDir
	}
}
