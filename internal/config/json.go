package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		Version           string `json:"version"`
		LogLevel          string `json:"log_level"`
		OwnershipEnforced bool   `json:"ownership_enforced"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxUploadSize  int64    `json:"max_upload_size"`
	} `json:"server,omitempty"`

	Assets struct {
		Backend    string `json:"backend"`
		RootFolder string `json:"root_folder"`

		Cloudinary struct {
			CloudName  string   `json:"cloud_name"`
			APIKey     string   `json:"api_key"`
			APISecret  string   `json:"api_secret"`
			BaseURL    string   `json:"base_url"`
			RetryCount int      `json:"retry_count"`
			Timeout    Duration `json:"timeout"`
		} `json:"cloudinary,omitempty"`

		S3 struct {
			Bucket        string `json:"bucket"`
			Region        string `json:"region"`
			Endpoint      string `json:"endpoint"`
			AccessKey     string `json:"access_key"`
			SecretKey     string `json:"secret_key"`
			PublicBaseURL string `json:"public_base_url"`
		} `json:"s3,omitempty"`
	} `json:"assets,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cloud := jsonCfg.Assets.Cloudinary
	s3 := jsonCfg.Assets.S3

	cfg := &StructuredConfig{
		App: App{
			Version:           jsonCfg.App.Version,
			LogLevel:          jsonCfg.App.LogLevel,
			OwnershipEnforced: jsonCfg.App.OwnershipEnforced,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			MaxUploadSize:  jsonCfg.Server.MaxUploadSize,
		},
		Assets: Assets{
			Backend:    jsonCfg.Assets.Backend,
			RootFolder: jsonCfg.Assets.RootFolder,
			Cloudinary: Cloudinary{
				CloudName:  cloud.CloudName,
				APIKey:     cloud.APIKey,
				APISecret:  cloud.APISecret,
				BaseURL:    cloud.BaseURL,
				RetryCount: cloud.RetryCount,
				Timeout:    time.Duration(cloud.Timeout),
			},
			S3: S3{
				Bucket:        s3.Bucket,
				Region:        s3.Region,
				Endpoint:      s3.Endpoint,
				AccessKey:     s3.AccessKey,
				SecretKey:     s3.SecretKey,
				PublicBaseURL: s3.PublicBaseURL,
			},
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
