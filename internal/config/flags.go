package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the server flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-max-upload-size multipart body limit in bytes
//	-log-level minimum log level
//	-ownership-enforced restrict listing updates to their owner
//	-assets-backend cloudinary|s3
//	-assets-root-folder folder prefix on the media host
//	-cloudinary-cloud-name / -cloudinary-api-key / -cloudinary-api-secret
//	-s3-bucket / -s3-endpoint / -s3-public-base-url
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("marketplace-server", flag.ContinueOnError)

	var serverAddress NetAddress
	var (
		databaseDSN       string
		jsonConfigPath    string
		requestTimeout    time.Duration
		maxUploadSize     int64
		logLevel          string
		ownershipEnforced bool
		assetsBackend     string
		assetsRootFolder  string
		cloudName         string
		cloudAPIKey       string
		cloudAPISecret    string
		s3Bucket          string
		s3Endpoint        string
		s3PublicBaseURL   string
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&maxUploadSize, "max-upload-size", 0, "Multipart body limit in bytes")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level")
	fs.BoolVar(&ownershipEnforced, "ownership-enforced", false, "Only owners may update their listings")
	fs.StringVar(&assetsBackend, "assets-backend", "", "Media host backend: cloudinary or s3")
	fs.StringVar(&assetsRootFolder, "assets-root-folder", "", "Folder prefix on the media host")
	fs.StringVar(&cloudName, "cloudinary-cloud-name", "", "Cloudinary cloud name")
	fs.StringVar(&cloudAPIKey, "cloudinary-api-key", "", "Cloudinary API key")
	fs.StringVar(&cloudAPISecret, "cloudinary-api-secret", "", "Cloudinary API secret")
	fs.StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket")
	fs.StringVar(&s3Endpoint, "s3-endpoint", "", "S3 endpoint override")
	fs.StringVar(&s3PublicBaseURL, "s3-public-base-url", "", "Public base URL of stored objects")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			LogLevel:          logLevel,
			OwnershipEnforced: ownershipEnforced,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			MaxUploadSize:  maxUploadSize,
		},
		Assets: Assets{
			Backend:    assetsBackend,
			RootFolder: assetsRootFolder,
			Cloudinary: Cloudinary{
				CloudName: cloudName,
				APIKey:    cloudAPIKey,
				APISecret: cloudAPISecret,
			},
			S3: S3{
				Bucket:        s3Bucket,
				Endpoint:      s3Endpoint,
				PublicBaseURL: s3PublicBaseURL,
			},
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces; otherwise the host must be "localhost"
// or a valid IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
