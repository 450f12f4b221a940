package asset

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-marketplace/internal/config"
	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/internal/utils"
	"github.com/MKhiriev/go-marketplace/models"
)

const (
	cloudinaryUploadPath  = "/v1_1/{cloud}/image/upload"
	cloudinaryDestroyPath = "/v1_1/{cloud}/image/destroy"
)

var errCloudinaryResponse = errors.New("cloudinary error response")

// cloudinaryStore talks to the Cloudinary upload API with signed requests.
type cloudinaryStore struct {
	client    *utils.HTTPClient
	cloudName string
	apiKey    string
	apiSecret string
	now       func() time.Time
}

type cloudinaryError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type cloudinaryDestroyResult struct {
	Result string `json:"result"`
}

// NewCloudinaryStore builds a [Store] for the Cloudinary account in cfg.
// Transport errors and 5xx answers are retried cfg.RetryCount times.
func NewCloudinaryStore(cfg config.Cloudinary, logger *logger.Logger) Store {
	logger.Debug().Str("cloud_name", cfg.CloudName).Msg("creating cloudinary asset store")
	return &cloudinaryStore{
		client:    utils.NewHTTPClient(cfg.BaseURL, cfg.Timeout, cfg.RetryCount),
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		now:       time.Now,
	}
}

func (c *cloudinaryStore) Upload(ctx context.Context, image models.Image, folder string) (models.Asset, error) {
	params := map[string]string{
		"folder":    folder,
		"timestamp": c.timestamp(),
	}
	form := c.signedForm(params)
	form["file"] = image.DataURI()

	var (
		uploaded models.Asset
		apiErr   cloudinaryError
	)
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("cloud", c.cloudName).
		SetFormData(form).
		SetResult(&uploaded).
		SetError(&apiErr).
		Post(cloudinaryUploadPath)
	if err != nil {
		return models.Asset{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.IsError() {
		return models.Asset{}, fmt.Errorf("%w: upload status %d: %s", errCloudinaryResponse, resp.StatusCode(), apiErr.Error.Message)
	}

	return uploaded, nil
}

func (c *cloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	params := map[string]string{
		"public_id": publicID,
		"timestamp": c.timestamp(),
	}

	var (
		result cloudinaryDestroyResult
		apiErr cloudinaryError
	)
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("cloud", c.cloudName).
		SetFormData(c.signedForm(params)).
		SetResult(&result).
		SetError(&apiErr).
		Post(cloudinaryDestroyPath)
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: destroy status %d: %s", errCloudinaryResponse, resp.StatusCode(), apiErr.Error.Message)
	}

	// "not found" means the asset is already gone
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("%w: destroy result %q", errCloudinaryResponse, result.Result)
	}

	return nil
}

func (c *cloudinaryStore) timestamp() string {
	return strconv.FormatInt(c.now().Unix(), 10)
}

// signedForm returns params plus api_key and signature. Only params take
// part in the signature.
func (c *cloudinaryStore) signedForm(params map[string]string) map[string]string {
	form := make(map[string]string, len(params)+2)
	for k, v := range params {
		form[k] = v
	}
	form["api_key"] = c.apiKey
	form["signature"] = cloudinarySignature(params, c.apiSecret)
	return form
}

// cloudinarySignature is the hex SHA-1 of the params sorted by key, joined as
// k=v pairs with '&', followed by the API secret. Empty values are skipped.
func cloudinarySignature(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
