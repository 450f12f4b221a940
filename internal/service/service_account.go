package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-marketplace/internal/asset"
	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/internal/store"
	"github.com/MKhiriev/go-marketplace/internal/utils"
	"github.com/MKhiriev/go-marketplace/internal/validators"
	"github.com/MKhiriev/go-marketplace/models"
)

// accountService is the concrete implementation of [AccountService].
// Passwords are stored as salted SHA-256 digests; the bearer token is issued
// once at signup and never rotated.
type accountService struct {
	accounts  store.AccountRepository
	relay     asset.Relay
	validator validators.Validator
	ids       IDGenerator

	logger *logger.Logger
}

// NewAccountService constructs an [AccountService] persisting to accounts and
// offloading avatars through relay.
func NewAccountService(accounts store.AccountRepository, relay asset.Relay, ids IDGenerator, logger *logger.Logger) AccountService {
	return &accountService{
		accounts:  accounts,
		relay:     relay,
		validator: validators.NewMarketplaceValidator(),
		ids:       ids,
		logger:    logger,
	}
}

// Signup registers a new account.
//
// The email must not be taken. When an avatar is supplied it is uploaded to
// the account's folder before the account is stored. An upload that succeeds
// followed by a failed insert leaves the asset orphaned; the public id is
// logged.
func (a *accountService) Signup(ctx context.Context, req models.SignupRequest) (models.SignupResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.SignupResponse{}, validationError(err)
	}

	_, err := a.accounts.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return models.SignupResponse{}, ErrConflict
	case !errors.Is(err, store.ErrAccountNotFound):
		log.Err(err).Str("func", "accountService.Signup").Msg("email lookup failed")
		return models.SignupResponse{}, persistenceError(err)
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		return models.SignupResponse{}, fmt.Errorf("generate salt: %w", err)
	}
	token, err := utils.GenerateToken()
	if err != nil {
		return models.SignupResponse{}, fmt.Errorf("generate token: %w", err)
	}

	account := models.Account{
		ID:    a.ids.Generate(),
		Email: req.Email,
		Profile: models.Profile{
			Username:   req.Username,
			Newsletter: req.Newsletter,
		},
		Salt:  salt,
		Hash:  utils.DeriveHash(req.Password, salt),
		Token: token,
	}

	if len(req.Avatar) > 0 {
		avatar, err := a.relay.UploadAvatar(ctx, account.ID, req.Avatar)
		if err != nil {
			return models.SignupResponse{}, assetError(err)
		}
		account.Profile.Avatar = &avatar
	}

	created, err := a.accounts.Create(ctx, account)
	if err != nil {
		log.Err(err).
			Str("func", "accountService.Signup").
			Str("orphaned_public_id", publicID(account.Profile.Avatar)).
			Msg("account creation failed")
		if errors.Is(err, store.ErrAccountAlreadyExists) {
			return models.SignupResponse{}, ErrConflict
		}
		return models.SignupResponse{}, persistenceError(err)
	}

	log.Info().Str("account_id", created.ID).Msg("account created")

	return models.SignupResponse{
		ID:    created.ID,
		Token: created.Token,
		Account: models.SignupAccount{
			Username: created.Profile.Username,
			Avatar:   models.AssetURL(created.Profile.Avatar),
		},
	}, nil
}

// Login checks the password and returns the account's standing token.
// Unknown emails and wrong passwords produce the same error.
func (a *accountService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.LoginResponse{}, validationError(err)
	}

	account, err := a.accounts.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.LoginResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "accountService.Login").Msg("email lookup failed")
		return models.LoginResponse{}, persistenceError(err)
	}

	if !utils.VerifyHash(req.Password, account.Salt, account.Hash) {
		log.Info().Str("account_id", account.ID).Msg("login with wrong password")
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	return models.LoginResponse{
		ID:      account.ID,
		Token:   account.Token,
		Account: account.Profile,
	}, nil
}

func (a *accountService) Authenticate(ctx context.Context, token string) (models.Account, error) {
	if strings.TrimSpace(token) == "" {
		return models.Account{}, fmt.Errorf("%w: missing token", ErrUnauthenticated)
	}

	account, err := a.accounts.FindByToken(ctx, token)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, ErrUnauthenticated
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountService.Authenticate").Msg("token lookup failed")
		return models.Account{}, persistenceError(err)
	}

	return account, nil
}

func publicID(a *models.Asset) string {
	if a == nil {
		return ""
	}
	return a.PublicID
}
