package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/itemvault/internal/common"
	"github.com/dmitrijs2005/itemvault/internal/server/auth"
	"github.com/dmitrijs2005/itemvault/internal/server/config"
	"github.com/golang-jwt/jwt/v5"
)

// Service implements signup and login on top of the credential repository
// and the stateless auth primitives.
type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	signingMethod               jwt.SigningMethod
	alg                         string
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) (*Service, error) {
	method, err := auth.SigningMethod(cfg.TokenAlg)
	if err != nil {
		return nil, err
	}

	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		signingMethod:               method,
		alg:                         cfg.TokenAlg,
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}, nil
}

// Signup registers a new principal and returns an access token. The
// existence check runs before hashing; the repository insert is atomic with
// its own check, so a concurrent duplicate still maps to ErrorAlreadyExists.
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {

	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return "", common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error checking user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", common.ErrorInternal
	}

	user := &User{Email: email, PasswordHash: hash}
	if _, err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.issueToken(email)
}

// Login verifies the credentials and returns an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	return s.issueToken(email)
}

// ValidateToken returns the principal a valid token was issued to.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	return auth.GetSubjectFromToken(tokenString, s.jwtSecret, s.alg)
}

func (s *Service) issueToken(subject string) (string, error) {
	token, err := auth.GenerateToken(subject, s.jwtSecret, s.signingMethod, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
