package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/ecomadmin/internal/logging"
	"github.com/vvka-141/ecomadmin/internal/retry"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// TokenProvider acquires a short-lived token used as the PostgreSQL password.
type TokenProvider interface {
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider for logs. It must not include secrets.
	String() string
}

// TokenBasedConnector authenticates with a cloud-issued token (AWS IAM, Azure Entra ID).
// A fresh token is requested on every connection attempt.
type TokenBasedConnector struct {
	config        *ecomadmin.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	logger        ecomadmin.Logger
	retryExecutor *retry.Executor
}

func NewTokenBasedConnector(config *ecomadmin.ConnectionConfig, tokenProvider TokenProvider, providerName string, logger ecomadmin.Logger) *TokenBasedConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		logger:        logger,
		retryExecutor: newRetryExecutor(logger),
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	return connectWithRetry(ctx, c.retryExecutor, c.config, c.logger, func(ctx context.Context) (string, error) {
		token, expiresOn, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to acquire %s token from %s: %w", c.providerName, c.tokenProvider, err)
		}
		if remaining := time.Until(expiresOn); remaining < 5*time.Minute {
			c.logger.Info("Warning: %s token expires in %v", c.providerName, remaining.Round(time.Second))
		}

		withToken := *c.config
		withToken.Password = token
		return BuildConnectionString(&withToken), nil
	})
}
