package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	cryptoDomain "github.com/dheeverse/dheeverse/internal/crypto/domain"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
)

// kmsSchemes are the KMS_KEY_URI schemes with a registered gocloud driver.
var kmsSchemes = []string{"awskms", "azurekeyvault", "base64key", "gcpkms", "hashivault"}

// KMSService opens keepers used to wrap and unwrap the journal encryption key.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

type gocloudKMS struct{}

func NewKMSService() KMSService {
	return gocloudKMS{}
}

// OpenKeeper opens the keeper for keyURI. An unsupported scheme is a
// misconfiguration and is rejected before any driver sees the URI.
func (gocloudKMS) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	scheme, _, ok := strings.Cut(keyURI, "://")
	if !ok || !slices.Contains(kmsSchemes, scheme) {
		return nil, fmt.Errorf("%w: unsupported KMS key URI scheme %q", apperrors.ErrMisconfigured, scheme)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s KMS keeper: %w", scheme, err)
	}
	return keeper, nil
}
