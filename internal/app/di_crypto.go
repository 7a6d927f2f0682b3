package app

import (
	"fmt"

	cryptoService "github.com/dheeverse/dheeverse/internal/crypto/service"
)

// KMSService returns the KMS service used to wrap and unwrap the journal key.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// FieldEncryptor returns the journal field encryptor. The key is not resolved
// until first use or an explicit Initialize.
func (c *Container) FieldEncryptor() (cryptoService.FieldEncryptor, error) {
	return resolve(c, &c.fieldEncryptorInit, "fieldEncryptor", &c.fieldEncryptor, c.initFieldEncryptor)
}

// KeyLoader returns the loader matching the configuration: a KMS unwrapping
// loader when KMS_KEY_URI is set, the plain configured key otherwise.
func (c *Container) KeyLoader() cryptoService.KeyLoader {
	if c.config.KMSKeyURI != "" {
		return cryptoService.NewKMSKeyLoader(
			c.KMSService(),
			c.config.KMSKeyURI,
			c.config.JournalEncryptionKey,
			c.Logger(),
		)
	}
	return cryptoService.NewConfigKeyLoader(c.config.JournalEncryptionKey)
}

func (c *Container) initFieldEncryptor() (cryptoService.FieldEncryptor, error) {
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for field encryptor: %w", err)
	}
	return cryptoService.NewAESCBCFieldEncryptor(c.KeyLoader(), c.Logger(), businessMetrics), nil
}
