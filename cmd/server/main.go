// @title P2P Search Credit Ledger API
// @version 1.0
// @description Credit ledger, scheduling, and proof services for a P2P search network node
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /
// @schemes http https
// @accept json
// @produce json
package main

import (
	"crypto/ed25519"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	flags "github.com/jessevdk/go-flags"

	"github.com/andrey/p2psearch-ledger/internal/api"
	"github.com/andrey/p2psearch-ledger/internal/api/handlers"
	"github.com/andrey/p2psearch-ledger/internal/domain/canon"
	"github.com/andrey/p2psearch-ledger/internal/infra/config"
	"github.com/andrey/p2psearch-ledger/internal/infra/logging"
	"github.com/andrey/p2psearch-ledger/internal/infra/storage"
	"github.com/andrey/p2psearch-ledger/internal/services/ledger/ledgerimpl"
	"github.com/andrey/p2psearch-ledger/internal/services/proof/proofimpl"
	"github.com/andrey/p2psearch-ledger/internal/services/scheduler"
	"github.com/andrey/p2psearch-ledger/internal/services/timezone/timezoneimpl"
)

type cliOptions struct {
	ConfigPath string `short:"c" long:"config" description:"path to the YAML config file" default:"config.yaml"`
}

func main() {
	var opts cliOptions
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.Printf("WARN could not load config at %s, using defaults: %v", opts.ConfigPath, err)
		cfg = config.Default()
	}

	logger, err := logging.NewWithConfig(cfg.Logging)
	if err != nil {
		logger = logging.New("info")
	}

	keyPair, err := loadOrGenerateKeyPair(cfg, logger)
	if err != nil {
		log.Fatalf("failed to set up signing key: %v", err)
	}

	storageClient, err := storage.Open(logger, cfg.Storage.Path)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer func() {
		if err := storageClient.Close(); err != nil {
			logger.Logf("ERROR closing storage: %v", err)
		}
	}()

	ledgerStore, err := ledgerimpl.NewStore(storageClient.DB(), logger)
	if err != nil {
		log.Fatalf("failed to initialize ledger store: %v", err)
	}

	clock := handlers.Clock(func() float64 {
		return float64(time.Now().Unix())
	})

	ledgerService := ledgerimpl.New(ledgerStore, logger, ledgerimpl.Clock(clock))

	tzVerifier := timezoneimpl.New(logger)
	sched := scheduler.New(tzVerifier, logger)

	proofService, err := proofimpl.New(ledgerService, keyPair, logger, proofimpl.Clock(clock))
	if err != nil {
		log.Fatalf("failed to initialize proof builder: %v", err)
	}

	server := api.NewServer(ledgerService, proofService, sched, keyPair, clock, logger, cfg)

	logger.Logf("INFO peer %s ready, signing key loaded, storage at %s", cfg.Signing.PeerID, cfg.Storage.Path)
	if err := server.Start(); err != nil {
		logger.Logf("ERROR server failed: %v", err)
		os.Exit(1)
	}
}

// loadOrGenerateKeyPair loads the node's Ed25519 signing key from disk, or
// generates and persists a fresh one when GenerateIfMissing is set and no
// key file exists yet.
func loadOrGenerateKeyPair(cfg *config.Config, logger lgr.L) (canon.KeyPair, error) {
	if cfg.Signing.KeyPath == "" {
		logger.Logf("WARN no signing key path configured, generating an ephemeral key pair")
		return canon.NewEd25519KeyPair(cfg.Signing.PeerID)
	}

	data, err := os.ReadFile(cfg.Signing.KeyPath)
	if err != nil {
		if !os.IsNotExist(err) || !cfg.Signing.GenerateIfMissing {
			return nil, fmt.Errorf("read signing key %s: %w", cfg.Signing.KeyPath, err)
		}

		kp, genErr := canon.NewEd25519KeyPair(cfg.Signing.PeerID)
		if genErr != nil {
			return nil, fmt.Errorf("generate signing key: %w", genErr)
		}
		if writeErr := persistKeyPair(cfg.Signing.KeyPath, kp); writeErr != nil {
			return nil, fmt.Errorf("persist signing key: %w", writeErr)
		}
		logger.Logf("INFO generated new signing key at %s", cfg.Signing.KeyPath)
		return kp, nil
	}

	if len(data) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("signing key %s: expected %d bytes, got %d", cfg.Signing.KeyPath, ed25519.PrivateKeySize, len(data))
	}
	return canon.LoadEd25519KeyPair(cfg.Signing.PeerID, ed25519.PrivateKey(data)), nil
}

func persistKeyPair(path string, kp *canon.Ed25519KeyPair) error {
	return os.WriteFile(path, kp.PrivateKeyBytes(), 0o600)
}
