// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vaultapp wires the cryptographic core (internal/crypto,
// internal/vaultstore) to the durable file layout (internal/vaultfile),
// exposing one verb per CLI command so cmd/vault stays a thin line-oriented
// shell with no cryptographic or storage logic of its own.
package vaultapp

import (
	"context"
	"time"

	"github.com/rkhiriev/go-pass-keeper/internal/crypto"
	"github.com/rkhiriev/go-pass-keeper/internal/logger"
	"github.com/rkhiriev/go-pass-keeper/internal/secret"
	"github.com/rkhiriev/go-pass-keeper/internal/sitename"
	"github.com/rkhiriev/go-pass-keeper/internal/validators"
	"github.com/rkhiriev/go-pass-keeper/internal/vaultfile"
	"github.com/rkhiriev/go-pass-keeper/internal/vaultstore"
	"github.com/rkhiriev/go-pass-keeper/models"
)

// App holds the process-lifetime state of one vault session: the durable
// file handle, the in-memory store, and the crypto session key material.
type App struct {
	file    *vaultfile.File
	log     *logger.Logger
	store   *vaultstore.Store
	session *crypto.Session
	userKey *secret.Array32
	salt    models.Salt
	dirty   bool

	// pendingCiphertext holds a loaded-but-undecrypted store body between
	// Open and the first successful Login; FirstLogin discards it instead.
	pendingCiphertext []byte

	masterPWValidator    validators.Validator
	credentialsValidator validators.Validator
}

// Open loads the vault directory at dir, reconciling any ungraceful-exit
// marker. On first login the returned App has no session yet: call Login
// or FirstLogin before any other operation. Returns a non-nil warning when
// recovery happened (RevertedForUngracefulExited / ResetDBForCorruptedFile).
// lockTimeout bounds how long Load/Save retry the advisory file lock before
// failing with ErrLockWouldBlock; zero tries once.
func Open(dir string, log *logger.Logger, lockTimeout time.Duration) (*App, error, error) {
	f := vaultfile.Open(dir)
	f.SetLockTimeout(lockTimeout)
	log.Debug().Str("dir", dir).Msg("loading vault file")
	header, ciphertext, warn, err := f.Load()
	if err != nil {
		return nil, nil, err
	}
	if warn != nil {
		log.Warn().Err(warn).Msg("vault file recovery")
	}

	app := &App{
		file:                 f,
		log:                  log,
		salt:                 models.Salt(header.Salt),
		masterPWValidator:    validators.NewMasterPWValidator(),
		credentialsValidator: validators.NewCredentialsValidator(),
	}
	app.pendingCiphertext = ciphertext
	return app, warn, nil
}

// HasExistingVault reports whether Open found a previously persisted store,
// i.e. whether the caller should authenticate with Login rather than
// FirstLogin.
func (a *App) HasExistingVault() bool {
	return len(a.pendingCiphertext) > 0
}

// Login derives the session from passphrase and the persisted salt, then
// decrypts the loaded ciphertext (if any) into the in-memory store.
func (a *App) Login(passphrase string) error {
	a.log.Debug().Msg("deriving session from master passphrase")
	sess, err := crypto.Login(passphrase, a.salt)
	if err != nil {
		return err
	}

	if len(a.pendingCiphertext) == 0 {
		a.session = sess
		a.session.RetireSecretKey()
		a.store = vaultstore.New()
	} else {
		secKey, ok := sess.SecretKey()
		if !ok {
			return models.ErrInvalidSession
		}
		a.log.Debug().Msg("decrypting store blob")
		store, err := vaultstore.DecryptStore(secKey, a.pendingCiphertext)
		sess.RetireSecretKey()
		if err != nil {
			return err
		}
		a.session = sess
		a.store = store
	}

	userKey, err := crypto.UnwrapUserKey(a.session)
	if err != nil {
		return err
	}
	a.userKey = &userKey
	a.pendingCiphertext = nil
	return nil
}

// FirstLogin creates a brand-new identity and an empty store for a vault
// directory with no prior ciphertext.
func (a *App) FirstLogin(passphrase string) error {
	if err := a.masterPWValidator.Validate(context.Background(), passphrase); err != nil {
		return err
	}

	a.log.Debug().Msg("deriving fresh session for first login")
	sess, salt, err := crypto.FirstLogin(passphrase)
	if err != nil {
		return err
	}
	userKey, err := crypto.UnwrapUserKey(sess)
	if err != nil {
		return err
	}

	a.session = sess
	a.salt = salt
	a.store = vaultstore.New()
	a.userKey = &userKey
	a.pendingCiphertext = nil
	return nil
}

// AddUserPW inserts new credentials and marks the on-disk state dirty.
func (a *App) AddUserPW(rawSite, rawID, rawPW string) error {
	site, id, pw, err := a.parseCredentials(rawSite, rawID, rawPW)
	if err != nil {
		return err
	}
	if err := a.store.Add(a.userKey, site, id, pw); err != nil {
		return err
	}
	return a.markDirty()
}

// ChangeUserPW replaces existing credentials and marks the on-disk state
// dirty.
func (a *App) ChangeUserPW(rawSite, rawID, rawPW string) error {
	site, id, pw, err := a.parseCredentials(rawSite, rawID, rawPW)
	if err != nil {
		return err
	}
	if err := a.store.Change(a.userKey, site, id, pw); err != nil {
		return err
	}
	return a.markDirty()
}

// RemoveUserPW deletes credentials and marks the on-disk state dirty.
func (a *App) RemoveUserPW(rawSite, rawID string) error {
	site, err := sitename.New(rawSite)
	if err != nil {
		return err
	}
	id, err := sitename.NewUserID(rawID)
	if err != nil {
		return err
	}
	if err := a.store.Remove(site, id); err != nil {
		return err
	}
	return a.markDirty()
}

// GetUserPW returns the decrypted password for (site, id).
func (a *App) GetUserPW(rawSite, rawID string) (models.UserPW, error) {
	site, err := sitename.New(rawSite)
	if err != nil {
		return "", err
	}
	id, err := sitename.NewUserID(rawID)
	if err != nil {
		return "", err
	}
	return a.store.Get(a.userKey, site, id)
}

// PrefixSearch returns every site whose registrable domain starts with
// prefix, in ascending order. An empty prefix lists every site.
func (a *App) PrefixSearch(prefix string) []vaultstore.PrefixRangeEntry {
	return a.store.PrefixRange(prefix)
}

// ChangeMasterPassword rotates every record to a new identity derived from
// newPassphrase. The caller is responsible for confirming newPassphrase
// against a second entry before calling this (spec's corrected
// confirmation rule: proceed only if confirmation equals the new
// password).
func (a *App) ChangeMasterPassword(newPassphrase string) error {
	if err := a.masterPWValidator.Validate(context.Background(), newPassphrase); err != nil {
		return err
	}

	a.log.Debug().Msg("rotating master passphrase: re-encrypting all records")
	newSalt, err := vaultstore.ChangeMasterPassword(a.session, a.store, newPassphrase)
	if err != nil {
		return err
	}
	a.salt = newSalt

	newUserKey, err := crypto.UnwrapUserKey(a.session)
	if err != nil {
		return err
	}
	a.userKey.Zero()
	a.userKey = &newUserKey
	return a.markDirty()
}

// SaveDB persists the current store to disk and clears the dirty marker.
func (a *App) SaveDB() error {
	a.log.Debug().Msg("encrypting store blob")
	blob, err := vaultstore.EncryptStore(a.store, a.session.PubKey)
	if err != nil {
		return err
	}
	a.log.Debug().Msg("writing vault file")
	if err := a.file.Save(a.salt, blob); err != nil {
		return err
	}
	if err := a.file.MarkGraceful(); err != nil {
		return err
	}
	a.dirty = false
	return nil
}

// ExitWithSave saves, then releases all in-memory key material.
func (a *App) ExitWithSave() error {
	if err := a.SaveDB(); err != nil {
		return err
	}
	a.Close()
	return nil
}

// ExitWithoutSave discards in-memory changes and releases key material.
func (a *App) ExitWithoutSave() {
	a.Close()
}

// Close zeroes and releases all key material held by the session.
func (a *App) Close() {
	if a.session != nil {
		a.session.Close()
	}
	if a.userKey != nil {
		a.userKey.Zero()
	}
}

func (a *App) markDirty() error {
	a.dirty = true
	return a.file.MarkUngraceful()
}

// parseCredentials validates the raw (site, id, pw) triple through
// credentialsValidator before constructing the canonical models, so both
// this path and RemoveUserPW/GetUserPW (which only need Site/ID) share the
// same error set.
func (a *App) parseCredentials(rawSite, rawID, rawPW string) (models.SiteName, models.UserID, models.UserPW, error) {
	raw := validators.RawCredentials{Site: rawSite, ID: rawID, PW: rawPW}
	if err := a.credentialsValidator.Validate(context.Background(), raw); err != nil {
		return models.SiteName{}, "", "", err
	}

	site, err := sitename.New(rawSite)
	if err != nil {
		return models.SiteName{}, "", "", err
	}
	id, err := sitename.NewUserID(rawID)
	if err != nil {
		return models.SiteName{}, "", "", err
	}
	pw, err := sitename.NewUserPW(rawPW)
	if err != nil {
		return models.SiteName{}, "", "", err
	}
	return site, id, pw, nil
}
