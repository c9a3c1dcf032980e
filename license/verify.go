// Package license gates Pro-only widgets behind an offline license check.
//
// Key format: CL-PRO-XXXX-XXXX-XXXX-XXXX (hex). The last segment is a
// checksum: the first four hex characters of SHA-256 over the first three
// segments joined with dashes. Validation is fully offline; a cached
// result is reused for 24 hours and honored for a further 7-day grace
// period. Widgets never see an error from this package, only Free tier.
package license

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	keyPrefix       = "CL-PRO-"
	keySegmentLen   = 4
	keySegmentCount = 4

	revalidationInterval = 24 * time.Hour
	offlineGracePeriod   = 7 * 24 * time.Hour
)

// Tier is the entitlement level of a license.
type Tier string

const (
	TierFree     Tier = "free"
	TierPro      Tier = "pro"
	TierLifetime Tier = "lifetime"
)

// Status describes the outcome of a validation.
type Status string

const (
	StatusValid       Status = "valid"
	StatusInvalid     Status = "invalid"
	StatusGracePeriod Status = "grace_period"
)

// Info is the result of validating a license key.
type Info struct {
	Tier          Tier
	Status        Status
	Key           string
	Features      []string
	LastValidated time.Time
	MachineID     string
}

func proFeatures() []string {
	return []string{"burn-rate", "cost-warning", "model-suggest"}
}

// Validator checks license keys against local storage.
type Validator struct {
	storage *Storage
}

// NewValidator returns a validator backed by the default storage location.
func NewValidator() *Validator {
	return &Validator{storage: NewStorage()}
}

// NewValidatorWith returns a validator backed by explicit storage.
func NewValidatorWith(storage *Storage) *Validator {
	return &Validator{storage: storage}
}

// Validate checks a key: format first, then the cached validation result,
// then the offline checksum as a last resort.
func (v *Validator) Validate(key string) Info {
	machineID := machineID()

	if !ValidateFormat(key) {
		return Info{Tier: TierFree, Status: StatusInvalid, Key: key, MachineID: machineID}
	}

	if cache, ok := v.storage.LoadCache(); ok && cache.Valid {
		age := time.Since(cache.ValidatedAt)
		switch {
		case age < revalidationInterval:
			return Info{
				Tier:          cache.Tier,
				Status:        StatusValid,
				Key:           key,
				Features:      cache.Features,
				LastValidated: cache.ValidatedAt,
				MachineID:     machineID,
			}
		case age < offlineGracePeriod:
			return Info{
				Tier:          cache.Tier,
				Status:        StatusGracePeriod,
				Key:           key,
				Features:      cache.Features,
				LastValidated: cache.ValidatedAt,
				MachineID:     machineID,
			}
		}
	}

	return offlineValidate(key, machineID)
}

// Activate validates the key format, stores the key, and seeds the
// validation cache so Pro widgets work immediately.
func (v *Validator) Activate(key string) (Info, error) {
	if !ValidateFormat(key) {
		return Info{}, fmt.Errorf(
			"license: invalid key format, expected CL-PRO-XXXX-XXXX-XXXX-XXXX (hex), got %q", key)
	}
	if err := v.storage.SaveKey(key); err != nil {
		return Info{}, err
	}
	cache := &ValidationCache{
		Valid:       true,
		Tier:        TierPro,
		Features:    proFeatures(),
		ValidatedAt: time.Now(),
	}
	_ = v.storage.SaveCache(cache)

	return Info{
		Tier:          TierPro,
		Status:        StatusValid,
		Key:           key,
		Features:      proFeatures(),
		LastValidated: cache.ValidatedAt,
		MachineID:     machineID(),
	}, nil
}

// Deactivate removes the stored key and cache.
func (v *Validator) Deactivate() error {
	return v.storage.RemoveKey()
}

// ValidateFormat reports whether key matches CL-PRO-XXXX-XXXX-XXXX-XXXX
// with hex segments.
func ValidateFormat(key string) bool {
	key = strings.TrimSpace(key)
	if !strings.HasPrefix(key, keyPrefix) {
		return false
	}
	segments := strings.Split(key[len(keyPrefix):], "-")
	if len(segments) != keySegmentCount {
		return false
	}
	for _, seg := range segments {
		if len(seg) != keySegmentLen {
			return false
		}
		for _, c := range seg {
			if !isHexDigit(c) {
				return false
			}
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// VerifyChecksum reports whether the key's last segment matches the
// truncated SHA-256 of the first three segments.
func VerifyChecksum(key string) bool {
	key = strings.TrimSpace(key)
	if !ValidateFormat(key) {
		return false
	}
	segments := strings.Split(key[len(keyPrefix):], "-")
	payload := segments[0] + "-" + segments[1] + "-" + segments[2]

	sum := sha256.Sum256([]byte(payload))
	computed := strings.ToUpper(hex.EncodeToString(sum[:]))[:keySegmentLen]
	return strings.ToUpper(segments[3]) == computed
}

func offlineValidate(key, machineID string) Info {
	if VerifyChecksum(key) {
		return Info{
			Tier:      TierPro,
			Status:    StatusValid,
			Key:       key,
			Features:  proFeatures(),
			MachineID: machineID,
		}
	}
	return Info{Tier: TierFree, Status: StatusInvalid, Key: key, MachineID: machineID}
}

// machineID derives a stable, anonymized identifier for this machine.
func machineID() string {
	raw := rawMachineID()
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:8])
}

func rawMachineID() string {
	if data, err := os.ReadFile("/etc/machine-id"); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	// macOS: IOPlatformUUID from ioreg.
	if out, err := exec.Command("ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output(); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			if strings.Contains(line, "IOPlatformUUID") {
				if _, v, ok := strings.Cut(line, "="); ok {
					return strings.Trim(strings.TrimSpace(v), `"`)
				}
			}
		}
	}
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}
