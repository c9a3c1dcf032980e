package license

// gate allows tests and the config TUI preview to force Pro on or off
// without touching the filesystem. nil means "check the real license".
var gate func() bool

// SetGate overrides the Pro check. Pass nil to restore the default
// storage-backed check.
func SetGate(fn func() bool) {
	gate = fn
}

// CheckPro returns the license info when a valid Pro license is stored.
func CheckPro() (Info, bool) {
	storage := NewStorage()
	key := storage.LoadKey()
	if key == "" {
		return Info{}, false
	}
	info := NewValidatorWith(storage).Validate(key)
	if info.Status == StatusValid || info.Status == StatusGracePeriod {
		return info, true
	}
	return Info{}, false
}

// IsPro reports whether Pro features should be enabled.
func IsPro() bool {
	if gate != nil {
		return gate()
	}
	_, ok := CheckPro()
	return ok
}
