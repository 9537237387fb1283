package settings

// ValidatePatch rejects values that cannot be normalized. Negative numbers
// are accepted and clamped later.
func ValidatePatch(patch Patch) error {
	if patch.Theme != nil && !patch.Theme.Valid() {
		return ErrInvalidInput
	}
	return nil
}
