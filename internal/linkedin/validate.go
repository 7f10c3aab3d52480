package linkedin

// Validate rejects a share before any request is built.
func Validate(urn string, req ShareRequest) error {
	if err := validateURN(urn); err != nil {
		return err
	}
	if req.Comment == "" {
		return invalid(ErrMissingComment)
	}
	return nil
}

func validateURN(urn string) error {
	if urn == "" {
		return invalid(ErrInvalidURN)
	}
	return nil
}
