package mapping

// validated maps a stored record to its domain form and checks it at the store boundary.
func validated[M, D any](m M, toDomain func(M) D, validate func(D) error) (D, error) {
	d := toDomain(m)
	if err := validate(d); err != nil {
		var zero D
		return zero, err
	}
	return d, nil
}

// validatedSlice rejects the whole slice when any record fails validation.
func validatedSlice[M, D any](ms []M, toDomain func(M) D, validate func(D) error) ([]D, error) {
	ds := make([]D, len(ms))
	for i, m := range ms {
		d, err := validated(m, toDomain, validate)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
