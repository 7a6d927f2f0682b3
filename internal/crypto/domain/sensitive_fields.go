package domain

// SensitiveFields groups the journal entry attributes whose plaintext must never be
// persisted. A nil pointer means "no value" and is passed through unchanged by every
// transformation.
type SensitiveFields struct {
	Content        *string
	AIInsight      *string
	Recommendation *string
	Question       *string
}

// Map returns a copy of f with fn applied to every non-nil field. f is not modified.
// The first error aborts the transformation.
func (f SensitiveFields) Map(fn func(string) (string, error)) (SensitiveFields, error) {
	out := f
	for _, field := range []**string{&out.Content, &out.AIInsight, &out.Recommendation, &out.Question} {
		if *field == nil {
			continue
		}
		value, err := fn(**field)
		if err != nil {
			return SensitiveFields{}, err
		}
		*field = &value
	}
	return out, nil
}

// Values returns the non-nil field values in declaration order.
func (f SensitiveFields) Values() []string {
	values := make([]string, 0, 4)
	for _, v := range []*string{f.Content, f.AIInsight, f.Recommendation, f.Question} {
		if v != nil {
			values = append(values, *v)
		}
	}
	return values
}
