package protein

import "fmt"

// MissingReferenceError indicates a gene model references a scaffold that is
// not present in the sequence store. The affected gene is dropped, not fatal.
type MissingReferenceError struct {
	Scaffold string
	Gene     string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("gene %s references unknown scaffold %s", e.Gene, e.Scaffold)
}

// TranslationError indicates a coding sequence could not be translated.
// The affected gene is dropped, not fatal.
type TranslationError struct {
	Gene   string
	Reason string
}

func (e *TranslationError) Error() string {
	if e.Gene == "" {
		return "translation failed: " + e.Reason
	}
	return fmt.Sprintf("gene %s: translation failed: %s", e.Gene, e.Reason)
}
