package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxCaptionLength bounds annotation captions; longer names are almost always
// a whole description pasted into the wrong field.
const maxCaptionLength = 256

// ValidateCaption validates an annotation caption.
//
// The validation rules are intentionally conservative:
//   - No empty captions
//   - No control characters (captions end up inside SVG text)
//   - Maximum length of 256 characters
func ValidateCaption(caption string) error {
	if strings.TrimSpace(caption) == "" {
		return New(ErrCodeInvalidInput, "annotation caption cannot be empty")
	}

	if len(caption) > maxCaptionLength {
		return New(ErrCodeInvalidInput, "annotation caption too long (max %d characters)", maxCaptionLength)
	}

	for _, r := range caption {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "annotation caption contains invalid control characters")
		}
	}

	return nil
}

// annotationTypeRegex matches feature keys such as "CDS", "promoter",
// "rep_origin" or "misc_feature" and the odd "5'UTR".
var annotationTypeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_'\-]*$`)

// ValidateAnnotationType validates an annotation type. Empty is allowed and
// means an untyped annotation.
func ValidateAnnotationType(typ string) error {
	if typ == "" {
		return nil
	}
	if len(typ) > 64 {
		return New(ErrCodeInvalidInput, "annotation type too long (max 64 characters)")
	}
	if !annotationTypeRegex.MatchString(typ) {
		return New(ErrCodeInvalidInput, "invalid annotation type: %q", typ)
	}
	return nil
}

// attributeKeyRegex matches qualifier keys ("gene", "locus_tag", "note").
var attributeKeyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]*$`)

// ValidateAttributeKey validates an annotation attribute key.
func ValidateAttributeKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "attribute key cannot be empty")
	}
	if !attributeKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid attribute key: %q", key)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
