package uploadkit

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Outcome is the ordered list of failures found by Validate: transport
// first, then size, extension, category and custom checks.
type Outcome struct {
	Errors []*ValidationError
}

// Valid reports whether no failure was found.
func (o Outcome) Valid() bool {
	return len(o.Errors) == 0
}

// Codes returns the failure codes in detection order.
func (o Outcome) Codes() []ErrorCode {
	codes := make([]ErrorCode, len(o.Errors))
	for i, e := range o.Errors {
		codes[i] = e.Code
	}
	return codes
}

// Messages returns the failure messages in detection order.
func (o Outcome) Messages() []string {
	msgs := make([]string, len(o.Errors))
	for i, e := range o.Errors {
		msgs[i] = e.Message
	}
	return msgs
}

// Err returns all failures combined, nil when valid.
func (o Outcome) Err() error {
	if o.Valid() {
		return nil
	}
	errs := make([]error, len(o.Errors))
	for i, e := range o.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// ErrorMessages returns the messages of o in detection order.
func ErrorMessages(o Outcome) []string {
	return o.Messages()
}

// Validate checks f against p without touching f's recorded errors. A nil
// p means DefaultPolicy. Every check runs; failures never short-circuit.
func Validate(f *File, p *Policy) Outcome {
	if p == nil {
		p = ResolvePolicy(DefaultPolicy(), Rules{})
	}

	var out Outcome
	add := func(err *ValidationError) {
		out.Errors = append(out.Errors, err)
	}

	if f.Error != ErrOK {
		add(NewValidationError(ErrorTypeTransport, f.Error, p.message(f.Error)))
	}

	if !p.Size.Allows(f.Size) {
		add(NewValidationError(ErrorTypeSize, ErrSizeFilter, sizeMessage(f, p)))
	}

	if p.Extensions != nil && !allowsExtension(p.Extensions, f.Extension) {
		add(NewValidationError(ErrorTypeExtension, ErrExtensionFilter,
			filterMessage(p.Extensions, "extension", f.Extension, p.message(ErrExtensionFilter))))
	}

	if p.Categories != nil && !allowsCategory(p.Categories, string(f.Category)) {
		add(NewValidationError(ErrorTypeCategory, ErrCategoryFilter,
			filterMessage(p.Categories, "category", string(f.Category), p.message(ErrCategoryFilter))))
	}

	for _, check := range p.Checks {
		if check == nil {
			continue
		}
		if err := customError(check.Check(f)); err != nil {
			add(err)
		}
	}

	return out
}

func sizeMessage(f *File, p *Policy) string {
	if p.Size.Message != "" {
		return p.Size.Message
	}
	return fmt.Sprintf("[size (kb): %.2f] %s", float64(f.Size)/float64(KB), p.message(ErrSizeFilter))
}

func filterMessage(fp *FilterPolicy, label, value, base string) string {
	if fp.Message != "" {
		return fp.Message
	}
	return fmt.Sprintf("[%s: %s] %s", label, value, base)
}

// allowsExtension compares case-insensitively. An extension must be in
// Allow and, when Deny is set, must not be in Deny.
func allowsExtension(fp *FilterPolicy, ext string) bool {
	if !containsFold(fp.Allow, ext) {
		return false
	}
	return len(fp.Deny) == 0 || !containsFold(fp.Deny, ext)
}

// allowsCategory is allowsExtension with exact comparison.
func allowsCategory(fp *FilterPolicy, category string) bool {
	if !contains(fp.Allow, category) {
		return false
	}
	return !contains(fp.Deny, category)
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// customError turns a check result into a recorded failure. Nil errors and
// errors with an empty message count as a pass.
func customError(err error) *ValidationError {
	if err == nil || err.Error() == "" {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return NewValidationError(ErrorTypeCustom, ErrCustom, err.Error())
}

// DenyExtensions returns a check that rejects the given extensions,
// case-insensitively, while leaving the extension filter unconfigured. Use
// it when only a block list is known.
func DenyExtensions(exts ...string) Check {
	deny := slices.Clone(exts)
	return CheckFunc(func(f *File) error {
		if !containsFold(deny, f.Extension) {
			return nil
		}
		return NewValidationError(ErrorTypeExtension, ErrExtensionFilter,
			fmt.Sprintf("[extension: %s] %s", f.Extension, f.Policy().message(ErrExtensionFilter)))
	})
}

// DenyCategories is DenyExtensions for categories, compared exactly.
func DenyCategories(categories ...string) Check {
	deny := slices.Clone(categories)
	return CheckFunc(func(f *File) error {
		if !contains(deny, string(f.Category)) {
			return nil
		}
		return NewValidationError(ErrorTypeCategory, ErrCategoryFilter,
			fmt.Sprintf("[category: %s] %s", f.Category, f.Policy().message(ErrCategoryFilter)))
	})
}
