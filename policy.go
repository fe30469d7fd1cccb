package uploadkit

import (
	"maps"
	"slices"
	"strings"
)

// Size constants for easier file size configuration
const (
	KB = int64(1024)
	MB = KB * 1024
	GB = MB * 1024
)

// Unit is the unit a size bound is expressed in.
type Unit string

const (
	UnitByte Unit = "byte"
	UnitKB   Unit = "KB"
	UnitMB   Unit = "MB"
	UnitGB   Unit = "GB"
)

// ParseUnit maps a case-insensitive unit spelling to a Unit. Unknown
// spellings fall back to UnitByte.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kb":
		return UnitKB
	case "mb":
		return UnitMB
	case "gb":
		return UnitGB
	default:
		return UnitByte
	}
}

// Multiplier returns the number of bytes in one u.
func (u Unit) Multiplier() int64 {
	switch ParseUnit(string(u)) {
	case UnitKB:
		return KB
	case UnitMB:
		return MB
	case UnitGB:
		return GB
	default:
		return 1
	}
}

// Bytes converts v expressed in u to bytes.
func (u Unit) Bytes(v float64) float64 {
	return v * float64(u.Multiplier())
}

// SizePolicy bounds the accepted file size. Both bounds are inclusive.
type SizePolicy struct {
	Min  float64
	Max  float64
	Unit Unit

	// Message, when set, replaces the whole size error message.
	Message string
}

// MinBytes returns the lower bound in bytes.
func (s SizePolicy) MinBytes() float64 { return s.Unit.Bytes(s.Min) }

// MaxBytes returns the upper bound in bytes.
func (s SizePolicy) MaxBytes() float64 { return s.Unit.Bytes(s.Max) }

// Allows reports whether size (in bytes) lies within the bounds.
func (s SizePolicy) Allows(size int64) bool {
	b := float64(size)
	return b >= s.MinBytes() && b <= s.MaxBytes()
}

// FilterPolicy is an allow/deny set used by the extension and category
// filters.
type FilterPolicy struct {
	Allow []string
	Deny  []string

	// Message, when set, replaces the whole filter error message.
	Message string
}

// Policy is the resolved, read-only validation configuration for a batch.
type Policy struct {
	Size SizePolicy

	// Extensions and Categories are nil when the filter is not configured.
	Extensions *FilterPolicy
	Categories *FilterPolicy

	Checks []Check

	// Messages overrides the base message of an error code.
	Messages map[ErrorCode]string
}

// DefaultPolicy returns the built-in defaults: 0 to 200 MB, no filters.
func DefaultPolicy() Policy {
	return Policy{
		Size: SizePolicy{Min: 0, Max: 200, Unit: UnitMB},
	}
}

// Check is a caller-defined validation. A non-nil error with a non-empty
// message is recorded verbatim as a custom failure.
type Check interface {
	Check(f *File) error
}

// CheckFunc adapts a function to the Check interface.
type CheckFunc func(f *File) error

// Check implements Check
func (fn CheckFunc) Check(f *File) error { return fn(f) }

type overrideKind int

const (
	overrideNone overrideKind = iota
	overrideFields
	overrideScalar
	overrideList
)

// SizeSpec is the struct form of a size override; nil fields keep the
// default.
type SizeSpec struct {
	Min     *float64
	Max     *float64
	Unit    *Unit
	Message *string
}

// SizeOverride replaces part of the default size policy. The zero value
// leaves the defaults untouched.
type SizeOverride struct {
	kind   overrideKind
	fields SizeSpec
	max    float64
}

// SizeFields overrides the size policy field by field.
func SizeFields(spec SizeSpec) SizeOverride {
	return SizeOverride{kind: overrideFields, fields: spec}
}

// MaxSize overrides only the upper bound, keeping min and unit.
func MaxSize(max float64) SizeOverride {
	return SizeOverride{kind: overrideScalar, max: max}
}

// IsSet reports whether o carries any override.
func (o SizeOverride) IsSet() bool { return o.kind != overrideNone }

// Merge applies o on top of def.
func (o SizeOverride) Merge(def SizePolicy) SizePolicy {
	out := def
	switch o.kind {
	case overrideScalar:
		out.Max = o.max
	case overrideFields:
		if o.fields.Min != nil {
			out.Min = *o.fields.Min
		}
		if o.fields.Max != nil {
			out.Max = *o.fields.Max
		}
		if o.fields.Unit != nil {
			out.Unit = *o.fields.Unit
		}
		if o.fields.Message != nil {
			out.Message = *o.fields.Message
		}
	}
	return out
}

// FilterSpec is the struct form of a filter override; nil fields keep the
// default.
type FilterSpec struct {
	Allow   []string
	Deny    []string
	Message *string
}

// FilterOverride configures an extension or category filter. The zero value
// leaves the filter unconfigured.
type FilterOverride struct {
	kind   overrideKind
	fields FilterSpec
	list   []string
}

// FilterFields configures a filter field by field.
func FilterFields(spec FilterSpec) FilterOverride {
	return FilterOverride{kind: overrideFields, fields: spec}
}

// Allow configures a filter that accepts exactly one value.
func Allow(v string) FilterOverride {
	return FilterOverride{kind: overrideScalar, list: []string{v}}
}

// AllowList configures a filter that accepts the given values.
func AllowList(vs ...string) FilterOverride {
	return FilterOverride{kind: overrideList, list: slices.Clone(vs)}
}

// IsSet reports whether o configures the filter.
func (o FilterOverride) IsSet() bool { return o.kind != overrideNone }

// Merge applies o on top of def. The result never aliases the caller's
// slices.
func (o FilterOverride) Merge(def FilterPolicy) FilterPolicy {
	out := FilterPolicy{
		Allow:   slices.Clone(def.Allow),
		Deny:    slices.Clone(def.Deny),
		Message: def.Message,
	}
	switch o.kind {
	case overrideScalar, overrideList:
		out.Allow = slices.Clone(o.list)
	case overrideFields:
		if o.fields.Allow != nil {
			out.Allow = slices.Clone(o.fields.Allow)
		}
		if o.fields.Deny != nil {
			out.Deny = slices.Clone(o.fields.Deny)
		}
		if o.fields.Message != nil {
			out.Message = *o.fields.Message
		}
	}
	if out.Allow == nil {
		out.Allow = []string{}
	}
	if out.Deny == nil {
		out.Deny = []string{}
	}
	return out
}

// Rules is the caller-supplied validation configuration layered over a
// default Policy.
type Rules struct {
	Size       SizeOverride
	Extensions FilterOverride
	Categories FilterOverride
	Checks     []Check
	Messages   map[ErrorCode]string
}

// ResolvePolicy merges rules over defaults. Sections absent from rules keep
// their default; filters absent from both stay unconfigured.
func ResolvePolicy(defaults Policy, rules Rules) *Policy {
	p := &Policy{
		Size:       rules.Size.Merge(defaults.Size),
		Extensions: resolveFilter(defaults.Extensions, rules.Extensions),
		Categories: resolveFilter(defaults.Categories, rules.Categories),
		Messages:   maps.Clone(defaults.Messages),
	}

	p.Checks = append(slices.Clone(defaults.Checks), rules.Checks...)

	if len(rules.Messages) > 0 {
		if p.Messages == nil {
			p.Messages = make(map[ErrorCode]string, len(rules.Messages))
		}
		maps.Copy(p.Messages, rules.Messages)
	}

	return p
}

func resolveFilter(def *FilterPolicy, o FilterOverride) *FilterPolicy {
	if !o.IsSet() {
		if def == nil {
			return nil
		}
		out := FilterOverride{}.Merge(*def)
		return &out
	}

	base := FilterPolicy{}
	if def != nil {
		base = *def
	}
	out := o.Merge(base)
	return &out
}

// message returns the base message for code, honouring overrides.
func (p *Policy) message(code ErrorCode) string {
	if p != nil {
		if msg, ok := p.Messages[code]; ok {
			return msg
		}
	}
	return DefaultMessage(code)
}

// Ptr returns a pointer to v, for building SizeSpec and FilterSpec values.
func Ptr[T any](v T) *T {
	return &v
}
