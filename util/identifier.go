package util

import (
	"fmt"
	"regexp"
)

// IdentifierShape classifies the account identifier a user typed:
// a mobile number, a mobile number followed by the last four aadhaar
// digits, a full aadhaar number, or a beneficiary registration id.
type IdentifierShape string

const SHAPE_MOBILE IdentifierShape = "Mobile"
const SHAPE_MOBILE_AADHAR IdentifierShape = "MobileAadhar"
const SHAPE_AADHAR IdentifierShape = "Aadhar"
const SHAPE_BEN_ID IdentifierShape = "Ben_id"
const SHAPE_UNKNOWN IdentifierShape = ""

var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
var digitsPattern = regexp.MustCompile(`^\d+$`)

// DefaultShapeOrder is the documented resolution order for ambiguous
// inputs: an 11-digit string is a beneficiary id, never a malformed
// mobile number, because Mobile is tried first and fails on length.
var DefaultShapeOrder = []IdentifierShape{
	SHAPE_MOBILE,
	SHAPE_MOBILE_AADHAR,
	SHAPE_AADHAR,
	SHAPE_BEN_ID,
}

func matchesShape(identifier string, shape IdentifierShape) bool {
	switch shape {
	case SHAPE_MOBILE:
		return mobilePattern.MatchString(identifier)
	case SHAPE_MOBILE_AADHAR:
		return len(identifier) == 14 && mobilePattern.MatchString(identifier[:10]) &&
			digitsPattern.MatchString(identifier[10:])
	case SHAPE_AADHAR:
		return len(identifier) == 12 && digitsPattern.MatchString(identifier)
	case SHAPE_BEN_ID:
		return len(identifier) == 11
	}
	return false
}

// ResolveIdentifierShape returns the first shape in order that matches,
// or SHAPE_UNKNOWN when none do.
func ResolveIdentifierShape(identifier string, order []IdentifierShape) IdentifierShape {
	if len(order) == 0 {
		order = DefaultShapeOrder
	}
	for _, shape := range order {
		if matchesShape(identifier, shape) {
			return shape
		}
	}
	return SHAPE_UNKNOWN
}

// ParseShapeOrder converts configured shape names into a resolution order.
func ParseShapeOrder(names []string) ([]IdentifierShape, error) {
	if len(names) == 0 {
		return DefaultShapeOrder, nil
	}
	order := make([]IdentifierShape, 0, len(names))
	for _, name := range names {
		shape := IdentifierShape(name)
		switch shape {
		case SHAPE_MOBILE, SHAPE_MOBILE_AADHAR, SHAPE_AADHAR, SHAPE_BEN_ID:
			order = append(order, shape)
		default:
			return nil, fmt.Errorf("unknown identifier shape %q", name)
		}
	}
	return order, nil
}
