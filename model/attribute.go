// model/attribute.go
package model

import (
	"fmt"
	"strconv"
)

// Category partitions request attributes the way the evaluation engine
// looks them up: who is asking, what they are acting on, what they are
// doing, and under which circumstances.
type Category string

const (
	CategorySubject     Category = "subject"
	CategoryResource    Category = "resource"
	CategoryAction      Category = "action"
	CategoryEnvironment Category = "environment"
)

// Well-known attribute identifiers used by the shipped policy set and the
// enforcement layer.
const (
	AttributeUsername      = "username"
	AttributeRole          = "role"
	AttributeActionID      = "action-id"
	AttributeResourceOwner = "resource-owner"
	AttributeTargetRole    = "target-role"
)

// DataType tags an attribute value. Only string comparisons are performed
// today, but the tag travels with the value so that mixed-type comparisons
// stay detectable.
type DataType string

const (
	DataTypeString  DataType = "string"
	DataTypeBoolean DataType = "boolean"
	DataTypeInteger DataType = "integer"
)

// AttributeValue is a typed literal, either written down in a policy
// document or supplied in a request context.
type AttributeValue struct {
	DataType DataType `json:"data_type"`
	Value    any      `json:"value"`
}

// StringValue wraps a plain string in an AttributeValue.
func StringValue(s string) AttributeValue {
	return AttributeValue{DataType: DataTypeString, Value: s}
}

// BoolValue wraps a boolean in an AttributeValue.
func BoolValue(b bool) AttributeValue {
	return AttributeValue{DataType: DataTypeBoolean, Value: b}
}

// IntValue wraps an integer in an AttributeValue.
func IntValue(i int64) AttributeValue {
	return AttributeValue{DataType: DataTypeInteger, Value: i}
}

// String renders the canonical string form of the value.
func (v AttributeValue) String() string {
	switch val := v.Value.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		// encoding/json decodes numbers as float64
		return strconv.FormatInt(int64(val), 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Equal reports whether two values carry the same type tag and the same
// canonical string form.
func (v AttributeValue) Equal(other AttributeValue) bool {
	return v.DataType == other.DataType && v.String() == other.String()
}

// AttributeDesignator names an attribute to be resolved from the request
// context at evaluation time. MustBePresent controls whether a missing
// attribute is an error (Indeterminate upstream) or simply a non-match.
type AttributeDesignator struct {
	Category      Category `json:"category"`
	AttributeID   string   `json:"attribute_id"`
	DataType      DataType `json:"data_type"`
	MustBePresent bool     `json:"must_be_present"`
}
