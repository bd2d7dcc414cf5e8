package model

import (
	"github.com/dev-rpatel/janus/model"
)

// AttributeContext is the per-request bag of categorized attributes the
// engine evaluates against. It is populated by the enforcement layer before
// evaluation and must not be modified afterwards; the engine only reads it.
type AttributeContext struct {
	attrs map[model.Category]map[string]model.AttributeValue
}

// NewAttributeContext returns an empty context.
func NewAttributeContext() *AttributeContext {
	return &AttributeContext{
		attrs: make(map[model.Category]map[string]model.AttributeValue),
	}
}

// Put records an attribute value under its category. Returns the context
// for chained population.
func (c *AttributeContext) Put(category model.Category, attributeID string, value model.AttributeValue) *AttributeContext {
	byID, ok := c.attrs[category]
	if !ok {
		byID = make(map[string]model.AttributeValue)
		c.attrs[category] = byID
	}
	byID[attributeID] = value
	return c
}

// PutString records a string attribute.
func (c *AttributeContext) PutString(category model.Category, attributeID, value string) *AttributeContext {
	return c.Put(category, attributeID, model.StringValue(value))
}

// Lookup resolves an attribute by category and id.
func (c *AttributeContext) Lookup(category model.Category, attributeID string) (model.AttributeValue, bool) {
	byID, ok := c.attrs[category]
	if !ok {
		return model.AttributeValue{}, false
	}
	value, ok := byID[attributeID]
	return value, ok
}

// Subject returns the subject attributes as plain strings, for audit records.
func (c *AttributeContext) Subject() map[string]string {
	return c.categoryStrings(model.CategorySubject)
}

// Resource returns the resource attributes as plain strings, for audit records.
func (c *AttributeContext) Resource() map[string]string {
	return c.categoryStrings(model.CategoryResource)
}

// Action returns the action-id attribute, or "" if absent.
func (c *AttributeContext) Action() string {
	value, ok := c.Lookup(model.CategoryAction, model.AttributeActionID)
	if !ok {
		return ""
	}
	return value.String()
}

func (c *AttributeContext) categoryStrings(category model.Category) map[string]string {
	out := make(map[string]string, len(c.attrs[category]))
	for id, value := range c.attrs[category] {
		out[id] = value.String()
	}
	return out
}

// NewRequestContext builds the context shape the enforcement layer uses:
// authenticated subject (username, role), the attempted action, and any
// optional resource attributes such as resource-owner or target-role.
func NewRequestContext(username, role, action string, resourceAttrs map[string]string) *AttributeContext {
	ctx := NewAttributeContext().
		PutString(model.CategorySubject, model.AttributeUsername, username).
		PutString(model.CategorySubject, model.AttributeRole, role).
		PutString(model.CategoryAction, model.AttributeActionID, action)
	for id, value := range resourceAttrs {
		ctx.PutString(model.CategoryResource, id, value)
	}
	return ctx
}

// AccessRequest is the wire form of a query-form decision request.
type AccessRequest struct {
	Subject  Subject           `json:"subject" binding:"required"`
	Action   string            `json:"action" binding:"required"`
	Resource map[string]string `json:"resource,omitempty"`
}

// Subject is the already-authenticated caller identity. The engine never
// authenticates; upstream middleware verifies these values.
type Subject struct {
	Username string `json:"username" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Context converts the wire request into an evaluation context.
func (r AccessRequest) Context() *AttributeContext {
	return NewRequestContext(r.Subject.Username, r.Subject.Role, r.Action, r.Resource)
}
