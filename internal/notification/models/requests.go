package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
)

const maxTextRunes = 255

// ChannelRequest creates a channel or replaces its type and config.
type ChannelRequest struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
}

// ChannelPatch changes only the fields present in the body. An explicit null
// config clears it.
type ChannelPatch struct {
	Type   json.RawMessage `json:"type"`
	Config json.RawMessage `json:"config"`
}

// SubscriptionRequest creates a subscription or replaces all of its fields.
// Enabled defaults to 1 when absent.
type SubscriptionRequest struct {
	Channel    *id.NotificationChannelID `json:"channel"`
	EntityType string                    `json:"entityType"`
	EntityID   int64                     `json:"entityId"`
	Enabled    *int                      `json:"enabled"`
}

// SubscriptionPatch changes only the fields present in the body. An explicit
// null channel detaches the subscription.
type SubscriptionPatch struct {
	Channel    json.RawMessage `json:"channel"`
	EntityType json.RawMessage `json:"entityType"`
	EntityID   json.RawMessage `json:"entityId"`
	Enabled    json.RawMessage `json:"enabled"`
}

// SubscriptionFilter narrows a subscription listing. Zero fields match all.
type SubscriptionFilter struct {
	EntityType string
	EntityID   int64
}

func (r ChannelRequest) Validate() error {
	return checkType(r.Type)
}

// Apply writes the fields present in p onto c.
func (p ChannelPatch) Apply(c *NotificationChannel) error {
	if len(p.Type) > 0 {
		var t string
		if err := json.Unmarshal(p.Type, &t); err != nil {
			return dErrors.New(dErrors.CodeValidation, "type must be a string")
		}
		if err := checkType(t); err != nil {
			return err
		}
		c.Type = strings.TrimSpace(t)
	}
	if len(p.Config) > 0 {
		var config map[string]any
		if err := decodeField(p.Config, &config); err != nil {
			return dErrors.New(dErrors.CodeValidation, "config must be an object or null")
		}
		c.Config = config
	}
	return nil
}

func (r SubscriptionRequest) Validate() error {
	if err := checkEntity(r.EntityType, r.EntityID); err != nil {
		return err
	}
	if r.Channel != nil && *r.Channel <= 0 {
		return dErrors.New(dErrors.CodeValidation, "channel must be a positive id")
	}
	if r.Enabled != nil {
		return checkEnabled(*r.Enabled)
	}
	return nil
}

// EnabledOrDefault is Enabled, or 1 when the client left it out.
func (r SubscriptionRequest) EnabledOrDefault() int {
	if r.Enabled == nil {
		return 1
	}
	return *r.Enabled
}

// Apply writes the fields present in p onto s. The channel is returned
// separately so the caller can check it belongs to the same tenant; changed
// is false when the body does not mention it.
func (p SubscriptionPatch) Apply(s *NotificationSubscription) (channel *id.NotificationChannelID, changed bool, err error) {
	if len(p.EntityType) > 0 {
		if err := json.Unmarshal(p.EntityType, &s.EntityType); err != nil {
			return nil, false, dErrors.New(dErrors.CodeValidation, "entityType must be a string")
		}
	}
	if len(p.EntityID) > 0 {
		if err := json.Unmarshal(p.EntityID, &s.EntityID); err != nil {
			return nil, false, dErrors.New(dErrors.CodeValidation, "entityId must be an integer")
		}
	}
	if err := checkEntity(s.EntityType, s.EntityID); err != nil {
		return nil, false, err
	}
	if len(p.Enabled) > 0 {
		if err := json.Unmarshal(p.Enabled, &s.Enabled); err != nil {
			return nil, false, dErrors.New(dErrors.CodeValidation, "enabled must be 0 or 1")
		}
		if err := checkEnabled(s.Enabled); err != nil {
			return nil, false, err
		}
	}
	if len(p.Channel) > 0 {
		if err := decodeField(p.Channel, &channel); err != nil || (channel != nil && *channel <= 0) {
			return nil, false, dErrors.New(dErrors.CodeValidation, "channel must be a positive id or null")
		}
		return channel, true, nil
	}
	return nil, false, nil
}

func checkType(t string) error {
	t = strings.TrimSpace(t)
	if t == "" {
		return dErrors.New(dErrors.CodeValidation, "type is required")
	}
	if utf8.RuneCountInString(t) > maxTextRunes {
		return dErrors.New(dErrors.CodeValidation, "type must be at most 255 characters")
	}
	return nil
}

func checkEntity(entityType string, entityID int64) error {
	if strings.TrimSpace(entityType) == "" {
		return dErrors.New(dErrors.CodeValidation, "entityType is required")
	}
	if utf8.RuneCountInString(entityType) > maxTextRunes {
		return dErrors.New(dErrors.CodeValidation, "entityType must be at most 255 characters")
	}
	if entityID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "entityId must be positive")
	}
	return nil
}

func checkEnabled(v int) error {
	if v != 0 && v != 1 {
		return dErrors.New(dErrors.CodeValidation, "enabled must be 0 or 1")
	}
	return nil
}

// decodeField leaves dst alone for an explicit null and keeps numbers exact.
func decodeField(raw json.RawMessage, dst any) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(dst)
}
