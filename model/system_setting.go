package model

import (
	"encoding/json"

	"github.com/pkg/errors"
)

const (
	SettingTypeGeneral  = "general"
	SettingTypeSecurity = "security"
)

type SystemSetting struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type SystemSettingGeneral struct {
	// DisableSignup closes public registration.
	DisableSignup bool `json:"disable_signup"`
}

type SystemSettingSecurity struct {
	// JWTSecret signs access tokens. Generated on first start and persisted.
	JWTSecret string `json:"jwt_secret"`
}

func (g *SystemSettingGeneral) ToJSON() string {
	value, _ := json.Marshal(g)
	return string(value)
}

func (s *SystemSettingSecurity) ToJSON() string {
	value, _ := json.Marshal(s)
	return string(value)
}

func (s *SystemSetting) GetGeneral() (*SystemSettingGeneral, error) {
	general := &SystemSettingGeneral{}
	if err := json.Unmarshal([]byte(s.Value), general); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal general setting")
	}
	return general, nil
}

func (s *SystemSetting) GetSecurity() (*SystemSettingSecurity, error) {
	security := &SystemSettingSecurity{}
	if err := json.Unmarshal([]byte(s.Value), security); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal security setting")
	}
	return security, nil
}
