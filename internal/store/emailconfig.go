package store

import (
	"encoding/json"
	"fmt"

	"collabflow/internal/types"
)

// LoadEmailConfig returns the stored email identity, or nil when the user
// has never configured one.
func (s *Local) LoadEmailConfig() (*types.EmailConfig, error) {
	raw, ok, err := s.loadSlot(slotEmailConfig)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var cfg types.EmailConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("corrupt email config slot: %w", err)
	}
	return &cfg, nil
}

// SaveEmailConfig replaces the stored email identity wholesale.
func (s *Local) SaveEmailConfig(cfg types.EmailConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal email config: %w", err)
	}
	return s.saveSlot(slotEmailConfig, string(data))
}
