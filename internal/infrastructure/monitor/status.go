package monitor

import "time"

// Status is the last health snapshot. Redis and Buffer are reported only
// when those components are configured.
type Status struct {
	Store        bool      `json:"store"`
	StoreBackend string    `json:"store_backend"`
	Redis        *bool     `json:"redis,omitempty"`
	Buffer       *bool     `json:"buffer,omitempty"`
	BufferSize   int       `json:"buffer_size"`
	LastCheck    time.Time `json:"last_check"`
}
