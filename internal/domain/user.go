package domain

import "time"

// User is a player account. Coin never goes negative and level never
// decreases; exp is cumulative across levels.
type User struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name"`
	Level     int       `json:"level"`
	Exp       int       `json:"exp"`
	Coin      int       `json:"coin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
